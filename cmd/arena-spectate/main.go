// Package main runs a headless autopilot match and streams snapshots to
// websocket viewers.
//
// Usage:
//
//	go run ./cmd/arena-spectate [flags]
//
// Flags:
//
//	--addr <host:port>   HTTP listen address (default :8080)
//	--seed <n>           Seed of the first match (0 = time based)
//	--tuning <file>      Tuning YAML file (default: built-in tuning)
//	--restart            Start a new match 3 seconds after game over
//	--verbose            Enable verbose logging
//
// Endpoints:
//
//	/ws       websocket, one msgpack encoded snapshot per tick
//	/healthz  liveness probe
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gonewx/tankarena/pkg/bot"
	"github.com/gonewx/tankarena/pkg/config"
	"github.com/gonewx/tankarena/pkg/game"
	"github.com/gonewx/tankarena/pkg/simulation"
	"github.com/gonewx/tankarena/pkg/stream"
)

// restartDelay 对局结束到下一局开始的间隔（秒）
const restartDelay = 3.0

var (
	addrFlag    = flag.String("addr", ":8080", "HTTP listen address")
	seedFlag    = flag.Int64("seed", 0, "Seed of the first match (0 = time based)")
	tuningFlag  = flag.String("tuning", "", "Tuning YAML file (default: built-in)")
	restartFlag = flag.Bool("restart", true, "Restart automatically after game over")
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	tuning := config.DefaultTuning()
	if *tuningFlag != "" {
		t, err := config.LoadTuningFile(*tuningFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load tuning: %v\n", err)
			os.Exit(1)
		}
		tuning = t
	}

	seed := *seedFlag
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := stream.NewHub(stream.DefaultSendBuffer)
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	server := &http.Server{Addr: *addrFlag, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "http server: %v\n", err)
			stop()
		}
	}()
	fmt.Printf("spectate at ws://%s/ws\n", *addrFlag)

	err := run(ctx, hub, tuning, seed, *restartFlag)
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(shutdownCtx)

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run 以固定频率推进对局并广播快照，直到 ctx 结束
func run(ctx context.Context, hub *stream.Hub, tuning *config.Tuning, seed int64, restart bool) error {
	scores := &game.MemoryScoreStore{}
	dt := 1.0 / float64(tuning.Simulation.TicksPerSecond)

	newMatch := func(seed int64) (*simulation.Simulation, *bot.Autopilot, error) {
		sim, err := simulation.New(simulation.Options{Tuning: tuning, Seed: seed, Scores: scores})
		if err != nil {
			return nil, nil, fmt.Errorf("new match: %w", err)
		}
		log.Printf("[Spectate] 新对局 %s (seed=%d, best=%d)", sim.MatchID(), seed, scores.Best)
		return sim, bot.NewAutopilot(seed), nil
	}

	sim, pilot, err := newMatch(seed)
	if err != nil {
		return err
	}

	ticker := time.NewTicker(time.Duration(float64(time.Second) * dt))
	defer ticker.Stop()

	overFor := 0.0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		snap := sim.Snapshot()
		sim.Update(dt, pilot.Input(&snap))

		snap = sim.Snapshot()
		if err := hub.Publish(&snap); err != nil {
			log.Printf("[Spectate] publish failed: %v", err)
		}

		if !sim.GameOver() {
			continue
		}
		overFor += dt
		if !restart || overFor < restartDelay {
			continue
		}
		log.Printf("[Spectate] 对局结束: score=%d wave=%d", sim.Score(), sim.Wave())
		seed++
		if sim, pilot, err = newMatch(seed); err != nil {
			return err
		}
		overFor = 0
	}
}
