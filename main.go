package main

import (
	"flag"
	"log"
	"os"

	"github.com/gonewx/tankarena/pkg/app"
	"github.com/gonewx/tankarena/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging")
	seedFlag    = flag.Int64("seed", 0, "Fixed random seed for every match (0 = time based)")
	tuningFlag  = flag.String("tuning", "", "Path to an external tuning YAML (default: embedded data/tuning.yaml)")
	playFlag    = flag.Bool("play", false, "Skip the main menu and start a match immediately")
)

func main() {
	flag.Parse()

	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		Seed:       *seedFlag,
		TuningPath: *tuningFlag,
		SkipMenu:   *playFlag,
	})
	if err != nil {
		// 日志可能已被静默，错误直接写到 stderr
		log.New(os.Stderr, "", 0).Fatalf("游戏初始化失败: %v", err)
	}
	defer gameApp.Close()

	w, h := gameApp.WindowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Tank Arena")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(gameApp.TicksPerSecond())

	if err := ebiten.RunGame(gameApp); err != nil {
		log.New(os.Stderr, "", 0).Fatal(err)
	}
}
