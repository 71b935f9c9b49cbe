// Package stream 通过 websocket 向观战者广播对局快照
//
// 每个观战连接有独立的读写 goroutine 和发送缓冲，
// 缓冲写满的慢速连接直接断开，广播方永远不会被阻塞。
package stream

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gonewx/tankarena/pkg/game"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// websocket 参数
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 // 观战者只读，不需要大消息

	// DefaultSendBuffer 每个连接最多积压的帧数
	DefaultSendBuffer = 32
)

// Encode 将快照编码为 msgpack
func Encode(snap *game.Snapshot) ([]byte, error) {
	return msgpack.Marshal(snap)
}

// Decode 解码 Encode 的输出
func Decode(data []byte) (game.Snapshot, error) {
	var snap game.Snapshot
	err := msgpack.Unmarshal(data, &snap)
	return snap, err
}

// Hub 观战广播中心，实现 http.Handler
type Hub struct {
	upgrader   websocket.Upgrader
	sendBuffer int

	mu      sync.Mutex
	clients map[*client]struct{}
	last    []byte // 最近一帧，新连接加入时立即发送
	closed  bool
}

type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// NewHub 创建广播中心，sendBuffer <= 0 时使用 DefaultSendBuffer
func NewHub(sendBuffer int) *Hub {
	if sendBuffer <= 0 {
		sendBuffer = DefaultSendBuffer
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		sendBuffer: sendBuffer,
		clients:    make(map[*client]struct{}),
	}
}

// ServeHTTP 升级为 websocket 连接并开始推送
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[StreamHub] upgrade failed: %v", err)
		return
	}

	c := &client{hub: h, conn: conn, send: make(chan []byte, h.sendBuffer)}
	if !h.register(c) {
		_ = conn.Close()
		return
	}
	log.Printf("[StreamHub] 观战者加入: %s", r.RemoteAddr)

	go c.writePump()
	go c.readPump()
}

func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- h.last
	}
	return true
}

// unregister 移除连接并关闭其发送通道，重复调用是无操作
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}

// Publish 编码并广播一帧快照
func (h *Hub) Publish(snap *game.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	h.Broadcast(data)
	return nil
}

// Broadcast 向所有连接发送已编码的帧
// 发送缓冲已满的连接被断开
func (h *Hub) Broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			log.Printf("[StreamHub] 观战者过慢，断开连接")
			h.removeLocked(c)
		}
	}
}

// ClientCount 当前连接数
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close 断开所有连接，之后的新连接会被拒绝
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

// readPump 丢弃观战者发来的消息，只用于处理 pong 和关闭
func (c *client) readPump() {
	defer func() {
		c.hub.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[StreamHub] read error: %v", err)
			}
			return
		}
	}
}

// writePump 发送快照与心跳，发送通道关闭时通知对端并退出
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
