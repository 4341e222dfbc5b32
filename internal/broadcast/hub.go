// Package broadcast pushes run snapshots to remote viewers over websockets
// and exposes a small HTTP surface for polling and reset requests.
package broadcast

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/drone-dodger/internal/games/dodger"
)

// Message types on the websocket.
const (
	MsgHello  = "hello"  // Server -> client on connect: geometry and latest snapshot
	MsgUpdate = "update" // Server -> client every tick
	MsgReset  = "reset"  // Client -> server: request a new run
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Message is the websocket envelope.
type Message struct {
	Type     string           `json:"type"`
	Geometry *dodger.Geometry `json:"geometry,omitempty"`
	Snapshot *dodger.Snapshot `json:"snapshot,omitempty"`
}

// Source is what the hub reads from and forwards reset requests to.
type Source interface {
	Latest() dodger.Snapshot
	Geometry() dodger.Geometry
	Reset()
}

type client struct {
	conn *websocket.Conn
	send chan []byte
	id   string
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithSendBuffer sets how many messages a client may lag before it is dropped.
func WithSendBuffer(n int) HubOption {
	return func(h *Hub) {
		if n > 0 {
			h.sendBuffer = n
		}
	}
}

// WithClientReset lets websocket clients request resets.
func WithClientReset(allow bool) HubOption {
	return func(h *Hub) {
		h.allowReset = allow
	}
}

// Hub fans snapshots out to connected websocket clients.
// Publish never blocks: a client whose buffer is full is disconnected.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]struct{}

	source     Source
	logger     *log.Logger
	upgrader   websocket.Upgrader
	sendBuffer int
	allowReset bool
}

// NewHub creates a hub over src.
func NewHub(src Source, logger *log.Logger, opts ...HubOption) *Hub {
	if logger == nil {
		logger = log.Default().WithPrefix("hub")
	}
	h := &Hub{
		clients:    make(map[*client]struct{}),
		source:     src,
		logger:     logger,
		sendBuffer: 64,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Publish sends a snapshot to every client. It is safe to use as an engine listener.
func (h *Hub) Publish(snap dodger.Snapshot) {
	msg, err := json.Marshal(Message{Type: MsgUpdate, Snapshot: &snap})
	if err != nil {
		h.logger.Error("encode snapshot", "error", err)
		return
	}
	h.broadcast(msg)
}

func (h *Hub) broadcast(msg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.logger.Warn("dropping slow client", "client", c.id)
			close(c.send)
			delete(h.clients, c)
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Info("client connected", "client", c.id, "clients", n)
}

// unregister removes c if it is still registered and closes its send queue.
func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		h.logger.Info("client disconnected", "client", c.id, "clients", n)
	}
}

// ServeHTTP upgrades the request and streams snapshots until the client leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, h.sendBuffer), id: r.RemoteAddr}

	geo := h.source.Geometry()
	latest := h.source.Latest()
	hello, err := json.Marshal(Message{Type: MsgHello, Geometry: &geo, Snapshot: &latest})
	if err != nil {
		h.logger.Error("encode hello", "error", err)
		conn.Close()
		return
	}
	c.send <- hello

	h.register(c)
	go h.writePump(c)
	go h.readPump(c)
}

// readPump handles client requests and keepalive pongs.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var req Message
		if err := c.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("read error", "client", c.id, "error", err)
			}
			return
		}

		switch req.Type {
		case MsgReset:
			if !h.allowReset {
				h.logger.Debug("reset request ignored", "client", c.id)
				continue
			}
			h.logger.Info("reset requested", "client", c.id)
			h.source.Reset()
		default:
			h.logger.Debug("unknown message", "client", c.id, "type", req.Type)
		}
	}
}

// writePump drains the send queue and pings the client.
func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
