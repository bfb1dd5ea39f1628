// Package monitor streams the instructions executed by a GameBoy to
// websocket clients, one binary Frame per instruction.
package monitor

import (
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash"
	"github.com/google/brotli/go/cbrotli"
	"github.com/gorilla/websocket"
	"github.com/thelolagemann/dmgcore/internal/cpu"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024 * 16,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HubOpt configures a Hub.
type HubOpt func(h *Hub)

// WithCompression brotli encodes every frame at the given quality.
func WithCompression(quality int) HubOpt {
	return func(h *Hub) {
		h.compression = true
		h.quality = quality
	}
}

// Hub fans frames out to every connected client. Trace never blocks:
// frames are dropped when the hub or a client falls behind.
type Hub struct {
	clients              map[*Client]bool
	broadcast            chan []byte
	register, unregister chan *Client
	done                 chan struct{}
	closeOnce            sync.Once

	compression bool
	quality     int

	mu        sync.Mutex
	lastHash  uint64
	hasLast   bool
	seq       uint32
	currentID uint8

	connected atomic.Int32
	dropped   atomic.Uint64

	log log.Logger
}

// NewHub returns a running Hub. A nil logger discards everything.
func NewHub(logger log.Logger, opts ...HubOpt) *Hub {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	h := &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 1024),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		log:        logger,
	}
	for _, opt := range opts {
		opt(h)
	}

	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			h.connected.Add(1)
			h.log.Infof("client %d connected from %s", c.ID, c.RemoteAddr)
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.remove(c)
				h.log.Infof("client %d disconnected", c.ID)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.Send <- msg:
				default:
					h.log.Errorf("client %d is not keeping up, disconnecting", c.ID)
					h.remove(c)
				}
			}
		case <-h.done:
			for c := range h.clients {
				h.remove(c)
			}
			return
		}
	}
}

func (h *Hub) remove(c *Client) {
	close(c.Send)
	delete(h.clients, c)
	h.connected.Add(-1)
}

// ServeHTTP upgrades the request to a websocket connection and
// subscribes it to the hub.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Errorf("unable to upgrade connection from %s: %v", r.RemoteAddr, err)
		return
	}

	h.mu.Lock()
	h.currentID++
	c := &Client{
		hub:        h,
		conn:       conn,
		Send:       make(chan []byte, 256),
		ID:         h.currentID,
		RemoteAddr: r.RemoteAddr,
	}
	h.mu.Unlock()

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	// spawn read/write pumps
	go c.ReadPump()
	go c.WritePump()
}

func (h *Hub) unregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Trace encodes t as a Frame and queues it for every client. A frame
// identical to the previous one is not sent again.
func (h *Hub) Trace(t cpu.Trace) {
	f := frameFromTrace(t)
	body := f.Encode()

	h.mu.Lock()
	hash := xxhash.Sum64(body[:FrameSize-4])
	if h.hasLast && hash == h.lastHash {
		h.mu.Unlock()
		return
	}
	h.lastHash, h.hasLast = hash, true
	h.seq++
	f.Seq = h.seq
	h.mu.Unlock()

	msg := f.Encode()
	if h.compression {
		encoded, err := cbrotli.Encode(msg, cbrotli.WriterOptions{Quality: h.quality})
		if err != nil {
			h.log.Errorf("unable to compress frame: %v", err)
			return
		}
		msg = encoded
	}

	select {
	case <-h.done:
	case h.broadcast <- msg:
	default:
		h.dropped.Add(1)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	return int(h.connected.Load())
}

// Dropped returns the number of frames dropped because the hub was
// not keeping up.
func (h *Hub) Dropped() uint64 {
	return h.dropped.Load()
}

// Close disconnects every client and stops the hub.
func (h *Hub) Close() {
	h.closeOnce.Do(func() {
		close(h.done)
	})
}
