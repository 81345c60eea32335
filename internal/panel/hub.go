package panel

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/nbenliogludev/go-market-sniper/internal/sniper"
)

type directMsg struct {
	to  *client
	msg []byte
}

// Hub keeps the connected panel clients and broadcasts events to them.
// It is the sniper.Reporter of the process: Emit never blocks.
type Hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	broadcast  chan []byte
	direct     chan directMsg
	count      atomic.Int32
	done       chan struct{}
	log        *zap.Logger
}

var _ sniper.Reporter = (*Hub)(nil)

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 256),
		direct:     make(chan directMsg, 64),
		done:       make(chan struct{}),
		log:        log.Named("hub"),
	}
}

// Run serves registrations and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
			h.count.Store(int32(len(h.clients)))
			h.log.Debug("client connected", zap.String("client", c.id), zap.Int("clients", len(h.clients)))
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
				h.count.Store(int32(len(h.clients)))
				h.log.Debug("client disconnected", zap.String("client", c.id))
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.log.Warn("client too slow, dropping", zap.String("client", c.id))
					close(c.send)
					delete(h.clients, c)
					h.count.Store(int32(len(h.clients)))
				}
			}
		case d := <-h.direct:
			if _, ok := h.clients[d.to]; !ok {
				continue
			}
			select {
			case d.to.send <- d.msg:
			default:
				h.log.Warn("reply dropped", zap.String("client", d.to.id))
			}
		case <-ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.count.Store(0)
			return
		}
	}
}

func (h *Hub) add(c *client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) remove(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Emit queues ev for every client. When the queue is full the event is dropped.
func (h *Hub) Emit(ev sniper.Event) {
	b, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("marshal event", zap.String("event", string(ev.Kind)), zap.Error(err))
		return
	}
	select {
	case h.broadcast <- b:
	default:
		h.log.Warn("event dropped, broadcast queue full", zap.String("event", string(ev.Kind)))
	}
}

// sendTo queues msg for a single client. Replies to clients that are gone
// are discarded by Run.
func (h *Hub) sendTo(c *client, msg []byte) {
	select {
	case h.direct <- directMsg{to: c, msg: msg}:
	default:
		h.log.Warn("reply dropped, queue full", zap.String("client", c.id))
	}
}

// Clients is the number of registered clients.
func (h *Hub) Clients() int {
	return int(h.count.Load())
}
