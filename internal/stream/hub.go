package stream

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/trogers1052/stock-dashboard/internal/models"
)

// Message types sent to websocket clients
const (
	MessageSnapshot = "snapshot"
	MessageEvent    = "event"
)

const broadcastBuffer = 64

// Message is the envelope written to every client
type Message struct {
	Type      string                 `json:"type"`
	Watchlist []models.Stock         `json:"watchlist,omitempty"`
	Event     *models.WatchlistEvent `json:"event,omitempty"`
}

// SnapshotFunc returns the current watchlist for newly connected clients
type SnapshotFunc func(ctx context.Context) ([]models.Stock, error)

// Hub fans watchlist events out to websocket clients
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan Message
	done       chan struct{}
	connected  atomic.Int64

	snapshot SnapshotFunc
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHub creates a hub. snapshot may be nil.
func NewHub(snapshot SnapshotFunc, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Message, broadcastBuffer),
		done:       make(chan struct{}),
		snapshot:   snapshot,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

// Run is the hub loop. It owns the client set and exits with ctx.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = struct{}{}
			h.connected.Add(1)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				h.drop(client)
			}

		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow consumers are disconnected so the hub never blocks
					h.logger.Warn("dropping slow websocket client")
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) drop(client *Client) {
	delete(h.clients, client)
	close(client.send)
	h.connected.Add(-1)
}

// ClientCount returns the number of registered clients
func (h *Hub) ClientCount() int {
	return int(h.connected.Load())
}

// Broadcast queues an event for every client. Events are dropped when the
// queue is full.
func (h *Hub) Broadcast(event models.WatchlistEvent) {
	select {
	case h.broadcast <- Message{Type: MessageEvent, Event: &event}:
	default:
		h.logger.Warn("broadcast queue full, dropping event", "symbol", event.Symbol, "event_type", event.EventType)
	}
}

// PublishWatchlistAdded broadcasts an added event directly, for deployments
// without a message bus
func (h *Hub) PublishWatchlistAdded(_ context.Context, stock *models.Stock) error {
	h.Broadcast(models.WatchlistEvent{
		ID:        uuid.NewString(),
		EventType: models.EventWatchlistAdded,
		Stock:     stock,
		Symbol:    stock.Symbol,
		Timestamp: time.Now(),
	})
	return nil
}

// PublishWatchlistRemoved broadcasts a removed event directly
func (h *Hub) PublishWatchlistRemoved(_ context.Context, symbol string) error {
	h.Broadcast(models.WatchlistEvent{
		ID:        uuid.NewString(),
		EventType: models.EventWatchlistRemoved,
		Symbol:    symbol,
		Timestamp: time.Now(),
	})
	return nil
}

// ServeWS upgrades the request and registers the connection. Registration
// precedes the snapshot so no event is lost while it loads; events queued in
// that window arrive after the snapshot and may repeat what it holds.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan Message, broadcastBuffer),
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}
	h.logger.Info("websocket client connected", "remote", r.RemoteAddr)

	if h.snapshot != nil {
		entries, err := h.snapshot(r.Context())
		if err != nil {
			h.logger.Error("failed to load watchlist snapshot", "error", err)
		} else {
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(Message{Type: MessageSnapshot, Watchlist: entries}); err != nil {
				h.logger.Warn("failed to send watchlist snapshot", "error", err)
				select {
				case h.unregister <- client:
				case <-h.done:
				}
				conn.Close()
				return
			}
		}
	}

	go client.writePump()
	go client.readPump()
}
