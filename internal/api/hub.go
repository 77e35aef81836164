package api

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/cryptokrok/mancala.oware-AI-engine/internal/engine"
	"github.com/cryptokrok/mancala.oware-AI-engine/internal/oware"
)

// Hub fans a small set of broadcast channels out to every connected
// WebSocket client, in the shape of the teacher's own Hub.
type Hub struct {
	mu              sync.Mutex
	clients         map[*Client]struct{}
	broadcastMove   chan wsMessage
	broadcastReset  chan wsMessage
	broadcastSearch chan wsMessage
}

// Client is one connected WebSocket subscriber.
type Client struct {
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewHub returns an empty Hub ready to Run.
func NewHub() *Hub {
	return &Hub{
		clients:         make(map[*Client]struct{}),
		broadcastMove:   make(chan wsMessage, 16),
		broadcastReset:  make(chan wsMessage, 8),
		broadcastSearch: make(chan wsMessage, 32),
	}
}

// Run delivers broadcasts to every registered client until done is
// closed.
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg := <-h.broadcastMove:
			h.fanOut(msg)
		case msg := <-h.broadcastReset:
			h.fanOut(msg)
		case msg := <-h.broadcastSearch:
			h.fanOut(msg)
		}
	}
}

func (h *Hub) fanOut(msg wsMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		client.sendJSON(msg)
	}
}

// BroadcastStatus pushes a status update to every connected client after
// a move is played.
func (h *Hub) BroadcastStatus(status StatusResponse) {
	h.broadcastMove <- wsMessage{Type: "status", Payload: mustMarshal(status)}
}

// BroadcastReset pushes a status update after a game reset.
func (h *Hub) BroadcastReset(status StatusResponse) {
	h.broadcastReset <- wsMessage{Type: "reset", Payload: mustMarshal(status)}
}

// NewLoggingConsumer returns an engine.Consumer that logs each report's
// best move through logger, following the "[backend] ..." prefixed
// log.Printf style of the teacher's own main.go.
func NewLoggingConsumer(logger *log.Logger) *engine.ConsumerFunc {
	f := engine.ConsumerFunc(func(r engine.Report) {
		logger.Printf("[enginectl] best move so far: %v", r.BestMove)
	})
	return &f
}

// NewSearchConsumer returns an engine.Consumer that projects each
// engine.Report onto hub's search broadcast channel. Report.Game is
// always the *oware.Game a Session handed to ComputeBestMove; the type
// assertion below documents that invariant rather than guarding against
// it.
func NewSearchConsumer(hub *Hub) *engine.ConsumerFunc {
	f := engine.ConsumerFunc(func(r engine.Report) {
		hub.BroadcastSearch(SearchReport{
			BestMove: int(r.BestMove),
			Status:   statusFromCache(r.Game.(*oware.Game), r.Cache),
		})
	})
	return &f
}

// BroadcastSearch pushes an in-progress search report to every connected
// client. It is fed by an engine.ConsumerFunc attached to the session's
// Engine so a slow client never blocks the search itself: the send drops
// silently if the hub's search channel is full, just as sendJSON drops a
// message when a client's channel is full.
func (h *Hub) BroadcastSearch(report SearchReport) {
	select {
	case h.broadcastSearch <- wsMessage{Type: "search", Payload: mustMarshal(report)}:
	default:
	}
}

// Register adds c to the client set.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

// Unregister removes c from the client set and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func mustMarshal(v any) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}
