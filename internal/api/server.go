package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
)

// NewRouter builds the HTTP surface for session, broadcasting move and
// reset events on hub, following the route shape of the teacher's own
// main.go (ping/status/move/settings/cache/ws) generalized to Oware.
func NewRouter(session *Session, hub *Hub, configs *ConfigStore) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Get("/api/status", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, session.Status())
	})

	r.Post("/api/reset", func(w http.ResponseWriter, r *http.Request) {
		session.Reset()
		status := session.Status()
		writeJSON(w, http.StatusOK, status)
		hub.BroadcastReset(status)
	})

	r.Post("/api/move", func(w http.ResponseWriter, r *http.Request) {
		var req MoveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
			return
		}
		if err := session.ApplyMove(req.House); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		status := session.Status()
		resp := MoveResponse{Move: req.House, Status: status}
		writeJSON(w, http.StatusOK, resp)
		hub.BroadcastStatus(status)
	})

	r.Post("/api/compute", func(w http.ResponseWriter, r *http.Request) {
		move, err := session.ComputeMove(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
			return
		}
		status := session.Status()
		resp := MoveResponse{Move: int(move), Status: status}
		writeJSON(w, http.StatusOK, resp)
		hub.BroadcastStatus(status)
	})

	r.Post("/api/abort", func(w http.ResponseWriter, r *http.Request) {
		session.Abort()
		writeJSON(w, http.StatusOK, map[string]bool{"aborted": true})
	})

	r.Get("/api/config", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, configs.Get())
	})
	r.Post("/api/config", func(w http.ResponseWriter, r *http.Request) {
		var config Config
		if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid payload"})
			return
		}
		if err := session.ApplyConfig(config); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
			return
		}
		configs.Update(config)
		writeJSON(w, http.StatusOK, configs.Get())
	})

	r.Get("/api/cache", func(w http.ResponseWriter, r *http.Request) {
		cache := session.Cache()
		count := cache.Count()
		writeJSON(w, http.StatusOK, CacheStatusResponse{
			Count:      count,
			SizeBytes:  cache.Size(),
			HasEntries: count > 0,
		})
	})

	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(hub, session, w, r)
	})

	return r
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

func serveWS(hub *Hub, session *Session, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	client := &Client{hub: hub, send: make(chan []byte, 16)}
	hub.Register(client)

	client.sendJSON(wsMessage{Type: "status", Payload: mustMarshal(session.Status())})

	go func() {
		defer conn.Close()
		_ = writeWithHeartbeat(conn, client.send)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Unregister(client)
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
