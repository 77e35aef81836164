// Package api wires internal/engine, internal/oware, internal/ttcache, and
// internal/tablebase into an HTTP + WebSocket service, following the
// teacher's own router/hub/config split (backend/main.go, backend/hub.go,
// backend/config.go) generalized from a Gomoku board to an Oware session.
package api

import "sync"

// Config is the tunable engine configuration a client can read and update
// at runtime, mirroring the teacher's own Config/ConfigStore split so that
// settings changes never race a search in flight.
type Config struct {
	Depth       int   `json:"depth"`
	MoveTimeMs  int   `json:"move_time_ms"`
	Contempt    int   `json:"contempt"`
	Infinity    int   `json:"infinity"`
	TTSlots     int64 `json:"tt_slots"`
	TTBuckets   int   `json:"tt_buckets"`
	TablebaseOn bool  `json:"tablebase_on"`
}

// DefaultConfig uses the engine's own default contempt and infinity (see
// engine.New) but a shallower depth (12) and a shorter move time (1s) than
// engine.New, plus a modestly sized transposition table suitable for a
// single Oware session.
func DefaultConfig() Config {
	return Config{
		Depth:       12,
		MoveTimeMs:  1000,
		Contempt:    0,
		Infinity:    1<<31 - 1,
		TTSlots:     1 << 20,
		TTBuckets:   4,
		TablebaseOn: false,
	}
}

// ConfigStore is a read-mostly, mutex-guarded holder for the current
// Config, in the shape of the teacher's own ConfigStore.
type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

// NewConfigStore returns a ConfigStore seeded with config.
func NewConfigStore(config Config) *ConfigStore {
	return &ConfigStore{config: config}
}

// Get returns the current configuration.
func (s *ConfigStore) Get() Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Update replaces the current configuration.
func (s *ConfigStore) Update(config Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = config
}
