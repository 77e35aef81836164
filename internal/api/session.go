package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cryptokrok/mancala.oware-AI-engine/internal/engine"
	"github.com/cryptokrok/mancala.oware-AI-engine/internal/oware"
	"github.com/cryptokrok/mancala.oware-AI-engine/internal/tablebase"
	"github.com/cryptokrok/mancala.oware-AI-engine/internal/ttcache"
)

// Session pairs one Oware Game with the Engine searching it. A single
// Session must not be driven by two HTTP requests at once; mu enforces
// that the way engine.Engine's own mutex enforces it for configuration.
type Session struct {
	mu        sync.Mutex
	game      *oware.Game
	eng       *engine.Engine
	cache     *ttcache.Cache
	tablebase *tablebase.Store
}

// NewSession builds a Session from config: an engine tuned to config's
// depth/time/contempt/infinity, a fresh transposition table sized to
// config's slot count, and — if config.TablebaseOn — a Badger-backed
// tablebase opened at tablebasePath.
func NewSession(config Config, tablebasePath string) (*Session, error) {
	eng := engine.New()
	eng.SetDepth(config.Depth)
	if err := eng.SetMoveTime(time.Duration(config.MoveTimeMs) * time.Millisecond); err != nil {
		return nil, fmt.Errorf("api: session: %w", err)
	}
	eng.SetContempt(config.Contempt)
	if err := eng.SetInfinity(config.Infinity); err != nil {
		return nil, fmt.Errorf("api: session: %w", err)
	}

	cache := ttcache.New(uint64(config.TTSlots), config.TTBuckets)
	eng.SetCache(cache)

	s := &Session{
		game:  oware.New(),
		eng:   eng,
		cache: cache,
	}

	if config.TablebaseOn {
		store, err := tablebase.Open(tablebasePath)
		if err != nil {
			return nil, fmt.Errorf("api: session: opening tablebase: %w", err)
		}
		s.tablebase = store
		eng.SetLeaves(store)
	}

	return s, nil
}

// Engine exposes the underlying engine, for AttachConsumer and similar.
func (s *Session) Engine() *engine.Engine { return s.eng }

// Cache exposes the underlying transposition table, for status reporting.
func (s *Session) Cache() *ttcache.Cache { return s.cache }

// Close releases any resources the Session owns, such as an open
// tablebase.
func (s *Session) Close() error {
	if s.tablebase != nil {
		return s.tablebase.Close()
	}
	return nil
}

// Reset starts a new game, clearing the cache so it never leaks entries
// from the previous match.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.game = oware.New()
	s.eng.NewMatch()
}

// ApplyConfig re-tunes the engine and rebuilds the transposition table
// at config.TTSlots entries' worth of bytes, discarding every stored entry
// even when the size is unchanged. config.TTBuckets is not applied: the
// table keeps the associativity it was created with.
func (s *Session) ApplyConfig(config Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.eng.SetDepth(config.Depth)
	if err := s.eng.SetMoveTime(time.Duration(config.MoveTimeMs) * time.Millisecond); err != nil {
		return err
	}
	s.eng.SetContempt(config.Contempt)
	if err := s.eng.SetInfinity(config.Infinity); err != nil {
		return err
	}
	s.cache.Resize(int64(config.TTSlots) * 40)
	return nil
}

// ApplyMove plays house on behalf of the side to move. It reports an
// error if house is not currently legal.
func (s *Session) ApplyMove(house int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	move := engine.Move(house)
	for _, legal := range s.game.LegalMoves() {
		if legal == move {
			s.game.Make(move)
			return nil
		}
	}
	return fmt.Errorf("api: house %d is not a legal move", house)
}

// ComputeMove asks the engine for its best move in the current position
// and plays it. It returns engine.NullMove without error if the game has
// already ended.
func (s *Session) ComputeMove(ctx context.Context) (engine.Move, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game.HasEnded() {
		return engine.NullMove, nil
	}
	move := s.eng.ComputeBestMove(ctx, s.game)
	if move == engine.NullMove {
		return engine.NullMove, fmt.Errorf("api: engine returned no move for a non-terminal position")
	}
	s.game.Make(move)
	return move, nil
}

// Abort requests that any in-flight ComputeMove call stop early.
func (s *Session) Abort() { s.eng.AbortComputation() }

// Status returns a snapshot of the current position, including the
// transposition table's bound flag for it, if any.
func (s *Session) Status() StatusResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return statusFromCache(s.game, s.cache)
}
