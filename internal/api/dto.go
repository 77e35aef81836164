package api

import (
	"github.com/cryptokrok/mancala.oware-AI-engine/internal/engine"
	"github.com/cryptokrok/mancala.oware-AI-engine/internal/oware"
)

// StatusResponse mirrors the teacher's own StatusResponse: a flat,
// JSON-tagged snapshot of everything a client's board view needs.
//
// Flag carries the bound flag of the current position's transposition
// table entry, or FlagEmpty if it has none. internal/engine never
// produces FlagFuzzy itself; the field is wired through end to end so an
// external client can distinguish "no entry" from a future fuzzy bound
// without a breaking wire-format change.
type StatusResponse struct {
	Houses  [oware.Houses]int `json:"houses"`
	Stores  [2]int            `json:"stores"`
	Turn    int               `json:"turn"`
	Ended   bool              `json:"ended"`
	Outcome int               `json:"outcome"`
	Plies   int               `json:"plies"`
	Flag    engine.Flag       `json:"flag"`
}

func statusFromGame(g *oware.Game) StatusResponse {
	board := g.Board()
	resp := StatusResponse{
		Houses: board.Houses(),
		Stores: board.Stores(),
		Turn:   g.Turn(),
		Ended:  g.HasEnded(),
		Plies:  g.Length(),
		Flag:   engine.FlagEmpty,
	}
	if resp.Ended {
		resp.Outcome = g.Outcome()
	}
	return resp
}

// statusFromCache is statusFromGame plus the current position's cache
// flag, for callers such as Session.Status and NewSearchConsumer that
// hold both the game and an engine.Cache together.
func statusFromCache(g *oware.Game, cache engine.Cache) StatusResponse {
	resp := statusFromGame(g)
	if cache != nil && cache.Find(g) {
		resp.Flag = cache.CacheFlag()
	}
	return resp
}

// MoveRequest is the body of POST /api/move.
type MoveRequest struct {
	House int `json:"house"`
}

// MoveResponse reports the move the engine chose and the resulting
// status.
type MoveResponse struct {
	Move   int            `json:"move"`
	Status StatusResponse `json:"status"`
}

// CacheStatusResponse mirrors the teacher's own ttCacheStatusResponse,
// trimmed to the fields ttcache.Cache actually exposes.
type CacheStatusResponse struct {
	Count      int   `json:"count"`
	SizeBytes  int64 `json:"size_bytes"`
	HasEntries bool  `json:"has_entries"`
}

// SearchReport is a broadcastable projection of engine.Report: just the
// candidate move and the position it was found in, since the engine's
// own Report carries live Game/Cache handles that must not leave the
// search goroutine.
type SearchReport struct {
	BestMove int            `json:"best_move"`
	Status   StatusResponse `json:"status"`
}

// ErrorResponse is the body written for any 4xx/5xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}
