// Package engine implements an iterative-deepening negamax search with
// alpha-beta pruning, a transposition table hook and an endgame tablebase
// hook. It knows nothing about any particular game: callers supply a Game,
// and optionally a Cache and a Leaves, and the engine drives the search.
package engine

import "time"

// Move is a game-defined move encoding. The only value the engine itself
// interprets is NullMove.
type Move int

// NullMove is the sentinel returned by a Game when no move applies, and by
// the engine itself for a root position that has already ended.
const NullMove Move = -1

// DrawScore is the absolute outcome value of a drawn game.
const DrawScore = 0

// MinDepth and MaxDepth bound the depth accepted by SetDepth. Depths are
// always even: iterative deepening advances by two so that both players'
// replies are evaluated within each completed iteration.
const (
	MinDepth = 2
	MaxDepth = 254
)

// DefaultMoveTime is used by New when the caller never calls
// SetMoveTime.
const DefaultMoveTime = 3600 * time.Millisecond

// Flag classifies a Cache entry's score as exact or as a bound.
//
// FlagUpper marks an entry produced by a beta cut-off: the true value is at
// least the stored score, so from the parent's (negated) point of view the
// stored score behaves as an upper bound. FlagLower marks a fail-low: the
// true value is at most the stored score. This naming is inverted from some
// textbooks' convention but matches the on-disk cache format used across
// this codebase; see DESIGN.md.
type Flag int8

const (
	FlagExact Flag = iota
	FlagFuzzy
	FlagLower
	FlagUpper
	FlagEmpty
)

func (f Flag) String() string {
	switch f {
	case FlagExact:
		return "exact"
	case FlagFuzzy:
		return "fuzzy"
	case FlagLower:
		return "lower"
	case FlagUpper:
		return "upper"
	default:
		return "empty"
	}
}
