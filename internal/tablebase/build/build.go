// Package build is the offline generator behind internal/tablebase: it
// exhaustively walks the positions reachable from a starting board
// within a bounded number of plies, solves each one exactly by
// recursing to true game end, and bulk-loads the results into a
// tablebase.Store. It is meant to be run against near-terminal roots —
// endgames with only a handful of seeds left on the board — where the
// reachable set is small and every line actually finishes quickly;
// Solve itself has no depth cap; it recurses to a real HasEnded().
package build

import (
	"fmt"
	"math"

	"github.com/cryptokrok/mancala.oware-AI-engine/internal/engine"
	"github.com/cryptokrok/mancala.oware-AI-engine/internal/oware"
	"github.com/cryptokrok/mancala.oware-AI-engine/internal/tablebase"
)

// Generate returns every distinct position reachable from root within
// maxPlies plies, deduplicated by Zobrist hash. It stops descending a
// branch early if the position is already terminal.
func Generate(root oware.Board, maxPlies int) []oware.Board {
	seen := make(map[uint64]oware.Board)
	walk(root, maxPlies, seen)

	out := make([]oware.Board, 0, len(seen))
	for _, b := range seen {
		out = append(out, b)
	}
	return out
}

func walk(b oware.Board, pliesLeft int, seen map[uint64]oware.Board) {
	hash := b.Hash()
	if _, visited := seen[hash]; visited {
		return
	}
	seen[hash] = b

	if pliesLeft == 0 || b.HasEnded() {
		return
	}
	for _, house := range b.LegalHouses() {
		walk(b.Play(house), pliesLeft-1, seen)
	}
}

// Solve returns b's exact minimax score, from South's perspective
// (positive favors South, matching oware.Board.Outcome and Score), by
// recursing to true game end. memo is keyed by position hash so that
// subtrees shared across many generated roots are solved only once;
// callers populating a whole tablebase should pass one shared memo.
func Solve(b oware.Board, memo map[uint64]int) int {
	hash := b.Hash()
	if v, ok := memo[hash]; ok {
		return v
	}

	var value int
	if b.HasEnded() {
		value = b.Outcome()
	} else {
		mover := b.Turn()
		best := math.MinInt32
		for _, house := range b.LegalHouses() {
			// Convert the child's absolute score into the mover's own
			// perspective to compare children, then convert the winning
			// value back to absolute once — the same negation trick
			// engine.search uses for its own negamax recursion.
			rel := Solve(b.Play(house), memo) * mover
			if rel > best {
				best = rel
			}
		}
		value = best * mover
	}

	memo[hash] = value
	return value
}

// Populate generates every position reachable from root within
// maxPlies, solves each exactly, and bulk-writes the results into
// store via a single Badger write batch. It returns the number of
// positions written.
func Populate(store *tablebase.Store, root oware.Board, maxPlies int) (int, error) {
	positions := Generate(root, maxPlies)
	memo := make(map[uint64]int, len(positions))

	batch := store.NewWriteBatch()
	defer batch.Cancel()

	for _, b := range positions {
		score := Solve(b, memo)
		key := tablebase.EncodeKey(b.Hash())
		val := tablebase.EncodeEntry(score, engine.FlagExact)
		if err := batch.Set(key, val); err != nil {
			return 0, fmt.Errorf("tablebase/build: writing %d positions: %w", len(positions), err)
		}
	}
	if err := batch.Flush(); err != nil {
		return 0, fmt.Errorf("tablebase/build: flushing %d positions: %w", len(positions), err)
	}
	return len(positions), nil
}
