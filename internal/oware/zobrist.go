package oware

import "github.com/cryptokrok/mancala.oware-AI-engine/internal/engine"

// Zobrist hashing generalized from the teacher's backend/zobrist.go: a
// splitmix64-seeded table of random keys, one per (house, seed count)
// and (store, seed count) pair plus a single side-to-move key, XORed
// together to fold a position into one uint64. The teacher's board has
// one key per (cell, stone color) because a cell holds at most one
// stone; a house here can hold a run of seeds, so the table is indexed
// by count instead of by a fixed piece identity.

// maxZobristCount bounds the per-house/per-store table: no house or
// store can ever exceed the total seed count in the game.
const maxZobristCount = TotalSeeds

type splitmix64 struct{ state uint64 }

func (s *splitmix64) next() uint64 {
	s.state += 0x9e3779b97f4a7c15
	z := s.state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

type zobristTable struct {
	house [Houses][maxZobristCount + 1]uint64
	store [2][maxZobristCount + 1]uint64
	side  uint64
}

func newZobristTable(seed uint64) *zobristTable {
	rng := splitmix64{state: seed}
	t := &zobristTable{}
	for h := range t.house {
		for c := range t.house[h] {
			t.house[h][c] = rng.next()
		}
	}
	for s := range t.store {
		for c := range t.store[s] {
			t.store[s][c] = rng.next()
		}
	}
	t.side = rng.next()
	return t
}

// globalZobrist is shared by every Board: the table depends only on the
// fixed board shape (twelve houses, two stores), never on a particular
// game instance, so there is nothing to gain from keying it per-Game the
// way the teacher keys its table per board size.
var globalZobrist = newZobristTable(0x2545f4914f6cdd1d)

func clampZobristCount(n int) int {
	if n < 0 {
		return 0
	}
	if n > maxZobristCount {
		return maxZobristCount
	}
	return n
}

// Hash folds the position into a single uint64. It is a full recompute
// rather than incremental maintenance: a position has only fourteen
// counters, so recomputing on every call is cheap and, unlike threading
// an incremental update through every capture-chain branch of sow,
// cannot drift out of sync with the board it describes.
func (b Board) Hash() uint64 {
	var h uint64
	for i, seeds := range b.houses {
		h ^= globalZobrist.house[i][clampZobristCount(seeds)]
	}
	for i, seeds := range b.stores {
		h ^= globalZobrist.store[i][clampZobristCount(seeds)]
	}
	if b.turn == engine.North {
		h ^= globalZobrist.side
	}
	return h
}
