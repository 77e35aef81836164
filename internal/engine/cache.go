package engine

// Cache is a transposition table keyed by game state. It stores, for a
// state, the best score found so far, the move that produced it, the depth
// at which it was computed and a Flag classifying the score.
//
// Find loads the entry (if any) for game into the Cache's internal cursor;
// Score, MoveFromCache, Depth and CacheFlag then read fields of the most
// recently found entry. This mirrors the teacher's own tt.Probe/getters
// split and avoids allocating a result struct on every probe.
type Cache interface {
	// Size reports the number of bytes the cache currently occupies.
	Size() int64

	// Find looks up game's current position and reports whether an
	// entry exists. On a hit, Score/MoveFromCache/Depth/CacheFlag read
	// that entry until the next Find call.
	Find(game Game) bool

	// Score returns the last found entry's stored score.
	Score() int

	// MoveFromCache returns the last found entry's stored move, or
	// NullMove if none was stored.
	MoveFromCache() Move

	// Depth returns the last found entry's stored search depth.
	Depth() int

	// CacheFlag returns the last found entry's bound classification.
	CacheFlag() Flag

	// Store records score/move/depth/flag for game's current position.
	Store(game Game, score int, move Move, depth int, flag Flag)

	// Discharge ticks the cache's age/epoch bookkeeping. Called once per
	// ComputeBestMove, before the root is searched.
	Discharge()

	// Resize adjusts the cache's target memory footprint in bytes.
	Resize(bytes int64)

	// Clear discards every stored entry.
	Clear()
}

// nullCache is the default Cache installed when none is configured. Every
// probe misses and every mutator is a no-op, which removes a per-node
// branch on a nilable interface from the search's hot path.
type nullCache struct{}

func (nullCache) Size() int64                       { return 0 }
func (nullCache) Find(Game) bool                    { return false }
func (nullCache) Score() int                        { return 0 }
func (nullCache) MoveFromCache() Move               { return NullMove }
func (nullCache) Depth() int                        { return 0 }
func (nullCache) CacheFlag() Flag                   { return FlagEmpty }
func (nullCache) Store(Game, int, Move, int, Flag)  {}
func (nullCache) Discharge()                        {}
func (nullCache) Resize(int64)                      {}
func (nullCache) Clear()                            {}

var _ Cache = nullCache{}
