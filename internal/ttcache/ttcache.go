// Package ttcache implements a generation-aware, set-associative
// transposition table for engine.Cache. Its bucket layout, striped
// locking and replacement policy follow the teacher's own
// TranspositionTable, generalized from a fixed-size board key to any
// engine.Game hash.
package ttcache

import (
	"sync"
	"sync/atomic"

	"github.com/cryptokrok/mancala.oware-AI-engine/internal/engine"
)

const veryOldGenerations = 8

// approxEntrySize estimates an entry's footprint for Resize's byte-to-slot
// conversion. It need not be exact: Resize only has to land in the right
// order of magnitude.
const approxEntrySize = 40

type entry struct {
	Key         uint64
	Depth       int
	Score       int32
	Flag        engine.Flag
	Move        engine.Move
	Hits        uint32
	GenWritten  uint32
	GenLastUsed uint32
	Valid       bool
}

// Cache is a concrete engine.Cache backed by an in-memory, set-associative
// hash table. It is safe for concurrent Find/Store from multiple
// goroutines, but the Find-then-{Score,MoveFromCache,Depth,CacheFlag}
// cursor is not: a single Cache value must not be probed by two searches
// running at once, mirroring how an engine.Engine already serializes its
// own Cache access under one mutex.
type Cache struct {
	mask        uint64
	buckets     int
	entries     []entry
	stripeLocks []sync.RWMutex
	stripeMask  uint64
	gen         atomic.Uint32

	found entry
}

// New returns a Cache sized to hold at least slots entries, arranged into
// buckets-way associative sets. slots is rounded up to a power of two.
func New(slots uint64, buckets int) *Cache {
	if buckets <= 0 {
		buckets = 2
	}
	if slots < 1 {
		slots = 1
	}
	slots = nextPowerOfTwo(slots)

	maxStripes := 64
	if int(slots) < maxStripes {
		maxStripes = int(slots)
	}
	stripes := 1
	for stripes*2 <= maxStripes {
		stripes *= 2
	}

	c := &Cache{
		mask:        slots - 1,
		buckets:     buckets,
		entries:     make([]entry, int(slots)*buckets),
		stripeLocks: make([]sync.RWMutex, stripes),
		stripeMask:  uint64(stripes - 1),
	}
	c.gen.Store(1)
	return c
}

func (c *Cache) currentGeneration() uint32 {
	gen := c.gen.Load()
	if gen != 0 {
		return gen
	}
	if c.gen.CompareAndSwap(0, 1) {
		return 1
	}
	return c.gen.Load()
}

func (c *Cache) bucketStart(key uint64) int {
	return int(key&c.mask) * c.buckets
}

func (c *Cache) stripeFor(key uint64) int {
	return int((key & c.mask) & c.stripeMask)
}

// Size reports the cache's current footprint in bytes.
func (c *Cache) Size() int64 {
	return int64(len(c.entries)) * approxEntrySize
}

// Find implements engine.Cache.
func (c *Cache) Find(game engine.Game) bool {
	key := game.Hash()
	stripe := c.stripeFor(key)
	c.stripeLocks[stripe].Lock()
	defer c.stripeLocks[stripe].Unlock()

	gen := c.currentGeneration()
	start := c.bucketStart(key)
	for i := 0; i < c.buckets; i++ {
		idx := start + i
		e := c.entries[idx]
		if !e.Valid || e.Key != key {
			continue
		}
		e.Hits++
		e.GenLastUsed = gen
		c.entries[idx] = e
		c.found = e
		return true
	}
	return false
}

// Score implements engine.Cache.
func (c *Cache) Score() int { return int(c.found.Score) }

// MoveFromCache implements engine.Cache.
func (c *Cache) MoveFromCache() engine.Move {
	if !c.found.Valid {
		return engine.NullMove
	}
	return c.found.Move
}

// Depth implements engine.Cache.
func (c *Cache) Depth() int { return c.found.Depth }

// CacheFlag implements engine.Cache.
func (c *Cache) CacheFlag() engine.Flag { return c.found.Flag }

// Store implements engine.Cache. It follows the teacher's replacement
// policy: an entry already holding the same key is overwritten only if
// replacementClass allows it; otherwise an empty slot is used; otherwise
// the replaceable entry with the lowest replacementClass, stalest first.
func (c *Cache) Store(game engine.Game, score int, move engine.Move, depth int, flag engine.Flag) {
	key := game.Hash()
	stripe := c.stripeFor(key)
	c.stripeLocks[stripe].Lock()
	defer c.stripeLocks[stripe].Unlock()

	gen := c.currentGeneration()
	start := c.bucketStart(key)
	packed := clampToInt32(score)

	for i := 0; i < c.buckets; i++ {
		idx := start + i
		e := c.entries[idx]
		if !e.Valid || e.Key != key {
			continue
		}
		if replacementClass(e, depth, flag, gen) == 0 {
			return
		}
		c.entries[idx] = entry{Key: key, Depth: depth, Score: packed, Flag: flag, Move: move, GenWritten: gen, GenLastUsed: gen, Valid: true}
		return
	}

	for i := 0; i < c.buckets; i++ {
		idx := start + i
		if c.entries[idx].Valid {
			continue
		}
		c.entries[idx] = entry{Key: key, Depth: depth, Score: packed, Flag: flag, Move: move, GenWritten: gen, GenLastUsed: gen, Valid: true}
		return
	}

	victim, victimClass, victimAge := -1, 0, uint32(0)
	for i := 0; i < c.buckets; i++ {
		idx := start + i
		e := c.entries[idx]
		class := replacementClass(e, depth, flag, gen)
		if class == 0 {
			continue
		}
		age := entryAge(gen, e)
		if victim == -1 || class < victimClass || (class == victimClass && age > victimAge) {
			victim, victimClass, victimAge = idx, class, age
		}
	}
	if victim == -1 {
		return
	}
	c.entries[victim] = entry{Key: key, Depth: depth, Score: packed, Flag: flag, Move: move, GenWritten: gen, GenLastUsed: gen, Valid: true}
}

// Discharge implements engine.Cache by advancing the generation counter,
// aging every previously stored entry by one step.
func (c *Cache) Discharge() {
	gen := c.gen.Add(1)
	if gen == 0 {
		c.gen.CompareAndSwap(0, 1)
	}
}

// Resize implements engine.Cache by rebuilding the table at approximately
// bytes capacity, discarding all existing entries.
func (c *Cache) Resize(bytes int64) {
	slots := uint64(1)
	if bytes > 0 {
		slots = uint64(bytes) / approxEntrySize / uint64(c.buckets)
	}
	rebuilt := New(slots, c.buckets)
	locked := c.stripeLocks
	c.lockAll()
	defer func() {
		for i := len(locked) - 1; i >= 0; i-- {
			locked[i].Unlock()
		}
	}()
	c.mask = rebuilt.mask
	c.entries = rebuilt.entries
	c.stripeLocks = rebuilt.stripeLocks
	c.stripeMask = rebuilt.stripeMask
	c.gen.Store(1)
}

// Clear implements engine.Cache.
func (c *Cache) Clear() {
	c.lockAll()
	defer c.unlockAll()
	for i := range c.entries {
		c.entries[i] = entry{}
	}
	c.gen.Store(1)
}

func (c *Cache) lockAll() {
	for i := range c.stripeLocks {
		c.stripeLocks[i].Lock()
	}
}

func (c *Cache) unlockAll() {
	for i := len(c.stripeLocks) - 1; i >= 0; i-- {
		c.stripeLocks[i].Unlock()
	}
}

// Count returns the number of valid entries currently stored, for
// diagnostics and the status API.
func (c *Cache) Count() int {
	for i := range c.stripeLocks {
		c.stripeLocks[i].RLock()
	}
	defer func() {
		for i := len(c.stripeLocks) - 1; i >= 0; i-- {
			c.stripeLocks[i].RUnlock()
		}
	}()
	n := 0
	for i := range c.entries {
		if c.entries[i].Valid {
			n++
		}
	}
	return n
}

func replacementClass(e entry, depth int, flag engine.Flag, gen uint32) int {
	if depth > e.Depth {
		return 1
	}
	if depth == e.Depth && flag == engine.FlagExact && e.Flag != engine.FlagExact {
		return 2
	}
	if depth == e.Depth && flag == e.Flag && entryAge(gen, e) >= veryOldGenerations {
		return 3
	}
	return 0
}

func entryAge(gen uint32, e entry) uint32 {
	last := e.GenLastUsed
	if last == 0 {
		last = e.GenWritten
	}
	return gen - last
}

func clampToInt32(v int) int32 {
	const maxInt32 = 1<<31 - 1
	const minInt32 = -(1 << 31)
	if v > maxInt32 {
		return maxInt32
	}
	if v < minInt32 {
		return minInt32
	}
	return int32(v)
}

func nextPowerOfTwo(v uint64) uint64 {
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	v++
	return v
}

var _ engine.Cache = (*Cache)(nil)
