package engine

import "sync"

// fakeCache is a minimal, correct Cache used to exercise reorderByHashMove,
// GetPonderMove, and the search's own probe/store calls without pulling in
// internal/ttcache (which has its own dedicated test suite).
type fakeCacheEntry struct {
	move  Move
	score int
	depth int
	flag  Flag
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[uint64]fakeCacheEntry
	found   fakeCacheEntry
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[uint64]fakeCacheEntry)}
}

func (c *fakeCache) seed(hash uint64, e fakeCacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[hash] = e
}

func (c *fakeCache) Size() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return int64(len(c.entries))
}

func (c *fakeCache) Find(g Game) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[g.Hash()]
	if ok {
		c.found = e
	}
	return ok
}

func (c *fakeCache) Score() int          { return c.found.score }
func (c *fakeCache) MoveFromCache() Move { return c.found.move }
func (c *fakeCache) Depth() int          { return c.found.depth }
func (c *fakeCache) CacheFlag() Flag     { return c.found.flag }

func (c *fakeCache) Store(g Game, score int, move Move, depth int, flag Flag) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[g.Hash()] = fakeCacheEntry{move: move, score: score, depth: depth, flag: flag}
}

func (c *fakeCache) Discharge() {}
func (c *fakeCache) Resize(int64) {}

func (c *fakeCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[uint64]fakeCacheEntry)
}

var _ Cache = (*fakeCache)(nil)
