package ttcache

import (
	"encoding/gob"
	"fmt"
	"os"
)

// snapshot is the gob-encoded on-disk representation of a Cache. Loading
// refuses a snapshot whose shape doesn't match the target Cache: a
// mismatched slot count or associativity would scatter entries into the
// wrong buckets.
type snapshot struct {
	Slots   uint64
	Buckets int
	Entries []entry
}

// SaveFile writes c's contents to path, following the teacher's
// snapshot-then-gob-encode pattern for its own transposition table.
func (c *Cache) SaveFile(path string) error {
	c.lockAll()
	entries := make([]entry, len(c.entries))
	copy(entries, c.entries)
	slots := c.mask + 1
	buckets := c.buckets
	c.unlockAll()

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ttcache: create %s: %w", path, err)
	}
	defer file.Close()

	snap := snapshot{Slots: slots, Buckets: buckets, Entries: entries}
	if err := gob.NewEncoder(file).Encode(&snap); err != nil {
		return fmt.Errorf("ttcache: encode %s: %w", path, err)
	}
	return nil
}

// LoadFile replaces c's contents with the snapshot stored at path. It
// returns an error, and leaves c unchanged, if the file is missing,
// corrupt, or was written by a differently shaped Cache.
func (c *Cache) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("ttcache: open %s: %w", path, err)
	}
	defer file.Close()

	var snap snapshot
	if err := gob.NewDecoder(file).Decode(&snap); err != nil {
		return fmt.Errorf("ttcache: decode %s: %w", path, err)
	}

	c.lockAll()
	defer c.unlockAll()
	wantSlots := c.mask + 1
	if snap.Slots != wantSlots || snap.Buckets != c.buckets {
		return fmt.Errorf("ttcache: snapshot shape %d/%d does not match cache shape %d/%d",
			snap.Slots, snap.Buckets, wantSlots, c.buckets)
	}
	copy(c.entries, snap.Entries)
	return nil
}
