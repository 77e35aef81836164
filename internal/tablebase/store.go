// Package tablebase implements a read-only endgame tablebase for
// engine.Leaves, backed by an embedded Badger key-value store. The
// open/view/update idiom is grounded on the pack's own
// hailam-chessplay/internal/storage package, generalized from a small
// fixed set of JSON blobs to a large table of packed score records keyed
// by position hash.
package tablebase

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"

	"github.com/cryptokrok/mancala.oware-AI-engine/internal/engine"
)

// Store is a concrete engine.Leaves backed by an on-disk Badger database.
// A single Store must not be probed by two searches at once, for the same
// reason as ttcache.Cache: Find populates a scratch field that the
// following Score/CacheFlag calls read.
type Store struct {
	db     *badger.DB
	logger *log.Logger
	found  record
}

type record struct {
	score int32
	flag  engine.Flag
}

// Open opens the Badger database rooted at path. If path already holds a
// database (its MANIFEST file exists), it is opened read-only, matching
// the way a running engine only ever consults a tablebase someone else
// built; a path with no existing database is opened read-write instead, so
// internal/tablebase/build can populate it from scratch.
func Open(path string) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	if _, err := os.Stat(filepath.Join(path, "MANIFEST")); err == nil {
		opts.ReadOnly = true
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("tablebase: open %s: %w", path, err)
	}
	return &Store{
		db:     db,
		logger: log.New(os.Stderr, "tablebase: ", log.LstdFlags),
	}, nil
}

// SetLogger replaces the Store's logger. A nil logger discards output.
func (s *Store) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	s.logger = l
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Find implements engine.Leaves. Any Badger error — including corruption or
// an I/O failure — is logged and treated as a miss rather than propagated,
// so a damaged or absent tablebase degrades the engine to searching the
// position itself instead of failing the game.
func (s *Store) Find(game engine.Game) bool {
	key := encodeKey(game.Hash())
	var hit bool

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			score, flag, err := decodeValue(val)
			if err != nil {
				return err
			}
			s.found = record{score: score, flag: flag}
			hit = true
			return nil
		})
	})
	if err != nil {
		s.logger.Printf("lookup failed, degrading to a miss: %v", err)
		return false
	}
	return hit
}

// Score implements engine.Leaves.
func (s *Store) Score() int { return int(s.found.score) }

// CacheFlag implements engine.Leaves.
func (s *Store) CacheFlag() engine.Flag { return s.found.flag }

// Put records an exact score for hash. It is used only by the offline
// generator in internal/tablebase/build; the search-time Store never
// writes.
func (s *Store) Put(hash uint64, score int, flag engine.Flag) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(encodeKey(hash), encodeValue(clampToInt32(score), flag))
	})
}

// NewWriteBatch exposes Badger's batched writer for bulk-loading a
// generated tablebase far faster than one transaction per entry.
func (s *Store) NewWriteBatch() *badger.WriteBatch { return s.db.NewWriteBatch() }

// EncodeEntry packs score/flag into the value format used by Put and the
// write-batch path in internal/tablebase/build.
func EncodeEntry(score int, flag engine.Flag) []byte {
	return encodeValue(clampToInt32(score), flag)
}

// EncodeKey packs hash into the key format used throughout the store.
func EncodeKey(hash uint64) []byte { return encodeKey(hash) }

func encodeKey(hash uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, hash)
	return b
}

func encodeValue(score int32, flag engine.Flag) []byte {
	b := make([]byte, 5)
	binary.BigEndian.PutUint32(b[0:4], uint32(score))
	b[4] = byte(flag)
	return b
}

func decodeValue(b []byte) (int32, engine.Flag, error) {
	if len(b) != 5 {
		return 0, engine.FlagEmpty, fmt.Errorf("tablebase: corrupt record of length %d", len(b))
	}
	score := int32(binary.BigEndian.Uint32(b[0:4]))
	flag := engine.Flag(b[4])
	return score, flag, nil
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

var _ engine.Leaves = (*Store)(nil)
