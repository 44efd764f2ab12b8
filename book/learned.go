package book

import (
	"encoding/binary"
	"errors"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"goosecore/board"
)

// LearnedStore is an optional persistent book the engine can write to as it
// plays, keyed by Zobrist hash and accumulating a weight per move the way
// the Polyglot weight field does, backed by an embedded Badger KV store.
// A Book works without one; LearnedStore only extends it.
type LearnedStore struct {
	db *badger.DB
}

// OpenLearnedStore opens (creating if absent) a Badger database at dir.
func OpenLearnedStore(dir string) (*LearnedStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &LearnedStore{db: db}, nil
}

// Close releases the underlying database.
func (s *LearnedStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// learnedKey packs the Zobrist hash and move into a 10-byte Badger key so every
// (position, move) pair the engine has seen gets its own weight counter.
func learnedKey(hash uint64, m board.Move) []byte {
	buf := make([]byte, 10)
	binary.BigEndian.PutUint64(buf[0:8], hash)
	binary.BigEndian.PutUint16(buf[8:10], uint16(m))
	return buf
}

// RecordResult bumps m's accumulated weight for the position at hash by
// delta (positive after a win, negative after a loss, the caller decides
// the scale), clamped to fit in a uint16 weight the same way Polyglot
// weights are.
func (s *LearnedStore) RecordResult(hash uint64, m board.Move, delta int) error {
	if s == nil || s.db == nil {
		return nil
	}
	key := learnedKey(hash, m)
	return s.db.Update(func(txn *badger.Txn) error {
		var weight int
		item, err := txn.Get(key)
		switch {
		case err == nil:
			err = item.Value(func(val []byte) error {
				weight = int(binary.BigEndian.Uint16(val))
				return nil
			})
			if err != nil {
				return err
			}
		case errors.Is(err, badger.ErrKeyNotFound):
			weight = 0
		default:
			return err
		}

		weight += delta
		if weight < 0 {
			weight = 0
		}
		if weight > 0xFFFF {
			weight = 0xFFFF
		}
		var val [2]byte
		binary.BigEndian.PutUint16(val[:], uint16(weight))
		return txn.Set(key, val[:])
	})
}

// ProbeAll returns every learned move recorded for hash, sorted by
// descending weight, by scanning the key prefix for that hash.
func (s *LearnedStore) ProbeAll(hash uint64) ([]Entry, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	prefix := make([]byte, 8)
	binary.BigEndian.PutUint64(prefix, hash)

	var entries []Entry
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			k := item.Key()
			m := board.Move(binary.BigEndian.Uint16(k[8:10]))
			err := item.Value(func(val []byte) error {
				entries = append(entries, Entry{Move: m, Weight: binary.BigEndian.Uint16(val)})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].Weight > entries[j].Weight })
	return entries, err
}
