package track

import (
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"seawatch/internal/marine"
)

// badger key layout: track/<vessel-id> -> JSON array of entries.
var badgerPrefix = []byte("track/")

// BadgerStore persists per-vessel histories in a Badger key/value store.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a Badger database at dir.
func OpenBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger track store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// NewBadgerStore wraps an already opened Badger database.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Load reads all vessel histories.
func (b *BadgerStore) Load() (map[string][]marine.PositionEntry, error) {
	out := make(map[string][]marine.PositionEntry)
	err := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = badgerPrefix
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			id := string(item.Key()[len(badgerPrefix):])
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			var entries []marine.PositionEntry
			if err := json.Unmarshal(val, &entries); err != nil {
				return fmt.Errorf("decode history for %s: %w", id, err)
			}
			out[id] = entries
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Save replaces all stored histories with data. Vessels absent from data
// are removed so that dropped tracks do not resurrect on the next load.
func (b *BadgerStore) Save(data map[string][]marine.PositionEntry) error {
	existing, err := b.Load()
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		for id := range existing {
			if _, ok := data[id]; !ok {
				if err := txn.Delete([]byte(string(badgerPrefix) + id)); err != nil {
					return err
				}
			}
		}
		for id, entries := range data {
			buf, err := json.Marshal(entries)
			if err != nil {
				return fmt.Errorf("encode history for %s: %w", id, err)
			}
			if err := txn.Set([]byte(string(badgerPrefix)+id), buf); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the underlying database.
func (b *BadgerStore) Close() error {
	return b.db.Close()
}
