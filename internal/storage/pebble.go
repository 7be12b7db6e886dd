package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/cockroachdb/pebble"
)

// Column family names
const (
	CFSummaries = "summaries"
	CFPsbts     = "psbts"
)

// Key prefixes emulating column families in a single keyspace
var cfPrefixes = map[string][]byte{
	CFSummaries: []byte("sum:"),
	CFPsbts:     []byte("raw:"),
}

// PebbleDB wraps the Pebble database
type PebbleDB struct {
	db *pebble.DB
}

// WriteBatch groups writes across column families into one atomic commit
type WriteBatch struct {
	batch *pebble.Batch
}

// Iterator walks the keys of one column family sharing a prefix
type Iterator struct {
	iter *pebble.Iterator
}

// NewPebbleDB opens (creating if needed) the database at path
func NewPebbleDB(path string) (*PebbleDB, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := pebble.Open(path, &pebble.Options{
		Cache:        pebble.NewCache(32 << 20),
		MaxOpenFiles: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	return &PebbleDB{db: db}, nil
}

// Close closes the database
func (p *PebbleDB) Close() error {
	return p.db.Close()
}

func prefixKey(cf string, key []byte) ([]byte, error) {
	prefix, ok := cfPrefixes[cf]
	if !ok {
		return nil, fmt.Errorf("column family not found: %s", cf)
	}
	out := make([]byte, 0, len(prefix)+len(key))
	return append(append(out, prefix...), key...), nil
}

// Get retrieves a value from the column family; a missing key yields nil, nil
func (p *PebbleDB) Get(cf string, key []byte) ([]byte, error) {
	prefixedKey, err := prefixKey(cf, key)
	if err != nil {
		return nil, err
	}

	value, closer, err := p.db.Get(prefixedKey)
	if err != nil {
		if errors.Is(err, pebble.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	defer closer.Close()

	// value is only valid until closer.Close()
	return bytes.Clone(value), nil
}

// NewBatch creates a new write batch
func (p *PebbleDB) NewBatch() *WriteBatch {
	return &WriteBatch{batch: p.db.NewBatch()}
}

// Put adds a write to the batch
func (b *WriteBatch) Put(cf string, key, value []byte) error {
	prefixedKey, err := prefixKey(cf, key)
	if err != nil {
		return err
	}
	return b.batch.Set(prefixedKey, value, nil)
}

// Delete adds a deletion to the batch
func (b *WriteBatch) Delete(cf string, key []byte) error {
	prefixedKey, err := prefixKey(cf, key)
	if err != nil {
		return err
	}
	return b.batch.Delete(prefixedKey, nil)
}

// Commit applies the batch durably
func (b *WriteBatch) Commit() error {
	return b.batch.Commit(pebble.Sync)
}

// Destroy releases the batch
func (b *WriteBatch) Destroy() {
	_ = b.batch.Close()
}

// NewPrefixIterator iterates over the keys of a column family starting with prefix
func (p *PebbleDB) NewPrefixIterator(cf string, prefix []byte) (*Iterator, error) {
	fullPrefix, err := prefixKey(cf, prefix)
	if err != nil {
		return nil, err
	}

	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: fullPrefix,
		UpperBound: prefixUpperBound(fullPrefix),
	})
	if err != nil {
		return nil, err
	}

	iter.First()
	return &Iterator{iter: iter}, nil
}

// prefixUpperBound returns the smallest key greater than every key with prefix
func prefixUpperBound(prefix []byte) []byte {
	upper := bytes.Clone(prefix)
	for i := len(upper) - 1; i >= 0; i-- {
		if upper[i] < 0xff {
			upper[i]++
			return upper[:i+1]
		}
	}
	return nil
}

// Valid reports whether the iterator is positioned at a key
func (i *Iterator) Valid() bool {
	return i.iter.Valid()
}

// Next advances the iterator
func (i *Iterator) Next() bool {
	return i.iter.Next()
}

// Value returns the current value, valid until the next call to Next
func (i *Iterator) Value() []byte {
	return i.iter.Value()
}

// Close closes the iterator
func (i *Iterator) Close() error {
	return i.iter.Close()
}
