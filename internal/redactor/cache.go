// Package redactor — cache.go
//
// ResultCache stores encoded pipeline results keyed by a digest of the
// input, so repeated submissions of the same text skip detection entirely.
//
// Two implementations are provided:
//   - memoryCache  — in-memory only, used in tests and when no path is configured.
//   - bboltCache   — embedded key-value store (bbolt), survives restarts.
//
// Both are wrapped by an S3-FIFO eviction layer (see s3fifo.go) that bounds
// the number of resident entries.
package redactor

import (
	"fmt"
	"log"
	"sync"

	bolt "go.etcd.io/bbolt"
)

// ResultCache is the encoded-result cache interface.
// All implementations must be safe for concurrent use.
type ResultCache interface {
	// Get returns the cached encoded result for key, if present.
	Get(key string) (value []byte, ok bool)

	// Set stores key → value. Overwrites any existing entry silently.
	Set(key string, value []byte)

	// Delete removes key. A no-op if the key is absent.
	Delete(key string)

	// Close releases any resources held by the cache (e.g. file handles).
	Close() error
}

// OpenCache returns a bounded ResultCache. With an empty path the cache is
// memory-only; otherwise entries are persisted in a bbolt database at path.
func OpenCache(path string, capacity int) (ResultCache, error) {
	var backing ResultCache
	if path == "" {
		backing = newMemoryCache()
	} else {
		var err error
		backing, err = newBboltCache(path)
		if err != nil {
			return nil, err
		}
	}
	return newS3FIFOCache(backing, capacity), nil
}

// --- memoryCache ---------------------------------------------------------

// memoryCache is a thread-safe in-memory ResultCache.
type memoryCache struct {
	mu    sync.RWMutex
	store map[string][]byte
}

func newMemoryCache() ResultCache {
	return &memoryCache{store: make(map[string][]byte)}
}

func (c *memoryCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	v, ok := c.store[key]
	c.mu.RUnlock()
	return v, ok
}

func (c *memoryCache) Set(key string, value []byte) {
	c.mu.Lock()
	c.store[key] = value
	c.mu.Unlock()
}

func (c *memoryCache) Delete(key string) {
	c.mu.Lock()
	delete(c.store, key)
	c.mu.Unlock()
}

func (c *memoryCache) Close() error { return nil }

// --- bboltCache ----------------------------------------------------------

const bboltBucket = "results"

// bboltCache is a ResultCache backed by an embedded bbolt database.
// The database file is created at the given path if it does not exist.
type bboltCache struct {
	db *bolt.DB
}

// newBboltCache opens (or creates) the bbolt database at path and ensures
// the bucket exists. Returns an error if the file cannot be opened.
func newBboltCache(path string) (ResultCache, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("open bbolt cache %q: %w", path, err)
	}

	// Ensure the bucket exists.
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bboltBucket))
		return err
	}); err != nil {
		db.Close() //nolint:errcheck // best-effort close on init failure
		return nil, fmt.Errorf("create bbolt bucket: %w", err)
	}

	log.Printf("[REDACTOR] result cache opened at %s", path)
	return &bboltCache{db: db}, nil
}

func (c *bboltCache) Get(key string) ([]byte, bool) {
	var value []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bboltBucket))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			// v is only valid inside the transaction; copy it out.
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		log.Printf("[REDACTOR] bbolt Get error: %v", err)
		return nil, false
	}
	return value, value != nil
}

func (c *bboltCache) Set(key string, value []byte) {
	if err := c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bboltBucket))
		if b == nil {
			return fmt.Errorf("bucket %q not found", bboltBucket)
		}
		return b.Put([]byte(key), value)
	}); err != nil {
		log.Printf("[REDACTOR] bbolt Set error: %v", err)
	}
}

func (c *bboltCache) Delete(key string) {
	if err := c.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bboltBucket))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	}); err != nil {
		log.Printf("[REDACTOR] bbolt Delete error: %v", err)
	}
}

func (c *bboltCache) Close() error {
	return c.db.Close()
}
