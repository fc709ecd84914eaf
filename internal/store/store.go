// Package store is the terminal's local persistence layer: a single-file
// key-value store holding JSON blobs, the server-side analog of the
// dashboard's per-origin browser storage. Every mutation rewrites the whole
// blob under its key; there is no schema versioning and no partial write.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/esabling477/sura-trading/pkg/logger"
)

const (
	BucketUsers     = "users"
	BucketSessions  = "sessions"
	BucketHoldings  = "holdings"
	BucketWallets   = "wallets"
	BucketTransfers = "transfers"
)

var buckets = []string{
	BucketUsers,
	BucketSessions,
	BucketHoldings,
	BucketWallets,
	BucketTransfers,
}

type Store struct {
	db *bolt.DB
}

// Open opens (creating if needed) the store file and ensures all buckets exist.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put serializes v as JSON and writes it under bucket/key, replacing any
// previous value. Last writer wins.
func (s *Store) Put(bucket, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s/%s: %w", bucket, key, err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Put([]byte(key), data)
	})
}

// Get reads the blob under bucket/key into out. A missing key returns
// (false, nil). A blob that fails to parse is discarded and reported as
// absent, so callers reinitialize from defaults instead of crashing on
// corrupt local state.
func (s *Store) Get(bucket, key string, out any) (bool, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket([]byte(bucket)).Get([]byte(key)); v != nil {
			raw = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		logger.Warn().
			Str("bucket", bucket).
			Str("key", key).
			Err(err).
			Msg("discarding corrupt blob")
		if delErr := s.Delete(bucket, key); delErr != nil {
			return false, delErr
		}
		return false, nil
	}

	return true, nil
}

// Delete removes the blob under bucket/key. Deleting a missing key is a no-op.
func (s *Store) Delete(bucket, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).Delete([]byte(key))
	})
}

// ForEach calls fn for every key in bucket. fn receives the raw JSON value.
func (s *Store) ForEach(bucket string, fn func(key string, raw []byte) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucket)).ForEach(func(k, v []byte) error {
			return fn(string(k), v)
		})
	})
}

// Count returns the number of keys in bucket.
func (s *Store) Count(bucket string) (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket([]byte(bucket)).Stats().KeyN
		return nil
	})
	return n, err
}
