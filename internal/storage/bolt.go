package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/hammamikhairi/deliciously/internal/domain"
	"github.com/hammamikhairi/deliciously/internal/logger"
)

var _ domain.KeyValueStore = (*BoltKV)(nil)

var boltBucket = []byte("records")

// BoltKV keeps records in a single bbolt bucket. Every Set is its own
// transaction; there is no batching.
type BoltKV struct {
	db  *bolt.DB
	log *logger.Logger
}

// OpenBolt opens (or creates) the database file at path.
func OpenBolt(path string, log *logger.Logger) (*BoltKV, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}
	log.Debug("bolt store opened at %s", path)
	return &BoltKV{db: db, log: log}, nil
}

// Get returns the value stored under key.
func (s *BoltKV) Get(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(boltBucket).Get([]byte(key))
		if v == nil {
			return domain.ErrNotFound
		}
		// v is only valid inside the transaction.
		out = append([]byte(nil), v...)
		return nil
	})
	return out, err
}

// Set stores value under key.
func (s *BoltKV) Set(ctx context.Context, key string, value []byte) error {
	s.log.Debug("bolt set: %s (%d bytes)", key, len(value))
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Put([]byte(key), value)
	})
}

// Delete removes key.
func (s *BoltKV) Delete(ctx context.Context, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(boltBucket).Delete([]byte(key))
	})
}

// Close releases the database file lock.
func (s *BoltKV) Close() error { return s.db.Close() }
