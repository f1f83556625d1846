package repository

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var stateBucket = []byte("AppState")

// BoltStateStore keeps app state in an embedded bbolt file
type BoltStateStore struct {
	db *bbolt.DB
}

// OpenBoltStateStore opens (or creates) the bolt file at path
func OpenBoltStateStore(path string) (*BoltStateStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create bolt directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt store: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(stateBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bolt bucket: %w", err)
	}

	return &BoltStateStore{db: db}, nil
}

// Close releases the file lock
func (s *BoltStateStore) Close() error {
	return s.db.Close()
}

func (s *BoltStateStore) Get(_ context.Context, key string) (string, bool, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		if v := tx.Bucket(stateBucket).Get([]byte(key)); v != nil {
			value = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to get state %q: %w", key, err)
	}
	if value == nil {
		return "", false, nil
	}
	return string(value), true, nil
}

func (s *BoltStateStore) Set(_ context.Context, key, value string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(stateBucket).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to set state %q: %w", key, err)
	}
	return nil
}

func (s *BoltStateStore) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(stateBucket).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("failed to delete state %q: %w", key, err)
	}
	return nil
}

func (s *BoltStateStore) DeletePrefix(_ context.Context, prefix string) error {
	p := []byte(prefix)
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(stateBucket)
		var keys [][]byte
		c := b.Cursor()
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete state prefix %q: %w", prefix, err)
	}
	return nil
}

func (s *BoltStateStore) List(_ context.Context, prefix string) (map[string]string, error) {
	p := []byte(prefix)
	out := make(map[string]string)
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(stateBucket).Cursor()
		for k, v := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, v = c.Next() {
			out[string(k)] = string(v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list state: %w", err)
	}
	return out, nil
}
