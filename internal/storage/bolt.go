// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage persists small pieces of client state in bbolt.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

// Bucket holds every state key.
const Bucket = "state"

// DefaultFileName is the state file name inside the config directory.
const DefaultFileName = "state.db"

// openTimeout bounds how long Open waits for another process's file lock.
const openTimeout = 2 * time.Second

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("state store is closed")

// =============================================================================
// BOLT STORE
// =============================================================================

// BoltStore is a string key/value store backed by a single bbolt bucket.
// Every Put is committed and fsynced before it returns.
type BoltStore struct {
	db *bbolt.DB
}

// Open opens (creating if necessary) the state file at path.
func Open(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open state file %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(Bucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket %s: %w", Bucket, err)
	}

	return &BoltStore{db: db}, nil
}

// Get returns the value stored under key. ok is false when the key is absent.
func (s *BoltStore) Get(key string) (value string, ok bool, err error) {
	if s.db == nil {
		return "", false, ErrClosed
	}
	err = s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(Bucket))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			// v is only valid inside the transaction
			value = string(v)
			ok = true
		}
		return nil
	})
	return value, ok, err
}

// Put stores value under key durably.
func (s *BoltStore) Put(key, value string) error {
	if s.db == nil {
		return ErrClosed
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(Bucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
}

// Path returns the file backing the store.
func (s *BoltStore) Path() string {
	if s.db == nil {
		return ""
	}
	return s.db.Path()
}

// Close releases the file lock.
func (s *BoltStore) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
