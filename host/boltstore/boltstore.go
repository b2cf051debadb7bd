// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package boltstore persists the host key-value store in a bolt database
// file. It backs standalone deployments and durability tests; hosted
// deployments use the storage provided by the surrounding chain runtime.
package boltstore

import (
	"bytes"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/borealis-network/borealis/borealis"
)

var stateBucket = []byte("state")

// Store is a bolt-backed host store. Storage access happens inside Update
// and View transactions; the store itself only manages the database handle.
type Store struct {
	db *bolt.DB
}

func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(stateBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize state database: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Update runs the given function with write access to the store. All
// modifications are committed atomically when the function returns without
// an error, and rolled back otherwise.
func (s *Store) Update(fn func(storage borealis.HostStorage) error) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		storage := &bucketStorage{bucket: tx.Bucket(stateBucket)}
		if err := fn(storage); err != nil {
			return err
		}
		return storage.err
	})
}

// View runs the given function with read-only access to the store. Write
// attempts fail the transaction.
func (s *Store) View(fn func(storage borealis.HostStorage) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		storage := &bucketStorage{bucket: tx.Bucket(stateBucket)}
		if err := fn(storage); err != nil {
			return err
		}
		return storage.err
	})
}

// bucketStorage adapts one bolt bucket to the host storage interface. The
// interface reports no per-operation errors; failures are collected and
// surfaced when the enclosing transaction ends.
type bucketStorage struct {
	bucket *bolt.Bucket
	err    error
}

func (s *bucketStorage) Get(key []byte) []byte {
	// Values returned by bolt are only valid within the transaction.
	return bytes.Clone(s.bucket.Get(key))
}

func (s *bucketStorage) Set(key, value []byte) {
	s.record(s.bucket.Put(key, bytes.Clone(value)))
}

func (s *bucketStorage) Delete(key []byte) {
	s.record(s.bucket.Delete(key))
}

func (s *bucketStorage) DeletePrefix(prefix []byte) {
	cursor := s.bucket.Cursor()
	for key, _ := cursor.Seek(prefix); key != nil && bytes.HasPrefix(key, prefix); key, _ = cursor.Next() {
		if err := cursor.Delete(); err != nil {
			s.record(err)
			return
		}
	}
}

func (s *bucketStorage) record(err error) {
	if s.err == nil {
		s.err = err
	}
}
