// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package memstore provides an in-memory implementation of the host chain
// interfaces. It backs unit tests and local experimentation; nothing in it
// is safe for concurrent use.
package memstore

import (
	"bytes"
	"sort"
	"strings"

	"github.com/borealis-network/borealis/borealis"
)

type Store struct {
	data map[string][]byte

	predecessor borealis.AccountID
	current     borealis.AccountID
	height      uint64
	timestamp   uint64
	blockHashes map[uint64]borealis.Hash

	computeCharged borealis.HostGas
	scheduled      []borealis.CrossContractCall
}

func New() *Store {
	return &Store{
		data:        map[string][]byte{},
		blockHashes: map[uint64]borealis.Hash{},
	}
}

func (s *Store) Get(key []byte) []byte {
	value, found := s.data[string(key)]
	if !found {
		return nil
	}
	return bytes.Clone(value)
}

func (s *Store) Set(key, value []byte) {
	s.data[string(key)] = bytes.Clone(value)
}

func (s *Store) Delete(key []byte) {
	delete(s.data, string(key))
}

func (s *Store) DeletePrefix(prefix []byte) {
	for key := range s.data {
		if strings.HasPrefix(key, string(prefix)) {
			delete(s.data, key)
		}
	}
}

// Keys returns all stored keys in lexicographic order.
func (s *Store) Keys() [][]byte {
	keys := make([][]byte, 0, len(s.data))
	for key := range s.data {
		keys = append(keys, []byte(key))
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i], keys[j]) < 0
	})
	return keys
}

// Size returns the number of stored entries.
func (s *Store) Size() int {
	return len(s.data)
}

func (s *Store) PredecessorAccountID() borealis.AccountID {
	return s.predecessor
}

func (s *Store) CurrentAccountID() borealis.AccountID {
	return s.current
}

func (s *Store) BlockHeight() uint64 {
	return s.height
}

func (s *Store) BlockTimestamp() uint64 {
	return s.timestamp
}

func (s *Store) BlockHash(height uint64) borealis.Hash {
	return s.blockHashes[height]
}

func (s *Store) ChargeCompute(amount borealis.HostGas) {
	s.computeCharged += amount
}

func (s *Store) Schedule(call borealis.CrossContractCall) {
	s.scheduled = append(s.scheduled, call)
}

// SetPredecessor configures the host account seen as the caller.
func (s *Store) SetPredecessor(id borealis.AccountID) {
	s.predecessor = id
}

// SetCurrent configures the host account the engine runs as.
func (s *Store) SetCurrent(id borealis.AccountID) {
	s.current = id
}

// SetBlock configures the visible block height and timestamp.
func (s *Store) SetBlock(height, timestamp uint64) {
	s.height = height
	s.timestamp = timestamp
}

// SetBlockHash registers the hash reported for the given height.
func (s *Store) SetBlockHash(height uint64, hash borealis.Hash) {
	s.blockHashes[height] = hash
}

// ComputeCharged reports the total host compute charged so far.
func (s *Store) ComputeCharged() borealis.HostGas {
	return s.computeCharged
}

// Scheduled returns the cross-contract calls scheduled so far.
func (s *Store) Scheduled() []borealis.CrossContractCall {
	return s.scheduled
}
