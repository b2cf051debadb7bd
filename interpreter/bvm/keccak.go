// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package bvm

import (
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/borealis-network/borealis/borealis"
)

type keccakState interface {
	hash.Hash
	Read([]byte) (int, error)
}

var keccakPool = sync.Pool{
	New: func() interface{} {
		return sha3.NewLegacyKeccak256().(keccakState)
	},
}

// keccak256 computes the keccak hash of the given data, recycling hasher
// states to avoid per-call allocations.
func keccak256(data []byte) borealis.Hash {
	hasher := keccakPool.Get().(keccakState)
	defer keccakPool.Put(hasher)
	hasher.Reset()
	hasher.Write(data)
	var result borealis.Hash
	hasher.Read(result[:])
	return result
}
