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
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/borealis-network/borealis/borealis"
)

// jumpDests marks the positions in a code that are valid JUMP targets: the
// positions holding a JUMPDEST instruction that is not part of the immediate
// data of a preceding PUSH.
type jumpDests []uint64

func analyzeJumpDests(code []byte) jumpDests {
	dests := make(jumpDests, (len(code)+63)/64)
	for i := 0; i < len(code); i++ {
		op := OpCode(code[i])
		if op == JUMPDEST {
			dests[i/64] |= uint64(1) << (i % 64)
		} else if op.isPush() {
			i += op.pushSize()
		}
	}
	return dests
}

func (d jumpDests) isValid(position uint64) bool {
	index := position / 64
	if index >= uint64(len(d)) {
		return false
	}
	return d[index]&(uint64(1)<<(position%64)) != 0
}

// analysisCache memoizes the jump destination analysis of contract codes by
// their hash. Contracts are executed far more often than they are deployed,
// so re-running the analysis on every call would be wasted work.
type analysisCache struct {
	cache *lru.Cache[borealis.Hash, jumpDests]
}

func newAnalysisCache(capacity int) *analysisCache {
	cache, err := lru.New[borealis.Hash, jumpDests](capacity)
	if err != nil {
		panic("cannot create analysis cache: " + err.Error())
	}
	return &analysisCache{cache: cache}
}

// get returns the jump destinations of the given code, computing and caching
// them when absent. Codes with a zero hash are analyzed but not retained,
// since the zero hash marks codes with an unknown identity.
func (a *analysisCache) get(codeHash borealis.Hash, code []byte) jumpDests {
	if codeHash == (borealis.Hash{}) {
		return analyzeJumpDests(code)
	}
	if dests, found := a.cache.Get(codeHash); found {
		return dests
	}
	dests := analyzeJumpDests(code)
	a.cache.Add(codeHash, dests)
	return dests
}
