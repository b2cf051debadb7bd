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
	"testing"

	"github.com/borealis-network/borealis/borealis"
)

func TestAnalyzeJumpDests_FindsJumpDests(t *testing.T) {
	code := []byte{
		byte(JUMPDEST),
		byte(ADD),
		byte(JUMPDEST),
	}
	dests := analyzeJumpDests(code)

	if !dests.isValid(0) {
		t.Errorf("position 0 should be a valid jump destination")
	}
	if dests.isValid(1) {
		t.Errorf("position 1 should not be a valid jump destination")
	}
	if !dests.isValid(2) {
		t.Errorf("position 2 should be a valid jump destination")
	}
}

func TestAnalyzeJumpDests_SkipsPushImmediates(t *testing.T) {
	// The 0x5B byte inside the PUSH2 immediate is data, not a JUMPDEST.
	code := []byte{
		byte(PUSH2), byte(JUMPDEST), byte(JUMPDEST),
		byte(JUMPDEST),
	}
	dests := analyzeJumpDests(code)

	if dests.isValid(1) || dests.isValid(2) {
		t.Errorf("push immediates must not be jump destinations")
	}
	if !dests.isValid(3) {
		t.Errorf("position 3 should be a valid jump destination")
	}
}

func TestAnalyzeJumpDests_TruncatedPushAtEndOfCode(t *testing.T) {
	code := []byte{byte(PUSH32), byte(JUMPDEST)}
	dests := analyzeJumpDests(code)
	if dests.isValid(1) {
		t.Errorf("truncated push immediate must not be a jump destination")
	}
}

func TestJumpDests_PositionsBeyondCodeAreInvalid(t *testing.T) {
	dests := analyzeJumpDests([]byte{byte(JUMPDEST)})
	for _, position := range []uint64{1, 64, 1 << 32, 1 << 63} {
		if dests.isValid(position) {
			t.Errorf("position %d beyond the code should be invalid", position)
		}
	}
}

func TestAnalysisCache_ResultsAreReusedByCodeHash(t *testing.T) {
	cache := newAnalysisCache(16)
	hash := borealis.Hash{1}

	first := cache.get(hash, []byte{byte(JUMPDEST)})
	if !first.isValid(0) {
		t.Fatalf("unexpected analysis of the initial code")
	}

	// The same hash serves the cached analysis, whatever code is passed.
	second := cache.get(hash, []byte{byte(STOP)})
	if !second.isValid(0) {
		t.Errorf("cached analysis was not reused")
	}
}

func TestAnalysisCache_ZeroHashIsNotCached(t *testing.T) {
	cache := newAnalysisCache(16)

	first := cache.get(borealis.Hash{}, []byte{byte(JUMPDEST)})
	if !first.isValid(0) {
		t.Fatalf("unexpected analysis of the initial code")
	}

	second := cache.get(borealis.Hash{}, []byte{byte(STOP)})
	if second.isValid(0) {
		t.Errorf("analysis without a code hash must not be cached")
	}
}
