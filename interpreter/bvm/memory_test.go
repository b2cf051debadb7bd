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
	"bytes"
	"math"
	"testing"

	"github.com/borealis-network/borealis/borealis"
	"github.com/holiman/uint256"
)

func TestMemory_ExpansionCosts(t *testing.T) {
	tests := []struct {
		size uint64
		cost borealis.Gas
	}{
		{0, 0},
		{1, 3},
		{32, 3},
		{33, 6},
		{64, 6},
		{1024, 98},     // 32 words: 32*32/512 + 3*32
		{32768, 5120},  // 1024 words: 1024*1024/512 + 3*1024
		{maxMemoryExpansionSize + 1, math.MaxInt64},
		{math.MaxUint64, math.MaxInt64},
	}

	for _, test := range tests {
		m := newMemory()
		if got := m.getExpansionCosts(test.size); got != test.cost {
			t.Errorf("unexpected expansion cost for size %d, wanted %d, got %d", test.size, test.cost, got)
		}
	}
}

func TestMemory_ExpansionCostsAreChargedOnlyOnce(t *testing.T) {
	m := newMemory()
	ctxt := &context{gas: 100}

	if err := m.expandMemory(0, 64, ctxt); err != nil {
		t.Fatalf("failed to expand memory: %v", err)
	}
	if want, got := borealis.Gas(100-6), ctxt.gas; want != got {
		t.Fatalf("unexpected gas after expansion, wanted %d, got %d", want, got)
	}

	// A second expansion to the same size is free.
	if err := m.expandMemory(0, 64, ctxt); err != nil {
		t.Fatalf("failed to expand memory: %v", err)
	}
	if want, got := borealis.Gas(100-6), ctxt.gas; want != got {
		t.Errorf("unexpected gas after re-expansion, wanted %d, got %d", want, got)
	}

	// Growing further only charges the difference.
	if err := m.expandMemory(0, 96, ctxt); err != nil {
		t.Fatalf("failed to expand memory: %v", err)
	}
	if want, got := borealis.Gas(100-9), ctxt.gas; want != got {
		t.Errorf("unexpected gas after growth, wanted %d, got %d", want, got)
	}
}

func TestMemory_ZeroSizeExpansionIsForFree(t *testing.T) {
	m := newMemory()
	ctxt := &context{gas: 0}
	if err := m.expandMemory(math.MaxUint64, 0, ctxt); err != nil {
		t.Errorf("zero-size expansion failed: %v", err)
	}
	if m.length() != 0 {
		t.Errorf("zero-size expansion grew the memory to %d bytes", m.length())
	}
}

func TestMemory_ExpansionOffsetOverflowIsDetected(t *testing.T) {
	m := newMemory()
	ctxt := &context{gas: 100}
	if err := m.expandMemory(math.MaxUint64, 32, ctxt); err != errGasUintOverflow {
		t.Errorf("unexpected error, wanted %v, got %v", errGasUintOverflow, err)
	}
}

func TestMemory_ExpansionBeyondGasLimitFails(t *testing.T) {
	m := newMemory()
	ctxt := &context{gas: 5}
	if err := m.expandMemory(0, 64, ctxt); err != errOutOfGas {
		t.Errorf("unexpected error, wanted %v, got %v", errOutOfGas, err)
	}
	if ctxt.gas != 0 {
		t.Errorf("failed expansion should consume all gas, %d left", ctxt.gas)
	}
}

func TestMemory_GrowsInFullWords(t *testing.T) {
	m := newMemory()
	ctxt := &context{gas: 100}
	if err := m.expandMemory(0, 1, ctxt); err != nil {
		t.Fatalf("failed to expand memory: %v", err)
	}
	if want, got := uint64(32), m.length(); want != got {
		t.Errorf("unexpected memory size, wanted %d, got %d", want, got)
	}
}

func TestMemory_SetAndGetSlice(t *testing.T) {
	m := newMemory()
	ctxt := &context{gas: 100}

	data := []byte{1, 2, 3, 4}
	if err := m.set(30, data, ctxt); err != nil {
		t.Fatalf("failed to set memory: %v", err)
	}
	got, err := m.getSlice(30, 4, ctxt)
	if err != nil {
		t.Fatalf("failed to read memory: %v", err)
	}
	if !bytes.Equal(data, got) {
		t.Errorf("unexpected data, wanted %x, got %x", data, got)
	}
}

func TestMemory_WordRoundTrip(t *testing.T) {
	m := newMemory()
	ctxt := &context{gas: 100}

	value := uint256.NewInt(0).SetBytes([]byte{0xde, 0xad, 0xbe, 0xef})
	if err := m.setWord(32, value, ctxt); err != nil {
		t.Fatalf("failed to write word: %v", err)
	}

	restored := new(uint256.Int)
	if err := m.readWord(32, restored, ctxt); err != nil {
		t.Fatalf("failed to read word: %v", err)
	}
	if value.Cmp(restored) != 0 {
		t.Errorf("unexpected word, wanted %v, got %v", value, restored)
	}
}

func TestMemory_ReadBeyondSizeReturnsZeros(t *testing.T) {
	m := newMemory()
	ctxt := &context{gas: 100}

	got, err := m.getSlice(0, 32, ctxt)
	if err != nil {
		t.Fatalf("failed to read fresh memory: %v", err)
	}
	if !bytes.Equal(got, make([]byte, 32)) {
		t.Errorf("fresh memory is not zero-initialized: %x", got)
	}
}
