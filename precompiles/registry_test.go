// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package precompiles

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"testing"

	"github.com/borealis-network/borealis/borealis"
)

func TestRegistry_ReservedAddressesAreKnown(t *testing.T) {
	registry := NewRegistry()
	for i := uint64(1); i <= 9; i++ {
		if !registry.IsPrecompile(addressOf(i)) {
			t.Errorf("address 0x%x should be reserved", i)
		}
	}
	for _, address := range []borealis.Address{
		DeriveAddressAddress, ScheduleCallAddress, PredecessorAddress,
	} {
		if !registry.IsPrecompile(address) {
			t.Errorf("bridge address %v should be reserved", address)
		}
	}
	for _, value := range []uint64{0x0, 0xA, 0xFF, 0x103} {
		if registry.IsPrecompile(addressOf(value)) {
			t.Errorf("address 0x%x should not be reserved", value)
		}
	}
}

func TestRegistry_RunsStandardPrecompiles(t *testing.T) {
	registry := NewRegistry()
	input := []byte("hello")

	// 0x2 is the SHA-256 precompile; its price is 60 + 12 per word.
	output, gasLeft, err := registry.Run(addressOf(0x2), &Env{}, input, 100)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := sha256.Sum256(input)
	if !bytes.Equal(output, want[:]) {
		t.Errorf("unexpected output, wanted %x, got %x", want, output)
	}
	if gasLeft != 100-72 {
		t.Errorf("unexpected gas left, wanted 28, got %d", gasLeft)
	}
}

func TestRegistry_InsufficientGasConsumesEverything(t *testing.T) {
	registry := NewRegistry()
	_, gasLeft, err := registry.Run(addressOf(0x2), &Env{}, []byte("hello"), 71)
	if !errors.Is(err, borealis.ErrOutOfGas) {
		t.Fatalf("underfunded call should fail with out-of-gas, got %v", err)
	}
	if gasLeft != 0 {
		t.Errorf("failed call should consume all gas, %d left", gasLeft)
	}
}

func TestRegistry_UnknownAddressIsANoop(t *testing.T) {
	registry := NewRegistry()
	output, gasLeft, err := registry.Run(addressOf(0xAB), &Env{}, []byte{0x01}, 100)
	if err != nil || output != nil || gasLeft != 100 {
		t.Errorf("unexpected result for unknown address: %x, %d, %v", output, gasLeft, err)
	}
}
