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
	"github.com/holiman/uint256"
)

func TestStaticGasPrices_SelectedInstructions(t *testing.T) {
	tests := map[OpCode]borealis.Gas{
		STOP:         0,
		ADD:          3,
		MUL:          5,
		ADDMOD:       8,
		EXP:          10,
		SHA3:         30,
		BALANCE:      700,
		EXTCODEHASH:  700,
		BLOCKHASH:    20,
		POP:          2,
		MLOAD:        3,
		SLOAD:        800,
		SSTORE:       0,
		JUMP:         8,
		JUMPI:        10,
		JUMPDEST:     1,
		PUSH1:        3,
		PUSH32:       3,
		DUP16:        3,
		SWAP1:        3,
		LOG0:         375,
		LOG4:         1875,
		CREATE:       32000,
		CALL:         700,
		STATICCALL:   700,
		SELFDESTRUCT: 0,
	}

	for op, want := range tests {
		if got := staticGasPrices[op]; want != got {
			t.Errorf("unexpected static gas price for %v, wanted %d, got %d", op, want, got)
		}
	}
}

func TestCallGas_AppliesThe63On64Rule(t *testing.T) {
	tests := map[string]struct {
		available borealis.Gas
		requested uint64
		want      borealis.Gas
	}{
		"request below the cap":  {6400, 100, 100},
		"request at the cap":     {6400, 6300, 6300},
		"request beyond the cap": {6400, 6400, 6300},
		"request everything":     {64, 1000, 63},
		"tiny budget":            {1, 1000, 1},
		"zero budget":            {0, 1000, 0},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			requested := uint256.NewInt(test.requested)
			if got := callGas(test.available, 0, requested); got != test.want {
				t.Errorf("unexpected call gas, wanted %d, got %d", test.want, got)
			}
		})
	}
}

func TestCallGas_HugeRequestsAreCapped(t *testing.T) {
	requested := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	if want, got := borealis.Gas(6300), callGas(6400, 0, requested); want != got {
		t.Errorf("unexpected call gas, wanted %d, got %d", want, got)
	}
}

func TestGasSStore_FollowsTheIstanbulSchedule(t *testing.T) {
	tests := map[borealis.StorageStatus]struct {
		cost   borealis.Gas
		refund borealis.Gas
	}{
		borealis.StorageAssigned:         {800, 0},
		borealis.StorageAdded:            {20000, 0},
		borealis.StorageAddedDeleted:     {800, 19200},
		borealis.StorageDeletedRestored:  {800, -10800},
		borealis.StorageDeletedAdded:     {800, -15000},
		borealis.StorageDeleted:          {5000, 15000},
		borealis.StorageModified:         {5000, 0},
		borealis.StorageModifiedDeleted:  {800, 15000},
		borealis.StorageModifiedRestored: {800, 4200},
	}

	// Make sure every storage effect is covered.
	if want, got := len(borealis.GetAllStorageStatuses()), len(tests); want != got {
		t.Fatalf("test covers %d of %d storage effects", got, want)
	}

	for status, want := range tests {
		if got := gasSStore(status); got != want.cost {
			t.Errorf("unexpected cost for %v, wanted %d, got %d", status, want.cost, got)
		}
		if got := refundSStore(status); got != want.refund {
			t.Errorf("unexpected refund for %v, wanted %d, got %d", status, want.refund, got)
		}
	}
}

func TestOpCode_String(t *testing.T) {
	tests := map[OpCode]string{
		STOP:         "STOP",
		SHA3:         "SHA3",
		PUSH1:        "PUSH1",
		PUSH32:       "PUSH32",
		DUP7:         "DUP7",
		SWAP16:       "SWAP16",
		LOG3:         "LOG3",
		SELFDESTRUCT: "SELFDESTRUCT",
		OpCode(0x0C): "op(0x0C)",
		OpCode(0x21): "op(0x21)",
	}
	for op, want := range tests {
		if got := op.String(); want != got {
			t.Errorf("unexpected name for opcode 0x%02X, wanted %s, got %s", byte(op), want, got)
		}
	}
}
