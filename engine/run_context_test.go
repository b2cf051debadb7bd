// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package engine

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/mock/gomock"

	"github.com/borealis-network/borealis/borealis"
	"github.com/borealis-network/borealis/host/memstore"
	"github.com/borealis-network/borealis/interpreter/bvm"
	"github.com/borealis-network/borealis/precompiles"
	"github.com/borealis-network/borealis/state"
)

// newRunContext builds a context over a fresh in-memory host. The returned
// state is shared with the context so tests can shape the pre-state.
func newRunContext(host *memstore.Store) (runContext, *state.StateDB) {
	stateDB := state.NewStateDB(host, host)
	return runContext{
		TransactionContext: stateDB,
		interpreter:        bvm.NewInterpreter(),
		registry:           precompiles.NewRegistry(),
		runtime:            host,
		effects:            &precompiles.EffectList{},
	}, stateDB
}

func TestRunContext_DepthLimitFailsWithoutExecution(t *testing.T) {
	ctrl := gomock.NewController(t)
	interpreter := borealis.NewMockInterpreter(ctrl)
	context := borealis.NewMockTransactionContext(ctrl)

	r := runContext{
		TransactionContext: context,
		interpreter:        interpreter,
		registry:           precompiles.NewRegistry(),
		depth:              maxCallDepth + 1,
	}

	for _, kind := range []borealis.CallKind{borealis.Call, borealis.StaticCall, borealis.Create} {
		result, err := r.Call(kind, borealis.CallParameters{Gas: 100})
		if err != nil {
			t.Fatalf("unexpected error for kind %v: %v", kind, err)
		}
		if result.Success {
			t.Errorf("call of kind %v should fail beyond the depth limit", kind)
		}
		if want, got := borealis.Gas(100), result.GasLeft; want != got {
			t.Errorf("depth failure must preserve gas, wanted %d, got %d", want, got)
		}
	}
}

func TestRunContext_ValueTransferRequiresSufficientBalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	interpreter := borealis.NewMockInterpreter(ctrl)
	context := borealis.NewMockTransactionContext(ctrl)

	sender := borealis.Address{0x01}
	context.EXPECT().GetBalance(sender).Return(borealis.NewValue(5))

	r := runContext{
		TransactionContext: context,
		interpreter:        interpreter,
		registry:           precompiles.NewRegistry(),
	}
	result, err := r.Call(borealis.Call, borealis.CallParameters{
		Sender:    sender,
		Recipient: borealis.Address{0x02},
		Value:     borealis.NewValue(10),
		Gas:       100,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Errorf("transfer exceeding the balance should fail")
	}
	if want, got := borealis.Gas(100), result.GasLeft; want != got {
		t.Errorf("balance failure must preserve gas, wanted %d, got %d", want, got)
	}
}

func TestRunContext_PrecompilesAreDispatchedByAddress(t *testing.T) {
	r, _ := newRunContext(memstore.New())

	identity := borealis.Address{19: 0x04}
	input := borealis.Data{1, 2, 3, 4}
	result, err := r.Call(borealis.Call, borealis.CallParameters{
		Recipient: identity,
		Input:     input,
		Gas:       1000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("identity precompile should succeed")
	}
	if want, got := input, borealis.Data(result.Output); string(want) != string(got) {
		t.Errorf("unexpected output, wanted %x, got %x", want, got)
	}
	// 15 base gas plus 3 per word of input.
	if want, got := borealis.Gas(1000-18), result.GasLeft; want != got {
		t.Errorf("unexpected gas left, wanted %d, got %d", want, got)
	}
}

func TestRunContext_PrecompileWithoutEnoughGasConsumesEverything(t *testing.T) {
	r, _ := newRunContext(memstore.New())

	identity := borealis.Address{19: 0x04}
	result, err := r.Call(borealis.Call, borealis.CallParameters{
		Recipient: identity,
		Input:     borealis.Data{1, 2, 3, 4},
		Gas:       10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Errorf("underfunded precompile call should fail")
	}
	if want, got := borealis.Gas(0), result.GasLeft; want != got {
		t.Errorf("unexpected gas left, wanted %d, got %d", want, got)
	}
}

func TestRunContext_CreateSucceedsIntoAFreshAccount(t *testing.T) {
	r, stateDB := newRunContext(memstore.New())

	sender := borealis.Address{0x01}
	// A fresh account reports the zero code hash; that must not be read
	// as an address collision.
	initCode := borealis.Data{0x60, 1, 0x60, 0, 0xF3} // returns 1 zero byte
	result, err := r.Call(borealis.Create, borealis.CallParameters{
		Sender: sender,
		Input:  initCode,
		Gas:    10_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Success {
		t.Fatalf("creation into a fresh account should succeed")
	}
	want := borealis.Address(crypto.CreateAddress(common.Address(sender), 0))
	if result.CreatedAddress != want {
		t.Errorf("unexpected created address, wanted %v, got %v", want, result.CreatedAddress)
	}
	if got := stateDB.GetCodeSize(want); got != 1 {
		t.Errorf("unexpected deployed code size, wanted 1, got %d", got)
	}
	// 9 gas for the init code, 200 for depositing one byte.
	if want, got := borealis.Gas(10_000-9-200), result.GasLeft; want != got {
		t.Errorf("unexpected gas left, wanted %d, got %d", want, got)
	}
}

func TestRunContext_CreateFailsWhenTheAddressHoldsCode(t *testing.T) {
	r, stateDB := newRunContext(memstore.New())

	sender := borealis.Address{0x01}
	occupied := borealis.Address(crypto.CreateAddress(common.Address(sender), 0))
	if err := stateDB.SetCode(occupied, []byte{0x00}); err != nil {
		t.Fatalf("failed to install code: %v", err)
	}

	result, err := r.Call(borealis.Create, borealis.CallParameters{
		Sender: sender,
		Input:  borealis.Data{0x00},
		Gas:    10_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Errorf("creation into an address holding code should fail")
	}
	if want, got := borealis.Gas(0), result.GasLeft; want != got {
		t.Errorf("collision must consume all gas, wanted %d left, got %d", want, got)
	}
}

func TestRunContext_CreateFailsOnAddressCollision(t *testing.T) {
	r, stateDB := newRunContext(memstore.New())

	sender := borealis.Address{0x01}
	occupied := borealis.Address(crypto.CreateAddress(common.Address(sender), 0))
	stateDB.SetNonce(occupied, 1)

	result, err := r.Call(borealis.Create, borealis.CallParameters{
		Sender: sender,
		Input:  borealis.Data{0x00},
		Gas:    10_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Errorf("creation into an occupied address should fail")
	}
	if want, got := borealis.Gas(0), result.GasLeft; want != got {
		t.Errorf("collision must consume all gas, wanted %d left, got %d", want, got)
	}
	// The sender's nonce is spent even though the creation failed.
	if want, got := uint64(1), stateDB.GetNonce(sender); want != got {
		t.Errorf("unexpected sender nonce, wanted %d, got %d", want, got)
	}
}

func TestRunContext_Create2AddressDependsOnSaltAndInitCode(t *testing.T) {
	sender := borealis.Address{0x01}
	salt := borealis.Hash{0xAA}
	initCode := []byte{0x60, 0, 0x60, 0, 0xF3}

	want := borealis.Address(crypto.CreateAddress2(
		common.Address(sender), common.Hash(salt), crypto.Keccak256(initCode)))
	got := createAddress(borealis.Create2, sender, 42, salt, hashCode(initCode))
	if want != got {
		t.Errorf("unexpected create2 address, wanted %v, got %v", want, got)
	}

	// The nonce is irrelevant for CREATE2, the salt is for CREATE.
	if createAddress(borealis.Create2, sender, 7, salt, hashCode(initCode)) != want {
		t.Errorf("create2 address should not depend on the nonce")
	}
	if createAddress(borealis.Create, sender, 0, salt, hashCode(initCode)) ==
		createAddress(borealis.Create, sender, 1, salt, hashCode(initCode)) {
		t.Errorf("create address should depend on the nonce")
	}
}

func TestRunContext_RevertedFramesKeepGasAndOutput(t *testing.T) {
	r, stateDB := newRunContext(memstore.New())

	contract := borealis.Address{0x02}
	// Writes a storage slot, then reverts with one memory word.
	code := []byte{
		0x60, 1, // PUSH1 1
		0x60, 0, // PUSH1 0
		0x55,     // SSTORE
		0x60, 32, // PUSH1 32
		0x60, 0, // PUSH1 0
		0xFD, // REVERT
	}
	if err := stateDB.SetCode(contract, code); err != nil {
		t.Fatalf("failed to install code: %v", err)
	}

	result, err := r.Call(borealis.Call, borealis.CallParameters{
		Recipient: contract,
		Gas:       100_000,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Success {
		t.Fatalf("reverting frame should not report success")
	}
	if result.GasLeft == 0 {
		t.Errorf("revert should preserve the remaining gas")
	}
	if len(result.Output) != 32 {
		t.Errorf("revert should preserve the return data, got %d bytes", len(result.Output))
	}
	if stateDB.GetStorage(contract, borealis.Key{}) != (borealis.Word{}) {
		t.Errorf("reverted storage write should be rolled back")
	}
}

func TestIsRevert_DistinguishesRevertsFromOtherFailures(t *testing.T) {
	tests := map[string]struct {
		result borealis.Result
		err    error
		want   bool
	}{
		"revert with gas":        {borealis.Result{GasLeft: 10}, nil, true},
		"revert with output":     {borealis.Result{Output: borealis.Data{1}}, nil, true},
		"plain failure":          {borealis.Result{}, nil, false},
		"success":                {borealis.Result{Success: true, GasLeft: 10}, nil, false},
		"internal error":         {borealis.Result{GasLeft: 10}, borealis.ErrOutOfGas, false},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if want, got := test.want, isRevert(test.result, test.err); want != got {
				t.Errorf("wanted %t, got %t", want, got)
			}
		})
	}
}
