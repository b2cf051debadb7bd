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
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/borealis-network/borealis/borealis"
	"github.com/borealis-network/borealis/precompiles"
)

const (
	maxCallDepth  = 1024
	maxCodeSize   = 24576
	createDataGas = 200
)

var emptyCodeHash = borealis.Hash(crypto.Keccak256(nil))

// runContext is the mutable execution context of one transaction. It is
// passed by value so that depth and static-mode flags propagate down the
// call tree and unwind automatically, while the embedded transaction
// context and the effect list are shared across all frames.
type runContext struct {
	borealis.TransactionContext
	interpreter           borealis.Interpreter
	registry              *precompiles.Registry
	runtime               borealis.HostRuntime
	effects               *precompiles.EffectList
	blockParameters       borealis.BlockParameters
	transactionParameters borealis.TransactionParameters
	depth                 int
	static                bool
}

func (r runContext) Call(kind borealis.CallKind, parameters borealis.CallParameters) (borealis.CallResult, error) {
	if kind == borealis.Create || kind == borealis.Create2 {
		return r.executeCreate(kind, parameters)
	}
	return r.executeCall(kind, parameters)
}

func (r runContext) executeCall(kind borealis.CallKind, parameters borealis.CallParameters) (borealis.CallResult, error) {
	errResult := borealis.CallResult{
		Success: false,
		GasLeft: parameters.Gas,
	}

	if r.depth > maxCallDepth {
		return errResult, nil
	}
	r.depth++

	transfersValue := kind == borealis.Call || kind == borealis.CallCode
	if transfersValue && !canTransferValue(r, parameters.Value, parameters.Sender, parameters.Recipient) {
		return errResult, nil
	}

	if kind == borealis.StaticCall {
		r.static = true
	}

	snapshot := r.CreateSnapshot()
	effectsSnapshot := r.effects.Snapshot()

	if transfersValue {
		transferValue(r, parameters.Value, parameters.Sender, parameters.Recipient)
	}

	codeAddress := parameters.Recipient
	if kind == borealis.CallCode || kind == borealis.DelegateCall {
		codeAddress = parameters.CodeAddress
	}

	if r.registry.IsPrecompile(codeAddress) {
		env := &precompiles.Env{
			Caller:  parameters.Sender,
			Static:  r.static,
			Runtime: r.runtime,
			Effects: r.effects,
		}
		output, gasLeft, err := r.registry.Run(codeAddress, env, parameters.Input, parameters.Gas)
		if err != nil {
			r.RestoreSnapshot(snapshot)
			r.effects.Restore(effectsSnapshot)
			return borealis.CallResult{Success: false, GasLeft: gasLeft}, nil
		}
		return borealis.CallResult{Success: true, Output: output, GasLeft: gasLeft}, nil
	}

	code := r.GetCode(codeAddress)
	codeHash := r.GetCodeHash(codeAddress)

	result, err := r.interpreter.Run(borealis.Parameters{
		BlockParameters:       r.blockParameters,
		TransactionParameters: r.transactionParameters,
		Context:               r,
		Kind:                  kind,
		Static:                r.static,
		Depth:                 r.depth - 1,
		Gas:                   parameters.Gas,
		Recipient:             parameters.Recipient,
		Sender:                parameters.Sender,
		Input:                 parameters.Input,
		Value:                 parameters.Value,
		CodeHash:              &codeHash,
		Code:                  code,
	})
	if err != nil || !result.Success {
		r.RestoreSnapshot(snapshot)
		r.effects.Restore(effectsSnapshot)
		if !isRevert(result, err) {
			result.GasLeft = 0
			result.Output = nil
		}
	}

	return borealis.CallResult{
		Output:    result.Output,
		GasLeft:   result.GasLeft,
		GasRefund: result.GasRefund,
		Success:   result.Success && err == nil,
	}, err
}

func (r runContext) executeCreate(kind borealis.CallKind, parameters borealis.CallParameters) (borealis.CallResult, error) {
	errResult := borealis.CallResult{
		Success: false,
		GasLeft: parameters.Gas,
	}

	if r.depth > maxCallDepth {
		return errResult, nil
	}
	r.depth++

	if !canTransferValue(r, parameters.Value, parameters.Sender, borealis.Address{}) {
		return errResult, nil
	}

	// A creating sender spends a nonce whether or not the creation
	// succeeds within the transaction.
	senderNonce := r.GetNonce(parameters.Sender)
	r.SetNonce(parameters.Sender, senderNonce+1)

	initCodeHash := hashCode(parameters.Input)
	createdAddress := createAddress(kind, parameters.Sender, senderNonce, parameters.Salt, initCodeHash)

	// Address collision burns the frame's gas without executing anything.
	// Nonexistent accounts report the zero code hash; only a nonzero nonce
	// or actual code marks the address as taken.
	codeHash := r.GetCodeHash(createdAddress)
	if r.GetNonce(createdAddress) != 0 ||
		(codeHash != (borealis.Hash{}) && codeHash != emptyCodeHash) {
		return borealis.CallResult{}, nil
	}

	snapshot := r.CreateSnapshot()
	effectsSnapshot := r.effects.Snapshot()

	r.SetNonce(createdAddress, 1)
	transferValue(r, parameters.Value, parameters.Sender, createdAddress)

	result, err := r.interpreter.Run(borealis.Parameters{
		BlockParameters:       r.blockParameters,
		TransactionParameters: r.transactionParameters,
		Context:               r,
		Kind:                  kind,
		Static:                r.static,
		Depth:                 r.depth - 1,
		Gas:                   parameters.Gas,
		Recipient:             createdAddress,
		Sender:                parameters.Sender,
		Value:                 parameters.Value,
		CodeHash:              &initCodeHash,
		Code:                  borealis.Code(parameters.Input),
	})
	if err != nil || !result.Success {
		r.RestoreSnapshot(snapshot)
		r.effects.Restore(effectsSnapshot)
		if isRevert(result, err) {
			return borealis.CallResult{
				Output:         result.Output,
				GasLeft:        result.GasLeft,
				CreatedAddress: createdAddress,
			}, nil
		}
		return borealis.CallResult{}, err
	}

	deployedCode := result.Output
	if len(deployedCode) > maxCodeSize {
		r.RestoreSnapshot(snapshot)
		r.effects.Restore(effectsSnapshot)
		return borealis.CallResult{}, nil
	}
	depositGas := borealis.Gas(len(deployedCode)) * createDataGas
	if result.GasLeft < depositGas {
		r.RestoreSnapshot(snapshot)
		r.effects.Restore(effectsSnapshot)
		return borealis.CallResult{}, nil
	}
	result.GasLeft -= depositGas

	if err := r.SetCode(createdAddress, borealis.Code(deployedCode)); err != nil {
		r.RestoreSnapshot(snapshot)
		r.effects.Restore(effectsSnapshot)
		return borealis.CallResult{}, nil
	}

	return borealis.CallResult{
		Output:         deployedCode,
		GasLeft:        result.GasLeft,
		GasRefund:      result.GasRefund,
		CreatedAddress: createdAddress,
		Success:        true,
	}, nil
}

// isRevert distinguishes an orderly REVERT, which preserves leftover gas and
// return data, from every other kind of frame failure.
func isRevert(result borealis.Result, err error) bool {
	return err == nil && !result.Success && (result.GasLeft > 0 || len(result.Output) > 0)
}

func canTransferValue(
	context borealis.TransactionContext,
	value borealis.Value,
	sender borealis.Address,
	recipient borealis.Address,
) bool {
	if value == (borealis.Value{}) {
		return true
	}
	if context.GetBalance(sender).Cmp(value) < 0 {
		return false
	}
	return true
}

func transferValue(
	context borealis.TransactionContext,
	value borealis.Value,
	sender borealis.Address,
	recipient borealis.Address,
) {
	if value == (borealis.Value{}) || sender == recipient {
		return
	}
	context.SetBalance(sender, borealis.Sub(context.GetBalance(sender), value))
	context.SetBalance(recipient, borealis.Add(context.GetBalance(recipient), value))
}

func createAddress(
	kind borealis.CallKind,
	sender borealis.Address,
	nonce uint64,
	salt borealis.Hash,
	initCodeHash borealis.Hash,
) borealis.Address {
	if kind == borealis.Create {
		return borealis.Address(crypto.CreateAddress(common.Address(sender), nonce))
	}
	return borealis.Address(crypto.CreateAddress2(common.Address(sender), common.Hash(salt), initCodeHash[:]))
}

func hashCode(code []byte) borealis.Hash {
	return borealis.Hash(crypto.Keccak256(code))
}
