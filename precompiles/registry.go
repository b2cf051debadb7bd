// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package precompiles hosts the contracts that live at reserved addresses:
// the nine standard precompiles of the Istanbul revision and the bridge
// contracts connecting EVM code to the host chain.
package precompiles

import (
	"encoding/binary"
	"math"

	"github.com/borealis-network/borealis/borealis"
	"github.com/ethereum/go-ethereum/core/vm"
)

// Env is the execution environment handed to a precompiled contract. Unlike
// ordinary contracts, precompiles have no code or storage of their own; they
// only see who called them, whether the frame is static, and the host bridge.
type Env struct {
	Caller  borealis.Address
	Static  bool
	Runtime borealis.HostRuntime
	Effects *EffectList
}

// Contract is a contract at a reserved address. RequiredGas is charged in
// full before Run; a failing Run consumes all gas given to the call.
type Contract interface {
	RequiredGas(input []byte) borealis.Gas
	Run(env *Env, input []byte) ([]byte, error)
}

// Registry resolves reserved addresses to their contracts.
type Registry struct {
	contracts map[borealis.Address]Contract
}

// NewRegistry builds the full registry: addresses 0x1 to 0x9 host the
// standard Istanbul precompiles, the 0x100 range hosts the bridge contracts.
func NewRegistry() *Registry {
	contracts := map[borealis.Address]Contract{}
	for addr, contract := range vm.PrecompiledContractsIstanbul {
		contracts[borealis.Address(addr)] = &wrappedContract{contract}
	}
	contracts[DeriveAddressAddress] = &deriveAddressContract{}
	contracts[ScheduleCallAddress] = &scheduleCallContract{}
	contracts[PredecessorAddress] = &predecessorContract{}
	return &Registry{contracts: contracts}
}

// IsPrecompile reports whether the given address is reserved.
func (r *Registry) IsPrecompile(address borealis.Address) bool {
	_, found := r.contracts[address]
	return found
}

// Run executes the contract at the given address. The required gas is
// deducted from the provided gas before execution; if it does not suffice,
// or the contract fails, all gas is consumed.
func (r *Registry) Run(address borealis.Address, env *Env, input []byte, gas borealis.Gas) ([]byte, borealis.Gas, error) {
	contract, found := r.contracts[address]
	if !found {
		return nil, gas, nil
	}
	required := contract.RequiredGas(input)
	if required < 0 || required > gas {
		return nil, 0, borealis.ErrOutOfGas
	}
	output, err := contract.Run(env, input)
	if err != nil {
		return nil, 0, err
	}
	return output, gas - required, nil
}

// wrappedContract adapts a stateless precompile of the upstream EVM to the
// registry's contract interface.
type wrappedContract struct {
	inner vm.PrecompiledContract
}

func (c *wrappedContract) RequiredGas(input []byte) borealis.Gas {
	gas := c.inner.RequiredGas(input)
	if gas > math.MaxInt64 {
		return math.MaxInt64
	}
	return borealis.Gas(gas)
}

func (c *wrappedContract) Run(_ *Env, input []byte) ([]byte, error) {
	return c.inner.Run(input)
}

// addressOf is a convenience for naming reserved addresses by number.
func addressOf(value uint64) borealis.Address {
	var address borealis.Address
	binary.BigEndian.PutUint64(address[12:], value)
	return address
}
