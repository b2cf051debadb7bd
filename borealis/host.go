// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package borealis

//go:generate mockgen -source host.go -destination host_mock.go -package borealis

// HostStorage is the synchronous key-value store provided by the host chain
// runtime. Keys are opaque byte strings namespaced by the state accessor;
// the host provides no transactions of its own. Atomicity across the write
// buffer is the engine's responsibility.
type HostStorage interface {
	// Get returns the value stored under key, or nil if absent.
	Get(key []byte) []byte
	Set(key, value []byte)
	Delete(key []byte)

	// DeletePrefix removes all entries whose key starts with the given
	// prefix. Used to clear the storage namespace of a destroyed account.
	DeletePrefix(prefix []byte)
}

// HostRuntime exposes the deterministic environment of the current host
// contract invocation.
type HostRuntime interface {
	// PredecessorAccountID is the host account that invoked the engine.
	PredecessorAccountID() AccountID
	// CurrentAccountID is the host account the engine itself runs as.
	CurrentAccountID() AccountID

	BlockHeight() uint64
	BlockTimestamp() uint64

	// BlockHash returns the hash of the host block with the given height,
	// or the zero hash if the height is out of the visible window.
	BlockHash(height uint64) Hash
}

// HostComputeMeter charges the host runtime's own resource units. It is
// invoked exactly once per transaction, at the boundary, with the converted
// gas total.
type HostComputeMeter interface {
	ChargeCompute(amount HostGas)
}

// CrossContractCall describes a call to another contract on the host chain,
// scheduled as a side effect of EVM execution.
type CrossContractCall struct {
	Target   AccountID
	Method   string
	Args     []byte
	Deposit  Value
	GasLimit HostGas
}

// HostCalls schedules cross-contract calls on the host chain. The engine
// invokes this only after its own write buffer has committed, so a scheduled
// call is never visible if the EVM-side transaction failed.
type HostCalls interface {
	Schedule(call CrossContractCall)
}

// Host bundles the full set of interfaces the engine consumes from the host
// chain runtime.
type Host interface {
	HostStorage
	HostRuntime
	HostComputeMeter
	HostCalls
}
