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

import "fmt"

//go:generate mockgen -source world_state.go -destination world_state_mock.go -package borealis

// WorldState is an interface to access and manipulate the state of the chain
// as seen by the EVM. The state is a collection of accounts, each with a
// balance, a nonce, optional code and storage. All reads observe the write
// buffer of the in-flight transaction in preference to the committed store.
type WorldState interface {
	AccountExists(Address) bool

	GetBalance(Address) Value
	SetBalance(Address, Value)

	GetNonce(Address) uint64
	SetNonce(Address, uint64)

	GetCode(Address) Code
	GetCodeHash(Address) Hash
	GetCodeSize(Address) int

	// SetCode installs the code of a contract account. Code is immutable
	// once set; installing code on an account that already carries code
	// fails with ErrCodeAlreadySet.
	SetCode(Address, Code) error

	GetStorage(Address, Key) Word
	SetStorage(Address, Key, Word) StorageStatus

	// GetCommittedStorage returns the value of the slot as present in the
	// host store before the current transaction started. Needed for the
	// SSTORE gas and refund schedule.
	GetCommittedStorage(Address, Key) Word

	// SelfDestruct marks addr for removal at commit time and transfers its
	// balance to beneficiary. If beneficiary does not exist, the balance is
	// transferred anyway. Returns true if it is the first time destroying
	// this addr in the ongoing transaction, false otherwise.
	SelfDestruct(addr Address, beneficiary Address) bool

	HasSelfDestructed(Address) bool
}

// TransactionContext is an interface to access and manipulate the world state
// within a transaction. All modifications are buffered and can be snapshot
// and restored; nothing reaches the host store before Commit. Additionally,
// the transaction context tracks the ordered log sequence.
type TransactionContext interface {
	WorldState

	CreateSnapshot() Snapshot
	RestoreSnapshot(Snapshot)

	EmitLog(Log)
	GetLogs() []Log

	// GetBlockHash returns the hash of the host block with the given number.
	GetBlockHash(number int64) Hash
}

// Snapshot is a type used to represent a snapshot of the world state in a
// transaction context.
type Snapshot int

// StorageStatus is an enum utilized to indicate the effect of a storage
// slot update on the respective slot in the context of the current
// transaction. It is needed to perform proper gas price calculations of
// SSTORE operations.
type StorageStatus int

// See t.ly/b5HPf for the definition of these values.
const (
	// The comment indicates the storage values for the corresponding
	// configuration. X, Y, Z are non-zero numbers, distinct from each other,
	// while 0 is zero.
	//
	// <original> -> <current> -> <new>
	StorageAssigned         StorageStatus = iota
	StorageAdded                          // 0 -> 0 -> Z
	StorageDeleted                        // X -> X -> 0
	StorageModified                       // X -> X -> Z
	StorageDeletedAdded                   // X -> 0 -> Z
	StorageModifiedDeleted                // X -> Y -> 0
	StorageDeletedRestored                // X -> 0 -> X
	StorageAddedDeleted                   // 0 -> Y -> 0
	StorageModifiedRestored               // X -> Y -> X
)

func (config StorageStatus) String() string {
	switch config {
	case StorageAssigned:
		return "StorageAssigned"
	case StorageAdded:
		return "StorageAdded"
	case StorageAddedDeleted:
		return "StorageAddedDeleted"
	case StorageDeletedRestored:
		return "StorageDeletedRestored"
	case StorageDeletedAdded:
		return "StorageDeletedAdded"
	case StorageDeleted:
		return "StorageDeleted"
	case StorageModified:
		return "StorageModified"
	case StorageModifiedDeleted:
		return "StorageModifiedDeleted"
	case StorageModifiedRestored:
		return "StorageModifiedRestored"
	}
	return fmt.Sprintf("StorageStatus(%d)", config)
}

func GetAllStorageStatuses() []StorageStatus {
	return []StorageStatus{
		StorageAssigned,
		StorageAdded,
		StorageAddedDeleted,
		StorageDeletedRestored,
		StorageDeletedAdded,
		StorageDeleted,
		StorageModified,
		StorageModifiedDeleted,
		StorageModifiedRestored,
	}
}
