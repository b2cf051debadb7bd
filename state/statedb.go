// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/borealis-network/borealis/borealis"
	"github.com/ethereum/go-ethereum/crypto"
)

// StateDB is a write buffer between one transaction and the host store. All
// reads during a transaction pass through it, all writes are retained in
// memory, and nothing reaches the host store before Commit. Discard throws
// the buffer away without any host-store interaction.
//
// Nested call frames are supported through snapshots backed by an undo log:
// every mutation appends a closure reverting it, and restoring a snapshot
// replays the tail of the log in reverse.
type StateDB struct {
	store   borealis.HostStorage
	runtime borealis.HostRuntime

	balances map[borealis.Address]*balanceEntry
	nonces   map[borealis.Address]*nonceEntry
	codes    map[borealis.Address]*codeEntry
	slots    map[slotID]*slotEntry

	destructed map[borealis.Address]bool
	logs       []borealis.Log

	undo      []func()
	committed bool
}

type slotID struct {
	address borealis.Address
	key     borealis.Key
}

// balanceEntry keeps the value found in the host store next to the current
// in-buffer value, so Commit can skip untouched accounts.
type balanceEntry struct {
	original borealis.Value
	current  borealis.Value
}

type nonceEntry struct {
	original uint64
	current  uint64
}

type codeEntry struct {
	code  borealis.Code
	dirty bool
}

type slotEntry struct {
	original borealis.Word
	current  borealis.Word
}

func NewStateDB(store borealis.HostStorage, runtime borealis.HostRuntime) *StateDB {
	return &StateDB{
		store:      store,
		runtime:    runtime,
		balances:   map[borealis.Address]*balanceEntry{},
		nonces:     map[borealis.Address]*nonceEntry{},
		codes:      map[borealis.Address]*codeEntry{},
		slots:      map[slotID]*slotEntry{},
		destructed: map[borealis.Address]bool{},
	}
}

func (s *StateDB) AccountExists(address borealis.Address) bool {
	// An account exists if any of its attributes carries a non-empty value.
	empty := borealis.Value{}
	return s.GetBalance(address) != empty ||
		s.GetNonce(address) != 0 ||
		len(s.GetCode(address)) > 0
}

func (s *StateDB) GetBalance(address borealis.Address) borealis.Value {
	return s.loadBalance(address).current
}

func (s *StateDB) SetBalance(address borealis.Address, balance borealis.Value) {
	entry := s.loadBalance(address)
	if entry.current == balance {
		return
	}
	previous := entry.current
	entry.current = balance
	s.undo = append(s.undo, func() {
		entry.current = previous
	})
}

func (s *StateDB) loadBalance(address borealis.Address) *balanceEntry {
	if entry, found := s.balances[address]; found {
		return entry
	}
	var value borealis.Value
	if raw := s.store.Get(balanceKey(address)); len(raw) == len(value) {
		copy(value[:], raw)
	}
	entry := &balanceEntry{original: value, current: value}
	s.balances[address] = entry
	return entry
}

func (s *StateDB) GetNonce(address borealis.Address) uint64 {
	return s.loadNonce(address).current
}

func (s *StateDB) SetNonce(address borealis.Address, nonce uint64) {
	entry := s.loadNonce(address)
	if entry.current == nonce {
		return
	}
	previous := entry.current
	entry.current = nonce
	s.undo = append(s.undo, func() {
		entry.current = previous
	})
}

func (s *StateDB) loadNonce(address borealis.Address) *nonceEntry {
	if entry, found := s.nonces[address]; found {
		return entry
	}
	var nonce uint64
	if raw := s.store.Get(nonceKey(address)); len(raw) == 8 {
		nonce = binary.BigEndian.Uint64(raw)
	}
	entry := &nonceEntry{original: nonce, current: nonce}
	s.nonces[address] = entry
	return entry
}

func (s *StateDB) GetCode(address borealis.Address) borealis.Code {
	return s.loadCode(address).code
}

func (s *StateDB) GetCodeSize(address borealis.Address) int {
	return len(s.loadCode(address).code)
}

func (s *StateDB) GetCodeHash(address borealis.Address) borealis.Hash {
	if !s.AccountExists(address) {
		return borealis.Hash{}
	}
	return borealis.Hash(crypto.Keccak256Hash(s.loadCode(address).code))
}

// SetCode installs the deployed code of a freshly created contract. Code is
// write-once; overwriting existing code indicates a corrupted create flow.
func (s *StateDB) SetCode(address borealis.Address, code borealis.Code) error {
	entry := s.loadCode(address)
	if len(entry.code) > 0 {
		return borealis.ErrCodeAlreadySet
	}
	previous := entry.code
	previousDirty := entry.dirty
	entry.code = code
	entry.dirty = true
	s.undo = append(s.undo, func() {
		entry.code = previous
		entry.dirty = previousDirty
	})
	return nil
}

func (s *StateDB) loadCode(address borealis.Address) *codeEntry {
	if entry, found := s.codes[address]; found {
		return entry
	}
	entry := &codeEntry{code: s.store.Get(codeKey(address))}
	s.codes[address] = entry
	return entry
}

func (s *StateDB) GetStorage(address borealis.Address, key borealis.Key) borealis.Word {
	return s.loadSlot(address, key).current
}

func (s *StateDB) GetCommittedStorage(address borealis.Address, key borealis.Key) borealis.Word {
	return s.loadSlot(address, key).original
}

func (s *StateDB) SetStorage(address borealis.Address, key borealis.Key, value borealis.Word) borealis.StorageStatus {
	entry := s.loadSlot(address, key)
	status := borealis.GetStorageStatus(entry.original, entry.current, value)
	if entry.current == value {
		return status
	}
	previous := entry.current
	entry.current = value
	s.undo = append(s.undo, func() {
		entry.current = previous
	})
	return status
}

func (s *StateDB) loadSlot(address borealis.Address, key borealis.Key) *slotEntry {
	id := slotID{address, key}
	if entry, found := s.slots[id]; found {
		return entry
	}
	var value borealis.Word
	if raw := s.store.Get(storageKey(address, key)); len(raw) == len(value) {
		copy(value[:], raw)
	}
	entry := &slotEntry{original: value, current: value}
	s.slots[id] = entry
	return entry
}

// SelfDestruct schedules the account for deletion at commit time and moves
// its balance to the beneficiary. The account keeps its code and storage for
// the remainder of the transaction.
func (s *StateDB) SelfDestruct(address borealis.Address, beneficiary borealis.Address) bool {
	balance := s.GetBalance(address)
	s.SetBalance(address, borealis.Value{})
	if beneficiary != address && balance != (borealis.Value{}) {
		s.SetBalance(beneficiary, borealis.Add(s.GetBalance(beneficiary), balance))
	}
	if s.destructed[address] {
		return false
	}
	s.destructed[address] = true
	s.undo = append(s.undo, func() {
		delete(s.destructed, address)
	})
	return true
}

func (s *StateDB) HasSelfDestructed(address borealis.Address) bool {
	return s.destructed[address]
}

func (s *StateDB) EmitLog(log borealis.Log) {
	s.logs = append(s.logs, log)
	s.undo = append(s.undo, func() {
		s.logs = s.logs[:len(s.logs)-1]
	})
}

func (s *StateDB) GetLogs() []borealis.Log {
	return s.logs
}

func (s *StateDB) GetBlockHash(number int64) borealis.Hash {
	if number < 0 {
		return borealis.Hash{}
	}
	return s.runtime.BlockHash(uint64(number))
}

func (s *StateDB) CreateSnapshot() borealis.Snapshot {
	return borealis.Snapshot(len(s.undo))
}

func (s *StateDB) RestoreSnapshot(snapshot borealis.Snapshot) {
	for len(s.undo) > int(snapshot) {
		s.undo[len(s.undo)-1]()
		s.undo = s.undo[:len(s.undo)-1]
	}
}

const errAlreadyCommitted = borealis.ConstError("state buffer already committed")

// Commit flushes the accumulated changes to the host store as a single
// deterministic batch. Untouched attributes produce no host-store traffic,
// attributes reset to their empty value are deleted rather than stored, and
// destroyed accounts have their full namespace cleared. Commit may be called
// at most once per buffer.
func (s *StateDB) Commit() error {
	if s.committed {
		return errAlreadyCommitted
	}
	s.committed = true

	type write struct {
		key    []byte
		value  []byte
		remove bool
	}
	var writes []write

	for address, entry := range s.balances {
		if s.destructed[address] || entry.current == entry.original {
			continue
		}
		if entry.current == (borealis.Value{}) {
			writes = append(writes, write{key: balanceKey(address), remove: true})
		} else {
			value := entry.current
			writes = append(writes, write{key: balanceKey(address), value: value[:]})
		}
	}
	for address, entry := range s.nonces {
		if s.destructed[address] || entry.current == entry.original {
			continue
		}
		if entry.current == 0 {
			writes = append(writes, write{key: nonceKey(address), remove: true})
		} else {
			value := binary.BigEndian.AppendUint64(nil, entry.current)
			writes = append(writes, write{key: nonceKey(address), value: value})
		}
	}
	for address, entry := range s.codes {
		if s.destructed[address] || !entry.dirty {
			continue
		}
		if len(entry.code) == 0 {
			writes = append(writes, write{key: codeKey(address), remove: true})
		} else {
			writes = append(writes, write{key: codeKey(address), value: entry.code})
		}
	}
	for id, entry := range s.slots {
		if s.destructed[id.address] || entry.current == entry.original {
			continue
		}
		if entry.current == (borealis.Word{}) {
			writes = append(writes, write{key: storageKey(id.address, id.key), remove: true})
		} else {
			value := entry.current
			writes = append(writes, write{key: storageKey(id.address, id.key), value: value[:]})
		}
	}

	// Map iteration order is random; sort by key so the host observes the
	// same write sequence on every node.
	sort.Slice(writes, func(i, j int) bool {
		return bytes.Compare(writes[i].key, writes[j].key) < 0
	})

	var destroyed []borealis.Address
	for address := range s.destructed {
		destroyed = append(destroyed, address)
	}
	sort.Slice(destroyed, func(i, j int) bool {
		return bytes.Compare(destroyed[i][:], destroyed[j][:]) < 0
	})
	for _, address := range destroyed {
		s.store.Delete(balanceKey(address))
		s.store.Delete(nonceKey(address))
		s.store.Delete(codeKey(address))
		s.store.DeletePrefix(storagePrefix(address))
	}

	for _, w := range writes {
		if w.remove {
			s.store.Delete(w.key)
		} else {
			s.store.Set(w.key, w.value)
		}
	}
	return nil
}

// Discard drops all buffered changes. The host store is left untouched.
func (s *StateDB) Discard() {
	s.balances = map[borealis.Address]*balanceEntry{}
	s.nonces = map[borealis.Address]*nonceEntry{}
	s.codes = map[borealis.Address]*codeEntry{}
	s.slots = map[slotID]*slotEntry{}
	s.destructed = map[borealis.Address]bool{}
	s.logs = nil
	s.undo = nil
}
