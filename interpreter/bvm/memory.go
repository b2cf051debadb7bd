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
	"math"

	"github.com/borealis-network/borealis/borealis"
	"github.com/holiman/uint256"
)

// memory is the expandable byte memory of one call frame. It grows in full
// 32-byte words and charges the quadratic expansion cost on growth.
type memory struct {
	store             []byte
	currentMemoryCost borealis.Gas
}

func newMemory() *memory {
	return &memory{}
}

func toValidMemorySize(size uint64) uint64 {
	fullWordsSize := borealis.SizeInWords(size) * 32
	if size != 0 && fullWordsSize < size {
		return math.MaxUint64
	}
	return fullWordsSize
}

// Memory expansions beyond this size cost more gas than a transaction can
// carry; requesting more is treated as an unpayable price.
const maxMemoryExpansionSize = 0x1FFFFFFFE0

func (m *memory) getExpansionCosts(size uint64) borealis.Gas {
	if m.length() >= size {
		return 0
	}
	size = toValidMemorySize(size)
	if size > maxMemoryExpansionSize {
		return borealis.Gas(math.MaxInt64)
	}
	words := borealis.SizeInWords(size)
	newCosts := borealis.Gas((words*words)/512 + 3*words)
	return newCosts - m.currentMemoryCost
}

// expandMemory grows the memory to cover [offset, offset+size), charging the
// expansion cost to the given context. A zero size never expands, regardless
// of the offset.
func (m *memory) expandMemory(offset, size uint64, c *context) error {
	if size == 0 {
		return nil
	}
	needed := offset + size
	if needed < offset { // overflow
		return errGasUintOverflow
	}
	if m.length() < needed {
		fee := m.getExpansionCosts(needed)
		if err := c.useGas(fee); err != nil {
			return err
		}
		needed = toValidMemorySize(needed)
		m.store = append(m.store, make([]byte, needed-m.length())...)
		m.currentMemoryCost += fee
	}
	return nil
}

func (m *memory) length() uint64 {
	return uint64(len(m.store))
}

// set writes the given bytes at the given offset, expanding and charging as
// needed.
func (m *memory) set(offset uint64, value []byte, c *context) error {
	if len(value) == 0 {
		return nil
	}
	if err := m.expandMemory(offset, uint64(len(value)), c); err != nil {
		return err
	}
	copy(m.store[offset:], value)
	return nil
}

// getSlice obtains a slice of size bytes from the memory at the given
// offset, expanding and charging as needed. The returned slice aliases the
// memory's internal data; it is invalidated by any subsequent operation that
// may grow the memory.
func (m *memory) getSlice(offset, size uint64, c *context) ([]byte, error) {
	if err := m.expandMemory(offset, size, c); err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}
	return m.store[offset : offset+size], nil
}

// readWord reads a 32-byte word from the memory at the given offset into the
// provided target, expanding and charging as needed.
func (m *memory) readWord(offset uint64, target *uint256.Int, c *context) error {
	data, err := m.getSlice(offset, 32, c)
	if err != nil {
		return err
	}
	target.SetBytes32(data)
	return nil
}

// setWord writes a 32-byte word to the memory at the given offset, expanding
// and charging as needed.
func (m *memory) setWord(offset uint64, value *uint256.Int, c *context) error {
	data := value.Bytes32()
	return m.set(offset, data[:], c)
}
