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
	"sync"

	"github.com/holiman/uint256"
)

const maxStackSize = 1024 // Maximum size of VM stack allowed.

// stack is the 1024-element 256-bit word-wide stack used by the VM. It is a
// fixed-size stack to prevent memory reallocation during execution.
// Boundaries are not checked; the interpreter validates the stack usage of
// every instruction against precomputed limits before executing it.
//
// Each stack consumes 1024 * 32 bytes = 32KB of memory. Creating and
// destroying stacks for every call frame would incur significant overhead,
// so instances are recycled through a pool. Obtain an empty stack with
// newStack() and hand it back with returnStack(s).
//
// The stack is not thread-safe. newStack() and returnStack() are.
type stack struct {
	data         [maxStackSize]uint256.Int
	stackPointer int
}

// push adds a copy of the given value to the top of the stack.
func (s *stack) push(d *uint256.Int) {
	s.data[s.stackPointer] = *d
	s.stackPointer++
}

// pushUndefined adds an element with an undefined value to the top of the
// stack and returns a pointer to it, to be initialized by the caller.
func (s *stack) pushUndefined() *uint256.Int {
	s.stackPointer++
	return &s.data[s.stackPointer-1]
}

// pop removes the top element from the stack and returns a pointer to it.
// The obtained pointer is only valid until the next push operation.
func (s *stack) pop() *uint256.Int {
	s.stackPointer--
	return &s.data[s.stackPointer]
}

// peek returns a pointer to the top element without removing it. The
// returned pointer is only valid until the next operation on the stack.
func (s *stack) peek() *uint256.Int {
	return &s.data[s.len()-1]
}

// peekN returns a pointer to the n-th element from the top without removing
// it. The top element is at index 0, so peekN(0) is equivalent to peek().
func (s *stack) peekN(n int) *uint256.Int {
	return &s.data[s.len()-n-1]
}

func (s *stack) len() int {
	return s.stackPointer
}

// swap exchanges the top element with the n-th element below it.
func (s *stack) swap(n int) {
	s.data[s.len()-n-1], s.data[s.len()-1] = s.data[s.len()-1], s.data[s.len()-n-1]
}

// dup duplicates the n-th element from the top and pushes it to the top of
// the stack. The top element is at index 0.
func (s *stack) dup(n int) {
	s.data[s.stackPointer] = s.data[s.stackPointer-n-1]
	s.stackPointer++
}

var stackPool = sync.Pool{
	New: func() interface{} {
		return &stack{}
	},
}

func newStack() *stack {
	return stackPool.Get().(*stack)
}

// returnStack returns the stack to the reuse pool. Any stack may only be
// returned once; this is not checked internally.
func returnStack(s *stack) {
	s.stackPointer = 0
	stackPool.Put(s)
}

// stackLimits defines the stack usage of a single OpCode.
type stackLimits struct {
	min int // minimum stack size required by the OpCode
	max int // maximum stack size allowed before running the OpCode
}

var staticStackLimits = [numOpCodes]stackLimits{}

func init() {
	for i := 0; i < numOpCodes; i++ {
		staticStackLimits[i] = computeStackLimits(OpCode(i))
	}
}

// newStackLimits builds the limits of an instruction popping the given
// number of elements and growing the stack by the given amount.
func newStackLimits(pops, grows int) stackLimits {
	return stackLimits{min: pops, max: maxStackSize - grows}
}

func computeStackLimits(op OpCode) stackLimits {
	if op.isPush() {
		return newStackLimits(0, 1)
	}
	if DUP1 <= op && op <= DUP16 {
		return newStackLimits(int(op)-int(DUP1)+1, 1)
	}
	if SWAP1 <= op && op <= SWAP16 {
		return newStackLimits(int(op)-int(SWAP1)+2, 0)
	}
	if LOG0 <= op && op <= LOG4 {
		return newStackLimits(int(op)-int(LOG0)+2, 0)
	}

	switch op {
	case ADD, SUB, MUL, DIV, SDIV, MOD, SMOD, EXP, SIGNEXTEND,
		SHA3, LT, GT, SLT, SGT, EQ, AND, XOR, OR, BYTE,
		SHL, SHR, SAR:
		return newStackLimits(2, 0)
	case ADDMOD, MULMOD:
		return newStackLimits(3, 0)
	case ISZERO, NOT, BALANCE, CALLDATALOAD, EXTCODESIZE,
		BLOCKHASH, MLOAD, SLOAD, EXTCODEHASH:
		return newStackLimits(1, 0)
	case MSIZE, ADDRESS, ORIGIN, CALLER, CALLVALUE, CALLDATASIZE,
		CODESIZE, GASPRICE, COINBASE, TIMESTAMP, NUMBER, PREVRANDAO,
		GASLIMIT, PC, GAS, RETURNDATASIZE, SELFBALANCE, CHAINID:
		return newStackLimits(0, 1)
	case POP, JUMP, SELFDESTRUCT:
		return newStackLimits(1, 0)
	case MSTORE, MSTORE8, SSTORE, JUMPI, RETURN, REVERT:
		return newStackLimits(2, 0)
	case CALLDATACOPY, CODECOPY, RETURNDATACOPY, CREATE:
		return newStackLimits(3, 0)
	case EXTCODECOPY, CREATE2:
		return newStackLimits(4, 0)
	case CALL, CALLCODE:
		return newStackLimits(7, 0)
	case STATICCALL, DELEGATECALL:
		return newStackLimits(6, 0)
	}
	return newStackLimits(0, 0)
}

// checkStackLimits checks that the OpCode will not make an out-of-bounds
// access with the current stack size.
func checkStackLimits(stackLen int, op OpCode) error {
	limits := staticStackLimits[op]
	if stackLen < limits.min {
		return errStackUnderflow
	}
	if stackLen > limits.max {
		return errStackOverflow
	}
	return nil
}
