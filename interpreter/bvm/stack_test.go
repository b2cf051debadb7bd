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
	"errors"
	"testing"

	"github.com/holiman/uint256"

	"github.com/borealis-network/borealis/borealis"
)

func TestStack_PushAndPop(t *testing.T) {
	s := newStack()
	defer returnStack(s)

	s.push(uint256.NewInt(1))
	s.push(uint256.NewInt(2))
	s.push(uint256.NewInt(3))

	if want, got := 3, s.len(); want != got {
		t.Fatalf("unexpected stack size, wanted %d, got %d", want, got)
	}
	for _, want := range []uint64{3, 2, 1} {
		if got := s.pop().Uint64(); want != got {
			t.Errorf("unexpected value popped, wanted %d, got %d", want, got)
		}
	}
	if want, got := 0, s.len(); want != got {
		t.Errorf("unexpected stack size, wanted %d, got %d", want, got)
	}
}

func TestStack_PushMakesACopy(t *testing.T) {
	s := newStack()
	defer returnStack(s)

	value := uint256.NewInt(1)
	s.push(value)
	value.SetUint64(2)

	if got := s.pop().Uint64(); got != 1 {
		t.Errorf("push did not copy the value, got %d", got)
	}
}

func TestStack_PushUndefinedGrowsTheStack(t *testing.T) {
	s := newStack()
	defer returnStack(s)

	s.pushUndefined().SetUint64(42)
	if want, got := 1, s.len(); want != got {
		t.Fatalf("unexpected stack size, wanted %d, got %d", want, got)
	}
	if got := s.peek().Uint64(); got != 42 {
		t.Errorf("unexpected value on top, wanted 42, got %d", got)
	}
}

func TestStack_PeekN(t *testing.T) {
	s := newStack()
	defer returnStack(s)

	s.push(uint256.NewInt(1))
	s.push(uint256.NewInt(2))
	s.push(uint256.NewInt(3))

	for n, want := range []uint64{3, 2, 1} {
		if got := s.peekN(n).Uint64(); want != got {
			t.Errorf("unexpected value at depth %d, wanted %d, got %d", n, want, got)
		}
	}
	if want, got := 3, s.len(); want != got {
		t.Errorf("peek modified the stack size, wanted %d, got %d", want, got)
	}
}

func TestStack_SwapExchangesElements(t *testing.T) {
	s := newStack()
	defer returnStack(s)

	s.push(uint256.NewInt(1))
	s.push(uint256.NewInt(2))
	s.push(uint256.NewInt(3))

	s.swap(2)

	if want, got := uint64(1), s.peek().Uint64(); want != got {
		t.Errorf("unexpected top element, wanted %d, got %d", want, got)
	}
	if want, got := uint64(3), s.peekN(2).Uint64(); want != got {
		t.Errorf("unexpected bottom element, wanted %d, got %d", want, got)
	}
}

func TestStack_DupCopiesElement(t *testing.T) {
	s := newStack()
	defer returnStack(s)

	s.push(uint256.NewInt(1))
	s.push(uint256.NewInt(2))

	s.dup(1)

	if want, got := 3, s.len(); want != got {
		t.Fatalf("unexpected stack size, wanted %d, got %d", want, got)
	}
	if want, got := uint64(1), s.peek().Uint64(); want != got {
		t.Errorf("unexpected top element, wanted %d, got %d", want, got)
	}
}

func TestStack_RecycledStackIsEmpty(t *testing.T) {
	s := newStack()
	s.push(uint256.NewInt(1))
	returnStack(s)

	s = newStack()
	defer returnStack(s)
	if want, got := 0, s.len(); want != got {
		t.Errorf("recycled stack is not empty, wanted size %d, got %d", want, got)
	}
}

func TestCheckStackLimits_DetectsViolations(t *testing.T) {
	tests := map[string]struct {
		op   OpCode
		size int
		want error
	}{
		"add on empty stack":       {ADD, 0, errStackUnderflow},
		"add on one element":       {ADD, 1, errStackUnderflow},
		"add on two elements":      {ADD, 2, nil},
		"push on empty stack":      {PUSH1, 0, nil},
		"push on full stack":       {PUSH1, maxStackSize, errStackOverflow},
		"push on almost full":      {PUSH1, maxStackSize - 1, nil},
		"swap16 on 16 elements":    {SWAP16, 16, errStackUnderflow},
		"swap16 on 17 elements":    {SWAP16, 17, nil},
		"dup16 on 15 elements":     {DUP16, 15, errStackUnderflow},
		"dup16 on full stack":      {DUP16, maxStackSize, errStackOverflow},
		"call on six elements":     {CALL, 6, errStackUnderflow},
		"call on seven elements":   {CALL, 7, nil},
		"static call on five":      {STATICCALL, 5, errStackUnderflow},
		"static call on six":       {STATICCALL, 6, nil},
		"log4 on five elements":    {LOG4, 5, errStackUnderflow},
		"log4 on six elements":     {LOG4, 6, nil},
		"stop on empty stack":      {STOP, 0, nil},
		"jumpdest on full stack":   {JUMPDEST, maxStackSize, nil},
		"msize on full stack":      {MSIZE, maxStackSize, errStackOverflow},
		"create2 on three":         {CREATE2, 3, errStackUnderflow},
		"create2 on four elements": {CREATE2, 4, nil},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := checkStackLimits(test.size, test.op)
			if got != test.want {
				t.Errorf("unexpected check result, wanted %v, got %v", test.want, got)
			}
			if got != nil && !errors.Is(got, borealis.ErrStackError) {
				t.Errorf("stack violations must belong to the stack error taxonomy, got %v", got)
			}
		})
	}
}
