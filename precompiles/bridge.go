// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package precompiles

import (
	"encoding/binary"
	"fmt"

	"github.com/borealis-network/borealis/borealis"
	"github.com/ethereum/go-ethereum/crypto"
)

// The bridge contracts occupy the 0x100 address range, well clear of the
// standard precompiles and of any address derivable from a key pair.
var (
	// DeriveAddressAddress maps a host account identifier to its EVM address.
	DeriveAddressAddress = addressOf(0x100)
	// ScheduleCallAddress schedules a cross-contract call on the host chain.
	ScheduleCallAddress = addressOf(0x101)
	// PredecessorAddress reports the host account that invoked the engine.
	PredecessorAddress = addressOf(0x102)
)

const (
	deriveAddressGas     = 1000
	deriveAddressPerByte = 3
	scheduleCallGas      = 5000
	scheduleCallPerByte  = 16
	predecessorGas       = 500

	maxAccountIDLength = 64
)

const (
	errInvalidAccountID    = borealis.ConstError("invalid host account identifier")
	errMalformedCall       = borealis.ConstError("malformed cross-contract call payload")
	errStaticModeViolation = borealis.ConstError("cross-contract call scheduled in read-only frame")
)

// DeriveAddress computes the EVM address owned by a host account: the low 20
// bytes of the keccak hash of its identifier. Host accounts interact with
// the EVM world under this address.
func DeriveAddress(id borealis.AccountID) borealis.Address {
	var address borealis.Address
	copy(address[:], crypto.Keccak256([]byte(id))[12:])
	return address
}

// ValidAccountID reports whether the given string is a well-formed host
// account identifier: 2 to 64 characters of lowercase alphanumerics and the
// separators '.', '_' and '-', neither starting nor ending with a separator.
func ValidAccountID(id borealis.AccountID) bool {
	if len(id) < 2 || len(id) > maxAccountIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case 'a' <= c && c <= 'z' || '0' <= c && c <= '9':
		case c == '.' || c == '_' || c == '-':
			if i == 0 || i == len(id)-1 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// deriveAddressContract takes a host account identifier as input and returns
// its EVM address left-padded to a 32-byte word.
type deriveAddressContract struct{}

func (c *deriveAddressContract) RequiredGas(input []byte) borealis.Gas {
	return deriveAddressGas + borealis.Gas(len(input))*deriveAddressPerByte
}

func (c *deriveAddressContract) Run(_ *Env, input []byte) ([]byte, error) {
	id := borealis.AccountID(input)
	if !ValidAccountID(id) {
		return nil, fmt.Errorf("%w: %q", errInvalidAccountID, input)
	}
	address := DeriveAddress(id)
	output := make([]byte, 32)
	copy(output[12:], address[:])
	return output, nil
}

// scheduleCallContract records a cross-contract call on the host chain as a
// pending effect. The input is a packed payload:
//
//	[ 0..32)  deposit, 32-byte big-endian value
//	[32..40)  attached host gas, 8-byte big-endian
//	[40..42)  target length n, 2-byte big-endian
//	[42..42+n) target account identifier
//	[ ..  +2) method length m, 2-byte big-endian
//	[ ..  +m) method name
//	rest      call arguments
//
// Scheduling is a side effect and therefore rejected in read-only frames.
// The recorded call becomes visible to the host only after the transaction's
// state changes have committed.
type scheduleCallContract struct{}

func (c *scheduleCallContract) RequiredGas(input []byte) borealis.Gas {
	return scheduleCallGas + borealis.Gas(len(input))*scheduleCallPerByte
}

func (c *scheduleCallContract) Run(env *Env, input []byte) ([]byte, error) {
	if env.Static {
		return nil, errStaticModeViolation
	}
	call, err := decodeCallPayload(input)
	if err != nil {
		return nil, err
	}
	env.Effects.Add(call)
	return nil, nil
}

func decodeCallPayload(input []byte) (borealis.CrossContractCall, error) {
	var call borealis.CrossContractCall
	if len(input) < 44 {
		return call, errMalformedCall
	}
	copy(call.Deposit[:], input[0:32])
	call.GasLimit = borealis.HostGas(binary.BigEndian.Uint64(input[32:40]))

	rest := input[40:]
	target, rest, err := readString(rest)
	if err != nil {
		return call, err
	}
	call.Target = borealis.AccountID(target)
	if !ValidAccountID(call.Target) {
		return call, fmt.Errorf("%w: %q", errInvalidAccountID, target)
	}
	method, rest, err := readString(rest)
	if err != nil {
		return call, err
	}
	if len(method) == 0 {
		return call, errMalformedCall
	}
	call.Method = method
	call.Args = append([]byte{}, rest...)
	return call, nil
}

func readString(data []byte) (string, []byte, error) {
	if len(data) < 2 {
		return "", nil, errMalformedCall
	}
	length := int(binary.BigEndian.Uint16(data))
	if len(data) < 2+length {
		return "", nil, errMalformedCall
	}
	return string(data[2 : 2+length]), data[2+length:], nil
}

// predecessorContract returns the identifier of the host account that
// invoked the engine, as raw bytes.
type predecessorContract struct{}

func (c *predecessorContract) RequiredGas([]byte) borealis.Gas {
	return predecessorGas
}

func (c *predecessorContract) Run(env *Env, _ []byte) ([]byte, error) {
	return []byte(env.Runtime.PredecessorAccountID()), nil
}
