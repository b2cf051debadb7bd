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
	"github.com/borealis-network/borealis/borealis"
	"github.com/holiman/uint256"
)

const (
	callNewAccountGas    borealis.Gas = 25000 // paid for CALL when the destination did not exist prior
	callValueTransferGas borealis.Gas = 9000  // paid for CALL when the value transfer is non-zero
	callStipend          borealis.Gas = 2300  // free gas given at beginning of a value-bearing call

	selfdestructGas         borealis.Gas = 5000  // gas cost of SELFDESTRUCT post EIP-150
	selfdestructRefundGas   borealis.Gas = 24000 // refunded following a selfdestruct operation
	createBySelfdestructGas borealis.Gas = 25000 // paid when the beneficiary account does not exist

	sloadGas              borealis.Gas = 800   // cost of SLOAD under EIP-2200 (part of Istanbul)
	sstoreSentryGas       borealis.Gas = 2300  // minimum gas required to be present for an SSTORE, not consumed
	sstoreSetGas          borealis.Gas = 20000 // once per SSTORE from clean zero to non-zero
	sstoreResetGas        borealis.Gas = 5000  // once per SSTORE from clean non-zero to something else
	sstoreClearsRefundGas borealis.Gas = 15000 // once per SSTORE clearing an originally existing slot
)

var staticGasPrices = [numOpCodes]borealis.Gas{}

func init() {
	for i := 0; i < numOpCodes; i++ {
		staticGasPrices[i] = getStaticGasPriceInternal(OpCode(i))
	}
}

func getStaticGasPriceInternal(op OpCode) borealis.Gas {
	if op.isPush() {
		return 3
	}
	if DUP1 <= op && op <= DUP16 {
		return 3
	}
	if SWAP1 <= op && op <= SWAP16 {
		return 3
	}
	if LT <= op && op <= SAR {
		return 3
	}
	switch op {
	case STOP, RETURN, REVERT, SSTORE:
		return 0 // SSTORE costs are handled in gasSStore below
	case JUMPDEST:
		return 1
	case POP, ADDRESS, ORIGIN, CALLER, CALLVALUE, CALLDATASIZE,
		CODESIZE, GASPRICE, RETURNDATASIZE, COINBASE, TIMESTAMP,
		NUMBER, PREVRANDAO, GASLIMIT, CHAINID, PC, MSIZE, GAS:
		return 2
	case ADD, SUB, CALLDATALOAD, CALLDATACOPY, CODECOPY,
		RETURNDATACOPY, MLOAD, MSTORE, MSTORE8:
		return 3
	case MUL, DIV, SDIV, MOD, SMOD, SIGNEXTEND, SELFBALANCE:
		return 5
	case ADDMOD, MULMOD:
		return 8
	case EXP:
		return 10
	case SHA3:
		return 30
	case BLOCKHASH:
		return 20
	case JUMP:
		return 8
	case JUMPI:
		return 10
	case SLOAD:
		return sloadGas
	case BALANCE, EXTCODESIZE, EXTCODECOPY, EXTCODEHASH:
		return 700
	case LOG0:
		return 375
	case LOG1:
		return 750
	case LOG2:
		return 1125
	case LOG3:
		return 1500
	case LOG4:
		return 1875
	case CREATE, CREATE2:
		return 32000
	case CALL, CALLCODE, STATICCALL, DELEGATECALL:
		return 700
	case SELFDESTRUCT:
		return 0 // costs are handled in opSelfdestruct
	}
	return 0 // invalid instructions fail before charging
}

// callGas computes the gas forwarded to a nested call under the 63/64 rule
// of EIP-150: at most all but one 64th of the available gas may be passed on.
func callGas(availableGas, base borealis.Gas, callCost *uint256.Int) borealis.Gas {
	availableGas = availableGas - base
	if availableGas < 0 {
		return base
	}
	gas := availableGas - availableGas/64
	if !callCost.IsUint64() || gas < borealis.Gas(callCost.Uint64()) {
		return gas
	}
	return borealis.Gas(callCost.Uint64())
}

// gasSStore returns the gas cost of an SSTORE with the given effect under
// the EIP-2200 rules.
func gasSStore(status borealis.StorageStatus) borealis.Gas {
	switch status {
	case borealis.StorageAdded:
		return sstoreSetGas
	case borealis.StorageDeleted, borealis.StorageModified:
		return sstoreResetGas
	}
	// All dirty and no-op updates are charged the SLOAD price.
	return sloadGas
}

// refundSStore returns the refund delta of an SSTORE with the given effect
// under the EIP-2200 rules. The delta may be negative when a previously
// granted clearing refund is taken back.
func refundSStore(status borealis.StorageStatus) borealis.Gas {
	switch status {
	case borealis.StorageDeleted, borealis.StorageModifiedDeleted:
		return sstoreClearsRefundGas
	case borealis.StorageDeletedAdded:
		return -sstoreClearsRefundGas
	case borealis.StorageDeletedRestored:
		return sstoreResetGas - sloadGas - sstoreClearsRefundGas
	case borealis.StorageAddedDeleted:
		return sstoreSetGas - sloadGas
	case borealis.StorageModifiedRestored:
		return sstoreResetGas - sloadGas
	}
	return 0
}
