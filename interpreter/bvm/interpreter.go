// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package bvm implements the byte-code interpreter: a single-frame EVM for
// the Istanbul instruction set, executing raw contract code against a
// RunContext. Anything crossing the frame boundary, like nested calls or
// transaction handling, is delegated back to the context.
package bvm

import (
	"fmt"

	"github.com/borealis-network/borealis/borealis"
)

// status is an enumeration of the execution state of an interpreter run.
type status byte

const (
	statusRunning        status = iota // < all fine, ops are processed
	statusStopped                      // < execution stopped with a STOP
	statusReverted                     // < execution stopped with a REVERT
	statusReturned                     // < execution stopped with a RETURN
	statusSelfDestructed               // < execution stopped with a SELF-DESTRUCT
	statusFailed                       // < execution stopped with a logic error
)

// context is the execution environment of an interpreter run. It contains
// all the necessary state to execute a contract: input parameters, the
// contract code with its jump destination analysis, and the internal
// execution state such as the program counter, stack, and memory. A new
// context is created for each frame.
type context struct {
	// Inputs
	params  borealis.Parameters
	context borealis.RunContext
	code    []byte
	dests   jumpDests

	// Execution state
	pc     int
	gas    borealis.Gas
	refund borealis.Gas
	stack  *stack
	memory *memory

	// Intermediate data
	returnData []byte // < the result of the last nested contract call
}

// useGas reduces the gas level by the given amount. If the gas level would
// drop below zero, the execution is to be aborted with an out-of-gas error.
func (c *context) useGas(amount borealis.Gas) error {
	if c.gas < 0 || amount < 0 || c.gas < amount {
		c.gas = 0
		return errOutOfGas
	}
	c.gas -= amount
	return nil
}

const defaultAnalysisCacheCapacity = 4096

const maxCallDepth = 1024

// Interpreter executes raw EVM byte code under the Istanbul rules. Instances
// are safe for concurrent use; per-frame state lives in the context.
type Interpreter struct {
	analyses *analysisCache
}

func NewInterpreter() *Interpreter {
	return &Interpreter{
		analyses: newAnalysisCache(defaultAnalysisCacheCapacity),
	}
}

func (i *Interpreter) Run(params borealis.Parameters) (borealis.Result, error) {
	// The depth limit is enforced by the caller before dispatching a
	// frame; a violation here is a broken contract, not a failed frame.
	if params.Depth > maxCallDepth {
		return borealis.Result{}, borealis.ErrCallDepthExceeded
	}

	// Don't bother with the execution if there's no code.
	if len(params.Code) == 0 {
		return borealis.Result{
			Output:  nil,
			GasLeft: params.Gas,
			Success: true,
		}, nil
	}

	var codeHash borealis.Hash
	if params.CodeHash != nil {
		codeHash = *params.CodeHash
	}

	ctxt := context{
		params:  params,
		context: params.Context,
		code:    params.Code,
		dests:   i.analyses.get(codeHash, params.Code),
		gas:     params.Gas,
		stack:   newStack(),
		memory:  newMemory(),
	}
	defer returnStack(ctxt.stack)

	status, err := steps(&ctxt)
	if err != nil {
		status = statusFailed
	}
	return generateResult(status, &ctxt)
}

func generateResult(status status, ctxt *context) (borealis.Result, error) {
	switch status {
	case statusStopped, statusSelfDestructed:
		return borealis.Result{
			Success:   true,
			GasLeft:   ctxt.gas,
			GasRefund: ctxt.refund,
		}, nil
	case statusReturned:
		return borealis.Result{
			Success:   true,
			Output:    ctxt.returnData,
			GasLeft:   ctxt.gas,
			GasRefund: ctxt.refund,
		}, nil
	case statusReverted:
		return borealis.Result{
			Success: false,
			Output:  ctxt.returnData,
			GasLeft: ctxt.gas,
		}, nil
	case statusFailed:
		return borealis.Result{
			Success: false,
		}, nil
	default:
		return borealis.Result{}, fmt.Errorf("unexpected error in interpreter, unknown status: %v", status)
	}
}

// steps executes the contract code in the given context until the code
// terminates or an execution violation (out of gas, stack underflow, ...)
// aborts the frame.
func steps(c *context) (status, error) {
	status := statusRunning
	for status == statusRunning {
		if c.pc >= len(c.code) {
			return statusStopped, nil
		}

		op := OpCode(c.code[c.pc])

		// Check stack boundary for every instruction.
		if err := checkStackLimits(c.stack.len(), op); err != nil {
			return status, err
		}

		// Consume the static gas price of the instruction before execution.
		if err := c.useGas(staticGasPrices[op]); err != nil {
			return status, err
		}

		var err error
		switch op {
		case STOP:
			status = opStop()
		case ADD:
			opAdd(c)
		case MUL:
			opMul(c)
		case SUB:
			opSub(c)
		case DIV:
			opDiv(c)
		case SDIV:
			opSDiv(c)
		case MOD:
			opMod(c)
		case SMOD:
			opSMod(c)
		case ADDMOD:
			opAddMod(c)
		case MULMOD:
			opMulMod(c)
		case EXP:
			err = opExp(c)
		case SIGNEXTEND:
			opSignExtend(c)
		case LT:
			opLt(c)
		case GT:
			opGt(c)
		case SLT:
			opSlt(c)
		case SGT:
			opSgt(c)
		case EQ:
			opEq(c)
		case ISZERO:
			opIszero(c)
		case AND:
			opAnd(c)
		case OR:
			opOr(c)
		case XOR:
			opXor(c)
		case NOT:
			opNot(c)
		case BYTE:
			opByte(c)
		case SHL:
			opShl(c)
		case SHR:
			opShr(c)
		case SAR:
			opSar(c)
		case SHA3:
			err = opSha3(c)
		case ADDRESS:
			opAddress(c)
		case BALANCE:
			err = opBalance(c)
		case ORIGIN:
			opOrigin(c)
		case CALLER:
			opCaller(c)
		case CALLVALUE:
			opCallvalue(c)
		case CALLDATALOAD:
			opCallDataload(c)
		case CALLDATASIZE:
			opCallDatasize(c)
		case CALLDATACOPY:
			err = genericDataCopy(c, c.params.Input)
		case CODESIZE:
			opCodeSize(c)
		case CODECOPY:
			err = genericDataCopy(c, c.code)
		case GASPRICE:
			opGasPrice(c)
		case EXTCODESIZE:
			err = opExtcodesize(c)
		case EXTCODECOPY:
			err = opExtCodeCopy(c)
		case RETURNDATASIZE:
			opReturnDataSize(c)
		case RETURNDATACOPY:
			err = opReturnDataCopy(c)
		case EXTCODEHASH:
			err = opExtcodehash(c)
		case BLOCKHASH:
			opBlockhash(c)
		case COINBASE:
			opCoinbase(c)
		case TIMESTAMP:
			opTimestamp(c)
		case NUMBER:
			opNumber(c)
		case PREVRANDAO:
			opPrevRandao(c)
		case GASLIMIT:
			opGasLimit(c)
		case CHAINID:
			opChainId(c)
		case SELFBALANCE:
			opSelfbalance(c)
		case POP:
			opPop(c)
		case MLOAD:
			err = opMload(c)
		case MSTORE:
			err = opMstore(c)
		case MSTORE8:
			err = opMstore8(c)
		case SLOAD:
			err = opSload(c)
		case SSTORE:
			err = opSstore(c)
		case JUMP:
			err = opJump(c)
		case JUMPI:
			err = opJumpi(c)
		case PC:
			opPc(c)
		case MSIZE:
			opMsize(c)
		case GAS:
			opGas(c)
		case JUMPDEST:
			// nothing
		case RETURN:
			err = opEndWithResult(c)
			status = statusReturned
		case REVERT:
			err = opEndWithResult(c)
			status = statusReverted
		case CREATE:
			err = genericCreate(c, borealis.Create)
		case CREATE2:
			err = genericCreate(c, borealis.Create2)
		case CALL:
			err = opCall(c)
		case CALLCODE:
			err = opCallCode(c)
		case STATICCALL:
			err = opStaticCall(c)
		case DELEGATECALL:
			err = opDelegateCall(c)
		case LOG0:
			err = opLog(c, 0)
		case LOG1:
			err = opLog(c, 1)
		case LOG2:
			err = opLog(c, 2)
		case LOG3:
			err = opLog(c, 3)
		case LOG4:
			err = opLog(c, 4)
		case SELFDESTRUCT:
			status, err = opSelfdestruct(c)
		default:
			if op.isPush() {
				opPush(c, op.pushSize())
			} else if DUP1 <= op && op <= DUP16 {
				opDup(c, int(op)-int(DUP1)+1)
			} else if SWAP1 <= op && op <= SWAP16 {
				opSwap(c, int(op)-int(SWAP1)+1)
			} else {
				err = errInvalidOpCode
			}
		}

		if err != nil {
			return status, err
		}
		c.pc++
	}
	return status, nil
}
