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
	"bytes"
	"math"

	"github.com/borealis-network/borealis/borealis"
	"github.com/holiman/uint256"
)

func opStop() status {
	return statusStopped
}

func opEndWithResult(c *context) error {
	offset := c.stack.pop()
	size := c.stack.pop()
	if err := checkSizeOffsetUint64Overflow(offset, size); err != nil {
		return err
	}
	data, err := c.memory.getSlice(offset.Uint64(), size.Uint64(), c)
	if err != nil {
		return err
	}
	c.returnData = data
	return nil
}

// --- stack and control flow ---

func opPop(c *context) {
	c.stack.pop()
}

func opPush(c *context, n int) {
	// Immediate data reaching beyond the end of the code reads as zeros.
	start := c.pc + 1
	end := start + n
	if end > len(c.code) {
		var padded [32]byte
		copy(padded[:], c.code[start:])
		c.stack.pushUndefined().SetBytes(padded[:n])
	} else {
		c.stack.pushUndefined().SetBytes(c.code[start:end])
	}
	c.pc += n
}

func opDup(c *context, pos int) {
	c.stack.dup(pos - 1)
}

func opSwap(c *context, pos int) {
	c.stack.swap(pos)
}

func opJump(c *context) error {
	destination := c.stack.pop()
	return c.jumpTo(destination)
}

func opJumpi(c *context) error {
	destination := c.stack.pop()
	condition := c.stack.pop()
	if condition.IsZero() {
		return nil
	}
	return c.jumpTo(destination)
}

// jumpTo moves the program counter to the given destination, which must be a
// valid JUMPDEST position. The counter is set to destination-1 since the
// interpreter increments it after every instruction.
func (c *context) jumpTo(destination *uint256.Int) error {
	if !destination.IsUint64() || !c.dests.isValid(destination.Uint64()) {
		return errInvalidJump
	}
	c.pc = int(destination.Uint64()) - 1
	return nil
}

func opPc(c *context) {
	c.stack.pushUndefined().SetUint64(uint64(c.pc))
}

func opGas(c *context) {
	c.stack.pushUndefined().SetUint64(uint64(c.gas))
}

// --- arithmetic, comparison and bit operations ---

func opAdd(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Add(a, b)
}

func opSub(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Sub(a, b)
}

func opMul(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Mul(a, b)
}

func opDiv(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Div(a, b)
}

func opSDiv(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.SDiv(a, b)
}

func opMod(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Mod(a, b)
}

func opSMod(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.SMod(a, b)
}

func opAddMod(c *context) {
	a := c.stack.pop()
	b := c.stack.pop()
	n := c.stack.peek()
	n.AddMod(a, b, n)
}

func opMulMod(c *context) {
	a := c.stack.pop()
	b := c.stack.pop()
	n := c.stack.peek()
	n.MulMod(a, b, n)
}

func opExp(c *context) error {
	base, exponent := c.stack.pop(), c.stack.peek()
	if err := c.useGas(borealis.Gas(50 * exponent.ByteLen())); err != nil {
		return err
	}
	exponent.Exp(base, exponent)
	return nil
}

func opSignExtend(c *context) {
	back, num := c.stack.pop(), c.stack.peek()
	num.ExtendSign(num, back)
}

func opLt(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	if a.Lt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
}

func opGt(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	if a.Gt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
}

func opSlt(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	if a.Slt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
}

func opSgt(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	if a.Sgt(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
}

func opEq(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	if a.Eq(b) {
		b.SetOne()
	} else {
		b.Clear()
	}
}

func opIszero(c *context) {
	top := c.stack.peek()
	if top.IsZero() {
		top.SetOne()
	} else {
		top.Clear()
	}
}

func opAnd(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.And(a, b)
}

func opOr(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Or(a, b)
}

func opXor(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Xor(a, b)
}

func opNot(c *context) {
	a := c.stack.peek()
	a.Not(a)
}

func opByte(c *context) {
	th, val := c.stack.pop(), c.stack.peek()
	val.Byte(th)
}

func opShl(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	if a.LtUint64(256) {
		b.Lsh(b, uint(a.Uint64()))
	} else {
		b.Clear()
	}
}

func opShr(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	if a.LtUint64(256) {
		b.Rsh(b, uint(a.Uint64()))
	} else {
		b.Clear()
	}
}

func opSar(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	if a.GtUint64(256) {
		if b.Sign() >= 0 {
			b.Clear()
		} else {
			b.SetAllOne()
		}
		return
	}
	b.SRsh(b, uint(a.Uint64()))
}

func opSha3(c *context) error {
	offset, size := c.stack.pop(), c.stack.peek()
	if checkSizeOffsetUint64Overflow(offset, size) != nil {
		return errOverflow
	}
	data, err := c.memory.getSlice(offset.Uint64(), size.Uint64(), c)
	if err != nil {
		return err
	}
	words := borealis.SizeInWords(size.Uint64())
	if err := c.useGas(borealis.Gas(6 * words)); err != nil {
		return err
	}
	hash := keccak256(data)
	size.SetBytes32(hash[:])
	return nil
}

// --- environment ---

func opAddress(c *context) {
	c.stack.pushUndefined().SetBytes20(c.params.Recipient[:])
}

func opOrigin(c *context) {
	origin := c.params.Origin
	c.stack.pushUndefined().SetBytes20(origin[:])
}

func opCaller(c *context) {
	c.stack.pushUndefined().SetBytes20(c.params.Sender[:])
}

func opCallvalue(c *context) {
	c.stack.pushUndefined().SetBytes32(c.params.Value[:])
}

func opGasPrice(c *context) {
	price := c.params.GasPrice
	c.stack.pushUndefined().SetBytes32(price[:])
}

func opChainId(c *context) {
	id := c.params.ChainID
	c.stack.pushUndefined().SetBytes32(id[:])
}

func opCoinbase(c *context) {
	// The host chain has no block producer address in the EVM sense.
	c.stack.pushUndefined().Clear()
}

func opTimestamp(c *context) {
	time := c.params.Timestamp
	c.stack.pushUndefined().SetUint64(uint64(time))
}

func opNumber(c *context) {
	number := c.params.BlockNumber
	c.stack.pushUndefined().SetUint64(uint64(number))
}

func opPrevRandao(c *context) {
	// No randomness beacon on the host chain; a deterministic zero keeps
	// replays bit-identical across nodes.
	c.stack.pushUndefined().Clear()
}

func opGasLimit(c *context) {
	limit := c.params.GasLimit
	c.stack.pushUndefined().SetUint64(uint64(limit))
}

func opBlockhash(c *context) {
	num := c.stack.peek()
	num64, overflow := num.Uint64WithOverflow()
	if overflow {
		num.Clear()
		return
	}
	var upper, lower uint64
	upper = uint64(c.params.BlockNumber)
	if upper < 257 {
		lower = 0
	} else {
		lower = upper - 256
	}
	if num64 >= lower && num64 < upper {
		hash := c.context.GetBlockHash(int64(num64))
		num.SetBytes(hash[:])
	} else {
		num.Clear()
	}
}

func opBalance(c *context) error {
	slot := c.stack.peek()
	address := borealis.Address(slot.Bytes20())
	balance := c.context.GetBalance(address)
	slot.SetBytes32(balance[:])
	return nil
}

func opSelfbalance(c *context) {
	balance := c.context.GetBalance(c.params.Recipient)
	c.stack.pushUndefined().SetBytes32(balance[:])
}

// --- data access ---

func opCallDatasize(c *context) {
	size := len(c.params.Input)
	c.stack.pushUndefined().SetUint64(uint64(size))
}

func opCallDataload(c *context) {
	top := c.stack.peek()
	if !top.IsUint64() {
		top.Clear()
		return
	}
	offset := top.Uint64()
	top.SetBytes(getData(c.params.Input, offset, 32))
}

func opCodeSize(c *context) {
	size := len(c.code)
	c.stack.pushUndefined().SetUint64(uint64(size))
}

// genericDataCopy copies a section of the given data source into memory,
// padded with zeros beyond the end of the source. It covers CALLDATACOPY
// and CODECOPY.
func genericDataCopy(c *context, data []byte) error {
	var (
		memOffset  = c.stack.pop()
		dataOffset = c.stack.pop()
		length     = c.stack.pop()
	)
	dataOffset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		dataOffset64 = math.MaxUint64
	}
	if err := checkSizeOffsetUint64Overflow(memOffset, length); err != nil {
		return err
	}
	words := borealis.SizeInWords(length.Uint64())
	if err := c.useGas(borealis.Gas(3 * words)); err != nil {
		return err
	}
	target, err := c.memory.getSlice(memOffset.Uint64(), length.Uint64(), c)
	if err != nil {
		return err
	}
	copy(target, getData(data, dataOffset64, length.Uint64()))
	return nil
}

func opExtcodesize(c *context) error {
	top := c.stack.peek()
	address := borealis.Address(top.Bytes20())
	top.SetUint64(uint64(c.context.GetCodeSize(address)))
	return nil
}

func opExtcodehash(c *context) error {
	slot := c.stack.peek()
	address := borealis.Address(slot.Bytes20())
	if !c.context.AccountExists(address) {
		slot.Clear()
	} else {
		hash := c.context.GetCodeHash(address)
		slot.SetBytes32(hash[:])
	}
	return nil
}

func opExtCodeCopy(c *context) error {
	var (
		a          = c.stack.pop()
		memOffset  = c.stack.pop()
		codeOffset = c.stack.pop()
		length     = c.stack.pop()
	)
	if err := checkSizeOffsetUint64Overflow(memOffset, length); err != nil {
		return err
	}
	words := borealis.SizeInWords(length.Uint64())
	if err := c.useGas(borealis.Gas(3 * words)); err != nil {
		return err
	}
	var codeOffset64 uint64
	if codeOffset.IsUint64() {
		codeOffset64 = codeOffset.Uint64()
	} else {
		codeOffset64 = math.MaxUint64
	}
	address := borealis.Address(a.Bytes20())
	target, err := c.memory.getSlice(memOffset.Uint64(), length.Uint64(), c)
	if err != nil {
		return err
	}
	copy(target, getData(c.context.GetCode(address), codeOffset64, length.Uint64()))
	return nil
}

func opReturnDataSize(c *context) {
	c.stack.pushUndefined().SetUint64(uint64(len(c.returnData)))
}

func opReturnDataCopy(c *context) error {
	var (
		memOffset  = c.stack.pop()
		dataOffset = c.stack.pop()
		length     = c.stack.pop()
	)
	offset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		return errReturnDataOutOfBounds
	}
	end := new(uint256.Int).Add(dataOffset, length)
	end64, overflow := end.Uint64WithOverflow()
	if overflow {
		return errReturnDataOutOfBounds
	}
	if uint64(len(c.returnData)) < end64 {
		return errReturnDataOutOfBounds
	}
	if err := checkSizeOffsetUint64Overflow(memOffset, length); err != nil {
		return err
	}
	words := borealis.SizeInWords(length.Uint64())
	if err := c.useGas(borealis.Gas(3 * words)); err != nil {
		return err
	}
	return c.memory.set(memOffset.Uint64(), c.returnData[offset64:end64], c)
}

// getData returns a size-byte section of data starting at the given offset,
// right-padded with zeros.
func getData(data []byte, start uint64, size uint64) []byte {
	length := uint64(len(data))
	if start > length {
		start = length
	}
	end := start + size
	if end > length {
		end = length
	}
	res := make([]byte, int(size))
	copy(res, data[start:end])
	return res
}

// --- memory ---

func opMload(c *context) error {
	trg := c.stack.peek()
	addr := *trg
	if !addr.IsUint64() {
		return errOverflow
	}
	return c.memory.readWord(addr.Uint64(), trg, c)
}

func opMstore(c *context) error {
	addr := c.stack.pop()
	value := c.stack.pop()
	offset, overflow := addr.Uint64WithOverflow()
	if overflow {
		return errOverflow
	}
	return c.memory.setWord(offset, value, c)
}

func opMstore8(c *context) error {
	addr := c.stack.pop()
	value := c.stack.pop()
	offset, overflow := addr.Uint64WithOverflow()
	if overflow {
		return errOverflow
	}
	return c.memory.set(offset, []byte{byte(value.Uint64())}, c)
}

func opMsize(c *context) {
	c.stack.pushUndefined().SetUint64(c.memory.length())
}

// --- storage ---

func opSload(c *context) error {
	top := c.stack.peek()
	slot := borealis.Key(top.Bytes32())
	value := c.context.GetStorage(c.params.Recipient, slot)
	top.SetBytes32(value[:])
	return nil
}

func opSstore(c *context) error {
	if c.params.Static {
		return errStaticContextViolation
	}
	// EIP-2200 demands that more than 2300 gas is available for SSTORE.
	if c.gas <= sstoreSentryGas {
		return errNotEnoughGasForSstore
	}
	key := borealis.Key(c.stack.pop().Bytes32())
	value := borealis.Word(c.stack.pop().Bytes32())

	storageStatus := c.context.SetStorage(c.params.Recipient, key, value)
	if err := c.useGas(gasSStore(storageStatus)); err != nil {
		return err
	}
	c.refund += refundSStore(storageStatus)
	return nil
}

// --- logging ---

func opLog(c *context, size int) error {
	if c.params.Static {
		return errStaticContextViolation
	}
	topics := make([]borealis.Hash, size)
	mStart, mSize := c.stack.pop(), c.stack.pop()
	if err := checkSizeOffsetUint64Overflow(mStart, mSize); err != nil {
		return err
	}
	for i := 0; i < size; i++ {
		topics[i] = c.stack.pop().Bytes32()
	}

	logSize := mSize.Uint64()
	if err := c.useGas(borealis.Gas(8 * logSize)); err != nil {
		return err
	}
	data, err := c.memory.getSlice(mStart.Uint64(), logSize, c)
	if err != nil {
		return err
	}
	c.context.EmitLog(borealis.Log{
		Address: c.params.Recipient,
		Topics:  topics,
		Data:    bytes.Clone(data),
	})
	return nil
}

// --- calls and creation ---

func genericCreate(c *context, kind borealis.CallKind) error {
	if c.params.Static {
		return errStaticContextViolation
	}
	var (
		value  = c.stack.pop()
		offset = c.stack.pop()
		size   = c.stack.pop()
		salt   = borealis.Hash{}
	)
	if kind == borealis.Create2 {
		salt = c.stack.pop().Bytes32()
	}

	if checkSizeOffsetUint64Overflow(offset, size) != nil {
		return errOverflow
	}
	sizeU64 := size.Uint64()
	input, err := c.memory.getSlice(offset.Uint64(), sizeU64, c)
	if err != nil {
		return err
	}

	if kind == borealis.Create2 {
		// Charge for hashing the init code to compute the target address.
		words := borealis.SizeInWords(sizeU64)
		if err := c.useGas(borealis.Gas(6 * words)); err != nil {
			return err
		}
	}

	if !value.IsZero() {
		balance := c.context.GetBalance(c.params.Recipient)
		balanceU256 := new(uint256.Int).SetBytes(balance[:])
		if value.Gt(balanceU256) {
			c.stack.pushUndefined().Clear()
			c.returnData = nil
			return nil
		}
	}

	// All but one 64th of the remaining gas is handed to the nested frame.
	gas := c.gas
	gas -= gas / 64
	if err := c.useGas(gas); err != nil {
		return err
	}

	res, err := c.context.Call(kind, borealis.CallParameters{
		Sender: c.params.Recipient,
		Value:  borealis.Value(value.Bytes32()),
		Input:  input,
		Gas:    gas,
		Salt:   salt,
	})

	success := c.stack.pushUndefined()
	if err != nil || !res.Success {
		success.Clear()
	} else {
		success.SetBytes20(res.CreatedAddress[:])
	}
	if !res.Success && err == nil {
		c.returnData = res.Output
	} else {
		c.returnData = nil
	}
	c.gas += res.GasLeft
	c.refund += res.GasRefund
	return nil
}

func opCall(c *context) error {
	value := c.stack.peekN(2)
	// In a static call, no value must be transferred.
	if c.params.Static && !value.IsZero() {
		return errStaticContextViolation
	}
	return genericCall(c, borealis.Call)
}

func opCallCode(c *context) error {
	return genericCall(c, borealis.CallCode)
}

func opStaticCall(c *context) error {
	return genericCall(c, borealis.StaticCall)
}

func opDelegateCall(c *context) error {
	return genericCall(c, borealis.DelegateCall)
}

func genericCall(c *context, kind borealis.CallKind) error {
	stack := c.stack
	value := uint256.NewInt(0)

	providedGas, addr := stack.pop(), stack.pop()
	if kind == borealis.Call || kind == borealis.CallCode {
		value = stack.pop()
	}
	inOffset, inSize, retOffset, retSize := stack.pop(), stack.pop(), stack.pop(), stack.pop()

	toAddr := borealis.Address(addr.Bytes20())

	if checkSizeOffsetUint64Overflow(inOffset, inSize) != nil {
		return errOverflow
	}
	if checkSizeOffsetUint64Overflow(retOffset, retSize) != nil {
		return errOverflow
	}

	args, err := c.memory.getSlice(inOffset.Uint64(), inSize.Uint64(), c)
	if err != nil {
		return err
	}
	output, err := c.memory.getSlice(retOffset.Uint64(), retSize.Uint64(), c)
	if err != nil {
		return err
	}

	// Charge for transferring value to the callee.
	if !value.IsZero() {
		if err := c.useGas(callValueTransferGas); err != nil {
			return err
		}
	}
	// Non-zero value calls creating a new account carry an additional fee.
	if kind == borealis.Call && !value.IsZero() && !c.context.AccountExists(toAddr) {
		if err := c.useGas(callNewAccountGas); err != nil {
			return err
		}
	}

	// At most all but one 64th of the available gas may be forwarded.
	nestedCallGas := callGas(c.gas, 0, providedGas)
	if err := c.useGas(nestedCallGas); err != nil {
		return err
	}
	if !value.IsZero() {
		nestedCallGas += callStipend
	}

	// Check that the caller has enough balance to transfer the value.
	if (kind == borealis.Call || kind == borealis.CallCode) && !value.IsZero() {
		balance := c.context.GetBalance(c.params.Recipient)
		balanceU256 := new(uint256.Int).SetBytes32(balance[:])
		if balanceU256.Lt(value) {
			c.stack.pushUndefined().Clear()
			c.returnData = nil
			c.gas += nestedCallGas
			return nil
		}
	}

	// Recursive calls out of a static frame stay static.
	if c.params.Static && kind == borealis.Call {
		kind = borealis.StaticCall
	}

	callParams := borealis.CallParameters{
		Input: args,
		Gas:   nestedCallGas,
		Value: borealis.Value(value.Bytes32()),
	}
	switch kind {
	case borealis.Call, borealis.StaticCall:
		callParams.Sender = c.params.Recipient
		callParams.Recipient = toAddr
	case borealis.CallCode:
		callParams.Sender = c.params.Recipient
		callParams.Recipient = c.params.Recipient
		callParams.CodeAddress = toAddr
	case borealis.DelegateCall:
		callParams.Sender = c.params.Sender
		callParams.Recipient = c.params.Recipient
		callParams.CodeAddress = toAddr
		callParams.Value = c.params.Value
	}

	ret, err := c.context.Call(kind, callParams)
	if err == nil {
		copy(output, ret.Output)
	}

	success := stack.pushUndefined()
	if err != nil || !ret.Success {
		success.Clear()
	} else {
		success.SetOne()
	}
	c.gas += ret.GasLeft
	c.refund += ret.GasRefund
	c.returnData = ret.Output
	return nil
}

func opSelfdestruct(c *context) (status, error) {
	// SELFDESTRUCT is a write instruction, it shall not be executed in
	// static mode.
	if c.params.Static {
		return statusStopped, errStaticContextViolation
	}
	beneficiary := borealis.Address(c.stack.pop().Bytes20())

	cost := selfdestructGas
	if !c.context.AccountExists(beneficiary) &&
		c.context.GetBalance(c.params.Recipient) != (borealis.Value{}) {
		cost += createBySelfdestructGas
	}
	if err := c.useGas(cost); err != nil {
		return statusStopped, err
	}

	if c.context.SelfDestruct(c.params.Recipient, beneficiary) {
		c.refund += selfdestructRefundGas
	}
	return statusSelfDestructed, nil
}

func checkSizeOffsetUint64Overflow(offset, size *uint256.Int) error {
	if size.IsZero() {
		return nil
	}
	if !offset.IsUint64() || !size.IsUint64() || offset.Uint64()+size.Uint64() < offset.Uint64() {
		return errOverflow
	}
	return nil
}
