// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package engine implements the transaction orchestrator. It authenticates
// raw transactions, opens a write buffer and a gas meter per transaction,
// executes the top-level call frame, and either commits the resulting state
// diff to the host store or discards it. Exactly one receipt is produced per
// execution.
package engine

import (
	"fmt"

	"github.com/inconshreveable/log15"

	"github.com/borealis-network/borealis/borealis"
	"github.com/borealis-network/borealis/interpreter/bvm"
	"github.com/borealis-network/borealis/meter"
	"github.com/borealis-network/borealis/precompiles"
	"github.com/borealis-network/borealis/state"
	"github.com/borealis-network/borealis/tx"
)

const (
	txGas                 = 21_000
	txGasContractCreation = 53_000
	txDataNonZeroGas      = 16
	txDataZeroGas         = 4
)

// Config carries the chain-level parameters of one engine instance. All
// fields are fixed at deployment time; there is no per-block reconfiguration.
type Config struct {
	// ChainID is the EIP-155 chain identifier transactions must declare.
	ChainID uint64

	// BlockGasLimit bounds the gas limit of a single transaction. A zero
	// value disables the bound.
	BlockGasLimit borealis.Gas

	// RefundDivisor caps the gas refund at gasUsed/RefundDivisor. Zero
	// selects the default divisor of 2.
	RefundDivisor borealis.Gas

	// GasRate is the exchange rate from EVM gas to host compute units.
	GasRate meter.Rate
}

// Engine executes EVM transactions against a host chain runtime. Instances
// are safe for concurrent use only if the underlying host is; per-transaction
// state lives in the write buffer.
type Engine struct {
	config        Config
	host          borealis.Host
	authenticator *tx.Authenticator
	registry      *precompiles.Registry
	interpreter   borealis.Interpreter
	log           log15.Logger
}

func New(config Config, host borealis.Host) *Engine {
	if config.GasRate.Num == 0 && config.GasRate.Den == 0 {
		config.GasRate = meter.Rate{Num: 1, Den: 1}
	}
	return &Engine{
		config:        config,
		host:          host,
		authenticator: tx.NewAuthenticator(config.ChainID),
		registry:      precompiles.NewRegistry(),
		interpreter:   bvm.NewInterpreter(),
		log:           log15.New("module", "engine"),
	}
}

// Submit authenticates a raw, RLP-encoded signed transaction and executes
// it. Authentication failures are returned as errors without touching any
// state; authenticated transactions yield exactly one receipt.
func (e *Engine) Submit(raw []byte) (borealis.Receipt, error) {
	transaction, err := e.authenticator.Authenticate(raw)
	if err != nil {
		e.log.Debug("transaction rejected", "err", err)
		return borealis.Receipt{}, err
	}
	return e.execute(transaction, true)
}

// Call executes an authenticated transaction against an existing account.
// The transaction's state diff is committed if and only if the execution
// succeeds.
func (e *Engine) Call(transaction borealis.Transaction) (borealis.Receipt, error) {
	if transaction.Recipient == nil {
		return e.Deploy(transaction)
	}
	return e.execute(transaction, true)
}

// Deploy executes an authenticated contract deployment. The transaction's
// input is the init code; the created contract address is reported in the
// receipt. A failing deployment rolls back everything, including the sender
// nonce increment.
func (e *Engine) Deploy(transaction borealis.Transaction) (borealis.Receipt, error) {
	transaction.Recipient = nil
	return e.execute(transaction, true)
}

// View executes a transaction without committing anything: writes are
// buffered as usual so the executed code observes its own effects, and the
// whole buffer is discarded at the end. Nonce and gas purchase checks are
// skipped; views have no sender obligations.
func (e *Engine) View(transaction borealis.Transaction) (borealis.Receipt, error) {
	return e.execute(transaction, false)
}

// Read-only account queries against the committed state. Each opens a fresh
// read view over the host store; nothing is buffered or written.

func (e *Engine) Balance(address borealis.Address) borealis.Value {
	return state.NewStateDB(e.host, e.host).GetBalance(address)
}

func (e *Engine) Nonce(address borealis.Address) uint64 {
	return state.NewStateDB(e.host, e.host).GetNonce(address)
}

func (e *Engine) Code(address borealis.Address) borealis.Code {
	return state.NewStateDB(e.host, e.host).GetCode(address)
}

func (e *Engine) StorageAt(address borealis.Address, key borealis.Key) borealis.Word {
	return state.NewStateDB(e.host, e.host).GetStorage(address, key)
}

func (e *Engine) execute(transaction borealis.Transaction, commit bool) (borealis.Receipt, error) {
	if transaction.GasLimit < 0 ||
		(e.config.BlockGasLimit > 0 && transaction.GasLimit > e.config.BlockGasLimit) {
		return borealis.Receipt{}, fmt.Errorf("%w: gas limit %d out of range",
			borealis.ErrMalformedTransaction, transaction.GasLimit)
	}

	gasMeter := meter.New(transaction.GasLimit)
	if err := gasMeter.Charge(intrinsicGas(transaction)); err != nil {
		return borealis.Receipt{}, fmt.Errorf("%w: gas limit below the intrinsic cost", err)
	}

	stateDB := state.NewStateDB(e.host, e.host)

	if commit {
		if stateNonce := stateDB.GetNonce(transaction.Sender); stateNonce != transaction.Nonce {
			return borealis.Receipt{}, fmt.Errorf("%w: transaction carries %d, account is at %d",
				borealis.ErrNonceMismatch, transaction.Nonce, stateNonce)
		}
		if err := buyGas(transaction, stateDB); err != nil {
			return borealis.Receipt{}, err
		}
	}

	effects := &precompiles.EffectList{}
	context := runContext{
		TransactionContext: stateDB,
		interpreter:        e.interpreter,
		registry:           e.registry,
		runtime:            e.host,
		effects:            effects,
		blockParameters: borealis.BlockParameters{
			ChainID:     borealis.Word(borealis.NewValue(e.config.ChainID)),
			BlockNumber: int64(e.host.BlockHeight()),
			Timestamp:   int64(e.host.BlockTimestamp()),
			GasLimit:    e.config.BlockGasLimit,
		},
		transactionParameters: borealis.TransactionParameters{
			Origin:   transaction.Sender,
			GasPrice: transaction.GasPrice,
		},
	}

	kind := borealis.Call
	callParameters := borealis.CallParameters{
		Sender: transaction.Sender,
		Value:  transaction.Value,
		Input:  transaction.Input,
		Gas:    gasMeter.Remaining(),
	}
	if transaction.Recipient == nil {
		kind = borealis.Create
	} else {
		callParameters.Recipient = *transaction.Recipient
		// The nonce of a creating sender is incremented by the create
		// frame itself; for message calls it is the engine's job.
		if commit {
			stateDB.SetNonce(transaction.Sender, transaction.Nonce+1)
		}
	}

	// The frame receives everything that is left after the intrinsic cost.
	if err := gasMeter.Charge(gasMeter.Remaining()); err != nil {
		stateDB.Discard()
		return borealis.Receipt{}, err
	}

	result, err := context.Call(kind, callParameters)
	if err != nil {
		stateDB.Discard()
		return borealis.Receipt{}, fmt.Errorf("internal interpreter failure: %w", err)
	}

	gasMeter.Return(result.GasLeft)
	gasMeter.AddRefund(result.GasRefund)
	gasUsed := gasMeter.Settle(e.config.RefundDivisor)

	status := borealis.StatusSuccess
	if !result.Success {
		switch {
		case kind == borealis.Create:
			status = borealis.StatusDeploymentFailed
		case result.GasLeft > 0 || len(result.Output) > 0:
			status = borealis.StatusReverted
		default:
			status = borealis.StatusFailed
		}
	}

	receipt := borealis.Receipt{
		Status:  status,
		Output:  result.Output,
		GasUsed: gasUsed,
	}

	if status == borealis.StatusSuccess {
		receipt.Logs = stateDB.GetLogs()
		if kind == borealis.Create {
			created := result.CreatedAddress
			receipt.ContractAddress = &created
		}
	}

	if commit && status == borealis.StatusSuccess {
		refundGasPurchase(transaction, stateDB, gasMeter.Remaining())
		if err := stateDB.Commit(); err != nil {
			return borealis.Receipt{}, err
		}
		receipt.HostGasUsed = e.config.GasRate.ToHostGas(gasUsed)
		e.host.ChargeCompute(receipt.HostGasUsed)
		effects.ReleaseTo(e.host)
	} else {
		stateDB.Discard()
		if commit {
			receipt.HostGasUsed = e.config.GasRate.ToHostGas(gasUsed)
			e.host.ChargeCompute(receipt.HostGasUsed)
		}
	}

	e.log.Debug("transaction executed",
		"status", status,
		"gasUsed", gasUsed,
		"hostGasUsed", receipt.HostGasUsed,
		"logs", len(receipt.Logs),
	)
	return receipt, nil
}

// intrinsicGas is the up-front cost of a transaction before any code runs:
// a base fee plus a per-byte charge on the input data.
func intrinsicGas(transaction borealis.Transaction) borealis.Gas {
	gas := borealis.Gas(txGas)
	if transaction.Recipient == nil {
		gas = txGasContractCreation
	}
	for _, b := range transaction.Input {
		if b != 0 {
			gas += txDataNonZeroGas
		} else {
			gas += txDataZeroGas
		}
	}
	return gas
}

// buyGas deducts the maximum possible gas charge from the sender before
// execution. Unused gas is paid back by refundGasPurchase afterwards.
func buyGas(transaction borealis.Transaction, context borealis.WorldState) error {
	cost := transaction.GasPrice.Scale(uint64(transaction.GasLimit))

	balance := context.GetBalance(transaction.Sender)
	if balance.Cmp(cost) < 0 {
		return fmt.Errorf("%w: balance %v cannot cover the gas purchase %v",
			borealis.ErrInsufficientBalance, balance, cost)
	}
	context.SetBalance(transaction.Sender, borealis.Sub(balance, cost))
	return nil
}

func refundGasPurchase(transaction borealis.Transaction, context borealis.WorldState, gasLeft borealis.Gas) {
	if gasLeft <= 0 {
		return
	}
	refund := transaction.GasPrice.Scale(uint64(gasLeft))
	balance := context.GetBalance(transaction.Sender)
	context.SetBalance(transaction.Sender, borealis.Add(balance, refund))
}
