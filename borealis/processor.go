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

// Transaction summarizes the parameters of an authenticated transaction to
// be executed by the engine. It is the output of the transaction codec or,
// for host-initiated calls, constructed directly from the host environment.
type Transaction struct {
	Sender    Address  // the sender of the transaction, recovered or host-derived
	Recipient *Address // the receiver of a transaction, nil if a new contract is to be created
	Nonce     uint64   // the nonce of the sender account, used to prevent replay attacks
	Input     Data     // the input data for the transaction
	Value     Value    // the amount of chain currency to transfer to the recipient
	GasLimit  Gas      // the maximum amount of gas that can be used by the transaction
	GasPrice  Value    // the effective price of a unit of gas for this transaction
}

// ReceiptStatus describes the outcome of a top-level transaction execution.
type ReceiptStatus int

const (
	StatusSuccess          ReceiptStatus = iota
	StatusReverted                       // execution ended in an explicit REVERT
	StatusFailed                         // out of gas or another execution violation
	StatusDeploymentFailed               // init code of a deployment reverted or failed
)

func (s ReceiptStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusReverted:
		return "reverted"
	case StatusFailed:
		return "failed"
	case StatusDeploymentFailed:
		return "deployment_failed"
	}
	return "unknown"
}

// Receipt summarizes the result of the execution of a transaction. It is
// immutable; the engine produces exactly one receipt per top-level execution.
type Receipt struct {
	Status          ReceiptStatus
	Output          Data     // the output produced by the transaction
	ContractAddress *Address // filled if a contract was created by this transaction
	GasUsed         Gas      // gas used by the transaction, in EVM units
	HostGasUsed     HostGas  // the converted charge passed to the host runtime
	Logs            []Log    // logs produced by the transaction
}

// Success reports whether the transaction executed and committed.
func (r Receipt) Success() bool {
	return r.Status == StatusSuccess
}

// Err maps the receipt status onto the error taxonomy, nil for success.
// A plainly failed top-level frame has consumed its entire gas allowance
// regardless of the original violation and is reported as ErrOutOfGas.
func (r Receipt) Err() error {
	switch r.Status {
	case StatusReverted:
		return ErrExecutionReverted
	case StatusFailed:
		return ErrOutOfGas
	case StatusDeploymentFailed:
		return ErrDeploymentFailed
	}
	return nil
}
