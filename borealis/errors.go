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

// ConstError is an error type that can be used to define immutable
// error constants.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

// Rejection errors are reported before any state is touched; no write buffer
// is opened for a transaction failing with one of these.
const (
	ErrMalformedTransaction = ConstError("malformed transaction")
	ErrInvalidSignature     = ConstError("invalid signature")
	ErrChainIdMismatch      = ConstError("chain id mismatch")
	ErrNonceMismatch        = ConstError("nonce mismatch")
	ErrInsufficientBalance  = ConstError("insufficient balance")
)

// Frame-level errors unwind to the nearest enclosing revert boundary,
// discarding only the failing call's pending mutations.
const (
	ErrOutOfGas          = ConstError("out of gas")
	ErrStackError        = ConstError("stack limits exceeded")
	ErrInvalidJump       = ConstError("invalid jump destination")
	ErrCallDepthExceeded = ConstError("call depth exceeded")
	ErrCodeAlreadySet    = ConstError("code already set")
)

// Top-level failures discard the entire write buffer; nothing is committed.
const (
	ErrExecutionReverted = ConstError("execution reverted")
	ErrDeploymentFailed  = ConstError("deployment failed")
)
