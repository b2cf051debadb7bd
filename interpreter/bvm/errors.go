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
	"fmt"

	"github.com/borealis-network/borealis/borealis"
)

// Stack limit violations are both instances of the stack error of the
// public taxonomy, distinguished only by their message.
var (
	errStackUnderflow = fmt.Errorf("%w: underflow", borealis.ErrStackError)
	errStackOverflow  = fmt.Errorf("%w: overflow", borealis.ErrStackError)
)

// Frame-level error conditions. None of them is reported to callers; any of
// them terminates the frame with a failed status and all gas consumed.
const (
	errOutOfGas               = borealis.ErrOutOfGas
	errInvalidJump            = borealis.ErrInvalidJump
	errInvalidOpCode          = borealis.ConstError("invalid instruction")
	errOverflow               = borealis.ConstError("size or offset overflow")
	errGasUintOverflow        = borealis.ConstError("gas uint64 overflow")
	errStaticContextViolation = borealis.ConstError("write instruction in static context")
	errReturnDataOutOfBounds  = borealis.ConstError("return data access out of bounds")
	errNotEnoughGasForSstore  = borealis.ConstError("not enough gas for sstore sentry")
)
