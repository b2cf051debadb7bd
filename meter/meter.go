// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package meter implements the transaction-level gas accounting: an EVM gas
// counter with the refund rules applied at the end of the transaction, and
// the conversion of the final gas total into host compute units.
package meter

import (
	"math"
	"math/bits"

	"github.com/borealis-network/borealis/borealis"
)

// Meter tracks the EVM gas of one transaction. It is initialized with the
// transaction's gas limit, charged as execution proceeds, and settled once
// at the end to apply the accumulated refund.
type Meter struct {
	limit     borealis.Gas
	remaining borealis.Gas
	refund    borealis.Gas
}

func New(limit borealis.Gas) *Meter {
	return &Meter{limit: limit, remaining: limit}
}

// Charge deducts the given amount from the remaining gas. If the amount
// exceeds the remaining gas the counter is exhausted and ErrOutOfGas is
// returned; charging exactly the remaining amount succeeds.
func (m *Meter) Charge(amount borealis.Gas) error {
	if amount < 0 || amount > m.remaining {
		m.remaining = 0
		return borealis.ErrOutOfGas
	}
	m.remaining -= amount
	return nil
}

// Return credits unused gas back to the counter, e.g. gas left over by a
// completed call frame.
func (m *Meter) Return(amount borealis.Gas) {
	if amount > 0 {
		m.remaining += amount
	}
}

// AddRefund accumulates a gas refund. Refunds are not applied immediately;
// they reduce the final gas total when Settle is called.
func (m *Meter) AddRefund(amount borealis.Gas) {
	m.refund += amount
	if m.refund < 0 {
		m.refund = 0
	}
}

func (m *Meter) Remaining() borealis.Gas {
	return m.remaining
}

func (m *Meter) Used() borealis.Gas {
	return m.limit - m.remaining
}

// Settle applies the accumulated refund, capped at the used gas divided by
// the given divisor, and returns the final gas total of the transaction.
// The credited refund is added back to the remaining gas so the sender is
// reimbursed for it.
func (m *Meter) Settle(refundDivisor borealis.Gas) borealis.Gas {
	if refundDivisor <= 0 {
		refundDivisor = 2
	}
	refund := m.refund
	if maxRefund := m.Used() / refundDivisor; refund > maxRefund {
		refund = maxRefund
	}
	m.remaining += refund
	m.refund = 0
	return m.Used()
}

// Rate converts EVM gas into host compute units as the fraction Num/Den.
type Rate struct {
	Num uint64
	Den uint64
}

// ToHostGas converts the given gas total into host compute units, rounding
// up so the host is never undercharged. The result saturates at the maximum
// host gas value instead of wrapping.
func (r Rate) ToHostGas(gas borealis.Gas) borealis.HostGas {
	if gas <= 0 {
		return 0
	}
	den := r.Den
	if den == 0 {
		den = 1
	}
	hi, lo := bits.Mul64(uint64(gas), r.Num)
	if hi >= den {
		return math.MaxUint64
	}
	quo, rem := bits.Div64(hi, lo, den)
	if rem > 0 {
		if quo == math.MaxUint64 {
			return math.MaxUint64
		}
		quo++
	}
	return borealis.HostGas(quo)
}
