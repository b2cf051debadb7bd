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

import "github.com/borealis-network/borealis/borealis"

// EffectList collects the cross-contract calls scheduled during one
// transaction. Calls are held back until the transaction commits; a
// reverted frame drops the calls it scheduled through Restore.
type EffectList struct {
	pending []borealis.CrossContractCall
}

func (l *EffectList) Add(call borealis.CrossContractCall) {
	l.pending = append(l.pending, call)
}

// Snapshot marks the current length of the list, paired with the state
// snapshot of the enclosing call frame.
func (l *EffectList) Snapshot() int {
	return len(l.pending)
}

// Restore drops all calls scheduled after the given snapshot.
func (l *EffectList) Restore(snapshot int) {
	if snapshot < len(l.pending) {
		l.pending = l.pending[:snapshot]
	}
}

// Pending returns the calls scheduled so far, in scheduling order.
func (l *EffectList) Pending() []borealis.CrossContractCall {
	return l.pending
}

// ReleaseTo hands all pending calls to the host scheduler and clears the
// list. To be called only after the transaction's state changes committed.
func (l *EffectList) ReleaseTo(host borealis.HostCalls) {
	for _, call := range l.pending {
		host.Schedule(call)
	}
	l.pending = nil
}
