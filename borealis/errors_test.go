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

import (
	"errors"
	"fmt"
	"testing"
)

func TestConstError_Error(t *testing.T) {
	const myError = ConstError("this is a constant error")

	if myError.Error() != "this is a constant error" {
		t.Errorf("expected 'this is a constant error', got '%s'", myError.Error())
	}

	if !errors.Is(myError, ConstError("this is a constant error")) {
		t.Errorf("expected true, got false")
	}
}

func TestConstError_SurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("while executing frame 3: %w", ErrOutOfGas)
	if !errors.Is(wrapped, ErrOutOfGas) {
		t.Errorf("wrapped error should match ErrOutOfGas")
	}
	if errors.Is(wrapped, ErrInvalidJump) {
		t.Errorf("wrapped error should not match ErrInvalidJump")
	}
}
