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
	"math"
	"testing"
)

func TestGetStorageStatus(t *testing.T) {
	x := Word{31: 1}
	y := Word{31: 2}
	z := Word{31: 3}
	zero := Word{}

	tests := map[string]struct {
		original, current, new Word
		want                   StorageStatus
	}{
		"noop":              {x, y, y, StorageAssigned},
		"added":             {zero, zero, z, StorageAdded},
		"deleted":           {x, x, zero, StorageDeleted},
		"modified":          {x, x, z, StorageModified},
		"deleted-added":     {x, zero, z, StorageDeletedAdded},
		"modified-deleted":  {x, y, zero, StorageModifiedDeleted},
		"deleted-restored":  {x, zero, x, StorageDeletedRestored},
		"added-deleted":     {zero, y, zero, StorageAddedDeleted},
		"modified-restored": {x, y, x, StorageModifiedRestored},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := GetStorageStatus(test.original, test.current, test.new)
			if got != test.want {
				t.Errorf("wanted %v, got %v", test.want, got)
			}
		})
	}
}

func TestSizeInWords(t *testing.T) {
	tests := []struct {
		size uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{31, 1},
		{32, 1},
		{33, 2},
		{64, 2},
		{math.MaxUint64, math.MaxUint64/32 + 1},
	}

	for _, test := range tests {
		if got := SizeInWords(test.size); got != test.want {
			t.Errorf("SizeInWords(%d) = %d, want %d", test.size, got, test.want)
		}
	}
}
