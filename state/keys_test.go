// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package state

import (
	"bytes"
	"testing"

	"github.com/borealis-network/borealis/borealis"
)

func TestKeys_ScalarAttributesUseVersionKindAddressLayout(t *testing.T) {
	address := borealis.Address{0xAB, 0xCD}
	tests := map[string]struct {
		key  []byte
		kind byte
	}{
		"nonce":   {nonceKey(address), 0x1},
		"balance": {balanceKey(address), 0x2},
		"code":    {codeKey(address), 0x3},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if len(test.key) != 22 {
				t.Fatalf("unexpected key length, wanted 22, got %d", len(test.key))
			}
			if test.key[0] != versionPrefix {
				t.Errorf("missing version prefix, got 0x%02x", test.key[0])
			}
			if test.key[1] != test.kind {
				t.Errorf("unexpected kind byte, wanted 0x%02x, got 0x%02x", test.kind, test.key[1])
			}
			if !bytes.Equal(test.key[2:], address[:]) {
				t.Errorf("key does not embed the address")
			}
		})
	}
}

func TestKeys_StorageKeyEmbedsAddressAndSlot(t *testing.T) {
	address := borealis.Address{0x01}
	slot := borealis.Key{0x02}
	key := storageKey(address, slot)
	if len(key) != 54 {
		t.Fatalf("unexpected key length, wanted 54, got %d", len(key))
	}
	if key[0] != versionPrefix || key[1] != byte(kindStorage) {
		t.Errorf("unexpected key prefix %x", key[:2])
	}
	if !bytes.Equal(key[2:22], address[:]) {
		t.Errorf("key does not embed the address")
	}
	if !bytes.Equal(key[22:], slot[:]) {
		t.Errorf("key does not embed the slot key")
	}
}

func TestKeys_StoragePrefixCoversAllSlotsOfAnAccount(t *testing.T) {
	address := borealis.Address{0x42}
	prefix := storagePrefix(address)
	for _, slot := range []borealis.Key{{}, {0x01}, {0xFF}} {
		if !bytes.HasPrefix(storageKey(address, slot), prefix) {
			t.Errorf("prefix does not cover slot %x", slot)
		}
	}
	other := borealis.Address{0x43}
	if bytes.HasPrefix(storageKey(other, borealis.Key{}), prefix) {
		t.Errorf("prefix covers slots of a different account")
	}
}

func TestKeys_AttributesOfOneAccountDoNotCollide(t *testing.T) {
	address := borealis.Address{0x01}
	keys := [][]byte{
		nonceKey(address),
		balanceKey(address),
		codeKey(address),
		storageKey(address, borealis.Key{}),
	}
	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			if bytes.Equal(keys[i], keys[j]) {
				t.Errorf("keys %d and %d collide: %x", i, j, keys[i])
			}
		}
	}
}
