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

import "github.com/borealis-network/borealis/borealis"

// Every key written to the host store starts with a version byte, so the
// layout can be migrated without rewriting history, followed by a kind byte
// selecting the account attribute.
const versionPrefix byte = 0x07

type keyKind byte

const (
	kindConfig  keyKind = 0x0
	kindNonce   keyKind = 0x1
	kindBalance keyKind = 0x2
	kindCode    keyKind = 0x3
	kindStorage keyKind = 0x4
)

// accountKey builds the host-store key of a scalar account attribute:
// version ++ kind ++ address.
func accountKey(kind keyKind, address borealis.Address) []byte {
	key := make([]byte, 2+len(address))
	key[0] = versionPrefix
	key[1] = byte(kind)
	copy(key[2:], address[:])
	return key
}

func nonceKey(address borealis.Address) []byte {
	return accountKey(kindNonce, address)
}

func balanceKey(address borealis.Address) []byte {
	return accountKey(kindBalance, address)
}

func codeKey(address borealis.Address) []byte {
	return accountKey(kindCode, address)
}

// storageKey builds the host-store key of one storage slot:
// version ++ kind ++ address ++ slot key.
func storageKey(address borealis.Address, key borealis.Key) []byte {
	res := make([]byte, 2+len(address)+len(key))
	res[0] = versionPrefix
	res[1] = byte(kindStorage)
	copy(res[2:], address[:])
	copy(res[2+len(address):], key[:])
	return res
}

// storagePrefix is the common prefix of all storage slots of one account,
// used to clear the namespace of a destroyed account.
func storagePrefix(address borealis.Address) []byte {
	return accountKey(kindStorage, address)
}
