// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package tx

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/borealis-network/borealis/borealis"
)

// SignedTransaction is the decoded form of a raw, RLP-encoded legacy
// Ethereum transaction, including its signature fields.
type SignedTransaction struct {
	Nonce    uint64
	GasPrice *big.Int
	Gas      uint64
	To       *borealis.Address `rlp:"nil"`
	Value    *big.Int
	Data     []byte
	V, R, S  *big.Int
}

// Decode parses raw transaction bytes. It performs structural validation
// only; signature and chain id checks are the authenticator's concern.
func Decode(raw []byte) (*SignedTransaction, error) {
	var t SignedTransaction
	if err := rlp.DecodeBytes(raw, &t); err != nil {
		return nil, fmt.Errorf("%w: %v", borealis.ErrMalformedTransaction, err)
	}
	if t.GasPrice == nil || t.Value == nil || t.V == nil || t.R == nil || t.S == nil {
		return nil, fmt.Errorf("%w: missing fields", borealis.ErrMalformedTransaction)
	}
	if t.GasPrice.BitLen() > 256 || t.Value.BitLen() > 256 {
		return nil, fmt.Errorf("%w: 256-bit overflow", borealis.ErrMalformedTransaction)
	}
	if t.Gas > uint64(1)<<62 {
		return nil, fmt.Errorf("%w: gas limit out of range", borealis.ErrMalformedTransaction)
	}
	return &t, nil
}

// ChainID returns the chain identifier the transaction was signed for, or
// nil for pre-EIP-155 transactions that do not declare one. An error is
// returned for structurally invalid V values.
func (t *SignedTransaction) ChainID() (*big.Int, error) {
	if !t.V.IsUint64() {
		return nil, fmt.Errorf("%w: oversized V", borealis.ErrMalformedTransaction)
	}
	v := t.V.Uint64()
	switch {
	case v == 27 || v == 28:
		return nil, nil
	case v >= 35:
		return new(big.Int).SetUint64((v - 35) / 2), nil
	default:
		return nil, fmt.Errorf("%w: invalid V value %d", borealis.ErrMalformedTransaction, v)
	}
}

// IsContractCreation reports whether the transaction deploys a new contract.
func (t *SignedTransaction) IsContractCreation() bool {
	return t.To == nil
}

// SigningHash computes the canonical hash the sender signed. For protected
// transactions the declared chain id is part of the preimage as defined by
// EIP-155; for unprotected transactions the six payload fields are hashed.
func (t *SignedTransaction) SigningHash(chainID *big.Int) borealis.Hash {
	var to interface{} = []byte{}
	if t.To != nil {
		to = t.To[:]
	}
	var fields []interface{}
	if chainID == nil {
		fields = []interface{}{t.Nonce, t.GasPrice, t.Gas, to, t.Value, t.Data}
	} else {
		fields = []interface{}{
			t.Nonce, t.GasPrice, t.Gas, to, t.Value, t.Data,
			chainID, uint(0), uint(0),
		}
	}
	encoded, err := rlp.EncodeToBytes(fields)
	if err != nil {
		// all field types are RLP-encodable, this cannot be reached
		panic(fmt.Sprintf("failed to encode signing payload: %v", err))
	}
	return borealis.Hash(crypto.Keccak256(encoded))
}
