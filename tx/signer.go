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
	"github.com/holiman/uint256"

	"github.com/borealis-network/borealis/borealis"
)

// Authenticator decodes and authenticates raw signed transactions for one
// configured chain. It is a pure function of its inputs; no state is touched.
type Authenticator struct {
	chainID uint64
}

func NewAuthenticator(chainID uint64) *Authenticator {
	return &Authenticator{chainID: chainID}
}

// Authenticate decodes the raw transaction, validates the declared chain id
// against the configured one, and recovers the sender from the signature.
// The returned transaction carries the recovered sender and is ready for
// execution. Possible failures are ErrMalformedTransaction,
// ErrChainIdMismatch and ErrInvalidSignature.
func (a *Authenticator) Authenticate(raw []byte) (borealis.Transaction, error) {
	signed, err := Decode(raw)
	if err != nil {
		return borealis.Transaction{}, err
	}

	chainID, err := signed.ChainID()
	if err != nil {
		return borealis.Transaction{}, err
	}
	// Pre-EIP-155 transactions carry no chain id; those are accepted for
	// compatibility with tooling that cannot produce protected signatures.
	if chainID != nil && (!chainID.IsUint64() || chainID.Uint64() != a.chainID) {
		return borealis.Transaction{}, fmt.Errorf("%w: transaction declares %v, engine expects %d",
			borealis.ErrChainIdMismatch, chainID, a.chainID)
	}

	sender, err := recoverSender(signed, chainID)
	if err != nil {
		return borealis.Transaction{}, err
	}

	gasPrice, overflow := uint256.FromBig(signed.GasPrice)
	value, overflow2 := uint256.FromBig(signed.Value)
	if overflow || overflow2 {
		// Decode already bounds these fields, this cannot be reached.
		return borealis.Transaction{}, borealis.ErrMalformedTransaction
	}

	return borealis.Transaction{
		Sender:    sender,
		Recipient: signed.To,
		Nonce:     signed.Nonce,
		Input:     borealis.Data(signed.Data),
		Value:     borealis.ValueFromUint256(value),
		GasLimit:  borealis.Gas(signed.Gas),
		GasPrice:  borealis.ValueFromUint256(gasPrice),
	}, nil
}

// recoverSender derives the signer address from the signature over the
// canonical signing hash.
func recoverSender(signed *SignedTransaction, chainID *big.Int) (borealis.Address, error) {
	recoveryID, err := recoveryID(signed, chainID)
	if err != nil {
		return borealis.Address{}, err
	}

	if !crypto.ValidateSignatureValues(recoveryID, signed.R, signed.S, true) {
		return borealis.Address{}, fmt.Errorf("%w: signature values out of range",
			borealis.ErrInvalidSignature)
	}

	sig := make([]byte, 65)
	signed.R.FillBytes(sig[0:32])
	signed.S.FillBytes(sig[32:64])
	sig[64] = recoveryID

	hash := signed.SigningHash(chainID)
	pubkey, err := crypto.Ecrecover(hash[:], sig)
	if err != nil {
		return borealis.Address{}, fmt.Errorf("%w: %v", borealis.ErrInvalidSignature, err)
	}

	// The recovered key is in uncompressed form, 0x04 followed by 64 bytes.
	var sender borealis.Address
	copy(sender[:], crypto.Keccak256(pubkey[1:])[12:])
	return sender, nil
}

func recoveryID(signed *SignedTransaction, chainID *big.Int) (byte, error) {
	v := signed.V.Uint64()
	var id uint64
	if chainID == nil {
		id = v - 27
	} else {
		id = v - 35 - 2*chainID.Uint64()
	}
	if id > 1 {
		return 0, fmt.Errorf("%w: invalid recovery id", borealis.ErrInvalidSignature)
	}
	return byte(id), nil
}
