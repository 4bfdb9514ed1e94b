// Copyright (c) 2026 The wallet-key-tool developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg"
)

// privKeySize is the size of a serialized secp256k1 private scalar.
const privKeySize = 32

// RecoveredKey is a private key reconstructed from a wallet backup, ready to
// be handed to a key store.
type RecoveredKey struct {
	// PrivKey is the recovered private key.
	PrivKey *btcec.PrivateKey

	// Compressed reports whether the matching public key uses the
	// compressed serialization. The backup does not record this; it is
	// recovered by checking both conventions against the address.
	Compressed bool

	// Address is the declared address the key was verified against.
	Address string

	// CreatedTime is the unix timestamp the key was created, if known.
	CreatedTime int64

	// Label is an optional user-assigned name carried over from the
	// backup.
	Label string
}

// DecodePrivateKey reconstructs a private key from the wallet service's
// non-standard encoding: the raw private scalar in base58, with no network
// prefix, no checksum and no compression flag. The missing compression flag
// is recovered by deriving the pay-to-pubkey-hash address under both
// conventions and picking the one that matches the declared address. If
// neither matches the key is rejected with ErrKeyAddressMismatch.
func DecodePrivateKey(encoded, address string, net *chaincfg.Params) (*RecoveredKey, error) {
	raw := base58.Decode(encoded)
	if len(raw) == 0 || len(raw) > privKeySize {
		return nil, fmt.Errorf("%w: invalid private key encoding for %s",
			ErrKeyAddressMismatch, address)
	}

	// The scalar is big-endian and may be shorter than 32 bytes when its
	// leading bytes are zero.
	var keyBytes [privKeySize]byte
	copy(keyBytes[privKeySize-len(raw):], raw)
	privKey, _ := btcec.PrivKeyFromBytes(keyBytes[:])

	for _, compressed := range []bool{false, true} {
		var pubKey []byte
		if compressed {
			pubKey = privKey.PubKey().SerializeCompressed()
		} else {
			pubKey = privKey.PubKey().SerializeUncompressed()
		}

		candidate, err := btcutil.NewAddressPubKeyHash(
			btcutil.Hash160(pubKey), net)
		if err != nil {
			return nil, err
		}
		if candidate.EncodeAddress() == address {
			return &RecoveredKey{
				PrivKey:    privKey,
				Compressed: compressed,
				Address:    address,
			}, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrKeyAddressMismatch, address)
}
