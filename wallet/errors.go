// Copyright (c) 2026 The wallet-key-tool developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"errors"
)

var (
	// ErrPrimaryPasswordRequired is returned when an import is run before
	// the primary password has been supplied. For a V2 backup the envelope
	// has already been recognized at this point, so the caller knows the
	// file is well formed and only the credential is missing.
	ErrPrimaryPasswordRequired = errors.New("primary password required")

	// ErrSecondaryPasswordRequired is returned when the decrypted wallet
	// declares double encryption and no secondary password has been
	// supplied. It can only occur after the outer layer has been removed.
	ErrSecondaryPasswordRequired = errors.New("secondary password required")

	// ErrDecryptionFailed is returned when the cipher layer rejects its
	// input, either due to malformed ciphertext or bad padding. It usually
	// means the password is wrong.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrMalformedDocument is returned when the decrypted wallet parses as
	// JSON but is missing required fields.
	ErrMalformedDocument = errors.New("malformed wallet document")

	// ErrKeyAddressMismatch is returned when a decoded private key matches
	// its declared address under neither the compressed nor the
	// uncompressed convention. Well-formed backups never trigger this; it
	// indicates corruption or a key/address pairing error.
	ErrKeyAddressMismatch = errors.New("private key does not match address")
)
