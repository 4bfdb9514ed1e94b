// Copyright (c) 2026 The wallet-key-tool developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"encoding/json"
	"fmt"
)

// KeyRecord is a single key entry of a decrypted wallet document. A record
// without a private key field is watch-only; it is counted and skipped during
// import rather than treated as an error.
type KeyRecord struct {
	// Address is the declared public address of the key. It is the only
	// fingerprint available to verify a recovered private key against.
	Address string

	// Priv is the encoded private key field, empty for watch-only
	// records. When the wallet uses double encryption this is itself a
	// base64 ciphertext; otherwise it is the service's base58 private key
	// encoding.
	Priv string

	// CreatedTime is the unix timestamp the key was created, if recorded.
	CreatedTime int64

	// Label is an optional user-assigned name for the key.
	Label string
}

// Document is a decrypted wallet document. It is owned by the importer for
// the duration of one import run.
type Document struct {
	// DoubleEncryption is set when each private key field carries its own
	// inner encryption layer on top of the file-level one.
	DoubleEncryption bool

	// SharedKey is the wallet-level salt string prepended to the
	// secondary password when deriving the inner layer's key.
	SharedKey string

	// SecondaryIterations is the PBKDF2 iteration count of the inner
	// layer.
	SecondaryIterations int

	// Keys holds the key records in their original file order.
	Keys []*KeyRecord
}

// documentJSON mirrors the decrypted wallet schema for unmarshalling.
type documentJSON struct {
	DoubleEncryption bool    `json:"double_encryption"`
	SharedKey        string  `json:"sharedKey"`
	Options          options `json:"options"`
	Keys             []struct {
		Addr        string `json:"addr"`
		Priv        string `json:"priv"`
		CreatedTime int64  `json:"created_time"`
		Label       string `json:"label"`
	} `json:"keys"`
}

type options struct {
	Iterations int `json:"pbkdf2_iterations"`
}

// ParseDocument parses the plaintext of a decrypted wallet into a Document.
// The `keys` array and the `addr` field of every record are required;
// anything else is optional. Structural problems wrap ErrMalformedDocument.
func ParseDocument(jsonText string) (*Document, error) {
	var docJSON documentJSON
	if err := json.Unmarshal([]byte(jsonText), &docJSON); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if docJSON.Keys == nil {
		return nil, fmt.Errorf("%w: missing keys array", ErrMalformedDocument)
	}

	doc := &Document{
		DoubleEncryption:    docJSON.DoubleEncryption,
		SharedKey:           docJSON.SharedKey,
		SecondaryIterations: docJSON.Options.Iterations,
		Keys:                make([]*KeyRecord, 0, len(docJSON.Keys)),
	}
	if doc.SecondaryIterations < 1 {
		doc.SecondaryIterations = defaultIterations
	}

	for i, rec := range docJSON.Keys {
		if rec.Addr == "" {
			return nil, fmt.Errorf("%w: key record %d has no address",
				ErrMalformedDocument, i)
		}
		doc.Keys = append(doc.Keys, &KeyRecord{
			Address:     rec.Addr,
			Priv:        rec.Priv,
			CreatedTime: rec.CreatedTime,
			Label:       rec.Label,
		})
	}

	return doc, nil
}
