// Copyright (c) 2026 The wallet-key-tool developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"encoding/json"
	"strings"
)

// Generation identifies the encoding generation of a wallet backup file.
type Generation int

const (
	// GenerationV1 backups are a bare base64 string holding the
	// ciphertext. They carry no key-derivation metadata, so the iteration
	// count is fixed at defaultIterations.
	GenerationV1 Generation = 1

	// GenerationV2 backups are a JSON envelope carrying an explicit
	// PBKDF2 iteration count alongside the base64 payload.
	GenerationV2 Generation = 2
)

// defaultIterations is the PBKDF2 iteration count used by V1 backups and by
// V2 backups whose envelope omits one. It also applies to the secondary
// encryption layer when the wallet options carry no explicit count.
const defaultIterations = 10

// String returns the generation as a short human-readable tag.
func (g Generation) String() string {
	switch g {
	case GenerationV1:
		return "v1"
	case GenerationV2:
		return "v2"
	default:
		return "unknown"
	}
}

// Payload is the raw encrypted payload of a backup file together with the
// parameters needed to decrypt it. It is constructed once per import and not
// modified afterwards.
type Payload struct {
	// Generation is the detected backup generation.
	Generation Generation

	// Iterations is the PBKDF2 iteration count for the outer layer.
	Iterations int

	// Ciphertext is the base64 encoded ciphertext of the wallet document.
	Ciphertext string
}

// envelope is the V2 on-disk wrapper around the encrypted payload.
type envelope struct {
	Iterations int    `json:"pbkdf2_iterations"`
	Payload    string `json:"payload"`
}

// ExtractPayload determines the generation of a backup file and extracts its
// encrypted payload. A file that unmarshals into the V2 envelope with a
// non-empty payload is V2; anything else, including text that is not JSON at
// all, is treated as a V1 backup whose entire content is the base64
// ciphertext. ExtractPayload never fails and performs no decryption.
func ExtractPayload(fileText string) *Payload {
	var env envelope
	if err := json.Unmarshal([]byte(fileText), &env); err == nil &&
		env.Payload != "" {

		iterations := env.Iterations
		if iterations < 1 {
			iterations = defaultIterations
		}
		return &Payload{
			Generation: GenerationV2,
			Iterations: iterations,
			Ciphertext: env.Payload,
		}
	}

	// V1 backups are nothing but the base64 text, possibly with
	// surrounding whitespace from the file.
	return &Payload{
		Generation: GenerationV1,
		Iterations: defaultIterations,
		Ciphertext: strings.TrimSpace(fileText),
	}
}
