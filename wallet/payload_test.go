// Copyright (c) 2026 The wallet-key-tool developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet_test

import (
	"testing"

	"github.com/ariefkdscomp/wallet-key-tool/wallet"
)

func TestExtractPayloadV1(t *testing.T) {
	// Anything that is not the V2 JSON envelope is a V1 backup whose
	// whole content is the ciphertext.
	text := "U29tZUJhc2U2NENpcGhlcnRleHQ="
	p := wallet.ExtractPayload(text)
	if p.Generation != wallet.GenerationV1 {
		t.Errorf("expected generation v1, got %v", p.Generation)
	}
	if p.Iterations != 10 {
		t.Errorf("expected default iteration count 10, got %d", p.Iterations)
	}
	if p.Ciphertext != text {
		t.Errorf("expected whole file as ciphertext, got %q", p.Ciphertext)
	}

	// Trailing whitespace from the file must not end up in the
	// ciphertext.
	p = wallet.ExtractPayload(text + "\n")
	if p.Ciphertext != text {
		t.Errorf("expected trimmed ciphertext, got %q", p.Ciphertext)
	}
}

func TestExtractPayloadV1NonEnvelopeJSON(t *testing.T) {
	// Valid JSON that is not the envelope still falls back to V1. A bare
	// number is the nastiest case since an all-digit file is valid JSON.
	for _, text := range []string{"1234", `"quoted"`, `[1,2]`, `{"payload":""}`} {
		p := wallet.ExtractPayload(text)
		if p.Generation != wallet.GenerationV1 {
			t.Errorf("%q: expected generation v1, got %v", text, p.Generation)
		}
		if p.Ciphertext != text {
			t.Errorf("%q: expected whole file as ciphertext", text)
		}
	}
}

func TestExtractPayloadV2(t *testing.T) {
	p := wallet.ExtractPayload(`{"pbkdf2_iterations":5000,"payload":"YWJjZA=="}`)
	if p.Generation != wallet.GenerationV2 {
		t.Fatalf("expected generation v2, got %v", p.Generation)
	}
	if p.Iterations != 5000 {
		t.Errorf("expected 5000 iterations, got %d", p.Iterations)
	}
	if p.Ciphertext != "YWJjZA==" {
		t.Errorf("expected envelope payload as ciphertext, got %q", p.Ciphertext)
	}
}

func TestExtractPayloadV2DefaultIterations(t *testing.T) {
	// An envelope without an iteration count keeps the V1 default.
	p := wallet.ExtractPayload(`{"payload":"YWJjZA=="}`)
	if p.Generation != wallet.GenerationV2 {
		t.Fatalf("expected generation v2, got %v", p.Generation)
	}
	if p.Iterations != 10 {
		t.Errorf("expected default iteration count 10, got %d", p.Iterations)
	}
}
