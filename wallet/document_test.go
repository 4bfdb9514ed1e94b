// Copyright (c) 2026 The wallet-key-tool developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet_test

import (
	"errors"
	"testing"

	"github.com/ariefkdscomp/wallet-key-tool/wallet"
)

func TestParseDocument(t *testing.T) {
	doc, err := wallet.ParseDocument(`{
		"double_encryption": true,
		"sharedKey": "7bba05f9-0d01-49d7-9046-fa9f8d5b332c",
		"options": {"pbkdf2_iterations": 5000},
		"keys": [
			{"addr": "1First", "priv": "abc", "created_time": 1700000000, "label": "spending"},
			{"addr": "1Second"}
		]
	}`)
	if err != nil {
		t.Fatal(err)
	}

	if !doc.DoubleEncryption {
		t.Error("expected double encryption to be set")
	}
	if doc.SharedKey != "7bba05f9-0d01-49d7-9046-fa9f8d5b332c" {
		t.Errorf("unexpected shared key %q", doc.SharedKey)
	}
	if doc.SecondaryIterations != 5000 {
		t.Errorf("expected 5000 secondary iterations, got %d",
			doc.SecondaryIterations)
	}
	if len(doc.Keys) != 2 {
		t.Fatalf("expected 2 key records, got %d", len(doc.Keys))
	}

	first := doc.Keys[0]
	if first.Address != "1First" || first.Priv != "abc" ||
		first.CreatedTime != 1700000000 || first.Label != "spending" {
		t.Errorf("first record parsed wrong: %+v", first)
	}

	// The second record is watch-only.
	if doc.Keys[1].Priv != "" {
		t.Error("expected watch-only record to have no private key")
	}
}

func TestParseDocumentDefaults(t *testing.T) {
	doc, err := wallet.ParseDocument(`{"keys": [{"addr": "1Only"}]}`)
	if err != nil {
		t.Fatal(err)
	}
	if doc.DoubleEncryption {
		t.Error("expected double encryption to be unset")
	}
	if doc.SecondaryIterations != 10 {
		t.Errorf("expected default secondary iteration count 10, got %d",
			doc.SecondaryIterations)
	}
}

func TestParseDocumentEmptyKeys(t *testing.T) {
	doc, err := wallet.ParseDocument(`{"keys": []}`)
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Keys) != 0 {
		t.Errorf("expected no key records, got %d", len(doc.Keys))
	}
}

func TestParseDocumentMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"notJSON", "garbage after a wrong password"},
		{"missingKeys", `{"double_encryption": false}`},
		{"recordWithoutAddr", `{"keys": [{"priv": "abc"}]}`},
		{"keysWrongType", `{"keys": 5}`},
	}

	for _, test := range tests {
		_, err := wallet.ParseDocument(test.text)
		if !errors.Is(err, wallet.ErrMalformedDocument) {
			t.Errorf("%s: expected ErrMalformedDocument, got %v",
				test.name, err)
		}
	}
}
