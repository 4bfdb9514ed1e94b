// Copyright (c) 2026 The wallet-key-tool developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet_test

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha1"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/ariefkdscomp/wallet-key-tool/wallet"

	"golang.org/x/crypto/pbkdf2"
)

// encryptFixture builds a ciphertext in the wallet service's scheme: a fixed
// IV followed by AES-256-CBC blocks of the ISO-10126 padded plaintext, with
// the key stretched from the password by PBKDF2-HMAC-SHA1 using the IV as
// salt. It is the test-side inverse of DeriveAndDecrypt. Passwords used with
// it must be ASCII so the PKCS#5 byte conversion matches the raw bytes.
func encryptFixture(t *testing.T, plaintext, password string, iterations int) string {
	t.Helper()

	iv := []byte("0123456789abcdef")
	key := pbkdf2.Key([]byte(password), iv, iterations, 32, sha1.New)

	// ISO-10126: only the final length byte matters, the rest of the pad
	// is arbitrary.
	padLen := aes.BlockSize - len(plaintext)%aes.BlockSize
	padded := make([]byte, len(plaintext)+padLen)
	copy(padded, plaintext)
	for i := len(plaintext); i < len(padded)-1; i++ {
		padded[i] = 0x5a
	}
	padded[len(padded)-1] = byte(padLen)

	block, err := aes.NewCipher(key)
	if err != nil {
		t.Fatal(err)
	}
	out := make([]byte, len(iv)+len(padded))
	copy(out, iv)
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[len(iv):], padded)

	return base64.StdEncoding.EncodeToString(out)
}

func TestDeriveAndDecryptRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		plaintext  string
		password   string
		iterations int
	}{
		{"short", "hello", "secret", 10},
		{"blockAligned", strings.Repeat("x", 32), "secret", 10},
		{"jsonDocument", `{"keys":[{"addr":"1ABC"}]}`, "correct horse", 25},
		{"singleIteration", "y", "p", 1},
	}

	for _, test := range tests {
		ct := encryptFixture(t, test.plaintext, test.password, test.iterations)
		got, err := wallet.DeriveAndDecrypt(ct, test.password, test.iterations)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}
		if got != test.plaintext {
			t.Errorf("%s: expected %q got %q", test.name, test.plaintext, got)
		}
	}
}

func TestDeriveAndDecryptWrongPassword(t *testing.T) {
	plaintext := `{"keys":[]}`
	ct := encryptFixture(t, plaintext, "right", 10)

	// A wrong password either trips the padding check or produces
	// garbage. It must never reproduce the plaintext.
	got, err := wallet.DeriveAndDecrypt(ct, "wrong", 10)
	if err == nil && got == plaintext {
		t.Error("wrong password reproduced the plaintext")
	}
	if err != nil && !errors.Is(err, wallet.ErrDecryptionFailed) {
		t.Errorf("expected ErrDecryptionFailed, got %v", err)
	}

	// So must the right password with a wrong iteration count.
	got, err = wallet.DeriveAndDecrypt(ct, "right", 11)
	if err == nil && got == plaintext {
		t.Error("wrong iteration count reproduced the plaintext")
	}
}

func TestDeriveAndDecryptMalformed(t *testing.T) {
	tests := []struct {
		name string
		ct   string
	}{
		{"notBase64", "!!! not base64 !!!"},
		{"empty", ""},
		{"tooShort", base64.StdEncoding.EncodeToString(make([]byte, 16))},
		{"partialBlock", base64.StdEncoding.EncodeToString(make([]byte, 40))},
	}

	for _, test := range tests {
		_, err := wallet.DeriveAndDecrypt(test.ct, "pass", 10)
		if !errors.Is(err, wallet.ErrDecryptionFailed) {
			t.Errorf("%s: expected ErrDecryptionFailed, got %v", test.name, err)
		}
	}
}
