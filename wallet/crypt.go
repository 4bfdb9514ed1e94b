// Copyright (c) 2026 The wallet-key-tool developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// cipherKeySize is the size of the AES key derived from the password.
	cipherKeySize = 32

	// ivSize is the size of the initialization vector prepended to the
	// ciphertext. It doubles as the PBKDF2 salt.
	ivSize = 16
)

// DeriveAndDecrypt removes one layer of password-based encryption from a
// base64 ciphertext. The scheme is fixed by the wallet service and must not
// be altered: the first 16 bytes of the decoded ciphertext are the IV, the
// key is PBKDF2-HMAC-SHA1 over the PKCS#5 byte conversion of the password
// with the IV as salt, the cipher is AES-256-CBC and the final block carries
// ISO-10126 padding. The same routine serves both the outer file layer and
// the inner per-key layer of double-encrypted wallets; only the password and
// iteration count differ between the two.
//
// All failures wrap ErrDecryptionFailed. A rejected padding almost always
// means the password was wrong.
func DeriveAndDecrypt(ciphertextB64, password string, iterations int) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertextB64)
	if err != nil {
		return "", fmt.Errorf("%w: invalid base64: %v", ErrDecryptionFailed, err)
	}
	if len(raw) < ivSize+aes.BlockSize {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecryptionFailed)
	}

	iv := raw[:ivSize]
	ciphertext := raw[ivSize:]
	if len(ciphertext)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext not a multiple of the block size",
			ErrDecryptionFailed)
	}

	key := pbkdf2.Key(pkcs5PasswordBytes(password), iv, iterations,
		cipherKeySize, sha1.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecryptionFailed, err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	plaintext, err = removePadding(plaintext)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// pkcs5PasswordBytes converts a password to bytes the way PKCS#5 v2 PBE
// generators historically do for PBKDF2 input: the password is treated as a
// sequence of UTF-16 code units which is then written out as UTF-8, pairing
// surrogates where possible.
func pkcs5PasswordBytes(password string) []byte {
	units := utf16.Encode([]rune(password))
	out := make([]byte, 0, len(password))
	var buf [utf8.UTFMax]byte
	for i := 0; i < len(units); i++ {
		r := rune(units[i])
		if utf16.IsSurrogate(r) && i+1 < len(units) {
			if dec := utf16.DecodeRune(r, rune(units[i+1])); dec != utf8.RuneError {
				r = dec
				i++
			}
		}
		n := utf8.EncodeRune(buf[:], r)
		out = append(out, buf[:n]...)
	}
	return out
}

// removePadding strips ISO-10126 padding from a decrypted plaintext. Only the
// final byte is meaningful; it holds the pad length and the remaining pad
// bytes are random, so they cannot be validated.
func removePadding(plaintext []byte) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, fmt.Errorf("%w: empty plaintext", ErrDecryptionFailed)
	}
	padLen := int(plaintext[len(plaintext)-1])
	if padLen < 1 || padLen > aes.BlockSize || padLen > len(plaintext) {
		return nil, fmt.Errorf("%w: invalid padding", ErrDecryptionFailed)
	}
	return plaintext[:len(plaintext)-padLen], nil
}
