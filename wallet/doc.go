// Copyright (c) 2026 The wallet-key-tool developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wallet recovers private keys from encrypted online-wallet backup
// files. It understands both backup generations (a bare base64 ciphertext
// and a JSON envelope carrying its own PBKDF2 iteration count), removes the
// file-level AES-CBC encryption layer and, for wallets with double
// encryption enabled, the per-key inner layer as well.
//
// The service's private key encoding is a raw base58 scalar without a
// compression flag, so the package derives the candidate address under both
// public key conventions and keeps whichever matches the address declared in
// the backup. A key matching neither is rejected; the address check is the
// only integrity oracle the format offers.
//
// Import is modeled as an explicit state machine rather than error-driven
// control flow: an Importer reports which password it still needs, accepts
// it through a resume call, and only then runs the record-by-record import.
package wallet
