// Copyright (c) 2026 The wallet-key-tool developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package store is a persistent database for private keys recovered from
// wallet backups. Keys are serialized in wallet import format and encrypted
// at rest. The encryption scheme used is the SalsaX20 stream cipher with
// Poly1305 MAC, based on secretbox in NaCl.
//
// WARNING: If both your database and password were compromised, changing
//          your password won't accomplish anything. This is because store
//          encrypts the master key using the password you specify when the
//          database is created. A malicious user that knew your password and
//          had a previous copy of the store knows the master key and can
//          decrypt all keys.
//
// WARNING 2: Master key is kept in memory. The package is vulnerable to
//            memory reading malware.
package store
