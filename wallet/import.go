// Copyright (c) 2026 The wallet-key-tool developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wallet

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
)

// State is the stage an import has reached. An import advances from a
// need-password state to StateReady as credentials are supplied and only
// moves to StateFailed on a fatal error.
type State int

const (
	// StateNeedPrimaryPassword means no decryption has been attempted yet
	// because the file-level password is missing. For V2 backups the
	// envelope has already been recognized when this state is reported.
	StateNeedPrimaryPassword State = iota

	// StateNeedSecondaryPassword means the outer layer has been removed
	// and the wallet declares double encryption, but the secondary
	// password is missing.
	StateNeedSecondaryPassword

	// StateReady means all credentials are present and the import can
	// run.
	StateReady

	// StateFailed means a fatal error occurred. The error is available
	// from Err.
	StateFailed
)

// String returns the state as a human-readable word.
func (s State) String() string {
	switch s {
	case StateNeedPrimaryPassword:
		return "need primary password"
	case StateNeedSecondaryPassword:
		return "need secondary password"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// KeyStore is the destination for recovered keys. Ownership of a key
// transfers to the store when ImportKey returns nil.
type KeyStore interface {
	ImportKey(key *RecoveredKey, net *chaincfg.Params) error
}

// ProgressFunc is called once per processed key record, in record order, with
// the percentage of records processed so far and the record's address.
type ProgressFunc func(percent int, address string)

// Result holds the final tallies of an import run.
type Result struct {
	// Imported is the number of private keys recovered and handed to the
	// key store.
	Imported int

	// Skipped is the number of watch-only records, which carry no private
	// key and are not an error.
	Skipped int
}

// Importer decrypts one wallet backup and imports its keys. It is a state
// machine: construct it with the backup file text, supply passwords until
// State reports StateReady, then call Run. An Importer is for a single run
// and is not safe for concurrent use.
type Importer struct {
	net           *chaincfg.Params
	payload       *Payload
	doc           *Document
	secondaryPass string
	state         State
	err           error
}

// NewImporter detects the generation of the backup file and prepares an
// import into keys for the given network. No decryption happens here; the
// importer starts in StateNeedPrimaryPassword.
func NewImporter(fileText string, net *chaincfg.Params) *Importer {
	payload := ExtractPayload(fileText)
	log.Debugf("Detected %s backup, %d iterations",
		payload.Generation, payload.Iterations)

	return &Importer{
		net:     net,
		payload: payload,
		state:   StateNeedPrimaryPassword,
	}
}

// State returns the current stage of the import.
func (im *Importer) State() State {
	return im.state
}

// Generation returns the detected backup generation.
func (im *Importer) Generation() Generation {
	return im.payload.Generation
}

// Err returns the error that moved the importer to StateFailed, or nil.
func (im *Importer) Err() error {
	return im.err
}

// SupplyPrimaryPassword removes the file-level encryption layer with the
// given password and parses the wallet document. On success the importer
// advances to StateReady, or to StateNeedSecondaryPassword when the wallet
// declares double encryption. Failures are fatal to this importer; the
// caller retries a wrong password by constructing a new one.
func (im *Importer) SupplyPrimaryPassword(password string) error {
	if im.state != StateNeedPrimaryPassword {
		return fmt.Errorf("cannot supply primary password in state %q", im.state)
	}

	plaintext, err := DeriveAndDecrypt(im.payload.Ciphertext, password,
		im.payload.Iterations)
	if err != nil {
		return im.fail(err)
	}

	doc, err := ParseDocument(plaintext)
	if err != nil {
		return im.fail(err)
	}
	im.doc = doc

	if doc.DoubleEncryption {
		log.Debugf("Wallet uses double encryption, %d iterations",
			doc.SecondaryIterations)
		im.state = StateNeedSecondaryPassword
	} else {
		im.state = StateReady
	}
	return nil
}

// SupplySecondaryPassword records the password for the inner encryption
// layer and advances the importer to StateReady. The password is not
// verified here; a wrong one surfaces during Run as a decryption or key
// mismatch failure.
func (im *Importer) SupplySecondaryPassword(password string) error {
	if im.state != StateNeedSecondaryPassword {
		return fmt.Errorf("cannot supply secondary password in state %q", im.state)
	}
	im.secondaryPass = password
	im.state = StateReady
	return nil
}

// Run processes every key record of the wallet in file order: unwraps the
// inner encryption layer if the wallet uses one, decodes the private key,
// verifies it against the declared address and hands it to the store.
// Watch-only records are counted and skipped. The progress callback, if not
// nil, is invoked once per record.
//
// The first fatal failure aborts the run; keys already handed to the store
// stay there. Calling Run before the importer is ready returns the
// corresponding need-password error.
func (im *Importer) Run(store KeyStore, progress ProgressFunc) (*Result, error) {
	switch im.state {
	case StateNeedPrimaryPassword:
		return nil, ErrPrimaryPasswordRequired
	case StateNeedSecondaryPassword:
		return nil, ErrSecondaryPasswordRequired
	case StateFailed:
		return nil, im.err
	}

	var res Result
	total := len(im.doc.Keys)
	for i, rec := range im.doc.Keys {
		if rec.Priv == "" {
			log.Debugf("Skipping watch-only record %s", rec.Address)
			res.Skipped++
		} else {
			if err := im.importRecord(rec, store); err != nil {
				im.fail(err)
				return &res, err
			}
			res.Imported++
		}

		if progress != nil {
			progress(100*i/total, rec.Address)
		}
	}

	log.Infof("Import complete: %d keys imported, %d watch-only records skipped",
		res.Imported, res.Skipped)
	return &res, nil
}

// importRecord recovers the private key of a single record and hands it to
// the store.
func (im *Importer) importRecord(rec *KeyRecord, store KeyStore) error {
	privText := rec.Priv
	if im.doc.DoubleEncryption {
		// The inner layer's password is the wallet's shared salt string
		// concatenated with the secondary password.
		var err error
		privText, err = DeriveAndDecrypt(rec.Priv,
			im.doc.SharedKey+im.secondaryPass, im.doc.SecondaryIterations)
		if err != nil {
			return err
		}
	}

	key, err := DecodePrivateKey(privText, rec.Address, im.net)
	if err != nil {
		return err
	}
	key.CreatedTime = rec.CreatedTime
	key.Label = rec.Label

	return store.ImportKey(key, im.net)
}

// fail records err, moves the importer to StateFailed and returns err.
func (im *Importer) fail(err error) error {
	im.state = StateFailed
	im.err = err
	return err
}
