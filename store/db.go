// Originally derived from: btcsuite/btcd/database/db.go
// Copyright (c) 2013-2015 Conformal Systems LLC.

// Copyright (c) 2026 The wallet-key-tool developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package store

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"time"

	"github.com/boltdb/bolt"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/ariefkdscomp/wallet-key-tool/wallet"

	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// dbTimeout is the time duration after which an attempted connection
	// to the database must time out.
	dbTimeout = time.Millisecond * 5

	// nonceSize is the size of the nonce (in bytes) used by secretbox.
	nonceSize = 24

	// saltLength is the desired length of salt used by PBKDF2.
	saltLength = 32

	// keySize is the size of the symmetric key for use with secretbox.
	keySize = 32

	// numIters is the number of iterations to be done by PBKDF2.
	numIters = 1 << 15

	// latestStoreVersion is the most recent version of the key store.
	// This is how Store can know whether to update the database structure
	// or not.
	latestStoreVersion = 0x01
)

// Buckets and keys for storing data in the database.
var (
	miscBucket = []byte("misc")
	keysBucket = []byte("keys")

	versionKey     = []byte("version")
	saltKey        = []byte("salt")
	dbMasterKeyKey = []byte("masterKey")
)

var (
	// ErrNotFound is returned when a record matching the query does not
	// exist in the store.
	ErrNotFound = errors.New("record not found")

	// ErrDecryptionFailed is returned when a record cannot be decrypted,
	// or when the passphrase the store was opened with is wrong.
	ErrDecryptionFailed = errors.New("invalid passphrase")

	// ErrDuplicateKey is returned when a key for the same address already
	// exists in the store.
	ErrDuplicateKey = errors.New("duplicate key")
)

// keyData is the plaintext serialization of a stored key.
type keyData struct {
	WIF         string `json:"wif"`
	CreatedTime int64  `json:"createdTime,omitempty"`
	Label       string `json:"label,omitempty"`
}

// Store persists imported private keys, encrypted at rest. Key material is
// sealed with secretbox under a random master key; the master key itself is
// sealed under a key stretched from the user's passphrase with PBKDF2.
type Store struct {
	db        *bolt.DB
	masterKey *[keySize]byte
}

// deriveKey is used to derive a 32 byte key for encryption/decryption
// operations with secretbox. It runs a large number of rounds of PBKDF2 on
// the passphrase using the specified salt to arrive at the key.
func deriveKey(pass, salt []byte) *[keySize]byte {
	out := pbkdf2.Key(pass, salt, numIters, keySize, sha256.New)
	var key [keySize]byte
	copy(key[:], out)
	return &key
}

// Open creates a new Store from the given file. If the file does not hold a
// store yet, one is initialized with a fresh master key sealed under pass;
// otherwise pass must match the passphrase the store was created with or
// ErrDecryptionFailed is returned.
func Open(file string, pass []byte) (*Store, error) {
	db, err := bolt.Open(file, 0600, &bolt.Options{Timeout: dbTimeout})
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}

	// Verify passphrase, or create the master key, if necessary.
	err = db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(miscBucket)
		if err != nil {
			return err
		}
		if _, err := tx.CreateBucketIfNotExists(keysBucket); err != nil {
			return err
		}

		var masterKey [keySize]byte
		var nonce [nonceSize]byte

		v := bucket.Get(dbMasterKeyKey)
		if v == nil { // It's a new database.
			if _, err := rand.Read(masterKey[:]); err != nil {
				return err
			}
			store.masterKey = &masterKey

			salt, enc, err := store.encryptMasterKey(pass)
			if err != nil {
				return err
			}
			if err := bucket.Put(saltKey, salt); err != nil {
				return err
			}
			if err := bucket.Put(dbMasterKeyKey, enc); err != nil {
				return err
			}
			return bucket.Put(versionKey, []byte{latestStoreVersion})

		} else if len(v) < nonceSize+keySize+secretbox.Overhead {
			return errors.New("encrypted master key too short")
		}

		// We're opening an existing database.
		copy(nonce[:], v[:nonceSize])
		salt := bucket.Get(saltKey)
		key := deriveKey(pass, salt)

		mKey, success := secretbox.Open(nil, v[nonceSize:], &nonce, key)
		if !success {
			return ErrDecryptionFailed
		}
		copy(masterKey[:], mKey)
		store.masterKey = &masterKey

		return store.checkAndUpgrade(tx)
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	log.Debugf("Opened key store %s", file)
	return store, nil
}

// Close performs any necessary cleanups and then closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// checkAndUpgrade is responsible for checking the version of the key store
// and upgrading itself if necessary.
func (s *Store) checkAndUpgrade(tx *bolt.Tx) error {
	bVersion := tx.Bucket(miscBucket).Get(versionKey)
	if len(bVersion) == 0 || bVersion[0] != latestStoreVersion {
		return errors.New("unrecognized version of key store")
	}
	return nil
}

// ImportKey stores a recovered private key, keyed by its address. The key is
// serialized in wallet import format together with its metadata and sealed
// with the store's master key. Importing an address that is already present
// returns ErrDuplicateKey and leaves the stored record unchanged.
//
// ImportKey satisfies the wallet.KeyStore interface.
func (s *Store) ImportKey(key *wallet.RecoveredKey, net *chaincfg.Params) error {
	wif, err := btcutil.NewWIF(key.PrivKey, net, key.Compressed)
	if err != nil {
		return err
	}

	data, err := json.Marshal(&keyData{
		WIF:         wif.String(),
		CreatedTime: key.CreatedTime,
		Label:       key.Label,
	})
	if err != nil {
		return err
	}

	enc, err := s.encrypt(data)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(keysBucket)
		if bucket.Get([]byte(key.Address)) != nil {
			return ErrDuplicateKey
		}
		return bucket.Put([]byte(key.Address), enc)
	})
}

// LookupKey retrieves the stored key for the given address. The returned key
// carries the metadata recorded at import time.
func (s *Store) LookupKey(address string, net *chaincfg.Params) (*wallet.RecoveredKey, error) {
	var enc []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(keysBucket).Get([]byte(address))
		if v == nil {
			return ErrNotFound
		}
		enc = make([]byte, len(v))
		copy(enc, v)
		return nil
	})
	if err != nil {
		return nil, err
	}

	plain, success := s.decrypt(enc)
	if !success {
		return nil, ErrDecryptionFailed
	}

	var data keyData
	if err := json.Unmarshal(plain, &data); err != nil {
		return nil, err
	}
	wif, err := btcutil.DecodeWIF(data.WIF)
	if err != nil {
		return nil, err
	}

	return &wallet.RecoveredKey{
		PrivKey:     wif.PrivKey,
		Compressed:  wif.CompressPubKey,
		Address:     address,
		CreatedTime: data.CreatedTime,
		Label:       data.Label,
	}, nil
}

// ForEachAddress calls f with every stored address, in byte order. The
// iteration stops at the first error, which is returned.
func (s *Store) ForEachAddress(f func(address string) error) error {
	return s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(keysBucket).ForEach(func(k, _ []byte) error {
			return f(string(k))
		})
	})
}

// encryptMasterKey is a helper function that encrypts the master key with
// the given passphrase. It generates the encryption key using PBKDF2 and
// returns the salt used and the encrypted data.
func (s *Store) encryptMasterKey(pass []byte) ([]byte, []byte, error) {
	salt := make([]byte, saltLength)
	var nonce [nonceSize]byte

	// Read random nonce and salt.
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, nil, err
	}
	if _, err := rand.Read(salt); err != nil {
		return nil, nil, err
	}

	// Key used to encrypt the master key.
	key := deriveKey(pass, salt)

	// Encrypt the master key.
	enc := make([]byte, nonceSize)
	copy(enc[:nonceSize], nonce[:])
	enc = secretbox.Seal(enc, s.masterKey[:], &nonce, key)

	return salt, enc, nil
}

// encrypt encrypts the data using nacl.Secretbox with the master key. It
// generates a random nonce and prepends it to the output.
func (s *Store) encrypt(data []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, err
	}

	enc := make([]byte, nonceSize)
	copy(enc[:nonceSize], nonce[:])

	return secretbox.Seal(enc, data, &nonce, s.masterKey), nil
}

// decrypt undoes the operation done by encrypt. It takes the prepended nonce
// and decrypts what follows with the master key.
func (s *Store) decrypt(data []byte) ([]byte, bool) {
	if len(data) < nonceSize {
		return nil, false
	}
	var nonce [nonceSize]byte
	copy(nonce[:], data[:nonceSize])

	return secretbox.Open(nil, data[nonceSize:], &nonce, s.masterKey)
}
