// Originally derived from: btcsuite/btcwallet/btcwallet.go
// Copyright (c) 2013-2014 The btcsuite developers

// Copyright (c) 2026 The wallet-key-tool developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/ariefkdscomp/wallet-key-tool/store"
	"github.com/ariefkdscomp/wallet-key-tool/wallet"
)

var cfg *Config

func main() {
	// Work around defer not working after os.Exit.
	if err := walletKeyToolMain(); err != nil {
		os.Exit(1)
	}
}

// walletKeyToolMain is a work-around main function that is required since
// deferred functions (such as log flushing) are not called with calls to
// os.Exit. Instead, main runs this function and checks for a non-nil error,
// at which point any defers have already run, and if the error is non-nil,
// the program can be exited with an error exit status.
func walletKeyToolMain() error {
	// Load configuration and parse command line. This function also
	// initializes logging and configures it accordingly.
	tcfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	cfg = tcfg
	defer closeLogFile()

	// Open the local key store the recovered keys go into. The passphrase
	// of a new store is prompted with confirmation.
	storePass, err := storePassphrase(cfg, !fileExists(cfg.storePath))
	if err != nil {
		log.Errorf("%v", err)
		return err
	}
	keyStore, err := store.Open(cfg.storePath, storePass)
	if err != nil {
		log.Errorf("Unable to open key store: %v", err)
		return err
	}
	defer keyStore.Close()

	if cfg.ListKeys {
		return listKeys(keyStore)
	}

	// Read the backup file and run the import.
	fileText, err := ioutil.ReadFile(cfg.WalletFile)
	if err != nil {
		log.Errorf("Unable to read wallet backup: %v", err)
		return err
	}

	res, err := runImport(cfg, string(fileText), keyStore)
	if err != nil {
		log.Errorf("Import failed: %v", err)
		return err
	}

	log.Infof("Imported %d keys from %s (%d watch-only records skipped)",
		res.Imported, cfg.WalletFile, res.Skipped)
	return nil
}

// listKeys prints every address already present in the key store.
func listKeys(keyStore *store.Store) error {
	count := 0
	err := keyStore.ForEachAddress(func(address string) error {
		fmt.Println(address)
		count++
		return nil
	})
	if err != nil {
		log.Errorf("Unable to list keys: %v", err)
		return err
	}
	log.Infof("%d keys in the store", count)
	return nil
}

// runImport drives the import state machine over one backup file, supplying
// passwords from the config or from console prompts as the importer asks for
// them.
func runImport(cfg *Config, fileText string, keyStore wallet.KeyStore) (*wallet.Result, error) {
	importer := wallet.NewImporter(fileText, cfg.netParams())
	log.Infof("Importing %s generation backup %s",
		importer.Generation(), cfg.WalletFile)

	for importer.State() != wallet.StateReady {
		switch importer.State() {
		case wallet.StateNeedPrimaryPassword:
			pass, err := walletPassword(cfg)
			if err != nil {
				return nil, err
			}
			if err := importer.SupplyPrimaryPassword(pass); err != nil {
				return nil, err
			}

		case wallet.StateNeedSecondaryPassword:
			pass, err := secondaryPassword(cfg)
			if err != nil {
				return nil, err
			}
			if err := importer.SupplySecondaryPassword(pass); err != nil {
				return nil, err
			}

		case wallet.StateFailed:
			return nil, importer.Err()

		default:
			return nil, errors.New("import stalled in unexpected state")
		}
	}

	return importer.Run(keyStore, func(percent int, address string) {
		log.Debugf("Processed %s (%d%%)", address, percent)
	})
}
