// Originally derived from: btcsuite/btcwallet/walletsetup.go
// Copyright (c) 2013-2014 The btcsuite developers

// Copyright (c) 2026 The wallet-key-tool developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/ssh/terminal"
)

// promptConsolePass uses the given prefix to ask the user for a password.
// If confirm is set, the function will ask the user to confirm the
// passphrase and will repeat the prompts until they enter a matching
// response.
func promptConsolePass(prefix string, confirm bool) ([]byte, error) {
	// Prompt the user until they enter a passphrase.
	prompt := fmt.Sprintf("%s: ", prefix)
	for {
		fmt.Print(prompt)
		pass, err := terminal.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return nil, err
		}
		fmt.Print("\n")
		pass = bytes.TrimSpace(pass)
		if len(pass) == 0 {
			continue
		}

		if !confirm {
			return pass, nil
		}

		fmt.Print("Confirm passphrase: ")
		confirm, err := terminal.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return nil, err
		}
		fmt.Print("\n")
		confirm = bytes.TrimSpace(confirm)
		if !bytes.Equal(pass, confirm) {
			fmt.Println("The entered passphrases do not match")
			continue
		}

		return pass, nil
	}
}

// walletPassword returns the primary password of the wallet backup, either
// from the config or by prompting the user for it.
func walletPassword(cfg *Config) (string, error) {
	if cfg.Password != "" {
		return cfg.Password, nil
	}
	if !terminal.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("no wallet password given and stdin is not a terminal")
	}
	pass, err := promptConsolePass("Enter the wallet password", false)
	if err != nil {
		return "", err
	}
	return string(pass), nil
}

// secondaryPassword returns the secondary password of a double-encrypted
// wallet, either from the config or by prompting the user for it.
func secondaryPassword(cfg *Config) (string, error) {
	if cfg.SecondaryPassword != "" {
		return cfg.SecondaryPassword, nil
	}
	if !terminal.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("no secondary password given and stdin is not a terminal")
	}
	pass, err := promptConsolePass("Enter the secondary password", false)
	if err != nil {
		return "", err
	}
	return string(pass), nil
}

// storePassphrase returns the passphrase of the local key store, either from
// the config or by prompting the user for it. A new store's passphrase is
// prompted with confirmation since a typo would lock the keys away for good.
func storePassphrase(cfg *Config, newStore bool) ([]byte, error) {
	if cfg.StorePass != "" {
		return []byte(cfg.StorePass), nil
	}
	if !terminal.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("no store passphrase given and stdin is not a terminal")
	}
	return promptConsolePass("Enter the key store passphrase", newStore)
}
