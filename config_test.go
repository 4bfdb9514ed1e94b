// Copyright (c) 2026 The wallet-key-tool developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
)

// testSetup creates a temp data dir with a wallet backup file in it and
// returns both paths plus a cleanup function.
func testSetup(t *testing.T) (string, string, func()) {
	t.Helper()

	dir, err := ioutil.TempDir("", "walletkeytool")
	if err != nil {
		t.Fatal(err)
	}
	walletFile := filepath.Join(dir, "wallet.aes.json")
	if err := ioutil.WriteFile(walletFile, []byte("payload"), 0644); err != nil {
		os.RemoveAll(dir)
		t.Fatal(err)
	}

	return dir, walletFile, func() {
		os.RemoveAll(dir)
	}
}

func TestLoadConfig(t *testing.T) {
	dir, walletFile, cleanup := testSetup(t)
	defer cleanup()

	cfg, remaining, err := LoadConfig("walletkeytool", []string{
		"--datadir", dir, "--walletfile", walletFile,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 0 {
		t.Errorf("unexpected remaining args %v", remaining)
	}
	if cfg.WalletFile != walletFile {
		t.Errorf("expected wallet file %q, got %q", walletFile, cfg.WalletFile)
	}
	if cfg.storePath != filepath.Join(dir, storeDbName) {
		t.Errorf("unexpected store path %q", cfg.storePath)
	}
	if cfg.netParams() != &chaincfg.MainNetParams {
		t.Error("expected mainnet params by default")
	}
}

func TestLoadConfigPositionalWalletFile(t *testing.T) {
	dir, walletFile, cleanup := testSetup(t)
	defer cleanup()

	cfg, _, err := LoadConfig("walletkeytool", []string{
		"--datadir", dir, walletFile,
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.WalletFile != walletFile {
		t.Errorf("expected wallet file %q, got %q", walletFile, cfg.WalletFile)
	}
}

func TestLoadConfigTestNet(t *testing.T) {
	dir, walletFile, cleanup := testSetup(t)
	defer cleanup()

	cfg, _, err := LoadConfig("walletkeytool", []string{
		"--datadir", dir, "--walletfile", walletFile, "--testnet",
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.netParams() != &chaincfg.TestNet3Params {
		t.Error("expected testnet params")
	}
}

func TestLoadConfigMissingWalletFile(t *testing.T) {
	dir, _, cleanup := testSetup(t)
	defer cleanup()

	_, _, err := LoadConfig("walletkeytool", []string{"--datadir", dir})
	if err == nil {
		t.Error("expected an error when no wallet file is given")
	}

	_, _, err = LoadConfig("walletkeytool", []string{
		"--datadir", dir, "--walletfile", filepath.Join(dir, "nonexistent"),
	})
	if err == nil {
		t.Error("expected an error for a nonexistent wallet file")
	}
}
