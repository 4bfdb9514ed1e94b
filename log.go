// Originally derived from: btcsuite/btcwallet/log.go
// Copyright (c) 2013-2015 The btcsuite developers

// Copyright (c) 2026 The wallet-key-tool developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariefkdscomp/wallet-key-tool/store"
	"github.com/ariefkdscomp/wallet-key-tool/wallet"
	"github.com/btcsuite/btclog"
)

// logWriter implements an io.Writer that outputs to both standard output and
// the write-end pipe of an initialized log file.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	if logConsole {
		os.Stdout.Write(p)
	}
	if logFile != nil {
		logFile.Write(p)
	}
	return len(p), nil
}

// Loggers per subsytem. A single backend logger is created and all subsytem
// loggers created from it will write to the backend. When adding new
// subsystems, add the subsystem logger variable here and to the
// subsystemLoggers map.
//
// Loggers can not be used before the log file has been initialized. This
// must be performed early during application startup by calling initLogFile.
var (
	// backendLog is the logging backend used to create all subsystem
	// loggers. The backend must not be used before the log file is
	// initialized, or data races and/or nil pointer dereferences will
	// occur.
	backendLog = btclog.NewBackend(logWriter{})

	// logFile is the open log file all subsystem log output is written
	// to, in addition to the console when enabled.
	logFile *os.File

	// logConsole mirrors the logconsole config option.
	logConsole = true

	log       = backendLog.Logger("WKT")
	walletLog = backendLog.Logger("WLT")
	storeLog  = backendLog.Logger("STOR")
)

// Initialize package-global logger variables.
func init() {
	wallet.UseLogger(walletLog)
	store.UseLogger(storeLog)
}

// subsystemLoggers maps each subsystem identifier to its associated logger.
var subsystemLoggers = map[string]btclog.Logger{
	"WKT":  log,
	"WLT":  walletLog,
	"STOR": storeLog,
}

// initLogFile initializes the logging output file. It must be called before
// the package-global log variables are used.
func initLogFile(logPath string, console bool) {
	logConsole = console

	logDir, _ := filepath.Split(logPath)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory: %v\n", err)
		os.Exit(1)
	}
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}

	logFile = f
}

// closeLogFile flushes any outstanding log output and closes the log file.
func closeLogFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// setLogLevel sets the logging level for provided subsystem. Invalid
// subsystems are ignored.
func setLogLevel(subsystemID string, logLevel string) {
	// Ignore invalid subsystems.
	logger, ok := subsystemLoggers[subsystemID]
	if !ok {
		return
	}

	// Defaults to info if the log level is invalid.
	level, _ := btclog.LevelFromString(logLevel)
	logger.SetLevel(level)
}

// setLogLevels sets the log level for all subsystem loggers to the passed
// level. It also dynamically creates the subsystem loggers as needed, so it
// can be used to initialize the logging system.
func setLogLevels(logLevel string) {
	// Configure all sub-systems with the new logging level.
	for subsystemID := range subsystemLoggers {
		setLogLevel(subsystemID, logLevel)
	}
}
