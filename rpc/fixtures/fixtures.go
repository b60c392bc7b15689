// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fixtures - shared set up for the RPC tests
package fixtures

import (
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fastledger/account"
)

const (
	testingDirName = "testing"

	// LogCategory - logger channel used by tests
	LogCategory = "testing"
)

// SetupTestLogger - file logger in a scratch directory
func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

// TeardownTestLogger - stop logging and remove the scratch directory
func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

// Named - a deterministic test account
func Named(name string) account.Account {
	return account.Derive(account.Zero, "test", []byte(name))
}

// CertificatePair - a fresh self signed PEM certificate and key for localhost
func CertificatePair() (string, string) {
	certificate, key, err := certgen.NewTLSCertPair("fastd test", time.Now().Add(time.Hour), false, []string{"127.0.0.1"})
	if nil != err {
		panic(err)
	}
	return string(certificate), string(key)
}
