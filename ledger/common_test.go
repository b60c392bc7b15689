// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/governance"
	"github.com/bitmark-inc/fastledger/ledger"
	"github.com/bitmark-inc/fastledger/storage"
)

const (
	testingDirName = "testing"
)

func setupTestLogger() {
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

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

func TestMain(m *testing.M) {
	setupTestLogger()
	rc := m.Run()
	logger.Finalise()
	removeFiles()
	os.Exit(rc)
}

func named(name string) account.Account {
	return account.Derive(account.Zero, "test", []byte(name))
}

var (
	issuerAddress      = named("issuer")
	marketplaceAddress = named("marketplace")
	fastAddress        = named("fast")

	alice   = named("alice")   // issuer member
	bob     = named("bob")     // fast governor
	carol   = named("carol")   // fast member
	dave    = named("dave")    // fast member
	erin    = named("erin")    // marketplace member only
	mallory = named("mallory") // nobody
)

type fixture struct {
	t      *testing.T
	store  *storage.Store
	trx    storage.Transaction
	log    *logger.L
	ledger ledger.Ledger
}

func (f *fixture) as(sender account.Account) *call.Context {
	return call.NewContext(f.trx, sender, 7, f.log)
}

func (f *fixture) done() {
	f.trx.Abort()
	f.store.Close()
}

func (f *fixture) balance(a account.Account) uint64 {
	return f.ledger.BalanceOf(f.trx, a)
}

// issue moves amount from the reserve to a holder
func (f *fixture) issue(to account.Account, amount uint64) {
	require.NoError(f.t, f.ledger.TransferFrom(f.as(bob), account.Zero, to, amount), "issue")
}

// hierarchy with an initialised continuous supply ledger holding a reserve
// of 1000, 500 transfer credits and members carol and dave
func setup(t *testing.T, params ledger.Params) *fixture {
	f := setupUnminted(t, params)
	require.NoError(t, f.ledger.Mint(f.as(alice), 1000, "initial"), "mint")
	require.NoError(t, f.ledger.AddTransferCredits(f.as(alice), 500), "credits")
	return f
}

// as setup, with nothing minted and no transfer credits
func setupUnminted(t *testing.T, params ledger.Params) *fixture {
	store, err := storage.OpenMemory()
	require.NoError(t, err, "storage open")

	f := &fixture{
		t:      t,
		store:  store,
		trx:    store.Begin(),
		log:    logger.New("testing"),
		ledger: ledger.At(fastAddress),
	}

	issuer := governance.IssuerAt(issuerAddress)
	require.NoError(t, issuer.Initialise(f.as(alice), alice), "issuer initialise")

	marketplace := governance.MarketplaceAt(marketplaceAddress)
	require.NoError(t, marketplace.Initialise(f.as(alice), issuerAddress), "marketplace initialise")
	for _, a := range []account.Account{bob, carol, dave, erin} {
		require.NoError(t, marketplace.AddMember(f.as(alice), a), "marketplace add member")
	}

	registry := f.ledger.Registry()
	require.NoError(t, registry.Initialise(f.as(alice), marketplaceAddress), "fast initialise")
	require.NoError(t, issuer.RegisterFast(f.as(alice), params.Symbol, fastAddress), "register fast")
	require.NoError(t, registry.AddGovernor(f.as(alice), bob), "add governor")
	require.NoError(t, f.ledger.Initialise(f.as(alice), params), "ledger initialise")

	for _, a := range []account.Account{carol, dave} {
		require.NoError(t, registry.AddMember(f.as(bob), a), "fast add member")
	}
	return f
}

func continuous() ledger.Params {
	return ledger.Params{
		Name:     "Fast Token",
		Symbol:   "FST",
		Decimals: 2,
	}
}
