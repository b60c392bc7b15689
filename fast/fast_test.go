// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fast_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/crowdfund"
	"github.com/bitmark-inc/fastledger/distribution"
	"github.com/bitmark-inc/fastledger/fast"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/governance"
	"github.com/bitmark-inc/fastledger/ledger"
	"github.com/bitmark-inc/fastledger/storage"
	"github.com/bitmark-inc/fastledger/token/mocks"
	"github.com/bitmark-inc/fastledger/valuetoken"
)

const (
	testingDirName = "testing"
)

func TestMain(m *testing.M) {
	_ = os.RemoveAll(testingDirName)
	_ = os.Mkdir(testingDirName, 0700)
	_ = logger.Initialise(logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	})
	rc := m.Run()
	logger.Finalise()
	_ = os.RemoveAll(testingDirName)
	os.Exit(rc)
}

func named(name string) account.Account {
	return account.Derive(account.Zero, "test", []byte(name))
}

var (
	issuerAddress      = named("issuer")
	marketplaceAddress = named("marketplace")
	tokenAddress       = named("usd")

	alice   = named("alice")   // issuer member
	bob     = named("bob")     // fast governor
	carol   = named("carol")   // fast member
	dave    = named("dave")    // fast member
	mallory = named("mallory") // nobody
)

type fixture struct {
	store *storage.Store
	trx   storage.Transaction
	log   *logger.L
	usd   valuetoken.Token
	fast  fast.Fast
}

func (f *fixture) as(sender account.Account) *call.Context {
	return call.NewContext(f.trx, sender, 3, f.log)
}

func (f *fixture) done() {
	f.trx.Abort()
	f.store.Close()
}

func fstParams() ledger.Params {
	return ledger.Params{
		Name:   "Fast Token",
		Symbol: "FST",
	}
}

func setup(t *testing.T) *fixture {
	store, err := storage.OpenMemory()
	require.NoError(t, err, "storage open")
	f := &fixture{
		store: store,
		trx:   store.Begin(),
		log:   logger.New("testing"),
		usd:   valuetoken.At(tokenAddress),
	}

	require.NoError(t, governance.IssuerAt(issuerAddress).Initialise(f.as(alice), alice), "issuer")
	marketplace := governance.MarketplaceAt(marketplaceAddress)
	require.NoError(t, marketplace.Initialise(f.as(alice), issuerAddress), "marketplace")
	for _, a := range []account.Account{bob, carol, dave} {
		require.NoError(t, marketplace.AddMember(f.as(alice), a), "marketplace member")
	}

	f.fast, err = fast.Create(f.as(alice), issuerAddress, marketplaceAddress, fstParams(), valuetoken.Resolver{})
	require.NoError(t, err, "create")
	require.NoError(t, f.fast.AddGovernor(f.as(alice), bob), "governor")
	for _, a := range []account.Account{carol, dave} {
		require.NoError(t, f.fast.AddMember(f.as(bob), a), "member")
	}

	require.NoError(t, f.usd.Initialise(f.as(alice), "Dollar", "USD"), "token")
	require.NoError(t, f.usd.Mint(f.as(alice), carol, 1000), "token mint")
	return f
}

func TestCreate(t *testing.T) {
	f := setup(t)
	defer f.done()

	assert.Equal(t, fast.Address(issuerAddress, "FST"), f.fast.Address(), "derived address")
	assert.True(t, f.fast.IsInitialised(f.trx), "initialised")

	address, ok := governance.IssuerAt(issuerAddress).FastBySymbol(f.trx, "FST")
	assert.True(t, ok, "registered")
	assert.Equal(t, f.fast.Address(), address, "registered address")

	_, err := fast.Create(f.as(alice), issuerAddress, marketplaceAddress, fstParams(), valuetoken.Resolver{})
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "same symbol")

	other := fstParams()
	other.Symbol = "OTH"
	_, err = fast.Create(f.as(bob), issuerAddress, marketplaceAddress, other, valuetoken.Resolver{})
	assert.Equal(t, fault.ErrRequiresManagerCaller, err, "non manager")

	_, err = fast.Create(f.as(alice), named("elsewhere"), marketplaceAddress, other, valuetoken.Resolver{})
	assert.Equal(t, fault.ErrInconsistentParameter, err, "foreign issuer")
}

func TestMembershipUsesLedgerHook(t *testing.T) {
	f := setup(t)
	defer f.done()

	l := f.fast.Ledger()
	require.NoError(t, l.AddTransferCredits(f.as(alice), 100), "credits")
	require.NoError(t, l.Mint(f.as(alice), 100, ""), "mint")
	require.NoError(t, l.TransferFrom(f.as(bob), account.Zero, carol, 10), "issue")

	assert.Equal(t, fault.ErrBalanceIsPositive, f.fast.RemoveMember(f.as(bob), carol), "holder removal")
	assert.NoError(t, f.fast.RemoveMember(f.as(bob), dave), "removal")
	assert.False(t, f.fast.Registry().IsMember(f.trx, dave), "dave")
}

func TestCreateCrowdfund(t *testing.T) {
	f := setup(t)
	defer f.done()

	_, err := f.fast.CreateCrowdfund(f.as(carol), tokenAddress, dave, "", 0)
	assert.Equal(t, fault.ErrRequiresFastGovernorship, err, "member")

	_, err = f.fast.CreateCrowdfund(f.as(bob), named("nothing"), dave, "", 0)
	assert.Equal(t, fault.ErrTokenContractError, err, "unknown token")

	first, err := f.fast.CreateCrowdfund(f.as(bob), tokenAddress, dave, "first", 0)
	assert.NoError(t, err, "first")
	second, err := f.fast.CreateCrowdfund(f.as(bob), tokenAddress, carol, "second", 500)
	assert.NoError(t, err, "second")
	assert.NotEqual(t, first.Address(), second.Address(), "distinct addresses")

	details, err := second.Details(f.trx)
	assert.NoError(t, err, "details")
	assert.Equal(t, crowdfund.Params{
		Owner:       bob,
		Beneficiary: carol,
		Issuer:      issuerAddress,
		Fast:        f.fast.Address(),
		Token:       tokenAddress,
		Reference:   "second",
		Cap:         500,
	}, details.Params, "params")

	all, next := f.fast.PaginateCrowdfunds(f.trx, 0, 10)
	assert.Equal(t, []account.Account{first.Address(), second.Address()}, all, "crowdfunds")
	assert.Equal(t, uint64(2), next, "next")

	found, err := f.fast.Crowdfund(f.trx, first.Address())
	assert.NoError(t, err, "lookup")
	assert.Equal(t, first.Address(), found.Address(), "found")

	_, err = f.fast.Crowdfund(f.trx, mallory)
	assert.Equal(t, fault.ErrUnknownEntity, err, "unknown crowdfund")
}

func TestCreateDistribution(t *testing.T) {
	f := setup(t)
	defer f.done()

	_, err := f.fast.CreateDistribution(f.as(mallory), tokenAddress, 100, 0, "")
	assert.Equal(t, fault.ErrRequiresFastMembership, err, "outsider")

	_, err = f.fast.CreateDistribution(f.as(carol), tokenAddress, 100, 0, "")
	assert.Equal(t, fault.ErrTokenContractError, err, "no approval")

	require.NoError(t, f.usd.Approve(f.as(carol), f.fast.Address(), 100), "approve")
	d, err := f.fast.CreateDistribution(f.as(carol), tokenAddress, 100, 0, "dividend")
	assert.NoError(t, err, "create")
	assert.Equal(t, distribution.FeeSetup, d.Phase(f.trx), "phase")
	assert.Equal(t, uint64(100), f.usd.BalanceOf(f.as(alice), d.Address()), "funded")
	assert.Equal(t, uint64(900), f.usd.BalanceOf(f.as(alice), carol), "distributor")

	found, err := f.fast.Distribution(f.trx, d.Address())
	assert.NoError(t, err, "lookup")
	params, err := found.Params(f.trx)
	assert.NoError(t, err, "params")
	assert.Equal(t, carol, params.Distributor, "distributor")
}

func TestCreateDistributionByAutomaton(t *testing.T) {
	f := setup(t)
	defer f.done()

	robot := named("robot")
	registry := f.fast.Registry()
	require.NoError(t, f.usd.Mint(f.as(alice), robot, 500), "token mint")
	require.NoError(t, f.usd.Approve(f.as(robot), f.fast.Address(), 100), "approve")

	require.NoError(t, registry.SetAutomatonPrivileges(f.as(bob), robot, governance.FastManageCrowdfunds), "wrong privilege")
	_, err := f.fast.CreateDistribution(f.as(robot), tokenAddress, 100, 0, "")
	assert.Equal(t, fault.ErrRequiresFastMembership, err, "crowdfund automaton")

	require.NoError(t, registry.SetAutomatonPrivileges(f.as(bob), robot, governance.FastManageDistributions), "privilege")
	d, err := f.fast.CreateDistribution(f.as(robot), tokenAddress, 100, 0, "payout")
	assert.NoError(t, err, "distribution automaton")
	assert.Equal(t, uint64(100), f.usd.BalanceOf(f.as(alice), d.Address()), "funded")
}

func TestCreateDistributionTokenFailure(t *testing.T) {
	f := setup(t)
	defer f.done()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tok := mocks.NewMockToken(ctl)
	tokens := mocks.NewMockResolver(ctl)
	tokens.EXPECT().Token(gomock.Any(), tokenAddress).Return(tok, nil).Times(1)
	tok.EXPECT().TransferFrom(gomock.Any(), carol, gomock.Any(), uint64(50)).Return(fault.ErrInsufficientAllowance).Times(1)

	mocked := fast.At(f.fast.Address(), tokens)
	_, err := mocked.CreateDistribution(f.as(carol), tokenAddress, 50, 0, "")
	assert.Equal(t, fault.ErrTokenContractError, err, "token failure")
}
