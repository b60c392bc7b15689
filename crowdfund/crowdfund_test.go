// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crowdfund_test

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
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/governance"
	"github.com/bitmark-inc/fastledger/storage"
	"github.com/bitmark-inc/fastledger/token"
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
	fastAddress        = named("fast")
	tokenAddress       = named("usd")
	crowdfundAddress   = account.DeriveN(fastAddress, account.KindCrowdfund, 0)

	alice   = named("alice")   // issuer member, token owner
	bob     = named("bob")     // fast governor
	carol   = named("carol")   // pledger
	dave    = named("dave")    // pledger
	frank   = named("frank")   // pledger
	erin    = named("erin")    // beneficiary
	mallory = named("mallory") // nobody
)

type fixture struct {
	store *storage.Store
	trx   storage.Transaction
	log   *logger.L
	usd   valuetoken.Token
}

func (f *fixture) as(sender account.Account) *call.Context {
	return call.NewContext(f.trx, sender, 1, f.log)
}

func (f *fixture) done() {
	f.trx.Abort()
	f.store.Close()
}

// approve and pledge in one step
func (f *fixture) pledge(t *testing.T, cf crowdfund.Crowdfund, pledger account.Account, amount uint64) error {
	require.NoError(t, f.usd.Approve(f.as(pledger), cf.Address(), amount), "approve")
	return cf.Pledge(f.as(pledger), amount)
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

	issuer := governance.IssuerAt(issuerAddress)
	require.NoError(t, issuer.Initialise(f.as(alice), alice), "issuer")
	marketplace := governance.MarketplaceAt(marketplaceAddress)
	require.NoError(t, marketplace.Initialise(f.as(alice), issuerAddress), "marketplace")
	fast := governance.FastAt(fastAddress, nil)
	require.NoError(t, fast.Initialise(f.as(alice), marketplaceAddress), "fast")
	require.NoError(t, issuer.RegisterFast(f.as(alice), "FST", fastAddress), "register")

	for _, a := range []account.Account{bob, carol, dave, frank, erin} {
		require.NoError(t, marketplace.AddMember(f.as(alice), a), "marketplace member")
	}
	require.NoError(t, fast.AddGovernor(f.as(alice), bob), "governor")
	for _, a := range []account.Account{carol, dave, frank, erin} {
		require.NoError(t, fast.AddMember(f.as(bob), a), "fast member")
	}

	require.NoError(t, f.usd.Initialise(f.as(alice), "Dollar", "USD"), "token")
	for _, a := range []account.Account{carol, dave, frank} {
		require.NoError(t, f.usd.Mint(f.as(alice), a, 40000000000), "token mint")
	}
	return f
}

func params(hardCap uint64) crowdfund.Params {
	return crowdfund.Params{
		Owner:       bob,
		Beneficiary: erin,
		Issuer:      issuerAddress,
		Fast:        fastAddress,
		Token:       tokenAddress,
		Reference:   "roof repair",
		Cap:         hardCap,
	}
}

func create(t *testing.T, f *fixture, tok token.Token, p crowdfund.Params) crowdfund.Crowdfund {
	cf := crowdfund.At(crowdfundAddress, tok)
	require.NoError(t, cf.Initialise(f.as(bob), p), "crowdfund initialise")
	return cf
}

func TestInitialise(t *testing.T) {
	f := setup(t)
	defer f.done()

	cf := crowdfund.At(crowdfundAddress, f.usd)

	p := params(0)
	p.BasisPointsFee = 10001
	assert.Equal(t, fault.ErrInconsistentParameter, cf.Initialise(f.as(bob), p), "fee too high")

	p = params(0)
	p.Beneficiary = mallory
	assert.Equal(t, fault.ErrRequiresFastMembership, cf.Initialise(f.as(bob), p), "outsider beneficiary")

	assert.NoError(t, cf.Initialise(f.as(bob), params(0)), "initialise")
	assert.Equal(t, fault.ErrAlreadyInitialised, cf.Initialise(f.as(bob), params(0)), "second initialise")

	details, err := cf.Details(f.trx)
	assert.NoError(t, err, "details")
	assert.Equal(t, crowdfund.Setup, details.Phase, "phase")
	assert.Equal(t, params(0), details.Params, "params")
}

func TestAdvanceToFunding(t *testing.T) {
	f := setup(t)
	defer f.done()
	cf := create(t, f, f.usd, params(0))

	assert.Equal(t, fault.ErrInvalidPhase, f.pledge(t, cf, carol, 10), "pledge during setup")
	assert.Equal(t, fault.ErrRequiresIssuerMembership, cf.AdvanceToFunding(f.as(bob), 100), "governor advance")
	assert.Equal(t, fault.ErrInconsistentParameter, cf.AdvanceToFunding(f.as(alice), 10001), "fee too high")

	assert.NoError(t, cf.AdvanceToFunding(f.as(alice), 250), "advance")
	assert.Equal(t, crowdfund.Funding, cf.Phase(f.trx), "phase")
	assert.Equal(t, uint64(250), cf.BasisPointsFee(f.trx), "fee")

	assert.Equal(t, fault.ErrInvalidPhase, cf.AdvanceToFunding(f.as(alice), 250), "second advance")
}

func TestAutomatonManages(t *testing.T) {
	f := setup(t)
	defer f.done()
	cf := create(t, f, f.usd, params(0))

	issuer := governance.IssuerAt(issuerAddress)
	robot := named("robot")
	other := named("other")
	require.NoError(t, issuer.SetAutomatonPrivileges(f.as(alice), robot, governance.IssuerManageCrowdfunds), "robot")
	require.NoError(t, issuer.SetAutomatonPrivileges(f.as(alice), other, governance.IssuerManageFasts), "other")

	assert.Equal(t, fault.ErrRequiresIssuerMembership, cf.AdvanceToFunding(f.as(other), 100), "wrong privilege")
	assert.NoError(t, cf.AdvanceToFunding(f.as(robot), 100), "automaton advance")

	assert.Equal(t, fault.ErrRequiresIssuerMembership, cf.Terminate(f.as(other), false), "wrong privilege terminate")
	assert.NoError(t, cf.Terminate(f.as(robot), false), "automaton terminate")
	assert.Equal(t, crowdfund.Failure, cf.Phase(f.trx), "phase")
}

func TestFeeAmountRoundsUp(t *testing.T) {
	items := []struct {
		bps uint64
		fee uint64
	}{
		{10000, 1000},
		{3333, 334},
		{1, 1},
		{0, 0},
	}
	for i, item := range items {
		f := setup(t)
		cf := create(t, f, f.usd, params(0))
		require.NoError(t, cf.AdvanceToFunding(f.as(alice), item.bps), "%d: advance", i)
		require.NoError(t, f.pledge(t, cf, carol, 1000), "%d: pledge", i)
		assert.Equal(t, item.fee, cf.FeeAmount(f.trx), "%d: fee", i)
		f.done()
	}
}

func TestPledge(t *testing.T) {
	f := setup(t)
	defer f.done()
	cf := create(t, f, f.usd, params(32000000000))
	require.NoError(t, cf.AdvanceToFunding(f.as(alice), 0), "advance")

	assert.Equal(t, fault.ErrRequiresFastMembership, cf.Pledge(f.as(mallory), 1), "outsider")
	assert.Equal(t, fault.ErrInconsistentParameter, cf.Pledge(f.as(carol), 0), "zero")
	assert.Equal(t, fault.ErrCapExceeded, f.pledge(t, cf, carol, 32000000001), "beyond cap")
	assert.Equal(t, fault.ErrInsufficientFunds, cf.Pledge(f.as(dave), 10), "no allowance")

	assert.NoError(t, f.pledge(t, cf, carol, 20000000000), "first pledge")
	assert.NoError(t, f.pledge(t, cf, carol, 2000000000), "second pledge")
	assert.NoError(t, f.pledge(t, cf, dave, 10000000000), "reaches cap")
	assert.Equal(t, fault.ErrCapExceeded, f.pledge(t, cf, frank, 1), "cap reached")

	assert.Equal(t, uint64(32000000000), cf.Collected(f.trx), "collected")
	assert.Equal(t, uint64(22000000000), cf.Pledges(f.trx, carol), "carol")
	assert.Equal(t, uint64(32000000000), f.usd.BalanceOf(f.as(alice), cf.Address()), "held by campaign")

	pledgers, next := cf.PaginatePledgers(f.trx, 0, 10)
	assert.Equal(t, []account.Account{carol, dave}, pledgers, "pledgers")
	assert.Equal(t, uint64(2), next, "next")
}

func TestTerminateSuccess(t *testing.T) {
	f := setup(t)
	defer f.done()
	cf := create(t, f, f.usd, params(0))
	require.NoError(t, cf.AdvanceToFunding(f.as(alice), 2000), "advance")
	for _, a := range []account.Account{carol, dave, frank} {
		require.NoError(t, f.pledge(t, cf, a, 50), "pledge")
	}

	assert.Equal(t, fault.ErrRequiresIssuerMembership, cf.Terminate(f.as(bob), true), "governor terminate")
	assert.NoError(t, cf.Terminate(f.as(alice), true), "terminate")

	assert.Equal(t, crowdfund.Success, cf.Phase(f.trx), "phase")
	assert.Equal(t, uint64(30), f.usd.BalanceOf(f.as(alice), issuerAddress), "issuer fee")
	assert.Equal(t, uint64(120), f.usd.BalanceOf(f.as(alice), erin), "beneficiary")
	assert.Equal(t, uint64(0), f.usd.BalanceOf(f.as(alice), cf.Address()), "campaign")

	assert.Equal(t, fault.ErrInvalidPhase, cf.Terminate(f.as(alice), false), "second terminate")
	assert.Equal(t, fault.ErrInvalidPhase, cf.Refund(f.as(alice), carol), "refund after success")
}

func TestTerminateRequiresBeneficiaryMembership(t *testing.T) {
	f := setup(t)
	defer f.done()
	cf := create(t, f, f.usd, params(0))
	require.NoError(t, cf.AdvanceToFunding(f.as(alice), 0), "advance")
	require.NoError(t, f.pledge(t, cf, carol, 10), "pledge")

	require.NoError(t, governance.FastAt(fastAddress, nil).RemoveMember(f.as(bob), erin), "remove beneficiary")
	assert.Equal(t, fault.ErrRequiresFastMembership, cf.Terminate(f.as(alice), true), "terminate")
	assert.Equal(t, crowdfund.Funding, cf.Phase(f.trx), "phase")
}

func TestRefund(t *testing.T) {
	f := setup(t)
	defer f.done()
	cf := create(t, f, f.usd, params(0))
	require.NoError(t, cf.AdvanceToFunding(f.as(alice), 500), "advance")
	require.NoError(t, f.pledge(t, cf, carol, 70), "pledge")
	require.NoError(t, f.pledge(t, cf, carol, 30), "pledge")

	assert.Equal(t, fault.ErrInvalidPhase, cf.Refund(f.as(carol), carol), "refund while funding")
	require.NoError(t, cf.Terminate(f.as(alice), false), "fail")
	assert.Equal(t, crowdfund.Failure, cf.Phase(f.trx), "phase")

	before := f.usd.BalanceOf(f.as(alice), carol)
	assert.NoError(t, cf.Refund(f.as(mallory), carol), "refund")
	assert.Equal(t, before+100, f.usd.BalanceOf(f.as(alice), carol), "refunded amount")
	assert.True(t, cf.Refunded(f.trx, carol), "flag")

	assert.Equal(t, fault.ErrDuplicateEntry, cf.Refund(f.as(carol), carol), "second refund")
	assert.Equal(t, fault.ErrUnknownPledger, cf.Refund(f.as(dave), dave), "not a pledger")
}

func TestPledgeTokenFailure(t *testing.T) {
	f := setup(t)
	defer f.done()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tok := mocks.NewMockToken(ctl)
	cf := create(t, f, tok, params(0))
	require.NoError(t, cf.AdvanceToFunding(f.as(alice), 0), "advance")

	tok.EXPECT().Allowance(gomock.Any(), carol, crowdfundAddress).Return(uint64(10)).Times(1)
	tok.EXPECT().BalanceOf(gomock.Any(), carol).Return(uint64(10)).Times(1)
	tok.EXPECT().TransferFrom(gomock.Any(), carol, crowdfundAddress, uint64(10)).Return(fault.ErrInsufficientFunds).Times(1)

	err := cf.Pledge(f.as(carol), 10)
	assert.Equal(t, fault.ErrTokenContractError, err, "token failure")
}

func TestTerminateTokenFailure(t *testing.T) {
	f := setup(t)
	defer f.done()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	tok := mocks.NewMockToken(ctl)
	cf := create(t, f, tok, params(0))
	require.NoError(t, cf.AdvanceToFunding(f.as(alice), 2000), "advance")

	tok.EXPECT().Allowance(gomock.Any(), carol, crowdfundAddress).Return(uint64(50)).Times(1)
	tok.EXPECT().BalanceOf(gomock.Any(), carol).Return(uint64(50)).Times(1)
	tok.EXPECT().TransferFrom(gomock.Any(), carol, crowdfundAddress, uint64(50)).Return(nil).Times(1)
	require.NoError(t, cf.Pledge(f.as(carol), 50), "pledge")

	gomock.InOrder(
		tok.EXPECT().Transfer(gomock.Any(), issuerAddress, uint64(10)).Return(nil),
		tok.EXPECT().Transfer(gomock.Any(), erin, uint64(40)).Return(fault.ErrInsufficientFunds),
	)
	err := cf.Terminate(f.as(alice), true)
	assert.Equal(t, fault.ErrTokenContractError, err, "token failure")
}
