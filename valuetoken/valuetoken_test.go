// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package valuetoken_test

import (
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/storage"
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

var (
	tokenAddress = account.Derive(account.Zero, account.KindToken, []byte("USD"))
	owner        = account.Derive(account.Zero, "test", []byte("owner"))
	holder       = account.Derive(account.Zero, "test", []byte("holder"))
	spender      = account.Derive(account.Zero, "test", []byte("spender"))
)

func setup(t *testing.T) (*storage.Store, storage.Transaction, func(account.Account) *call.Context) {
	store, err := storage.OpenMemory()
	require.NoError(t, err, "open")
	trx := store.Begin()
	log := logger.New("testing")
	as := func(sender account.Account) *call.Context {
		return call.NewContext(trx, sender, 1, log)
	}
	require.NoError(t, valuetoken.At(tokenAddress).Initialise(as(owner), "Dollar", "USD"), "initialise")
	return store, trx, as
}

func TestMintAndTransfer(t *testing.T) {
	store, trx, as := setup(t)
	defer store.Close()
	defer trx.Abort()

	tok := valuetoken.At(tokenAddress)
	assert.Equal(t, fault.ErrRequiresOwner, tok.Mint(as(holder), holder, 10), "non owner mint")
	assert.NoError(t, tok.Mint(as(owner), holder, 100), "mint")

	details, err := tok.Details(trx)
	assert.NoError(t, err, "details")
	assert.Equal(t, uint64(100), details.TotalSupply, "total supply")
	assert.Equal(t, owner, details.Owner, "owner")

	assert.Equal(t, fault.ErrInsufficientFunds, tok.Transfer(as(holder), spender, 101), "overdraw")
	assert.NoError(t, tok.Transfer(as(holder), spender, 40), "transfer")
	assert.Equal(t, uint64(60), tok.BalanceOf(as(owner), holder), "holder")
	assert.Equal(t, uint64(40), tok.BalanceOf(as(owner), spender), "spender")
}

func TestTransferFrom(t *testing.T) {
	store, trx, as := setup(t)
	defer store.Close()
	defer trx.Abort()

	tok := valuetoken.At(tokenAddress)
	require.NoError(t, tok.Mint(as(owner), holder, 100), "mint")
	require.NoError(t, tok.Approve(as(holder), spender, 30), "approve")

	err := tok.TransferFrom(as(spender), holder, owner, 31)
	assert.Equal(t, fault.ErrInsufficientAllowance, err, "beyond allowance")

	assert.NoError(t, tok.TransferFrom(as(spender), holder, owner, 30), "transfer from")
	assert.Equal(t, uint64(0), tok.Allowance(as(spender), holder, spender), "allowance used")
	assert.Equal(t, uint64(70), tok.BalanceOf(as(spender), holder), "holder")
	assert.Equal(t, uint64(30), tok.BalanceOf(as(spender), owner), "owner")
}

func TestResolver(t *testing.T) {
	store, trx, _ := setup(t)
	defer store.Close()
	defer trx.Abort()

	r := valuetoken.Resolver{}
	tok, err := r.Token(trx, tokenAddress)
	assert.NoError(t, err, "resolve")
	assert.Equal(t, valuetoken.At(tokenAddress), tok, "token")

	_, err = r.Token(trx, holder)
	assert.Equal(t, fault.ErrTokenContractError, err, "not a token")
}
