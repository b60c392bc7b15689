// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package governance_test

import (
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/governance"
	"github.com/bitmark-inc/fastledger/storage"
)

func TestBootstrap(t *testing.T) {
	store, err := storage.OpenMemory()
	require.NoError(t, err, "storage open")
	f := &fixture{
		t:     t,
		store: store,
		trx:   store.Begin(),
		log:   logger.New("testing"),
	}
	defer f.done()

	issuerAddr := governance.IssuerAddress(alice, "main")
	marketplaceAddr := governance.MarketplaceAddress(issuerAddr, "main")
	assert.NotEqual(t, issuerAddr, governance.IssuerAddress(bob, "main"), "deployer not in address")

	err = governance.Bootstrap(f.as(alice), issuerAddr, marketplaceAddr, []account.Account{alice, carol})
	require.NoError(t, err, "bootstrap")

	issuer := governance.IssuerAt(issuerAddr)
	assert.True(t, issuer.IsMember(f.trx, alice), "deployer is member")
	assert.True(t, issuer.IsMember(f.trx, carol), "listed member")
	assert.Equal(t, uint64(2), issuer.MemberCount(f.trx), "duplicate deployer added")

	marketplace := governance.MarketplaceAt(marketplaceAddr)
	assert.Equal(t, issuerAddr, marketplace.Issuer(f.trx).Address(), "marketplace parent")

	err = governance.Bootstrap(f.as(alice), issuerAddr, marketplaceAddr, nil)
	assert.Equal(t, fault.ErrAlreadyInitialised, err, "second bootstrap")
}
