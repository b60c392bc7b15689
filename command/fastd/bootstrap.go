// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/governance"
	"github.com/bitmark-inc/logger"
)

// deployment - the root entities of this ledger
type deployment struct {
	Issuer      account.Account `json:"issuer"`
	Marketplace account.Account `json:"marketplace"`
}

// resolve the bootstrap section into addresses
func deploymentOf(options *BootstrapType) (account.Account, []account.Account, deployment, error) {
	deployer, err := account.FromString(options.Deployer)
	if nil != err {
		return account.Zero, nil, deployment{}, err
	}

	members := make([]account.Account, 0, len(options.Members))
	for _, m := range options.Members {
		a, err := account.FromString(m)
		if nil != err {
			return account.Zero, nil, deployment{}, err
		}
		members = append(members, a)
	}

	issuer := governance.IssuerAddress(deployer, options.Issuer)
	d := deployment{
		Issuer:      issuer,
		Marketplace: governance.MarketplaceAddress(issuer, options.Marketplace),
	}
	return deployer, members, d, nil
}

// deploy the issuer and marketplace unless already present
func bootstrap(log *logger.L, runner *call.Runner, options *BootstrapType) (deployment, error) {
	deployer, members, d, err := deploymentOf(options)
	if nil != err {
		return d, err
	}

	err = runner.Execute(call.Request{Sender: deployer}, "bootstrap", func(ctx *call.Context) error {
		if governance.IssuerAt(d.Issuer).IsInitialised(ctx.Trx()) {
			log.Infof("issuer: %s already deployed", d.Issuer)
			return nil
		}
		log.Infof("deploy issuer: %s  marketplace: %s", d.Issuer, d.Marketplace)
		return governance.Bootstrap(ctx, d.Issuer, d.Marketplace, members)
	})
	return d, err
}
