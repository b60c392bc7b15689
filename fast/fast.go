// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fast - one FAST as a whole
//
// ties the access registry, the token ledger and the campaigns deployed
// by the FAST together under a single address
package fast

import (
	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/governance"
	"github.com/bitmark-inc/fastledger/ledger"
	"github.com/bitmark-inc/fastledger/orderedset"
	"github.com/bitmark-inc/fastledger/storage"
	"github.com/bitmark-inc/fastledger/token"
)

// Fast - handle to one FAST
type Fast struct {
	address       account.Account
	ledger        ledger.Ledger
	tokens        token.Resolver
	crowdfunds    orderedset.Set
	distributions orderedset.Set
}

// DeployedEvent - FastDeployed, CrowdfundDeployed, DistributionDeployed
type DeployedEvent struct {
	Address account.Account `json:"address"`
	Symbol  string          `json:"symbol,omitempty"`
}

// Address - the FAST address derived from an issuer and a symbol
func Address(issuer account.Account, symbol string) account.Account {
	return account.Derive(issuer, account.KindFast, []byte(symbol))
}

// At - the FAST at address using tokens to find campaign value tokens
func At(address account.Account, tokens token.Resolver) Fast {
	return Fast{
		address:       address,
		ledger:        ledger.At(address),
		tokens:        tokens,
		crowdfunds:    orderedset.New(address, "crowdfunds"),
		distributions: orderedset.New(address, "distributions"),
	}
}

// Create - deploy a new FAST below a marketplace of issuer
//
// caller must be an issuer manager with IssuerManageFasts
func Create(ctx *call.Context, issuer account.Account, marketplace account.Account, params ledger.Params, tokens token.Resolver) (Fast, error) {
	trx := ctx.Trx()
	if err := storage.RequireKind(trx, marketplace.Bytes(), governance.KindMarketplace); nil != err {
		return Fast{}, err
	}
	if !governance.MarketplaceAt(marketplace).Issuer(trx).Address().Equal(issuer) {
		return Fast{}, fault.ErrInconsistentParameter
	}
	if !governance.IssuerAt(issuer).IsManager(trx, ctx.Sender(), governance.IssuerManageFasts) {
		return Fast{}, fault.ErrRequiresManagerCaller
	}

	f := At(Address(issuer, params.Symbol), tokens)
	if err := f.Registry().Initialise(ctx, marketplace); nil != err {
		return Fast{}, err
	}
	if err := governance.IssuerAt(issuer).RegisterFast(ctx, params.Symbol, f.address); nil != err {
		return Fast{}, err
	}
	if err := f.ledger.Initialise(ctx, params); nil != err {
		return Fast{}, err
	}

	ctx.Log().Infof("fast: %s deployed as: %s", params.Symbol, f.address)
	ctx.Emit(issuer, "FastDeployed", DeployedEvent{Address: f.address, Symbol: params.Symbol})
	return f, nil
}

// Address - entity address
func (f Fast) Address() account.Account {
	return f.address
}

// Ledger - the token ledger
func (f Fast) Ledger() ledger.Ledger {
	return f.ledger
}

// Registry - the access registry with the ledger's member hook
func (f Fast) Registry() governance.Fast {
	return f.ledger.Registry()
}

// IsInitialised - registry and ledger are both set up
func (f Fast) IsInitialised(trx storage.Transaction) bool {
	return f.Registry().IsInitialised(trx) && f.ledger.IsInitialised(trx)
}

// AddMember - see governance.Fast
func (f Fast) AddMember(ctx *call.Context, member account.Account) error {
	return f.Registry().AddMember(ctx, member)
}

// RemoveMember - see governance.Fast; the ledger may veto
func (f Fast) RemoveMember(ctx *call.Context, member account.Account) error {
	return f.Registry().RemoveMember(ctx, member)
}

// AddGovernor - see governance.Fast
func (f Fast) AddGovernor(ctx *call.Context, governor account.Account) error {
	return f.Registry().AddGovernor(ctx, governor)
}

// RemoveGovernor - see governance.Fast
func (f Fast) RemoveGovernor(ctx *call.Context, governor account.Account) error {
	return f.Registry().RemoveGovernor(ctx, governor)
}
