// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fast

import (
	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/crowdfund"
	"github.com/bitmark-inc/fastledger/distribution"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/governance"
	"github.com/bitmark-inc/fastledger/storage"
	"github.com/bitmark-inc/fastledger/token"
)

// CreateCrowdfund - deploy a crowdfund paying the beneficiary in tok
//
// caller must be a governor or a FastManageCrowdfunds automaton; the fee
// is set by the issuer when funding opens
func (f Fast) CreateCrowdfund(ctx *call.Context, tok account.Account, beneficiary account.Account, reference string, hardCap uint64) (crowdfund.Crowdfund, error) {
	trx := ctx.Trx()
	registry := f.Registry()
	if !f.IsInitialised(trx) {
		return crowdfund.Crowdfund{}, fault.ErrNotInitialised
	}
	if !registry.IsManager(trx, ctx.Sender(), governance.FastManageCrowdfunds) {
		return crowdfund.Crowdfund{}, fault.ErrRequiresFastGovernorship
	}
	value, err := f.tokens.Token(trx, tok)
	if nil != err {
		return crowdfund.Crowdfund{}, err
	}

	address := account.DeriveN(f.address, account.KindCrowdfund, f.crowdfunds.Len(trx))
	cf := crowdfund.At(address, value)
	err = cf.Initialise(ctx, crowdfund.Params{
		Owner:       ctx.Sender(),
		Beneficiary: beneficiary,
		Issuer:      registry.Issuer(trx).Address(),
		Fast:        f.address,
		Token:       tok,
		Reference:   reference,
		Cap:         hardCap,
	})
	if nil != err {
		return crowdfund.Crowdfund{}, err
	}
	if err := f.crowdfunds.Add(trx, address); nil != err {
		return crowdfund.Crowdfund{}, err
	}
	ctx.Emit(f.address, "CrowdfundDeployed", DeployedEvent{Address: address})
	return cf, nil
}

// CreateDistribution - deploy a distribution funded by the caller
//
// caller must be a member or a FastManageDistributions automaton and have
// approved this FAST to spend total of tok; the distribution leaves this
// call in FeeSetup
func (f Fast) CreateDistribution(ctx *call.Context, tok account.Account, total uint64, blockLatch uint64, reference string) (distribution.Distribution, error) {
	trx := ctx.Trx()
	registry := f.Registry()
	if !f.IsInitialised(trx) {
		return distribution.Distribution{}, fault.ErrNotInitialised
	}
	distributor := ctx.Sender()
	if !registry.IsMember(trx, distributor) && !registry.AutomatonCan(trx, distributor, governance.FastManageDistributions) {
		return distribution.Distribution{}, fault.ErrRequiresFastMembership
	}
	value, err := f.tokens.Token(trx, tok)
	if nil != err {
		return distribution.Distribution{}, err
	}

	address := account.DeriveN(f.address, account.KindDistribution, f.distributions.Len(trx))
	d := distribution.At(address, value)
	err = d.Initialise(ctx, distribution.Params{
		Distributor: distributor,
		Issuer:      registry.Issuer(trx).Address(),
		Fast:        f.address,
		Token:       tok,
		Total:       total,
		BlockLatch:  blockLatch,
		Reference:   reference,
	})
	if nil != err {
		return distribution.Distribution{}, err
	}
	if err := f.distributions.Add(trx, address); nil != err {
		return distribution.Distribution{}, err
	}

	self := ctx.As(f.address)
	if err := value.TransferFrom(self, distributor, address, total); nil != err {
		return distribution.Distribution{}, token.Wrap(err)
	}
	if err := d.AdvanceToFeeSetup(self); nil != err {
		return distribution.Distribution{}, err
	}
	ctx.Emit(f.address, "DistributionDeployed", DeployedEvent{Address: address})
	return d, nil
}

// Crowdfund - a crowdfund deployed by this FAST
func (f Fast) Crowdfund(trx storage.Transaction, address account.Account) (crowdfund.Crowdfund, error) {
	if !f.crowdfunds.Contains(trx, address) {
		return crowdfund.Crowdfund{}, fault.ErrUnknownEntity
	}
	params, err := crowdfund.At(address, nil).Params(trx)
	if nil != err {
		return crowdfund.Crowdfund{}, err
	}
	value, err := f.tokens.Token(trx, params.Token)
	if nil != err {
		return crowdfund.Crowdfund{}, err
	}
	return crowdfund.At(address, value), nil
}

// Distribution - a distribution deployed by this FAST
func (f Fast) Distribution(trx storage.Transaction, address account.Account) (distribution.Distribution, error) {
	if !f.distributions.Contains(trx, address) {
		return distribution.Distribution{}, fault.ErrUnknownEntity
	}
	params, err := distribution.At(address, nil).Params(trx)
	if nil != err {
		return distribution.Distribution{}, err
	}
	value, err := f.tokens.Token(trx, params.Token)
	if nil != err {
		return distribution.Distribution{}, err
	}
	return distribution.At(address, value), nil
}

// PaginateCrowdfunds - page of crowdfund addresses and the next cursor
func (f Fast) PaginateCrowdfunds(trx storage.Transaction, offset uint64, limit uint64) ([]account.Account, uint64) {
	return f.crowdfunds.Paginate(trx, offset, limit)
}

// PaginateDistributions - page of distribution addresses and the next cursor
func (f Fast) PaginateDistributions(trx storage.Transaction, offset uint64, limit uint64) ([]account.Account, uint64) {
	return f.distributions.Paginate(trx, offset, limit)
}
