// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fast

import (
	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/rpc/request"
)

// CreateCrowdfundArguments - deploy a crowdfund
type CreateCrowdfundArguments struct {
	Caller      request.Caller  `json:"caller"`
	Entity      account.Account `json:"entity"`
	Token       account.Account `json:"token"`
	Beneficiary account.Account `json:"beneficiary"`
	Reference   string          `json:"reference"`
	Cap         uint64          `json:"cap,string"`
}

// CreateCrowdfund - deploy a crowdfund for the FAST
func (f *Fast) CreateCrowdfund(arguments *CreateCrowdfundArguments, reply *AddressReply) error {
	return request.Execute(f.Limiter, f.Runner, arguments.Caller, "Fast.CreateCrowdfund", func(ctx *call.Context) error {
		cf, err := f.at(arguments.Entity).CreateCrowdfund(ctx, arguments.Token, arguments.Beneficiary, arguments.Reference, arguments.Cap)
		if nil != err {
			return err
		}
		reply.Address = cf.Address()
		return nil
	})
}

// CreateDistributionArguments - deploy a distribution
type CreateDistributionArguments struct {
	Caller     request.Caller  `json:"caller"`
	Entity     account.Account `json:"entity"`
	Token      account.Account `json:"token"`
	Total      uint64          `json:"total,string"`
	BlockLatch uint64          `json:"blockLatch"`
	Reference  string          `json:"reference"`
}

// CreateDistribution - deploy and fund a distribution from the caller
func (f *Fast) CreateDistribution(arguments *CreateDistributionArguments, reply *AddressReply) error {
	return request.Execute(f.Limiter, f.Runner, arguments.Caller, "Fast.CreateDistribution", func(ctx *call.Context) error {
		d, err := f.at(arguments.Entity).CreateDistribution(ctx, arguments.Token, arguments.Total, arguments.BlockLatch, arguments.Reference)
		if nil != err {
			return err
		}
		reply.Address = d.Address()
		return nil
	})
}

// Crowdfunds - one page of the crowdfunds of a FAST
func (f *Fast) Crowdfunds(arguments *request.ListArguments, reply *request.PageReply) error {
	return request.ViewN(f.Limiter, f.Runner, arguments.Page, func(ctx *call.Context) error {
		reply.Items, reply.Next = f.at(arguments.Entity).PaginateCrowdfunds(ctx.Trx(), arguments.Offset, uint64(arguments.Count))
		return nil
	})
}

// Distributions - one page of the distributions of a FAST
func (f *Fast) Distributions(arguments *request.ListArguments, reply *request.PageReply) error {
	return request.ViewN(f.Limiter, f.Runner, arguments.Page, func(ctx *call.Context) error {
		reply.Items, reply.Next = f.at(arguments.Entity).PaginateDistributions(ctx.Trx(), arguments.Offset, uint64(arguments.Count))
		return nil
	})
}
