// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crowdfund

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/crowdfund"
	"github.com/bitmark-inc/fastledger/fast"
	"github.com/bitmark-inc/fastledger/rpc/request"
	"github.com/bitmark-inc/fastledger/token"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitCrowdfund = 200
	rateBurstCrowdfund = 100
)

// Crowdfund - type for the RPC
type Crowdfund struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Runner  *call.Runner
	Tokens  token.Resolver
}

// New - create the crowdfund service
func New(log *logger.L, runner *call.Runner, tokens token.Resolver) *Crowdfund {
	return &Crowdfund{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitCrowdfund, rateBurstCrowdfund),
		Runner:  runner,
		Tokens:  tokens,
	}
}

// Target - a crowdfund deployed by a FAST
type Target struct {
	Fast      account.Account `json:"fast"`
	Crowdfund account.Account `json:"crowdfund"`
}

func (c *Crowdfund) find(ctx *call.Context, target Target) (crowdfund.Crowdfund, error) {
	return fast.At(target.Fast, c.Tokens).Crowdfund(ctx.Trx(), target.Crowdfund)
}

// DetailsArguments - crowdfund to describe
type DetailsArguments struct {
	Target
}

// Details - phase, fee and totals of a crowdfund
func (c *Crowdfund) Details(arguments *DetailsArguments, reply *crowdfund.Details) error {
	return request.View(c.Limiter, c.Runner, func(ctx *call.Context) error {
		cf, err := c.find(ctx, arguments.Target)
		if nil != err {
			return err
		}
		details, err := cf.Details(ctx.Trx())
		if nil != err {
			return err
		}
		*reply = details
		return nil
	})
}

// AdvanceArguments - open a crowdfund for pledges
type AdvanceArguments struct {
	Caller request.Caller `json:"caller"`
	Target
	BasisPointsFee uint64 `json:"basisPointsFee"`
}

// AdvanceToFunding - set the fee and open for pledges
func (c *Crowdfund) AdvanceToFunding(arguments *AdvanceArguments, reply *request.Done) error {
	err := request.Execute(c.Limiter, c.Runner, arguments.Caller, "Crowdfund.AdvanceToFunding", func(ctx *call.Context) error {
		cf, err := c.find(ctx, arguments.Target)
		if nil != err {
			return err
		}
		return cf.AdvanceToFunding(ctx, arguments.BasisPointsFee)
	})
	reply.Ok = nil == err
	return err
}

// PledgeArguments - pledge value tokens
type PledgeArguments struct {
	Caller request.Caller `json:"caller"`
	Target
	Amount uint64 `json:"amount,string"`
}

// Pledge - move approved value tokens of the caller into the crowdfund
func (c *Crowdfund) Pledge(arguments *PledgeArguments, reply *request.Done) error {
	err := request.Execute(c.Limiter, c.Runner, arguments.Caller, "Crowdfund.Pledge", func(ctx *call.Context) error {
		cf, err := c.find(ctx, arguments.Target)
		if nil != err {
			return err
		}
		return cf.Pledge(ctx, arguments.Amount)
	})
	reply.Ok = nil == err
	return err
}

// TerminateArguments - close a crowdfund
type TerminateArguments struct {
	Caller request.Caller `json:"caller"`
	Target
	Success bool `json:"success"`
}

// Terminate - pay out on success, allow refunds on failure
func (c *Crowdfund) Terminate(arguments *TerminateArguments, reply *request.Done) error {
	err := request.Execute(c.Limiter, c.Runner, arguments.Caller, "Crowdfund.Terminate", func(ctx *call.Context) error {
		cf, err := c.find(ctx, arguments.Target)
		if nil != err {
			return err
		}
		return cf.Terminate(ctx, arguments.Success)
	})
	reply.Ok = nil == err
	return err
}

// RefundArguments - return the pledges of one pledger
type RefundArguments struct {
	Caller request.Caller `json:"caller"`
	Target
	Pledger account.Account `json:"pledger"`
}

// Refund - return pledges after a failure
func (c *Crowdfund) Refund(arguments *RefundArguments, reply *request.Done) error {
	err := request.Execute(c.Limiter, c.Runner, arguments.Caller, "Crowdfund.Refund", func(ctx *call.Context) error {
		cf, err := c.find(ctx, arguments.Target)
		if nil != err {
			return err
		}
		return cf.Refund(ctx, arguments.Pledger)
	})
	reply.Ok = nil == err
	return err
}

// PledgersArguments - one page of pledgers
type PledgersArguments struct {
	Target
	request.Page
}

// Pledgers - one page of the accounts that pledged
func (c *Crowdfund) Pledgers(arguments *PledgersArguments, reply *request.PageReply) error {
	return request.ViewN(c.Limiter, c.Runner, arguments.Page, func(ctx *call.Context) error {
		cf, err := c.find(ctx, arguments.Target)
		if nil != err {
			return err
		}
		reply.Items, reply.Next = cf.PaginatePledgers(ctx.Trx(), arguments.Offset, uint64(arguments.Count))
		return nil
	})
}

// PledgeQueryArguments - one pledger of a crowdfund
type PledgeQueryArguments struct {
	Target
	Pledger account.Account `json:"pledger"`
}

// PledgeReply - pledged amount and refund state
type PledgeReply struct {
	Amount   uint64 `json:"amount,string"`
	Refunded bool   `json:"refunded"`
}

// Pledges - amount pledged by one account
func (c *Crowdfund) Pledges(arguments *PledgeQueryArguments, reply *PledgeReply) error {
	return request.View(c.Limiter, c.Runner, func(ctx *call.Context) error {
		cf, err := c.find(ctx, arguments.Target)
		if nil != err {
			return err
		}
		reply.Amount = cf.Pledges(ctx.Trx(), arguments.Pledger)
		reply.Refunded = cf.Refunded(ctx.Trx(), arguments.Pledger)
		return nil
	})
}
