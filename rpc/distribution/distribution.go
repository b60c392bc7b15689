// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package distribution

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/distribution"
	"github.com/bitmark-inc/fastledger/fast"
	"github.com/bitmark-inc/fastledger/rpc/request"
	"github.com/bitmark-inc/fastledger/token"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitDistribution = 200
	rateBurstDistribution = 100
)

// Distribution - type for the RPC
type Distribution struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Runner  *call.Runner
	Tokens  token.Resolver
}

// New - create the distribution service
func New(log *logger.L, runner *call.Runner, tokens token.Resolver) *Distribution {
	return &Distribution{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitDistribution, rateBurstDistribution),
		Runner:  runner,
		Tokens:  tokens,
	}
}

// Target - a distribution deployed by a FAST
type Target struct {
	Fast         account.Account `json:"fast"`
	Distribution account.Account `json:"distribution"`
}

func (d *Distribution) find(ctx *call.Context, target Target) (distribution.Distribution, error) {
	return fast.At(target.Fast, d.Tokens).Distribution(ctx.Trx(), target.Distribution)
}

// run - execute an operation on the target distribution
func (d *Distribution) run(caller request.Caller, target Target, name string, operation func(*call.Context, distribution.Distribution) error) error {
	return request.Execute(d.Limiter, d.Runner, caller, name, func(ctx *call.Context) error {
		dist, err := d.find(ctx, target)
		if nil != err {
			return err
		}
		return operation(ctx, dist)
	})
}

// DetailsArguments - distribution to describe
type DetailsArguments struct {
	Target
}

// Details - phase, fee and available amount
func (d *Distribution) Details(arguments *DetailsArguments, reply *distribution.Details) error {
	return request.View(d.Limiter, d.Runner, func(ctx *call.Context) error {
		dist, err := d.find(ctx, arguments.Target)
		if nil != err {
			return err
		}
		details, err := dist.Details(ctx.Trx())
		if nil != err {
			return err
		}
		*reply = details
		return nil
	})
}

// FeeArguments - fix the fee
type FeeArguments struct {
	Caller request.Caller `json:"caller"`
	Target
	Fee uint64 `json:"fee,string"`
}

// AdvanceToBeneficiariesSetup - fix the fee and accept beneficiaries
func (d *Distribution) AdvanceToBeneficiariesSetup(arguments *FeeArguments, reply *request.Done) error {
	err := d.run(arguments.Caller, arguments.Target, "Distribution.AdvanceToBeneficiariesSetup", func(ctx *call.Context, dist distribution.Distribution) error {
		return dist.AdvanceToBeneficiariesSetup(ctx, arguments.Fee)
	})
	reply.Ok = nil == err
	return err
}

// BeneficiariesArguments - beneficiaries with their amounts
type BeneficiariesArguments struct {
	Caller request.Caller `json:"caller"`
	Target
	Beneficiaries []account.Account `json:"beneficiaries"`
	Amounts       []uint64          `json:"amounts"`
}

// AddBeneficiaries - add all beneficiaries or none
func (d *Distribution) AddBeneficiaries(arguments *BeneficiariesArguments, reply *request.Done) error {
	err := d.run(arguments.Caller, arguments.Target, "Distribution.AddBeneficiaries", func(ctx *call.Context, dist distribution.Distribution) error {
		return dist.AddBeneficiaries(ctx, arguments.Beneficiaries, arguments.Amounts)
	})
	reply.Ok = nil == err
	return err
}

// RemoveBeneficiaries - remove beneficiaries and reclaim their owings
func (d *Distribution) RemoveBeneficiaries(arguments *BeneficiariesArguments, reply *request.Done) error {
	err := d.run(arguments.Caller, arguments.Target, "Distribution.RemoveBeneficiaries", func(ctx *call.Context, dist distribution.Distribution) error {
		return dist.RemoveBeneficiaries(ctx, arguments.Beneficiaries)
	})
	reply.Ok = nil == err
	return err
}

// PhaseArguments - a caller acting on a distribution
type PhaseArguments struct {
	Caller request.Caller `json:"caller"`
	Target
}

// AdvanceToWithdrawal - pay the fee and open withdrawals
func (d *Distribution) AdvanceToWithdrawal(arguments *PhaseArguments, reply *request.Done) error {
	err := d.run(arguments.Caller, arguments.Target, "Distribution.AdvanceToWithdrawal", func(ctx *call.Context, dist distribution.Distribution) error {
		return dist.AdvanceToWithdrawal(ctx)
	})
	reply.Ok = nil == err
	return err
}

// Terminate - return the unallocated amount to the distributor
func (d *Distribution) Terminate(arguments *PhaseArguments, reply *request.Done) error {
	err := d.run(arguments.Caller, arguments.Target, "Distribution.Terminate", func(ctx *call.Context, dist distribution.Distribution) error {
		return dist.Terminate(ctx)
	})
	reply.Ok = nil == err
	return err
}

// WithdrawArguments - pay one beneficiary
type WithdrawArguments struct {
	Caller request.Caller `json:"caller"`
	Target
	Beneficiary account.Account `json:"beneficiary"`
}

// Withdraw - pay the owings of a beneficiary
func (d *Distribution) Withdraw(arguments *WithdrawArguments, reply *request.Done) error {
	err := d.run(arguments.Caller, arguments.Target, "Distribution.Withdraw", func(ctx *call.Context, dist distribution.Distribution) error {
		return dist.Withdraw(ctx, arguments.Beneficiary)
	})
	reply.Ok = nil == err
	return err
}

// BeneficiariesPageArguments - one page of beneficiaries
type BeneficiariesPageArguments struct {
	Target
	request.Page
}

// Beneficiaries - one page of beneficiaries
func (d *Distribution) Beneficiaries(arguments *BeneficiariesPageArguments, reply *request.PageReply) error {
	return request.ViewN(d.Limiter, d.Runner, arguments.Page, func(ctx *call.Context) error {
		dist, err := d.find(ctx, arguments.Target)
		if nil != err {
			return err
		}
		reply.Items, reply.Next = dist.PaginateBeneficiaries(ctx.Trx(), arguments.Offset, uint64(arguments.Count))
		return nil
	})
}

// OwingsArguments - one beneficiary
type OwingsArguments struct {
	Target
	Beneficiary account.Account `json:"beneficiary"`
}

// OwingsReply - owed amount and withdrawal state
type OwingsReply struct {
	Amount    uint64 `json:"amount,string"`
	Withdrawn bool   `json:"withdrawn"`
}

// Owings - amount owed to one beneficiary
func (d *Distribution) Owings(arguments *OwingsArguments, reply *OwingsReply) error {
	return request.View(d.Limiter, d.Runner, func(ctx *call.Context) error {
		dist, err := d.find(ctx, arguments.Target)
		if nil != err {
			return err
		}
		reply.Amount = dist.Owings(ctx.Trx(), arguments.Beneficiary)
		reply.Withdrawn = dist.Withdrawn(ctx.Trx(), arguments.Beneficiary)
		return nil
	})
}
