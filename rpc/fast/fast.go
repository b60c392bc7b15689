// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fast

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/fast"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/ledger"
	"github.com/bitmark-inc/fastledger/rpc/request"
	"github.com/bitmark-inc/fastledger/token"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitFast = 200
	rateBurstFast = 100
)

// Fast - type for the RPC
type Fast struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Runner  *call.Runner
	Tokens  token.Resolver
}

// New - create the FAST service
func New(log *logger.L, runner *call.Runner, tokens token.Resolver) *Fast {
	return &Fast{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitFast, rateBurstFast),
		Runner:  runner,
		Tokens:  tokens,
	}
}

func (f *Fast) at(address account.Account) fast.Fast {
	return fast.At(address, f.Tokens)
}

// Create
// ------

// CreateArguments - deploy a FAST below a marketplace
type CreateArguments struct {
	Caller         request.Caller  `json:"caller"`
	Issuer         account.Account `json:"issuer"`
	Marketplace    account.Account `json:"marketplace"`
	Name           string          `json:"name"`
	Symbol         string          `json:"symbol"`
	Decimals       uint8           `json:"decimals"`
	HasFixedSupply bool            `json:"hasFixedSupply"`
	IsSemiPublic   bool            `json:"isSemiPublic"`
}

// AddressReply - address of a deployed entity
type AddressReply struct {
	Address account.Account `json:"address"`
}

// Create - deploy a FAST
func (f *Fast) Create(arguments *CreateArguments, reply *AddressReply) error {
	params := ledger.Params{
		Name:           arguments.Name,
		Symbol:         arguments.Symbol,
		Decimals:       arguments.Decimals,
		HasFixedSupply: arguments.HasFixedSupply,
		IsSemiPublic:   arguments.IsSemiPublic,
	}
	return request.Execute(f.Limiter, f.Runner, arguments.Caller, "Fast.Create", func(ctx *call.Context) error {
		deployed, err := fast.Create(ctx, arguments.Issuer, arguments.Marketplace, params, f.Tokens)
		if nil != err {
			return err
		}
		reply.Address = deployed.Address()
		return nil
	})
}

// DetailsArguments - the FAST to describe
type DetailsArguments struct {
	Entity account.Account `json:"entity"`
}

// DetailsReply - ledger details and parents
type DetailsReply struct {
	ledger.Details
	Issuer      account.Account `json:"issuer"`
	Marketplace account.Account `json:"marketplace"`
}

// Details - describe a FAST
func (f *Fast) Details(arguments *DetailsArguments, reply *DetailsReply) error {
	return request.View(f.Limiter, f.Runner, func(ctx *call.Context) error {
		trx := ctx.Trx()
		l := f.at(arguments.Entity).Ledger()
		if !l.IsInitialised(trx) {
			return fault.ErrNotInitialised
		}
		reply.Details = l.Details(trx)
		registry := l.Registry()
		reply.Marketplace = registry.Marketplace(trx).Address()
		reply.Issuer = registry.Issuer(trx).Address()
		return nil
	})
}

// Governance
// ----------

// Membership - roles of an account within a FAST
func (f *Fast) Membership(arguments *request.AccountArguments, reply *request.MembershipReply) error {
	return request.View(f.Limiter, f.Runner, func(ctx *call.Context) error {
		trx := ctx.Trx()
		registry := f.at(arguments.Entity).Registry()
		if !registry.IsInitialised(trx) {
			return fault.ErrNotInitialised
		}
		reply.IsMember = registry.IsMember(trx, arguments.Account)
		reply.IsGovernor = registry.IsGovernor(trx, arguments.Account)
		reply.Privileges = registry.AutomatonPrivileges(trx, arguments.Account)
		reply.Members = registry.MemberCount(trx)
		return nil
	})
}

// AddMember - add a FAST member
func (f *Fast) AddMember(arguments *request.AccountArguments, reply *request.Done) error {
	err := request.Execute(f.Limiter, f.Runner, arguments.Caller, "Fast.AddMember", func(ctx *call.Context) error {
		return f.at(arguments.Entity).AddMember(ctx, arguments.Account)
	})
	reply.Ok = nil == err
	return err
}

// RemoveMember - remove a FAST member with a zero balance
func (f *Fast) RemoveMember(arguments *request.AccountArguments, reply *request.Done) error {
	err := request.Execute(f.Limiter, f.Runner, arguments.Caller, "Fast.RemoveMember", func(ctx *call.Context) error {
		return f.at(arguments.Entity).RemoveMember(ctx, arguments.Account)
	})
	reply.Ok = nil == err
	return err
}

// Members - one page of FAST members
func (f *Fast) Members(arguments *request.ListArguments, reply *request.PageReply) error {
	return request.ViewN(f.Limiter, f.Runner, arguments.Page, func(ctx *call.Context) error {
		reply.Items, reply.Next = f.at(arguments.Entity).Registry().PaginateMembers(ctx.Trx(), arguments.Offset, uint64(arguments.Count))
		return nil
	})
}

// AddGovernor - add a FAST governor
func (f *Fast) AddGovernor(arguments *request.AccountArguments, reply *request.Done) error {
	err := request.Execute(f.Limiter, f.Runner, arguments.Caller, "Fast.AddGovernor", func(ctx *call.Context) error {
		return f.at(arguments.Entity).AddGovernor(ctx, arguments.Account)
	})
	reply.Ok = nil == err
	return err
}

// RemoveGovernor - remove a FAST governor
func (f *Fast) RemoveGovernor(arguments *request.AccountArguments, reply *request.Done) error {
	err := request.Execute(f.Limiter, f.Runner, arguments.Caller, "Fast.RemoveGovernor", func(ctx *call.Context) error {
		return f.at(arguments.Entity).RemoveGovernor(ctx, arguments.Account)
	})
	reply.Ok = nil == err
	return err
}

// Governors - one page of FAST governors
func (f *Fast) Governors(arguments *request.ListArguments, reply *request.PageReply) error {
	return request.ViewN(f.Limiter, f.Runner, arguments.Page, func(ctx *call.Context) error {
		reply.Items, reply.Next = f.at(arguments.Entity).Registry().PaginateGovernors(ctx.Trx(), arguments.Offset, uint64(arguments.Count))
		return nil
	})
}

// SetAutomaton - grant privileges to an automaton
func (f *Fast) SetAutomaton(arguments *request.AutomatonArguments, reply *request.Done) error {
	err := request.Execute(f.Limiter, f.Runner, arguments.Caller, "Fast.SetAutomaton", func(ctx *call.Context) error {
		return f.at(arguments.Entity).Registry().SetAutomatonPrivileges(ctx, arguments.Automaton, arguments.Privileges)
	})
	reply.Ok = nil == err
	return err
}

// RemoveAutomaton - revoke an automaton
func (f *Fast) RemoveAutomaton(arguments *request.AutomatonArguments, reply *request.Done) error {
	err := request.Execute(f.Limiter, f.Runner, arguments.Caller, "Fast.RemoveAutomaton", func(ctx *call.Context) error {
		return f.at(arguments.Entity).Registry().RemoveAutomaton(ctx, arguments.Automaton)
	})
	reply.Ok = nil == err
	return err
}

// Automatons - one page of automatons
func (f *Fast) Automatons(arguments *request.ListArguments, reply *request.PageReply) error {
	return request.ViewN(f.Limiter, f.Runner, arguments.Page, func(ctx *call.Context) error {
		reply.Items, reply.Next = f.at(arguments.Entity).Registry().PaginateAutomatons(ctx.Trx(), arguments.Offset, uint64(arguments.Count))
		return nil
	})
}
