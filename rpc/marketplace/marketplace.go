// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package marketplace

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/governance"
	"github.com/bitmark-inc/fastledger/rpc/request"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitMarketplace = 200
	rateBurstMarketplace = 100
)

// Marketplace - type for the RPC
type Marketplace struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Runner  *call.Runner
}

// New - create the marketplace service
func New(log *logger.L, runner *call.Runner) *Marketplace {
	return &Marketplace{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitMarketplace, rateBurstMarketplace),
		Runner:  runner,
	}
}

// Membership - roles of an account within the marketplace
func (marketplace *Marketplace) Membership(arguments *request.AccountArguments, reply *request.MembershipReply) error {
	return request.View(marketplace.Limiter, marketplace.Runner, func(ctx *call.Context) error {
		trx := ctx.Trx()
		m := governance.MarketplaceAt(arguments.Entity)
		reply.IsMember = m.IsMember(trx, arguments.Account)
		reply.Privileges = m.AutomatonPrivileges(trx, arguments.Account)
		reply.Members = m.MemberCount(trx)
		return nil
	})
}

// AddMember - add a marketplace member
func (marketplace *Marketplace) AddMember(arguments *request.AccountArguments, reply *request.Done) error {
	err := request.Execute(marketplace.Limiter, marketplace.Runner, arguments.Caller, "Marketplace.AddMember", func(ctx *call.Context) error {
		return governance.MarketplaceAt(arguments.Entity).AddMember(ctx, arguments.Account)
	})
	reply.Ok = nil == err
	return err
}

// RemoveMember - remove a marketplace member that belongs to no FAST
func (marketplace *Marketplace) RemoveMember(arguments *request.AccountArguments, reply *request.Done) error {
	err := request.Execute(marketplace.Limiter, marketplace.Runner, arguments.Caller, "Marketplace.RemoveMember", func(ctx *call.Context) error {
		return governance.MarketplaceAt(arguments.Entity).RemoveMember(ctx, arguments.Account)
	})
	reply.Ok = nil == err
	return err
}

// Members - one page of marketplace members
func (marketplace *Marketplace) Members(arguments *request.ListArguments, reply *request.PageReply) error {
	return request.ViewN(marketplace.Limiter, marketplace.Runner, arguments.Page, func(ctx *call.Context) error {
		reply.Items, reply.Next = governance.MarketplaceAt(arguments.Entity).PaginateMembers(ctx.Trx(), arguments.Offset, uint64(arguments.Count))
		return nil
	})
}

// FastMemberships - one page of the FASTs an account belongs to
func (marketplace *Marketplace) FastMemberships(arguments *request.ListArguments, reply *request.PageReply) error {
	return request.ViewN(marketplace.Limiter, marketplace.Runner, arguments.Page, func(ctx *call.Context) error {
		reply.Items, reply.Next = governance.MarketplaceAt(arguments.Entity).PaginateFastMemberships(ctx.Trx(), arguments.Account, arguments.Offset, uint64(arguments.Count))
		return nil
	})
}

// SetAutomaton - grant privileges to an automaton
func (marketplace *Marketplace) SetAutomaton(arguments *request.AutomatonArguments, reply *request.Done) error {
	err := request.Execute(marketplace.Limiter, marketplace.Runner, arguments.Caller, "Marketplace.SetAutomaton", func(ctx *call.Context) error {
		return governance.MarketplaceAt(arguments.Entity).SetAutomatonPrivileges(ctx, arguments.Automaton, arguments.Privileges)
	})
	reply.Ok = nil == err
	return err
}

// RemoveAutomaton - revoke an automaton
func (marketplace *Marketplace) RemoveAutomaton(arguments *request.AutomatonArguments, reply *request.Done) error {
	err := request.Execute(marketplace.Limiter, marketplace.Runner, arguments.Caller, "Marketplace.RemoveAutomaton", func(ctx *call.Context) error {
		return governance.MarketplaceAt(arguments.Entity).RemoveAutomaton(ctx, arguments.Automaton)
	})
	reply.Ok = nil == err
	return err
}

// Automatons - one page of automatons
func (marketplace *Marketplace) Automatons(arguments *request.ListArguments, reply *request.PageReply) error {
	return request.ViewN(marketplace.Limiter, marketplace.Runner, arguments.Page, func(ctx *call.Context) error {
		reply.Items, reply.Next = governance.MarketplaceAt(arguments.Entity).PaginateAutomatons(ctx.Trx(), arguments.Offset, uint64(arguments.Count))
		return nil
	})
}
