// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package issuer

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/governance"
	"github.com/bitmark-inc/fastledger/rpc/request"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitIssuer = 200
	rateBurstIssuer = 100
)

// Issuer - type for the RPC
type Issuer struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Runner  *call.Runner
}

// New - create the issuer service
func New(log *logger.L, runner *call.Runner) *Issuer {
	return &Issuer{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitIssuer, rateBurstIssuer),
		Runner:  runner,
	}
}

// Membership - roles of an account within the issuer
func (issuer *Issuer) Membership(arguments *request.AccountArguments, reply *request.MembershipReply) error {
	return request.View(issuer.Limiter, issuer.Runner, func(ctx *call.Context) error {
		trx := ctx.Trx()
		i := governance.IssuerAt(arguments.Entity)
		if !i.IsInitialised(trx) {
			return fault.ErrNotInitialised
		}
		reply.IsMember = i.IsMember(trx, arguments.Account)
		reply.IsGovernor = i.IsGovernor(trx, arguments.Account)
		reply.Privileges = i.AutomatonPrivileges(trx, arguments.Account)
		reply.Members = i.MemberCount(trx)
		return nil
	})
}

// AddMember - add an issuer member
func (issuer *Issuer) AddMember(arguments *request.AccountArguments, reply *request.Done) error {
	err := request.Execute(issuer.Limiter, issuer.Runner, arguments.Caller, "Issuer.AddMember", func(ctx *call.Context) error {
		return governance.IssuerAt(arguments.Entity).AddMember(ctx, arguments.Account)
	})
	reply.Ok = nil == err
	return err
}

// RemoveMember - remove an issuer member
func (issuer *Issuer) RemoveMember(arguments *request.AccountArguments, reply *request.Done) error {
	err := request.Execute(issuer.Limiter, issuer.Runner, arguments.Caller, "Issuer.RemoveMember", func(ctx *call.Context) error {
		return governance.IssuerAt(arguments.Entity).RemoveMember(ctx, arguments.Account)
	})
	reply.Ok = nil == err
	return err
}

// Members - one page of issuer members
func (issuer *Issuer) Members(arguments *request.ListArguments, reply *request.PageReply) error {
	return request.ViewN(issuer.Limiter, issuer.Runner, arguments.Page, func(ctx *call.Context) error {
		reply.Items, reply.Next = governance.IssuerAt(arguments.Entity).PaginateMembers(ctx.Trx(), arguments.Offset, uint64(arguments.Count))
		return nil
	})
}

// SetAutomaton - grant privileges to an automaton
func (issuer *Issuer) SetAutomaton(arguments *request.AutomatonArguments, reply *request.Done) error {
	err := request.Execute(issuer.Limiter, issuer.Runner, arguments.Caller, "Issuer.SetAutomaton", func(ctx *call.Context) error {
		return governance.IssuerAt(arguments.Entity).SetAutomatonPrivileges(ctx, arguments.Automaton, arguments.Privileges)
	})
	reply.Ok = nil == err
	return err
}

// RemoveAutomaton - revoke an automaton
func (issuer *Issuer) RemoveAutomaton(arguments *request.AutomatonArguments, reply *request.Done) error {
	err := request.Execute(issuer.Limiter, issuer.Runner, arguments.Caller, "Issuer.RemoveAutomaton", func(ctx *call.Context) error {
		return governance.IssuerAt(arguments.Entity).RemoveAutomaton(ctx, arguments.Automaton)
	})
	reply.Ok = nil == err
	return err
}

// Automatons - one page of automatons
func (issuer *Issuer) Automatons(arguments *request.ListArguments, reply *request.PageReply) error {
	return request.ViewN(issuer.Limiter, issuer.Runner, arguments.Page, func(ctx *call.Context) error {
		reply.Items, reply.Next = governance.IssuerAt(arguments.Entity).PaginateAutomatons(ctx.Trx(), arguments.Offset, uint64(arguments.Count))
		return nil
	})
}

// Fasts - one page of the FASTs registered by the issuer
func (issuer *Issuer) Fasts(arguments *request.ListArguments, reply *request.PageReply) error {
	return request.ViewN(issuer.Limiter, issuer.Runner, arguments.Page, func(ctx *call.Context) error {
		reply.Items, reply.Next = governance.IssuerAt(arguments.Entity).PaginateFasts(ctx.Trx(), arguments.Offset, uint64(arguments.Count))
		return nil
	})
}

// SymbolArguments - look up a FAST by symbol
type SymbolArguments struct {
	Entity account.Account `json:"entity"`
	Symbol string          `json:"symbol"`
}

// SymbolReply - the FAST registered under a symbol
type SymbolReply struct {
	Fast account.Account `json:"fast"`
}

// FastBySymbol - the FAST registered under a symbol
func (issuer *Issuer) FastBySymbol(arguments *SymbolArguments, reply *SymbolReply) error {
	return request.View(issuer.Limiter, issuer.Runner, func(ctx *call.Context) error {
		fast, ok := governance.IssuerAt(arguments.Entity).FastBySymbol(ctx.Trx(), arguments.Symbol)
		if !ok {
			return fault.ErrNonExistentEntry
		}
		reply.Fast = fast
		return nil
	})
}
