// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package token

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/rpc/request"
	"github.com/bitmark-inc/fastledger/valuetoken"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitToken = 200
	rateBurstToken = 100
)

// Token - type for the RPC
type Token struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Runner  *call.Runner
}

// New - create the value token service
func New(log *logger.L, runner *call.Runner) *Token {
	return &Token{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitToken, rateBurstToken),
		Runner:  runner,
	}
}

// CreateArguments - deploy a value token owned by the caller
type CreateArguments struct {
	Caller request.Caller `json:"caller"`
	Name   string         `json:"name"`
	Symbol string         `json:"symbol"`
}

// CreateReply - address of the new token
type CreateReply struct {
	Address account.Account `json:"address"`
}

// Create - deploy a value token
func (t *Token) Create(arguments *CreateArguments, reply *CreateReply) error {
	return request.Execute(t.Limiter, t.Runner, arguments.Caller, "Token.Create", func(ctx *call.Context) error {
		address := valuetoken.Address(ctx.Sender(), arguments.Symbol)
		if err := valuetoken.At(address).Initialise(ctx, arguments.Name, arguments.Symbol); nil != err {
			return err
		}
		reply.Address = address
		return nil
	})
}

// Details - name, symbol, owner and supply
func (t *Token) Details(arguments *request.AccountArguments, reply *valuetoken.Details) error {
	return request.View(t.Limiter, t.Runner, func(ctx *call.Context) error {
		details, err := valuetoken.At(arguments.Entity).Details(ctx.Trx())
		if nil != err {
			return err
		}
		*reply = details
		return nil
	})
}

// AmountArguments - an account and an amount
type AmountArguments struct {
	Caller  request.Caller  `json:"caller"`
	Entity  account.Account `json:"entity"`
	Account account.Account `json:"account"`
	Amount  uint64          `json:"amount,string"`
}

// Mint - owner creates units for an account
func (t *Token) Mint(arguments *AmountArguments, reply *request.Done) error {
	err := request.Execute(t.Limiter, t.Runner, arguments.Caller, "Token.Mint", func(ctx *call.Context) error {
		return valuetoken.At(arguments.Entity).Mint(ctx, arguments.Account, arguments.Amount)
	})
	reply.Ok = nil == err
	return err
}

// Approve - replace the allowance of an account over the caller's balance
func (t *Token) Approve(arguments *AmountArguments, reply *request.Done) error {
	err := request.Execute(t.Limiter, t.Runner, arguments.Caller, "Token.Approve", func(ctx *call.Context) error {
		return valuetoken.At(arguments.Entity).Approve(ctx, arguments.Account, arguments.Amount)
	})
	reply.Ok = nil == err
	return err
}

// Transfer - move units of the caller to an account
func (t *Token) Transfer(arguments *AmountArguments, reply *request.Done) error {
	err := request.Execute(t.Limiter, t.Runner, arguments.Caller, "Token.Transfer", func(ctx *call.Context) error {
		return valuetoken.At(arguments.Entity).Transfer(ctx, arguments.Account, arguments.Amount)
	})
	reply.Ok = nil == err
	return err
}

// BalanceReply - units held
type BalanceReply struct {
	Amount uint64 `json:"amount,string"`
}

// Balance - units held by an account
func (t *Token) Balance(arguments *request.AccountArguments, reply *BalanceReply) error {
	return request.View(t.Limiter, t.Runner, func(ctx *call.Context) error {
		reply.Amount = valuetoken.At(arguments.Entity).BalanceOf(ctx, arguments.Account)
		return nil
	})
}

// AllowanceArguments - owner and spender
type AllowanceArguments struct {
	Entity  account.Account `json:"entity"`
	Owner   account.Account `json:"owner"`
	Spender account.Account `json:"spender"`
}

// Allowance - units a spender may move for an owner
func (t *Token) Allowance(arguments *AllowanceArguments, reply *BalanceReply) error {
	return request.View(t.Limiter, t.Runner, func(ctx *call.Context) error {
		reply.Amount = valuetoken.At(arguments.Entity).Allowance(ctx, arguments.Owner, arguments.Spender)
		return nil
	})
}
