// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fast

import (
	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/ledger"
	"github.com/bitmark-inc/fastledger/restriction"
	"github.com/bitmark-inc/fastledger/rpc/request"
)

// Supply
// ------

// Mint - create tokens in the reserve
func (f *Fast) Mint(arguments *request.AmountArguments, reply *request.Done) error {
	err := request.Execute(f.Limiter, f.Runner, arguments.Caller, "Fast.Mint", func(ctx *call.Context) error {
		return ledger.At(arguments.Entity).Mint(ctx, arguments.Amount, arguments.Reference)
	})
	reply.Ok = nil == err
	return err
}

// Burn - destroy tokens held by the reserve
func (f *Fast) Burn(arguments *request.AmountArguments, reply *request.Done) error {
	err := request.Execute(f.Limiter, f.Runner, arguments.Caller, "Fast.Burn", func(ctx *call.Context) error {
		return ledger.At(arguments.Entity).Burn(ctx, arguments.Amount, arguments.Reference)
	})
	reply.Ok = nil == err
	return err
}

// AddTransferCredits - increase the transfer credits
func (f *Fast) AddTransferCredits(arguments *request.AmountArguments, reply *request.Done) error {
	err := request.Execute(f.Limiter, f.Runner, arguments.Caller, "Fast.AddTransferCredits", func(ctx *call.Context) error {
		return ledger.At(arguments.Entity).AddTransferCredits(ctx, arguments.Amount)
	})
	reply.Ok = nil == err
	return err
}

// DrainTransferCredits - zero the transfer credits
func (f *Fast) DrainTransferCredits(arguments *request.EntityArguments, reply *request.Done) error {
	err := request.Execute(f.Limiter, f.Runner, arguments.Caller, "Fast.DrainTransferCredits", func(ctx *call.Context) error {
		return ledger.At(arguments.Entity).DrainTransferCredits(ctx)
	})
	reply.Ok = nil == err
	return err
}

// FlagArguments - change one ledger flag
type FlagArguments struct {
	Caller request.Caller  `json:"caller"`
	Entity account.Account `json:"entity"`
	Flag   bool            `json:"flag"`
}

// SetIsSemiPublic - open the FAST to all marketplace members
func (f *Fast) SetIsSemiPublic(arguments *FlagArguments, reply *request.Done) error {
	err := request.Execute(f.Limiter, f.Runner, arguments.Caller, "Fast.SetIsSemiPublic", func(ctx *call.Context) error {
		return ledger.At(arguments.Entity).SetIsSemiPublic(ctx, arguments.Flag)
	})
	reply.Ok = nil == err
	return err
}

// SetHasFixedSupply - change the supply model
func (f *Fast) SetHasFixedSupply(arguments *FlagArguments, reply *request.Done) error {
	err := request.Execute(f.Limiter, f.Runner, arguments.Caller, "Fast.SetHasFixedSupply", func(ctx *call.Context) error {
		return ledger.At(arguments.Entity).SetHasFixedSupply(ctx, arguments.Flag)
	})
	reply.Ok = nil == err
	return err
}

// SupplyProofsReply - one page of supply proofs
type SupplyProofsReply struct {
	Proofs []ledger.SupplyProof `json:"proofs"`
	Next   uint64               `json:"next,string"`
}

// SupplyProofs - one page of the mint and burn audit trail
func (f *Fast) SupplyProofs(arguments *request.ListArguments, reply *SupplyProofsReply) error {
	return request.ViewN(f.Limiter, f.Runner, arguments.Page, func(ctx *call.Context) error {
		reply.Proofs, reply.Next = ledger.At(arguments.Entity).SupplyProofs(ctx.Trx(), arguments.Offset, uint64(arguments.Count))
		return nil
	})
}

// Allowances
// ----------

// ApproveArguments - let a spender move tokens of the caller
type ApproveArguments struct {
	Caller  request.Caller  `json:"caller"`
	Entity  account.Account `json:"entity"`
	Spender account.Account `json:"spender"`
	Amount  uint64          `json:"amount,string"`
}

// Approve - increase an allowance
func (f *Fast) Approve(arguments *ApproveArguments, reply *request.Done) error {
	err := request.Execute(f.Limiter, f.Runner, arguments.Caller, "Fast.Approve", func(ctx *call.Context) error {
		return ledger.At(arguments.Entity).Approve(ctx, arguments.Spender, arguments.Amount)
	})
	reply.Ok = nil == err
	return err
}

// Disapprove - drop an allowance
func (f *Fast) Disapprove(arguments *ApproveArguments, reply *request.Done) error {
	err := request.Execute(f.Limiter, f.Runner, arguments.Caller, "Fast.Disapprove", func(ctx *call.Context) error {
		return ledger.At(arguments.Entity).Disapprove(ctx, arguments.Spender)
	})
	reply.Ok = nil == err
	return err
}

// AllowanceArguments - an owner and spender pair
type AllowanceArguments struct {
	Entity  account.Account `json:"entity"`
	Owner   account.Account `json:"owner"`
	Spender account.Account `json:"spender"`
}

// AmountReply - a single amount
type AmountReply struct {
	Amount uint64 `json:"amount,string"`
}

// Allowance - amount a spender may move for an owner
func (f *Fast) Allowance(arguments *AllowanceArguments, reply *AmountReply) error {
	return request.View(f.Limiter, f.Runner, func(ctx *call.Context) error {
		reply.Amount = ledger.At(arguments.Entity).Allowance(ctx.Trx(), arguments.Owner, arguments.Spender)
		return nil
	})
}

// Spenders - one page of the spenders approved by an owner
func (f *Fast) Spenders(arguments *request.ListArguments, reply *request.PageReply) error {
	return request.ViewN(f.Limiter, f.Runner, arguments.Page, func(ctx *call.Context) error {
		reply.Items, reply.Next = ledger.At(arguments.Entity).PaginateSpenders(ctx.Trx(), arguments.Account, arguments.Offset, uint64(arguments.Count))
		return nil
	})
}

// Owners - one page of the owners that approved a spender
func (f *Fast) Owners(arguments *request.ListArguments, reply *request.PageReply) error {
	return request.ViewN(f.Limiter, f.Runner, arguments.Page, func(ctx *call.Context) error {
		reply.Items, reply.Next = ledger.At(arguments.Entity).PaginateOwners(ctx.Trx(), arguments.Account, arguments.Offset, uint64(arguments.Count))
		return nil
	})
}

// Transfers
// ---------

// TransferArguments - move tokens
//
// when From is absent the tokens of the caller are moved
type TransferArguments struct {
	Caller    request.Caller   `json:"caller"`
	Entity    account.Account  `json:"entity"`
	From      *account.Account `json:"from,omitempty"`
	To        account.Account  `json:"to"`
	Amount    uint64           `json:"amount,string"`
	Reference string           `json:"reference,omitempty"`
}

// Transfer - move tokens, possibly using an allowance
func (f *Fast) Transfer(arguments *TransferArguments, reply *request.Done) error {
	err := request.Execute(f.Limiter, f.Runner, arguments.Caller, "Fast.Transfer", func(ctx *call.Context) error {
		from := ctx.Sender()
		if nil != arguments.From {
			from = *arguments.From
		}
		return ledger.At(arguments.Entity).TransferFromWithRef(ctx, from, arguments.To, arguments.Amount, arguments.Reference)
	})
	reply.Ok = nil == err
	return err
}

// BalanceArguments - a holder within a FAST
type BalanceArguments struct {
	Entity account.Account `json:"entity"`
	Holder account.Account `json:"holder"`
}

// Balance - tokens held by an account
func (f *Fast) Balance(arguments *BalanceArguments, reply *AmountReply) error {
	return request.View(f.Limiter, f.Runner, func(ctx *call.Context) error {
		reply.Amount = ledger.At(arguments.Entity).BalanceOf(ctx.Trx(), arguments.Holder)
		return nil
	})
}

// TransferProofsArguments - one page of transfer proofs, optionally for one account
type TransferProofsArguments struct {
	Entity   account.Account  `json:"entity"`
	Involvee *account.Account `json:"involvee,omitempty"`
	request.Page
}

// TransferProofsReply - one page of transfer proofs
type TransferProofsReply struct {
	Proofs []ledger.TransferProof `json:"proofs"`
	Next   uint64                 `json:"next,string"`
}

// TransferProofs - one page of the transfer audit trail
func (f *Fast) TransferProofs(arguments *TransferProofsArguments, reply *TransferProofsReply) error {
	return request.ViewN(f.Limiter, f.Runner, arguments.Page, func(ctx *call.Context) error {
		l := ledger.At(arguments.Entity)
		if nil == arguments.Involvee {
			reply.Proofs, reply.Next = l.TransferProofs(ctx.Trx(), arguments.Offset, uint64(arguments.Count))
		} else {
			reply.Proofs, reply.Next = l.TransferProofsByInvolvee(ctx.Trx(), *arguments.Involvee, arguments.Offset, uint64(arguments.Count))
		}
		return nil
	})
}

// RestrictionArguments - a prospective transfer
type RestrictionArguments struct {
	Entity account.Account `json:"entity"`
	From   account.Account `json:"from"`
	To     account.Account `json:"to"`
	Amount uint64          `json:"amount,string"`
}

// RestrictionReply - code and message for a prospective transfer
type RestrictionReply struct {
	Code    restriction.Code `json:"code"`
	Message string           `json:"message"`
}

// Restriction - would a transfer be refused
func (f *Fast) Restriction(arguments *RestrictionArguments, reply *RestrictionReply) error {
	return request.View(f.Limiter, f.Runner, func(ctx *call.Context) error {
		l := ledger.At(arguments.Entity)
		reply.Code = l.DetectTransferRestriction(ctx.Trx(), arguments.From, arguments.To, arguments.Amount)
		message, err := l.MessageForTransferRestriction(reply.Code)
		if nil != err {
			return err
		}
		reply.Message = message
		return nil
	})
}
