// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/restriction"
	"github.com/bitmark-inc/fastledger/storage"
	"github.com/bitmark-inc/fastledger/util"
)

// the state changes of one transfer, computed before anything is written
type transferPlan struct {
	spender      account.Account
	from         account.Account
	to           account.Account
	amount       uint64
	reference    string
	fromBalance  uint64
	toBalance    uint64
	totalSupply  uint64
	credits      uint64
	allowance    uint64
	useAllowance bool
}

// Transfer - move amount from the caller to another holder
func (l Ledger) Transfer(ctx *call.Context, to account.Account, amount uint64) error {
	return l.TransferFromWithRef(ctx, ctx.Sender(), to, amount, "")
}

// TransferWithRef - Transfer with an audit reference
func (l Ledger) TransferWithRef(ctx *call.Context, to account.Account, amount uint64, reference string) error {
	return l.TransferFromWithRef(ctx, ctx.Sender(), to, amount, reference)
}

// TransferFrom - move amount between two holders on behalf of from
func (l Ledger) TransferFrom(ctx *call.Context, from account.Account, to account.Account, amount uint64) error {
	return l.TransferFromWithRef(ctx, from, to, amount, "")
}

// TransferFromWithRef - the single ledger state transition
//
// a zero source issues from the reserve and a zero destination retires
// circulating supply; every check runs before the first write
func (l Ledger) TransferFromWithRef(ctx *call.Context, from account.Account, to account.Account, amount uint64, reference string) error {
	trx := ctx.Trx()
	if err := l.requireInitialised(trx); nil != err {
		return err
	}
	plan, err := l.plan(trx, ctx.Sender(), from, to, amount, reference)
	if nil != err {
		return err
	}
	l.apply(ctx, plan)
	return nil
}

func (l Ledger) plan(trx storage.Transaction, spender account.Account, from account.Account, to account.Account, amount uint64, reference string) (*transferPlan, error) {
	if err := checkReference(reference); nil != err {
		return nil, err
	}
	if from.Equal(to) {
		return nil, fault.ErrRequiresDifferentSenderAndRecipient
	}

	p := &transferPlan{
		spender:     spender,
		from:        from,
		to:          to,
		amount:      amount,
		reference:   reference,
		totalSupply: l.TotalSupply(trx),
		credits:     l.TransferCredits(trx),
	}

	fromBalance := l.BalanceOf(trx, from)

	if from.IsZero() {
		if !l.Registry().IsGovernor(trx, spender) {
			return nil, fault.ErrRequiresFastGovernorship
		}
		if fromBalance < amount {
			return nil, fault.ErrInsufficientFunds
		}
		total, err := util.Add(p.totalSupply, amount)
		if nil != err {
			return nil, err
		}
		p.totalSupply = total
	} else {
		if !spender.Equal(from) {
			allowance, _ := l.storedAllowance(trx, from, spender)
			if allowance < amount {
				return nil, fault.ErrInsufficientAllowance
			}
			p.allowance = allowance - amount
			p.useAllowance = true
		}
		if fromBalance < amount {
			return nil, fault.ErrInsufficientFunds
		}
		if p.credits < amount {
			return nil, fault.ErrInsufficientTransferCredits
		}
		code := l.DetectTransferRestriction(trx, from, to, amount)
		if err := restriction.Error(code); nil != err {
			return nil, err
		}
		p.credits -= amount
	}
	p.fromBalance = fromBalance - amount

	toBalance, err := util.Add(l.BalanceOf(trx, to), amount)
	if nil != err {
		return nil, err
	}
	p.toBalance = toBalance

	if to.IsZero() {
		total, err := util.Sub(p.totalSupply, amount)
		if nil != err {
			return nil, err
		}
		p.totalSupply = total
	}
	return p, nil
}

func (l Ledger) apply(ctx *call.Context, p *transferPlan) {
	trx := ctx.Trx()

	if p.useAllowance {
		if 0 == p.allowance {
			l.dropAllowance(ctx, p.from, p.spender)
		} else {
			trx.PutN(storage.Pool.Allowances, l.allowanceKey(p.from, p.spender), p.allowance)
		}
	}
	storage.PutSettingN(trx, l.key(), transferCreditsTag, p.credits)
	storage.PutSettingN(trx, l.key(), totalSupplyTag, p.totalSupply)
	l.putBalance(trx, p.from, p.fromBalance)
	l.putBalance(trx, p.to, p.toBalance)

	record := util.Pack(&TransferProof{
		Spender:   p.spender,
		From:      p.from,
		To:        p.to,
		Amount:    p.amount,
		Reference: p.reference,
		Block:     ctx.Block(),
	})
	storage.Append(trx, l.key(), transferProofsLog, record)
	for _, involvee := range []account.Account{p.from, p.to} {
		storage.Append(trx, storage.Key(l.key(), involvee.Bytes()), involveeLog, record)
	}

	ctx.Log().Debugf("ledger: %s transfer: %s -> %s: %d", l.address, p.from, p.to, p.amount)
	ctx.Emit(l.address, "Transfer", TransferEvent{
		Spender:   p.spender,
		From:      p.from,
		To:        p.to,
		Amount:    p.amount,
		Reference: p.reference,
	})
}

// TransferProofCount - number of transfer records
func (l Ledger) TransferProofCount(trx storage.Transaction) uint64 {
	return storage.LogLength(trx, l.key(), transferProofsLog)
}

// TransferProofs - page of transfer records and the next cursor
func (l Ledger) TransferProofs(trx storage.Transaction, offset uint64, limit uint64) ([]TransferProof, uint64) {
	return unpackTransfers(storage.LogRange(trx, l.key(), transferProofsLog, offset, limit))
}

// TransferProofsByInvolvee - transfers with a as source or destination
func (l Ledger) TransferProofsByInvolvee(trx storage.Transaction, a account.Account, offset uint64, limit uint64) ([]TransferProof, uint64) {
	return unpackTransfers(storage.LogRange(trx, storage.Key(l.key(), a.Bytes()), involveeLog, offset, limit))
}

func unpackTransfers(records [][]byte, next uint64) ([]TransferProof, uint64) {
	proofs := make([]TransferProof, len(records))
	for i, record := range records {
		util.Unpack(record, &proofs[i])
	}
	return proofs, next
}

// DetectTransferRestriction - first restriction that would block the transfer
//
// issuing from the reserve consumes no transfer credits
func (l Ledger) DetectTransferRestriction(trx storage.Transaction, from account.Account, to account.Account, amount uint64) restriction.Code {
	credits := amount
	if !from.IsZero() {
		credits = l.TransferCredits(trx)
	}
	return restriction.Detect(restriction.Transfer{
		Amount:           amount,
		Credits:          credits,
		SemiPublic:       l.IsSemiPublic(trx),
		SenderIsMember:   l.isHolder(trx, from),
		ReceiverIsMember: l.isHolder(trx, to),
		SameEndpoints:    from.Equal(to),
	})
}

// MessageForTransferRestriction - text of a restriction code
func (l Ledger) MessageForTransferRestriction(code restriction.Code) (string, error) {
	return restriction.Message(code)
}
