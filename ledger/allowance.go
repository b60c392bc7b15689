// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/storage"
	"github.com/bitmark-inc/fastledger/util"
)

func (l Ledger) allowanceKey(owner account.Account, spender account.Account) []byte {
	return storage.Key(l.key(), owner.Bytes(), spender.Bytes())
}

func (l Ledger) storedAllowance(trx storage.Transaction, owner account.Account, spender account.Account) (uint64, bool) {
	return trx.GetN(storage.Pool.Allowances, l.allowanceKey(owner, spender))
}

// Allowance - amount spender may still draw from owner
//
// governors may draw the whole reserve
func (l Ledger) Allowance(trx storage.Transaction, owner account.Account, spender account.Account) uint64 {
	if owner.IsZero() {
		if l.Registry().IsGovernor(trx, spender) {
			return l.BalanceOf(trx, account.Zero)
		}
		return 0
	}
	n, _ := l.storedAllowance(trx, owner, spender)
	return n
}

// Approve - add to the allowance of spender over the caller's balance
func (l Ledger) Approve(ctx *call.Context, spender account.Account, amount uint64) error {
	trx := ctx.Trx()
	if err := l.requireInitialised(trx); nil != err {
		return err
	}
	owner := ctx.Sender()
	if 0 == amount || spender.IsZero() || owner.Equal(spender) {
		return fault.ErrInconsistentParameter
	}
	if !l.isHolder(trx, owner) {
		return l.membershipError(trx)
	}

	current, found := l.storedAllowance(trx, owner, spender)
	total, err := util.Add(current, amount)
	if nil != err {
		return err
	}
	if !found {
		if err := l.spenders(owner).Add(trx, spender); nil != err {
			return err
		}
		if err := l.owners(spender).Add(trx, owner); nil != err {
			return err
		}
	}
	trx.PutN(storage.Pool.Allowances, l.allowanceKey(owner, spender), total)

	ctx.Emit(l.address, "Approval", ApprovalEvent{Owner: owner, Spender: spender, Amount: total})
	return nil
}

// Disapprove - drop the allowance of spender over the caller's balance
func (l Ledger) Disapprove(ctx *call.Context, spender account.Account) error {
	trx := ctx.Trx()
	if err := l.requireInitialised(trx); nil != err {
		return err
	}
	owner := ctx.Sender()
	if _, found := l.storedAllowance(trx, owner, spender); !found {
		return fault.ErrNonExistentEntry
	}
	l.dropAllowance(ctx, owner, spender)
	return nil
}

// removes the map entry and both index entries together
func (l Ledger) dropAllowance(ctx *call.Context, owner account.Account, spender account.Account) {
	trx := ctx.Trx()
	trx.Delete(storage.Pool.Allowances, l.allowanceKey(owner, spender))
	_ = l.spenders(owner).Remove(trx, spender)
	_ = l.owners(spender).Remove(trx, owner)
	ctx.Emit(l.address, "Disapproval", ApprovalEvent{Owner: owner, Spender: spender})
}

// PaginateSpenders - accounts holding an allowance from owner
func (l Ledger) PaginateSpenders(trx storage.Transaction, owner account.Account, offset uint64, limit uint64) ([]account.Account, uint64) {
	return l.spenders(owner).Paginate(trx, offset, limit)
}

// PaginateOwners - accounts that granted spender an allowance
func (l Ledger) PaginateOwners(trx storage.Transaction, spender account.Account, offset uint64, limit uint64) ([]account.Account, uint64) {
	return l.owners(spender).Paginate(trx, offset, limit)
}
