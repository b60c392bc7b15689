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
)

// isHolder - whether a may hold and move units of this ledger
func (l Ledger) isHolder(trx storage.Transaction, a account.Account) bool {
	if a.IsZero() {
		return true
	}
	registry := l.Registry()
	if registry.IsMember(trx, a) {
		return true
	}
	return l.IsSemiPublic(trx) && registry.IsMarketplaceMember(trx, a)
}

func (l Ledger) membershipError(trx storage.Transaction) error {
	if l.IsSemiPublic(trx) {
		return fault.ErrRequiresMarketplaceMembership
	}
	return fault.ErrRequiresFastMembership
}

// BeforeRemovingMember - clear the allowances of a departing member
//
// only the FAST registry may call this, and a member holding a balance
// cannot leave
func (l Ledger) BeforeRemovingMember(ctx *call.Context, member account.Account) error {
	trx := ctx.Trx()
	if !ctx.Sender().Equal(l.address) {
		return fault.ErrInternalMethod
	}
	if !l.IsInitialised(trx) {
		return nil
	}
	if 0 != l.BalanceOf(trx, member) {
		return fault.ErrBalanceIsPositive
	}

	for _, spender := range l.spenders(member).Values(trx) {
		l.dropAllowance(ctx, member, spender)
	}
	for _, owner := range l.owners(member).Values(trx) {
		l.dropAllowance(ctx, owner, member)
	}
	return nil
}
