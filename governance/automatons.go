// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package governance

import (
	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/orderedset"
	"github.com/bitmark-inc/fastledger/storage"
)

const automatonTag = "automaton"

// privilege bitmasks held by accounts that are not members
type automatons struct {
	owner account.Account
	set   orderedset.Set
}

func newAutomatons(owner account.Account) automatons {
	return automatons{
		owner: owner,
		set:   orderedset.New(owner, "automatons"),
	}
}

func (a automatons) privileges(trx storage.Transaction, automaton account.Account) uint64 {
	return storage.Amount(trx, a.owner.Bytes(), automatonTag, automaton.Bytes())
}

// every bit of privilege must be held
func (a automatons) can(trx storage.Transaction, automaton account.Account, privilege uint64) bool {
	if 0 == privilege {
		return false
	}
	return a.privileges(trx, automaton)&privilege == privilege
}

func (a automatons) check(privilege uint64) Check {
	return func(trx storage.Transaction, automaton account.Account) bool {
		return a.can(trx, automaton, privilege)
	}
}

// replace the privileges of an automaton, adding it if new
func (a automatons) assign(ctx *call.Context, automaton account.Account, privileges uint64) error {
	if 0 == privileges {
		return fault.ErrInvalidPrivileges
	}
	trx := ctx.Trx()
	if !a.set.Contains(trx, automaton) {
		if err := a.set.Add(trx, automaton); nil != err {
			return err
		}
	}
	storage.PutAmount(trx, a.owner.Bytes(), automatonTag, automaton.Bytes(), privileges)
	ctx.Emit(a.owner, "AutomatonPrivilegesSet", AutomatonEvent{
		Automaton:  automaton,
		Privileges: privileges,
	})
	return nil
}

func (a automatons) remove(ctx *call.Context, automaton account.Account) error {
	trx := ctx.Trx()
	if err := a.set.Remove(trx, automaton); nil != err {
		return err
	}
	storage.ClearAmount(trx, a.owner.Bytes(), automatonTag, automaton.Bytes())
	ctx.Emit(a.owner, "AutomatonRemoved", AutomatonEvent{
		Automaton: automaton,
	})
	return nil
}

func (a automatons) paginate(trx storage.Transaction, offset uint64, limit uint64) ([]account.Account, uint64) {
	return a.set.Paginate(trx, offset, limit)
}
