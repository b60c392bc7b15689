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

const (
	maxSymbolLength = 32
	fastSymbolTag   = "fast-symbol"
)

// Issuer - top of the governance hierarchy
type Issuer struct {
	address    account.Account
	members    orderedset.Set
	fasts      orderedset.Set
	automatons automatons
}

// IssuerAt - the issuer registry at an address
func IssuerAt(address account.Account) Issuer {
	return Issuer{
		address:    address,
		members:    orderedset.New(address, "members"),
		fasts:      orderedset.New(address, "fasts"),
		automatons: newAutomatons(address),
	}
}

// Address - entity address
func (i Issuer) Address() account.Account {
	return i.address
}

// Initialise - set up the registry with its first member
func (i Issuer) Initialise(ctx *call.Context, firstMember account.Account) error {
	trx := ctx.Trx()
	if err := storage.Register(trx, i.address.Bytes(), KindIssuer); nil != err {
		return err
	}
	if err := i.members.Add(trx, firstMember); nil != err {
		return err
	}
	ctx.Emit(i.address, "Initialised", InitialisedEvent{})
	ctx.Emit(i.address, "MemberAdded", MemberEvent{Member: firstMember})
	return nil
}

// IsInitialised - true once Initialise has succeeded
func (i Issuer) IsInitialised(trx storage.Transaction) bool {
	return nil == storage.RequireKind(trx, i.address.Bytes(), KindIssuer)
}

// IsMember - membership test
func (i Issuer) IsMember(trx storage.Transaction, a account.Account) bool {
	return i.members.Contains(trx, a)
}

// IsGovernor - every issuer member governs
func (i Issuer) IsGovernor(trx storage.Transaction, a account.Account) bool {
	return i.IsMember(trx, a)
}

// IsManager - a member, or an automaton holding privilege
func (i Issuer) IsManager(trx storage.Transaction, a account.Account, privilege uint64) bool {
	return i.ManagerCheck(privilege)(trx, a)
}

// ManagerCheck - IsManager as a composable check
func (i Issuer) ManagerCheck(privilege uint64) Check {
	return Either(i.IsMember, i.automatons.check(privilege))
}

func (i Issuer) requireMember(ctx *call.Context) error {
	if !i.IsMember(ctx.Trx(), ctx.Sender()) {
		return fault.ErrRequiresIssuerMembership
	}
	return nil
}

// AddMember - caller must be a member
func (i Issuer) AddMember(ctx *call.Context, member account.Account) error {
	if err := i.requireMember(ctx); nil != err {
		return err
	}
	if err := i.members.Add(ctx.Trx(), member); nil != err {
		return err
	}
	ctx.Emit(i.address, "MemberAdded", MemberEvent{Member: member})
	return nil
}

// RemoveMember - caller must be a member
func (i Issuer) RemoveMember(ctx *call.Context, member account.Account) error {
	if err := i.requireMember(ctx); nil != err {
		return err
	}
	if err := i.members.Remove(ctx.Trx(), member); nil != err {
		return err
	}
	ctx.Emit(i.address, "MemberRemoved", MemberEvent{Member: member})
	return nil
}

// MemberCount - number of members
func (i Issuer) MemberCount(trx storage.Transaction) uint64 {
	return i.members.Len(trx)
}

// PaginateMembers - page of members and the next cursor
func (i Issuer) PaginateMembers(trx storage.Transaction, offset uint64, limit uint64) ([]account.Account, uint64) {
	return i.members.Paginate(trx, offset, limit)
}

// SetAutomatonPrivileges - caller must be a member
func (i Issuer) SetAutomatonPrivileges(ctx *call.Context, automaton account.Account, privileges uint64) error {
	if err := i.requireMember(ctx); nil != err {
		return err
	}
	return i.automatons.assign(ctx, automaton, privileges)
}

// RemoveAutomaton - caller must be a member
func (i Issuer) RemoveAutomaton(ctx *call.Context, automaton account.Account) error {
	if err := i.requireMember(ctx); nil != err {
		return err
	}
	return i.automatons.remove(ctx, automaton)
}

// AutomatonPrivileges - zero for an unknown automaton
func (i Issuer) AutomatonPrivileges(trx storage.Transaction, automaton account.Account) uint64 {
	return i.automatons.privileges(trx, automaton)
}

// AutomatonCan - automaton holds every bit of privilege
func (i Issuer) AutomatonCan(trx storage.Transaction, automaton account.Account, privilege uint64) bool {
	return i.automatons.can(trx, automaton, privilege)
}

// PaginateAutomatons - page of automatons and the next cursor
func (i Issuer) PaginateAutomatons(trx storage.Transaction, offset uint64, limit uint64) ([]account.Account, uint64) {
	return i.automatons.paginate(trx, offset, limit)
}

// RegisterFast - record a FAST under a unique symbol
//
// caller must be a manager with IssuerManageFasts
func (i Issuer) RegisterFast(ctx *call.Context, symbol string, fast account.Account) error {
	trx := ctx.Trx()
	if !i.IsManager(trx, ctx.Sender(), IssuerManageFasts) {
		return fault.ErrRequiresManagerCaller
	}
	if 0 == len(symbol) || len(symbol) > maxSymbolLength {
		return fault.ErrInvalidSymbol
	}
	if _, found := i.FastBySymbol(trx, symbol); found {
		return fault.ErrDuplicateEntry
	}
	if err := i.fasts.Add(trx, fast); nil != err {
		return err
	}
	storage.PutSetting(trx, i.address.Bytes(), fastSymbolTag+":"+symbol, fast.Bytes())
	ctx.Emit(i.address, "FastRegistered", FastRegisteredEvent{Symbol: symbol, Fast: fast})
	return nil
}

// FastBySymbol - address of a registered FAST
func (i Issuer) FastBySymbol(trx storage.Transaction, symbol string) (account.Account, bool) {
	if 0 == len(symbol) || len(symbol) > maxSymbolLength {
		return account.Zero, false
	}
	buffer := storage.Setting(trx, i.address.Bytes(), fastSymbolTag+":"+symbol)
	if nil == buffer {
		return account.Zero, false
	}
	a, err := account.FromBytes(buffer)
	if nil != err {
		return account.Zero, false
	}
	return a, true
}

// IsRegisteredFast - true for a FAST registered with this issuer
func (i Issuer) IsRegisteredFast(trx storage.Transaction, a account.Account) bool {
	return i.fasts.Contains(trx, a)
}

// PaginateFasts - page of registered FASTs and the next cursor
func (i Issuer) PaginateFasts(trx storage.Transaction, offset uint64, limit uint64) ([]account.Account, uint64) {
	return i.fasts.Paginate(trx, offset, limit)
}
