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

const parentTag = "parent"

// Marketplace - the vetted participants of an issuer
type Marketplace struct {
	address    account.Account
	members    orderedset.Set
	automatons automatons
}

// MarketplaceAt - the marketplace registry at an address
func MarketplaceAt(address account.Account) Marketplace {
	return Marketplace{
		address:    address,
		members:    orderedset.New(address, "members"),
		automatons: newAutomatons(address),
	}
}

// Address - entity address
func (m Marketplace) Address() account.Account {
	return m.address
}

// Initialise - bind to an issuer, caller must be a member of that issuer
func (m Marketplace) Initialise(ctx *call.Context, issuer account.Account) error {
	trx := ctx.Trx()
	if err := storage.RequireKind(trx, issuer.Bytes(), KindIssuer); nil != err {
		return err
	}
	if !IssuerAt(issuer).IsMember(trx, ctx.Sender()) {
		return fault.ErrRequiresIssuerMembership
	}
	if err := storage.Register(trx, m.address.Bytes(), KindMarketplace); nil != err {
		return err
	}
	storage.PutSetting(trx, m.address.Bytes(), parentTag, issuer.Bytes())
	ctx.Emit(m.address, "Initialised", InitialisedEvent{Parent: issuer})
	return nil
}

// Issuer - the parent registry
func (m Marketplace) Issuer(trx storage.Transaction) Issuer {
	return IssuerAt(parentOf(trx, m.address))
}

// IsIssuerMember - upward check
func (m Marketplace) IsIssuerMember(trx storage.Transaction, a account.Account) bool {
	return m.Issuer(trx).IsMember(trx, a)
}

// IsMember - membership test
func (m Marketplace) IsMember(trx storage.Transaction, a account.Account) bool {
	return m.members.Contains(trx, a)
}

// member management: an issuer member or an automaton with MarketplaceManageMembers
func (m Marketplace) canManageMembers(trx storage.Transaction, a account.Account) bool {
	return Either(m.IsIssuerMember, m.automatons.check(MarketplaceManageMembers))(trx, a)
}

// AddMember - add a vetted participant
func (m Marketplace) AddMember(ctx *call.Context, member account.Account) error {
	if !m.canManageMembers(ctx.Trx(), ctx.Sender()) {
		return fault.ErrRequiresIssuerMembership
	}
	if err := m.members.Add(ctx.Trx(), member); nil != err {
		return err
	}
	ctx.Emit(m.address, "MemberAdded", MemberEvent{Member: member})
	return nil
}

// RemoveMember - fails while the member still belongs to any FAST
func (m Marketplace) RemoveMember(ctx *call.Context, member account.Account) error {
	trx := ctx.Trx()
	if !m.canManageMembers(trx, ctx.Sender()) {
		return fault.ErrRequiresIssuerMembership
	}
	if !m.IsMember(trx, member) {
		return fault.ErrNonExistentEntry
	}
	if 0 != m.FastMembershipCount(trx, member) {
		return fault.ErrRequiresNoFastMemberships
	}
	if err := m.members.Remove(trx, member); nil != err {
		return err
	}
	ctx.Emit(m.address, "MemberRemoved", MemberEvent{Member: member})
	return nil
}

// MemberCount - number of members
func (m Marketplace) MemberCount(trx storage.Transaction) uint64 {
	return m.members.Len(trx)
}

// PaginateMembers - page of members and the next cursor
func (m Marketplace) PaginateMembers(trx storage.Transaction, offset uint64, limit uint64) ([]account.Account, uint64) {
	return m.members.Paginate(trx, offset, limit)
}

func (m Marketplace) fastMemberships(member account.Account) orderedset.Set {
	return orderedset.New(m.address, "fast-memberships", member)
}

func (m Marketplace) requireFastCaller(ctx *call.Context) error {
	trx := ctx.Trx()
	if !m.Issuer(trx).IsRegisteredFast(trx, ctx.Sender()) {
		return fault.ErrRequiresFastCaller
	}
	return nil
}

// MemberAddedToFast - called by a FAST after adding one of our members
func (m Marketplace) MemberAddedToFast(ctx *call.Context, member account.Account) error {
	if err := m.requireFastCaller(ctx); nil != err {
		return err
	}
	trx := ctx.Trx()
	if !m.IsMember(trx, member) {
		return fault.ErrRequiresMarketplaceMembership
	}
	fast := ctx.Sender()
	if err := m.fastMemberships(member).Add(trx, fast); nil != err {
		return err
	}
	ctx.Emit(m.address, "FastMembershipAdded", FastMembershipEvent{Member: member, Fast: fast})
	return nil
}

// MemberRemovedFromFast - called by a FAST after removing one of our members
func (m Marketplace) MemberRemovedFromFast(ctx *call.Context, member account.Account) error {
	if err := m.requireFastCaller(ctx); nil != err {
		return err
	}
	fast := ctx.Sender()
	if err := m.fastMemberships(member).Remove(ctx.Trx(), fast); nil != err {
		return err
	}
	ctx.Emit(m.address, "FastMembershipRemoved", FastMembershipEvent{Member: member, Fast: fast})
	return nil
}

// FastMembershipCount - number of FASTs a member belongs to
func (m Marketplace) FastMembershipCount(trx storage.Transaction, member account.Account) uint64 {
	return m.fastMemberships(member).Len(trx)
}

// PaginateFastMemberships - page of the FASTs a member belongs to
func (m Marketplace) PaginateFastMemberships(trx storage.Transaction, member account.Account, offset uint64, limit uint64) ([]account.Account, uint64) {
	return m.fastMemberships(member).Paginate(trx, offset, limit)
}

func (m Marketplace) requireIssuerMember(ctx *call.Context) error {
	if !m.IsIssuerMember(ctx.Trx(), ctx.Sender()) {
		return fault.ErrRequiresIssuerMembership
	}
	return nil
}

// SetAutomatonPrivileges - caller must be an issuer member
func (m Marketplace) SetAutomatonPrivileges(ctx *call.Context, automaton account.Account, privileges uint64) error {
	if err := m.requireIssuerMember(ctx); nil != err {
		return err
	}
	return m.automatons.assign(ctx, automaton, privileges)
}

// RemoveAutomaton - caller must be an issuer member
func (m Marketplace) RemoveAutomaton(ctx *call.Context, automaton account.Account) error {
	if err := m.requireIssuerMember(ctx); nil != err {
		return err
	}
	return m.automatons.remove(ctx, automaton)
}

// AutomatonPrivileges - zero for an unknown automaton
func (m Marketplace) AutomatonPrivileges(trx storage.Transaction, automaton account.Account) uint64 {
	return m.automatons.privileges(trx, automaton)
}

// AutomatonCan - automaton holds every bit of privilege
func (m Marketplace) AutomatonCan(trx storage.Transaction, automaton account.Account, privilege uint64) bool {
	return m.automatons.can(trx, automaton, privilege)
}

// PaginateAutomatons - page of automatons and the next cursor
func (m Marketplace) PaginateAutomatons(trx storage.Transaction, offset uint64, limit uint64) ([]account.Account, uint64) {
	return m.automatons.paginate(trx, offset, limit)
}

// the registry an entity was initialised under, Zero if none
func parentOf(trx storage.Transaction, entity account.Account) account.Account {
	buffer := storage.Setting(trx, entity.Bytes(), parentTag)
	if nil == buffer {
		return account.Zero
	}
	a, err := account.FromBytes(buffer)
	if nil != err {
		return account.Zero
	}
	return a
}
