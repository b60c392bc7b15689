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

// MemberHooks - consulted before a member leaves a FAST
//
// the context's sender is the FAST itself
type MemberHooks interface {
	BeforeRemovingMember(ctx *call.Context, member account.Account) error
}

// Fast - access registry of one FAST
type Fast struct {
	address    account.Account
	governors  orderedset.Set
	members    orderedset.Set
	automatons automatons
	hooks      MemberHooks
}

// FastAt - the FAST registry at an address
//
// hooks may be nil when no member is removed
func FastAt(address account.Account, hooks MemberHooks) Fast {
	return Fast{
		address:    address,
		governors:  orderedset.New(address, "governors"),
		members:    orderedset.New(address, "members"),
		automatons: newAutomatons(address),
		hooks:      hooks,
	}
}

// Address - entity address
func (f Fast) Address() account.Account {
	return f.address
}

// Initialise - bind to a marketplace
//
// caller must be an issuer manager with IssuerManageFasts
func (f Fast) Initialise(ctx *call.Context, marketplace account.Account) error {
	trx := ctx.Trx()
	if err := storage.RequireKind(trx, marketplace.Bytes(), KindMarketplace); nil != err {
		return err
	}
	if !MarketplaceAt(marketplace).Issuer(trx).IsManager(trx, ctx.Sender(), IssuerManageFasts) {
		return fault.ErrRequiresManagerCaller
	}
	if err := storage.Register(trx, f.address.Bytes(), KindFast); nil != err {
		return err
	}
	storage.PutSetting(trx, f.address.Bytes(), parentTag, marketplace.Bytes())
	ctx.Emit(f.address, "Initialised", InitialisedEvent{Parent: marketplace})
	return nil
}

// IsInitialised - true once Initialise has succeeded
func (f Fast) IsInitialised(trx storage.Transaction) bool {
	return nil == storage.RequireKind(trx, f.address.Bytes(), KindFast)
}

// Marketplace - the parent registry
func (f Fast) Marketplace(trx storage.Transaction) Marketplace {
	return MarketplaceAt(parentOf(trx, f.address))
}

// Issuer - the grandparent registry
func (f Fast) Issuer(trx storage.Transaction) Issuer {
	return f.Marketplace(trx).Issuer(trx)
}

// IsIssuerMember - upward check
func (f Fast) IsIssuerMember(trx storage.Transaction, a account.Account) bool {
	return f.Marketplace(trx).IsIssuerMember(trx, a)
}

// IsMarketplaceMember - upward check
func (f Fast) IsMarketplaceMember(trx storage.Transaction, a account.Account) bool {
	return f.Marketplace(trx).IsMember(trx, a)
}

// IsGovernor - governorship test
func (f Fast) IsGovernor(trx storage.Transaction, a account.Account) bool {
	return f.governors.Contains(trx, a)
}

// IsMember - membership test
func (f Fast) IsMember(trx storage.Transaction, a account.Account) bool {
	return f.members.Contains(trx, a)
}

// IsManager - a governor, or an automaton holding privilege
func (f Fast) IsManager(trx storage.Transaction, a account.Account, privilege uint64) bool {
	return Either(f.IsGovernor, f.automatons.check(privilege))(trx, a)
}

// AddGovernor - caller must be an issuer member, candidate a marketplace member
func (f Fast) AddGovernor(ctx *call.Context, governor account.Account) error {
	trx := ctx.Trx()
	if !f.IsIssuerMember(trx, ctx.Sender()) {
		return fault.ErrRequiresIssuerMembership
	}
	if !f.IsMarketplaceMember(trx, governor) {
		return fault.ErrRequiresMarketplaceMembership
	}
	if err := f.governors.Add(trx, governor); nil != err {
		return err
	}
	ctx.Emit(f.address, "GovernorAdded", MemberEvent{Member: governor})
	return nil
}

// RemoveGovernor - caller must be an issuer member
func (f Fast) RemoveGovernor(ctx *call.Context, governor account.Account) error {
	trx := ctx.Trx()
	if !f.IsIssuerMember(trx, ctx.Sender()) {
		return fault.ErrRequiresIssuerMembership
	}
	if err := f.governors.Remove(trx, governor); nil != err {
		return err
	}
	ctx.Emit(f.address, "GovernorRemoved", MemberEvent{Member: governor})
	return nil
}

// PaginateGovernors - page of governors and the next cursor
func (f Fast) PaginateGovernors(trx storage.Transaction, offset uint64, limit uint64) ([]account.Account, uint64) {
	return f.governors.Paginate(trx, offset, limit)
}

// AddMember - caller must be a governor or a FastManageMembers automaton
//
// the candidate must already be a marketplace member, which is told of
// the new membership
func (f Fast) AddMember(ctx *call.Context, member account.Account) error {
	trx := ctx.Trx()
	if !f.IsManager(trx, ctx.Sender(), FastManageMembers) {
		return fault.ErrRequiresFastGovernorship
	}
	marketplace := f.Marketplace(trx)
	if !marketplace.IsMember(trx, member) {
		return fault.ErrRequiresMarketplaceMembership
	}
	if err := f.members.Add(trx, member); nil != err {
		return err
	}
	if err := marketplace.MemberAddedToFast(ctx.As(f.address), member); nil != err {
		return err
	}
	ctx.Emit(f.address, "MemberAdded", MemberEvent{Member: member})
	return nil
}

// RemoveMember - same authority as AddMember
//
// the hooks may veto the removal, e.g. while the member holds a balance
func (f Fast) RemoveMember(ctx *call.Context, member account.Account) error {
	trx := ctx.Trx()
	if !f.IsManager(trx, ctx.Sender(), FastManageMembers) {
		return fault.ErrRequiresFastGovernorship
	}
	if !f.IsMember(trx, member) {
		return fault.ErrNonExistentEntry
	}
	self := ctx.As(f.address)
	if nil != f.hooks {
		if err := f.hooks.BeforeRemovingMember(self, member); nil != err {
			return err
		}
	}
	if err := f.members.Remove(trx, member); nil != err {
		return err
	}
	if err := f.Marketplace(trx).MemberRemovedFromFast(self, member); nil != err {
		return err
	}
	ctx.Emit(f.address, "MemberRemoved", MemberEvent{Member: member})
	return nil
}

// MemberCount - number of members
func (f Fast) MemberCount(trx storage.Transaction) uint64 {
	return f.members.Len(trx)
}

// PaginateMembers - page of members and the next cursor
func (f Fast) PaginateMembers(trx storage.Transaction, offset uint64, limit uint64) ([]account.Account, uint64) {
	return f.members.Paginate(trx, offset, limit)
}

// SetAutomatonPrivileges - caller must be a governor
func (f Fast) SetAutomatonPrivileges(ctx *call.Context, automaton account.Account, privileges uint64) error {
	if !f.IsGovernor(ctx.Trx(), ctx.Sender()) {
		return fault.ErrRequiresFastGovernorship
	}
	return f.automatons.assign(ctx, automaton, privileges)
}

// RemoveAutomaton - caller must be a governor
func (f Fast) RemoveAutomaton(ctx *call.Context, automaton account.Account) error {
	if !f.IsGovernor(ctx.Trx(), ctx.Sender()) {
		return fault.ErrRequiresFastGovernorship
	}
	return f.automatons.remove(ctx, automaton)
}

// AutomatonPrivileges - zero for an unknown automaton
func (f Fast) AutomatonPrivileges(trx storage.Transaction, automaton account.Account) uint64 {
	return f.automatons.privileges(trx, automaton)
}

// AutomatonCan - automaton holds every bit of privilege
func (f Fast) AutomatonCan(trx storage.Transaction, automaton account.Account, privilege uint64) bool {
	return f.automatons.can(trx, automaton, privilege)
}

// PaginateAutomatons - page of automatons and the next cursor
func (f Fast) PaginateAutomatons(trx storage.Transaction, offset uint64, limit uint64) ([]account.Account, uint64) {
	return f.automatons.paginate(trx, offset, limit)
}
