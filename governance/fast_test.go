// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package governance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/governance"
)

func TestFastInitialise(t *testing.T) {
	f := setupHierarchy(t, nil)
	defer f.done()

	fast := governance.FastAt(fastAddress, nil)
	assert.True(t, fast.IsInitialised(f.trx), "not initialised")
	assert.Equal(t, fault.ErrAlreadyInitialised, fast.Initialise(f.as(alice), marketplaceAddress), "second initialise")
	assert.Equal(t, marketplaceAddress, fast.Marketplace(f.trx).Address(), "marketplace")
	assert.Equal(t, issuerAddress, fast.Issuer(f.trx).Address(), "issuer")

	other := governance.FastAt(named("other-fast"), nil)
	assert.Equal(t, fault.ErrRequiresManagerCaller, other.Initialise(f.as(bob), marketplaceAddress), "non manager")
	assert.Equal(t, fault.ErrWrongEntityKind, other.Initialise(f.as(alice), issuerAddress), "parent is not a marketplace")
}

func TestFastGovernors(t *testing.T) {
	f := setupHierarchy(t, nil)
	defer f.done()

	fast := governance.FastAt(fastAddress, nil)

	// marketplace membership is not enough, authority climbs to the issuer
	assert.Equal(t, fault.ErrRequiresIssuerMembership, fast.AddGovernor(f.as(bob), carol), "governor adds governor")
	assert.Equal(t, fault.ErrRequiresMarketplaceMembership, fast.AddGovernor(f.as(alice), mallory), "candidate not in marketplace")
	assert.Equal(t, fault.ErrDuplicateEntry, fast.AddGovernor(f.as(alice), bob), "duplicate")
	assert.Nil(t, fast.AddGovernor(f.as(alice), carol), "add")

	governors, next := fast.PaginateGovernors(f.trx, 0, 10)
	assert.Equal(t, []account.Account{bob, carol}, governors, "governors")
	assert.Equal(t, uint64(2), next, "next")

	assert.Equal(t, fault.ErrRequiresIssuerMembership, fast.RemoveGovernor(f.as(bob), carol), "governor removes governor")
	assert.Nil(t, fast.RemoveGovernor(f.as(alice), carol), "remove")
	assert.Equal(t, fault.ErrNonExistentEntry, fast.RemoveGovernor(f.as(alice), carol), "absent")
}

func TestFastMembers(t *testing.T) {
	h := &hooks{}
	f := setupHierarchy(t, h)
	defer f.done()

	fast := governance.FastAt(fastAddress, h)
	marketplace := governance.MarketplaceAt(marketplaceAddress)

	assert.Equal(t, fault.ErrRequiresFastGovernorship, fast.AddMember(f.as(carol), dave), "non governor")
	assert.Equal(t, fault.ErrRequiresMarketplaceMembership, fast.AddMember(f.as(bob), mallory), "not in marketplace")

	ctx := f.as(bob)
	assert.Nil(t, fast.AddMember(ctx, carol), "add")
	assert.True(t, fast.IsMember(f.trx, carol), "member")
	assert.Equal(t, uint64(1), marketplace.FastMembershipCount(f.trx, carol), "marketplace told")
	assert.Equal(t, "FastMembershipAdded", ctx.Events()[0].Name, "upward event first")
	assert.Equal(t, "MemberAdded", ctx.Events()[1].Name, "member event")

	assert.Equal(t, fault.ErrDuplicateEntry, fast.AddMember(f.as(bob), carol), "duplicate")

	// automaton with the member privilege
	assert.Equal(t, fault.ErrRequiresFastGovernorship, fast.SetAutomatonPrivileges(f.as(alice), robot, governance.FastManageMembers), "issuer member is not a governor")
	assert.Nil(t, fast.SetAutomatonPrivileges(f.as(bob), robot, governance.FastManageMembers), "set automaton")
	assert.Nil(t, fast.AddMember(f.as(robot), dave), "automaton adds")
	assert.Equal(t, uint64(2), fast.MemberCount(f.trx), "count")

	members, next := fast.PaginateMembers(f.trx, 0, 1)
	assert.Equal(t, []account.Account{carol}, members, "first page")
	assert.Equal(t, uint64(1), next, "next")
}

func TestFastRemoveMemberHooks(t *testing.T) {
	h := &hooks{}
	f := setupHierarchy(t, h)
	defer f.done()

	fast := governance.FastAt(fastAddress, h)
	marketplace := governance.MarketplaceAt(marketplaceAddress)

	assert.Nil(t, fast.AddMember(f.as(bob), carol), "add")
	assert.Equal(t, fault.ErrNonExistentEntry, fast.RemoveMember(f.as(bob), dave), "absent")
	assert.Equal(t, 0, len(h.calls), "hook called for absent member")

	h.veto = fault.ErrBalanceIsPositive
	assert.Equal(t, fault.ErrBalanceIsPositive, fast.RemoveMember(f.as(bob), carol), "veto")
	assert.True(t, fast.IsMember(f.trx, carol), "removed despite veto")
	assert.Equal(t, []account.Account{carol}, h.calls, "hook calls")

	h.veto = nil
	assert.Nil(t, fast.RemoveMember(f.as(bob), carol), "remove")
	assert.False(t, fast.IsMember(f.trx, carol), "still member")
	assert.Equal(t, uint64(0), marketplace.FastMembershipCount(f.trx, carol), "marketplace told")
}

func TestFastUpwardChecks(t *testing.T) {
	f := setupHierarchy(t, nil)
	defer f.done()

	fast := governance.FastAt(fastAddress, nil)
	assert.True(t, fast.IsIssuerMember(f.trx, alice), "alice issuer member")
	assert.False(t, fast.IsIssuerMember(f.trx, bob), "bob issuer member")
	assert.True(t, fast.IsMarketplaceMember(f.trx, bob), "bob marketplace member")
	assert.False(t, fast.IsMarketplaceMember(f.trx, alice), "alice marketplace member")

	check := governance.Either(fast.IsIssuerMember, fast.IsGovernor)
	assert.True(t, check(f.trx, alice), "either issuer")
	assert.True(t, check(f.trx, bob), "either governor")
	assert.False(t, check(f.trx, carol), "neither")
}
