// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package governance

import (
	"github.com/bitmark-inc/fastledger/account"
)

// MemberEvent - MemberAdded, MemberRemoved, GovernorAdded, GovernorRemoved
type MemberEvent struct {
	Member account.Account `json:"member"`
}

// AutomatonEvent - AutomatonPrivilegesSet, AutomatonRemoved
type AutomatonEvent struct {
	Automaton  account.Account `json:"automaton"`
	Privileges uint64          `json:"privileges,omitempty"`
}

// FastMembershipEvent - FastMembershipAdded, FastMembershipRemoved
type FastMembershipEvent struct {
	Member account.Account `json:"member"`
	Fast   account.Account `json:"fast"`
}

// FastRegisteredEvent - FastRegistered
type FastRegisteredEvent struct {
	Symbol string          `json:"symbol"`
	Fast   account.Account `json:"fast"`
}

// InitialisedEvent - Initialised
type InitialisedEvent struct {
	Parent account.Account `json:"parent"`
}
