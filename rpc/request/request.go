// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package request - argument types shared by the RPC services
package request

import (
	"encoding/hex"
	"strings"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/rpc/ratelimit"
)

// MaximumCount - largest page a client may ask for
const MaximumCount = 100

// Caller - identifies who is making a state changing request
//
// Forwarded is the hex account of the original caller when Sender is a
// trusted forwarder
type Caller struct {
	Sender    account.Account `json:"sender"`
	Forwarded string          `json:"forwarded,omitempty"`
}

// Request - convert to a runner request
func (c Caller) Request() (call.Request, error) {
	r := call.Request{
		Sender: c.Sender,
	}
	if c.Sender.IsZero() {
		return r, fault.ErrMissingParameters
	}
	if "" == c.Forwarded {
		return r, nil
	}
	forwarded, err := hex.DecodeString(strings.TrimPrefix(c.Forwarded, "0x"))
	if nil != err {
		return r, fault.ErrInvalidForwardedCaller
	}
	r.Forwarded = forwarded
	return r, nil
}

// Page - a range of a paginated collection
type Page struct {
	Offset uint64 `json:"offset,string"`
	Count  int    `json:"count"`
}

// Limit - rate limit by the page size
func (p Page) Limit(limiter *rate.Limiter) error {
	return ratelimit.LimitN(limiter, p.Count, MaximumCount)
}

// PageReply - accounts and the cursor for the next page
type PageReply struct {
	Items []account.Account `json:"items"`
	Next  uint64            `json:"next,string"`
}

// Empty - for requests without arguments or results
type Empty struct{}

// Done - reply to a successful state change
type Done struct {
	Ok bool `json:"ok"`
}

// Execute - rate limit then run one state change on behalf of caller
func Execute(limiter *rate.Limiter, runner *call.Runner, caller Caller, name string, operation call.Operation) error {
	if err := ratelimit.Limit(limiter); nil != err {
		return err
	}
	r, err := caller.Request()
	if nil != err {
		return err
	}
	return runner.Execute(r, name, operation)
}

// View - rate limit then run a read only operation
func View(limiter *rate.Limiter, runner *call.Runner, operation call.Operation) error {
	if err := ratelimit.Limit(limiter); nil != err {
		return err
	}
	return runner.View(account.Zero, operation)
}

// ViewN - rate limit a page then run a read only operation
func ViewN(limiter *rate.Limiter, runner *call.Runner, page Page, operation call.Operation) error {
	if err := page.Limit(limiter); nil != err {
		return err
	}
	return runner.View(account.Zero, operation)
}

// AccountArguments - an entity and one account
type AccountArguments struct {
	Caller  Caller          `json:"caller"`
	Entity  account.Account `json:"entity"`
	Account account.Account `json:"account"`
}

// AutomatonArguments - set or remove the privileges of an automaton
type AutomatonArguments struct {
	Caller     Caller          `json:"caller"`
	Entity     account.Account `json:"entity"`
	Automaton  account.Account `json:"automaton"`
	Privileges uint64          `json:"privileges"`
}

// ListArguments - one page of a collection held by an entity
type ListArguments struct {
	Entity  account.Account `json:"entity"`
	Account account.Account `json:"account,omitempty"`
	Page
}

// EntityArguments - a caller acting on an entity without parameters
type EntityArguments struct {
	Caller Caller          `json:"caller"`
	Entity account.Account `json:"entity"`
}

// AmountArguments - a caller acting on an entity with an amount
type AmountArguments struct {
	Caller    Caller          `json:"caller"`
	Entity    account.Account `json:"entity"`
	Amount    uint64          `json:"amount,string"`
	Reference string          `json:"reference,omitempty"`
}

// MembershipReply - roles of an account within an entity
type MembershipReply struct {
	IsMember   bool   `json:"isMember"`
	IsGovernor bool   `json:"isGovernor"`
	Privileges uint64 `json:"privileges"`
	Members    uint64 `json:"members"`
}
