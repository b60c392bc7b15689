// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package forwarder - effective caller resolution for sponsored calls
//
// a trusted forwarder relays a call on behalf of another account and
// names that account in a 20 byte suffix.  Calls from any other sender
// are never rewritten.
package forwarder

import (
	"sync"

	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/fault"
)

// Trusted - decides which senders may forward calls
type Trusted interface {
	IsTrustedForwarder(account.Account) bool
}

// List - a fixed set of trusted forwarders
type List struct {
	sync.RWMutex
	accounts map[account.Account]struct{}
}

// NewList - trust the given accounts
func NewList(accounts ...account.Account) *List {
	l := &List{
		accounts: make(map[account.Account]struct{}, len(accounts)),
	}
	for _, a := range accounts {
		l.accounts[a] = struct{}{}
	}
	return l
}

// ParseList - trust the given addresses
func ParseList(addresses []string) (*List, error) {
	accounts := make([]account.Account, 0, len(addresses))
	for _, s := range addresses {
		a, err := account.FromString(s)
		if nil != err {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return NewList(accounts...), nil
}

// IsTrustedForwarder - implements Trusted
func (l *List) IsTrustedForwarder(a account.Account) bool {
	l.RLock()
	defer l.RUnlock()
	_, ok := l.accounts[a]
	return ok
}

// Count - number of trusted forwarders
func (l *List) Count() int {
	l.RLock()
	defer l.RUnlock()
	return len(l.accounts)
}

// Resolve - the account an operation runs as
//
// an empty suffix from a trusted forwarder means the forwarder calls for itself
func Resolve(trusted Trusted, sender account.Account, suffix []byte) (account.Account, error) {
	if nil == trusted || 0 == len(suffix) || !trusted.IsTrustedForwarder(sender) {
		return sender, nil
	}
	if account.Length != len(suffix) {
		return account.Zero, fault.ErrInvalidForwardedCaller
	}
	return account.FromBytes(suffix)
}
