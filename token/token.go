// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package token - the fungible value interface campaigns move funds with
package token

import (
	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/storage"
)

// Token - a fungible value contract
//
// the context's sender is the account whose funds move
type Token interface {
	BalanceOf(ctx *call.Context, holder account.Account) uint64
	Allowance(ctx *call.Context, owner account.Account, spender account.Account) uint64
	Transfer(ctx *call.Context, to account.Account, amount uint64) error
	TransferFrom(ctx *call.Context, from account.Account, to account.Account, amount uint64) error
}

// Resolver - find the token contract at an address
type Resolver interface {
	Token(trx storage.Transaction, address account.Account) (Token, error)
}

// Wrap - report any token failure as a token contract error
func Wrap(err error) error {
	if nil == err {
		return nil
	}
	return fault.ErrTokenContractError
}
