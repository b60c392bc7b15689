// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package valuetoken - a plain fungible token kept in the local store
//
// campaigns use it as the value they collect and pay out
package valuetoken

import (
	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/storage"
	"github.com/bitmark-inc/fastledger/token"
	"github.com/bitmark-inc/fastledger/util"
)

// Kind - storage kind of a value token
const Kind = account.KindToken

const (
	nameTag        = "name"
	symbolTag      = "symbol"
	ownerTag       = "owner"
	totalSupplyTag = "total-supply"
)

// Details - token description
type Details struct {
	Address     account.Account `json:"address"`
	Name        string          `json:"name"`
	Symbol      string          `json:"symbol"`
	Owner       account.Account `json:"owner"`
	TotalSupply uint64          `json:"totalSupply"`
}

// TransferEvent - Transfer
type TransferEvent struct {
	From   account.Account `json:"from"`
	To     account.Account `json:"to"`
	Amount uint64          `json:"amount"`
}

// ApprovalEvent - Approval
type ApprovalEvent struct {
	Owner   account.Account `json:"owner"`
	Spender account.Account `json:"spender"`
	Amount  uint64          `json:"amount"`
}

// Token - handle to one value token
type Token struct {
	address account.Account
}

var _ token.Token = Token{}

// Address - the token address derived from its owner and symbol
func Address(owner account.Account, symbol string) account.Account {
	return account.Derive(owner, Kind, []byte(symbol))
}

// At - the token at address
func At(address account.Account) Token {
	return Token{address: address}
}

// Address - entity address
func (t Token) Address() account.Account {
	return t.address
}

func (t Token) key() []byte {
	return t.address.Bytes()
}

// Initialise - the caller becomes the owner who may mint
func (t Token) Initialise(ctx *call.Context, name string, symbol string) error {
	trx := ctx.Trx()
	if 0 == len(symbol) {
		return fault.ErrInvalidSymbol
	}
	if err := storage.Register(trx, t.key(), Kind); nil != err {
		return err
	}
	storage.PutSetting(trx, t.key(), nameTag, []byte(name))
	storage.PutSetting(trx, t.key(), symbolTag, []byte(symbol))
	storage.PutSetting(trx, t.key(), ownerTag, ctx.Sender().Bytes())
	return nil
}

// Details - description of the token
func (t Token) Details(trx storage.Transaction) (Details, error) {
	if err := storage.RequireKind(trx, t.key(), Kind); nil != err {
		return Details{}, err
	}
	owner, err := account.FromBytes(storage.Setting(trx, t.key(), ownerTag))
	if nil != err {
		return Details{}, err
	}
	return Details{
		Address:     t.address,
		Name:        string(storage.Setting(trx, t.key(), nameTag)),
		Symbol:      string(storage.Setting(trx, t.key(), symbolTag)),
		Owner:       owner,
		TotalSupply: storage.SettingN(trx, t.key(), totalSupplyTag),
	}, nil
}

// Mint - owner creates units for a holder
func (t Token) Mint(ctx *call.Context, to account.Account, amount uint64) error {
	trx := ctx.Trx()
	details, err := t.Details(trx)
	if nil != err {
		return err
	}
	if !details.Owner.Equal(ctx.Sender()) {
		return fault.ErrRequiresOwner
	}
	if to.IsZero() {
		return fault.ErrInvalidAccount
	}
	total, err := util.Add(details.TotalSupply, amount)
	if nil != err {
		return err
	}
	balance, err := util.Add(t.balance(trx, to), amount)
	if nil != err {
		return err
	}
	storage.PutSettingN(trx, t.key(), totalSupplyTag, total)
	t.putBalance(trx, to, balance)
	ctx.Emit(t.address, "Transfer", TransferEvent{From: account.Zero, To: to, Amount: amount})
	return nil
}

// BalanceOf - implements token.Token
func (t Token) BalanceOf(ctx *call.Context, holder account.Account) uint64 {
	return t.balance(ctx.Trx(), holder)
}

// Allowance - implements token.Token
func (t Token) Allowance(ctx *call.Context, owner account.Account, spender account.Account) uint64 {
	n, _ := ctx.Trx().GetN(storage.Pool.Allowances, t.allowanceKey(owner, spender))
	return n
}

// Approve - replace the allowance of spender over the caller's balance
func (t Token) Approve(ctx *call.Context, spender account.Account, amount uint64) error {
	trx := ctx.Trx()
	if err := storage.RequireKind(trx, t.key(), Kind); nil != err {
		return err
	}
	key := t.allowanceKey(ctx.Sender(), spender)
	if 0 == amount {
		trx.Delete(storage.Pool.Allowances, key)
	} else {
		trx.PutN(storage.Pool.Allowances, key, amount)
	}
	ctx.Emit(t.address, "Approval", ApprovalEvent{Owner: ctx.Sender(), Spender: spender, Amount: amount})
	return nil
}

// Transfer - implements token.Token
func (t Token) Transfer(ctx *call.Context, to account.Account, amount uint64) error {
	return t.move(ctx, ctx.Sender(), to, amount)
}

// TransferFrom - implements token.Token
func (t Token) TransferFrom(ctx *call.Context, from account.Account, to account.Account, amount uint64) error {
	trx := ctx.Trx()
	spender := ctx.Sender()
	if spender.Equal(from) {
		return t.move(ctx, from, to, amount)
	}
	key := t.allowanceKey(from, spender)
	allowance, _ := trx.GetN(storage.Pool.Allowances, key)
	if allowance < amount {
		return fault.ErrInsufficientAllowance
	}
	if err := t.move(ctx, from, to, amount); nil != err {
		return err
	}
	if allowance == amount {
		trx.Delete(storage.Pool.Allowances, key)
	} else {
		trx.PutN(storage.Pool.Allowances, key, allowance-amount)
	}
	return nil
}

func (t Token) move(ctx *call.Context, from account.Account, to account.Account, amount uint64) error {
	trx := ctx.Trx()
	if err := storage.RequireKind(trx, t.key(), Kind); nil != err {
		return err
	}
	if to.IsZero() {
		return fault.ErrInvalidAccount
	}
	fromBalance, err := util.Sub(t.balance(trx, from), amount)
	if nil != err {
		return fault.ErrInsufficientFunds
	}
	if from.Equal(to) {
		return nil
	}
	toBalance, err := util.Add(t.balance(trx, to), amount)
	if nil != err {
		return err
	}
	t.putBalance(trx, from, fromBalance)
	t.putBalance(trx, to, toBalance)
	ctx.Emit(t.address, "Transfer", TransferEvent{From: from, To: to, Amount: amount})
	return nil
}

func (t Token) allowanceKey(owner account.Account, spender account.Account) []byte {
	return storage.Key(t.key(), owner.Bytes(), spender.Bytes())
}

func (t Token) balance(trx storage.Transaction, holder account.Account) uint64 {
	n, _ := trx.GetN(storage.Pool.Balances, storage.Key(t.key(), holder.Bytes()))
	return n
}

func (t Token) putBalance(trx storage.Transaction, holder account.Account, amount uint64) {
	key := storage.Key(t.key(), holder.Bytes())
	if 0 == amount {
		trx.Delete(storage.Pool.Balances, key)
		return
	}
	trx.PutN(storage.Pool.Balances, key, amount)
}

// Resolver - finds value tokens in the shared store
type Resolver struct{}

var _ token.Resolver = Resolver{}

// Token - implements token.Resolver
func (Resolver) Token(trx storage.Transaction, address account.Account) (token.Token, error) {
	if err := storage.RequireKind(trx, address.Bytes(), Kind); nil != err {
		return nil, fault.ErrTokenContractError
	}
	return At(address), nil
}
