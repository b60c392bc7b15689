// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ledger - the token ledger of a FAST
//
// balances, allowances with reverse indexes in both directions, a
// transfer credit counter and an independent total supply.  The zero
// account is the sentinel: mint and burn credit and debit its balance,
// transfers from it issue and transfers to it retire circulating supply.
package ledger

import (
	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/governance"
	"github.com/bitmark-inc/fastledger/orderedset"
	"github.com/bitmark-inc/fastledger/storage"
)

const (
	facet = "ledger"

	maxNameLength   = 64
	maxSymbolLength = 32
	maxDecimals     = 18
)

// setting names
const (
	nameTag            = "name"
	symbolTag          = "symbol"
	decimalsTag        = "decimals"
	fixedSupplyTag     = "fixed-supply"
	semiPublicTag      = "semi-public"
	totalSupplyTag     = "total-supply"
	transferCreditsTag = "transfer-credits"
	mintedTag          = "minted"
	supplyProofsLog    = "supply-proofs"
	transferProofsLog  = "transfer-proofs"
	involveeLog        = "involvee"
)

// Params - fixed at initialisation except for the two flags
type Params struct {
	Name           string `json:"name"`
	Symbol         string `json:"symbol"`
	Decimals       uint8  `json:"decimals"`
	HasFixedSupply bool   `json:"hasFixedSupply"`
	IsSemiPublic   bool   `json:"isSemiPublic"`
}

// Details - current state summary
type Details struct {
	Address account.Account `json:"address"`
	Params
	TotalSupply     uint64 `json:"totalSupply"`
	TransferCredits uint64 `json:"transferCredits"`
	ReserveBalance  uint64 `json:"reserveBalance"`
	MemberCount     uint64 `json:"memberCount"`
}

// Ledger - handle to the ledger of one FAST
type Ledger struct {
	address account.Account
}

// At - the ledger of the FAST at address
func At(address account.Account) Ledger {
	return Ledger{
		address: address,
	}
}

// Address - entity address
func (l Ledger) Address() account.Account {
	return l.address
}

// Registry - governance registry of the same FAST with this ledger as hooks
func (l Ledger) Registry() governance.Fast {
	return governance.FastAt(l.address, l)
}

func (l Ledger) key() []byte {
	return l.address.Bytes()
}

func (l Ledger) spenders(owner account.Account) orderedset.Set {
	return orderedset.New(l.address, "spenders", owner)
}

func (l Ledger) owners(spender account.Account) orderedset.Set {
	return orderedset.New(l.address, "owners", spender)
}

// Initialise - set up a ledger for an initialised FAST registry
//
// caller must be an issuer manager with IssuerManageFasts
func (l Ledger) Initialise(ctx *call.Context, params Params) error {
	trx := ctx.Trx()
	registry := l.Registry()
	if !registry.IsInitialised(trx) {
		return fault.ErrNotInitialised
	}
	if !registry.Issuer(trx).IsManager(trx, ctx.Sender(), governance.IssuerManageFasts) {
		return fault.ErrRequiresManagerCaller
	}
	if 0 == len(params.Symbol) || len(params.Symbol) > maxSymbolLength {
		return fault.ErrInvalidSymbol
	}
	if len(params.Name) > maxNameLength || params.Decimals > maxDecimals {
		return fault.ErrInconsistentParameter
	}
	if err := storage.RegisterFacet(trx, l.key(), facet); nil != err {
		return err
	}

	storage.PutSetting(trx, l.key(), nameTag, []byte(params.Name))
	storage.PutSetting(trx, l.key(), symbolTag, []byte(params.Symbol))
	storage.PutSettingN(trx, l.key(), decimalsTag, uint64(params.Decimals))
	putFlag(trx, l.key(), fixedSupplyTag, params.HasFixedSupply)
	putFlag(trx, l.key(), semiPublicTag, params.IsSemiPublic)

	ctx.Emit(l.address, "DetailsChanged", DetailsEvent{
		HasFixedSupply: params.HasFixedSupply,
		IsSemiPublic:   params.IsSemiPublic,
	})
	return nil
}

// IsInitialised - true once Initialise has succeeded
func (l Ledger) IsInitialised(trx storage.Transaction) bool {
	return storage.IsFacetInitialised(trx, l.key(), facet)
}

// Params - the initialisation parameters and current flags
func (l Ledger) Params(trx storage.Transaction) Params {
	return Params{
		Name:           string(storage.Setting(trx, l.key(), nameTag)),
		Symbol:         string(storage.Setting(trx, l.key(), symbolTag)),
		Decimals:       uint8(storage.SettingN(trx, l.key(), decimalsTag)),
		HasFixedSupply: l.HasFixedSupply(trx),
		IsSemiPublic:   l.IsSemiPublic(trx),
	}
}

// Details - summary for display
func (l Ledger) Details(trx storage.Transaction) Details {
	return Details{
		Address:         l.address,
		Params:          l.Params(trx),
		TotalSupply:     l.TotalSupply(trx),
		TransferCredits: l.TransferCredits(trx),
		ReserveBalance:  l.BalanceOf(trx, account.Zero),
		MemberCount:     l.Registry().MemberCount(trx),
	}
}

// HasFixedSupply - only one mint is allowed
func (l Ledger) HasFixedSupply(trx storage.Transaction) bool {
	return 0 != storage.SettingN(trx, l.key(), fixedSupplyTag)
}

// IsSemiPublic - marketplace members may hold and transfer
func (l Ledger) IsSemiPublic(trx storage.Transaction) bool {
	return 0 != storage.SettingN(trx, l.key(), semiPublicTag)
}

// TotalSupply - circulating supply counter
func (l Ledger) TotalSupply(trx storage.Transaction) uint64 {
	return storage.SettingN(trx, l.key(), totalSupplyTag)
}

// TransferCredits - remaining transfer quota
func (l Ledger) TransferCredits(trx storage.Transaction) uint64 {
	return storage.SettingN(trx, l.key(), transferCreditsTag)
}

// BalanceOf - zero for unknown holders
func (l Ledger) BalanceOf(trx storage.Transaction, holder account.Account) uint64 {
	n, _ := trx.GetN(storage.Pool.Balances, storage.Key(l.key(), holder.Bytes()))
	return n
}

func (l Ledger) putBalance(trx storage.Transaction, holder account.Account, amount uint64) {
	key := storage.Key(l.key(), holder.Bytes())
	if 0 == amount {
		trx.Delete(storage.Pool.Balances, key)
		return
	}
	trx.PutN(storage.Pool.Balances, key, amount)
}

// SetIsSemiPublic - one way switch to semi-public
//
// caller must be an issuer member
func (l Ledger) SetIsSemiPublic(ctx *call.Context, flag bool) error {
	trx := ctx.Trx()
	if err := l.requireIssuerMember(ctx); nil != err {
		return err
	}
	if l.IsSemiPublic(trx) && !flag {
		return fault.ErrUnsupportedOperation
	}
	putFlag(trx, l.key(), semiPublicTag, flag)
	ctx.Emit(l.address, "DetailsChanged", DetailsEvent{
		HasFixedSupply: l.HasFixedSupply(trx),
		IsSemiPublic:   flag,
	})
	return nil
}

// SetHasFixedSupply - switch between fixed and continuous supply
//
// caller must be an issuer member
func (l Ledger) SetHasFixedSupply(ctx *call.Context, flag bool) error {
	trx := ctx.Trx()
	if err := l.requireIssuerMember(ctx); nil != err {
		return err
	}
	putFlag(trx, l.key(), fixedSupplyTag, flag)
	ctx.Emit(l.address, "DetailsChanged", DetailsEvent{
		HasFixedSupply: flag,
		IsSemiPublic:   l.IsSemiPublic(trx),
	})
	return nil
}

func (l Ledger) requireInitialised(trx storage.Transaction) error {
	if !l.IsInitialised(trx) {
		return fault.ErrNotInitialised
	}
	return nil
}

func (l Ledger) requireIssuerMember(ctx *call.Context) error {
	trx := ctx.Trx()
	if err := l.requireInitialised(trx); nil != err {
		return err
	}
	if !l.Registry().IsIssuerMember(trx, ctx.Sender()) {
		return fault.ErrRequiresIssuerMembership
	}
	return nil
}

func putFlag(trx storage.Transaction, entity []byte, name string, flag bool) {
	n := uint64(0)
	if flag {
		n = 1
	}
	storage.PutSettingN(trx, entity, name, n)
}
