// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/storage"
	"github.com/bitmark-inc/fastledger/util"
)

// Mint - credit the reserve and the total supply
//
// a fixed supply ledger accepts a single mint
func (l Ledger) Mint(ctx *call.Context, amount uint64, reference string) error {
	trx := ctx.Trx()
	if err := l.requireIssuerMember(ctx); nil != err {
		return err
	}
	if 0 == amount {
		return fault.ErrInconsistentParameter
	}
	if err := checkReference(reference); nil != err {
		return err
	}
	if l.HasFixedSupply(trx) && l.hasMinted(trx) {
		return fault.ErrRequiresContinuousSupply
	}

	reserve, err := util.Add(l.BalanceOf(trx, account.Zero), amount)
	if nil != err {
		return err
	}
	total, err := util.Add(l.TotalSupply(trx), amount)
	if nil != err {
		return err
	}

	l.putBalance(trx, account.Zero, reserve)
	storage.PutSettingN(trx, l.key(), totalSupplyTag, total)
	putFlag(trx, l.key(), mintedTag, true)
	storage.Append(trx, l.key(), supplyProofsLog, util.Pack(&SupplyProof{
		Burn:      false,
		Amount:    amount,
		Reference: reference,
		Block:     ctx.Block(),
	}))

	ctx.Log().Infof("ledger: %s minted: %d", l.address, amount)
	ctx.Emit(l.address, "Minted", SupplyEvent{Amount: amount, Reference: reference})
	return nil
}

// a burn appends a supply proof too, so mints are tracked separately
func (l Ledger) hasMinted(trx storage.Transaction) bool {
	return 0 != storage.SettingN(trx, l.key(), mintedTag)
}

// Burn - destroy unissued reserve
//
// only the reserve balance is reduced, the total supply counter is kept
func (l Ledger) Burn(ctx *call.Context, amount uint64, reference string) error {
	trx := ctx.Trx()
	if err := l.requireIssuerMember(ctx); nil != err {
		return err
	}
	if err := checkReference(reference); nil != err {
		return err
	}
	if l.HasFixedSupply(trx) {
		return fault.ErrRequiresContinuousSupply
	}
	reserve, err := util.Sub(l.BalanceOf(trx, account.Zero), amount)
	if nil != err {
		return fault.ErrInsufficientFunds
	}

	l.putBalance(trx, account.Zero, reserve)
	storage.Append(trx, l.key(), supplyProofsLog, util.Pack(&SupplyProof{
		Burn:      true,
		Amount:    amount,
		Reference: reference,
		Block:     ctx.Block(),
	}))

	ctx.Log().Infof("ledger: %s burnt: %d", l.address, amount)
	ctx.Emit(l.address, "Burnt", SupplyEvent{Amount: amount, Reference: reference})
	return nil
}

// SupplyProofCount - number of mint and burn records
func (l Ledger) SupplyProofCount(trx storage.Transaction) uint64 {
	return storage.LogLength(trx, l.key(), supplyProofsLog)
}

// SupplyProofs - page of mint and burn records and the next cursor
func (l Ledger) SupplyProofs(trx storage.Transaction, offset uint64, limit uint64) ([]SupplyProof, uint64) {
	records, next := storage.LogRange(trx, l.key(), supplyProofsLog, offset, limit)
	proofs := make([]SupplyProof, len(records))
	for i, record := range records {
		util.Unpack(record, &proofs[i])
	}
	return proofs, next
}

// AddTransferCredits - increase the transfer quota
func (l Ledger) AddTransferCredits(ctx *call.Context, amount uint64) error {
	trx := ctx.Trx()
	if err := l.requireIssuerMember(ctx); nil != err {
		return err
	}
	credits, err := util.Add(l.TransferCredits(trx), amount)
	if nil != err {
		return err
	}
	storage.PutSettingN(trx, l.key(), transferCreditsTag, credits)
	ctx.Emit(l.address, "TransferCreditsAdded", CreditsEvent{Amount: amount})
	return nil
}

// DrainTransferCredits - reset the transfer quota to zero
func (l Ledger) DrainTransferCredits(ctx *call.Context) error {
	trx := ctx.Trx()
	if err := l.requireIssuerMember(ctx); nil != err {
		return err
	}
	drained := l.TransferCredits(trx)
	storage.PutSettingN(trx, l.key(), transferCreditsTag, 0)
	ctx.Emit(l.address, "TransferCreditsDrained", CreditsEvent{Amount: drained})
	return nil
}
