// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package distribution - pay a funded total out to FAST members
//
// Funding -> FeeSetup -> BeneficiariesSetup -> Withdrawal, and
// Terminated from any earlier phase
package distribution

import (
	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/governance"
	"github.com/bitmark-inc/fastledger/orderedset"
	"github.com/bitmark-inc/fastledger/storage"
	"github.com/bitmark-inc/fastledger/token"
	"github.com/bitmark-inc/fastledger/util"
)

const (
	paramsTag    = "params"
	phaseTag     = "phase"
	feeTag       = "fee"
	availableTag = "available"
	owingTag     = "owing"
	withdrawnTag = "withdrawn"
)

// Distribution - handle to one payout campaign
type Distribution struct {
	address       account.Account
	token         token.Token
	beneficiaries orderedset.Set
}

// At - the distribution at address paying in tok
func At(address account.Account, tok token.Token) Distribution {
	return Distribution{
		address:       address,
		token:         tok,
		beneficiaries: orderedset.New(address, "beneficiaries"),
	}
}

// Address - entity address
func (d Distribution) Address() account.Account {
	return d.address
}

func (d Distribution) key() []byte {
	return d.address.Bytes()
}

// Initialise - store the parameters and enter Funding
//
// the block latch may not be in the future
func (d Distribution) Initialise(ctx *call.Context, params Params) error {
	trx := ctx.Trx()
	if params.BlockLatch > ctx.Block() || len(params.Reference) > maxReferenceLength {
		return fault.ErrInconsistentParameter
	}
	if err := storage.RequireKind(trx, params.Issuer.Bytes(), governance.KindIssuer); nil != err {
		return err
	}
	if err := storage.Register(trx, d.key(), account.KindDistribution); nil != err {
		return err
	}
	storage.PutSetting(trx, d.key(), paramsTag, util.Pack(&params))
	storage.PutSettingN(trx, d.key(), phaseTag, uint64(Funding))
	storage.PutSettingN(trx, d.key(), availableTag, params.Total)

	ctx.Emit(d.address, "Initialised", PhaseEvent{Phase: Funding})
	return nil
}

// Params - creation parameters
func (d Distribution) Params(trx storage.Transaction) (Params, error) {
	if err := storage.RequireKind(trx, d.key(), account.KindDistribution); nil != err {
		return Params{}, err
	}
	var params Params
	util.Unpack(storage.Setting(trx, d.key(), paramsTag), &params)
	return params, nil
}

// Phase - current phase
func (d Distribution) Phase(trx storage.Transaction) Phase {
	return Phase(storage.SettingN(trx, d.key(), phaseTag))
}

// Fee - the issuer's share
func (d Distribution) Fee(trx storage.Transaction) uint64 {
	return storage.SettingN(trx, d.key(), feeTag)
}

// Available - funds not yet attributed
func (d Distribution) Available(trx storage.Transaction) uint64 {
	return storage.SettingN(trx, d.key(), availableTag)
}

// Owings - amount attributed to a beneficiary
func (d Distribution) Owings(trx storage.Transaction, beneficiary account.Account) uint64 {
	return storage.Amount(trx, d.key(), owingTag, beneficiary.Bytes())
}

// Withdrawn - whether a beneficiary has been paid
func (d Distribution) Withdrawn(trx storage.Transaction, beneficiary account.Account) bool {
	return storage.Flag(trx, d.key(), withdrawnTag, beneficiary.Bytes())
}

// PaginateBeneficiaries - page of beneficiaries and the next cursor
func (d Distribution) PaginateBeneficiaries(trx storage.Transaction, offset uint64, limit uint64) ([]account.Account, uint64) {
	return d.beneficiaries.Paginate(trx, offset, limit)
}

// Details - summary for display
func (d Distribution) Details(trx storage.Transaction) (Details, error) {
	params, err := d.Params(trx)
	if nil != err {
		return Details{}, err
	}
	return Details{
		Address:          d.address,
		Params:           params,
		Phase:            d.Phase(trx),
		Fee:              d.Fee(trx),
		Available:        d.Available(trx),
		BeneficiaryCount: d.beneficiaries.Len(trx),
	}, nil
}

func (d Distribution) require(trx storage.Transaction, phase Phase) (Params, error) {
	params, err := d.Params(trx)
	if nil != err {
		return params, err
	}
	if d.Phase(trx) != phase {
		return params, fault.ErrInvalidPhase
	}
	return params, nil
}

// as require, and the caller must be a manager
func (d Distribution) requireManager(ctx *call.Context, phase Phase) (Params, error) {
	params, err := d.require(ctx.Trx(), phase)
	if nil != err {
		return params, err
	}
	if !isManager(ctx.Trx(), params, ctx.Sender()) {
		return params, fault.ErrRequiresManagerCaller
	}
	return params, nil
}

func isManager(trx storage.Transaction, params Params, a account.Account) bool {
	return governance.IssuerAt(params.Issuer).IsManager(trx, a, governance.IssuerManageDistributions)
}

func (d Distribution) setPhase(ctx *call.Context, phase Phase) {
	storage.PutSettingN(ctx.Trx(), d.key(), phaseTag, uint64(phase))
	ctx.Log().Infof("distribution: %s phase: %s", d.address, phase)
	ctx.Emit(d.address, "Advance", PhaseEvent{Phase: phase})
}

// AdvanceToFeeSetup - confirm the campaign holds exactly the total
//
// only the FAST that created the distribution may call this
func (d Distribution) AdvanceToFeeSetup(ctx *call.Context) error {
	params, err := d.require(ctx.Trx(), Funding)
	if nil != err {
		return err
	}
	if !ctx.Sender().Equal(params.Fast) {
		return fault.ErrRequiresFastCaller
	}
	if d.token.BalanceOf(ctx, d.address) != params.Total {
		return fault.ErrInconsistentParameter
	}
	d.setPhase(ctx, FeeSetup)
	return nil
}

// AdvanceToBeneficiariesSetup - reserve the issuer's fee
func (d Distribution) AdvanceToBeneficiariesSetup(ctx *call.Context, fee uint64) error {
	trx := ctx.Trx()
	if _, err := d.requireManager(ctx, FeeSetup); nil != err {
		return err
	}
	available, err := util.Sub(d.Available(trx), fee)
	if nil != err {
		return err
	}
	storage.PutSettingN(trx, d.key(), feeTag, fee)
	storage.PutSettingN(trx, d.key(), availableTag, available)
	d.setPhase(ctx, BeneficiariesSetup)
	return nil
}

// AddBeneficiaries - attribute amounts to new beneficiaries
//
// all or none are added
func (d Distribution) AddBeneficiaries(ctx *call.Context, beneficiaries []account.Account, amounts []uint64) error {
	trx := ctx.Trx()
	params, err := d.requireManager(ctx, BeneficiariesSetup)
	if nil != err {
		return err
	}
	if len(beneficiaries) != len(amounts) {
		return fault.ErrInconsistentParameter
	}

	fast := governance.FastAt(params.Fast, nil)
	seen := make(map[account.Account]struct{}, len(beneficiaries))
	needed := uint64(0)
	for i, beneficiary := range beneficiaries {
		if !fast.IsMember(trx, beneficiary) {
			return fault.ErrRequiresFastMembership
		}
		if _, ok := seen[beneficiary]; ok || d.beneficiaries.Contains(trx, beneficiary) {
			return fault.ErrDuplicateEntry
		}
		seen[beneficiary] = struct{}{}
		needed, err = util.Add(needed, amounts[i])
		if nil != err {
			return fault.ErrInsufficientFunds
		}
	}
	available := d.Available(trx)
	if needed > available {
		return fault.ErrInsufficientFunds
	}

	for i, beneficiary := range beneficiaries {
		if err := d.beneficiaries.Add(trx, beneficiary); nil != err {
			return err
		}
		storage.PutAmount(trx, d.key(), owingTag, beneficiary.Bytes(), amounts[i])
		ctx.Emit(d.address, "BeneficiaryAdded", BeneficiaryEvent{Beneficiary: beneficiary, Amount: amounts[i]})
	}
	storage.PutSettingN(trx, d.key(), availableTag, available-needed)
	return nil
}

// RemoveBeneficiaries - return the owings of beneficiaries to available
func (d Distribution) RemoveBeneficiaries(ctx *call.Context, beneficiaries []account.Account) error {
	trx := ctx.Trx()
	if _, err := d.requireManager(ctx, BeneficiariesSetup); nil != err {
		return err
	}
	seen := make(map[account.Account]struct{}, len(beneficiaries))
	for _, beneficiary := range beneficiaries {
		if _, ok := seen[beneficiary]; ok || !d.beneficiaries.Contains(trx, beneficiary) {
			return fault.ErrNonExistentEntry
		}
		seen[beneficiary] = struct{}{}
	}

	available := d.Available(trx)
	for _, beneficiary := range beneficiaries {
		owed := d.Owings(trx, beneficiary)
		if err := d.beneficiaries.Remove(trx, beneficiary); nil != err {
			return err
		}
		storage.ClearAmount(trx, d.key(), owingTag, beneficiary.Bytes())
		available += owed
		ctx.Emit(d.address, "BeneficiaryRemoved", BeneficiaryEvent{Beneficiary: beneficiary, Amount: owed})
	}
	storage.PutSettingN(trx, d.key(), availableTag, available)
	return nil
}

// AdvanceToWithdrawal - every unit must be attributed; pays the fee
func (d Distribution) AdvanceToWithdrawal(ctx *call.Context) error {
	trx := ctx.Trx()
	params, err := d.requireManager(ctx, BeneficiariesSetup)
	if nil != err {
		return err
	}
	if 0 != d.Available(trx) {
		return fault.ErrOverfunded
	}
	d.setPhase(ctx, Withdrawal)

	if fee := d.Fee(trx); 0 != fee {
		if err := d.token.Transfer(ctx.As(d.address), params.Issuer, fee); nil != err {
			return token.Wrap(err)
		}
	}
	return nil
}

// Withdraw - pay a beneficiary; anyone may call on their behalf
func (d Distribution) Withdraw(ctx *call.Context, beneficiary account.Account) error {
	trx := ctx.Trx()
	if _, err := d.require(trx, Withdrawal); nil != err {
		return err
	}
	owed := d.Owings(trx, beneficiary)
	if 0 == owed {
		return fault.ErrUnknownBeneficiary
	}
	if d.Withdrawn(trx, beneficiary) {
		return fault.ErrDuplicateEntry
	}
	storage.SetFlag(trx, d.key(), withdrawnTag, beneficiary.Bytes())

	if err := d.token.Transfer(ctx.As(d.address), beneficiary, owed); nil != err {
		return token.Wrap(err)
	}
	ctx.Emit(d.address, "Withdrawal", WithdrawalEvent{
		Caller:      ctx.Sender(),
		Beneficiary: beneficiary,
		Amount:      owed,
	})
	return nil
}

// Terminate - return whatever is still available to the distributor
func (d Distribution) Terminate(ctx *call.Context) error {
	trx := ctx.Trx()
	params, err := d.Params(trx)
	if nil != err {
		return err
	}
	if Terminated == d.Phase(trx) {
		return fault.ErrInvalidPhase
	}
	if !isManager(trx, params, ctx.Sender()) {
		return fault.ErrRequiresManagerCaller
	}
	available := d.Available(trx)
	storage.PutSettingN(trx, d.key(), availableTag, 0)
	d.setPhase(ctx, Terminated)

	if 0 != available {
		if err := d.token.Transfer(ctx.As(d.address), params.Distributor, available); nil != err {
			return token.Wrap(err)
		}
	}
	return nil
}
