// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package crowdfund - a capped pledge campaign for one FAST
//
// Setup -> Funding -> Success or Failure; pledges are pulled from the
// value token when made and either paid out on success or refunded one
// pledger at a time on failure
package crowdfund

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
	collectedTag = "collected"
	pledgeTag    = "pledge"
	refundedTag  = "refunded"
)

// Crowdfund - handle to one campaign
type Crowdfund struct {
	address  account.Account
	token    token.Token
	pledgers orderedset.Set
}

// At - the campaign at address paying in tok
func At(address account.Account, tok token.Token) Crowdfund {
	return Crowdfund{
		address:  address,
		token:    tok,
		pledgers: orderedset.New(address, "pledgers"),
	}
}

// Address - entity address
func (c Crowdfund) Address() account.Account {
	return c.address
}

func (c Crowdfund) key() []byte {
	return c.address.Bytes()
}

// Initialise - store the parameters and enter Setup
func (c Crowdfund) Initialise(ctx *call.Context, params Params) error {
	trx := ctx.Trx()
	if params.BasisPointsFee > util.BasisPoints || len(params.Reference) > maxReferenceLength {
		return fault.ErrInconsistentParameter
	}
	if err := storage.RequireKind(trx, params.Issuer.Bytes(), governance.KindIssuer); nil != err {
		return err
	}
	if !governance.FastAt(params.Fast, nil).IsMember(trx, params.Beneficiary) {
		return fault.ErrRequiresFastMembership
	}
	if err := storage.Register(trx, c.key(), account.KindCrowdfund); nil != err {
		return err
	}
	storage.PutSetting(trx, c.key(), paramsTag, util.Pack(&params))
	storage.PutSettingN(trx, c.key(), phaseTag, uint64(Setup))
	storage.PutSettingN(trx, c.key(), feeTag, params.BasisPointsFee)

	ctx.Emit(c.address, "Initialised", PhaseEvent{Phase: Setup, BasisPointsFee: params.BasisPointsFee})
	return nil
}

// Params - creation parameters
func (c Crowdfund) Params(trx storage.Transaction) (Params, error) {
	if err := storage.RequireKind(trx, c.key(), account.KindCrowdfund); nil != err {
		return Params{}, err
	}
	var params Params
	util.Unpack(storage.Setting(trx, c.key(), paramsTag), &params)
	return params, nil
}

// Phase - current phase
func (c Crowdfund) Phase(trx storage.Transaction) Phase {
	return Phase(storage.SettingN(trx, c.key(), phaseTag))
}

// BasisPointsFee - fee rate in force
func (c Crowdfund) BasisPointsFee(trx storage.Transaction) uint64 {
	return storage.SettingN(trx, c.key(), feeTag)
}

// Collected - sum of all pledges
func (c Crowdfund) Collected(trx storage.Transaction) uint64 {
	return storage.SettingN(trx, c.key(), collectedTag)
}

// FeeAmount - the issuer's share of the collected amount, rounded up
func (c Crowdfund) FeeAmount(trx storage.Transaction) uint64 {
	return util.CeilBasisPoints(c.Collected(trx), c.BasisPointsFee(trx))
}

// Pledges - amount pledged by an account
func (c Crowdfund) Pledges(trx storage.Transaction, pledger account.Account) uint64 {
	return storage.Amount(trx, c.key(), pledgeTag, pledger.Bytes())
}

// Refunded - whether a pledger has been refunded
func (c Crowdfund) Refunded(trx storage.Transaction, pledger account.Account) bool {
	return storage.Flag(trx, c.key(), refundedTag, pledger.Bytes())
}

// PledgerCount - number of distinct pledgers
func (c Crowdfund) PledgerCount(trx storage.Transaction) uint64 {
	return c.pledgers.Len(trx)
}

// PaginatePledgers - page of pledgers and the next cursor
func (c Crowdfund) PaginatePledgers(trx storage.Transaction, offset uint64, limit uint64) ([]account.Account, uint64) {
	return c.pledgers.Paginate(trx, offset, limit)
}

// Details - summary for display
func (c Crowdfund) Details(trx storage.Transaction) (Details, error) {
	params, err := c.Params(trx)
	if nil != err {
		return Details{}, err
	}
	return Details{
		Address:        c.address,
		Params:         params,
		Phase:          c.Phase(trx),
		BasisPointsFee: c.BasisPointsFee(trx),
		Collected:      c.Collected(trx),
		FeeAmount:      c.FeeAmount(trx),
		PledgerCount:   c.PledgerCount(trx),
	}, nil
}

// load parameters and require one of the given phases
func (c Crowdfund) require(trx storage.Transaction, phase Phase) (Params, error) {
	params, err := c.Params(trx)
	if nil != err {
		return params, err
	}
	if c.Phase(trx) != phase {
		return params, fault.ErrInvalidPhase
	}
	return params, nil
}

func (c Crowdfund) setPhase(ctx *call.Context, phase Phase) {
	storage.PutSettingN(ctx.Trx(), c.key(), phaseTag, uint64(phase))
	ctx.Log().Infof("crowdfund: %s phase: %s", c.address, phase)
}

// an issuer member or an automaton allowed to manage crowdfunds
func isManager(trx storage.Transaction, params Params, a account.Account) bool {
	return governance.IssuerAt(params.Issuer).ManagerCheck(governance.IssuerManageCrowdfunds)(trx, a)
}

// AdvanceToFunding - open for pledges at the given fee rate
//
// caller must be an issuer member or a crowdfund managing automaton
func (c Crowdfund) AdvanceToFunding(ctx *call.Context, basisPointsFee uint64) error {
	trx := ctx.Trx()
	params, err := c.require(trx, Setup)
	if nil != err {
		return err
	}
	if !isManager(trx, params, ctx.Sender()) {
		return fault.ErrRequiresIssuerMembership
	}
	if basisPointsFee > util.BasisPoints {
		return fault.ErrInconsistentParameter
	}
	storage.PutSettingN(trx, c.key(), feeTag, basisPointsFee)
	c.setPhase(ctx, Funding)
	ctx.Emit(c.address, "AdvancedToFunding", PhaseEvent{Phase: Funding, BasisPointsFee: basisPointsFee})
	return nil
}

// Pledge - pull amount of value token from the caller
//
// the caller must be a FAST member and have approved this campaign on the
// value token
func (c Crowdfund) Pledge(ctx *call.Context, amount uint64) error {
	trx := ctx.Trx()
	params, err := c.require(trx, Funding)
	if nil != err {
		return err
	}
	pledger := ctx.Sender()
	if !governance.FastAt(params.Fast, nil).IsMember(trx, pledger) {
		return fault.ErrRequiresFastMembership
	}
	if 0 == amount {
		return fault.ErrInconsistentParameter
	}
	collected, err := util.Add(c.Collected(trx), amount)
	if nil != err {
		return fault.ErrCapExceeded
	}
	if 0 != params.Cap && collected > params.Cap {
		return fault.ErrCapExceeded
	}
	if c.token.Allowance(ctx, pledger, c.address) < amount || c.token.BalanceOf(ctx, pledger) < amount {
		return fault.ErrInsufficientFunds
	}
	pledged, err := util.Add(c.Pledges(trx, pledger), amount)
	if nil != err {
		return err
	}

	if !c.pledgers.Contains(trx, pledger) {
		if err := c.pledgers.Add(trx, pledger); nil != err {
			return err
		}
	}
	storage.PutAmount(trx, c.key(), pledgeTag, pledger.Bytes(), pledged)
	storage.PutSettingN(trx, c.key(), collectedTag, collected)

	if err := c.token.TransferFrom(ctx.As(c.address), pledger, c.address, amount); nil != err {
		return token.Wrap(err)
	}
	ctx.Emit(c.address, "Pledged", PledgeEvent{Pledger: pledger, Amount: amount})
	return nil
}

// Terminate - close the campaign
//
// on success the fee goes to the issuer and the rest to the beneficiary
func (c Crowdfund) Terminate(ctx *call.Context, success bool) error {
	trx := ctx.Trx()
	params, err := c.require(trx, Funding)
	if nil != err {
		return err
	}
	if !isManager(trx, params, ctx.Sender()) {
		return fault.ErrRequiresIssuerMembership
	}

	if !success {
		c.setPhase(ctx, Failure)
		ctx.Emit(c.address, "Terminated", PhaseEvent{Phase: Failure, BasisPointsFee: c.BasisPointsFee(trx)})
		return nil
	}

	if !governance.FastAt(params.Fast, nil).IsMember(trx, params.Beneficiary) {
		return fault.ErrRequiresFastMembership
	}
	collected := c.Collected(trx)
	fee := c.FeeAmount(trx)
	remainder := collected - fee

	c.setPhase(ctx, Success)

	self := ctx.As(c.address)
	if 0 != fee {
		if err := c.token.Transfer(self, params.Issuer, fee); nil != err {
			return token.Wrap(err)
		}
	}
	if 0 != remainder {
		if err := c.token.Transfer(self, params.Beneficiary, remainder); nil != err {
			return token.Wrap(err)
		}
	}
	ctx.Emit(c.address, "Terminated", PhaseEvent{Phase: Success, BasisPointsFee: c.BasisPointsFee(trx)})
	return nil
}

// Refund - return a pledger's full pledge after failure
//
// anyone may trigger a refund, the funds always go to the pledger
func (c Crowdfund) Refund(ctx *call.Context, pledger account.Account) error {
	trx := ctx.Trx()
	if _, err := c.require(trx, Failure); nil != err {
		return err
	}
	amount := c.Pledges(trx, pledger)
	if 0 == amount {
		return fault.ErrUnknownPledger
	}
	if c.Refunded(trx, pledger) {
		return fault.ErrDuplicateEntry
	}
	storage.SetFlag(trx, c.key(), refundedTag, pledger.Bytes())

	if err := c.token.Transfer(ctx.As(c.address), pledger, amount); nil != err {
		return token.Wrap(err)
	}
	ctx.Emit(c.address, "Refunded", PledgeEvent{Pledger: pledger, Amount: amount})
	return nil
}
