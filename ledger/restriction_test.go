// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/restriction"
)

func TestDetectTransferRestriction(t *testing.T) {
	f := setup(t, continuous())
	defer f.done()

	items := []struct {
		from     account.Account
		to       account.Account
		amount   uint64
		expected restriction.Code
	}{
		{carol, dave, 10, restriction.None},
		{carol, dave, 501, restriction.InsufficientTransferCredits},
		{mallory, dave, 10, restriction.RequiresFastMembership},
		{carol, erin, 10, restriction.RequiresFastMembership},
		{carol, carol, 10, restriction.RequiresDifferentEndpoints},
		{mallory, mallory, 501, restriction.InsufficientTransferCredits},
	}

	for i, item := range items {
		code := f.ledger.DetectTransferRestriction(f.trx, item.from, item.to, item.amount)
		assert.Equal(t, item.expected, code, "%d: code", i)
	}

	assert.NoError(t, f.ledger.DrainTransferCredits(f.as(alice)), "drain")
	code := f.ledger.DetectTransferRestriction(f.trx, carol, dave, 1)
	assert.Equal(t, restriction.InsufficientTransferCredits, code, "drained")
	code = f.ledger.DetectTransferRestriction(f.trx, account.Zero, dave, 10)
	assert.Equal(t, restriction.None, code, "reserve issue needs no credits")
	assert.NoError(t, f.ledger.AddTransferCredits(f.as(alice), 500), "credits")

	assert.NoError(t, f.ledger.SetIsSemiPublic(f.as(alice), true), "semi public")
	code = f.ledger.DetectTransferRestriction(f.trx, carol, erin, 10)
	assert.Equal(t, restriction.None, code, "marketplace member recipient")
	code = f.ledger.DetectTransferRestriction(f.trx, carol, mallory, 10)
	assert.Equal(t, restriction.RequiresMarketplaceMembership, code, "outsider recipient")
}

func TestMessageForTransferRestriction(t *testing.T) {
	f := setup(t, continuous())
	defer f.done()

	message, err := f.ledger.MessageForTransferRestriction(restriction.InsufficientTransferCredits)
	assert.NoError(t, err, "known code")
	assert.Equal(t, "Insufficient transfer credits", message, "message")

	_, err = f.ledger.MessageForTransferRestriction(restriction.Code(99))
	assert.Equal(t, fault.ErrUnknownRestrictionCode, err, "unknown code")
}
