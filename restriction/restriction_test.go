// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package restriction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/restriction"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		title    string
		transfer restriction.Transfer
		code     restriction.Code
	}{
		{"clear", restriction.Transfer{Amount: 5, Credits: 5, SenderIsMember: true, ReceiverIsMember: true}, restriction.None},
		{"credits", restriction.Transfer{Amount: 6, Credits: 5, SenderIsMember: true, ReceiverIsMember: true}, restriction.InsufficientTransferCredits},
		{"credits first", restriction.Transfer{Amount: 6, Credits: 5, SameEndpoints: true}, restriction.InsufficientTransferCredits},
		{"sender", restriction.Transfer{Amount: 1, Credits: 5, ReceiverIsMember: true}, restriction.RequiresFastMembership},
		{"recipient", restriction.Transfer{Amount: 1, Credits: 5, SenderIsMember: true}, restriction.RequiresFastMembership},
		{"semi public", restriction.Transfer{Amount: 1, Credits: 5, SemiPublic: true, SenderIsMember: true}, restriction.RequiresMarketplaceMembership},
		{"same", restriction.Transfer{Amount: 1, Credits: 5, SenderIsMember: true, ReceiverIsMember: true, SameEndpoints: true}, restriction.RequiresDifferentEndpoints},
		{"membership before same", restriction.Transfer{Amount: 1, Credits: 5, SameEndpoints: true}, restriction.RequiresFastMembership},
	}

	for _, test := range tests {
		assert.Equal(t, test.code, restriction.Detect(test.transfer), test.title)
	}
}

func TestMessage(t *testing.T) {
	messages := map[restriction.Code]string{
		restriction.InsufficientTransferCredits:   "Insufficient transfer credits",
		restriction.RequiresFastMembership:        "Requires FAST membership",
		restriction.RequiresMarketplaceMembership: "Requires Marketplace membership",
		restriction.RequiresDifferentEndpoints:    "Requires different sender and recipient",
	}
	for code, expected := range messages {
		m, err := restriction.Message(code)
		assert.Nil(t, err, "code %d", code)
		assert.Equal(t, expected, m, "code %d", code)
	}

	_, err := restriction.Message(99)
	assert.Equal(t, fault.ErrUnknownRestrictionCode, err, "unknown code")
}

func TestError(t *testing.T) {
	assert.Nil(t, restriction.Error(restriction.None), "none")
	assert.Equal(t, fault.ErrInsufficientTransferCredits, restriction.Error(restriction.InsufficientTransferCredits), "credits")
	assert.Equal(t, fault.ErrRequiresDifferentSenderAndRecipient, restriction.Error(restriction.RequiresDifferentEndpoints), "same")
	assert.Equal(t, fault.ErrUnknownRestrictionCode, restriction.Error(42), "unknown")
}
