// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package restriction - decide whether a prospective transfer may proceed
package restriction

import (
	"github.com/bitmark-inc/fastledger/fault"
)

// Code - restriction code, zero means no restriction
type Code uint8

// restriction codes
const (
	None                          Code = 0
	InsufficientTransferCredits   Code = 1
	RequiresFastMembership        Code = 2
	RequiresMarketplaceMembership Code = 3
	RequiresDifferentEndpoints    Code = 4
)

var messages = map[Code]string{
	None:                          "No restriction",
	InsufficientTransferCredits:   "Insufficient transfer credits",
	RequiresFastMembership:        "Requires FAST membership",
	RequiresMarketplaceMembership: "Requires Marketplace membership",
	RequiresDifferentEndpoints:    "Requires different sender and recipient",
}

// Transfer - the facts the predicate needs
type Transfer struct {
	Amount           uint64
	Credits          uint64
	SemiPublic       bool
	SenderIsMember   bool
	ReceiverIsMember bool
	SameEndpoints    bool
}

// Detect - the first restriction that applies, in priority order:
// credits, sender membership, recipient membership, identical endpoints
func Detect(t Transfer) Code {
	membership := RequiresFastMembership
	if t.SemiPublic {
		membership = RequiresMarketplaceMembership
	}
	switch {
	case t.Credits < t.Amount:
		return InsufficientTransferCredits
	case !t.SenderIsMember:
		return membership
	case !t.ReceiverIsMember:
		return membership
	case t.SameEndpoints:
		return RequiresDifferentEndpoints
	}
	return None
}

// Message - human readable text for a code
func Message(code Code) (string, error) {
	m, ok := messages[code]
	if !ok {
		return "", fault.ErrUnknownRestrictionCode
	}
	return m, nil
}

// Error - the error that an operation fails with for a code, nil for None
func Error(code Code) error {
	switch code {
	case None:
		return nil
	case InsufficientTransferCredits:
		return fault.ErrInsufficientTransferCredits
	case RequiresFastMembership:
		return fault.ErrRequiresFastMembership
	case RequiresMarketplaceMembership:
		return fault.ErrRequiresMarketplaceMembership
	case RequiresDifferentEndpoints:
		return fault.ErrRequiresDifferentSenderAndRecipient
	}
	return fault.ErrUnknownRestrictionCode
}
