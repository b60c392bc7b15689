// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/bitmark-inc/fastledger/account"
)

// SupplyEvent - Minted, Burnt
type SupplyEvent struct {
	Amount    uint64 `json:"amount"`
	Reference string `json:"reference"`
}

// CreditsEvent - TransferCreditsAdded, TransferCreditsDrained
type CreditsEvent struct {
	Amount uint64 `json:"amount"`
}

// ApprovalEvent - Approval, Disapproval
type ApprovalEvent struct {
	Owner   account.Account `json:"owner"`
	Spender account.Account `json:"spender"`
	Amount  uint64          `json:"amount"`
}

// TransferEvent - Transfer
type TransferEvent struct {
	Spender   account.Account `json:"spender"`
	From      account.Account `json:"from"`
	To        account.Account `json:"to"`
	Amount    uint64          `json:"amount"`
	Reference string          `json:"reference"`
}

// DetailsEvent - DetailsChanged
type DetailsEvent struct {
	HasFixedSupply bool `json:"hasFixedSupply"`
	IsSemiPublic   bool `json:"isSemiPublic"`
}
