// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package governance

import (
	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/storage"
)

// entity kinds
const (
	KindIssuer      = "issuer"
	KindMarketplace = "marketplace"
	KindFast        = "fast"
)

// issuer automaton privileges
const (
	IssuerManageFasts         = 1 << 0
	IssuerManageDistributions = 1 << 1
	IssuerManageCrowdfunds    = 1 << 2
)

// marketplace automaton privileges
const (
	MarketplaceManageMembers = 1 << 0
)

// fast automaton privileges
const (
	FastManageMembers       = 1 << 0
	FastManageDistributions = 1 << 1
	FastManageCrowdfunds    = 1 << 2
)

// Check - a capability test on an account
type Check func(storage.Transaction, account.Account) bool

// Either - passes if any check passes
func Either(checks ...Check) Check {
	return func(trx storage.Transaction, a account.Account) bool {
		for _, c := range checks {
			if c(trx, a) {
				return true
			}
		}
		return false
	}
}
