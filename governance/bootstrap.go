// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package governance

import (
	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/call"
)

// IssuerAddress - issuer address derived from its deployer and a name
func IssuerAddress(deployer account.Account, name string) account.Account {
	return account.Derive(deployer, KindIssuer, []byte(name))
}

// MarketplaceAddress - marketplace address derived from its issuer and a name
func MarketplaceAddress(issuer account.Account, name string) account.Account {
	return account.Derive(issuer, KindMarketplace, []byte(name))
}

// Bootstrap - deploy an issuer and its marketplace in one unit of work
//
// the caller becomes the first issuer member, the remaining members are
// then added by the caller
func Bootstrap(ctx *call.Context, issuer account.Account, marketplace account.Account, members []account.Account) error {
	i := IssuerAt(issuer)
	if err := i.Initialise(ctx, ctx.Sender()); nil != err {
		return err
	}
	for _, member := range members {
		if member.Equal(ctx.Sender()) {
			continue
		}
		if err := i.AddMember(ctx, member); nil != err {
			return err
		}
	}
	return MarketplaceAt(marketplace).Initialise(ctx, issuer)
}
