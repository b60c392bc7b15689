// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package governance - the Issuer, Marketplace and Fast registries
//
// each registry is a small value bound to its entity address; all state
// lives in the store and is reached through the call context.
//
//   Issuer       members, automatons, registered FASTs by symbol
//     Marketplace  members, automatons, FAST memberships of each member
//       Fast         governors, members, automatons
//
// authorisation always climbs to the top: a Fast asks its Marketplace,
// which asks its Issuer.
package governance
