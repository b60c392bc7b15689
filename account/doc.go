// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - 20 byte account identifiers
//
// An account is a neo-go script hash.  Its text form is the base58check
// address; a "0x" prefixed little endian hex string is also accepted on
// input.  The all-zero account is the sentinel that stands for "outside
// the ledger": transfers from it mint and transfers to it burn.
package account
