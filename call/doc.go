// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package call - unit of work for ledger operations
//
// a Runner executes one operation at a time inside a storage
// transaction.  The operation sees a Context carrying the transaction,
// the effective caller, the block number and a buffer of events.  On
// error nothing is written and no event leaves the buffer; on success
// the block height advances, the transaction commits and then the
// events are published to the sink.
package call
