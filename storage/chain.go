// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

var heightKey = []byte("height")

// BlockHeight - number of committed operations
func BlockHeight(trx Transaction) uint64 {
	n, _ := trx.GetN(Pool.Chain, heightKey)
	return n
}

// SetBlockHeight - record the height of the operation being committed
func SetBlockHeight(trx Transaction, height uint64) {
	trx.PutN(Pool.Chain, heightKey, height)
}
