// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"math/bits"

	"github.com/bitmark-inc/fastledger/fault"
)

// BasisPoints - 100%
const BasisPoints = 10000

// Add - a+b or ErrOverflow
func Add(a uint64, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if 0 != carry {
		return 0, fault.ErrOverflow
	}
	return sum, nil
}

// Sub - a-b or ErrUnderflow
func Sub(a uint64, b uint64) (uint64, error) {
	difference, borrow := bits.Sub64(a, b, 0)
	if 0 != borrow {
		return 0, fault.ErrUnderflow
	}
	return difference, nil
}

// CeilBasisPoints - ceil(amount * bps / 10000) without intermediate overflow
//
// bps must not exceed BasisPoints so the result never exceeds amount
func CeilBasisPoints(amount uint64, bps uint64) uint64 {
	if bps > BasisPoints {
		bps = BasisPoints
	}
	hi, lo := bits.Mul64(amount, bps)
	q, r := bits.Div64(hi, lo, BasisPoints)
	if 0 != r {
		q += 1
	}
	return q
}
