// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/util"
)

func TestAddSub(t *testing.T) {
	n, err := util.Add(2, 3)
	assert.Nil(t, err, "add")
	assert.Equal(t, uint64(5), n, "sum")

	_, err = util.Add(math.MaxUint64, 1)
	assert.Equal(t, fault.ErrOverflow, err, "overflow")

	n, err = util.Sub(5, 5)
	assert.Nil(t, err, "sub")
	assert.Equal(t, uint64(0), n, "difference")

	_, err = util.Sub(4, 5)
	assert.Equal(t, fault.ErrUnderflow, err, "underflow")
}

func TestCeilBasisPoints(t *testing.T) {
	tests := []struct {
		amount   uint64
		bps      uint64
		expected uint64
	}{
		{1000, 10000, 1000},
		{1000, 3333, 334},
		{1000, 1, 1},
		{1000, 0, 0},
		{150, 2000, 30},
		{0, 5000, 0},
		{math.MaxUint64, 10000, math.MaxUint64},
		{math.MaxUint64, 5000, math.MaxUint64/2 + 1},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, util.CeilBasisPoints(test.amount, test.bps), "ceil(%d * %d / 10000)", test.amount, test.bps)
	}
}
