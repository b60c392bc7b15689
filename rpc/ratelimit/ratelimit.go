// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package ratelimit - per service request throttling
package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fastledger/fault"
)

// Limit - charge a single request, sleeping until it is allowed
func Limit(limiter *rate.Limiter) error {
	return wait(limiter.Reserve())
}

// LimitN - charge a paged request of count items
//
// an out of range count still costs one request and is then rejected
func LimitN(limiter *rate.Limiter, count int, maximumCount int) error {
	if count > 0 && count <= maximumCount {
		return wait(limiter.ReserveN(time.Now(), count))
	}
	if err := wait(limiter.Reserve()); nil != err {
		return err
	}
	return fault.ErrInvalidCount
}

func wait(r *rate.Reservation) error {
	if !r.OK() {
		return fault.ErrRateLimiting
	}
	if d := r.Delay(); d > 0 {
		time.Sleep(d)
	}
	return nil
}
