// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"runtime"
	"time"

	"github.com/bitmark-inc/logger"
)

const (
	statsDelay = 60 * time.Second
	mega       = 1048576
)

// memoryStats - periodic memory usage in the log
type memoryStats struct {
	log *logger.L
}

// Run - implements background.Process
func (m *memoryStats) Run(args interface{}, shutdown <-chan struct{}) {
	delay := time.After(0)
	for {
		select {
		case <-shutdown:
			return
		case <-delay:
		}

		var s runtime.MemStats
		runtime.ReadMemStats(&s)

		m.log.Warnf("allocated: %d M  cumulative: %d M  OS virtual: %d M  goroutines: %d",
			s.Alloc/mega, s.TotalAlloc/mega, s.Sys/mega, runtime.NumGoroutine())

		delay = time.After(statsDelay)
	}
}
