// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package messagebus

import (
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/counter"
)

// DefaultQueueSize - used when no size is configured
const DefaultQueueSize = 1000

// Bus - bounded event queue
type Bus struct {
	queue     chan call.Event
	published counter.Counter
	dropped   counter.Counter
}

// New - create a bus holding up to size events
func New(size int) *Bus {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Bus{
		queue: make(chan call.Event, size),
	}
}

// Publish - queue an event, dropping it if the queue is full
func (b *Bus) Publish(e call.Event) {
	select {
	case b.queue <- e:
		b.published.Increment()
	default:
		b.dropped.Increment()
	}
}

// Chan - channel to read from
func (b *Bus) Chan() <-chan call.Event {
	return b.queue
}

// Published - number of events queued
func (b *Bus) Published() uint64 {
	return b.published.Uint64()
}

// Dropped - number of events lost to a full queue
func (b *Bus) Dropped() uint64 {
	return b.dropped.Uint64()
}
