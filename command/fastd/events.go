// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"

	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/messagebus"
	"github.com/bitmark-inc/logger"
)

// eventLogger - drains the event bus into the log
type eventLogger struct {
	log *logger.L
	bus *messagebus.Bus
}

// Run - implements background.Process
func (e *eventLogger) Run(args interface{}, shutdown <-chan struct{}) {
	e.log.Info("starting…")

loop:
	for {
		select {
		case <-shutdown:
			break loop
		case event := <-e.bus.Chan():
			e.record(event)
		}
	}

	// whatever is already queued
	for {
		select {
		case event := <-e.bus.Chan():
			e.record(event)
		default:
			e.log.Info("stopped")
			return
		}
	}
}

func (e *eventLogger) record(event call.Event) {
	data, err := json.Marshal(event.Data)
	if nil != err {
		e.log.Errorf("block: %d  source: %s  event: %s  marshal error: %s", event.Block, event.Source, event.Name, err)
		return
	}
	e.log.Infof("block: %d  source: %s  event: %s  data: %s", event.Block, event.Source, event.Name, data)
}
