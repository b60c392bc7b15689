// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mode - process wide run state of the daemon
package mode

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/bitmark-inc/fastledger/chain"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/logger"
)

// Mode - daemon run state
type Mode int32

// all possible modes
const (
	Stopped Mode = iota
	Bootstrapping
	Normal
	maximum
)

var names = [maximum]string{
	Stopped:       "Stopped",
	Bootstrapping: "Bootstrapping",
	Normal:        "Normal",
}

// chains that accept test-only behaviour
var testChains = map[string]bool{
	chain.Live:    false,
	chain.Testing: true,
	chain.Local:   true,
}

var (
	current int32 // atomic Mode
	changed int64 // atomic unix nanoseconds of last Set

	setup struct {
		sync.Mutex
		log         *logger.L
		chain       string
		testing     bool
		initialised bool
	}
)

// Initialise - select the chain and enter bootstrapping
func Initialise(chainName string) error {
	setup.Lock()
	defer setup.Unlock()

	if setup.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("mode")

	testing, ok := testChains[chainName]
	if !ok {
		log.Criticalf("unsupported chain: %q", chainName)
		return fault.ErrInvalidChain
	}

	setup.log = log
	setup.chain = chainName
	setup.testing = testing
	setup.initialised = true

	store(Bootstrapping)
	log.Infof("chain: %s  testing: %t", chainName, testing)

	return nil
}

// Finalise - enter stopped and release the chain
func Finalise() error {
	setup.Lock()
	defer setup.Unlock()

	if !setup.initialised {
		return fault.ErrNotInitialised
	}

	store(Stopped)
	setup.initialised = false

	setup.log.Info("finished")
	setup.log.Flush()

	return nil
}

// Set - change mode, out of range values are ignored
func Set(mode Mode) bool {
	setup.Lock()
	log := setup.log
	setup.Unlock()

	if mode < Stopped || mode >= maximum {
		if nil != log {
			log.Errorf("ignore invalid mode: %d", mode)
		}
		return false
	}

	store(mode)
	if nil != log {
		log.Infof("set: %s", mode)
	}
	return true
}

func store(mode Mode) {
	atomic.StoreInt32(&current, int32(mode))
	atomic.StoreInt64(&changed, time.Now().UnixNano())
}

// Current - the present mode
func Current() Mode {
	return Mode(atomic.LoadInt32(&current))
}

// Is - detect mode
func Is(mode Mode) bool {
	return mode == Current()
}

// Since - time of the last mode change
func Since() time.Time {
	return time.Unix(0, atomic.LoadInt64(&changed))
}

// IsTesting - true on the testing and local chains
func IsTesting() bool {
	setup.Lock()
	defer setup.Unlock()
	return setup.testing
}

// ChainName - name of the current chain
func ChainName() string {
	setup.Lock()
	defer setup.Unlock()
	return setup.chain
}

// String - current mode represented as a string
func String() string {
	return Current().String()
}

func (m Mode) String() string {
	if m < Stopped || m >= maximum {
		return "*Unknown*"
	}
	return names[m]
}
