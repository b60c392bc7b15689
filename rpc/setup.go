// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"sync"

	"github.com/bitmark-inc/fastledger/counter"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/rpc/certificate"
	"github.com/bitmark-inc/fastledger/rpc/handler"
	"github.com/bitmark-inc/fastledger/rpc/listeners"
	"github.com/bitmark-inc/fastledger/rpc/server"
	"github.com/bitmark-inc/logger"
)

const (
	tlsName = "client_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	listeners []listeners.Listener

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// connection counters
var (
	connectionCountRPC counter.Counter
)

// Initialise - start the JSON-RPC and optional HTTPS listeners
//
// env.RPCCount is replaced by the shared connection counter
func Initialise(rpcConfiguration *listeners.RPCConfiguration, httpsConfiguration *listeners.HTTPSConfiguration, env server.Environment) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.ErrAlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	tlsConfig, certificateFingerprint, err := certificate.Get(log, tlsName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}

	env.RPCCount = &connectionCountRPC
	s, n := server.Create(log, env)

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCountRPC,
		s,
		tlsConfig,
		certificateFingerprint,
	)
	if nil != err {
		return err
	}
	err = rpcListener.Serve()
	if nil != err {
		_ = rpcListener.Close()
		return err
	}
	globalData.listeners = []listeners.Listener{rpcListener}

	if 0 != len(httpsConfiguration.Listen) {
		httpsTLS, fingerprint, err := certificate.Get(log, "http_rpc", httpsConfiguration.Certificate, httpsConfiguration.PrivateKey)
		if nil != err {
			closeAll()
			return err
		}
		log.Infof("http_rpc: SHA3-256 fingerprint: %x", fingerprint)

		h := handler.New(log, s, n, httpsConfiguration.MaximumConnections)
		httpsListener, err := listeners.NewHTTPS(httpsConfiguration, log, httpsTLS, h)
		if nil != err {
			closeAll()
			return err
		}
		globalData.listeners = append(globalData.listeners, httpsListener)
		err = httpsListener.Serve()
		if nil != err {
			closeAll()
			return err
		}
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

// Finalise - stop all background tasks
func Finalise() error {

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	closeAll()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

func closeAll() {
	for _, l := range globalData.listeners {
		if err := l.Close(); nil != err {
			globalData.log.Warnf("close error: %s", err)
		}
	}
	globalData.listeners = nil
}
