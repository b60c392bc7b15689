// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"sync"

	"github.com/bitmark-inc/fastledger/counter"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/logger"
)

const (
	rpcLogName   = "client_rpc"
	minBandwidth = 1000000 // bits per second
)

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Bandwidth          float64  `gluamapper:"bandwidth" json:"bandwidth"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
}

type rpcListener struct {
	sync.Mutex
	log       *logger.L
	count     *counter.Counter
	limit     uint64
	server    *rpc.Server
	tlsConfig *tls.Config
	endpoints []endpoint
	open      []net.Listener
}

// NewRPC - validate the configuration and create a JSON-RPC listener
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	server *rpc.Server,
	tlsConfig *tls.Config,
	certificateFingerprint [32]byte,
) (Listener, error) {
	switch {
	case configuration.MaximumConnections < minConnectionCount:
		log.Errorf("%s: connection limit: %d too small", rpcLogName, configuration.MaximumConnections)
		return nil, fault.ErrMissingParameters
	case configuration.Bandwidth <= minBandwidth:
		log.Errorf("%s: bandwidth: %f bps too small", rpcLogName, configuration.Bandwidth)
		return nil, fault.ErrMissingParameters
	case 0 == len(configuration.Listen):
		log.Errorf("%s: no listen address", rpcLogName)
		return nil, fault.ErrMissingParameters
	}

	endpoints, err := parseEndpoints(configuration.Listen)
	if nil != err {
		log.Errorf("%s: listen: %v  error: %s", rpcLogName, configuration.Listen, err)
		return nil, err
	}

	log.Infof("%s: SHA3-256 fingerprint: %x", rpcLogName, certificateFingerprint)

	return &rpcListener{
		log:       log,
		count:     count,
		limit:     configuration.MaximumConnections,
		server:    server,
		tlsConfig: tlsConfig,
		endpoints: endpoints,
	}, nil
}

// Serve - open every endpoint and accept in the background
func (r *rpcListener) Serve() error {
	r.Lock()
	defer r.Unlock()

	for _, e := range r.endpoints {
		r.log.Infof("%s: listen on: %s/%s", rpcLogName, e.network, e.address)
		ln, err := tls.Listen(e.network, e.address, r.tlsConfig)
		if nil != err {
			r.log.Errorf("%s: listen error: %s", rpcLogName, err)
			return err
		}
		r.open = append(r.open, ln)
		go r.accept(ln)
	}
	return nil
}

// Close - stop accepting, established connections run to completion
func (r *rpcListener) Close() error {
	r.Lock()
	defer r.Unlock()

	var first error
	for _, ln := range r.open {
		if err := ln.Close(); nil != err && nil == first {
			first = err
		}
	}
	r.open = nil
	return first
}

func (r *rpcListener) accept(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if nil != err {
			r.log.Infof("%s: accept stopped: %s", rpcLogName, err)
			return
		}
		if !r.count.IncrementBelow(r.limit) {
			r.log.Warnf("%s: reject: %s  limit: %d reached", rpcLogName, conn.RemoteAddr(), r.limit)
			_ = conn.Close()
			continue
		}
		go func(c net.Conn) {
			defer r.count.Decrement()
			defer c.Close()
			r.server.ServeCodec(jsonrpc.NewServerCodec(c))
		}(conn)
	}
}
