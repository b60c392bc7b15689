// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package listeners - TLS network front ends for the RPC server
package listeners

import (
	"net"
	"strconv"
	"strings"

	"github.com/bitmark-inc/fastledger/fault"
)

// Listener - a configured front end ready to accept connections
type Listener interface {
	Serve() error
	Close() error
}

// endpoint - a validated listen address with its network family
type endpoint struct {
	network string
	address string
}

// parseEndpoints - validate "IP:port", "[IPv6]:port" or "*:port"
//
// the wildcard form listens on both families
func parseEndpoints(addresses []string) ([]endpoint, error) {
	result := make([]endpoint, 0, len(addresses))
	for _, a := range addresses {
		host, port, err := net.SplitHostPort(strings.TrimSpace(a))
		if nil != err {
			return nil, fault.ErrInvalidIPAddress
		}

		n, err := strconv.ParseUint(port, 10, 16)
		if nil != err || 0 == n {
			return nil, fault.ErrInvalidPortNumber
		}

		e := endpoint{network: "tcp"}
		switch {
		case "*" == host:
			host = "::"
		case nil == net.ParseIP(host):
			return nil, fault.ErrInvalidIPAddress
		case strings.Contains(host, ":"):
			e.network = "tcp6"
		default:
			e.network = "tcp4"
		}
		e.address = net.JoinHostPort(host, port)
		result = append(result, e)
	}
	return result, nil
}
