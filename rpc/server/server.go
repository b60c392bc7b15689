// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package server - registration of all RPC services
package server

import (
	"net/rpc"
	"time"

	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/counter"
	"github.com/bitmark-inc/fastledger/messagebus"
	"github.com/bitmark-inc/fastledger/rpc/crowdfund"
	"github.com/bitmark-inc/fastledger/rpc/distribution"
	"github.com/bitmark-inc/fastledger/rpc/fast"
	"github.com/bitmark-inc/fastledger/rpc/issuer"
	"github.com/bitmark-inc/fastledger/rpc/marketplace"
	"github.com/bitmark-inc/fastledger/rpc/node"
	"github.com/bitmark-inc/fastledger/rpc/token"
	tokens "github.com/bitmark-inc/fastledger/token"
	"github.com/bitmark-inc/logger"
)

// Environment - shared state handed to every service
type Environment struct {
	Chain    string
	Version  string
	Runner   *call.Runner
	Bus      *messagebus.Bus
	Tokens   tokens.Resolver
	RPCCount *counter.Counter
}

// Create - an RPC server with all services registered
//
// the node service is also returned for the HTTP details page
func Create(log *logger.L, env Environment) (*rpc.Server, *node.Node) {

	start := time.Now().UTC()

	server := rpc.NewServer()

	n := node.New(log, env.Chain, start, env.Version, env.RPCCount, env.Runner, env.Bus)

	_ = server.Register(n)
	_ = server.Register(issuer.New(log, env.Runner))
	_ = server.Register(marketplace.New(log, env.Runner))
	_ = server.Register(fast.New(log, env.Runner, env.Tokens))
	_ = server.Register(crowdfund.New(log, env.Runner, env.Tokens))
	_ = server.Register(distribution.New(log, env.Runner, env.Tokens))
	_ = server.Register(token.New(log, env.Runner))

	return server, n
}
