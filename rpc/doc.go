// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - JSON-RPC front end of the ledger daemon
//
// Initialise starts a TLS JSON-RPC listener and an optional HTTPS
// listener. Both dispatch to the services registered by rpc/server:
// Node, Issuer, Marketplace, Fast, Crowdfund, Distribution and Token.
// Any net/rpc/jsonrpc client can call them.
package rpc
