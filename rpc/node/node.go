// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/counter"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/messagebus"
	"github.com/bitmark-inc/fastledger/mode"
	"github.com/bitmark-inc/fastledger/rpc/ratelimit"
	"github.com/bitmark-inc/fastledger/storage"
	"github.com/bitmark-inc/logger"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Chain   string
	Runner  *call.Runner
	Bus     *messagebus.Bus
	counter *counter.Counter
}

// New - node information service
func New(log *logger.L, chain string, start time.Time, version string, counter *counter.Counter, runner *call.Runner, bus *messagebus.Bus) *Node {
	return &Node{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNode, rateBurstNode),
		Start:   start,
		Version: version,
		Chain:   chain,
		Runner:  runner,
		Bus:     bus,
		counter: counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Chain   string     `json:"chain"`
	Mode    string     `json:"mode"`
	Block   BlockInfo  `json:"block"`
	RPCs    uint64     `json:"rpcs"`
	Events  EventsInfo `json:"events"`
	Version string     `json:"version"`
	Uptime  string     `json:"uptime"`
}

// BlockInfo - the most recent committed unit of work
type BlockInfo struct {
	Height uint64 `json:"height"`
}

// EventsInfo - event bus counters
type EventsInfo struct {
	Published uint64 `json:"published"`
	Dropped   uint64 `json:"dropped"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	if nil == node.Runner {
		return fault.ErrNotInitialised
	}

	var height uint64
	_ = node.Runner.Store().View(func(trx storage.Transaction) error {
		height = storage.BlockHeight(trx)
		return nil
	})

	reply.Chain = node.Chain
	reply.Mode = mode.String()
	reply.Block = BlockInfo{
		Height: height,
	}
	reply.RPCs = node.counter.Uint64()
	if nil != node.Bus {
		reply.Events = EventsInfo{
			Published: node.Bus.Published(),
			Dropped:   node.Bus.Dropped(),
		}
	}
	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	return nil
}
