// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/counter"
	"github.com/bitmark-inc/fastledger/messagebus"
	"github.com/bitmark-inc/fastledger/rpc/fixtures"
	"github.com/bitmark-inc/fastledger/rpc/node"
	"github.com/bitmark-inc/fastledger/storage"
	"github.com/bitmark-inc/logger"
)

func TestNode_Info(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	store, err := storage.OpenMemory()
	require.NoError(t, err, "storage open")
	defer store.Close()

	bus := messagebus.New(1)
	runner := call.NewRunner(store, nil, bus)

	entity := fixtures.Named("entity")
	for i := 0; i < 2; i += 1 {
		err := runner.Execute(call.Request{Sender: fixtures.Named("user")}, "test", func(ctx *call.Context) error {
			ctx.Emit(entity, "Touched", nil)
			return nil
		})
		require.NoError(t, err, "execute")
	}

	now := time.Now()
	ctr := counter.Counter(3)
	n := node.New(
		logger.New(fixtures.LogCategory),
		"testing",
		now,
		"1",
		&ctr,
		runner,
		bus,
	)

	var reply node.InfoReply
	err = n.Info(&node.InfoArguments{}, &reply)
	assert.Nil(t, err, "wrong Info")
	assert.Equal(t, "testing", reply.Chain, "wrong chain")
	assert.Equal(t, "Stopped", reply.Mode, "wrong mode")
	assert.Equal(t, uint64(2), reply.Block.Height, "wrong height")
	assert.Equal(t, uint64(3), reply.RPCs, "wrong rpc count")
	assert.Equal(t, uint64(1), reply.Events.Published, "wrong published")
	assert.Equal(t, uint64(1), reply.Events.Dropped, "wrong dropped")
	assert.Equal(t, "1", reply.Version, "wrong version")
	assert.NotEmpty(t, reply.Uptime, "empty uptime")
}

func TestNode_InfoWithoutRunner(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctr := counter.Counter(0)
	n := node.New(logger.New(fixtures.LogCategory), "testing", time.Now(), "1", &ctr, nil, nil)

	var reply node.InfoReply
	assert.Error(t, n.Info(&node.InfoArguments{}, &reply), "info without runner")
}
