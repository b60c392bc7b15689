// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package request_test

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/rpc/request"
)

var (
	relay = account.Derive(account.Zero, "test", []byte("relay"))
	user  = account.Derive(account.Zero, "test", []byte("user"))
)

func TestCallerRequest(t *testing.T) {
	r, err := request.Caller{Sender: user}.Request()
	assert.NoError(t, err, "plain")
	assert.Equal(t, user, r.Sender, "sender")
	assert.Nil(t, r.Forwarded, "forwarded")

	r, err = request.Caller{Sender: relay, Forwarded: "0x" + hex.EncodeToString(user.Bytes())}.Request()
	assert.NoError(t, err, "forwarded")
	assert.Equal(t, user.Bytes(), r.Forwarded, "suffix")

	_, err = request.Caller{Sender: relay, Forwarded: "xyz"}.Request()
	assert.Equal(t, fault.ErrInvalidForwardedCaller, err, "bad hex")

	_, err = request.Caller{}.Request()
	assert.Equal(t, fault.ErrMissingParameters, err, "no sender")
}

func TestPageLimit(t *testing.T) {
	limiter := rate.NewLimiter(1000, 200)
	assert.NoError(t, request.Page{Count: 10}.Limit(limiter), "in range")
	assert.Equal(t, fault.ErrInvalidCount, request.Page{Count: request.MaximumCount + 1}.Limit(limiter), "too many")
}

func TestListArgumentsJSON(t *testing.T) {
	var args request.ListArguments
	text := `{"entity":"` + user.String() + `","offset":"5","count":3}`
	err := json.Unmarshal([]byte(text), &args)
	assert.NoError(t, err, "unmarshal")
	assert.Equal(t, user, args.Entity, "entity")
	assert.Equal(t, uint64(5), args.Offset, "offset")
	assert.Equal(t, 3, args.Count, "count")
}
