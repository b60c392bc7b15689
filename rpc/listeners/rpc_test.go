// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"fmt"
	"math/rand"
	"net/rpc"
	"net/rpc/jsonrpc"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/fastledger/counter"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/rpc/certificate"
	"github.com/bitmark-inc/fastledger/rpc/fixtures"
	"github.com/bitmark-inc/fastledger/rpc/listeners"
	"github.com/bitmark-inc/logger"
)

type Add struct{}
type AddArg struct {
	A, B int
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func newRPC(con listeners.RPCConfiguration) (listeners.Listener, error) {
	count := counter.Counter(0)
	return listeners.NewRPC(
		&con,
		logger.New(fixtures.LogCategory),
		&count,
		rpc.NewServer(),
		&tls.Config{},
		[32]byte{},
	)
}

func TestRpcListenerServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	port := rand.Intn(30000) + 30000
	listen := fmt.Sprintf("127.0.0.1:%d", port)
	con := listeners.RPCConfiguration{
		MaximumConnections: 5,
		Bandwidth:          10000000,
		Listen:             []string{listen},
	}

	count := counter.Counter(0)

	s := rpc.NewServer()
	err := s.Register(Add{})
	if err != nil {
		t.Error("register with error: ", err)
		t.FailNow()
	}

	crt, key := fixtures.CertificatePair()
	tlsCertificate, fin, err := certificate.Get(logger.New(fixtures.LogCategory), "test", crt, key)
	if err != nil {
		t.Error("get certificate with error: ", err)
		t.FailNow()
	}

	l, err := listeners.NewRPC(
		&con,
		logger.New(fixtures.LogCategory),
		&count,
		s,
		tlsCertificate,
		fin,
	)
	assert.Nil(t, err, "wrong NewRPC")

	err = l.Serve()
	assert.Nil(t, err, "wrong Serve")
	defer l.Close()

	tlsConfig := tls.Config{
		InsecureSkipVerify: true,
	}

	c, err := tls.Dial("tcp", listen, &tlsConfig)
	if err != nil {
		t.Error("dial with error: ", err)
		t.FailNow()
	}

	arg := AddArg{
		A: 2,
		B: 5,
	}
	var reply int

	client := jsonrpc.NewClient(c)
	defer client.Close()

	err = client.Call("Add.Add", &arg, &reply)
	assert.Nil(t, err, "wrong client Call")
	assert.Equal(t, arg.A+arg.B, reply, "wrong result")
}

func TestRpcListenerServeWhenMaxConnectionCountTooSmall(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, err := newRPC(listeners.RPCConfiguration{
		MaximumConnections: 0,
		Bandwidth:          10000000,
		Listen:             []string{"127.0.0.1:1234"},
	})
	assert.Equal(t, fault.ErrMissingParameters, err, "wrong error")
}

func TestRpcListenerServeWhenBandwidthTooSmall(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, err := newRPC(listeners.RPCConfiguration{
		MaximumConnections: 1,
		Bandwidth:          100,
		Listen:             []string{"127.0.0.1:1234"},
	})
	assert.Equal(t, fault.ErrMissingParameters, err, "wrong error")
}

func TestRpcListenerServeWhenEmptyListen(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, err := newRPC(listeners.RPCConfiguration{
		MaximumConnections: 1,
		Bandwidth:          10000000,
		Listen:             []string{},
	})
	assert.Equal(t, fault.ErrMissingParameters, err, "wrong error")
}

func TestRpcListenerServeWhenErrorListen(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, err := newRPC(listeners.RPCConfiguration{
		MaximumConnections: 5,
		Bandwidth:          10000000,
		Listen:             []string{"1"},
	})
	assert.Equal(t, fault.ErrInvalidIPAddress, err, "wrong error")
}

func TestRpcListenerServeWhenListenAll(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, err := newRPC(listeners.RPCConfiguration{
		MaximumConnections: 5,
		Bandwidth:          10000000,
		Listen:             []string{"*:1234"},
	})
	assert.Nil(t, err, "wrong NewRPC")
}

func TestRpcListenerServeWhenListenIPv6(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, err := newRPC(listeners.RPCConfiguration{
		MaximumConnections: 5,
		Bandwidth:          10000000,
		Listen:             []string{"[::1]:1234"},
	})
	assert.Nil(t, err, "wrong NewRPC")
}

func TestRpcListenerServeWhenBadPort(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	_, err := newRPC(listeners.RPCConfiguration{
		MaximumConnections: 5,
		Bandwidth:          10000000,
		Listen:             []string{"127.0.0.1:99999"},
	})
	assert.Equal(t, fault.ErrInvalidPortNumber, err, "wrong error")
}

func TestRpcListenerRejectsOverLimit(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	listen := fmt.Sprintf("127.0.0.1:%d", rand.Intn(30000)+30000)
	count := counter.Counter(0)

	s := rpc.NewServer()
	require.NoError(t, s.Register(Add{}), "register")

	crt, key := fixtures.CertificatePair()
	tlsCertificate, fin, err := certificate.Get(logger.New(fixtures.LogCategory), "test", crt, key)
	require.NoError(t, err, "certificate")

	l, err := listeners.NewRPC(
		&listeners.RPCConfiguration{
			MaximumConnections: 1,
			Bandwidth:          10000000,
			Listen:             []string{listen},
		},
		logger.New(fixtures.LogCategory),
		&count,
		s,
		tlsCertificate,
		fin,
	)
	require.NoError(t, err, "NewRPC")
	require.NoError(t, l.Serve(), "Serve")

	first, err := tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	require.NoError(t, err, "first dial")
	c1 := jsonrpc.NewClient(first)
	defer c1.Close()

	var reply int
	require.NoError(t, c1.Call("Add.Add", &AddArg{A: 1, B: 1}, &reply), "first call")
	assert.Equal(t, uint64(1), count.Uint64(), "one connection")

	second, err := tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	if nil == err {
		c2 := jsonrpc.NewClient(second)
		err = c2.Call("Add.Add", &AddArg{A: 1, B: 1}, &reply)
		_ = c2.Close()
	}
	assert.Error(t, err, "second connection served over limit")

	assert.NoError(t, l.Close(), "close")
	_, err = tls.Dial("tcp", listen, &tls.Config{InsecureSkipVerify: true})
	assert.Error(t, err, "dial after close")
}
