// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler_test

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"net"
	"net/http"
	"net/http/httptest"
	"net/rpc"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fastledger/rpc/fixtures"
	"github.com/bitmark-inc/fastledger/rpc/handler"
	"github.com/bitmark-inc/fastledger/rpc/mocks"
	"github.com/bitmark-inc/fastledger/rpc/node"
)

const (
	notAllowed      = "method not allowed"
	tooManyRequests = "Too Many Requests"
)

type eResp struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

type jResp struct {
	ID     int         `json:"id"`
	Result int         `json:"result"`
	Error  interface{} `json:"error"`
}

type jReq struct {
	ID     int      `json:"id"`
	Method string   `json:"method"`
	Params []AddArg `json:"params"`
}

type Add struct{}
type AddArg struct {
	A int `json:"A"`
	B int `json:"B"`
}

func (a Add) Add(arg *AddArg, reply *int) error {
	*reply = arg.A + arg.B
	return nil
}

func allowLocal(h handler.Handler, path string) {
	allow := make(map[string][]*net.IPNet)
	_, ipNet, _ := net.ParseCIDR("192.0.2.1/32")
	allow[path] = []*net.IPNet{ipNet}
	h.SetAllow(allow)
}

func TestRoot(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := handler.New(logger.New(fixtures.LogCategory), rpc.NewServer(), nil, uint64(5))

	req := httptest.NewRequest("GET", "http://not.found", nil)
	w := httptest.NewRecorder()
	h.Root(w, req)

	resp := w.Result()
	var j eResp
	_ = json.NewDecoder(resp.Body).Decode(&j)

	assert.Equal(t, "not found", j.Error, "wrong response")
	assert.Equal(t, http.StatusNotFound, j.Code, "wrong http code")
}

func TestRPC(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	s := rpc.NewServer()
	_ = s.Register(Add{})

	h := handler.New(logger.New(fixtures.LogCategory), s, nil, uint64(5))

	add := AddArg{
		A: 1,
		B: 2,
	}
	data, _ := json.Marshal(jReq{
		ID:     5,
		Method: "Add.Add",
		Params: []AddArg{add},
	})

	req := httptest.NewRequest("POST", "http://not.exist", bytes.NewReader(data))
	w := httptest.NewRecorder()
	h.RPC(w, req)

	resp := w.Result()
	var j jResp
	_ = json.NewDecoder(resp.Body).Decode(&j)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "wrong status code")
	assert.Equal(t, add.A+add.B, j.Result, "wrong result")
	assert.Nil(t, j.Error, "wrong error")
}

func TestRPCWhenWrongHTTPMethod(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := handler.New(logger.New(fixtures.LogCategory), rpc.NewServer(), nil, uint64(5))

	req := httptest.NewRequest("GET", "http://not.exist", nil)
	w := httptest.NewRecorder()
	h.RPC(w, req)

	var j eResp
	_ = json.NewDecoder(w.Result().Body).Decode(&j)
	assert.Equal(t, notAllowed, j.Error, "wrong method")
}

func TestRPCWhenTooManyConnections(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := handler.New(logger.New(fixtures.LogCategory), rpc.NewServer(), nil, uint64(0))

	req := httptest.NewRequest("POST", "http://not.exist", nil)
	w := httptest.NewRecorder()
	h.RPC(w, req)

	var j eResp
	_ = json.NewDecoder(w.Result().Body).Decode(&j)
	assert.Equal(t, tooManyRequests, j.Error, "wrong limit")
}

func TestRPCWhenServeError(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := handler.New(logger.New(fixtures.LogCategory), rpc.NewServer(), nil, uint64(5))

	data, _ := json.Marshal(jReq{})

	req := httptest.NewRequest("POST", "http://not.exist", bytes.NewReader(data))
	w := httptest.NewRecorder()
	h.RPC(w, req)

	b, _ := ioutil.ReadAll(w.Result().Body)
	assert.Contains(t, string(b), "internal server error", "wrong response")
}

func TestDetails(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	info := mocks.NewMockInformer(ctl)
	info.EXPECT().Info(gomock.Any(), gomock.Any()).DoAndReturn(func(_ *node.InfoArguments, reply *node.InfoReply) error {
		reply.Chain = "testing"
		reply.Version = "1.0"
		return nil
	}).Times(1)

	h := handler.New(logger.New(fixtures.LogCategory), rpc.NewServer(), info, uint64(5))
	allowLocal(h, "details")

	req := httptest.NewRequest("GET", "http://test.com", nil)
	w := httptest.NewRecorder()
	h.Details(w, req)

	var reply node.InfoReply
	_ = json.NewDecoder(w.Result().Body).Decode(&reply)
	assert.Equal(t, "testing", reply.Chain, "wrong chain")
	assert.Equal(t, "1.0", reply.Version, "wrong version")
}

func TestDetailsWhenNotAllow(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := handler.New(logger.New(fixtures.LogCategory), rpc.NewServer(), nil, uint64(5))

	req := httptest.NewRequest("GET", "http://test.com", nil)
	w := httptest.NewRecorder()
	h.Details(w, req)

	var j eResp
	_ = json.NewDecoder(w.Result().Body).Decode(&j)
	assert.Equal(t, "forbidden", j.Error, "wrong not allow")
}

func TestDetailsWhenWrongHTTPMethod(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := handler.New(logger.New(fixtures.LogCategory), rpc.NewServer(), nil, uint64(5))

	req := httptest.NewRequest("POST", "http://not.exist", nil)
	w := httptest.NewRecorder()
	h.Details(w, req)

	var j eResp
	_ = json.NewDecoder(w.Result().Body).Decode(&j)
	assert.Equal(t, notAllowed, j.Error, "wrong method")
}

func TestConnections(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := handler.New(logger.New(fixtures.LogCategory), rpc.NewServer(), nil, uint64(1))
	allowLocal(h, "connections")

	req := httptest.NewRequest("GET", "http://test.com", nil)
	w := httptest.NewRecorder()
	h.Connections(w, req)

	b, _ := ioutil.ReadAll(w.Result().Body)
	assert.Contains(t, string(b), `"connections":1`, "wrong response")
}

func TestConnectionsWhenTooManyConnections(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	h := handler.New(logger.New(fixtures.LogCategory), rpc.NewServer(), nil, uint64(0))
	allowLocal(h, "connections")

	req := httptest.NewRequest("GET", "http://not.exist", nil)
	w := httptest.NewRecorder()
	h.Connections(w, req)

	var j eResp
	_ = json.NewDecoder(w.Result().Body).Decode(&j)
	assert.Equal(t, tooManyRequests, j.Error, "wrong limit")
}
