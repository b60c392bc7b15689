// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package handler - HTTP access to the JSON-RPC services
package handler

import (
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/rpc"
	"net/rpc/jsonrpc"

	"github.com/bitmark-inc/fastledger/counter"
	"github.com/bitmark-inc/fastledger/rpc/node"
	"github.com/bitmark-inc/logger"
)

// Informer - source of the node details
type Informer interface {
	Info(*node.InfoArguments, *node.InfoReply) error
}

// Handler - HTTP endpoints
type Handler interface {
	Root(http.ResponseWriter, *http.Request)
	RPC(http.ResponseWriter, *http.Request)
	Details(http.ResponseWriter, *http.Request)
	Connections(http.ResponseWriter, *http.Request)
	SetAllow(map[string][]*net.IPNet)
}

type handler struct {
	log                *logger.L
	server             *rpc.Server
	info               Informer
	allow              map[string][]*net.IPNet
	count              counter.Counter
	maximumConnections uint64
}

// New - create the HTTP handlers
func New(log *logger.L, server *rpc.Server, info Informer, maximumConnections uint64) Handler {
	return &handler{
		log:                log,
		server:             server,
		info:               info,
		allow:              make(map[string][]*net.IPNet),
		maximumConnections: maximumConnections,
	}
}

// SetAllow - networks permitted for each restricted path
func (h *handler) SetAllow(allow map[string][]*net.IPNet) {
	h.allow = allow
}

// connection - adapt an HTTP request body and response to an RPC codec
type connection struct {
	in  io.Reader
	out io.Writer
}

func (c *connection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}

func (c *connection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}

func (c *connection) Close() error {
	return nil
}

// Root - anything not matched
func (h *handler) Root(w http.ResponseWriter, _ *http.Request) {
	sendNotFound(w)
}

// RPC - one JSON-RPC request per POST
func (h *handler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.count.IncrementBelow(h.maximumConnections) {
		sendTooManyRequests(w)
		return
	}
	defer h.count.Decrement()

	codec := jsonrpc.NewServerCodec(&connection{in: r.Body, out: w})
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	err := h.server.ServeRequest(codec)
	if nil != err {
		h.log.Warnf("serve request error: %s", err)
		sendInternalServerError(w)
		return
	}
}

// Details - Node.Info for a GET from an allowed network
func (h *handler) Details(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, "details") {
		return
	}
	defer h.count.Decrement()

	var reply node.InfoReply
	if err := h.info.Info(&node.InfoArguments{}, &reply); nil != err {
		sendInternalServerError(w)
		return
	}
	sendReply(w, reply)
}

// Connections - number of HTTP requests in progress
func (h *handler) Connections(w http.ResponseWriter, r *http.Request) {
	if !h.guard(w, r, "connections") {
		return
	}
	defer h.count.Decrement()

	sendReply(w, struct {
		Connections uint64 `json:"connections"`
	}{
		Connections: h.count.Uint64(),
	})
}

// guard - method, access list and connection limit
//
// on true the caller must decrement the connection count
func (h *handler) guard(w http.ResponseWriter, r *http.Request, path string) bool {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return false
	}
	if !h.allowed(r.RemoteAddr, path) {
		h.log.Warnf("deny access: %q", r.RemoteAddr)
		sendForbidden(w)
		return false
	}
	if !h.count.IncrementBelow(h.maximumConnections) {
		sendTooManyRequests(w)
		return false
	}
	return true
}

func (h *handler) allowed(remoteAddr string, path string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if nil != err {
		return false
	}
	ip := net.ParseIP(host)
	if nil == ip {
		return false
	}
	for _, network := range h.allow[path] {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

// send an JSON encoded reply
func sendReply(w http.ResponseWriter, data interface{}) {
	text, err := json.Marshal(data)
	if nil != err {
		sendInternalServerError(w)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(text)
}

func sendNotFound(w http.ResponseWriter) {
	sendError(w, "not found", http.StatusNotFound)
}

func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, "method not allowed", http.StatusMethodNotAllowed)
}

func sendForbidden(w http.ResponseWriter) {
	sendError(w, "forbidden", http.StatusForbidden)
}

func sendTooManyRequests(w http.ResponseWriter) {
	sendError(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
}

func sendInternalServerError(w http.ResponseWriter) {
	sendError(w, "internal server error", http.StatusInternalServerError)
}

// to compose JSON error messages
type eType struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// output an error with a JSON body
func sendError(w http.ResponseWriter, message string, code int) {
	text, err := json.Marshal(eType{
		Code:  code,
		Error: message,
	})
	if nil != err {
		http.Error(w, `{"code":500,"error":"Internal Server Error"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = w.Write(text)
}
