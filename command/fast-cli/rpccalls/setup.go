// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpccalls - JSON-RPC client side of the fastd services
package rpccalls

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/rpc"
	"net/rpc/jsonrpc"
	"time"
)

const dialTimeout = 10 * time.Second

// Client - one TLS connection to a fastd
type Client struct {
	conn    net.Conn
	rpc     *rpc.Client
	verbose bool
	out     io.Writer // trace output when verbose
}

// NewClient - connect to a fastd at "host:port"
//
// the daemon uses a self-signed certificate so it is not verified
func NewClient(connect string, verbose bool, out io.Writer) (*Client, error) {
	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", connect, &tls.Config{
		InsecureSkipVerify: true,
	})
	if nil != err {
		return nil, err
	}

	return &Client{
		conn:    conn,
		rpc:     jsonrpc.NewClient(conn),
		verbose: verbose,
		out:     out,
	}, nil
}

// Close - drop the connection
func (c *Client) Close() {
	_ = c.rpc.Close()
}

// Call - invoke one method, tracing arguments and reply when verbose
func (c *Client) Call(method string, arguments interface{}, reply interface{}) error {
	c.trace(method, "arguments", arguments)
	err := c.rpc.Call(method, arguments, reply)
	if nil != err {
		c.trace(method, "error", err.Error())
		return err
	}
	c.trace(method, "reply", reply)
	return nil
}

func (c *Client) trace(method string, kind string, item interface{}) {
	if !c.verbose || nil == c.out {
		return
	}
	b, err := json.MarshalIndent(item, "", "  ")
	if nil != err {
		fmt.Fprintf(c.out, "%s %s: %v\n", method, kind, item)
		return
	}
	fmt.Fprintf(c.out, "%s %s:\n%s\n", method, kind, b)
}
