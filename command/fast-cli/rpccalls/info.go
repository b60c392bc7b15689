// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"encoding/json"

	"github.com/bitmark-inc/fastledger/rpc/node"
)

// GetInfo - request status from fastd
func (c *Client) GetInfo() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := c.Call("Node.Info", node.InfoArguments{}, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

// Raw - call any method with JSON encoded parameters
func (c *Client) Raw(method string, params json.RawMessage) (json.RawMessage, error) {
	var reply json.RawMessage
	if err := c.Call(method, params, &reply); err != nil {
		return nil, err
	}
	return reply, nil
}
