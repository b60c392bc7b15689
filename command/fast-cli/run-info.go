// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/fastledger/command/fast-cli/rpccalls"
)

func runInfo(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	info, err := client.GetInfo()
	if nil != err {
		return err
	}

	return printJson(m.w, info)
}

func runCall(c *cli.Context) error {

	m := c.App.Metadata["config"].(*metadata)

	method := c.String("method")
	if "" == method {
		return fmt.Errorf("method is required")
	}

	params := json.RawMessage(c.String("params"))
	if !json.Valid(params) {
		return fmt.Errorf("params: %q is not valid JSON", params)
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	reply, err := client.Raw(method, params)
	if nil != err {
		return err
	}

	return printJson(m.w, reply)
}
