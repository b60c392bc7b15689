// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/command/fast-cli/rpccalls"
)

func printJson(handle io.Writer, message interface{}) error {

	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

// parse a required address
func parseAccount(name string, s string) (account.Account, error) {
	if "" == strings.TrimSpace(s) {
		return account.Zero, fmt.Errorf("%s is required", name)
	}
	a, err := account.FromString(s)
	if nil != err {
		return account.Zero, fmt.Errorf("%s: %q error: %s", name, s, err)
	}
	return a, nil
}

// parse an optional address
func parseOptionalAccount(name string, s string) (*account.Account, error) {
	if "" == s {
		return nil, nil
	}
	a, err := parseAccount(name, s)
	if nil != err {
		return nil, err
	}
	return &a, nil
}

// map a --service value to the RPC service name
func serviceName(s string) (string, error) {
	switch strings.ToLower(s) {
	case "issuer", "i":
		return "Issuer", nil
	case "marketplace", "market", "m":
		return "Marketplace", nil
	case "fast", "f":
		return "Fast", nil
	default:
		return "", fmt.Errorf("service: %q can only be issuer/marketplace/fast", s)
	}
}

func requireSender(m *metadata) error {
	if m.caller.Sender.IsZero() {
		return fmt.Errorf("sender is required")
	}
	return nil
}

func requireAmount(c *cli.Context) (uint64, error) {
	n := c.Uint64("amount")
	if 0 == n {
		return 0, fmt.Errorf("amount is required")
	}
	return n, nil
}

// connect, run one call and print its reply
func call(c *cli.Context, method string, arguments interface{}, reply interface{}) error {
	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	if err := client.Call(method, arguments, reply); nil != err {
		return err
	}
	return printJson(m.w, reply)
}
