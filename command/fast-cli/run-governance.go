// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/fastledger/rpc/request"
)

// entity and account from the command flags
func accountArguments(c *cli.Context) (*request.AccountArguments, error) {
	m := c.App.Metadata["config"].(*metadata)

	entity, err := parseAccount("entity", c.String("entity"))
	if nil != err {
		return nil, err
	}
	a, err := parseAccount("account", c.String("account"))
	if nil != err {
		return nil, err
	}
	return &request.AccountArguments{
		Caller:  m.caller,
		Entity:  entity,
		Account: a,
	}, nil
}

func runMembership(c *cli.Context) error {
	service, err := serviceName(c.String("service"))
	if nil != err {
		return err
	}
	arguments, err := accountArguments(c)
	if nil != err {
		return err
	}
	var reply request.MembershipReply
	return call(c, service+".Membership", arguments, &reply)
}

func runChangeMember(method string) cli.ActionFunc {
	return func(c *cli.Context) error {
		m := c.App.Metadata["config"].(*metadata)
		if err := requireSender(m); nil != err {
			return err
		}
		service, err := serviceName(c.String("service"))
		if nil != err {
			return err
		}
		arguments, err := accountArguments(c)
		if nil != err {
			return err
		}
		var reply request.Done
		return call(c, service+"."+method, arguments, &reply)
	}
}

func runChangeGovernor(method string) cli.ActionFunc {
	return func(c *cli.Context) error {
		m := c.App.Metadata["config"].(*metadata)
		if err := requireSender(m); nil != err {
			return err
		}
		arguments, err := accountArguments(c)
		if nil != err {
			return err
		}
		var reply request.Done
		return call(c, "Fast."+method, arguments, &reply)
	}
}

func runList(method string) cli.ActionFunc {
	return func(c *cli.Context) error {
		service, err := serviceName(c.String("service"))
		if nil != err {
			return err
		}
		entity, err := parseAccount("entity", c.String("entity"))
		if nil != err {
			return err
		}
		arguments := &request.ListArguments{
			Entity: entity,
			Page: request.Page{
				Offset: c.Uint64("start"),
				Count:  c.Int("count"),
			},
		}
		var reply request.PageReply
		return call(c, service+"."+method, arguments, &reply)
	}
}
