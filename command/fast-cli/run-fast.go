// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/fastledger/rpc/fast"
	"github.com/bitmark-inc/fastledger/rpc/request"
)

func runCreate(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)
	if err := requireSender(m); nil != err {
		return err
	}

	issuer, err := parseAccount("issuer", c.String("issuer"))
	if nil != err {
		return err
	}
	marketplace, err := parseAccount("marketplace", c.String("marketplace"))
	if nil != err {
		return err
	}

	decimals := c.Int("decimals")
	if decimals < 0 || decimals > 255 {
		return fmt.Errorf("invalid decimals: %d", decimals)
	}

	arguments := &fast.CreateArguments{
		Caller:         m.caller,
		Issuer:         issuer,
		Marketplace:    marketplace,
		Name:           c.String("name"),
		Symbol:         c.String("symbol"),
		Decimals:       uint8(decimals),
		HasFixedSupply: c.Bool("fixed-supply"),
		IsSemiPublic:   c.Bool("semi-public"),
	}
	if "" == arguments.Name || "" == arguments.Symbol {
		return fmt.Errorf("name and symbol are required")
	}

	var reply fast.AddressReply
	return call(c, "Fast.Create", arguments, &reply)
}

func runDetails(c *cli.Context) error {
	entity, err := parseAccount("entity", c.String("entity"))
	if nil != err {
		return err
	}
	var reply fast.DetailsReply
	return call(c, "Fast.Details", &fast.DetailsArguments{Entity: entity}, &reply)
}

func runAmount(method string) cli.ActionFunc {
	return func(c *cli.Context) error {
		m := c.App.Metadata["config"].(*metadata)
		if err := requireSender(m); nil != err {
			return err
		}
		entity, err := parseAccount("entity", c.String("entity"))
		if nil != err {
			return err
		}
		amount, err := requireAmount(c)
		if nil != err {
			return err
		}
		arguments := &request.AmountArguments{
			Caller:    m.caller,
			Entity:    entity,
			Amount:    amount,
			Reference: c.String("reference"),
		}
		var reply request.Done
		return call(c, "Fast."+method, arguments, &reply)
	}
}

func runTransfer(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)
	if err := requireSender(m); nil != err {
		return err
	}
	entity, err := parseAccount("entity", c.String("entity"))
	if nil != err {
		return err
	}
	from, err := parseOptionalAccount("from", c.String("from"))
	if nil != err {
		return err
	}
	to, err := parseAccount("to", c.String("to"))
	if nil != err {
		return err
	}
	amount, err := requireAmount(c)
	if nil != err {
		return err
	}

	arguments := &fast.TransferArguments{
		Caller:    m.caller,
		Entity:    entity,
		From:      from,
		To:        to,
		Amount:    amount,
		Reference: c.String("reference"),
	}
	var reply request.Done
	return call(c, "Fast.Transfer", arguments, &reply)
}

func runApprove(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)
	if err := requireSender(m); nil != err {
		return err
	}
	a, err := accountArguments(c)
	if nil != err {
		return err
	}
	amount, err := requireAmount(c)
	if nil != err {
		return err
	}

	arguments := &fast.ApproveArguments{
		Caller:  a.Caller,
		Entity:  a.Entity,
		Spender: a.Account,
		Amount:  amount,
	}
	var reply request.Done
	return call(c, "Fast.Approve", arguments, &reply)
}

func runBalance(c *cli.Context) error {
	a, err := accountArguments(c)
	if nil != err {
		return err
	}
	var reply fast.AmountReply
	return call(c, "Fast.Balance", &fast.BalanceArguments{Entity: a.Entity, Holder: a.Account}, &reply)
}

func runRestriction(c *cli.Context) error {
	entity, err := parseAccount("entity", c.String("entity"))
	if nil != err {
		return err
	}
	from, err := parseAccount("from", c.String("from"))
	if nil != err {
		return err
	}
	to, err := parseAccount("to", c.String("to"))
	if nil != err {
		return err
	}

	arguments := &fast.RestrictionArguments{
		Entity: entity,
		From:   from,
		To:     to,
		Amount: c.Uint64("amount"),
	}
	var reply fast.RestrictionReply
	return call(c, "Fast.Restriction", arguments, &reply)
}

func runProofs(c *cli.Context) error {
	entity, err := parseAccount("entity", c.String("entity"))
	if nil != err {
		return err
	}
	involvee, err := parseOptionalAccount("involvee", c.String("involvee"))
	if nil != err {
		return err
	}

	arguments := &fast.TransferProofsArguments{
		Entity:   entity,
		Involvee: involvee,
		Page: request.Page{
			Offset: c.Uint64("start"),
			Count:  c.Int("count"),
		},
	}
	var reply fast.TransferProofsReply
	return call(c, "Fast.TransferProofs", arguments, &reply)
}
