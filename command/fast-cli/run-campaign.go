// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/urfave/cli"

	"github.com/bitmark-inc/fastledger/rpc/crowdfund"
	"github.com/bitmark-inc/fastledger/rpc/distribution"
	"github.com/bitmark-inc/fastledger/rpc/fast"
	"github.com/bitmark-inc/fastledger/rpc/request"
)

func runCreateCrowdfund(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)
	if err := requireSender(m); nil != err {
		return err
	}
	entity, err := parseAccount("entity", c.String("entity"))
	if nil != err {
		return err
	}
	token, err := parseAccount("token", c.String("token"))
	if nil != err {
		return err
	}
	beneficiary, err := parseAccount("beneficiary", c.String("beneficiary"))
	if nil != err {
		return err
	}

	arguments := &fast.CreateCrowdfundArguments{
		Caller:      m.caller,
		Entity:      entity,
		Token:       token,
		Beneficiary: beneficiary,
		Reference:   c.String("reference"),
		Cap:         c.Uint64("cap"),
	}
	var reply fast.AddressReply
	return call(c, "Fast.CreateCrowdfund", arguments, &reply)
}

func runPledge(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)
	if err := requireSender(m); nil != err {
		return err
	}
	entity, err := parseAccount("entity", c.String("entity"))
	if nil != err {
		return err
	}
	campaign, err := parseAccount("campaign", c.String("campaign"))
	if nil != err {
		return err
	}
	amount, err := requireAmount(c)
	if nil != err {
		return err
	}

	arguments := &crowdfund.PledgeArguments{
		Caller: m.caller,
		Target: crowdfund.Target{
			Fast:      entity,
			Crowdfund: campaign,
		},
		Amount: amount,
	}
	var reply request.Done
	return call(c, "Crowdfund.Pledge", arguments, &reply)
}

func runCreateDistribution(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)
	if err := requireSender(m); nil != err {
		return err
	}
	entity, err := parseAccount("entity", c.String("entity"))
	if nil != err {
		return err
	}
	token, err := parseAccount("token", c.String("token"))
	if nil != err {
		return err
	}
	amount, err := requireAmount(c)
	if nil != err {
		return err
	}

	arguments := &fast.CreateDistributionArguments{
		Caller:     m.caller,
		Entity:     entity,
		Token:      token,
		Total:      amount,
		BlockLatch: c.Uint64("block-latch"),
		Reference:  c.String("reference"),
	}
	var reply fast.AddressReply
	return call(c, "Fast.CreateDistribution", arguments, &reply)
}

func runWithdraw(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)
	if err := requireSender(m); nil != err {
		return err
	}
	entity, err := parseAccount("entity", c.String("entity"))
	if nil != err {
		return err
	}
	campaign, err := parseAccount("campaign", c.String("campaign"))
	if nil != err {
		return err
	}
	beneficiary, err := parseAccount("beneficiary", c.String("beneficiary"))
	if nil != err {
		return err
	}

	arguments := &distribution.WithdrawArguments{
		Caller: m.caller,
		Target: distribution.Target{
			Fast:         entity,
			Distribution: campaign,
		},
		Beneficiary: beneficiary,
	}
	var reply request.Done
	return call(c, "Distribution.Withdraw", arguments, &reply)
}
