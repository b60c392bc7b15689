// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/fastledger/rpc/request"
)

type metadata struct {
	connect string
	caller  request.Caller
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp()
	err := app.Run(os.Args)
	if nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

var (
	entityFlag = cli.StringFlag{
		Name:  "entity, e",
		Value: "",
		Usage: "*entity address `ACCOUNT`",
	}
	accountFlag = cli.StringFlag{
		Name:  "account, a",
		Value: "",
		Usage: "*address `ACCOUNT`",
	}
	serviceFlag = cli.StringFlag{
		Name:  "service, s",
		Value: "fast",
		Usage: " entity type `KIND` [issuer|marketplace|fast]",
	}
	amountFlag = cli.Uint64Flag{
		Name:  "amount, n",
		Value: 0,
		Usage: "*amount `NUMBER`",
	}
	referenceFlag = cli.StringFlag{
		Name:  "reference, r",
		Value: "",
		Usage: " free text `STRING`",
	}
	tokenFlag = cli.StringFlag{
		Name:  "token",
		Value: "",
		Usage: "*value token address `ACCOUNT`",
	}
	campaignFlag = cli.StringFlag{
		Name:  "campaign",
		Value: "",
		Usage: "*crowdfund or distribution address `ACCOUNT`",
	}
	beneficiaryFlag = cli.StringFlag{
		Name:  "beneficiary, b",
		Value: "",
		Usage: "*beneficiary `ACCOUNT`",
	}
	startFlag = cli.Uint64Flag{
		Name:  "start",
		Value: 0,
		Usage: " start point `COUNT`",
	}
	countFlag = cli.IntFlag{
		Name:  "count, c",
		Value: 20,
		Usage: " maximum records to output `COUNT`",
	}
)

func newApp() *cli.App {

	app := cli.NewApp()
	app.Name = "fast-cli"
	app.Usage = "operate a fastd ledger"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2130",
			Usage:  " fastd host/IP and port, `HOST:PORT`",
			EnvVar: "FASTD_CONNECT",
		},
		cli.StringFlag{
			Name:   "sender, s",
			Value:  "",
			Usage:  " account making state changes `ACCOUNT`",
			EnvVar: "FASTD_SENDER",
		},
		cli.StringFlag{
			Name:  "forwarded, f",
			Value: "",
			Usage: " original caller when sender is a trusted forwarder `HEX`",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "info",
			Usage:  "display fastd status",
			Action: runInfo,
		},
		{
			Name:      "call",
			Usage:     "call any method with JSON parameters",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "method, m",
					Value: "",
					Usage: "*service method `NAME` e.g. Fast.Details",
				},
				cli.StringFlag{
					Name:  "params, p",
					Value: "{}",
					Usage: " parameters `JSON`",
				},
			},
			Action: runCall,
		},
		{
			Name:      "membership",
			Usage:     "roles of an account within an entity",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{serviceFlag, entityFlag, accountFlag},
			Action:    runMembership,
		},
		{
			Name:      "add-member",
			Usage:     "add a member to an entity",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{serviceFlag, entityFlag, accountFlag},
			Action:    runChangeMember("AddMember"),
		},
		{
			Name:      "remove-member",
			Usage:     "remove a member from an entity",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{serviceFlag, entityFlag, accountFlag},
			Action:    runChangeMember("RemoveMember"),
		},
		{
			Name:      "members",
			Usage:     "list the members of an entity",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{serviceFlag, entityFlag, startFlag, countFlag},
			Action:    runList("Members"),
		},
		{
			Name:      "add-governor",
			Usage:     "add a governor to a FAST",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{entityFlag, accountFlag},
			Action:    runChangeGovernor("AddGovernor"),
		},
		{
			Name:      "remove-governor",
			Usage:     "remove a governor from a FAST",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{entityFlag, accountFlag},
			Action:    runChangeGovernor("RemoveGovernor"),
		},
		{
			Name:      "create",
			Usage:     "deploy a new FAST",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "issuer, i",
					Value: "",
					Usage: "*issuer address `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "marketplace, m",
					Value: "",
					Usage: "*marketplace address `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "name",
					Value: "",
					Usage: "*token name `STRING`",
				},
				cli.StringFlag{
					Name:  "symbol",
					Value: "",
					Usage: "*unique token symbol `STRING`",
				},
				cli.IntFlag{
					Name:  "decimals, d",
					Value: 0,
					Usage: " decimal places `NUMBER`",
				},
				cli.BoolFlag{
					Name:  "fixed-supply",
					Usage: " supply can only be minted once",
				},
				cli.BoolFlag{
					Name:  "semi-public",
					Usage: " marketplace members may receive tokens",
				},
			},
			Action: runCreate,
		},
		{
			Name:      "details",
			Usage:     "describe a FAST",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{entityFlag},
			Action:    runDetails,
		},
		{
			Name:      "mint",
			Usage:     "mint new tokens into the reserve",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{entityFlag, amountFlag, referenceFlag},
			Action:    runAmount("Mint"),
		},
		{
			Name:      "burn",
			Usage:     "burn tokens from the reserve",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{entityFlag, amountFlag, referenceFlag},
			Action:    runAmount("Burn"),
		},
		{
			Name:      "credits",
			Usage:     "add transfer credits",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{entityFlag, amountFlag},
			Action:    runAmount("AddTransferCredits"),
		},
		{
			Name:      "transfer",
			Usage:     "transfer tokens",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				entityFlag,
				cli.StringFlag{
					Name:  "from",
					Value: "",
					Usage: " holder when spending an allowance `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "to, t",
					Value: "",
					Usage: "*recipient `ACCOUNT`",
				},
				amountFlag,
				referenceFlag,
			},
			Action: runTransfer,
		},
		{
			Name:      "approve",
			Usage:     "allow a spender to transfer tokens of the sender",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{entityFlag, accountFlag, amountFlag},
			Action:    runApprove,
		},
		{
			Name:      "balance",
			Usage:     "tokens held by an account",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{entityFlag, accountFlag},
			Action:    runBalance,
		},
		{
			Name:      "restriction",
			Usage:     "check whether a transfer would be refused",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				entityFlag,
				cli.StringFlag{
					Name:  "from",
					Value: "",
					Usage: "*sender `ACCOUNT`",
				},
				cli.StringFlag{
					Name:  "to, t",
					Value: "",
					Usage: "*recipient `ACCOUNT`",
				},
				amountFlag,
			},
			Action: runRestriction,
		},
		{
			Name:      "proofs",
			Usage:     "list transfer proofs",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				entityFlag,
				cli.StringFlag{
					Name:  "involvee",
					Value: "",
					Usage: " only transfers from or to `ACCOUNT`",
				},
				startFlag,
				countFlag,
			},
			Action: runProofs,
		},
		{
			Name:      "create-crowdfund",
			Usage:     "deploy a crowdfund for a FAST",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				entityFlag,
				tokenFlag,
				beneficiaryFlag,
				referenceFlag,
				cli.Uint64Flag{
					Name:  "cap",
					Value: 0,
					Usage: " largest collection, 0 is unlimited `NUMBER`",
				},
			},
			Action: runCreateCrowdfund,
		},
		{
			Name:      "pledge",
			Usage:     "pledge value tokens to a crowdfund",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{entityFlag, campaignFlag, amountFlag},
			Action:    runPledge,
		},
		{
			Name:      "create-distribution",
			Usage:     "deploy and fund a distribution for a FAST",
			ArgsUsage: "\n   (* = required)",
			Flags: []cli.Flag{
				entityFlag,
				tokenFlag,
				amountFlag,
				referenceFlag,
				cli.Uint64Flag{
					Name:  "block-latch",
					Value: 0,
					Usage: " block the distribution refers to `NUMBER`",
				},
			},
			Action: runCreateDistribution,
		},
		{
			Name:      "withdraw",
			Usage:     "pay the owings of a distribution beneficiary",
			ArgsUsage: "\n   (* = required)",
			Flags:     []cli.Flag{entityFlag, campaignFlag, beneficiaryFlag},
			Action:    runWithdraw,
		},
		{
			Name:      "version",
			Usage:     "display fast-cli version",
			ArgsUsage: "",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		m := &metadata{
			connect: c.GlobalString("connect"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}

		if s := c.GlobalString("sender"); "" != s {
			sender, err := parseAccount("sender", s)
			if nil != err {
				return err
			}
			m.caller.Sender = sender
		}
		m.caller.Forwarded = c.GlobalString("forwarded")

		if m.verbose {
			fmt.Fprintf(m.e, "connect: %s\n", m.connect)
		}

		c.App.Metadata = map[string]interface{}{
			"config": m,
		}
		return nil
	}

	return app
}
