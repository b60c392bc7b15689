// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/fastledger/background"
	"github.com/bitmark-inc/fastledger/call"
	"github.com/bitmark-inc/fastledger/forwarder"
	"github.com/bitmark-inc/fastledger/messagebus"
	"github.com/bitmark-inc/fastledger/mode"
	"github.com/bitmark-inc/fastledger/rpc"
	"github.com/bitmark-inc/fastledger/rpc/server"
	"github.com/bitmark-inc/fastledger/storage"
	"github.com/bitmark-inc/fastledger/valuetoken"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "quiet", HasArg: getoptions.NO_ARGUMENT, Short: 'q'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "config-file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
		{Long: "memory-stats", HasArg: getoptions.NO_ARGUMENT, Short: 'm'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		processSetupCommand(program, []string{"version"})
		return
	}

	if len(options["help"]) > 0 {
		processSetupCommand(program, []string{"help"})
		return
	}

	// these commands do not require the configuration and
	// process data needed for initial setup
	if len(arguments) > 0 && processSetupCommand(program, arguments) {
		return
	}

	if 1 != len(options["config-file"]) {
		exitwithstatus.Message("%s: only one config-file option is required, %d were detected", program, len(options["config-file"]))
	}

	// read options and parse the configuration file
	configurationFile := options["config-file"][0]
	theConfiguration, err := getConfiguration(configurationFile)
	if nil != err {
		exitwithstatus.Message("%s: failed to read configuration from: %q  error: %s", program, configurationFile, err)
	}

	// these commands require the configuration and
	// perform enquiries on the configuration
	if len(arguments) > 0 && processConfigCommand(arguments, theConfiguration) {
		return
	}

	// start logging
	if err = logger.Initialise(theConfiguration.Logging); nil != err {
		exitwithstatus.Message("%s: logger setup failed with error: %s", program, err)
	}
	defer logger.Finalise()

	// create a logger channel for the main program
	log := logger.New("main")
	defer log.Info("finished")
	log.Info("starting…")
	log.Infof("version: %s", version)
	log.Debugf("theConfiguration: %v", theConfiguration)

	// optional PID file
	// use if not running under a supervisor program like daemon(8)
	if "" != theConfiguration.PidFile {
		lockFile, err := os.OpenFile(theConfiguration.PidFile, os.O_WRONLY|os.O_EXCL|os.O_CREATE, os.ModeExclusive|0600)
		if err != nil {
			if os.IsExist(err) {
				exitwithstatus.Message("%s: another instance is already running", program)
			}
			exitwithstatus.Message("%s: PID file: %q creation failed, error: %s", program, theConfiguration.PidFile, err)
		}
		fmt.Fprintf(lockFile, "%d\n", os.Getpid())
		lockFile.Close()
		defer os.Remove(theConfiguration.PidFile)
	}

	// set the initial system mode - before any background tasks are started
	err = mode.Initialise(theConfiguration.Chain)
	if nil != err {
		log.Criticalf("mode initialise error: %s", err)
		exitwithstatus.Message("mode initialise error: %s", err)
	}
	defer mode.Finalise()

	// start a profiling http server
	// this uses the default builtin HTTP handler
	// and is not associated with the normal ClientRPC HTTPS server
	if "" != theConfiguration.ProfileHTTP {
		go func() {
			log.Warnf("profile listener on: %s", theConfiguration.ProfileHTTP)
			err := http.ListenAndServe(theConfiguration.ProfileHTTP, nil)
			exitwithstatus.Message("profile error: %s", err)
		}()
	}

	log.Infof("test mode: %v", mode.IsTesting())
	log.Infof("database: %q", theConfiguration.Database)
	log.Debugf("%s = %#v", "ClientRPC", theConfiguration.ClientRPC)
	log.Debugf("%s = %#v", "HttpsRPC", theConfiguration.HttpsRPC)

	// start the data storage
	log.Info("open storage")
	store, err := storage.Open(theConfiguration.Database.Name, storage.ReadWrite)
	if nil != err {
		log.Criticalf("storage open error: %s", err)
		exitwithstatus.Message("storage open error: %s", err)
	}
	defer store.Close()

	// these commands are allowed to access the internal database
	if len(arguments) > 0 && processDataCommand(arguments, theConfiguration, store) {
		return
	}

	trusted, err := forwarder.ParseList(theConfiguration.TrustedForwarders)
	if nil != err {
		log.Criticalf("trusted forwarders error: %s", err)
		exitwithstatus.Message("trusted forwarders error: %s", err)
	}
	log.Infof("trusted forwarders: %d", trusted.Count())

	bus := messagebus.New(theConfiguration.Events.QueueSize)
	runner := call.NewRunner(store, trusted, bus)

	d, err := bootstrap(logger.New("bootstrap"), runner, &theConfiguration.Bootstrap)
	if nil != err {
		log.Criticalf("bootstrap error: %s", err)
		exitwithstatus.Message("bootstrap error: %s", err)
	}
	log.Infof("issuer: %s  marketplace: %s", d.Issuer, d.Marketplace)

	processes := background.Processes{}
	if theConfiguration.Events.Log {
		processes = append(processes, &eventLogger{
			log: logger.New("events"),
			bus: bus,
		})
	}
	if len(options["memory-stats"]) > 0 {
		processes = append(processes, &memoryStats{
			log: logger.New("memory"),
		})
	}
	tasks := background.Start(processes, nil)
	defer tasks.Stop()

	err = loadKeyPairs(theConfiguration)
	if nil != err {
		log.Criticalf("rpc certificate error: %s", err)
		exitwithstatus.Message("rpc certificate error: %s", err)
	}

	// start up the rpc background processes
	env := server.Environment{
		Chain:   mode.ChainName(),
		Version: version,
		Runner:  runner,
		Bus:     bus,
		Tokens:  valuetoken.Resolver{},
	}
	err = rpc.Initialise(&theConfiguration.ClientRPC, &theConfiguration.HttpsRPC, env)
	if nil != err {
		log.Criticalf("rpc initialise error: %s", err)
		exitwithstatus.Message("rpc initialise error: %s", err)
	}
	defer rpc.Finalise()

	mode.Set(mode.Normal)

	// wait for CTRL-C before shutting down to allow manual testing
	if 0 == len(options["quiet"]) {
		fmt.Printf("\n\nWaiting for CTRL-C (SIGINT) or 'kill <pid>' (SIGTERM)…")
	}

	// turn Signals into channel messages
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	log.Infof("received signal: %v", sig)
	if 0 == len(options["quiet"]) {
		fmt.Printf("\nreceived signal: %v\n", sig)
		fmt.Printf("\nshutting down…\n")
	}

	log.Info("shutting down…")
	mode.Set(mode.Stopped)
}

// replace certificate and key file names with their PEM contents
func loadKeyPairs(options *Configuration) error {
	files := []*string{
		&options.ClientRPC.Certificate,
		&options.ClientRPC.PrivateKey,
	}
	if 0 != len(options.HttpsRPC.Listen) {
		files = append(files, &options.HttpsRPC.Certificate, &options.HttpsRPC.PrivateKey)
	}
	for _, f := range files {
		data, err := os.ReadFile(*f)
		if nil != err {
			return err
		}
		*f = string(data)
	}
	return nil
}
