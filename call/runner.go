// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package call

import (
	"github.com/google/uuid"

	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/forwarder"
	"github.com/bitmark-inc/fastledger/storage"
	"github.com/bitmark-inc/logger"
)

// Request - who is calling
//
// Forwarded is the original caller when Sender is a trusted forwarder
type Request struct {
	Sender    account.Account
	Forwarded []byte
}

// Operation - the body of a unit of work
type Operation func(*Context) error

// Runner - executes operations against a store
type Runner struct {
	store   *storage.Store
	trusted forwarder.Trusted
	sink    Sink
	log     *logger.L
}

// NewRunner - create a runner
//
// trusted and sink may be nil
func NewRunner(store *storage.Store, trusted forwarder.Trusted, sink Sink) *Runner {
	return &Runner{
		store:   store,
		trusted: trusted,
		sink:    sink,
		log:     logger.New("call"),
	}
}

// Store - the underlying store
func (r *Runner) Store() *storage.Store {
	return r.store
}

// Execute - run one state changing operation atomically
func (r *Runner) Execute(request Request, name string, operation Operation) error {
	id := uuid.New()

	caller, err := forwarder.Resolve(r.trusted, request.Sender, request.Forwarded)
	if nil != err {
		r.log.Warnf("%s: %s: sender: %s  resolve error: %s", id, name, request.Sender, err)
		return err
	}

	trx := r.store.Begin()
	defer trx.Abort()

	block := storage.BlockHeight(trx) + 1
	ctx := NewContext(trx, caller, block, r.log)

	r.log.Debugf("%s: %s: caller: %s  block: %d", id, name, caller, block)

	err = operation(ctx)
	if nil != err {
		r.log.Infof("%s: %s: caller: %s  rejected: %s", id, name, caller, err)
		return err
	}

	storage.SetBlockHeight(trx, block)
	err = trx.Commit()
	if nil != err {
		r.log.Errorf("%s: %s: commit error: %s", id, name, err)
		return err
	}

	events := ctx.Events()
	r.log.Infof("%s: %s: caller: %s  block: %d  events: %d", id, name, caller, block, len(events))

	if nil != r.sink {
		for _, e := range events {
			r.sink.Publish(e)
		}
	}
	return nil
}

// View - run a read only operation, nothing is ever written
func (r *Runner) View(sender account.Account, operation Operation) error {
	trx := r.store.Begin()
	defer trx.Abort()

	ctx := NewContext(trx, sender, storage.BlockHeight(trx), r.log)
	return operation(ctx)
}
