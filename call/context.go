// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package call

import (
	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/storage"
	"github.com/bitmark-inc/logger"
)

// Event - a state change notification
type Event struct {
	Source account.Account `json:"source"`
	Name   string          `json:"name"`
	Block  uint64          `json:"block"`
	Data   interface{}     `json:"data"`
}

// Sink - receives the events of committed operations
type Sink interface {
	Publish(Event)
}

type eventBuffer struct {
	events []Event
}

// Context - the environment of one operation
type Context struct {
	trx    storage.Transaction
	sender account.Account
	block  uint64
	buffer *eventBuffer
	log    *logger.L
}

// NewContext - context for a transaction already begun
func NewContext(trx storage.Transaction, sender account.Account, block uint64, log *logger.L) *Context {
	return &Context{
		trx:    trx,
		sender: sender,
		block:  block,
		buffer: &eventBuffer{},
		log:    log,
	}
}

// Trx - the storage transaction
func (c *Context) Trx() storage.Transaction {
	return c.trx
}

// Sender - the effective caller
func (c *Context) Sender() account.Account {
	return c.sender
}

// Block - number of the block being produced
func (c *Context) Block() uint64 {
	return c.block
}

// Log - logger channel
func (c *Context) Log() *logger.L {
	return c.log
}

// As - nested call made by an entity on its own behalf
//
// shares the transaction and event buffer
func (c *Context) As(caller account.Account) *Context {
	return &Context{
		trx:    c.trx,
		sender: caller,
		block:  c.block,
		buffer: c.buffer,
		log:    c.log,
	}
}

// Emit - buffer an event until commit
func (c *Context) Emit(source account.Account, name string, data interface{}) {
	c.buffer.events = append(c.buffer.events, Event{
		Source: source,
		Name:   name,
		Block:  c.block,
		Data:   data,
	})
}

// Events - events buffered so far
func (c *Context) Events() []Event {
	return c.buffer.events
}
