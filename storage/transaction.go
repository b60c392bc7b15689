// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/logger"
)

// Transaction - staged read/write access to the pools
type Transaction interface {
	Get(*PoolHandle, []byte) []byte
	GetN(*PoolHandle, []byte) (uint64, bool)
	Has(*PoolHandle, []byte) bool
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
	Delete(*PoolHandle, []byte)
	Commit() error
	Abort()
}

type transaction struct {
	store    *Store
	batch    *leveldb.Batch
	staged   *overlay
	finished bool
}

// the store must already be locked
func newTransaction(store *Store) Transaction {
	return &transaction{
		store:  store,
		batch:  new(leveldb.Batch),
		staged: newOverlay(),
	}
}

func (t *transaction) check() {
	if t.finished {
		logger.Panic("storage: transaction already finished")
	}
	if nil == t.store.dataAccess {
		logger.Panic("storage: database is closed")
	}
}

// Get - read a value for a given key
//
// returns nil if the key does not exist
func (t *transaction) Get(p *PoolHandle, key []byte) []byte {
	t.check()
	k := p.prefixKey(key)

	switch value, state := t.staged.lookup(k); state {
	case written:
		return value
	case deleted:
		return nil
	}

	value, err := t.store.dataAccess.Get(k)
	if leveldb.ErrNotFound == err {
		return nil
	}
	logger.PanicIfError("storage.Get", err)
	return value
}

// GetN - read a record and decode first 8 bytes as big endian uint64
//
// second parameter is false if record was not found
// panics if not 8 (or more) bytes in the record
func (t *transaction) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	buffer := t.Get(p, key)
	if nil == buffer {
		return 0, false
	}
	if len(buffer) < 8 {
		logger.Panicf("storage.GetN truncated record for: %s: %x", p.name, key)
	}
	return binary.BigEndian.Uint64(buffer[:8]), true
}

// Has - check if a key exists
func (t *transaction) Has(p *PoolHandle, key []byte) bool {
	t.check()
	k := p.prefixKey(key)

	if _, state := t.staged.lookup(k); unstaged != state {
		return written == state
	}

	found, err := t.store.dataAccess.Has(k)
	logger.PanicIfError("storage.Has", err)
	return found
}

// Put - stage a key/value bytes pair
func (t *transaction) Put(p *PoolHandle, key []byte, value []byte) {
	t.check()
	k := p.prefixKey(key)
	v := make([]byte, len(value))
	copy(v, value)

	t.batch.Put(k, v)
	t.staged.put(k, v)
}

// PutN - stage a big endian uint64 value
func (t *transaction) PutN(p *PoolHandle, key []byte, value uint64) {
	t.Put(p, key, Uint64Bytes(value))
}

// Delete - stage removal of a key
func (t *transaction) Delete(p *PoolHandle, key []byte) {
	t.check()
	k := p.prefixKey(key)

	t.batch.Delete(k)
	t.staged.remove(k)
}

// Commit - write all staged data and release the store
func (t *transaction) Commit() error {
	if t.finished {
		return fault.ErrTransactionFinished
	}
	defer t.finish()

	if 0 == t.batch.Len() {
		return nil
	}
	return t.store.dataAccess.Write(t.batch)
}

// Abort - discard all staged data and release the store
//
// safe to call after Commit
func (t *transaction) Abort() {
	if t.finished {
		return
	}
	t.finish()
}

func (t *transaction) finish() {
	t.finished = true
	t.batch.Reset()
	t.staged.reset()
	t.store.Unlock()
}
