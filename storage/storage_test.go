// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/storage"
)

var (
	keyOne  = []byte("key-one")
	keyTwo  = []byte("key-two")
	dataOne = []byte("data-one")
	dataTwo = []byte("data-two")
	entityA = []byte("0123456789abcdefghij")
	errTest = errors.New("test abort")
)

func TestReadOwnWrites(t *testing.T) {
	store := setupMemory(t)
	defer store.Close()

	trx := store.Begin()
	defer trx.Abort()

	assert.Nil(t, trx.Get(storage.Pool.TestData, keyOne), "key exists before put")
	assert.False(t, trx.Has(storage.Pool.TestData, keyOne), "has before put")

	trx.Put(storage.Pool.TestData, keyOne, dataOne)
	assert.Equal(t, dataOne, trx.Get(storage.Pool.TestData, keyOne), "staged value not visible")
	assert.True(t, trx.Has(storage.Pool.TestData, keyOne), "staged key not found")

	trx.PutN(storage.Pool.TestData, keyTwo, 42)
	n, found := trx.GetN(storage.Pool.TestData, keyTwo)
	assert.True(t, found, "staged number not found")
	assert.Equal(t, uint64(42), n, "staged number")

	trx.Delete(storage.Pool.TestData, keyOne)
	assert.Nil(t, trx.Get(storage.Pool.TestData, keyOne), "deleted key still visible")
	assert.False(t, trx.Has(storage.Pool.TestData, keyOne), "deleted key still present")
}

func TestCommitAndAbort(t *testing.T) {
	store := setupMemory(t)
	defer store.Close()

	err := store.Update(func(trx storage.Transaction) error {
		trx.Put(storage.Pool.TestData, keyOne, dataOne)
		return nil
	})
	assert.Nil(t, err, "commit")

	err = store.Update(func(trx storage.Transaction) error {
		trx.Put(storage.Pool.TestData, keyTwo, dataTwo)
		trx.Delete(storage.Pool.TestData, keyOne)
		return errTest
	})
	assert.Equal(t, errTest, err, "abort error")

	_ = store.View(func(trx storage.Transaction) error {
		assert.Equal(t, dataOne, trx.Get(storage.Pool.TestData, keyOne), "committed value lost")
		assert.Nil(t, trx.Get(storage.Pool.TestData, keyTwo), "aborted value written")
		return nil
	})

	// deleting a committed key
	err = store.Update(func(trx storage.Transaction) error {
		trx.Delete(storage.Pool.TestData, keyOne)
		assert.False(t, trx.Has(storage.Pool.TestData, keyOne), "deleted key present")
		return nil
	})
	assert.Nil(t, err, "commit delete")

	_ = store.View(func(trx storage.Transaction) error {
		assert.Nil(t, trx.Get(storage.Pool.TestData, keyOne), "deleted value still present")
		return nil
	})
}

func TestCommitTwice(t *testing.T) {
	store := setupMemory(t)
	defer store.Close()

	trx := store.Begin()
	trx.Put(storage.Pool.TestData, keyOne, dataOne)
	assert.Nil(t, trx.Commit(), "first commit")
	assert.Equal(t, fault.ErrTransactionFinished, trx.Commit(), "second commit")
	trx.Abort() // no effect

	// store must be free again
	trx = store.Begin()
	assert.Equal(t, dataOne, trx.Get(storage.Pool.TestData, keyOne), "value lost")
	trx.Abort()
}

func TestOnDisk(t *testing.T) {
	store, err := storage.Open(databaseName("disk"), storage.ReadWrite)
	assert.Nil(t, err, "open")

	err = store.Update(func(trx storage.Transaction) error {
		trx.Put(storage.Pool.TestData, keyOne, dataOne)
		return nil
	})
	assert.Nil(t, err, "commit")
	store.Close()

	store, err = storage.Open(databaseName("disk"), storage.ReadOnly)
	assert.Nil(t, err, "reopen")
	defer store.Close()

	_ = store.View(func(trx storage.Transaction) error {
		assert.Equal(t, dataOne, trx.Get(storage.Pool.TestData, keyOne), "value not persisted")
		return nil
	})
}

func TestRegister(t *testing.T) {
	store := setupMemory(t)
	defer store.Close()

	trx := store.Begin()
	defer trx.Abort()

	assert.False(t, storage.IsInitialised(trx, entityA), "initialised before register")
	assert.Equal(t, fault.ErrNotInitialised, storage.RequireKind(trx, entityA, "fast"), "kind before register")

	assert.Nil(t, storage.Register(trx, entityA, "fast"), "register")
	assert.True(t, storage.IsInitialised(trx, entityA), "not initialised")
	assert.Equal(t, fault.ErrAlreadyInitialised, storage.Register(trx, entityA, "fast"), "second register")

	assert.Nil(t, storage.RegisterFacet(trx, entityA, "ledger"), "register facet")
	assert.True(t, storage.IsFacetInitialised(trx, entityA, "ledger"), "facet not initialised")
	assert.Equal(t, fault.ErrAlreadyInitialised, storage.RegisterFacet(trx, entityA, "ledger"), "second facet register")

	kind, ok := storage.KindOf(trx, entityA)
	assert.True(t, ok, "kind missing")
	assert.Equal(t, "fast", kind, "kind")
	assert.Nil(t, storage.RequireKind(trx, entityA, "fast"), "right kind")
	assert.Equal(t, fault.ErrWrongEntityKind, storage.RequireKind(trx, entityA, "crowdfund"), "wrong kind")
}

func TestLog(t *testing.T) {
	store := setupMemory(t)
	defer store.Close()

	trx := store.Begin()
	defer trx.Abort()

	for i := 0; i < 5; i += 1 {
		n := storage.Append(trx, entityA, "proofs", []byte{byte(i)})
		assert.Equal(t, uint64(i), n, "append index")
	}
	assert.Equal(t, uint64(5), storage.LogLength(trx, entityA, "proofs"), "length")
	assert.Equal(t, uint64(0), storage.LogLength(trx, entityA, "other"), "other log length")

	records, next := storage.LogRange(trx, entityA, "proofs", 1, 10)
	assert.Equal(t, [][]byte{{1}, {2}, {3}, {4}}, records, "tail records")
	assert.Equal(t, uint64(5), next, "tail next")

	records, next = storage.LogRange(trx, entityA, "proofs", 0, 3)
	assert.Equal(t, 3, len(records), "head count")
	assert.Equal(t, uint64(3), next, "head next")

	records, next = storage.LogRange(trx, entityA, "proofs", 7, 2)
	assert.Equal(t, 0, len(records), "past end count")
	assert.Equal(t, uint64(5), next, "past end next")

	records, next = storage.LogRange(trx, entityA, "proofs", 2, ^uint64(0))
	assert.Equal(t, 3, len(records), "overflow count")
	assert.Equal(t, uint64(5), next, "overflow next")
}

func TestSettings(t *testing.T) {
	store := setupMemory(t)
	defer store.Close()

	trx := store.Begin()
	defer trx.Abort()

	holder := []byte("abcdefghij0123456789")

	assert.Nil(t, storage.Setting(trx, entityA, "name"), "unset setting")
	storage.PutSetting(trx, entityA, "name", []byte("FAST"))
	assert.Equal(t, []byte("FAST"), storage.Setting(trx, entityA, "name"), "setting")

	assert.Equal(t, uint64(0), storage.SettingN(trx, entityA, "supply"), "unset counter")
	storage.PutSettingN(trx, entityA, "supply", 99)
	assert.Equal(t, uint64(99), storage.SettingN(trx, entityA, "supply"), "counter")

	assert.False(t, storage.HasAmount(trx, entityA, "pledge", holder), "unset amount")
	storage.PutAmount(trx, entityA, "pledge", holder, 0)
	assert.True(t, storage.HasAmount(trx, entityA, "pledge", holder), "zero amount is present")
	storage.PutAmount(trx, entityA, "pledge", holder, 7)
	assert.Equal(t, uint64(7), storage.Amount(trx, entityA, "pledge", holder), "amount")
	assert.Equal(t, uint64(0), storage.Amount(trx, entityA, "pledges", holder), "tags must not collide")
	storage.ClearAmount(trx, entityA, "pledge", holder)
	assert.False(t, storage.HasAmount(trx, entityA, "pledge", holder), "cleared amount")

	assert.False(t, storage.Flag(trx, entityA, "refunded", holder), "unset flag")
	storage.SetFlag(trx, entityA, "refunded", holder)
	assert.True(t, storage.Flag(trx, entityA, "refunded", holder), "flag")
}

func TestBlockHeight(t *testing.T) {
	store := setupMemory(t)
	defer store.Close()

	err := store.Update(func(trx storage.Transaction) error {
		assert.Equal(t, uint64(0), storage.BlockHeight(trx), "initial height")
		storage.SetBlockHeight(trx, 3)
		return nil
	})
	assert.Nil(t, err, "commit")

	_ = store.View(func(trx storage.Transaction) error {
		assert.Equal(t, uint64(3), storage.BlockHeight(trx), "height")
		return nil
	})
}
