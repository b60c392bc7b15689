// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package orderedset - persistent set of accounts with stable pagination
//
// items are held in an index addressed array with a reverse map from
// account to index, so membership tests and removal are O(1).  Removal
// moves the last item into the freed slot.
package orderedset

import (
	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/fault"
	"github.com/bitmark-inc/fastledger/storage"
	"github.com/bitmark-inc/logger"
)

// Set - handle to one set owned by an entity
type Set struct {
	base []byte
}

// New - the set called name belonging to owner
//
// qualifiers select one of a family of sets, e.g. the FASTs of a single member
func New(owner account.Account, name string, qualifiers ...account.Account) Set {
	parts := [][]byte{owner.Bytes(), storage.Name(name)}
	for _, q := range qualifiers {
		parts = append(parts, q.Bytes())
	}
	return Set{
		base: storage.Key(parts...),
	}
}

func (s Set) itemKey(index uint64) []byte {
	return storage.Key(s.base, storage.Uint64Bytes(index))
}

func (s Set) indexKey(a account.Account) []byte {
	return storage.Key(s.base, a.Bytes())
}

// Len - number of items
func (s Set) Len(trx storage.Transaction) uint64 {
	n, _ := trx.GetN(storage.Pool.SetLength, s.base)
	return n
}

// Contains - membership test
func (s Set) Contains(trx storage.Transaction, a account.Account) bool {
	return trx.Has(storage.Pool.SetIndex, s.indexKey(a))
}

// Add - append an item, fails if already present
func (s Set) Add(trx storage.Transaction, a account.Account) error {
	if s.Contains(trx, a) {
		return fault.ErrDuplicateEntry
	}
	n := s.Len(trx)
	trx.Put(storage.Pool.SetItems, s.itemKey(n), a.Bytes())
	trx.PutN(storage.Pool.SetIndex, s.indexKey(a), n)
	trx.PutN(storage.Pool.SetLength, s.base, n+1)
	return nil
}

// Remove - delete an item, fails if absent
func (s Set) Remove(trx storage.Transaction, a account.Account) error {
	index, found := trx.GetN(storage.Pool.SetIndex, s.indexKey(a))
	if !found {
		return fault.ErrNonExistentEntry
	}

	last := s.Len(trx) - 1
	if index != last {
		moved := s.mustAt(trx, last)
		trx.Put(storage.Pool.SetItems, s.itemKey(index), moved.Bytes())
		trx.PutN(storage.Pool.SetIndex, s.indexKey(moved), index)
	}
	trx.Delete(storage.Pool.SetItems, s.itemKey(last))
	trx.Delete(storage.Pool.SetIndex, s.indexKey(a))
	trx.PutN(storage.Pool.SetLength, s.base, last)
	return nil
}

// At - item at index
func (s Set) At(trx storage.Transaction, index uint64) (account.Account, bool) {
	buffer := trx.Get(storage.Pool.SetItems, s.itemKey(index))
	if nil == buffer {
		return account.Zero, false
	}
	a, err := account.FromBytes(buffer)
	logger.PanicIfError("orderedset.At", err)
	return a, true
}

func (s Set) mustAt(trx storage.Transaction, index uint64) account.Account {
	a, ok := s.At(trx, index)
	if !ok {
		logger.Panicf("orderedset: missing item: %d of set: %x", index, s.base)
	}
	return a
}

// Values - every item in index order
func (s Set) Values(trx storage.Transaction) []account.Account {
	items, _ := s.Paginate(trx, 0, s.Len(trx))
	return items
}

// Clear - remove every item
func (s Set) Clear(trx storage.Transaction) {
	n := s.Len(trx)
	for i := uint64(0); i < n; i += 1 {
		a := s.mustAt(trx, i)
		trx.Delete(storage.Pool.SetIndex, s.indexKey(a))
		trx.Delete(storage.Pool.SetItems, s.itemKey(i))
	}
	trx.Delete(storage.Pool.SetLength, s.base)
}

// Paginate - items [offset, offset+limit) and the cursor for the next page
//
// next = min(offset+limit, Len) and never exceeds Len even if the sum overflows
func (s Set) Paginate(trx storage.Transaction, offset uint64, limit uint64) ([]account.Account, uint64) {
	length := s.Len(trx)
	end := storage.ClipRange(offset, limit, length)
	if offset >= end {
		return []account.Account{}, end
	}
	items := make([]account.Account, 0, end-offset)
	for i := offset; i < end; i += 1 {
		items = append(items, s.mustAt(trx, i))
	}
	return items, end
}
