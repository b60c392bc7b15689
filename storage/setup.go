// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_storage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/bitmark-inc/logger"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Versions   *PoolHandle `prefix:"V"`
	Kinds      *PoolHandle `prefix:"K"`
	Settings   *PoolHandle `prefix:"S"`
	Balances   *PoolHandle `prefix:"B"`
	Allowances *PoolHandle `prefix:"A"`
	Amounts    *PoolHandle `prefix:"N"`
	Flags      *PoolHandle `prefix:"F"`
	SetLength  *PoolHandle `prefix:"L"`
	SetItems   *PoolHandle `prefix:"I"`
	SetIndex   *PoolHandle `prefix:"X"`
	Logs       *PoolHandle `prefix:"P"`
	Chain      *PoolHandle `prefix:"C"`
	TestData   *PoolHandle `prefix:"Z"`
}

// Pool - the set of exported pools
var Pool pools

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Store - a database handle that serialises its transactions
type Store struct {
	sync.Mutex // held from Begin to Commit/Abort

	dataAccess DataAccess
	log        *logger.L
}

// setup the pool handles from the struct tags
func init() {

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	seen := make(map[byte]string)

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			panic(fmt.Sprintf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag))
		}

		prefix := prefixTag[0]
		if name, ok := seen[prefix]; ok {
			panic(fmt.Sprintf("pool: %s and %s share prefix: %q", name, fieldInfo.Name, prefixTag))
		}
		seen[prefix] = fieldInfo.Name

		p := &PoolHandle{
			prefix: prefix,
			name:   fieldInfo.Name,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}
}

// Open - open up a LevelDB database
func Open(database string, readOnly bool) (*Store, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(database, opt)
	if nil != err {
		return nil, err
	}

	return New(newDA(db)), nil
}

// OpenMemory - a store that lives only in memory
func OpenMemory() (*Store, error) {
	db, err := leveldb.Open(ldb_storage.NewMemStorage(), nil)
	if nil != err {
		return nil, err
	}
	return New(newDA(db)), nil
}

// New - wrap an existing data access layer
func New(dataAccess DataAccess) *Store {
	return &Store{
		dataAccess: dataAccess,
		log:        logger.New("storage"),
	}
}

// Close - close the database connection
//
// waits for any transaction in progress
func (s *Store) Close() {
	s.Lock()
	defer s.Unlock()
	if nil == s.dataAccess {
		return
	}
	err := s.dataAccess.Close()
	if nil != err {
		s.log.Errorf("close error: %s", err)
	}
	s.dataAccess = nil
	s.log.Info("closed")
	s.log.Flush()
}

// Begin - start a transaction, blocking until the store is free
func (s *Store) Begin() Transaction {
	s.Lock()
	return newTransaction(s)
}

// Update - run fn in a transaction, commit on success
func (s *Store) Update(fn func(Transaction) error) error {
	trx := s.Begin()
	err := fn(trx)
	if nil != err {
		trx.Abort()
		return err
	}
	return trx.Commit()
}

// View - run fn in a transaction that is always discarded
func (s *Store) View(fn func(Transaction) error) error {
	trx := s.Begin()
	defer trx.Abort()
	return fn(trx)
}
