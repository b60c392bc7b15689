// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
)

// DataAccess - the raw database operations used by a transaction
type DataAccess interface {
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	Write(*leveldb.Batch) error
	Close() error
}

type dataAccess struct {
	db *leveldb.DB
}

func newDA(db *leveldb.DB) DataAccess {
	return &dataAccess{
		db: db,
	}
}

// returns leveldb.ErrNotFound for a missing key
func (d *dataAccess) Get(key []byte) ([]byte, error) {
	return d.db.Get(key, nil)
}

func (d *dataAccess) Has(key []byte) (bool, error) {
	return d.db.Has(key, nil)
}

func (d *dataAccess) Write(batch *leveldb.Batch) error {
	return d.db.Write(batch, &ldb_opt.WriteOptions{Sync: true})
}

func (d *dataAccess) Close() error {
	return d.db.Close()
}
