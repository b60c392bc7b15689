// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a LevelDB database split into a series of tables.
// Each table is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available tables.
//
// Notes:
// 1. each separate pool has a single byte prefix (to spread the keys in LevelDB)
// 2. ++       = concatenation of byte data
// 3. entity   = 20 byte account of the owning registry, ledger or campaign
// 4. account  = 20 byte account
// 5. name     = one byte length ++ name bytes
// 6. index    = big endian uint64 (8 bytes)
// 7. count    = big endian uint64 (8 bytes)
//
// Entities:
//
//   V ++ entity                      - initialisation version
//                                      data: count (1 once initialised)
//   K ++ entity                      - entity kind
//                                      data: kind name
//   S ++ entity ++ name              - scalar settings
//                                      data: count or packed record
//
// Ledgers:
//
//   B ++ entity ++ account           - balances
//                                      data: count
//   A ++ entity ++ owner ++ spender  - allowances
//                                      data: count
//   N ++ entity ++ name ++ account   - per account amounts (pledges, owings, privileges)
//                                      data: count
//   F ++ entity ++ name ++ account   - per account flags (refunded, withdrawn)
//                                      data: 0x01
//
// Ordered sets:
//
//   L ++ entity ++ name              - number of items
//                                      data: count
//   I ++ entity ++ name ++ index     - item at index
//                                      data: account
//   X ++ entity ++ name ++ account   - index of item
//                                      data: index
//
// Logs:
//
//   P ++ entity ++ name              - number of records
//                                      data: count
//   P ++ entity ++ name ++ index     - record
//                                      data: packed record
//
// Chain:
//
//   C ++ name                        - chain state
//                                      data: count
//
// Every write goes through a Transaction: writes are staged in a
// leveldb.Batch and mirrored into an in-memory overlay so reads in the
// same transaction see them.  Only Commit touches the database; Abort
// throws the batch and overlay away.
package storage
