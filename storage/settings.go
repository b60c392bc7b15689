// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Setting - a named scalar of an entity, nil if never set
func Setting(trx Transaction, entity []byte, name string) []byte {
	return trx.Get(Pool.Settings, Key(entity, Name(name)))
}

// PutSetting - store a named scalar
func PutSetting(trx Transaction, entity []byte, name string, value []byte) {
	trx.Put(Pool.Settings, Key(entity, Name(name)), value)
}

// SettingN - a named counter of an entity, zero if never set
func SettingN(trx Transaction, entity []byte, name string) uint64 {
	n, _ := trx.GetN(Pool.Settings, Key(entity, Name(name)))
	return n
}

// PutSettingN - store a named counter
func PutSettingN(trx Transaction, entity []byte, name string, value uint64) {
	trx.PutN(Pool.Settings, Key(entity, Name(name)), value)
}

// Amount - per account amount under a tag, zero if absent
func Amount(trx Transaction, entity []byte, tag string, account []byte) uint64 {
	n, _ := trx.GetN(Pool.Amounts, Key(entity, Name(tag), account))
	return n
}

// HasAmount - true if an amount was ever stored and not cleared
func HasAmount(trx Transaction, entity []byte, tag string, account []byte) bool {
	return trx.Has(Pool.Amounts, Key(entity, Name(tag), account))
}

// PutAmount - store a per account amount
func PutAmount(trx Transaction, entity []byte, tag string, account []byte, value uint64) {
	trx.PutN(Pool.Amounts, Key(entity, Name(tag), account), value)
}

// ClearAmount - remove a per account amount
func ClearAmount(trx Transaction, entity []byte, tag string, account []byte) {
	trx.Delete(Pool.Amounts, Key(entity, Name(tag), account))
}

// Flag - per account boolean under a tag
func Flag(trx Transaction, entity []byte, tag string, account []byte) bool {
	return trx.Has(Pool.Flags, Key(entity, Name(tag), account))
}

// SetFlag - set a per account boolean
func SetFlag(trx Transaction, entity []byte, tag string, account []byte) {
	trx.Put(Pool.Flags, Key(entity, Name(tag), account), []byte{1})
}
