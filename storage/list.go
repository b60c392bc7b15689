// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

// Append - add a record to the end of an append-only log
//
// returns the index of the new record
func Append(trx Transaction, entity []byte, name string, record []byte) uint64 {
	head := Key(entity, Name(name))
	n, _ := trx.GetN(Pool.Logs, head)
	trx.Put(Pool.Logs, Key(head, Uint64Bytes(n)), record)
	trx.PutN(Pool.Logs, head, n+1)
	return n
}

// LogLength - number of records in a log
func LogLength(trx Transaction, entity []byte, name string) uint64 {
	n, _ := trx.GetN(Pool.Logs, Key(entity, Name(name)))
	return n
}

// LogRecord - fetch a record by index, nil if out of range
func LogRecord(trx Transaction, entity []byte, name string, index uint64) []byte {
	return trx.Get(Pool.Logs, Key(entity, Name(name), Uint64Bytes(index)))
}

// LogRange - records [offset, offset+limit) clipped to the log length
//
// next never exceeds the length, even if offset+limit overflows
func LogRange(trx Transaction, entity []byte, name string, offset uint64, limit uint64) ([][]byte, uint64) {
	length := LogLength(trx, entity, name)
	end := ClipRange(offset, limit, length)
	if offset >= end {
		return [][]byte{}, end
	}
	records := make([][]byte, 0, end-offset)
	for i := offset; i < end; i += 1 {
		records = append(records, LogRecord(trx, entity, name, i))
	}
	return records, end
}

// ClipRange - min(offset+limit, length) with saturating addition
func ClipRange(offset uint64, limit uint64, length uint64) uint64 {
	end := offset + limit
	if end < offset || end > length {
		return length
	}
	return end
}
