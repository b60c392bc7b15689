// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
)

// PoolHandle - one prefix of the key space
type PoolHandle struct {
	prefix byte
	name   string
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Name - the field name of the pool
func (p *PoolHandle) Name() string {
	return p.name
}

// Key - concatenate key components
func Key(parts ...[]byte) []byte {
	n := 0
	for _, p := range parts {
		n += len(p)
	}
	key := make([]byte, 0, n)
	for _, p := range parts {
		key = append(key, p...)
	}
	return key
}

// Name - length prefixed name so variable names cannot run into the next component
func Name(s string) []byte {
	if len(s) > 255 {
		logger.Panicf("storage.Name too long: %q", s)
	}
	b := make([]byte, 1, len(s)+1)
	b[0] = byte(len(s))
	return append(b, s...)
}

// Uint64Bytes - big endian uint64
func Uint64Bytes(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
