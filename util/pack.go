// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"github.com/nspcc-dev/neo-go/pkg/io"

	"github.com/bitmark-inc/logger"
)

// Pack - serialise a record for storage
func Pack(item io.Serializable) []byte {
	w := io.NewBufBinWriter()
	item.EncodeBinary(w.BinWriter)
	logger.PanicIfError("util.Pack", w.Err)
	return w.Bytes()
}

// Unpack - deserialise a stored record
//
// a record that does not decode means the database is corrupt
func Unpack(buffer []byte, item io.Serializable) {
	r := io.NewBinReaderFromBuf(buffer)
	item.DecodeBinary(r)
	logger.PanicIfError("util.Unpack", r.Err)
}
