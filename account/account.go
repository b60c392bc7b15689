// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"encoding/binary"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/util"

	"github.com/bitmark-inc/fastledger/fault"
)

// Length - number of bytes in an account
const Length = util.Uint160Size

// Account - a ledger participant or entity address
type Account struct {
	hash util.Uint160
}

// Zero - the sentinel account
var Zero = Account{}

// kinds of derived address
const (
	KindFast         = "fast"
	KindCrowdfund    = "crowdfund"
	KindDistribution = "distribution"
	KindToken        = "token"
)

// FromBytes - convert exactly Length bytes to an account
func FromBytes(b []byte) (Account, error) {
	u, err := util.Uint160DecodeBytesBE(b)
	if nil != err {
		return Zero, fault.ErrInvalidAccount
	}
	return Account{hash: u}, nil
}

// FromString - parse an address or "0x" little endian hex
func FromString(s string) (Account, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") {
		u, err := util.Uint160DecodeStringLE(s[2:])
		if nil != err {
			return Zero, fault.ErrInvalidAccount
		}
		return Account{hash: u}, nil
	}
	u, err := address.StringToUint160(s)
	if nil != err {
		return Zero, fault.ErrInvalidAccount
	}
	return Account{hash: u}, nil
}

// Derive - deterministic address of an entity owned by parent
func Derive(parent Account, kind string, nonce []byte) Account {
	buffer := make([]byte, 0, Length+len(kind)+len(nonce)+2)
	buffer = append(buffer, parent.Bytes()...)
	buffer = append(buffer, byte(len(kind)))
	buffer = append(buffer, kind...)
	buffer = append(buffer, byte(len(nonce)))
	buffer = append(buffer, nonce...)
	return Account{hash: hash.Hash160(buffer)}
}

// DeriveN - Derive with a numeric sequence as the nonce
func DeriveN(parent Account, kind string, n uint64) Account {
	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, n)
	return Derive(parent, kind, nonce)
}

// Bytes - big endian bytes, the storage key form
func (a Account) Bytes() []byte {
	return a.hash.BytesBE()
}

// IsZero - true for the sentinel
func (a Account) IsZero() bool {
	return a == Zero
}

// Equal - compare two accounts
func (a Account) Equal(b Account) bool {
	return a.hash.Equals(b.hash)
}

// Hex - "0x" prefixed little endian hex
func (a Account) Hex() string {
	return "0x" + a.hash.StringLE()
}

// String - base58check address
func (a Account) String() string {
	return address.Uint160ToString(a.hash)
}

// MarshalText - convert to address text for JSON
func (a Account) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText - convert from address text
func (a *Account) UnmarshalText(s []byte) error {
	b, err := FromString(string(s))
	if nil != err {
		return err
	}
	*a = b
	return nil
}

// EncodeBinary - implements io.Serializable
func (a Account) EncodeBinary(w *io.BinWriter) {
	a.hash.EncodeBinary(w)
}

// DecodeBinary - implements io.Serializable
func (a *Account) DecodeBinary(r *io.BinReader) {
	a.hash.DecodeBinary(r)
}
