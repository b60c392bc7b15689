// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ledger

import (
	"github.com/nspcc-dev/neo-go/pkg/io"

	"github.com/bitmark-inc/fastledger/account"
	"github.com/bitmark-inc/fastledger/fault"
)

// maximum length of a reference text
const MaxReferenceLength = 1024

// SupplyProof - audit record of a mint or burn
type SupplyProof struct {
	Burn      bool   `json:"burn"`
	Amount    uint64 `json:"amount"`
	Reference string `json:"reference"`
	Block     uint64 `json:"block"`
}

// TransferProof - audit record of a transfer
type TransferProof struct {
	Spender   account.Account `json:"spender"`
	From      account.Account `json:"from"`
	To        account.Account `json:"to"`
	Amount    uint64          `json:"amount"`
	Reference string          `json:"reference"`
	Block     uint64          `json:"block"`
}

// EncodeBinary - implements io.Serializable
func (p *SupplyProof) EncodeBinary(w *io.BinWriter) {
	w.WriteBool(p.Burn)
	w.WriteU64LE(p.Amount)
	w.WriteString(p.Reference)
	w.WriteU64LE(p.Block)
}

// DecodeBinary - implements io.Serializable
func (p *SupplyProof) DecodeBinary(r *io.BinReader) {
	p.Burn = r.ReadBool()
	p.Amount = r.ReadU64LE()
	p.Reference = r.ReadString(MaxReferenceLength)
	p.Block = r.ReadU64LE()
}

// EncodeBinary - implements io.Serializable
func (p *TransferProof) EncodeBinary(w *io.BinWriter) {
	p.Spender.EncodeBinary(w)
	p.From.EncodeBinary(w)
	p.To.EncodeBinary(w)
	w.WriteU64LE(p.Amount)
	w.WriteString(p.Reference)
	w.WriteU64LE(p.Block)
}

// DecodeBinary - implements io.Serializable
func (p *TransferProof) DecodeBinary(r *io.BinReader) {
	p.Spender.DecodeBinary(r)
	p.From.DecodeBinary(r)
	p.To.DecodeBinary(r)
	p.Amount = r.ReadU64LE()
	p.Reference = r.ReadString(MaxReferenceLength)
	p.Block = r.ReadU64LE()
}

func checkReference(reference string) error {
	if len(reference) > MaxReferenceLength {
		return fault.ErrInconsistentParameter
	}
	return nil
}
