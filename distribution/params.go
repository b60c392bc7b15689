// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package distribution

import (
	"github.com/nspcc-dev/neo-go/pkg/io"

	"github.com/bitmark-inc/fastledger/account"
)

const maxReferenceLength = 1024

// Params - fixed at creation
type Params struct {
	Distributor account.Account `json:"distributor"`
	Issuer      account.Account `json:"issuer"`
	Fast        account.Account `json:"fast"`
	Token       account.Account `json:"token"`
	Total       uint64          `json:"total"`
	BlockLatch  uint64          `json:"blockLatch"`
	Reference   string          `json:"reference"`
}

// EncodeBinary - implements io.Serializable
func (p *Params) EncodeBinary(w *io.BinWriter) {
	p.Distributor.EncodeBinary(w)
	p.Issuer.EncodeBinary(w)
	p.Fast.EncodeBinary(w)
	p.Token.EncodeBinary(w)
	w.WriteU64LE(p.Total)
	w.WriteU64LE(p.BlockLatch)
	w.WriteString(p.Reference)
}

// DecodeBinary - implements io.Serializable
func (p *Params) DecodeBinary(r *io.BinReader) {
	p.Distributor.DecodeBinary(r)
	p.Issuer.DecodeBinary(r)
	p.Fast.DecodeBinary(r)
	p.Token.DecodeBinary(r)
	p.Total = r.ReadU64LE()
	p.BlockLatch = r.ReadU64LE()
	p.Reference = r.ReadString(maxReferenceLength)
}

// Phase - distribution lifecycle
type Phase uint64

// phases in order
const (
	Funding Phase = iota
	FeeSetup
	BeneficiariesSetup
	Withdrawal
	Terminated
)

var phaseNames = map[Phase]string{
	Funding:            "funding",
	FeeSetup:           "fee-setup",
	BeneficiariesSetup: "beneficiaries-setup",
	Withdrawal:         "withdrawal",
	Terminated:         "terminated",
}

// String - lower case name
func (p Phase) String() string {
	if s, ok := phaseNames[p]; ok {
		return s
	}
	return "unknown"
}

// MarshalText - phases appear by name in JSON
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Details - current state summary
type Details struct {
	Address          account.Account `json:"address"`
	Params           Params          `json:"params"`
	Phase            Phase           `json:"phase"`
	Fee              uint64          `json:"fee"`
	Available        uint64          `json:"available"`
	BeneficiaryCount uint64          `json:"beneficiaryCount"`
}

// PhaseEvent - Initialised, Advance, Terminated
type PhaseEvent struct {
	Phase Phase `json:"phase"`
}

// BeneficiaryEvent - BeneficiaryAdded, BeneficiaryRemoved
type BeneficiaryEvent struct {
	Beneficiary account.Account `json:"beneficiary"`
	Amount      uint64          `json:"amount"`
}

// WithdrawalEvent - Withdrawal
type WithdrawalEvent struct {
	Caller      account.Account `json:"caller"`
	Beneficiary account.Account `json:"beneficiary"`
	Amount      uint64          `json:"amount"`
}
