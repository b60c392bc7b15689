// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package crowdfund

import (
	"github.com/nspcc-dev/neo-go/pkg/io"

	"github.com/bitmark-inc/fastledger/account"
)

const maxReferenceLength = 1024

// Params - fixed at creation
type Params struct {
	Owner          account.Account `json:"owner"`
	Beneficiary    account.Account `json:"beneficiary"`
	BasisPointsFee uint64          `json:"basisPointsFee"`
	Issuer         account.Account `json:"issuer"`
	Fast           account.Account `json:"fast"`
	Token          account.Account `json:"token"`
	Reference      string          `json:"reference"`
	Cap            uint64          `json:"cap"`
}

// EncodeBinary - implements io.Serializable
func (p *Params) EncodeBinary(w *io.BinWriter) {
	p.Owner.EncodeBinary(w)
	p.Beneficiary.EncodeBinary(w)
	w.WriteU64LE(p.BasisPointsFee)
	p.Issuer.EncodeBinary(w)
	p.Fast.EncodeBinary(w)
	p.Token.EncodeBinary(w)
	w.WriteString(p.Reference)
	w.WriteU64LE(p.Cap)
}

// DecodeBinary - implements io.Serializable
func (p *Params) DecodeBinary(r *io.BinReader) {
	p.Owner.DecodeBinary(r)
	p.Beneficiary.DecodeBinary(r)
	p.BasisPointsFee = r.ReadU64LE()
	p.Issuer.DecodeBinary(r)
	p.Fast.DecodeBinary(r)
	p.Token.DecodeBinary(r)
	p.Reference = r.ReadString(maxReferenceLength)
	p.Cap = r.ReadU64LE()
}

// Phase - crowdfund lifecycle
type Phase uint64

// phases in order
const (
	Setup Phase = iota
	Funding
	Success
	Failure
)

var phaseNames = map[Phase]string{
	Setup:   "setup",
	Funding: "funding",
	Success: "success",
	Failure: "failure",
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
	Address        account.Account `json:"address"`
	Params         Params          `json:"params"`
	Phase          Phase           `json:"phase"`
	BasisPointsFee uint64          `json:"basisPointsFee"`
	Collected      uint64          `json:"collected"`
	FeeAmount      uint64          `json:"feeAmount"`
	PledgerCount   uint64          `json:"pledgerCount"`
}

// PhaseEvent - Initialised, AdvancedToFunding, Terminated
type PhaseEvent struct {
	Phase          Phase  `json:"phase"`
	BasisPointsFee uint64 `json:"basisPointsFee"`
}

// PledgeEvent - Pledged, Refunded
type PledgeEvent struct {
	Pledger account.Account `json:"pledger"`
	Amount  uint64          `json:"amount"`
}
