// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/bitmark-inc/fastledger/fault"
)

// version written by a successful initialisation
const initialisedVersion = 1

// Register - one time initialisation of an entity of the given kind
//
// the version must be zero before and is one afterwards
func Register(trx Transaction, entity []byte, kind string) error {
	if nil != trx.Get(Pool.Kinds, entity) {
		return fault.ErrAlreadyInitialised
	}
	err := RegisterFacet(trx, entity, kind)
	if nil != err {
		return err
	}
	trx.Put(Pool.Kinds, entity, []byte(kind))
	return nil
}

// RegisterFacet - one time initialisation of one part of an entity
//
// e.g. the ledger of a FAST is initialised separately from its registry
func RegisterFacet(trx Transaction, entity []byte, facet string) error {
	key := Key(entity, Name(facet))
	if version, _ := trx.GetN(Pool.Versions, key); 0 != version {
		return fault.ErrAlreadyInitialised
	}
	trx.PutN(Pool.Versions, key, initialisedVersion)
	return nil
}

// IsFacetInitialised - true once RegisterFacet has succeeded
func IsFacetInitialised(trx Transaction, entity []byte, facet string) bool {
	version, _ := trx.GetN(Pool.Versions, Key(entity, Name(facet)))
	return 0 != version
}

// IsInitialised - true once Register has succeeded
func IsInitialised(trx Transaction, entity []byte) bool {
	return trx.Has(Pool.Kinds, entity)
}

// KindOf - the kind given to Register
func KindOf(trx Transaction, entity []byte) (string, bool) {
	kind := trx.Get(Pool.Kinds, entity)
	if nil == kind {
		return "", false
	}
	return string(kind), true
}

// RequireKind - entity must be initialised as the given kind
func RequireKind(trx Transaction, entity []byte, kind string) error {
	k, ok := KindOf(trx, entity)
	if !ok {
		return fault.ErrNotInitialised
	}
	if k != kind {
		return fault.ErrWrongEntityKind
	}
	return nil
}
