// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	cache "github.com/patrickmn/go-cache"
)

// staged - state of a key inside an open transaction
type staged int

const (
	unstaged staged = iota // read through to the database
	written
	deleted
)

// overlay - writes staged by a transaction, visible to its own reads
//
// entries never expire; the overlay is flushed on commit or abort
type overlay struct {
	items *cache.Cache
}

type overlayItem struct {
	state staged
	value []byte
}

func newOverlay() *overlay {
	return &overlay{
		items: cache.New(cache.NoExpiration, 0),
	}
}

func (o *overlay) lookup(key []byte) ([]byte, staged) {
	obj, found := o.items.Get(string(key))
	if !found {
		return nil, unstaged
	}
	item := obj.(overlayItem)
	return item.value, item.state
}

func (o *overlay) put(key []byte, value []byte) {
	o.items.Set(string(key), overlayItem{state: written, value: value}, cache.NoExpiration)
}

func (o *overlay) remove(key []byte) {
	o.items.Set(string(key), overlayItem{state: deleted}, cache.NoExpiration)
}

func (o *overlay) reset() {
	o.items.Flush()
}
