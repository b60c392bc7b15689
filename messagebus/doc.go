// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package messagebus - a queue for the events of committed operations
//
// publishing never blocks the operation that produced the event; when
// the queue is full the event is dropped and counted.
package messagebus
