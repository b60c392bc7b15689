// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of every error so that callers can compare
// with == instead of matching on text.  Each error belongs to one class
// (authorisation, phase, value, exists, not found, invalid, internal,
// process) and the IsErrX functions classify an arbitrary error.
package fault
