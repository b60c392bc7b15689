// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// the file is executed as a Lua chunk and must return a table, which
// is mapped onto a struct using "gluamapper" field tags.  Base Lua is
// available so a file can read keys from other files or use os.getenv
// to pick up environment supplied items.  arg[0] holds the name of the
// file being read.
package configuration
