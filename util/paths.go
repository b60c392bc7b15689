// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"
)

// EnsureAbsolute - resolve name relative to base unless already absolute
func EnsureAbsolute(base string, name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(base, name)
}

// EnsureDirectory - create a private directory if missing
//
// fails if the path exists and is not a directory
func EnsureDirectory(name string) error {
	info, err := os.Stat(name)
	if nil == err {
		if !info.IsDir() {
			return &os.PathError{Op: "mkdir", Path: name, Err: os.ErrExist}
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return os.MkdirAll(name, 0o700)
}
