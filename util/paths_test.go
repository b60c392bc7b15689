// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitmark-inc/fastledger/util"
)

func TestEnsureAbsolute(t *testing.T) {
	assert.Equal(t, "/data/fastd.leveldb", util.EnsureAbsolute("/data", "fastd.leveldb"), "relative")
	assert.Equal(t, "/data/log", util.EnsureAbsolute("/data", "./log/"), "cleaned")
	assert.Equal(t, "/var/log", util.EnsureAbsolute("/data", "/var/log/../log"), "absolute")
}

func TestEnsureDirectory(t *testing.T) {
	base := t.TempDir()

	d := filepath.Join(base, "a", "b")
	require.NoError(t, util.EnsureDirectory(d), "create")
	require.NoError(t, util.EnsureDirectory(d), "exists")

	info, err := os.Stat(d)
	require.NoError(t, err, "stat")
	assert.True(t, info.IsDir(), "not a directory")

	f := filepath.Join(base, "file")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o600), "write")
	assert.Error(t, util.EnsureDirectory(f), "file accepted as directory")
}
