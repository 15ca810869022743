// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoltStore_PutGet(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, err)
	defer store.Close()

	_, ok, err := store.Get("apiProvider")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Put("apiProvider", "openai"))

	v, ok, err := store.Get("apiProvider")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "openai", v)
}

func TestBoltStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", DefaultFileName)

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Put("apiProvider", "gemini"))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get("apiProvider")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "gemini", v)
	assert.Equal(t, path, reopened.Path())
}

func TestBoltStore_ClosedStore(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), DefaultFileName))
	require.NoError(t, err)
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())

	_, _, err = store.Get("k")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, store.Put("k", "v"), ErrClosed)
}
