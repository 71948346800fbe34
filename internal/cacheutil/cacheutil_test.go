// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"1", true},
		{"true", true},
		{"0", false},
		{"false", false},
	}

	for _, tt := range tests {
		t.Run("POKEDEX_CACHE="+tt.value, func(t *testing.T) {
			t.Setenv("POKEDEX_CACHE", tt.value)
			assert.Equal(t, tt.want, Enabled())
		})
	}
}

func TestWriteRead(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("POKEDEX_CACHE_DIR", dir)
	t.Setenv("POKEDEX_CACHE", "")

	subdirs := []string{"catalog", "pokeapi.co"}
	key := "https://pokeapi.co/api/v2/pokemon?limit=10000"

	_, ok := Read(subdirs, key)
	assert.False(t, ok, "nothing written yet")

	require.NoError(t, Write(subdirs, key, []byte(" {\"results\": []}\n")))

	entry, ok := Read(subdirs, key)
	require.True(t, ok)
	assert.Equal(t, key, entry.Key)
	assert.Equal(t, `{"results": []}`, string(entry.Data))
	assert.Equal(t, filepath.Join(dir, "catalog", "pokeapi.co", entry.EncodedKey), entry.Path)
	assert.WithinDuration(t, time.Now(), entry.ModTime, time.Minute)
}

func TestWrite_Disabled(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("POKEDEX_CACHE_DIR", dir)
	t.Setenv("POKEDEX_CACHE", "0")

	require.NoError(t, Write([]string{"catalog"}, "k", []byte("v")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, ok := Read([]string{"catalog"}, "k")
	assert.False(t, ok)
}

func TestPurge(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("POKEDEX_CACHE_DIR", dir)
	t.Setenv("POKEDEX_CACHE", "")

	require.NoError(t, Write([]string{"catalog"}, "old", []byte("old")))
	require.NoError(t, Write([]string{"catalog"}, "new", []byte("new")))

	oldPath, ok := EntryPath([]string{"catalog"}, "old")
	require.True(t, ok)
	stale := time.Now().Add(-3 * time.Hour)
	require.NoError(t, os.Chtimes(oldPath, stale, stale))

	require.NoError(t, Purge(2))

	_, ok = Read([]string{"catalog"}, "old")
	assert.False(t, ok, "stale entry should be purged")
	_, ok = Read([]string{"catalog"}, "new")
	assert.True(t, ok, "fresh entry should survive")
}

func TestPurge_MissingBase(t *testing.T) {
	t.Setenv("POKEDEX_CACHE_DIR", filepath.Join(t.TempDir(), "does-not-exist"))
	assert.NoError(t, Purge(1))
	assert.NoError(t, Purge(0))
}

func TestEnsureBaseDir(t *testing.T) {
	base := filepath.Join(t.TempDir(), "nested", "cache")
	t.Setenv("POKEDEX_CACHE_DIR", base)
	t.Setenv("POKEDEX_CACHE", "")

	got, ok, err := EnsureBaseDir()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, base, got)
	assert.DirExists(t, base)
}
