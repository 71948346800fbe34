// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"

	"github.com/staranto/pokedexgo/internal/pokemon"
)

// Sentinel errors shared by every backend. Backends wrap the underlying cause
// so callers can still errors.As into SDK error types.
var (
	// ErrNotFound means no record is stored under the requested name.
	ErrNotFound = errors.New("record not found")
	// ErrUnavailable means the store could not be reached or refused the
	// request (connectivity, permissions, throttling, corrupt item).
	ErrUnavailable = errors.New("store unavailable")
)

// Store is a key-value store of pokemon records keyed by name.
type Store interface {
	// Get returns the record stored under name, ErrNotFound if there is none,
	// or an error wrapping ErrUnavailable.
	Get(ctx context.Context, name string) (*pokemon.Record, error)
	// Put inserts or overwrites the record keyed by rec.Name.
	Put(ctx context.Context, rec pokemon.Record) error
	// Close releases whatever the backend holds. Safe to call more than once.
	Close() error
	String() string
}
