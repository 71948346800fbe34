// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package memory

import (
	"context"
	"slices"

	"github.com/staranto/pokedexgo/internal/pokemon"
	"github.com/staranto/pokedexgo/internal/store"
)

// BackendMemory keeps records for the life of the process. It is used for
// offline runs (--store memory) and in tests.
type BackendMemory struct {
	records map[string]pokemon.Record
}

func NewBackendMemory() *BackendMemory {
	return &BackendMemory{records: map[string]pokemon.Record{}}
}

func (be *BackendMemory) Get(_ context.Context, name string) (*pokemon.Record, error) {
	rec, ok := be.records[name]
	if !ok {
		return nil, store.ErrNotFound
	}
	rec = clone(rec)
	return &rec, nil
}

func (be *BackendMemory) Put(_ context.Context, rec pokemon.Record) error {
	be.records[rec.Name] = clone(rec)
	return nil
}

// Len reports how many records are held.
func (be *BackendMemory) Len() int {
	return len(be.records)
}

func (be *BackendMemory) Close() error {
	return nil
}

func (be *BackendMemory) String() string {
	return "memory"
}

// clone copies the slices and pointers so callers cannot mutate stored data.
func clone(rec pokemon.Record) pokemon.Record {
	rec.Types = slices.Clone(rec.Types)
	rec.Abilities = slices.Clone(rec.Abilities)
	rec.ID = clonePtr(rec.ID)
	rec.Height = clonePtr(rec.Height)
	rec.Weight = clonePtr(rec.Weight)
	rec.BaseExperience = clonePtr(rec.BaseExperience)
	rec.SpriteFrontDefault = clonePtr(rec.SpriteFrontDefault)
	return rec
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
