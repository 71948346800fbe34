// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/staranto/pokedexgo/internal/backend/memory"
	"github.com/staranto/pokedexgo/internal/catalog"
	"github.com/staranto/pokedexgo/internal/output"
	"github.com/staranto/pokedexgo/internal/pokemon"
	"github.com/staranto/pokedexgo/internal/store"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) RandomName(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockCatalog) Details(ctx context.Context, name string) (*pokemon.Detail, error) {
	args := m.Called(ctx, name)
	d, _ := args.Get(0).(*pokemon.Detail)
	return d, args.Error(1)
}

// mockStore lets a test fail Get or Put while still recording calls.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) Get(ctx context.Context, name string) (*pokemon.Record, error) {
	args := m.Called(ctx, name)
	rec, _ := args.Get(0).(*pokemon.Record)
	return rec, args.Error(1)
}

func (m *mockStore) Put(ctx context.Context, rec pokemon.Record) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockStore) Close() error   { return nil }
func (m *mockStore) String() string { return "mock" }

func pikachuDetail(t *testing.T) *pokemon.Detail {
	t.Helper()
	var d pokemon.Detail
	require.NoError(t, json.Unmarshal([]byte(`{
	  "name": "pikachu", "id": 25, "height": 4, "weight": 60,
	  "types": [{"type": {"name": "electric"}}],
	  "abilities": [{"ability": {"name": "static"}}],
	  "base_experience": 112,
	  "sprites": {"front_default": "http://img/pikachu.png"}
	}`), &d))
	return &d
}

func ptr[T any](v T) *T { return &v }

func wantPikachu() pokemon.Record {
	return pokemon.Record{
		Name:               "pikachu",
		ID:                 ptr(25),
		Height:             ptr(4),
		Weight:             ptr(60),
		Types:              []string{"electric"},
		Abilities:          []string{"static"},
		BaseExperience:     ptr(112),
		SpriteFrontDefault: ptr("http://img/pikachu.png"),
	}
}

func profile(t *testing.T, out string) string {
	t.Helper()
	i := strings.Index(out, "\n--- Pokémon Profile ---")
	require.GreaterOrEqual(t, i, 0, "no profile in output:\n%s", out)
	j := strings.Index(out[i:], "------------------------\n\n")
	require.GreaterOrEqual(t, j, 0)
	return out[i : i+j]
}

func TestScenario_MissThenHit(t *testing.T) {
	ctx := context.Background()
	cat := &mockCatalog{}
	cat.On("RandomName", mock.Anything).Return("pikachu", nil).Twice()
	cat.On("Details", mock.Anything, "pikachu").Return(pikachuDetail(t), nil).Once()

	st := memory.NewBackendMemory()

	// First run: miss, fetch, save, display.
	var first bytes.Buffer
	loop := NewLoop(cat, st, strings.NewReader("yes\nno\n"), &first, output.Options{})
	require.NoError(t, loop.Run(ctx))

	stored, err := st.Get(ctx, "pikachu")
	require.NoError(t, err)
	assert.Equal(t, wantPikachu(), *stored)

	out := first.String()
	assert.Contains(t, out, "Pokémon selected: Pikachu\n")
	assert.Contains(t, out, "'Pikachu' not found in the collection.")
	assert.Contains(t, out, "Successfully saved 'pikachu' to the collection.\n")
	assert.Contains(t, out, "Name: Pikachu\n")
	assert.Contains(t, out, "Types: Electric\n")
	assert.Contains(t, out, "Image URL: http://img/pikachu.png\n")

	// Second run with the same name: hit, no detail fetch.
	var second bytes.Buffer
	loop = NewLoop(cat, st, strings.NewReader("yes\nno\n"), &second, output.Options{})
	require.NoError(t, loop.Run(ctx))

	assert.Contains(t, second.String(), "'Pikachu' is already stored in the collection.\n")
	assert.Equal(t, profile(t, first.String()), profile(t, second.String()))

	cat.AssertNumberOfCalls(t, "Details", 1)
	cat.AssertExpectations(t)
}

func TestNameFetchFailure_SkipsEverything(t *testing.T) {
	cat := &mockCatalog{}
	cat.On("RandomName", mock.Anything).Return("", fmt.Errorf("%w: connection refused", catalog.ErrFetchFailed))
	st := &mockStore{}

	var out bytes.Buffer
	loop := NewLoop(cat, st, strings.NewReader("yes\nno\n"), &out, output.Options{})
	require.NoError(t, loop.Run(context.Background()))

	assert.Contains(t, out.String(), "Failed to fetch Pokémon list: fetch failed: connection refused\n")
	// Back at the prompt: it is asked a second time before the farewell.
	assert.Equal(t, 2, strings.Count(out.String(), Question))
	assert.Contains(t, out.String(), Farewell)

	cat.AssertNotCalled(t, "Details", mock.Anything, mock.Anything)
	st.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	st.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestStoreLookupFailure_BehavesLikeMiss(t *testing.T) {
	ctx := context.Background()
	cat := &mockCatalog{}
	cat.On("Details", mock.Anything, "pikachu").Return(pikachuDetail(t), nil)

	st := &mockStore{}
	st.On("Get", mock.Anything, "pikachu").Return(nil, fmt.Errorf("%w: AccessDenied", store.ErrUnavailable))
	st.On("Put", mock.Anything, wantPikachu()).Return(nil)

	var out bytes.Buffer
	loop := NewLoop(cat, st, nil, &out, output.Options{})
	require.NoError(t, loop.Lookup(ctx, "pikachu"))

	assert.Contains(t, out.String(), "Collection lookup failed for Pokémon: store unavailable: AccessDenied\n")
	assert.Contains(t, out.String(), "Successfully saved 'pikachu'")
	assert.Contains(t, out.String(), "Name: Pikachu\n")
	cat.AssertExpectations(t)
	st.AssertExpectations(t)
}

func TestStoreSaveFailure_StillDisplays(t *testing.T) {
	cat := &mockCatalog{}
	cat.On("Details", mock.Anything, "pikachu").Return(pikachuDetail(t), nil)

	st := &mockStore{}
	st.On("Get", mock.Anything, "pikachu").Return(nil, store.ErrNotFound)
	st.On("Put", mock.Anything, mock.Anything).Return(fmt.Errorf("%w: throttled", store.ErrUnavailable))

	var out bytes.Buffer
	loop := NewLoop(cat, st, nil, &out, output.Options{})
	require.NoError(t, loop.Lookup(context.Background(), "pikachu"))

	assert.Contains(t, out.String(), "Error saving data to the collection: store unavailable: throttled\n")
	assert.NotContains(t, out.String(), "Successfully saved")
	assert.Contains(t, out.String(), "Name: Pikachu\n")
}

func TestDetailFetchFailure_DoesNotSave(t *testing.T) {
	cat := &mockCatalog{}
	cat.On("Details", mock.Anything, "pikachu").Return(nil, fmt.Errorf("%w: 404 Not Found", catalog.ErrFetchFailed))

	st := &mockStore{}
	st.On("Get", mock.Anything, "pikachu").Return(nil, store.ErrNotFound)

	var out bytes.Buffer
	loop := NewLoop(cat, st, nil, &out, output.Options{})
	err := loop.Lookup(context.Background(), "pikachu")

	assert.ErrorIs(t, err, catalog.ErrFetchFailed)
	assert.Contains(t, out.String(), "Unable to retrieve data for Pokémon 'pikachu'")
	assert.NotContains(t, out.String(), "Pokémon Profile")
	st.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestHandle_CaseInsensitive(t *testing.T) {
	for _, answer := range []string{"yes", "YES", "Yes", "  yEs  "} {
		t.Run(answer, func(t *testing.T) {
			cat := &mockCatalog{}
			cat.On("RandomName", mock.Anything).Return("", errors.New("offline")).Once()

			var out bytes.Buffer
			loop := NewLoop(cat, memory.NewBackendMemory(), nil, &out, output.Options{})
			assert.Equal(t, StatePrompt, loop.Handle(context.Background(), answer))
			cat.AssertExpectations(t)
		})
	}

	for _, answer := range []string{"no", "NO", "No", "nO\r"} {
		t.Run(answer, func(t *testing.T) {
			cat := &mockCatalog{}
			var out bytes.Buffer
			loop := NewLoop(cat, memory.NewBackendMemory(), nil, &out, output.Options{})
			assert.Equal(t, StateExit, loop.Handle(context.Background(), answer))
			assert.Equal(t, Farewell+"\n", out.String())
			cat.AssertNotCalled(t, "RandomName", mock.Anything)
		})
	}
}

func TestHandle_Invalid(t *testing.T) {
	for _, answer := range []string{"", "y", "n", "maybe", "yes please"} {
		t.Run(answer, func(t *testing.T) {
			cat := &mockCatalog{}
			var out bytes.Buffer
			loop := NewLoop(cat, memory.NewBackendMemory(), nil, &out, output.Options{})
			assert.Equal(t, StatePrompt, loop.Handle(context.Background(), answer))
			assert.Equal(t, Invalid+"\n", out.String())
			cat.AssertNotCalled(t, "RandomName", mock.Anything)
		})
	}
}

func TestRun_NoEndsWithoutFurtherPrompts(t *testing.T) {
	cat := &mockCatalog{}
	var out bytes.Buffer
	loop := NewLoop(cat, memory.NewBackendMemory(), strings.NewReader("maybe\nNo\nyes\n"), &out, output.Options{})
	require.NoError(t, loop.Run(context.Background()))

	want := Question + Invalid + "\n" + Question + Farewell + "\n"
	assert.Equal(t, want, out.String())
	cat.AssertNotCalled(t, "RandomName", mock.Anything)
}

func TestRun_EOF(t *testing.T) {
	var out bytes.Buffer
	loop := NewLoop(&mockCatalog{}, memory.NewBackendMemory(), strings.NewReader(""), &out, output.Options{})
	require.NoError(t, loop.Run(context.Background()))
	assert.Equal(t, Question+"\n", out.String())
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	loop := NewLoop(&mockCatalog{}, memory.NewBackendMemory(), strings.NewReader("yes\n"), &out, output.Options{})
	assert.ErrorIs(t, loop.Run(ctx), context.Canceled)
	assert.Empty(t, out.String())
}

func TestLookup_JSONOutput(t *testing.T) {
	ctx := context.Background()
	st := memory.NewBackendMemory()
	require.NoError(t, st.Put(ctx, wantPikachu()))

	var out bytes.Buffer
	loop := NewLoop(&mockCatalog{}, st, nil, &out, output.Options{Format: output.FormatJSON})
	require.NoError(t, loop.Lookup(ctx, "pikachu"))

	assert.Contains(t, out.String(), `"pokemon_name": "pikachu"`)
	assert.NotContains(t, out.String(), "Pokémon Profile")
}
