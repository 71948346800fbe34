// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/staranto/pokedexgo/internal/meta"
	"github.com/staranto/pokedexgo/internal/prompt"
)

func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/pokemon", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": [{"name": "pikachu", "url": ""}]}`))
	})
	mux.HandleFunc("/api/v2/pokemon/pikachu", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
		  "name": "pikachu", "id": 25, "height": 4, "weight": 60,
		  "types": [{"type": {"name": "electric"}}],
		  "abilities": [{"ability": {"name": "static"}}],
		  "base_experience": 112,
		  "sprites": {"front_default": "http://img/pikachu.png"}
		}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// run builds the app around in/out and runs args. Global flags select the
// memory store and the test catalog.
func run(t *testing.T, srv *httptest.Server, input string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("POKEDEX_CACHE", "0")

	var out bytes.Buffer
	argv := append([]string{"pokedex",
		"--store", "memory",
		"--base-url", srv.URL + "/api/v2/",
		"--no-color",
	}, args...)

	app, err := NewApp(context.Background(), argv, meta.Meta{In: strings.NewReader(input), Out: &out})
	require.NoError(t, err)

	err = app.Run(context.Background(), argv)
	return out.String(), err
}

func TestApp_DefaultActionPlays(t *testing.T) {
	srv := newCatalogServer(t)

	out, err := run(t, srv, "yes\nno\n")
	require.NoError(t, err)

	assert.Contains(t, out, prompt.Question)
	assert.Contains(t, out, "Pokémon selected: Pikachu")
	assert.Contains(t, out, "Name: Pikachu\n")
	assert.Contains(t, out, "Types: Electric\n")
	assert.Contains(t, out, "Image URL: http://img/pikachu.png\n")
	assert.True(t, strings.HasSuffix(out, prompt.Farewell+"\n"))
}

func TestApp_Play(t *testing.T) {
	srv := newCatalogServer(t)

	out, err := run(t, srv, "YES\nyes\nNo\n", "play")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "not found in the collection"))
	assert.Equal(t, 1, strings.Count(out, "is already stored in the collection"))
	assert.Equal(t, 2, strings.Count(out, "--- Pokémon Profile ---"))
}

func TestApp_PlayEOF(t *testing.T) {
	srv := newCatalogServer(t)

	out, err := run(t, srv, "", "play")
	require.NoError(t, err)
	assert.Equal(t, prompt.Question+"\n", out)
}

func TestApp_Get(t *testing.T) {
	srv := newCatalogServer(t)

	out, err := run(t, srv, "", "--output", "json", "get", "Pikachu")
	require.NoError(t, err)

	assert.Contains(t, out, "Successfully saved 'pikachu' to the collection.")
	assert.Contains(t, out, `"pokemon_name": "pikachu"`)
	assert.Contains(t, out, `"sprite_front_default": "http://img/pikachu.png"`)
}

func TestApp_GetUnknown(t *testing.T) {
	srv := newCatalogServer(t)

	out, err := run(t, srv, "", "get", "missingno")
	assert.Error(t, err)
	assert.Contains(t, out, "Unable to retrieve data for Pokémon 'missingno'")
}

func TestApp_GetRequiresName(t *testing.T) {
	srv := newCatalogServer(t)

	_, err := run(t, srv, "", "get")
	assert.ErrorIs(t, err, ErrNameRequired)
}

func TestApp_BadFlags(t *testing.T) {
	srv := newCatalogServer(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "unknown output", args: []string{"--output", "raw", "play"}},
		{name: "unknown store", args: []string{"--store", "redis", "play"}},
		{name: "negative retries", args: []string{"--retries", "-1", "play"}},
		{name: "s3 without bucket", args: []string{"--store", "s3", "play"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, srv, "no\n", tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestApp_InitTableRejectsOtherStores(t *testing.T) {
	srv := newCatalogServer(t)

	_, err := run(t, srv, "", "init-table")
	assert.ErrorContains(t, err, "init-table only applies to --store dynamodb")
}

func TestApp_Completion(t *testing.T) {
	srv := newCatalogServer(t)

	for _, shell := range []string{"bash", "zsh"} {
		t.Run(shell, func(t *testing.T) {
			out, err := run(t, srv, "", "completion", shell)
			require.NoError(t, err)
			assert.Contains(t, out, "_pokedex")
		})
	}
}

func TestGetMeta(t *testing.T) {
	m := meta.Meta{Args: []string{"pokedex", "get"}}
	parent := &cli.Command{Name: "pokedex", Metadata: map[string]any{"meta": m}}
	child := &cli.Command{Name: "get"}
	parent.Commands = []*cli.Command{child}

	assert.Equal(t, meta.Meta{}, GetMeta(nil))
	assert.Equal(t, m.Args, GetMeta(parent).Args)
	assert.Equal(t, meta.Meta{}, GetMeta(&cli.Command{Metadata: map[string]any{"meta": "nope"}}))
}

func TestNewApp_Commands(t *testing.T) {
	app, err := NewApp(context.Background(), []string{"pokedex"}, meta.Meta{})
	require.NoError(t, err)

	var names []string
	for _, c := range app.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, commandNames, names)

	m := GetMeta(app)
	assert.Equal(t, []string{"pokedex"}, m.Args)
}
