// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/pokedexgo/internal/backend"
	"github.com/staranto/pokedexgo/internal/cacheutil"
	"github.com/staranto/pokedexgo/internal/catalog"
	"github.com/staranto/pokedexgo/internal/meta"
	"github.com/staranto/pokedexgo/internal/output"
	"github.com/staranto/pokedexgo/internal/prompt"
	"github.com/staranto/pokedexgo/internal/store"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr pokedex <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "pokedex", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the Metadata of cmd or the nearest
// ancestor that has one. If none is found, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil {
		return meta.Meta{}
	}
	for _, c := range cmd.Lineage() {
		if c.Metadata == nil {
			continue
		}
		if m, ok := c.Metadata["meta"].(meta.Meta); ok {
			return m
		}
	}
	return meta.Meta{}
}

// StoreConfig collects the backend settings from the flags.
func StoreConfig(cmd *cli.Command) backend.Config {
	return backend.Config{
		Type:     cmd.String("store"),
		Table:    cmd.String("table"),
		Bucket:   cmd.String("bucket"),
		Prefix:   cmd.String("prefix"),
		Region:   cmd.String("region"),
		Profile:  cmd.String("profile"),
		Endpoint: cmd.String("endpoint"),
	}
}

// OutputOptions collects the display settings from the flags.
func OutputOptions(cmd *cli.Command) output.Options {
	return output.Options{
		Format: cmd.String("output"),
		Color:  cmd.Bool("color"),
	}
}

// EnsureCacheDir pre-creates the cache directory when the listing cache is
// on (hours > 0).
func EnsureCacheDir(hours int) error {
	if hours <= 0 {
		return nil
	}
	_, _, err := cacheutil.EnsureBaseDir()
	return err
}

// NewCatalog builds the catalog client from the flags.
func NewCatalog(cmd *cli.Command) (*catalog.Client, error) {
	// Non-fatal: the client still works, it just cannot cache the listing.
	if err := EnsureCacheDir(int(cmd.Int("cache-hours"))); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	client, err := catalog.NewClient(
		catalog.WithBaseURL(cmd.String("base-url")),
		catalog.WithLimit(int(cmd.Int("limit"))),
		catalog.WithRetries(int(cmd.Int("retries"))),
		catalog.WithCacheHours(int(cmd.Int("cache-hours"))),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog client: %w", err)
	}
	return client, nil
}

// OpenStore opens the backend selected by the flags. The caller must Close
// the returned store.
func OpenStore(ctx context.Context, cmd *cli.Command) (store.Store, error) {
	st, err := backend.NewStore(ctx, StoreConfig(cmd))
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	log.Debugf("store: %s", st)
	return st, nil
}

// WithLoop opens the store and catalog, hands a ready loop to fn and closes
// the store afterwards.
func WithLoop(ctx context.Context, cmd *cli.Command, fn func(*prompt.Loop) error) error {
	m := GetMeta(cmd)

	cat, err := NewCatalog(cmd)
	if err != nil {
		return err
	}

	st, err := OpenStore(ctx, cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.WithError(err).Warn("failed to close store")
		}
	}()

	in, out := m.In, m.Out
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}

	return fn(prompt.NewLoop(cat, st, in, out, OutputOptions(cmd)))
}
