// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/pokedexgo/internal/config"
	"github.com/staranto/pokedexgo/internal/meta"
)

// Names of the subcommands. A bare `pokedex` runs play.
var commandNames = []string{"play", "get", "init-table", "completion"}

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	return NewApp(ctx, args, meta.Meta{In: os.Stdin, Out: os.Stdout})
}

// NewApp builds the command tree. The console streams in m are kept; Args,
// Config and Context are filled in from args and the config file.
func NewApp(ctx context.Context, args []string, m meta.Meta) (*cli.Command, error) {
	// The arg[1] immediately following the binary (arg[0]) is the pokedex
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. Without a subcommand, the namespace is play.
	ns := "play"
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") && slices.Contains(commandNames, args[1]) {
		ns = args[1]
	}

	cfg, _ := config.Load(ns)
	m.Args = args
	m.Config = cfg
	m.Context = ctx

	app := &cli.Command{
		Name:  "pokedex",
		Usage: "catch random Pokémon and keep them in a collection",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "pokedex version info",
				HideDefault: true,
			},
		}, NewGlobalFlags(ns)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: PlayCommandAction,
	}

	app.Commands = append(app.Commands,
		PlayCommandBuilder(app, m),
		GetCommandBuilder(app, m),
		InitTableCommandBuilder(app, m),
		CompletionCommandBuilder(app, m),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range append([]*cli.Command{app}, app.Commands...) {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
