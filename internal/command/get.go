// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"strings"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/pokedexgo/internal/meta"
	"github.com/staranto/pokedexgo/internal/prompt"
)

var ErrNameRequired = errors.New("exactly one Pokémon NAME is required")

// GetCommandAction looks up a single named Pokémon, fetching and saving it
// on a miss.
func GetCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[min(1, len(m.Args)):])

	if ShortCircuitTLDR(ctx, cmd, "get") {
		return nil
	}

	if err := GetCommandValidator(ctx, cmd); err != nil {
		return err
	}
	name := strings.ToLower(strings.TrimSpace(cmd.Args().First()))

	return WithLoop(ctx, cmd, func(loop *prompt.Loop) error {
		return loop.Lookup(ctx, name)
	})
}

func GetCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "look up one Pokémon by name",
		UsageText: `pokedex get NAME [options]`,
		ArgsUsage: "NAME",
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  []cli.Flag{newTLDRFlag()},
		Action: GetCommandAction,
	}
}

// GetCommandValidator requires exactly one non-blank NAME.
func GetCommandValidator(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 || strings.TrimSpace(cmd.Args().First()) == "" {
		return ErrNameRequired
	}
	return JammedFlagValidator(cmd.Args().First())
}
