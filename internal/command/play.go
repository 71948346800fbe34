// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/pokedexgo/internal/meta"
	"github.com/staranto/pokedexgo/internal/prompt"
)

// PlayCommandAction runs the interactive loop until the user answers no or
// input ends.
func PlayCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[min(1, len(m.Args)):])

	if ShortCircuitTLDR(ctx, cmd, "play") {
		return nil
	}

	return WithLoop(ctx, cmd, func(loop *prompt.Loop) error {
		return loop.Run(ctx)
	})
}

func PlayCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "interactive random Pokémon loop",
		UsageText: `pokedex play [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  []cli.Flag{newTLDRFlag()},
		Action: PlayCommandAction,
	}
}
