// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/staranto/pokedexgo/internal/backend"
	"github.com/staranto/pokedexgo/internal/meta"
)

// InitTableCommandAction creates the DynamoDB table named by --table and
// waits for it to become active. An existing table is left alone.
func InitTableCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[min(1, len(m.Args)):])

	if ShortCircuitTLDR(ctx, cmd, "init-table") {
		return nil
	}

	sc := StoreConfig(cmd)
	if sc.Type != "" && sc.Type != backend.TypeDynamoDB {
		return fmt.Errorf("init-table only applies to --store %s, not %q", backend.TypeDynamoDB, sc.Type)
	}

	be, err := backend.NewDynamo(ctx, sc)
	if err != nil {
		return err
	}
	defer be.Close()

	if err := be.CreateTable(ctx); err != nil {
		return err
	}

	out := m.Out
	if out == nil {
		return nil
	}
	fmt.Fprintf(out, "Table %s is ready.\n", be.Table)
	return nil
}

func InitTableCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "init-table",
		Usage:     "create the DynamoDB collection table",
		UsageText: `pokedex init-table [--table NAME] [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags:  []cli.Flag{newTLDRFlag()},
		Action: InitTableCommandAction,
	}
}
