// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os"
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/pokedexgo/internal/backend"
	"github.com/staranto/pokedexgo/internal/backend/dynamo"
	"github.com/staranto/pokedexgo/internal/backend/s3"
	"github.com/staranto/pokedexgo/internal/catalog"
	"github.com/staranto/pokedexgo/internal/config"
)

func init() {
	cfg, _ = config.Load("")
}

var cfg config.Type

// newTLDRFlag returns a fresh --tldr flag. Flags carry parse state, so each
// command gets its own.
func newTLDRFlag() *cli.BoolFlag {
	return &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
}

// NewGlobalFlags returns the flags shared by every command. ns is the config
// namespace consulted before the top level of pokedex.yaml.
func NewGlobalFlags(ns string) (flags []cli.Flag) {
	flags = []cli.Flag{
		NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, &cli.StringFlag{
			Name:    "store",
			Usage:   "record store backend",
			Sources: cli.NewValueSourceChain(cli.EnvVar("POKEDEX_STORE")),
			Value:   backend.TypeDynamoDB,
			Validator: func(value string) error {
				return FlagValidators(value, StoreValidator)
			},
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, &cli.StringFlag{
			Name:    "table",
			Usage:   "DynamoDB table name",
			Sources: cli.NewValueSourceChain(cli.EnvVar("POKEDEX_TABLE")),
			Value:   dynamo.DefaultTable,
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, &cli.StringFlag{
			Name:    "bucket",
			Usage:   "S3 bucket for --store s3",
			Sources: cli.NewValueSourceChain(cli.EnvVar("POKEDEX_BUCKET")),
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, &cli.StringFlag{
			Name:    "prefix",
			Usage:   "S3 key prefix for --store s3",
			Sources: cli.NewValueSourceChain(cli.EnvVar("POKEDEX_PREFIX")),
			Value:   s3.DefaultPrefix,
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, &cli.StringFlag{
			Name:    "region",
			Usage:   "AWS region. Overrides the SDK default chain",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_REGION")),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, &cli.StringFlag{
			Name:    "profile",
			Usage:   "AWS shared config profile",
			Sources: cli.NewValueSourceChain(cli.EnvVar("AWS_PROFILE")),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, &cli.StringFlag{
			Name:    "endpoint",
			Usage:   "store service endpoint, e.g. DynamoDB Local or MinIO",
			Sources: cli.NewValueSourceChain(cli.EnvVar("POKEDEX_ENDPOINT")),
		}),
		NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, &cli.StringFlag{
			Name:    "base-url",
			Usage:   "catalog API base URL",
			Sources: cli.NewValueSourceChain(cli.EnvVar("POKEDEX_BASE_URL")),
			Value:   catalog.DefaultBaseURL,
			Validator: func(value string) error {
				return FlagValidators(value, URLValidator)
			},
		}),
		&cli.IntFlag{
			Name:  "limit",
			Usage: "size of the name listing to pick from",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("POKEDEX_LIMIT"),
				yaml.YAML(ns+".limit", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("limit", altsrc.StringSourcer(cfg.Source)),
			),
			Value: catalog.DefaultLimit,
			Validator: func(value int) error {
				return FlagValidators(value, PositiveValidator)
			},
		},
		&cli.IntFlag{
			Name:  "retries",
			Usage: "catalog request retries with backoff",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("POKEDEX_RETRIES"),
				yaml.YAML(ns+".retries", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("retries", altsrc.StringSourcer(cfg.Source)),
			),
			Value: 0,
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.IntFlag{
			Name:  "cache-hours",
			Usage: "reuse the name listing for this many hours (0 disables)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("POKEDEX_CACHE_HOURS"),
				yaml.YAML(ns+".cache-hours", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("cache-hours", altsrc.StringSourcer(cfg.Source)),
			),
			Value: 0,
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+".color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: isTerminal(os.Stdout),
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+".output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain, after any env sources.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// pathHas checks if the given executable is on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
