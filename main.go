// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/pokedexgo/internal/command"
	"github.com/staranto/pokedexgo/internal/config"
	mylog "github.com/staranto/pokedexgo/internal/log"
	"github.com/staranto/pokedexgo/internal/version"
)

var ctx = context.Background()

var subcommands = []string{"play", "get", "init-table", "completion"}

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	// Short-circuit --version/-v.
	for _, a := range args[1:] {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	if _, err := config.Load(namespace(args)); err != nil {
		log.Debugf("no config file: %v", err)
	}
	args = expandArgumentSets(args)

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// namespace is the config namespace for args: the subcommand, or play when
// none is given.
func namespace(args []string) string {
	if len(args) > 1 && slices.Contains(subcommands, args[1]) {
		return args[1]
	}
	return "play"
}

// expandArgumentSets replaces an @set argument with the flags listed under
// <namespace>.<set> in the config file. Without an @set, <namespace>.defaults
// is used when present. The flags are inserted right after the subcommand so
// anything given explicitly on the command line still wins.
func expandArgumentSets(args []string) []string {
	if len(args) < 1 {
		return args
	}

	ns := namespace(args)
	idx := 1
	if len(args) > 1 && args[1] == ns {
		idx = 2
	}

	// Short-circuit for --help/-h.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return args
		}
	}

	set := "defaults"
	out := make([]string, 0, len(args))
	for _, a := range args {
		if strings.HasPrefix(a, "@") && len(a) > 1 {
			set = a[1:]
			continue
		}
		out = append(out, a)
	}

	setArgs, _ := config.GetStringSlice(ns + "." + set)
	var expanded []string
	for _, arg := range setArgs {
		expanded = append(expanded, strings.Fields(arg)...)
	}

	log.Debugf("idx=%d, set=%s, expanded=%v", idx, set, expanded)
	if len(expanded) == 0 {
		return out
	}

	return slices.Concat(out[:idx], expanded, out[idx:])
}
