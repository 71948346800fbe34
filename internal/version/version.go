// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package version holds the build version, stamped at link time with
// -ldflags "-X github.com/staranto/pokedexgo/internal/version.Version=...".
package version

var Version = "dev"
