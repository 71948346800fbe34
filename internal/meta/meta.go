// Copyright © 2026 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"
	"io"

	"github.com/staranto/pokedexgo/internal/config"
)

// Meta are the meta-options that are available on all commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context

	// In and Out are the console streams the loop reads answers from and
	// writes prompts and profiles to.
	In  io.Reader
	Out io.Writer
}
