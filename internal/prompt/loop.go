// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/pokedexgo/internal/output"
	"github.com/staranto/pokedexgo/internal/pokemon"
	"github.com/staranto/pokedexgo/internal/store"
)

const (
	Question = "Would you like to get a random Pokémon? (yes/no): "
	Farewell = "See you next time! Hope you enjoyed your Pokémon journey."
	Invalid  = "Invalid input. Please enter 'yes' or 'no'."
)

// State is where the loop goes after handling one answer.
type State int

const (
	StatePrompt State = iota
	StateExit
)

// Catalog is what the loop needs from the catalog client.
type Catalog interface {
	RandomName(ctx context.Context) (string, error)
	Details(ctx context.Context, name string) (*pokemon.Detail, error)
}

// Loop is the interactive yes/no session. Every failure inside an iteration
// is reported on Out and the loop carries on.
type Loop struct {
	Catalog Catalog
	Store   store.Store
	In      io.Reader
	Out     io.Writer
	Output  output.Options
}

func NewLoop(catalog Catalog, st store.Store, in io.Reader, out io.Writer, opts output.Options) *Loop {
	return &Loop{
		Catalog: catalog,
		Store:   st,
		In:      in,
		Out:     out,
		Output:  opts,
	}
}

// Run prompts until the user answers no or input ends.
func (l *Loop) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(l.In)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(l.Out, Question)
		if !scanner.Scan() {
			// EOF: finish the prompt line and leave quietly.
			fmt.Fprintln(l.Out)
			return scanner.Err()
		}

		if l.Handle(ctx, scanner.Text()) == StateExit {
			return nil
		}
	}
}

// Handle acts on one answer and reports the next state.
func (l *Loop) Handle(ctx context.Context, answer string) State {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "yes":
		_ = l.Random(ctx)
		return StatePrompt
	case "no":
		fmt.Fprintln(l.Out, Farewell)
		return StateExit
	default:
		fmt.Fprintln(l.Out, Invalid)
		return StatePrompt
	}
}

// Random picks a name from the catalog and looks it up. The returned error
// has already been reported on Out.
func (l *Loop) Random(ctx context.Context) error {
	name, err := l.Catalog.RandomName(ctx)
	if err != nil {
		fmt.Fprintf(l.Out, "Failed to fetch Pokémon list: %v\n", err)
		log.WithError(err).Debug("random name fetch failed")
		return err
	}

	fmt.Fprintf(l.Out, "Pokémon selected: %s\n", output.Capitalize(name))
	return l.Lookup(ctx, name)
}

// Lookup shows the stored record for name, or fetches, saves and shows a
// fresh one. A failed store lookup is treated as a miss and a failed save
// does not prevent the display. The returned error, already reported on Out,
// is non-nil only when nothing could be displayed.
func (l *Loop) Lookup(ctx context.Context, name string) error {
	display := output.Capitalize(name)

	rec, err := l.Store.Get(ctx, name)
	switch {
	case err == nil && rec != nil:
		fmt.Fprintf(l.Out, "'%s' is already stored in the collection.\n", display)
		return l.show(rec)
	case err == nil, errors.Is(err, store.ErrNotFound):
	default:
		fmt.Fprintf(l.Out, "Collection lookup failed for Pokémon: %v\n", err)
		log.WithError(err).WithField("name", name).Warn("store lookup failed, treating as a miss")
	}

	fmt.Fprintf(l.Out, "'%s' not found in the collection. Fetching and saving details...\n", display)

	detail, err := l.Catalog.Details(ctx, name)
	if err != nil {
		fmt.Fprintf(l.Out, "Unable to retrieve data for Pokémon '%s': %v\n", name, err)
		log.WithError(err).WithField("name", name).Debug("detail fetch failed")
		return err
	}

	fresh := pokemon.NewRecord(*detail)
	if err := l.Store.Put(ctx, fresh); err != nil {
		fmt.Fprintf(l.Out, "Error saving data to the collection: %v\n", err)
		log.WithError(err).WithField("name", fresh.Name).Warn("store save failed")
	} else {
		fmt.Fprintf(l.Out, "Successfully saved '%s' to the collection.\n", fresh.Name)
	}

	return l.show(&fresh)
}

func (l *Loop) show(rec *pokemon.Record) error {
	if err := output.Render(l.Out, rec, l.Output); err != nil {
		log.WithError(err).Error("failed to render record")
		return err
	}
	return nil
}
