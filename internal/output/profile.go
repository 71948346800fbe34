// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss/v2"
	"gopkg.in/yaml.v3"

	"github.com/staranto/pokedexgo/internal/config"
	"github.com/staranto/pokedexgo/internal/pokemon"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"

	notAvailable = "N/A"
)

// Formats lists the accepted --output values.
var Formats = []string{FormatText, FormatJSON, FormatYAML}

type Options struct {
	Format string
	Color  bool
}

// Render writes rec to w in the requested format. A nil rec is reported as
// "no details" rather than an error.
func Render(w io.Writer, rec *pokemon.Record, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		b, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case FormatYAML:
		b, err := yaml.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal record: %w", err)
		}
		_, err = w.Write(b)
		return err
	case FormatText, "":
		return renderText(w, rec, opts.Color)
	}

	return fmt.Errorf("unknown output format %q", opts.Format)
}

func renderText(w io.Writer, rec *pokemon.Record, color bool) error {
	if rec == nil {
		_, err := fmt.Fprintln(w, "No details found for the selected Pokémon.")
		return err
	}

	header, label := plain, plain
	if color {
		header, label = styles()
	}

	var b strings.Builder
	line := func(name, value string) {
		fmt.Fprintf(&b, "%s %s\n", label(name+":"), value)
	}

	b.WriteString("\n" + header("--- Pokémon Profile ---") + "\n")
	line("Name", orNA(Capitalize(rec.Name)))
	line("ID", intOrNA(rec.ID))
	line("Height", intOrNA(rec.Height))
	line("Weight", intOrNA(rec.Weight))
	line("Types", joinCapitalized(rec.Types))
	line("Abilities", joinCapitalized(rec.Abilities))
	line("Base XP", intOrNA(rec.BaseExperience))
	if rec.SpriteFrontDefault != nil && *rec.SpriteFrontDefault != "" {
		line("Image URL", *rec.SpriteFrontDefault)
	}
	b.WriteString(header("------------------------") + "\n\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// Capitalize upper-cases the first letter of s and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

func joinCapitalized(items []string) string {
	if len(items) == 0 {
		return notAvailable
	}
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = Capitalize(item)
	}
	return strings.Join(out, ", ")
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func intOrNA(v *int) string {
	if v == nil {
		return notAvailable
	}
	return strconv.Itoa(*v)
}

func plain(s string) string { return s }

// styles returns the header and label renderers for colored output.
func styles() (header, label func(string) string) {
	headerColor, labelColor := getColors("colors")

	hs := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(headerColor))
	ls := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(labelColor))

	return func(s string) string { return hs.Render(s) },
		func(s string) string { return ls.Render(s) }
}

// getColors returns configured color values for the profile.
func getColors(key string) (header string, label string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#ffcb05")
	label, _ = config.GetString(fmt.Sprintf("%s.label", key), "#3d7dca")
	return
}
