// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package pokemon

// NamedResource is the {name, url} pair the catalog uses for references.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TypeSlot is one entry of the detail payload's types list.
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// AbilitySlot is one entry of the detail payload's abilities list.
type AbilitySlot struct {
	Slot     int           `json:"slot"`
	IsHidden bool          `json:"is_hidden"`
	Ability  NamedResource `json:"ability"`
}

// Sprites holds the image URLs of a detail payload. Only front_default is
// carried into a Record.
type Sprites struct {
	FrontDefault *string `json:"front_default"`
}

// Detail is the subset of the catalog's detail payload this program reads.
// Optional fields are pointers so absence survives decoding.
type Detail struct {
	Name           string        `json:"name"`
	ID             int           `json:"id"`
	Height         int           `json:"height"`
	Weight         int           `json:"weight"`
	Types          []TypeSlot    `json:"types"`
	Abilities      []AbilitySlot `json:"abilities"`
	BaseExperience *int          `json:"base_experience"`
	Sprites        Sprites       `json:"sprites"`
}

// Record is the flattened, stored form of a Detail. Name is the primary key.
// Every scalar besides Name is a pointer so an item missing the attribute
// reads back as absent rather than zero.
type Record struct {
	Name               string   `dynamodbav:"pokemon_name" json:"pokemon_name" yaml:"pokemon_name"`
	ID                 *int     `dynamodbav:"id" json:"id" yaml:"id"`
	Height             *int     `dynamodbav:"height" json:"height" yaml:"height"`
	Weight             *int     `dynamodbav:"weight" json:"weight" yaml:"weight"`
	Types              []string `dynamodbav:"types" json:"types" yaml:"types"`
	Abilities          []string `dynamodbav:"abilities" json:"abilities" yaml:"abilities"`
	BaseExperience     *int     `dynamodbav:"base_experience" json:"base_experience" yaml:"base_experience"`
	SpriteFrontDefault *string  `dynamodbav:"sprite_front_default" json:"sprite_front_default" yaml:"sprite_front_default"`
}

// NewRecord maps a detail payload onto the stored record shape. It only reads
// d, so mapping the same payload twice yields equal records.
func NewRecord(d Detail) Record {
	r := Record{
		Name:      d.Name,
		ID:        intPtr(d.ID),
		Height:    intPtr(d.Height),
		Weight:    intPtr(d.Weight),
		Types:     make([]string, 0, len(d.Types)),
		Abilities: make([]string, 0, len(d.Abilities)),
	}

	for _, t := range d.Types {
		r.Types = append(r.Types, t.Type.Name)
	}
	for _, a := range d.Abilities {
		r.Abilities = append(r.Abilities, a.Ability.Name)
	}

	if d.BaseExperience != nil {
		xp := *d.BaseExperience
		r.BaseExperience = &xp
	}
	if d.Sprites.FrontDefault != nil {
		url := *d.Sprites.FrontDefault
		r.SpriteFrontDefault = &url
	}

	return r
}

func intPtr(v int) *int {
	return &v
}
