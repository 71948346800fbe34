// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagValidators(t *testing.T) {
	tests := []struct {
		name      string
		value     any
		validator FlagValidatorType
		wantErr   bool
	}{
		{name: "output text", value: "text", validator: OutputValidator},
		{name: "output json", value: "json", validator: OutputValidator},
		{name: "output yaml", value: "yaml", validator: OutputValidator},
		{name: "output raw", value: "raw", validator: OutputValidator, wantErr: true},
		{name: "store dynamodb", value: "dynamodb", validator: StoreValidator},
		{name: "store s3", value: "s3", validator: StoreValidator},
		{name: "store memory", value: "memory", validator: StoreValidator},
		{name: "store redis", value: "redis", validator: StoreValidator, wantErr: true},
		{name: "jammed", value: "--table", validator: JammedFlagValidator, wantErr: true},
		{name: "not jammed", value: "Pokedex", validator: JammedFlagValidator},
		{name: "zero retries", value: 0, validator: NonNegativeValidator},
		{name: "negative retries", value: -1, validator: NonNegativeValidator, wantErr: true},
		{name: "zero limit", value: 0, validator: PositiveValidator, wantErr: true},
		{name: "limit", value: 151, validator: PositiveValidator},
		{name: "https url", value: "https://pokeapi.co/api/v2/", validator: URLValidator},
		{name: "http url", value: "http://127.0.0.1:8080/", validator: URLValidator},
		{name: "relative url", value: "/api/v2/", validator: URLValidator, wantErr: true},
		{name: "ftp url", value: "ftp://pokeapi.co/", validator: URLValidator, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FlagValidators(tt.value, tt.validator)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFlagValidators_StopsAtFirstError(t *testing.T) {
	calls := 0
	count := func(any) error { calls++; return nil }

	err := FlagValidators("--x", count, JammedFlagValidator, count)
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
