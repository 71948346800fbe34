// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"

	awsx "github.com/staranto/pokedexgo/internal/aws"
	"github.com/staranto/pokedexgo/internal/backend/dynamo"
	"github.com/staranto/pokedexgo/internal/backend/memory"
	"github.com/staranto/pokedexgo/internal/backend/s3"
	"github.com/staranto/pokedexgo/internal/store"
)

const (
	TypeDynamoDB = "dynamodb"
	TypeS3       = "s3"
	TypeMemory   = "memory"
)

// Types lists the accepted --store values.
var Types = []string{TypeDynamoDB, TypeS3, TypeMemory}

var ErrUnknownType = errors.New("unknown store type")

// Config selects and parameterises a store backend.
type Config struct {
	Type     string
	Table    string
	Bucket   string
	Prefix   string
	Region   string
	Profile  string
	Endpoint string
}

// NewStore opens the backend named by cfg.Type. The caller owns the returned
// store and must Close it.
func NewStore(ctx context.Context, cfg Config) (store.Store, error) {
	log.Debugf("NewStore: %+v", cfg)

	switch cfg.Type {
	case TypeDynamoDB, "":
		be, err := NewDynamo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return be, nil
	case TypeS3:
		awsCfg, err := awsx.LoadAWSConfig(ctx, awsOptions(cfg)...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		client := awsx.NewS3(awsCfg, awsx.WithS3Endpoint(cfg.Endpoint))
		opts := []s3.Option{s3.WithBucket(cfg.Bucket)}
		if cfg.Prefix != "" {
			opts = append(opts, s3.WithPrefix(cfg.Prefix))
		}
		be, err := s3.NewBackendS3(client, opts...)
		if err != nil {
			return nil, err
		}
		return be, nil
	case TypeMemory:
		return memory.NewBackendMemory(), nil
	}

	return nil, fmt.Errorf("%w %q (want one of %v)", ErrUnknownType, cfg.Type, Types)
}

// NewDynamo opens the DynamoDB backend directly, for callers that need its
// table management methods.
func NewDynamo(ctx context.Context, cfg Config) (*dynamo.BackendDynamo, error) {
	awsCfg, err := awsx.LoadAWSConfig(ctx, awsOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := awsx.NewDynamoDB(awsCfg, awsx.WithDynamoDBEndpoint(cfg.Endpoint))
	return dynamo.NewBackendDynamo(client, dynamo.WithTable(cfg.Table))
}

func awsOptions(cfg Config) []awsx.Option {
	var opts []awsx.Option
	if cfg.Region != "" {
		opts = append(opts, awsx.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		opts = append(opts, awsx.WithProfile(cfg.Profile))
	}
	return opts
}
