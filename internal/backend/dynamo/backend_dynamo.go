// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/staranto/pokedexgo/internal/pokemon"
	"github.com/staranto/pokedexgo/internal/store"
)

const (
	// DefaultTable is the table name used when none is configured.
	DefaultTable = "PokemonCollection"
	// KeyAttribute is the table's partition key.
	KeyAttribute = "pokemon_name"

	createTableWait = 2 * time.Minute
)

// API is the slice of the DynamoDB client this backend calls.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

type BackendDynamo struct {
	Table  string
	client API
}

type Option func(*BackendDynamo)

// WithTable overrides DefaultTable. An empty name is ignored.
func WithTable(table string) Option {
	return func(be *BackendDynamo) {
		if table != "" {
			be.Table = table
		}
	}
}

func NewBackendDynamo(client API, opts ...Option) (*BackendDynamo, error) {
	if client == nil {
		return nil, errors.New("dynamodb client is nil")
	}

	be := &BackendDynamo{
		Table:  DefaultTable,
		client: client,
	}
	for _, opt := range opts {
		opt(be)
	}

	log.Debugf("NewBackendDynamo: table=%s", be.Table)
	return be, nil
}

func (be *BackendDynamo) key(name string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		KeyAttribute: &types.AttributeValueMemberS{Value: name},
	}
}

func (be *BackendDynamo) Get(ctx context.Context, name string) (*pokemon.Record, error) {
	out, err := be.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: awsv2.String(be.Table),
		Key:       be.key(name),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get item %q from %s: %w: %w", name, be.Table, store.ErrUnavailable, err)
	}

	if len(out.Item) == 0 {
		return nil, store.ErrNotFound
	}

	var rec pokemon.Record
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode item %q: %w: %w", name, store.ErrUnavailable, err)
	}

	return &rec, nil
}

func (be *BackendDynamo) Put(ctx context.Context, rec pokemon.Record) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("failed to encode item %q: %w: %w", rec.Name, store.ErrUnavailable, err)
	}

	if _, err := be.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: awsv2.String(be.Table),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("failed to put item %q into %s: %w: %w", rec.Name, be.Table, store.ErrUnavailable, err)
	}

	return nil
}

// CreateTable provisions the table with an on-demand billing mode and waits
// for it to become active. A table that already exists is not an error.
func (be *BackendDynamo) CreateTable(ctx context.Context) error {
	_, err := be.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: awsv2.String(be.Table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: awsv2.String(KeyAttribute), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: awsv2.String(KeyAttribute), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})

	var inUse *types.ResourceInUseException
	switch {
	case errors.As(err, &inUse):
		log.Debugf("table %s already exists", be.Table)
		return nil
	case err != nil:
		return fmt.Errorf("failed to create table %s: %w: %w", be.Table, store.ErrUnavailable, err)
	}

	waiter := dynamodb.NewTableExistsWaiter(be.client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: awsv2.String(be.Table)}, createTableWait); err != nil {
		return fmt.Errorf("table %s did not become active: %w", be.Table, err)
	}

	return nil
}

func (be *BackendDynamo) Close() error {
	return nil
}

func (be *BackendDynamo) String() string {
	return "dynamodb:" + be.Table
}
