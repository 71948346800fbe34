// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/staranto/pokedexgo/internal/pokemon"
	"github.com/staranto/pokedexgo/internal/store"
)

// DefaultPrefix is the key prefix used when none is configured.
const DefaultPrefix = "pokemon/"

var ErrBucketNotSet = errors.New("bucket is not set")

// API is the slice of the S3 client this backend calls.
type API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// BackendS3 stores each record as a JSON document at {Prefix}{name}.json.
type BackendS3 struct {
	Bucket string
	Prefix string
	client API
}

type Option func(*BackendS3)

func WithBucket(bucket string) Option {
	return func(be *BackendS3) { be.Bucket = bucket }
}

// WithPrefix sets the key prefix. A non-empty prefix always ends in "/".
func WithPrefix(prefix string) Option {
	return func(be *BackendS3) {
		if prefix != "" && !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}
		be.Prefix = prefix
	}
}

func NewBackendS3(client API, opts ...Option) (*BackendS3, error) {
	if client == nil {
		return nil, errors.New("s3 client is nil")
	}

	be := &BackendS3{
		Prefix: DefaultPrefix,
		client: client,
	}
	for _, opt := range opts {
		opt(be)
	}

	if be.Bucket == "" {
		return nil, fmt.Errorf("s3 backend: %w (set --bucket or POKEDEX_BUCKET)", ErrBucketNotSet)
	}

	log.Debugf("NewBackendS3: bucket=%s prefix=%s", be.Bucket, be.Prefix)
	return be, nil
}

// Key returns the object key for name.
func (be *BackendS3) Key(name string) string {
	return be.Prefix + name + ".json"
}

func (be *BackendS3) Get(ctx context.Context, name string) (*pokemon.Record, error) {
	key := be.Key(name)

	result, err := be.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(be.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get S3 object %s: %w: %w", key, store.ErrUnavailable, err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read S3 object body: %w: %w", store.ErrUnavailable, err)
	}

	var rec pokemon.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to decode S3 object %s: %w: %w", key, store.ErrUnavailable, err)
	}

	return &rec, nil
}

func (be *BackendS3) Put(ctx context.Context, rec pokemon.Record) error {
	body, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w: %w", rec.Name, store.ErrUnavailable, err)
	}

	key := be.Key(rec.Name)
	if _, err := be.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(be.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	}); err != nil {
		return fmt.Errorf("failed to put S3 object %s: %w: %w", key, store.ErrUnavailable, err)
	}

	return nil
}

func (be *BackendS3) Close() error {
	return nil
}

func (be *BackendS3) String() string {
	return "s3://" + be.Bucket + "/" + be.Prefix
}

// isNotFound recognises a missing key. AWS returns a modeled NoSuchKey; some
// S3-compatible servers only carry the code.
func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return true
		}
	}

	return false
}
