// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/staranto/pokedexgo/internal/cacheutil"
	"github.com/staranto/pokedexgo/internal/pokemon"
)

const (
	DefaultBaseURL = "https://pokeapi.co/api/v2/"
	DefaultLimit   = 10000
)

var (
	// ErrFetchFailed wraps every transport, HTTP status and decoding failure.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrEmptyListing means the listing parsed but held no names.
	ErrEmptyListing = errors.New("catalog listing is empty")
)

// Client reads the PokeAPI listing and detail endpoints.
type Client struct {
	BaseURL    *url.URL
	Limit      int
	CacheHours int

	http *retryablehttp.Client
	pick func(n int) int
}

type Option func(*Client) error

// WithBaseURL overrides DefaultBaseURL. The URL must be absolute.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		u, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("invalid base URL %q: %w", raw, err)
		}
		if !u.IsAbs() {
			return fmt.Errorf("invalid base URL %q: must be absolute", raw)
		}
		c.BaseURL = u
		return nil
	}
}

// WithLimit sets the listing page size. Values <= 0 keep DefaultLimit.
func WithLimit(limit int) Option {
	return func(c *Client) error {
		if limit > 0 {
			c.Limit = limit
		}
		return nil
	}
}

// WithRetries enables up to n retries with exponential backoff. Zero, the
// default, means a single attempt per request.
func WithRetries(n int) Option {
	return func(c *Client) error {
		if n < 0 {
			return fmt.Errorf("retries must be >= 0, got %d", n)
		}
		c.http.RetryMax = n
		return nil
	}
}

// WithRetryWait bounds the backoff between retries.
func WithRetryWait(minWait, maxWait time.Duration) Option {
	return func(c *Client) error {
		c.http.RetryWaitMin = minWait
		c.http.RetryWaitMax = maxWait
		return nil
	}
}

// WithCacheHours keeps the raw listing on disk for the given number of hours.
// Zero disables the listing cache.
func WithCacheHours(hours int) Option {
	return func(c *Client) error {
		c.CacheHours = hours
		return nil
	}
}

// WithHTTPClient swaps the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc != nil {
			c.http.HTTPClient = hc
		}
		return nil
	}
}

// WithPicker replaces the uniform random index chooser. pick receives the
// listing length and must return an index in [0, n).
func WithPicker(pick func(n int) int) Option {
	return func(c *Client) error {
		if pick != nil {
			c.pick = pick
		}
		return nil
	}
}

func NewClient(opts ...Option) (*Client, error) {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.Logger = leveledLogger{}

	c := &Client{
		Limit: DefaultLimit,
		http:  rc,
		pick:  rand.IntN,
	}
	if err := WithBaseURL(DefaultBaseURL)(c); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// ListURL is the listing endpoint for the configured base and limit.
func (c *Client) ListURL() string {
	u := c.BaseURL.JoinPath("pokemon")
	u.RawQuery = url.Values{"limit": []string{strconv.Itoa(c.Limit)}}.Encode()
	return u.String()
}

// DetailURL is the detail endpoint for name.
func (c *Client) DetailURL(name string) string {
	return c.BaseURL.JoinPath("pokemon", name).String()
}

// Names returns every name in the listing, in catalog order.
func (c *Client) Names(ctx context.Context) ([]string, error) {
	listURL := c.ListURL()

	body, cached := c.cachedListing(listURL)
	if !cached {
		var err error
		body, err = c.hit(ctx, listURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
		}
	}

	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: malformed listing JSON from %s", ErrFetchFailed, listURL)
	}

	results := gjson.GetBytes(body, "results.#.name").Array()
	names := make([]string, 0, len(results))
	for _, r := range results {
		if n := r.String(); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, ErrEmptyListing)
	}

	log.Debugf("catalog listing: %s names in %s", humanize.Comma(int64(len(names))), humanize.Bytes(uint64(len(body))))

	if !cached && c.CacheHours > 0 {
		if err := cacheutil.Write(c.cacheDirs(), listURL, body); err != nil {
			log.WithError(err).Warn("failed to write listing to cache")
		}
	}

	return names, nil
}

// RandomName fetches the listing and returns one name chosen uniformly.
func (c *Client) RandomName(ctx context.Context) (string, error) {
	names, err := c.Names(ctx)
	if err != nil {
		return "", err
	}
	return names[c.pick(len(names))], nil
}

// Details fetches and decodes the detail payload for name.
func (c *Client) Details(ctx context.Context, name string) (*pokemon.Detail, error) {
	body, err := c.hit(ctx, c.DetailURL(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	var d pokemon.Detail
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("%w: failed to decode %q: %w", ErrFetchFailed, name, err)
	}

	return &d, nil
}

func (c *Client) cacheDirs() []string {
	return []string{"catalog", c.BaseURL.Host}
}

func (c *Client) cachedListing(listURL string) ([]byte, bool) {
	if c.CacheHours <= 0 {
		return nil, false
	}

	if err := cacheutil.Purge(c.CacheHours); err != nil {
		log.WithError(err).Warn("failed to purge cache")
	}

	entry, ok := cacheutil.Read(c.cacheDirs(), listURL)
	if !ok {
		return nil, false
	}

	log.Debugf("cache hit: %s (written %s)", entry.Path, humanize.Time(entry.ModTime))
	return entry.Data, true
}
