// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eutils queries the NCBI E-utilities API: esearch resolves a query
// into ranked PubMed IDs and esummary returns the summary record for a batch
// of IDs.
package eutils

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pubmed-scraper/internal/httputil"
	"github.com/pdiddy/pubmed-scraper/pkg/types"
)

const (
	// DefaultBaseURL is the base URL for the NCBI E-utilities API.
	DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

	// DefaultDatabase is the Entrez database searched.
	DefaultDatabase = "pubmed"

	// DefaultMaxResults is the cap on IDs returned per query.
	DefaultMaxResults = 10

	// DefaultTimeout is the request timeout for both endpoints.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is sent when the config leaves UserAgent empty.
	DefaultUserAgent = "pubmed-scraper/0.1"

	// NCBI allows 3 requests/second without an API key and 10 with one.
	rateWithoutKey = 3.0
	rateWithKey    = 10.0
)

// Client talks to esearch.fcgi and esummary.fcgi. It is not safe to share
// across goroutines that mutate its options after construction.
type Client struct {
	cfg     types.EutilsConfig
	http    *http.Client
	limiter httputil.Limiter
	log     zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client (e.g. an httptest client).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLimiter replaces the NCBI-policy rate limiter. Pass nil to disable throttling.
func WithLimiter(l httputil.Limiter) Option {
	return func(c *Client) { c.limiter = l }
}

// WithLogger sets the logger used when ctx carries none.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client. Zero-valued config fields take the package defaults.
func New(cfg types.EutilsConfig, opts ...Option) *Client {
	applyDefaults(&cfg)

	c := &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: httputil.NewLimiter(cfg.RateLimit),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func applyDefaults(cfg *types.EutilsConfig) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.MaxResults <= 0 || cfg.MaxResults > DefaultMaxResults {
		cfg.MaxResults = DefaultMaxResults
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = rateWithoutKey
		if cfg.APIKey != "" {
			cfg.RateLimit = rateWithKey
		}
	}
}

// Search resolves query into at most MaxResults PubMed IDs in relevance
// order. A response without an ID list yields an empty slice.
func (c *Client) Search(ctx context.Context, query string) ([]string, error) {
	params := c.baseParams()
	params.Set("term", query)
	params.Set("retmax", strconv.Itoa(c.cfg.MaxResults))

	body, err := c.get(ctx, "esearch.fcgi", params, "esearch")
	if err != nil {
		return nil, err
	}

	log := c.logger(ctx)
	ids, err := parseSearch(body, *log)
	if err != nil {
		return nil, err
	}
	if len(ids) > c.cfg.MaxResults {
		ids = ids[:c.cfg.MaxResults]
	}
	log.Debug().Str("query", query).Int("count", len(ids)).Msg("esearch complete")
	return ids, nil
}

// FetchDetails returns the summary records for ids, in the order requested.
// IDs missing from the response are omitted. An empty ids slice returns
// immediately without a request.
func (c *Client) FetchDetails(ctx context.Context, ids []string) ([]types.RawPaper, error) {
	if len(ids) == 0 {
		return []types.RawPaper{}, nil
	}

	params := c.baseParams()
	params.Set("id", strings.Join(ids, ","))

	body, err := c.get(ctx, "esummary.fcgi", params, "esummary")
	if err != nil {
		return nil, err
	}

	log := c.logger(ctx)
	papers, err := parseSummary(body, ids, *log)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("requested", len(ids)).Int("returned", len(papers)).Msg("esummary complete")
	return papers, nil
}

// logger prefers the logger carried by ctx, which holds the run fields.
func (c *Client) logger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &c.log
}

func (c *Client) baseParams() url.Values {
	params := url.Values{
		"db":      {c.cfg.Database},
		"retmode": {"json"},
	}
	if c.cfg.APIKey != "" {
		params.Set("api_key", c.cfg.APIKey)
	}
	if c.cfg.Email != "" {
		params.Set("email", c.cfg.Email)
	}
	if c.cfg.Tool != "" {
		params.Set("tool", c.cfg.Tool)
	}
	return params
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, op string) ([]byte, error) {
	reqURL := strings.TrimRight(c.cfg.BaseURL, "/") + "/" + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating %s request: %w", op, err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	return httputil.Fetch(ctx, c.http, c.limiter, req, op, 0)
}
