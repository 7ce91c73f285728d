// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package email looks up a paper's corresponding author email by resolving
// its DOI to the publisher landing page and scanning it for a mailto link.
// Lookups are best effort: Resolve never returns an error.
package email

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pubmed-scraper/internal/httputil"
	"github.com/pdiddy/pubmed-scraper/pkg/types"
)

const (
	// DefaultResolverBaseURL is the DOI resolver; the client follows its redirects.
	DefaultResolverBaseURL = "https://doi.org/"

	// DefaultTimeout bounds a single lookup including redirects.
	DefaultTimeout = 10 * time.Second

	// DefaultUserAgent is sent when the config leaves UserAgent empty.
	DefaultUserAgent = "pubmed-scraper/0.1"
)

// mailtoPattern captures the address of the first mailto: link in a page.
var mailtoPattern = regexp.MustCompile(`mailto:([\w.-]+@[\w.-]+)`)

// doiPrefixes are stripped from DOIs that arrive in URL or "doi:" form.
var doiPrefixes = []string{
	"https://doi.org/",
	"http://doi.org/",
	"https://dx.doi.org/",
	"http://dx.doi.org/",
	"doi:",
}

// Resolver fetches DOI landing pages.
type Resolver struct {
	cfg  types.EmailConfig
	http *http.Client
	log  zerolog.Logger
}

// Option customizes a Resolver.
type Option func(*Resolver)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(r *Resolver) { r.http = hc }
}

// WithLogger sets the logger used to record swallowed failures when ctx
// carries none.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

// New creates a Resolver. Zero-valued config fields take the package defaults.
func New(cfg types.EmailConfig, opts ...Option) *Resolver {
	if cfg.ResolverBaseURL == "" {
		cfg.ResolverBaseURL = DefaultResolverBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = httputil.DefaultMaxBodyBytes
	}

	r := &Resolver{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the first mailto address on the DOI's landing page, or
// types.NotAvailable when the DOI is empty, the page cannot be fetched, or
// it has no mailto link.
func (r *Resolver) Resolve(ctx context.Context, doi string) string {
	if strings.TrimSpace(doi) == "" {
		return types.NotAvailable
	}

	addr, err := r.Lookup(ctx, doi)
	if err != nil {
		log := zerolog.Ctx(ctx)
		if log.GetLevel() == zerolog.Disabled {
			log = &r.log
		}
		log.Debug().Str("doi", doi).Err(err).Msg("email lookup failed")
		return types.NotAvailable
	}
	if addr == "" {
		return types.NotAvailable
	}
	return addr
}

// Lookup fetches the landing page for doi and returns the first mailto
// address, or "" when there is none. Fetch failures are returned as
// *types.TransportError.
func (r *Resolver) Lookup(ctx context.Context, doi string) (string, error) {
	reqURL := r.cfg.ResolverBaseURL + NormalizeDOI(doi)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", &types.TransportError{Op: "doi lookup", URL: reqURL, Err: err}
	}
	req.Header.Set("User-Agent", r.cfg.UserAgent)

	body, err := httputil.Fetch(ctx, r.http, nil, req, "doi lookup", r.cfg.MaxBodyBytes)
	if err != nil {
		return "", err
	}
	return FindMailto(string(body)), nil
}

// FindMailto returns the address of the first mailto: link in text, or "".
func FindMailto(text string) string {
	if !strings.Contains(text, "mailto:") {
		return ""
	}
	if m := mailtoPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// NormalizeDOI trims whitespace and any resolver URL or "doi:" prefix.
func NormalizeDOI(doi string) string {
	doi = strings.TrimSpace(doi)
	lower := strings.ToLower(doi)
	for _, p := range doiPrefixes {
		if strings.HasPrefix(lower, p) {
			return doi[len(p):]
		}
	}
	return doi
}
