// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across stages.
package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/pdiddy/pubmed-scraper/pkg/types"
)

// DefaultMaxBodyBytes caps response bodies when the caller passes no limit.
const DefaultMaxBodyBytes = 5 << 20

// Limiter throttles outbound requests. *rate.Limiter satisfies it.
type Limiter interface {
	Wait(ctx context.Context) error
}

// NewLimiter returns a token bucket allowing perSecond requests with a
// burst of the same size (at least 1).
func NewLimiter(perSecond float64) *rate.Limiter {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Fetch executes req once and returns the response body. It waits on
// limiter first when one is given. Network failures and non-2xx statuses
// are returned as *types.TransportError tagged with op. The body is read up
// to maxBytes (DefaultMaxBodyBytes when maxBytes <= 0).
//
// There is no retry: a 429 or 5xx is reported to the caller like any other
// failed status.
func Fetch(ctx context.Context, client *http.Client, limiter Limiter, req *http.Request, op string, maxBytes int64) ([]byte, error) {
	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return nil, &types.TransportError{Op: op, URL: redact(req), Err: fmt.Errorf("rate limiter wait: %w", err)}
		}
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, &types.TransportError{Op: op, URL: redact(req), Err: unwrapURLError(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBytes))
		return nil, &types.TransportError{Op: op, URL: redact(req), StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes))
	if err != nil {
		return nil, &types.TransportError{Op: op, URL: redact(req), Err: fmt.Errorf("reading body: %w", err)}
	}
	return body, nil
}

// redact returns the request URL without its query string, which may carry
// an API key.
func redact(req *http.Request) string {
	u := *req.URL
	u.RawQuery = ""
	return u.String()
}

// unwrapURLError strips the *url.Error wrapper, whose message repeats the
// full URL including the query string.
func unwrapURLError(err error) error {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err
	}
	return err
}
