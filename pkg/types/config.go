// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-scraper/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent" validate:"required"`
}

// EutilsConfig holds settings for the NCBI E-utilities client used by
// ID search and detail retrieval.
type EutilsConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the E-utilities root; esearch.fcgi and esummary.fcgi are
	// resolved against it.
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// Database is the Entrez database identifier (default "pubmed").
	Database string `json:"database" yaml:"database" mapstructure:"database" validate:"required"`

	// MaxResults caps the number of IDs a query returns (default and maximum 10).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results" validate:"gte=1,lte=10"`

	// APIKey is an optional NCBI API key; it raises the request rate limit.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// Email is the contact address NCBI asks tools to send.
	Email string `json:"email,omitempty" yaml:"email,omitempty" mapstructure:"email" validate:"omitempty,email"`

	// Tool is the tool name NCBI asks tools to send.
	Tool string `json:"tool,omitempty" yaml:"tool,omitempty" mapstructure:"tool"`

	// RateLimit is the request budget per second. Zero selects the NCBI
	// policy: 3 without an API key, 10 with one.
	RateLimit float64 `json:"rate_limit" yaml:"rate_limit" mapstructure:"rate_limit" validate:"gte=0"`
}

// EmailConfig holds settings for the corresponding-author email resolver.
type EmailConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// ResolverBaseURL is prefixed to a bare DOI to build the lookup URL.
	ResolverBaseURL string `json:"resolver_base_url" yaml:"resolver_base_url" mapstructure:"resolver_base_url" validate:"required,url"`

	// MaxBodyBytes caps how much of the landing page is scanned.
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes" mapstructure:"max_body_bytes" validate:"gt=0"`
}

// LogConfig selects the log level and output encoding.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" mapstructure:"level" validate:"oneof=trace debug info warn error"`
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"oneof=console json"`
}

// Config groups all settings for a run.
type Config struct {
	Eutils EutilsConfig `json:"eutils" yaml:"eutils" mapstructure:"eutils"`
	Email  EmailConfig  `json:"email" yaml:"email" mapstructure:"email"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}
