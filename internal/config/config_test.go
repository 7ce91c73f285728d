// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v, nil)
	require.NoError(t, err)

	assert.Equal(t, "https://eutils.ncbi.nlm.nih.gov/entrez/eutils", cfg.Eutils.BaseURL)
	assert.Equal(t, "pubmed", cfg.Eutils.Database)
	assert.Equal(t, 10, cfg.Eutils.MaxResults)
	assert.Equal(t, 30*time.Second, cfg.Eutils.Timeout)
	assert.Equal(t, Name, cfg.Eutils.Tool)
	assert.Equal(t, "https://doi.org/", cfg.Email.ResolverBaseURL)
	assert.Equal(t, 10*time.Second, cfg.Email.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestConfigure_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
eutils:
  max_results: 5
  timeout: 45s
  email: file@example.com
email:
  timeout: 3s
log:
  format: json
`), 0o644))

	t.Setenv("PUBMED_SCRAPER_EUTILS_API_KEY", "env-key")
	t.Setenv("PUBMED_SCRAPER_LOG_LEVEL", "debug")

	v := viper.New()
	used, err := Configure(v, path)
	require.NoError(t, err)
	assert.Equal(t, path, used)

	cfg, err := Load(v, map[string]string{SecretNCBIAPIKey: "secret-key", SecretNCBIEmail: "secret@example.com"})
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Eutils.MaxResults)
	assert.Equal(t, 45*time.Second, cfg.Eutils.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Email.Timeout)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Config and env values win over secrets.
	assert.Equal(t, "env-key", cfg.Eutils.APIKey)
	assert.Equal(t, "file@example.com", cfg.Eutils.Email)
}

func TestConfigure_MissingDefaultFileIsFine(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	v := viper.New()
	used, err := Configure(v, "")
	require.NoError(t, err)
	assert.Empty(t, used)
}

func TestConfigure_MissingExplicitFile(t *testing.T) {
	v := viper.New()
	_, err := Configure(v, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_SecretsFillEmptyValues(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := Load(v, map[string]string{SecretNCBIAPIKey: "secret-key", SecretNCBIEmail: "secret@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "secret-key", cfg.Eutils.APIKey)
	assert.Equal(t, "secret@example.com", cfg.Eutils.Email)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  string
	}{
		{"max results above cap", "eutils.max_results", 11, "MaxResults"},
		{"max results zero", "eutils.max_results", 0, "MaxResults"},
		{"bad base url", "eutils.base_url", "not a url", "BaseURL"},
		{"bad email", "eutils.email", "nobody", "Email"},
		{"zero timeout", "email.timeout", "0s", "Timeout"},
		{"bad log level", "log.level", "loud", "Level"},
		{"bad log format", "log.format", "xml", "Format"},
		{"negative rate", "eutils.rate_limit", -1.0, "RateLimit"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			SetDefaults(v)
			v.Set(tt.key, tt.value)

			_, err := Load(v, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
