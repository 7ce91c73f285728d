// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads run settings from defaults, a YAML config file,
// PUBMED_SCRAPER_* environment variables and the secrets directory, and
// validates the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-scraper/internal/email"
	"github.com/pdiddy/pubmed-scraper/internal/eutils"
	"github.com/pdiddy/pubmed-scraper/internal/httputil"
	"github.com/pdiddy/pubmed-scraper/pkg/types"
)

const (
	// Name is the config file stem and the directory under ~/.config.
	Name = "pubmed-scraper"

	// EnvPrefix prefixes environment overrides, e.g. PUBMED_SCRAPER_EUTILS_API_KEY.
	EnvPrefix = "PUBMED_SCRAPER"
)

// Secret file names read from the secrets directory.
const (
	SecretNCBIAPIKey = "ncbi-api-key"
	SecretNCBIEmail  = "ncbi-email"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// SetDefaults registers every config key with its default value. Keys must
// be registered for environment overrides to reach Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("eutils.base_url", eutils.DefaultBaseURL)
	v.SetDefault("eutils.database", eutils.DefaultDatabase)
	v.SetDefault("eutils.max_results", eutils.DefaultMaxResults)
	v.SetDefault("eutils.timeout", eutils.DefaultTimeout)
	v.SetDefault("eutils.user_agent", eutils.DefaultUserAgent)
	v.SetDefault("eutils.api_key", "")
	v.SetDefault("eutils.email", "")
	v.SetDefault("eutils.tool", Name)
	v.SetDefault("eutils.rate_limit", 0.0)

	v.SetDefault("email.resolver_base_url", email.DefaultResolverBaseURL)
	v.SetDefault("email.timeout", email.DefaultTimeout)
	v.SetDefault("email.user_agent", email.DefaultUserAgent)
	v.SetDefault("email.max_body_bytes", httputil.DefaultMaxBodyBytes)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Configure points v at the config file (cfgFile, or pubmed-scraper.yaml in
// the working directory or ~/.config/pubmed-scraper), enables environment
// overrides, and reads the file. It returns the file used, or "" when none
// was found. A missing default file is not an error; an explicit cfgFile
// that cannot be read is.
func Configure(v *viper.Viper, cfgFile string) (string, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(Name)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", Name))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Load decodes v into a Config, fills the NCBI API key and email from
// secrets when the config leaves them empty, and validates the result.
func Load(v *viper.Viper, secrets map[string]string) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.Eutils.APIKey == "" {
		cfg.Eutils.APIKey = secrets[SecretNCBIAPIKey]
	}
	if cfg.Eutils.Email == "" {
		cfg.Eutils.Email = secrets[SecretNCBIEmail]
	}

	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints and reports every violation.
func Validate(cfg types.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validating config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: must satisfy %s", fe.Namespace(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
