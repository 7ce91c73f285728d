// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pubmed-scraper CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pubmed-scraper/internal/config"
	"github.com/pdiddy/pubmed-scraper/internal/export"
	"github.com/pdiddy/pubmed-scraper/internal/logging"
	"github.com/pdiddy/pubmed-scraper/internal/pipeline"
	"github.com/pdiddy/pubmed-scraper/internal/secrets"
	"github.com/pdiddy/pubmed-scraper/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// Populated by PersistentPreRunE before any command runs.
var (
	cfg    types.Config
	logger = zerolog.Nop()
)

// rootCmd searches PubMed for the positional query.
var rootCmd = &cobra.Command{
	Use:   "pubmed-scraper <query>",
	Short: "Find PubMed papers with pharmaceutical or biotech authors",
	Long: `pubmed-scraper searches PubMed for a query, fetches summaries for the top
results and reports the papers that list at least one author affiliated with
a pharmaceutical or biotech company, together with the corresponding author
email when the publisher's landing page exposes one.

The query accepts the full PubMed search syntax, e.g.
  pubmed-scraper 'cancer immunotherapy AND 2023[dp]' -f results.csv`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfgFile, _ := cmd.Flags().GetString("config")
		used, err := config.Configure(viper.GetViper(), cfgFile)
		if err != nil {
			return err
		}

		s, err := secrets.Load(secrets.DefaultDir, logging.New(types.LogConfig{Level: "warn"}, cmd.ErrOrStderr()))
		if err != nil {
			return err
		}

		cfg, err = config.Load(viper.GetViper(), s)
		if err != nil {
			return err
		}

		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			cfg.Log.Level = "debug"
		}
		logger = logging.New(cfg.Log, cmd.ErrOrStderr())

		if used != "" {
			logger.Debug().Str("file", used).Msg("using config file")
		}
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debug().Strs("keys", keys).Msg("loaded secrets")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")
		debug, _ := cmd.Flags().GetBool("debug")
		formatName, _ := cmd.Flags().GetString("format")

		format, err := export.ParseFormat(formatName)
		if err != nil {
			return err
		}

		var popts []pipeline.Option
		if debug {
			popts = append(popts, pipeline.WithIDsHook(printIDs(cmd.ErrOrStderr())))
		}
		opts := export.Options{Path: file, Format: format}
		return runSearch(cmd.Context(), newProcessor(cfg, logger, popts...), args[0], opts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pubmed-scraper.yaml or ~/.config/pubmed-scraper/pubmed-scraper.yaml)")

	rootCmd.Flags().StringP("file", "f", "", "write results to this file instead of stdout")
	rootCmd.Flags().BoolP("debug", "d", false, "print fetched paper IDs and debug logs to stderr")
	rootCmd.Flags().String("format", "", "output format: csv, json, yaml, table, or sqlite (default: from file extension, or table on stdout)")
}

func main() {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
