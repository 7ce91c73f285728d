// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-scraper/internal/mcptool"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the search_pubmed tool over MCP stdio",
	Long: `mcp starts a Model Context Protocol server on stdin/stdout exposing one
tool, search_pubmed, which runs the same pipeline as the root command and
returns the matched IDs and records as structured output. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info().Str("version", version).Msg("starting MCP server")
		return mcptool.Serve(cmd.Context(), newProcessor(cfg, logger), version)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
