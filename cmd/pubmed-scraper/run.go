// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/pdiddy/pubmed-scraper/internal/email"
	"github.com/pdiddy/pubmed-scraper/internal/eutils"
	"github.com/pdiddy/pubmed-scraper/internal/export"
	"github.com/pdiddy/pubmed-scraper/internal/pipeline"
	"github.com/pdiddy/pubmed-scraper/pkg/types"
)

// runner is satisfied by *pipeline.Processor.
type runner interface {
	Run(ctx context.Context, query string) (pipeline.Result, error)
}

// newProcessor wires the E-utilities client and the email resolver into a
// pipeline.
func newProcessor(cfg types.Config, log zerolog.Logger, opts ...pipeline.Option) *pipeline.Processor {
	client := eutils.New(cfg.Eutils, eutils.WithLogger(log))
	resolver := email.New(cfg.Email, email.WithLogger(log))
	opts = append([]pipeline.Option{pipeline.WithLogger(log)}, opts...)
	return pipeline.New(client, client, resolver, opts...)
}

// printIDs returns a pipeline hook that writes the search result to w as
// soon as the search returns.
func printIDs(w io.Writer) func(ids []string) {
	return func(ids []string) {
		fmt.Fprintf(w, "Fetched paper IDs: %v\n", ids)
	}
}

// runSearch runs query and exports the records. Reports and the save
// confirmation go to stdout.
func runSearch(ctx context.Context, r runner, query string, opts export.Options, stdout io.Writer) error {
	res, err := r.Run(ctx, query)
	if err != nil {
		return err
	}

	if err := export.Export(res.Records, opts, stdout); err != nil {
		return err
	}
	if opts.Path != "" && len(res.Records) > 0 {
		fmt.Fprintf(stdout, "Results saved to %s\n", opts.Path)
	}
	return nil
}
