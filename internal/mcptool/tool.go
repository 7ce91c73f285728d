// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcptool exposes the pipeline as a Model Context Protocol tool so
// agents can run PubMed searches over stdio.
package mcptool

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pdiddy/pubmed-scraper/internal/pipeline"
	"github.com/pdiddy/pubmed-scraper/pkg/types"
)

// ServerName identifies the server to MCP clients.
const ServerName = "pubmed-scraper"

// Runner executes one search run.
type Runner interface {
	Run(ctx context.Context, query string) (pipeline.Result, error)
}

// MetadataSearchPubmed describes the search_pubmed tool. The input and
// output schemas are inferred from SearchInput and SearchOutput.
var MetadataSearchPubmed = &mcp.Tool{
	Name: "search_pubmed",
	Description: "Search PubMed and return papers with at least one author affiliated " +
		"with a pharmaceutical or biotech company. " +
		"Returns the ranked PubMed IDs matched by the query and one record per qualifying " +
		"paper with its title, publication date, non-academic authors and the corresponding " +
		"author email when it can be found (otherwise \"not available\").",
}

// SearchInput is the input of search_pubmed.
type SearchInput struct {
	Query string `json:"query" jsonschema:"PubMed query, using the full PubMed search syntax"`
}

// SearchOutput is the output of search_pubmed.
type SearchOutput struct {
	IDs     []string                `json:"ids" jsonschema:"PubMed IDs returned by the search, in rank order"`
	Records []types.ProcessedRecord `json:"records" jsonschema:"papers with at least one non-academic author"`
}

// Handler serves search_pubmed calls.
type Handler struct {
	runner Runner
}

// NewHandler returns a Handler backed by runner.
func NewHandler(runner Runner) *Handler {
	return &Handler{runner: runner}
}

// SearchPubmed runs the pipeline for input.Query.
func (h *Handler) SearchPubmed(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	res, err := h.runner.Run(ctx, input.Query)
	if err != nil {
		if errors.Is(err, types.ErrEmptyQuery) {
			return nil, SearchOutput{}, errors.New("query is required")
		}
		return nil, SearchOutput{}, err
	}

	out := SearchOutput{IDs: res.IDs, Records: res.Records}
	if out.IDs == nil {
		out.IDs = []string{}
	}
	if out.Records == nil {
		out.Records = []types.ProcessedRecord{}
	}
	return nil, out, nil
}

// NewServer returns an MCP server with search_pubmed registered.
func NewServer(runner Runner, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: ServerName, Version: version}, nil)
	h := NewHandler(runner)
	mcp.AddTool(server, MetadataSearchPubmed, h.SearchPubmed)
	return server
}

// Serve runs the server over stdin/stdout until the client disconnects or
// ctx is cancelled.
func Serve(ctx context.Context, runner Runner, version string) error {
	return NewServer(runner, version).Run(ctx, &mcp.StdioTransport{})
}
