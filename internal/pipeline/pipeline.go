// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline turns a PubMed query into report records: ID search,
// batch detail retrieval, author classification and email enrichment, run
// sequentially.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/pubmed-scraper/internal/classify"
	"github.com/pdiddy/pubmed-scraper/pkg/types"
)

// Searcher resolves a query into ranked PubMed IDs.
type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// Fetcher returns summary records for IDs in request order.
type Fetcher interface {
	FetchDetails(ctx context.Context, ids []string) ([]types.RawPaper, error)
}

// EmailResolver returns a corresponding author email or types.NotAvailable.
// Implementations must not fail.
type EmailResolver interface {
	Resolve(ctx context.Context, doi string) string
}

// Classifier reports whether an author name indicates a non-academic affiliation.
type Classifier func(name string) bool

// Result is the outcome of one run.
type Result struct {
	// RunID tags the run's log lines.
	RunID string `json:"run_id" yaml:"run_id"`

	// IDs is the raw ID list returned by the search, in rank order.
	IDs []string `json:"ids" yaml:"ids"`

	// Records holds one entry per paper with a non-academic author.
	Records []types.ProcessedRecord `json:"records" yaml:"records"`
}

// Processor wires the stages together.
type Processor struct {
	search   Searcher
	fetch    Fetcher
	email    EmailResolver
	classify Classifier
	onIDs    func(ids []string)
	log      zerolog.Logger
}

// Option customizes a Processor.
type Option func(*Processor)

// WithClassifier replaces classify.IsNonAcademic.
func WithClassifier(c Classifier) Option {
	return func(p *Processor) { p.classify = c }
}

// WithIDsHook registers fn to receive the search result before details are
// fetched.
func WithIDsHook(fn func(ids []string)) Option {
	return func(p *Processor) { p.onIDs = fn }
}

// WithLogger sets the run logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Processor) { p.log = l }
}

// New creates a Processor.
func New(search Searcher, fetch Fetcher, email EmailResolver, opts ...Option) *Processor {
	p := &Processor{
		search:   search,
		fetch:    fetch,
		email:    email,
		classify: classify.IsNonAcademic,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run searches for query, fetches details for the returned IDs and processes
// them. Search and fetch failures abort the run; email lookups never do.
func (p *Processor) Run(ctx context.Context, query string) (Result, error) {
	if strings.TrimSpace(query) == "" {
		return Result{}, types.ErrEmptyQuery
	}

	res := Result{RunID: uuid.NewString()}
	log := p.log.With().Str("run_id", res.RunID).Logger()
	ctx = log.WithContext(ctx)

	ids, err := p.search.Search(ctx, query)
	if err != nil {
		return res, fmt.Errorf("searching %q: %w", query, err)
	}
	res.IDs = ids
	log.Info().Str("query", query).Int("ids", len(ids)).Msg("search complete")
	if p.onIDs != nil {
		p.onIDs(ids)
	}

	papers, err := p.fetch.FetchDetails(ctx, ids)
	if err != nil {
		return res, fmt.Errorf("fetching details: %w", err)
	}

	res.Records = p.Process(ctx, papers)
	log.Info().Int("papers", len(papers)).Int("records", len(res.Records)).Msg("processing complete")
	return res, nil
}

// Process builds one record per paper that has at least one non-academic
// author, preserving paper order. Papers whose authors are all academic are
// dropped.
func (p *Processor) Process(ctx context.Context, papers []types.RawPaper) []types.ProcessedRecord {
	log := zerolog.Ctx(ctx)
	if log.GetLevel() == zerolog.Disabled {
		log = &p.log
	}
	records := make([]types.ProcessedRecord, 0, len(papers))

	for _, paper := range papers {
		authors := p.nonAcademicAuthors(paper.Authors)
		if len(authors) == 0 {
			log.Debug().Str("pmid", paper.UID).Msg("dropping paper with only academic authors")
			continue
		}

		email := types.NotAvailable
		if doi := paper.DOI(); doi != "" {
			email = p.email.Resolve(ctx, doi)
		}

		records = append(records, types.ProcessedRecord{
			PubmedID:            paper.UID,
			Title:               paper.Title,
			PublicationDate:     paper.PubDate,
			NonAcademicAuthors:  authors,
			CompanyAffiliations: append([]string(nil), authors...),
			CorrespondingEmail:  email,
		})
	}
	return records
}

func (p *Processor) nonAcademicAuthors(authors []types.Author) []string {
	var names []string
	for _, a := range authors {
		if p.classify(a.Name) {
			names = append(names, a.Name)
		}
	}
	return names
}
