// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pubmed-scraper/pkg/types"
)

// --- mocks ---

type mockSearcher struct {
	ids   []string
	err   error
	calls int
}

func (m *mockSearcher) Search(_ context.Context, _ string) ([]string, error) {
	m.calls++
	return m.ids, m.err
}

type mockFetcher struct {
	papers []types.RawPaper
	err    error
	gotIDs []string
	calls  int
	onCall func()
}

func (m *mockFetcher) FetchDetails(_ context.Context, ids []string) ([]types.RawPaper, error) {
	m.calls++
	if m.onCall != nil {
		m.onCall()
	}
	m.gotIDs = ids
	return m.papers, m.err
}

type mockResolver struct {
	byDOI map[string]string
	dois  []string
}

func (m *mockResolver) Resolve(_ context.Context, doi string) string {
	m.dois = append(m.dois, doi)
	if v, ok := m.byDOI[doi]; ok {
		return v
	}
	return types.NotAvailable
}

func paper(uid string, doi string, names ...string) types.RawPaper {
	p := types.RawPaper{UID: uid, Title: "Title " + uid, PubDate: "2024"}
	for _, n := range names {
		p.Authors = append(p.Authors, types.Author{Name: n})
	}
	if doi != "" {
		p.ArticleIDs = []types.ArticleID{{IDType: "pubmed", Value: uid}, {IDType: "doi", Value: doi}}
	}
	return p
}

// --- Process ---

func TestProcess_DropsAllAcademicPapers(t *testing.T) {
	res := &mockResolver{}
	p := New(nil, nil, res)

	records := p.Process(context.Background(), []types.RawPaper{
		paper("111", "10.1/a", "University Lab", "Broad Institute"),
	})
	assert.Empty(t, records)
	assert.Empty(t, res.dois, "dropped papers must not trigger email lookups")
}

func TestProcess_KeepsOnlyNonAcademicAuthors(t *testing.T) {
	res := &mockResolver{byDOI: map[string]string{"10.1/b": "jane.doe@biotech.com"}}
	p := New(nil, nil, res)

	records := p.Process(context.Background(), []types.RawPaper{
		paper("222", "10.1/b", "Jane Doe, Biotech Corp", "University Lab", "Plain Name", "Jane Doe, Biotech Corp"),
	})
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "222", r.PubmedID)
	assert.Equal(t, "Title 222", r.Title)
	assert.Equal(t, "2024", r.PublicationDate)
	assert.Equal(t, []string{"Jane Doe, Biotech Corp", "Plain Name", "Jane Doe, Biotech Corp"}, r.NonAcademicAuthors)
	assert.Equal(t, r.NonAcademicAuthors, r.CompanyAffiliations)
	assert.Equal(t, "jane.doe@biotech.com", r.CorrespondingEmail)
}

func TestProcess_NoDOISkipsResolver(t *testing.T) {
	res := &mockResolver{}
	p := New(nil, nil, res)

	records := p.Process(context.Background(), []types.RawPaper{paper("333", "", "Acme Inc.")})
	require.Len(t, records, 1)
	assert.Equal(t, types.NotAvailable, records[0].CorrespondingEmail)
	assert.Empty(t, res.dois)
}

func TestProcess_UsesFirstDOIOnly(t *testing.T) {
	res := &mockResolver{}
	p := New(nil, nil, res)

	pp := paper("444", "", "Acme Inc.")
	pp.ArticleIDs = []types.ArticleID{
		{IDType: "pii", Value: "S0000"},
		{IDType: "doi", Value: "10.1/first"},
		{IDType: "doi", Value: "10.1/second"},
	}
	p.Process(context.Background(), []types.RawPaper{pp})
	assert.Equal(t, []string{"10.1/first"}, res.dois)
}

func TestProcess_PreservesOrder(t *testing.T) {
	p := New(nil, nil, &mockResolver{})

	records := p.Process(context.Background(), []types.RawPaper{
		paper("3", "", "Acme Inc."),
		paper("1", "", "University Lab"),
		paper("2", "", "Beta Pharma"),
	})
	require.Len(t, records, 2)
	assert.Equal(t, "3", records[0].PubmedID)
	assert.Equal(t, "2", records[1].PubmedID)
}

func TestProcess_CustomClassifier(t *testing.T) {
	p := New(nil, nil, &mockResolver{}, WithClassifier(func(string) bool { return false }))
	records := p.Process(context.Background(), []types.RawPaper{paper("1", "", "Acme Inc.")})
	assert.Empty(t, records)
}

func TestProcess_NoAuthors(t *testing.T) {
	p := New(nil, nil, &mockResolver{})
	records := p.Process(context.Background(), []types.RawPaper{{UID: "9"}})
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

// --- Run ---

func TestRun(t *testing.T) {
	s := &mockSearcher{ids: []string{"111", "222"}}
	f := &mockFetcher{papers: []types.RawPaper{
		paper("111", "", "University Lab"),
		paper("222", "10.1/b", "Jane Doe, Biotech Corp"),
	}}
	p := New(s, f, &mockResolver{})

	res, err := p.Run(context.Background(), "cancer therapy")
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, []string{"111", "222"}, res.IDs)
	assert.Equal(t, []string{"111", "222"}, f.gotIDs)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "222", res.Records[0].PubmedID)
}

func TestRun_EmptyQuery(t *testing.T) {
	s := &mockSearcher{}
	p := New(s, &mockFetcher{}, &mockResolver{})

	for _, q := range []string{"", "   \t"} {
		_, err := p.Run(context.Background(), q)
		assert.ErrorIs(t, err, types.ErrEmptyQuery)
	}
	assert.Equal(t, 0, s.calls)
}

func TestRun_SearchErrorAborts(t *testing.T) {
	s := &mockSearcher{err: &types.TransportError{Op: "esearch", URL: "x", StatusCode: 500}}
	f := &mockFetcher{}
	p := New(s, f, &mockResolver{})

	_, err := p.Run(context.Background(), "q")
	assert.ErrorIs(t, err, types.ErrTransport)
	assert.Equal(t, 0, f.calls)
}

func TestRun_FetchErrorAborts(t *testing.T) {
	s := &mockSearcher{ids: []string{"1"}}
	f := &mockFetcher{err: &types.FormatError{Op: "esummary", Err: errors.New("bad")}}
	p := New(s, f, &mockResolver{})

	res, err := p.Run(context.Background(), "q")
	assert.ErrorIs(t, err, types.ErrFormat)
	assert.Equal(t, []string{"1"}, res.IDs)
	assert.Empty(t, res.Records)
}

func TestRun_IDsHookRunsBeforeFetch(t *testing.T) {
	var events []string
	s := &mockSearcher{ids: []string{"111", "222"}}
	f := &mockFetcher{onCall: func() { events = append(events, "fetch") }}
	p := New(s, f, &mockResolver{}, WithIDsHook(func(ids []string) {
		events = append(events, "ids:"+strings.Join(ids, ","))
	}))

	_, err := p.Run(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, []string{"ids:111,222", "fetch"}, events)
}

func TestRun_IDsHookSkippedOnSearchError(t *testing.T) {
	called := false
	s := &mockSearcher{err: &types.TransportError{Op: "esearch", URL: "x", StatusCode: 503}}
	p := New(s, &mockFetcher{}, &mockResolver{}, WithIDsHook(func([]string) { called = true }))

	_, err := p.Run(context.Background(), "q")
	require.Error(t, err)
	assert.False(t, called)
}

func TestRun_IDsHookSeesEmptyResult(t *testing.T) {
	var got []string
	called := false
	s := &mockSearcher{ids: []string{}}
	f := &mockFetcher{papers: []types.RawPaper{}}
	p := New(s, f, &mockResolver{}, WithIDsHook(func(ids []string) {
		called = true
		got = ids
	}))

	res, err := p.Run(context.Background(), "q")
	require.NoError(t, err)
	assert.True(t, called)
	assert.Empty(t, got)
	assert.Empty(t, res.Records)
}
