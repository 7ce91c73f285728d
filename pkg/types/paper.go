// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the pubmed-scraper pipeline:
// the raw E-utilities paper record, the processed report row, configuration,
// and the error taxonomy shared by every stage.
package types

// Unknown is the placeholder used for a missing title or publication date.
const Unknown = "Unknown"

// DOIType is the article ID type tag that marks a DOI.
const DOIType = "doi"

// Author is a single entry from a paper's author list. The affiliation
// signal, when present, is embedded in Name.
type Author struct {
	// Name is the author name as returned by the index.
	Name string `json:"name" yaml:"name"`
}

// ArticleID is an external identifier attached to a paper (pubmed, doi, pii, pmc, ...).
type ArticleID struct {
	IDType string `json:"idtype" yaml:"idtype"`
	Value  string `json:"value" yaml:"value"`
}

// RawPaper holds the summary record the index returns for one PubMed ID.
// Absent fields are filled with documented defaults by the fetcher, so
// consumers never need presence checks.
type RawPaper struct {
	// UID is the PubMed ID of the record.
	UID string `json:"uid" yaml:"uid"`

	// Title is the article title, or Unknown.
	Title string `json:"title" yaml:"title"`

	// PubDate is the publication date string as returned (e.g. "2024 Mar 5"), or Unknown.
	PubDate string `json:"pubdate" yaml:"pubdate"`

	// Authors lists the paper authors in source order.
	Authors []Author `json:"authors" yaml:"authors"`

	// ArticleIDs lists the external identifiers of the paper.
	ArticleIDs []ArticleID `json:"articleids" yaml:"articleids"`
}

// DOI returns the value of the first article ID tagged "doi", or "" when the
// paper carries none. Later DOI entries are ignored.
func (p RawPaper) DOI() string {
	for _, id := range p.ArticleIDs {
		if id.IDType == DOIType {
			return id.Value
		}
	}
	return ""
}
