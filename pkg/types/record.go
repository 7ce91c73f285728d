// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// NotAvailable is the sentinel used when the corresponding author email
// cannot be determined.
const NotAvailable = "not available"

// listSeparator joins author names inside a single report cell.
const listSeparator = ", "

// Report column names, in output order.
const (
	ColumnPubmedID            = "PubmedID"
	ColumnTitle               = "Title"
	ColumnPublicationDate     = "Publication Date"
	ColumnNonAcademicAuthors  = "Non-academic Authors"
	ColumnCompanyAffiliations = "Company Affiliations"
	ColumnCorrespondingEmail  = "Corresponding Author Email"
)

// ProcessedRecord is one report row: a paper with at least one author
// classified as non-academic. Papers without such authors never produce a
// record.
type ProcessedRecord struct {
	PubmedID        string `json:"pubmed_id" yaml:"pubmed_id"`
	Title           string `json:"title" yaml:"title"`
	PublicationDate string `json:"publication_date" yaml:"publication_date"`

	// NonAcademicAuthors keeps author list order; duplicates are preserved.
	NonAcademicAuthors []string `json:"non_academic_authors" yaml:"non_academic_authors"`

	// CompanyAffiliations mirrors NonAcademicAuthors.
	CompanyAffiliations []string `json:"company_affiliations" yaml:"company_affiliations"`

	// CorrespondingEmail is an email address or NotAvailable.
	CorrespondingEmail string `json:"corresponding_email" yaml:"corresponding_email"`
}

// Header returns the report column names in output order.
func Header() []string {
	return []string{
		ColumnPubmedID,
		ColumnTitle,
		ColumnPublicationDate,
		ColumnNonAcademicAuthors,
		ColumnCompanyAffiliations,
		ColumnCorrespondingEmail,
	}
}

// Row returns the record's values as text, aligned with Header.
func (r ProcessedRecord) Row() []string {
	return []string{
		r.PubmedID,
		r.Title,
		r.PublicationDate,
		strings.Join(r.NonAcademicAuthors, listSeparator),
		strings.Join(r.CompanyAffiliations, listSeparator),
		r.CorrespondingEmail,
	}
}
