// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pubmed-scraper/pkg/types"
)

// sqliteTable is recreated on every export so the file holds exactly one report.
const sqliteTable = "papers"

// WriteSQLite writes records into the papers table of the database at path,
// replacing any previous contents of that table. Row order is kept in the
// position column.
func WriteSQLite(path string, records []types.ProcessedRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if _, err := os.Stat(dir); err != nil {
			return &types.IOError{Path: path, Err: err}
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return &types.IOError{Path: path, Err: err}
	}
	defer db.Close()

	if err := writeRecords(db, records); err != nil {
		return &types.IOError{Path: path, Err: err}
	}
	return nil
}

func writeRecords(db *sql.DB, records []types.ProcessedRecord) error {
	statements := []string{
		`DROP TABLE IF EXISTS ` + sqliteTable,
		`CREATE TABLE ` + sqliteTable + ` (
			position INTEGER PRIMARY KEY,
			pubmed_id TEXT NOT NULL,
			title TEXT,
			publication_date TEXT,
			non_academic_authors TEXT,
			company_affiliations TEXT,
			corresponding_email TEXT
		)`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO ` + sqliteTable + ` (
		position, pubmed_id, title, publication_date,
		non_academic_authors, company_affiliations, corresponding_email
	) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		row := r.Row()
		if _, err := stmt.Exec(i, row[0], row[1], row[2], row[3], row[4], row[5]); err != nil {
			return fmt.Errorf("inserting %s: %w", r.PubmedID, err)
		}
	}

	return tx.Commit()
}
