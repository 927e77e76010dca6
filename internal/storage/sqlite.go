// Package storage maintains the SQLite search cache derived from the
// bibliography directory. The cache is disposable: it is rebuilt from the
// .bib files whenever the fingerprint says they changed, and the .bib files
// stay the only source of truth.
package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/aluex/ck/internal/bib"
	_ "modernc.org/sqlite"
)

// DB wraps the search cache database connection.
type DB struct {
	db *sql.DB
}

// selectPaperFields contains the standard field list for SELECT queries.
const selectPaperFields = `ck, entry_type, title, authors, year, venue, doi`

// Open opens or creates the search cache at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	schema := `
		-- One row per paper, straight from its .bib file
		CREATE TABLE IF NOT EXISTS papers (
			ck TEXT PRIMARY KEY,
			entry_type TEXT NOT NULL,
			title TEXT,
			authors TEXT,
			year TEXT,
			venue TEXT,
			doi TEXT
		);

		-- Index for DOI lookups
		CREATE INDEX IF NOT EXISTS idx_papers_doi ON papers(doi) WHERE doi IS NOT NULL AND doi != '';

		-- Full-text search virtual table (standalone, not external content)
		CREATE VIRTUAL TABLE IF NOT EXISTS papers_fts USING fts5(
			ck,
			title,
			authors,
			venue,
			year,
			abstract
		);

		-- Cache bookkeeping (fingerprint of the .bib files)
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);
	`

	_, err := db.Exec(schema)
	return err
}

// GetByCK retrieves a cached paper by citation key.
// Returns nil (not an error) when the paper is not cached.
func (d *DB) GetByCK(ck string) (*bib.Summary, error) {
	row := d.db.QueryRow(`SELECT `+selectPaperFields+` FROM papers WHERE ck = ?`, ck)
	return scanPaper(row)
}

// Search performs a full-text search over titles, authors, venues and
// abstracts, returning matches ordered by citation key.
func (d *DB) Search(query string, limit int) ([]bib.Summary, error) {
	ftsQuery := prepareFTSQuery(query)

	rows, err := d.db.Query(`
		SELECT `+selectPaperFields+`
		FROM papers
		WHERE ck IN (SELECT ck FROM papers_fts WHERE papers_fts MATCH ?)
		ORDER BY ck
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanPapers(rows)
}

// SearchField performs a search restricted to a single field.
func (d *DB) SearchField(field, value string, limit int) ([]bib.Summary, error) {
	var ftsQuery string

	switch field {
	case "author":
		ftsQuery = "authors:" + prepareFTSQuery(value)
	case "title":
		ftsQuery = "title:" + prepareFTSQuery(value)
	case "venue":
		ftsQuery = "venue:" + prepareFTSQuery(value)
	default:
		return nil, fmt.Errorf("unknown search field: %s", field)
	}

	rows, err := d.db.Query(`
		SELECT `+selectPaperFields+`
		FROM papers
		WHERE ck IN (SELECT ck FROM papers_fts WHERE papers_fts MATCH ?)
		ORDER BY ck
		LIMIT ?`, ftsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", field, err)
	}
	defer rows.Close()

	return scanPapers(rows)
}

// ListAll returns all cached papers ordered by citation key, optionally
// limited.
func (d *DB) ListAll(limit int) ([]bib.Summary, error) {
	query := `SELECT ` + selectPaperFields + ` FROM papers ORDER BY ck`
	var args []interface{}

	if limit > 0 {
		query += " LIMIT ?"
		args = []interface{}{limit}
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing papers: %w", err)
	}
	defer rows.Close()

	return scanPapers(rows)
}

// Count returns the number of cached papers.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM papers").Scan(&count)
	return count, err
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPaper(s scanner) (*bib.Summary, error) {
	var p bib.Summary
	var title, authors, year, venue, doi sql.NullString

	err := s.Scan(&p.CK, &p.Type, &title, &authors, &year, &venue, &doi)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	p.Title = title.String
	p.Authors = bib.SplitAuthors(authors.String)
	p.Year = year.String
	p.Venue = venue.String
	p.DOI = doi.String

	return &p, nil
}

func scanPapers(rows *sql.Rows) ([]bib.Summary, error) {
	var papers []bib.Summary
	for rows.Next() {
		p, err := scanPaper(rows)
		if err != nil {
			return nil, err
		}
		if p != nil {
			papers = append(papers, *p)
		}
	}
	return papers, rows.Err()
}

// nullableString converts a string to sql.NullString, treating empty as NULL.
func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	// For simple queries, just pass the terms through.
	// FTS5 uses double quotes for phrase matching.
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}

	// If the query contains special chars, quote it
	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}

	return query
}
