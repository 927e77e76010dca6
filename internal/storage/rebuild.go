package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/aluex/ck/internal/bib"
	"github.com/aluex/ck/internal/biblio"
)

// Rebuild clears the cache and refills it from the .bib files in bibDir.
// It returns the number of papers cached and, separately, the problems with
// individual files; a broken .bib file is reported but does not abort the
// rebuild. Papers without a .bib file at the bibliography root are skipped,
// there is nothing to index for them.
func (d *DB) Rebuild(bibDir string) (int, []error, error) {
	fingerprint, err := Fingerprint(bibDir)
	if err != nil {
		return 0, nil, err
	}

	cks, err := biblio.ListCitationKeys(bibDir)
	if err != nil {
		return 0, nil, err
	}

	if _, err := d.db.Exec("DELETE FROM papers"); err != nil {
		return 0, nil, fmt.Errorf("clearing papers table: %w", err)
	}
	if _, err := d.db.Exec("DELETE FROM papers_fts"); err != nil {
		return 0, nil, fmt.Errorf("clearing papers_fts table: %w", err)
	}

	paperStmt, err := d.db.Prepare(`
		INSERT INTO papers (ck, entry_type, title, authors, year, venue, doi)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, nil, fmt.Errorf("preparing papers insert: %w", err)
	}
	defer paperStmt.Close()

	ftsStmt, err := d.db.Prepare(`
		INSERT INTO papers_fts (ck, title, authors, venue, year, abstract)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, nil, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	count := 0
	var problems []error
	for _, ck := range cks {
		if !biblio.HasBib(bibDir, ck) {
			continue
		}

		rec, err := bib.Load(biblio.BibPath(bibDir, ck))
		if err != nil {
			problems = append(problems, err)
			continue
		}
		s := bib.Summarize(rec)

		// The filename stem is the citation key, whatever the entry says.
		_, err = paperStmt.Exec(
			ck, s.Type, nullableString(s.Title),
			nullableString(rec.Field("author")),
			nullableString(s.Year), nullableString(s.Venue), nullableString(s.DOI),
		)
		if err != nil {
			return count, problems, fmt.Errorf("inserting paper %s: %w", ck, err)
		}

		_, err = ftsStmt.Exec(ck, s.Title, strings.Join(s.Authors, ", "), s.Venue, s.Year, s.Abstract)
		if err != nil {
			return count, problems, fmt.Errorf("inserting fts for %s: %w", ck, err)
		}
		count++
	}

	if err := d.setFingerprint(fingerprint); err != nil {
		return count, problems, fmt.Errorf("storing fingerprint: %w", err)
	}

	return count, problems, nil
}

// NeedsRebuild reports whether the .bib files changed since the last
// rebuild.
func (d *DB) NeedsRebuild(bibDir string) (bool, error) {
	current, err := Fingerprint(bibDir)
	if err != nil {
		return false, err
	}

	stored, err := d.storedFingerprint()
	if err != nil {
		return false, fmt.Errorf("reading stored fingerprint: %w", err)
	}

	return stored != current, nil
}

// storedFingerprint retrieves the fingerprint recorded by the last rebuild.
func (d *DB) storedFingerprint() (string, error) {
	var v sql.NullString
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'fingerprint'").Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v.String, nil
}

// setFingerprint stores the fingerprint in the meta table.
func (d *DB) setFingerprint(fingerprint string) error {
	_, err := d.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('fingerprint', ?)`, fingerprint)
	return err
}
