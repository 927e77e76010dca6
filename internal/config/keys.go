package config

import (
	"errors"
	"fmt"
	"os"
)

// ValidReaders lists the supported pdf_reader values.
var ValidReaders = []string{"system", "skim", "preview", "zathura", "evince", "okular"}

// ErrUnknownKey is returned by Get and Set for keys that don't exist.
var ErrUnknownKey = errors.New("unknown config key")

// Keys returns the keys that config get and config set accept.
func Keys() []string {
	return []string{"bib_dir", "cache_dir", "crossref_mailto", "pdf_reader", "tag_dir"}
}

// Get returns the value stored under key.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "bib_dir":
		return c.BibDir, nil
	case "tag_dir":
		return c.TagDir, nil
	case "pdf_reader":
		return c.PDFReader, nil
	case "cache_dir":
		return c.CacheDir, nil
	case "crossref_mailto":
		return c.CrossrefMailto, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
}

// Set stores value under key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "bib_dir":
		c.BibDir = value
	case "tag_dir":
		c.TagDir = value
	case "pdf_reader":
		if err := ValidatePDFReader(value); err != nil {
			return err
		}
		c.PDFReader = value
	case "cache_dir":
		c.CacheDir = value
	case "crossref_mailto":
		c.CrossrefMailto = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// ValidatePDFReader checks that the reader value is valid.
func ValidatePDFReader(reader string) error {
	if reader == "" {
		return nil // Empty defaults to "system"
	}

	for _, valid := range ValidReaders {
		if reader == valid {
			return nil
		}
	}

	return fmt.Errorf("invalid pdf_reader: %s (valid: %v)", reader, ValidReaders)
}

// Errors returned when the library directories are unusable.
var (
	ErrDirsNotConfigured = errors.New("bib_dir and tag_dir not configured")
	ErrDirNotExist       = errors.New("configured directory does not exist")
)

// Dirs returns the bibliography and tag directories after checking that both
// are configured and exist.
// This is the testable version - CLI commands wrap it with a helpful exit.
func (c *Config) Dirs() (bibDir, tagDir string, err error) {
	if c.BibDir == "" || c.TagDir == "" {
		return "", "", ErrDirsNotConfigured
	}
	for _, dir := range []string{c.BibDir, c.TagDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return "", "", fmt.Errorf("%w: %s", ErrDirNotExist, dir)
		}
	}
	return c.BibDir, c.TagDir, nil
}

// HelpfulConfigMessage returns a helpful message when no library is
// configured yet.
func HelpfulConfigMessage() string {
	configPath := Path()
	return fmt.Sprintf(`No paper library configured.

Tip: Run ck init to create one:
  ck init ~/papers/bib ~/papers/tags

Or set %s by hand:
  ck config set bib_dir ~/papers/bib
  ck config set tag_dir ~/papers/tags`,
		configPath)
}
