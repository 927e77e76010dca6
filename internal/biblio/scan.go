package biblio

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ListCitationKeys walks bibDir and returns every citation key found, in
// sorted order. A citation key is the stem of any file with a .pdf or .bib
// extension (matched case-insensitively). Stems that contain a dot belong to
// auxiliary files (CMT12.slides.pdf) and are skipped, as are files whose
// name is nothing but an extension.
func ListCitationKeys(bibDir string) ([]string, error) {
	seen := make(map[string]struct{})
	if err := collectCitationKeys(bibDir, seen); err != nil {
		return nil, err
	}
	cks := make([]string, 0, len(seen))
	for ck := range seen {
		cks = append(cks, ck)
	}
	sort.Strings(cks)
	return cks, nil
}

func collectCitationKeys(dir string, seen map[string]struct{}) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", dir, err)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if resolvesToDir(path, entry) {
			if err := collectCitationKeys(path, seen); err != nil {
				return err
			}
			continue
		}
		name := entry.Name()
		ext := filepath.Ext(name)
		stem := strings.TrimSuffix(name, ext)
		if stem == "" || strings.Contains(stem, ".") {
			continue
		}
		switch strings.ToLower(ext) {
		case ".pdf", ".bib":
			seen[stem] = struct{}{}
		}
	}
	return nil
}

// resolvesToDir reports whether entry (at path) is a directory, following
// symlinks the way the rest of the scan does. A dangling symlink is not a
// directory.
func resolvesToDir(path string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// Exists reports whether ck has at least one of its two files in bibDir.
func Exists(bibDir, ck string) bool {
	return HasPDF(bibDir, ck) || HasBib(bibDir, ck)
}
