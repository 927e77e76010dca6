package storage

import (
	"encoding/hex"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Fingerprint summarizes the .bib files under bibDir: their relative paths,
// sizes and modification times, hashed in sorted order. File contents are
// deliberately not read so the staleness check stays cheap on large
// libraries.
func Fingerprint(bibDir string) (string, error) {
	var lines []string
	err := filepath.WalkDir(bibDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(d.Name()), ".bib") {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(bibDir, path)
		if err != nil {
			return err
		}
		lines = append(lines, fmt.Sprintf("%s\x00%d\x00%d",
			filepath.ToSlash(rel), info.Size(), info.ModTime().UnixNano()))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("fingerprinting %s: %w", bibDir, err)
	}
	sort.Strings(lines)

	h, _ := blake2b.New256(nil)
	for _, line := range lines {
		h.Write([]byte(line))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
