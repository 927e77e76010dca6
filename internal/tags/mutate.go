package tags

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ValidateTag checks that tag is a well-formed relative tag path such as
// "quantum" or "systems/distributed". Tags address directories under the
// tag root, so absolute paths and dot components are rejected before any
// path is joined.
func ValidateTag(tag string) error {
	if tag == "" {
		return errors.New("empty tag")
	}
	if path.IsAbs(tag) || filepath.IsAbs(tag) {
		return fmt.Errorf("tag must be relative: %s", tag)
	}
	for _, part := range strings.Split(tag, "/") {
		switch part {
		case "", ".", "..":
			return fmt.Errorf("invalid tag path: %s", tag)
		}
	}
	return nil
}

// Add tags a paper by linking its PDF into the tag's directory, creating
// intermediate tag directories as needed. It reports false with a nil error
// when the link already exists, so repeated tagging is harmless.
func Add(tagRoot, bibDir, ck, tag string) (bool, error) {
	dir := filepath.Join(tagRoot, filepath.FromSlash(tag))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("tagging %s with %q: %w", ck, tag, err)
	}
	name := ck + ".pdf"
	if err := os.Symlink(filepath.Join(bibDir, name), filepath.Join(dir, name)); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("tagging %s with %q: %w", ck, tag, err)
	}
	return true, nil
}

// Remove untags a paper by deleting its link from the tag's directory. It
// reports false with a nil error when no link exists. The link itself is
// what is tested, so a link whose PDF has since disappeared can still be
// removed.
func Remove(tagRoot, ck, tag string) (bool, error) {
	path := filepath.Join(tagRoot, filepath.FromSlash(tag), ck+".pdf")
	if _, err := os.Lstat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("untagging %s from %q: %w", ck, tag, err)
	}
	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("untagging %s from %q: %w", ck, tag, err)
	}
	return true, nil
}

// RemoveAll deletes every tag link for ck under tagRoot and returns the
// tags that were removed.
func RemoveAll(tagRoot, ck string) ([]string, error) {
	idx, err := BuildIndex(tagRoot)
	if err != nil {
		return nil, err
	}
	var removed []string
	for _, tag := range idx[ck] {
		ok, err := Remove(tagRoot, ck, tag)
		if err != nil {
			return removed, err
		}
		if ok {
			removed = append(removed, tag)
		}
	}
	return removed, nil
}
