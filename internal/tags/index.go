// Package tags maintains the hierarchical tag tree: a directory tree under
// the tag root whose leaves are symlinks named <CK>.pdf pointing at the PDFs
// in the bibliography directory. A paper carries a tag exactly when its link
// exists in that tag's directory, so the tree on disk is the only source of
// truth and the index here is rebuilt from it on every query.
package tags

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Index maps each citation key to the tags it carries. Tag names are
// slash-separated paths relative to the tag root ("security/zk"), listed in
// tree-traversal order, not sorted.
type Index map[string][]string

// Link is one tag link found under the tag root.
type Link struct {
	CK   string // citation key, the link's filename stem
	Tag  string // tag path the link sits under
	Path string // full path of the link itself
}

// BuildIndex walks tagRoot and indexes every <CK>.pdf symlink it finds.
func BuildIndex(tagRoot string) (Index, error) {
	links, err := Links(tagRoot)
	if err != nil {
		return nil, err
	}
	idx := make(Index)
	for _, l := range links {
		idx[l.CK] = append(idx[l.CK], l.Tag)
	}
	return idx, nil
}

// Links walks tagRoot and returns every tag link in traversal order. A link
// whose PDF has disappeared is still returned; the link's existence is what
// makes the tag.
func Links(tagRoot string) ([]Link, error) {
	var links []Link
	if err := collectLinks(tagRoot, tagRoot, &links); err != nil {
		return nil, err
	}
	return links, nil
}

func collectLinks(tagRoot, dir string, links *[]Link) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading tag directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		switch {
		case resolvesToDir(path, entry):
			if err := collectLinks(tagRoot, path, links); err != nil {
				return err
			}
		case entry.Type()&fs.ModeSymlink != 0:
			ext := filepath.Ext(entry.Name())
			if !strings.EqualFold(ext, ".pdf") {
				continue
			}
			ck := strings.TrimSuffix(entry.Name(), ext)
			if ck == "" {
				continue
			}
			rel, err := filepath.Rel(tagRoot, dir)
			if err != nil {
				return fmt.Errorf("resolving tag name for %s: %w", path, err)
			}
			*links = append(*links, Link{CK: ck, Tag: filepath.ToSlash(rel), Path: path})
		}
	}
	return nil
}

// resolvesToDir reports whether entry (at path) is a directory, following
// symlinks. A dangling symlink is not a directory and falls through to the
// link handling above.
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

// List returns every tag under tagRoot in sorted order, including interior
// tags that hold only subdirectories.
func List(tagRoot string) ([]string, error) {
	var all []string
	if err := collectTags(tagRoot, "", &all); err != nil {
		return nil, err
	}
	sort.Strings(all)
	return all, nil
}

func collectTags(dir, prefix string, all *[]string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading tag directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if !resolvesToDir(path, entry) {
			continue
		}
		tag := entry.Name()
		if prefix != "" {
			tag = prefix + "/" + tag
		}
		*all = append(*all, tag)
		if err := collectTags(path, tag, all); err != nil {
			return err
		}
	}
	return nil
}
