package ui

import (
	"path"

	"github.com/disiqueira/gotree/v3"
)

// TagTree renders slash-separated tag paths as a drawn tree.
type TagTree struct {
	root gotree.Tree
	dirs map[string]gotree.Tree
}

// NewTagTree creates an empty tree with the given root label.
func NewTagTree(label string) *TagTree {
	return &TagTree{root: gotree.New(label), dirs: make(map[string]gotree.Tree)}
}

// Insert adds a tag path like "quantum/shor", creating ancestors as needed.
func (t *TagTree) Insert(tag string) {
	t.node(tag)
}

func (t *TagTree) node(dir string) gotree.Tree {
	if dir == "." || dir == "" {
		return t.root
	}
	if n, ok := t.dirs[dir]; ok {
		return n
	}
	parent := t.node(path.Dir(dir))
	n := parent.Add(path.Base(dir))
	t.dirs[dir] = n
	return n
}

// Render returns the drawn tree.
func (t *TagTree) Render() string {
	return t.root.Print()
}
