package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/aluex/ck/internal/tags"
)

func TestApplyTags(t *testing.T) {
	bibDir := t.TempDir()
	tagRoot := t.TempDir()
	if err := os.WriteFile(filepath.Join(bibDir, "CMT12.pdf"), []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}

	added, already, err := applyTags(tagRoot, bibDir, "CMT12", []string{"crypto", "security/zk"})
	if err != nil {
		t.Fatalf("applyTags() error = %v", err)
	}
	if want := []string{"crypto", "security/zk"}; !reflect.DeepEqual(added, want) {
		t.Errorf("added = %v, want %v", added, want)
	}
	if already != nil {
		t.Errorf("already = %v, want none", already)
	}

	// Tagging again must report the tags as already carried, not re-added.
	added, already, err = applyTags(tagRoot, bibDir, "CMT12", []string{"crypto", "to-read"})
	if err != nil {
		t.Fatalf("applyTags() error = %v", err)
	}
	if want := []string{"to-read"}; !reflect.DeepEqual(added, want) {
		t.Errorf("added = %v, want %v", added, want)
	}
	if want := []string{"crypto"}; !reflect.DeepEqual(already, want) {
		t.Errorf("already = %v, want %v", already, want)
	}

	idx, err := tags.BuildIndex(tagRoot)
	if err != nil {
		t.Fatal(err)
	}
	if got := idx["CMT12"]; len(got) != 3 {
		t.Errorf("index lists %v, want 3 tags", got)
	}
}

func TestApplyTagsRejectsInvalidTag(t *testing.T) {
	bibDir := t.TempDir()
	tagRoot := t.TempDir()
	if err := os.WriteFile(filepath.Join(bibDir, "CMT12.pdf"), []byte("%PDF"), 0o644); err != nil {
		t.Fatal(err)
	}

	added, _, err := applyTags(tagRoot, bibDir, "CMT12", []string{"crypto", "../outside"})
	if err == nil {
		t.Fatal("applyTags() expected error for escaping tag")
	}
	// The valid tag before the bad one sticks.
	if want := []string{"crypto"}; !reflect.DeepEqual(added, want) {
		t.Errorf("added = %v, want %v", added, want)
	}
}
