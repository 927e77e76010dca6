package biblio

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestValidateCK(t *testing.T) {
	tests := []struct {
		name    string
		ck      string
		wantErr error
	}{
		{
			name:    "valid simple",
			ck:      "CMT12",
			wantErr: nil,
		},
		{
			name:    "valid lowercase",
			ck:      "knuth97",
			wantErr: nil,
		},
		{
			name:    "valid with plus",
			ck:      "GGH+13",
			wantErr: nil,
		},
		{
			name:    "valid with hyphen and underscore",
			ck:      "smith-jones_2020",
			wantErr: nil,
		},
		{
			name:    "empty",
			ck:      "",
			wantErr: ErrEmptyCK,
		},
		{
			name:    "contains dot",
			ck:      "CMT12.slides",
			wantErr: ErrInvalidCK,
		},
		{
			name:    "contains space",
			ck:      "CMT 12",
			wantErr: ErrInvalidCK,
		},
		{
			name:    "contains slash",
			ck:      "CMT/12",
			wantErr: ErrInvalidCK,
		},
		{
			name:    "starts with hyphen",
			ck:      "-CMT12",
			wantErr: ErrInvalidCK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCK(tt.ck)
			if err != tt.wantErr {
				t.Errorf("ValidateCK(%q) error = %v, wantErr %v", tt.ck, err, tt.wantErr)
			}
		})
	}
}

func TestPaths(t *testing.T) {
	if got := PDFPath("/bib", "CMT12"); got != filepath.Join("/bib", "CMT12.pdf") {
		t.Errorf("PDFPath() = %q", got)
	}
	if got := BibPath("/bib", "CMT12"); got != filepath.Join("/bib", "CMT12.bib") {
		t.Errorf("BibPath() = %q", got)
	}
}

func TestListCitationKeys(t *testing.T) {
	bibDir := t.TempDir()

	files := []string{
		"CMT12.pdf",
		"CMT12.bib",
		"GGH+13.bib",
		"knuth97.PDF",
		"CMT12.slides.pdf",
		"notes.txt",
		".pdf",
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(bibDir, f), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	// Files in subdirectories are picked up too.
	sub := filepath.Join(bibDir, "archive")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "Old99.pdf"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ListCitationKeys(bibDir)
	if err != nil {
		t.Fatalf("ListCitationKeys() error = %v", err)
	}

	want := []string{"CMT12", "GGH+13", "Old99", "knuth97"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListCitationKeys() = %v, want %v", got, want)
	}
}

func TestListCitationKeysDeduplicates(t *testing.T) {
	bibDir := t.TempDir()
	for _, f := range []string{"A1.pdf", "A1.bib"} {
		if err := os.WriteFile(filepath.Join(bibDir, f), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := ListCitationKeys(bibDir)
	if err != nil {
		t.Fatalf("ListCitationKeys() error = %v", err)
	}
	if len(got) != 1 || got[0] != "A1" {
		t.Errorf("ListCitationKeys() = %v, want [A1]", got)
	}
}

func TestListCitationKeysMissingDir(t *testing.T) {
	_, err := ListCitationKeys(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("ListCitationKeys() expected error for missing directory")
	}
}

func TestHasPDFHasBib(t *testing.T) {
	bibDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(bibDir, "CMT12.pdf"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !HasPDF(bibDir, "CMT12") {
		t.Error("HasPDF() = false, want true")
	}
	if HasBib(bibDir, "CMT12") {
		t.Error("HasBib() = true, want false")
	}
	if !Exists(bibDir, "CMT12") {
		t.Error("Exists() = false, want true")
	}
	if Exists(bibDir, "Other00") {
		t.Error("Exists() = true, want false")
	}
}
