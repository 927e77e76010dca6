package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// clearEnv neutralizes the override variables so tests see only what they
// set themselves.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvBibDir, "")
	t.Setenv(EnvTagDir, "")
	t.Setenv(EnvCacheDir, "")
}

func writeConfigFile(t *testing.T, configHome, content string) {
	t.Helper()
	dir := filepath.Join(configHome, ConfigDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	if got := Path(); got != filepath.Join("/custom/config", "ck", "config.yml") {
		t.Errorf("Path() = %q", got)
	}

	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot get home directory")
	}
	if got := Path(); got != filepath.Join(home, ".config", "ck", "config.yml") {
		t.Errorf("Path() = %q", got)
	}
}

func TestLoadNotFound(t *testing.T) {
	ResetCache()
	defer ResetCache()
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", "/cachehome")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BibDir != "" || cfg.TagDir != "" {
		t.Errorf("Load() = %+v, want empty dirs", cfg)
	}
	if cfg.CacheDir != filepath.Join("/cachehome", "ck") {
		t.Errorf("CacheDir = %q, want default under XDG_CACHE_HOME", cfg.CacheDir)
	}
}

func TestLoadValid(t *testing.T) {
	ResetCache()
	defer ResetCache()
	clearEnv(t)

	configHome := t.TempDir()
	writeConfigFile(t, configHome, "bib_dir: ~/papers/bib\ntag_dir: /papers/tags\npdf_reader: zathura\n")
	t.Setenv("XDG_CONFIG_HOME", configHome)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "papers/bib"); cfg.BibDir != want {
		t.Errorf("BibDir = %q, want %q (tilde expanded)", cfg.BibDir, want)
	}
	if cfg.TagDir != "/papers/tags" {
		t.Errorf("TagDir = %q", cfg.TagDir)
	}
	if cfg.PDFReader != "zathura" {
		t.Errorf("PDFReader = %q", cfg.PDFReader)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	ResetCache()
	defer ResetCache()
	clearEnv(t)

	configHome := t.TempDir()
	writeConfigFile(t, configHome, "bib_dir: [unclosed")
	t.Setenv("XDG_CONFIG_HOME", configHome)

	if _, err := Load(); err == nil {
		t.Error("Load() should return error for invalid YAML")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	ResetCache()
	defer ResetCache()

	configHome := t.TempDir()
	writeConfigFile(t, configHome, "bib_dir: /file/bib\ntag_dir: /file/tags\n")
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv(EnvBibDir, "/env/bib")
	t.Setenv(EnvTagDir, "")
	t.Setenv(EnvCacheDir, "/env/cache")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.BibDir != "/env/bib" {
		t.Errorf("BibDir = %q, want /env/bib", cfg.BibDir)
	}
	if cfg.TagDir != "/file/tags" {
		t.Errorf("TagDir = %q, want value from file when env is empty", cfg.TagDir)
	}
	if cfg.CacheDir != "/env/cache" {
		t.Errorf("CacheDir = %q, want /env/cache", cfg.CacheDir)
	}
}

func TestLoadCaches(t *testing.T) {
	ResetCache()
	defer ResetCache()
	clearEnv(t)

	configHome := t.TempDir()
	writeConfigFile(t, configHome, "pdf_reader: zathura\n")
	t.Setenv("XDG_CONFIG_HOME", configHome)

	cfg1, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	writeConfigFile(t, configHome, "pdf_reader: evince\n")

	cfg2, _ := Load()
	if cfg2.PDFReader != cfg1.PDFReader {
		t.Errorf("second Load() = %q, want cached %q", cfg2.PDFReader, cfg1.PDFReader)
	}

	ResetCache()
	cfg3, _ := Load()
	if cfg3.PDFReader != "evince" {
		t.Errorf("Load() after ResetCache() = %q, want evince", cfg3.PDFReader)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{}
	if err := cfg.Set("bib_dir", "/papers/bib"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Set("tag_dir", "/papers/tags"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Set("crossref_mailto", "me@example.org"); err != nil {
		t.Fatal(err)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if loaded.BibDir != "/papers/bib" || loaded.TagDir != "/papers/tags" {
		t.Errorf("LoadFile() = %+v", loaded)
	}
	if loaded.CrossrefMailto != "me@example.org" {
		t.Errorf("CrossrefMailto = %q", loaded.CrossrefMailto)
	}
}

func TestGetSet(t *testing.T) {
	cfg := &Config{}

	for _, key := range Keys() {
		if err := cfg.Set(key, "x"); key != "pdf_reader" && err != nil {
			t.Errorf("Set(%q) error = %v", key, err)
		}
	}

	if err := cfg.Set("pdf_reader", "zathura"); err != nil {
		t.Errorf("Set(pdf_reader, zathura) error = %v", err)
	}
	if err := cfg.Set("pdf_reader", "acrobat"); err == nil {
		t.Error("Set(pdf_reader, acrobat) should fail")
	}

	got, err := cfg.Get("pdf_reader")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "zathura" {
		t.Errorf("Get(pdf_reader) = %q, want zathura", got)
	}

	if _, err := cfg.Get("nope"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Get(nope) error = %v, want ErrUnknownKey", err)
	}
	if err := cfg.Set("nope", "x"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Set(nope) error = %v, want ErrUnknownKey", err)
	}
}

func TestValidatePDFReader(t *testing.T) {
	if err := ValidatePDFReader(""); err != nil {
		t.Errorf("ValidatePDFReader(\"\") error = %v", err)
	}
	for _, reader := range ValidReaders {
		if err := ValidatePDFReader(reader); err != nil {
			t.Errorf("ValidatePDFReader(%q) error = %v", reader, err)
		}
	}
	if err := ValidatePDFReader("acrobat"); err == nil {
		t.Error("ValidatePDFReader(acrobat) should fail")
	}
}

func TestDirs(t *testing.T) {
	bibDir := t.TempDir()
	tagDir := t.TempDir()

	cfg := &Config{BibDir: bibDir, TagDir: tagDir}
	gotBib, gotTag, err := cfg.Dirs()
	if err != nil {
		t.Fatalf("Dirs() error = %v", err)
	}
	if gotBib != bibDir || gotTag != tagDir {
		t.Errorf("Dirs() = %q, %q", gotBib, gotTag)
	}

	cfg = &Config{}
	if _, _, err := cfg.Dirs(); !errors.Is(err, ErrDirsNotConfigured) {
		t.Errorf("Dirs() error = %v, want ErrDirsNotConfigured", err)
	}

	cfg = &Config{BibDir: bibDir, TagDir: filepath.Join(tagDir, "missing")}
	if _, _, err := cfg.Dirs(); !errors.Is(err, ErrDirNotExist) {
		t.Errorf("Dirs() error = %v, want ErrDirNotExist", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot get home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/papers", filepath.Join(home, "papers")},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.input); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSearchDBPath(t *testing.T) {
	cfg := &Config{CacheDir: "/cache/ck"}
	if got := cfg.SearchDBPath(); got != filepath.Join("/cache/ck", "search.db") {
		t.Errorf("SearchDBPath() = %q", got)
	}
}

func TestHelpfulConfigMessage(t *testing.T) {
	msg := HelpfulConfigMessage()
	if msg == "" {
		t.Error("HelpfulConfigMessage() returned empty string")
	}
	if !strings.Contains(msg, "ck init") {
		t.Errorf("HelpfulConfigMessage() should mention ck init:\n%s", msg)
	}
}
