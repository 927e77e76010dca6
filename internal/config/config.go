// Package config handles the global ck configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the configuration stored in ~/.config/ck/config.yml.
type Config struct {
	BibDir         string `yaml:"bib_dir,omitempty"`         // Flat directory holding <CK>.pdf and <CK>.bib pairs
	TagDir         string `yaml:"tag_dir,omitempty"`         // Root of the tag tree
	PDFReader      string `yaml:"pdf_reader,omitempty"`      // Reader preference: system, skim, zathura, etc.
	CacheDir       string `yaml:"cache_dir,omitempty"`       // Search cache location, defaults under XDG_CACHE_HOME
	CrossrefMailto string `yaml:"crossref_mailto,omitempty"` // Contact mail sent with Crossref requests
}

const (
	// ConfigDirName is the directory name under XDG_CONFIG_HOME.
	ConfigDirName = "ck"
	// ConfigFileName is the config file name.
	ConfigFileName = "config.yml"
	// SearchDBFileName is the search cache database file name.
	SearchDBFileName = "search.db"
)

// Environment variables that override the config file.
const (
	EnvBibDir   = "CK_BIB_DIR"
	EnvTagDir   = "CK_TAG_DIR"
	EnvCacheDir = "CK_CACHE_DIR"
)

// configCache caches the loaded effective config.
var configCache *Config

// Path returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/ck/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDirName, ConfigFileName)
}

// Load returns the effective configuration: the config file with the CK_*
// environment variables layered on top, tildes expanded and the cache
// directory defaulted. The result is cached across calls.
// Returns an empty config (not an error) if the file doesn't exist.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}

	if v := os.Getenv(EnvBibDir); v != "" {
		cfg.BibDir = v
	}
	if v := os.Getenv(EnvTagDir); v != "" {
		cfg.TagDir = v
	}
	if v := os.Getenv(EnvCacheDir); v != "" {
		cfg.CacheDir = v
	}

	cfg.BibDir = ExpandPath(cfg.BibDir)
	cfg.TagDir = ExpandPath(cfg.TagDir)
	cfg.CacheDir = ExpandPath(cfg.CacheDir)
	if cfg.CacheDir == "" {
		cfg.CacheDir = defaultCacheDir()
	}

	configCache = cfg
	return cfg, nil
}

// LoadFile reads the config file as stored on disk, without environment
// overrides or defaulting. Use it when editing the file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadFile() (*Config, error) {
	path := Path()
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// ResetCache clears the cached config.
// Useful for testing.
func ResetCache() {
	configCache = nil
}

// Save writes the configuration to the config file, creating the config
// directory if needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return errors.New("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// SearchDBPath returns the path of the search cache database.
func (c *Config) SearchDBPath() string {
	return filepath.Join(c.CacheDir, SearchDBFileName)
}

func defaultCacheDir() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, ConfigDirName)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
