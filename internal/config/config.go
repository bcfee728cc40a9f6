package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LanguageProfile describes what a removable declaration looks like in one
// language: how its opening line is anchored, how an attached documentation
// block is recognized, and which delimiter pair bounds its body.
type LanguageProfile struct {
	Name       string   `yaml:"name"`
	Extensions []string `yaml:"extensions"`
	// DeclPatterns are anchored regular-expression templates matched against
	// the start of a line. The %s slot receives the (quoted) declaration name.
	DeclPatterns []string `yaml:"decl_patterns"`
	// DocOpen marks the first line of a documentation block (e.g. "/**").
	DocOpen string `yaml:"doc_open"`
	// CommentPrefixes are the prefixes of continuation lines inside a
	// documentation block (e.g. "*").
	CommentPrefixes []string `yaml:"comment_prefixes"`
	OpenDelim       string   `yaml:"open_delim"`
	CloseDelim      string   `yaml:"close_delim"`
}

type Config struct {
	Journal struct {
		Path string `yaml:"path"`
	} `yaml:"journal"`
	Profiles []LanguageProfile `yaml:"profiles"`
}

// DefaultProfiles covers the languages the tool is used on day to day.
// A config file can add to or override these.
func DefaultProfiles() []LanguageProfile {
	return []LanguageProfile{
		{
			Name:       "typescript",
			Extensions: []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"},
			DeclPatterns: []string{
				`^export\s+async\s+function\s+%s\s*\(`,
				`^export\s+function\s+%s\s*\(`,
				`^async\s+function\s+%s\s*\(`,
				`^function\s+%s\s*\(`,
			},
			DocOpen:         "/**",
			CommentPrefixes: []string{"*"},
			OpenDelim:       "{",
			CloseDelim:      "}",
		},
		{
			Name:       "go",
			Extensions: []string{".go"},
			DeclPatterns: []string{
				`^func\s+%s\s*\(`,
				`^func\s+\([^)]+\)\s+%s\s*\(`,
			},
			DocOpen:         "//",
			CommentPrefixes: []string{"//"},
			OpenDelim:       "{",
			CloseDelim:      "}",
		},
	}
}

// LoadConfig reads the optional YAML config and merges it over the defaults.
// A missing config file is not an error; the built-in profiles apply.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := &Config{Profiles: DefaultProfiles()}
	cfg.Journal.Path = "deadwood.db"

	// 2. Load YAML config if present
	file, err := os.ReadFile(path)
	if err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(file, &fileCfg); err != nil {
			return nil, err
		}
		if fileCfg.Journal.Path != "" {
			cfg.Journal.Path = fileCfg.Journal.Path
		}
		// Profiles from the file shadow defaults with the same name.
		for _, p := range fileCfg.Profiles {
			cfg.upsertProfile(p)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if journal := os.Getenv("DEADWOOD_JOURNAL"); journal != "" {
		cfg.Journal.Path = journal
	}

	return cfg, nil
}

func (c *Config) upsertProfile(p LanguageProfile) {
	for i, existing := range c.Profiles {
		if existing.Name == p.Name {
			c.Profiles[i] = p
			return
		}
	}
	c.Profiles = append(c.Profiles, p)
}

// ProfileForFile picks the profile matching the file's extension.
// Unknown extensions fall back to the first profile so the tool still
// works on e.g. generated files with odd suffixes.
func (c *Config) ProfileForFile(path string) LanguageProfile {
	ext := strings.ToLower(filepath.Ext(path))
	for _, p := range c.Profiles {
		for _, e := range p.Extensions {
			if e == ext {
				return p
			}
		}
	}
	return c.Profiles[0]
}
