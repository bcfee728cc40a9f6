package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "deadwood.db", cfg.Journal.Path)
	require.NotEmpty(t, cfg.Profiles)
	assert.Equal(t, "typescript", cfg.Profiles[0].Name)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deadwood.yaml")
	content := `
journal:
  path: custom.db
profiles:
  - name: typescript
    extensions: [".ts"]
    decl_patterns:
      - '^export\s+const\s+%s\s*='
    doc_open: "/**"
    comment_prefixes: ["*"]
    open_delim: "{"
    close_delim: "}"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "custom.db", cfg.Journal.Path)

	ts := cfg.ProfileForFile("src/storage/db.ts")
	assert.Equal(t, []string{`^export\s+const\s+%s\s*=`}, ts.DeclPatterns)

	// The go profile survives untouched next to the overridden one.
	goProfile := cfg.ProfileForFile("main.go")
	assert.Equal(t, "go", goProfile.Name)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("DEADWOOD_JOURNAL", "/tmp/env.db")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.Journal.Path)
}

func TestProfileForFile_UnknownExtensionFallsBack(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	p := cfg.ProfileForFile("notes.txt")
	assert.Equal(t, "typescript", p.Name)
}
