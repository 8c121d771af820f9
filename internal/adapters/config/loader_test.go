package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/extbuild/internal/adapters/config"
)

const manifest = `name: yara
version: 3.4.0
description: Runtime interface for the YARA scanning engine
sources:
  - yara-python.c
engine:
  root: yara/libyara
  library: yara
  exclude:
    - yara/libyara/modules/pe_utils.c
options:
  enableProfiling: true
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFilename), []byte(content), 0o644))
	return dir
}

func TestLoader_Load(t *testing.T) {
	dir := writeManifest(t, manifest)

	m, err := config.NewLoader().Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "yara", m.Name)
	assert.Equal(t, "3.4.0", m.Version)
	assert.Equal(t, []string{"yara-python.c"}, m.BindingSources)
	assert.Equal(t, "yara/libyara", m.EngineRoot)
	assert.Equal(t, "yara", m.EngineLibrary)
	assert.Equal(t, []string{"yara/libyara/modules/pe_utils.c"}, m.Exclusions)
	assert.True(t, m.Options.EnableProfiling)
	assert.False(t, m.Options.DynamicLinking)
}

func TestLoader_Load_Defaults(t *testing.T) {
	dir := writeManifest(t, "name: yara\nsources: [yara-python.c]\n")

	m, err := config.NewLoader().Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "README.rst", m.Readme)
	assert.Equal(t, filepath.Join("yara", "libyara"), m.EngineRoot)
	assert.Equal(t, "yara", m.EngineLibrary)
	assert.Equal(t, "build", m.BuildDir)
}

func TestLoader_Load_MissingName(t *testing.T) {
	dir := writeManifest(t, "sources: [binding.c]\n")

	_, err := config.NewLoader().Load(dir)
	assert.Error(t, err)
}

func TestLoader_Load_NoSources(t *testing.T) {
	dir := writeManifest(t, "name: yara\n")

	_, err := config.NewLoader().Load(dir)
	assert.Error(t, err)
}

func TestLoader_Load_MissingFile(t *testing.T) {
	_, err := config.NewLoader().Load(t.TempDir())
	assert.Error(t, err)
}

func TestLoader_Load_Malformed(t *testing.T) {
	dir := writeManifest(t, "name: [unclosed\n")

	_, err := config.NewLoader().Load(dir)
	assert.Error(t, err)
}
