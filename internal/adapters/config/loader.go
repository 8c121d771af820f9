// Package config provides the manifest loader for extbuild.
package config

import (
	"os"
	"path/filepath"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the manifest file name looked up in the project root.
const DefaultFilename = "extension.yaml"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML manifest file.
type Loader struct {
	Filename string
}

// NewLoader creates a Loader for the default manifest file name.
func NewLoader() *Loader {
	return &Loader{Filename: DefaultFilename}
}

// Load reads the manifest from the given project directory.
func (l *Loader) Load(cwd string) (*domain.Manifest, error) {
	path := filepath.Join(cwd, l.Filename)

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read manifest")
	}

	var file Extfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse manifest")
	}

	if file.Name == "" {
		return nil, zerr.With(zerr.New("manifest is missing the extension name"), "path", path)
	}
	if len(file.Sources) == 0 {
		return nil, zerr.With(zerr.New("manifest declares no binding sources"), "path", path)
	}

	m := &domain.Manifest{
		Name:           file.Name,
		Version:        file.Version,
		Description:    file.Description,
		Readme:         file.Readme,
		BindingSources: file.Sources,
		EngineRoot:     file.Engine.Root,
		EngineLibrary:  file.Engine.Library,
		Exclusions:     file.Engine.Exclude,
		BuildDir:       file.BuildDir,
		Options: domain.Options{
			DynamicLinking:  file.Options.DynamicLinking,
			EnableMagic:     file.Options.EnableMagic,
			EnableCuckoo:    file.Options.EnableCuckoo,
			EnableProfiling: file.Options.EnableProfiling,
		},
	}
	applyDefaults(m)
	return m, nil
}

func applyDefaults(m *domain.Manifest) {
	if m.Readme == "" {
		m.Readme = "README.rst"
	}
	if m.EngineRoot == "" {
		m.EngineRoot = filepath.Join(m.Name, "lib"+m.Name)
	}
	if m.EngineLibrary == "" {
		m.EngineLibrary = m.Name
	}
	if m.BuildDir == "" {
		m.BuildDir = "build"
	}
}
