// Package app implements the application layer for extbuild.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"go.trai.ch/extbuild/internal/adapters/cas"
	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/extbuild/internal/engine/assemble"
	"go.trai.ch/extbuild/internal/engine/configure"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader       ports.ConfigLoader
	configurator *configure.Configurator
	assembler    *assemble.Assembler
	archiver     ports.Archiver
	walker       ports.SourceWalker
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	configurator *configure.Configurator,
	assembler *assemble.Assembler,
	archiver ports.Archiver,
	walker ports.SourceWalker,
	logger ports.Logger,
) *App {
	return &App{
		loader:       loader,
		configurator: configurator,
		assembler:    assembler,
		archiver:     archiver,
		walker:       walker,
		logger:       logger,
	}
}

// BuildOptions control a build invocation.
type BuildOptions struct {
	// PlatName selects the target platform. Empty means the host.
	PlatName string
	// Options are the build options from the command line. They are
	// merged with the manifest's defaults.
	Options domain.Options
	// NoCache bypasses the build cache and forces execution.
	NoCache bool
	// Parallelism bounds concurrent tasks. Zero means one per CPU.
	Parallelism int
}

// Configure resolves the extension target without building it.
func (a *App) Configure(ctx context.Context, platName string, opts domain.Options) (*domain.Extension, error) {
	_, ext, err := a.resolve(ctx, platName, opts)
	return ext, err
}

// Build resolves the extension target and assembles the loadable module.
// It returns the path of the linked module.
func (a *App) Build(ctx context.Context, opts BuildOptions) (string, error) {
	manifest, ext, err := a.resolve(ctx, opts.PlatName, opts.Options)
	if err != nil {
		return "", err
	}

	parallelism := opts.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	return a.assembler.Build(ctx, ext, assemble.Options{
		BuildDir:    manifest.BuildDir,
		Parallelism: parallelism,
		NoCache:     opts.NoCache,
	})
}

// Package writes a compressed source bundle into the dist directory and
// returns its path. The bundle contains the binding sources, the full
// engine tree and generated packaging metadata.
func (a *App) Package(ctx context.Context) (string, error) {
	manifest, err := a.loader.Load(".")
	if err != nil {
		return "", zerr.Wrap(err, "failed to load manifest")
	}

	files := slices.Clone(manifest.BindingSources)
	for _, suffix := range []string{".c", ".h"} {
		engineFiles, err := a.walker.CollectSources(manifest.EngineRoot, suffix, nil)
		if err != nil {
			return "", zerr.Wrap(err, "failed to collect engine files")
		}
		files = append(files, engineFiles...)
	}

	return a.archiver.WriteBundle(manifest, files, "dist")
}

// Clean removes the build directory and the build info store.
func (a *App) Clean(ctx context.Context) error {
	manifest, err := a.loader.Load(".")
	if err != nil {
		return zerr.Wrap(err, "failed to load manifest")
	}

	if err := os.RemoveAll(manifest.BuildDir); err != nil {
		return zerr.Wrap(err, "failed to remove build directory")
	}
	if err := os.RemoveAll(filepath.Dir(cas.DefaultPath)); err != nil {
		return zerr.Wrap(err, "failed to remove build info store")
	}

	a.logger.Info(fmt.Sprintf("cleaned %q", manifest.BuildDir))
	return nil
}

func (a *App) resolve(ctx context.Context, platName string, opts domain.Options) (*domain.Manifest, *domain.Extension, error) {
	manifest, err := a.loader.Load(".")
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load manifest")
	}

	platform, err := domain.ParsePlatform(platName)
	if err != nil {
		return nil, nil, err
	}

	ext, err := a.configurator.Resolve(ctx, manifest, platform, mergeOptions(manifest.Options, opts))
	if err != nil {
		return nil, nil, err
	}
	return manifest, ext, nil
}

// mergeOptions combines the manifest's default options with the ones set on
// the command line. Flags can only enable features, not disable defaults.
func mergeOptions(base, cli domain.Options) domain.Options {
	return domain.Options{
		DynamicLinking:  base.DynamicLinking || cli.DynamicLinking,
		EnableMagic:     base.EnableMagic || cli.EnableMagic,
		EnableCuckoo:    base.EnableCuckoo || cli.EnableCuckoo,
		EnableProfiling: base.EnableProfiling || cli.EnableProfiling,
	}
}
