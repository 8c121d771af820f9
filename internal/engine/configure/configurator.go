// Package configure implements the extension target configurator.
//
// The configurator takes the manifest, the target platform and the build
// options and derives a fully resolved extension target: which sources are
// compiled, which preprocessor macros are defined and which libraries and
// search paths the linker sees. Optional features that the host cannot
// support are dropped silently rather than failing the build.
package configure

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Configurator resolves extension targets.
type Configurator struct {
	prober ports.Prober
	walker ports.SourceWalker
	logger ports.Logger
}

// NewConfigurator creates a new Configurator.
func NewConfigurator(prober ports.Prober, walker ports.SourceWalker, logger ports.Logger) *Configurator {
	return &Configurator{
		prober: prober,
		walker: walker,
		logger: logger,
	}
}

// Resolve derives the extension target for the given platform and options.
// Option validation happens here, before any probing or file system work.
func (c *Configurator) Resolve(
	ctx context.Context,
	manifest *domain.Manifest,
	platform domain.Platform,
	opts domain.Options,
) (*domain.Extension, error) {
	if err := opts.Finalize(); err != nil {
		return nil, err
	}

	ext := &domain.Extension{
		Name:     manifest.Name,
		Platform: platform,
		Sources:  slices.Clone(manifest.BindingSources),
	}
	libraries := []string{manifest.EngineLibrary}
	exclusions := normalizePaths(manifest.Exclusions)

	if platform.Windows() {
		ext.Macros = append(ext.Macros, domain.Macro{Name: "_CRT_SECURE_NO_WARNINGS", Value: "1"})
		libraries = append(libraries, "advapi32", "user32")
	}
	if platform.Darwin() {
		ext.IncludeDirs = append(ext.IncludeDirs, "/opt/local/include")
		ext.LibraryDirs = append(ext.LibraryDirs, "/opt/local/lib")
	}

	probes := c.runProbes(ctx, platform, opts)

	for _, fn := range []string{"memmem", "strlcpy", "strlcat"} {
		if probes[fn] {
			ext.Macros = append(ext.Macros, domain.Macro{
				Name:  "HAVE_" + strings.ToUpper(fn),
				Value: "1",
			})
		}
	}

	if opts.EnableProfiling {
		ext.Macros = append(ext.Macros, domain.Macro{Name: "PROFILING_ENABLED", Value: "1"})
	}

	if !opts.DynamicLinking {
		libraries = slices.DeleteFunc(libraries, func(l string) bool {
			return l == manifest.EngineLibrary
		})
		libraries, exclusions = c.configureStatic(manifest, platform, opts, probes, ext, libraries, exclusions)

		engineSources, err := c.walker.CollectSources(manifest.EngineRoot, ".c", exclusions)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to collect engine sources")
		}
		ext.Sources = append(ext.Sources, engineSources...)
	}

	ext.Libraries = libraries
	c.logger.Info(fmt.Sprintf(
		"resolved target %q: %d sources, %d macros, %d libraries",
		ext.Name, len(ext.Sources), len(ext.Macros), len(ext.Libraries)))
	return ext, nil
}

// configureStatic applies the derivation rules that only matter when the
// engine is compiled into the extension: engine include paths, the hash
// module and the optional magic and cuckoo modules.
func (c *Configurator) configureStatic(
	manifest *domain.Manifest,
	platform domain.Platform,
	opts domain.Options,
	probes map[string]bool,
	ext *domain.Extension,
	libraries, exclusions []string,
) ([]string, []string) {
	ext.IncludeDirs = append(ext.IncludeDirs,
		filepath.Join(manifest.EngineRoot, "include"),
		manifest.EngineRoot,
		".",
	)

	// Prebuilt third-party headers and import libraries ship next to the
	// engine tree on Windows.
	vendorRoot := filepath.Dir(manifest.EngineRoot)
	if platform.Windows() {
		ext.IncludeDirs = append(ext.IncludeDirs, filepath.Join(vendorRoot, "windows", "include"))
		ext.LibraryDirs = append(ext.LibraryDirs, filepath.Join(vendorRoot, "windows", "lib"))
	}

	modulePath := func(name string) string {
		return filepath.Join(manifest.EngineRoot, "modules", name)
	}

	switch {
	case platform.Windows():
		ext.Macros = append(ext.Macros, domain.Macro{Name: "HASH", Value: "1"})
		libraries = append(libraries, fmt.Sprintf("libeay%d", platform.Bits))
	case probes["MD5_Init"] && probes["SHA256_Init"]:
		ext.Macros = append(ext.Macros, domain.Macro{Name: "HASH", Value: "1"})
		libraries = append(libraries, "crypto")
	default:
		c.logger.Warn("libcrypto not usable, building without the hash module")
		exclusions = append(exclusions, modulePath("hash.c"))
	}

	if opts.EnableMagic {
		ext.Macros = append(ext.Macros, domain.Macro{Name: "MAGIC", Value: "1"})
	} else {
		exclusions = append(exclusions, modulePath("magic.c"))
	}

	if opts.EnableCuckoo {
		ext.Macros = append(ext.Macros, domain.Macro{Name: "CUCKOO", Value: "1"})
		if platform.Windows() {
			libraries = append(libraries, fmt.Sprintf("jansson%d", platform.Bits))
		} else {
			libraries = append(libraries, "jansson")
		}
	} else {
		exclusions = append(exclusions, modulePath("cuckoo.c"))
	}

	return libraries, exclusions
}

// runProbes executes the capability probes concurrently and returns their
// results keyed by function name. Probe failures are results, not errors.
func (c *Configurator) runProbes(
	ctx context.Context,
	platform domain.Platform,
	opts domain.Options,
) map[string]bool {
	var mu sync.Mutex
	results := make(map[string]bool)

	g, ctx := errgroup.WithContext(ctx)
	probe := func(fn string, libs ...string) {
		g.Go(func() error {
			ok := c.prober.HasFunction(ctx, fn, libs...)
			mu.Lock()
			results[fn] = ok
			mu.Unlock()
			return nil
		})
	}

	probe("memmem")
	probe("strlcpy")
	probe("strlcat")

	// The crypto probes only matter for static non-Windows builds, where
	// the hash module needs an OpenSSL to link against.
	if !opts.DynamicLinking && !platform.Windows() {
		probe("MD5_Init", "crypto")
		probe("SHA256_Init", "crypto")
	}

	_ = g.Wait()
	return results
}

func normalizePaths(paths []string) []string {
	res := make([]string, len(paths))
	for i, p := range paths {
		res[i] = filepath.Clean(p)
	}
	return res
}
