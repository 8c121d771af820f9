package configure_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports/mocks"
	"go.trai.ch/extbuild/internal/engine/configure"
	"go.uber.org/mock/gomock"
)

func manifest() *domain.Manifest {
	return &domain.Manifest{
		Name:           "yara",
		Version:        "3.4.0",
		BindingSources: []string{"yara-python.c"},
		EngineRoot:     filepath.Join("yara", "libyara"),
		EngineLibrary:  "yara",
	}
}

type deps struct {
	prober *mocks.MockProber
	walker *mocks.MockSourceWalker
	logger *mocks.MockLogger
}

func newConfigurator(t *testing.T) (*configure.Configurator, *deps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	d := &deps{
		prober: mocks.NewMockProber(ctrl),
		walker: mocks.NewMockSourceWalker(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}
	d.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	return configure.NewConfigurator(d.prober, d.walker, d.logger), d
}

// expectBaseProbes registers the always-on libc probes with a fixed result.
func (d *deps) expectBaseProbes(ok bool) {
	for _, fn := range []string{"memmem", "strlcpy", "strlcat"} {
		d.prober.EXPECT().HasFunction(gomock.Any(), fn).Return(ok)
	}
}

func (d *deps) expectCryptoProbes(ok bool) {
	d.prober.EXPECT().HasFunction(gomock.Any(), "MD5_Init", "crypto").Return(ok)
	d.prober.EXPECT().HasFunction(gomock.Any(), "SHA256_Init", "crypto").Return(ok)
}

func linux() domain.Platform {
	return domain.Platform{Name: "linux-x86_64", OS: domain.OSOther, Bits: 64}
}

func TestConfigurator_RejectsIncompatibleOptions(t *testing.T) {
	tests := []struct {
		name string
		opts domain.Options
	}{
		{"magic with dynamic linking", domain.Options{DynamicLinking: true, EnableMagic: true}},
		{"cuckoo with dynamic linking", domain.Options{DynamicLinking: true, EnableCuckoo: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newConfigurator(t)

			_, err := c.Resolve(context.Background(), manifest(), linux(), tt.opts)
			require.ErrorIs(t, err, domain.ErrIncompatibleOptions)
		})
	}
}

func TestConfigurator_DynamicLinking(t *testing.T) {
	c, d := newConfigurator(t)
	d.expectBaseProbes(false)

	ext, err := c.Resolve(context.Background(), manifest(), linux(), domain.Options{DynamicLinking: true})
	require.NoError(t, err)

	// The installed engine library is linked and no engine sources are
	// compiled, so the walker must never run.
	assert.Equal(t, []string{"yara-python.c"}, ext.Sources)
	assert.Equal(t, []string{"yara"}, ext.Libraries)
	assert.Empty(t, ext.IncludeDirs)
	assert.Empty(t, ext.Macros)
}

func TestConfigurator_StaticLinux(t *testing.T) {
	c, d := newConfigurator(t)
	d.expectBaseProbes(true)
	d.expectCryptoProbes(true)

	root := filepath.Join("yara", "libyara")
	d.walker.EXPECT().
		CollectSources(root, ".c", gomock.Any()).
		Return([]string{filepath.Join(root, "compiler.c")}, nil)

	ext, err := c.Resolve(context.Background(), manifest(), linux(), domain.Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"yara-python.c", filepath.Join(root, "compiler.c")}, ext.Sources)
	assert.False(t, ext.HasLibrary("yara"), "static builds must not link the engine")
	assert.True(t, ext.HasLibrary("crypto"))
	assert.True(t, ext.HasMacro("HASH"))
	assert.True(t, ext.HasMacro("HAVE_MEMMEM"))
	assert.True(t, ext.HasMacro("HAVE_STRLCPY"))
	assert.True(t, ext.HasMacro("HAVE_STRLCAT"))
	assert.Equal(t, []string{filepath.Join(root, "include"), root, "."}, ext.IncludeDirs)
}

func TestConfigurator_StaticWithoutCrypto(t *testing.T) {
	c, d := newConfigurator(t)
	d.expectBaseProbes(false)
	d.expectCryptoProbes(false)
	d.logger.EXPECT().Warn(gomock.Any())

	root := filepath.Join("yara", "libyara")
	var seen []string
	d.walker.EXPECT().
		CollectSources(root, ".c", gomock.Any()).
		DoAndReturn(func(_, _ string, exclusions []string) ([]string, error) {
			seen = exclusions
			return nil, nil
		})

	ext, err := c.Resolve(context.Background(), manifest(), linux(), domain.Options{})
	require.NoError(t, err)

	assert.False(t, ext.HasMacro("HASH"))
	assert.False(t, ext.HasLibrary("crypto"))
	assert.Contains(t, seen, filepath.Join(root, "modules", "hash.c"))
}

func TestConfigurator_StaticWindows(t *testing.T) {
	c, d := newConfigurator(t)
	d.expectBaseProbes(false)

	root := filepath.Join("yara", "libyara")
	d.walker.EXPECT().
		CollectSources(root, ".c", gomock.Any()).
		Return(nil, nil)

	platform := domain.Platform{Name: "win-amd64", OS: domain.OSWindows, Bits: 64}
	ext, err := c.Resolve(context.Background(), manifest(), platform, domain.Options{})
	require.NoError(t, err)

	// Hash support comes from the bundled OpenSSL, never from probing.
	assert.True(t, ext.HasMacro("HASH"))
	assert.True(t, ext.HasLibrary("libeay64"))
	assert.True(t, ext.HasMacro("_CRT_SECURE_NO_WARNINGS"))
	assert.True(t, ext.HasLibrary("advapi32"))
	assert.True(t, ext.HasLibrary("user32"))
	assert.Contains(t, ext.IncludeDirs, filepath.Join("yara", "windows", "include"))
	assert.Contains(t, ext.LibraryDirs, filepath.Join("yara", "windows", "lib"))
}

func TestConfigurator_StaticWin32UsesThe32BitLibraries(t *testing.T) {
	c, d := newConfigurator(t)
	d.expectBaseProbes(false)
	d.walker.EXPECT().CollectSources(gomock.Any(), ".c", gomock.Any()).Return(nil, nil)

	platform := domain.Platform{Name: "win32", OS: domain.OSWindows, Bits: 32}
	ext, err := c.Resolve(context.Background(), manifest(), platform, domain.Options{EnableCuckoo: true})
	require.NoError(t, err)

	assert.True(t, ext.HasLibrary("libeay32"))
	assert.True(t, ext.HasLibrary("jansson32"))
}

func TestConfigurator_Darwin(t *testing.T) {
	c, d := newConfigurator(t)
	d.expectBaseProbes(false)

	platform := domain.Platform{Name: "macosx-10.14-x86_64", OS: domain.OSDarwin, Bits: 64}
	ext, err := c.Resolve(context.Background(), manifest(), platform, domain.Options{DynamicLinking: true})
	require.NoError(t, err)

	assert.Contains(t, ext.IncludeDirs, "/opt/local/include")
	assert.Contains(t, ext.LibraryDirs, "/opt/local/lib")
}

func TestConfigurator_OptionalModules(t *testing.T) {
	root := filepath.Join("yara", "libyara")

	t.Run("disabled modules are excluded", func(t *testing.T) {
		c, d := newConfigurator(t)
		d.expectBaseProbes(false)
		d.expectCryptoProbes(true)

		var seen []string
		d.walker.EXPECT().
			CollectSources(root, ".c", gomock.Any()).
			DoAndReturn(func(_, _ string, exclusions []string) ([]string, error) {
				seen = exclusions
				return nil, nil
			})

		ext, err := c.Resolve(context.Background(), manifest(), linux(), domain.Options{})
		require.NoError(t, err)

		assert.False(t, ext.HasMacro("MAGIC"))
		assert.False(t, ext.HasMacro("CUCKOO"))
		assert.Contains(t, seen, filepath.Join(root, "modules", "magic.c"))
		assert.Contains(t, seen, filepath.Join(root, "modules", "cuckoo.c"))
	})

	t.Run("enabled modules define macros and link their libraries", func(t *testing.T) {
		c, d := newConfigurator(t)
		d.expectBaseProbes(false)
		d.expectCryptoProbes(true)

		var seen []string
		d.walker.EXPECT().
			CollectSources(root, ".c", gomock.Any()).
			DoAndReturn(func(_, _ string, exclusions []string) ([]string, error) {
				seen = exclusions
				return nil, nil
			})

		opts := domain.Options{EnableMagic: true, EnableCuckoo: true}
		ext, err := c.Resolve(context.Background(), manifest(), linux(), opts)
		require.NoError(t, err)

		assert.True(t, ext.HasMacro("MAGIC"))
		assert.True(t, ext.HasMacro("CUCKOO"))
		assert.True(t, ext.HasLibrary("jansson"))
		assert.NotContains(t, seen, filepath.Join(root, "modules", "magic.c"))
		assert.NotContains(t, seen, filepath.Join(root, "modules", "cuckoo.c"))
	})
}

func TestConfigurator_Profiling(t *testing.T) {
	c, d := newConfigurator(t)
	d.expectBaseProbes(false)

	opts := domain.Options{DynamicLinking: true, EnableProfiling: true}
	ext, err := c.Resolve(context.Background(), manifest(), linux(), opts)
	require.NoError(t, err)

	assert.True(t, ext.HasMacro("PROFILING_ENABLED"))
}

func TestConfigurator_ManifestExclusionsAlwaysApply(t *testing.T) {
	c, d := newConfigurator(t)
	d.expectBaseProbes(false)
	d.expectCryptoProbes(true)

	m := manifest()
	m.Exclusions = []string{filepath.Join("yara", "libyara", "pe_utils.c")}

	var seen []string
	d.walker.EXPECT().
		CollectSources(m.EngineRoot, ".c", gomock.Any()).
		DoAndReturn(func(_, _ string, exclusions []string) ([]string, error) {
			seen = exclusions
			return nil, nil
		})

	_, err := c.Resolve(context.Background(), m, linux(), domain.Options{})
	require.NoError(t, err)
	assert.Contains(t, seen, filepath.Join("yara", "libyara", "pe_utils.c"))
}

func TestConfigurator_ResolveIsDeterministic(t *testing.T) {
	c, d := newConfigurator(t)
	d.expectBaseProbes(true)
	d.expectCryptoProbes(true)
	d.expectBaseProbes(true)
	d.expectCryptoProbes(true)

	root := filepath.Join("yara", "libyara")
	d.walker.EXPECT().
		CollectSources(root, ".c", gomock.Any()).
		Return([]string{filepath.Join(root, "compiler.c")}, nil).
		Times(2)

	first, err := c.Resolve(context.Background(), manifest(), linux(), domain.Options{})
	require.NoError(t, err)
	second, err := c.Resolve(context.Background(), manifest(), linux(), domain.Options{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
