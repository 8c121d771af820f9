// Package dist builds xz-compressed source bundles for distribution.
package dist

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ulikunitz/xz"
	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Archiver = (*Archiver)(nil)

// Archiver implements ports.Archiver as a tar.xz writer.
type Archiver struct {
	logger ports.Logger
}

// NewArchiver creates a new Archiver.
func NewArchiver(logger ports.Logger) *Archiver {
	return &Archiver{logger: logger}
}

// WriteBundle writes <name>-<version>.tar.xz into destDir. Every file lands
// under a <name>-<version>/ prefix, and a generated PKG-INFO carries the
// packaging metadata with the readme as long description.
func (a *Archiver) WriteBundle(manifest *domain.Manifest, files []string, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o750); err != nil {
		return "", zerr.Wrap(err, "failed to create dist directory")
	}

	prefix := manifest.Name
	if manifest.Version != "" {
		prefix = manifest.Name + "-" + manifest.Version
	}
	archivePath := filepath.Join(destDir, prefix+".tar.xz")

	f, err := os.Create(archivePath) //nolint:gosec // Path is derived from the manifest
	if err != nil {
		return "", zerr.Wrap(err, "failed to create archive")
	}
	defer f.Close() //nolint:errcheck // Close error surfaced via xw/tw below

	xw, err := xz.NewWriter(f)
	if err != nil {
		return "", zerr.Wrap(err, "failed to create xz writer")
	}
	tw := tar.NewWriter(xw)

	if err := a.writeMetadata(tw, manifest, prefix); err != nil {
		return "", err
	}
	for _, file := range files {
		if err := a.writeFile(tw, file, prefix); err != nil {
			return "", err
		}
	}

	if err := tw.Close(); err != nil {
		return "", zerr.Wrap(err, "failed to finish tar stream")
	}
	if err := xw.Close(); err != nil {
		return "", zerr.Wrap(err, "failed to finish xz stream")
	}

	a.logger.Info(fmt.Sprintf("wrote %s", archivePath))
	return archivePath, nil
}

// writeMetadata generates the PKG-INFO entry. A missing readme is not fatal:
// the bundle simply ships without a long description.
func (a *Archiver) writeMetadata(tw *tar.Writer, manifest *domain.Manifest, prefix string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", manifest.Name)
	fmt.Fprintf(&b, "Version: %s\n", manifest.Version)
	if manifest.Description != "" {
		fmt.Fprintf(&b, "Summary: %s\n", manifest.Description)
	}

	readme, err := os.ReadFile(manifest.Readme) //nolint:gosec // Path comes from the manifest
	if err == nil {
		b.WriteString("\n")
		b.Write(readme)
	} else {
		a.logger.Warn(fmt.Sprintf("readme %s not readable, omitting long description", manifest.Readme))
	}

	content := b.String()
	hdr := &tar.Header{
		Name:    entryName(prefix, "PKG-INFO"),
		Mode:    0o644,
		Size:    int64(len(content)),
		ModTime: time.Now(),
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return zerr.Wrap(err, "failed to write metadata header")
	}
	if _, err := io.WriteString(tw, content); err != nil {
		return zerr.Wrap(err, "failed to write metadata")
	}
	return nil
}

func (a *Archiver) writeFile(tw *tar.Writer, file, prefix string) error {
	f, err := os.Open(file) //nolint:gosec // Paths come from the resolved target
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open bundle file"), "path", file)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	info, err := f.Stat()
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat bundle file"), "path", file)
	}

	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return zerr.Wrap(err, "failed to build tar header")
	}
	hdr.Name = entryName(prefix, filepath.ToSlash(file))

	if err := tw.WriteHeader(hdr); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write tar header"), "path", file)
	}
	if _, err := io.Copy(tw, f); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write tar entry"), "path", file)
	}
	return nil
}

func entryName(prefix, name string) string {
	return prefix + "/" + name
}
