package ports

import "go.trai.ch/extbuild/internal/core/domain"

// Archiver builds distributable source bundles.
//
//go:generate go run go.uber.org/mock/mockgen -source=archiver.go -destination=mocks/mock_archiver.go -package=mocks
type Archiver interface {
	// WriteBundle writes a compressed source bundle containing the given
	// files plus generated packaging metadata into destDir, and returns
	// the path of the written archive.
	WriteBundle(manifest *domain.Manifest, files []string, destDir string) (string, error)
}
