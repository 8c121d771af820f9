package ports

import "go.trai.ch/extbuild/internal/core/domain"

// ConfigLoader loads the extension manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the manifest from the given project directory.
	Load(cwd string) (*domain.Manifest, error)
}
