package ports

import "go.trai.ch/extbuild/internal/core/domain"

// Hasher computes content hashes for cache decisions.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeInputHash computes a single hash covering the task definition,
	// its command line and the content of its input files under rootDir.
	ComputeInputHash(task *domain.Task, rootDir string) (string, error)

	// ComputeOutputHash computes a hash over the task's output files.
	ComputeOutputHash(outputs []string, rootDir string) (string, error)
}
