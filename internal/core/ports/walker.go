package ports

// SourceWalker collects native source files from the project tree.
//
//go:generate go run go.uber.org/mock/mockgen -source=walker.go -destination=mocks/mock_walker.go -package=mocks
type SourceWalker interface {
	// CollectSources walks root and returns every file with the given
	// extension, minus the excluded paths. Paths are returned relative to
	// the working directory, normalized and sorted.
	CollectSources(root, ext string, exclusions []string) ([]string, error)
}
