package ports

import "context"

// Prober detects platform capabilities by compiling and linking a minimal
// program against a named function. A missing function is not an error, it
// narrows the feature set.
//
//go:generate go run go.uber.org/mock/mockgen -source=prober.go -destination=mocks/mock_prober.go -package=mocks
type Prober interface {
	// HasFunction reports whether the named function can be linked on the
	// host, optionally against the given libraries.
	HasFunction(ctx context.Context, function string, libraries ...string) bool
}
