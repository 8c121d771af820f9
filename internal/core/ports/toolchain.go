package ports

import "go.trai.ch/extbuild/internal/core/domain"

// Toolchain derives compiler and linker invocations for an extension target.
//
//go:generate go run go.uber.org/mock/mockgen -source=toolchain.go -destination=mocks/mock_toolchain.go -package=mocks
type Toolchain interface {
	// Compiler returns the compiler binary in use.
	Compiler() string

	// ObjectPath maps a source file to its object file under the build dir.
	ObjectPath(buildDir, source string) string

	// ModulePath returns the path of the linked extension module.
	ModulePath(buildDir string, ext *domain.Extension) string

	// CompileCommand returns the argv compiling source into object.
	CompileCommand(ext *domain.Extension, source, object string) []string

	// LinkCommand returns the argv linking the objects into the shared module.
	LinkCommand(ext *domain.Extension, objects []string, output string) []string
}
