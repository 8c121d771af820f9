// Package cc adapts the host C toolchain: it derives compiler and linker
// invocations for an extension target and probes platform capabilities.
package cc

import (
	"os"
	"path/filepath"

	"go.trai.ch/extbuild/internal/core/domain"
	"go.trai.ch/extbuild/internal/core/ports"
)

var _ ports.Toolchain = (*Toolchain)(nil)

// Toolchain derives the command lines that build an extension target.
type Toolchain struct {
	compiler string
}

// NewToolchain creates a Toolchain using $CC, falling back to "cc".
func NewToolchain() *Toolchain {
	compiler := os.Getenv("CC")
	if compiler == "" {
		compiler = "cc"
	}
	return &Toolchain{compiler: compiler}
}

// Compiler returns the compiler binary in use.
func (t *Toolchain) Compiler() string {
	return t.compiler
}

// ObjectPath maps a source file to its object file under the build dir.
// The source's directory structure is preserved to keep object names unique.
func (t *Toolchain) ObjectPath(buildDir, source string) string {
	return filepath.Join(buildDir, "obj", source+".o")
}

// ModulePath returns the path of the linked extension module.
func (t *Toolchain) ModulePath(buildDir string, ext *domain.Extension) string {
	suffix := ".so"
	if ext.Platform.Windows() {
		suffix = ".dll"
	}
	return filepath.Join(buildDir, ext.Name+suffix)
}

// CompileCommand returns the argv compiling source into object.
func (t *Toolchain) CompileCommand(ext *domain.Extension, source, object string) []string {
	args := []string{t.compiler, "-c", "-fPIC"}
	for _, m := range ext.Macros {
		if m.Value == "" {
			args = append(args, "-D"+m.Name)
		} else {
			args = append(args, "-D"+m.Name+"="+m.Value)
		}
	}
	for _, dir := range ext.IncludeDirs {
		args = append(args, "-I"+dir)
	}
	args = append(args, ext.CompileArgs...)
	args = append(args, "-o", object, source)
	return args
}

// LinkCommand returns the argv linking the objects into the shared module.
func (t *Toolchain) LinkCommand(ext *domain.Extension, objects []string, output string) []string {
	args := []string{t.compiler, "-shared", "-o", output}
	args = append(args, objects...)
	for _, dir := range ext.LibraryDirs {
		args = append(args, "-L"+dir)
	}
	for _, lib := range ext.Libraries {
		args = append(args, "-l"+lib)
	}
	return args
}
