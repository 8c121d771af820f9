package domain

import "slices"

// Macro is a single preprocessor definition passed to the compiler.
type Macro struct {
	Name  string
	Value string
}

// Extension is a fully resolved native extension target: everything the
// assembler needs to compile and link one loadable module.
type Extension struct {
	// Name is the importable module name, e.g. "yara".
	Name string
	// Sources are the C files that participate in the build, in a stable
	// order with the binding sources first.
	Sources []string
	// Macros are the preprocessor definitions, in derivation order.
	Macros []Macro
	// Libraries are linked by name (-l style, without prefix/suffix).
	Libraries []string
	// IncludeDirs and LibraryDirs are extra search paths.
	IncludeDirs []string
	LibraryDirs []string
	// CompileArgs are extra compiler arguments applied to every source.
	CompileArgs []string
	// Platform the target was resolved for.
	Platform Platform
}

// HasMacro reports whether a macro with the given name is defined.
func (e *Extension) HasMacro(name string) bool {
	return slices.ContainsFunc(e.Macros, func(m Macro) bool {
		return m.Name == name
	})
}

// HasLibrary reports whether the target links the named library.
func (e *Extension) HasLibrary(name string) bool {
	return slices.Contains(e.Libraries, name)
}

// HasSource reports whether the given source file participates in the build.
func (e *Extension) HasSource(path string) bool {
	return slices.Contains(e.Sources, path)
}
