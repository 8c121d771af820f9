package domain

// Manifest describes an extension project as declared in extension.yaml.
type Manifest struct {
	// Name is the extension module name.
	Name string
	// Version is the package version.
	Version string
	// Description is the one-line package description.
	Description string
	// Readme is the path of the long-description file included in source
	// bundles.
	Readme string
	// BindingSources are the extension binding C files, always compiled.
	BindingSources []string
	// EngineRoot is the directory walked for engine sources on static
	// builds, e.g. "yara/libyara".
	EngineRoot string
	// EngineLibrary is the library name linked on dynamic builds.
	EngineLibrary string
	// Exclusions are engine source paths never compiled, relative to the
	// project root.
	Exclusions []string
	// BuildDir receives object files, the linked module and the build
	// info store.
	BuildDir string
	// Options are the default build options, overridable from the CLI.
	Options Options
}
