package domain

import "go.trai.ch/zerr"

// Options holds the build options for the extension module.
// All options default to false, matching a plain static build.
type Options struct {
	// DynamicLinking links against an installed copy of the engine library
	// instead of compiling the engine sources into the extension.
	DynamicLinking bool
	// EnableMagic compiles the "magic" engine module.
	EnableMagic bool
	// EnableCuckoo compiles the "cuckoo" engine module.
	EnableCuckoo bool
	// EnableProfiling enables the engine's profiling instrumentation.
	EnableProfiling bool
}

// Finalize validates the option set.
// The magic and cuckoo modules are compiled into the extension, so they
// cannot be requested together with dynamic linking.
func (o Options) Finalize() error {
	if o.EnableMagic && o.DynamicLinking {
		return zerr.With(ErrIncompatibleOptions, "options", "enable-magic, dynamic-linking")
	}
	if o.EnableCuckoo && o.DynamicLinking {
		return zerr.With(ErrIncompatibleOptions, "options", "enable-cuckoo, dynamic-linking")
	}
	return nil
}
