// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/extbuild/internal/adapters/cas"
	_ "go.trai.ch/extbuild/internal/adapters/cc"
	_ "go.trai.ch/extbuild/internal/adapters/config"
	_ "go.trai.ch/extbuild/internal/adapters/dist"
	_ "go.trai.ch/extbuild/internal/adapters/fs"
	_ "go.trai.ch/extbuild/internal/adapters/logger"
	_ "go.trai.ch/extbuild/internal/adapters/shell"
	_ "go.trai.ch/extbuild/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/extbuild/internal/app"
	_ "go.trai.ch/extbuild/internal/engine/assemble"
	_ "go.trai.ch/extbuild/internal/engine/configure"
)
