package app

import "go.trai.ch/extbuild/internal/core/ports"

// Components bundles everything the CLI entry point needs.
type Components struct {
	App       *App
	Logger    ports.Logger
	Telemetry ports.Telemetry
}
