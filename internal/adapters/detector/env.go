// Package detector provides environment detection for telemetry selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents how build progress is reported.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeRich records progress vertices for interactive terminals.
	ModeRich
	// ModePlain logs linearly, suitable for CI and redirected output.
	ModePlain
)

// DetectEnvironment returns the recommended output mode based on the
// environment: rich when stderr is a TTY and no CI marker is set.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePlain
	}
	return ModeRich
}

// ResolveMode applies a user override flag to the auto-detection.
// userFlag should be one of: "auto", "rich", "plain", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "rich":
		return ModeRich
	case "plain", "ci":
		return ModePlain
	default:
		return autoDetected
	}
}
