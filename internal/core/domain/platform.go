package domain

import (
	"runtime"
	"strings"

	"go.trai.ch/zerr"
)

// PlatformOS identifies the target operating system family.
type PlatformOS string

const (
	// OSWindows covers the win32 and win-amd64 targets.
	OSWindows PlatformOS = "windows"
	// OSDarwin covers the macosx-* targets.
	OSDarwin PlatformOS = "darwin"
	// OSOther covers everything else (linux, bsd, ...).
	OSOther PlatformOS = "other"
)

// Platform describes the build target derived from a platform identifier.
type Platform struct {
	// Name is the raw platform identifier, e.g. "win-amd64" or
	// "macosx-10.14-x86_64".
	Name string
	OS   PlatformOS
	// Bits is the target word size. Only meaningful on Windows, where it
	// selects between the 32 and 64 bit variants of prebuilt libraries.
	Bits int
}

// ParsePlatform parses a platform identifier string.
// An empty identifier falls back to the host platform.
func ParsePlatform(name string) (Platform, error) {
	if name == "" {
		return HostPlatform(), nil
	}

	p := Platform{Name: name}
	switch {
	case name == "win32":
		p.OS = OSWindows
		p.Bits = 32
	case name == "win-amd64":
		p.OS = OSWindows
		p.Bits = 64
	case strings.Contains(name, "macosx"):
		p.OS = OSDarwin
		p.Bits = 64
	case strings.Contains(name, "-"), isKnownOS(name):
		p.OS = OSOther
		p.Bits = 64
	default:
		return Platform{}, zerr.With(ErrUnknownPlatform, "platform", name)
	}
	return p, nil
}

// HostPlatform derives the platform from the running toolchain.
func HostPlatform() Platform {
	p := Platform{Bits: 64}
	if strings.HasSuffix(runtime.GOARCH, "386") || runtime.GOARCH == "arm" {
		p.Bits = 32
	}

	switch runtime.GOOS {
	case "windows":
		p.OS = OSWindows
		if p.Bits == 64 {
			p.Name = "win-amd64"
		} else {
			p.Name = "win32"
		}
	case "darwin":
		p.OS = OSDarwin
		p.Name = "macosx-" + runtime.GOARCH
	default:
		p.OS = OSOther
		p.Name = runtime.GOOS + "-" + runtime.GOARCH
	}
	return p
}

// Windows reports whether the target is a Windows platform.
func (p Platform) Windows() bool { return p.OS == OSWindows }

// Darwin reports whether the target is a macOS platform.
func (p Platform) Darwin() bool { return p.OS == OSDarwin }

func isKnownOS(name string) bool {
	switch name {
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly", "solaris", "aix":
		return true
	}
	return false
}
