// Package platform answers the host-specific questions the launcher cares
// about: which operating system it is running on, how search-path lists are
// joined there, and whether spawned commands need shell interpretation.
package platform

import "runtime"

type Platform string

const (
	PlatformWindows Platform = "windows"
	PlatformLinux   Platform = "linux"
	PlatformMacOS   Platform = "darwin"
	PlatformUnknown Platform = "unknown"
)

// Current returns the platform the process is running on.
func Current() Platform {
	switch runtime.GOOS {
	case "windows":
		return PlatformWindows
	case "linux":
		return PlatformLinux
	case "darwin":
		return PlatformMacOS
	default:
		return PlatformUnknown
	}
}

func (p Platform) String() string {
	return string(p)
}

// IsWindows reports whether p uses Windows process and path conventions.
func (p Platform) IsWindows() bool {
	return p == PlatformWindows
}

// IsUnix reports whether p uses Unix process and path conventions.
func (p Platform) IsUnix() bool {
	return p == PlatformLinux || p == PlatformMacOS
}

// PathListSeparator returns the character joining entries of search-path
// variables such as PATH and RUBYLIB on p.
func (p Platform) PathListSeparator() string {
	if p.IsWindows() {
		return ";"
	}
	return ":"
}

// ExecutableExtension returns the suffix appended to executable names on p.
func (p Platform) ExecutableExtension() string {
	if p.IsWindows() {
		return ".exe"
	}
	return ""
}

// UsesCommandShell reports whether commands spawned on p should be handed to
// a shell rather than executed directly. Unix hosts rely on the shell for
// PATH and alias resolution of the bare ruby interpreter name; Windows
// spawns the command directly.
func (p Platform) UsesCommandShell() bool {
	return !p.IsWindows()
}
