// Package launch derives an executable launch specification for the Puppet
// Editor Services language server and debug server: the interpreter command,
// the argument vector understood by the server's own option parser, and a
// sanitized child environment. The derivation is a pure transformation over
// the settings, the resolved toolchain locations, and an injected snapshot
// of the host environment; nothing here touches the filesystem or spawns
// anything.
package launch

import (
	"os"
	"strings"

	"puppet-launcher/internal/config"
	"puppet-launcher/internal/platform"
)

// StdioMode selects how the child's standard streams are connected.
type StdioMode string

const (
	// StdioPipe connects stdin/stdout/stderr through pipes owned by the
	// spawning process.
	StdioPipe StdioMode = "pipe"
	// StdioInherit hands the parent's streams to the child directly.
	StdioInherit StdioMode = "inherit"
)

// Options carries the process-spawn options accompanying a command line.
type Options struct {
	Env   map[string]string `json:"env"`
	Stdio StdioMode         `json:"stdio"`
	Shell bool              `json:"shell"`
}

// Spec is a complete description of a child process to start. It is built
// fresh per call and owned by the caller.
type Spec struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
	Options Options  `json:"options"`
}

// Builder assembles launch specs from one settings snapshot. The host
// environment and platform are plain fields so tests can pin them; NewBuilder
// fills them from the running process.
type Builder struct {
	Settings   config.Settings
	Connection config.ConnectionConfig
	Platform   platform.Platform
	Environ    map[string]string
}

// NewBuilder returns a Builder over cfg using the current platform and a
// snapshot of the process environment taken now.
func NewBuilder(cfg *config.LauncherConfig) *Builder {
	return &Builder{
		Settings:   cfg.Settings,
		Connection: cfg.Connection,
		Platform:   platform.Current(),
		Environ:    EnvironMap(),
	}
}

// LanguageServerSpec builds the spec for the language server entry point.
// workspaceRoot may be empty when no workspace folder is open.
func (b *Builder) LanguageServerSpec(serverPath, workspaceRoot string) Spec {
	return Spec{
		Command: b.Command(),
		Args:    b.languageServerArgs(serverPath, workspaceRoot),
		Options: b.buildOptions(),
	}
}

// DebugServerSpec builds the spec for the debug server entry point.
func (b *Builder) DebugServerSpec(serverPath string) Spec {
	return Spec{
		Command: b.Command(),
		Args:    debugServerArgs(serverPath),
		Options: b.buildOptions(),
	}
}

// EnvironMap snapshots the process environment into a mapping. Entries
// without a '=' are skipped.
func EnvironMap() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if i := strings.Index(kv, "="); i > 0 {
			env[kv[:i]] = kv[i+1:]
		}
	}
	return env
}
