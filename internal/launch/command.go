package launch

import (
	"path/filepath"

	"puppet-launcher/internal/config"
)

// Command resolves the interpreter executable for the configured install
// type. A PDK install carries its own ruby under <pdk ruby dir>/bin; a
// system install relies on the child's inherited PATH to find a bare "ruby".
// The path is not checked for existence here: a missing interpreter surfaces
// when the process is spawned.
func (b *Builder) Command() string {
	switch b.Settings.InstallType {
	case config.InstallTypePDK:
		return filepath.Join(b.Connection.PDKRubyDir, "bin", "ruby")
	case config.InstallTypeAgent:
		return "ruby"
	default:
		return "ruby"
	}
}
