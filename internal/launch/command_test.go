package launch

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"puppet-launcher/internal/config"
	"puppet-launcher/internal/platform"
)

func TestCommand_PDKJoinsInterpreterPath(t *testing.T) {
	b := &Builder{
		Settings:   config.Settings{InstallType: config.InstallTypePDK},
		Connection: config.ConnectionConfig{PDKRubyDir: filepath.Join("/opt", "pdk", "ruby")},
		Platform:   platform.PlatformLinux,
	}

	assert.Equal(t, filepath.Join("/opt", "pdk", "ruby", "bin", "ruby"), b.Command())
}

func TestCommand_AgentUsesBareInterpreter(t *testing.T) {
	b := &Builder{
		Settings: config.Settings{InstallType: config.InstallTypeAgent},
		// Locations configured for the other mode must not leak in.
		Connection: config.ConnectionConfig{PDKRubyDir: "/opt/pdk/ruby"},
		Platform:   platform.PlatformLinux,
	}

	assert.Equal(t, "ruby", b.Command())
}
