package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCurrentMatchesRuntime(t *testing.T) {
	p := Current()

	switch runtime.GOOS {
	case "windows":
		assert.Equal(t, PlatformWindows, p)
	case "linux":
		assert.Equal(t, PlatformLinux, p)
	case "darwin":
		assert.Equal(t, PlatformMacOS, p)
	default:
		assert.Equal(t, PlatformUnknown, p)
	}
}

func TestPathListSeparator(t *testing.T) {
	tests := []struct {
		platform Platform
		want     string
	}{
		{PlatformWindows, ";"},
		{PlatformLinux, ":"},
		{PlatformMacOS, ":"},
		{PlatformUnknown, ":"},
	}

	for _, tt := range tests {
		t.Run(tt.platform.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.platform.PathListSeparator())
		})
	}
}

func TestUsesCommandShell(t *testing.T) {
	assert.False(t, PlatformWindows.UsesCommandShell())
	assert.True(t, PlatformLinux.UsesCommandShell())
	assert.True(t, PlatformMacOS.UsesCommandShell())
}

func TestExecutableExtension(t *testing.T) {
	assert.Equal(t, ".exe", PlatformWindows.ExecutableExtension())
	assert.Equal(t, "", PlatformLinux.ExecutableExtension())
}

func TestIsUnix(t *testing.T) {
	assert.True(t, PlatformLinux.IsUnix())
	assert.True(t, PlatformMacOS.IsUnix())
	assert.False(t, PlatformWindows.IsUnix())
	assert.False(t, PlatformUnknown.IsUnix())
}
