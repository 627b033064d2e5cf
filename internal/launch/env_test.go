package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"puppet-launcher/internal/config"
	"puppet-launcher/internal/platform"
)

func pdkConnection() config.ConnectionConfig {
	return config.ConnectionConfig{
		PuppetBaseDir: "/opt/puppetlabs/pdk",
		PDKBinDir:     "/opt/puppetlabs/pdk/bin",
		PDKRubyDir:    "/opt/puppetlabs/pdk/ruby/2.7.0",
		PDKRubyBinDir: "/opt/puppetlabs/pdk/ruby/2.7.0/bin",
		PDKRubyLib:    "/opt/puppetlabs/pdk/lib",
		PDKRubyVerDir: "/opt/puppetlabs/pdk/ruby-ver/2.7.0",
		PDKGemDir:     "/home/dev/.pdk/cache/ruby/2.7.0",
		PDKGemVerDir:  "/opt/puppetlabs/pdk/gems/2.7.0",
	}
}

func TestComposeEnvironment_PDK(t *testing.T) {
	b := &Builder{
		Settings: config.Settings{
			InstallType:   config.InstallTypePDK,
			EditorService: config.EditorServiceSettings{Protocol: config.ProtocolSTDIO, Timeout: 10},
		},
		Connection: pdkConnection(),
		Platform:   platform.PlatformLinux,
		Environ:    map[string]string{"PATH": "/usr/bin", "RUBYLIB": "/base/lib", "HOME": "/home/dev"},
	}

	env := b.composeEnvironment()

	assert.Equal(t, "rubygems", env["RUBYOPT"])
	assert.Equal(t, "/opt/puppetlabs/pdk", env["DEVKIT_BASEDIR"])
	assert.Equal(t, "/opt/puppetlabs/pdk/ruby/2.7.0", env["RUBY_DIR"])
	assert.Equal(t, "/home/dev/.pdk/cache/ruby/2.7.0", env["GEM_HOME"])

	// GEM_PATH joins [gem-version dir, gem dir, ruby-version dir] in order.
	assert.Equal(t,
		"/opt/puppetlabs/pdk/gems/2.7.0:/home/dev/.pdk/cache/ruby/2.7.0:/opt/puppetlabs/pdk/ruby-ver/2.7.0",
		env["GEM_PATH"])

	// New entries are prepended so configured locations win lookups.
	assert.Equal(t, "/opt/puppetlabs/pdk/lib:/base/lib", env["RUBYLIB"])
	assert.Equal(t, "/opt/puppetlabs/pdk/bin:/opt/puppetlabs/pdk/ruby/2.7.0/bin:/usr/bin", env["PATH"])

	// Untouched host entries survive the clone.
	assert.Equal(t, "/home/dev", env["HOME"])
}

func TestComposeEnvironment_Agent(t *testing.T) {
	b := &Builder{
		Settings: config.Settings{InstallType: config.InstallTypeAgent},
		Connection: config.ConnectionConfig{
			RubyDir:         "/opt/puppetlabs/puppet",
			RubyLib:         "/b",
			EnvironmentPath: "/opt/puppetlabs/puppet/bin",
			SSLCertFile:     "/opt/puppetlabs/puppet/ssl/cert.pem",
			SSLCertDir:      "/opt/puppetlabs/puppet/ssl/certs",
		},
		Platform: platform.PlatformLinux,
		Environ:  map[string]string{"PATH": "/usr/bin", "RUBYLIB": "/a"},
	}

	env := b.composeEnvironment()

	assert.Equal(t, "rubygems", env["RUBYOPT"])
	assert.Equal(t, "/opt/puppetlabs/puppet/ssl/cert.pem", env["SSL_CERT_FILE"])
	assert.Equal(t, "/opt/puppetlabs/puppet/ssl/certs", env["SSL_CERT_DIR"])
	assert.Equal(t, "/opt/puppetlabs/puppet", env["RUBY_DIR"])
	assert.Equal(t, "/b:/a", env["RUBYLIB"])
	assert.Equal(t, "/opt/puppetlabs/puppet/bin:/usr/bin", env["PATH"])
}

func TestComposeEnvironment_WindowsSeparator(t *testing.T) {
	b := &Builder{
		Settings: config.Settings{InstallType: config.InstallTypeAgent},
		Connection: config.ConnectionConfig{
			EnvironmentPath: `C:\Program Files\Puppet Labs\Puppet\bin`,
		},
		Platform: platform.PlatformWindows,
		Environ:  map[string]string{"Path": `C:\Windows\system32`},
	}

	env := b.composeEnvironment()

	assert.Equal(t, `C:\Program Files\Puppet Labs\Puppet\bin;C:\Windows\system32`, env["PATH"])
	_, hasVariant := env["Path"]
	assert.False(t, hasVariant, "mixed-case Path variant must be folded into PATH")
}

func TestComposeEnvironment_DoesNotMutateSnapshot(t *testing.T) {
	environ := map[string]string{"Path": "/usr/bin", "RUBYLIB": "/a"}
	b := &Builder{
		Settings: config.Settings{InstallType: config.InstallTypeAgent},
		Platform: platform.PlatformLinux,
		Environ:  environ,
	}

	b.composeEnvironment()

	assert.Equal(t, map[string]string{"Path": "/usr/bin", "RUBYLIB": "/a"}, environ)
}

func TestNormalizePathKey(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want map[string]string
	}{
		{
			name: "canonical key untouched",
			env:  map[string]string{"PATH": "/usr/bin"},
			want: map[string]string{"PATH": "/usr/bin"},
		},
		{
			name: "variant moved to canonical key",
			env:  map[string]string{"Path": "/usr/bin"},
			want: map[string]string{"PATH": "/usr/bin"},
		},
		{
			name: "variant overrides existing canonical key, one survivor",
			env:  map[string]string{"PATH": "/old", "Path": "/new"},
			want: map[string]string{"PATH": "/new"},
		},
		{
			name: "multiple variants, last in sorted order wins",
			env:  map[string]string{"PATH": "/a", "Path": "/b", "path": "/c"},
			want: map[string]string{"PATH": "/c"},
		},
		{
			name: "missing key initialized empty",
			env:  map[string]string{"HOME": "/home/dev"},
			want: map[string]string{"HOME": "/home/dev", "PATH": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalizePathKey(tt.env)
			assert.Equal(t, tt.want, tt.env)
		})
	}
}

func TestComposeEnvironment_SinglePathKeySurvives(t *testing.T) {
	for _, installType := range []config.InstallType{config.InstallTypePDK, config.InstallTypeAgent} {
		t.Run(string(installType), func(t *testing.T) {
			b := &Builder{
				Settings: config.Settings{InstallType: installType},
				Platform: platform.PlatformLinux,
				Environ:  map[string]string{"Path": "/p1", "PATH": "/p2", "HOME": "/h"},
			}

			env := b.composeEnvironment()

			pathKeys := 0
			for k := range env {
				if k == "PATH" || k == "Path" || k == "path" {
					pathKeys++
				}
			}
			assert.Equal(t, 1, pathKeys, "exactly one PATH-like key must survive")
		})
	}
}

func TestComposeEnvironment_UnconfiguredLocationsStayUnset(t *testing.T) {
	// No connection locations configured at all: install-mode variables
	// sourced from config must not appear as empty entries.
	b := &Builder{
		Settings: config.Settings{InstallType: config.InstallTypePDK},
		Platform: platform.PlatformLinux,
		Environ:  map[string]string{"PATH": "/usr/bin"},
	}

	env := b.composeEnvironment()

	for _, key := range []string{"DEVKIT_BASEDIR", "GEM_HOME", "GEM_PATH"} {
		_, ok := env[key]
		assert.False(t, ok, "expected %s to stay unset", key)
	}
	assert.Equal(t, "rubygems", env["RUBYOPT"])
}

func TestComposeEnvironment_RubyLibInitialized(t *testing.T) {
	b := &Builder{
		Settings:   config.Settings{InstallType: config.InstallTypeAgent},
		Connection: config.ConnectionConfig{RubyLib: "/b"},
		Platform:   platform.PlatformLinux,
		Environ:    map[string]string{"PATH": "/usr/bin"},
	}

	env := b.composeEnvironment()

	// Host had no RUBYLIB; configured entry stands alone without a
	// trailing separator.
	assert.Equal(t, "/b", env["RUBYLIB"])
}

func TestBuildOptions(t *testing.T) {
	linux := &Builder{
		Settings: config.Settings{InstallType: config.InstallTypeAgent},
		Platform: platform.PlatformLinux,
		Environ:  map[string]string{"PATH": "/usr/bin"},
	}
	windows := &Builder{
		Settings: config.Settings{InstallType: config.InstallTypeAgent},
		Platform: platform.PlatformWindows,
		Environ:  map[string]string{"PATH": `C:\Windows`},
	}

	linuxOpts := linux.buildOptions()
	windowsOpts := windows.buildOptions()

	assert.Equal(t, StdioPipe, linuxOpts.Stdio)
	assert.True(t, linuxOpts.Shell, "unix spawns need shell PATH resolution")
	assert.False(t, windowsOpts.Shell, "windows spawns run the command directly")
}

func TestJoinPathList(t *testing.T) {
	assert.Equal(t, "/a:/b", joinPathList(":", "/a", "/b"))
	assert.Equal(t, "/a", joinPathList(":", "/a", ""))
	assert.Equal(t, "/b", joinPathList(":", "", "/b"))
	assert.Equal(t, "", joinPathList(":", "", ""))
	assert.Equal(t, `C:\a;C:\b`, joinPathList(";", `C:\a`, `C:\b`))
}

func TestLanguageServerSpec_EndToEnd(t *testing.T) {
	b := &Builder{
		Settings: config.Settings{
			InstallType: config.InstallTypePDK,
			EditorService: config.EditorServiceSettings{
				Protocol: config.ProtocolSTDIO,
				Timeout:  10,
			},
		},
		Connection: pdkConnection(),
		Platform:   platform.PlatformLinux,
		Environ:    map[string]string{"PATH": "/usr/bin"},
	}

	spec := b.LanguageServerSpec("/srv/puppet-languageserver", "/ws")

	require.Equal(t, "/opt/puppetlabs/pdk/ruby/2.7.0/bin/ruby", spec.Command)
	assert.Equal(t, "/srv/puppet-languageserver", spec.Args[0])
	assert.Contains(t, spec.Args, "--stdio")
	assert.Contains(t, spec.Args, "--local-workspace=/ws")
	assert.Equal(t, StdioPipe, spec.Options.Stdio)
	assert.Equal(t, "rubygems", spec.Options.Env["RUBYOPT"])
}
