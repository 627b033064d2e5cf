package launch

import (
	"sort"
	"strings"

	"puppet-launcher/internal/config"
)

// buildOptions produces the spawn options: piped standard streams, shell
// interpretation where the bare interpreter name needs shell-level PATH
// resolution, and the composed child environment.
func (b *Builder) buildOptions() Options {
	return Options{
		Env:   b.composeEnvironment(),
		Stdio: StdioPipe,
		Shell: b.Platform.UsesCommandShell(),
	}
}

// composeEnvironment derives the child environment from the host snapshot.
// The steps are order-sensitive: clone, PATH key normalization, RUBYLIB
// initialization, then the install-mode overrides. The snapshot itself is
// never mutated.
func (b *Builder) composeEnvironment() map[string]string {
	env := make(map[string]string, len(b.Environ)+8)
	for k, v := range b.Environ {
		env[k] = v
	}

	normalizePathKey(env)

	if _, ok := env["RUBYLIB"]; !ok {
		env["RUBYLIB"] = ""
	}

	sep := b.Platform.PathListSeparator()

	switch b.Settings.InstallType {
	case config.InstallTypePDK:
		env["RUBYOPT"] = "rubygems"
		setFromConfig(env, "DEVKIT_BASEDIR", b.Connection.PuppetBaseDir)
		setFromConfig(env, "RUBY_DIR", b.Connection.PDKRubyDir)
		setFromConfig(env, "GEM_HOME", b.Connection.PDKGemDir)
		setFromConfig(env, "GEM_PATH", joinPathList(sep,
			b.Connection.PDKGemVerDir, b.Connection.PDKGemDir, b.Connection.PDKRubyVerDir))
		env["RUBYLIB"] = joinPathList(sep, b.Connection.PDKRubyLib, env["RUBYLIB"])
		env["PATH"] = joinPathList(sep,
			b.Connection.PDKBinDir, b.Connection.PDKRubyBinDir, env["PATH"])
	case config.InstallTypeAgent:
		env["RUBYOPT"] = "rubygems"
		setFromConfig(env, "SSL_CERT_FILE", b.Connection.SSLCertFile)
		setFromConfig(env, "SSL_CERT_DIR", b.Connection.SSLCertDir)
		setFromConfig(env, "RUBY_DIR", b.Connection.RubyDir)
		env["PATH"] = joinPathList(sep, b.Connection.EnvironmentPath, env["PATH"])
		env["RUBYLIB"] = joinPathList(sep, b.Connection.RubyLib, env["RUBYLIB"])
	}

	return env
}

// normalizePathKey folds every case-insensitive PATH variant onto the
// canonical uppercase key so the install-mode overrides have one place to
// prepend to. Variants are visited in sorted key order and the last visited
// value wins; afterwards exactly one PATH-like key remains, initialized to
// empty when the snapshot had none.
func normalizePathKey(env map[string]string) {
	variants := make([]string, 0, 1)
	for k := range env {
		if k != "PATH" && strings.EqualFold(k, "PATH") {
			variants = append(variants, k)
		}
	}
	sort.Strings(variants)

	for _, k := range variants {
		env["PATH"] = env[k]
		delete(env, k)
	}

	if _, ok := env["PATH"]; !ok {
		env["PATH"] = ""
	}
}

// setFromConfig assigns a configured location to an environment variable.
// An empty location means "not configured": the variable is removed rather
// than exported with an empty value, which some platforms would hand to the
// child as a real entry.
func setFromConfig(env map[string]string, key, value string) {
	if value == "" {
		delete(env, key)
		return
	}
	env[key] = value
}

// joinPathList joins path-list entries with the platform separator, newest
// entries first so configured locations win lookups. Empty entries are
// dropped rather than contributing separator runs.
func joinPathList(sep string, entries ...string) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		if e != "" {
			parts = append(parts, e)
		}
	}
	return strings.Join(parts, sep)
}
