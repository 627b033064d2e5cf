package launch

import (
	"fmt"
	"strings"

	"puppet-launcher/internal/config"
)

// debugLoopback is a literal IPv4 address rather than "localhost": the
// spawning host and the spawned interpreter may resolve the hostname to
// different loopback address families, and a mismatch breaks the connection.
const debugLoopback = "127.0.0.1"

// languageServerArgs builds the argument vector for the language server.
// The server's own option parser is order-sensitive, so the sequence below
// is fixed: entry point, protocol selection, timeout, optional workspace,
// optional forwarded puppet settings, optional debug log.
//
// Empty and unset settings values are treated as the same "absent" signal
// throughout.
func (b *Builder) languageServerArgs(serverPath, workspaceRoot string) []string {
	es := b.Settings.EditorService
	args := []string{serverPath}

	switch es.Protocol {
	case config.ProtocolTCP:
		addr := es.TCP.Address
		if addr == "" {
			addr = config.DefaultTCPAddress
		}
		args = append(args, "--ip="+addr)
		if es.TCP.Port != 0 {
			args = append(args, fmt.Sprintf("--port=%d", es.TCP.Port))
		}
	default:
		args = append(args, "--stdio")
	}

	args = append(args, fmt.Sprintf("--timeout=%d", es.Timeout))

	if workspaceRoot != "" {
		args = append(args, "--local-workspace="+workspaceRoot)
	}

	if settings := puppetSettingsArg(es.Puppet); settings != "" {
		args = append(args, settings)
	}

	if es.DebugFilePath != "" {
		args = append(args, "--debug="+es.DebugFilePath)
	}

	return args
}

// debugServerArgs builds the argument vector for the debug server. The
// transport is pinned to IPv4 loopback regardless of settings.
func debugServerArgs(serverPath string) []string {
	return []string{serverPath, "--ip=" + debugLoopback}
}

// puppetSettingsArg folds the forwarded puppet settings into a single
// comma-joined argument: --puppet-settings=name,value[,name,value...].
// Pairs with empty values are skipped individually; the argument is omitted
// entirely when no pair has a value.
func puppetSettingsArg(p config.PuppetSettings) string {
	pairs := []struct {
		name  string
		value string
	}{
		{"confdir", p.Confdir},
		{"environment", p.Environment},
		{"modulePath", p.ModulePath},
		{"vardir", p.Vardir},
	}

	var parts []string
	for _, pair := range pairs {
		if pair.value == "" {
			continue
		}
		parts = append(parts, pair.name, pair.value)
	}

	if len(parts) == 0 {
		return ""
	}
	return "--puppet-settings=" + strings.Join(parts, ",")
}
