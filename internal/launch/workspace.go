package launch

import (
	"strings"

	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"
)

// WorkspaceRoot returns the filesystem path of the first workspace folder,
// or empty when no folder is open or the folder is not file-backed. The
// language server only understands local paths, so non-file URIs are treated
// as no workspace.
func WorkspaceRoot(folders []protocol.WorkspaceFolder) string {
	if len(folders) == 0 {
		return ""
	}

	raw := folders[0].URI
	if !strings.HasPrefix(raw, "file://") {
		return ""
	}

	return uri.URI(raw).Filename()
}

// FolderForPath wraps a local directory path in the workspace-folder record
// shape used at the editor boundary.
func FolderForPath(path, name string) protocol.WorkspaceFolder {
	return protocol.WorkspaceFolder{
		URI:  string(uri.File(path)),
		Name: name,
	}
}
