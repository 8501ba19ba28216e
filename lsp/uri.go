package lsp

import (
	"net/url"
	"strings"

	"go.lsp.dev/protocol"
)

// URIToPath converts a file:// URI to a filesystem path.
func URIToPath(uri protocol.DocumentURI) string {
	path := strings.TrimPrefix(string(uri), "file://")
	if decoded, err := url.PathUnescape(path); err == nil {
		path = decoded
	}

	return path
}
