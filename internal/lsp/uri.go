package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
)

func uriToPath(uri string) string {
	if uri == "" {
		return ""
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	if parsed.Scheme != "" && parsed.Scheme != "file" {
		return ""
	}
	path := parsed.Path
	if parsed.Scheme == "" {
		path = uri
	}
	if unescaped, err := url.PathUnescape(path); err == nil {
		path = unescaped
	}
	return filepath.FromSlash(path)
}

func pathToURI(path string) string {
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

// canonicalURI normalizes file URIs so one document never has two keys.
// Other schemes (untitled:, vscode-notebook-cell:) are kept verbatim.
func canonicalURI(uri string) string {
	uri = strings.TrimSpace(uri)
	if !strings.HasPrefix(uri, "file:") {
		return uri
	}
	path := uriToPath(uri)
	if path == "" {
		return uri
	}
	return pathToURI(filepath.Clean(path))
}

// modeFor picks the document mode: the client's language id, or the file
// extension when the client sends none.
func modeFor(uri, languageID string) string {
	if languageID != "" {
		return languageID
	}
	ext := strings.TrimPrefix(filepath.Ext(uriToPath(uri)), ".")
	switch ext {
	case "", "txt":
		return "plaintext"
	case "md":
		return "markdown"
	}
	return ext
}
