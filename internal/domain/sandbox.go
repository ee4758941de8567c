package domain

import (
	"fmt"
	"path"
	"strings"
	"time"
	"unicode/utf8"
)

const SandboxWorkspaceRoot = "/workspace"

type SandboxID string

type SandboxFile struct {
	Name        string
	Path        string
	IsDir       bool
	Size        int64
	ModTime     time.Time
	Permissions string
}

// FileContent is a sandbox file as negotiated by the response content type:
// Text is set for textual types, Data for everything else.
type FileContent struct {
	Path        string
	ContentType string
	Text        string
	Data        []byte
	Binary      bool
}

func (c FileContent) Bytes() []byte {
	if c.Binary {
		return c.Data
	}

	return []byte(c.Text)
}

// NormalizeSandboxPath anchors relative paths under the sandbox workspace.
func NormalizeSandboxPath(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("sandbox path is required")
	}
	if !strings.HasPrefix(trimmed, "/") {
		trimmed = SandboxWorkspaceRoot + "/" + trimmed
	}

	cleaned := path.Clean(trimmed)
	if cleaned != SandboxWorkspaceRoot && !strings.HasPrefix(cleaned, SandboxWorkspaceRoot+"/") {
		return "", fmt.Errorf("sandbox path %q is outside %s", raw, SandboxWorkspaceRoot)
	}

	return cleaned, nil
}

// IsBinaryContent reports whether content must travel base64 encoded.
func IsBinaryContent(content []byte) bool {
	return !utf8.Valid(content) || strings.ContainsRune(string(content), 0)
}
