package workspace

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/mapidoc/internal/logfields"
)

// Manager owns one ephemeral workspace directory.
type Manager struct {
	baseDir string
	dir     string
}

// NewManager creates a manager rooted at baseDir, or the system temp
// directory when baseDir is empty.
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	return &Manager{baseDir: baseDir}
}

// Create makes a fresh timestamped workspace directory.
func (m *Manager) Create() error {
	if err := os.MkdirAll(m.baseDir, 0o750); err != nil {
		return ferrors.FileSystemError("failed to create workspace base directory").
			WithCause(err).
			WithContext("path", m.baseDir).
			Build()
	}
	pattern := "mapidoc-" + time.Now().Format("20060102-150405") + "-"
	dir, err := os.MkdirTemp(m.baseDir, pattern)
	if err != nil {
		return ferrors.FileSystemError("failed to create workspace directory").
			WithCause(err).
			WithContext("path", m.baseDir).
			Build()
	}
	m.dir = dir
	slog.Debug("Created workspace", logfields.Path(dir))
	return nil
}

// GetPath returns the workspace directory, or "" before Create.
func (m *Manager) GetPath() string {
	return m.dir
}

// CreateSubdir creates a subdirectory within the workspace.
func (m *Manager) CreateSubdir(name string) (string, error) {
	if m.dir == "" {
		return "", ferrors.InternalError("workspace not created").Build()
	}
	subdir := filepath.Join(m.dir, name)
	if err := os.MkdirAll(subdir, 0o750); err != nil {
		return "", ferrors.FileSystemError("failed to create workspace subdirectory").
			WithCause(err).
			WithContext("path", subdir).
			Build()
	}
	return subdir, nil
}

// Cleanup removes the workspace directory. It is safe to call more than once.
func (m *Manager) Cleanup() error {
	if m.dir == "" {
		return nil
	}
	if err := os.RemoveAll(m.dir); err != nil {
		return ferrors.FileSystemError("failed to clean up workspace").
			WithCause(err).
			WithContext("path", m.dir).
			Build()
	}
	slog.Debug("Cleaned up workspace", logfields.Path(m.dir))
	m.dir = ""
	return nil
}
