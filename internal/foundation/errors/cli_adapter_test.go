package errors

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "path error", err: PathError("source missing").Build(), expected: 1},
		{name: "validation error", err: ValidationError("collision").Build(), expected: 2},
		{name: "config error", err: ConfigError("bad page size").Build(), expected: 7},
		{name: "git error", err: GitError("clone failed").Build(), expected: 8},
		{name: "internal error", err: InternalError("boom").Build(), expected: 10},
		{name: "filesystem error", err: FileSystemError("write failed").Build(), expected: 11},
		{name: "unclassified error", err: stderrors.New("unknown"), expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	quiet := NewCLIErrorAdapter(false, nil)
	verbose := NewCLIErrorAdapter(true, nil)

	pathErr := PathError("source directory does not exist").WithContext("path", "nope").Build()
	assert.Equal(t, "Error: source directory does not exist (path=nope)", quiet.FormatError(pathErr))
	assert.Equal(t, "Error: [path:fatal] source directory does not exist", verbose.FormatError(pathErr))

	ioErr := WrapError(stderrors.New("disk full"), CategoryFileSystem, "write page failed").Build()
	assert.Equal(t, "Error: filesystem: write page failed: disk full", quiet.FormatError(ioErr))

	assert.Equal(t, "Error: plain", quiet.FormatError(stderrors.New("plain")))
	assert.Empty(t, quiet.FormatError(nil))
}

func TestCLIErrorAdapter_Report(t *testing.T) {
	var logBuf, out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))
	adapter := NewCLIErrorAdapter(true, logger)

	code := adapter.Report(&out, ConfigError("max files must be positive").WithContext("max_files", -1).Build())

	assert.Equal(t, 7, code)
	assert.Contains(t, out.String(), "max files must be positive")
	assert.Contains(t, logBuf.String(), "category=config")
	assert.Contains(t, logBuf.String(), "max_files=-1")

	assert.Equal(t, 0, adapter.Report(&out, nil))
}
