package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "mapidoc.yaml").
			Build()

		assert.Equal(t, CategoryConfig, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "invalid configuration", err.Message())

		file, exists := err.Context().GetString("file")
		require.True(t, exists)
		assert.Equal(t, "mapidoc.yaml", file)
	})

	t.Run("Error string includes cause", func(t *testing.T) {
		cause := stderrors.New("permission denied")
		err := WrapError(cause, CategoryFileSystem, "write page failed").Build()

		assert.Equal(t, "[filesystem:error] write page failed: permission denied", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Detail sorts context keys", func(t *testing.T) {
		err := PathError("file is not under source root").
			WithContext("root", "/src").
			WithContext("file", "/tmp/a.m").
			Build()

		assert.Equal(t, "file is not under source root (file=/tmp/a.m, root=/src)", err.Detail())
	})

	t.Run("WithContext does not mutate the original", func(t *testing.T) {
		base := ConfigError("bad page size").Build()
		derived := base.WithContext("max_files", 0)

		_, onBase := base.Context().Get("max_files")
		_, onDerived := derived.Context().Get("max_files")
		assert.False(t, onBase)
		assert.True(t, onDerived)
	})
}

func TestClassificationHelpers(t *testing.T) {
	inner := ValidationError("output stem collision").Build()
	wrapped := fmt.Errorf("plan: %w", inner)

	classified, ok := AsClassified(wrapped)
	require.True(t, ok)
	assert.Same(t, inner, classified)
	assert.True(t, IsClassified(wrapped))
	assert.True(t, HasCategory(wrapped, CategoryValidation))
	assert.Equal(t, CategoryValidation, GetCategory(wrapped))

	plain := stderrors.New("plain")
	assert.False(t, IsClassified(plain))
	assert.Equal(t, CategoryInternal, GetCategory(plain))
}

func TestClassifiedErrorIs(t *testing.T) {
	a := PathError("source missing").WithContext("path", "a").Build()
	b := PathError("source missing").WithContext("path", "b").Build()
	c := ConfigError("source missing").Build()

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
}

func TestConvenienceConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *ClassifiedError
		category ErrorCategory
		fatal    bool
	}{
		{"path", PathError("x").Build(), CategoryPath, true},
		{"config", ConfigError("x").Build(), CategoryConfig, true},
		{"validation", ValidationError("x").Build(), CategoryValidation, true},
		{"filesystem", FileSystemError("x").Build(), CategoryFileSystem, true},
		{"git", GitError("x").Build(), CategoryGit, false},
		{"internal", InternalError("x").Build(), CategoryInternal, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category())
			assert.Equal(t, tt.fatal, tt.err.IsFatal())
		})
	}
}
