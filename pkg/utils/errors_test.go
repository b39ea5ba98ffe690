package utils

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_ErrorIncludesCause(t *testing.T) {
	err := NewRemoteBackendError("request failed", errors.New("dial tcp: refused"))

	assert.Equal(t, "remote_backend: request failed (caused by: dial tcp: refused)", err.Error())
	assert.Equal(t, "corrupt_input: bad bytes", NewCorruptInputError("bad bytes", nil).Error())
}

func TestAppError_IsMatchesType(t *testing.T) {
	err := fmt.Errorf("page 2: %w", NewCorruptInputError("cannot decode", nil))

	assert.True(t, errors.Is(err, &AppError{Type: ErrorTypeCorruptInput}))
	assert.False(t, errors.Is(err, &AppError{Type: ErrorTypeUnsupportedFormat}))
}

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want func(error) bool
	}{
		{"unsupported", NewUnsupportedFormatError("docx", nil), IsUnsupportedFormat},
		{"corrupt", NewCorruptInputError("truncated", nil), IsCorruptInput},
		{"remote", NewRemoteBackendError("quota", nil), IsRemoteBackend},
		{"local", NewLocalBackendError("unavailable", nil), IsLocalBackend},
	}

	predicates := []func(error) bool{IsUnsupportedFormat, IsCorruptInput, IsRemoteBackend, IsLocalBackend}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for j, p := range predicates {
				assert.Equal(t, i == j, p(tt.err), "predicate %d", j)
			}
			assert.True(t, tt.want(fmt.Errorf("wrapped: %w", tt.err)))
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, WrapError(nil, ErrorTypeIO, "noop"))
	})

	t.Run("keeps type when empty", func(t *testing.T) {
		wrapped := WrapError(NewLocalBackendError("tesseract missing", nil), "", "page 1")
		require.NotNil(t, wrapped)
		assert.Equal(t, ErrorTypeLocalBackend, wrapped.Type)
		assert.Equal(t, "page 1: tesseract missing", wrapped.Message)
	})

	t.Run("classifies plain errors", func(t *testing.T) {
		wrapped := WrapError(context.DeadlineExceeded, "", "ocr")
		assert.Equal(t, ErrorTypeTimeout, wrapped.Type)

		wrapped = WrapError(errors.New("open x: no such file or directory"), "", "read")
		assert.Equal(t, ErrorTypeNotFound, wrapped.Type)
	})

	t.Run("explicit type", func(t *testing.T) {
		wrapped := WrapError(errors.New("boom"), ErrorTypeIO, "write")
		assert.Equal(t, ErrorTypeIO, wrapped.Type)
		assert.Equal(t, "boom", errors.Unwrap(wrapped).Error())
	})
}

func TestIsRecoverable(t *testing.T) {
	assert.True(t, IsRecoverable(NewRemoteBackendError("503", nil)))
	assert.True(t, IsRecoverable(context.DeadlineExceeded))
	assert.False(t, IsRecoverable(NewLocalBackendError("failed", nil)))
	assert.False(t, IsRecoverable(NewUnsupportedFormatError("txt", nil)))
}

func TestWithContext(t *testing.T) {
	err := NewCorruptInputError("render failed", nil).WithContext("page", 3)
	assert.Equal(t, 3, err.Context["page"])
}
