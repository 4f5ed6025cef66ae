package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeConflict, "target directory is not empty")

	require.Equal(t, CodeConflict, err.Code())
	require.Equal(t, ClassificationPermanent, err.Classification())
	require.Equal(t, "target directory is not empty", err.Message())
	require.Nil(t, err.Context())
	require.Nil(t, err.Unwrap())
	require.Equal(t, "[CONFLICT] target directory is not empty", err.Error())
}

func TestNewf(t *testing.T) {
	err := Newf(CodeInvalidInput, "clone depth must not be negative: %d", -1)

	require.Equal(t, "clone depth must not be negative: -1", err.Message())
}

func TestSentinelMatchesThroughFmtWrap(t *testing.T) {
	sentinel := New(CodeUnavailable, "remote unavailable")
	cause := stderrors.New("connection refused")

	err := fmt.Errorf("%w: cloning example: %w", sentinel, cause)

	assert.True(t, Is(err, sentinel))
	assert.True(t, Is(err, cause))
	assert.Equal(t, CodeUnavailable, GetCode(err))
	assert.True(t, IsRetryable(err))
}

func TestWrap(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := Wrap(cause, CodeFilesystem, "failed to remove clone")

	require.NotNil(t, err)
	require.Equal(t, CodeFilesystem, err.Code())
	require.Equal(t, "failed to remove clone", err.Message())
	require.Equal(t, cause, err.Unwrap())
	require.Equal(t, "[FILESYSTEM_ERROR] failed to remove clone: permission denied", err.Error())
}

func TestWrap_NilError(t *testing.T) {
	require.Nil(t, Wrap(nil, CodeNotFound, "test"))
	require.Nil(t, Wrapf(nil, CodeNotFound, "test %s", "arg"))
	require.Nil(t, WrapWithContext(nil, CodeNotFound, "test", nil))
}

func TestWrap_PreservesClassification(t *testing.T) {
	retryable := New(CodeTimeout, "clone timed out")
	wrapped := Wrap(retryable, CodeInternal, "acquisition failed")
	require.True(t, wrapped.Classification().IsRetryable())

	permanent := New(CodeUnauthorized, "bad credentials")
	wrapped = Wrap(permanent, CodeUnavailable, "remote rejected clone")
	require.False(t, wrapped.Classification().IsRetryable())
}

func TestWrapf(t *testing.T) {
	cause := stderrors.New("no such host")
	err := Wrapf(cause, CodeNetwork, "failed to reach %s", "example.com")

	require.Equal(t, "failed to reach example.com", err.Message())
	require.True(t, err.Classification().IsRetryable())
}

func TestWrapWithContext_CopiesMap(t *testing.T) {
	ctx := map[string]interface{}{"path": "/tmp/a"}
	err := WrapWithContext(stderrors.New("boom"), CodeFilesystem, "failed", ctx)

	ctx["path"] = "/tmp/b"
	require.Equal(t, "/tmp/a", err.Context()["path"])

	got := err.Context()
	got["path"] = "/tmp/c"
	require.Equal(t, "/tmp/a", err.Context()["path"])
}

func TestWithContext(t *testing.T) {
	err := New(CodeConflict, "conflict")
	err = WithContext(err, "path", "/tmp/x")
	err = WithContext(err, "entries", 3)

	require.Equal(t, map[string]interface{}{"path": "/tmp/x", "entries": 3}, err.Context())
	require.Equal(t, CodeConflict, err.Code())
	require.Nil(t, WithContext(nil, "k", "v"))
}

func TestWithContext_StandardError(t *testing.T) {
	cause := stderrors.New("plain")
	err := WithContext(cause, "k", "v")

	require.Equal(t, CodeUnknown, err.Code())
	require.Equal(t, ClassificationPermanent, err.Classification())
	require.Equal(t, cause, err.Unwrap())
}

func TestWithContextMap_Overrides(t *testing.T) {
	err := WithContext(New(CodeInternal, "x"), "a", 1)
	err = WithContextMap(err, map[string]interface{}{"a": 2, "b": 3})

	require.Equal(t, map[string]interface{}{"a": 2, "b": 3}, err.Context())
}

func TestWithClassification(t *testing.T) {
	err := WithContext(New(CodeUnavailable, "remote gone"), "url", "https://example.com/r.git")
	err = WithClassification(err, ClassificationPermanent)

	require.False(t, IsRetryable(err))
	require.Equal(t, CodeUnavailable, err.Code())
	require.Equal(t, "https://example.com/r.git", err.Context()["url"])
	require.Nil(t, WithClassification(nil, ClassificationPermanent))
}

func TestHelpers_NonPlatformErrors(t *testing.T) {
	plain := stderrors.New("plain")

	assert.Equal(t, CodeUnknown, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(plain))
	assert.Equal(t, ClassificationPermanent, GetClassification(nil))
	assert.Equal(t, ClassificationPermanent, GetClassification(plain))
	assert.False(t, IsRetryable(plain))
}

func TestGetCode_OutermostWins(t *testing.T) {
	inner := New(CodeNetwork, "dial failed")
	outer := Wrap(inner, CodeUnavailable, "clone failed")

	assert.Equal(t, CodeUnavailable, GetCode(outer))

	var pe PlatformError
	require.True(t, As(outer, &pe))
	assert.Equal(t, CodeUnavailable, pe.Code())
}

func TestJoin(t *testing.T) {
	a := New(CodeFilesystem, "a")
	b := stderrors.New("b")

	joined := Join(a, nil, b)
	assert.True(t, Is(joined, a))
	assert.True(t, Is(joined, b))
	assert.Nil(t, Join(nil, nil))
}
