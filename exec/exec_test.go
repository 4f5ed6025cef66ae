package exec

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	result, err := New().Run("echo", "hello world")
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", result.Stdout)
	assert.Equal(t, 0, result.ExitCode)
}

func TestRun_Failure(t *testing.T) {
	result, err := New().Run("sh", "-c", "echo 'fatal: repository not found' >&2; exit 128")
	require.Error(t, err)
	require.NotNil(t, result)

	var execErr *ExecError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, 128, execErr.ExitCode)
	assert.Equal(t, []string{"sh", "-c", "echo 'fatal: repository not found' >&2; exit 128"}, execErr.Command)
	assert.True(t, execErr.StderrContains("Repository Not Found"))
	assert.False(t, execErr.StderrContains("authentication failed"))
}

func TestRun_EmptyCommand(t *testing.T) {
	_, err := New().Run()
	require.Error(t, err)
}

func TestRun_MissingBinary(t *testing.T) {
	_, err := New().Run("repodriller-no-such-binary")

	var execErr *ExecError
	require.True(t, errors.As(err, &execErr))
	assert.Equal(t, -1, execErr.ExitCode)
}

func TestWithDir(t *testing.T) {
	dir := t.TempDir()
	result, err := New().WithDir(dir).Run("pwd")
	require.NoError(t, err)
	assert.Contains(t, result.Stdout, dir)
}

func TestWithEnv_LocalOverridesGlobal(t *testing.T) {
	cmd := New(WithEnv(map[string]string{"TEST_VAR": "global", "OTHER": "kept"}))

	result, err := cmd.WithEnv(map[string]string{"TEST_VAR": "local"}).Run("sh", "-c", "echo $TEST_VAR $OTHER")
	require.NoError(t, err)
	assert.Equal(t, "local kept\n", result.Stdout)
}

func TestLocalSettingsReset(t *testing.T) {
	cmd := New(WithEnv(map[string]string{"GLOBAL_VAR": "global"}))

	_, err := cmd.WithEnv(map[string]string{"LOCAL_VAR": "local"}).Run("true")
	require.NoError(t, err)

	result, err := cmd.Run("sh", "-c", "echo $GLOBAL_VAR-$LOCAL_VAR")
	require.NoError(t, err)
	assert.Equal(t, "global-\n", result.Stdout)
}

func TestWithDisableColors(t *testing.T) {
	result, err := New().WithDisableColors().Run("sh", "-c", "echo $NO_COLOR $TERM")
	require.NoError(t, err)
	assert.Equal(t, "1 dumb\n", result.Stdout)
}

func TestWithTimeout(t *testing.T) {
	_, err := New().WithTimeout(100 * time.Millisecond).Run("sleep", "5")
	require.Error(t, err)
}

func TestWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().WithContext(ctx).Run("sleep", "5")
	require.Error(t, err)
}

func TestWithPassthrough(t *testing.T) {
	var stdout, stderr bytes.Buffer
	result, err := New().
		WithStdout(&stdout).
		WithStderr(&stderr).
		WithPassthrough().
		Run("sh", "-c", "echo out; echo progress >&2")
	require.NoError(t, err)

	assert.Equal(t, "out\n", result.Stdout)
	assert.Equal(t, "progress\n", result.Stderr)
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "progress\n", stderr.String())
	assert.Contains(t, result.Combined, "out")
	assert.Contains(t, result.Combined, "progress")
}

func TestWithInheritEnv(t *testing.T) {
	t.Setenv("TEST_INHERIT_VAR", "inherited")

	result, err := New().WithInheritEnv().Run("sh", "-c", "echo $TEST_INHERIT_VAR")
	require.NoError(t, err)
	assert.Equal(t, "inherited\n", result.Stdout)

	result, err = New().Run("sh", "-c", "echo $TEST_INHERIT_VAR")
	require.NoError(t, err)
	assert.Equal(t, "\n", result.Stdout)
}

func TestRun_OnlyConfiguredEnvironment(t *testing.T) {
	t.Setenv("TEST_PARENT_VAR", "parent")

	result, err := New().Run("env")
	require.NoError(t, err)
	assert.Empty(t, result.Stdout)

	result, err = New(WithEnv(map[string]string{"ONLY_VAR": "x"})).Run("env")
	require.NoError(t, err)
	assert.Equal(t, "ONLY_VAR=x\n", result.Stdout)
}

func TestClone_IsIndependent(t *testing.T) {
	original := New(WithEnv(map[string]string{"GLOBAL_VAR": "global"}))
	original.WithEnv(map[string]string{"PENDING": "yes"})

	clone := original.Clone()
	result, err := clone.Run("sh", "-c", "echo $GLOBAL_VAR $PENDING")
	require.NoError(t, err)
	assert.Equal(t, "global yes\n", result.Stdout)

	clone.WithEnv(map[string]string{"CLONE_ONLY": "x"})
	result, err = original.Run("sh", "-c", "echo $PENDING$CLONE_ONLY")
	require.NoError(t, err)
	assert.Equal(t, "yes\n", result.Stdout)
}
