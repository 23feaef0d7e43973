// pkg/executor/executor_test.go
// TEST TYPE: Integration Test (spawns real processes)
// DEPENDENCIES: /bin/sh
// PURPOSE: Verify exit-code capture and stream separation

package executor_test

import (
	"runtime"
	"testing"

	"github.com/djatlantic/cronset/pkg/errors"
	"github.com/djatlantic/cronset/pkg/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	e := executor.New()

	result, err := e.Run("sh", "-c", "echo out; echo err >&2")
	require.NoError(t, err)

	assert.Equal(t, 0, result.ExitCode)
	assert.Equal(t, "out\n", result.Stdout)
	assert.Equal(t, "err\n", result.Stderr)
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}

	e := executor.New()

	result, err := e.Run("sh", "-c", "exit 1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.ExitCode)
}

func TestRunMissingBinary(t *testing.T) {
	e := executor.New()

	_, err := e.Run("cronset-no-such-binary-xyzzy")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrExecFailure))
}
