package executor

import (
	"bytes"
	"context"
	stderrors "errors"
	"os/exec"
	"time"

	"github.com/djatlantic/cronset/pkg/errors"
	"github.com/djatlantic/cronset/pkg/logging"
	"github.com/djatlantic/cronset/pkg/types"
	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single crontab invocation. The core imposes
// no timeout of its own; this is the process-level safety net.
const DefaultTimeout = 1 * time.Minute

// Executor implements types.Runner over os/exec
type Executor struct {
	logger  zerolog.Logger
	timeout time.Duration
}

// New creates a command executor with the default timeout
func New() *Executor {
	return &Executor{
		logger:  logging.GetLogger("executor"),
		timeout: DefaultTimeout,
	}
}

// NewWithTimeout creates a command executor with a custom timeout
func NewWithTimeout(timeout time.Duration) *Executor {
	e := New()
	e.timeout = timeout
	return e
}

// Run executes the command and captures its outcome. A non-zero exit
// status is reported through ExecResult.ExitCode, not as an error; the
// error return covers the command not starting at all.
func (e *Executor) Run(name string, args ...string) (types.ExecResult, error) {
	logging.LogCommand(name, args)

	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := types.ExecResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			e.logger.Debug().
				Str("command", name).
				Int("exitCode", result.ExitCode).
				Str("stderr", result.Stderr).
				Msg("Command exited non-zero")
			return result, nil
		}

		e.logger.Error().
			Err(err).
			Str("command", name).
			Strs("args", args).
			Msg("Command failed to run")

		return result, errors.Wrapf(err, errors.ErrExecFailure,
			"failed to run command: %s", name)
	}

	e.logger.Debug().
		Str("command", name).
		Msg("Command completed")

	return result, nil
}
