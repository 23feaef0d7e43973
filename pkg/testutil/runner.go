package testutil

import (
	"strings"

	"github.com/djatlantic/cronset/pkg/types"
)

// FakeRunner is a types.Runner whose behavior is supplied per test.
// Every invocation is recorded in Calls.
type FakeRunner struct {
	RunFunc func(name string, args ...string) (types.ExecResult, error)
	Calls   [][]string
}

// Run records the call and delegates to RunFunc when set.
func (r *FakeRunner) Run(name string, args ...string) (types.ExecResult, error) {
	r.Calls = append(r.Calls, append([]string{name}, args...))
	if r.RunFunc != nil {
		return r.RunFunc(name, args...)
	}
	return types.ExecResult{}, nil
}

// CrontabFake emulates the crontab binary: it serves a stored table on
// read and captures installs handed to it as temporary file paths.
type CrontabFake struct {
	// FS resolves the temporary file paths passed to install calls.
	FS types.FS

	// Table is the content served by a read call.
	Table string

	// Missing makes reads exit with status 1 (no table configured).
	Missing bool

	// ReadFail / WriteFail force non-zero exits with the given stderr.
	ReadFail  string
	WriteFail string

	// Installed collects the content of every successful install.
	Installed []string

	Calls [][]string
}

// Run dispatches on the argument shape: a -l flag is a read, anything
// else is an install with the table path as the last argument.
func (c *CrontabFake) Run(name string, args ...string) (types.ExecResult, error) {
	c.Calls = append(c.Calls, append([]string{name}, args...))

	if isRead(args) {
		if c.ReadFail != "" {
			return types.ExecResult{ExitCode: 2, Stderr: c.ReadFail}, nil
		}
		if c.Missing {
			return types.ExecResult{ExitCode: 1, Stderr: "no crontab for user"}, nil
		}
		return types.ExecResult{Stdout: c.Table}, nil
	}

	if c.WriteFail != "" {
		return types.ExecResult{ExitCode: 1, Stderr: c.WriteFail}, nil
	}

	path := args[len(args)-1]
	data, err := c.FS.ReadFile(path)
	if err != nil {
		return types.ExecResult{ExitCode: 1, Stderr: err.Error()}, nil
	}

	c.Table = string(data)
	c.Missing = false
	c.Installed = append(c.Installed, string(data))
	return types.ExecResult{}, nil
}

func isRead(args []string) bool {
	return len(args) > 0 && strings.HasPrefix(args[0], "-l")
}
