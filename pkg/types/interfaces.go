package types

import (
	"io/fs"
)

// FS is the filesystem interface required for cronset operations.
// It covers shared cron-definition files, backups and the temporary
// file handed to the crontab binary on install.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Other operations
	Remove(name string) error

	// TempFile creates an empty temporary file and returns its path.
	// An empty dir means the system default temporary directory.
	TempFile(dir, pattern string) (string, error)
}

// Runner executes an external command and captures its exit status
// and output streams. A non-zero exit status is not an error at this
// level; the returned error covers failures to run the command at all.
type Runner interface {
	Run(name string, args ...string) (ExecResult, error)
}

// ExecResult is the captured outcome of a single command invocation.
type ExecResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}
