// Package executor runs external commands (the crontab binary) and
// captures their exit status and output streams behind types.Runner.
package executor
