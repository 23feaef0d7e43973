// Package crontab implements the line-table model: an ordered,
// exclusively-owned sequence of crontab lines loaded from a per-user
// table (via the crontab binary) or a shared cron-definition file, and
// written back byte-for-byte except where entries were spliced.
package crontab

import (
	stderrors "errors"
	"io/fs"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/djatlantic/cronset/pkg/errors"
	"github.com/djatlantic/cronset/pkg/logging"
	"github.com/djatlantic/cronset/pkg/types"
)

// DefaultBin is the crontab binary used when none is configured
const DefaultBin = "crontab"

// readMissingTableExit is the crontab exit status meaning "no crontab
// for this user", which loads as an empty table rather than an error.
const readMissingTableExit = 1

// headerPatterns match the banner lines some cron implementations
// prepend to `crontab -l` output. They are stripped on load so they
// are not duplicated on every write-back.
var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^# DO NOT EDIT THIS FILE - edit the master and reinstall\.`),
	regexp.MustCompile(`^# \(/tmp/.*installed on.*\)`),
	regexp.MustCompile(`^# \(.*version.*\)`),
}

// headerScanLimit bounds banner stripping to the first lines of output
const headerScanLimit = 3

// Options selects the table source and its collaborators.
type Options struct {
	// User is the table owner for per-user mode. Empty means the
	// invoking user.
	User string

	// CronFile is the shared cron-definition file path. Non-empty
	// switches from per-user mode to shared-file mode.
	CronFile string

	// Bin is the crontab binary name or path. Empty means DefaultBin.
	Bin string

	FS     types.FS
	Runner types.Runner
}

// Tab is one job table's worth of ordered text lines plus the source
// identity needed to write it back.
type Tab struct {
	lines    []string
	user     string
	cronFile string
	bin      string
	fs       types.FS
	runner   types.Runner
	logger   zerolog.Logger
}

// Load reads the table from its source. A missing shared file or a
// "no crontab for user" read both yield an empty table.
func Load(opts Options) (*Tab, error) {
	t := &Tab{
		user:     opts.User,
		cronFile: opts.CronFile,
		bin:      opts.Bin,
		fs:       opts.FS,
		runner:   opts.Runner,
		logger:   logging.GetLogger("crontab"),
	}
	if t.bin == "" {
		t.bin = DefaultBin
	}

	if t.cronFile != "" {
		if err := t.loadFile(); err != nil {
			return nil, err
		}
		return t, nil
	}

	if err := t.loadUserTable(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Tab) loadFile() error {
	data, err := t.fs.ReadFile(t.cronFile)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			t.logger.Debug().Str("cronFile", t.cronFile).Msg("Cron file does not exist, starting empty")
			return nil
		}
		return errors.Wrapf(err, errors.ErrReadFailure,
			"unable to read cron file %s", t.cronFile)
	}

	t.lines = splitLines(string(data))
	return nil
}

func (t *Tab) loadUserTable() error {
	result, err := t.runner.Run(t.bin, t.readArgs()...)
	if err != nil {
		return errors.Wrap(err, errors.ErrReadFailure, "unable to run crontab")
	}

	switch result.ExitCode {
	case 0:
		t.lines = stripHeader(splitLines(result.Stdout))
		return nil
	case readMissingTableExit:
		t.logger.Debug().Str("user", t.user).Msg("No crontab for user, starting empty")
		return nil
	default:
		return errors.Newf(errors.ErrReadFailure,
			"crontab read failed with status %d: %s", result.ExitCode, strings.TrimSpace(result.Stderr)).
			WithDetail("stderr", result.Stderr)
	}
}

// IsEmpty reports whether no lines remain
func (t *Tab) IsEmpty() bool {
	return len(t.lines) == 0
}

// Len returns the number of lines
func (t *Tab) Len() int {
	return len(t.lines)
}

// Lines returns the underlying line sequence. The table stays the
// single owner; callers mutate it only through Append and Splice.
func (t *Tab) Lines() []string {
	return t.lines
}

// User returns the table owner for per-user mode
func (t *Tab) User() string {
	return t.user
}

// CronFile returns the shared file path, empty in per-user mode
func (t *Tab) CronFile() string {
	return t.cronFile
}

// Append adds lines at the end of the table
func (t *Tab) Append(lines ...string) {
	t.lines = append(t.lines, lines...)
}

// Splice removes n lines starting at index start and inserts repl in
// their place, preserving everything else in order.
func (t *Tab) Splice(start, n int, repl []string) {
	out := make([]string, 0, len(t.lines)-n+len(repl))
	out = append(out, t.lines[:start]...)
	out = append(out, repl...)
	out = append(out, t.lines[start+n:]...)
	t.lines = out
}

// Render joins all lines with a newline separator and guarantees a
// trailing newline on non-empty output. This is the exact byte content
// written back.
func (t *Tab) Render() string {
	if len(t.lines) == 0 {
		return ""
	}
	out := strings.Join(t.lines, "\n")
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	return out
}

// Write persists the rendering. A non-empty backupPath writes the
// rendering there and leaves the live table untouched. Otherwise
// shared-file mode writes the file directly, and per-user mode
// installs through the crontab binary via a temporary file.
func (t *Tab) Write(backupPath string) error {
	rendered := t.Render()

	if backupPath != "" {
		if err := t.fs.WriteFile(backupPath, []byte(rendered), 0644); err != nil {
			return errors.Wrapf(err, errors.ErrFileWrite,
				"unable to write backup %s", backupPath)
		}
		t.logger.Info().Str("backup", backupPath).Msg("Backup written")
		return nil
	}

	if t.cronFile != "" {
		if err := t.fs.WriteFile(t.cronFile, []byte(rendered), 0644); err != nil {
			return errors.Wrapf(err, errors.ErrWriteFailure,
				"unable to write cron file %s", t.cronFile)
		}
		t.logger.Info().Str("cronFile", t.cronFile).Msg("Cron file written")
		return nil
	}

	return t.installUserTable(rendered)
}

func (t *Tab) installUserTable(rendered string) error {
	tmp, err := t.fs.TempFile("", "cronset-*")
	if err != nil {
		return errors.Wrap(err, errors.ErrWriteFailure, "unable to create temporary crontab")
	}
	defer func() {
		if err := t.fs.Remove(tmp); err != nil {
			t.logger.Warn().Err(err).Str("path", tmp).Msg("Failed to remove temporary crontab")
		}
	}()

	if err := t.fs.WriteFile(tmp, []byte(rendered), 0600); err != nil {
		return errors.Wrapf(err, errors.ErrWriteFailure,
			"unable to write temporary crontab %s", tmp)
	}

	result, err := t.runner.Run(t.bin, t.writeArgs(tmp)...)
	if err != nil {
		return errors.Wrap(err, errors.ErrWriteFailure, "unable to run crontab")
	}
	if result.ExitCode != 0 {
		return errors.Newf(errors.ErrWriteFailure,
			"crontab install failed with status %d: %s", result.ExitCode, strings.TrimSpace(result.Stderr)).
			WithDetail("stderr", result.Stderr)
	}

	t.logger.Info().Str("user", t.user).Msg("Crontab installed")
	return nil
}

// RemoveFile deletes the shared cron file. A missing file is a benign
// no-op reported as removed=false.
func (t *Tab) RemoveFile() (bool, error) {
	if t.cronFile == "" {
		return false, errors.New(errors.ErrInternal, "RemoveFile requires a cron file")
	}

	if err := t.fs.Remove(t.cronFile); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			t.logger.Debug().Str("cronFile", t.cronFile).Msg("Cron file already absent")
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess,
			"unable to remove cron file %s", t.cronFile)
	}

	t.logger.Info().Str("cronFile", t.cronFile).Msg("Cron file removed")
	return true, nil
}

func (t *Tab) readArgs() []string {
	args := []string{"-l"}
	if t.user != "" {
		args = append(args, "-u", t.user)
	}
	return args
}

func (t *Tab) writeArgs(path string) []string {
	var args []string
	if t.user != "" {
		args = append(args, "-u", t.user)
	}
	return append(args, path)
}

// splitLines turns raw content into the line sequence, treating a
// single trailing newline as a terminator rather than an empty line
func splitLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// stripHeader drops known cron banner lines from the top of freshly
// read per-user output, scanning the first lines only
func stripHeader(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i, l := range lines {
		if i < headerScanLimit && isHeaderLine(l) {
			continue
		}
		out = append(out, l)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func isHeaderLine(l string) bool {
	for _, re := range headerPatterns {
		if re.MatchString(l) {
			return true
		}
	}
	return false
}
