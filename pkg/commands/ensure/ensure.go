// Package ensure implements the two reconciliation operations: make a
// named entry present with the desired schedule, command and
// environment, or make it absent. Both load the table, apply the
// minimal rewrite and write back, reporting whether anything changed.
package ensure

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/djatlantic/cronset/pkg/crontab"
	"github.com/djatlantic/cronset/pkg/errors"
	"github.com/djatlantic/cronset/pkg/logging"
	"github.com/djatlantic/cronset/pkg/paths"
	"github.com/djatlantic/cronset/pkg/reconcile"
	"github.com/djatlantic/cronset/pkg/schedule"
	"github.com/djatlantic/cronset/pkg/types"
)

// Options defines one reconciliation request.
type Options struct {
	// Name identifies the managed entry. Required except for a pure
	// shared-file delete.
	Name string

	// Job is the command the entry runs. Required for Present.
	Job string

	// Fields are the five schedule fields; empty fields default to
	// the wildcard. Mutually exclusive with SpecialTime.
	Fields schedule.Fields

	// SpecialTime is a schedule alias such as reboot or daily.
	SpecialTime string

	// Env holds KEY=VALUE assignments, each entry either a single
	// assignment or a comma-delimited list of them.
	Env []string

	// User is the table owner in per-user mode, or the user the entry
	// runs as in shared-file mode (required there for Present).
	User string

	// CronFile selects shared-file mode.
	CronFile string

	// Backup requests a pre-change copy of the table.
	Backup bool

	// Check enables schedule field syntax validation before mutation.
	Check bool

	// Marker overrides the tag-line prefix.
	Marker string

	// Bin overrides the crontab binary.
	Bin string

	// BackupDir overrides where backup files land.
	BackupDir string

	FS     types.FS
	Runner types.Runner
}

func (o Options) sharedFile() bool {
	return o.CronFile != ""
}

// Present ensures the named entry exists exactly once with the desired
// rendering, installing, replacing or leaving it alone as needed.
func Present(opts Options) (*types.Report, error) {
	logger := logging.GetLogger("commands.ensure")
	logger.Debug().Str("name", opts.Name).Str("cronFile", opts.CronFile).Msg("Ensuring entry present")

	envLines, err := validatePresent(opts)
	if err != nil {
		return nil, err
	}

	tab, err := crontab.Load(crontab.Options{
		User:     opts.User,
		CronFile: opts.CronFile,
		Bin:      opts.Bin,
		FS:       opts.FS,
		Runner:   opts.Runner,
	})
	if err != nil {
		return nil, err
	}

	r := reconcile.New(opts.Marker)
	jobLine := reconcile.JobLine(opts.Fields, opts.SpecialTime, opts.User, opts.Job, opts.sharedFile())
	existing := r.FindEntry(tab, opts.Name)

	report := &types.Report{CronFile: opts.CronFile}

	switch {
	case len(existing) == 0:
		report.Backup, err = writeBackup(tab, opts)
		if err != nil {
			return nil, err
		}
		r.Install(tab, opts.Name, envLines, jobLine)
		report.Changed = true

	case needsUpdate(existing, envLines, jobLine):
		report.Backup, err = writeBackup(tab, opts)
		if err != nil {
			return nil, err
		}
		r.Replace(tab, opts.Name, len(existing), envLines, jobLine)
		report.Changed = true

	default:
		logger.Debug().Str("name", opts.Name).Msg("Entry already up to date")
	}

	if report.Changed {
		if err := tab.Write(""); err != nil {
			return nil, err
		}
	}

	report.EntryNames = r.Names(tab)
	return report, nil
}

// Absent removes the named entry, or with a cron file and no name,
// deletes the whole shared file. Missing entries and missing files are
// benign no-ops.
func Absent(opts Options) (*types.Report, error) {
	logger := logging.GetLogger("commands.ensure")
	logger.Debug().Str("name", opts.Name).Str("cronFile", opts.CronFile).Msg("Ensuring entry absent")

	if opts.Name == "" && !opts.sharedFile() {
		return nil, errors.New(errors.ErrValidation, "name is required to remove an entry")
	}

	tab, err := crontab.Load(crontab.Options{
		User:     opts.User,
		CronFile: opts.CronFile,
		Bin:      opts.Bin,
		FS:       opts.FS,
		Runner:   opts.Runner,
	})
	if err != nil {
		return nil, err
	}

	report := &types.Report{CronFile: opts.CronFile}

	if opts.Name == "" {
		if !tab.IsEmpty() {
			report.Backup, err = writeBackup(tab, opts)
			if err != nil {
				return nil, err
			}
		}
		removed, err := tab.RemoveFile()
		if err != nil {
			return nil, err
		}
		report.Changed = removed
		return report, nil
	}

	r := reconcile.New(opts.Marker)
	existing := r.FindEntry(tab, opts.Name)
	if len(existing) == 0 {
		report.EntryNames = r.Names(tab)
		return report, nil
	}

	report.Backup, err = writeBackup(tab, opts)
	if err != nil {
		return nil, err
	}

	r.Remove(tab, opts.Name, len(existing))
	report.Changed = true

	// A shared file with nothing left in it is deleted rather than
	// written back empty.
	if opts.sharedFile() && tab.IsEmpty() {
		if _, err := tab.RemoveFile(); err != nil {
			return nil, err
		}
	} else if err := tab.Write(""); err != nil {
		return nil, err
	}

	report.EntryNames = r.Names(tab)
	return report, nil
}

// validatePresent surfaces all precondition failures before any
// mutation and returns the sorted environment lines.
func validatePresent(opts Options) ([]string, error) {
	if opts.Name == "" {
		return nil, errors.New(errors.ErrValidation, "name is required to install an entry")
	}
	if opts.Job == "" {
		return nil, errors.New(errors.ErrValidation, "job is required to install an entry")
	}
	if opts.SpecialTime != "" && opts.Fields.Explicit() {
		return nil, errors.New(errors.ErrValidation,
			"special time and explicit schedule fields are mutually exclusive")
	}
	if opts.sharedFile() && opts.User == "" {
		return nil, errors.New(errors.ErrValidation,
			"a cron file install requires an explicit user")
	}
	if strings.Contains(opts.Name, "\n") {
		return nil, errors.New(errors.ErrValidation, "name must not contain newlines")
	}

	// A name embedding the marker would render a tag line that lookups
	// and Names would mistake for a second entry.
	marker := opts.Marker
	if marker == "" {
		marker = reconcile.DefaultMarker
	}
	if strings.Contains(opts.Name, marker) {
		return nil, errors.Newf(errors.ErrValidation,
			"name must not contain the entry marker %q", marker)
	}

	if opts.SpecialTime != "" {
		if err := schedule.CheckSpecialTime(opts.SpecialTime); err != nil {
			return nil, err
		}
	} else if opts.Check {
		if err := schedule.Validate(opts.Fields); err != nil {
			return nil, err
		}
	}

	return parseEnv(opts.Env)
}

// parseEnv normalizes environment assignments into sorted KEY=VALUE
// lines. A comma-delimited entry is split first; its pieces must then
// contain exactly one equals sign.
func parseEnv(raw []string) ([]string, error) {
	var out []string
	for _, item := range raw {
		if strings.Contains(item, ",") {
			for _, piece := range strings.Split(item, ",") {
				piece = strings.TrimSpace(piece)
				if strings.Count(piece, "=") != 1 || strings.HasPrefix(piece, "=") {
					return nil, errors.Newf(errors.ErrValidation,
						"malformed environment assignment %q", piece)
				}
				out = append(out, piece)
			}
			continue
		}

		key, _, found := strings.Cut(item, "=")
		if !found || key == "" {
			return nil, errors.Newf(errors.ErrValidation,
				"malformed environment assignment %q", item)
		}
		out = append(out, item)
	}

	sort.Strings(out)
	return out, nil
}

// needsUpdate is the diff policy deciding whether the existing block
// must be replaced wholesale. existing is never empty here.
func needsUpdate(existing, envLines []string, jobLine string) bool {
	if existing[len(existing)-1] != jobLine {
		return true
	}

	if len(envLines) == 0 {
		return false
	}

	existingEnv := existing[1 : len(existing)-1]
	if len(existingEnv) != len(envLines) {
		return true
	}

	sorted := append([]string(nil), existingEnv...)
	sort.Strings(sorted)
	for i := range envLines {
		if envLines[i] != sorted[i] {
			return true
		}
	}
	return false
}

// writeBackup saves the pre-change rendering when a backup was
// requested, returning the backup path for the report.
func writeBackup(tab *crontab.Tab, opts Options) (string, error) {
	if !opts.Backup {
		return "", nil
	}

	owner := opts.User
	if owner == "" && opts.CronFile != "" {
		owner = filepath.Base(opts.CronFile)
	}

	path := paths.New(opts.BackupDir).BackupFile(owner)
	if err := tab.Write(path); err != nil {
		return "", err
	}
	return path, nil
}
