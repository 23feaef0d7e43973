package list

import (
	"github.com/djatlantic/cronset/pkg/crontab"
	"github.com/djatlantic/cronset/pkg/logging"
	"github.com/djatlantic/cronset/pkg/reconcile"
	"github.com/djatlantic/cronset/pkg/types"
)

// Options defines the options for the Entries command.
type Options struct {
	// User selects another user's table in per-user mode.
	User string

	// CronFile selects shared-file mode.
	CronFile string

	// Marker overrides the tag-line prefix.
	Marker string

	// Bin overrides the crontab binary.
	Bin string

	FS     types.FS
	Runner types.Runner
}

// Entries reports every managed entry name in the selected table, in
// file order. A missing table lists as empty.
func Entries(opts Options) (*types.ListResult, error) {
	logger := logging.GetLogger("commands.list")
	logger.Debug().Str("user", opts.User).Str("cronFile", opts.CronFile).Msg("Listing entries")

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

	names := reconcile.New(opts.Marker).Names(tab)

	logger.Info().Int("entryCount", len(names)).Msg("Listing finished")
	return &types.ListResult{
		EntryNames: names,
		CronFile:   opts.CronFile,
	}, nil
}
