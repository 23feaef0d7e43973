// pkg/crontab/tab_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: in-memory filesystem, fake crontab runner
// PURPOSE: Verify table loading, rendering, write-back and splicing

package crontab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djatlantic/cronset/pkg/crontab"
	"github.com/djatlantic/cronset/pkg/errors"
	"github.com/djatlantic/cronset/pkg/testutil"
)

func TestLoadSharedFile(t *testing.T) {
	fs, _ := testutil.NewMemoryFS()
	testutil.WriteFile(t, fs, "/etc/cron.d/app", "PATH=/bin\n* * * * * root job\n")

	tab, err := crontab.Load(crontab.Options{CronFile: "/etc/cron.d/app", FS: fs})
	require.NoError(t, err)

	assert.Equal(t, []string{"PATH=/bin", "* * * * * root job"}, tab.Lines())
	assert.False(t, tab.IsEmpty())
}

func TestLoadSharedFileMissingIsEmpty(t *testing.T) {
	fs, _ := testutil.NewMemoryFS()

	tab, err := crontab.Load(crontab.Options{CronFile: "/etc/cron.d/none", FS: fs})
	require.NoError(t, err)

	assert.True(t, tab.IsEmpty())
}

func TestLoadUserTable(t *testing.T) {
	fs, _ := testutil.NewMemoryFS()
	fake := &testutil.CrontabFake{FS: fs, Table: "0 4 * * * backup\n"}

	tab, err := crontab.Load(crontab.Options{FS: fs, Runner: fake})
	require.NoError(t, err)

	assert.Equal(t, []string{"0 4 * * * backup"}, tab.Lines())
	assert.Equal(t, [][]string{{"crontab", "-l"}}, fake.Calls)
}

func TestLoadUserTableWithUserFlag(t *testing.T) {
	fs, _ := testutil.NewMemoryFS()
	fake := &testutil.CrontabFake{FS: fs, Missing: true}

	tab, err := crontab.Load(crontab.Options{User: "alice", FS: fs, Runner: fake})
	require.NoError(t, err)

	assert.True(t, tab.IsEmpty())
	assert.Equal(t, [][]string{{"crontab", "-l", "-u", "alice"}}, fake.Calls)
}

func TestLoadUserTableMissingIsEmpty(t *testing.T) {
	fs, _ := testutil.NewMemoryFS()
	fake := &testutil.CrontabFake{FS: fs, Missing: true}

	tab, err := crontab.Load(crontab.Options{FS: fs, Runner: fake})
	require.NoError(t, err)

	assert.True(t, tab.IsEmpty())
}

func TestLoadUserTableReadFailure(t *testing.T) {
	fs, _ := testutil.NewMemoryFS()
	fake := &testutil.CrontabFake{FS: fs, ReadFail: "must be privileged"}

	_, err := crontab.Load(crontab.Options{FS: fs, Runner: fake})
	require.Error(t, err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrReadFailure))
	assert.Contains(t, err.Error(), "must be privileged")
}

func TestLoadStripsHeaderLines(t *testing.T) {
	fs, _ := testutil.NewMemoryFS()
	fake := &testutil.CrontabFake{FS: fs, Table: "# DO NOT EDIT THIS FILE - edit the master and reinstall.\n" +
		"# (/tmp/crontab.Xyz installed on Mon Aug 10 12:00:00 2026)\n" +
		"# (Cron version V5.0 -- vixie)\n" +
		"0 4 * * * backup\n"}

	tab, err := crontab.Load(crontab.Options{FS: fs, Runner: fake})
	require.NoError(t, err)

	assert.Equal(t, []string{"0 4 * * * backup"}, tab.Lines())
}

func TestLoadHeaderStrippingLimitedToTop(t *testing.T) {
	fs, _ := testutil.NewMemoryFS()
	// A banner-looking line past the scan limit belongs to the user
	fake := &testutil.CrontabFake{FS: fs, Table: "a\nb\nc\n# DO NOT EDIT THIS FILE - edit the master and reinstall.\n"}

	tab, err := crontab.Load(crontab.Options{FS: fs, Runner: fake})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "# DO NOT EDIT THIS FILE - edit the master and reinstall."}, tab.Lines())
}

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		table string
		want  string
	}{
		{name: "empty_renders_empty", table: "", want: ""},
		{name: "trailing_newline_added", table: "* * * * * job", want: "* * * * * job\n"},
		{name: "interior_blank_lines_kept", table: "a\n\nb\n", want: "a\n\nb\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs, _ := testutil.NewMemoryFS()
			if tt.table != "" {
				testutil.WriteFile(t, fs, "/tab", tt.table)
			}

			tab, err := crontab.Load(crontab.Options{CronFile: "/tab", FS: fs})
			require.NoError(t, err)
			assert.Equal(t, tt.want, tab.Render())
		})
	}
}

func TestRenderRoundTrip(t *testing.T) {
	fs, _ := testutil.NewMemoryFS()
	content := "# comment\nMAILTO=ops@example.com\n\n*/5 * * * * poll\n"
	testutil.WriteFile(t, fs, "/tab", content)

	tab, err := crontab.Load(crontab.Options{CronFile: "/tab", FS: fs})
	require.NoError(t, err)
	require.NoError(t, tab.Write(""))

	again, err := crontab.Load(crontab.Options{CronFile: "/tab", FS: fs})
	require.NoError(t, err)

	assert.Equal(t, tab.Lines(), again.Lines())
	assert.Equal(t, content, again.Render())
}

func TestWriteBackupLeavesLiveTableAlone(t *testing.T) {
	fs, _ := testutil.NewMemoryFS()
	testutil.WriteFile(t, fs, "/etc/cron.d/app", "old\n")

	tab, err := crontab.Load(crontab.Options{CronFile: "/etc/cron.d/app", FS: fs})
	require.NoError(t, err)

	tab.Append("new line")
	require.NoError(t, tab.Write("/backups/app.bak"))

	assert.Equal(t, "old\nnew line\n", testutil.ReadFile(t, fs, "/backups/app.bak"))
	assert.Equal(t, "old\n", testutil.ReadFile(t, fs, "/etc/cron.d/app"))
}

func TestWriteUserTableInstallsViaRunner(t *testing.T) {
	fs, mem := testutil.NewMemoryFS()
	fake := &testutil.CrontabFake{FS: fs, Missing: true}

	tab, err := crontab.Load(crontab.Options{User: "alice", FS: fs, Runner: fake})
	require.NoError(t, err)

	tab.Append("#Ansible: job", "* * * * * job")
	require.NoError(t, tab.Write(""))

	require.Len(t, fake.Installed, 1)
	assert.Equal(t, "#Ansible: job\n* * * * * job\n", fake.Installed[0])

	// Install call carries the user flag before the table path
	install := fake.Calls[len(fake.Calls)-1]
	assert.Equal(t, "crontab", install[0])
	assert.Equal(t, []string{"-u", "alice"}, install[1:3])

	// Temporary file is cleaned up afterwards
	tmpPath := install[len(install)-1]
	_, statErr := mem.Stat(tmpPath)
	assert.Error(t, statErr)
}

func TestWriteUserTableFailure(t *testing.T) {
	fs, _ := testutil.NewMemoryFS()
	fake := &testutil.CrontabFake{FS: fs, Missing: true, WriteFail: "you are not allowed to use this program"}

	tab, err := crontab.Load(crontab.Options{FS: fs, Runner: fake})
	require.NoError(t, err)

	tab.Append("* * * * * job")
	err = tab.Write("")
	require.Error(t, err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrWriteFailure))
	assert.Contains(t, err.Error(), "not allowed")
	assert.Equal(t, "you are not allowed to use this program", errors.GetErrorDetails(err)["stderr"])
}

func TestCustomBin(t *testing.T) {
	fs, _ := testutil.NewMemoryFS()
	fake := &testutil.CrontabFake{FS: fs, Missing: true}

	_, err := crontab.Load(crontab.Options{Bin: "/opt/cron/bin/crontab", FS: fs, Runner: fake})
	require.NoError(t, err)

	assert.Equal(t, "/opt/cron/bin/crontab", fake.Calls[0][0])
}

func TestSplice(t *testing.T) {
	fs, _ := testutil.NewMemoryFS()
	testutil.WriteFile(t, fs, "/tab", "a\nb\nc\nd\n")

	tab, err := crontab.Load(crontab.Options{CronFile: "/tab", FS: fs})
	require.NoError(t, err)

	t.Run("replace_middle", func(t *testing.T) {
		tab.Splice(1, 2, []string{"x", "y", "z"})
		assert.Equal(t, []string{"a", "x", "y", "z", "d"}, tab.Lines())
	})

	t.Run("remove_without_insert", func(t *testing.T) {
		tab.Splice(1, 3, nil)
		assert.Equal(t, []string{"a", "d"}, tab.Lines())
	})
}

func TestRemoveFile(t *testing.T) {
	t.Run("existing_file_removed", func(t *testing.T) {
		fs, _ := testutil.NewMemoryFS()
		testutil.WriteFile(t, fs, "/etc/cron.d/app", "x\n")

		tab, err := crontab.Load(crontab.Options{CronFile: "/etc/cron.d/app", FS: fs})
		require.NoError(t, err)

		removed, err := tab.RemoveFile()
		require.NoError(t, err)
		assert.True(t, removed)
	})

	t.Run("missing_file_is_noop", func(t *testing.T) {
		fs, _ := testutil.NewMemoryFS()

		tab, err := crontab.Load(crontab.Options{CronFile: "/etc/cron.d/none", FS: fs})
		require.NoError(t, err)

		removed, err := tab.RemoveFile()
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("per_user_mode_rejected", func(t *testing.T) {
		fs, _ := testutil.NewMemoryFS()
		fake := &testutil.CrontabFake{FS: fs, Missing: true}

		tab, err := crontab.Load(crontab.Options{FS: fs, Runner: fake})
		require.NoError(t, err)

		_, err = tab.RemoveFile()
		assert.Error(t, err)
	})
}
