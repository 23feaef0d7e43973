package cronset

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Manage tagged crontab entries idempotently"
	MsgSetShort        = "Install or update a managed entry"
	MsgRemoveShort     = "Remove a managed entry or a whole cron file"
	MsgListShort       = "List managed entries in a table"
	MsgListLong        = "List displays the name of every managed entry found in the selected crontab, in file order."
	MsgGenConfigShort  = "Output or write the cronset configuration"
	MsgDocsShort       = "Display the cronset manual"
	MsgCompletionShort = "Generate shell completion script"

	// Error messages
	MsgErrLoadConfig = "failed to load configuration: %w"
	MsgErrSetEntry   = "failed to set entry: %w"
	MsgErrRemove     = "failed to remove entry: %w"
	MsgErrList       = "failed to list entries: %w"
	MsgErrGenConfig  = "failed to generate config: %w"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagJob         = "Command the entry runs (required)"
	MsgFlagMinute      = "Minute field (0-59, *, */2, etc.)"
	MsgFlagHour        = "Hour field (0-23, *, etc.)"
	MsgFlagDay         = "Day of month field (1-31, *, etc.)"
	MsgFlagMonth       = "Month field (1-12, JAN-DEC, *, etc.)"
	MsgFlagWeekday     = "Day of week field (0-6, SUN-SAT, *, etc.)"
	MsgFlagSpecialTime = "Schedule alias: reboot, yearly, annually, monthly, weekly, daily or hourly"
	MsgFlagEnv         = "KEY=VALUE assignment placed above the entry (repeatable, comma-delimited)"
	MsgFlagUser        = "User whose table is modified, or the run-as user with --cron-file"
	MsgFlagCronFile    = "Manage a standalone cron file instead of a user table"
	MsgFlagBackup      = "Save a backup of the table before changing it"
	MsgFlagCheck       = "Validate the schedule fields before writing"
	MsgFlagMarker      = "Override the comment prefix tagging managed entries"
	MsgFlagWrite       = "Write the config to the user config directory instead of stdout"
	MsgFlagEffective   = "Render the resolved configuration including overrides"
)

const MsgRootLong = `cronset manages crontab entries it owns through a comment tag, leaving
everything else in the table untouched. Each managed entry is a block of
lines: a tag comment carrying the entry name, optional environment
assignments, and the cron command line.

Running the same set command twice is safe: when the table already holds
the desired block, nothing is written.`

const MsgSetLong = `Set installs the named entry if it is missing, or rewrites its block in
place when the schedule, command or environment differ. The five
schedule fields default to "*"; --special-time replaces them with an
@alias. With --cron-file the entry is written to a standalone file in
cron.d format, which requires --user for the run-as column.`

const MsgRemoveLong = `Remove deletes the named entry's block from the table. A missing entry
is a no-op. With --cron-file and no name the whole file is deleted, and
removing the last managed entry from a cron file deletes the file
rather than leaving it empty.`

const MsgSetExample = `  # Run a job at 5am and 2am every day
  cronset set "check dirs" --job "ls -alh > /dev/null" --minute 0 --hour 5,2

  # Run after every reboot, with an environment assignment
  cronset set "warm cache" --job /usr/local/bin/warm --special-time reboot -e PATH=/usr/bin:/bin

  # Manage a cron.d file entry running as root
  cronset set "rotate logs" --job "logrotate -f /etc/logrotate.conf" \
      --cron-file /etc/cron.d/rotate --user root --minute 30`

const MsgRemoveExample = `  # Remove an entry from the invoking user's table
  cronset remove "check dirs"

  # Delete a whole cron.d file
  cronset remove --cron-file /etc/cron.d/rotate`

const MsgListExample = `  cronset list
  cronset list --user alice
  cronset list --cron-file /etc/cron.d/rotate`

// MsgUsageTemplate is cobra's default usage template with the section
// headers run through the bold/boldUpper template helpers.
const MsgUsageTemplate = `{{boldUpper "Usage:"}}{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if gt (len .Aliases) 0}}

{{boldUpper "Aliases:"}}
  {{.NameAndAliases}}{{end}}{{if .HasExample}}

{{boldUpper "Examples:"}}
{{.Example}}{{end}}{{if .HasAvailableSubCommands}}{{$cmds := .Commands}}{{if eq (len .Groups) 0}}

{{boldUpper "Available Commands:"}}{{range $cmds}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{else}}{{range $group := .Groups}}

{{bold $group.Title}}{{range $cmds}}{{if (and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if not .AllChildCommandsHaveGroup}}

{{boldUpper "Additional Commands:"}}{{range $cmds}}{{if (and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help")))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "Flags:"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "Global Flags:"}}
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableSubCommands}}

Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
