package cronset

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/djatlantic/cronset/internal/version"
	"github.com/djatlantic/cronset/pkg/commands/ensure"
	"github.com/djatlantic/cronset/pkg/commands/genconfig"
	"github.com/djatlantic/cronset/pkg/commands/list"
	"github.com/djatlantic/cronset/pkg/config"
	"github.com/djatlantic/cronset/pkg/executor"
	"github.com/djatlantic/cronset/pkg/filesystem"
	"github.com/djatlantic/cronset/pkg/logging"
	"github.com/djatlantic/cronset/pkg/paths"
	"github.com/djatlantic/cronset/pkg/schedule"
	"github.com/djatlantic/cronset/pkg/style"
)

//go:embed docs/cronset.md
var manualContent string

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		verbosity  int
		formatName string
	)

	rootCmd := &cobra.Command{
		Use:     "cronset",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand given: show help but flag the usage error
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&formatName, "format", "auto", MsgFlagFormat)

	// Define command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	// Custom usage template with emphasized section headers
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newSetCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newDocsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// loadConfig resolves the effective configuration from the XDG config
// file candidates and CRONSET_* environment overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(paths.New("").ConfigFiles())
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

// newRenderer resolves the --format flag against stdout
func newRenderer(cmd *cobra.Command) (*style.Renderer, error) {
	name, _ := cmd.Root().PersistentFlags().GetString("format")
	format, err := style.ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return style.NewRenderer(os.Stdout, format.Resolve(os.Stdout)), nil
}

func newSetCmd() *cobra.Command {
	var (
		job         string
		fields      schedule.Fields
		specialTime string
		env         []string
		user        string
		cronFile    string
		backup      bool
		check       bool
		marker      string
	)

	cmd := &cobra.Command{
		Use:     "set <name>",
		Short:   MsgSetShort,
		Long:    MsgSetLong,
		Example: MsgSetExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			if marker == "" {
				marker = cfg.Marker
			}

			log.Info().
				Str("name", args[0]).
				Str("user", user).
				Str("cronFile", cronFile).
				Msg("Setting entry")

			report, err := ensure.Present(ensure.Options{
				Name:        args[0],
				Job:         job,
				Fields:      fields,
				SpecialTime: specialTime,
				Env:         env,
				User:        user,
				CronFile:    cronFile,
				Backup:      backup,
				Check:       check,
				Marker:      marker,
				Bin:         cfg.Crontab.Bin,
				BackupDir:   cfg.Backup.Dir,
				FS:          filesystem.NewOS(),
				Runner:      executor.New(),
			})
			if err != nil {
				return fmt.Errorf(MsgErrSetEntry, err)
			}

			return renderer.RenderReport("set", report)
		},
	}

	cmd.Flags().StringVarP(&job, "job", "j", "", MsgFlagJob)
	cmd.Flags().StringVar(&fields.Minute, "minute", "", MsgFlagMinute)
	cmd.Flags().StringVar(&fields.Hour, "hour", "", MsgFlagHour)
	cmd.Flags().StringVar(&fields.Day, "day", "", MsgFlagDay)
	cmd.Flags().StringVar(&fields.Month, "month", "", MsgFlagMonth)
	cmd.Flags().StringVar(&fields.Weekday, "weekday", "", MsgFlagWeekday)
	cmd.Flags().StringVar(&specialTime, "special-time", "", MsgFlagSpecialTime)
	cmd.Flags().StringArrayVarP(&env, "env", "e", nil, MsgFlagEnv)
	cmd.Flags().StringVarP(&user, "user", "u", "", MsgFlagUser)
	cmd.Flags().StringVarP(&cronFile, "cron-file", "f", "", MsgFlagCronFile)
	cmd.Flags().BoolVar(&backup, "backup", false, MsgFlagBackup)
	cmd.Flags().BoolVar(&check, "check", false, MsgFlagCheck)
	cmd.Flags().StringVar(&marker, "marker", "", MsgFlagMarker)

	_ = cmd.MarkFlagRequired("job")
	cmd.MarkFlagsMutuallyExclusive("special-time", "minute")
	cmd.MarkFlagsMutuallyExclusive("special-time", "hour")
	cmd.MarkFlagsMutuallyExclusive("special-time", "day")
	cmd.MarkFlagsMutuallyExclusive("special-time", "month")
	cmd.MarkFlagsMutuallyExclusive("special-time", "weekday")

	return cmd
}

func newRemoveCmd() *cobra.Command {
	var (
		user     string
		cronFile string
		backup   bool
		marker   string
	)

	cmd := &cobra.Command{
		Use:     "remove [name]",
		Short:   MsgRemoveShort,
		Long:    MsgRemoveLong,
		Example: MsgRemoveExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			if marker == "" {
				marker = cfg.Marker
			}

			var name string
			if len(args) > 0 {
				name = args[0]
			}

			log.Info().
				Str("name", name).
				Str("user", user).
				Str("cronFile", cronFile).
				Msg("Removing entry")

			report, err := ensure.Absent(ensure.Options{
				Name:      name,
				User:      user,
				CronFile:  cronFile,
				Backup:    backup,
				Marker:    marker,
				Bin:       cfg.Crontab.Bin,
				BackupDir: cfg.Backup.Dir,
				FS:        filesystem.NewOS(),
				Runner:    executor.New(),
			})
			if err != nil {
				return fmt.Errorf(MsgErrRemove, err)
			}

			return renderer.RenderReport("remove", report)
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", MsgFlagUser)
	cmd.Flags().StringVarP(&cronFile, "cron-file", "f", "", MsgFlagCronFile)
	cmd.Flags().BoolVar(&backup, "backup", false, MsgFlagBackup)
	cmd.Flags().StringVar(&marker, "marker", "", MsgFlagMarker)

	return cmd
}

func newListCmd() *cobra.Command {
	var (
		user     string
		cronFile string
		marker   string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		Example: MsgListExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}

			if marker == "" {
				marker = cfg.Marker
			}

			result, err := list.Entries(list.Options{
				User:     user,
				CronFile: cronFile,
				Marker:   marker,
				Bin:      cfg.Crontab.Bin,
				FS:       filesystem.NewOS(),
				Runner:   executor.New(),
			})
			if err != nil {
				return fmt.Errorf(MsgErrList, err)
			}

			return renderer.RenderList(result)
		},
	}

	cmd.Flags().StringVarP(&user, "user", "u", "", MsgFlagUser)
	cmd.Flags().StringVarP(&cronFile, "cron-file", "f", "", MsgFlagCronFile)
	cmd.Flags().StringVar(&marker, "marker", "", MsgFlagMarker)

	return cmd
}

func newGenConfigCmd() *cobra.Command {
	var (
		write     bool
		effective bool
	)

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := genconfig.GenConfig(genconfig.Options{
				Effective:   effective,
				Write:       write,
				ConfigFiles: paths.New("").ConfigFiles(),
			})
			if err != nil {
				return fmt.Errorf(MsgErrGenConfig, err)
			}

			if write {
				for _, path := range result.FilesWritten {
					fmt.Println("Written:", path)
				}
				return nil
			}

			fmt.Print(result.ConfigContent)
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)

	return cmd
}

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "docs",
		Short:   MsgDocsShort,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			format := style.DetectFormat(os.Stdout)
			fmt.Print(style.RenderMarkdown(manualContent, format))
			return nil
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
}
