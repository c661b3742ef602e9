package main

import (
	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flags of the root command.
type globalFlags struct {
	configFile string
	logLevel   string
	logFile    string
	statCache  bool
}

func newRootCommand(app *App) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "fsitem",
		Short: "Inspect and manipulate files and directories",
		Long: `fsitem exposes the file, directory and temporary file handles of the
fsitem library as commands, operating directly on the local filesystem.

Configuration is read from a KEY=VALUE file (see --config), with the keys
FSITEM_TEMP_DIR, FSITEM_TEMP_PREFIX, FSITEM_MAX_MEMORY, FSITEM_STAT_CACHE
and FSITEM_LOG_LEVEL.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return app.Setup(flags)
		},
	}

	root.SetIn(app.stdin)
	root.SetOut(app.stdout)
	root.SetErr(app.stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "configuration file (KEY=VALUE)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFile, "log-file", "", "additionally write JSON logs to this file")
	pf.BoolVar(&flags.statCache, "stat-cache", false, "cache stat results for the duration of the command")

	root.AddCommand(
		newStatCommand(app),
		newListCommand(app),
		newTreeCommand(app),
		newCatCommand(app),
		newSliceCommand(app),
		newChmodCommand(app),
		newTouchCommand(app),
		newCopyCommand(app),
		newMoveCommand(app),
		newLinkCommand(app),
		newRemoveCommand(app),
		newMkdirCommand(app),
		newRmdirCommand(app),
		newSpaceCommand(app),
		newTempCommand(app),
	)

	return root
}
