package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/destiny/internal/formatter"
	"github.com/oakwood-commons/destiny/internal/ui"
	"github.com/oakwood-commons/destiny/pkg/logger"
	"github.com/oakwood-commons/destiny/pkg/settings"
)

var (
	// shared by every command
	configFile  string
	themeName   string
	keyMode     string // empty = use config
	noColor     bool
	debug       bool
	logFile     string
	loadTimeout time.Duration
	query       string
	whereExpr   string

	// root only
	pageName       string
	renderSnapshot bool
	startKeys      []string
	snapshotWidth  int
	snapshotHeight int

	logFileHandle *os.File
)

var rootCtx = context.Background()

const rootLong = `destiny loads a diamond catalog from a URL, a file or stdin and lets you
browse it one record at a time, filter it with a free-text search and open
the 360°/video view of each stone.

The source is the first argument, then data.source from the config file,
then DESTINY_DATA_SOURCE (a .env file in the working directory is read).
Datasets may be JSON, NDJSON, YAML or TOML.`

var rootCmd = &cobra.Command{
	Use:     settings.CliBinaryName + " [source]",
	Short:   "Browse a diamond catalog one stone at a time",
	Long:    rootLong,
	Example: "\n  destiny https://stock.example.com/diamonds.json\n  destiny diamonds.yaml --query oval\n  destiny list diamonds.json --where 'carat >= 1.0' -o yaml\n  cat diamonds.ndjson | destiny show --query round --next 2\n",
	Args:    cobra.MaximumNArgs(1),
	Version: settings.VersionInformation.BuildVersion,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return initLogging(cmd)
	},
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// initLogging builds the JSON logger for this run and stores it, together
// with the run settings, in rootCtx. The TUI gets a file sink (or none) so
// log lines never land on the alternate screen.
func initLogging(cmd *cobra.Command) error {
	var level int8
	if debug {
		level = -1
	}

	var w io.Writer = os.Stderr
	switch {
	case logFile != "":
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFileHandle = f
		w = f
	case !cmd.HasParent() && !renderSnapshot && stdoutIsTerminal():
		w = io.Discard
	}

	run := settings.NewCliParams()
	run.MinLogLevel = level
	run.SessionID = uuid.NewString()

	lgr, zl := logger.New(level, w)
	logger.SetGlobal(lgr, zl)
	lgr = logger.WithValues(lgr,
		logger.RootCommandKey, settings.CliBinaryName,
		logger.SubCommandKey, cmd.Name(),
		logger.SessionKey, run.SessionID)

	rootCtx = logger.WithLogger(context.Background(), lgr)
	rootCtx = settings.IntoContext(rootCtx, run)
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	page, err := ui.ParsePage(pageName)
	if err != nil {
		return err
	}
	state, err := prepareRun(args)
	if err != nil {
		return err
	}
	lgr := *logger.FromContext(rootCtx)

	if renderSnapshot {
		size := resolveSnapshotSize(snapshotWidth, snapshotHeight)
		opts := state.uiOptions(rootCtx, lgr, page, size.Width, size.Height)
		out := ui.RenderSnapshot(opts, ui.SnapshotConfig{StartKeys: startKeys})
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
		return nil
	}

	// Not a terminal: behave like "list".
	if !stdoutIsTerminal() {
		records, err := state.loadRecords(rootCtx, lgr)
		if err != nil {
			return err
		}
		return writeRecords(cmd.OutOrStdout(), filterRecords(records, state.Run.Query), formatter.FormatTable, state.Run.NoColor, outputWidth(snapshotWidth), 0)
	}

	lgr.V(1).Info("starting interactive browser", logger.SourceKey, state.Run.Data.Source)
	progOpts, cleanup := getProgramOptions()
	defer cleanup()
	return ui.Run(state.uiOptions(rootCtx, lgr, page, snapshotWidth, snapshotHeight), startKeys, progOpts...)
}

// Execute runs the root command.
func Execute() error {
	defer func() {
		if logFileHandle != nil {
			_ = logFileHandle.Close()
		}
	}()
	return rootCmd.Execute()
}

func init() { //nolint:gochecknoinits
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config-file", "", "path to a YAML config file (default $XDG_CONFIG_HOME/destiny/config.yaml)")
	pf.StringVar(&themeName, "theme", "", "theme name (default from config; see 'destiny config themes')")
	pf.StringVar(&keyMode, "keymap", "", "keybinding mode: vim (default) or emacs")
	pf.BoolVar(&noColor, "no-color", false, "disable color output")
	pf.BoolVar(&debug, "debug", false, "enable debug logging")
	pf.StringVar(&logFile, "log-file", "", "append JSON logs to this file (the interactive browser logs nowhere otherwise)")
	pf.DurationVar(&loadTimeout, "timeout", 0, "dataset fetch timeout (default from config, 30s)")
	pf.StringVarP(&query, "query", "q", "", "initial search query")
	pf.StringVar(&whereExpr, "where", "", "CEL expression pre-selecting records, e.g. 'carat >= 1.0 && has_video'")

	rootCmd.Flags().StringVar(&pageName, "page", "", "start page: home|collection|about|contact")
	rootCmd.Flags().BoolVar(&renderSnapshot, "snapshot", false, "render a single TUI frame and exit; honors --width/--height")
	rootCmd.Flags().StringArrayVar(&startKeys, "press", nil, "simulate keys on startup, e.g. --press \"<CR>/oval<CR>\" (use <Key> for special keys)")
	rootCmd.Flags().IntVar(&snapshotWidth, "width", 0, "TUI width in columns (default: terminal width)")
	rootCmd.Flags().IntVar(&snapshotHeight, "height", 0, "TUI height in rows (default: terminal height)")

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	rootCmd.AddCommand(listCmd, showCmd, configCmd, versionCmd)
}
