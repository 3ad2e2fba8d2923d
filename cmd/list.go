package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/destiny/internal/formatter"
	"github.com/oakwood-commons/destiny/internal/limiter"
	"github.com/oakwood-commons/destiny/pkg/browse"
	"github.com/oakwood-commons/destiny/pkg/catalog"
	"github.com/oakwood-commons/destiny/pkg/logger"
)

// emptyMessage is printed when the filtered view has no records.
const emptyMessage = "No diamonds match your search."

var (
	listOutput    string
	listWidth     int
	limitRecords  int
	offsetRecords int
	tailRecords   int
)

var listCmd = &cobra.Command{
	Use:   "list [source]",
	Short: "Print the records matching --query",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	limitCfg := limiter.Config{
		Limit:  limitRecords,
		Offset: offsetRecords,
		Tail:   tailRecords,
	}
	if err := limitCfg.Validate(); err != nil {
		return fmt.Errorf("record limiting error: %w", err)
	}
	format, err := formatter.ParseFormat(listOutput)
	if err != nil {
		return err
	}
	state, err := prepareRun(args)
	if err != nil {
		return err
	}
	lgr := *logger.FromContext(rootCtx)

	records, err := state.loadRecords(rootCtx, lgr)
	if err != nil {
		return err
	}
	filtered := filterRecords(records, state.Run.Query)
	window := limiter.Apply(limitCfg, filtered)
	start, _ := limitCfg.Window(len(filtered))
	lgr.V(1).Info("listing records", "filtered", len(filtered), "start", start, "shown", len(window))

	if len(filtered) == 0 && format == formatter.FormatTable {
		fmt.Fprintln(cmd.ErrOrStderr(), emptyMessage)
		return nil
	}
	if err := writeRecords(cmd.OutOrStdout(), window, format, state.Run.NoColor, outputWidth(listWidth), start); err != nil {
		return err
	}
	if limitCfg.IsActive() && format == formatter.FormatTable {
		fmt.Fprintln(cmd.ErrOrStderr(), limitCfg.Describe(len(filtered)))
	}
	return nil
}

// filterRecords runs the records through a browsing engine and returns its
// filtered view.
func filterRecords(records []catalog.Record, q string) []catalog.Record {
	return browse.New(browse.WithRecords(records), browse.WithQuery(q)).Filtered()
}

func writeRecords(w io.Writer, records []catalog.Record, format formatter.Format, noColor bool, width, startIndex int) error {
	return formatter.Write(w, records, format, formatter.Options{
		NoColor:    noColor,
		MaxWidth:   width,
		StartIndex: startIndex,
	})
}

func init() { //nolint:gochecknoinits
	listCmd.Flags().StringVarP(&listOutput, "output", "o", "table", "output format: table|yaml|json|ndjson|toml|tree")
	listCmd.Flags().IntVar(&listWidth, "width", 0, "table width in columns (default: terminal width)")
	listCmd.Flags().IntVar(&limitRecords, "limit", 0, "limit total number of records displayed")
	listCmd.Flags().IntVar(&offsetRecords, "offset", 0, "skip the first N records")
	listCmd.Flags().IntVar(&tailRecords, "tail", 0, "show the last N records (mutually exclusive with --limit; ignores --offset)")
}
