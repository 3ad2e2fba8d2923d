package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/destiny/internal/formatter"
	"github.com/oakwood-commons/destiny/pkg/browse"
	"github.com/oakwood-commons/destiny/pkg/catalog"
	"github.com/oakwood-commons/destiny/pkg/logger"
)

// errNoMatch is returned by show when the filtered view is empty.
var errNoMatch = errors.New(emptyMessage)

var (
	showOutput string
	showNext   int
	showPrev   int
)

var showCmd = &cobra.Command{
	Use:   "show [source]",
	Short: "Print one record after applying --query and --next/--prev steps",
	Long: `show prints the record under the cursor. The cursor starts at the first
match of --query, then moves --next steps forward and --prev steps back,
wrapping around the ends of the filtered view.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	if showNext < 0 || showPrev < 0 {
		return fmt.Errorf("--next and --prev must be non-negative")
	}
	format := formatter.Format(strings.ToLower(strings.TrimSpace(showOutput)))
	if format != "card" {
		f, err := formatter.ParseFormat(showOutput)
		if err != nil {
			return err
		}
		format = f
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
	engine := browse.New(
		browse.WithRecords(records),
		browse.WithQuery(state.Run.Query),
		browse.WithLogger(lgr),
	)
	for range showNext {
		engine.Next()
	}
	for range showPrev {
		engine.Prev()
	}

	rec, ok := engine.Current()
	if !ok {
		return errNoMatch
	}
	if format == "card" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), formatter.RenderCard(rec, formatter.CardOptions{
			NoColor: state.Run.NoColor,
			Counter: engine.Counter(),
		}))
		return err
	}
	return writeRecords(cmd.OutOrStdout(), []catalog.Record{rec}, format, state.Run.NoColor, outputWidth(0), engine.Position())
}

func init() { //nolint:gochecknoinits
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "card", "output format: card|table|yaml|json|ndjson|toml|tree")
	showCmd.Flags().IntVar(&showNext, "next", 0, "move the cursor N records forward")
	showCmd.Flags().IntVar(&showPrev, "prev", 0, "move the cursor N records back")
}
