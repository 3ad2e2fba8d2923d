package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/destiny/internal/cel"
	"github.com/oakwood-commons/destiny/internal/config"
	"github.com/oakwood-commons/destiny/internal/formatter"
	"github.com/oakwood-commons/destiny/internal/ui"
	"github.com/oakwood-commons/destiny/pkg/catalog"
	"github.com/oakwood-commons/destiny/pkg/loader"
	"github.com/oakwood-commons/destiny/pkg/settings"
)

// runState is everything a command needs after flags, config and
// environment have been merged.
type runState struct {
	Run      *settings.Run
	Config   config.Config
	Theme    ui.Theme
	KeyMode  ui.KeyMode
	Selector *cel.Selector
}

// prepareRun resolves the configuration for this invocation. Precedence is
// flags, then the config file, then the environment (.env included).
func prepareRun(args []string) (*runState, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := config.Load(config.ResolvePath(configFile))
	if err != nil {
		return nil, err
	}
	config.ApplyEnv(&cfg, os.Getenv)

	if t := strings.TrimSpace(themeName); t != "" {
		cfg.UI.Theme = t
	}
	if k := strings.TrimSpace(keyMode); k != "" {
		if !config.IsValidKeyMode(k) {
			return nil, fmt.Errorf("invalid --keymap %q (expected %s or %s)", k, config.KeyModeVim, config.KeyModeEmacs)
		}
		cfg.UI.KeyMode = k
	}
	if noColor {
		v := true
		cfg.UI.NoColor = &v
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tc, err := cfg.SelectedTheme()
	if err != nil {
		return nil, err
	}
	theme := ui.ThemeFromConfig(tc)
	formatter.SetTableTheme(theme.TableColors())

	timeout := loadTimeout
	if timeout <= 0 {
		if timeout, err = cfg.LoadTimeout(); err != nil {
			return nil, err
		}
	}

	where := strings.TrimSpace(whereExpr)
	if where == "" {
		where = strings.TrimSpace(cfg.Data.Where)
	}
	sel, err := cel.Compile(where)
	if err != nil {
		return nil, fmt.Errorf("invalid --where expression: %w", err)
	}

	run := settings.FromContextOrDefault(rootCtx)
	run.Data = settings.DataSettings{
		Source:  resolveSource(args, cfg),
		Timeout: timeout,
		Where:   where,
	}
	run.Query = query
	run.NoColor = cfg.NoColorEnabled()
	rootCtx = settings.IntoContext(rootCtx, run)

	return &runState{
		Run:      run,
		Config:   cfg,
		Theme:    theme,
		KeyMode:  ui.ParseKeyMode(cfg.UI.KeyMode),
		Selector: sel,
	}, nil
}

// resolveSource picks the dataset location: the positional argument, then
// data.source (which already absorbed DESTINY_DATA_SOURCE), then piped
// stdin.
func resolveSource(args []string, cfg config.Config) string {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return strings.TrimSpace(args[0])
	}
	if src := strings.TrimSpace(cfg.Data.Source); src != "" {
		return src
	}
	if stdinIsPiped() {
		return loader.StdinSource
	}
	return ""
}

// loadFunc returns the loader handed to the TUI. Load failures surface as
// errors so the UI can show them; the selector runs on the loaded records.
func (s *runState) loadFunc() ui.LoadFunc {
	source, timeout, sel := s.Run.Data.Source, s.Run.Data.Timeout, s.Selector
	return func(ctx context.Context) ([]catalog.Record, error) {
		records, err := loader.Load(ctx, source, loader.WithTimeout(timeout))
		if err != nil {
			return nil, err
		}
		return sel.Select(records)
	}
}

// loadRecords is the fail-soft load used by the non-interactive commands: a
// failed load is logged and yields an empty collection. Selector errors are
// returned.
func (s *runState) loadRecords(ctx context.Context, lgr logr.Logger) ([]catalog.Record, error) {
	records := loader.LoadOrEmpty(ctx, s.Run.Data.Source, lgr, loader.WithTimeout(s.Run.Data.Timeout))
	return s.Selector.Select(records)
}

// uiOptions builds the TUI options shared by the interactive and snapshot
// paths.
func (s *runState) uiOptions(ctx context.Context, lgr logr.Logger, page ui.Page, width, height int) ui.Options {
	return ui.Options{
		App:     s.Config.App,
		Theme:   s.Theme,
		KeyMode: s.KeyMode,
		NoColor: s.Run.NoColor,
		Page:    page,
		Query:   s.Run.Query,
		Loader:  s.loadFunc(),
		Context: ctx,
		Logger:  lgr,
		Width:   width,
		Height:  height,
	}
}
