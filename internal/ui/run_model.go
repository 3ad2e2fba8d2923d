package ui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"
)

// Run starts the interactive browser and blocks until the user quits.
// Width/height of 0 auto-detect the terminal size. startKeys are applied
// once the dataset has loaded; extra ProgramOptions (e.g. custom IO) are passed
// through to tea.NewProgram.
func Run(opts Options, startKeys []string, progOpts ...tea.ProgramOption) error {
	if opts.Width > 0 || opts.Height > 0 {
		if opts.Width <= 0 || opts.Height <= 0 {
			if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
				if opts.Width <= 0 {
					opts.Width = w
				}
				if opts.Height <= 0 {
					opts.Height = h
				}
			}
		}
		if opts.Width <= 0 {
			opts.Width = defaultWidth
		}
		if opts.Height <= 0 {
			opts.Height = defaultHeight
		}
		progOpts = append(progOpts, tea.WithWindowSize(opts.Width, opts.Height))
	}

	m := New(opts)
	QueueStartupKeys(m, startKeys)

	prog := tea.NewProgram(m, progOpts...)
	_, err := prog.Run()
	return err
}
