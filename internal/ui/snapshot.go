package ui

import (
	"github.com/charmbracelet/x/ansi"
)

// SnapshotConfig configures RenderSnapshot.
type SnapshotConfig struct {
	// StartKeys are applied after the dataset is in place.
	StartKeys []string
}

// RenderSnapshot renders a single frame without starting a program. The
// loader, if any, runs synchronously first. With NoColor the frame is plain
// text.
func RenderSnapshot(opts Options, cfg SnapshotConfig) string {
	m := New(opts)
	if m.loading {
		records, err := m.loader(m.ctx)
		m.applyDataset(datasetLoadedMsg{records: records, err: err})
	}
	ApplyStartupKeys(m, cfg.StartKeys)
	out := m.Render()
	if opts.NoColor {
		out = ansi.Strip(out)
	}
	return out
}
