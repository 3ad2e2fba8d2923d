package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// renderHelp lists the bindings for the active key mode.
func (m *Model) renderHelp() string {
	entries := HelpEntries(m.keyMode)
	width := 0
	for _, e := range entries {
		width = max(width, runewidth.StringWidth(e.Keys))
	}
	lines := []string{m.styles.title.Render("Keys (" + string(m.keyMode) + ")"), ""}
	for _, e := range entries {
		lines = append(lines, m.styles.accent.Render(runewidth.FillRight(e.Keys, width))+"  "+m.styles.value.Render(e.Desc))
	}
	return strings.Join(lines, "\n")
}
