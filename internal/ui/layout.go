package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
)

// Render returns the full screen as a string.
func (m *Model) Render() string {
	var body string
	switch {
	case m.showHelp:
		body = m.renderHelp()
	case m.page == PageCollection:
		body = m.renderCollection()
	case m.page == PageAbout:
		body = m.renderAbout()
	case m.page == PageContact:
		body = m.renderContact()
	default:
		body = m.renderHome()
	}
	if m.menuOpen {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderDrawer(), "  ", body)
	}

	parts := []string{m.renderHeader(), m.renderTabs(), "", body, ""}
	if status := m.renderStatus(); status != "" {
		parts = append(parts, status)
	}
	parts = append(parts, m.renderFooter())
	return strings.Join(parts, "\n")
}

// HeaderText is the unstyled header: app name, collection size and, on the
// collection page, the "i/n" counter.
func (m *Model) HeaderText() string {
	name := orDefault(m.app.Name, "destiny")
	count := fmt.Sprintf("%d diamonds", m.engine.TotalCount())
	if m.page == PageCollection {
		if c := m.engine.Counter(); c != "" {
			count += " • " + c
		}
	}
	return name + "  " + count
}

func (m *Model) renderHeader() string {
	return m.styles.header.Width(m.width).Render(m.HeaderText())
}

func (m *Model) renderTabs() string {
	tabs := make([]string, len(Pages))
	for i, p := range Pages {
		label := fmt.Sprintf("%d %s", i+1, p.Title())
		if p == m.page {
			tabs[i] = m.styles.accent.Render("[" + label + "]")
		} else {
			tabs[i] = m.styles.muted.Render(" " + label + " ")
		}
	}
	return strings.Join(tabs, " ")
}

func (m *Model) renderStatus() string {
	switch {
	case m.status == "":
		return ""
	case m.statusErr:
		return m.styles.statusErr.Render(m.status)
	default:
		return m.styles.statusOK.Render(m.status)
	}
}

func (m *Model) renderFooter() string {
	if m.searching {
		return m.styles.muted.Render("enter/esc done • type to filter")
	}
	hints := []string{"? help", "m menu", "tab pages", "q quit"}
	if m.page == PageCollection {
		hints = append([]string{"←/→ browse", "/ search", "v view"}, hints...)
	}
	return m.styles.muted.Render(strings.Join(hints, " • "))
}
