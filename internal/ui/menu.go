package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
)

// handleMenuAction drives the drawer while it is open. Keys that do not
// belong to the drawer are ignored so the page underneath stays put.
func (m *Model) handleMenuAction(action Action) (tea.Model, tea.Cmd) {
	switch action {
	case ActionQuit:
		return m, tea.Quit
	case ActionClose, ActionToggleMenu:
		m.menuOpen = false
	case ActionUp, ActionPrev:
		m.menuCursor = (m.menuCursor - 1 + len(Pages)) % len(Pages)
	case ActionDown, ActionNext:
		m.menuCursor = (m.menuCursor + 1) % len(Pages)
	case ActionEnter:
		m.setPage(Pages[m.menuCursor])
	case ActionPage1, ActionPage2, ActionPage3, ActionPage4:
		m.setPage(pageForAction(action))
	}
	return m, nil
}

// renderDrawer draws the page menu with the cursor entry highlighted.
func (m *Model) renderDrawer() string {
	var b strings.Builder
	b.WriteString(m.styles.accent.Render("Menu") + "\n\n")
	for i, p := range Pages {
		marker := "  "
		if p == m.page {
			marker = "• "
		}
		label := marker + p.Title()
		if i == m.menuCursor {
			label = m.styles.menuSel.Render("> " + p.Title())
		} else {
			label = m.styles.menuItem.Render(label)
		}
		b.WriteString(label)
		if i < len(Pages)-1 {
			b.WriteString("\n")
		}
	}
	return m.styles.drawer.Width(18).Render(b.String())
}
