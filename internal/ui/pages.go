package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/destiny/internal/formatter"
	"github.com/oakwood-commons/destiny/pkg/catalog"
)

// emptyCollection is shown when the filtered view has no records.
const emptyCollection = "No diamonds match your search."

const (
	defaultWidth  = 80
	defaultHeight = 24
	maxCardWidth  = 72
	labelWidth    = 10
)

func (m *Model) contentWidth() int {
	return max(m.width-2, 20)
}

// wrap soft-wraps text to the content width.
func (m *Model) wrap(text string) string {
	return lipgloss.NewStyle().Width(m.contentWidth()).Render(text)
}

func (m *Model) renderHome() string {
	home := m.app.Home
	var parts []string
	if m.app.Tagline != "" {
		parts = append(parts, m.styles.muted.Render(m.app.Tagline))
	}
	if home.Title != "" {
		parts = append(parts, m.styles.title.Render(home.Title))
	}
	if home.Intro != "" {
		parts = append(parts, m.styles.value.Render(m.wrap(home.Intro)))
	}
	if len(home.Highlights) > 0 {
		lines := make([]string, len(home.Highlights))
		for i, h := range home.Highlights {
			lines[i] = "• " + h
		}
		parts = append(parts, m.styles.value.Render(strings.Join(lines, "\n")))
	}
	if len(home.Steps) > 0 {
		lines := []string{m.styles.accent.Render("How it works")}
		for i, s := range home.Steps {
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, s))
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	if home.Tip != "" {
		parts = append(parts, m.styles.muted.Render("Tip: "+home.Tip))
	}
	parts = append(parts, m.styles.accent.Render("Press enter to view the collection"))
	return strings.Join(parts, "\n\n")
}

func (m *Model) renderAbout() string {
	about := m.app.About
	parts := []string{m.styles.title.Render(orDefault(about.Title, PageAbout.Title()))}
	for _, p := range about.Paragraphs {
		parts = append(parts, m.styles.value.Render(m.wrap(p)))
	}
	return strings.Join(parts, "\n\n")
}

func (m *Model) renderContact() string {
	contact := m.app.Contact
	parts := []string{m.styles.title.Render(orDefault(contact.Title, PageContact.Title()))}
	if contact.Intro != "" {
		parts = append(parts, m.styles.value.Render(m.wrap(contact.Intro)))
	}
	if len(contact.Channels) > 0 {
		lines := make([]string, len(contact.Channels))
		for i, ch := range contact.Channels {
			lines[i] = m.styles.label.Render(runewidth.FillRight(ch.Label, labelWidth)) + m.styles.value.Render(ch.Value)
		}
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n\n")
}

func (m *Model) renderCollection() string {
	search := m.search.View()
	if m.loading {
		return search + "\n\n" + m.spinner.View() + " Loading diamonds..."
	}
	rec, ok := m.engine.Current()
	if !ok {
		return search + "\n\n" + m.styles.muted.Render(emptyCollection)
	}
	if m.listView {
		return search + "\n\n" + m.list.View()
	}
	return search + "\n\n" + m.renderCard(rec)
}

// renderCard draws one record: title, subtitle, spec grid and media lines.
func (m *Model) renderCard(rec catalog.Record) string {
	inner := min(m.contentWidth(), maxCardWidth) - 4

	var b strings.Builder
	b.WriteString(m.styles.title.Render(runewidth.Truncate(rec.Title(), inner, "…")) + "\n")
	b.WriteString(m.styles.subtitle.Render(runewidth.Truncate(rec.Subtitle(), inner, "…")) + "\n\n")
	for _, s := range rec.Specs() {
		label := m.styles.label.Render(runewidth.FillRight(s.Label, labelWidth))
		value := m.styles.value.Render(runewidth.Truncate(s.Value, inner-labelWidth, "…"))
		b.WriteString(label + value + "\n")
	}
	b.WriteString("\n")
	media := formatter.MediaLines(rec)
	for i, line := range media {
		b.WriteString(m.styles.muted.Render(runewidth.Truncate(line, inner, "…")))
		if i < len(media)-1 {
			b.WriteString("\n")
		}
	}
	return m.styles.card.Render(b.String())
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
