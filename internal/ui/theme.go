package ui

import (
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/destiny/internal/config"
	"github.com/oakwood-commons/destiny/internal/formatter"
)

// Theme defines colors used across the UI.
type Theme struct {
	Accent        color.Color // Titles, active menu entry, counters
	Text          color.Color // Body text
	Muted         color.Color // Labels, hints, footer
	Border        color.Color // Card and drawer borders
	BorderStyle   string      // Border style (normal|rounded)
	HeaderFG      color.Color // Header bar text
	HeaderBG      color.Color // Header bar background
	SelectedFG    color.Color // Selected list row foreground
	SelectedBG    color.Color // Selected list row background
	StatusError   color.Color // Error status line
	StatusSuccess color.Color // Success status line
}

// FallbackTheme is used when the configured theme leaves colors unset.
func FallbackTheme() Theme {
	return Theme{
		Accent:        lipgloss.Color("81"),  // cyan
		Text:          lipgloss.Color("252"), // off-white
		Muted:         lipgloss.Color("245"), // gray labels
		Border:        lipgloss.Color("238"), // subtle frame
		BorderStyle:   "rounded",
		HeaderFG:      lipgloss.Color("81"),
		HeaderBG:      lipgloss.Color("236"), // charcoal
		SelectedFG:    lipgloss.Color("250"),
		SelectedBG:    lipgloss.Color("24"), // deep teal
		StatusError:   lipgloss.Color("203"),
		StatusSuccess: lipgloss.Color("114"),
	}
}

// ThemeFromConfig converts a configured palette, filling blanks from
// FallbackTheme.
func ThemeFromConfig(tc config.ThemeConfig) Theme {
	base := FallbackTheme()
	pick := func(v config.ColorValue, fallback color.Color) color.Color {
		s := strings.TrimSpace(string(v))
		if s == "" {
			return fallback
		}
		return lipgloss.Color(s)
	}
	return Theme{
		Accent:        pick(tc.Accent, base.Accent),
		Text:          pick(tc.Text, base.Text),
		Muted:         pick(tc.Muted, base.Muted),
		Border:        pick(tc.Border, base.Border),
		BorderStyle:   normalizeBorderStyle(tc.BorderStyle),
		HeaderFG:      pick(tc.HeaderFG, base.HeaderFG),
		HeaderBG:      pick(tc.HeaderBG, base.HeaderBG),
		SelectedFG:    pick(tc.SelectedFG, base.SelectedFG),
		SelectedBG:    pick(tc.SelectedBG, base.SelectedBG),
		StatusError:   pick(tc.StatusError, base.StatusError),
		StatusSuccess: pick(tc.StatusSuccess, base.StatusSuccess),
	}
}

// TableColors maps the palette onto the non-interactive table renderer.
func (t Theme) TableColors() formatter.TableColors {
	return formatter.TableColors{
		HeaderFG:       t.HeaderFG,
		HeaderBG:       t.HeaderBG,
		KeyColor:       t.Accent,
		ValueColor:     t.Text,
		SeparatorColor: t.Border,
	}
}

func normalizeBorderStyle(style string) string {
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "normal", "square":
		return "normal"
	default:
		return "rounded"
	}
}

func borderForStyle(style string) lipgloss.Border {
	if normalizeBorderStyle(style) == "normal" {
		return lipgloss.NormalBorder()
	}
	return lipgloss.RoundedBorder()
}

// styles is the set of lipgloss styles derived from a Theme. With noColor
// every style keeps its layout but drops colors.
type styles struct {
	header    lipgloss.Style
	title     lipgloss.Style
	subtitle  lipgloss.Style
	label     lipgloss.Style
	value     lipgloss.Style
	muted     lipgloss.Style
	accent    lipgloss.Style
	card      lipgloss.Style
	drawer    lipgloss.Style
	menuItem  lipgloss.Style
	menuSel   lipgloss.Style
	statusErr lipgloss.Style
	statusOK  lipgloss.Style
	search    lipgloss.Style
}

func newStyles(t Theme, noColor bool) styles {
	border := borderForStyle(t.BorderStyle)
	s := styles{
		header:    lipgloss.NewStyle().Bold(true).Padding(0, 1),
		title:     lipgloss.NewStyle().Bold(true),
		subtitle:  lipgloss.NewStyle(),
		label:     lipgloss.NewStyle(),
		value:     lipgloss.NewStyle(),
		muted:     lipgloss.NewStyle(),
		accent:    lipgloss.NewStyle().Bold(true),
		card:      lipgloss.NewStyle().Border(border).Padding(0, 1),
		drawer:    lipgloss.NewStyle().Border(border).Padding(0, 1),
		menuItem:  lipgloss.NewStyle(),
		menuSel:   lipgloss.NewStyle().Bold(true),
		statusErr: lipgloss.NewStyle(),
		statusOK:  lipgloss.NewStyle(),
		search:    lipgloss.NewStyle(),
	}
	if noColor {
		s.menuSel = s.menuSel.Reverse(true)
		return s
	}
	s.header = s.header.Foreground(t.HeaderFG).Background(t.HeaderBG)
	s.title = s.title.Foreground(t.Accent)
	s.subtitle = s.subtitle.Foreground(t.Text)
	s.label = s.label.Foreground(t.Muted)
	s.value = s.value.Foreground(t.Text)
	s.muted = s.muted.Foreground(t.Muted)
	s.accent = s.accent.Foreground(t.Accent)
	s.card = s.card.BorderForeground(t.Border)
	s.drawer = s.drawer.BorderForeground(t.Border)
	s.menuItem = s.menuItem.Foreground(t.Text)
	s.menuSel = s.menuSel.Foreground(t.SelectedFG).Background(t.SelectedBG)
	s.statusErr = s.statusErr.Foreground(t.StatusError)
	s.statusOK = s.statusOK.Foreground(t.StatusSuccess)
	s.search = s.search.Foreground(t.Text)
	return s
}
