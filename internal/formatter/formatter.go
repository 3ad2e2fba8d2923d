// Package formatter renders catalog records for non-interactive output.
package formatter

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/destiny/pkg/catalog"
)

// Format names an output encoding.
type Format string

const (
	FormatTable  Format = "table"
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatTOML   Format = "toml"
	FormatTree   Format = "tree"
)

// Formats lists the supported output formats in help order.
var Formats = []Format{FormatTable, FormatYAML, FormatJSON, FormatNDJSON, FormatTOML, FormatTree}

// ParseFormat validates an --output value.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatTable, nil
	}
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, known := range Formats {
		names[i] = string(known)
	}
	return "", fmt.Errorf("unsupported output format %q (expected one of: %s)", s, strings.Join(names, ", "))
}

var (
	defaultHeaderFG  = lipgloss.Color("12")
	defaultHeaderBG  = lipgloss.Color("236")
	defaultKeyColor  = lipgloss.Color("14")
	defaultValue     = lipgloss.Color("248")
	defaultSeparator = lipgloss.Color("240")

	headerStyle    lipgloss.Style
	keyStyle       lipgloss.Style
	valueStyle     lipgloss.Style
	separatorStyle lipgloss.Style
)

// TableColors controls the rendered colors for tables. Nil fields fall
// back to the built-in ANSI 256 defaults.
type TableColors struct {
	HeaderFG       color.Color
	HeaderBG       color.Color
	KeyColor       color.Color
	ValueColor     color.Color
	SeparatorColor color.Color
}

func applyTableTheme(tc TableColors) {
	pick := func(c, fallback color.Color) color.Color {
		if c == nil {
			return fallback
		}
		return c
	}
	headerStyle = lipgloss.NewStyle().Bold(true).
		Foreground(pick(tc.HeaderFG, defaultHeaderFG)).
		Background(pick(tc.HeaderBG, defaultHeaderBG))
	keyStyle = lipgloss.NewStyle().Foreground(pick(tc.KeyColor, defaultKeyColor))
	valueStyle = lipgloss.NewStyle().Foreground(pick(tc.ValueColor, defaultValue))
	separatorStyle = lipgloss.NewStyle().Foreground(pick(tc.SeparatorColor, defaultSeparator))
}

// SetTableTheme overrides the table styles.
func SetTableTheme(tc TableColors) {
	applyTableTheme(tc)
}

//nolint:gochecknoinits // default table theme for package consumers
func init() {
	applyTableTheme(TableColors{})
}

// Options configures Write.
type Options struct {
	NoColor bool
	// MaxWidth bounds table output; 0 disables truncation.
	MaxWidth int
	// StartIndex is the 0-based index of the first record, used for row numbers.
	StartIndex int
}

// Write renders records in the given format.
func Write(w io.Writer, records []catalog.Record, format Format, opts Options) error {
	var (
		out string
		err error
	)
	switch format {
	case FormatTable, "":
		out = RenderRecordTable(records, opts)
	case FormatYAML:
		out, err = FormatYAMLRecords(records)
	case FormatJSON:
		out, err = FormatJSONRecords(records)
	case FormatNDJSON:
		out, err = FormatNDJSONRecords(records)
	case FormatTOML:
		out, err = FormatTOMLRecords(records)
	case FormatTree:
		out = FormatAsTree(records)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return err
	}
	if out != "" && !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	_, err = io.WriteString(w, out)
	return err
}

// truncate shortens s to maxLen display cells, ending in "..." when there is
// room for it.
func truncate(s string, maxLen int) string {
	if maxLen <= 0 || runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "...")
}

// padRight pads s with spaces to width display cells.
func padRight(s string, width int) string {
	return runewidth.FillRight(s, width)
}

func padLeft(s string, width int) string {
	return runewidth.FillLeft(s, width)
}
