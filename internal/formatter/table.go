package formatter

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/destiny/pkg/catalog"
)

const (
	colSep      = "  "
	minColWidth = 4
)

// RecordColumns are the table headers in display order.
var RecordColumns = []string{"SHAPE", "CARAT", "COLOR", "CLARITY", "CUT", "POL", "SYM", "FLURO", "RATIO", "MEDIA"}

// RecordRow returns the table cells for one record. Absent values render as
// the placeholder dash; MEDIA lists which links are usable.
func RecordRow(r catalog.Record) []string {
	specs := r.Specs()
	row := make([]string, 0, len(RecordColumns))
	for _, s := range specs {
		row = append(row, s.Value)
	}
	var media []string
	if _, ok := r.Image(); ok {
		media = append(media, "image")
	}
	if _, ok := r.Video(); ok {
		media = append(media, "video")
	}
	if len(media) == 0 {
		row = append(row, catalog.Placeholder)
	} else {
		row = append(row, strings.Join(media, "+"))
	}
	return row
}

// RenderRecordTable renders records as a columnar table with a leading row
// number column. Columns shrink widest-first when MaxWidth is exceeded.
func RenderRecordTable(records []catalog.Record, opts Options) string {
	if len(records) == 0 {
		return ""
	}
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = RecordRow(r)
	}

	numWidth := len(strconv.Itoa(opts.StartIndex + len(records)))
	if numWidth < 1 {
		numWidth = 1
	}
	widths := naturalWidths(RecordColumns, rows)
	if opts.MaxWidth > 0 {
		fixed := numWidth + len(colSep)*len(RecordColumns)
		widths = shrinkWidest(widths, opts.MaxWidth-fixed)
	}

	var b strings.Builder
	header := make([]string, len(RecordColumns))
	for i, c := range RecordColumns {
		header[i] = padRight(truncate(c, widths[i]), widths[i])
	}
	headerLine := strings.Repeat(" ", numWidth) + colSep + strings.Join(header, colSep)
	if !opts.NoColor {
		headerLine = headerStyle.Render(headerLine)
	}
	b.WriteString(strings.TrimRight(headerLine, " ") + "\n")

	total := numWidth
	for _, w := range widths {
		total += len(colSep) + w
	}
	sep := strings.Repeat("─", total)
	if !opts.NoColor {
		sep = separatorStyle.Render(sep)
	}
	b.WriteString(sep + "\n")

	for i, row := range rows {
		num := padLeft(strconv.Itoa(opts.StartIndex+i+1), numWidth)
		if !opts.NoColor {
			num = keyStyle.Render(num)
		}
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = padRight(truncate(cell, widths[j]), widths[j])
		}
		line := strings.Join(cells, colSep)
		if !opts.NoColor {
			line = valueStyle.Render(line)
		}
		b.WriteString(strings.TrimRight(num+colSep+line, " ") + "\n")
	}
	return b.String()
}

func naturalWidths(columns []string, rows [][]string) []int {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = runewidth.StringWidth(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) {
				if w := runewidth.StringWidth(cell); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	return widths
}

// shrinkWidest takes one cell at a time from the widest column until the
// columns fit in usable or every column is at minColWidth.
func shrinkWidest(widths []int, usable int) []int {
	out := append([]int(nil), widths...)
	sum := 0
	for _, w := range out {
		sum += w
	}
	for sum > usable {
		widest := -1
		for i, w := range out {
			if w > minColWidth && (widest < 0 || w > out[widest]) {
				widest = i
			}
		}
		if widest < 0 {
			break
		}
		out[widest]--
		sum--
	}
	return out
}

// RenderSpecRows renders the record detail grid as aligned label/value
// lines.
func RenderSpecRows(r catalog.Record, noColor bool) string {
	specs := r.Specs()
	labelWidth := 0
	for _, s := range specs {
		if w := runewidth.StringWidth(s.Label); w > labelWidth {
			labelWidth = w
		}
	}
	var b strings.Builder
	for _, s := range specs {
		label := padRight(s.Label, labelWidth)
		val := s.Value
		if !noColor {
			label = keyStyle.Render(label)
			val = valueStyle.Render(val)
		}
		b.WriteString(label + colSep + val + "\n")
	}
	return b.String()
}

// CardOptions configures RenderCard.
type CardOptions struct {
	NoColor bool
	// Counter is shown next to the title, e.g. "2/5".
	Counter string
}

// MediaLines returns the image and video lines shown under a record.
func MediaLines(r catalog.Record) []string {
	lines := make([]string, 0, 2)
	if img, ok := r.Image(); ok {
		lines = append(lines, "Image: "+img)
	} else {
		lines = append(lines, "No image")
	}
	if vid, ok := r.Video(); ok {
		lines = append(lines, "Video: "+vid)
	} else {
		lines = append(lines, "No video link for this diamond.")
	}
	return lines
}

// RenderCard renders a single record as plain text: title, subtitle, spec
// grid and media lines.
func RenderCard(r catalog.Record, opts CardOptions) string {
	var b strings.Builder
	title := r.Title()
	if opts.Counter != "" {
		title += "  (" + opts.Counter + ")"
	}
	if !opts.NoColor {
		title = headerStyle.Render(title)
	}
	b.WriteString(title + "\n")
	b.WriteString(r.Subtitle() + "\n\n")
	b.WriteString(RenderSpecRows(r, opts.NoColor))
	b.WriteString("\n")
	for _, line := range MediaLines(r) {
		b.WriteString(line + "\n")
	}
	return b.String()
}
