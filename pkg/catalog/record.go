// Package catalog defines the diamond record model shared by the loader,
// the browsing engine and the presentation layers.
package catalog

import (
	"strconv"
	"strings"
)

// Record is a single catalog entry. Optional fields are nil when the source
// dataset leaves them out or sets them to null.
type Record struct {
	Shape        string   `json:"Shape" yaml:"Shape" toml:"Shape"`
	Carat        float64  `json:"Carat" yaml:"Carat" toml:"Carat"`
	Color        string   `json:"Color" yaml:"Color" toml:"Color"`
	Clarity      string   `json:"Clarity" yaml:"Clarity" toml:"Clarity"`
	Cut          *string  `json:"Cut" yaml:"Cut" toml:"Cut,omitempty"`
	Polish       *string  `json:"Pol" yaml:"Pol" toml:"Pol,omitempty"`
	Symmetry     *string  `json:"Sym" yaml:"Sym" toml:"Sym,omitempty"`
	Fluorescence *string  `json:"Fluro" yaml:"Fluro" toml:"Fluro,omitempty"`
	Ratio        *float64 `json:"Ratio" yaml:"Ratio" toml:"Ratio,omitempty"`
	VideoLink    *string  `json:"Video Link" yaml:"Video Link" toml:"Video Link,omitempty"`
	ImageLink    *string  `json:"Image Link" yaml:"Image Link" toml:"Image Link,omitempty"`
}

// Collection is the ordered set of loaded records.
type Collection []Record

// Placeholder is rendered for absent optional values.
const Placeholder = "—"

// FormatNumber renders a number using the shortest decimal form that round
// trips, so 1.0 becomes "1" and 0.10 becomes "0.1".
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func optString(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

func optNumber(f *float64) string {
	if f == nil {
		return ""
	}
	return FormatNumber(*f)
}

// SearchText returns the lowercase haystack used for query matching. Fields
// are joined by a single space in a fixed order; absent values contribute an
// empty string so the separator count never changes.
func (r Record) SearchText() string {
	parts := [...]string{
		strings.TrimSpace(r.Shape),
		FormatNumber(r.Carat),
		strings.TrimSpace(r.Color),
		strings.TrimSpace(r.Clarity),
		optString(r.Cut),
		optString(r.Polish),
		optString(r.Symmetry),
		optString(r.Fluorescence),
		optNumber(r.Ratio),
	}
	return strings.ToLower(strings.Join(parts[:], " "))
}

// Title is the card heading, e.g. "Round • 1 ct".
func (r Record) Title() string {
	return r.Shape + " • " + FormatNumber(r.Carat) + " ct"
}

// Subtitle is the card sub-heading, e.g. "Color D • Clarity VVS2".
func (r Record) Subtitle() string {
	return "Color " + r.Color + " • Clarity " + r.Clarity
}

// Alt describes the record in one line, used where an image cannot be shown.
func (r Record) Alt() string {
	return r.Shape + " " + FormatNumber(r.Carat) + "ct " + r.Color + " " + r.Clarity
}

// Spec is one labelled value in the record detail grid.
type Spec struct {
	Label string
	Value string
}

// Specs lists the detail grid rows in display order.
func (r Record) Specs() []Spec {
	orDash := func(s string) string {
		if s == "" {
			return Placeholder
		}
		return s
	}
	return []Spec{
		{Label: "Shape", Value: r.Shape},
		{Label: "Carat", Value: FormatNumber(r.Carat)},
		{Label: "Color", Value: r.Color},
		{Label: "Clarity", Value: r.Clarity},
		{Label: "Cut", Value: orDash(optString(r.Cut))},
		{Label: "Polish", Value: orDash(optString(r.Polish))},
		{Label: "Symmetry", Value: orDash(optString(r.Symmetry))},
		{Label: "Fluro", Value: orDash(optString(r.Fluorescence))},
		{Label: "Ratio", Value: orDash(optNumber(r.Ratio))},
	}
}

// HasLink reports whether a media link is usable. Datasets exported from
// spreadsheets mark missing links with sentinel words instead of leaving
// the cell empty.
func HasLink(link *string) bool {
	s := optString(link)
	if s == "" {
		return false
	}
	switch s {
	case "NONE", "NA", "N/A":
		return false
	}
	return true
}

// Video returns the usable video link, if any.
func (r Record) Video() (string, bool) {
	if !HasLink(r.VideoLink) {
		return "", false
	}
	return optString(r.VideoLink), true
}

// Image returns the usable image link, if any.
func (r Record) Image() (string, bool) {
	if !HasLink(r.ImageLink) {
		return "", false
	}
	return optString(r.ImageLink), true
}

// Str returns a pointer to s. Handy for building records in code and tests.
func Str(s string) *string { return &s }

// Num returns a pointer to f.
func Num(f float64) *float64 { return &f }

// ToMap converts the record into a generic map keyed by the dataset column
// names. Absent optional fields map to nil.
func (r Record) ToMap() map[string]interface{} {
	str := func(s *string) interface{} {
		if s == nil {
			return nil
		}
		return *s
	}
	num := func(f *float64) interface{} {
		if f == nil {
			return nil
		}
		return *f
	}
	return map[string]interface{}{
		"Shape":      r.Shape,
		"Carat":      r.Carat,
		"Color":      r.Color,
		"Clarity":    r.Clarity,
		"Cut":        str(r.Cut),
		"Pol":        str(r.Polish),
		"Sym":        str(r.Symmetry),
		"Fluro":      str(r.Fluorescence),
		"Ratio":      num(r.Ratio),
		"Video Link": str(r.VideoLink),
		"Image Link": str(r.ImageLink),
	}
}
