package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/destiny/pkg/catalog"
	"github.com/oakwood-commons/destiny/pkg/loader"
)

// FormatYAMLRecords renders records as a YAML sequence with 2-space indent.
func FormatYAMLRecords(records []catalog.Record) (string, error) {
	if records == nil {
		records = []catalog.Record{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	return buf.String(), nil
}

// FormatJSONRecords renders records as an indented JSON array, the same
// shape the loader reads.
func FormatJSONRecords(records []catalog.Record) (string, error) {
	if records == nil {
		records = []catalog.Record{}
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return string(b), nil
}

// FormatNDJSONRecords renders one compact JSON record per line.
func FormatNDJSONRecords(records []catalog.Record) (string, error) {
	var b strings.Builder
	for i, r := range records {
		line, err := json.Marshal(r)
		if err != nil {
			return "", fmt.Errorf("encode record %d: %w", i, err)
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// FormatTOMLRecords renders records as a [[diamonds]] array of tables.
func FormatTOMLRecords(records []catalog.Record) (string, error) {
	doc := map[string][]catalog.Record{loader.TOMLTable: records}
	if records == nil {
		doc[loader.TOMLTable] = []catalog.Record{}
	}
	b, err := toml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encode toml: %w", err)
	}
	return string(b), nil
}
