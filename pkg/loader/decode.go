package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/destiny/pkg/catalog"
)

// Format identifies a dataset encoding.
type Format string

const (
	FormatAuto   Format = ""
	FormatJSON   Format = "json"
	FormatNDJSON Format = "ndjson"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
)

// TOMLTable is the array-of-tables name holding records in TOML datasets.
const TOMLTable = "diamonds"

var (
	tomlSectionPattern  = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// FormatFromName maps a file name or URL path extension to a Format.
// Unknown extensions return FormatAuto.
func FormatFromName(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".ndjson", ".jsonl":
		return FormatNDJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatAuto
	}
}

// DetectFormat sniffs the content of a dataset.
func DetectFormat(data []byte) Format {
	input := strings.TrimSpace(string(data))
	if input == "" {
		return FormatJSON
	}
	if strings.Contains(input, "\n---") || strings.HasPrefix(input, "---") {
		return FormatYAML
	}
	lines := strings.Split(input, "\n")
	if len(lines) > 1 && isLikelyNDJSON(lines) {
		return FormatNDJSON
	}
	// TOML [[diamonds]] headers look like JSON arrays, so check TOML first.
	if isLikelyTOML(lines) {
		return FormatTOML
	}
	if strings.HasPrefix(input, "[") || strings.HasPrefix(input, "{") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode parses a dataset into records. FormatAuto sniffs the content.
func Decode(data []byte, format Format) ([]catalog.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("empty dataset")
	}
	if format == FormatAuto {
		format = DetectFormat(data)
	}
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatNDJSON:
		return decodeNDJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	case FormatTOML:
		return decodeTOML(data)
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}
}

// decodeJSON accepts an array of records or a single record object.
func decodeJSON(data []byte) ([]catalog.Record, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("{")) {
		var rec catalog.Record
		if err := json.Unmarshal(trimmed, &rec); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return []catalog.Record{rec}, nil
	}
	var records []catalog.Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if records == nil {
		records = []catalog.Record{}
	}
	return records, nil
}

// decodeNDJSON parses one record per non-blank line.
func decodeNDJSON(data []byte) ([]catalog.Record, error) {
	lines := strings.Split(string(data), "\n")
	records := make([]catalog.Record, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var rec catalog.Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return nil, fmt.Errorf("invalid NDJSON on line %d: %w", i+1, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// decodeYAML accepts a sequence of records in one document, or one record
// per document in a multi-document stream.
func decodeYAML(data []byte) ([]catalog.Record, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	records := []catalog.Record{}
	for doc := 1; ; doc++ {
		var node yaml.Node
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("invalid YAML document %d: %w", doc, err)
		}
		if len(node.Content) == 0 {
			continue
		}
		body := node.Content[0]
		switch body.Kind {
		case yaml.SequenceNode:
			var batch []catalog.Record
			if err := body.Decode(&batch); err != nil {
				return nil, fmt.Errorf("invalid YAML document %d: %w", doc, err)
			}
			records = append(records, batch...)
		case yaml.MappingNode:
			var rec catalog.Record
			if err := body.Decode(&rec); err != nil {
				return nil, fmt.Errorf("invalid YAML document %d: %w", doc, err)
			}
			records = append(records, rec)
		default:
			return nil, fmt.Errorf("invalid YAML document %d: expected a record or a list of records", doc)
		}
	}
	return records, nil
}

// decodeTOML reads the [[diamonds]] array of tables.
func decodeTOML(data []byte) ([]catalog.Record, error) {
	var doc struct {
		Diamonds []catalog.Record `toml:"diamonds"`
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	if doc.Diamonds == nil {
		return []catalog.Record{}, nil
	}
	return doc.Diamonds, nil
}

// isLikelyNDJSON requires several lines, most of them starting with '{'.
// A pretty-printed JSON array starts with '[' and its inner lines are mostly
// fields, so it does not qualify.
func isLikelyNDJSON(lines []string) bool {
	objCount := 0
	nonEmptyCount := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		nonEmptyCount++
		if strings.HasPrefix(trimmed, "{") && strings.HasSuffix(trimmed, "}") {
			objCount++
		}
	}
	return nonEmptyCount > 1 && objCount > nonEmptyCount/2
}

// isLikelyTOML looks for section headers or a majority of key = value lines.
func isLikelyTOML(lines []string) bool {
	sectionCount := 0
	keyValueCount := 0
	nonEmptyCount := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmptyCount++
		if tomlSectionPattern.MatchString(line) {
			sectionCount++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValueCount++
		}
	}
	if sectionCount > 0 {
		return true
	}
	return nonEmptyCount > 0 && keyValueCount > nonEmptyCount/2
}
