package browse

import (
	"strings"

	"github.com/oakwood-commons/destiny/pkg/catalog"
)

// NormalizeQuery trims and lowercases a raw query.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Filter returns the records whose search text contains the query as a
// literal substring. An empty query returns records unchanged. Surviving
// records keep their original order.
func Filter(records []catalog.Record, query string) []catalog.Record {
	q := NormalizeQuery(query)
	if q == "" {
		return records
	}
	out := make([]catalog.Record, 0, len(records))
	for _, r := range records {
		if strings.Contains(r.SearchText(), q) {
			out = append(out, r)
		}
	}
	return out
}

// RepairPosition clamps a position into [0, length). Length zero always
// yields zero.
func RepairPosition(position, length int) int {
	if length <= 0 {
		return 0
	}
	if position < 0 {
		return 0
	}
	if position > length-1 {
		return length - 1
	}
	return position
}
