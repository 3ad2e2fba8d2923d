// Package browse implements the collection browsing engine: a free-text
// query over a record collection, the derived filtered view, and a cursor
// that steps through it one record at a time.
package browse

import (
	"fmt"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/destiny/pkg/catalog"
)

// Engine holds the browsing state for a single session. It is not safe for
// concurrent use; callers mutate it from one goroutine (the UI update loop).
type Engine struct {
	collection []catalog.Record
	query      string
	filtered   []catalog.Record
	position   int

	log logr.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithRecords seeds the engine with an initial collection.
func WithRecords(records []catalog.Record) Option {
	return func(e *Engine) {
		e.collection = records
	}
}

// WithQuery seeds the engine with an initial query.
func WithQuery(query string) Option {
	return func(e *Engine) {
		e.query = query
	}
}

// WithLogger sets the logger used for recomputation traces (V(1)).
func WithLogger(lgr logr.Logger) Option {
	return func(e *Engine) {
		e.log = lgr
	}
}

// New creates an Engine. Without options it starts empty with no query.
func New(opts ...Option) *Engine {
	e := &Engine{log: logr.Discard()}
	for _, opt := range opts {
		opt(e)
	}
	e.refresh()
	return e
}

// refresh derives the filtered view and then repairs the position. Every
// mutation of collection or query goes through here.
func (e *Engine) refresh() {
	prevLen := len(e.filtered)
	e.filtered = Filter(e.collection, e.query)
	e.position = RepairPosition(e.position, len(e.filtered))
	e.log.V(1).Info("filtered view recomputed",
		"query", e.query,
		"total", len(e.collection),
		"filtered", len(e.filtered),
		"previousFiltered", prevLen,
		"position", e.position)
}

// SetCollection replaces the collection. The position is left alone except
// for the clamp applied when the filtered view shrinks.
func (e *Engine) SetCollection(records []catalog.Record) {
	e.collection = records
	e.refresh()
}

// SetQuery stores the raw query and restarts at the first match.
func (e *Engine) SetQuery(text string) {
	e.query = text
	e.position = 0
	e.refresh()
}

// Prev moves to the previous match, wrapping from the first to the last.
func (e *Engine) Prev() {
	n := len(e.filtered)
	if n == 0 {
		return
	}
	e.position = (e.position - 1 + n) % n
}

// Next moves to the next match, wrapping from the last to the first.
func (e *Engine) Next() {
	n := len(e.filtered)
	if n == 0 {
		return
	}
	e.position = (e.position + 1) % n
}

// Current returns the record under the cursor. ok is false when the
// filtered view is empty.
func (e *Engine) Current() (rec catalog.Record, ok bool) {
	if len(e.filtered) == 0 {
		return catalog.Record{}, false
	}
	return e.filtered[e.position], true
}

// Position returns the cursor index into the filtered view.
func (e *Engine) Position() int { return e.position }

// Query returns the raw query as last set.
func (e *Engine) Query() string { return e.query }

// FilteredCount returns the size of the filtered view.
func (e *Engine) FilteredCount() int { return len(e.filtered) }

// TotalCount returns the size of the collection.
func (e *Engine) TotalCount() int { return len(e.collection) }

// Filtered returns the filtered view. Callers must not modify it.
func (e *Engine) Filtered() []catalog.Record { return e.filtered }

// Collection returns the loaded collection. Callers must not modify it.
func (e *Engine) Collection() []catalog.Record { return e.collection }

// Counter renders the 1-based "i/n" indicator, or "" when nothing matches.
func (e *Engine) Counter() string {
	if len(e.filtered) == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", e.position+1, len(e.filtered))
}

// View is a read-only snapshot of the engine for renderers.
type View struct {
	Query         string
	TotalCount    int
	FilteredCount int
	Position      int
	Current       catalog.Record
	HasCurrent    bool
}

// Snapshot captures the current render state.
func (e *Engine) Snapshot() View {
	cur, ok := e.Current()
	return View{
		Query:         e.query,
		TotalCount:    len(e.collection),
		FilteredCount: len(e.filtered),
		Position:      e.position,
		Current:       cur,
		HasCurrent:    ok,
	}
}

// String returns a representation for debugging.
func (e *Engine) String() string {
	return fmt.Sprintf("Engine[total=%d, filtered=%d, position=%d, query=%q]",
		len(e.collection), len(e.filtered), e.position, e.query)
}
