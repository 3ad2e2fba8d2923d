// Package cel compiles CEL expressions that pre-select catalog records
// before they reach the browsing engine.
package cel

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"

	"github.com/oakwood-commons/destiny/pkg/catalog"
)

// Shorthand variables bound next to "_" for every record.
var shorthand = []string{
	"shape", "carat", "color", "clarity",
	"cut", "polish", "symmetry", "fluro", "ratio",
	"has_video", "has_image",
}

// Selector is a compiled boolean expression over a single record.
// The record is bound to "_" with its dataset column names
// (_.Shape, _["Video Link"]) and to the lowercase shorthand variables.
type Selector struct {
	expr string
	prg  cel.Program
}

func newEnv() (*cel.Env, error) {
	opts := make([]cel.EnvOption, 0, 4+len(shorthand))
	opts = append(opts,
		cel.Variable("_", cel.DynType),
		cel.CrossTypeNumericComparisons(true),
		celext.Strings(),
		celext.Lists(),
		celext.Math(),
	)
	for _, name := range shorthand {
		opts = append(opts, cel.Variable(name, cel.DynType))
	}
	return cel.NewEnv(opts...)
}

// Compile parses and checks expr. An empty expression yields a nil
// Selector, which selects everything.
func Compile(expr string) (*Selector, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}
	env, err := newEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Selector{expr: expr, prg: prg}, nil
}

// String returns the source expression.
func (s *Selector) String() string {
	if s == nil {
		return ""
	}
	return s.expr
}

func activation(r catalog.Record) map[string]interface{} {
	m := r.ToMap()
	_, hasVideo := r.Video()
	_, hasImage := r.Image()
	return map[string]interface{}{
		"_":         m,
		"shape":     m["Shape"],
		"carat":     m["Carat"],
		"color":     m["Color"],
		"clarity":   m["Clarity"],
		"cut":       m["Cut"],
		"polish":    m["Pol"],
		"symmetry":  m["Sym"],
		"fluro":     m["Fluro"],
		"ratio":     m["Ratio"],
		"has_video": hasVideo,
		"has_image": hasImage,
	}
}

// Match evaluates the selector against one record.
func (s *Selector) Match(r catalog.Record) (bool, error) {
	if s == nil {
		return true, nil
	}
	out, _, err := s.prg.Eval(activation(r))
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := out.(types.Bool)
	if !ok {
		return false, fmt.Errorf("expression %q must evaluate to bool, got %s", s.expr, out.Type().TypeName())
	}
	return bool(b), nil
}

// Select returns the records matching the selector, in order. A nil
// Selector returns records unchanged.
func (s *Selector) Select(records []catalog.Record) ([]catalog.Record, error) {
	if s == nil {
		return records, nil
	}
	out := make([]catalog.Record, 0, len(records))
	for i, r := range records {
		ok, err := s.Match(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		if ok {
			out = append(out, r)
		}
	}
	return out, nil
}
