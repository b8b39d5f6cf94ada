// Package migration loads YAML migration documents and renders them into
// ordered SQL scripts with a dialect generator.
package migration

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapmigrate/pkg/expression"
)

// Direction selects the up or down half of a migration.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection accepts up or down, case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Up:
		return Up, nil
	case Down:
		return Down, nil
	default:
		return "", fmt.Errorf("invalid direction %q: must be up or down", s)
	}
}

// Step is one expression of a document with the line it was declared on.
type Step struct {
	Expr expression.Expression
	Line int
}

// Document is one migration file.
type Document struct {
	File        string
	Version     int64
	Description string
	Up          []Step
	// Down is nil when the document omits it; it is then derived from Up.
	Down []Step
}

// HasExplicitDown reports whether the document declares its own down steps.
func (d *Document) HasExplicitDown() bool {
	return d.Down != nil
}

// Expressions returns the expressions to render for dir. A missing down
// section is derived by reversing the up steps.
func (d *Document) Expressions(dir Direction) ([]expression.Expression, error) {
	switch dir {
	case Up:
		return exprs(d.Up), nil
	case Down:
		if d.HasExplicitDown() {
			return exprs(d.Down), nil
		}
		down, err := expression.ReverseAll(exprs(d.Up))
		if err != nil {
			return nil, fmt.Errorf("%s: derive down steps: %w\nHint: add an explicit down section", d.File, err)
		}
		return down, nil
	default:
		return nil, fmt.Errorf("invalid direction %q", dir)
	}
}

func exprs(steps []Step) []expression.Expression {
	out := make([]expression.Expression, len(steps))
	for i, s := range steps {
		out[i] = s.Expr
	}
	return out
}

// Validate checks every step and returns one DecodeError per violation,
// pointing at the step's line.
func (d *Document) Validate() []*DecodeError {
	var errs []*DecodeError
	check := func(section string, steps []Step) {
		for i, s := range steps {
			for _, msg := range s.Expr.Validate() {
				errs = append(errs, &DecodeError{
					File: d.File,
					Line: s.Line,
					Msg:  fmt.Sprintf("%s step %d (%s): %s", section, i+1, s.Expr.Kind(), msg),
				})
			}
		}
	}
	check("up", d.Up)
	check("down", d.Down)
	return errs
}

// ValidateAll validates every document and returns all violations as
// DecodeErrors, or nil.
func ValidateAll(docs []*Document) error {
	var errs DecodeErrors
	for _, d := range docs {
		errs = append(errs, d.Validate()...)
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
