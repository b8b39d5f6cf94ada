package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapmigrate/pkg/expression"
)

// ErrDialectRequired is returned when a dialect is required but not provided.
var ErrDialectRequired = errors.New("dialect is required")

// ErrUnsupportedType is returned when a column type has no mapping in the dialect.
var ErrUnsupportedType = errors.New("unsupported column type")

// ErrUnsupportedSystemMethod is returned when a value names a system method
// the dialect has no native function for.
var ErrUnsupportedSystemMethod = errors.New("unsupported system method")

// ValidationError reports every validation failure of one expression.
type ValidationError struct {
	Kind   expression.Kind
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s expression: %s", e.Kind, strings.Join(e.Errors, "; "))
}

// UsageError reports an expression that was built incompletely by its caller.
type UsageError struct {
	Kind    expression.Kind
	Message string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// CompatibilityError is an expression the dialect cannot render in strict mode.
// It travels inside Result rather than through the error channel.
type CompatibilityError struct {
	Dialect string
	Kind    expression.Kind
	Message string
}

func (e *CompatibilityError) Error() string {
	return e.Message
}

// UnknownDialectError is returned when no registered dialect matches a name.
type UnknownDialectError struct {
	Name      string
	Available []string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q\nAvailable dialects: %v\nHint: Check the dialect setting in leapmigrate.yaml or the --dialect flag", e.Name, e.Available)
}

// AmbiguousDialectError is returned when several registered dialects share a name.
type AmbiguousDialectError struct {
	Name    string
	Matches []string
}

func (e *AmbiguousDialectError) Error() string {
	return fmt.Sprintf("dialect name %q is ambiguous\nMatching dialects: %v\nHint: Use the full dialect name", e.Name, e.Matches)
}
