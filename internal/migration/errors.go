package migration

import (
	"fmt"
	"strings"
)

// DecodeError is a problem found in a migration document.
type DecodeError struct {
	File string
	Line int
	Msg  string
}

func (e *DecodeError) Error() string {
	switch {
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	case e.File != "":
		return fmt.Sprintf("%s: %s", e.File, e.Msg)
	default:
		return e.Msg
	}
}

// DecodeErrors is every problem found in one document.
type DecodeErrors []*DecodeError

func (es DecodeErrors) Error() string {
	msgs := make([]string, len(es))
	for i, e := range es {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// DuplicateVersionError is returned when two documents share a version.
type DuplicateVersionError struct {
	Version int64
	Files   []string
}

func (e *DuplicateVersionError) Error() string {
	return fmt.Sprintf("duplicate migration version %d in %s", e.Version, strings.Join(e.Files, ", "))
}
