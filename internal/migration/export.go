package migration

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns a description into a file name fragment.
func Slug(description string) string {
	s := slugInvalid.ReplaceAllString(strings.ToLower(description), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "migration"
	}
	return s
}

// FileName is the plain SQL file name for one direction of doc.
func FileName(doc *Document, dir Direction) string {
	return fmt.Sprintf("%05d_%s.%s.sql", doc.Version, Slug(doc.Description), dir)
}

// GooseFileName is the file name goose expects for doc.
func GooseFileName(doc *Document) string {
	return fmt.Sprintf("%05d_%s.sql", doc.Version, Slug(doc.Description))
}

// WriteSQL writes a script as plain SQL, one statement per line.
// Compatibility errors become comments so the file stays executable.
func WriteSQL(w io.Writer, s *Script) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "-- migration %d: %s\n", s.Version, s.Description)
	fmt.Fprintf(bw, "-- dialect: %s, direction: %s\n", s.Dialect, s.Direction)
	writeStatements(bw, s, false)
	return bw.Flush()
}

// WriteGoose writes up and down scripts of one migration as a goose SQL file.
// down may be nil when the migration has no down section to export.
func WriteGoose(w io.Writer, up, down *Script) error {
	if up == nil {
		return errors.New("goose export requires an up script")
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "-- migration %d: %s (%s)\n", up.Version, up.Description, up.Dialect)
	bw.WriteString("-- +goose Up\n")
	writeStatements(bw, up, true)
	if down != nil {
		bw.WriteString("\n-- +goose Down\n")
		writeStatements(bw, down, true)
	}
	return bw.Flush()
}

func writeStatements(w *bufio.Writer, s *Script, goose bool) {
	for _, st := range s.Statements {
		if st.Compat != nil {
			fmt.Fprintf(w, "-- compatibility error (%s): %s\n", st.Kind, st.Compat.Message)
			continue
		}
		for _, sql := range st.Executable() {
			sql = strings.TrimRight(strings.TrimSpace(sql), ";")
			multiline := strings.Contains(sql, "\n")
			if goose && multiline {
				w.WriteString("-- +goose StatementBegin\n")
			}
			w.WriteString(sql)
			w.WriteString(";\n")
			if goose && multiline {
				w.WriteString("-- +goose StatementEnd\n")
			}
		}
	}
}
