package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader reads migration documents from disk.
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a loader. A nil logger discards output.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Loader{logger: logger}
}

// IsMigrationFile reports whether path has a migration document extension.
func IsMigrationFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Parse decodes one document. All problems are returned together as DecodeErrors.
func (l *Loader) Parse(file string, data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, DecodeErrors{{File: file, Msg: err.Error()}}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, DecodeErrors{{File: file, Msg: "empty migration document"}}
	}

	d := &decoder{file: file}
	doc := d.document(root.Content[0])
	if len(d.errs) > 0 {
		return nil, d.errs
	}

	l.logger.Debug("parsed migration",
		slog.String("file", file),
		slog.Int64("version", doc.Version),
		slog.Int("up", len(doc.Up)),
		slog.Bool("explicit_down", doc.HasExplicitDown()))
	return doc, nil
}

// LoadFile reads and decodes a single file.
func (l *Loader) LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the user
	if err != nil {
		return nil, fmt.Errorf("failed to read migration: %w", err)
	}
	return l.Parse(path, data)
}

// LoadPaths loads files and the migration files directly inside directories.
// Documents are returned sorted by version. Every file is attempted; the
// errors of all failing files are joined.
func (l *Loader) LoadPaths(paths []string) ([]*Document, error) {
	files, err := l.Files(paths)
	if err != nil {
		return nil, err
	}

	docs := make([]*Document, 0, len(files))
	var errs []error
	for _, f := range files {
		doc, err := l.LoadFile(f)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		docs = append(docs, doc)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	sort.SliceStable(docs, func(i, j int) bool { return docs[i].Version < docs[j].Version })
	for i := 1; i < len(docs); i++ {
		if docs[i].Version == docs[i-1].Version {
			return nil, &DuplicateVersionError{Version: docs[i].Version, Files: []string{docs[i-1].File, docs[i].File}}
		}
	}

	l.logger.Info("loaded migrations", slog.Int("count", len(docs)))
	return docs, nil
}

// Files expands paths into migration files. Directories contribute the
// migration files directly inside them, in name order.
func (l *Loader) Files(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", p, err)
		}
		found := 0
		for _, e := range entries {
			if e.IsDir() || !IsMigrationFile(e.Name()) {
				continue
			}
			files = append(files, filepath.Join(p, e.Name()))
			found++
		}
		l.logger.Debug("scanned migrations directory", slog.String("dir", p), slog.Int("files", found))
	}
	return files, nil
}
