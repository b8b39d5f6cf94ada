package commands

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed all:templates
var templateFS embed.FS

// dotfiles are stored without their leading dot so tooling ignores them
// inside the module.
var dotfiles = map[string]string{
	"gitignore": ".gitignore",
	"gitkeep":   ".gitkeep",
}

// templateFile is one file of an embedded project template.
type templateFile struct {
	src string // path inside templateFS
	rel string // slash-separated target path, dotfiles restored
}

// templateFiles lists the files of a template in walk order.
func templateFiles(name string) ([]templateFile, error) {
	root := path.Join("templates", name)
	var files []templateFile
	err := fs.WalkDir(templateFS, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel := strings.TrimPrefix(p, root+"/")
		if dot, ok := dotfiles[path.Base(rel)]; ok {
			rel = path.Join(path.Dir(rel), dot)
		}
		files = append(files, templateFile{src: p, rel: rel})
		return nil
	})
	return files, err
}

// copyTemplate writes a template into targetDir. Existing files are kept
// unless force is set. It returns the target paths that were written.
func copyTemplate(name, targetDir string, force bool) ([]string, error) {
	files, err := templateFiles(name)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, f := range files {
		target := filepath.Join(targetDir, filepath.FromSlash(f.rel))
		if !force {
			if _, err := os.Stat(target); err == nil {
				continue
			}
		}
		content, err := templateFS.ReadFile(f.src)
		if err != nil {
			return nil, err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
			return nil, err
		}
		if err := os.WriteFile(target, content, 0600); err != nil {
			return nil, err
		}
		written = append(written, f.rel)
	}
	return written, nil
}

// groupTemplateFiles splits written files into migrations and config for
// display. Placeholder files are left out.
func groupTemplateFiles(files []string) (cfg, migrations []string) {
	for _, f := range files {
		switch {
		case path.Base(f) == ".gitkeep":
		case strings.HasPrefix(f, "migrations/"):
			migrations = append(migrations, f)
		default:
			cfg = append(cfg, f)
		}
	}
	return cfg, migrations
}
