// Package scaffold renders a new plugin directory from embedded templates.
package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"go/format"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/gjc14/webie/discovery"
)

// Templates contains the plugin template files. Files use text/template
// syntax and carry a .tmpl suffix; "__name__" in a file name is replaced
// with the plugin name.
//
//go:embed all:templates
var Templates embed.FS

const templateRoot = "templates"

// DefaultIcon is used for the admin route of a new plugin.
const DefaultIcon = "plug"

var reName = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// Data holds the variables passed to every template.
type Data struct {
	Name    string // e.g. "gallery"
	ID      string // directory name, e.g. "gallery_plugin"
	Package string
	Title   string
	Icon    string
}

// NewData validates name and derives the template variables from it.
func NewData(name string) (Data, error) {
	if !reName.MatchString(name) {
		return Data{}, fmt.Errorf("scaffold: plugin name %q must be lowercase letters and digits", name)
	}
	return Data{
		Name:    name,
		ID:      name + discovery.Default.Suffix,
		Package: name,
		Title:   strings.ToUpper(name[:1]) + name[1:],
		Icon:    DefaultIcon,
	}, nil
}

// Plugin renders the templates into root/<name>_plugin and returns the
// created files. It refuses to overwrite an existing directory.
func Plugin(root string, data Data) ([]string, error) {
	dir := filepath.Join(root, data.ID)
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("scaffold: %s already exists", dir)
	}

	var created []string
	err := fs.WalkDir(Templates, templateRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, templateRoot), "/")
		out := filepath.Join(dir, filepath.FromSlash(strings.TrimSuffix(rel, ".tmpl")))
		out = strings.ReplaceAll(out, "__name__", data.Name)
		if d.IsDir() {
			return os.MkdirAll(out, 0o755)
		}

		content, err := Templates.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		tmpl, err := template.New(path.Base(p)).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", p, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("execute template %s: %w", p, err)
		}
		src := buf.Bytes()
		if strings.HasSuffix(out, ".go") {
			if src, err = format.Source(src); err != nil {
				return fmt.Errorf("format %s: %w", out, err)
			}
		}
		if err := os.WriteFile(out, src, 0o644); err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		created = append(created, out)
		return nil
	})
	if err != nil {
		return created, fmt.Errorf("scaffold: %w", err)
	}
	return created, nil
}
