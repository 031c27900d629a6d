// Package routes builds the flat page route table from route roots.
//
// A route root is a directory of markdown files; each file is one route,
// named by its path with dots for slashes:
//
//	_index.md        -> /
//	about.md         -> /about/
//	admin.seo.md     -> /admin/seo/
//	docs._index.md   -> /docs/
//	tags.$name.md    -> /tags/:name/
//
// Plugin directories are route roots too, found by Aggregate.
package routes

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/gjc14/webie/discovery"
)

const pageExt = ".md"

// Page is one file-backed route.
type Page struct {
	Path        string // route path with trailing slash
	File        string
	Title       string
	Description string
	Body        string // markdown without front matter
}

// Admin reports whether the page lives under the admin root.
func (p Page) Admin() bool {
	return p.Path == "/admin/" || strings.HasPrefix(p.Path, "/admin/")
}

// FrontMatter is the optional YAML header of a page.
type FrontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// Aggregate lists the plugin directories under root that should be merged
// into the route table. It never fails: an unreadable root is logged and
// yields no extra roots.
func Aggregate(log *zap.Logger, root string) []string {
	dirs, err := discovery.Default.Dirs(root)
	if err != nil {
		log.Warn("plugin route roots unavailable", zap.Error(err))
		return nil
	}
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		out = append(out, d.Path)
	}
	return out
}

// Table reads every route root in order and returns the pages. When two
// files map to the same path the earlier root wins. Missing roots are
// skipped; unreadable pages are logged and skipped.
func Table(log *zap.Logger, roots ...string) []Page {
	var pages []Page
	seen := make(map[string]string)
	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Warn("route root unreadable", zap.String("root", root), zap.Error(err))
			}
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			path, ok := RoutePath(e.Name())
			if !ok {
				continue
			}
			file := filepath.Join(root, e.Name())
			if prev, dup := seen[path]; dup {
				log.Warn("route already defined",
					zap.String("path", path),
					zap.String("file", file),
					zap.String("kept", prev))
				continue
			}
			page, err := LoadPage(file)
			if err != nil {
				log.Error("route page skipped", zap.String("file", file), zap.Error(err))
				continue
			}
			page.Path = path
			seen[path] = file
			pages = append(pages, page)
		}
	}
	return pages
}

// RoutePath maps a page file name to its route path. It reports false for
// files that are not pages.
func RoutePath(name string) (string, bool) {
	if strings.HasPrefix(name, ".") || !strings.HasSuffix(name, pageExt) {
		return "", false
	}
	segs := strings.Split(strings.TrimSuffix(name, pageExt), ".")
	if segs[len(segs)-1] == "_index" {
		segs = segs[:len(segs)-1]
	}
	for i, s := range segs {
		if s == "" || s == "$" || strings.ContainsAny(s, "/\\:") {
			return "", false
		}
		if strings.HasPrefix(s, "$") {
			segs[i] = ":" + s[1:]
		}
	}
	if len(segs) == 0 {
		return "/", true
	}
	return "/" + strings.Join(segs, "/") + "/", true
}

// LoadPage reads a page file and splits off its front matter.
func LoadPage(file string) (Page, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return Page{}, err
	}
	fm, body, err := ParsePage(data)
	if err != nil {
		return Page{}, fmt.Errorf("%s: %w", file, err)
	}
	title := fm.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(file), pageExt)
	}
	return Page{File: file, Title: title, Description: fm.Description, Body: body}, nil
}

// ParsePage splits an optional "---" delimited YAML header from body.
func ParsePage(data []byte) (FrontMatter, string, error) {
	var fm FrontMatter
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(text, "---\n") {
		return fm, text, nil
	}
	rest := text[len("---\n"):]
	header, body, ok := splitHeader(rest)
	if !ok {
		return fm, "", fmt.Errorf("unterminated front matter")
	}
	if strings.TrimSpace(header) != "" {
		if err := yaml.NewDecoder(strings.NewReader(header)).Decode(&fm); err != nil {
			return fm, "", fmt.Errorf("front matter: %w", err)
		}
	}
	return fm, body, nil
}

// splitHeader finds the first line of rest that is exactly "---" and
// returns the text before and after it.
func splitHeader(rest string) (header, body string, ok bool) {
	for off := 0; off <= len(rest); {
		line, next := rest[off:], len(rest)
		if nl := strings.IndexByte(line, '\n'); nl >= 0 {
			line, next = line[:nl], off+nl+1
		}
		if strings.TrimRight(line, " \t") == "---" {
			return rest[:off], rest[next:], true
		}
		if next == len(rest) {
			break
		}
		off = next
	}
	return "", "", false
}
