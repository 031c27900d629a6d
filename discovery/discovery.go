// Package discovery enumerates plugin directories under a plugin root.
//
// A plugin is a directory whose name ends in the convention suffix. It may
// hold a compiled config file, a declarative manifest, and flat-route pages.
// Every consumer (the runtime loader, the route aggregator and the
// registry generator) scans through the same Convention value so they
// cannot disagree on what counts as a plugin.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Convention describes how plugin directories and their files are named.
type Convention struct {
	Suffix       string // directory name suffix, e.g. "_plugin"
	ConfigFile   string // compiled config source inside a plugin dir
	ManifestFile string // declarative config inside a plugin dir
}

// Default is the convention used throughout webie.
var Default = Convention{
	Suffix:       "_plugin",
	ConfigFile:   "config.go",
	ManifestFile: "plugin.yaml",
}

// Dir is one plugin directory.
type Dir struct {
	ID   string // directory name, e.g. "blog_plugin"
	Path string
}

// Candidate is a plugin directory holding the file being looked for.
type Candidate struct {
	Dir
	File string // full path to the located file
}

// Dirs lists the plugin directories directly under root, in directory
// listing order. A missing or unreadable root is returned as an error; the
// caller decides how loudly to degrade.
func (c Convention) Dirs(root string) ([]Dir, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("discovery: read plugin root %s: %w", root, err)
	}
	var dirs []Dir
	for _, e := range entries {
		if !c.matches(root, e) {
			continue
		}
		dirs = append(dirs, Dir{ID: e.Name(), Path: filepath.Join(root, e.Name())})
	}
	return dirs, nil
}

// Scan returns the plugin directories under root that contain file.
// Directories without it are skipped silently.
func (c Convention) Scan(root, file string) ([]Candidate, error) {
	dirs, err := c.Dirs(root)
	if err != nil {
		return nil, err
	}
	var out []Candidate
	for _, d := range dirs {
		p := filepath.Join(d.Path, file)
		fi, err := os.Stat(p)
		if err != nil || fi.IsDir() {
			continue
		}
		out = append(out, Candidate{Dir: d, File: p})
	}
	return out, nil
}

// Configs is Scan for the compiled config file.
func (c Convention) Configs(root string) ([]Candidate, error) {
	return c.Scan(root, c.ConfigFile)
}

// Manifests is Scan for the declarative manifest file.
func (c Convention) Manifests(root string) ([]Candidate, error) {
	return c.Scan(root, c.ManifestFile)
}

// Name strips the suffix from a plugin directory ID ("blog_plugin" -> "blog").
func (c Convention) Name(id string) string {
	return strings.TrimSuffix(id, c.Suffix)
}

func (c Convention) matches(root string, e os.DirEntry) bool {
	name := e.Name()
	if !strings.HasSuffix(name, c.Suffix) || name == c.Suffix {
		return false
	}
	if strings.HasPrefix(name, ".") {
		return false
	}
	if e.IsDir() {
		return true
	}
	// Follow symlinked plugin directories.
	if e.Type()&os.ModeSymlink != 0 {
		fi, err := os.Stat(filepath.Join(root, name))
		return err == nil && fi.IsDir()
	}
	return false
}
