package routes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func write(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestRoutePath(t *testing.T) {
	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"_index.md", "/", true},
		{"about.md", "/about/", true},
		{"admin.seo.md", "/admin/seo/", true},
		{"docs._index.md", "/docs/", true},
		{"tags.$name.md", "/tags/:name/", true},
		{"$.md", "", false},
		{"notes.txt", "", false},
		{".draft.md", "", false},
		{"a..b.md", "", false},
	}
	for _, tt := range tests {
		got, ok := RoutePath(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("RoutePath(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParsePage(t *testing.T) {
	fm, body, err := ParsePage([]byte("---\ntitle: SEO\ndescription: Search settings\n---\n# Heading\n"))
	require.NoError(t, err)
	assert.Equal(t, "SEO", fm.Title)
	assert.Equal(t, "Search settings", fm.Description)
	assert.Equal(t, "# Heading\n", body)

	fm, body, err = ParsePage([]byte("plain body"))
	require.NoError(t, err)
	assert.Empty(t, fm.Title)
	assert.Equal(t, "plain body", body)

	_, _, err = ParsePage([]byte("---\ntitle: x\n"))
	assert.Error(t, err)
}

func TestParsePageDelimiters(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		title   string
		body    string
		wantErr bool
	}{
		{name: "empty header", input: "---\n---\n# Hello\n", body: "# Hello\n"},
		{name: "closer at end of file", input: "---\ntitle: A\n---", title: "A"},
		{name: "closer with trailing space", input: "---\ntitle: A\n---  \nbody", title: "A", body: "body"},
		{name: "crlf", input: "---\r\ntitle: A\r\n---\r\nbody\r\n", title: "A", body: "body\n"},
		{name: "dashes inside value", input: "---\ntitle: a---b\n---\nbody", title: "a---b", body: "body"},
		{name: "closer must be a whole line", input: "---\ntitle: A\n---body starts\n", wantErr: true},
		{name: "rule in body stays in body", input: "---\ntitle: A\n---\none\n---\ntwo", title: "A", body: "one\n---\ntwo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fm, body, err := ParsePage([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.title, fm.Title)
			assert.Equal(t, tt.body, body)
		})
	}
}

func TestTableKeepsPageWithEmptyHeader(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "admin.seo.md"), "---\n---\n# SEO\n")

	pages := Table(zap.NewNop(), root)
	require.Len(t, pages, 1)
	assert.Equal(t, "/admin/seo/", pages[0].Path)
	assert.Equal(t, "admin.seo", pages[0].Title)
}

func TestAggregateUsesPluginConvention(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "seo_plugin"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets"), 0o755))

	got := Aggregate(zap.NewNop(), root)
	assert.Equal(t, []string{filepath.Join(root, "seo_plugin")}, got)
}

func TestAggregateMissingRoot(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	got := Aggregate(zap.New(core), filepath.Join(t.TempDir(), "missing"))
	assert.Empty(t, got)
	assert.Equal(t, 1, logs.FilterMessage("plugin route roots unavailable").Len())
}

func TestTableCoreRootWins(t *testing.T) {
	core := t.TempDir()
	plug := filepath.Join(t.TempDir(), "seo_plugin")
	write(t, filepath.Join(core, "about.md"), "---\ntitle: About us\n---\ncore")
	write(t, filepath.Join(plug, "about.md"), "plugin")
	write(t, filepath.Join(plug, "admin.seo.md"), "---\ntitle: SEO\n---\nseo body")
	write(t, filepath.Join(plug, "plugin.yaml"), "pluginName: SEO")

	obs, logs := observer.New(zap.DebugLevel)
	pages := Table(zap.New(obs), core, plug, filepath.Join(core, "missing"))
	require.Len(t, pages, 2)

	byPath := map[string]Page{}
	for _, p := range pages {
		byPath[p.Path] = p
	}
	assert.Equal(t, "core", byPath["/about/"].Body)
	assert.Equal(t, "About us", byPath["/about/"].Title)
	assert.False(t, byPath["/about/"].Admin())
	assert.Equal(t, "seo body", byPath["/admin/seo/"].Body)
	assert.True(t, byPath["/admin/seo/"].Admin())
	assert.Equal(t, 1, logs.FilterMessage("route already defined").Len())
}

func TestLoadPageDefaultTitle(t *testing.T) {
	file := filepath.Join(t.TempDir(), "contact.md")
	write(t, file, "hello")
	p, err := LoadPage(file)
	require.NoError(t, err)
	assert.Equal(t, "contact", p.Title)
}
