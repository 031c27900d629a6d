package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gjc14/webie/codegen"
	"github.com/gjc14/webie/routes"
)

func TestNewData(t *testing.T) {
	d, err := NewData("gallery")
	require.NoError(t, err)
	assert.Equal(t, Data{Name: "gallery", ID: "gallery_plugin", Package: "gallery", Title: "Gallery", Icon: "plug"}, d)

	for _, bad := range []string{"", "Gallery", "my-gallery", "9lives", "a_b"} {
		_, err := NewData(bad)
		assert.Error(t, err, bad)
	}
}

func TestPlugin(t *testing.T) {
	root := t.TempDir()
	d, err := NewData("gallery")
	require.NoError(t, err)

	created, err := Plugin(root, d)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "gallery_plugin", "config.go"),
		filepath.Join(root, "gallery_plugin", "admin.gallery.md"),
	}, created)

	src, err := os.ReadFile(filepath.Join(root, "gallery_plugin", "config.go"))
	require.NoError(t, err)
	assert.Contains(t, string(src), "package gallery")
	assert.Contains(t, string(src), `PluginName: "Gallery"`)

	page, err := routes.LoadPage(filepath.Join(root, "gallery_plugin", "admin.gallery.md"))
	require.NoError(t, err)
	assert.Equal(t, "Gallery", page.Title)

	// The generator must accept what the scaffold writes.
	res, err := codegen.Generate(codegen.Options{Root: root, ModulePath: "example.com/site/plugins", Package: "plugins"})
	require.NoError(t, err)
	assert.Empty(t, res.Problems)
	require.Len(t, res.Plugins, 1)
	assert.Equal(t, "gallery_plugin", res.Plugins[0].ID)

	_, err = Plugin(root, d)
	assert.Error(t, err, "existing directory is not overwritten")
}
