// Package plugin loads, validates and merges plugin configurations.
//
// Plugins reach the loader through Sources: the compiled-in Registry, filled
// at startup by the generated plugins/registry_gen.go, and ManifestSource,
// which reads plugin.yaml files from the plugin root on every call. Each
// candidate is resolved to a tagged Entry. Broken plugins are logged and
// skipped so one misbehaving plugin never takes the others down.
package plugin

import (
	"context"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Config is the validated contribution of one plugin.
type Config struct {
	PluginName   string       `json:"pluginName,omitempty" yaml:"pluginName"`
	AdminRoutes  []AdminRoute `json:"adminRoutes,omitempty" yaml:"adminRoutes"`
	Dependencies []string     `json:"dependencies,omitempty" yaml:"dependencies"`
}

// AdminRoute is one navigation link in the admin sidebar.
// URL is relative to the admin root ("posts" -> /admin/posts/).
type AdminRoute struct {
	Title    string `json:"title,omitempty" yaml:"title"`
	URL      string `json:"url,omitempty" yaml:"url"`
	IconName string `json:"iconName,omitempty" yaml:"iconName"`
}

// Factory builds a plugin's Config. It is called once per load.
type Factory func() (Config, error)

// DocumentFunc reads a declarative plugin's raw config document. The loader
// validates the document before decoding it into a Config.
type DocumentFunc func() (any, error)

// Term is a taxonomy term with the number of posts using it.
type Term struct {
	Name  string
	Count int
}

// Host is the slice of the application compiled plugins may use from
// their routes.
type Host interface {
	Logger() *zap.Logger
	Terms(ctx context.Context) ([]Term, error)
	RenderAdmin(c echo.Context, title string, body templ.Component) error
}

// RouteFunc mounts plugin-owned handlers on the admin group.
type RouteFunc func(g *echo.Group, h Host)

// Registration is a compiled-in plugin.
type Registration struct {
	ID     string // plugin directory name, e.g. "blog_plugin"
	Dir    string // plugin directory relative to the module root
	Config Factory
	Routes RouteFunc
}
