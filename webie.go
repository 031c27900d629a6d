// Package webie is a blog CMS built with Go, Echo, and templ, extended by
// convention-based plugins.
//
// Users provide their own templ components via the ViewFuncs struct, and
// webie handles the handler logic, middleware, storage and plugin wiring.
// Plugins live in directories named <name>_plugin under the plugin root:
// compiled plugins register through the generated registry, declarative
// ones ship a plugin.yaml, and both may contribute markdown pages.
package webie

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gjc14/webie/icons"
	"github.com/gjc14/webie/logger"
	"github.com/gjc14/webie/plugin"
	"github.com/gjc14/webie/routes"
)

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages.
type ViewFuncs struct {
	Home          func(site SiteConfig, meta PageMeta, posts []BlogPost, activeTag string, tags []string) templ.Component
	Post          func(site SiteConfig, meta PageMeta, post BlogPost, related []BlogPost) templ.Component
	Page          func(site SiteConfig, meta PageMeta, body templ.Component) templ.Component
	AdminLogin    func(site SiteConfig, showError bool, csrfToken string) templ.Component
	AdminShell    func(layout AdminLayout) templ.Component
	AdminHome     func(nav []plugin.AdminRoute) templ.Component
	AdminPosts    func(posts []BlogPost, message, csrfToken string) templ.Component
	AdminPostForm func(post BlogPost, csrfToken string) templ.Component
	AdminMedia    func(images []Image, message, csrfToken string) templ.Component
	NotFound      func() templ.Component
	ServerError   func() templ.Component
}

// App is the central webie application. It wires together the store,
// cache, plugin loader, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *PostCache
	Views  ViewFuncs
	Loader *plugin.Loader

	log          *zap.Logger
	logErr       error
	registry     *plugin.Registry
	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	staticDir    string
	pluginDir    string
	pagesDir     string
	pages        []routes.Page
	ready        bool
}

var _ plugin.Host = (*App)(nil)

// New creates a new webie App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		registry:  plugin.Default(),
		staticDir: cfg.StaticDir,
		pluginDir: cfg.PluginDir,
		pagesDir:  cfg.PagesDir,
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	if a.log == nil {
		a.log, a.logErr = logger.New(cfg.Log)
		if a.logErr != nil {
			a.log = zap.NewNop()
		}
	}
	return a
}

// Setup opens the store, builds the plugin loader and composes every route.
// Start calls it; tests call it directly and drive a.Echo.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if a.logErr != nil {
		return fmt.Errorf("webie: init logger: %w", a.logErr)
	}
	if err := a.Config.validate(); err != nil {
		return err
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("webie: init store: %w", err)
	}
	a.Store = store
	a.Cache = NewPostCache(a.Store, a.Config.PostCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	schema, err := plugin.NewSchema(icons.Names())
	if err != nil {
		return fmt.Errorf("webie: plugin schema: %w", err)
	}
	a.Loader = plugin.NewLoader(schema,
		[]plugin.Source{a.registry, plugin.NewManifestSource(a.pluginDir)},
		plugin.WithLogger(a.log.Named("plugins")))

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// Start runs Setup and serves until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.log.Info("listening", zap.String("addr", a.Config.Addr), zap.Int("pages", len(a.pages)))
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	var err error
	if a.loginLimiter != nil {
		a.loginLimiter.Close()
	}
	if a.Store != nil {
		err = a.Store.Close()
	}
	_ = a.log.Sync()
	return err
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/public/admin.css", a.handleAdminCSS)
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/blog", handleBlogRedirect)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handlePost)

	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)

	admin := e.Group("/admin", a.requireAdmin)
	admin.GET("/posts/", a.handleAdminPosts)
	admin.GET("/posts/new/", a.handleAdminNewPost)
	admin.GET("/posts/:slug/", a.handleAdminEditPost)
	admin.POST("/posts/", a.handleAdminSave)
	admin.POST("/posts/:slug/delete/", a.handleAdminDelete)
	admin.GET("/media/", a.handleMediaList)
	admin.POST("/media/", a.handleMediaUpload)
	admin.POST("/media/:filename/delete/", a.handleMediaDelete)

	entries := a.Loader.Resolve(context.Background())
	mounted := a.registry.Mount(admin, a, entries, a.log.Named("plugins"))
	a.mountPages(admin)
	a.log.Debug("routes composed", zap.Int("plugin_routes", mounted), zap.Int("pages", len(a.pages)))
}

// mountPages adds the flat-route pages of the core pages root and every
// plugin directory. Paths already taken by a handler keep that handler.
func (a *App) mountPages(admin *echo.Group) {
	roots := append([]string{a.pagesDir}, routes.Aggregate(a.log, a.pluginDir)...)
	taken := make(map[string]bool)
	for _, r := range a.Echo.Routes() {
		if r.Method == http.MethodGet {
			taken[r.Path] = true
		}
	}
	for _, page := range routes.Table(a.log, roots...) {
		if taken[page.Path] {
			a.log.Warn("page shadowed by route", zap.String("path", page.Path), zap.String("file", page.File))
			continue
		}
		taken[page.Path] = true
		a.pages = append(a.pages, page)
		if page.Admin() {
			admin.GET(strings.TrimPrefix(page.Path, "/admin"), a.adminPageHandler(page))
		} else {
			a.Echo.GET(page.Path, a.publicPageHandler(page))
		}
	}
}

// Pages returns the flat-route pages mounted by Setup.
func (a *App) Pages() []routes.Page {
	return a.pages
}

// AdminNav loads every plugin and returns their admin routes in discovery
// order. Broken plugins are logged and left out.
func (a *App) AdminNav(ctx context.Context) []plugin.AdminRoute {
	if a.Loader == nil {
		return nil
	}
	return plugin.AdminNav(a.Loader.Load(ctx))
}

// Logger returns the application logger.
func (a *App) Logger() *zap.Logger {
	return a.log
}

// Terms returns the tag taxonomy of published posts.
func (a *App) Terms(ctx context.Context) ([]plugin.Term, error) {
	return a.Cache.Terms(ctx)
}

// RenderAdmin renders body inside the admin shell with the plugin nav.
func (a *App) RenderAdmin(c echo.Context, title string, body templ.Component) error {
	return a.renderAdminStatus(c, http.StatusOK, title, body)
}

func (a *App) renderAdminStatus(c echo.Context, code int, title string, body templ.Component) error {
	return RenderStatus(c, code, a.Views.AdminShell(AdminLayout{
		Site:      a.Config,
		Title:     title,
		Active:    adminSegment(c.Request().URL.Path),
		Nav:       a.AdminNav(c.Request().Context()),
		CSRFToken: CsrfToken(c),
		Body:      body,
	}))
}

// adminSegment returns the first path segment after /admin/.
func adminSegment(p string) string {
	rest := strings.TrimPrefix(p, "/admin/")
	if rest == p {
		return ""
	}
	seg, _, _ := strings.Cut(rest, "/")
	return seg
}
