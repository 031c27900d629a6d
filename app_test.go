package webie_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gjc14/webie"
	"github.com/gjc14/webie/plugin"
	"github.com/gjc14/webie/views"
)

type site struct {
	t       *testing.T
	app     *webie.App
	cookies map[string]*http.Cookie
}

type fixture struct {
	registry  *plugin.Registry
	pluginDir string
	pages     map[string]string
	log       *zap.Logger
}

func newSite(t *testing.T, fx fixture) *site {
	t.Helper()
	dir := t.TempDir()
	if fx.registry == nil {
		fx.registry = plugin.NewRegistry()
	}
	if fx.pluginDir == "" {
		fx.pluginDir = filepath.Join(dir, "plugins")
	}
	if fx.log == nil {
		fx.log = zap.NewNop()
	}
	pagesDir := filepath.Join(dir, "pages")
	require.NoError(t, os.MkdirAll(pagesDir, 0o755))
	for name, body := range fx.pages {
		require.NoError(t, os.WriteFile(filepath.Join(pagesDir, name), []byte(body), 0o644))
	}

	cfg := webie.SiteConfig{
		Name:          "Test Blog",
		URL:           "http://example.com",
		AdminPassword: "secret",
		SessionSecret: "0123456789abcdef0123456789abcdef",
		DatabasePath:  filepath.Join(dir, "test.db"),
		PluginDir:     fx.pluginDir,
		PagesDir:      pagesDir,
		StaticDir:     filepath.Join(dir, "public"),
	}
	app := webie.New(cfg, views.Default(), webie.WithRegistry(fx.registry), webie.WithLogger(fx.log))
	require.NoError(t, app.Setup())
	t.Cleanup(func() { _ = app.Close() })
	return &site{t: t, app: app, cookies: map[string]*http.Cookie{}}
}

func (s *site) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	s.t.Helper()
	var req *http.Request
	if form != nil {
		if c, ok := s.cookies["_csrf"]; ok {
			form.Set("_csrf", c.Value)
		}
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.app.Echo.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		s.cookies[c.Name] = c
	}
	return rec
}

func (s *site) login() {
	s.t.Helper()
	s.do(http.MethodGet, "/admin/", nil)
	rec := s.do(http.MethodPost, "/admin/login/", url.Values{"password": {"secret"}})
	require.Equal(s.t, http.StatusSeeOther, rec.Code)
	require.Contains(s.t, s.cookies, "admin_session")
}

func writePlugin(t *testing.T, root, id string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, id)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
}

func fixed(cfg plugin.Config) plugin.Factory {
	return func() (plugin.Config, error) { return cfg, nil }
}

func TestAdminShowsLoginWhenAnonymous(t *testing.T) {
	s := newSite(t, fixture{})
	rec := s.do(http.MethodGet, "/admin/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="password"`)
	assert.Contains(t, s.cookies, "_csrf")
}

func TestLoginWithNoPlugins(t *testing.T) {
	s := newSite(t, fixture{})
	s.login()

	rec := s.do(http.MethodGet, "/admin/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), views.NoPluginsText)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	s := newSite(t, fixture{})
	s.do(http.MethodGet, "/admin/", nil)
	rec := s.do(http.MethodPost, "/admin/login/", url.Values{"password": {"nope"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Wrong password.")
}

func TestLoginWithoutCSRFIsForbidden(t *testing.T) {
	s := newSite(t, fixture{})
	rec := s.do(http.MethodPost, "/admin/login/", url.Values{"password": {"secret"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminRoutesRequireLogin(t *testing.T) {
	s := newSite(t, fixture{})
	for _, p := range []string{"/admin/posts/", "/admin/media/", "/admin/posts/new/"} {
		rec := s.do(http.MethodGet, p, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code, p)
		assert.Equal(t, "/admin/", rec.Header().Get(echo.HeaderLocation), p)
	}
}

func TestPluginNavAndRoutes(t *testing.T) {
	reg := plugin.NewRegistry()
	reg.Register(plugin.Registration{
		ID: "gallery_plugin",
		Config: fixed(plugin.Config{
			PluginName:  "Gallery",
			AdminRoutes: []plugin.AdminRoute{{Title: "Gallery", URL: "gallery", IconName: "image"}},
		}),
		Routes: func(g *echo.Group, h plugin.Host) {
			g.GET("/gallery/", func(c echo.Context) error {
				return h.RenderAdmin(c, "Gallery", templ.Raw("<p>gallery body</p>"))
			})
		},
	})
	reg.Register(plugin.Registration{
		ID: "hidden_plugin",
		Config: fixed(plugin.Config{
			PluginName:  "Hidden",
			AdminRoutes: []plugin.AdminRoute{{Title: "Hidden", URL: "hidden", IconName: "unicorn"}},
		}),
		Routes: func(g *echo.Group, h plugin.Host) {
			g.GET("/hidden/", func(c echo.Context) error { return c.String(http.StatusOK, "hidden") })
		},
	})
	reg.Register(plugin.Registration{
		ID:     "broken_plugin",
		Config: func() (plugin.Config, error) { panic("boom") },
	})

	root := t.TempDir()
	writePlugin(t, root, "seo_plugin", map[string]string{
		"plugin.yaml":  "pluginName: SEO\nadminRoutes:\n  - title: SEO\n    url: seo\n    iconName: search\n",
		"admin.seo.md": "---\ntitle: SEO settings\n---\nTune **metadata** here.\n",
	})

	core, logs := observer.New(zapcore.DebugLevel)
	s := newSite(t, fixture{registry: reg, pluginDir: root, log: zap.New(core)})
	s.login()

	body := s.do(http.MethodGet, "/admin/", nil).Body.String()
	assert.NotContains(t, body, views.NoPluginsText)
	gallery := strings.Index(body, `href="/admin/gallery/"`)
	seo := strings.Index(body, `href="/admin/seo/"`)
	require.GreaterOrEqual(t, gallery, 0)
	require.GreaterOrEqual(t, seo, 0)
	assert.Less(t, gallery, seo)
	assert.NotEmpty(t, logs.FilterMessage("plugin skipped").All())

	rec := s.do(http.MethodGet, "/admin/gallery/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gallery body")
	assert.Contains(t, rec.Body.String(), `href="/admin/gallery/" class="active"`)

	assert.NotContains(t, body, `href="/admin/hidden/"`)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/admin/hidden/", nil).Code)

	rec = s.do(http.MethodGet, "/admin/seo/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<strong>metadata</strong>")

	anon := newSite(t, fixture{registry: reg, pluginDir: root})
	assert.Equal(t, http.StatusSeeOther, anon.do(http.MethodGet, "/admin/seo/", nil).Code)
}

func TestPublicPages(t *testing.T) {
	s := newSite(t, fixture{pages: map[string]string{
		"about.md":      "---\ntitle: About us\ndescription: Who we are\n---\n# Hello\n",
		"tags.$name.md": "Tag page\n",
		"_index.md":     "shadowed by the blog home\n",
	}})

	rec := s.do(http.MethodGet, "/about/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Hello</h1>")
	assert.Contains(t, rec.Body.String(), "<title>About us - Test Blog</title>")

	rec = s.do(http.MethodGet, "/about", nil)
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/tags/go/", nil).Code)

	var paths []string
	for _, p := range s.app.Pages() {
		paths = append(paths, p.Path)
	}
	assert.ElementsMatch(t, []string{"/about/", "/tags/:name/"}, paths)
}

func TestPostLifecycle(t *testing.T) {
	s := newSite(t, fixture{})
	s.login()

	rec := s.do(http.MethodPost, "/admin/posts/", url.Values{
		"title":     {"Hello World"},
		"date":      {"2026-01-02"},
		"tags":      {"Go, web"},
		"summary":   {"First post"},
		"content":   {"Some **bold** text"},
		"published": {"on"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = s.do(http.MethodGet, "/blog/hello-world/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<strong>bold</strong>")

	home := s.do(http.MethodGet, "/", nil).Body.String()
	assert.Contains(t, home, "Hello World")

	feed := s.do(http.MethodGet, "/feed.xml", nil)
	assert.Contains(t, feed.Body.String(), "<category>go</category>")
	sitemap := s.do(http.MethodGet, "/sitemap.xml", nil)
	assert.Contains(t, sitemap.Body.String(), "<loc>http://example.com/blog/hello-world/</loc>")

	terms, err := s.app.Terms(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []plugin.Term{{Name: "go", Count: 1}, {Name: "web", Count: 1}}, terms)

	rec = s.do(http.MethodPost, "/admin/posts/hello-world/delete/", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/blog/hello-world/", nil).Code)
}

func TestUnknownRouteIsNotFound(t *testing.T) {
	s := newSite(t, fixture{})
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/nope/", nil).Code)
}

func TestMediaUpload(t *testing.T) {
	s := newSite(t, fixture{})
	s.login()

	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewGray(image.Rect(0, 0, 20, 10))))

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("_csrf", s.cookies["_csrf"].Value))
	fw, err := mw.CreateFormFile("image", "Cat Photo.png")
	require.NoError(t, err)
	_, err = fw.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/media/", &body)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	for _, c := range s.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.app.Echo.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	images, err := s.app.Store.ListImages()
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, "cat-photo.jpg", images[0].Filename)

	list := s.do(http.MethodGet, "/admin/media/", nil).Body.String()
	assert.Contains(t, list, "/public/uploads/cat-photo.jpg")

	rec = s.do(http.MethodPost, "/admin/media/cat-photo.jpg/delete/", url.Values{})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	images, err = s.app.Store.ListImages()
	require.NoError(t, err)
	assert.Empty(t, images)
}
