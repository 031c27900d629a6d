package webie

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/gjc14/webie/logger"
	"github.com/gjc14/webie/plugin"
)

// EnvPrefix prefixes every environment variable read by LoadConfig,
// e.g. WEBIE_ADMIN_PASSWORD or WEBIE_LOG_LEVEL.
const EnvPrefix = "WEBIE"

// SiteConfig holds all configuration for a webie site.
type SiteConfig struct {
	Name        string `mapstructure:"name" default:"Blog"`
	URL         string `mapstructure:"url" default:"http://localhost:3000"`
	Description string `mapstructure:"description"`
	Author      string `mapstructure:"author"`

	Addr         string `mapstructure:"addr" default:":3000"`
	DatabasePath string `mapstructure:"database_path" default:"data/webie.db"`

	AdminPassword string `mapstructure:"admin_password"` // required
	SessionSecret string `mapstructure:"session_secret"` // required
	CookieSecure  bool   `mapstructure:"cookie_secure" default:"false"`

	PostCacheTTL time.Duration `mapstructure:"post_cache_ttl" default:"5m"`

	PluginDir string `mapstructure:"plugin_dir" default:"plugins"`
	PagesDir  string `mapstructure:"pages_dir" default:"pages"`
	StaticDir string `mapstructure:"static_dir" default:"public"`

	Log logger.Config `mapstructure:"log"`
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/webie.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.PluginDir == "" {
		c.PluginDir = "plugins"
	}
	if c.PagesDir == "" {
		c.PagesDir = "pages"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
}

func (c SiteConfig) validate() error {
	if c.AdminPassword == "" {
		return fmt.Errorf("webie: AdminPassword is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("webie: SessionSecret is required")
	}
	return nil
}

// LoadConfig reads dir/.env when present, then environment variables with
// the WEBIE_ prefix. Nested keys use underscores: log.level is
// WEBIE_LOG_LEVEL.
func LoadConfig(dir string) (SiteConfig, error) {
	// A missing .env is normal in production.
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	bindDefaults(v, reflect.TypeOf(SiteConfig{}), "")
	v.AutomaticEnv()

	var cfg SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("webie: load config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// bindDefaults registers every mapstructure key with its default tag so
// AutomaticEnv can see it during Unmarshal.
func bindDefaults(v *viper.Viper, t reflect.Type, prefix string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}
		if field.Type.Kind() == reflect.Struct {
			bindDefaults(v, field.Type, key)
			continue
		}
		v.SetDefault(key, field.Tag.Get("default"))
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes, before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithPluginDir sets the plugin root scanned for manifests and pages.
func WithPluginDir(dir string) Option {
	return func(a *App) {
		a.pluginDir = dir
	}
}

// WithPagesDir sets the core flat-route pages root.
func WithPagesDir(dir string) Option {
	return func(a *App) {
		a.pagesDir = dir
	}
}

// WithLogger replaces the logger built from SiteConfig.Log.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.log = l
	}
}

// WithRegistry replaces the default compiled plugin registry.
func WithRegistry(r *plugin.Registry) Option {
	return func(a *App) {
		a.registry = r
	}
}
