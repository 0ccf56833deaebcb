package ivsite

import (
	"strings"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/ivs-digital/ivsite/contact"
	"github.com/ivs-digital/ivsite/content"
	"github.com/ivs-digital/ivsite/views"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string `mapstructure:"name"`        // Site name (default "IVS")
	URL         string `mapstructure:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `mapstructure:"description"` // Site description for RSS and meta tags

	Addr      string `mapstructure:"addr"`       // Listen address (default ":3000")
	StaticDir string `mapstructure:"static_dir"` // User static assets (default "public")
	LogLevel  string `mapstructure:"log_level"`  // debug, info, warn, error or off (default "info")

	WhatsAppURL string `mapstructure:"whatsapp_url"` // Contact deep link base (default contact.DefaultBaseURL)

	AnalyticsEnabled      bool   `mapstructure:"analytics_enabled"`       // Record page views
	AnalyticsDatabasePath string `mapstructure:"analytics_database_path"` // default "data/analytics.db"
	RetentionDays         int    `mapstructure:"retention_days"`          // default 365

	AdminPassword string `mapstructure:"admin_password"` // Empty disables /admin/
	SessionSecret string `mapstructure:"session_secret"` // Required when AdminPassword is set
	CookieSecure  bool   `mapstructure:"cookie_secure"`  // Set true for HTTPS

	ThumbCacheTTL time.Duration `mapstructure:"thumb_cache_ttl"` // default 1h
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "IVS"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.WhatsAppURL == "" {
		c.WhatsAppURL = contact.DefaultBaseURL
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.RetentionDays == 0 {
		c.RetentionDays = 365
	}
	if c.ThumbCacheTTL == 0 {
		c.ThumbCacheTTL = time.Hour
	}
}

// AdminEnabled reports whether the analytics dashboard is served.
func (c SiteConfig) AdminEnabled() bool {
	return c.AdminPassword != ""
}

func (c SiteConfig) viewConfig() views.SiteConfig {
	return views.SiteConfig{
		Name:        c.Name,
		URL:         c.URL,
		Description: c.Description,
		WhatsAppURL: c.WhatsAppURL,
	}
}

func (c SiteConfig) logLevel() log.Lvl {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithCatalog replaces the embedded content catalog.
func WithCatalog(c *content.Catalog) Option {
	return func(a *App) {
		a.Catalog = c
	}
}
