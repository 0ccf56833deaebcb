// Package ivsite serves the IVS company website: five content pages, a blog
// with a post overlay, a contact form that hands off to WhatsApp, and an
// optional privacy-friendly analytics dashboard.
//
// Pages are rendered on the server. htmx swaps the main content in place so
// navigation feels like a single page app while every page keeps a real URL.
package ivsite

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ivs-digital/ivsite/analytics"
	"github.com/ivs-digital/ivsite/contact"
	"github.com/ivs-digital/ivsite/content"
	"github.com/ivs-digital/ivsite/media"
)

// App is the central application. It wires together the catalog,
// analytics, thumbnails, handlers and middleware.
type App struct {
	Config    SiteConfig
	Echo      *echo.Echo
	Catalog   *content.Catalog
	Encoder   *contact.Encoder
	Thumbs    *media.ThumbCache
	Analytics *analytics.Store
	Recorder  *analytics.Recorder

	loginLimiter *LoginLimiter
	customRoutes []func(*App)
	stops        []func()
	ready        bool
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init loads content, opens the analytics store and registers middleware
// and routes. Start calls it when needed; tests call it directly and drive
// a.Echo with httptest.
func (a *App) Init() error {
	if a.ready {
		return nil
	}
	if a.Config.AdminEnabled() && a.Config.SessionSecret == "" {
		return errors.New("ivsite: SessionSecret is required when AdminPassword is set")
	}

	a.Echo.Logger.SetLevel(a.Config.logLevel())

	if a.Catalog == nil {
		catalog, err := content.Load()
		if err != nil {
			return fmt.Errorf("ivsite: load catalog: %w", err)
		}
		a.Catalog = catalog
	}

	a.Encoder = contact.NewEncoder(a.Config.WhatsAppURL)
	a.Thumbs = media.NewThumbCache(os.DirFS(a.Config.StaticDir), a.Config.ThumbCacheTTL)

	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	a.stops = append(a.stops, a.loginLimiter.Stop)

	if a.Config.AnalyticsEnabled {
		store, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("ivsite: init analytics: %w", err)
		}
		a.Analytics = store
		if err := analytics.InitSalt(store); err != nil {
			return fmt.Errorf("ivsite: init analytics salt: %w", err)
		}
		a.Recorder = analytics.NewRecorder(store, siteHost(a.Config.URL), a.Echo.Logger.Errorf)
		a.stops = append(a.stops, store.StartCleanupScheduler(a.Config.RetentionDays, 24*time.Hour, a.Echo.Logger.Infof))
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.ready = true
	return nil
}

// Start initializes the app if needed and runs the server until it fails
// or is shut down.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Echo.Logger.Infof("ivsite: listening on %s (%s)", a.Config.Addr, a.Config.URL)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded site assets take precedence; everything else under /public,
	// htmx.min.js included, comes from the static dir.
	embeddedFS, _ := fs.Sub(embeddedAssets, "embedded")
	assets := echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embeddedFS))))
	e.GET("/public/site.js", assets)
	e.GET("/public/site.css", assets)
	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/media/blog/:file", a.handleThumb)

	for _, id := range pageRoutes {
		e.GET(id.Path(), a.handlePage)
	}
	e.GET("/blog/posts/:id/", a.handlePostOverlay)
	e.GET("/blog/overlay/", a.handleOverlayClose)
	e.POST("/contact/", a.handleContact)

	if a.Config.AdminEnabled() {
		e.GET("/admin/", a.handleAdmin)
		e.POST("/admin/login/", a.handleAdminLogin)
		e.POST("/admin/logout/", handleAdminLogout)
	}
}

// Close stops background work and closes the analytics store.
func (a *App) Close() error {
	for i := len(a.stops) - 1; i >= 0; i-- {
		a.stops[i]()
	}
	a.stops = nil
	if a.Analytics != nil {
		return a.Analytics.Close()
	}
	return nil
}

func siteHost(siteURL string) string {
	u, err := url.Parse(siteURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
