package ivsite

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/ivs-digital/ivsite/analytics"
	"github.com/ivs-digital/ivsite/blog"
	"github.com/ivs-digital/ivsite/contact"
	"github.com/ivs-digital/ivsite/content"
	"github.com/ivs-digital/ivsite/media"
	"github.com/ivs-digital/ivsite/page"
	"github.com/ivs-digital/ivsite/views"
)

var pageRoutes = page.All

// render writes a templ component as an HTML response with the given status.
func render(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

// newRouter returns a router for one request. Every navigation asks the
// client to scroll to the top and, with analytics enabled, records a view.
func (a *App) newRouter(c echo.Context) *page.Router {
	r := page.NewRouter(page.Default)
	r.OnChange(func(page.ID) {
		c.Response().Header().Set("HX-Trigger", "scroll-top")
	})
	if a.Recorder != nil {
		r.OnChange(a.Recorder.Listener(c.Request().Context(), analyticsRequest(c)))
	}
	return r
}

func analyticsRequest(c echo.Context) analytics.Request {
	req := c.Request()
	return analytics.Request{
		IP:        c.RealIP(),
		UserAgent: req.UserAgent(),
		Referrer:  req.Referer(),
		Path:      req.URL.Path,
		DNT:       req.Header.Get("DNT") == "1",
	}
}

func (a *App) pageData(c echo.Context, id page.ID) views.Data {
	return views.Data{
		Site:    a.Config.viewConfig(),
		Current: id,
		Catalog: a.Catalog,
		CSRF:    CsrfToken(c),
	}
}

// handlePage serves one of the site pages. The page comes from the matched
// route, so full loads and htmx partials of the same URL agree.
func (a *App) handlePage(c echo.Context) error {
	router := a.newRouter(c)
	router.Navigate(page.FromPath(c.Path()))

	d := a.pageData(c, router.Current())
	meta := views.MetaFor(d.Site, d.Current)

	if d.Current == page.Blog {
		if raw := c.QueryParam("post"); raw != "" {
			if p, ok := a.selectPost(raw); ok {
				a.recordPost(c, p)
				d.Selected = &p
				meta = views.MetaForPost(d.Site, p)
			}
		}
	}

	if isHTMX(c) && c.QueryParam("partial") == "main" {
		return render(c, http.StatusOK, views.MainPartial(d))
	}
	return render(c, http.StatusOK, views.Page(d, meta))
}

// selectPost resolves a post id through a blog viewer. Ids outside the
// catalog leave nothing selected.
func (a *App) selectPost(raw string) (content.Post, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return content.Post{}, false
	}
	v := blog.NewViewer(a.Catalog)
	if _, err := v.SelectID(id); err != nil {
		return content.Post{}, false
	}
	return v.Selected()
}

func (a *App) recordPost(c echo.Context, p content.Post) {
	if a.Recorder == nil {
		return
	}
	name := "post:" + strconv.Itoa(p.ID)
	if err := a.Recorder.Record(c.Request().Context(), analyticsRequest(c), name); err != nil {
		c.Logger().Errorf("analytics: record %s: %v", name, err)
	}
}

func (a *App) handlePostOverlay(c echo.Context) error {
	p, ok := a.selectPost(c.Param("id"))
	if !ok {
		return echo.ErrNotFound
	}
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, views.PostPath(p))
	}
	a.recordPost(c, p)
	return render(c, http.StatusOK, views.Component(views.Overlay(&p)))
}

func (a *App) handleOverlayClose(c echo.Context) error {
	if !isHTMX(c) {
		return c.Redirect(http.StatusSeeOther, page.Blog.Path())
	}
	return render(c, http.StatusOK, views.Component(views.Overlay(nil)))
}

// handleContact forwards a submission to the messaging deep link. The
// inquiry itself is neither stored nor logged.
func (a *App) handleContact(c echo.Context) error {
	var f contact.Form
	if err := c.Bind(&f); err != nil {
		return err
	}
	if missing := f.Missing(); len(missing) > 0 {
		d := a.pageData(c, page.Contact)
		d.Form = f
		d.FormErrors = missing
		return render(c, http.StatusUnprocessableEntity, views.Page(d, views.MetaFor(d.Site, page.Contact)))
	}
	return c.Redirect(http.StatusSeeOther, a.Encoder.Link(f))
}

func (a *App) handleThumb(c echo.Context) error {
	width := media.DefaultWidth
	if raw := c.QueryParam("w"); raw != "" {
		w, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid width")
		}
		width = w
	}
	name := c.Param("file")
	t, err := a.Thumbs.Get(name, width)
	switch {
	case errors.Is(err, media.ErrNotFound):
		return echo.ErrNotFound
	case errors.Is(err, media.ErrBadWidth):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case err != nil:
		return fmt.Errorf("ivsite: thumbnail %s: %w", name, err)
	}
	return c.Blob(http.StatusOK, "image/jpeg", t.Data)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(filepath.Join(a.Config.StaticDir, "favicon.svg"))
}

func (a *App) handleRobots(c echo.Context) error {
	var b strings.Builder
	b.WriteString("User-agent: *\nAllow: /\n")
	if a.Config.AdminEnabled() {
		b.WriteString("Disallow: /admin/\n")
	}
	b.WriteString("\nSitemap: " + a.Config.URL + "/sitemap.xml\n")
	return c.String(http.StatusOK, b.String())
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = render(c, http.StatusNotFound, views.NotFound(a.Config.viewConfig()))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = render(c, code, views.ServerError(a.Config.viewConfig()))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
