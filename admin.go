package ivsite

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ivs-digital/ivsite/analytics"
	"github.com/ivs-digital/ivsite/views"
)

const (
	defaultStatsDays = 30
	maxStatsDays     = 365
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return render(c, http.StatusOK, views.AdminLogin(a.Config.viewConfig(), false, CsrfToken(c)))
	}
	days := defaultStatsDays
	if n, err := strconv.Atoi(c.QueryParam("days")); err == nil && n > 0 && n <= maxStatsDays {
		days = n
	}
	st, err := a.stats(c, days)
	if err != nil {
		return err
	}
	return render(c, http.StatusOK, views.AdminDashboard(a.Config.viewConfig(), st, a.Catalog, CsrfToken(c)))
}

func (a *App) stats(c echo.Context, days int) (*analytics.Stats, error) {
	to := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	from := to.AddDate(0, 0, -days)
	if a.Analytics == nil {
		return &analytics.Stats{Period: "analytics disabled"}, nil
	}
	return a.Analytics.Stats(c.Request().Context(), from, to)
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	c.Logger().Warnf("admin: failed login from %s", ip)
	return render(c, http.StatusUnauthorized, views.AdminLogin(a.Config.viewConfig(), true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}
