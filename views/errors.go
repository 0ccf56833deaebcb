package views

import (
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/ivs-digital/ivsite/page"
)

// NotFound renders the 404 page.
func NotFound(cfg SiteConfig) templ.Component {
	return errorPage(cfg, "Page not found", "The page you are looking for does not exist.")
}

// ServerError renders the 500 page.
func ServerError(cfg SiteConfig) templ.Component {
	return errorPage(cfg, "Something went wrong", "Please try again in a moment.")
}

func errorPage(cfg SiteConfig, title, msg string) templ.Component {
	d := Data{Site: cfg, Current: page.ID("")}
	meta := PageMeta{Title: title + " | " + cfg.Name, OGType: "website"}
	body := h.Section(h.Class("hero error"),
		h.Div(h.Class("container"),
			h.H1(g.Text(title)),
			h.P(g.Text(msg)),
			h.P(NavLink(page.Home, h.Class("button primary"), g.Text("Back to Home"))),
		),
	)
	return Component(document(d, meta, body))
}
