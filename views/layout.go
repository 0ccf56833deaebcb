package views

import (
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/ivs-digital/ivsite/page"
)

// HTMXSrc is where pages load htmx from. It is served from the site's own
// static dir; without it every link still works as a full page load.
const HTMXSrc = "/public/htmx.min.js"

// Page renders the full document for d.Current.
func Page(d Data, meta PageMeta) templ.Component {
	var extra []g.Node
	if d.Selected != nil {
		extra = append(extra, h.Script(h.Type("application/ld+json"), g.Raw(BlogPostingJsonLD(d.Site, *d.Selected))))
	}
	return Component(document(d, meta, MainContent(d), extra...))
}

// MainPartial renders only the main content plus an out-of-band nav update,
// for htmx navigations.
func MainPartial(d Data) templ.Component {
	return Component(g.Group([]g.Node{
		MainContent(d),
		navbar(d.Current, true),
	}))
}

func document(d Data, meta PageMeta, body g.Node, extraHead ...g.Node) g.Node {
	return h.Doctype(
		h.HTML(h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				g.El("title", g.Text(meta.Title)),
				g.If(meta.Description != "", h.Meta(h.Name("description"), h.Content(meta.Description))),
				g.If(meta.URL != "", h.Link(h.Rel("canonical"), h.Href(meta.URL))),
				h.Meta(g.Attr("property", "og:title"), h.Content(meta.Title)),
				h.Meta(g.Attr("property", "og:type"), h.Content(meta.OGType)),
				g.If(meta.URL != "", h.Meta(g.Attr("property", "og:url"), h.Content(meta.URL))),
				g.If(meta.Image != "", h.Meta(g.Attr("property", "og:image"), h.Content(meta.Image))),
				h.Link(h.Rel("icon"), h.Href("/favicon.svg")),
				h.Link(h.Rel("stylesheet"), h.Href("/public/site.css")),
				h.Link(h.Rel("alternate"), h.Type("application/rss+xml"), h.Href("/feed.xml")),
				h.Script(h.Src(HTMXSrc), h.Defer()),
				h.Script(h.Src("/public/site.js"), h.Defer()),
				h.Script(h.Type("application/ld+json"), g.Raw(WebsiteJsonLD(d.Site))),
				g.Group(extraHead),
			),
			h.Body(
				navbar(d.Current, false),
				h.Main(h.ID("main"), body),
				footer(d.Site),
				whatsAppWidget(d.Site),
			),
		),
	)
}

// NavLink links to a page, swapping only the main content when htmx is
// available and resetting the scroll position.
func NavLink(id page.ID, children ...g.Node) g.Node {
	return h.A(
		h.Href(id.Path()),
		g.Attr("hx-get", id.Path()+"?partial=main"),
		g.Attr("hx-target", "#main"),
		g.Attr("hx-swap", "innerHTML show:window:top"),
		g.Attr("hx-push-url", id.Path()),
		g.Group(children),
	)
}

func navbar(current page.ID, oob bool) g.Node {
	return h.Nav(h.ID("nav"), h.Class("navbar"),
		g.If(oob, g.Attr("hx-swap-oob", "true")),
		NavLink(page.Home, h.Class("brand"), h.Strong(g.Text("IVS"))),
		h.Ul(h.Class("nav-links"),
			g.Map(page.All, func(id page.ID) g.Node {
				class := "nav-link"
				if id == current {
					class += " active"
				}
				return h.Li(NavLink(id,
					h.Class(class),
					g.Attr("data-nav", id.String()),
					g.If(id == current, g.Attr("aria-current", "page")),
					g.Text(id.Label()),
				))
			}),
		),
	)
}

func footer(cfg SiteConfig) g.Node {
	return h.Footer(h.Class("footer"),
		h.Div(h.Class("container"),
			h.P(h.Strong(g.Text(cfg.Name))),
			g.If(cfg.Description != "", h.P(g.Text(cfg.Description))),
			h.Ul(h.Class("footer-links"),
				g.Map(page.All, func(id page.ID) g.Node {
					return h.Li(NavLink(id, g.Text(id.Label())))
				}),
			),
			h.P(h.Class("muted"), g.Text("© "+cfg.Name+". All rights reserved.")),
		),
	)
}

func whatsAppWidget(cfg SiteConfig) g.Node {
	if cfg.WhatsAppURL == "" {
		return nil
	}
	return h.A(
		h.Href(cfg.WhatsAppURL),
		h.Target("_blank"),
		h.Rel("noopener noreferrer"),
		h.Class("whatsapp-widget"),
		g.Attr("aria-label", "Chat on WhatsApp"),
		g.Text("WhatsApp"),
	)
}
