package views

import (
	"strconv"
	"strings"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/ivs-digital/ivsite/analytics"
	"github.com/ivs-digital/ivsite/content"
	"github.com/ivs-digital/ivsite/page"
)

// AdminLogin renders the password form for the analytics dashboard.
func AdminLogin(cfg SiteConfig, showError bool, csrf string) templ.Component {
	body := h.Section(h.Class("section"),
		h.Div(h.Class("container narrow"),
			h.H1(g.Text("Admin")),
			g.If(showError, h.P(h.Class("form-errors"), g.Attr("role", "alert"), g.Text("Invalid password."))),
			g.El("form", h.ID("login-form"), h.Method("post"), h.Action("/admin/login/"),
				h.Input(h.Type("hidden"), h.Name("_csrf"), h.Value(csrf)),
				h.Div(h.Class("field"),
					g.El("label", h.For("password"), g.Text("Password")),
					h.Input(h.ID("password"), h.Name("password"), h.Type("password"), h.Required()),
				),
				h.Button(h.Type("submit"), h.Class("button primary"), g.Text("Sign in")),
			),
		),
	)
	return Component(document(Data{Site: cfg}, PageMeta{Title: "Admin | " + cfg.Name, OGType: "website"}, body))
}

// AdminDashboard renders analytics stats. Post view names are shown with
// their catalog titles.
func AdminDashboard(cfg SiteConfig, st *analytics.Stats, catalog *content.Catalog, csrf string) templ.Component {
	body := h.Section(h.Class("section dashboard"),
		h.Div(h.Class("container"),
			h.H1(g.Text("Analytics")),
			h.P(h.Class("muted"), g.Text(st.Period)),
			h.Div(h.Class("grid stats"),
				stat("Unique visitors", "unique", st.UniqueVisitors),
				stat("Page views", "views", st.TotalViews),
				stat("Bot views", "bots", st.BotViews),
			),
			breakdown("Pages", "pages", st.Pages, pageLabel),
			breakdown("Opened posts", "posts", st.Posts, func(name string) string { return postLabel(catalog, name) }),
			breakdown("Referrers", "referrers", st.Referrers, nil),
			breakdown("Browsers", "browsers", st.Browsers, nil),
			breakdown("Devices", "devices", st.Devices, nil),
			breakdown("Bots", "bot-names", st.Bots, nil),
			breakdown("Daily", "daily", st.Daily, nil),
			g.El("form", h.Method("post"), h.Action("/admin/logout/"),
				h.Input(h.Type("hidden"), h.Name("_csrf"), h.Value(csrf)),
				h.Button(h.Type("submit"), h.Class("button secondary"), g.Text("Sign out")),
			),
		),
	)
	return Component(document(Data{Site: cfg}, PageMeta{Title: "Analytics | " + cfg.Name, OGType: "website"}, body))
}

func stat(label, key string, n int) g.Node {
	return h.Div(h.Class("card stat"), g.Attr("data-stat", key),
		h.Strong(g.Text(strconv.Itoa(n))),
		h.Span(g.Text(label)),
	)
}

func breakdown(title, key string, counts []analytics.Count, label func(string) string) g.Node {
	if len(counts) == 0 {
		return nil
	}
	return h.Div(h.Class("breakdown"), g.Attr("data-breakdown", key),
		h.H2(g.Text(title)),
		h.Table(
			h.TBody(
				g.Map(counts, func(c analytics.Count) g.Node {
					name := c.Name
					if label != nil {
						name = label(name)
					}
					return h.Tr(h.Td(g.Text(name)), h.Td(g.Text(strconv.Itoa(c.Count))))
				}),
			),
		),
	)
}

func pageLabel(name string) string {
	if id := page.ID(name); id.Known() {
		return id.Label()
	}
	return name
}

func postLabel(catalog *content.Catalog, name string) string {
	id, err := strconv.Atoi(strings.TrimPrefix(name, "post:"))
	if err != nil || catalog == nil {
		return name
	}
	if p, ok := catalog.Post(id); ok {
		return p.Title
	}
	return name
}
