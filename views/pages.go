package views

import (
	"strconv"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/ivs-digital/ivsite/content"
	"github.com/ivs-digital/ivsite/markdown"
	"github.com/ivs-digital/ivsite/page"
)

// MainContent renders the view for d.Current. Unknown page ids render
// nothing.
func MainContent(d Data) g.Node {
	var body g.Node
	switch d.Current {
	case page.Home:
		body = homePage(d)
	case page.Services:
		body = servicesPage(d)
	case page.About:
		body = aboutPage(d)
	case page.Blog:
		body = blogPage(d)
	case page.Contact:
		body = contactPage(d)
	default:
		return nil
	}
	return h.Div(h.ID("page"), g.Attr("data-page", d.Current.String()), body)
}

func hero(title, lead string, actions ...g.Node) g.Node {
	return h.Section(h.Class("hero"),
		h.Div(h.Class("container"),
			h.H1(g.Text(title)),
			h.P(h.Class("lead"), g.Text(lead)),
			g.If(len(actions) > 0, h.Div(h.Class("actions"), g.Group(actions))),
		),
	)
}

func section(title string, children ...g.Node) g.Node {
	return h.Section(h.Class("section"),
		h.Div(h.Class("container"),
			h.H2(g.Text(title)),
			g.Group(children),
		),
	)
}

func serviceCards(services []content.Service) g.Node {
	return h.Div(h.Class("grid cards"),
		g.Map(services, func(s content.Service) g.Node {
			return h.Article(h.Class("card"), g.Attr("data-service", s.Slug),
				h.H3(g.Text(s.Title)),
				h.P(g.Text(s.Summary)),
			)
		}),
	)
}

func homePage(d Data) g.Node {
	services := d.Catalog.Services()
	if len(services) > 4 {
		services = services[:4]
	}
	return g.Group([]g.Node{
		hero("Empowering Education & Business Through Technology",
			"IT services, custom software and EdTech platforms for schools, institutes and growing companies.",
			NavLink(page.Services, h.Class("button primary"), g.Text("Our Services")),
			NavLink(page.Contact, h.Class("button secondary"), g.Text("Get in Touch")),
		),
		section("What We Do",
			serviceCards(services),
			h.P(NavLink(page.Services, h.Class("link"), g.Text("View all services"))),
		),
		section("Our Values",
			h.Ul(h.Class("values"),
				g.Map(d.Catalog.Values(), func(v string) g.Node { return h.Li(g.Text(v)) }),
			),
		),
		section("Latest Insights",
			h.Div(h.Class("grid posts"),
				g.Map(d.Catalog.Latest(3), postCard),
			),
		),
	})
}

func servicesPage(d Data) g.Node {
	return g.Group([]g.Node{
		hero("Our Services",
			"From learning platforms to cloud infrastructure, we cover the full technology lifecycle.",
		),
		section("What We Offer", serviceCards(d.Catalog.Services())),
		section("How We Work",
			h.Ol(h.Class("process"),
				g.Map(d.Catalog.Process(), func(s content.Step) g.Node {
					return h.Li(h.H3(g.Text(s.Title)), h.P(g.Text(s.Text)))
				}),
			),
		),
		section("Start Your Project",
			h.P(NavLink(page.Contact, h.Class("button primary"), g.Text("Contact Us"))),
		),
	})
}

func aboutPage(d Data) g.Node {
	return g.Group([]g.Node{
		hero("About Us",
			"We help institutions and businesses adopt technology that actually moves them forward.",
		),
		section("Who We Are",
			h.P(g.Text("IVS is an IT and EdTech services company building learning management systems, web platforms and cloud solutions.")),
			h.P(g.Text("Our team pairs technical depth with a practical understanding of how schools and businesses run day to day.")),
		),
		section("What We Stand For",
			h.Ul(h.Class("values"),
				g.Map(d.Catalog.Values(), func(v string) g.Node { return h.Li(g.Text(v)) }),
			),
		),
		section("Work With Us",
			h.P(NavLink(page.Contact, h.Class("button primary"), g.Text("Talk to Our Team"))),
		),
	})
}

func blogPage(d Data) g.Node {
	return g.Group([]g.Node{
		hero("Insights & News",
			"Latest trends in EdTech, Digital Marketing, and Software Development.",
		),
		h.Section(h.Class("section"),
			h.Div(h.Class("container grid posts"),
				g.Map(d.Catalog.Posts(), postCard),
			),
		),
		Overlay(d.Selected),
	})
}

func postCard(p content.Post) g.Node {
	id := strconv.Itoa(p.ID)
	return h.Article(h.Class("card post"), g.Attr("data-post-id", id),
		h.Img(
			h.Src(ThumbPath(p, 480)),
			h.Alt(p.Title),
			g.Attr("loading", "lazy"),
			g.Attr("width", "480"),
		),
		h.Span(h.Class("badge"), g.Text(p.Category)),
		h.H3(g.Text(p.Title)),
		h.P(g.Text(p.Snippet)),
		h.P(h.Class("muted"), g.Text(p.Date+" · "+p.ReadTime)),
		h.A(
			h.Href(PostPath(p)),
			g.Attr("hx-get", "/blog/posts/"+id+"/"),
			g.Attr("hx-target", "#overlay"),
			g.Attr("hx-swap", "outerHTML"),
			g.Attr("hx-push-url", PostPath(p)),
			h.Class("link"),
			g.Text("Read more"),
		),
	)
}

// Overlay renders the post detail overlay. A nil post renders the empty
// container so htmx has a target to swap into.
func Overlay(p *content.Post) g.Node {
	if p == nil {
		return h.Div(h.ID("overlay"))
	}
	return h.Div(h.ID("overlay"), h.Class("overlay"),
		g.Attr("role", "dialog"),
		g.Attr("aria-modal", "true"),
		g.Attr("data-post-id", strconv.Itoa(p.ID)),
		h.Div(h.Class("overlay-panel"),
			h.A(
				h.Href(page.Blog.Path()),
				g.Attr("hx-get", "/blog/overlay/"),
				g.Attr("hx-target", "#overlay"),
				g.Attr("hx-swap", "outerHTML"),
				g.Attr("hx-push-url", page.Blog.Path()),
				h.Class("overlay-close"),
				g.Attr("aria-label", "Close"),
				g.Attr("data-overlay-close", ""),
				g.Text("×"),
			),
			h.Img(h.Src(ThumbPath(*p, 1200)), h.Alt(p.Title)),
			h.Span(h.Class("badge"), g.Text(p.Category)),
			h.H2(h.Class("overlay-title"), g.Text(p.Title)),
			h.P(h.Class("muted"), g.Text(p.Date+" · "+p.ReadTime)),
			h.Div(h.Class("overlay-content prose"), g.Raw(markdown.HTML(p.Content))),
		),
	)
}
