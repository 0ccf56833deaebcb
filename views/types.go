package views

import (
	"github.com/ivs-digital/ivsite/contact"
	"github.com/ivs-digital/ivsite/content"
	"github.com/ivs-digital/ivsite/page"
)

// SiteConfig holds the site-wide values templates need.
type SiteConfig struct {
	Name        string // SITE_NAME
	URL         string // SITE_URL, no trailing slash
	Description string // SITE_DESCRIPTION
	WhatsAppURL string // floating chat widget and contact form target
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
}

// Data is everything a page renderer may read. Renderers only look at
// the fields their page needs.
type Data struct {
	Site    SiteConfig
	Current page.ID
	Catalog *content.Catalog

	// Blog
	Selected *content.Post

	// Contact
	Form       contact.Form
	FormErrors []string
	CSRF       string
}
