package views

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"

	"github.com/ivs-digital/ivsite/content"
	"github.com/ivs-digital/ivsite/page"
)

// Component adapts a gomponents node to templ so handlers render every
// view the same way.
func Component(n g.Node) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if n == nil {
			return nil
		}
		return n.Render(w)
	})
}

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PostPath is the deep link that opens a post's overlay on the blog page.
func PostPath(p content.Post) string {
	return page.Blog.Path() + "?post=" + strconv.Itoa(p.ID)
}

// ThumbPath is the resized image URL for a post card.
func ThumbPath(p content.Post, width int) string {
	return "/media/blog/" + url.PathEscape(p.Image) + "?w=" + strconv.Itoa(width)
}

// MetaFor builds head metadata for a page.
func MetaFor(cfg SiteConfig, id page.ID) PageMeta {
	title := cfg.Name
	if id != page.Home && id.Known() {
		title = id.Label() + " | " + cfg.Name
	}
	return PageMeta{
		Title:       title,
		Description: cfg.Description,
		URL:         strings.TrimSuffix(cfg.URL, "/") + id.Path(),
		OGType:      "website",
	}
}

// MetaForPost builds head metadata for a blog overlay deep link.
func MetaForPost(cfg SiteConfig, p content.Post) PageMeta {
	return PageMeta{
		Title:       p.Title + " | " + cfg.Name,
		Description: p.Snippet,
		URL:         strings.TrimSuffix(cfg.URL, "/") + PostPath(p),
		OGType:      "article",
		Image:       strings.TrimSuffix(cfg.URL, "/") + ThumbPath(p, 1200),
	}
}

// WebsiteJsonLD produces a Schema.org Organization JSON-LD block.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     cfg.Name,
		"url":      buildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(cfg SiteConfig, p content.Post) string {
	postURL := strings.TrimSuffix(cfg.URL, "/") + PostPath(p)
	data := map[string]interface{}{
		"@context":       "https://schema.org",
		"@type":          "BlogPosting",
		"headline":       p.Title,
		"description":    p.Snippet,
		"datePublished":  p.Published().Format("2006-01-02"),
		"articleSection": p.Category,
		"url":            postURL,
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}
