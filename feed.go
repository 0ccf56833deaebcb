package ivsite

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ivs-digital/ivsite/page"
	"github.com/ivs-digital/ivsite/views"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Category    string `xml:"category,omitempty"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

func (a *App) handleFeed(c echo.Context) error {
	base := a.Config.URL
	posts := a.Catalog.Latest(len(a.Catalog.Posts()))
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		link := base + views.PostPath(p)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        link,
			Description: p.Snippet,
			Category:    p.Category,
			PubDate:     p.Published().Format(time.RFC1123Z),
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base + page.Blog.Path(),
			Description: a.Config.Description,
			Items:       items,
		},
	}
	return writeXML(c, "application/rss+xml; charset=utf-8", feed)
}

func (a *App) handleSitemap(c echo.Context) error {
	base := a.Config.URL
	posts := a.Catalog.Posts()
	urls := make([]sitemapURL, 0, len(page.All)+len(posts))
	for _, id := range page.All {
		u := sitemapURL{Loc: base + id.Path()}
		if id == page.Blog && len(posts) > 0 {
			u.LastMod = posts[0].Published().Format("2006-01-02")
		}
		urls = append(urls, u)
	}
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:     base + views.PostPath(p),
			LastMod: p.Published().Format("2006-01-02"),
		})
	}
	return writeXML(c, "application/xml; charset=utf-8", sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	})
}

func writeXML(c echo.Context, contentType string, v any) error {
	c.Response().Header().Set(echo.HeaderContentType, contentType)
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(v)
}
