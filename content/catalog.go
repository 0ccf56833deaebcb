// Package content holds the static site catalog: blog posts, services and
// the delivery process. The catalog ships embedded in the binary and is
// read-only once loaded.
package content

import (
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DateLayout is the publish date format used by the catalog, e.g. "October 15, 2024".
const DateLayout = "January 02, 2006"

// ErrInvalidCatalog is returned when the embedded catalog fails validation.
var ErrInvalidCatalog = errors.New("content: invalid catalog")

//go:embed posts.yaml services.yaml
var files embed.FS

// Post is a single blog entry.
type Post struct {
	ID       int    `yaml:"id"`
	Title    string `yaml:"title"`
	Snippet  string `yaml:"snippet"`
	Content  string `yaml:"content"` // markdown
	Date     string `yaml:"date"`
	Category string `yaml:"category"`
	ReadTime string `yaml:"read_time"`
	Image    string `yaml:"image"` // file name under images/blog/

	published time.Time
}

// Published returns the parsed publish date.
func (p Post) Published() time.Time {
	return p.published
}

// Service is one offering listed on the services page.
type Service struct {
	Slug    string `yaml:"slug"`
	Title   string `yaml:"title"`
	Summary string `yaml:"summary"`
}

// Step is one stage of the delivery process.
type Step struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// Catalog is the immutable set of site content.
type Catalog struct {
	posts    []Post
	byID     map[int]int
	services []Service
	process  []Step
	values   []string
}

type postsFile struct {
	Posts []Post `yaml:"posts"`
}

type servicesFile struct {
	Services []Service `yaml:"services"`
	Process  []Step    `yaml:"process"`
	Values   []string  `yaml:"values"`
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	postsYAML, err := files.ReadFile("posts.yaml")
	if err != nil {
		return nil, err
	}
	servicesYAML, err := files.ReadFile("services.yaml")
	if err != nil {
		return nil, err
	}
	return Parse(postsYAML, servicesYAML)
}

// MustLoad is like Load but panics on error. The embedded catalog is
// validated by tests, so a failure here is a build defect.
func MustLoad() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a Catalog from raw YAML documents.
func Parse(postsYAML, servicesYAML []byte) (*Catalog, error) {
	var pf postsFile
	if err := yaml.Unmarshal(postsYAML, &pf); err != nil {
		return nil, fmt.Errorf("content: parse posts: %w", err)
	}
	var sf servicesFile
	if err := yaml.Unmarshal(servicesYAML, &sf); err != nil {
		return nil, fmt.Errorf("content: parse services: %w", err)
	}

	c := &Catalog{
		byID:     make(map[int]int, len(pf.Posts)),
		services: sf.Services,
		process:  sf.Process,
		values:   sf.Values,
	}
	for _, p := range pf.Posts {
		if p.ID <= 0 {
			return nil, fmt.Errorf("%w: post id %d must be positive", ErrInvalidCatalog, p.ID)
		}
		if strings.TrimSpace(p.Title) == "" {
			return nil, fmt.Errorf("%w: post %d has no title", ErrInvalidCatalog, p.ID)
		}
		t, err := time.Parse(DateLayout, p.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: post %d date %q: %v", ErrInvalidCatalog, p.ID, p.Date, err)
		}
		p.published = t
		p.Content = strings.TrimSpace(p.Content)
		c.posts = append(c.posts, p)
	}

	for i, p := range c.posts {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate post id %d", ErrInvalidCatalog, p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

// Posts returns all posts in catalog order. The slice is a copy.
func (c *Catalog) Posts() []Post {
	out := make([]Post, len(c.posts))
	copy(out, c.posts)
	return out
}

// Post looks up a post by id.
func (c *Catalog) Post(id int) (Post, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Post{}, false
	}
	return c.posts[i], true
}

// Contains reports whether p is an entry of the catalog.
func (c *Catalog) Contains(p Post) bool {
	got, ok := c.Post(p.ID)
	return ok && got.Title == p.Title && got.Content == p.Content
}

// Latest returns up to n posts by publish date, newest first. Posts with
// the same date keep catalog order.
func (c *Catalog) Latest(n int) []Post {
	posts := c.Posts()
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].published.After(posts[j].published)
	})
	if n > len(posts) {
		n = len(posts)
	}
	return posts[:n]
}

func (c *Catalog) Services() []Service { return append([]Service(nil), c.services...) }

func (c *Catalog) Process() []Step { return append([]Step(nil), c.process...) }

func (c *Catalog) Values() []string { return append([]string(nil), c.values...) }
