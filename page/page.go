// Package page defines the site's page identifiers and the router that
// holds which one is currently displayed.
package page

import (
	"slices"
	"strings"
	"sync"
)

// ID identifies one of the site's top-level views.
type ID string

const (
	Home     ID = "home"
	Services ID = "services"
	About    ID = "about"
	Blog     ID = "blog"
	Contact  ID = "contact"
)

// Default is the page shown before any navigation.
const Default = Home

// All lists the known pages in navigation order.
var All = []ID{Home, Services, About, Blog, Contact}

var labels = map[ID]string{
	Home:     "Home",
	Services: "Services",
	About:    "About Us",
	Blog:     "Blog",
	Contact:  "Contact",
}

// Known reports whether id is one of the five site pages.
func (id ID) Known() bool {
	_, ok := labels[id]
	return ok
}

// Label is the navigation text for id, or "" for unknown ids.
func (id ID) Label() string {
	return labels[id]
}

// Path is the canonical URL path for id. Unknown ids map to "/<id>/".
func (id ID) Path() string {
	if id == Home {
		return "/"
	}
	return "/" + string(id) + "/"
}

func (id ID) String() string {
	return string(id)
}

// FromPath resolves a request path to a page id. The root path is Home;
// anything else is returned as its first segment without validation.
func FromPath(p string) ID {
	p = strings.Trim(p, "/")
	if p == "" {
		return Home
	}
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	return ID(strings.ToLower(p))
}

// Router holds the currently displayed page. Navigate replaces it whole and
// notifies listeners on every call; there is no history stack. Browser
// history is handled by giving every page its own URL.
type Router struct {
	mu        sync.Mutex
	current   ID
	listeners []func(ID)
}

// NewRouter returns a router positioned at initial.
func NewRouter(initial ID) *Router {
	return &Router{current: initial}
}

// OnChange registers fn to run after every navigation.
func (r *Router) OnChange(fn func(ID)) {
	r.mu.Lock()
	r.listeners = append(r.listeners, fn)
	r.mu.Unlock()
}

// Navigate sets the current page to id unconditionally. Unknown ids are
// stored as given; renderers show an empty body for them.
func (r *Router) Navigate(id ID) {
	r.mu.Lock()
	r.current = id
	listeners := slices.Clone(r.listeners)
	r.mu.Unlock()

	for _, fn := range listeners {
		fn(id)
	}
}

// Current returns the page most recently navigated to.
func (r *Router) Current() ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}
