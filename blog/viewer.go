// Package blog holds the post detail viewer state.
package blog

import (
	"errors"
	"sync"

	"github.com/ivs-digital/ivsite/content"
)

// ErrUnknownPost is returned when selecting a post that is not in the catalog.
var ErrUnknownPost = errors.New("blog: post not in catalog")

// Viewer tracks which post, if any, is open in the detail overlay.
type Viewer struct {
	catalog *content.Catalog

	mu       sync.RWMutex
	selected *content.Post
}

// NewViewer returns a Viewer over catalog with nothing selected.
func NewViewer(catalog *content.Catalog) *Viewer {
	return &Viewer{catalog: catalog}
}

// Select opens the overlay for p. p must be a catalog entry.
func (v *Viewer) Select(p content.Post) error {
	if !v.catalog.Contains(p) {
		return ErrUnknownPost
	}
	v.set(&p)
	return nil
}

// SelectID opens the overlay for the catalog post with the given id.
func (v *Viewer) SelectID(id int) (content.Post, error) {
	p, ok := v.catalog.Post(id)
	if !ok {
		return content.Post{}, ErrUnknownPost
	}
	v.set(&p)
	return p, nil
}

// Clear dismisses the overlay.
func (v *Viewer) Clear() {
	v.set(nil)
}

// Selected returns the open post and whether the overlay is shown.
func (v *Viewer) Selected() (content.Post, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.selected == nil {
		return content.Post{}, false
	}
	return *v.selected, true
}

func (v *Viewer) set(p *content.Post) {
	v.mu.Lock()
	v.selected = p
	v.mu.Unlock()
}
