package media

import (
	"io/fs"
	"strconv"
	"sync"
	"time"
)

type cacheEntry struct {
	thumb   Thumb
	fetched time.Time
}

// ThumbCache keeps rendered thumbnails in memory for ttl.
type ThumbCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	fsys    fs.FS
	now     func() time.Time
}

// NewThumbCache creates a ThumbCache reading source images from fsys.
func NewThumbCache(fsys fs.FS, ttl time.Duration) *ThumbCache {
	return &ThumbCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		fsys:    fsys,
		now:     time.Now,
	}
}

func cacheKey(name string, width int) string {
	return name + "@" + strconv.Itoa(width)
}

// Get returns the thumbnail for name at width, rendering it on a miss.
// Failed renders are not cached.
func (c *ThumbCache) Get(name string, width int) (Thumb, error) {
	key := cacheKey(name, width)

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.now().Sub(e.fetched) < c.ttl {
		return e.thumb, nil
	}

	t, err := Render(c.fsys, name, width)
	if err != nil {
		return Thumb{}, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{thumb: t, fetched: c.now()}
	c.mu.Unlock()
	return t, nil
}

// Len returns the number of cached thumbnails, fresh or stale.
func (c *ThumbCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Invalidate drops every cached thumbnail.
func (c *ThumbCache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}
