// Package analytics records privacy-friendly page views for the site.
// Visitors are identified only by salted hashes; nothing is sent to
// third parties.
package analytics

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"
)

// salt holds the per-installation random salt for IP hashing.
var salt struct {
	mu    sync.RWMutex
	value string
}

// InitSalt loads the persisted salt, generating and storing one on first run.
// Call it once at startup before any views are recorded.
func InitSalt(store *Store) error {
	s, err := store.GetSetting("hash_salt")
	if err != nil {
		return fmt.Errorf("read hash salt: %w", err)
	}
	if s == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return fmt.Errorf("generate salt: %w", err)
		}
		s = hex.EncodeToString(b)
		if err := store.SetSetting("hash_salt", s); err != nil {
			return fmt.Errorf("store hash salt: %w", err)
		}
	}
	salt.mu.Lock()
	salt.value = s
	salt.mu.Unlock()
	return nil
}

func getSalt() string {
	salt.mu.RLock()
	defer salt.mu.RUnlock()
	return salt.value
}

// View is a single human page view.
type View struct {
	VisitorID string
	Page      string // page id, or "post:<id>" for the blog overlay
	Path      string
	Referrer  string
	Browser   string
	OS        string
	Device    string
	Timestamp time.Time
}

// BotView is a page view from a crawler.
type BotView struct {
	BotName   string
	UserAgent string
	Path      string
	Timestamp time.Time
}

// Stats holds aggregated analytics for a period.
type Stats struct {
	Period         string
	UniqueVisitors int
	TotalViews     int
	BotViews       int
	Pages          []Count
	Posts          []Count
	Browsers       []Count
	Devices        []Count
	Referrers      []Count
	Bots           []Count
	Daily          []Count
}

// Count is one row of a breakdown.
type Count struct {
	Name  string
	Count int
}

// VisitorID derives an anonymous, salted visitor id from IP and User-Agent.
func VisitorID(ip, userAgent string) string {
	h := sha256.Sum256([]byte(getSalt() + ip + "|" + userAgent))
	return hex.EncodeToString(h[:])[:16]
}

// ParseUserAgent extracts browser, OS, and device class from a User-Agent.
func ParseUserAgent(ua string) (browser, os, device string) {
	ua = strings.ToLower(ua)

	// More specific browsers first: Edge and Opera UAs also contain "chrome".
	switch {
	case strings.Contains(ua, "firefox"):
		browser = "Firefox"
	case strings.Contains(ua, "opera") || strings.Contains(ua, "opr/"):
		browser = "Opera"
	case strings.Contains(ua, "edg"):
		browser = "Edge"
	case strings.Contains(ua, "chrome"):
		browser = "Chrome"
	case strings.Contains(ua, "safari"):
		browser = "Safari"
	default:
		browser = "Other"
	}

	// Android before Linux: Android UAs contain "linux".
	switch {
	case strings.Contains(ua, "windows"):
		os = "Windows"
	case strings.Contains(ua, "android"):
		os = "Android"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		os = "iOS"
	case strings.Contains(ua, "macintosh") || strings.Contains(ua, "mac os"):
		os = "macOS"
	case strings.Contains(ua, "linux"):
		os = "Linux"
	default:
		os = "Other"
	}

	// iPad UAs contain "mobile"; check tablets first.
	switch {
	case strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad"):
		device = "Tablet"
	case strings.Contains(ua, "mobile"):
		device = "Mobile"
	default:
		device = "Desktop"
	}
	return
}

var botMarkers = []string{
	"bot", "crawler", "spider", "crawl", "slurp", "scrape",
	"yandex", "baidu", "facebookexternalhit", "whatsapp",
}

// IsBot reports whether ua looks like a crawler or link-preview fetcher.
func IsBot(ua string) bool {
	ua = strings.ToLower(ua)
	for _, m := range botMarkers {
		if strings.Contains(ua, m) {
			return true
		}
	}
	return false
}

var botNames = []struct{ pattern, name string }{
	{"googlebot", "Googlebot"},
	{"bingbot", "Bingbot"},
	{"yandex", "Yandex"},
	{"baidu", "Baidu"},
	{"duckduckbot", "DuckDuckBot"},
	{"facebookexternalhit", "Facebook"},
	{"whatsapp", "WhatsApp"},
	{"twitterbot", "Twitterbot"},
	{"linkedinbot", "LinkedIn"},
	{"ahrefsbot", "Ahrefs"},
	{"semrushbot", "SEMrush"},
	{"slurp", "Yahoo Slurp"},
}

// ExtractBotName maps a crawler User-Agent to a display name.
func ExtractBotName(ua string) string {
	ua = strings.ToLower(ua)
	for _, b := range botNames {
		if strings.Contains(ua, b.pattern) {
			return b.name
		}
	}
	if strings.Contains(ua, "bot") || strings.Contains(ua, "crawl") || strings.Contains(ua, "spider") {
		return "Other Bot"
	}
	return "Unknown"
}

// CleanReferrer reduces a referrer URL to its host. Empty referrers are
// "Direct", links from selfHost are "Internal" and anything without a
// parsable host is "Other".
func CleanReferrer(ref, selfHost string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "Direct"
	}
	u, err := url.Parse(ref)
	if err != nil {
		return "Other"
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	if host == "" {
		return "Other"
	}
	if selfHost != "" && host == strings.TrimPrefix(strings.ToLower(selfHost), "www.") {
		return "Internal"
	}
	return host
}
