package analytics

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/ivs-digital/ivsite/page"
)

const (
	chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"
	iphoneUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1"
	googleUA = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, InitSalt(s))
	return s
}

func TestSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	v, err := s.GetSetting("missing")
	require.NoError(t, err)
	require.Equal(t, "", v)

	require.NoError(t, s.SetSetting("k", "one"))
	require.NoError(t, s.SetSetting("k", "two"))
	v, err = s.GetSetting("k")
	require.NoError(t, err)
	require.Equal(t, "two", v)

	ver, err := s.GetSetting("schema_version")
	require.NoError(t, err)
	require.Equal(t, "1", ver)
}

func TestInitSaltIsStable(t *testing.T) {
	s := newTestStore(t)
	first, err := s.GetSetting("hash_salt")
	require.NoError(t, err)
	require.Len(t, first, 64)

	require.NoError(t, InitSalt(s))
	second, err := s.GetSetting("hash_salt")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, VisitorID("203.0.113.1", chromeUA), VisitorID("203.0.113.1", chromeUA))
	require.NotEqual(t, VisitorID("203.0.113.1", chromeUA), VisitorID("203.0.113.2", chromeUA))
}

func TestRecorderAndStats(t *testing.T) {
	s := newTestStore(t)
	rec := NewRecorder(s, "ivs.example", nil)
	ctx := context.Background()

	alice := Request{IP: "203.0.113.10", UserAgent: chromeUA, Path: "/"}
	bob := Request{IP: "203.0.113.11", UserAgent: iphoneUA, Path: "/blog/", Referrer: "https://www.google.com/search?q=ivs"}

	r := page.NewRouter(page.Default)
	r.OnChange(rec.Listener(ctx, alice))
	r.Navigate(page.Home)
	r.Navigate(page.Services)
	r.Navigate(page.ID("unknown"))

	require.NoError(t, rec.Record(ctx, bob, "blog"))
	require.NoError(t, rec.Record(ctx, bob, "post:3"))
	require.NoError(t, rec.Record(ctx, Request{IP: "198.51.100.1", UserAgent: googleUA, Path: "/"}, "home"))
	require.NoError(t, rec.Record(ctx, Request{IP: "198.51.100.2", UserAgent: chromeUA, DNT: true}, "home"))

	now := time.Now()
	st, err := s.Stats(ctx, now.Add(-time.Hour), now.Add(time.Hour))
	require.NoError(t, err)

	require.Equal(t, 4, st.TotalViews)
	require.Equal(t, 2, st.UniqueVisitors)
	require.Equal(t, 1, st.BotViews)
	require.ElementsMatch(t, []Count{{"blog", 1}, {"home", 1}, {"services", 1}}, st.Pages)
	require.Equal(t, []Count{{"post:3", 1}}, st.Posts)
	require.Equal(t, []Count{{"Googlebot", 1}}, st.Bots)
	require.Contains(t, st.Referrers, Count{"google.com", 2})
	require.Len(t, st.Daily, 1)
	require.Equal(t, 4, st.Daily[0].Count)
}

func TestDeleteBefore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	old := time.Now().AddDate(-2, 0, 0)

	require.NoError(t, s.RecordView(ctx, View{VisitorID: "a", Page: "home", Path: "/", Browser: "Chrome", OS: "Linux", Device: "Desktop", Timestamp: old}))
	require.NoError(t, s.RecordView(ctx, View{VisitorID: "b", Page: "home", Path: "/", Browser: "Chrome", OS: "Linux", Device: "Desktop"}))
	require.NoError(t, s.RecordBotView(ctx, BotView{BotName: "Bingbot", UserAgent: "bingbot", Path: "/", Timestamp: old}))

	n, err := s.DeleteBefore(ctx, time.Now().AddDate(-1, 0, 0))
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	st, err := s.Stats(ctx, old.Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, st.TotalViews)
	require.Equal(t, 0, st.BotViews)
}

func TestCleanupSchedulerStops(t *testing.T) {
	s := newTestStore(t)
	stop := s.StartCleanupScheduler(365, 10*time.Millisecond, t.Logf)
	time.Sleep(30 * time.Millisecond)
	stop()
}

func TestCleanupSchedulerRunsAtStart(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	old := time.Now().AddDate(-2, 0, 0)
	require.NoError(t, s.RecordView(ctx, View{VisitorID: "a", Page: "home", Path: "/", Browser: "Chrome", OS: "Linux", Device: "Desktop", Timestamp: old}))

	stop := s.StartCleanupScheduler(365, time.Hour, t.Logf)
	defer stop()

	st, err := s.Stats(ctx, old.Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.Equal(t, 0, st.TotalViews)
}

func TestTruncateKeepsRunes(t *testing.T) {
	s := "a" + strings.Repeat("é", 300)
	got := truncate(s, 512)
	require.True(t, utf8.ValidString(got))
	require.Len(t, got, 511)

	require.Equal(t, "short", truncate("short", 512))
	require.Equal(t, "abc", truncate("abcdef", 3))
}
