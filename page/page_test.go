package page

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRouterStartsAtInitial(t *testing.T) {
	r := NewRouter(Default)
	require.Equal(t, Home, r.Current())
}

func TestNavigateEveryKnownPage(t *testing.T) {
	r := NewRouter(Default)
	var scrolled []ID
	r.OnChange(func(id ID) { scrolled = append(scrolled, id) })

	for _, id := range All {
		r.Navigate(id)
		require.Equal(t, id, r.Current())
	}
	require.Equal(t, All, scrolled, "every navigation should fire the scroll reset")
}

func TestNavigateSamePageStillNotifies(t *testing.T) {
	r := NewRouter(Blog)
	calls := 0
	r.OnChange(func(ID) { calls++ })

	r.Navigate(Blog)
	r.Navigate(Blog)
	require.Equal(t, 2, calls)
}

func TestNavigateUnknownIsStoredAsIs(t *testing.T) {
	r := NewRouter(Default)
	r.Navigate(ID("pricing"))
	require.Equal(t, ID("pricing"), r.Current())
	require.False(t, r.Current().Known())
	require.Equal(t, "", r.Current().Label())
}

func TestPaths(t *testing.T) {
	tests := []struct {
		id   ID
		path string
	}{
		{Home, "/"},
		{Services, "/services/"},
		{About, "/about/"},
		{Blog, "/blog/"},
		{Contact, "/contact/"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.path, tt.id.Path())
		require.Equal(t, tt.id, FromPath(tt.path))
	}
}

func TestFromPath(t *testing.T) {
	require.Equal(t, Home, FromPath(""))
	require.Equal(t, Blog, FromPath("/blog/posts/3/"))
	require.Equal(t, Contact, FromPath("/Contact"))
	require.Equal(t, ID("nope"), FromPath("/nope/"))
}

func TestListenerAddedDuringNavigateRunsNextTime(t *testing.T) {
	r := NewRouter(Default)
	var late int
	r.OnChange(func(ID) {
		r.OnChange(func(ID) { late++ })
	})

	r.Navigate(About)
	require.Equal(t, 0, late, "listeners registered mid-navigation wait for the next one")

	r.Navigate(Blog)
	require.Equal(t, 1, late)
}
