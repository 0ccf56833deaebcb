package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	posts := c.Posts()
	require.Len(t, posts, 6)
	for i, p := range posts {
		require.Equal(t, i+1, p.ID, "posts keep catalog order")
	}

	seen := map[int]bool{}
	for _, p := range posts {
		require.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
		require.NotEmpty(t, p.Title)
		require.NotEmpty(t, p.Content)
		require.False(t, p.Published().IsZero())
	}

	require.Len(t, c.Services(), 10)
	require.Len(t, c.Process(), 5)
	require.NotEmpty(t, c.Values())
}

func TestCatalogPostLookup(t *testing.T) {
	c := MustLoad()

	p, ok := c.Post(2)
	require.True(t, ok)
	require.Equal(t, "Cybersecurity Best Practices for Remote Learning", p.Title)
	require.Equal(t, "Security", p.Category)
	require.True(t, c.Contains(p))

	_, ok = c.Post(99)
	require.False(t, ok)
	require.False(t, c.Contains(Post{ID: 99, Title: "x"}))

	forged := p
	forged.Title = "Not in the catalog"
	require.False(t, c.Contains(forged))
}

func TestCatalogPostsIsCopy(t *testing.T) {
	c := MustLoad()
	posts := c.Posts()
	posts[0].Title = "mutated"

	again := c.Posts()
	require.NotEqual(t, "mutated", again[0].Title)
}

func TestLatest(t *testing.T) {
	c := MustLoad()
	require.Len(t, c.Latest(3), 3)
	require.Len(t, c.Latest(50), 6)

	latest := c.Latest(50)
	for i := 1; i < len(latest); i++ {
		require.False(t, latest[i].Published().After(latest[i-1].Published()), "latest must be newest first")
	}
	require.Equal(t, 1, c.Posts()[0].ID, "Latest must not reorder the catalog")
}

func TestParseKeepsCatalogOrder(t *testing.T) {
	c, err := Parse([]byte(`posts:
  - {id: 7, title: Older, date: "January 02, 2023", content: a}
  - {id: 3, title: Newer, date: "March 04, 2025", content: b}
`), []byte("services: []\n"))
	require.NoError(t, err)

	posts := c.Posts()
	require.Equal(t, []int{7, 3}, []int{posts[0].ID, posts[1].ID})
	require.Equal(t, 3, c.Latest(1)[0].ID)
}

func TestParseRejectsInvalidCatalog(t *testing.T) {
	tests := []struct {
		name  string
		posts string
	}{
		{"zero id", "posts:\n  - id: 0\n    title: a\n    date: \"October 15, 2024\"\n"},
		{"missing title", "posts:\n  - id: 1\n    date: \"October 15, 2024\"\n"},
		{"bad date", "posts:\n  - id: 1\n    title: a\n    date: \"2024-10-15\"\n"},
		{"duplicate id", "posts:\n  - id: 1\n    title: a\n    date: \"October 15, 2024\"\n  - id: 1\n    title: b\n    date: \"October 16, 2024\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.posts), []byte("services: []\n"))
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidCatalog), "got %v", err)
		})
	}
}
