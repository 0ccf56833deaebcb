package media

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func testFS(t *testing.T) fstest.MapFS {
	return fstest.MapFS{
		"images/blog/wide.png":  {Data: pngBytes(t, 1600, 900)},
		"images/blog/small.png": {Data: pngBytes(t, 300, 200)},
		"images/blog/junk.png":  {Data: []byte("not an image")},
	}
}

func TestRenderDownscales(t *testing.T) {
	th, err := Render(testFS(t), "wide.png", 800)
	require.NoError(t, err)
	require.Equal(t, 800, th.Width)
	require.Equal(t, 450, th.Height)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(th.Data))
	require.NoError(t, err)
	require.Equal(t, 800, cfg.Width)
}

func TestRenderKeepsSmallImages(t *testing.T) {
	th, err := Render(testFS(t), "small.png", 1200)
	require.NoError(t, err)
	require.Equal(t, 300, th.Width)
	require.Equal(t, 200, th.Height)
}

func TestRenderErrors(t *testing.T) {
	fsys := testFS(t)

	_, err := Render(fsys, "wide.png", 333)
	require.True(t, errors.Is(err, ErrBadWidth))

	for _, name := range []string{"missing.png", "../secret.png", "", ".hidden", `a\b.png`} {
		_, err = Render(fsys, name, 800)
		require.True(t, errors.Is(err, ErrNotFound), "name %q: %v", name, err)
	}

	_, err = Render(fsys, "junk.png", 800)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNotFound))
}

func TestThumbCacheHitsAndExpires(t *testing.T) {
	fsys := testFS(t)
	c := NewThumbCache(fsys, time.Minute)
	now := time.Now()
	c.now = func() time.Time { return now }

	first, err := c.Get("wide.png", 480)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	// Remove the source: a fresh entry is still served from memory.
	delete(fsys, "images/blog/wide.png")
	second, err := c.Get("wide.png", 480)
	require.NoError(t, err)
	require.Equal(t, first.Data, second.Data)

	now = now.Add(2 * time.Minute)
	_, err = c.Get("wide.png", 480)
	require.True(t, errors.Is(err, ErrNotFound), "stale entry should re-render")

	c.Invalidate()
	require.Equal(t, 0, c.Len())
}
