package goquery_test

import (
	"testing"

	"github.com/fwojciec/docpeek"
	"github.com/fwojciec/docpeek/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkExtractor_ExtractPreviewLinks(t *testing.T) {
	t.Parallel()

	t.Run("extracts preview targets in document order", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html><body>
<nav><a href="../index.html">Home</a></nav>
<article>
<p>See <a href="../basics/loop.html#update" data-preview="../basics/loop.html#update">the  update step</a>
and <a href="collisions.html" data-preview="collisions.html">collisions</a>.</p>
<p>Jump to <a href="#setup" data-preview="#setup">setup</a>.</p>
</article>
</body></html>`

		links, err := goquery.NewLinkExtractor().ExtractPreviewLinks(html, "https://cook.example/guides/physics.html")

		require.NoError(t, err)
		require.Len(t, links, 3)

		assert.Equal(t, docpeek.PreviewKey{URL: "https://cook.example/basics/loop.html", Anchor: "update"}, links[0].Key)
		assert.Equal(t, "../basics/loop.html#update", links[0].Href)
		assert.Equal(t, "the update step", links[0].Text)

		assert.Equal(t, docpeek.PreviewKey{URL: "https://cook.example/guides/collisions.html"}, links[1].Key)

		assert.Equal(t, docpeek.PreviewKey{URL: "https://cook.example/guides/physics.html", Anchor: "setup"}, links[2].Key)
	})

	t.Run("preview target is independent of rewritten href", func(t *testing.T) {
		t.Parallel()

		html := `<a href="/cookbook/guides/a.html" data-preview="a.html#x">A</a>`

		links, err := goquery.NewLinkExtractor().ExtractPreviewLinks(html, "https://cook.example/guides/b.html")

		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, "https://cook.example/guides/a.html#x", links[0].Key.String())
	})

	t.Run("keeps duplicates", func(t *testing.T) {
		t.Parallel()

		html := `<a data-preview="a.html">A</a><a data-preview="a.html">A again</a>`

		links, err := goquery.NewLinkExtractor().ExtractPreviewLinks(html, "https://cook.example/")

		require.NoError(t, err)
		assert.Len(t, links, 2)
	})

	t.Run("skips empty targets", func(t *testing.T) {
		t.Parallel()

		html := `<a data-preview="  ">A</a><a href="b.html">B</a>`

		links, err := goquery.NewLinkExtractor().ExtractPreviewLinks(html, "https://cook.example/")

		require.NoError(t, err)
		assert.Empty(t, links)
	})

	t.Run("rejects invalid page URL", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewLinkExtractor().ExtractPreviewLinks(`<a data-preview="a.html">A</a>`, "http://[::1")

		require.Error(t, err)
		assert.Equal(t, docpeek.EINVALID, docpeek.ErrorCode(err))
	})
}
