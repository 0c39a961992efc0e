package goquery_test

import (
	"testing"

	"github.com/fwojciec/docpeek"
	"github.com/fwojciec/docpeek/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resolve parses html and resolves anchor in it.
func resolve(t *testing.T, html, anchor string) (string, bool) {
	t.Helper()

	doc, err := goquery.NewParser().Parse(html)
	require.NoError(t, err)
	return docpeek.Resolve(doc, anchor)
}

func TestResolve_Anchor(t *testing.T) {
	t.Parallel()

	t.Run("uses abstract marker after the anchor", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html><body><article>
<h1>Physics</h1>
<h2 id="intro">Introduction</h2>
<p><span data-abstract="A short summary."></span>Long introduction prose.</p>
</article></body></html>`

		text, ok := resolve(t, html, "intro")

		assert.True(t, ok)
		assert.Equal(t, "A short summary.", text)
	})

	t.Run("code block marker after the anchor yields no preview", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h2 id="intro">Introduction</h2>
<div class="codehilite"><pre><span></span><code class="language-lua"><span data-attrs="1-2"></span>local x = 1
print(x)</code></pre></div>
</body></html>`

		_, ok := resolve(t, html, "intro")

		assert.False(t, ok)
	})

	t.Run("line-range marker alone yields no preview", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h2 id="intro">Introduction</h2>
<div><span data-attrs="3"></span></div>
</body></html>`

		_, ok := resolve(t, html, "intro")

		assert.False(t, ok)
	})

	t.Run("bare pre block yields no preview", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h2 id="intro">Intro</h2><pre>x = 1</pre></body></html>`

		_, ok := resolve(t, html, "intro")

		assert.False(t, ok)
	})

	t.Run("permalink marker yields no preview", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a id="intro"></a>
<h2><a class="anchor" href="#intro">¶</a>Introduction</h2>
</body></html>`

		_, ok := resolve(t, html, "intro")

		assert.False(t, ok)
	})

	t.Run("uses next sibling text", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h2 id="loop">Game loop</h2>
<p>The   update step
   runs every <em>frame</em>.</p>
<p>Second paragraph.</p>
</body></html>`

		text, ok := resolve(t, html, "loop")

		assert.True(t, ok)
		assert.Equal(t, "The update step runs every frame.", text)
	})

	t.Run("renders lists line by line", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h2 id="steps">Steps</h2>
<ul><li>Load assets</li><li>Start <b>loop</b></li></ul>
</body></html>`

		text, ok := resolve(t, html, "steps")

		assert.True(t, ok)
		assert.Equal(t, "Load assets\nStart loop", text)
	})

	t.Run("missing anchor yields no preview despite page content", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article>
<h1>Physics</h1>
<p><span data-abstract="Page summary."></span></p>
<p>Hello world.</p>
</article></body></html>`

		_, ok := resolve(t, html, "missing")

		assert.False(t, ok)
	})

	t.Run("anchor with css metacharacters matches literally", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h2 id="a.b:c">Odd</h2><p>Matched.</p></body></html>`

		text, ok := resolve(t, html, "a.b:c")

		assert.True(t, ok)
		assert.Equal(t, "Matched.", text)
	})

	t.Run("anchor on last element yields no preview", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Before.</p><h2 id="end">End</h2></body></html>`

		_, ok := resolve(t, html, "end")

		assert.False(t, ok)
	})

	t.Run("abstract text is used verbatim", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			attr string
			want string
		}{
			{"angle brackets", `Use the &lt;canvas&gt; element.`, "Use the <canvas> element."},
			{"comparison", `Compare a&lt;b and b&gt;c.`, "Compare a<b and b>c."},
			{"entity decoded once", `Escape &amp;lt; as text.`, "Escape &lt; as text."},
			{"inner spacing kept", `Line one.  Two   spaces.`, "Line one.  Two   spaces."},
			{"outer space trimmed", `  Padded.  `, "Padded."},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				html := `<html><body><h2 id="s">S</h2>
<p><span data-abstract="` + tt.attr + `"></span></p>
</body></html>`

				text, ok := resolve(t, html, "s")

				assert.True(t, ok)
				assert.Equal(t, tt.want, text)
			})
		}
	})
}

func TestResolve_WholeDocument(t *testing.T) {
	t.Parallel()

	t.Run("uses abstract after article heading", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<p>Site banner.</p>
<article>
<h1>Physics</h1>
<p><span data-abstract="Simulate bodies and collisions."></span></p>
<p>Body text.</p>
</article></body></html>`

		text, ok := resolve(t, html, "")

		assert.True(t, ok)
		assert.Equal(t, "Simulate bodies and collisions.", text)
	})

	t.Run("uses abstract after h1 when there is no article", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<h1>Physics</h1>
<div><span data-abstract="Page summary."></span></div>
<p>Hello world.</p>
</body></html>`

		text, ok := resolve(t, html, "")

		assert.True(t, ok)
		assert.Equal(t, "Page summary.", text)
	})

	t.Run("abstract not directly after heading is ignored", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><article>
<h1>Physics</h1>
<p>Hello world.</p>
<p><span data-abstract="Too late."></span></p>
</article></body></html>`

		text, ok := resolve(t, html, "")

		assert.True(t, ok)
		assert.Equal(t, "Hello world.", text)
	})

	t.Run("falls back to first paragraph", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h1>Title</h1><p>Hello world.</p><p>More.</p></body></html>`

		text, ok := resolve(t, html, "")

		assert.True(t, ok)
		assert.Equal(t, "Hello world.", text)
	})

	t.Run("no paragraph yields no preview", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h1>Title</h1><div>Loose text</div></body></html>`

		_, ok := resolve(t, html, "")

		assert.False(t, ok)
	})

	t.Run("non-html body yields no preview", func(t *testing.T) {
		t.Parallel()

		_, ok := resolve(t, "\x00\x01 binary", "")

		assert.False(t, ok)
	})

	t.Run("script content is not rendered", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p><script>var x = 1;</script>Visible.</p></body></html>`

		text, ok := resolve(t, html, "")

		assert.True(t, ok)
		assert.Equal(t, "Visible.", text)
	})
}
