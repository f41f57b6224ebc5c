package gfm_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdpreview/pkg/gfm"
	"github.com/yaklabco/mdpreview/pkg/render"
	"github.com/yaklabco/mdpreview/pkg/theme"
)

func newEngine(mutate ...func(*gfm.Options)) *gfm.Engine {
	opts := gfm.Options{
		Flavor:          gfm.FlavorGFM,
		Theme:           "github",
		MaxInputBytes:   render.DefaultMaxInputBytes,
		SyntaxHighlight: true,
	}
	for _, fn := range mutate {
		fn(&opts)
	}
	return gfm.New(opts)
}

func TestRenderBody_Basics(t *testing.T) {
	t.Parallel()

	got := newEngine().RenderBody("# Title\n\nSome *italic* and **bold** text.")

	assert.Contains(t, got, `<h1 id="title">Title</h1>`)
	assert.Contains(t, got, "<em>italic</em>")
	assert.Contains(t, got, "<strong>bold</strong>")
}

func TestRenderBody_Flavor(t *testing.T) {
	t.Parallel()

	const table = "|A|B|\n|---|---|\n|1|2|"

	assert.Contains(t, newEngine().RenderBody(table), "<table>")

	commonmark := newEngine(func(o *gfm.Options) { o.Flavor = gfm.FlavorCommonMark })
	assert.Equal(t, gfm.FlavorCommonMark, commonmark.Flavor())
	assert.NotContains(t, commonmark.RenderBody(table), "<table>")

	assert.Equal(t, gfm.FlavorGFM, newEngine(func(o *gfm.Options) { o.Flavor = "bogus" }).Flavor())
}

func TestRenderBody_OmitsRawHTML(t *testing.T) {
	t.Parallel()

	got := newEngine().RenderBody("<script>alert(1)</script>\n\ntext")

	assert.NotContains(t, got, "<script>")
	assert.Contains(t, got, "<p>text</p>")
}

func TestRenderBody_Highlighting(t *testing.T) {
	t.Parallel()

	const input = "```go\nfunc main() {}\n```"

	highlighted := newEngine().RenderBody(input)
	assert.Contains(t, highlighted, "style=")
	assert.NotContains(t, highlighted, `<pre><code class="language-go">`)

	plain := newEngine(func(o *gfm.Options) { o.SyntaxHighlight = false }).RenderBody(input)
	assert.Contains(t, plain, `<pre><code class="language-go">`)
}

func TestRenderBody_PlaceholderAndTruncation(t *testing.T) {
	t.Parallel()

	engine := newEngine(func(o *gfm.Options) { o.MaxInputBytes = 16 })

	assert.Equal(t, render.Placeholder(), engine.RenderBody("  \n"))

	got := engine.RenderBody(strings.Repeat("a", 10) + "\n\nTAILMARKER")
	assert.NotContains(t, got, "TAILMARKER")
	assert.True(t, strings.HasSuffix(got, render.TruncationNotice()))
}

func TestSetTheme(t *testing.T) {
	t.Parallel()

	engine := newEngine(func(o *gfm.Options) { o.Title = "Doc" })

	require.NoError(t, engine.SetTheme("dark"))
	doc := engine.Render("# x")
	assert.Contains(t, doc, "#0d1117")
	assert.Contains(t, doc, "<title>Doc</title>")

	err := engine.SetTheme("unknown")
	require.ErrorIs(t, err, theme.ErrUnknownTheme)
	assert.Contains(t, engine.Render("# x"), "#0d1117")
}
