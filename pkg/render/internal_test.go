package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegments_EscapeOnlyUserText(t *testing.T) {
	t.Parallel()

	segs := segments{
		markup(`<span class="keyword">`),
		literal("if a < b && c"),
		markup("</span>"),
		raw(` "q"`),
	}

	assert.Equal(t, `<span class="keyword">if a &lt; b &amp;&amp; c</span> &quot;q&quot;`, segs.String())
}

func TestSegments_RewriteSkipsNonRaw(t *testing.T) {
	t.Parallel()

	segs := segments{literal("*keep*"), raw("*change*")}.rewrite(matchItalic)

	assert.Equal(t, segments{
		literal("*keep*"),
		markup("<em>"),
		raw("change"),
		markup("</em>"),
	}, segs)
}

func TestDelimited(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text  string
		start int
		end   int
		ok    bool
	}{
		{"*a*", 0, 3, true},
		{"x *ab* y", 2, 6, true},
		{"**a", 0, 0, false},
		{"** *b*", 1, 4, true},
		{"*", 0, 0, false},
		{"", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			start, end, ok := delimited(tt.text, '*')
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.start, start)
				assert.Equal(t, tt.end, end)
			}
		})
	}
}

func TestParseListItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want listItem
		ok   bool
	}{
		{"- a", listItem{level: 0, start: 1, text: "a"}, true},
		{"    * b", listItem{level: 2, start: 1, text: "b"}, true},
		{"\t+ c", listItem{level: 2, start: 1, text: "c"}, true},
		{"12. d", listItem{level: 0, ordered: true, start: 12, text: "d"}, true},
		{"   1.\te", listItem{level: 1, ordered: true, start: 1, text: "e"}, true},
		{"-a", listItem{}, false},
		{"1.a", listItem{}, false},
		{"1) a", listItem{}, false},
		{"", listItem{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			got, ok := parseListItem(tt.line)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIsSeparator(t *testing.T) {
	t.Parallel()

	assert.True(t, isSeparator("|---|---|"))
	assert.True(t, isSeparator(" :--: | --: "))
	assert.True(t, isSeparator("---"))
	assert.False(t, isSeparator("|---|   |"))
	assert.False(t, isSeparator("|"))
	assert.False(t, isSeparator("| a |"))
	assert.False(t, isSeparator(""))
}

func TestSafeURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "#", safeURL("javascript:alert(1)"))
	assert.Equal(t, "#", safeURL(" JavaScript:x"))
	assert.Equal(t, "#", safeURL("java\tscript:x"))
	assert.Equal(t, "#", safeURL("VBScript:x"))
	assert.Equal(t, "#", safeURL("data:text/html,x"))
	assert.Equal(t, "https://example.com", safeURL("https://example.com"))
	assert.Equal(t, "docs/readme.md", safeURL("docs/readme.md"))
}

func TestClosingParen(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 3, closingParen("url) tail"))
	assert.Equal(t, 13, closingParen("Go_(language)) x"))
	assert.Equal(t, 3, closingParen("b(c) d"))
	assert.Equal(t, -1, closingParen("no close"))
	assert.Equal(t, 0, closingParen(")"))
}

func TestRenderBody_RecoversPanics(t *testing.T) {
	t.Parallel()

	renderer := New(DefaultOptions())
	renderer.convert = func(string) string {
		panic("boom <x>")
	}

	got := renderer.RenderBody("# anything")
	assert.True(t, strings.HasPrefix(got, `<div class="render-error">`))
	assert.Contains(t, got, "boom &lt;x&gt;")

	doc := renderer.Render("# anything")
	assert.Contains(t, doc, "<!DOCTYPE html>")
	assert.Contains(t, doc, "render-error")
}

func TestNbsp(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "&nbsp;&nbsp;", nbsp("  "))
	assert.Equal(t, strings.Repeat("&nbsp;", 5), nbsp("\t "))
}
