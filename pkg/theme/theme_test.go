package theme_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdpreview/pkg/theme"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  theme.Name
	}{
		{"github", theme.GitHub},
		{"GitHub", theme.GitHub},
		{" dark ", theme.Dark},
		{"MINIMAL", theme.Minimal},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			preset, err := theme.Lookup(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, preset.Name)
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	t.Parallel()

	_, err := theme.Lookup("solarized")
	require.ErrorIs(t, err, theme.ErrUnknownTheme)
	assert.Contains(t, err.Error(), "github, dark, minimal")

	assert.Equal(t, theme.GitHub, theme.MustLookup("solarized").Name)
}

func TestNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"github", "dark", "minimal"}, theme.Names())
	assert.Len(t, theme.All(), 3)
}

func TestCSS_DiffersPerTheme(t *testing.T) {
	t.Parallel()

	light := theme.MustLookup("github").CSS()
	dark := theme.MustLookup("dark").CSS()

	assert.Contains(t, light, "#ffffff")
	assert.Contains(t, dark, "#0d1117")
	assert.NotEqual(t, light, dark)
	assert.NotContains(t, light, "{{")
	assert.Contains(t, light, ".keyword")
	assert.Contains(t, light, ".fold-toggle")
}

func TestWrap(t *testing.T) {
	t.Parallel()

	preset := theme.MustLookup("github")

	t.Run("complete document", func(t *testing.T) {
		t.Parallel()

		doc := preset.Wrap(theme.Page{Body: "<p>hi</p>\n"})
		assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
		assert.Contains(t, doc, "<title>Markdown Preview</title>")
		assert.Contains(t, doc, `<div class="markdown-body">`+"\n<p>hi</p>\n</div>")
		assert.NotContains(t, doc, "<script>")
		assert.True(t, strings.HasSuffix(doc, "</html>\n"))
	})

	t.Run("escapes title", func(t *testing.T) {
		t.Parallel()

		doc := preset.Wrap(theme.Page{Title: "<b>&</b>"})
		assert.Contains(t, doc, "<title>&lt;b&gt;&amp;&lt;/b&gt;</title>")
	})

	t.Run("includes script and extra css", func(t *testing.T) {
		t.Parallel()

		doc := preset.Wrap(theme.Page{Script: "console.log(1)", ExtraCSS: ".x{}"})
		assert.Contains(t, doc, "<script>console.log(1)</script>")
		assert.Contains(t, doc, ".x{}</style>")
	})
}
