package scaffold_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdpreview/pkg/render"
	"github.com/yaklabco/mdpreview/pkg/scaffold"
)

func TestTable(t *testing.T) {
	t.Parallel()

	got, err := scaffold.Table(3, 2)
	require.NoError(t, err)
	assert.Equal(t,
		"| Column 1 | Column 2 |\n"+
			"| --- | --- |\n"+
			"|  |  |\n"+
			"|  |  |\n",
		got)

	headerOnly, err := scaffold.Table(1, 1)
	require.NoError(t, err)
	assert.Equal(t, "| Column 1 |\n| --- |\n", headerOnly)
}

func TestTable_RendersAsTable(t *testing.T) {
	t.Parallel()

	skeleton, err := scaffold.Table(2, 3)
	require.NoError(t, err)

	body := render.New(render.DefaultOptions()).RenderBody(skeleton)
	assert.Contains(t, body, "<table>")
	assert.Contains(t, body, "<th>Column 3</th>")
}

func TestTable_InvalidSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		rows, cols int
	}{
		{"zero rows", 0, 3},
		{"negative cols", 3, -1},
		{"too many rows", scaffold.MaxTableRows + 1, 3},
		{"too many cols", 3, scaffold.MaxTableCols + 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := scaffold.Table(tt.rows, tt.cols)
			require.ErrorIs(t, err, scaffold.ErrTableSize)
		})
	}
}

func TestDocument(t *testing.T) {
	t.Parallel()

	created := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)

	for _, kind := range scaffold.Kinds() {
		assert.True(t, kind.IsValid())

		doc, err := scaffold.Document(kind, "Notes", created)
		require.NoError(t, err, kind)
		assert.Regexp(t, `^# Notes\n`, doc)
	}

	doc, err := scaffold.Document(scaffold.KindDoc, "Guide", created)
	require.NoError(t, err)
	assert.Contains(t, doc, "*Created 2024-03-09*")

	_, err = scaffold.Document("poem", "x", created)
	require.ErrorIs(t, err, scaffold.ErrUnknownKind)
	assert.False(t, scaffold.Kind("poem").IsValid())
}

func TestFileNameAndTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "notes.md", scaffold.FileName("notes"))
	assert.Equal(t, "notes.md", scaffold.FileName("notes.md"))
	assert.Equal(t, "NOTES.Markdown", scaffold.FileName("NOTES.Markdown"))

	assert.Equal(t, "notes", scaffold.Title("notes.md"))
	assert.Equal(t, "guide", scaffold.Title("docs/guide.markdown"))
	assert.Equal(t, "plain", scaffold.Title("plain"))
}
