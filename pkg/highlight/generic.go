package highlight

import "github.com/alecthomas/chroma/v2"

// genericLexer marks quoted strings and numeric literals and nothing else.
//
//nolint:gochecknoglobals // Lexers are immutable once built.
var genericLexer = chroma.MustNewLexer(
	&chroma.Config{
		Name:      "generic",
		Aliases:   []string{"text"},
		Filenames: []string{},
	},
	func() chroma.Rules {
		return chroma.Rules{
			"root": {
				{Pattern: `"(\\\\|\\"|[^"])*"`, Type: chroma.LiteralStringDouble},
				{Pattern: `'(\\\\|\\'|[^'])*'`, Type: chroma.LiteralStringSingle},
				{Pattern: `\b\d+(\.\d+)?\b`, Type: chroma.LiteralNumber},
				{Pattern: `[A-Za-z_]\w*`, Type: chroma.Text},
				{Pattern: `\s+`, Type: chroma.Text},
				{Pattern: `.`, Type: chroma.Text},
			},
		}
	},
)
