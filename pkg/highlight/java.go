package highlight

import "github.com/alecthomas/chroma/v2"

// javaLexer tokenizes one line of Java. Block comments that span lines are
// not tracked; a line opening one is marked as comment to its end.
//
//nolint:gochecknoglobals // Lexers are immutable once built.
var javaLexer = chroma.MustNewLexer(
	&chroma.Config{
		Name:      "java-line",
		Aliases:   []string{"java"},
		Filenames: []string{},
	},
	func() chroma.Rules {
		return chroma.Rules{
			"root": {
				{Pattern: `//[^\n]*`, Type: chroma.CommentSingle},
				{Pattern: `/\*.*?\*/`, Type: chroma.CommentMultiline},
				{Pattern: `/\*[^\n]*`, Type: chroma.CommentMultiline},
				{Pattern: `"(\\\\|\\"|[^"])*"`, Type: chroma.LiteralStringDouble},
				{Pattern: `'(\\\\|\\'|[^'])*'`, Type: chroma.LiteralStringChar},
				{Pattern: `\b0[xX][0-9a-fA-F_]+[lL]?\b`, Type: chroma.LiteralNumberHex},
				{Pattern: `\b\d[\d_]*(\.\d+)?([eE][+-]?\d+)?[lLfFdD]?\b`, Type: chroma.LiteralNumber},
				{Pattern: javaKeywords, Type: chroma.Keyword},
				{Pattern: `@[A-Za-z_]\w*`, Type: chroma.NameDecorator},
				{Pattern: `[A-Za-z_$][\w$]*`, Type: chroma.Name},
				{Pattern: `\s+`, Type: chroma.Text},
				{Pattern: `.`, Type: chroma.Text},
			},
		}
	},
)

const javaKeywords = `\b(abstract|assert|boolean|break|byte|case|catch|char|class|const|continue|` +
	`default|do|double|else|enum|extends|final|finally|float|for|goto|if|implements|import|` +
	`instanceof|int|interface|long|native|new|package|private|protected|public|record|return|` +
	`short|static|strictfp|super|switch|synchronized|this|throw|throws|transient|try|var|void|` +
	`volatile|while|true|false|null)\b`
