// Package highlight provides per-language syntax highlighting for code block lines.
//
// Languages form a closed set. Each one tokenizes a single line with a chroma
// lexer and reduces chroma's token types to a handful of presentation classes.
// Languages outside the set use Generic, which only marks string and numeric
// literals.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Language is a supported highlighting language.
type Language int

const (
	Generic Language = iota
	Java
	JavaScript
	Python
	HTML
	CSS
	JSON
	SQL
)

// Class is the presentation class applied to a highlighted token.
// The empty class means plain text.
type Class string

const (
	ClassNone    Class = ""
	ClassKeyword Class = "keyword"
	ClassString  Class = "string"
	ClassNumber  Class = "number"
	ClassComment Class = "comment"
	ClassTag     Class = "tag"
	ClassAttr    Class = "attr"
)

// Token is a run of text sharing one class.
type Token struct {
	Class Class
	Text  string
}

// aliases maps lower-cased fence tags to languages.
//
//nolint:gochecknoglobals // Read-only lookup table.
var aliases = map[string]Language{
	"java":       Java,
	"javascript": JavaScript,
	"js":         JavaScript,
	"python":     Python,
	"py":         Python,
	"html":       HTML,
	"xml":        HTML,
	"css":        CSS,
	"json":       JSON,
	"sql":        SQL,
}

// names holds the canonical name of each language.
//
//nolint:gochecknoglobals // Read-only lookup table.
var names = [...]string{
	Generic:    "text",
	Java:       "java",
	JavaScript: "javascript",
	Python:     "python",
	HTML:       "html",
	CSS:        "css",
	JSON:       "json",
	SQL:        "sql",
}

// chromaNames maps languages to chroma lexer names.
//
//nolint:gochecknoglobals // Read-only lookup table.
var chromaNames = [...]string{
	JavaScript: "javascript",
	Python:     "python",
	HTML:       "html",
	CSS:        "css",
	JSON:       "json",
	SQL:        "sql",
}

// Lookup resolves a fence tag to a language. Matching is case-insensitive
// and only the first word of the tag is considered. Unknown tags map to Generic.
func Lookup(tag string) Language {
	fields := strings.Fields(strings.ToLower(tag))
	if len(fields) == 0 {
		return Generic
	}
	if lang, ok := aliases[fields[0]]; ok {
		return lang
	}
	return Generic
}

// Languages returns every language, Generic first.
func Languages() []Language {
	return []Language{Generic, Java, JavaScript, Python, HTML, CSS, JSON, SQL}
}

// String returns the canonical language name.
func (l Language) String() string {
	if l < Generic || int(l) >= len(names) {
		return names[Generic]
	}
	return names[l]
}

// Highlight splits line into classified tokens.
// Concatenating the Text of every token yields line unchanged.
func (l Language) Highlight(line string) []Token {
	if line == "" {
		return nil
	}

	// Line comment rules in several lexers only match up to a newline.
	iterator, err := l.lexer().Tokenise(nil, line+"\n")
	if err != nil {
		return []Token{{Text: line}}
	}

	var tokens []Token
	consumed := 0
	for tok := iterator(); tok != chroma.EOF; tok = iterator() {
		value := tok.Value
		if consumed+len(value) > len(line) {
			value = value[:max(len(line)-consumed, 0)]
		}
		if value == "" {
			continue
		}
		consumed += len(value)
		tokens = appendToken(tokens, Token{Class: classify(tok.Type), Text: value})
	}

	if consumed < len(line) {
		tokens = appendToken(tokens, Token{Text: line[consumed:]})
	}
	return tokens
}

// lexer returns the chroma lexer for l.
//
//nolint:ireturn // chroma.Lexer is an external interface type
func (l Language) lexer() chroma.Lexer {
	switch {
	case l == Java:
		return javaLexer
	case l == Generic || int(l) >= len(chromaNames):
		return genericLexer
	}
	lexer := lexers.Get(chromaNames[l])
	if lexer == nil {
		return genericLexer
	}
	return chroma.Coalesce(lexer)
}

// classify reduces a chroma token type to a presentation class.
func classify(tokenType chroma.TokenType) Class {
	switch {
	case tokenType.InCategory(chroma.Comment):
		return ClassComment
	case tokenType.InCategory(chroma.Keyword):
		return ClassKeyword
	case tokenType.InSubCategory(chroma.LiteralString):
		return ClassString
	case tokenType.InSubCategory(chroma.LiteralNumber):
		return ClassNumber
	case tokenType == chroma.NameTag:
		return ClassTag
	case tokenType == chroma.NameAttribute:
		return ClassAttr
	default:
		return ClassNone
	}
}

// appendToken appends tok, merging it into the previous token when the class matches.
func appendToken(tokens []Token, tok Token) []Token {
	if n := len(tokens); n > 0 && tokens[n-1].Class == tok.Class {
		tokens[n-1].Text += tok.Text
		return tokens
	}
	return append(tokens, tok)
}
