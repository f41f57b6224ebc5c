package render

import "strings"

// segmentKind distinguishes text that still needs escaping from markup the
// renderer produced itself.
type segmentKind int

const (
	// kindRaw is user text. It is escaped on output and later inline passes may rewrite it.
	kindRaw segmentKind = iota

	// kindLiteral is user text that is escaped on output but never rewritten again.
	kindLiteral

	// kindMarkup is HTML produced by the renderer. It is emitted verbatim.
	kindMarkup
)

type segment struct {
	kind segmentKind
	text string
}

func raw(text string) segment     { return segment{kind: kindRaw, text: text} }
func literal(text string) segment { return segment{kind: kindLiteral, text: text} }
func markup(text string) segment  { return segment{kind: kindMarkup, text: text} }

// segments is an inline fragment under construction.
type segments []segment

// String renders the fragment, escaping every non-markup segment exactly once.
func (s segments) String() string {
	var builder strings.Builder
	s.writeTo(&builder)
	return builder.String()
}

func (s segments) writeTo(builder *strings.Builder) {
	for _, seg := range s {
		if seg.kind == kindMarkup {
			builder.WriteString(seg.text)
			continue
		}
		builder.WriteString(escapeHTML(seg.text))
	}
}

// matcher locates the first span in text that a pass rewrites.
// It returns the span bounds and the segments that replace it.
type matcher func(text string) (start, end int, replacement segments, ok bool)

// rewrite applies match to every raw segment, left to right, until no more
// spans are found. Replacement segments are never revisited by the same pass.
func (s segments) rewrite(match matcher) segments {
	out := make(segments, 0, len(s))
	for _, seg := range s {
		if seg.kind != kindRaw {
			out = append(out, seg)
			continue
		}

		text := seg.text
		for text != "" {
			start, end, replacement, ok := match(text)
			if !ok {
				break
			}
			if start > 0 {
				out = append(out, raw(text[:start]))
			}
			out = append(out, replacement...)
			text = text[end:]
		}
		if text != "" {
			out = append(out, raw(text))
		}
	}
	return out
}

//nolint:gochecknoglobals // Replacer is immutable and safe for concurrent use.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// escapeHTML escapes the five HTML-reserved characters.
func escapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}
