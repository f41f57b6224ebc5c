package render

import (
	"strings"
	"unicode"
)

// inlinePasses run in order over the raw segments of a fragment.
// Images precede links so "![alt](src)" is not read as "!" plus a link.
//
//nolint:gochecknoglobals // Read-only pass table.
var inlinePasses = []matcher{
	matchImage,
	matchLink,
	matchBold,
	matchItalic,
	matchCode,
}

// unsafeSchemes are URL schemes replaced by "#" in links and images.
//
//nolint:gochecknoglobals // Read-only lookup table.
var unsafeSchemes = []string{"javascript:", "vbscript:", "data:"}

// formatInline converts a fragment of user text into escaped inline HTML.
func formatInline(text string) string {
	return formatSegments(segments{raw(text)}).String()
}

// formatSegments applies every inline pass to s.
// Markup inserted by one pass is opaque to the passes that follow.
func formatSegments(s segments) segments {
	for _, pass := range inlinePasses {
		s = s.rewrite(pass)
	}
	return s
}

func matchImage(text string) (int, int, segments, bool) {
	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], "![")
		if idx < 0 {
			return 0, 0, nil, false
		}
		start := offset + idx
		if alt, src, end, ok := parseBracketed(text, start+1, true); ok {
			tag := `<img src="` + escapeHTML(safeURL(src)) + `" alt="` + escapeHTML(alt) + `">`
			return start, end, segments{markup(tag)}, true
		}
		offset = start + 1
	}
	return 0, 0, nil, false
}

func matchLink(text string) (int, int, segments, bool) {
	for offset := 0; offset < len(text); {
		idx := strings.IndexByte(text[offset:], '[')
		if idx < 0 {
			return 0, 0, nil, false
		}
		start := offset + idx
		if label, href, end, ok := parseBracketed(text, start, false); ok {
			return start, end, segments{
				markup(`<a href="` + escapeHTML(safeURL(href)) + `">`),
				raw(label),
				markup("</a>"),
			}, true
		}
		offset = start + 1
	}
	return 0, 0, nil, false
}

// matchBold finds the shortest non-empty "**...**" span.
func matchBold(text string) (int, int, segments, bool) {
	start := strings.Index(text, "**")
	if start < 0 || start+3 > len(text) {
		return 0, 0, nil, false
	}
	closing := strings.Index(text[start+3:], "**")
	if closing < 0 {
		return 0, 0, nil, false
	}
	inner := start + 3 + closing
	return start, inner + 2, segments{
		markup("<strong>"),
		raw(text[start+2 : inner]),
		markup("</strong>"),
	}, true
}

// matchItalic finds "*x*" where x is non-empty and holds no asterisk.
func matchItalic(text string) (int, int, segments, bool) {
	start, end, ok := delimited(text, '*')
	if !ok {
		return 0, 0, nil, false
	}
	return start, end, segments{
		markup("<em>"),
		raw(text[start+1 : end-1]),
		markup("</em>"),
	}, true
}

// matchCode finds "`x`". The content is frozen so no later pass touches it.
func matchCode(text string) (int, int, segments, bool) {
	start, end, ok := delimited(text, '`')
	if !ok {
		return 0, 0, nil, false
	}
	return start, end, segments{
		markup("<code>"),
		literal(text[start+1 : end-1]),
		markup("</code>"),
	}, true
}

// delimited returns the bounds of the first span opened and closed by delim
// with at least one other byte between them.
func delimited(text string, delim byte) (int, int, bool) {
	for offset := 0; offset < len(text); {
		idx := strings.IndexByte(text[offset:], delim)
		if idx < 0 {
			return 0, 0, false
		}
		start := offset + idx
		closing := strings.IndexByte(text[start+1:], delim)
		if closing < 0 {
			return 0, 0, false
		}
		if closing == 0 {
			offset = start + 1
			continue
		}
		return start, start + 1 + closing + 1, true
	}
	return 0, 0, false
}

// parseBracketed reads "[label](target)" starting at the '[' at open.
func parseBracketed(text string, open int, allowEmptyLabel bool) (string, string, int, bool) {
	if open >= len(text) || text[open] != '[' {
		return "", "", 0, false
	}
	closing := strings.IndexByte(text[open+1:], ']')
	if closing < 0 {
		return "", "", 0, false
	}
	label := text[open+1 : open+1+closing]
	if label == "" && !allowEmptyLabel {
		return "", "", 0, false
	}

	paren := open + 1 + closing + 1
	if paren >= len(text) || text[paren] != '(' {
		return "", "", 0, false
	}
	end := closingParen(text[paren+1:])
	if end <= 0 {
		return "", "", 0, false
	}
	target := text[paren+1 : paren+1+end]
	return label, strings.TrimSpace(target), paren + 1 + end + 1, true
}

// closingParen returns the index of the ')' that closes a link target,
// skipping balanced pairs such as "Go_(language)". Without a balanced
// close it falls back to the first ')'.
func closingParen(s string) int {
	depth := 0
	for i := range len(s) {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return strings.IndexByte(s, ')')
}

// safeURL neutralises script-capable URL schemes.
func safeURL(target string) string {
	normalized := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, target)

	for _, scheme := range unsafeSchemes {
		if strings.HasPrefix(normalized, scheme) {
			return "#"
		}
	}
	return target
}
