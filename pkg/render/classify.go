package render

import (
	"strconv"
	"strings"
)

const (
	fenceMarker = "```"
	tabColumns  = 4
	maxHeading  = 6

	// maxOrdinalDigits bounds ordered-list numbers so they always fit an int.
	maxOrdinalDigits = 9
)

// listItem is a classified list line.
type listItem struct {
	level   int
	ordered bool
	start   int
	text    string
}

// fenceInfo reports whether line opens or closes a fenced code block and
// returns the text following the backticks.
func fenceInfo(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, fenceMarker) {
		return "", false
	}
	return strings.TrimSpace(strings.TrimLeft(trimmed, "`")), true
}

// parseHeading recognises 1-6 '#' followed by whitespace or end of line.
// A closing sequence of '#' is dropped.
func parseHeading(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > maxHeading {
		return 0, "", false
	}

	rest := line[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return 0, "", false
	}

	text := strings.TrimSpace(rest)
	if stripped := strings.TrimRight(text, "#"); stripped != text {
		if stripped == "" || strings.HasSuffix(stripped, " ") || strings.HasSuffix(stripped, "\t") {
			text = strings.TrimSpace(stripped)
		}
	}
	return level, text, true
}

// parseListItem recognises "-", "+", "*" or "<digits>." followed by whitespace,
// after optional indentation.
func parseListItem(line string) (listItem, bool) {
	columns, offset := indentation(line)
	rest := line[offset:]
	if rest == "" {
		return listItem{}, false
	}

	item := listItem{level: columns / 2, start: 1}

	var body string
	switch rest[0] {
	case '-', '+', '*':
		body = rest[1:]
	default:
		digits := 0
		for digits < len(rest) && digits < maxOrdinalDigits && isDigit(rest[digits]) {
			digits++
		}
		if digits == 0 || digits >= len(rest) || rest[digits] != '.' {
			return listItem{}, false
		}
		start, err := strconv.Atoi(rest[:digits])
		if err != nil {
			return listItem{}, false
		}
		item.ordered = true
		item.start = start
		body = rest[digits+1:]
	}

	if body == "" || (body[0] != ' ' && body[0] != '\t') {
		return listItem{}, false
	}
	item.text = strings.TrimSpace(body)
	return item, true
}

// parseBlockquote strips the '>' marker and one following space.
func parseBlockquote(line string) (string, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(trimmed, ">") {
		return "", false
	}
	text := trimmed[1:]
	text = strings.TrimPrefix(text, " ")
	return text, true
}

// isRule reports whether line is three or more of the same '-', '*' or '_'
// with optional whitespace between them.
func isRule(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 {
		return false
	}

	marker := trimmed[0]
	if marker != '-' && marker != '*' && marker != '_' {
		return false
	}

	count := 0
	for i := range len(trimmed) {
		switch trimmed[i] {
		case marker:
			count++
		case ' ', '\t':
		default:
			return false
		}
	}
	return count >= 3
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// indentation returns the indentation width in columns and the byte offset
// of the first non-whitespace character. A tab counts as four columns.
func indentation(line string) (int, int) {
	columns := 0
	for i := range len(line) {
		switch line[i] {
		case ' ':
			columns++
		case '\t':
			columns += tabColumns
		default:
			return columns, i
		}
	}
	return columns, len(line)
}

// splitLines normalises line endings and splits text into lines.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
