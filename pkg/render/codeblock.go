package render

import (
	"strconv"
	"strings"

	"github.com/yaklabco/mdpreview/internal/logging"
	"github.com/yaklabco/mdpreview/pkg/highlight"
	"github.com/yaklabco/mdpreview/pkg/langdetect"
)

const (
	defaultCodeTag = "text"
	glyphExpanded  = "▼"
	glyphCollapsed = "▶"
)

// codeBlock is a fenced block collected from its opening to its closing fence.
type codeBlock struct {
	tag   string
	lines []string
}

// collectCodeBlock gathers the block opened at lines[idx] and returns it with
// the index of its closing fence. An unterminated block ends at the last line.
func collectCodeBlock(lines []string, idx int) (codeBlock, int) {
	info, _ := fenceInfo(lines[idx])

	block := codeBlock{}
	if fields := strings.Fields(strings.ToLower(info)); len(fields) > 0 {
		block.tag = fields[0]
	}

	end := idx + 1
	for ; end < len(lines); end++ {
		if _, ok := fenceInfo(lines[end]); ok {
			return block, end
		}
		block.lines = append(block.lines, lines[end])
	}
	return block, len(lines) - 1
}

// writeCodeBlock emits the block wrapper, its fold control and, unless the
// block is collapsed, its highlighted lines.
func (c *converter) writeCodeBlock(block codeBlock) {
	tag := block.tag
	if tag == "" && c.opts.DetectLanguage && len(block.lines) > 0 {
		tag = langdetect.Detect([]byte(strings.Join(block.lines, "\n")))
	}
	if tag == "" {
		tag = defaultCodeTag
	}

	firstLine := ""
	if len(block.lines) > 0 {
		firstLine = strings.TrimSpace(block.lines[0])
	}
	id := c.keyer.Next(tag, firstLine)

	collapsed := false
	if c.opts.CodeFolding {
		collapsed = c.folds.Collapsed(id)
	}

	c.logger.Debug("code block",
		logging.FieldBlockID, id,
		logging.FieldLanguage, tag,
		logging.FieldLines, len(block.lines),
		logging.FieldCollapsed, collapsed,
	)

	out := &c.out
	out.WriteString(`<div class="code-block-container" id="` + id + `" data-lang="` + escapeHTML(tag) + `">` + "\n")
	out.WriteString(`<div class="code-block-header">`)
	if c.opts.CodeFolding {
		glyph, title := glyphExpanded, "Collapse"
		if collapsed {
			glyph, title = glyphCollapsed, "Expand"
		}
		out.WriteString(`<a class="fold-toggle" href="?toggle=` + id + `" data-block-id="` + id +
			`" title="` + title + `">` + glyph + `</a>`)
	}
	out.WriteString(`<span class="code-lang">` + escapeHTML(strings.ToUpper(tag)) + `</span></div>` + "\n")

	if collapsed {
		out.WriteString(`<div class="code-block-folded">` + hiddenLabel(len(block.lines)) + "</div>\n")
	} else {
		lang := highlight.Lookup(tag)
		out.WriteString(`<div class="code-block-body">` + "\n")
		for _, line := range block.lines {
			c.writeCodeLine(lang, line)
		}
		out.WriteString("</div>\n")
	}

	out.WriteString("</div>\n")
}

// writeCodeLine emits one content line. Leading indentation becomes
// non-breaking spaces and the remainder is highlighted.
func (c *converter) writeCodeLine(lang highlight.Language, line string) {
	_, offset := indentation(line)
	indent, rest := line[:offset], line[offset:]

	var segs segments
	if indent != "" {
		segs = append(segs, markup(nbsp(indent)))
	}

	switch {
	case rest == "":
	case c.opts.SyntaxHighlight:
		for _, tok := range lang.Highlight(rest) {
			if tok.Class == highlight.ClassNone {
				segs = append(segs, literal(tok.Text))
				continue
			}
			segs = append(segs,
				markup(`<span class="`+string(tok.Class)+`">`),
				literal(tok.Text),
				markup("</span>"),
			)
		}
	default:
		segs = append(segs, literal(rest))
	}

	c.out.WriteString(`<div class="code-line">`)
	if len(segs) == 0 {
		c.out.WriteString("<br>")
	} else {
		segs.writeTo(&c.out)
	}
	c.out.WriteString("</div>\n")
}

// nbsp converts leading whitespace to non-breaking spaces, four per tab.
func nbsp(indent string) string {
	var builder strings.Builder
	for _, r := range indent {
		if r == '\t' {
			builder.WriteString(strings.Repeat("&nbsp;", tabColumns))
			continue
		}
		builder.WriteString("&nbsp;")
	}
	return builder.String()
}

func hiddenLabel(n int) string {
	if n == 1 {
		return "1 line hidden"
	}
	return strconv.Itoa(n) + " lines hidden"
}
