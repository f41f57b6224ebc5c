package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/mdpreview/pkg/foldstate"
)

// converter holds the state of a single render pass.
type converter struct {
	opts   *Options
	logger *log.Logger
	folds  *foldstate.Store
	keyer  *foldstate.Keyer
	lines  []string

	out   strings.Builder
	lists listStack

	// paragraph and quote buffer consecutive lines until a structural line.
	paragraph []string
	quote     []string
}

// run classifies every line in order. Rules are checked before list items so
// "* * *" is a rule and not a list item.
func (c *converter) run() string {
	for idx := 0; idx < len(c.lines); idx++ {
		line := c.lines[idx]

		if _, ok := fenceInfo(line); ok {
			c.closeAll()
			block, end := collectCodeBlock(c.lines, idx)
			c.writeCodeBlock(block)
			idx = end
			continue
		}

		if isRule(line) {
			c.closeAll()
			c.out.WriteString("<hr>\n")
			continue
		}

		if level, text, ok := parseHeading(line); ok {
			c.closeAll()
			tag := "h" + strconv.Itoa(level)
			c.out.WriteString("<" + tag + ">" + formatInline(text) + "</" + tag + ">\n")
			continue
		}

		if item, ok := parseListItem(line); ok {
			c.flushParagraph()
			c.flushQuote()
			c.lists.place(&c.out, item)
			c.out.WriteString("<li>" + formatInline(item.text) + "</li>\n")
			continue
		}

		if text, ok := parseBlockquote(line); ok {
			c.flushParagraph()
			c.lists.unwind(&c.out)
			c.quote = append(c.quote, text)
			continue
		}

		if isBlank(line) {
			c.closeAll()
			continue
		}

		if strings.Contains(line, "|") {
			c.closeAll()
			if isTableStart(c.lines, idx) {
				idx = writeTable(&c.out, c.lines, idx)
				continue
			}
			// A row-shaped line without a separator stands alone as a paragraph.
			c.paragraph = append(c.paragraph, line)
			c.flushParagraph()
			continue
		}

		c.flushQuote()
		c.lists.unwind(&c.out)
		c.paragraph = append(c.paragraph, line)
	}

	c.closeAll()
	return c.out.String()
}

// closeAll ends every open paragraph, blockquote and list.
func (c *converter) closeAll() {
	c.flushParagraph()
	c.flushQuote()
	c.lists.unwind(&c.out)
}

func (c *converter) flushParagraph() {
	if len(c.paragraph) == 0 {
		return
	}
	c.out.WriteString("<p>" + joinLines(c.paragraph).String() + "</p>\n")
	c.paragraph = c.paragraph[:0]
}

func (c *converter) flushQuote() {
	if len(c.quote) == 0 {
		return
	}
	c.out.WriteString("<blockquote>" + joinLines(c.quote).String() + "</blockquote>\n")
	c.quote = c.quote[:0]
}

// joinLines formats buffered lines as one inline fragment. Lines are joined
// with a space, or with <br> when a line ends in two or more spaces.
func joinLines(lines []string) segments {
	var (
		segs    segments
		pending strings.Builder
	)
	for i, line := range lines {
		pending.WriteString(strings.TrimSpace(line))
		if i == len(lines)-1 {
			break
		}
		if strings.HasSuffix(line, "  ") {
			segs = append(segs, raw(pending.String()), markup("<br>\n"))
			pending.Reset()
		} else {
			pending.WriteByte(' ')
		}
	}
	segs = append(segs, raw(pending.String()))
	return formatSegments(segs)
}
