package render

import "strings"

// alignment is a column's text-align value, empty when unspecified.
type alignment string

const (
	alignNone   alignment = ""
	alignLeft   alignment = "left"
	alignCenter alignment = "center"
	alignRight  alignment = "right"
)

// isSeparator reports whether line is a table separator: only '-', ':', '|'
// and whitespace, with at least one '-' in every cell.
func isSeparator(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}

	for i := range len(trimmed) {
		switch trimmed[i] {
		case '-', ':', '|', ' ', '\t':
		default:
			return false
		}
	}

	for _, cell := range splitCells(trimmed) {
		if !strings.Contains(cell, "-") {
			return false
		}
	}
	return true
}

// isTableStart reports whether lines[idx] is a header confirmed by a separator.
func isTableStart(lines []string, idx int) bool {
	return strings.Contains(lines[idx], "|") && idx+1 < len(lines) && isSeparator(lines[idx+1])
}

// splitCells strips one leading and one trailing '|' and splits on the rest.
// Empty cells are kept.
func splitCells(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "|")
	trimmed = strings.TrimSuffix(trimmed, "|")

	cells := strings.Split(trimmed, "|")
	for i, cell := range cells {
		cells[i] = strings.TrimSpace(cell)
	}
	return cells
}

func parseAlignment(cell string) alignment {
	left := strings.HasPrefix(cell, ":")
	right := strings.HasSuffix(cell, ":")
	switch {
	case left && right:
		return alignCenter
	case right:
		return alignRight
	case left:
		return alignLeft
	default:
		return alignNone
	}
}

// writeTable emits the table starting at the header line lines[idx] and
// returns the index of the last line it consumed.
func writeTable(out *strings.Builder, lines []string, idx int) int {
	header := splitCells(lines[idx])

	separator := splitCells(lines[idx+1])
	aligns := make([]alignment, len(header))
	for i := range aligns {
		if i < len(separator) {
			aligns[i] = parseAlignment(separator[i])
		}
	}

	out.WriteString("<table>\n<thead>\n")
	writeRow(out, "th", header, aligns)
	out.WriteString("</thead>\n<tbody>\n")

	last := idx + 1
	for next := idx + 2; next < len(lines) && strings.Contains(lines[next], "|"); next++ {
		writeRow(out, "td", splitCells(lines[next]), aligns)
		last = next
	}

	out.WriteString("</tbody>\n</table>\n")
	return last
}

// writeRow emits one row padded or cut to the column count.
func writeRow(out *strings.Builder, tag string, cells []string, aligns []alignment) {
	out.WriteString("<tr>")
	for col, align := range aligns {
		out.WriteString("<" + tag)
		if align != alignNone {
			out.WriteString(` style="text-align: ` + string(align) + `"`)
		}
		out.WriteString(">")
		if col < len(cells) {
			out.WriteString(formatInline(cells[col]))
		}
		out.WriteString("</" + tag + ">")
	}
	out.WriteString("</tr>\n")
}
