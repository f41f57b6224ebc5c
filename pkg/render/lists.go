package render

import (
	"strconv"
	"strings"
)

// listFrame is one open <ul> or <ol>.
type listFrame struct {
	level   int
	ordered bool
}

// listStack tracks open list wrappers. Levels strictly increase from bottom to top.
type listStack struct {
	frames []listFrame
}

func (s *listStack) empty() bool {
	return len(s.frames) == 0
}

func (s *listStack) top() listFrame {
	return s.frames[len(s.frames)-1]
}

func (s *listStack) push(out *strings.Builder, level int, ordered bool, start int) {
	s.frames = append(s.frames, listFrame{level: level, ordered: ordered})
	switch {
	case !ordered:
		out.WriteString("<ul>\n")
	case start != 1:
		out.WriteString(`<ol start="` + strconv.Itoa(start) + `">` + "\n")
	default:
		out.WriteString("<ol>\n")
	}
}

func (s *listStack) pop(out *strings.Builder) {
	frame := s.top()
	s.frames = s.frames[:len(s.frames)-1]
	if frame.ordered {
		out.WriteString("</ol>\n")
	} else {
		out.WriteString("</ul>\n")
	}
}

// unwind closes every open frame, deepest first.
func (s *listStack) unwind(out *strings.Builder) {
	for !s.empty() {
		s.pop(out)
	}
}

// place reconciles the stack with item and leaves a frame of the item's type
// open at the item's level. Depth is adjusted before type.
func (s *listStack) place(out *strings.Builder, item listItem) {
	for !s.empty() && s.top().level > item.level {
		s.pop(out)
	}

	switch {
	case s.empty():
		s.push(out, item.level, item.ordered, item.start)
	case s.top().level < item.level:
		for level := s.top().level + 1; level <= item.level; level++ {
			start := 1
			if level == item.level {
				start = item.start
			}
			s.push(out, level, item.ordered, start)
		}
	case s.top().ordered != item.ordered:
		s.pop(out)
		s.push(out, item.level, item.ordered, item.start)
	}
}
