package template

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type sourceCode struct {
	code string
}

func newSourceCode(code string) *sourceCode {
	return &sourceCode{code: code}
}

type textLine struct {
	num   int
	start int
	code  string
}

// line returns the line holding the byte at offset, without its line ending.
func (s *sourceCode) line(offset int) *textLine {
	if offset < 0 {
		offset = 0
	}
	if offset > len(s.code) {
		offset = len(s.code)
	}
	start := strings.LastIndexByte(s.code[:offset], '\n') + 1
	end := len(s.code)
	if n := strings.IndexByte(s.code[offset:], '\n'); n >= 0 {
		end = offset + n
	}

	return &textLine{
		num:   strings.Count(s.code[:start], "\n") + 1,
		start: start,
		code:  strings.TrimSuffix(s.code[start:end], "\r"),
	}
}

// overview renders the line containing span with the span underlined.
func (s *sourceCode) overview(span Span) string {
	l := s.line(span.Offset)
	col := span.Offset - l.start
	if col > len(l.code) {
		col = len(l.code)
	}
	end := span.Offset + span.Length - l.start
	if end > len(l.code) {
		end = len(l.code)
	}
	width := 1
	if end > col {
		width = utf8.RuneCountInString(l.code[col:end])
	}
	gutter := fmt.Sprintf("%d", l.num)
	pad := strings.Repeat(" ", len(gutter))

	sb := &strings.Builder{}
	fmt.Fprintf(sb, " %s | %s\n", gutter, l.code)
	fmt.Fprintf(sb, " %s | %s%s here", pad,
		strings.Repeat(" ", utf8.RuneCountInString(l.code[:col])),
		strings.Repeat("^", width))

	return sb.String()
}
