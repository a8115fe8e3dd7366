package template

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// tokenize never fails: a malformed escape becomes a type_error token
// that ends the stream, so the parser still meets every earlier
// syntax error first.
func tokenize(source *sourceCode) *tokenStream {
	lx := &lexer{code: source.code, source: source}
	lx.run()
	lx.emit(type_eof, "", len(lx.code), 0)

	return &tokenStream{source: source, tokens: lx.tokens, current: -1}
}

func isNameChar(r rune) bool {
	return r < utf8.RuneSelf && (r == '_' || r == '.' ||
		('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9'))
}

type lexer struct {
	source *sourceCode
	code   string
	cursor int
	tokens []*token
}

func (lx *lexer) emit(typ int, value string, pos, length int) {
	lx.tokens = append(lx.tokens, &token{typ: typ, value: value, pos: pos, length: length})
}

func (lx *lexer) eof() bool {
	return lx.cursor >= len(lx.code)
}

func (lx *lexer) peek() (rune, int) {
	return utf8.DecodeRuneInString(lx.code[lx.cursor:])
}

func (lx *lexer) run() {
	for !lx.eof() {
		switch lx.code[lx.cursor] {
		case '\\':
			lx.lexEscape()
		case '$':
			lx.emit(type_dollar, "$", lx.cursor, 1)
			lx.cursor++
			lx.lexVariable()
		default:
			lx.lexText()
		}
	}
}

// lexText consumes everything up to the next backslash or dollar sign.
func (lx *lexer) lexText() {
	start := lx.cursor
	n := strings.IndexAny(lx.code[start:], `\$`)
	if n < 0 {
		n = len(lx.code) - start
	}
	lx.cursor += n
	lx.emit(type_text, lx.code[start:lx.cursor], start, n)
}

func (lx *lexer) lexEscape() {
	start := lx.cursor
	lx.cursor++
	if lx.eof() {
		lx.emit(type_error, `\`, start, 1)
		lx.tokens[len(lx.tokens)-1].err = newEndOfText(lx.source, start).Wrap("Could not read escape")

		return
	}
	_, w := lx.peek()
	raw := lx.code[lx.cursor : lx.cursor+w]
	lx.cursor += w
	lx.emit(type_escape, unescape(raw), start, 1+w)
}

// unescape maps the character following a backslash to its literal output.
// Only \\ and \$ are recognised; any other character keeps its backslash.
func unescape(raw string) string {
	switch raw {
	case `\`, `$`:
		return raw
	}

	return `\` + raw
}

func (lx *lexer) lexVariable() {
	if lx.eof() {
		return
	}
	r, w := lx.peek()
	switch {
	case r == '{':
		lx.emit(type_lbrace, "{", lx.cursor, w)
		lx.cursor += w
		lx.lexBraced()
	case isNameChar(r):
		lx.lexName()
	default:
		lx.emit(type_char, lx.code[lx.cursor:lx.cursor+w], lx.cursor, w)
		lx.cursor += w
	}
}

func (lx *lexer) lexBraced() {
	for !lx.eof() {
		r, w := lx.peek()
		switch {
		case unicode.IsSpace(r):
			lx.lexSpace()
		case isNameChar(r):
			lx.lexName()
		case r == '}':
			lx.emit(type_rbrace, "}", lx.cursor, w)
			lx.cursor += w
			return
		default:
			lx.emit(type_char, lx.code[lx.cursor:lx.cursor+w], lx.cursor, w)
			lx.cursor += w
			return
		}
	}
}

func (lx *lexer) lexName() {
	start := lx.cursor
	for !lx.eof() {
		r, w := lx.peek()
		if !isNameChar(r) {
			break
		}
		lx.cursor += w
	}
	lx.emit(type_name, lx.code[start:lx.cursor], start, lx.cursor-start)
}

func (lx *lexer) lexSpace() {
	start := lx.cursor
	for !lx.eof() {
		r, w := lx.peek()
		if !unicode.IsSpace(r) {
			break
		}
		lx.cursor += w
	}
	lx.emit(type_space, lx.code[start:lx.cursor], start, lx.cursor-start)
}

type tokenStream struct {
	source  *sourceCode
	tokens  []*token
	current int
}

func (ts *tokenStream) size() int {
	return len(ts.tokens)
}

func (ts *tokenStream) String() string {
	sb := &strings.Builder{}
	for _, t := range ts.tokens {
		if t.typ != type_eof {
			sb.WriteString(t.string())
		}
	}

	return sb.String()
}

func (ts *tokenStream) isEOF() bool {
	return ts.current >= 0 && ts.tokens[ts.current].typ == type_eof
}

// next advances the cursor. The stream always ends with an EOF token, which
// is returned again on every further call.
func (ts *tokenStream) next() *token {
	if ts.current < len(ts.tokens)-1 {
		ts.current++
	}

	return ts.tokens[ts.current]
}

func (ts *tokenStream) peek() *token {
	if ts.current < len(ts.tokens)-1 {
		return ts.tokens[ts.current+1]
	}

	return ts.tokens[len(ts.tokens)-1]
}

// skip consumes the next token when it has the given type.
func (ts *tokenStream) skip(typ int) bool {
	if ts.peek().typ == typ {
		ts.next()

		return true
	}

	return false
}
