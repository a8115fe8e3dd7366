package template

const (
	type_eof = iota - 1
	type_text
	type_escape
	type_dollar
	type_lbrace
	type_name
	type_space
	type_rbrace
	type_char
	type_error
)

var typeNames = map[int]string{
	type_eof:    "end of text",
	type_text:   "text",
	type_escape: "escape",
	type_dollar: "$",
	type_lbrace: "{",
	type_name:   "name",
	type_space:  "whitespace",
	type_rbrace: "}",
	type_char:   "character",
	type_error:  "error",
}

type token struct {
	value  string // resolved value; escapes hold their literal output
	typ    int
	pos    int // byte offset of the first byte in the source
	length int // byte length of the raw source text
	err    *ParseError
}

func (t *token) end() int {
	return t.pos + t.length
}

func (t *token) span() Span {
	return Span{Offset: t.pos, Length: t.length}
}

func (t *token) string() string {
	if t.typ == type_eof {
		return typeNames[type_eof]
	}

	return t.value
}
