package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tok struct {
	typ   int
	value string
	span  Span
}

func lex(t *testing.T, code string) []tok {
	t.Helper()
	stream := tokenize(newSourceCode(code))
	var toks []tok
	for !stream.isEOF() {
		tk := stream.next()
		toks = append(toks, tok{typ: tk.typ, value: tk.value, span: tk.span()})
	}

	return toks
}

func TestTokenizeText(t *testing.T) {
	assert.Equal(t, []tok{
		{type_text, "a", Span{0, 1}},
		{type_dollar, "$", Span{1, 1}},
		{type_name, "b", Span{2, 1}},
		{type_text, " c", Span{3, 2}},
		{type_eof, "", Span{5, 0}},
	}, lex(t, "a$b c"))

	assert.Equal(t, []tok{{type_eof, "", Span{0, 0}}}, lex(t, ""))
}

func TestTokenizeByteOffsets(t *testing.T) {
	assert.Equal(t, []tok{
		{type_text, "é", Span{0, 2}},
		{type_dollar, "$", Span{2, 1}},
		{type_lbrace, "{", Span{3, 1}},
		{type_space, " ", Span{4, 1}},
		{type_name, "x", Span{5, 1}},
		{type_space, " ", Span{6, 1}},
		{type_rbrace, "}", Span{7, 1}},
		{type_eof, "", Span{8, 0}},
	}, lex(t, "é${ x }"))

	assert.Equal(t, []tok{
		{type_dollar, "$", Span{0, 1}},
		{type_char, "ü", Span{1, 2}},
		{type_eof, "", Span{3, 0}},
	}, lex(t, "$ü"))
}

func TestTokenizeEscapes(t *testing.T) {
	assert.Equal(t, []tok{
		{type_escape, `\`, Span{0, 2}},
		{type_escape, `$`, Span{2, 2}},
		{type_escape, `\n`, Span{4, 2}},
		{type_escape, `\é`, Span{6, 3}},
		{type_eof, "", Span{9, 0}},
	}, lex(t, `\\\$\n\é`))
}

func TestTokenizeTrailingBackslash(t *testing.T) {
	stream := tokenize(newSourceCode(`ab\`))
	require.Equal(t, 3, stream.size())
	assert.Equal(t, type_text, stream.next().typ)

	tk := stream.next()
	require.Equal(t, type_error, tk.typ)
	assert.Equal(t, Span{2, 1}, tk.span())
	require.NotNil(t, tk.err)
	assert.Equal(t, []string{"Could not read escape", "Cannot read: reached end of text"}, tk.err.Chain())
	assert.Equal(t, Span{2, 1}, tk.err.Span)
	assert.Equal(t, type_eof, stream.next().typ)
}

func TestTokenizeKeepsTokensBeforeBadEscape(t *testing.T) {
	toks := lex(t, `$-\`)
	require.Len(t, toks, 4)
	assert.Equal(t, tok{type_dollar, "$", Span{0, 1}}, toks[0])
	assert.Equal(t, tok{type_char, "-", Span{1, 1}}, toks[1])
	assert.Equal(t, type_error, toks[2].typ)
	assert.Equal(t, type_eof, toks[3].typ)
}

func TestTokenStream(t *testing.T) {
	stream := tokenize(newSourceCode("x${y}"))
	assert.Equal(t, 6, stream.size())
	assert.Equal(t, "x${y}", stream.String())

	assert.Equal(t, type_text, stream.peek().typ)
	assert.False(t, stream.skip(type_dollar))
	assert.True(t, stream.skip(type_text))
	assert.Equal(t, type_dollar, stream.next().typ)
	stream.next()
	stream.next()
	stream.next()
	assert.Equal(t, type_eof, stream.next().typ)
	assert.True(t, stream.isEOF())
	assert.Equal(t, type_eof, stream.next().typ)
	assert.Equal(t, type_eof, stream.peek().typ)
}
