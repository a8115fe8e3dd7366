package template

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"
)

var parserPool = sync.Pool{
	New: func() any {
		return &parser{}
	},
}

func getParser() *parser {
	return parserPool.Get().(*parser)
}

func putParser(p *parser) {
	p.stream = nil
	p.parts = nil
	p.buffer.Reset()
	parserPool.Put(p)
}

func build(source *sourceCode) ([]Part, error) {
	p := getParser()
	defer putParser(p)

	return p.parse(tokenize(source))
}

type parser struct {
	stream *tokenStream
	parts  []Part
	buffer strings.Builder
}

func (p *parser) parse(stream *tokenStream) ([]Part, error) {
	p.stream = stream
	for {
		tok := p.stream.next()
		switch tok.typ {
		case type_eof:
			p.flush()

			return p.parts, nil

		case type_text, type_escape:
			p.buffer.WriteString(tok.value)

		case type_error:
			return nil, tok.err

		case type_dollar:
			p.flush()
			part, err := p.parseVariable(tok)
			if err != nil {
				return nil, err
			}
			p.parts = append(p.parts, part)

		default:
			return nil, p.errorf(tok.span(), "Unexpected %s", typeNames[tok.typ])
		}
	}
}

// flush moves buffered literal text into a Text part.
func (p *parser) flush() {
	if p.buffer.Len() == 0 {
		return
	}
	p.parts = append(p.parts, &Text{Content: p.buffer.String()})
	p.buffer.Reset()
}

func (p *parser) errorf(span Span, format string, args ...any) *ParseError {
	return newParseError(p.stream.source, fmt.Sprintf(format, args...), span)
}

func (p *parser) parseVariable(dollar *token) (Part, error) {
	tok := p.stream.next()
	switch tok.typ {
	case type_eof:
		return nil, newEndOfText(p.stream.source, dollar.pos)

	case type_name:
		return &Variable{Name: tok.value}, nil

	case type_lbrace:
		return p.parseBraced(tok)
	}

	return nil, p.errorf(tok.span(), "Expected variable name or curly brackets after $, found %s", tok.value)
}

func (p *parser) parseBraced(lbrace *token) (Part, error) {
	p.stream.skip(type_space)
	tok := p.stream.next()
	switch tok.typ {
	case type_eof:
		return nil, p.unclosed(lbrace, tok)

	case type_name:

	default:
		return nil, p.errorf(Span{Offset: tok.pos}, "No variable name found inside brackets")
	}
	name := tok.value

	p.stream.skip(type_space)
	tok = p.stream.next()
	switch tok.typ {
	case type_rbrace:
		return &Variable{Name: name}, nil

	case type_eof:
		return nil, p.unclosed(lbrace, tok)
	}

	_, w := utf8.DecodeRuneInString(tok.value)

	return nil, p.errorf(Span{Offset: lbrace.pos, Length: tok.pos + w - lbrace.pos}, "Unclosed brackets")
}

// unclosed reports a brace group cut off by the end of the text. The
// end-of-text error stays as the cause; the span is anchored at the brace.
func (p *parser) unclosed(lbrace, eof *token) *ParseError {
	return newEndOfText(p.stream.source, eof.pos).
		Wrap("Unclosed brackets").
		WithSpan(Span{Offset: lbrace.pos, Length: eof.pos - lbrace.pos})
}
