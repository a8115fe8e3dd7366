package template

import (
	"fmt"
	"strings"
)

// Span is a byte range into the template source.
type Span struct {
	Offset int
	Length int
}

func (s Span) End() int {
	return s.Offset + s.Length
}

// ParseError is a syntax error in a template. Errors form a chain: each
// wrapping layer adds a context message and keeps the span and source of the
// error it wraps, unless re-anchored with WithSpan.
type ParseError struct {
	Message string
	Source  string
	Span    Span
	Cause   *ParseError
}

func newParseError(source *sourceCode, msg string, span Span) *ParseError {
	return &ParseError{Message: msg, Source: source.code, Span: span}
}

func newEndOfText(source *sourceCode, start int) *ParseError {
	return newParseError(source, "Cannot read: reached end of text", Span{Offset: start, Length: len(source.code) - start})
}

func (e *ParseError) Error() string {
	return strings.Join(e.Chain(), ": ")
}

func (e *ParseError) Unwrap() error {
	if e.Cause == nil {
		return nil
	}

	return e.Cause
}

// Wrap returns a new error carrying msg, caused by e.
func (e *ParseError) Wrap(msg string) *ParseError {
	return &ParseError{Message: msg, Source: e.Source, Span: e.Span, Cause: e}
}

func (e *ParseError) WithSpan(span Span) *ParseError {
	c := *e
	c.Span = span

	return &c
}

// Root returns the innermost cause.
func (e *ParseError) Root() *ParseError {
	for e.Cause != nil {
		e = e.Cause
	}

	return e
}

// Chain returns the messages of the chain, outermost first.
func (e *ParseError) Chain() []string {
	var msgs []string
	for c := e; c != nil; c = c.Cause {
		msgs = append(msgs, c.Message)
	}

	return msgs
}

// Report renders the error chain followed by the source line with the span
// underlined.
func (e *ParseError) Report() string {
	sb := &strings.Builder{}
	for i, msg := range e.Chain() {
		if i == 0 {
			fmt.Fprintf(sb, "Error: %s\n", msg)
		} else {
			fmt.Fprintf(sb, "  caused by: %s\n", msg)
		}
	}
	sb.WriteString(newSourceCode(e.Source).overview(e.Span))

	return sb.String()
}

type ResolveError struct {
	Variable string
}

func (e *ResolveError) Error() string {
	return fmt.Sprintf("Could not resolve variable '%s' in template", e.Variable)
}
