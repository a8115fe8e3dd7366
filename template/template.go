// Package template implements the small interpolation language used in
// mirror-upload configuration values.
//
// A template is literal text with variables written as $name or ${ name }.
// Names consist of ASCII letters, digits, '_' and '.'. A backslash escapes
// '\' and '$'; before any other character the backslash is kept as is, so
// `\n` stays the two characters '\' and 'n'.
package template

import "strings"

// Template is a parsed template. It is immutable and safe for concurrent use.
type Template struct {
	source string
	parts  []Part
}

func Parse(text string) (*Template, error) {
	parts, err := build(newSourceCode(text))
	if err != nil {
		if pErr, ok := err.(*ParseError); ok {
			return nil, pErr.Wrap("Could not parse template")
		}

		return nil, err
	}

	return &Template{source: text, parts: parts}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(text string) *Template {
	t, err := Parse(text)
	if err != nil {
		panic(err)
	}

	return t
}

func (t *Template) Source() string {
	return t.source
}

// Parts returns copies of the parsed parts; changing them leaves the
// template untouched.
func (t *Template) Parts() []Part {
	parts := make([]Part, len(t.parts))
	for i, part := range t.parts {
		parts[i] = part.clone()
	}

	return parts
}

// Variables returns the referenced variable names in order of appearance,
// without duplicates.
func (t *Template) Variables() []string {
	var (
		names []string
		seen  = make(map[string]bool)
	)
	for _, p := range t.parts {
		if v, ok := p.(*Variable); ok && !seen[v.Name] {
			seen[v.Name] = true
			names = append(names, v.Name)
		}
	}

	return names
}

// Resolve substitutes every variable through lookup. It stops at the first
// variable lookup has no value for and returns a *ResolveError.
func (t *Template) Resolve(lookup Lookup) (string, error) {
	sb := &strings.Builder{}
	for _, p := range t.parts {
		s, err := p.resolve(lookup)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}

	return sb.String(), nil
}

// String returns the canonical source of t: text with '\' and '$' escaped
// and variables in braced form.
func (t *Template) String() string {
	sb := &strings.Builder{}
	for _, p := range t.parts {
		sb.WriteString(p.literal())
	}

	return sb.String()
}
