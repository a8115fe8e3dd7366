package template

import "strings"

// All template parts implement the Part interface.
type Part interface {
	partNode()
	clone() Part
	literal() string
	resolve(lookup Lookup) (string, error)
}

type (
	// A Text part is output verbatim.
	Text struct {
		Content string // never empty
	}

	// A Variable part is replaced by the value the lookup returns for Name.
	Variable struct {
		Name string // matches [A-Za-z0-9_.]+
	}
)

func (*Text) partNode()     {}
func (*Variable) partNode() {}

func (p *Text) clone() Part {
	c := *p

	return &c
}

func (p *Variable) clone() Part {
	c := *p

	return &c
}

var literalEscaper = strings.NewReplacer(`\`, `\\`, `$`, `\$`)

func (p *Text) literal() string {
	return literalEscaper.Replace(p.Content)
}

func (p *Variable) literal() string {
	return "${" + p.Name + "}"
}

func (p *Text) resolve(Lookup) (string, error) {
	return p.Content, nil
}

func (p *Variable) resolve(lookup Lookup) (string, error) {
	if lookup != nil {
		if v, ok := lookup(p.Name); ok {
			return v, nil
		}
	}

	return "", &ResolveError{Variable: p.Name}
}
