package template

import (
	"io"
)

// Render parses tpl, resolves it against ps and writes the result to writer.
func Render(tpl string, writer io.Writer, ps Params) (err error) {
	return RenderLookup(tpl, writer, ps.Lookup())
}

func RenderLookup(tpl string, writer io.Writer, lookup Lookup) (err error) {
	t, err := Parse(tpl)
	if err != nil {
		return
	}
	body, err := t.Resolve(lookup)
	if err != nil {
		return
	}

	_, err = io.WriteString(writer, body)

	return
}
