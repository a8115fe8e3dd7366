package template

import "os"

// Lookup returns the value of a variable, and false if it has none.
type Lookup func(name string) (string, bool)

type Params map[string]string

func (p Params) Lookup() Lookup {
	return func(name string) (string, bool) {
		v, ok := p[name]

		return v, ok
	}
}

// Merge returns a new Params holding all given params; later ones win.
func Merge(ps ...Params) Params {
	merged := Params{}
	for _, p := range ps {
		for k, v := range p {
			merged[k] = v
		}
	}

	return merged
}

// Chain returns a Lookup that asks each lookup in turn and returns the first
// value found.
func Chain(lookups ...Lookup) Lookup {
	return func(name string) (string, bool) {
		for _, l := range lookups {
			if l == nil {
				continue
			}
			if v, ok := l(name); ok {
				return v, true
			}
		}

		return "", false
	}
}

// Env looks variables up in the process environment.
func Env() Lookup {
	return os.LookupEnv
}
