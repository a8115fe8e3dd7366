package template

import "errors"

// Validate checks that lookup has a value for every variable in t. Unlike
// Resolve it reports all missing variables, joined into one error.
func (t *Template) Validate(lookup Lookup) error {
	var errs []error
	for _, name := range t.Variables() {
		v := &Variable{Name: name}
		if _, err := v.resolve(lookup); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
