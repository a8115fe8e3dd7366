package config

import (
	"github.com/pkg/errors"
)

type Loader string

const (
	Fabric Loader = "fabric"
	Forge  Loader = "forge"
	Quilt  Loader = "quilt"
)

func Loaders() []Loader {
	return []Loader{Fabric, Forge, Quilt}
}

func (l *Loader) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	for _, known := range Loaders() {
		if Loader(s) == known {
			*l = known

			return nil
		}
	}

	return errors.Errorf("unknown loader %q", s)
}

func (l Loader) ModrinthID() string {
	return string(l)
}

func (l Loader) CurseForgeName() string {
	switch l {
	case Fabric:
		return "Fabric"
	case Forge:
		return "Forge"
	case Quilt:
		return "Quilt"
	}

	return string(l)
}

type ReleaseLevel string

const (
	Release ReleaseLevel = "release"
	Beta    ReleaseLevel = "beta"
	Alpha   ReleaseLevel = "alpha"
)

func (r *ReleaseLevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	switch level := ReleaseLevel(s); level {
	case Release, Beta, Alpha:
		*r = level

		return nil
	}

	return errors.Errorf("unknown release level %q", s)
}

type DependencyType string

const (
	Required     DependencyType = "required"
	Optional     DependencyType = "optional"
	Incompatible DependencyType = "incompatible"
	Embedded     DependencyType = "embedded"
)

func (d *DependencyType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	switch dt := DependencyType(s); dt {
	case Required, Optional, Incompatible, Embedded:
		*d = dt

		return nil
	}

	return errors.Errorf("unknown dependency type %q", s)
}
