package schema

import (
	"errors"
	"fmt"
)

// Builder assembles a Schema property by property.
//
//	answer, _ := schema.New("LockboxAnswer").
//		Field("code", "Code", schema.String).
//		Field("item", "Reward Item", schema.String).
//		Require("code", "item").
//		Build()
type Builder struct {
	name     string
	props    []*Property
	required []string
	values   *Schema
}

// New starts a schema named name.
func New(name string) *Builder { return &Builder{name: name} }

// Field declares a property without child schema.
func (b *Builder) Field(name, description string, t Type) *Builder {
	b.props = append(b.props, &Property{Name: name, Description: description, Type: t})
	return b
}

// Object declares an object property described by child (nil: opaque).
func (b *Builder) Object(name, description string, child *Schema) *Builder {
	b.props = append(b.props, &Property{Name: name, Description: description, Type: Object, Child: child})
	return b
}

// Array declares an array property whose elements are described by item
// (nil: opaque elements).
func (b *Builder) Array(name, description string, item *Schema) *Builder {
	b.props = append(b.props, &Property{Name: name, Description: description, Type: Array, Child: item})
	return b
}

// Require marks properties as required. Unknown names fail Build.
func (b *Builder) Require(names ...string) *Builder {
	b.required = append(b.required, names...)
	return b
}

// Values sets the hint for undeclared keys (keyed maps such as rooms).
func (b *Builder) Values(s *Schema) *Builder {
	b.values = s
	return b
}

// Build validates the declaration and returns the schema.
func (b *Builder) Build() (*Schema, error) {
	var errs []error
	if b.name == "" {
		errs = append(errs, errors.New("schema: name is required"))
	}
	s := &Schema{name: b.name, index: make(map[string]int, len(b.props)), values: b.values}
	for _, p := range b.props {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("schema: %s: empty property name", b.name))
			continue
		}
		if _, dup := s.index[p.Name]; dup {
			errs = append(errs, fmt.Errorf("schema: %s: duplicate property %q", b.name, p.Name))
			continue
		}
		if p.Child != nil && !p.Type.Composite() {
			errs = append(errs, fmt.Errorf("schema: %s.%s is %s and cannot have a child schema", b.name, p.Name, p.Type))
		}
		cp := *p
		s.index[p.Name] = len(s.props)
		s.props = append(s.props, &cp)
	}
	for _, r := range b.required {
		i, ok := s.index[r]
		if !ok {
			errs = append(errs, fmt.Errorf("schema: %s: required property %q is not declared", b.name, r))
			continue
		}
		s.props[i].Required = true
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return s, nil
}

// MustBuild is Build for static declarations; it panics on error.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
