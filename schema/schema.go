// Package schema defines the declarative document schemas of a Dimension.
//
// A Schema is an insertion-ordered set of typed properties. Properties of
// Object or Array type may point at a child schema describing the nested
// object (or each array element). Child links may form cycles, which is how
// recursive action trees are described: build every schema flat first, then
// wire the back references with Link, then Freeze.
package schema

import (
	"errors"
	"fmt"

	"github.com/reoring/dimschema/node"
)

// ErrFrozen is returned when a frozen schema is asked to change.
var ErrFrozen = errors.New("schema: frozen")

// Type is the expected JSON type of a property.
type Type int

const (
	Null Type = iota
	String
	Number
	Bool
	Array
	Object
)

// String returns the lowercase type name used in definitions and messages.
func (t Type) String() string {
	switch t {
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "bool"
	case Array:
		return "array"
	case Object:
		return "object"
	case Null:
		return "null"
	default:
		return "unknown"
	}
}

// ParseType maps a type name back to a Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "string":
		return String, nil
	case "number":
		return Number, nil
	case "bool", "boolean":
		return Bool, nil
	case "array":
		return Array, nil
	case "object":
		return Object, nil
	case "null":
		return Null, nil
	}
	return Null, fmt.Errorf("schema: unknown type %q", s)
}

// Matches reports whether a document node of kind k satisfies t.
func (t Type) Matches(k node.Kind) bool {
	switch t {
	case String:
		return k == node.String
	case Number:
		return k == node.Number
	case Bool:
		return k == node.Bool
	case Array:
		return k == node.Array
	case Object:
		return k == node.Object
	case Null:
		return k == node.Null
	}
	return false
}

// Composite reports whether t can carry a child schema.
func (t Type) Composite() bool { return t == Array || t == Object }

// Property describes one named property.
type Property struct {
	Name        string
	Description string // human label
	Type        Type
	Required    bool
	// Child describes the nested object (Object) or each element (Array).
	// Nil means the substructure is opaque.
	Child *Schema
}

// Label returns the description, or the name when no description was given.
func (p Property) Label() string {
	if p.Description != "" {
		return p.Description
	}
	return p.Name
}

// Schema is an ordered, named property set. Schemas are shared by pointer and
// never copied.
type Schema struct {
	name   string
	props  []*Property
	index  map[string]int
	values *Schema
	frozen bool
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Len returns the number of declared properties.
func (s *Schema) Len() int { return len(s.props) }

// Properties returns the declared properties in order.
func (s *Schema) Properties() []Property {
	out := make([]Property, 0, len(s.props))
	for _, p := range s.props {
		out = append(out, *p)
	}
	return out
}

// Property looks up a declared property by name.
func (s *Schema) Property(name string) (Property, bool) {
	if s == nil {
		return Property{}, false
	}
	i, ok := s.index[name]
	if !ok {
		return Property{}, false
	}
	return *s.props[i], true
}

// Required lists the required property names in declared order.
func (s *Schema) Required() []string {
	var out []string
	for _, p := range s.props {
		if p.Required {
			out = append(out, p.Name)
		}
	}
	return out
}

// Values returns the hint applied to undeclared object keys, or nil.
func (s *Schema) Values() *Schema {
	if s == nil {
		return nil
	}
	return s.values
}

// Link sets the child schema of a composite property. It is the second
// phase of schema construction and fails once the schema is frozen.
func (s *Schema) Link(prop string, child *Schema) error {
	if s.frozen {
		return fmt.Errorf("%w: link %s.%s", ErrFrozen, s.name, prop)
	}
	i, ok := s.index[prop]
	if !ok {
		return fmt.Errorf("schema: %s has no property %q", s.name, prop)
	}
	p := s.props[i]
	if !p.Type.Composite() {
		return fmt.Errorf("schema: %s.%s is %s and cannot have a child schema", s.name, prop, p.Type)
	}
	p.Child = child
	return nil
}

// LinkValues sets the hint applied to undeclared keys.
func (s *Schema) LinkValues(values *Schema) error {
	if s.frozen {
		return fmt.Errorf("%w: link %s values", ErrFrozen, s.name)
	}
	s.values = values
	return nil
}

// Freeze makes s and every schema reachable from it immutable.
func (s *Schema) Freeze() {
	Walk(s, func(x *Schema) { x.frozen = true })
}

// Frozen reports whether s rejects further links.
func (s *Schema) Frozen() bool { return s.frozen }

// Walk calls fn once for s and every schema reachable through child and
// values links, in depth-first declaration order. Cycles are visited once.
func Walk(s *Schema, fn func(*Schema)) {
	seen := map[*Schema]struct{}{}
	var visit func(*Schema)
	visit = func(x *Schema) {
		if x == nil {
			return
		}
		if _, ok := seen[x]; ok {
			return
		}
		seen[x] = struct{}{}
		fn(x)
		for _, p := range x.props {
			visit(p.Child)
		}
		visit(x.values)
	}
	visit(s)
}
