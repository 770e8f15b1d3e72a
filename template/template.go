// Package template produces fresh documents from schemas.
package template

import (
	"github.com/reoring/dimschema/node"
	"github.com/reoring/dimschema/registry"
	"github.com/reoring/dimschema/schema"
)

// Option adjusts instantiation.
type Option func(*config)

type config struct {
	requiredOnly bool
}

// RequiredOnly limits the top-level document to required properties.
// Nested objects are still fully instantiated.
func RequiredOnly() Option {
	return func(c *config) { c.requiredOnly = true }
}

// Instantiate returns a new document holding the type-appropriate zero value
// of every property of s, in declared order. Object properties with a child
// schema are instantiated recursively; a child that is already being
// instantiated further up yields {} so that cyclic schemas terminate.
// A nil schema yields {}.
func Instantiate(s *schema.Schema, opts ...Option) *node.Node {
	var c config
	for _, o := range opts {
		o(&c)
	}
	onPath := map[*schema.Schema]bool{}
	return instantiate(s, onPath, c.requiredOnly)
}

func instantiate(s *schema.Schema, onPath map[*schema.Schema]bool, requiredOnly bool) *node.Node {
	obj := node.NewObject()
	if s == nil || onPath[s] {
		return obj
	}
	onPath[s] = true
	defer delete(onPath, s)

	for _, p := range s.Properties() {
		if requiredOnly && !p.Required {
			continue
		}
		if p.Type == schema.Object && p.Child != nil {
			obj.Set(p.Name, instantiate(p.Child, onPath, false))
			continue
		}
		obj.Set(p.Name, Zero(p.Type))
	}
	return obj
}

// Shallow returns a single-level document for s: scalars get zero values,
// arrays [] and objects {} regardless of their child schema. It is what an
// array append inserts.
func Shallow(s *schema.Schema) *node.Node {
	obj := node.NewObject()
	if s == nil {
		return obj
	}
	for _, p := range s.Properties() {
		obj.Set(p.Name, Zero(p.Type))
	}
	return obj
}

// Zero returns the zero value of t: "" / 0 / false / [] / {} / null.
func Zero(t schema.Type) *node.Node {
	switch t {
	case schema.String:
		return node.NewString("")
	case schema.Number:
		return node.NewInt(0)
	case schema.Bool:
		return node.NewBool(false)
	case schema.Array:
		return node.NewArray()
	case schema.Object:
		return node.NewObject()
	default:
		return node.NewNull()
	}
}

// ForKind instantiates the schema registered for kind, or {} when the kind
// is unknown.
func ForKind(r *registry.Registry, kind string, opts ...Option) *node.Node {
	s, _ := r.Resolve(kind)
	return Instantiate(s, opts...)
}
