// Package registry maps document kinds to their schemas.
//
// The kind of an object document is its file name without extension
// ("Lockbox.json" is a Lockbox). A Registry is built once by Initialize and
// is read-only afterwards; every schema it hands out is frozen.
package registry

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/reoring/dimschema/schema"
)

// Registry is the kind -> schema table. The zero value is empty.
type Registry struct {
	kinds  map[string]*schema.Schema
	shared map[string]*schema.Schema
}

// Option configures Initialize.
type Option func(*options)

type options struct {
	defs []schema.Definition
}

// WithDefinitions registers extra kinds described in YAML definitions. A
// definition may reference the built-in shared schemas (Action, Hotspot, ...)
// by name, and an object "hotspot" without a ref gets Hotspot. Helper
// definitions become shared schemas instead of kinds. Definitions that
// collide with a built-in kind or shared schema are rejected.
func WithDefinitions(defs ...schema.Definition) Option {
	return func(o *options) { o.defs = append(o.defs, defs...) }
}

// Initialize builds the built-in schemas, wires their cross references and
// recursive links, registers extension kinds and freezes everything.
func Initialize(opts ...Option) (*Registry, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	sh := buildShared()
	kinds := buildKinds(sh)
	if err := link(sh, kinds); err != nil {
		return nil, fmt.Errorf("registry: link: %w", err)
	}

	r := &Registry{kinds: kinds, shared: sh.byName()}
	if len(o.defs) > 0 {
		if err := r.extend(o.defs, sh.hotspot); err != nil {
			return nil, err
		}
	}

	for _, s := range r.kinds {
		s.Freeze()
	}
	for _, s := range r.shared {
		s.Freeze()
	}
	return r, nil
}

func (r *Registry) extend(defs []schema.Definition, hotspot *schema.Schema) error {
	helpers := map[string]bool{}
	for _, d := range defs {
		if d.Helper {
			helpers[d.Name] = true
		}
	}
	ext, err := schema.Compile(defs, r.Shared)
	if err != nil {
		return fmt.Errorf("registry: definitions: %w", err)
	}
	for _, s := range ext {
		name := s.Name()
		if _, dup := r.shared[name]; dup {
			return fmt.Errorf("registry: definition %q collides with a built-in schema", name)
		}
		if _, dup := r.kinds[name]; dup {
			return fmt.Errorf("registry: definition %q collides with a built-in kind", name)
		}
		if helpers[name] {
			r.shared[name] = s
			continue
		}
		if err := wireHotspot(s, hotspot); err != nil {
			return fmt.Errorf("registry: definition %q: %w", name, err)
		}
		r.kinds[name] = s
	}
	return nil
}

// Resolve returns the schema registered for kind. An unknown kind is not an
// error: callers fall back to schema-less editing.
func (r *Registry) Resolve(kind string) (*schema.Schema, bool) {
	if r == nil {
		return nil, false
	}
	s, ok := r.kinds[kind]
	return s, ok
}

// Shared returns a named sub-schema such as "Action" or "Hotspot".
func (r *Registry) Shared(name string) (*schema.Schema, bool) {
	if r == nil {
		return nil, false
	}
	s, ok := r.shared[name]
	return s, ok
}

// Kinds lists the registered kinds in lexical order.
func (r *Registry) Kinds() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.kinds))
	for k := range r.kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// KindFromPath derives a document kind from its file path.
func KindFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// ResolvePath resolves the schema of the document stored at path.
func (r *Registry) ResolvePath(path string) (kind string, s *schema.Schema, ok bool) {
	kind = KindFromPath(path)
	s, ok = r.Resolve(kind)
	return kind, s, ok
}
