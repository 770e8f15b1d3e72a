package schema

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Definition is the YAML form of a schema. Composite properties reference
// other schemas by name, which lets definition files describe new object
// kinds that reuse the built-in Hotspot or Action schemas.
//
//	schemas:
//	  - name: Safe
//	    properties:
//	      - {name: code, description: Code, type: string, required: true}
//	      - {name: hotspot, type: object, ref: Hotspot, required: true}
//	      - {name: dial, type: object, ref: Dial}
//	  - name: Dial
//	    helper: true
//	    properties:
//	      - {name: digits, type: number}
type Definition struct {
	Name   string `yaml:"name"`
	Values string `yaml:"values,omitempty"`
	// Helper marks a schema that only exists to be referenced; it is not
	// an object kind of its own.
	Helper     bool                 `yaml:"helper,omitempty"`
	Properties []PropertyDefinition `yaml:"properties"`
}

// PropertyDefinition is the YAML form of a Property.
type PropertyDefinition struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Type        string `yaml:"type"`
	Required    bool   `yaml:"required,omitempty"`
	Ref         string `yaml:"ref,omitempty"`
}

type definitionFile struct {
	Schemas []Definition `yaml:"schemas"`
}

// DecodeDefinitions reads every YAML document in data and collects the
// schema definitions they declare.
func DecodeDefinitions(data []byte) ([]Definition, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []Definition
	for {
		var f definitionFile
		if err := dec.Decode(&f); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("schema: decode definitions: %w", err)
		}
		out = append(out, f.Schemas...)
	}
	return out, nil
}

// Compile builds schemas from definitions in two phases: every schema is
// built flat first, then references are linked. A reference resolves against
// the compiled set first and then against lookup (may be nil).
func Compile(defs []Definition, lookup func(name string) (*Schema, bool)) ([]*Schema, error) {
	built := make(map[string]*Schema, len(defs))
	out := make([]*Schema, 0, len(defs))
	var errs []error

	for _, d := range defs {
		b := New(d.Name)
		for _, p := range d.Properties {
			t, err := ParseType(p.Type)
			if err != nil {
				errs = append(errs, fmt.Errorf("schema: %s.%s: %w", d.Name, p.Name, err))
				continue
			}
			b.Field(p.Name, p.Description, t)
			if p.Required {
				b.Require(p.Name)
			}
		}
		s, err := b.Build()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := built[d.Name]; dup {
			errs = append(errs, fmt.Errorf("schema: duplicate definition %q", d.Name))
			continue
		}
		built[d.Name] = s
		out = append(out, s)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	resolve := func(name string) (*Schema, bool) {
		if s, ok := built[name]; ok {
			return s, true
		}
		if lookup != nil {
			return lookup(name)
		}
		return nil, false
	}
	for _, d := range defs {
		s := built[d.Name]
		for _, p := range d.Properties {
			if p.Ref == "" {
				continue
			}
			child, ok := resolve(p.Ref)
			if !ok {
				errs = append(errs, fmt.Errorf("schema: %s.%s: unknown reference %q", d.Name, p.Name, p.Ref))
				continue
			}
			if err := s.Link(p.Name, child); err != nil {
				errs = append(errs, err)
			}
		}
		if d.Values != "" {
			v, ok := resolve(d.Values)
			if !ok {
				errs = append(errs, fmt.Errorf("schema: %s: unknown values reference %q", d.Name, d.Values))
				continue
			}
			if err := s.LinkValues(v); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}
