package schema

import (
	"strconv"

	"github.com/invopop/jsonschema"
)

// JSONSchema projects s into a JSON Schema document. Every reachable schema
// becomes an entry under $defs and child links become $ref pointers, so
// recursive schemas export without unbounded expansion.
func (s *Schema) JSONSchema() *jsonschema.Schema {
	names := defNames(s)
	defs := jsonschema.Definitions{}
	Walk(s, func(x *Schema) {
		defs[names[x]] = x.jsonDef(names)
	})
	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		Ref:         defRef(names[s]),
		Definitions: defs,
	}
}

func (s *Schema) jsonDef(names map[*Schema]string) *jsonschema.Schema {
	def := &jsonschema.Schema{
		Type:       "object",
		Title:      s.name,
		Properties: jsonschema.NewProperties(),
		Required:   s.Required(),
	}
	for _, p := range s.props {
		def.Properties.Set(p.Name, p.jsonProp(names))
	}
	if s.values != nil {
		def.AdditionalProperties = &jsonschema.Schema{Ref: defRef(names[s.values])}
	}
	return def
}

func (p *Property) jsonProp(names map[*Schema]string) *jsonschema.Schema {
	out := &jsonschema.Schema{Type: jsonType(p.Type), Description: p.Description}
	if p.Child == nil {
		return out
	}
	switch p.Type {
	case Object:
		out.Type = ""
		out.Ref = defRef(names[p.Child])
	case Array:
		out.Items = &jsonschema.Schema{Ref: defRef(names[p.Child])}
	}
	return out
}

func jsonType(t Type) string {
	switch t {
	case Bool:
		return "boolean"
	default:
		return t.String()
	}
}

// defNames assigns each reachable schema a unique $defs key, suffixing
// repeated names with their occurrence number.
func defNames(root *Schema) map[*Schema]string {
	names := map[*Schema]string{}
	used := map[string]int{}
	Walk(root, func(x *Schema) {
		n := x.name
		if c := used[n]; c > 0 {
			n = n + "_" + strconv.Itoa(c+1)
		}
		used[x.name]++
		names[x] = n
	})
	return names
}

func defRef(name string) string { return "#/$defs/" + name }
