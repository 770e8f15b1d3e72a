package editor

import (
	"fmt"

	dimschema "github.com/reoring/dimschema"
	"github.com/reoring/dimschema/node"
	"github.com/reoring/dimschema/schema"
)

// Missing reports every property s requires that doc lacks. It never fills
// anything in: a missing property stays missing until it is authored.
func Missing(s *schema.Schema, doc *node.Node) dimschema.Issues {
	return missingAt(dimschema.Root(), s, doc)
}

func missingAt(at dimschema.PathRef, s *schema.Schema, doc *node.Node) dimschema.Issues {
	if s == nil {
		return nil
	}
	var iss dimschema.Issues
	for _, p := range s.Properties() {
		if !p.Required || doc.Has(p.Name) {
			continue
		}
		iss = append(iss, missingIssue(at, p))
	}
	return iss
}

func missingIssue(at dimschema.PathRef, p schema.Property) dimschema.Issue {
	it := at.Field(p.Name).Issue(dimschema.CodeRequired, "required property is missing", "property", p.Name)
	it.Label = p.Label()
	return it
}

// Conform checks doc against s in depth: absent required properties, values
// of the wrong type, and keys s neither declares nor covers with Values
// (reported as warnings). Opaque substructure (no child schema) and empty
// optional objects are not descended into.
func Conform(s *schema.Schema, doc *node.Node) dimschema.Issues {
	var iss dimschema.Issues
	conformObject(&iss, dimschema.Root(), s, doc)
	return iss
}

func conformObject(iss *dimschema.Issues, at dimschema.PathRef, s *schema.Schema, v *node.Node) {
	if s == nil {
		return
	}
	if !v.IsObject() {
		*iss = append(*iss, typeIssue(at, schema.Object, v, ""))
		return
	}
	*iss = append(*iss, missingAt(at, s, v)...)
	for _, k := range v.Keys() {
		child, _ := v.Get(k)
		p, declared := s.Property(k)
		if !declared {
			if vs := s.Values(); vs != nil {
				conformObject(iss, at.Field(k), vs, child)
				continue
			}
			it := at.Field(k).Issue(dimschema.CodeUnknownKey, fmt.Sprintf("%s does not declare %q", s.Name(), k), "schema", s.Name())
			it.Severity = dimschema.Warn
			*iss = append(*iss, it)
			continue
		}
		conformProperty(iss, at.Field(k), p, child)
	}
}

func conformProperty(iss *dimschema.Issues, at dimschema.PathRef, p schema.Property, v *node.Node) {
	// Null-typed properties accept anything.
	if p.Type != schema.Null && !p.Type.Matches(v.Kind()) {
		*iss = append(*iss, typeIssue(at, p.Type, v, p.Label()))
		return
	}
	if p.Child == nil {
		return
	}
	// An empty optional object is an unset placeholder, as written by
	// templates for recursive children.
	if p.Type == schema.Object && !p.Required && v.Len() == 0 {
		return
	}
	switch p.Type {
	case schema.Object:
		conformObject(iss, at, p.Child, v)
	case schema.Array:
		for i, e := range v.Elements() {
			conformObject(iss, at.Index(i), p.Child, e)
		}
	}
}

func typeIssue(at dimschema.PathRef, want schema.Type, got *node.Node, label string) dimschema.Issue {
	it := at.Issue(dimschema.CodeInvalidType,
		fmt.Sprintf("expected %s, got %s", want, got.Kind()),
		"expected", want.String(), "got", got.Kind().String())
	it.Label = label
	return it
}
