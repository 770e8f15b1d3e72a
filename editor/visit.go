// Package editor walks JSON documents under an optional schema hint.
//
// Visit is the generic, schema-aware traversal shared by every document:
// scalars are offered to the frontend for replacement, arrays support
// deferred delete-by-index and templated append, and objects pick labels and
// child hints from the schema in scope. Inspect is the per-document pass on
// top of it, and Missing/Conform are the validators.
package editor

import (
	"fmt"

	dimschema "github.com/reoring/dimschema"
	"github.com/reoring/dimschema/node"
	"github.com/reoring/dimschema/schema"
	"github.com/reoring/dimschema/template"
)

// Visit walks value with hint describing its children and applies the edits
// fe returns. It returns value, which is mutated in place.
func Visit(fe Frontend, label string, value *node.Node, hint *schema.Schema) *node.Node {
	visit(fe, dimschema.Root(), label, value, hint)
	return value
}

// VisitAt is Visit for a subtree rooted at the JSON Pointer at.
func VisitAt(fe Frontend, at dimschema.PathRef, label string, value *node.Node, hint *schema.Schema) *node.Node {
	visit(fe, at, label, value, hint)
	return value
}

func visit(fe Frontend, at dimschema.PathRef, label string, v *node.Node, hint *schema.Schema) {
	c := Control{Path: at.Pointer(), Label: label, Hint: hint}
	switch v.Kind() {
	case node.String, node.Number, node.Bool:
		if r := fe.Scalar(c, v); r != nil && r != v {
			v.Replace(r)
		}

	case node.Array:
		// Deletions are requested against pre-edit indices and applied in
		// one pass after the walk.
		for i, e := range v.Elements() {
			visit(fe, at.Index(i), fmt.Sprintf("%s[%d]", label, i), e, hint)
		}
		edit := fe.Array(c, v)
		v.RemoveIndices(edit.Delete...)
		if edit.Append {
			if hint != nil {
				v.Append(template.Shallow(hint))
			} else {
				v.Append(node.NewNull())
			}
		}

	case node.Object:
		for _, k := range v.Keys() {
			child, ok := v.Get(k)
			if !ok {
				continue
			}
			if p, declared := hint.Property(k); declared {
				visit(fe, at.Field(k), p.Label(), child, p.Child)
				continue
			}
			visit(fe, at.Field(k), k, child, hint.Values())
		}

	default:
		fe.Unsupported(c, v)
	}
}
