package editor

import (
	dimschema "github.com/reoring/dimschema"
	"github.com/reoring/dimschema/grid"
	"github.com/reoring/dimschema/node"
	"github.com/reoring/dimschema/schema"
)

// gridProperty names the property edited as a resizable boolean grid.
const gridProperty = "initial_grid"

// Inspect renders one document under its kind schema. Properties are
// visited in declared order with their description and child schema;
// absent required properties are handed to fe.Missing and returned;
// absent optional ones are skipped. Keys s does not declare are left
// alone.
func Inspect(fe Frontend, s *schema.Schema, doc *node.Node) dimschema.Issues {
	if s == nil {
		InspectGeneric(fe, doc)
		return nil
	}
	root := dimschema.Root()
	if !doc.IsObject() {
		visit(fe, root, s.Name(), doc, s)
		return Missing(s, doc)
	}

	var iss dimschema.Issues
	for _, p := range s.Properties() {
		at := root.Field(p.Name)
		v, ok := doc.Get(p.Name)
		if !ok {
			if p.Required {
				fe.Missing(Control{Path: at.Pointer(), Label: p.Label(), Hint: p.Child}, p)
				iss = append(iss, missingIssue(root, p))
			}
			continue
		}
		if p.Name == gridProperty && v.IsArray() {
			c := Control{Path: at.Pointer(), Label: p.Label()}
			if g := fe.Grid(c, grid.FromNode(v)); g != nil {
				doc.Set(p.Name, g.Node())
			}
			continue
		}
		visit(fe, at, p.Label(), v, p.Child)
	}
	return iss
}

// InspectGeneric edits a document whose kind has no schema.
func InspectGeneric(fe Frontend, doc *node.Node) {
	visit(fe, dimschema.Root(), "root", doc, nil)
}
