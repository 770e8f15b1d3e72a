package rules

import (
	"fmt"

	dimschema "github.com/reoring/dimschema"
	"github.com/reoring/dimschema/draft"
	"github.com/reoring/dimschema/gridpos"
	"github.com/reoring/dimschema/node"
	"github.com/reoring/dimschema/registry"
)

// Grid is the room grid that grid_pos values must fit.
type Grid struct {
	Cols, Rows int
}

// DefaultGrid is the 16 x 12 room grid.
var DefaultGrid = Grid{Cols: gridpos.DefaultCols, Rows: gridpos.DefaultRows}

// ForKind returns the rules for documents of kind. Every kind gets the
// grid position check; some kinds add their own.
func ForKind(kind string, g Grid) []Rule {
	rs := []Rule{GridPositions(g)}
	switch kind {
	case registry.KindRoomConnections:
		rs = append(rs, RoomLinks())
	case "Lockbox":
		rs = append(rs, UniqueBy("/answers", "code"))
	case "CardCase":
		rs = append(rs, UniqueBy("/answers", "flag"))
	case "Diary":
		rs = append(rs, WithSeverity(dimschema.Warn, AtLeastOne("/pages")))
	case "RotatingPuzzle":
		rs = append(rs, If("/puzzle_width", Le, 0).Then(positive("/puzzle_width")))
	}
	if kind != registry.KindRoomConnections {
		rs = append(rs, If("/hotspot/action/type", Eq, draft.MultiStep.String()).Then(AtLeastOne("/hotspot/action/steps")))
	}
	return rs
}

func positive(path string) Rule {
	return func(doc *node.Node) dimschema.Issues {
		v, _ := doc.Lookup(path)
		return dimschema.Issues{dimschema.At(path).Issue(dimschema.CodeDomainRange, "must be positive", "got", v.Literal())}
	}
}

// GridPositions checks every "grid_pos" string in the document: it must
// parse as a cell or range, and should fit the room grid. Empty values are
// unset positions and pass.
func GridPositions(g Grid) Rule {
	if g.Cols <= 0 || g.Rows <= 0 {
		g = DefaultGrid
	}
	return func(doc *node.Node) dimschema.Issues {
		var out dimschema.Issues
		walk(dimschema.Root(), doc, func(at dimschema.PathRef, key string, v *node.Node) {
			if key != "grid_pos" {
				return
			}
			s, ok := v.AsString()
			if !ok || s == "" {
				return
			}
			r, err := gridpos.Parse(s)
			if err != nil {
				out = append(out, at.Issue(dimschema.CodeInvalidFormat, err.Error(), "value", s))
				return
			}
			if !r.Within(g.Cols, g.Rows) {
				it := at.Issue(dimschema.CodeDomainRange, fmt.Sprintf("%s is outside the %dx%d grid", r, g.Cols, g.Rows), "value", s)
				it.Severity = dimschema.Warn
				out = append(out, it)
			}
		})
		return out
	}
}

// walk calls fn for every object member below n, depth first in document
// order.
func walk(at dimschema.PathRef, n *node.Node, fn func(at dimschema.PathRef, key string, v *node.Node)) {
	switch n.Kind() {
	case node.Object:
		for _, k := range n.Keys() {
			v := n.Field(k)
			fn(at.Field(k), k, v)
			walk(at.Field(k), v, fn)
		}
	case node.Array:
		for i, e := range n.Elements() {
			walk(at.Index(i), e, fn)
		}
	}
}

// RoomLinks checks the transitions of every room in a room_connections
// document: each must load, and its destination should be a room of the
// same dimension.
func RoomLinks() Rule {
	return func(doc *node.Node) dimschema.Issues {
		rooms := doc.Field("rooms")
		var out dimschema.Issues
		for _, name := range rooms.Keys() {
			room := rooms.Field(name)
			at := dimschema.Root().Field("rooms").Field(name).Field("transitions")
			ts, err := draft.Transitions(room)
			if err != nil {
				out = append(out, at.Issue(dimschema.CodeInvalidFormat, err.Error()))
				continue
			}
			for _, t := range ts {
				if t.To != "" && rooms.Has(t.To) {
					continue
				}
				it := at.Field(string(t.Direction)).Issue(dimschema.CodeBusinessRule,
					fmt.Sprintf("%s leads to unknown room %q", t.Direction, t.To), "to", t.To)
				it.Severity = dimschema.Warn
				out = append(out, it)
			}
		}
		return out
	}
}
