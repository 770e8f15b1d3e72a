package editor

import (
	"github.com/reoring/dimschema/grid"
	"github.com/reoring/dimschema/node"
	"github.com/reoring/dimschema/schema"
)

// Control identifies the node a frontend is asked about.
type Control struct {
	Path  string // JSON Pointer of the node
	Label string
	Hint  *schema.Schema // schema in scope for the node's children, may be nil
}

// ArrayEdit is the structural edit a frontend requests for one array.
// Delete holds element indices as they were before the edit.
type ArrayEdit struct {
	Delete []int
	Append bool
}

// Frontend renders controls and reports the user's edits back to the
// visitor. Implementations must not mutate the document themselves; every
// change is returned and applied by the visitor.
type Frontend interface {
	// Scalar shows a string, number or bool and returns its replacement,
	// or nil to keep it.
	Scalar(c Control, v *node.Node) *node.Node
	// Array is called after every element was visited.
	Array(c Control, arr *node.Node) ArrayEdit
	// Unsupported reports a node the editor cannot edit (null).
	Unsupported(c Control, v *node.Node)
	// Missing reports an absent required property.
	Missing(c Control, p schema.Property)
	// Grid edits a boolean grid and returns the new grid, or nil to keep it.
	Grid(c Control, g *grid.Matrix) *grid.Matrix
}

// Nop is a Frontend that renders nothing and never edits. Visiting with Nop
// is a dry run.
type Nop struct{}

// Scalar keeps every value.
func (Nop) Scalar(Control, *node.Node) *node.Node { return nil }

// Array requests no structural edit.
func (Nop) Array(Control, *node.Node) ArrayEdit { return ArrayEdit{} }

// Unsupported ignores the node.
func (Nop) Unsupported(Control, *node.Node) {}

// Missing ignores the absent property.
func (Nop) Missing(Control, schema.Property) {}

// Grid keeps the grid.
func (Nop) Grid(Control, *grid.Matrix) *grid.Matrix { return nil }
