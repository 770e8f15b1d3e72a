// Package grid holds rectangular boolean grids such as a puzzle's
// initial_grid, stored in documents as rows of 0/1 numbers.
package grid

import (
	"strings"

	"github.com/reoring/dimschema/node"
)

// MaxSize bounds each dimension of a grid edited interactively.
const MaxSize = 50

// Matrix is a W x H grid of cells, addressed (x, y) with y selecting the row.
type Matrix struct {
	w, h  int
	cells [][]bool // [y][x]
}

// New returns an all-off w x h matrix. Negative sizes are treated as 0.
func New(w, h int) *Matrix {
	m := &Matrix{}
	m.resize(max(w, 0), max(h, 0))
	return m
}

// FromNode reads a document array of rows. Any non-zero number or true is
// on; everything else is off. Ragged rows are padded to the widest row.
func FromNode(n *node.Node) *Matrix {
	rows := n.Elements()
	w := 0
	for _, r := range rows {
		w = max(w, r.Len())
	}
	m := New(w, len(rows))
	for y, r := range rows {
		for x, c := range r.Elements() {
			m.cells[y][x] = on(c)
		}
	}
	return m
}

func on(c *node.Node) bool {
	switch c.Kind() {
	case node.Bool:
		b, _ := c.AsBool()
		return b
	case node.Number:
		f, _ := c.AsFloat()
		return f != 0
	}
	return false
}

// Width returns the number of columns.
func (m *Matrix) Width() int { return m.w }

// Height returns the number of rows.
func (m *Matrix) Height() int { return m.h }

// At reports the cell at (x, y). Out-of-bounds cells read as off.
func (m *Matrix) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.cells[y][x]
}

// Set stores v at (x, y) and reports whether the cell exists.
func (m *Matrix) Set(x, y int, v bool) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	m.cells[y][x] = v
	return true
}

// Toggle flips the cell at (x, y).
func (m *Matrix) Toggle(x, y int) bool { return m.Set(x, y, !m.At(x, y)) }

// Resize changes the grid to w x h, clamped to [0, MaxSize]. Cells inside
// both the old and the new bounds keep their value, new cells are off and
// cells outside the new bounds are dropped.
func (m *Matrix) Resize(w, h int) { m.ResizeWithin(w, h, MaxSize) }

// ResizeWithin is Resize with a caller-supplied bound.
func (m *Matrix) ResizeWithin(w, h, limit int) {
	m.resize(min(max(w, 0), limit), min(max(h, 0), limit))
}

func (m *Matrix) resize(w, h int) {
	cells := make([][]bool, h)
	for y := range cells {
		cells[y] = make([]bool, w)
		for x := 0; x < w; x++ {
			cells[y][x] = m.At(x, y)
		}
	}
	m.w, m.h, m.cells = w, h, cells
}

// Node renders the grid as rows of 0/1 numbers.
func (m *Matrix) Node() *node.Node {
	rows := node.NewArray()
	for _, r := range m.cells {
		row := node.NewArray()
		for _, c := range r {
			if c {
				row.Append(node.NewInt(1))
			} else {
				row.Append(node.NewInt(0))
			}
		}
		rows.Append(row)
	}
	return rows
}

// Clone returns an independent copy.
func (m *Matrix) Clone() *Matrix {
	c := New(m.w, m.h)
	for y := range m.cells {
		copy(c.cells[y], m.cells[y])
	}
	return c
}

// String draws the grid with '#' for on and '.' for off, one row per line.
func (m *Matrix) String() string {
	var b strings.Builder
	for y, r := range m.cells {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, c := range r {
			if c {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
