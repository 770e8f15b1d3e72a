package gridpos

// Selector tracks a cell selection the way the room grid picker does: a
// click anchors a single cell, a shift-click extends from the anchor.
type Selector struct {
	cols, rows int
	anchor     Point
	sel        Rect
	active     bool
}

// NewSelector returns a selector over a cols x rows grid. Non-positive sizes
// fall back to the 16 x 12 room grid.
func NewSelector(cols, rows int) *Selector {
	if cols <= 0 {
		cols = DefaultCols
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	return &Selector{cols: cols, rows: rows}
}

// Size returns the grid dimensions.
func (s *Selector) Size() (cols, rows int) { return s.cols, s.rows }

// Click selects p, or extends the selection to p when extend is set and a
// selection exists. Clicks outside the grid are ignored.
func (s *Selector) Click(p Point, extend bool) bool {
	if !(Rect{Min: p, Max: p}).Within(s.cols, s.rows) {
		return false
	}
	if extend && s.active {
		s.sel = Span(s.anchor, p)
		return true
	}
	s.anchor = p
	s.sel = Rect{Min: p, Max: p}
	s.active = true
	return true
}

// Load seeds the selection from text such as an existing grid_pos. Empty
// text clears the selection.
func (s *Selector) Load(text string) error {
	if text == "" {
		s.Clear()
		return nil
	}
	r, err := Parse(text)
	if err != nil {
		return err
	}
	s.anchor, s.sel, s.active = r.Min, r, true
	return nil
}

// Selection returns the current range.
func (s *Selector) Selection() (Rect, bool) { return s.sel, s.active }

// Text returns the selection in grid_pos form, or "" when nothing is
// selected.
func (s *Selector) Text() string {
	if !s.active {
		return ""
	}
	return s.sel.String()
}

// Clear drops the selection.
func (s *Selector) Clear() {
	s.sel, s.active = Rect{}, false
}
