// Package gridpos encodes positions on a room's background grid.
//
// A cell is written <Letter><Number>: the letter picks the row (A is the top
// row) and the 1-based number picks the column. A range is two cells joined
// by '-', e.g. "A1-B2". A range covering one cell is written as that cell.
package gridpos

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Default grid dimensions of a room background.
const (
	DefaultCols = 16
	DefaultRows = 12
)

// ErrSyntax is wrapped by every Parse error.
var ErrSyntax = errors.New("gridpos: invalid position")

// Point is a cell: X is the column (0-based), Y the row (0-based).
type Point struct {
	X, Y int
}

// String renders p as "D3" style text.
func (p Point) String() string {
	return string(rune('A'+p.Y)) + strconv.Itoa(p.X+1)
}

// Rect is an inclusive cell range with Min <= Max on both axes.
type Rect struct {
	Min, Max Point
}

// Span returns the normalized range covering a and b.
func Span(a, b Point) Rect {
	return Rect{
		Min: Point{X: min(a.X, b.X), Y: min(a.Y, b.Y)},
		Max: Point{X: max(a.X, b.X), Y: max(a.Y, b.Y)},
	}
}

// Single reports whether r covers exactly one cell.
func (r Rect) Single() bool { return r.Min == r.Max }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Width and Height count cells.
func (r Rect) Width() int  { return r.Max.X - r.Min.X + 1 }
func (r Rect) Height() int { return r.Max.Y - r.Min.Y + 1 }

// String renders "A1-B2", or "D3" for a single cell.
func (r Rect) String() string {
	if r.Single() {
		return r.Min.String()
	}
	return r.Min.String() + "-" + r.Max.String()
}

// Parse reads a cell or a range. Ranges written corner-to-corner in any
// direction are normalized.
func Parse(s string) (Rect, error) {
	s = strings.TrimSpace(s)
	from, to, isRange := strings.Cut(s, "-")
	a, err := parsePoint(from)
	if err != nil {
		return Rect{}, fmt.Errorf("%w %q: %v", ErrSyntax, s, err)
	}
	if !isRange {
		return Rect{Min: a, Max: a}, nil
	}
	b, err := parsePoint(to)
	if err != nil {
		return Rect{}, fmt.Errorf("%w %q: %v", ErrSyntax, s, err)
	}
	return Span(a, b), nil
}

func parsePoint(s string) (Point, error) {
	if len(s) < 2 {
		return Point{}, errors.New("too short")
	}
	letter := s[0]
	if letter < 'A' || letter > 'Z' {
		return Point{}, fmt.Errorf("row letter %q", letter)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 1 {
		return Point{}, fmt.Errorf("column number %q", s[1:])
	}
	return Point{X: n - 1, Y: int(letter - 'A')}, nil
}

// Within reports whether r fits a cols x rows grid.
func (r Rect) Within(cols, rows int) bool {
	return r.Min.X >= 0 && r.Min.Y >= 0 && r.Max.X < cols && r.Max.Y < rows
}
