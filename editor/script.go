package editor

import (
	"sort"
	"strconv"

	"github.com/reoring/dimschema/grid"
	"github.com/reoring/dimschema/node"
	"github.com/reoring/dimschema/schema"
)

// Script is a Frontend that applies edits queued by JSON Pointer. It drives
// the command line editor and tests. It also records what it was shown.
type Script struct {
	sets    map[string]*node.Node
	deletes map[string][]int
	appends map[string]bool
	resizes map[string][2]int
	toggles map[string][][2]int
	done    map[string]bool

	Visited   []Control
	Missed    []Control
	Unhandled []Control
	Rejected  []string // pointers whose value could not be coerced

	// GridLimit caps resized grids; zero means grid.MaxSize.
	GridLimit int
}

// NewScript returns an empty script.
func NewScript() *Script {
	return &Script{
		sets:    map[string]*node.Node{},
		deletes: map[string][]int{},
		appends: map[string]bool{},
		resizes: map[string][2]int{},
		toggles: map[string][][2]int{},
		done:    map[string]bool{},
	}
}

// Set queues a scalar overwrite at ptr.
func (s *Script) Set(ptr string, v *node.Node) *Script {
	s.sets[ptr] = v
	return s
}

// Delete queues removal of element i of the array at ptr.
func (s *Script) Delete(ptr string, i int) *Script {
	s.deletes[ptr] = append(s.deletes[ptr], i)
	return s
}

// Append queues one templated element for the array at ptr.
func (s *Script) Append(ptr string) *Script {
	s.appends[ptr] = true
	return s
}

// Resize queues a grid resize at ptr.
func (s *Script) Resize(ptr string, w, h int) *Script {
	s.resizes[ptr] = [2]int{w, h}
	return s
}

// Toggle queues flipping cell (x, y) of the grid at ptr, after any resize.
func (s *Script) Toggle(ptr string, x, y int) *Script {
	s.toggles[ptr] = append(s.toggles[ptr], [2]int{x, y})
	return s
}

// Pending lists the pointers of queued edits that were never reached, in
// lexical order.
func (s *Script) Pending() []string {
	var out []string
	add := func(p string) {
		if !s.done[p] {
			out = append(out, p)
		}
	}
	for p := range s.sets {
		add(p)
	}
	for p := range s.deletes {
		add(p)
	}
	for p := range s.appends {
		if _, dup := s.deletes[p]; !dup {
			add(p)
		}
	}
	for p := range s.resizes {
		add(p)
	}
	for p := range s.toggles {
		if _, dup := s.resizes[p]; !dup {
			add(p)
		}
	}
	sort.Strings(out)
	return out
}

// PendingSet returns the value queued for ptr if it was never applied.
func (s *Script) PendingSet(ptr string) (*node.Node, bool) {
	v, ok := s.sets[ptr]
	if !ok || s.done[ptr] {
		return nil, false
	}
	return v, true
}

// Scalar returns the value queued by Set for c, coerced to the kind of v.
// A value that cannot be coerced is recorded in Rejected and v is kept.
func (s *Script) Scalar(c Control, v *node.Node) *node.Node {
	s.Visited = append(s.Visited, c)
	nv, ok := s.sets[c.Path]
	if !ok {
		return nil
	}
	s.done[c.Path] = true
	out, ok := coerce(v.Kind(), nv)
	if !ok {
		s.Rejected = append(s.Rejected, c.Path)
		return nil
	}
	return out
}

// Array returns the deletes and append queued for c.
func (s *Script) Array(c Control, arr *node.Node) ArrayEdit {
	s.Visited = append(s.Visited, c)
	var e ArrayEdit
	if idx, ok := s.deletes[c.Path]; ok {
		e.Delete = idx
		s.done[c.Path] = true
	}
	if s.appends[c.Path] {
		e.Append = true
		s.done[c.Path] = true
	}
	return e
}

// Unsupported records c in Unhandled.
func (s *Script) Unsupported(c Control, _ *node.Node) {
	s.Unhandled = append(s.Unhandled, c)
}

// Missing records c in Missed.
func (s *Script) Missing(c Control, _ schema.Property) {
	s.Missed = append(s.Missed, c)
}

// Grid applies the resize queued for c, then its toggles. Resizes are
// capped by GridLimit when it is set.
func (s *Script) Grid(c Control, g *grid.Matrix) *grid.Matrix {
	s.Visited = append(s.Visited, c)
	size, resize := s.resizes[c.Path]
	cells, toggle := s.toggles[c.Path]
	if !resize && !toggle {
		return nil
	}
	s.done[c.Path] = true
	if resize {
		if s.GridLimit > 0 {
			g.ResizeWithin(size[0], size[1], s.GridLimit)
		} else {
			g.Resize(size[0], size[1])
		}
	}
	for _, xy := range cells {
		g.Toggle(xy[0], xy[1])
	}
	return g
}

// coerce converts v to kind k where the conversion is lossless.
func coerce(k node.Kind, v *node.Node) (*node.Node, bool) {
	if v.Kind() == k {
		return v, true
	}
	switch k {
	case node.String:
		switch v.Kind() {
		case node.Number:
			return node.NewString(v.Literal()), true
		case node.Bool:
			b, _ := v.AsBool()
			return node.NewString(strconv.FormatBool(b)), true
		}
	case node.Number:
		if str, ok := v.AsString(); ok {
			if n, err := node.NewNumberLiteral(str); err == nil {
				return n, true
			}
		}
	case node.Bool:
		if str, ok := v.AsString(); ok {
			if b, err := strconv.ParseBool(str); err == nil {
				return node.NewBool(b), true
			}
		}
	}
	return nil, false
}
