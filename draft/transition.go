package draft

import (
	"fmt"

	"github.com/reoring/dimschema/node"
)

// Direction names a room exit.
type Direction string

const (
	Up      Direction = "Up"
	Down    Direction = "Down"
	Left    Direction = "Left"
	Right   Direction = "Right"
	Forward Direction = "Forward"
)

// Directions lists the exits in menu order.
func Directions() []Direction { return []Direction{Up, Down, Left, Right, Forward} }

// Valid reports whether d is a known exit.
func (d Direction) Valid() bool {
	for _, x := range Directions() {
		if d == x {
			return true
		}
	}
	return false
}

// Transition leads from a room to another room. It is stored as the plain
// destination name unless it is gated by a flag or, for Forward, placed on
// the grid.
type Transition struct {
	Direction Direction
	To        string
	Condition string // flag that must be on
	Scope     string
	GridPos   string // Forward only
}

// Complex reports whether t needs the object form.
func (t Transition) Complex() bool {
	return t.Condition != "" || (t.Direction == Forward && t.GridPos != "")
}

// BuildTransition renders t as its stored value.
func BuildTransition(t Transition) (*node.Node, error) {
	if !t.Direction.Valid() {
		return nil, fmt.Errorf("%w: direction %q", ErrInvalid, t.Direction)
	}
	if t.To == "" {
		return nil, fmt.Errorf("%w: %s transition without destination", ErrInvalid, t.Direction)
	}
	if t.GridPos != "" && t.Direction != Forward {
		return nil, fmt.Errorf("%w: grid_pos is only allowed on Forward", ErrInvalid)
	}
	if !t.Complex() {
		return node.NewString(t.To), nil
	}
	if err := checkPos("grid_pos", t.GridPos); err != nil {
		return nil, err
	}
	out := node.NewObject().Set("to", node.NewString(t.To))
	if t.Condition != "" {
		out.Set("condition", node.NewString(t.Condition)).
			Set("scope", node.NewString(scopeOr(t.Scope)))
	}
	if t.GridPos != "" {
		out.Set("grid_pos", node.NewString(t.GridPos))
	}
	return out, nil
}

// TransitionFromJSON loads the transition stored for direction d.
func TransitionFromJSON(d Direction, n *node.Node) (Transition, error) {
	if s, ok := n.AsString(); ok {
		return Transition{Direction: d, To: s}, nil
	}
	if !n.IsObject() {
		return Transition{}, fmt.Errorf("%w: %s transition must be a string or object", ErrInvalid, d)
	}
	return Transition{
		Direction: d,
		To:        n.Field("to").StringOr(""),
		Condition: n.Field("condition").StringOr(""),
		Scope:     n.Field("scope").StringOr(DefaultScope),
		GridPos:   n.Field("grid_pos").StringOr(""),
	}, nil
}

// SetTransition stores t in room's transitions map, creating the map when
// needed. An existing transition for the same direction is replaced.
func SetTransition(room *node.Node, t Transition) error {
	if !room.IsObject() {
		return fmt.Errorf("%w: room must be an object", ErrInvalid)
	}
	v, err := BuildTransition(t)
	if err != nil {
		return err
	}
	tr, ok := room.Get("transitions")
	if !ok || !tr.IsObject() {
		tr = node.NewObject()
		room.Set("transitions", tr)
	}
	tr.Set(string(t.Direction), v)
	return nil
}

// Transitions loads every transition of room in stored order. Unknown
// directions are reported as errors.
func Transitions(room *node.Node) ([]Transition, error) {
	tr := room.Field("transitions")
	var out []Transition
	for _, k := range tr.Keys() {
		d := Direction(k)
		if !d.Valid() {
			return nil, fmt.Errorf("%w: direction %q", ErrInvalid, k)
		}
		t, err := TransitionFromJSON(d, tr.Field(k))
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
