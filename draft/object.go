package draft

import (
	"fmt"

	"github.com/reoring/dimschema/gridpos"
	"github.com/reoring/dimschema/node"
)

// State is an object's default appearance.
type State struct {
	Asset   string
	GridPos string // optional
}

// ConditionalState replaces the default appearance while a flag is on.
type ConditionalState struct {
	ConditionFlag string
	Asset         string
	GridPos       string // optional
}

// Hotspot binds a grid region to an action. Focusable hotspots carry no
// action.
type Hotspot struct {
	GridPos string
	Action  *Action
}

// Interactable is a placeable object with an action hotspot.
type Interactable struct {
	Name    string
	Default State
	States  []ConditionalState
	Hotspot Hotspot
}

// Focusable is a placeable object whose hotspot only marks where the camera
// focuses.
type Focusable struct {
	Name    string
	Default State
	States  []ConditionalState
	GridPos string
}

// checkPos validates an optional grid position.
func checkPos(field, pos string) error {
	if pos == "" {
		return nil
	}
	if _, err := gridpos.Parse(pos); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalid, field, err)
	}
	return nil
}

// BuildState renders a default state.
func BuildState(s State) (*node.Node, error) {
	if err := checkPos("default_state.grid_pos", s.GridPos); err != nil {
		return nil, err
	}
	return node.NewObject().
		Set("asset", node.NewString(s.Asset)).
		Set("grid_pos", node.NewString(s.GridPos)), nil
}

// BuildStates renders a conditional state list.
func BuildStates(states []ConditionalState) (*node.Node, error) {
	out := node.NewArray()
	for i, s := range states {
		if err := checkPos(fmt.Sprintf("states[%d].grid_pos", i), s.GridPos); err != nil {
			return nil, err
		}
		out.Append(node.NewObject().
			Set("condition_flag", node.NewString(s.ConditionFlag)).
			Set("asset", node.NewString(s.Asset)).
			Set("grid_pos", node.NewString(s.GridPos)))
	}
	return out, nil
}

// BuildHotspot renders an action hotspot. Both the position and the action
// are required.
func BuildHotspot(h Hotspot) (*node.Node, error) {
	if h.GridPos == "" {
		return nil, fmt.Errorf("%w: hotspot without grid_pos", ErrInvalid)
	}
	if err := checkPos("hotspot.grid_pos", h.GridPos); err != nil {
		return nil, err
	}
	act, err := BuildAction(h.Action)
	if err != nil {
		return nil, fmt.Errorf("hotspot.action: %w", err)
	}
	return node.NewObject().
		Set("grid_pos", node.NewString(h.GridPos)).
		Set("action", act), nil
}

// BuildFocusHotspot renders a focusable hotspot.
func BuildFocusHotspot(pos string) (*node.Node, error) {
	if pos == "" {
		return nil, fmt.Errorf("%w: hotspot without grid_pos", ErrInvalid)
	}
	if err := checkPos("hotspot.grid_pos", pos); err != nil {
		return nil, err
	}
	return node.NewObject().Set("grid_pos", node.NewString(pos)), nil
}

// BuildInteractable renders an interactable object document.
func BuildInteractable(d Interactable) (*node.Node, error) {
	hs, err := BuildHotspot(d.Hotspot)
	if err != nil {
		return nil, err
	}
	return buildObject(d.Name, d.Default, d.States, hs)
}

// BuildFocusable renders a focusable object document.
func BuildFocusable(d Focusable) (*node.Node, error) {
	hs, err := BuildFocusHotspot(d.GridPos)
	if err != nil {
		return nil, err
	}
	return buildObject(d.Name, d.Default, d.States, hs)
}

func buildObject(name string, def State, states []ConditionalState, hotspot *node.Node) (*node.Node, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: object name is empty", ErrInvalid)
	}
	ds, err := BuildState(def)
	if err != nil {
		return nil, err
	}
	st, err := BuildStates(states)
	if err != nil {
		return nil, err
	}
	return node.NewObject().
		Set("name", node.NewString(name)).
		Set("default_state", ds).
		Set("states", st).
		Set("hotspot", hotspot), nil
}

func stateFromJSON(n *node.Node) State {
	return State{
		Asset:   n.Field("asset").StringOr(""),
		GridPos: n.Field("grid_pos").StringOr(""),
	}
}

func statesFromJSON(n *node.Node) []ConditionalState {
	var out []ConditionalState
	for _, e := range n.Elements() {
		out = append(out, ConditionalState{
			ConditionFlag: e.Field("condition_flag").StringOr(""),
			Asset:         e.Field("asset").StringOr(""),
			GridPos:       e.Field("grid_pos").StringOr(""),
		})
	}
	return out
}

// HotspotFromJSON loads an action hotspot.
func HotspotFromJSON(n *node.Node) (Hotspot, error) {
	if !n.IsObject() {
		return Hotspot{}, fmt.Errorf("%w: hotspot must be an object", ErrInvalid)
	}
	h := Hotspot{GridPos: n.Field("grid_pos").StringOr("")}
	if act, ok := n.Get("action"); ok {
		a, err := ActionFromJSON(act)
		if err != nil {
			return Hotspot{}, fmt.Errorf("hotspot.action: %w", err)
		}
		h.Action = a
	}
	return h, nil
}

// InteractableFromJSON loads an interactable object document.
func InteractableFromJSON(n *node.Node) (Interactable, error) {
	if !n.IsObject() {
		return Interactable{}, fmt.Errorf("%w: interactable must be an object", ErrInvalid)
	}
	hs, err := HotspotFromJSON(n.Field("hotspot"))
	if err != nil {
		return Interactable{}, err
	}
	return Interactable{
		Name:    n.Field("name").StringOr(""),
		Default: stateFromJSON(n.Field("default_state")),
		States:  statesFromJSON(n.Field("states")),
		Hotspot: hs,
	}, nil
}

// FocusableFromJSON loads a focusable object document.
func FocusableFromJSON(n *node.Node) (Focusable, error) {
	if !n.IsObject() {
		return Focusable{}, fmt.Errorf("%w: focusable must be an object", ErrInvalid)
	}
	var pos string
	if hs, ok := n.Get("hotspot"); ok {
		pos = hs.Field("grid_pos").StringOr("")
	}
	return Focusable{
		Name:    n.Field("name").StringOr(""),
		Default: stateFromJSON(n.Field("default_state")),
		States:  statesFromJSON(n.Field("states")),
		GridPos: pos,
	}, nil
}
