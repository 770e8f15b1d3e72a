// Package draft converts in-progress edits into canonical document
// fragments and back.
//
// A draft is plain Go data owned by one editing session. Build functions turn
// a draft into the JSON shape the registry schemas describe; FromJSON
// functions load an existing fragment into a draft so it can be edited and
// rebuilt.
package draft

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reoring/dimschema/node"
)

// DefaultScope is the flag scope used when none is given.
const DefaultScope = "Dimension"

var (
	// ErrUnknownKind is returned for action or condition types the builder
	// does not know.
	ErrUnknownKind = errors.New("draft: unknown kind")
	// ErrInvalid is returned for drafts or fragments that cannot be
	// represented.
	ErrInvalid = errors.New("draft: invalid")
)

// Kind is the action type.
type Kind int

const (
	ShowText Kind = iota
	GiveItem
	SetFlag
	Conditional
	Sequence
	MultiStep
	ChangeDimension
)

var kindNames = [...]string{"ShowText", "GiveItem", "SetFlag", "Conditional", "Sequence", "MultiStep", "ChangeDimension"}

// Kinds lists every action kind in menu order.
func Kinds() []Kind {
	return []Kind{ShowText, GiveItem, SetFlag, Conditional, Sequence, MultiStep, ChangeDimension}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind maps an action "type" value to a Kind.
func ParseKind(s string) (Kind, error) {
	for i, n := range kindNames {
		if n == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: action type %q", ErrUnknownKind, s)
}

// ConditionKind is the condition type of a Conditional action.
type ConditionKind int

const (
	HasItem ConditionKind = iota
	IsFlagOn
)

func (k ConditionKind) String() string {
	if k == HasItem {
		return "HasItem"
	}
	return "IsFlagOn"
}

// Condition is the test of a Conditional action.
type Condition struct {
	Kind  ConditionKind
	Item  string // HasItem
	Flag  string // IsFlagOn
	Scope string // IsFlagOn
}

// Action is a draft action tree. Only the fields of Kind are used; child
// actions are owned by their parent.
type Action struct {
	Kind Kind

	File  string // ShowText
	Item  string // GiveItem
	Flag  string // SetFlag
	Value bool   // SetFlag
	Scope string // SetFlag

	Condition Condition // Conditional
	Success   *Action   // Conditional, optional
	Failure   *Action   // Conditional, optional

	Steps []*Action // Sequence "actions", MultiStep "steps"
	ID    string    // MultiStep; generated when empty
	Final *Action   // MultiStep "final_action", optional

	Target string // ChangeDimension
}

// BuildAction renders a as an action document.
func BuildAction(a *Action) (*node.Node, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil action", ErrInvalid)
	}
	out := node.NewObject().Set("type", node.NewString(a.Kind.String()))
	switch a.Kind {
	case ShowText:
		out.Set("file", node.NewString(a.File))
	case GiveItem:
		out.Set("item", node.NewString(a.Item))
	case SetFlag:
		out.Set("flag", node.NewString(a.Flag)).
			Set("value", node.NewBool(a.Value)).
			Set("scope", node.NewString(scopeOr(a.Scope)))
	case Conditional:
		out.Set("condition", BuildCondition(a.Condition))
		if err := setChild(out, "success", a.Success); err != nil {
			return nil, err
		}
		if err := setChild(out, "failure", a.Failure); err != nil {
			return nil, err
		}
	case Sequence:
		list, err := buildList("actions", a.Steps)
		if err != nil {
			return nil, err
		}
		out.Set("actions", list)
	case MultiStep:
		id := a.ID
		if id == "" {
			id = uuid.NewString()
		}
		list, err := buildList("steps", a.Steps)
		if err != nil {
			return nil, err
		}
		out.Set("id", node.NewString(id)).Set("steps", list)
		if err := setChild(out, "final_action", a.Final); err != nil {
			return nil, err
		}
	case ChangeDimension:
		out.Set("target", node.NewString(a.Target))
	default:
		return nil, fmt.Errorf("%w: action kind %d", ErrUnknownKind, int(a.Kind))
	}
	return out, nil
}

func setChild(out *node.Node, key string, a *Action) error {
	if a == nil {
		return nil
	}
	n, err := BuildAction(a)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	out.Set(key, n)
	return nil
}

func buildList(key string, steps []*Action) (*node.Node, error) {
	list := node.NewArray()
	for i, s := range steps {
		n, err := BuildAction(s)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		list.Append(n)
	}
	return list, nil
}

// BuildCondition renders c as a condition document.
func BuildCondition(c Condition) *node.Node {
	out := node.NewObject().Set("type", node.NewString(c.Kind.String()))
	if c.Kind == HasItem {
		return out.Set("item", node.NewString(c.Item))
	}
	return out.Set("flag", node.NewString(c.Flag)).Set("scope", node.NewString(scopeOr(c.Scope)))
}

func scopeOr(s string) string {
	if s == "" {
		return DefaultScope
	}
	return s
}

// ActionFromJSON loads an action document into a draft. Missing optional
// fields take their draft defaults (SetFlag value true, scope Dimension).
func ActionFromJSON(n *node.Node) (*Action, error) {
	if !n.IsObject() {
		return nil, fmt.Errorf("%w: action must be an object, got %s", ErrInvalid, n.Kind())
	}
	typ, ok := n.Field("type").AsString()
	if !ok {
		return nil, fmt.Errorf("%w: action without type", ErrInvalid)
	}
	k, err := ParseKind(typ)
	if err != nil {
		return nil, err
	}

	a := &Action{Kind: k}
	switch k {
	case ShowText:
		a.File = n.Field("file").StringOr("")
	case GiveItem:
		a.Item = n.Field("item").StringOr("")
	case SetFlag:
		a.Flag = n.Field("flag").StringOr("")
		a.Value = n.Field("value").BoolOr(true)
		a.Scope = n.Field("scope").StringOr(DefaultScope)
	case Conditional:
		a.Condition = ConditionFromJSON(n.Field("condition"))
		if a.Success, err = childFromJSON(n, "success"); err != nil {
			return nil, err
		}
		if a.Failure, err = childFromJSON(n, "failure"); err != nil {
			return nil, err
		}
	case Sequence:
		if a.Steps, err = listFromJSON(n, "actions"); err != nil {
			return nil, err
		}
	case MultiStep:
		a.ID = n.Field("id").StringOr("")
		if a.Steps, err = listFromJSON(n, "steps"); err != nil {
			return nil, err
		}
		if a.Final, err = childFromJSON(n, "final_action"); err != nil {
			return nil, err
		}
	case ChangeDimension:
		a.Target = n.Field("target").StringOr("")
	}
	return a, nil
}

// childFromJSON loads an optional sub-action; absent, null and {} mean none.
func childFromJSON(n *node.Node, key string) (*Action, error) {
	v, ok := n.Get(key)
	if !ok || v.IsNull() || (v.IsObject() && v.Len() == 0) {
		return nil, nil
	}
	a, err := ActionFromJSON(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return a, nil
}

func listFromJSON(n *node.Node, key string) ([]*Action, error) {
	var out []*Action
	for i, e := range n.Field(key).Elements() {
		a, err := ActionFromJSON(e)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		out = append(out, a)
	}
	return out, nil
}

// ConditionFromJSON loads a condition. Anything but HasItem is read as
// IsFlagOn.
func ConditionFromJSON(n *node.Node) Condition {
	if n.Field("type").StringOr("") == "HasItem" {
		return Condition{Kind: HasItem, Item: n.Field("item").StringOr("")}
	}
	return Condition{
		Kind:  IsFlagOn,
		Flag:  n.Field("flag").StringOr(""),
		Scope: n.Field("scope").StringOr(DefaultScope),
	}
}

// ActionTemplate returns the starter document offered when an action of
// kind k is added. Nested actions start as ShowText.
func ActionTemplate(k Kind) *node.Node {
	out := node.NewObject().Set("type", node.NewString(k.String()))
	switch k {
	case ShowText:
		out.Set("file", node.NewString(""))
	case GiveItem:
		out.Set("item", node.NewString(""))
	case SetFlag:
		out.Set("flag", node.NewString("")).
			Set("value", node.NewBool(true)).
			Set("scope", node.NewString(DefaultScope))
	case Conditional:
		out.Set("condition", ConditionTemplate(HasItem)).
			Set("success", ActionTemplate(ShowText)).
			Set("failure", ActionTemplate(ShowText))
	case Sequence:
		out.Set("actions", node.NewArray())
	case MultiStep:
		out.Set("id", node.NewString(uuid.NewString())).
			Set("steps", node.NewArray()).
			Set("final_action", ActionTemplate(ShowText))
	case ChangeDimension:
		out.Set("target", node.NewString(""))
	}
	return out
}

// ConditionTemplate returns the starter condition of kind k.
func ConditionTemplate(k ConditionKind) *node.Node {
	if k == HasItem {
		return BuildCondition(Condition{Kind: HasItem})
	}
	return BuildCondition(Condition{Kind: IsFlagOn})
}
