// Package node implements the untyped JSON document tree edited by the
// Dimension tools.
//
// A Node is a closed tagged union over the six JSON value kinds. Objects keep
// key insertion order so that documents round-trip through the editor without
// reshuffling hand-authored files.
package node

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Kind identifies a JSON value kind.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// String returns the schema-style type name for the kind.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Node is one value of a JSON document. The zero value and a nil *Node both
// read as null.
type Node struct {
	kind  Kind
	b     bool
	s     string // string value, or number literal text
	elems []*Node
	keys  []string
	vals  map[string]*Node
}

// NewNull returns a null node.
func NewNull() *Node { return &Node{kind: Null} }

// NewBool returns a bool node.
func NewBool(b bool) *Node { return &Node{kind: Bool, b: b} }

// NewString returns a string node.
func NewString(s string) *Node { return &Node{kind: String, s: s} }

// NewNumber returns a number node holding f. NaN and infinities have no
// JSON spelling and yield null.
func NewNumber(f float64) *Node {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NewNull()
	}
	return &Node{kind: Number, s: strconv.FormatFloat(f, 'g', -1, 64)}
}

// NewInt returns a number node holding i.
func NewInt(i int) *Node { return &Node{kind: Number, s: strconv.Itoa(i)} }

var numberLiteral = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// NewNumberLiteral returns a number node from its JSON text. The literal must
// follow the JSON number grammar and fit a float64.
func NewNumberLiteral(lit string) (*Node, error) {
	if !numberLiteral.MatchString(lit) {
		return nil, fmt.Errorf("node: %q is not a JSON number", lit)
	}
	if _, err := strconv.ParseFloat(lit, 64); err != nil {
		return nil, err
	}
	return &Node{kind: Number, s: lit}, nil
}

// NewArray returns an array node holding elems.
func NewArray(elems ...*Node) *Node {
	out := &Node{kind: Array, elems: make([]*Node, 0, len(elems))}
	for _, e := range elems {
		out.elems = append(out.elems, orNull(e))
	}
	return out
}

// NewObject returns an empty object node.
func NewObject() *Node {
	return &Node{kind: Object, vals: map[string]*Node{}}
}

// Kind reports the node kind; nil reads as Null.
func (n *Node) Kind() Kind {
	if n == nil {
		return Null
	}
	return n.kind
}

func (n *Node) IsNull() bool   { return n.Kind() == Null }
func (n *Node) IsObject() bool { return n.Kind() == Object }
func (n *Node) IsArray() bool  { return n.Kind() == Array }

// AsString returns the string value.
func (n *Node) AsString() (string, bool) {
	if n.Kind() != String {
		return "", false
	}
	return n.s, true
}

// StringOr returns the string value or def when the node is not a string.
func (n *Node) StringOr(def string) string {
	if s, ok := n.AsString(); ok {
		return s
	}
	return def
}

// AsBool returns the bool value.
func (n *Node) AsBool() (bool, bool) {
	if n.Kind() != Bool {
		return false, false
	}
	return n.b, true
}

// BoolOr returns the bool value or def when the node is not a bool.
func (n *Node) BoolOr(def bool) bool {
	if b, ok := n.AsBool(); ok {
		return b
	}
	return def
}

// AsFloat returns the numeric value.
func (n *Node) AsFloat() (float64, bool) {
	if n.Kind() != Number {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// AsInt returns the numeric value truncated to an int.
func (n *Node) AsInt() (int, bool) {
	f, ok := n.AsFloat()
	if !ok {
		return 0, false
	}
	return int(f), true
}

// Literal returns the JSON text of a number node.
func (n *Node) Literal() string {
	if n.Kind() != Number {
		return ""
	}
	return n.s
}

// Len returns the element count of an array or the key count of an object.
func (n *Node) Len() int {
	switch n.Kind() {
	case Array:
		return len(n.elems)
	case Object:
		return len(n.keys)
	default:
		return 0
	}
}

// ---- arrays ----

// At returns the array element at i.
func (n *Node) At(i int) (*Node, bool) {
	if n.Kind() != Array || i < 0 || i >= len(n.elems) {
		return nil, false
	}
	return n.elems[i], true
}

// Elements returns a snapshot of the array elements. The slice is a copy;
// the element nodes are shared.
func (n *Node) Elements() []*Node {
	if n.Kind() != Array {
		return nil
	}
	return append([]*Node(nil), n.elems...)
}

// Append adds v at the end of the array.
func (n *Node) Append(v *Node) {
	if n.Kind() != Array {
		return
	}
	n.elems = append(n.elems, orNull(v))
}

// SetAt replaces the array element at i.
func (n *Node) SetAt(i int, v *Node) bool {
	if n.Kind() != Array || i < 0 || i >= len(n.elems) {
		return false
	}
	n.elems[i] = orNull(v)
	return true
}

// RemoveAt deletes the element at i, keeping the remaining order.
func (n *Node) RemoveAt(i int) bool {
	return n.RemoveIndices(i) == 1
}

// RemoveIndices deletes every listed index in one pass. Indices refer to the
// array as it was before the call; duplicates and out-of-range indices are
// ignored. It returns the number of removed elements.
func (n *Node) RemoveIndices(idx ...int) int {
	if n.Kind() != Array || len(idx) == 0 {
		return 0
	}
	drop := make(map[int]struct{}, len(idx))
	for _, i := range idx {
		if i >= 0 && i < len(n.elems) {
			drop[i] = struct{}{}
		}
	}
	if len(drop) == 0 {
		return 0
	}
	kept := make([]*Node, 0, len(n.elems)-len(drop))
	for i, e := range n.elems {
		if _, gone := drop[i]; gone {
			continue
		}
		kept = append(kept, e)
	}
	n.elems = kept
	return len(drop)
}

// ---- objects ----

// Keys returns a snapshot of the object keys in insertion order.
func (n *Node) Keys() []string {
	if n.Kind() != Object {
		return nil
	}
	return append([]string(nil), n.keys...)
}

// Has reports whether the object has key k.
func (n *Node) Has(k string) bool {
	if n.Kind() != Object {
		return false
	}
	_, ok := n.vals[k]
	return ok
}

// Get returns the value under key k.
func (n *Node) Get(k string) (*Node, bool) {
	if n.Kind() != Object {
		return nil, false
	}
	v, ok := n.vals[k]
	return v, ok
}

// Field returns the value under k, or nil (null) when absent.
func (n *Node) Field(k string) *Node {
	v, _ := n.Get(k)
	return v
}

// Set stores v under k. An existing key keeps its position. Set returns n so
// that literal documents can be built by chaining.
func (n *Node) Set(k string, v *Node) *Node {
	if n.Kind() != Object {
		return n
	}
	if n.vals == nil {
		n.vals = map[string]*Node{}
	}
	if _, ok := n.vals[k]; !ok {
		n.keys = append(n.keys, k)
	}
	n.vals[k] = orNull(v)
	return n
}

// Delete removes key k.
func (n *Node) Delete(k string) bool {
	if n.Kind() != Object {
		return false
	}
	if _, ok := n.vals[k]; !ok {
		return false
	}
	delete(n.vals, k)
	for i, key := range n.keys {
		if key == k {
			n.keys = append(n.keys[:i], n.keys[i+1:]...)
			break
		}
	}
	return true
}

// Replace overwrites n in place with the contents of v, so that every holder
// of n observes the new value.
func (n *Node) Replace(v *Node) {
	if n == nil {
		return
	}
	*n = *orNull(v)
}

func orNull(v *Node) *Node {
	if v == nil {
		return NewNull()
	}
	return v
}
