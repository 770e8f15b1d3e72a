package node

import (
	"fmt"
	"strconv"

	dimschema "github.com/reoring/dimschema"
)

// Lookup resolves a JSON Pointer against n.
func (n *Node) Lookup(pointer string) (*Node, bool) {
	cur := n
	for _, seg := range dimschema.SplitPointer(pointer) {
		switch cur.Kind() {
		case Object:
			next, ok := cur.Get(seg)
			if !ok {
				return nil, false
			}
			cur = next
		case Array:
			i, err := strconv.Atoi(seg)
			if err != nil {
				return nil, false
			}
			next, ok := cur.At(i)
			if !ok {
				return nil, false
			}
			cur = next
		default:
			return nil, false
		}
	}
	return cur, cur != nil
}

// Put stores v at pointer, creating intermediate objects on the way. The
// final segment "-" appends to an array.
func (n *Node) Put(pointer string, v *Node) error {
	segs := dimschema.SplitPointer(pointer)
	if len(segs) == 0 {
		n.Replace(v)
		return nil
	}
	cur := n
	for i, seg := range segs {
		last := i == len(segs)-1
		switch cur.Kind() {
		case Object:
			if last {
				cur.Set(seg, v)
				return nil
			}
			next, ok := cur.Get(seg)
			if !ok || next.IsNull() {
				next = NewObject()
				cur.Set(seg, next)
			}
			cur = next
		case Array:
			if last && seg == "-" {
				cur.Append(v)
				return nil
			}
			idx, err := strconv.Atoi(seg)
			if err != nil {
				return fmt.Errorf("node: bad array index %q in %s", seg, pointer)
			}
			if last {
				if !cur.SetAt(idx, v) {
					return fmt.Errorf("node: index %d out of range in %s", idx, pointer)
				}
				return nil
			}
			next, ok := cur.At(idx)
			if !ok {
				return fmt.Errorf("node: index %d out of range in %s", idx, pointer)
			}
			cur = next
		default:
			return fmt.Errorf("node: cannot descend into %s at %q in %s", cur.Kind(), seg, pointer)
		}
	}
	return nil
}
