package node

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return NewNull()
	}
	out := &Node{kind: n.kind, b: n.b, s: n.s}
	switch n.kind {
	case Array:
		out.elems = make([]*Node, len(n.elems))
		for i, e := range n.elems {
			out.elems[i] = e.Clone()
		}
	case Object:
		out.keys = append([]string(nil), n.keys...)
		out.vals = make(map[string]*Node, len(n.vals))
		for k, v := range n.vals {
			out.vals[k] = v.Clone()
		}
	}
	return out
}

// Equal reports structural equality. Object key order is ignored and numbers
// compare by value, so 1 and 1.0 are equal.
func Equal(a, b *Node) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case Null:
		return true
	case Bool:
		return a.b == b.b
	case String:
		return a.s == b.s
	case Number:
		if a.s == b.s {
			return true
		}
		fa, okA := a.AsFloat()
		fb, okB := b.AsFloat()
		return okA && okB && fa == fb
	case Array:
		if len(a.elems) != len(b.elems) {
			return false
		}
		for i := range a.elems {
			if !Equal(a.elems[i], b.elems[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(a.keys) != len(b.keys) {
			return false
		}
		for k, av := range a.vals {
			bv, ok := b.vals[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}
