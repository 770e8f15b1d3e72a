// Package rules holds checks that a schema cannot express: uniqueness of
// answer codes, grid positions that fit the room grid, transitions that lead
// to existing rooms. Rules run over plain node documents and report Issues
// with JSON Pointer paths, next to the schema conformance check.
package rules

import (
	dimschema "github.com/reoring/dimschema"
	"github.com/reoring/dimschema/node"
)

// Rule checks one document.
type Rule func(doc *node.Node) dimschema.Issues

// Check runs rs over doc and concatenates their Issues. Nil rules are
// skipped.
func Check(doc *node.Node, rs ...Rule) dimschema.Issues {
	var out dimschema.Issues
	for _, r := range rs {
		if r == nil {
			continue
		}
		out = append(out, r(doc)...)
	}
	return out
}

// Op defines simple comparison operators for If(...).Then(...)
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// Conditional composes conditional execution of rules.
type Conditional struct {
	path string
	op   Op
	want any
	all  []Conditional // composite AND
	any  []Conditional // composite OR
}

// If builds a conditional that compares the value at path (a JSON Pointer)
// with want. Strings and bools support Eq and Ne; numbers support every Op.
func If(path string, op Op, want any) Conditional {
	return Conditional{path: normalizePath(path), op: op, want: want}
}

// IfAll builds a conditional that requires all conditions to hold.
func IfAll(conds ...Conditional) Conditional { return Conditional{all: conds} }

// IfAny builds a conditional that requires any condition to hold.
func IfAny(conds ...Conditional) Conditional { return Conditional{any: conds} }

// And combines the receiver with additional conditions using logical AND.
func (c Conditional) And(others ...Conditional) Conditional {
	return IfAll(append([]Conditional{c}, others...)...)
}

// Or combines the receiver with additional conditions using logical OR.
func (c Conditional) Or(others ...Conditional) Conditional {
	return IfAny(append([]Conditional{c}, others...)...)
}

// Then attaches rules to run when the condition is satisfied.
func (c Conditional) Then(rs ...Rule) Rule {
	return func(doc *node.Node) dimschema.Issues {
		if !c.eval(doc) {
			return nil
		}
		return Check(doc, rs...)
	}
}

func (c Conditional) eval(doc *node.Node) bool {
	if len(c.all) > 0 {
		for _, it := range c.all {
			if !it.eval(doc) {
				return false
			}
		}
		return true
	}
	if len(c.any) > 0 {
		for _, it := range c.any {
			if it.eval(doc) {
				return true
			}
		}
		return false
	}
	cur, ok := doc.Lookup(c.path)
	if !ok {
		return false
	}
	return compare(cur, c.op, c.want)
}

// AtLeastOne ensures the array at path has at least one element. An absent
// array is left to the required-property check.
func AtLeastOne(path string) Rule {
	p := normalizePath(path)
	return func(doc *node.Node) dimschema.Issues {
		arr, ok := doc.Lookup(p)
		if !ok || !arr.IsArray() || arr.Len() > 0 {
			return nil
		}
		return dimschema.Issues{dimschema.At(p).Issue(dimschema.CodeTooShort, "must have at least one element", "min", 1)}
	}
}

// UniqueBy reports elements of the array at path whose key repeats an
// earlier element's. key is a property name or a relative pointer inside
// each element.
func UniqueBy(path, key string) Rule {
	p := normalizePath(path)
	kp := normalizePath(key)
	return func(doc *node.Node) dimschema.Issues {
		arr, ok := doc.Lookup(p)
		if !ok || !arr.IsArray() {
			return nil
		}
		seen := map[string]int{}
		var out dimschema.Issues
		for i, elem := range arr.Elements() {
			kv, ok := elem.Lookup(kp)
			if !ok {
				continue
			}
			// Marshal so that "1" and 1 stay distinct.
			k := kv.String()
			if first, dup := seen[k]; dup {
				at := dimschema.At(p).Index(i)
				for _, seg := range dimschema.SplitPointer(kp) {
					at = at.Field(seg)
				}
				out = append(out, at.Issue(dimschema.CodeUniqueness, "duplicate value", "first", first, "dup", i, "key", k))
				continue
			}
			seen[k] = i
		}
		return out
	}
}

// WithSeverity downgrades (or upgrades) every Issue r reports.
func WithSeverity(sev dimschema.Severity, r Rule) Rule {
	return func(doc *node.Node) dimschema.Issues {
		iss := r(doc)
		for i := range iss {
			iss[i].Severity = sev
		}
		return iss
	}
}

// Or succeeds if any rule returns no Issues. When all fail it returns the
// branch with the fewest Issues.
func Or(rs ...Rule) Rule {
	return func(doc *node.Node) dimschema.Issues {
		var best dimschema.Issues
		bestSet := false
		for _, r := range rs {
			if r == nil {
				continue
			}
			iss := r(doc)
			if len(iss) == 0 {
				return nil
			}
			if !bestSet || len(iss) < len(best) {
				best, bestSet = iss, true
			}
		}
		return best
	}
}

func normalizePath(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	if p[0] != '/' {
		return "/" + p
	}
	return p
}

func compare(cur *node.Node, op Op, want any) bool {
	if f, ok := cur.AsFloat(); ok {
		w, ok := toFloat(want)
		if !ok {
			return false
		}
		switch op {
		case Eq:
			return f == w
		case Ne:
			return f != w
		case Lt:
			return f < w
		case Le:
			return f <= w
		case Gt:
			return f > w
		case Ge:
			return f >= w
		}
		return false
	}
	var eq bool
	switch w := want.(type) {
	case string:
		s, ok := cur.AsString()
		eq = ok && s == w
	case bool:
		b, ok := cur.AsBool()
		eq = ok && b == w
	case nil:
		eq = cur.IsNull()
	default:
		return false
	}
	switch op {
	case Eq:
		return eq
	case Ne:
		return !eq
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
