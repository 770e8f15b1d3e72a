package node_test

import (
	"math"
	"strings"
	"testing"

	dimschema "github.com/reoring/dimschema"
	"github.com/reoring/dimschema/node"
)

func TestParse_KeepsObjectKeyOrder(t *testing.T) {
	n, err := node.Parse([]byte(`{"zeta":1,"alpha":"a","mid":[true,null]}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got := strings.Join(n.Keys(), ",")
	if got != "zeta,alpha,mid" {
		t.Fatalf("key order: got %s", got)
	}
	out, err := node.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"zeta":1,"alpha":"a","mid":[true,null]}` {
		t.Fatalf("unexpected encoding: %s", out)
	}
}

func TestParse_Kinds(t *testing.T) {
	cases := []struct {
		in   string
		kind node.Kind
	}{
		{`null`, node.Null},
		{`true`, node.Bool},
		{`12.5`, node.Number},
		{`"x"`, node.String},
		{`[]`, node.Array},
		{`{}`, node.Object},
	}
	for _, tc := range cases {
		n, err := node.Parse([]byte(tc.in))
		if err != nil {
			t.Fatalf("%s: %v", tc.in, err)
		}
		if n.Kind() != tc.kind {
			t.Fatalf("%s: kind %s, want %s", tc.in, n.Kind(), tc.kind)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	for _, in := range []string{``, `{`, `{"a":1}{"b":2}`} {
		if _, err := node.Parse([]byte(in)); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestParseStrict_DuplicateKeys(t *testing.T) {
	data := []byte(`{"a":1,"b":{"c":1,"c":2}}`)

	n, iss, err := node.ParseStrict(data, dimschema.Strictness{OnDuplicateKey: dimschema.Warn})
	if err != nil {
		t.Fatalf("warn mode should not fail: %v", err)
	}
	if len(iss) != 1 || iss[0].Code != dimschema.CodeDuplicateKey || iss[0].Path != "/b/c" {
		t.Fatalf("unexpected issues: %+v", iss)
	}
	if v, _ := n.Lookup("/b/c"); v.Literal() != "2" {
		t.Fatalf("last duplicate should win, got %s", v)
	}

	if _, _, err := node.ParseStrict(data, dimschema.Strictness{OnDuplicateKey: dimschema.Error}); err == nil {
		t.Fatalf("error mode should fail on duplicate key")
	} else if got, ok := dimschema.AsIssues(err); !ok || got[0].Code != dimschema.CodeDuplicateKey {
		t.Fatalf("expected duplicate_key issues, got %v", err)
	}
}

func TestObject_SetKeepsPositionAndDelete(t *testing.T) {
	o := node.NewObject().
		Set("a", node.NewInt(1)).
		Set("b", node.NewInt(2)).
		Set("c", node.NewInt(3))
	o.Set("a", node.NewString("x"))
	if got := strings.Join(o.Keys(), ","); got != "a,b,c" {
		t.Fatalf("overwrite moved key: %s", got)
	}
	if !o.Delete("b") || o.Delete("b") {
		t.Fatalf("delete should succeed exactly once")
	}
	if got := strings.Join(o.Keys(), ","); got != "a,c" {
		t.Fatalf("after delete: %s", got)
	}
}

func TestArray_RemoveIndicesKeepsOrder(t *testing.T) {
	a := node.NewArray(node.NewString("a"), node.NewString("b"), node.NewString("c"), node.NewString("d"))
	if n := a.RemoveIndices(3, 1, 1, 9); n != 2 {
		t.Fatalf("removed %d, want 2", n)
	}
	if a.String() != `["a","c"]` {
		t.Fatalf("unexpected array: %s", a)
	}
}

func TestEqual_IgnoresKeyOrderAndNumberSpelling(t *testing.T) {
	a, _ := node.Parse([]byte(`{"x":1,"y":[1.0,"s"]}`))
	b, _ := node.Parse([]byte(`{"y":[1,"s"],"x":1.0}`))
	if !node.Equal(a, b) {
		t.Fatalf("expected equal")
	}
	c, _ := node.Parse([]byte(`{"y":[1,"s"],"x":2}`))
	if node.Equal(a, c) {
		t.Fatalf("expected not equal")
	}
}

func TestClone_IsDeep(t *testing.T) {
	a, _ := node.Parse([]byte(`{"list":[{"k":"v"}]}`))
	b := a.Clone()
	inner, _ := b.Lookup("/list/0")
	inner.Set("k", node.NewString("changed"))
	if v, _ := a.Lookup("/list/0/k"); v.StringOr("") != "v" {
		t.Fatalf("clone shares state with original")
	}
}

func TestMarshalIndent(t *testing.T) {
	n := node.NewObject().
		Set("code", node.NewString("")).
		Set("list", node.NewArray(node.NewInt(1))).
		Set("empty", node.NewObject())
	out, err := node.MarshalIndent(n, "", "  ")
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := "{\n  \"code\": \"\",\n  \"list\": [\n    1\n  ],\n  \"empty\": {}\n}"
	if string(out) != want {
		t.Fatalf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestPutAndLookup(t *testing.T) {
	n := node.NewObject()
	if err := n.Put("/hotspot/grid_pos", node.NewString("A1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := n.Put("/list", node.NewArray()); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := n.Put("/list/-", node.NewBool(true)); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := n.Put("/list/4", node.NewBool(true)); err == nil {
		t.Fatalf("expected out of range error")
	}
	if n.String() != `{"hotspot":{"grid_pos":"A1"},"list":[true]}` {
		t.Fatalf("unexpected: %s", n)
	}
	if _, ok := n.Lookup("/hotspot/missing"); ok {
		t.Fatalf("lookup of missing key should fail")
	}
}

func TestNilNodeReadsAsNull(t *testing.T) {
	var n *node.Node
	if n.Kind() != node.Null || n.Len() != 0 || n.String() != "null" {
		t.Fatalf("nil node should behave as null")
	}
}

func TestNumberConstructors(t *testing.T) {
	for _, lit := range []string{"0", "-1", "1.25", "6.02E23", "1e-7"} {
		if _, err := node.NewNumberLiteral(lit); err != nil {
			t.Fatalf("%q: %v", lit, err)
		}
	}
	for _, lit := range []string{"", "-", "NaN", "Infinity", "+1", ".5", "5.", "1_0", "00", " 1"} {
		if _, err := node.NewNumberLiteral(lit); err == nil {
			t.Fatalf("%q should be rejected", lit)
		}
	}
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if n := node.NewNumber(f); !n.IsNull() {
			t.Fatalf("%v: got %s", f, n)
		}
	}
	if got := node.NewNumber(0.5).Literal(); got != "0.5" {
		t.Fatalf("literal %q", got)
	}
}
