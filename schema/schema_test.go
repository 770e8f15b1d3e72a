package schema_test

import (
	"errors"
	"strings"
	"testing"

	j "github.com/goccy/go-json"

	"github.com/reoring/dimschema/node"
	"github.com/reoring/dimschema/schema"
)

func TestBuilder_OrderAndRequired(t *testing.T) {
	s, err := schema.New("LockboxAnswer").
		Field("code", "Code", schema.String).
		Field("item", "Reward Item", schema.String).
		Field("hint", "", schema.String).
		Require("code", "item").
		Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	var names []string
	for _, p := range s.Properties() {
		names = append(names, p.Name)
	}
	if strings.Join(names, ",") != "code,item,hint" {
		t.Fatalf("declared order lost: %v", names)
	}
	if got := strings.Join(s.Required(), ","); got != "code,item" {
		t.Fatalf("required: %s", got)
	}
	p, ok := s.Property("hint")
	if !ok || p.Required || p.Label() != "hint" {
		t.Fatalf("unexpected hint property: %+v", p)
	}
}

func TestBuilder_Errors(t *testing.T) {
	cases := map[string]*schema.Builder{
		"no name":        schema.New("").Field("a", "", schema.String),
		"duplicate":      schema.New("x").Field("a", "", schema.String).Field("a", "", schema.Number),
		"unknown req":    schema.New("x").Field("a", "", schema.String).Require("b"),
		"empty property": schema.New("x").Field("", "", schema.String),
	}
	for name, b := range cases {
		if _, err := b.Build(); err == nil {
			t.Fatalf("%s: expected build error", name)
		}
	}
}

func TestLink_SelfReferenceAndFreeze(t *testing.T) {
	action := schema.New("Action").
		Field("type", "Type", schema.String).
		Object("success", "Success Action", nil).
		Array("actions", "Action Sequence", nil).
		Require("type").
		MustBuild()

	if err := action.Link("success", action); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := action.Link("actions", action); err != nil {
		t.Fatalf("link: %v", err)
	}
	if err := action.Link("type", action); err == nil {
		t.Fatalf("scalar property must not accept a child")
	}
	if err := action.Link("missing", action); err == nil {
		t.Fatalf("unknown property must fail")
	}

	p, _ := action.Property("success")
	if p.Child != action {
		t.Fatalf("expected shared self reference, got %p want %p", p.Child, action)
	}

	action.Freeze()
	if err := action.Link("success", nil); !errors.Is(err, schema.ErrFrozen) {
		t.Fatalf("expected ErrFrozen, got %v", err)
	}
}

func TestWalk_VisitsCyclesOnce(t *testing.T) {
	cond := schema.New("Condition").Field("type", "", schema.String).MustBuild()
	action := schema.New("Action").
		Object("condition", "", cond).
		Object("success", "", nil).
		MustBuild()
	_ = action.Link("success", action)

	var seen []string
	schema.Walk(action, func(s *schema.Schema) { seen = append(seen, s.Name()) })
	if strings.Join(seen, ",") != "Action,Condition" {
		t.Fatalf("walk order: %v", seen)
	}
}

func TestTypeMatches(t *testing.T) {
	if !schema.String.Matches(node.String) || schema.String.Matches(node.Number) {
		t.Fatalf("string match")
	}
	if !schema.Object.Matches(node.Object) || schema.Array.Matches(node.Object) {
		t.Fatalf("composite match")
	}
	for _, name := range []string{"string", "number", "bool", "array", "object", "null"} {
		ty, err := schema.ParseType(name)
		if err != nil || ty.String() != name {
			t.Fatalf("round trip %s: %v %v", name, ty, err)
		}
	}
	if _, err := schema.ParseType("date"); err == nil {
		t.Fatalf("expected unknown type error")
	}
}

func TestJSONSchema_RecursiveUsesRefs(t *testing.T) {
	action := schema.New("Action").
		Field("type", "Type", schema.String).
		Field("value", "Set Value", schema.Bool).
		Object("success", "Success Action", nil).
		Array("steps", "Steps", nil).
		Require("type").
		MustBuild()
	_ = action.Link("success", action)
	_ = action.Link("steps", action)

	js := action.JSONSchema()
	if js.Ref != "#/$defs/Action" {
		t.Fatalf("root ref: %s", js.Ref)
	}
	def, ok := js.Definitions["Action"]
	if !ok || len(js.Definitions) != 1 {
		t.Fatalf("expected one definition, got %d", len(js.Definitions))
	}
	success, ok := def.Properties.Get("success")
	if !ok || success.Ref != "#/$defs/Action" {
		t.Fatalf("success should reference Action")
	}
	steps, _ := def.Properties.Get("steps")
	if steps.Type != "array" || steps.Items == nil || steps.Items.Ref != "#/$defs/Action" {
		t.Fatalf("steps should be an array of Action refs")
	}
	value, _ := def.Properties.Get("value")
	if value.Type != "boolean" {
		t.Fatalf("bool should export as boolean, got %s", value.Type)
	}

	out, err := j.Marshal(js)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"required":["type"]`) {
		t.Fatalf("required missing from export: %s", out)
	}
}

func TestCompileDefinitions(t *testing.T) {
	hotspot := schema.New("Hotspot").
		Field("grid_pos", "Position", schema.String).
		Require("grid_pos").
		MustBuild()
	lookup := func(name string) (*schema.Schema, bool) {
		if name == "Hotspot" {
			return hotspot, true
		}
		return nil, false
	}

	defs, err := schema.DecodeDefinitions([]byte(`
schemas:
  - name: Safe
    properties:
      - {name: code, description: Code, type: string, required: true}
      - {name: hotspot, type: object, ref: Hotspot, required: true}
      - {name: dials, type: array, ref: Dial}
  - name: Dial
    properties:
      - {name: digits, type: number}
`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	out, err := schema.Compile(defs, lookup)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if len(out) != 2 || out[0].Name() != "Safe" {
		t.Fatalf("unexpected compile output: %d", len(out))
	}
	hp, _ := out[0].Property("hotspot")
	if hp.Child != hotspot || !hp.Required {
		t.Fatalf("hotspot should link to the shared schema")
	}
	dp, _ := out[0].Property("dials")
	if dp.Child != out[1] {
		t.Fatalf("dials should link to the sibling definition")
	}

	bad, _ := schema.DecodeDefinitions([]byte(`
schemas:
  - name: Broken
    properties:
      - {name: x, type: object, ref: Nowhere}
`))
	if _, err := schema.Compile(bad, lookup); err == nil {
		t.Fatalf("expected unknown reference error")
	}
}
