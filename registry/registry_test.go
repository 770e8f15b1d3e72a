package registry_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/reoring/dimschema/registry"
	"github.com/reoring/dimschema/schema"
)

func mustInit(t *testing.T, opts ...registry.Option) *registry.Registry {
	t.Helper()
	r, err := registry.Initialize(opts...)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return r
}

func TestInitialize_BuiltinKinds(t *testing.T) {
	r := mustInit(t)
	want := []string{
		"CardCase", "Corpse", "Diary", "Drawer", "Famicom", "Kurotto",
		"LightsOutPuzzle", "Lockbox", "RotatingPuzzle", "Whiteboard", "room_connections",
	}
	if got := strings.Join(r.Kinds(), ","); got != strings.Join(want, ",") {
		t.Fatalf("kinds: %s", got)
	}
	if _, ok := r.Resolve("Teapot"); ok {
		t.Fatalf("unknown kind must not resolve")
	}
}

func TestInitialize_ActionIsRecursive(t *testing.T) {
	r := mustInit(t)
	action, ok := r.Shared(registry.SchemaAction)
	if !ok {
		t.Fatalf("Action not registered")
	}
	for _, name := range []string{"success", "failure", "final_action", "actions", "steps"} {
		p, ok := action.Property(name)
		if !ok || p.Child != action {
			t.Fatalf("%s should link back to Action", name)
		}
	}
	cond, _ := action.Property("condition")
	if cond.Child == nil || cond.Child.Name() != registry.SchemaCondition {
		t.Fatalf("condition child: %+v", cond)
	}
	if _, ok := action.Property("target"); !ok {
		t.Fatalf("Action must declare target for ChangeDimension")
	}
}

func TestInitialize_HotspotsWired(t *testing.T) {
	r := mustInit(t)
	hotspot, _ := r.Shared(registry.SchemaHotspot)
	action, _ := r.Shared(registry.SchemaAction)
	if p, _ := hotspot.Property("action"); p.Child != action {
		t.Fatalf("Hotspot.action should be Action")
	}
	for _, kind := range r.Kinds() {
		s, _ := r.Resolve(kind)
		p, ok := s.Property("hotspot")
		if !ok {
			continue
		}
		if p.Child != hotspot {
			t.Fatalf("%s.hotspot is not the shared Hotspot", kind)
		}
	}
	focusable, _ := r.Shared(registry.SchemaFocusable)
	if p, _ := focusable.Property("hotspot"); p.Child == nil || p.Child.Name() != registry.SchemaFocusHotspot {
		t.Fatalf("focusable hotspot carries only a grid position")
	}
}

func TestInitialize_RoomMap(t *testing.T) {
	r := mustInit(t)
	rc, _ := r.Resolve(registry.KindRoomConnections)
	p, ok := rc.Property("rooms")
	if !ok || !p.Required || p.Child == nil {
		t.Fatalf("rooms: %+v", p)
	}
	room, _ := r.Shared(registry.SchemaRoom)
	if p.Child.Values() != room {
		t.Fatalf("rooms values should be Room")
	}
	if got := strings.Join(room.Required(), ","); got != "background" {
		t.Fatalf("room required: %s", got)
	}
}

func TestInitialize_Frozen(t *testing.T) {
	r := mustInit(t)
	lockbox, _ := r.Resolve("Lockbox")
	if !lockbox.Frozen() {
		t.Fatalf("registry schemas must be frozen")
	}
	if err := lockbox.Link("answers", nil); !errors.Is(err, schema.ErrFrozen) {
		t.Fatalf("expected ErrFrozen, got %v", err)
	}
}

func TestWithDefinitions(t *testing.T) {
	defs, err := schema.DecodeDefinitions([]byte(`
schemas:
  - name: Safe
    properties:
      - {name: name, type: string, required: true}
      - {name: hotspot, type: object, ref: Hotspot, required: true}
      - {name: code, description: Code, type: string, required: true}
`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r := mustInit(t, registry.WithDefinitions(defs...))
	safe, ok := r.Resolve("Safe")
	if !ok || !safe.Frozen() {
		t.Fatalf("Safe should be registered and frozen")
	}
	hotspot, _ := r.Shared(registry.SchemaHotspot)
	if p, _ := safe.Property("hotspot"); p.Child != hotspot {
		t.Fatalf("Safe.hotspot should use the built-in Hotspot")
	}

	clash := []schema.Definition{{Name: "Lockbox"}}
	if _, err := registry.Initialize(registry.WithDefinitions(clash...)); err == nil {
		t.Fatalf("expected collision error")
	}
}

func TestWithDefinitions_HelpersAndHotspot(t *testing.T) {
	defs, err := schema.DecodeDefinitions([]byte(`
schemas:
  - name: Vault
    properties:
      - {name: name, type: string, required: true}
      - {name: hotspot, type: object, required: true}
      - {name: dial, type: object, ref: Dial}
  - name: Dial
    helper: true
    properties:
      - {name: digits, type: number, required: true}
`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	r := mustInit(t, registry.WithDefinitions(defs...))
	if _, ok := r.Resolve("Dial"); ok {
		t.Fatalf("a helper definition must not become a kind")
	}
	dial, ok := r.Shared("Dial")
	if !ok || !dial.Frozen() {
		t.Fatalf("helper should be a frozen shared schema")
	}
	vault, ok := r.Resolve("Vault")
	if !ok {
		t.Fatalf("Vault should be registered")
	}
	hotspot, _ := r.Shared(registry.SchemaHotspot)
	if p, _ := vault.Property("hotspot"); p.Child != hotspot {
		t.Fatalf("an unreferenced hotspot should be wired to Hotspot")
	}
	if p, _ := vault.Property("dial"); p.Child != dial {
		t.Fatalf("dial should use the helper schema")
	}

	clash := []schema.Definition{{Name: registry.SchemaAction, Helper: true}}
	if _, err := registry.Initialize(registry.WithDefinitions(clash...)); err == nil {
		t.Fatalf("expected collision with a shared schema")
	}
}

func TestKindFromPath(t *testing.T) {
	cases := map[string]string{
		"dims/d1/North/Lockbox.json":   "Lockbox",
		"room_connections.json":        "room_connections",
		"/abs/path/Diary":              "Diary",
		"North/Whiteboard.backup.json": "Whiteboard.backup",
	}
	for in, want := range cases {
		if got := registry.KindFromPath(in); got != want {
			t.Fatalf("%s: got %s want %s", in, got, want)
		}
	}
	r := mustInit(t)
	kind, s, ok := r.ResolvePath("x/Famicom.json")
	if kind != "Famicom" || !ok || s == nil {
		t.Fatalf("ResolvePath: %s %v", kind, ok)
	}
}
