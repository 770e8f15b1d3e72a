package rules_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	dimschema "github.com/reoring/dimschema"
	"github.com/reoring/dimschema/node"
	"github.com/reoring/dimschema/registry"
	"github.com/reoring/dimschema/rules"
)

func mustParse(t *testing.T, s string) *node.Node {
	t.Helper()
	n, err := node.Parse([]byte(s))
	require.NoError(t, err)
	return n
}

func TestUniqueBy_ReportsLaterDuplicates(t *testing.T) {
	doc := mustParse(t, `{"answers":[{"code":"1234","item":"a"},{"code":"9","item":"b"},{"code":"1234","item":"c"},{"code":1234}]}`)
	iss := rules.Check(doc, rules.UniqueBy("/answers", "code"))
	require.Equal(t, []string{"/answers/2/code"}, iss.Paths())
	require.Equal(t, dimschema.CodeUniqueness, iss[0].Code)
	require.Equal(t, 0, iss[0].Params["first"])
}

func TestAtLeastOne(t *testing.T) {
	r := rules.AtLeastOne("pages")
	require.Empty(t, r(mustParse(t, `{"pages":["p1"]}`)))
	require.Empty(t, r(mustParse(t, `{}`)))
	iss := r(mustParse(t, `{"pages":[]}`))
	require.Equal(t, []string{"/pages"}, iss.Paths())
	require.Equal(t, dimschema.CodeTooShort, iss[0].Code)

	warn := rules.WithSeverity(dimschema.Warn, r)(mustParse(t, `{"pages":[]}`))
	require.Equal(t, dimschema.Warn, warn[0].Severity)
}

func TestConditional(t *testing.T) {
	fail := func(*node.Node) dimschema.Issues { return dimschema.Issues{{Path: "/x"}} }
	doc := mustParse(t, `{"type":"MultiStep","width":3,"on":true}`)

	cases := []struct {
		name string
		cond rules.Conditional
		want bool
	}{
		{"string eq", rules.If("/type", rules.Eq, "MultiStep"), true},
		{"string ne", rules.If("type", rules.Ne, "ShowText"), true},
		{"number gt", rules.If("/width", rules.Gt, 2), true},
		{"number le", rules.If("/width", rules.Le, 2.5), false},
		{"bool", rules.If("/on", rules.Eq, true), true},
		{"absent", rules.If("/missing", rules.Ne, "x"), false},
		{"type mismatch", rules.If("/width", rules.Eq, "3"), false},
		{"and", rules.If("/on", rules.Eq, true).And(rules.If("/width", rules.Lt, 3)), false},
		{"or", rules.If("/on", rules.Eq, false).Or(rules.If("/width", rules.Ge, 3)), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := len(c.cond.Then(fail)(doc)) > 0
			require.Equal(t, c.want, got)
		})
	}
}

func TestOr_PicksSmallestFailure(t *testing.T) {
	two := func(*node.Node) dimschema.Issues { return dimschema.Issues{{Path: "/a"}, {Path: "/b"}} }
	one := func(*node.Node) dimschema.Issues { return dimschema.Issues{{Path: "/c"}} }
	ok := func(*node.Node) dimschema.Issues { return nil }
	doc := node.NewObject()
	require.Equal(t, []string{"/c"}, rules.Or(two, one)(doc).Paths())
	require.Empty(t, rules.Or(two, ok)(doc))
}

func TestGridPositions(t *testing.T) {
	doc := mustParse(t, `{
		"hotspot":{"grid_pos":"B2-C3","action":{"type":"ShowText"}},
		"default_state":{"asset":"a","grid_pos":""},
		"states":[{"condition_flag":"f","asset":"b","grid_pos":"Q1"},{"condition_flag":"g","asset":"c","grid_pos":"bad"}]
	}`)
	iss := rules.Check(doc, rules.GridPositions(rules.Grid{Cols: 4, Rows: 4}))
	require.Equal(t, []string{"/states/0/grid_pos", "/states/1/grid_pos"}, iss.Paths())
	require.Equal(t, dimschema.CodeDomainRange, iss[0].Code)
	require.Equal(t, dimschema.Warn, iss[0].Severity)
	require.Equal(t, dimschema.CodeInvalidFormat, iss[1].Code)
	require.Equal(t, dimschema.Error, iss[1].Severity)

	// The default grid has 12 rows, so Q is out too.
	iss = rules.GridPositions(rules.Grid{})(doc)
	require.Len(t, iss, 2)
}

func TestRoomLinks(t *testing.T) {
	doc := mustParse(t, `{"rooms":{
		"North":{"background":"n","transitions":{"Left":"West","Right":"Attic"}},
		"West":{"background":"w","transitions":{"Forward":{"to":"North","condition":"key","scope":"Dimension","grid_pos":"A1"}}},
		"South":{"background":"s","transitions":{"Sideways":"North"}}
	}}`)
	iss := rules.RoomLinks()(doc)
	require.Equal(t, []string{"/rooms/North/transitions/Right", "/rooms/South/transitions"}, iss.Paths())
	require.Equal(t, dimschema.Warn, iss[0].Severity)
	require.Equal(t, dimschema.CodeInvalidFormat, iss[1].Code)
}

func TestForKind(t *testing.T) {
	lockbox := mustParse(t, `{"name":"box","hotspot":{"grid_pos":"A1","action":{"type":"MultiStep","id":"x","steps":[]}},
		"default_state":{"asset":"a"},"answers":[{"code":"1","item":"k"},{"code":"1","item":"j"}]}`)
	iss := rules.Check(lockbox, rules.ForKind("Lockbox", rules.DefaultGrid)...)
	require.ElementsMatch(t, []string{"/answers/1/code", "/hotspot/action/steps"}, iss.Paths())

	puzzle := mustParse(t, `{"puzzle_width":0}`)
	iss = rules.Check(puzzle, rules.ForKind("RotatingPuzzle", rules.DefaultGrid)...)
	require.Equal(t, []string{"/puzzle_width"}, iss.Paths())

	conn := mustParse(t, `{"rooms":{"North":{"transitions":{"Up":"Nowhere"}}}}`)
	iss = rules.Check(conn, rules.ForKind(registry.KindRoomConnections, rules.DefaultGrid)...)
	require.Equal(t, []string{"/rooms/North/transitions/Up"}, iss.Paths())
}
