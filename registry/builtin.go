package registry

import "github.com/reoring/dimschema/schema"

// Shared sub-schema names.
const (
	SchemaCondition             = "Condition"
	SchemaAction                = "Action"
	SchemaObjectState           = "ObjectState"
	SchemaConditionalState      = "ConditionalState"
	SchemaHotspot               = "Hotspot"
	SchemaFocusHotspot          = "FocusHotspot"
	SchemaMissingPiece          = "MissingPiece"
	SchemaCardCaseAnswer        = "CardCaseAnswer"
	SchemaLockboxAnswer         = "LockboxAnswer"
	SchemaInteractable          = "Interactable"
	SchemaFocusable             = "Focusable"
	SchemaLayout                = "Layout"
	SchemaConditionalTransition = "ConditionalTransition"
	SchemaRoom                  = "Room"
)

// KindRoomConnections is the kind of the dimension root document.
const KindRoomConnections = "room_connections"

// shared holds the sub-schemas referenced by kinds. Fields are filled by
// buildShared (phase one) and cross-linked by link (phase two).
type shared struct {
	condition        *schema.Schema
	action           *schema.Schema
	objectState      *schema.Schema
	conditionalState *schema.Schema
	hotspot          *schema.Schema
	focusHotspot     *schema.Schema
	missingPiece     *schema.Schema
	cardCaseAnswer   *schema.Schema
	lockboxAnswer    *schema.Schema
	interactable     *schema.Schema
	focusable        *schema.Schema
	layout           *schema.Schema
	transition       *schema.Schema
	room             *schema.Schema
}

func buildShared() *shared {
	sh := &shared{}

	sh.condition = schema.New(SchemaCondition).
		Field("type", "Type", schema.String).
		Field("item", "Item ID", schema.String).                   // HasItem
		Field("flag", "Flag Name", schema.String).                 // IsFlagOn
		Field("scope", "Scope (Global/Dimension)", schema.String). // IsFlagOn
		Require("type").
		MustBuild()

	// Recursive properties are declared without child here and linked to
	// Action itself in the second phase.
	sh.action = schema.New(SchemaAction).
		Field("type", "Type", schema.String).
		Field("file", "Text File Path", schema.String).
		Field("item", "Item ID", schema.String).
		Field("flag", "Flag Name", schema.String).
		Field("value", "Set Value", schema.Bool).
		Field("scope", "Scope", schema.String).
		Field("id", "MultiStep ID", schema.String).
		Object("condition", "Condition", sh.condition).
		Object("success", "Success Action", nil).
		Object("failure", "Failure Action", nil).
		Object("final_action", "Final Action", nil).
		Array("actions", "Action Sequence", nil).
		Array("steps", "Multi-Step Actions", nil).
		Field("target", "Target Dimension ID", schema.String).
		Require("type").
		MustBuild()

	sh.objectState = schema.New(SchemaObjectState).
		Field("asset", "Asset Name", schema.String).
		Field("grid_pos", "Grid Position", schema.String).
		Require("asset").
		MustBuild()

	sh.conditionalState = schema.New(SchemaConditionalState).
		Field("condition_flag", "Condition Flag", schema.String).
		Field("asset", "Asset Name", schema.String).
		Field("grid_pos", "Grid Position", schema.String).
		Require("condition_flag", "asset").
		MustBuild()

	sh.hotspot = schema.New(SchemaHotspot).
		Field("grid_pos", "Position (e.g., A1-B2)", schema.String).
		Object("action", "Action", nil).
		Require("grid_pos", "action").
		MustBuild()

	sh.focusHotspot = schema.New(SchemaFocusHotspot).
		Field("grid_pos", "Position (e.g., A1-B2)", schema.String).
		Require("grid_pos").
		MustBuild()

	sh.missingPiece = schema.New(SchemaMissingPiece).
		Field("position", "Position [x, y]", schema.Array).
		Field("item", "Required Item ID", schema.String).
		Require("position", "item").
		MustBuild()

	sh.cardCaseAnswer = schema.New(SchemaCardCaseAnswer).
		Field("code", "Code (Array of numbers)", schema.Array).
		Field("flag", "Flag to set on success", schema.String).
		Require("code", "flag").
		MustBuild()

	sh.lockboxAnswer = schema.New(SchemaLockboxAnswer).
		Field("code", "Code", schema.String).
		Field("item", "Reward Item", schema.String).
		Require("code", "item").
		MustBuild()

	sh.interactable = schema.New(SchemaInteractable).
		Field("name", "Object Name (Unique)", schema.String).
		Object("default_state", "Default State", sh.objectState).
		Array("states", "Conditional States", sh.conditionalState).
		Object("hotspot", "Hotspot", nil).
		Require("name", "default_state", "hotspot").
		MustBuild()

	sh.focusable = schema.New(SchemaFocusable).
		Field("name", "Object Name (Unique)", schema.String).
		Object("default_state", "Default State", sh.objectState).
		Array("states", "Conditional States", sh.conditionalState).
		Object("hotspot", "Hotspot", sh.focusHotspot).
		Require("name", "default_state", "hotspot").
		MustBuild()

	// Layout maps authored object names to grid positions ({"Window": "D3-E3"}),
	// so both maps stay opaque.
	sh.layout = schema.New(SchemaLayout).
		Object("forcusable", "Focusable Objects", nil).
		Object("interactable", "Interactable Objects", nil).
		Require("forcusable", "interactable").
		MustBuild()

	sh.transition = schema.New(SchemaConditionalTransition).
		Field("to", "Destination Room", schema.String).
		Field("condition", "Required Flag", schema.String).
		Field("scope", "Flag Scope", schema.String).
		Field("grid_pos", "Grid Position", schema.String).
		Require("to", "condition", "scope").
		MustBuild()

	sh.room = schema.New(SchemaRoom).
		Field("background", "Background Asset", schema.String).
		Object("transitions", "Room Transitions", nil).
		Array("interactables", "Interactable Objects", nil).
		Array("forcusables", "Focusable Objects", nil).
		Object("layout", "Layout", sh.layout).
		Require("background").
		MustBuild()

	return sh
}

// objectKind starts a placeable object kind with the properties every kind
// shares. The hotspot child is wired in the second phase.
func objectKind(name string, sh *shared) *schema.Builder {
	return schema.New(name).
		Field("name", "Object Name", schema.String).
		Object("hotspot", "Hotspot", nil).
		Object("default_state", "Default State", sh.objectState).
		Array("states", "Conditional States", sh.conditionalState).
		Require("name", "hotspot", "default_state")
}

func buildKinds(sh *shared) map[string]*schema.Schema {
	roomConnections := schema.New(KindRoomConnections).
		Object("rooms", "Rooms", nil).
		Require("rooms").
		MustBuild()

	kinds := map[string]*schema.Schema{
		KindRoomConnections: roomConnections,

		"Whiteboard": objectKind("Whiteboard", sh).MustBuild(),
		"Corpse":     objectKind("Corpse", sh).MustBuild(),

		"Lockbox": objectKind("Lockbox", sh).
			Array("answers", "Answer List", sh.lockboxAnswer).
			Require("answers").
			MustBuild(),

		"Diary": objectKind("Diary", sh).
			Field("pages", "Diary Pages (Array of Strings)", schema.Array).
			Require("pages").
			MustBuild(),

		"Famicom": objectKind("Famicom", sh).
			Field("secret_code", "Secret Code", schema.String).
			Field("success_image", "Success Image Path", schema.String).
			Require("secret_code", "success_image").
			MustBuild(),

		"LightsOutPuzzle": objectKind("LightsOutPuzzle", sh).
			Field("initial_grid", "Initial Grid (2D Array of 0s/1s)", schema.Array).
			Require("initial_grid").
			MustBuild(),

		"Kurotto": objectKind("Kurotto", sh).
			Field("initial_grid", "Initial Grid (2D Array)", schema.Array).
			Require("initial_grid").
			MustBuild(),

		"RotatingPuzzle": objectKind("RotatingPuzzle", sh).
			Field("background_texture", "Background Texture", schema.String).
			Field("puzzle_texture", "Puzzle Texture ID", schema.String).
			Field("puzzle_width", "Puzzle Width (e.g., 3)", schema.Number).
			Array("missing_pieces", "Missing Pieces Info", sh.missingPiece).
			Require("puzzle_texture", "puzzle_width", "missing_pieces").
			MustBuild(),

		"CardCase": objectKind("CardCase", sh).
			Field("texture", "Card Textures (Array of strings)", schema.Array).
			Array("answers", "Answer Patterns", sh.cardCaseAnswer).
			Require("texture", "answers").
			MustBuild(),

		"Drawer": objectKind("Drawer", sh).
			Field("bg_open", "Background (Open)", schema.String).
			Field("bg_close", "Background (Close)", schema.String).
			Field("item_open", "Item (Open)", schema.String).
			Field("item_close", "Item (Close)", schema.String).
			MustBuild(),
	}
	return kinds
}

// link is the second initialization phase: it wires every self-referential
// and cross-schema reference that could not be expressed while the schemas
// were being declared.
func link(sh *shared, kinds map[string]*schema.Schema) error {
	for _, prop := range []string{"success", "failure", "final_action", "actions", "steps"} {
		if err := sh.action.Link(prop, sh.action); err != nil {
			return err
		}
	}
	if err := sh.hotspot.Link("action", sh.action); err != nil {
		return err
	}
	if err := sh.interactable.Link("hotspot", sh.hotspot); err != nil {
		return err
	}
	if err := sh.room.Link("interactables", sh.interactable); err != nil {
		return err
	}
	if err := sh.room.Link("forcusables", sh.focusable); err != nil {
		return err
	}
	if err := kinds[KindRoomConnections].Link("rooms", roomMap(sh)); err != nil {
		return err
	}
	for _, s := range kinds {
		if err := wireHotspot(s, sh.hotspot); err != nil {
			return err
		}
	}
	return nil
}

// wireHotspot points an unlinked "hotspot" object property of s at the
// shared Hotspot schema. An explicit child is left alone.
func wireHotspot(s, hotspot *schema.Schema) error {
	p, ok := s.Property("hotspot")
	if !ok || p.Type != schema.Object || p.Child != nil {
		return nil
	}
	return s.Link("hotspot", hotspot)
}

// roomMap describes the "rooms" object of room_connections: keys are room
// names, every value is a Room.
func roomMap(sh *shared) *schema.Schema {
	return schema.New("Rooms").Values(sh.room).MustBuild()
}

func (sh *shared) byName() map[string]*schema.Schema {
	return map[string]*schema.Schema{
		SchemaCondition:             sh.condition,
		SchemaAction:                sh.action,
		SchemaObjectState:           sh.objectState,
		SchemaConditionalState:      sh.conditionalState,
		SchemaHotspot:               sh.hotspot,
		SchemaFocusHotspot:          sh.focusHotspot,
		SchemaMissingPiece:          sh.missingPiece,
		SchemaCardCaseAnswer:        sh.cardCaseAnswer,
		SchemaLockboxAnswer:         sh.lockboxAnswer,
		SchemaInteractable:          sh.interactable,
		SchemaFocusable:             sh.focusable,
		SchemaLayout:                sh.layout,
		SchemaConditionalTransition: sh.transition,
		SchemaRoom:                  sh.room,
	}
}
