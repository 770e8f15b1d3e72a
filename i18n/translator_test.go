package i18n

import (
	"testing"

	dimschema "github.com/reoring/dimschema"
)

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T(dimschema.CodeInvalidType, nil); msg == dimschema.CodeInvalidType || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T(dimschema.CodeRequired, map[string]string{"label": "Reward Item"}); msg != "必須プロパティがありません！: Reward Item" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodePassesThrough(t *testing.T) {
	if msg := T("made_up", nil); msg != "made_up" {
		t.Fatalf("got %q", msg)
	}
}

func TestDescribe(t *testing.T) {
	it := dimschema.Issue{
		Path:   "/rooms/South/background",
		Code:   dimschema.CodeInvalidType,
		Label:  "Background Asset",
		Params: map[string]any{"expected": "string", "got": "number"},
	}
	want := "error /rooms/South/background: invalid type: Background Asset (string <- number)"
	if got := Describe(it); got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
