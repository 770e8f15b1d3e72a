package i18n

import (
	"fmt"
	"strings"

	dimschema "github.com/reoring/dimschema"
)

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "label", "expected" or "got").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	var msg string
	switch t.lang {
	case "ja":
		switch code {
		case dimschema.CodeInvalidType:
			msg = "型が不正です"
		case dimschema.CodeRequired:
			msg = "必須プロパティがありません！"
		case dimschema.CodeUnknownKey:
			msg = "スキーマにないキーです"
		case dimschema.CodeDuplicateKey:
			msg = "キーが重複しています"
		case dimschema.CodeParseError:
			msg = "解析エラー"
		case dimschema.CodeTruncated:
			msg = "打ち切られました"
		case dimschema.CodeUnsupported:
			msg = "未対応の値です"
		case dimschema.CodeTooShort:
			msg = "要素が足りません"
		case dimschema.CodeInvalidFormat:
			msg = "形式が不正です"
		case dimschema.CodeDomainRange:
			msg = "範囲外です"
		case dimschema.CodeUniqueness:
			msg = "値が重複しています"
		case dimschema.CodeBusinessRule:
			msg = "参照先が見つかりません"
		case dimschema.CodeInvariant:
			msg = "不正なエントリをスキップしました"
		case dimschema.CodePersistence:
			msg = "ファイルの読み書きに失敗しました"
		}
	default: // "en"
		switch code {
		case dimschema.CodeInvalidType:
			msg = "invalid type"
		case dimschema.CodeRequired:
			msg = "required property is missing"
		case dimschema.CodeUnknownKey:
			msg = "key not declared by the schema"
		case dimschema.CodeDuplicateKey:
			msg = "duplicate key"
		case dimschema.CodeParseError:
			msg = "parse error"
		case dimschema.CodeTruncated:
			msg = "truncated"
		case dimschema.CodeUnsupported:
			msg = "unsupported value"
		case dimschema.CodeTooShort:
			msg = "too few elements"
		case dimschema.CodeInvalidFormat:
			msg = "invalid format"
		case dimschema.CodeDomainRange:
			msg = "out of range"
		case dimschema.CodeUniqueness:
			msg = "duplicate value"
		case dimschema.CodeBusinessRule:
			msg = "reference not found"
		case dimschema.CodeInvariant:
			msg = "invalid entry skipped"
		case dimschema.CodePersistence:
			msg = "load or save failed"
		}
	}
	if msg == "" {
		return code
	}
	if l := data["label"]; l != "" {
		msg = msg + ": " + l
	}
	if data["expected"] != "" && data["got"] != "" {
		msg = fmt.Sprintf("%s (%s <- %s)", msg, data["expected"], data["got"])
	}
	return msg
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if !strings.EqualFold(lang, "ja") {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: strings.ToLower(lang)}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }

// Describe renders an issue for display in the current language.
func Describe(it dimschema.Issue) string {
	data := map[string]string{"label": it.Label}
	for k, v := range it.Params {
		if _, set := data[k]; !set {
			data[k] = fmt.Sprint(v)
		}
	}
	return fmt.Sprintf("%s %s: %s", it.Severity, it.Path, T(it.Code, data))
}
