package voicebank

import (
	"strings"

	"github.com/Columbina-Dev/vector-calculator/internal/jsondoc"
)

// Normalize returns a canonical copy of doc: language and support_languages
// trimmed and lower-cased, phoneset set to the one mandated by a known language, and
// styles[].data, pitch and timing upper-cased. Values of unexpected types are
// left untouched, and doc itself is never modified. It does not validate.
func Normalize(doc *jsondoc.Value) *jsondoc.Value {
	out := doc.Clone()
	if !out.IsObject() {
		return out
	}

	if code, ok := stringField(out, FieldLanguage); ok {
		code = canonicalLanguage(code)
		out.Set(FieldLanguage, jsondoc.String(code))
		if phoneset, known := PhonesetFor(code); known {
			out.Set(FieldPhoneset, jsondoc.String(phoneset))
		}
	}

	if langs, ok := out.Get(FieldSupportLanguages); ok && langs.IsArray() {
		lowered := jsondoc.Array()
		for _, item := range langs.Items() {
			if s, ok := item.AsString(); ok {
				item = jsondoc.String(canonicalLanguage(s))
			}
			lowered.Append(item)
		}
		out.Set(FieldSupportLanguages, lowered)
	}

	if styles, ok := out.Get(FieldStyles); ok {
		for _, style := range styles.Items() {
			upperField(style, StyleData)
		}
	}
	upperField(out, FieldPitch)
	upperField(out, FieldTiming)
	return out
}

func canonicalLanguage(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

func stringField(obj *jsondoc.Value, key string) (string, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return "", false
	}
	return v.AsString()
}

func upperField(obj *jsondoc.Value, key string) {
	if s, ok := stringField(obj, key); ok {
		obj.Set(key, jsondoc.String(strings.ToUpper(s)))
	}
}
