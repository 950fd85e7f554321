package voicebank

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Columbina-Dev/vector-calculator/internal/jsondoc"
	"github.com/Columbina-Dev/vector-calculator/internal/vector"
)

// Top-level document fields.
const (
	FieldName             = "name"
	FieldVersion          = "version"
	FieldVendor           = "vendor"
	FieldLanguage         = "language"
	FieldPhoneset         = "phoneset"
	FieldSupportLanguages = "support_languages"
	FieldBaseModel        = "base_model"
	FieldSingModel        = "sing_model"
	FieldTimingModel      = "timing_model"
	FieldF0Model          = "f0_model"
	FieldStyles           = "styles"
	FieldPitch            = "pitch"
	FieldTiming           = "timing"
)

// Style entry fields.
const (
	StyleName  = "name"
	StyleData  = "data"
	StyleExtra = "extra"
)

// Messages for the checks callers most often match on.
const (
	MsgRootNotObject   = "document root must be a JSON object"
	MsgPitchRequired   = "pitch is required"
	MsgTimingRequired  = "timing is required"
	MsgVersionFormat   = `version must match <int>[a|b<int>] (for example "2", "2a1", "3b12")`
	MsgStyleDataLength = "style data must be exactly 256 hex characters"
	MsgPitchLength     = "pitch must be exactly 256 hex characters"
	MsgTimingLength    = "timing must be exactly 1024 hex characters"
)

var knownFields = map[string]struct{}{
	FieldName: {}, FieldVersion: {}, FieldVendor: {}, FieldLanguage: {},
	FieldPhoneset: {}, FieldSupportLanguages: {}, FieldBaseModel: {},
	FieldSingModel: {}, FieldTimingModel: {}, FieldF0Model: {},
	FieldStyles: {}, FieldPitch: {}, FieldTiming: {},
}

var knownStyleFields = map[string]struct{}{
	StyleName: {}, StyleData: {}, StyleExtra: {},
}

var modelFields = []string{FieldBaseModel, FieldSingModel, FieldTimingModel, FieldF0Model}

var versionPattern = regexp.MustCompile(`^(\d+)(?:([ab])(\d+))?$`)

// Validate checks doc against every structural and semantic rule and
// returns all findings. A nil or non-object root yields exactly one error.
func Validate(doc *jsondoc.Value) Result {
	c := &collector{}
	root := jsondoc.Root()
	if !doc.IsObject() {
		c.errorf(root, MsgRootNotObject)
		return c.result
	}

	for _, key := range doc.Keys() {
		if _, ok := knownFields[key]; !ok {
			c.warnf(root.Field(key), "unknown field %q", key)
		}
	}

	requireString(c, doc, FieldName)
	requireString(c, doc, FieldVendor)
	phoneset, hasPhoneset := requireString(c, doc, FieldPhoneset)

	validateVersion(c, doc)
	lang := validateLanguage(c, doc)
	validateSupportLanguages(c, doc)
	if lang != nil && hasPhoneset && !strings.EqualFold(phoneset, lang.phoneset) {
		c.errorf(root.Field(FieldPhoneset),
			"phoneset %q does not match language %q (expected %q)", phoneset, lang.code, lang.phoneset)
	}
	for _, field := range modelFields {
		validateModel(c, doc, field)
	}
	validateStyles(c, doc)
	validateHexField(c, doc, FieldPitch, vector.HexLen, MsgPitchRequired, MsgPitchLength)
	validateHexField(c, doc, FieldTiming, vector.TimingHexLen, MsgTimingRequired, MsgTimingLength)
	return c.result
}

func requireString(c *collector, obj *jsondoc.Value, field string) (string, bool) {
	return requireStringAt(c, obj, field, jsondoc.Root().Field(field))
}

func requireStringAt(c *collector, obj *jsondoc.Value, field string, path jsondoc.Path) (string, bool) {
	v, ok := obj.Get(field)
	if !ok {
		c.errorf(path, "%s is required", field)
		return "", false
	}
	s, ok := v.AsString()
	if !ok {
		c.errorf(path, "%s must be a string, got %s", field, v.Kind())
		return "", false
	}
	return s, true
}

func validateVersion(c *collector, doc *jsondoc.Value) {
	version, ok := requireString(c, doc, FieldVersion)
	if !ok {
		return
	}
	if !versionPattern.MatchString(version) {
		c.errorf(jsondoc.Root().Field(FieldVersion), "%s, got %q", MsgVersionFormat, version)
	}
}

func validateLanguage(c *collector, doc *jsondoc.Value) *languageEntry {
	code, ok := requireString(c, doc, FieldLanguage)
	if !ok {
		return nil
	}
	lang := lookupLanguage(code)
	if lang == nil {
		c.errorf(jsondoc.Root().Field(FieldLanguage),
			"language %q is not supported (allowed: %s)", code, strings.Join(Languages(), ", "))
	}
	return lang
}

func validateSupportLanguages(c *collector, doc *jsondoc.Value) {
	path := jsondoc.Root().Field(FieldSupportLanguages)
	v, ok := doc.Get(FieldSupportLanguages)
	if !ok {
		c.errorf(path, "%s is required", FieldSupportLanguages)
		return
	}
	if !v.IsArray() {
		c.errorf(path, "%s must be an array, got %s", FieldSupportLanguages, v.Kind())
		return
	}
	for i, item := range v.Items() {
		code, ok := item.AsString()
		if !ok {
			c.errorf(path.At(i), "support language must be a string, got %s", item.Kind())
			continue
		}
		if !IsSupportedLanguage(code) {
			c.errorf(path.At(i), "support language %q is not supported (allowed: %s)",
				code, strings.Join(Languages(), ", "))
		}
	}
}

func validateModel(c *collector, doc *jsondoc.Value, field string) {
	id, ok := requireString(c, doc, field)
	if !ok {
		return
	}
	if !IsKnownModel(field, id) {
		c.errorf(jsondoc.Root().Field(field), "%s %q is not a known model id", field, id)
	}
}

func validateStyles(c *collector, doc *jsondoc.Value) {
	path := jsondoc.Root().Field(FieldStyles)
	v, ok := doc.Get(FieldStyles)
	if !ok {
		c.errorf(path, "%s is required", FieldStyles)
		return
	}
	if !v.IsArray() {
		c.errorf(path, "%s must be an array, got %s", FieldStyles, v.Kind())
		return
	}

	seen := make(map[string]int)
	for i, style := range v.Items() {
		stylePath := path.At(i)
		if !style.IsObject() {
			c.errorf(stylePath, "style must be an object, got %s", style.Kind())
			continue
		}
		for _, key := range style.Keys() {
			if _, ok := knownStyleFields[key]; !ok {
				c.warnf(stylePath.Field(key), "unknown style field %q", key)
			}
		}

		namePath := stylePath.Field(StyleName)
		if name, ok := requireStringAt(c, style, StyleName, namePath); ok {
			if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
				c.errorf(namePath, "style name %q must not contain whitespace", name)
			}
			if first, dup := seen[name]; dup {
				c.errorf(namePath, "Duplicate style name %q (first defined at %s)", name, path.At(first))
			} else {
				seen[name] = i
			}
		}

		dataPath := stylePath.Field(StyleData)
		if data, ok := requireStringAt(c, style, StyleData, dataPath); ok && !vector.IsHex(data, vector.HexLen) {
			c.errorf(dataPath, "%s, got %d characters", MsgStyleDataLength, len(data))
		}
	}
}

func validateHexField(c *collector, doc *jsondoc.Value, field string, length int, required, wrongShape string) {
	path := jsondoc.Root().Field(field)
	v, ok := doc.Get(field)
	if !ok || v.IsNull() {
		c.errorf(path, "%s", required)
		return
	}
	s, ok := v.AsString()
	if !ok {
		c.errorf(path, "%s, got %s", wrongShape, v.Kind())
		return
	}
	if !vector.IsHex(s, length) {
		c.errorf(path, "%s, got %d characters", wrongShape, len(s))
	}
}
