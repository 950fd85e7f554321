package voicebank

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type languageEntry struct {
	code     string // lower-case language identifier used in documents
	phoneset string // phoneset every document in this language must declare
}

var languages = []languageEntry{
	{"japanese", "romaji"},
	{"english", "arpabet"},
	{"mandarin", "pinyin"},
	{"cantonese", "jyutping"},
	{"spanish", "xsampa"},
}

// Model id allow-lists, one per model field.
var (
	baseModels = []string{
		"3f9a1c0e7b2d4e6f8a0b1c2d3e4f5a6b",
		"8c1e5b7a9d3f4c2e0a6b8d1f3e5c7a9b",
	}
	singModels = []string{
		"a41f0c9e2b7d4a8e9c3b5d7f1e2a4c6d",
		"d2b8e6a0c4f1497e8b3a5c7d9e1f2b40",
	}
	timingModels = []string{
		"5e7c9a1b3d2f4e6a8c0b2d4f6e8a0c1e",
		"b09d7f5e3c1a4b2d9e8f7a6c5b4d3e2f",
	}
	f0Models = []string{
		"c6a4e2f0d8b64a1c9e7f5d3b1a0c2e4f",
		"1d3f5b7a9c0e4d2f6a8b0c1e3d5f7a9b",
	}
)

var (
	byLanguage map[string]*languageEntry
	modelSets  map[string]map[string]struct{}
	titleCaser = cases.Title(language.English)
)

func init() {
	byLanguage = make(map[string]*languageEntry, len(languages))
	for i := range languages {
		byLanguage[languages[i].code] = &languages[i]
	}
	modelSets = map[string]map[string]struct{}{
		FieldBaseModel:   toSet(baseModels),
		FieldSingModel:   toSet(singModels),
		FieldTimingModel: toSet(timingModels),
		FieldF0Model:     toSet(f0Models),
	}
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func lookupLanguage(code string) *languageEntry {
	return byLanguage[strings.ToLower(code)]
}

// Languages returns the supported language codes in catalog order.
func Languages() []string {
	out := make([]string, 0, len(languages))
	for _, e := range languages {
		out = append(out, e.code)
	}
	return out
}

// IsSupportedLanguage reports whether code names a supported language,
// ignoring case.
func IsSupportedLanguage(code string) bool {
	return lookupLanguage(code) != nil
}

// PhonesetFor returns the phoneset mandated for a language, ignoring case.
func PhonesetFor(code string) (string, bool) {
	e := lookupLanguage(code)
	if e == nil {
		return "", false
	}
	return e.phoneset, true
}

// Phonesets returns every mandated phoneset in catalog order.
func Phonesets() []string {
	out := make([]string, 0, len(languages))
	for _, e := range languages {
		out = append(out, e.phoneset)
	}
	return out
}

// LanguageDisplayName returns a human-readable language name, or "" for
// unsupported codes.
func LanguageDisplayName(code string) string {
	e := lookupLanguage(code)
	if e == nil {
		return ""
	}
	return titleCaser.String(e.code)
}

// ModelIDs returns the sorted allow-list for a model field, or nil when
// field is not a model field.
func ModelIDs(field string) []string {
	set, ok := modelSets[field]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// IsKnownModel reports whether id is allowed for the model field.
func IsKnownModel(field, id string) bool {
	_, ok := modelSets[field][id]
	return ok
}
