package voicebank

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/Columbina-Dev/vector-calculator/internal/faults"
	"github.com/Columbina-Dev/vector-calculator/internal/jsondoc"
	"github.com/Columbina-Dev/vector-calculator/internal/vector"
)

// Config is the typed form of a modern voice bank document.
type Config struct {
	Name             string   `json:"name" jsonschema:"display name of the voice bank"`
	Version          string   `json:"version" jsonschema:"release version, <int>[a|b<int>]"`
	Vendor           string   `json:"vendor" jsonschema:"publisher of the voice bank"`
	Language         string   `json:"language" jsonschema:"primary language"`
	Phoneset         string   `json:"phoneset" jsonschema:"phoneset mandated by the primary language"`
	SupportLanguages []string `json:"support_languages" jsonschema:"additional languages the bank can sing"`
	BaseModel        string   `json:"base_model" jsonschema:"base acoustic model id"`
	SingModel        string   `json:"sing_model" jsonschema:"singing model id"`
	TimingModel      string   `json:"timing_model" jsonschema:"timing model id"`
	F0Model          string   `json:"f0_model" jsonschema:"f0 model id"`
	Styles           []Style  `json:"styles" jsonschema:"named style vectors"`
	Pitch            string   `json:"pitch" jsonschema:"pitch vector, 32 little-endian float32 as hex"`
	Timing           string   `json:"timing" jsonschema:"timing vector, 128 little-endian float32 as hex"`
}

// Style is one named style vector.
type Style struct {
	Name  string   `json:"name" jsonschema:"unique style name without whitespace"`
	Data  string   `json:"data" jsonschema:"style vector, 32 little-endian float32 as hex"`
	Extra *float64 `json:"extra,omitempty" jsonschema:"optional style scalar"`
}

// FromDocument converts a document into a Config. Type mismatches are
// reported as format errors; semantic rules are Validate's job.
func FromDocument(doc *jsondoc.Value) (*Config, error) {
	if !doc.IsObject() {
		return nil, faults.Wrap(faults.ErrFormat, "voicebank", "from document", MsgRootNotObject, nil)
	}
	var cfg Config
	if err := json.Unmarshal(jsondoc.Marshal(doc), &cfg); err != nil {
		return nil, faults.Wrap(faults.ErrFormat, "voicebank", "from document", "decode config", err)
	}
	return &cfg, nil
}

// Style returns the style with the given name.
func (c *Config) Style(name string) (Style, bool) {
	for _, s := range c.Styles {
		if s.Name == name {
			return s, true
		}
	}
	return Style{}, false
}

// StyleVector decodes the data vector of the named style.
func (c *Config) StyleVector(name string) (vector.Vector, error) {
	s, ok := c.Style(name)
	if !ok {
		return nil, faults.Wrap(faults.ErrFormat, "voicebank", "style vector", fmt.Sprintf("no style named %q", name), nil)
	}
	return vector.Decode(s.Data)
}

// StyleVectorOf decodes the data vector of the named style directly from
// doc. Only the name and data members of each style are read, so fields of
// other styles, or of the document, may be in any shape.
func StyleVectorOf(doc *jsondoc.Value, name string) (vector.Vector, error) {
	if !doc.IsObject() {
		return nil, faults.Wrap(faults.ErrFormat, "voicebank", "style vector", MsgRootNotObject, nil)
	}
	styles, ok := doc.Get(FieldStyles)
	if !ok || !styles.IsArray() {
		return nil, faults.Wrap(faults.ErrFormat, "voicebank", "style vector", "document has no styles array", nil)
	}
	for _, style := range styles.Items() {
		if n, ok := stringField(style, StyleName); !ok || n != name {
			continue
		}
		data, ok := style.Get(StyleData)
		if !ok || !data.IsString() {
			return nil, faults.Wrap(faults.ErrFormat, "voicebank", "style vector", fmt.Sprintf("style %q has no data string", name), nil)
		}
		text, _ := data.AsString()
		return vector.Decode(text)
	}
	return nil, faults.Wrap(faults.ErrFormat, "voicebank", "style vector", fmt.Sprintf("no style named %q", name), nil)
}

// PitchVector decodes the pitch vector.
func (c *Config) PitchVector() (vector.Vector, error) {
	return vector.Decode(c.Pitch)
}

// TimingVector decodes the timing vector.
func (c *Config) TimingVector() (vector.Vector, error) {
	return vector.DecodeN(c.Timing, vector.TimingDim)
}

// Schema describes Config as JSON Schema, including the fixed language,
// phoneset and model tables and the hex field patterns.
func Schema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[Config](nil)
	if err != nil {
		return nil, fmt.Errorf("build config schema: %w", err)
	}
	schema.Title = "Voice bank configuration"

	props := schema.Properties
	setPattern(props[FieldVersion], versionPattern.String())
	setEnum(props[FieldLanguage], Languages())
	setEnum(props[FieldPhoneset], Phonesets())
	if langs := props[FieldSupportLanguages]; langs != nil {
		setEnum(langs.Items, Languages())
	}
	for _, field := range modelFields {
		setEnum(props[field], ModelIDs(field))
	}
	setPattern(props[FieldPitch], hexPattern(vector.HexLen))
	setPattern(props[FieldTiming], hexPattern(vector.TimingHexLen))
	if styles := props[FieldStyles]; styles != nil && styles.Items != nil {
		setPattern(styles.Items.Properties[StyleName], `^\S+$`)
		setPattern(styles.Items.Properties[StyleData], hexPattern(vector.HexLen))
	}
	return schema, nil
}

func hexPattern(length int) string {
	return fmt.Sprintf("^[0-9A-Fa-f]{%d}$", length)
}

func setPattern(s *jsonschema.Schema, pattern string) {
	if s != nil {
		s.Pattern = pattern
	}
}

func setEnum(s *jsonschema.Schema, values []string) {
	if s == nil {
		return
	}
	s.Enum = make([]any, 0, len(values))
	for _, v := range values {
		s.Enum = append(s.Enum, v)
	}
}
