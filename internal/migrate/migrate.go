package migrate

import (
	"strings"

	"github.com/Columbina-Dev/vector-calculator/internal/jsondoc"
	"github.com/Columbina-Dev/vector-calculator/internal/vector"
)

const (
	ModernModelKey = "sing_model"
	LegacyModelKey = "pitch_model"
	StylesKey      = "styles"
	ExtraKey       = "extra"
)

type direction struct {
	from, to string
	extra    func(*jsondoc.Value) *jsondoc.Value
}

var (
	toLegacy = direction{from: ModernModelKey, to: LegacyModelKey, extra: extraToHex}
	toModern = direction{from: LegacyModelKey, to: ModernModelKey, extra: extraToNumber}
)

// ToLegacy returns a copy of doc in the on-disk schema: sing_model becomes
// pitch_model and numeric style extras become 8-hex strings. When an object
// already carries pitch_model its sing_model is dropped.
func ToLegacy(doc *jsondoc.Value) *jsondoc.Value {
	return rewrite(doc, toLegacy)
}

// ToModern is the inverse of ToLegacy. When an object already carries
// sing_model its pitch_model is dropped.
func ToModern(doc *jsondoc.Value) *jsondoc.Value {
	return rewrite(doc, toModern)
}

func rewrite(v *jsondoc.Value, dir direction) *jsondoc.Value {
	switch v.Kind() {
	case jsondoc.KindArray:
		out := jsondoc.Array()
		for _, item := range v.Items() {
			out.Append(rewrite(item, dir))
		}
		return out
	case jsondoc.KindObject:
		return rewriteObject(v, dir)
	default:
		return v.Clone()
	}
}

func rewriteObject(obj *jsondoc.Value, dir direction) *jsondoc.Value {
	collision := obj.Has(dir.from) && obj.Has(dir.to)
	out := jsondoc.Object()
	for _, m := range obj.Members() {
		key := m.Key
		if key == dir.from {
			if collision {
				continue
			}
			key = dir.to
		}
		value := rewrite(m.Value, dir)
		if key == StylesKey && value.IsArray() {
			for _, style := range value.Items() {
				if extra, ok := style.Get(ExtraKey); ok {
					style.Set(ExtraKey, dir.extra(extra))
				}
			}
		}
		out.Set(key, value)
	}
	return out
}

func extraToHex(extra *jsondoc.Value) *jsondoc.Value {
	if extra.IsFinite() {
		f, _ := extra.AsNumber()
		return jsondoc.String(vector.FloatToHex8(float32(f)))
	}
	if s, ok := extra.AsString(); ok && vector.IsHex(s, 8) {
		return jsondoc.String(strings.ToUpper(s))
	}
	return extra
}

func extraToNumber(extra *jsondoc.Value) *jsondoc.Value {
	s, ok := extra.AsString()
	if !ok || !vector.IsHex(s, 8) {
		return extra
	}
	f, err := vector.Hex8ToFloat(s)
	if err != nil {
		return extra
	}
	return jsondoc.Float32(f)
}
