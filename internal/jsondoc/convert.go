package jsondoc

import (
	"math/big"
	"sort"

	"github.com/goccy/go-yaml"
)

// Interface converts v into plain Go values: map[string]any, []any, float64,
// string, bool and nil. Member order is lost; this is the shape jq queries
// operate on.
func (v *Value) Interface() any {
	switch v.Kind() {
	case KindBool:
		return v.boolean
	case KindNumber:
		return v.number
	case KindString:
		return v.text
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.members))
		for _, m := range v.members {
			out[m.Key] = m.Value.Interface()
		}
		return out
	default:
		return nil
	}
}

// FromInterface builds a Value from plain Go values as produced by
// encoding/json or jq. Map keys are emitted in sorted order. Big integers
// keep their exact decimal literal.
func FromInterface(x any) *Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case *big.Int:
		if t == nil {
			return Null()
		}
		if v, err := numberFromLiteral(t.String()); err == nil {
			return v
		}
		return Null()
	case string:
		return String(t)
	case []any:
		arr := Array()
		for _, item := range t {
			arr.Append(FromInterface(item))
		}
		return arr
	case map[string]any:
		obj := Object()
		for _, key := range sortedKeys(t) {
			obj.Set(key, FromInterface(t[key]))
		}
		return obj
	default:
		return Null()
	}
}

// YAML converts v into values goccy/go-yaml marshals with object member
// order preserved.
func (v *Value) YAML() any {
	switch v.Kind() {
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = item.YAML()
		}
		return out
	case KindObject:
		out := make(yaml.MapSlice, 0, len(v.members))
		for _, m := range v.members {
			out = append(out, yaml.MapItem{Key: m.Key, Value: m.Value.YAML()})
		}
		return out
	default:
		return v.Interface()
	}
}

// MarshalYAML encodes v as a YAML document.
func MarshalYAML(v *Value) ([]byte, error) {
	return yaml.Marshal(v.YAML())
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
