package jsondoc

import (
	"math"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Member is a single key/value pair of an object, in document order.
type Member struct {
	Key   string
	Value *Value
}

// Value is one node of a JSON document.
type Value struct {
	kind    Kind
	boolean bool
	number  float64
	literal string
	text    string
	items   []*Value
	members []Member
}

// Null returns a JSON null.
func Null() *Value { return &Value{kind: KindNull} }

// Bool returns a JSON boolean.
func Bool(b bool) *Value { return &Value{kind: KindBool, boolean: b} }

// Number returns a JSON number with no source literal; it is encoded with the
// shortest representation that round-trips the float64.
func Number(f float64) *Value { return &Value{kind: KindNumber, number: f} }

// String returns a JSON string.
func String(s string) *Value { return &Value{kind: KindString, text: s} }

// Array returns a JSON array holding items.
func Array(items ...*Value) *Value {
	out := make([]*Value, 0, len(items))
	for _, item := range items {
		out = append(out, orNull(item))
	}
	return &Value{kind: KindArray, items: out}
}

// Object returns a JSON object holding members in the given order. Later
// duplicates replace earlier values in place.
func Object(members ...Member) *Value {
	obj := &Value{kind: KindObject}
	for _, m := range members {
		obj.Set(m.Key, m.Value)
	}
	return obj
}

// Float32 returns a JSON number whose literal is the shortest decimal that
// parses back to the same float32. Non-finite values encode as null.
func Float32(f float32) *Value {
	v := &Value{kind: KindNumber, number: float64(f)}
	if !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0) {
		v.literal = strconv.FormatFloat(float64(f), 'g', -1, 32)
	}
	return v
}

func numberFromLiteral(literal string) (*Value, error) {
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
			return nil, err
		}
	}
	return &Value{kind: KindNumber, number: f, literal: literal}, nil
}

func orNull(v *Value) *Value {
	if v == nil {
		return Null()
	}
	return v
}

// Kind reports the variant; a nil Value is null.
func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

func (v *Value) IsNull() bool   { return v.Kind() == KindNull }
func (v *Value) IsObject() bool { return v.Kind() == KindObject }
func (v *Value) IsArray() bool  { return v.Kind() == KindArray }
func (v *Value) IsString() bool { return v.Kind() == KindString }
func (v *Value) IsNumber() bool { return v.Kind() == KindNumber }

// AsString returns the string payload when v is a string.
func (v *Value) AsString() (string, bool) {
	if v.Kind() != KindString {
		return "", false
	}
	return v.text, true
}

// AsNumber returns the numeric payload when v is a number.
func (v *Value) AsNumber() (float64, bool) {
	if v.Kind() != KindNumber {
		return 0, false
	}
	return v.number, true
}

// IsFinite reports whether v is a number that is neither NaN nor infinite.
func (v *Value) IsFinite() bool {
	f, ok := v.AsNumber()
	return ok && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// AsBool returns the boolean payload when v is a boolean.
func (v *Value) AsBool() (bool, bool) {
	if v.Kind() != KindBool {
		return false, false
	}
	return v.boolean, true
}

// Items returns the elements of an array, or nil for other kinds. The slice
// is shared with v.
func (v *Value) Items() []*Value {
	if v.Kind() != KindArray {
		return nil
	}
	return v.items
}

// Members returns the members of an object in order, or nil for other kinds.
// The slice is shared with v.
func (v *Value) Members() []Member {
	if v.Kind() != KindObject {
		return nil
	}
	return v.members
}

// Len returns the element count of arrays and the member count of objects.
func (v *Value) Len() int {
	switch v.Kind() {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.members)
	default:
		return 0
	}
}

// Keys returns object keys in document order.
func (v *Value) Keys() []string {
	members := v.Members()
	keys := make([]string, 0, len(members))
	for _, m := range members {
		keys = append(keys, m.Key)
	}
	return keys
}

// Get looks up key on an object.
func (v *Value) Get(key string) (*Value, bool) {
	idx := v.index(key)
	if idx < 0 {
		return nil, false
	}
	return v.members[idx].Value, true
}

// Has reports whether an object carries key.
func (v *Value) Has(key string) bool {
	return v.index(key) >= 0
}

// Set replaces the value of key in place, or appends a new member. It is a
// no-op on non-objects.
func (v *Value) Set(key string, value *Value) {
	if v.Kind() != KindObject {
		return
	}
	if idx := v.index(key); idx >= 0 {
		v.members[idx].Value = orNull(value)
		return
	}
	v.members = append(v.members, Member{Key: key, Value: orNull(value)})
}

// Delete removes key from an object and reports whether it was present.
func (v *Value) Delete(key string) bool {
	idx := v.index(key)
	if idx < 0 {
		return false
	}
	v.members = append(v.members[:idx], v.members[idx+1:]...)
	return true
}

// Append adds an element to an array. It is a no-op on non-arrays.
func (v *Value) Append(item *Value) {
	if v.Kind() != KindArray {
		return
	}
	v.items = append(v.items, orNull(item))
}

func (v *Value) index(key string) int {
	if v.Kind() != KindObject {
		return -1
	}
	for i, m := range v.members {
		if m.Key == key {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	if v == nil {
		return Null()
	}
	out := &Value{
		kind:    v.kind,
		boolean: v.boolean,
		number:  v.number,
		literal: v.literal,
		text:    v.text,
	}
	if v.kind == KindArray {
		out.items = make([]*Value, len(v.items))
		for i, item := range v.items {
			out.items[i] = item.Clone()
		}
	}
	if v.kind == KindObject {
		out.members = make([]Member, len(v.members))
		for i, m := range v.members {
			out.members[i] = Member{Key: m.Key, Value: m.Value.Clone()}
		}
	}
	return out
}

// Equal reports structural equality. Object members compare in order and
// numbers compare by value.
func Equal(a, b *Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case KindNull:
		return true
	case KindBool:
		return a.boolean == b.boolean
	case KindNumber:
		return a.number == b.number || (math.IsNaN(a.number) && math.IsNaN(b.number))
	case KindString:
		return a.text == b.text
	case KindArray:
		if len(a.items) != len(b.items) {
			return false
		}
		for i := range a.items {
			if !Equal(a.items[i], b.items[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.members) != len(b.members) {
			return false
		}
		for i := range a.members {
			if a.members[i].Key != b.members[i].Key || !Equal(a.members[i].Value, b.members[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}
