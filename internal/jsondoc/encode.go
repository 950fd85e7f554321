package jsondoc

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
)

// Marshal encodes v as compact JSON.
func Marshal(v *Value) []byte {
	var buf bytes.Buffer
	writeValue(&buf, v, "", 0)
	return buf.Bytes()
}

// MarshalIndent encodes v with one indent unit per nesting level. An empty
// indent produces compact output.
func MarshalIndent(v *Value, indent string) []byte {
	var buf bytes.Buffer
	writeValue(&buf, v, indent, 0)
	return buf.Bytes()
}

// String returns the compact encoding of v.
func (v *Value) String() string {
	return string(Marshal(v))
}

// MarshalJSON implements json.Marshaler.
func (v *Value) MarshalJSON() ([]byte, error) {
	return Marshal(v), nil
}

func writeValue(buf *bytes.Buffer, v *Value, indent string, depth int) {
	switch v.Kind() {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.boolean {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		writeNumber(buf, v)
	case KindString:
		writeString(buf, v.text)
	case KindArray:
		if len(v.items) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			writeValue(buf, item, indent, depth+1)
		}
		newline(buf, indent, depth)
		buf.WriteByte(']')
	case KindObject:
		if len(v.members) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteByte('{')
		for i, m := range v.members {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, depth+1)
			writeString(buf, m.Key)
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			writeValue(buf, m.Value, indent, depth+1)
		}
		newline(buf, indent, depth)
		buf.WriteByte('}')
	}
}

func newline(buf *bytes.Buffer, indent string, depth int) {
	if indent == "" {
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(indent, depth))
}

// Non-finite numbers have no JSON form and encode as null.
func writeNumber(buf *bytes.Buffer, v *Value) {
	if v.literal != "" {
		buf.WriteString(v.literal)
		return
	}
	if math.IsNaN(v.number) || math.IsInf(v.number, 0) {
		buf.WriteString("null")
		return
	}
	encoded, err := json.Marshal(v.number)
	if err != nil {
		buf.WriteString("null")
		return
	}
	buf.Write(encoded)
}

func writeString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		buf.WriteString(`""`)
		return
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
}
