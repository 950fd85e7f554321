package jsondoc

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Segment is one step of a Path: an object key or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Path locates a value inside a document, starting at the root.
type Path []Segment

// Root is the empty path.
func Root() Path { return nil }

// Field returns a copy of p extended by an object key.
func (p Path) Field(key string) Path {
	return p.with(Segment{Key: key})
}

// At returns a copy of p extended by an array index.
func (p Path) At(index int) Path {
	return p.with(Segment{Index: index, IsIndex: true})
}

func (p Path) with(seg Segment) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, seg)
}

// String renders p in accessor form, e.g. styles[1].data. The root renders
// as "$".
func (p Path) String() string {
	if len(p) == 0 {
		return "$"
	}
	var b strings.Builder
	for i, seg := range p {
		if seg.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.Index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.Key)
	}
	return b.String()
}

// MarshalJSON encodes p as an array of keys and indices.
func (p Path) MarshalJSON() ([]byte, error) {
	out := make([]any, 0, len(p))
	for _, seg := range p {
		if seg.IsIndex {
			out = append(out, seg.Index)
		} else {
			out = append(out, seg.Key)
		}
	}
	return json.Marshal(out)
}

// Lookup resolves p against root.
func Lookup(root *Value, p Path) (*Value, bool) {
	cur := root
	for _, seg := range p {
		if seg.IsIndex {
			items := cur.Items()
			if seg.Index < 0 || seg.Index >= len(items) {
				return nil, false
			}
			cur = items[seg.Index]
			continue
		}
		next, ok := cur.Get(seg.Key)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
