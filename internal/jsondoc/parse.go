package jsondoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Columbina-Dev/vector-calculator/internal/faults"
)

// Parse decodes a complete JSON document. Trailing data after the first value
// is rejected. Failures are tagged with faults.ErrFormat.
func Parse(data []byte) (*Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := parseValue(dec)
	if err != nil {
		return nil, faults.Wrap(faults.ErrFormat, "jsondoc", "parse", "invalid JSON", err)
	}
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = fmt.Errorf("unexpected token %v", tok)
		}
		return nil, faults.Wrap(faults.ErrFormat, "jsondoc", "parse", "trailing data after document", err)
	}
	return root, nil
}

// ParseString is Parse for text held in a string.
func ParseString(text string) (*Value, error) {
	return Parse([]byte(text))
}

func parseValue(dec *json.Decoder) (*Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObject(dec)
		case '[':
			return parseArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", rune(t))
		}
	case string:
		return String(t), nil
	case json.Number:
		return numberFromLiteral(string(t))
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return nil, fmt.Errorf("unexpected token %T", tok)
	}
}

func parseObject(dec *json.Decoder) (*Value, error) {
	obj := &Value{kind: KindObject}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}
		value, err := parseValue(dec)
		if err != nil {
			return nil, fmt.Errorf("member %q: %w", key, err)
		}
		obj.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func parseArray(dec *json.Decoder) (*Value, error) {
	arr := &Value{kind: KindArray}
	for dec.More() {
		item, err := parseValue(dec)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", len(arr.items), err)
		}
		arr.items = append(arr.items, item)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
