package formstore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// FromJSON decodes a JSON object into a document, keeping field order.
// Arrays must hold scalars of a single kind; booleans and null are rejected.
func FromJSON(data []byte) (*Document, error) {
	v, err := ParseJSONValue(data)
	if err != nil {
		return nil, err
	}
	doc, ok := v.(*Document)
	if !ok {
		return nil, fmt.Errorf("%w: top-level JSON %s is not an object", ErrUnsupportedValue, v.Kind())
	}
	return doc, nil
}

// ParseJSONValue decodes any JSON value a document can hold.
func ParseJSONValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	v, err := decodeValue(dec, tok)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("failed to decode JSON: trailing data after value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case string:
		return String(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %s", ErrUnsupportedValue, t)
		}
		return Number(f), nil
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
	}
	return nil, fmt.Errorf("%w: JSON %v", ErrUnsupportedValue, tok)
}

func decodeObject(dec *json.Decoder) (*Document, error) {
	var fields []Field
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to decode JSON: %w", err)
		}
		key, _ := keyTok.(string)
		valTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to decode JSON: %w", err)
		}
		v, err := decodeValue(dec, valTok)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		fields = append(fields, Field{Name: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	return NewDocument(fields...), nil
}

func decodeArray(dec *json.Decoder) (*List, error) {
	var items []Value
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("failed to decode JSON: %w", err)
		}
		if _, nested := tok.(json.Delim); nested {
			return nil, fmt.Errorf("%w: nested arrays and objects in lists", ErrUnsupportedValue)
		}
		v, err := decodeValue(dec, tok)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("failed to decode JSON: %w", err)
	}
	elem := KindString
	if len(items) > 0 {
		elem = items[0].Kind()
	}
	return NewList(elem, items...)
}

// ValueOf converts plain Go values into document values. It accepts
// strings, numbers, json.Number, slices of scalars, map[string]any (fields
// sorted by name) and Values.
func ValueOf(x any) (Value, error) {
	switch t := x.(type) {
	case Value:
		if err := checkValue(t); err != nil {
			return nil, err
		}
		return t, nil
	case string:
		return String(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %s", ErrUnsupportedValue, t)
		}
		return Number(f), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(t), nil
	case int:
		return Number(t), nil
	case int64:
		return Number(t), nil
	case uint64:
		return Number(t), nil
	case []string:
		return NewStringList(t...), nil
	case []float64:
		return NewNumberList(t...), nil
	case []any:
		items := make([]Value, 0, len(t))
		for i, raw := range t {
			v, err := ValueOf(raw)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			if !v.Kind().IsScalar() {
				return nil, fmt.Errorf("%w: nested arrays and objects in lists", ErrUnsupportedValue)
			}
			items = append(items, v)
		}
		elem := KindString
		if len(items) > 0 {
			elem = items[0].Kind()
		}
		return NewList(elem, items...)
	case map[string]any:
		names := make([]string, 0, len(t))
		for name := range t {
			names = append(names, name)
		}
		sort.Strings(names)
		fields := make([]Field, 0, len(t))
		for _, name := range names {
			v, err := ValueOf(t[name])
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", name, err)
			}
			fields = append(fields, Field{Name: name, Value: v})
		}
		return NewDocument(fields...), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedValue, x)
	}
}

// MarshalJSON encodes the document as an object in field order.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSON encodes the list as an array.
func (l *List) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v Value) error {
	switch t := v.(type) {
	case *Document:
		buf.WriteByte('{')
		for i, f := range t.Fields() {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(f.Name)
			if err != nil {
				return err
			}
			buf.Write(key)
			buf.WriteByte(':')
			if err := encodeValue(buf, f.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case *List:
		buf.WriteByte('[')
		for i, item := range t.Items() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case String:
		b, err := json.Marshal(string(t))
		if err != nil {
			return err
		}
		buf.Write(b)
	case Number:
		b, err := json.Marshal(float64(t))
		if err != nil {
			return err
		}
		buf.Write(b)
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
	return nil
}
