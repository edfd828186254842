package wire

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
)

// Parse decodes a JSON document into a Value tree. Numbers keep their wire
// literal so integer ids survive stringification. Object keys are sorted,
// since the decoder's map order is not stable; the API never relies on
// response key order.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return Value{}, fmt.Errorf("parse wire value: %w", err)
	}

	return fromAny(root)
}

func fromAny(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("parse number %q: %w", t.String(), err)
		}
		return Value{kind: KindNumber, num: f, raw: t.String()}, nil
	case string:
		return String(t), nil
	case []any:
		arr := make([]Value, 0, len(t))
		for _, el := range t {
			ev, err := fromAny(el)
			if err != nil {
				return Value{}, err
			}
			arr = append(arr, ev)
		}
		return Value{kind: KindArray, arr: arr}, nil
	case map[string]any:
		obj := NewObject()
		for k, el := range t {
			ev, err := fromAny(el)
			if err != nil {
				return Value{}, err
			}
			obj.Set(k, ev)
		}
		obj.sortKeys()
		return ObjectValue(obj), nil
	}
	return Value{}, fmt.Errorf("unsupported wire value of type %T", v)
}

// MarshalJSON serializes the value. Objects emit keys in insertion order,
// so encoding the same tree twice yields identical bytes.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Serialize is a convenience wrapper around MarshalJSON for callers that
// need the request body bytes directly.
func (v Value) Serialize() ([]byte, error) {
	return v.MarshalJSON()
}

func (v Value) write(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
	case KindBool:
		if v.b {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case KindNumber:
		if v.raw != "" {
			buf.WriteString(v.raw)
			return nil
		}
		b, err := json.Marshal(v.num)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindString:
		b, err := json.Marshal(v.str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindArray:
		buf.WriteByte('[')
		for i, el := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := el.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, k := range v.obj.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(kb)
			buf.WriteByte(':')
			el, _ := v.obj.Get(k)
			if err := el.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("cannot serialize wire value of kind %d", v.kind)
	}
	return nil
}
