// Package wire models the subset of JSON that the iSENSE API actually
// exchanges: null, bool, number, string, array and object. Values are a
// closed tagged union rather than interface{} trees, so callers can switch
// on Kind instead of type-asserting.
package wire

import (
	"sort"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "invalid"
}

// Value is one node of a wire tree. The zero value is JSON null.
type Value struct {
	kind Kind
	b    bool
	num  float64
	// raw holds the number literal as it appeared on the wire, so that
	// server-assigned integer ids stringify without a float round trip.
	raw string
	str string
	arr []Value
	obj *Object
}

// Null returns the JSON null value.
func Null() Value { return Value{kind: KindNull} }

// Bool wraps a bool.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a float64.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array wraps a slice of values.
func Array(vals ...Value) Value { return Value{kind: KindArray, arr: vals} }

// StringArray wraps a slice of strings as a JSON array of strings.
func StringArray(vals []string) Value {
	arr := make([]Value, 0, len(vals))
	for _, s := range vals {
		arr = append(arr, String(s))
	}
	return Value{kind: KindArray, arr: arr}
}

// ObjectValue wraps an Object.
func ObjectValue(o *Object) Value { return Value{kind: KindObject, obj: o} }

// Kind reports which variant this value holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload. The second return is false when the
// value is not a string.
func (v Value) Str() (string, bool) {
	return v.str, v.kind == KindString
}

// Num returns the numeric payload. The second return is false when the
// value is not a number.
func (v Value) Num() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// BoolVal returns the bool payload. The second return is false when the
// value is not a bool.
func (v Value) BoolVal() (bool, bool) {
	return v.b, v.kind == KindBool
}

// Array returns the element slice for arrays and nil for everything else.
func (v Value) Array() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Object returns the object payload, or nil when the value is not an object.
func (v Value) Object() *Object {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Get looks up a key on an object value. It returns false for missing keys
// and for non-object values.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject || v.obj == nil {
		return Value{}, false
	}
	return v.obj.Get(key)
}

// Stringify renders a scalar as a string: strings come back verbatim,
// numbers keep their wire literal when known, bools render true/false and
// null renders "null". Arrays and objects fall back to their serialized
// form. iSENSE field and dataset ids arrive as JSON numbers, so id
// comparison throughout the SDK goes through Stringify.
func (v Value) Stringify() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if v.raw != "" {
			return v.raw
		}
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindNull:
		return "null"
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(b)
}

// Object is a JSON object that remembers key insertion order, so a
// serialized value is byte-for-byte stable across runs.
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Set stores a key, appending to the key order on first insertion.
func (o *Object) Set(key string, v Value) {
	if o.vals == nil {
		o.vals = make(map[string]Value)
	}
	if _, exists := o.vals[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil || o.vals == nil {
		return Value{}, false
	}
	v, ok := o.vals[key]
	return v, ok
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not mutate it.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// sortKeys orders the keys lexically. Parsed objects go through this so
// that re-serializing a response is deterministic even though Go maps are
// not.
func (o *Object) sortKeys() {
	sort.Strings(o.keys)
}
