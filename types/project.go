// Package types defines common types used across the SDK.
package types

import (
	"github.com/isense-tools/sdk-go/wire"
)

// Field is a server-assigned column definition within a project. The id is
// kept as a string even though the API sends a number, because upload
// payloads key data by the id's textual form.
type Field struct {
	ID   string
	Name string
}

// FieldFromWire extracts a Field from one element of a project's fields
// array. The second return is false when the element is not an object.
func FieldFromWire(v wire.Value) (Field, bool) {
	obj := v.Object()
	if obj == nil {
		return Field{}, false
	}
	id, _ := obj.Get("id")
	name, _ := obj.Get("name")
	nameStr, _ := name.Str()
	return Field{ID: id.Stringify(), Name: nameStr}, true
}

// FieldsFromWire extracts every well-formed field from a fields array.
func FieldsFromWire(v wire.Value) []Field {
	elems := v.Array()
	fields := make([]Field, 0, len(elems))
	for _, el := range elems {
		if f, ok := FieldFromWire(el); ok {
			fields = append(fields, f)
		}
	}
	return fields
}

// DataSet is one server-stored table of rows belonging to a project. Raw
// keeps the full record as returned by the API, including the nested "data"
// array of row objects keyed by field id.
type DataSet struct {
	ID   string
	Name string
	Raw  wire.Value
}

// DataSetFromWire extracts a DataSet from one element of a project's
// dataSets array.
func DataSetFromWire(v wire.Value) (DataSet, bool) {
	obj := v.Object()
	if obj == nil {
		return DataSet{}, false
	}
	id, _ := obj.Get("id")
	name, _ := obj.Get("name")
	nameStr, _ := name.Str()
	return DataSet{ID: id.Stringify(), Name: nameStr, Raw: v}, true
}

// DataSetsFromWire extracts every well-formed dataset from a dataSets array.
func DataSetsFromWire(v wire.Value) []DataSet {
	elems := v.Array()
	sets := make([]DataSet, 0, len(elems))
	for _, el := range elems {
		if ds, ok := DataSetFromWire(el); ok {
			sets = append(sets, ds)
		}
	}
	return sets
}

// Rows returns the dataset's row objects, one wire object per data point
// row, keyed by field id. Returns nil when the record carries no data key.
func (d DataSet) Rows() []wire.Value {
	data, ok := d.Raw.Get("data")
	if !ok {
		return nil
	}
	return data.Array()
}

// Owner holds the project owner info returned by a recursive project fetch.
type Owner struct {
	Name string
	Raw  wire.Value
}

// OwnerFromWire extracts the owner object. A missing or malformed owner
// yields a zero Owner.
func OwnerFromWire(v wire.Value) Owner {
	if v.Object() == nil {
		return Owner{}
	}
	name, _ := v.Get("name")
	nameStr, _ := name.Str()
	return Owner{Name: nameStr, Raw: v}
}

// MediaObject is an opaque media record attached to a project. The SDK only
// lists these; it never uploads media.
type MediaObject struct {
	ID  string
	Raw wire.Value
}

// MediaObjectsFromWire extracts the media object records.
func MediaObjectsFromWire(v wire.Value) []MediaObject {
	elems := v.Array()
	media := make([]MediaObject, 0, len(elems))
	for _, el := range elems {
		if el.Object() == nil {
			continue
		}
		id, _ := el.Get("id")
		media = append(media, MediaObject{ID: id.Stringify(), Raw: el})
	}
	return media
}
