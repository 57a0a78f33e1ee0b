// Package wire implements the tagged value encoding used by the remote
// document query protocol, and the dynamic value domain the rest of the
// engine works with.
package wire

import "encoding/json"

// Value is a protocol-tagged wire value. Exactly one tag is populated
// per value; the JSON field names match the remote protocol.
type Value struct {
	StringValue    *string         `json:"stringValue,omitempty"`
	IntegerValue   *string         `json:"integerValue,omitempty"`
	DoubleValue    *float64        `json:"doubleValue,omitempty"`
	BooleanValue   *bool           `json:"booleanValue,omitempty"`
	NullValue      json.RawMessage `json:"nullValue,omitempty"`
	TimestampValue *string         `json:"timestampValue,omitempty"`
	GeoPointValue  *LatLng         `json:"geoPointValue,omitempty"`
	ArrayValue     *ArrayValue     `json:"arrayValue,omitempty"`
	MapValue       *MapValue       `json:"mapValue,omitempty"`
	ReferenceValue *string         `json:"referenceValue,omitempty"`
}

// LatLng is the wire representation of a geographic point.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ArrayValue wraps the element list of an array-tagged value.
type ArrayValue struct {
	Values []Value `json:"values"`
}

// MapValue wraps the field map of a map-tagged value.
type MapValue struct {
	Fields map[string]Value `json:"fields"`
}

// Dynamic is the value domain shared by the expression parser and the
// row decoder: a sealed tagged union with one variant per wire shape.
// The marker method prevents external implementations, so codec type
// switches stay exhaustive.
type Dynamic interface {
	dynamicValue()
}

// String is a text value.
type String string

// Integer is a 64-bit integral value. The wire encoding carries it as a
// decimal string.
type Integer int64

// Double is a non-integral numeric value.
type Double float64

// Boolean is a true/false value.
type Boolean bool

// Null is the null value.
type Null struct{}

// Array is an ordered list of dynamic values.
type Array []Dynamic

// Map is a field map of dynamic values.
type Map map[string]Dynamic

// Timestamp is a point in time split into whole seconds and nanoseconds,
// mirroring the pair the UI layer renders.
type Timestamp struct {
	Seconds int64 `json:"seconds"`
	Nanos   int32 `json:"nanoseconds"`
}

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Reference is a document path kept as raw text.
type Reference string

func (String) dynamicValue()    {}
func (Integer) dynamicValue()   {}
func (Double) dynamicValue()    {}
func (Boolean) dynamicValue()   {}
func (Null) dynamicValue()      {}
func (Array) dynamicValue()     {}
func (Map) dynamicValue()       {}
func (Timestamp) dynamicValue() {}
func (GeoPoint) dynamicValue()  {}
func (Reference) dynamicValue() {}
