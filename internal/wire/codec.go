package wire

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// nullTag is the JSON literal carried by a null-tagged value.
var nullTag = json.RawMessage("null")

// Encode converts a dynamic value into its tagged wire form. The union
// is sealed, so the switch covers every shape; a nil Dynamic encodes as
// null rather than failing, and anything else degrades to its string
// form.
func Encode(v Dynamic) Value {
	switch v := v.(type) {
	case nil:
		return Value{NullValue: nullTag}
	case String:
		s := string(v)
		return Value{StringValue: &s}
	case Integer:
		s := strconv.FormatInt(int64(v), 10)
		return Value{IntegerValue: &s}
	case Double:
		f := float64(v)
		return Value{DoubleValue: &f}
	case Boolean:
		b := bool(v)
		return Value{BooleanValue: &b}
	case Null:
		return Value{NullValue: nullTag}
	case Array:
		values := make([]Value, len(v))
		for i, elem := range v {
			values[i] = Encode(elem)
		}
		return Value{ArrayValue: &ArrayValue{Values: values}}
	case Map:
		fields := make(map[string]Value, len(v))
		for name, elem := range v {
			fields[name] = Encode(elem)
		}
		return Value{MapValue: &MapValue{Fields: fields}}
	case Timestamp:
		ts := time.Unix(v.Seconds, int64(v.Nanos)).UTC().Format(time.RFC3339Nano)
		return Value{TimestampValue: &ts}
	case GeoPoint:
		return Value{GeoPointValue: &LatLng{Latitude: v.Latitude, Longitude: v.Longitude}}
	case Reference:
		s := string(v)
		return Value{ReferenceValue: &s}
	default:
		s := fmt.Sprintf("%v", v)
		return Value{StringValue: &s}
	}
}

// Decode converts a tagged wire value back into the dynamic domain.
// Tags are inspected in a fixed priority order; a value with no
// recognized tag decodes to Null.
func Decode(v Value) Dynamic {
	switch {
	case v.StringValue != nil:
		return String(*v.StringValue)
	case v.IntegerValue != nil:
		n, _ := strconv.ParseInt(*v.IntegerValue, 10, 64)
		return Integer(n)
	case v.DoubleValue != nil:
		return Double(*v.DoubleValue)
	case v.BooleanValue != nil:
		return Boolean(*v.BooleanValue)
	case len(v.NullValue) > 0:
		return Null{}
	case v.TimestampValue != nil:
		t, err := time.Parse(time.RFC3339Nano, *v.TimestampValue)
		if err != nil {
			return Null{}
		}
		return Timestamp{Seconds: t.Unix(), Nanos: int32(t.Nanosecond())}
	case v.GeoPointValue != nil:
		return GeoPoint{Latitude: v.GeoPointValue.Latitude, Longitude: v.GeoPointValue.Longitude}
	case v.ArrayValue != nil:
		elems := make(Array, len(v.ArrayValue.Values))
		for i, elem := range v.ArrayValue.Values {
			elems[i] = Decode(elem)
		}
		return elems
	case v.MapValue != nil:
		fields := make(Map, len(v.MapValue.Fields))
		for name, elem := range v.MapValue.Fields {
			fields[name] = Decode(elem)
		}
		return fields
	case v.ReferenceValue != nil:
		return Reference(*v.ReferenceValue)
	default:
		return Null{}
	}
}

// DecodeFields decodes one fetched row: a map of wire-tagged field
// values as returned by the remote query protocol.
func DecodeFields(fields map[string]Value) map[string]Dynamic {
	decoded := make(map[string]Dynamic, len(fields))
	for name, v := range fields {
		decoded[name] = Decode(v)
	}
	return decoded
}
