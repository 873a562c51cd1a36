// Package cborlite is a minimal CBOR (RFC 8949) encoder/decoder: unsigned
// integers, byte strings, text strings, arrays, maps, tags, booleans, null,
// undefined, and half/single/double floats (all three decoded; Encode
// writes a float64 back as a double). It is
// deliberately not a general CBOR library — only the subset component C
// needs to frame fountain parts and the registry shapes in package
// registry.
package cborlite

import "github.com/pkg/errors"

// Major is a CBOR major type (the top 3 bits of the initial byte).
type Major byte

const (
	MajorUint  Major = 0
	MajorBytes Major = 2
	MajorText  Major = 3
	MajorArray Major = 4
	MajorMap   Major = 5
	MajorTag   Major = 6
	MajorOther Major = 7 // bool, null, undefined, floats
)

// Value is the generic decoded (or to-be-encoded) shape: one of uint64,
// []byte, string, []Value, *Map, Tag, bool, Null, Undefined, or float64
// (decoding yields float64 for every float width; Encode writes float64 as
// a double).
type Value interface{}

// Null is CBOR's explicit null (major 7, value 22). It is distinct from a
// Go nil interface, which this package treats as an indeterminate input
// and rejects rather than silently reporting a type for — see MajorOf.
type Null struct{}

// Undefined is CBOR's undefined (major 7, value 23).
type Undefined struct{}

// Tag pairs a CBOR tag number with its tagged content.
type Tag struct {
	Number  uint64
	Content Value
}

// Map is an ordered unsigned-integer-keyed map. Encoding preserves
// insertion order; callers that must emit ascending key order (the
// fountain frame does not use maps, but some registry shapes do and may
// choose to for canonical output) should Set keys in that order.
type Map struct {
	keys []uint64
	vals []Value
}

// NewMap returns an empty ordered map.
func NewMap() *Map {
	return &Map{}
}

// Set inserts key/v, or replaces v if key is already present (its position
// in iteration order is unchanged).
func (m *Map) Set(key uint64, v Value) {
	for i, k := range m.keys {
		if k == key {
			m.vals[i] = v
			return
		}
	}
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, v)
}

// Get returns the value for key and whether it was present.
func (m *Map) Get(key uint64) (Value, bool) {
	for i, k := range m.keys {
		if k == key {
			return m.vals[i], true
		}
	}
	return nil, false
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// Range calls fn for every entry in insertion order.
func (m *Map) Range(fn func(key uint64, v Value)) {
	for i, k := range m.keys {
		fn(k, m.vals[i])
	}
}

// MajorOf reports v's major type. A Go nil (as opposed to Null{}) is an
// indeterminate input and returns an error rather than guessing — see
// spec design note (b): a type accessor must fail loudly on null input,
// not return CBOR_TYPE_NULL for one caller and CBOR_TYPE_UNSIGNED_INT for
// another.
func MajorOf(v Value) (Major, error) {
	switch v.(type) {
	case nil:
		return 0, errors.New("cborlite: MajorOf(nil): indeterminate type")
	case uint64:
		return MajorUint, nil
	case []byte:
		return MajorBytes, nil
	case string:
		return MajorText, nil
	case []Value:
		return MajorArray, nil
	case *Map:
		return MajorMap, nil
	case Tag:
		return MajorTag, nil
	case bool, Null, Undefined, float64:
		return MajorOther, nil
	default:
		return 0, errors.Errorf("cborlite: MajorOf: unsupported Go type %T", v)
	}
}
