package cborlite

import (
	"bytes"
	"math"

	"github.com/pkg/errors"
)

// Encode renders v as a single CBOR item.
func Encode(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeInto(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeInto(buf *bytes.Buffer, v Value) error {
	switch t := v.(type) {
	case uint64:
		writeHeader(buf, MajorUint, t)
		return nil
	case int:
		if t < 0 {
			return errors.New("cborlite: negative integers are not supported")
		}
		writeHeader(buf, MajorUint, uint64(t))
		return nil
	case []byte:
		writeHeader(buf, MajorBytes, uint64(len(t)))
		buf.Write(t)
		return nil
	case string:
		writeHeader(buf, MajorText, uint64(len(t)))
		buf.WriteString(t)
		return nil
	case []Value:
		writeHeader(buf, MajorArray, uint64(len(t)))
		for _, e := range t {
			if err := encodeInto(buf, e); err != nil {
				return err
			}
		}
		return nil
	case *Map:
		writeHeader(buf, MajorMap, uint64(t.Len()))
		var outerErr error
		t.Range(func(key uint64, val Value) {
			if outerErr != nil {
				return
			}
			writeHeader(buf, MajorUint, key)
			if err := encodeInto(buf, val); err != nil {
				outerErr = err
			}
		})
		return outerErr
	case Tag:
		writeHeader(buf, MajorTag, t.Number)
		return encodeInto(buf, t.Content)
	case bool:
		if t {
			buf.WriteByte(0xf5)
		} else {
			buf.WriteByte(0xf4)
		}
		return nil
	case Null:
		buf.WriteByte(0xf6)
		return nil
	case Undefined:
		buf.WriteByte(0xf7)
		return nil
	case float64:
		// Encode-side floats are not part of the spec's requirements
		// (decode-only, "for completeness"), but a double-precision
		// encoding is provided so a round-trip of a decoded float is
		// still possible.
		buf.WriteByte(0xfb)
		bits := math.Float64bits(t)
		for shift := 56; shift >= 0; shift -= 8 {
			buf.WriteByte(byte(bits >> shift))
		}
		return nil
	case nil:
		return errors.New("cborlite: Encode(nil): use cborlite.Null{} for an explicit CBOR null")
	default:
		return errors.Errorf("cborlite: Encode: unsupported Go type %T", v)
	}
}
