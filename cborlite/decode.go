package cborlite

import (
	"bytes"
	"math"

	"github.com/pkg/errors"
)

// Decode parses data as a single CBOR item and requires every byte to be
// consumed; it returns an error on trailing data. Used for top-level UR
// bodies, where the bytewords layer has already delivered an exact byte
// count.
func Decode(data []byte) (Value, error) {
	r := bytes.NewReader(data)
	v, err := DecodeValue(r)
	if err != nil {
		return nil, err
	}
	if r.Len() != 0 {
		return nil, errors.Errorf("cborlite: %d trailing bytes after top-level item", r.Len())
	}
	return v, nil
}

// DecodeValue parses a single CBOR item from r, leaving the reader
// positioned just after it. Nested structures (arrays, maps, tags) call
// this recursively.
func DecodeValue(r *bytes.Reader) (Value, error) {
	major, addl, n, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	switch major {
	case MajorUint:
		return n, nil
	case MajorBytes:
		b := make([]byte, n)
		if _, err := readFull(r, b); err != nil {
			return nil, errors.Wrap(err, "cborlite: reading byte string")
		}
		return b, nil
	case MajorText:
		b := make([]byte, n)
		if _, err := readFull(r, b); err != nil {
			return nil, errors.Wrap(err, "cborlite: reading text string")
		}
		return string(b), nil
	case MajorArray:
		items := make([]Value, 0, n)
		for i := uint64(0); i < n; i++ {
			v, err := DecodeValue(r)
			if err != nil {
				return nil, errors.Wrapf(err, "cborlite: decoding array element %d", i)
			}
			items = append(items, v)
		}
		return items, nil
	case MajorMap:
		m := NewMap()
		for i := uint64(0); i < n; i++ {
			keyVal, err := DecodeValue(r)
			if err != nil {
				return nil, errors.Wrapf(err, "cborlite: decoding map key %d", i)
			}
			key, ok := keyVal.(uint64)
			if !ok {
				return nil, errors.Errorf("cborlite: map key %d is not an unsigned integer (%T)", i, keyVal)
			}
			val, err := DecodeValue(r)
			if err != nil {
				return nil, errors.Wrapf(err, "cborlite: decoding map value for key %d", key)
			}
			m.Set(key, val)
		}
		return m, nil
	case MajorTag:
		content, err := DecodeValue(r)
		if err != nil {
			return nil, errors.Wrapf(err, "cborlite: decoding content of tag %d", n)
		}
		return Tag{Number: n, Content: content}, nil
	case MajorOther:
		return decodeOther(addl, n, r)
	default:
		return nil, errors.Errorf("cborlite: unsupported major type %d", major)
	}
}

func decodeOther(addl byte, n uint64, r *bytes.Reader) (Value, error) {
	switch addl {
	case 20:
		return false, nil
	case 21:
		return true, nil
	case 22:
		return Null{}, nil
	case 23:
		return Undefined{}, nil
	case 25: // IEEE 754 half precision
		return halfToFloat64(uint16(n)), nil
	case 26: // single precision
		return float64(math.Float32frombits(uint32(n))), nil
	case 27: // double precision
		return math.Float64frombits(n), nil
	default:
		return nil, errors.Errorf("cborlite: unsupported simple/float subtype %d", addl)
	}
}

// halfToFloat64 converts an IEEE 754 half-precision float to float64.
// Decode-only, included for completeness per spec.md §4.C.
func halfToFloat64(h uint16) float64 {
	sign := uint32(h>>15) & 0x1
	exp := uint32(h>>10) & 0x1f
	frac := uint32(h) & 0x3ff

	var f32bits uint32
	switch {
	case exp == 0 && frac == 0:
		f32bits = sign << 31
	case exp == 0x1f:
		f32bits = sign<<31 | 0xff<<23 | frac<<13
	case exp == 0:
		// subnormal half -> normalize for single precision
		e := 1
		for frac&0x400 == 0 {
			frac <<= 1
			e--
		}
		frac &= 0x3ff
		f32bits = sign<<31 | uint32(int32(127+e-15))<<23 | frac<<13
	default:
		f32bits = sign<<31 | (exp-15+127)<<23 | frac<<13
	}
	return float64(math.Float32frombits(f32bits))
}
