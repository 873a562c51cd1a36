package cborlite

import (
	"bytes"

	"github.com/pkg/errors"
)

// writeHeader writes a major-type-plus-length header per RFC 8949 §3:
// immediate encoding for n<24, else 1/2/4/8-byte extended length.
func writeHeader(buf *bytes.Buffer, major Major, n uint64) {
	b := byte(major) << 5
	switch {
	case n < 24:
		buf.WriteByte(b | byte(n))
	case n <= 0xff:
		buf.WriteByte(b | 24)
		buf.WriteByte(byte(n))
	case n <= 0xffff:
		buf.WriteByte(b | 25)
		buf.WriteByte(byte(n >> 8))
		buf.WriteByte(byte(n))
	case n <= 0xffffffff:
		buf.WriteByte(b | 26)
		buf.WriteByte(byte(n >> 24))
		buf.WriteByte(byte(n >> 16))
		buf.WriteByte(byte(n >> 8))
		buf.WriteByte(byte(n))
	default:
		buf.WriteByte(b | 27)
		for shift := 56; shift >= 0; shift -= 8 {
			buf.WriteByte(byte(n >> shift))
		}
	}
}

// readHeader reads a major-type-plus-length header, returning the major
// type, the 5-bit additional info byte (needed by readers of major 7's
// simple/float subtype) and the decoded length/value n.
func readHeader(r *bytes.Reader) (major Major, addl byte, n uint64, err error) {
	first, err := r.ReadByte()
	if err != nil {
		return 0, 0, 0, errors.Wrap(err, "cborlite: reading header byte")
	}
	major = Major(first >> 5)
	addl = first & 0x1f

	switch {
	case addl < 24:
		return major, addl, uint64(addl), nil
	case addl == 24:
		b, err := r.ReadByte()
		if err != nil {
			return 0, 0, 0, errors.Wrap(err, "cborlite: reading 1-byte length")
		}
		return major, addl, uint64(b), nil
	case addl == 25:
		var buf [2]byte
		if _, err := readFull(r, buf[:]); err != nil {
			return 0, 0, 0, err
		}
		return major, addl, uint64(buf[0])<<8 | uint64(buf[1]), nil
	case addl == 26:
		var buf [4]byte
		if _, err := readFull(r, buf[:]); err != nil {
			return 0, 0, 0, err
		}
		n := uint64(buf[0])<<24 | uint64(buf[1])<<16 | uint64(buf[2])<<8 | uint64(buf[3])
		return major, addl, n, nil
	case addl == 27:
		var buf [8]byte
		if _, err := readFull(r, buf[:]); err != nil {
			return 0, 0, 0, err
		}
		var n uint64
		for _, b := range buf {
			n = n<<8 | uint64(b)
		}
		return major, addl, n, nil
	default:
		return 0, 0, 0, errors.Errorf("cborlite: unsupported additional info %d (indefinite length is not supported)", addl)
	}
}

func readFull(r *bytes.Reader, buf []byte) (int, error) {
	n, err := r.Read(buf)
	if err != nil {
		return n, errors.Wrap(err, "cborlite: short read")
	}
	if n != len(buf) {
		return n, errors.New("cborlite: short read")
	}
	return n, nil
}
