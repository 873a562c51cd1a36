// Package compress implements the optional one-byte-prefixed compression
// envelope used by registry.Bytes: 0x00 (raw) or 0x01 (snappy), chosen by
// whichever is smaller. Grounded on generic/comp.go's CompStream, adapted
// from a net.Conn stream wrapper to a block codec since registry payloads
// are already-framed byte slices, not live connections.
package compress

import (
	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

const (
	tagRaw    byte = 0x00
	tagSnappy byte = 0x01
)

// Compress prefixes data with a one-byte tag and snappy-compresses it only
// when that shrinks the result.
func Compress(data []byte) []byte {
	enc := snappy.Encode(nil, data)
	if len(enc) < len(data) {
		out := make([]byte, 0, len(enc)+1)
		out = append(out, tagSnappy)
		return append(out, enc...)
	}
	out := make([]byte, 0, len(data)+1)
	out = append(out, tagRaw)
	return append(out, data...)
}

// Decompress reverses Compress.
func Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("compress: empty input has no envelope tag")
	}
	switch data[0] {
	case tagRaw:
		return data[1:], nil
	case tagSnappy:
		out, err := snappy.Decode(nil, data[1:])
		if err != nil {
			return nil, errors.Wrap(err, "compress: snappy decode")
		}
		return out, nil
	default:
		return nil, errors.Errorf("compress: unknown envelope tag 0x%02x", data[0])
	}
}
