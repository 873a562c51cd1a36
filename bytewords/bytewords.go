// Package bytewords implements the bytewords codec (component B): a fixed
// 256-word alphabet mapping bytes to short ASCII words, with an appended
// CRC-32 for transport integrity.
package bytewords

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/blockchaincommons/bc-ur-go/crc32check"
)

// Style selects how a bytewords body is rendered. The encoder only ever
// emits Minimal; Standard and URI are accepted on decode for compatibility
// with bodies produced elsewhere, the way std/crypt.go's cryptMethods table
// accepts a family of named variants for one underlying concern.
type Style int

const (
	StyleMinimal Style = iota
	StyleStandard
	StyleURI
)

// styleSpec describes how a style joins per-byte tokens into a body.
type styleSpec struct {
	sep       string // separator between per-byte tokens ("" for minimal)
	charsEach int    // characters contributed per byte
}

var styleTables = map[Style]styleSpec{
	StyleMinimal:  {sep: "", charsEach: 2},
	StyleStandard: {sep: " ", charsEach: 4},
	StyleURI:      {sep: "-", charsEach: 4},
}

// Encode renders data in minimal style with a trailing big-endian CRC-32
// (of data, not of the rendered string) appended before encoding.
func Encode(data []byte) string {
	return EncodeRaw(appendChecksum(data))
}

// EncodeRaw renders data in minimal style with no CRC step; Encode calls it
// after appending the CRC. Output is uppercase ASCII, per the wire format's
// "uppercase emitted, case-insensitive accepted" rule.
func EncodeRaw(data []byte) string {
	var sb strings.Builder
	sb.Grow(len(data) * 2)
	for _, b := range data {
		w := words[b]
		sb.WriteByte(upper(w[0]))
		sb.WriteByte(upper(w[3]))
	}
	return sb.String()
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

func appendChecksum(data []byte) []byte {
	sum := crc32check.Checksum(data)
	out := make([]byte, len(data)+4)
	copy(out, data)
	out[len(data)+0] = byte(sum >> 24)
	out[len(data)+1] = byte(sum >> 16)
	out[len(data)+2] = byte(sum >> 8)
	out[len(data)+3] = byte(sum)
	return out
}

// Decode accepts any of the three styles, verifies the trailing CRC-32, and
// returns the bytes preceding it.
func Decode(s string) ([]byte, error) {
	raw, err := DecodeRaw(s)
	if err != nil {
		return nil, err
	}
	if len(raw) < 4 {
		return nil, errors.New("bytewords: decoded fewer than 4 bytes")
	}
	body, tail := raw[:len(raw)-4], raw[len(raw)-4:]
	want := uint32(tail[0])<<24 | uint32(tail[1])<<16 | uint32(tail[2])<<8 | uint32(tail[3])
	if !crc32check.Verify(body, want) {
		return nil, errors.New("bytewords: CRC-32 mismatch")
	}
	return body, nil
}

// DecodeRaw decodes a bytewords body of any style without checking a
// trailing CRC-32; the caller is responsible for its own integrity check.
// Decode calls it and then verifies the CRC.
func DecodeRaw(s string) ([]byte, error) {
	style := detectStyle(s)
	spec := styleTables[style]

	var tokens []string
	if spec.sep == "" {
		if len(s)%spec.charsEach != 0 {
			return nil, errors.New("bytewords: odd character count for minimal style")
		}
		for i := 0; i < len(s); i += spec.charsEach {
			tokens = append(tokens, s[i:i+spec.charsEach])
		}
	} else {
		tokens = strings.Split(s, spec.sep)
	}

	out := make([]byte, 0, len(tokens))
	for _, tok := range tokens {
		b, err := decodeToken(tok, style)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func detectStyle(s string) Style {
	switch {
	case strings.Contains(s, " "):
		return StyleStandard
	case strings.Contains(s, "-"):
		return StyleURI
	default:
		return StyleMinimal
	}
}

func decodeToken(tok string, style Style) (byte, error) {
	tok = strings.ToLower(tok)
	switch style {
	case StyleMinimal:
		if len(tok) != 2 {
			return 0, errors.Errorf("bytewords: bad minimal token %q", tok)
		}
		b, ok := minimalIndex[[2]byte{tok[0], tok[1]}]
		if !ok {
			return 0, errors.Errorf("bytewords: unknown minimal pair %q", tok)
		}
		return b, nil
	default:
		if len(tok) != 4 {
			return 0, errors.Errorf("bytewords: bad word %q", tok)
		}
		b, ok := wordIndex[tok]
		if !ok {
			return 0, errors.Errorf("bytewords: unknown word %q", tok)
		}
		return b, nil
	}
}
