package bytewords

import (
	"bytes"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := [][]byte{
		{0x41, 0x42, 0x43},
		{},
		bytes.Repeat([]byte{0xAB}, 200),
	}
	for _, data := range cases {
		enc := Encode(data)
		got, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(%q) error: %v", enc, err)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("round trip mismatch: got %x, want %x", got, data)
		}
	}
}

func TestEncodeIsUppercaseInsensitiveOnDecode(t *testing.T) {
	data := []byte("hello, fountain")
	enc := Encode(data)
	lower := strings.ToLower(enc)
	got, err := Decode(lower)
	if err != nil {
		t.Fatalf("Decode(lower) error: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("case-insensitive round trip mismatch")
	}
}

func TestDecodeRejectsOddCharCount(t *testing.T) {
	if _, err := Decode("abc"); err == nil {
		t.Fatalf("expected error for odd character count")
	}
}

func TestDecodeRejectsUnknownPair(t *testing.T) {
	if _, err := Decode("zzzz"); err == nil {
		t.Fatalf("expected error for unknown minimal pair")
	}
}

func TestDecodeRejectsBadChecksum(t *testing.T) {
	enc := Encode([]byte("ABC"))
	// Replace the first pair, which is part of the payload, not the CRC,
	// with a different valid pair ("AA" is byte 0x00; 'A' encodes as "EB"),
	// so the body still decodes and only the CRC check can reject it.
	flipped := "AA" + enc[2:]
	if _, err := Decode(flipped); err == nil {
		t.Fatalf("expected CRC mismatch error")
	}
}

func TestDecodeStandardAndURIStyles(t *testing.T) {
	data := []byte{0x00, 0x01, 0x02, 0xFF}
	var standard, uri []string
	for _, b := range appendChecksum(data) {
		standard = append(standard, words[b])
		uri = append(uri, words[b])
	}
	got, err := Decode(strings.Join(standard, " "))
	if err != nil {
		t.Fatalf("standard style decode: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("standard style mismatch: got %x want %x", got, data)
	}
	got, err = Decode(strings.Join(uri, "-"))
	if err != nil {
		t.Fatalf("uri style decode: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("uri style mismatch: got %x want %x", got, data)
	}
}

func TestTableIsBijection(t *testing.T) {
	if len(wordIndex) != 256 {
		t.Fatalf("expected 256 distinct words, got %d", len(wordIndex))
	}
	if len(minimalIndex) != 256 {
		t.Fatalf("expected 256 distinct minimal pairs, got %d", len(minimalIndex))
	}
}
