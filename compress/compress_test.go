package compress

import (
	"bytes"
	"testing"
)

func TestRoundTripRawAndCompressible(t *testing.T) {
	cases := [][]byte{
		{},
		{0x01, 0x02, 0x03},
		bytes.Repeat([]byte{0xAA}, 4000),
		[]byte("the quick brown fox jumps over the lazy dog, repeated: the quick brown fox jumps over the lazy dog"),
	}
	for _, data := range cases {
		enc := Compress(data)
		got, err := Decompress(enc)
		if err != nil {
			t.Fatalf("Decompress: %v", err)
		}
		if !bytes.Equal(got, data) {
			t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(data))
		}
	}
}

func TestCompressPicksSmallerRepresentation(t *testing.T) {
	data := bytes.Repeat([]byte{0x42}, 10000)
	enc := Compress(data)
	if len(enc) >= len(data) {
		t.Fatalf("expected snappy to shrink a highly repetitive payload, got %d bytes for %d input", len(enc), len(data))
	}
	if enc[0] != tagSnappy {
		t.Fatalf("expected snappy tag, got 0x%02x", enc[0])
	}
}

func TestDecompressRejectsEmptyAndUnknownTag(t *testing.T) {
	if _, err := Decompress(nil); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := Decompress([]byte{0xFF, 0x01}); err == nil {
		t.Fatal("expected error for unknown tag")
	}
}
