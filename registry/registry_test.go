package registry

import (
	"bytes"
	"testing"

	"github.com/blockchaincommons/bc-ur-go/cborlite"
)

func TestBytesRoundTrip(t *testing.T) {
	cases := [][]byte{
		{},
		{0x01, 0x02, 0x03},
		bytes.Repeat([]byte{0xCD}, 5000),
	}
	for _, data := range cases {
		enc, err := Bytes{Data: data}.Encode()
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		got, err := DecodeBytes(enc)
		if err != nil {
			t.Fatalf("DecodeBytes: %v", err)
		}
		if !bytes.Equal(got.Data, data) {
			t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got.Data), len(data))
		}
	}
}

func TestPSBTRoundTrip(t *testing.T) {
	psbt := bytes.Repeat([]byte{0x01, 0x02, 0x03, 0x04}, 43)[:167]
	enc, err := PSBT{Data: psbt}.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// "58 A7" is the CBOR header for a 167-byte bstr: major 2, 1-byte
	// length marker 0x58, length 0xA7.
	if enc[0] != 0x58 || enc[1] != 0xA7 {
		t.Fatalf("header = %x, want 58a7", enc[:2])
	}
	got, err := DecodePSBT(enc)
	if err != nil {
		t.Fatalf("DecodePSBT: %v", err)
	}
	if !bytes.Equal(got.Data, psbt) {
		t.Fatal("round trip mismatch")
	}
}

// TestScenarioBIP39TwelveWord is S4.
func TestScenarioBIP39TwelveWord(t *testing.T) {
	words := []string{
		"shield", "group", "erode", "wink", "privacy", "flush",
		"legend", "pencil", "swear", "voice", "half", "glove",
	}
	b := BIP39{Words: words, Lang: "en"}
	enc, err := b.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodeBIP39(enc)
	if err != nil {
		t.Fatalf("DecodeBIP39: %v", err)
	}
	if len(got.Words) != len(words) {
		t.Fatalf("word count = %d, want %d", len(got.Words), len(words))
	}
	for i, w := range words {
		if got.Words[i] != w {
			t.Fatalf("word %d = %q, want %q", i, got.Words[i], w)
		}
	}
	if got.Lang != "en" {
		t.Fatalf("lang = %q, want \"en\"", got.Lang)
	}
}

func TestBIP39RejectsEmptyWords(t *testing.T) {
	if _, err := (BIP39{}).Encode(); err == nil {
		t.Fatal("expected error for zero words")
	}
}

func TestHDKeyRoundTrip(t *testing.T) {
	k := HDKey{
		IsPrivate:         true,
		KeyData:           bytes.Repeat([]byte{0x02}, 33),
		ChainCode:         bytes.Repeat([]byte{0x03}, 32),
		ParentFingerprint: 0xDEADBEEF,
	}
	encVal, err := k.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	raw, err := cborlite.Encode(encVal)
	if err != nil {
		t.Fatalf("cborlite.Encode: %v", err)
	}
	got, err := DecodeHDKey(raw)
	if err != nil {
		t.Fatalf("DecodeHDKey: %v", err)
	}
	if got.IsMaster != k.IsMaster || got.IsPrivate != k.IsPrivate {
		t.Fatalf("flags mismatch: got %+v, want %+v", got, k)
	}
	if !bytes.Equal(got.KeyData, k.KeyData) || !bytes.Equal(got.ChainCode, k.ChainCode) {
		t.Fatal("key material mismatch")
	}
	if got.ParentFingerprint != k.ParentFingerprint {
		t.Fatalf("parent fingerprint = %x, want %x", got.ParentFingerprint, k.ParentFingerprint)
	}
}

func TestKeyPathRoundTrip(t *testing.T) {
	p := KeyPath{
		Components: []PathComponent{
			{Index: 44, Hardened: true},
			{Index: 0, Hardened: true},
			{Index: 0, Hardened: true},
			{Index: 0, Hardened: false},
			{Index: 1, Hardened: false},
		},
		SourceFingerprint: 0x12345678,
		Depth:             5,
	}
	encVal, err := p.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	raw, err := cborlite.Encode(encVal)
	if err != nil {
		t.Fatalf("cborlite.Encode: %v", err)
	}
	got, err := DecodeKeyPath(raw)
	if err != nil {
		t.Fatalf("DecodeKeyPath: %v", err)
	}
	if len(got.Components) != len(p.Components) {
		t.Fatalf("component count = %d, want %d", len(got.Components), len(p.Components))
	}
	for i, c := range p.Components {
		if got.Components[i] != c {
			t.Fatalf("component %d = %+v, want %+v", i, got.Components[i], c)
		}
	}
	if got.SourceFingerprint != p.SourceFingerprint || got.Depth != p.Depth {
		t.Fatal("metadata mismatch")
	}
}

func TestOutputWrappingHDKeyRoundTrip(t *testing.T) {
	k := HDKey{KeyData: bytes.Repeat([]byte{0x02}, 33)}
	keyVal, err := k.Encode()
	if err != nil {
		t.Fatalf("HDKey.Encode: %v", err)
	}
	keyTag := keyVal.(cborlite.Tag)

	out := Output{Expression: ScriptExpression{Tag: 404, Content: keyTag.Content}}
	enc, err := out.Encode()
	if err != nil {
		t.Fatalf("Output.Encode: %v", err)
	}
	got, err := DecodeOutput(enc)
	if err != nil {
		t.Fatalf("DecodeOutput: %v", err)
	}
	if got.Expression.Tag != 404 {
		t.Fatalf("expression tag = %d, want 404", got.Expression.Tag)
	}
	innerKey, err := got.Expression.AsHDKey()
	if err != nil {
		t.Fatalf("AsHDKey: %v", err)
	}
	if !bytes.Equal(innerKey.KeyData, k.KeyData) {
		t.Fatal("wrapped key material mismatch")
	}
}

func TestECKeyRoundTrip(t *testing.T) {
	k := ECKey{IsPrivate: true, Data: bytes.Repeat([]byte{0x07}, 32)}
	encVal, err := k.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	raw, err := cborlite.Encode(encVal)
	if err != nil {
		t.Fatalf("cborlite.Encode: %v", err)
	}
	got, err := DecodeECKey(raw)
	if err != nil {
		t.Fatalf("DecodeECKey: %v", err)
	}
	if got.IsPrivate != k.IsPrivate || !bytes.Equal(got.Data, k.Data) {
		t.Fatal("round trip mismatch")
	}
}
