package ur

import (
	"bytes"
	"encoding/hex"
	"math/rand"
	"strings"
	"testing"

	"github.com/blockchaincommons/bc-ur-go/fountain"
)

// TestScenarioMinimalSinglePart is S1.
func TestScenarioMinimalSinglePart(t *testing.T) {
	payload, err := hex.DecodeString("414243")
	if err != nil {
		t.Fatalf("hex.DecodeString: %v", err)
	}

	enc, err := NewEncoder("bytes", payload, 10, 200, 0)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	if !enc.IsSinglePart() {
		t.Fatal("expected single-part encoding for a 3-byte payload")
	}
	urStr, err := enc.NextPart()
	if err != nil {
		t.Fatalf("NextPart: %v", err)
	}

	lower := strings.ToLower(urStr)
	if !strings.HasPrefix(lower, "ur:bytes/") {
		t.Fatalf("UR = %q, want a ur:bytes/... string", urStr)
	}
	body := urStr[len("ur:bytes/"):]
	if len(body) != 14 {
		t.Fatalf("body length = %d, want 14 (7 bytes * 2 chars/byte)", len(body))
	}

	dec := NewDecoder(fountain.StrategyPlain)
	ok, err := dec.Receive(urStr)
	if !ok || err != nil {
		t.Fatalf("Receive: ok=%v err=%v", ok, err)
	}
	if !dec.IsComplete() || !dec.IsSuccess() {
		t.Fatal("decoder did not complete successfully")
	}
	got, err := dec.ResultMessage()
	if err != nil {
		t.Fatalf("ResultMessage: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("decoded payload = %x, want %x", got, payload)
	}
}

// TestScenarioMultiPartPSBTRoundTrip is S3, using a synthetic 169-byte
// payload standing in for the fixture (the encoder/decoder are payload
// agnostic at this layer; registry_test.go exercises the CBOR PSBT shape).
func TestScenarioMultiPartPSBTRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte{0x01, 0x02, 0x03, 0x04}, 43)[:169]

	enc, err := NewEncoder("crypto-psbt", payload, 10, 50, 0)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	if enc.IsSinglePart() {
		t.Fatal("expected multi-part encoding with max_frag=50 for a 169-byte payload")
	}
	if enc.SeqLen() != 4 {
		t.Fatalf("seqLen = %d, want 4 (ceil(169/50))", enc.SeqLen())
	}

	parts := make([]string, enc.SeqLen())
	for i := range parts {
		p, err := enc.NextPart()
		if err != nil {
			t.Fatalf("NextPart: %v", err)
		}
		parts[i] = p
	}

	dec := NewDecoder(fountain.StrategyPlain)
	for _, p := range parts {
		if _, err := dec.Receive(p); err != nil {
			t.Fatalf("Receive: %v", err)
		}
	}
	if !dec.IsComplete() || !dec.IsSuccess() {
		t.Fatal("decoder did not complete on the systematic-in-order feed")
	}
	got, _ := dec.ResultMessage()
	if !bytes.Equal(got, payload) {
		t.Fatal("reassembled payload mismatch")
	}

	// Feeding the same four systematic parts in reverse order must also
	// complete successfully.
	decRev := NewDecoder(fountain.StrategyPlain)
	for i := len(parts) - 1; i >= 0; i-- {
		if _, err := decRev.Receive(parts[i]); err != nil {
			t.Fatalf("Receive (reverse): %v", err)
		}
	}
	if !decRev.IsComplete() || !decRev.IsSuccess() {
		t.Fatal("decoder did not complete on the reverse-order feed")
	}
	gotRev, _ := decRev.ResultMessage()
	if !bytes.Equal(gotRev, payload) {
		t.Fatal("reverse-order reassembled payload mismatch")
	}
}

// TestScenarioFountainWithLoss is S5.
func TestScenarioFountainWithLoss(t *testing.T) {
	payload := make([]byte, 3000)
	rng := rand.New(rand.NewSource(42))
	rng.Read(payload)

	enc, err := NewEncoder("bytes", payload, 10, 100, 0)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	dec := NewDecoder(fountain.StrategyPlain)

	for i := 0; i < 200 && !dec.IsComplete(); i++ {
		p, err := enc.NextPart()
		if err != nil {
			t.Fatalf("NextPart: %v", err)
		}
		if rng.Float64() < 0.4 {
			continue // simulated loss, p=0.6 delivery
		}
		if _, err := dec.Receive(p); err != nil {
			t.Fatalf("Receive: %v", err)
		}
	}

	if !dec.IsComplete() || !dec.IsSuccess() {
		t.Fatal("decoder did not complete within 200 parts at a 0.6 delivery rate")
	}
	got, _ := dec.ResultMessage()
	if !bytes.Equal(got, payload) {
		t.Fatal("recovered payload does not match the input byte-for-byte")
	}
}

// TestScenarioBadCRCRejection is S6.
func TestScenarioBadCRCRejection(t *testing.T) {
	payload := bytes.Repeat([]byte("corrupt one part, keep the rest"), 50)

	enc, err := NewEncoder("bytes", payload, 20, 60, 0)
	if err != nil {
		t.Fatalf("NewEncoder: %v", err)
	}
	if enc.IsSinglePart() {
		t.Fatal("expected a multi-part stream for this scenario")
	}

	good, err := enc.NextPart()
	if err != nil {
		t.Fatalf("NextPart: %v", err)
	}
	tampered := flipOneNibble(t, good)

	dec := NewDecoder(fountain.StrategyPlain)
	ok, err := dec.Receive(tampered)
	if ok || err == nil {
		t.Fatalf("expected rejection of a tampered part, got ok=%v err=%v", ok, err)
	}
	urErr, is := err.(*Error)
	if !is || urErr.Kind != KindInvalidFragment {
		t.Fatalf("expected KindInvalidFragment, got %v", err)
	}

	// The decoder must continue to accept untampered parts and ultimately
	// complete: the intact copy of the tampered part plus the rest of the
	// systematic run cover every fragment.
	if _, err := dec.Receive(good); err != nil {
		t.Fatalf("Receive (untampered copy): %v", err)
	}
	for i := 0; i < enc.SeqLen()-1 && !dec.IsComplete(); i++ {
		p, err := enc.NextPart()
		if err != nil {
			t.Fatalf("NextPart: %v", err)
		}
		if _, err := dec.Receive(p); err != nil {
			t.Fatalf("Receive: %v", err)
		}
	}
	if !dec.IsComplete() || !dec.IsSuccess() {
		t.Fatal("decoder did not recover after rejecting the tampered part")
	}
}

func flipOneNibble(t *testing.T, urStr string) string {
	t.Helper()
	idx := strings.LastIndex(urStr, "/")
	if idx < 0 || idx == len(urStr)-1 {
		t.Fatalf("no body to tamper with in %q", urStr)
	}
	bodyStart := idx + 1
	flipAt := bodyStart + len(urStr[bodyStart:])/2
	runes := []rune(urStr)
	c := runes[flipAt]
	switch {
	case c == 'A':
		runes[flipAt] = 'B'
	default:
		runes[flipAt] = 'A'
	}
	return string(runes)
}
