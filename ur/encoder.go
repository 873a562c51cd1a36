package ur

import (
	"fmt"
	"strings"

	"github.com/blockchaincommons/bc-ur-go/bytewords"
	"github.com/blockchaincommons/bc-ur-go/fountain"
)

// Encoder formats a UR type and a message as a stream of UR strings
// (component H, encoder side). When the message fits in a single
// fragment, every call to NextPart returns the same single-part UR; a
// multi-part message produces the unbounded fountain stream, one new UR
// string per call.
type Encoder struct {
	urType  string
	message []byte
	fe      *fountain.Encoder
}

// NewEncoder validates urType against the UR type grammar and prepares
// the underlying fountain encoder over message. minFrag defaults to 10
// and maxFrag is required, per spec.md §6's configuration surface.
func NewEncoder(urType string, message []byte, minFrag, maxFrag int, firstSeqNum uint32) (*Encoder, error) {
	if err := validateType(urType); err != nil {
		return nil, err
	}
	if minFrag <= 0 {
		minFrag = 10
	}

	fe, err := fountain.NewEncoder(message, minFrag, maxFrag, firstSeqNum)
	if err != nil {
		return nil, wrapError(KindInvalidFragment, err, "constructing fountain encoder")
	}

	return &Encoder{urType: urType, message: message, fe: fe}, nil
}

// IsSinglePart reports whether the message fits in one fragment.
func (e *Encoder) IsSinglePart() bool {
	return e.fe.IsSinglePart()
}

// SeqLen returns N, the fountain fragment count.
func (e *Encoder) SeqLen() int {
	return e.fe.SeqLen()
}

// Type returns the UR type this encoder was constructed with.
func (e *Encoder) Type() string {
	return e.urType
}

// NextPart renders the next UR string. In single-part mode it always
// renders the same 2-component UR (spec.md §4.H); in multi-part mode it
// advances the fountain stream and renders a fresh 3-component UR.
func (e *Encoder) NextPart() (string, error) {
	if e.fe.IsSinglePart() {
		body := bytewords.Encode(e.message)
		return strings.ToUpper(fmt.Sprintf("ur:%s/%s", e.urType, body)), nil
	}

	p := e.fe.NextPart()
	frame, err := encodeFrame(p)
	if err != nil {
		return "", wrapError(KindResourceExhausted, err, "encoding fountain frame")
	}
	body := bytewords.Encode(frame)
	return strings.ToUpper(fmt.Sprintf("ur:%s/%d-%d/%s", e.urType, p.SeqNum, p.SeqLen, body)), nil
}
