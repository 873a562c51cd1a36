package ur

import (
	"strings"

	"github.com/blockchaincommons/bc-ur-go/bytewords"
	"github.com/blockchaincommons/bc-ur-go/fountain"
)

// Decoder parses a stream of UR strings, either a single 2-component UR
// or a multi-part fountain stream of 3-component URs (component H,
// decoder side). Once a terminal result is reached, further Receive calls
// are no-ops, mirroring the fountain decoder's own terminal stability
// (spec.md §7).
type Decoder struct {
	strategy fountain.ReductionStrategy

	typeSet bool
	urType  string

	fd *fountain.Decoder

	singleDone    bool
	singleMessage []byte
}

// NewDecoder returns an empty decoder. strategy selects the fountain
// decoder's reduction strategy for multi-part streams.
func NewDecoder(strategy fountain.ReductionStrategy) *Decoder {
	return &Decoder{strategy: strategy}
}

// Type returns the UR type captured from the first part, or "" before any
// part has been received.
func (d *Decoder) Type() string {
	return d.urType
}

// IsComplete reports whether a terminal result has been reached.
func (d *Decoder) IsComplete() bool {
	if d.singleDone {
		return true
	}
	return d.fd != nil && d.fd.IsComplete()
}

// IsSuccess reports whether the terminal result is a verified payload.
func (d *Decoder) IsSuccess() bool {
	if d.singleDone {
		return true
	}
	return d.fd != nil && d.fd.IsSuccess()
}

// ExpectedPartCount returns N once known (1 for a single-part stream,
// captured from the first part for a multi-part stream; 0 before then).
func (d *Decoder) ExpectedPartCount() int {
	if d.singleDone {
		return 1
	}
	if d.fd == nil {
		return 0
	}
	return d.fd.ExpectedPartCount()
}

// ProcessedPartsCount returns the number of admitted parts.
func (d *Decoder) ProcessedPartsCount() int {
	if d.singleDone {
		return 1
	}
	if d.fd == nil {
		return 0
	}
	return d.fd.ProcessedPartsCount()
}

// EstimatedPercentComplete mirrors the fountain decoder's progress metric;
// a single-part stream is always 0 or 1.
func (d *Decoder) EstimatedPercentComplete() float64 {
	if d.singleDone {
		return 1.0
	}
	if d.fd == nil {
		return 0
	}
	return d.fd.EstimatedPercentComplete()
}

// ResultMessage returns the decoded payload once IsSuccess() is true.
func (d *Decoder) ResultMessage() ([]byte, error) {
	if d.singleDone {
		return d.singleMessage, nil
	}
	if d.fd == nil {
		return nil, newError(KindInvalidFragment, "no parts received yet")
	}
	msg, err := d.fd.ResultMessage()
	if err != nil {
		return nil, wrapError(KindInvalidChecksum, err, "fountain reassembly")
	}
	return msg, nil
}

// Receive parses and ingests one UR string (spec.md §4.H "Decoder (UR
// layer)"). It returns (true, nil) on acceptance or benign ignoring, and
// (false, err) on a hard, per-part error. Once IsComplete() is true,
// Receive is a no-op.
func (d *Decoder) Receive(urString string) (bool, error) {
	if d.IsComplete() {
		return false, nil
	}

	lower := strings.ToLower(urString)
	if !strings.HasPrefix(lower, "ur:") {
		return false, newError(KindInvalidScheme, "missing \"ur:\" scheme prefix")
	}
	rest := lower[len("ur:"):]
	segments := strings.Split(rest, "/")
	if len(segments) != 2 && len(segments) != 3 {
		return false, newError(KindInvalidPathLength, "expected 1 or 2 path components after the type")
	}

	urType := segments[0]
	if err := validateType(urType); err != nil {
		return false, err
	}
	if !d.typeSet {
		d.urType = urType
		d.typeSet = true
	} else if urType != d.urType {
		return false, newError(KindInvalidType, "type \""+urType+"\" does not match prior part type \""+d.urType+"\"")
	}

	if len(segments) == 2 {
		return d.receiveSinglePart(segments[1])
	}
	return d.receiveMultiPart(segments[1], segments[2])
}

func (d *Decoder) receiveSinglePart(body string) (bool, error) {
	payload, err := bytewords.Decode(body)
	if err != nil {
		return false, wrapError(KindInvalidFragment, err, "decoding single-part body")
	}
	d.singleMessage = payload
	d.singleDone = true
	return true, nil
}

func (d *Decoder) receiveMultiPart(seqComponent, body string) (bool, error) {
	if _, _, err := parseSeq(seqComponent); err != nil {
		return false, err
	}

	frame, err := bytewords.Decode(body)
	if err != nil {
		return false, wrapError(KindInvalidFragment, err, "decoding multi-part body")
	}
	part, err := decodeFrame(frame)
	if err != nil {
		return false, wrapError(KindInvalidFragment, err, "decoding CBOR frame")
	}

	if d.fd == nil {
		d.fd = fountain.NewDecoder(d.strategy)
	}
	ok, ferr := d.fd.Receive(part)
	if ferr != nil {
		return false, wrapError(KindInvalidFragment, ferr, "fountain admission")
	}
	return ok, nil
}
