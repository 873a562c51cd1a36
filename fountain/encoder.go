package fountain

import (
	"github.com/pkg/errors"

	"github.com/blockchaincommons/bc-ur-go/crc32check"
)

// Part is the encoder's 5-tuple output (spec.md §3 "Encoder part").
type Part struct {
	SeqNum     uint32
	SeqLen     uint32
	MessageLen uint32
	Checksum   uint32
	Data       []byte
}

// Encoder partitions a payload into fixed-length fragments and emits an
// unbounded stream of XOR-combined parts (component F).
type Encoder struct {
	fragments   [][]byte
	checksum    uint32
	messageLen  int
	fragmentLen int
	seqNum      uint32
	lastIndexes []int
}

// NewEncoder partitions message into fragments sized per spec.md §3
// ("Fragment layout"): the smallest L >= minFrag such that
// ceil(|M|/L) <= |M|/minFrag and L <= maxFrag. firstSeqNum sets the seqNum
// the first call to NextPart will emit (NextPart increments before use, so
// passing 0 emits seqNum 1 first, matching spec.md §6's default).
func NewEncoder(message []byte, minFrag, maxFrag int, firstSeqNum uint32) (*Encoder, error) {
	if len(message) == 0 {
		return nil, errors.New("fountain: message must not be empty")
	}
	if minFrag <= 0 || maxFrag <= 0 || minFrag > maxFrag {
		return nil, errors.Errorf("fountain: invalid fragment bounds [%d,%d]", minFrag, maxFrag)
	}

	fragLen, err := chooseFragmentLen(len(message), minFrag, maxFrag)
	if err != nil {
		return nil, err
	}

	n := (len(message) + fragLen - 1) / fragLen
	fragments := make([][]byte, n)
	for i := 0; i < n; i++ {
		frag := make([]byte, fragLen)
		start := i * fragLen
		end := start + fragLen
		if end > len(message) {
			end = len(message)
		}
		copy(frag, message[start:end])
		fragments[i] = frag
	}

	return &Encoder{
		fragments:   fragments,
		checksum:    crc32check.Checksum(message),
		messageLen:  len(message),
		fragmentLen: fragLen,
		seqNum:      firstSeqNum,
	}, nil
}

// chooseFragmentLen finds L per spec.md §3: the smallest integer >= minFrag
// such that ceil(messageLen/L) <= messageLen/minFrag and L <= maxFrag,
// computed via the equivalent k-search the spec describes: iterate
// k=1,2,..., set L=ceil(messageLen/k), stop at the first k with
// L<=maxFrag. The search is bounded to k<=messageLen/minFrag, which is
// what keeps L from dropping below minFrag. If messageLen itself is
// smaller than minFrag the bound is 0 and the message becomes a single,
// zero-padded fragment of length maxFrag. Otherwise, if no k in range
// ever yields L<=maxFrag, no valid L exists and that's an error, per
// spec.md §4.F ("fails if no L satisfies the constraints") — not a
// silent fragment length over the caller's max_frag.
func chooseFragmentLen(messageLen, minFrag, maxFrag int) (int, error) {
	if minFrag <= 0 || maxFrag < minFrag {
		return 0, errors.Errorf("fountain: invalid fragment bounds [%d,%d]", minFrag, maxFrag)
	}
	maxFragmentCount := messageLen / minFrag
	if maxFragmentCount == 0 {
		return maxFrag, nil
	}
	for k := 1; k <= maxFragmentCount; k++ {
		l := ceilDiv(messageLen, k)
		if l <= maxFrag {
			return l, nil
		}
	}
	return 0, errors.Errorf("fountain: no fragment length in [%d,%d] satisfies message length %d", minFrag, maxFrag, messageLen)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// SeqLen returns N, the number of source fragments.
func (e *Encoder) SeqLen() int {
	return len(e.fragments)
}

// IsSinglePart reports whether the message fits in exactly one fragment.
func (e *Encoder) IsSinglePart() bool {
	return e.SeqLen() == 1
}

// FragmentLen returns L, the per-fragment byte length.
func (e *Encoder) FragmentLen() int {
	return e.fragmentLen
}

// MessageLen returns the original payload length.
func (e *Encoder) MessageLen() int {
	return e.messageLen
}

// Checksum returns the CRC-32 of the original payload.
func (e *Encoder) Checksum() uint32 {
	return e.checksum
}

// NextPart increments the sequence counter and emits the corresponding
// part. The sequence is conceptually infinite; NextPart never fails.
func (e *Encoder) NextPart() Part {
	e.seqNum++
	indexes := chooseFragmentIndexes(e.seqNum, e.SeqLen(), e.checksum)
	e.lastIndexes = indexes

	data := make([]byte, e.fragmentLen)
	for _, idx := range indexes {
		xorInto(data, e.fragments[idx])
	}

	return Part{
		SeqNum:     e.seqNum,
		SeqLen:     uint32(e.SeqLen()),
		MessageLen: uint32(e.messageLen),
		Checksum:   e.checksum,
		Data:       data,
	}
}

// LastIndexes returns the fragment indexes mixed into the most recent
// NextPart call. Observational only; not semantically significant.
func (e *Encoder) LastIndexes() []int {
	return e.lastIndexes
}

// Reset re-arms the encoder to emit from firstSeqNum again without
// re-partitioning the payload, for restarting an animation loop.
func (e *Encoder) Reset(firstSeqNum uint32) {
	e.seqNum = firstSeqNum
	e.lastIndexes = nil
}

func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}
