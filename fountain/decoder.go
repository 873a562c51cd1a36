package fountain

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/blockchaincommons/bc-ur-go/crc32check"
)

// ReductionStrategy selects whether the decoder performs the optional
// cross-reduction sweep described in spec.md §4.G / §9 Open Question (a).
// Both strategies are correct; they differ only in how many parts are
// typically needed before completion.
type ReductionStrategy int

const (
	StrategyPlain ReductionStrategy = iota
	StrategyCrossReduce
)

// Resource bounds (spec.md §4.G "Resource bounds"), chosen for embedded
// devices. Compile-time constants, not configurable (spec.md §6).
const (
	MaxMixedParts        = 256
	MaxDuplicateTracking = 512
)

// crossReduceSweepsPerReceive bounds the optional cross-reduction pass to
// at most this many sweeps within a single Receive call.
const crossReduceSweepsPerReceive = 7

// ErrChecksumMismatch is the terminal failure recorded when a fully
// reassembled message fails its CRC-32 check (spec.md §7 InvalidChecksum).
var ErrChecksumMismatch = errors.New("fountain: reassembled message failed checksum verification")

type decoderResult int

const (
	resultPending decoderResult = iota
	resultSuccess
	resultFailure
)

// mixedPart is the decoder's internal representation of both "simple"
// (len(indexes)==1) and "mixed" (len(indexes)>=2) parts — spec.md §3
// "Decoder part". indexes is always kept sorted ascending.
type mixedPart struct {
	indexes []int
	data    []byte
}

// Decoder performs the online fountain reassembly described in spec.md
// §4.G — the core of the core. It is single-threaded and synchronous: no
// call blocks, and every Receive runs the reduction loop to completion
// before returning (spec.md §5).
type Decoder struct {
	strategy ReductionStrategy

	haveHeader bool
	checksum   uint32
	messageLen int
	seqLen     int
	fragLen    int
	sampler    *aliasSampler

	simpleParts map[int][]byte
	mixedParts  map[string]*mixedPart
	seenHashes  map[uint32]bool

	queue []*mixedPart

	lastSeqNum  uint32
	hasReceived bool

	result        decoderResult
	resultMessage []byte
	resultErr     error

	processedCount int

	crossReduceBudget int
}

// NewDecoder returns an empty decoder with no expected metadata yet.
func NewDecoder(strategy ReductionStrategy) *Decoder {
	return &Decoder{strategy: strategy}
}

// IsComplete reports whether a terminal result (success or failure) has
// been reached.
func (d *Decoder) IsComplete() bool {
	return d.result != resultPending
}

// IsSuccess reports whether the terminal result is a verified payload.
func (d *Decoder) IsSuccess() bool {
	return d.result == resultSuccess
}

// ExpectedPartCount returns N, captured from the first received part (0
// before any part has been received).
func (d *Decoder) ExpectedPartCount() int {
	return d.seqLen
}

// ProcessedPartsCount returns the number of admitted (non-duplicate,
// non-same-seq) parts seen so far.
func (d *Decoder) ProcessedPartsCount() int {
	return d.processedCount
}

// ResultMessage returns the reassembled payload once IsSuccess() is true.
// It returns an error if the decoder has not completed, or completed with
// a checksum failure.
func (d *Decoder) ResultMessage() ([]byte, error) {
	switch d.result {
	case resultSuccess:
		return d.resultMessage, nil
	case resultFailure:
		return nil, d.resultErr
	default:
		return nil, errors.New("fountain: decoder has not completed")
	}
}

// ResultMessageLen returns the message length captured from the first
// part, valid even before completion.
func (d *Decoder) ResultMessageLen() int {
	return d.messageLen
}

// EstimatedPercentComplete implements spec.md §4.G "Progress reporting":
// min(0.99, processed/(N*1.75)) while incomplete, 1.0 once complete. The
// 1.75 constant is reporting-only.
func (d *Decoder) EstimatedPercentComplete() float64 {
	if d.IsComplete() {
		return 1.0
	}
	if d.seqLen == 0 {
		return 0
	}
	v := float64(d.processedCount) / (float64(d.seqLen) * 1.75)
	if v > 0.99 {
		v = 0.99
	}
	return v
}

// Receive ingests one encoder part (spec.md §4.G "Public contract"). It
// returns (true, nil) when the part was accepted or benignly ignored
// (duplicate, same-seq repeat), and (false, err) on a hard error:
// malformed/incompatible metadata. Once IsComplete() is true, every
// subsequent call is a no-op that returns (false, nil) and mutates nothing
// (invariant I6).
func (d *Decoder) Receive(part Part) (bool, error) {
	if d.IsComplete() {
		return false, nil
	}

	if err := d.admitHeader(part); err != nil {
		return false, err
	}

	// Same-part suppression: a stuck reader re-emitting one frame.
	if d.hasReceived && part.SeqNum == d.lastSeqNum {
		return true, nil
	}
	d.lastSeqNum = part.SeqNum
	d.hasReceived = true

	indexes := chooseFragmentIndexesWithSampler(part.SeqNum, d.seqLen, d.checksum, d.sampler)

	h := fnv1aIndexes(indexes)
	if d.seenHashes[h] {
		return true, nil
	}
	if len(d.seenHashes) < MaxDuplicateTracking {
		d.seenHashes[h] = true
	}

	data := make([]byte, len(part.Data))
	copy(data, part.Data)
	d.enqueue(&mixedPart{indexes: indexes, data: data})
	d.processedCount++

	d.crossReduceBudget = 0
	if d.strategy == StrategyCrossReduce {
		d.crossReduceBudget = crossReduceSweepsPerReceive
	}
	d.drainQueue()

	return true, nil
}

func (d *Decoder) admitHeader(part Part) error {
	if !d.haveHeader {
		if part.SeqLen == 0 {
			return errors.New("fountain: part has seq_len 0")
		}
		d.checksum = part.Checksum
		d.messageLen = int(part.MessageLen)
		d.seqLen = int(part.SeqLen)
		d.fragLen = len(part.Data)
		d.sampler = buildDegreeSampler(d.seqLen)
		d.simpleParts = make(map[int][]byte, d.seqLen)
		d.mixedParts = make(map[string]*mixedPart)
		bucketSize := d.seqLen * 4
		if bucketSize < 64 {
			bucketSize = 64
		}
		d.seenHashes = make(map[uint32]bool, bucketSize)
		d.haveHeader = true
		return nil
	}

	if part.Checksum != d.checksum || int(part.MessageLen) != d.messageLen ||
		int(part.SeqLen) != d.seqLen || len(part.Data) != d.fragLen {
		return errors.New("fountain: part is incompatible with previously captured metadata")
	}
	return nil
}

func (d *Decoder) enqueue(p *mixedPart) {
	d.queue = append(d.queue, p)
}

func (d *Decoder) dequeue() *mixedPart {
	p := d.queue[0]
	d.queue = d.queue[1:]
	return p
}

// drainQueue runs the online reduction loop (spec.md §4.G) until the queue
// empties or the decoder reaches a terminal state.
func (d *Decoder) drainQueue() {
	for len(d.queue) > 0 && !d.IsComplete() {
		p := d.dequeue()
		if len(p.indexes) == 1 {
			d.processSimple(p)
		} else {
			d.processMixed(p)
		}
	}
}

func (d *Decoder) processSimple(p *mixedPart) {
	i := p.indexes[0]
	if _, already := d.simpleParts[i]; already {
		return
	}
	d.simpleParts[i] = p.data

	if len(d.simpleParts) == d.seqLen {
		d.finalize()
		return
	}
	d.reduceMixedBy(p)
}

func (d *Decoder) processMixed(p *mixedPart) {
	// 3a: reduce against every known simple part.
	for _, j := range append([]int(nil), p.indexes...) {
		if data, ok := d.simpleParts[j]; ok {
			xorInto(p.data, data)
			p.indexes = removeInt(p.indexes, j)
		}
	}

	// 3b: reduce against every known mixed part that is a strict subset.
	for _, other := range d.mixedParts {
		if isStrictSubset(other.indexes, p.indexes) {
			xorInto(p.data, other.data)
			p.indexes = differenceSorted(p.indexes, other.indexes)
		}
	}

	if len(p.indexes) == 0 {
		return
	}
	if len(p.indexes) == 1 {
		d.enqueue(p)
		return
	}

	key := mixedKey(p.indexes)
	if _, exists := d.mixedParts[key]; exists {
		return
	}
	if len(d.mixedParts) >= MaxMixedParts {
		return
	}
	d.mixedParts[key] = p
	d.reduceMixedBy(p)

	if d.strategy == StrategyCrossReduce && d.crossReduceBudget > 0 {
		d.crossReduceBudget--
		d.crossReduceSweep()
	}
}

// reduceMixedBy uses pivot (simple or mixed) as a Gaussian-elimination
// pivot row against every currently stored mixed part, reducing any whose
// index set is a strict superset of pivot's.
func (d *Decoder) reduceMixedBy(pivot *mixedPart) {
	for key, other := range d.mixedParts {
		if !isStrictSubset(pivot.indexes, other.indexes) {
			continue
		}
		delete(d.mixedParts, key)
		xorInto(other.data, pivot.data)
		other.indexes = differenceSorted(other.indexes, pivot.indexes)

		switch len(other.indexes) {
		case 0:
			// discard empty byproduct
		case 1:
			if _, already := d.simpleParts[other.indexes[0]]; !already {
				d.enqueue(other)
			}
		default:
			newKey := mixedKey(other.indexes)
			if _, collide := d.mixedParts[newKey]; !collide {
				d.mixedParts[newKey] = other
			}
		}
	}
}

// crossReduceSweep is the optional performance optimization from spec.md
// §4.G: one pairwise symmetric-difference pass over the mixed-part store,
// keeping a combination only when it is strictly smaller than both inputs.
func (d *Decoder) crossReduceSweep() {
	keys := make([]string, 0, len(d.mixedParts))
	for k := range d.mixedParts {
		keys = append(keys, k)
	}
	for i := 0; i < len(keys); i++ {
		a, ok := d.mixedParts[keys[i]]
		if !ok {
			continue
		}
		for j := i + 1; j < len(keys); j++ {
			b, ok := d.mixedParts[keys[j]]
			if !ok {
				continue
			}
			if !intersects(a.indexes, b.indexes) {
				continue
			}
			symIdx := symmetricDifference(a.indexes, b.indexes)
			if len(symIdx) >= len(a.indexes) || len(symIdx) >= len(b.indexes) {
				continue
			}
			data := make([]byte, len(a.data))
			copy(data, a.data)
			xorInto(data, b.data)
			d.admitCrossReduced(&mixedPart{indexes: symIdx, data: data})
		}
	}
}

func (d *Decoder) admitCrossReduced(p *mixedPart) {
	switch len(p.indexes) {
	case 0:
		return
	case 1:
		if _, already := d.simpleParts[p.indexes[0]]; !already {
			d.enqueue(p)
		}
	default:
		key := mixedKey(p.indexes)
		if _, exists := d.mixedParts[key]; exists {
			return
		}
		if len(d.mixedParts) >= MaxMixedParts {
			return
		}
		d.mixedParts[key] = p
	}
}

// finalize concatenates the N simple parts and verifies the reassembled
// payload's checksum (spec.md §4.G "Finalization").
func (d *Decoder) finalize() {
	buf := make([]byte, 0, d.seqLen*d.fragLen)
	for i := 0; i < d.seqLen; i++ {
		buf = append(buf, d.simpleParts[i]...)
	}
	if len(buf) < d.messageLen {
		d.result = resultFailure
		d.resultErr = errors.New("fountain: reassembled payload shorter than message_len")
		return
	}
	candidate := buf[:d.messageLen]
	if crc32check.Verify(candidate, d.checksum) {
		d.result = resultSuccess
		d.resultMessage = candidate
		return
	}
	d.result = resultFailure
	d.resultErr = ErrChecksumMismatch
}

func xorInto(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

func removeInt(s []int, v int) []int {
	out := make([]int, 0, len(s)-1)
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

// isStrictSubset reports whether a is a strict subset of b. Both must be
// sorted ascending.
func isStrictSubset(a, b []int) bool {
	if len(a) >= len(b) {
		return false
	}
	ai := 0
	for bi := 0; bi < len(b) && ai < len(a); bi++ {
		if a[ai] == b[bi] {
			ai++
		}
	}
	return ai == len(a)
}

// differenceSorted returns b \ a (both sorted ascending, a subset of b).
func differenceSorted(b, a []int) []int {
	out := make([]int, 0, len(b)-len(a))
	ai := 0
	for _, x := range b {
		if ai < len(a) && a[ai] == x {
			ai++
			continue
		}
		out = append(out, x)
	}
	return out
}

func intersects(a, b []int) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return true
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return false
}

func symmetricDifference(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			i++
			j++
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		default:
			out = append(out, b[j])
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	sort.Ints(out)
	return out
}

// mixedKey derives the mixed-parts map key from a sorted index set,
// grounded on seedhammer.com/bc/fountain's mixedKey helper.
func mixedKey(indexes []int) string {
	buf := make([]byte, 0, len(indexes)*5)
	for i, idx := range indexes {
		if i > 0 {
			buf = append(buf, '|')
		}
		buf = appendInt(buf, idx)
	}
	return string(buf)
}

func appendInt(buf []byte, v int) []byte {
	if v == 0 {
		return append(buf, '0')
	}
	start := len(buf)
	for v > 0 {
		buf = append(buf, byte('0'+v%10))
		v /= 10
	}
	// reverse the digits just appended
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}

// fnv1aIndexes hashes a sorted index set with FNV-1a over each index's
// little-endian byte representation, for cheap duplicate suppression
// (spec.md §4.G "Admission"). This hash is internal bookkeeping only and
// is not part of any wire contract.
func fnv1aIndexes(indexes []int) uint32 {
	const offset32 = 2166136261
	const prime32 = 16777619
	h := uint32(offset32)
	for _, idx := range indexes {
		b := [4]byte{byte(idx), byte(idx >> 8), byte(idx >> 16), byte(idx >> 24)}
		for _, by := range b {
			h ^= uint32(by)
			h *= prime32
		}
	}
	return h
}
