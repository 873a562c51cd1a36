package fountain

import (
	"encoding/binary"
	"sort"
)

// chooseFragmentIndexes computes the deterministic (seqNum, seqLen,
// checksum) -> index set mapping (component E). The first seqLen parts are
// always systematic (degree 1, identity to fragment seqNum-1); later parts
// draw a degree from a 1/(i+1) distribution and a partial Fisher-Yates
// shuffle, both seeded from sha256(seqNum_be32 || checksum_be32).
//
// Grounded on seedhammer.com/bc/fountain's chooseFragments.
func chooseFragmentIndexes(seqNum uint32, seqLen int, checksum uint32) []int {
	return chooseFragmentIndexesWithSampler(seqNum, seqLen, checksum, nil)
}

// chooseFragmentIndexesWithSampler is chooseFragmentIndexes with an
// optional pre-built degree sampler, so a caller making many calls for the
// same seqLen (the decoder, across every Receive) doesn't rebuild the
// O(seqLen) alias tables each time — spec.md §4.G: "pre-initialize the
// degree alias sampler over N so subsequent indexes(*) calls ... do not
// repeatedly rebuild it." A nil sampler is built on demand.
func chooseFragmentIndexesWithSampler(seqNum uint32, seqLen int, checksum uint32, sampler *aliasSampler) []int {
	if seqNum >= 1 && int(seqNum) <= seqLen {
		return []int{int(seqNum) - 1}
	}

	var seed [8]byte
	binary.BigEndian.PutUint32(seed[0:4], seqNum)
	binary.BigEndian.PutUint32(seed[4:8], checksum)
	rng := newXoshiro256ss(seed[:])

	if sampler == nil {
		sampler = buildDegreeSampler(seqLen)
	}
	degree := sampler.sample(rng) + 1
	return partialShuffle(seqLen, degree, rng)
}

// buildDegreeSampler builds the alias sampler for the degree distribution
// p[i] = 1/(i+1), i=0..seqLen-1.
func buildDegreeSampler(seqLen int) *aliasSampler {
	probs := make([]float64, seqLen)
	for i := range probs {
		probs[i] = 1 / float64(i+1)
	}
	return newAliasSampler(probs)
}

// partialShuffle performs a Fisher-Yates shuffle of [0,seqLen) and returns
// the first count elements, sorted ascending (decoder parts store idx_set
// sorted — spec.md §3).
func partialShuffle(seqLen, count int, rng *xoshiro256ss) []int {
	items := make([]int, seqLen)
	for i := range items {
		items[i] = i
	}
	result := make([]int, 0, count)
	for len(items) > 0 && len(result) < count {
		idx := rng.nextInt(0, len(items)-1)
		result = append(result, items[idx])
		items[idx] = items[len(items)-1]
		items = items[:len(items)-1]
	}
	sort.Ints(result)
	return result
}
