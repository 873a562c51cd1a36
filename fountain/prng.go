package fountain

import (
	"crypto/sha256"
	"encoding/binary"
)

// xoshiro256ss is a xoshiro256** PRNG (component D), seeded from the
// SHA-256 of an arbitrary-length seed. The exact bit sequence it produces
// is part of the wire-compatible contract (spec.md §8 P2: determinism
// across runs, architectures, and process restarts) and is reimplemented
// standalone rather than imported, so it cannot silently drift if an
// upstream module changes its internal constants.
type xoshiro256ss struct {
	s [4]uint64
}

// newXoshiro256ss seeds the generator by hashing seed with SHA-256 and
// splitting the digest into four big-endian uint64 state words.
func newXoshiro256ss(seed []byte) *xoshiro256ss {
	h := sha256.Sum256(seed)
	var rng xoshiro256ss
	for i := range rng.s {
		rng.s[i] = binary.BigEndian.Uint64(h[i*8 : i*8+8])
	}
	return &rng
}

func rotl(x uint64, k uint) uint64 {
	return (x << k) | (x >> (64 - k))
}

// next returns the next 64-bit output and advances the generator state,
// following the reference xoshiro256** step.
func (r *xoshiro256ss) next() uint64 {
	s := &r.s
	result := rotl(s[1]*5, 7) * 9

	t := s[1] << 17

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]

	s[2] ^= t

	s[3] = rotl(s[3], 45)

	return result
}

// two64 is 2^64 as a float64 literal (the untyped constant 1<<64 overflows
// int64, so it can't be written as a shift here).
const two64 = 18446744073709551616.0

// nextDouble returns a uniform value in [0,1).
func (r *xoshiro256ss) nextDouble() float64 {
	return float64(r.next()) / two64
}

// nextInt returns a uniform integer in [lo, hi].
func (r *xoshiro256ss) nextInt(lo, hi int) int {
	return int(r.nextDouble()*float64(hi-lo+1)) + lo
}
