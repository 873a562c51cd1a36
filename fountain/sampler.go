package fountain

// aliasSampler implements Vose's alias method for sampling from a
// nonnegative, non-normalized probability vector in O(1) per draw after an
// O(n) setup — grounded on the seedhammer.com/bc/fountain `sample` helper
// (pack reference), generalized here to a reusable type so the decoder can
// build it once per message (spec.md §4.G: "pre-initialize the degree
// alias sampler ... so subsequent indexes(*) calls ... do not repeatedly
// rebuild it").
type aliasSampler struct {
	prob  []float64
	alias []int
}

// newAliasSampler builds the sampler's prob/alias tables from probs, whose
// entries must be nonnegative and sum to a positive value.
func newAliasSampler(probs []float64) *aliasSampler {
	n := len(probs)
	var sum float64
	for _, p := range probs {
		sum += p
	}

	scaled := make([]float64, n)
	for i, p := range probs {
		scaled[i] = p * float64(n) / sum
	}

	var small, large []int
	for i := n - 1; i >= 0; i-- {
		if scaled[i] < 1 {
			small = append(small, i)
		} else {
			large = append(large, i)
		}
	}

	prob := make([]float64, n)
	alias := make([]int, n)

	for len(small) > 0 && len(large) > 0 {
		l := small[len(small)-1]
		small = small[:len(small)-1]
		g := large[len(large)-1]
		large = large[:len(large)-1]

		prob[l] = scaled[l]
		alias[l] = g

		scaled[g] = scaled[g] + scaled[l] - 1
		if scaled[g] < 1 {
			small = append(small, g)
		} else {
			large = append(large, g)
		}
	}

	for len(large) > 0 {
		g := large[len(large)-1]
		large = large[:len(large)-1]
		prob[g] = 1
	}
	for len(small) > 0 {
		l := small[len(small)-1]
		small = small[:len(small)-1]
		prob[l] = 1
	}

	return &aliasSampler{prob: prob, alias: alias}
}

// sample draws one index using two independent uniform draws from rng.
func (a *aliasSampler) sample(rng *xoshiro256ss) int {
	n := len(a.prob)
	u1 := rng.nextDouble()
	u2 := rng.nextDouble()
	i := int(float64(n) * u1)
	if i >= n {
		i = n - 1
	}
	if u2 < a.prob[i] {
		return i
	}
	return a.alias[i]
}
