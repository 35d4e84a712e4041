package brickhole

// Rand is the random source the generator and the engine draw from.
// Tests substitute scripted sources to force specific outcomes.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
	// Intn returns a value in [0, n), or 0 when n <= 0.
	Intn(n int) int
}

// RNG is a deterministic pseudo-random generator (64-bit LCG).
// A session is reproducible from its seed.
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed int64) *RNG {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &RNG{state: s}
}

// Next generates the next random uint64.
func (r *RNG) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.Next() >> 1) % uint64(n)) //#nosec G115 -- n is always positive
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	// Top 53 bits; the low bits of an LCG are weak.
	return float64(r.Next()>>11) / (1 << 53)
}

// State returns the internal state, folded into snapshot hashes.
func (r *RNG) State() uint64 {
	return r.state
}

// weightedIndex picks an index with probability proportional to weights[i].
// Returns -1 when all weights are zero.
func weightedIndex(rng Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return -1
	}
	roll := rng.Float64() * total
	cumulative := 0.0
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		last = i
		if roll < cumulative {
			return i
		}
	}
	return last
}
