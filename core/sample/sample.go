// core/sample/sample.go
package sample

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"stemcode-core/pairs"
)

// ErrInsufficient is returned when the occurrence bounds cannot cover the
// requested number of draws.
var ErrInsufficient = errors.New("occurrence bounds too small")

// Rand is the randomness the samplers need. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a PCG-backed generator. Seed 0 picks a time-based seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// CheckBounds reports whether n draws fit under maxOccurrences. There is
// at most one bound per pair category.
func CheckBounds(n int, maxOccurrences []int) error {
	if len(maxOccurrences) > pairs.NumCategories {
		return fmt.Errorf("%d occurrence bounds given, only %d pair categories exist", len(maxOccurrences), pairs.NumCategories)
	}
	if n < 0 {
		return fmt.Errorf("negative draw count %d", n)
	}
	total := 0
	for k, m := range maxOccurrences {
		if m < 0 {
			return fmt.Errorf("negative bound %d for category %d", m, k)
		}
		total += m
	}
	if total < n {
		return fmt.Errorf("%w: need %d draws, bounds %v sum to %d", ErrInsufficient, n, maxOccurrences, total)
	}
	return nil
}

// Categories draws n category indices such that category k appears at most
// maxOccurrences[k] times. Draws are a uniform shuffle of the bounded pool.
func Categories(rng Rand, n int, maxOccurrences []int) ([]int, error) {
	if err := CheckBounds(n, maxOccurrences); err != nil {
		return nil, err
	}
	total := 0
	for _, m := range maxOccurrences {
		total += m
	}

	pool := make([]int, 0, total)
	for k, m := range maxOccurrences {
		for j := 0; j < m; j++ {
			pool = append(pool, k)
		}
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	return pool[:n:n], nil
}

// orient assigns each category an independent uniform orientation.
func orient(rng Rand, categories []int) []pairs.Code {
	out := make([]pairs.Code, len(categories))
	for i, k := range categories {
		out[i] = pairs.FromCategory(k, rng.IntN(2))
	}
	return out
}

// Codes is Categories followed by Orient.
func Codes(rng Rand, n int, maxOccurrences []int) ([]pairs.Code, error) {
	cats, err := Categories(rng, n, maxOccurrences)
	if err != nil {
		return nil, err
	}
	return orient(rng, cats), nil
}

// Bases returns n bases drawn uniformly from A, C, G, U.
func Bases(rng Rand, n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = pairs.Bases[rng.IntN(len(pairs.Bases))]
	}
	return string(b)
}
