// core/stem/stem.go
package stem

import (
	"fmt"
	"strings"

	"stemcode-core/pairs"
	"stemcode-core/sample"
)

// Barcode is a nested hairpin: Loop wrapped by BasePairs, element 0
// innermost and the last element outermost.
type Barcode struct {
	BasePairs []pairs.Code
	Loop      string
}

// New copies basePairs into a Barcode.
func New(basePairs []pairs.Code, loop string) Barcode {
	return Barcode{BasePairs: append([]pairs.Code(nil), basePairs...), Loop: loop}
}

// Random draws a barcode of length stem pairs under the occurrence bounds.
func Random(rng sample.Rand, length int, maxOccurrences []int, loop string) (Barcode, error) {
	codes, err := sample.Codes(rng, length, maxOccurrences)
	if err != nil {
		return Barcode{}, err
	}
	return Barcode{BasePairs: codes, Loop: loop}, nil
}

// Len is the rendered length, 2*len(BasePairs)+len(Loop).
func (b Barcode) Len() int { return 2*len(b.BasePairs) + len(b.Loop) }

// String renders the hairpin.
func (b Barcode) String() string {
	n := len(b.BasePairs)
	out := make([]byte, b.Len())
	copy(out[n:], b.Loop)
	for i, c := range b.BasePairs {
		l, r := c.Pair()
		out[n-1-i] = l
		out[n+len(b.Loop)+i] = r
	}
	return string(out)
}

// Ball returns every barcode within pair-level edit distance 1, including b
// itself as the last element.
func (b Barcode) Ball() []Barcode {
	out := make([]Barcode, 0, 2*len(b.BasePairs)+1)
	for i, c := range b.BasePairs {
		for _, n := range pairs.Neighbors(c) {
			alt := New(b.BasePairs, b.Loop)
			alt.BasePairs[i] = n
			out = append(out, alt)
		}
	}
	return append(out, b)
}

// BallStrings renders Ball.
func (b Barcode) BallStrings() []string {
	ball := b.Ball()
	out := make([]string, len(ball))
	for i, x := range ball {
		out[i] = x.String()
	}
	return out
}

// Neighbors reports whether a and b have equal structure and differ at no
// more than one position, where the two codes are at distance 1.
func Neighbors(a, b Barcode) bool {
	if a.Loop != b.Loop || len(a.BasePairs) != len(b.BasePairs) {
		return false
	}
	diff := -1
	for i := range a.BasePairs {
		if a.BasePairs[i] != b.BasePairs[i] {
			if diff >= 0 {
				return false
			}
			diff = i
		}
	}
	return diff < 0 || pairs.Distance(a.BasePairs[diff], b.BasePairs[diff]) == 1
}

// Parse recovers the barcode structure of a rendered string around a known
// loop. It fails when the flanks are not made of the six oriented pairs.
func Parse(rendered, loop string) (Barcode, error) {
	rendered = strings.ToUpper(rendered)
	extra := len(rendered) - len(loop)
	if extra < 0 || extra%2 != 0 {
		return Barcode{}, fmt.Errorf("length %d does not fit loop %q", len(rendered), loop)
	}
	n := extra / 2
	if rendered[n:n+len(loop)] != loop {
		return Barcode{}, fmt.Errorf("loop %q not found at position %d of %q", loop, n, rendered)
	}
	codes := make([]pairs.Code, n)
	for i := 0; i < n; i++ {
		l, r := rendered[n-1-i], rendered[n+len(loop)+i]
		c, ok := pairs.FromBases(l, r)
		if !ok {
			return Barcode{}, fmt.Errorf("%c-%c at stem position %d is not a base pair", l, r, i)
		}
		codes[i] = c
	}
	return Barcode{BasePairs: codes, Loop: loop}, nil
}
