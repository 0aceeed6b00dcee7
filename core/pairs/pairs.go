// core/pairs/pairs.go
package pairs

import "fmt"

// Code identifies an oriented base pair. Codes 2k and 2k+1 are the two
// orientations of category k.
type Code int

const (
	AU Code = iota // (A, U)
	UA             // (U, A)
	CG             // (C, G)
	GC             // (G, C)
	GU             // (G, U) wobble
	UG             // (U, G) wobble
)

// NumCodes is the number of oriented pair symbols.
const NumCodes = 6

// NumCategories is the number of pair categories modulo orientation.
const NumCategories = NumCodes / 2

// Bases is the unconstrained RNA alphabet used for random filler.
var Bases = [...]byte{'A', 'C', 'G', 'U'}

var pairTable = [NumCodes][2]byte{
	{'A', 'U'},
	{'U', 'A'},
	{'C', 'G'},
	{'G', 'C'},
	{'G', 'U'},
	{'U', 'G'},
}

// distances is symmetric: 0 on the diagonal, 1 where a single mutation turns
// a canonical pair into a wobble pair, 2 otherwise.
var distances = [NumCodes][NumCodes]int{
	{0, 2, 2, 2, 1, 2},
	{2, 0, 2, 2, 2, 1},
	{2, 2, 0, 2, 2, 1},
	{2, 2, 2, 0, 1, 2},
	{1, 2, 2, 1, 0, 2},
	{2, 1, 1, 2, 2, 0},
}

// neighbors is the radius-1 substitution table. It must stay in sync with
// distances: every entry here is at distance 1 from its key.
var neighbors = [NumCodes][]Code{
	AU: {GU},
	UA: {UG},
	CG: {UG},
	GC: {GU},
	GU: {AU, GC},
	UG: {UA, CG},
}

// Valid reports whether c is one of the six oriented pair codes.
func (c Code) Valid() bool { return c >= 0 && c < NumCodes }

// Pair returns the (left, right) bases of c. Left is the 5' base of the stem.
func (c Code) Pair() (left, right byte) {
	p := pairTable[c]
	return p[0], p[1]
}

// Category returns the unordered pair category of c (0, 1 or 2).
func (c Code) Category() int { return int(c) / 2 }

// Orientation returns 0 or 1.
func (c Code) Orientation() int { return int(c) % 2 }

func (c Code) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Code(%d)", int(c))
	}
	l, r := c.Pair()
	return string([]byte{l, '-', r})
}

// FromCategory builds the code for category k with the given orientation bit.
func FromCategory(k, orientation int) Code { return Code(2*k + orientation) }

// FromBases returns the code whose pair is (left, right).
func FromBases(left, right byte) (Code, bool) {
	for i, p := range pairTable {
		if p[0] == left && p[1] == right {
			return Code(i), true
		}
	}
	return 0, false
}

// Distance is the pair-level edit distance between a and b.
func Distance(a, b Code) int { return distances[a][b] }

// Neighbors returns the codes at distance exactly 1 from c. The returned
// slice must not be modified.
func Neighbors(c Code) []Code { return neighbors[c] }
