// core/padding/padding.go
package padding

import (
	"errors"
	"fmt"
	"strings"

	"stemcode-core/exclusion"
	"stemcode-core/sample"
	"stemcode-core/stem"
)

var (
	ErrNegativeLength = errors.New("negative padding length")
	ErrStemBounds     = errors.New("invalid stem length bounds")
)

// Params configures the assembler.
type Params struct {
	MinStem        int   // remaining lengths below this get random filler
	MaxStem        int   // largest stem, in base pairs
	MaxOccurrences []int // per-category bounds for stem pairs
	Loop           string

	// Avoid is the exclusion set stems are accepted against. Nil gives each
	// Assemble call its own private set.
	Avoid       *exclusion.Set
	MaxAttempts int
}

// Validate checks the parameters independently of any target length.
func (p Params) Validate() error {
	if p.MinStem < 1 {
		return fmt.Errorf("%w: min stem %d < 1", ErrStemBounds, p.MinStem)
	}
	if p.MaxStem < 1 {
		return fmt.Errorf("%w: max stem %d < 1", ErrStemBounds, p.MaxStem)
	}
	return nil
}

// LargestStem is the number of pairs in the first, and longest, stem that
// padding of length bases asks for. It is 0 when the padding is all filler
// or a bare loop.
func (p Params) LargestStem(length int) int {
	if length < p.MinStem || length < len(p.Loop) {
		return 0
	}
	return max(0, min(p.MaxStem, (length-len(p.Loop))/2))
}

// CheckLength reports whether the occurrence bounds can cover every stem
// needed for padding of up to length bases.
func (p Params) CheckLength(length int) error {
	if length < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeLength, length)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	n := p.LargestStem(length)
	if n == 0 {
		return nil
	}
	if err := sample.CheckBounds(n, p.MaxOccurrences); err != nil {
		return fmt.Errorf("padding stem of %d pairs: %w", n, err)
	}
	return nil
}

// Kind tags a padding segment.
type Kind int

const (
	Filler Kind = iota // unconstrained random bases
	Stem               // generated hairpin
)

func (k Kind) String() string {
	if k == Stem {
		return "stem"
	}
	return "filler"
}

// Segment is one piece of assembled padding.
type Segment struct {
	Kind  Kind
	Seq   string
	Pairs int // stem pairs; 0 for filler
}

// Assemble builds padding of exactly length bases as a list of segments.
func Assemble(rng sample.Rand, length int, p Params) ([]Segment, error) {
	if err := p.CheckLength(length); err != nil {
		return nil, err
	}
	avoid := p.Avoid
	if avoid == nil {
		avoid = exclusion.New()
	}

	var segs []Segment
	for remaining := length; remaining > 0; {
		if remaining < p.MinStem || remaining < len(p.Loop) {
			segs = append(segs, Segment{Kind: Filler, Seq: sample.Bases(rng, remaining)})
			break
		}
		pairsWanted := min(p.MaxStem, (remaining-len(p.Loop))/2)
		if pairsWanted == 0 && p.Loop == "" {
			segs = append(segs, Segment{Kind: Filler, Seq: sample.Bases(rng, remaining)})
			break
		}

		var b stem.Barcode
		var err error
		if pairsWanted == 0 {
			// a bare loop has no pairs to keep apart
			b = stem.New(nil, p.Loop)
		} else {
			b, err = avoid.Generate(rng, pairsWanted, p.MaxOccurrences, p.Loop, p.MaxAttempts)
			if err != nil {
				return nil, fmt.Errorf("padding stem of %d pairs: %w", pairsWanted, err)
			}
		}
		s := b.String()
		segs = append(segs, Segment{Kind: Stem, Seq: s, Pairs: pairsWanted})
		remaining -= len(s)
	}
	return segs, nil
}

// Fill is Assemble joined into one string.
func Fill(rng sample.Rand, length int, p Params) (string, error) {
	segs, err := Assemble(rng, length, p)
	if err != nil {
		return "", err
	}
	return Join(segs), nil
}

// Join concatenates segment sequences.
func Join(segs []Segment) string {
	var sb strings.Builder
	for _, s := range segs {
		sb.WriteString(s.Seq)
	}
	return sb.String()
}
