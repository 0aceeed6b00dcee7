// core/nucleic/nucleic.go
package nucleic

import (
	"fmt"
	"strings"
	"unicode"

	"stemcode-core/sample"
)

// Ambiguity codes over the RNA alphabet. '_' is a placeholder for any base.
var ambiguous = map[byte]string{
	'N': "ACGU",
	'R': "AG",
	'Y': "CU",
	'K': "GU",
	'M': "AC",
	'S': "CG",
	'W': "AU",
	'V': "ACG",
	'D': "AGU",
	'H': "ACU",
	'B': "CGU",
	'_': "ACGU",
}

var complement = map[byte]byte{
	'A': 'U', 'U': 'A', 'T': 'A', 'C': 'G', 'G': 'C', 'N': 'N',
}

// Strip trims surrounding whitespace.
func Strip(s string) string { return strings.TrimSpace(s) }

// Normalize removes spaces and quotes and uppercases bases.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsSpace(r) || r == '\'' || r == '"' {
			continue
		}
		out = append(out, unicode.ToUpper(r))
	}
	return string(out)
}

// IsValid reports whether every letter of s is one of A C G T U N.
// The empty string is valid.
func IsValid(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'A', 'C', 'G', 'T', 'U', 'N':
		default:
			return false
		}
	}
	return true
}

// Validate returns the normalized sequence or an error naming the first
// offending letter.
func Validate(raw string) (string, error) {
	s := Normalize(raw)
	for i := 0; i < len(s); i++ {
		if !IsValid(s[i : i+1]) {
			return "", fmt.Errorf("invalid base %q at %d; allowed: A C G T U N", s[i], i+1)
		}
	}
	return s, nil
}

// ToRNA replaces T with U.
func ToRNA(s string) string { return strings.ReplaceAll(s, "T", "U") }

// ToDNA replaces U with T.
func ToDNA(s string) string { return strings.ReplaceAll(s, "U", "T") }

// ExpandAmbiguous replaces each ambiguity code with a random base it stands
// for. Letters without an entry are kept.
func ExpandAmbiguous(rng sample.Rand, s string) string {
	b := []byte(s)
	for i, c := range b {
		if set, ok := ambiguous[c]; ok {
			b[i] = set[rng.IntN(len(set))]
		}
	}
	return string(b)
}

// ReverseComplement returns the RNA reverse complement of s. T is read as U.
func ReverseComplement(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		c := s[len(s)-1-i]
		if r, ok := complement[c]; ok {
			c = r
		}
		out[i] = c
	}
	return string(out)
}
