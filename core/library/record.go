// core/library/record.go
package library

import (
	"strings"

	"stemcode-core/nucleic"
)

// Record is one library member: a name and six regions, 5' to 3'.
type Record struct {
	Name          string
	FiveConstant  string
	FivePadding   string
	Design        string
	ThreePadding  string
	Barcode       string
	ThreeConstant string
}

// Regions returns the six regions in order.
func (r Record) Regions() [6]string {
	return [6]string{r.FiveConstant, r.FivePadding, r.Design, r.ThreePadding, r.Barcode, r.ThreeConstant}
}

func (r Record) Sequence() string {
	reg := r.Regions()
	return strings.Join(reg[:], "")
}

func (r Record) Len() int {
	n := 0
	for _, s := range r.Regions() {
		n += len(s)
	}
	return n
}

// PaddedDesignLength is the design plus both padding regions.
func (r Record) PaddedDesignLength() int {
	return len(r.FivePadding) + len(r.Design) + len(r.ThreePadding)
}

// Separated renders the regions joined by " / " for log lines.
func (r Record) Separated() string {
	reg := r.Regions()
	return strings.Join(reg[:], " / ")
}

// Valid reports whether every region passes valid.
func (r Record) Valid(valid func(string) bool) bool {
	for _, s := range r.Regions() {
		if !valid(s) {
			return false
		}
	}
	return true
}

func (r *Record) mapRegions(f func(string) string) {
	r.FiveConstant = f(r.FiveConstant)
	r.FivePadding = f(r.FivePadding)
	r.Design = f(r.Design)
	r.ThreePadding = f(r.ThreePadding)
	r.Barcode = f(r.Barcode)
	r.ThreeConstant = f(r.ThreeConstant)
}

func (r *Record) ToDNA() { r.mapRegions(nucleic.ToDNA) }
func (r *Record) ToRNA() { r.mapRegions(nucleic.ToRNA) }
