// core/library/library.go
package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"stemcode-core/exclusion"
	"stemcode-core/nucleic"
	"stemcode-core/padding"
	"stemcode-core/sample"
)

// ErrPrecondition marks a request that cannot be applied to the library as
// it stands. Nothing is mutated when it is returned.
var ErrPrecondition = errors.New("library precondition failed")

// DefaultNull is the barcode of records that are intentionally unbarcoded.
const DefaultNull = "N"

// Library owns the records of one run and the exclusion set their barcodes
// are issued against.
type Library struct {
	Records []Record
	Set     *exclusion.Set
	Loop    string
	Null    string
	Log     *slog.Logger
}

// New wraps recs with an empty exclusion set.
func New(recs []Record, loop string) *Library {
	return &Library{
		Records: recs,
		Set:     exclusion.New(),
		Loop:    loop,
		Null:    DefaultNull,
		Log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (l *Library) logger() *slog.Logger {
	if l.Log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l.Log
}

func (l *Library) Len() int { return len(l.Records) }

// Reconciliation counts what ingestion found in pre-existing barcodes.
type Reconciliation struct {
	Existing      int // distinct non-null barcodes kept
	Duplicates    int // non-null barcodes stripped because already issued
	Nulls         int // records carrying the null sentinel
	WrongLength   int // non-null barcodes of unexpected length (kept)
	MissingDesign int
	Invalid       int // records with a region failing the validator
}

// Reconcile seeds the exclusion set from barcodes already present in the
// records. The first holder of a barcode keeps it; later holders lose it.
// The null sentinel is recorded in the set so a later removal can prune it.
// expectedLen <= 0 skips the length check; valid may be nil.
func (l *Library) Reconcile(expectedLen int, valid func(string) bool) Reconciliation {
	log := l.logger()
	var rc Reconciliation
	for i := range l.Records {
		r := &l.Records[i]
		if r.Design == "" {
			rc.MissingDesign++
			log.Warn("record has no design region", "name", r.Name, "record", r.Separated())
		}
		if valid != nil && !r.Valid(valid) {
			rc.Invalid++
			log.Warn("record is not a valid nucleic acid", "name", r.Name, "record", r.Separated())
		}
		if r.Barcode == "" {
			continue
		}
		if r.Barcode == l.Null {
			rc.Nulls++
			l.Set.Add(r.Barcode)
			continue
		}
		if expectedLen > 0 && len(r.Barcode) != expectedLen {
			rc.WrongLength++
			log.Warn("barcode has unexpected length", "name", r.Name, "want", expectedLen, "got", len(r.Barcode))
		}
		if l.Set.Add(r.Barcode) {
			rc.Existing++
			continue
		}
		r.Barcode = ""
		rc.Duplicates++
	}
	return rc
}

// PaddingRequired returns target minus each record's padded design length.
// A negative entry anywhere is a precondition error.
func (l *Library) PaddingRequired(target int) ([]int, error) {
	req := make([]int, len(l.Records))
	for i, r := range l.Records {
		req[i] = target - r.PaddedDesignLength()
		if req[i] < 0 {
			return nil, fmt.Errorf("%w: record %q is %d nt over target %d: %w",
				ErrPrecondition, r.Name, -req[i], target, padding.ErrNegativeLength)
		}
	}
	return req, nil
}

// Side selects which padding region receives new padding.
type Side int

const (
	Five Side = iota
	Three
	Both
)

// ParseSide maps "five", "three" or "both".
func ParseSide(s string) (Side, error) {
	switch s {
	case "five", "5", "":
		return Five, nil
	case "three", "3":
		return Three, nil
	case "both":
		return Both, nil
	}
	return 0, fmt.Errorf("%w: unknown pad side %q", ErrPrecondition, s)
}

func (s Side) String() string {
	switch s {
	case Three:
		return "three"
	case Both:
		return "both"
	}
	return "five"
}

// Split divides n between the 5' and 3' regions.
func (s Side) Split(n int) (five, three int) {
	switch s {
	case Three:
		return 0, n
	case Both:
		return n - n/2, n / 2
	}
	return n, 0
}

// PadRecord adds required bases of padding to r. New 5' padding goes
// outside any existing 5' padding, new 3' padding after any existing 3'
// padding. Each region is assembled independently.
func PadRecord(rng sample.Rand, r *Record, required int, side Side, p padding.Params) error {
	five, three := side.Split(required)
	fp, err := padding.Fill(rng, five, p)
	if err != nil {
		return fmt.Errorf("5' padding for %q: %w", r.Name, err)
	}
	tp, err := padding.Fill(rng, three, p)
	if err != nil {
		return fmt.Errorf("3' padding for %q: %w", r.Name, err)
	}
	r.FivePadding = fp + r.FivePadding
	r.ThreePadding += tp
	return nil
}

// CheckPadding returns the padding each record needs to reach target. It
// fails with ErrPrecondition when any record is over target or the stem
// parameters cannot produce the longest region required.
func (l *Library) CheckPadding(target int, side Side, p padding.Params) ([]int, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrecondition, err)
	}
	req, err := l.PaddingRequired(target)
	if err != nil {
		return nil, err
	}
	longest := 0
	for _, n := range req {
		five, three := side.Split(n)
		longest = max(longest, five, three)
	}
	if err := p.CheckLength(longest); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPrecondition, err)
	}
	return req, nil
}

// Pad brings every record's padded design length to target. Requirements are
// checked for all records before any record changes.
func (l *Library) Pad(ctx context.Context, rng sample.Rand, target int, side Side, p padding.Params) (int, error) {
	req, err := l.CheckPadding(target, side, p)
	if err != nil {
		return 0, err
	}
	padded := 0
	for i := range l.Records {
		if err := ctx.Err(); err != nil {
			return padded, err
		}
		if req[i] == 0 {
			continue
		}
		if err := PadRecord(rng, &l.Records[i], req[i], side, p); err != nil {
			return padded, err
		}
		padded++
	}
	return padded, nil
}

// SetPadding overwrites both padding regions of every record.
func (l *Library) SetPadding(five, three string) {
	for i := range l.Records {
		l.Records[i].FivePadding = five
		l.Records[i].ThreePadding = three
	}
}

// BarcodeParams configures barcode assignment.
type BarcodeParams struct {
	Length         int
	MaxOccurrences []int
	MaxAttempts    int
	ProgressEvery  int // log cadence in assigned records; <= 0 disables
}

// Barcode assigns a fresh barcode to every record without one. It returns
// the number assigned; on error, records assigned before it keep theirs.
func (l *Library) Barcode(ctx context.Context, rng sample.Rand, p BarcodeParams) (int, error) {
	if p.Length < 1 {
		return 0, fmt.Errorf("%w: barcode length %d < 1", ErrPrecondition, p.Length)
	}
	if err := sample.CheckBounds(p.Length, p.MaxOccurrences); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrPrecondition, err)
	}
	log := l.logger()
	n := 0
	for i := range l.Records {
		r := &l.Records[i]
		if r.Barcode != "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return n, err
		}
		b, err := l.Set.Generate(rng, p.Length, p.MaxOccurrences, l.Loop, p.MaxAttempts)
		if err != nil {
			return n, fmt.Errorf("barcode for %q: %w", r.Name, err)
		}
		r.Barcode = b.String()
		n++
		if p.ProgressEvery > 0 && n%p.ProgressEvery == 0 {
			log.Info("barcoding", "assigned", n)
		}
	}
	return n, nil
}

// RemoveBarcode strips barcode from every record holding it and prunes it
// from the exclusion set. It returns the number of records changed.
func (l *Library) RemoveBarcode(barcode string) int {
	n := 0
	for i := range l.Records {
		if l.Records[i].Barcode == barcode {
			l.Records[i].Barcode = ""
			n++
		}
	}
	l.Set.Remove(barcode)
	return n
}

// ReplaceConstants sets both constant regions of every record.
func (l *Library) ReplaceConstants(five, three string) {
	for i := range l.Records {
		l.Records[i].FiveConstant = five
		l.Records[i].ThreeConstant = three
	}
}

// TrimDesign drops five bases from the 5' end and three from the 3' end of
// every design. It fails without changes if any design is too short.
func (l *Library) TrimDesign(five, three int) error {
	if five < 0 || three < 0 {
		return fmt.Errorf("%w: negative trim %d/%d", ErrPrecondition, five, three)
	}
	for _, r := range l.Records {
		if len(r.Design) < five+three {
			return fmt.Errorf("%w: design of %q is %d nt, cannot trim %d",
				ErrPrecondition, r.Name, len(r.Design), five+three)
		}
	}
	for i := range l.Records {
		d := l.Records[i].Design
		l.Records[i].Design = d[five : len(d)-three]
	}
	return nil
}

// Normalize uppercases every region, drops whitespace and quotes, and
// converts T to U so stored barcodes match generated ones.
func (l *Library) Normalize() {
	for i := range l.Records {
		l.Records[i].mapRegions(func(s string) string { return nucleic.ToRNA(nucleic.Normalize(s)) })
	}
}

// ExpandAmbiguous resolves ambiguity codes in every design to random bases.
func (l *Library) ExpandAmbiguous(rng sample.Rand) {
	for i := range l.Records {
		l.Records[i].Design = nucleic.ExpandAmbiguous(rng, l.Records[i].Design)
	}
}

func (l *Library) ToDNA() {
	for i := range l.Records {
		l.Records[i].ToDNA()
	}
}

func (l *Library) ToRNA() {
	for i := range l.Records {
		l.Records[i].ToRNA()
	}
}

// Invalid returns the indexes of records with a region failing valid.
func (l *Library) Invalid(valid func(string) bool) []int {
	var out []int
	for i, r := range l.Records {
		if !r.Valid(valid) {
			out = append(out, i)
		}
	}
	return out
}

// LengthDiscrepancy counts records whose full length is not length.
func (l *Library) LengthDiscrepancy(length int) int {
	n := 0
	for _, r := range l.Records {
		if r.Len() != length {
			n++
		}
	}
	return n
}

// BarcodeDiscrepancy counts records whose barcode is not in the exclusion
// set, which includes records with no barcode at all.
func (l *Library) BarcodeDiscrepancy() int {
	n := 0
	for _, r := range l.Records {
		if r.Barcode == "" || !l.Set.Has(r.Barcode) {
			n++
		}
	}
	return n
}
