package library

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"stemcode-core/exclusion"
	"stemcode-core/nucleic"
	"stemcode-core/padding"
	"stemcode-core/sample"
	"stemcode-core/stem"
)

var defaultPad = padding.Params{
	MinStem:        4,
	MaxStem:        16,
	MaxOccurrences: []int{13, 5, 1},
	Loop:           "UUCG",
}

func designs(n int) []Record {
	recs := make([]Record, n)
	for i := range recs {
		recs[i] = Record{Name: fmt.Sprintf("r%d", i), Design: strings.Repeat("ACGU", 5+i%3)}
	}
	return recs
}

func TestRecordRendering(t *testing.T) {
	r := Record{Name: "x", FiveConstant: "AA", FivePadding: "C", Design: "GGG", ThreePadding: "", Barcode: "AUUCGU", ThreeConstant: "UU"}
	if got := r.Sequence(); got != "AACGGGAUUCGUUU" {
		t.Fatalf("Sequence = %q", got)
	}
	if r.Len() != 14 || r.PaddedDesignLength() != 4 {
		t.Fatalf("Len=%d PaddedDesignLength=%d", r.Len(), r.PaddedDesignLength())
	}
	if got := r.Separated(); got != "AA / C / GGG /  / AUUCGU / UU" {
		t.Fatalf("Separated = %q", got)
	}
	r.ToDNA()
	if r.Barcode != "ATTCGT" || r.ThreeConstant != "TT" {
		t.Fatalf("ToDNA left %+v", r)
	}
}

func TestReconcile(t *testing.T) {
	recs := []Record{
		{Name: "a", Design: "ACGU", Barcode: "AUUCGU"},
		{Name: "b", Design: "ACGU", Barcode: "AUUCGU"},
		{Name: "c", Design: "ACGU", Barcode: "N"},
		{Name: "d", Design: "ACGU", Barcode: "N"},
		{Name: "e", Design: "", Barcode: "GCAUUCGUGC"},
		{Name: "f", Design: "ACXU"},
	}
	l := New(recs, "UUCG")
	got := l.Reconcile(6, nucleic.IsValid)
	want := Reconciliation{Existing: 2, Duplicates: 1, Nulls: 2, WrongLength: 1, MissingDesign: 1, Invalid: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Reconcile (-want +got):\n%s", diff)
	}
	if l.Records[1].Barcode != "" || l.Records[0].Barcode != "AUUCGU" {
		t.Fatalf("duplicate not stripped from the later holder: %+v", l.Records[:2])
	}
	if !l.Set.Has("N") || l.Set.Len() != 3 {
		t.Fatalf("set members %v", l.Set.Members())
	}
}

func TestPaddingRequiredNegativeIsPrecondition(t *testing.T) {
	recs := designs(3)
	recs[2].Design = strings.Repeat("A", 120)
	l := New(recs, "UUCG")
	_, err := l.Pad(context.Background(), sample.NewRand(1), 100, Five, defaultPad)
	if !errors.Is(err, ErrPrecondition) || !errors.Is(err, padding.ErrNegativeLength) {
		t.Fatalf("want precondition error, got %v", err)
	}
	for i, r := range l.Records {
		if r.FivePadding != "" || r.ThreePadding != "" {
			t.Fatalf("record %d mutated despite precondition failure", i)
		}
	}
}

func TestPadOccurrenceBoundsCheckedUpFront(t *testing.T) {
	recs := []Record{
		{Name: "short", Design: strings.Repeat("A", 90)},
		{Name: "long", Design: strings.Repeat("C", 40)},
	}
	p := defaultPad
	p.MaxOccurrences = []int{2, 1, 1}
	for _, side := range []Side{Five, Three, Both} {
		l := New(append([]Record(nil), recs...), "UUCG")
		n, err := l.Pad(context.Background(), sample.NewRand(1), 100, side, p)
		if !errors.Is(err, ErrPrecondition) || !errors.Is(err, sample.ErrInsufficient) {
			t.Fatalf("%s: want precondition wrapping ErrInsufficient, got %v", side, err)
		}
		if n != 0 {
			t.Fatalf("%s: reported %d padded records", side, n)
		}
		if diff := cmp.Diff(recs, l.Records); diff != "" {
			t.Fatalf("%s: records changed despite failed precondition (-want +got):\n%s", side, diff)
		}
	}
}

func TestPadReachesTarget(t *testing.T) {
	for _, side := range []Side{Five, Three, Both} {
		t.Run(side.String(), func(t *testing.T) {
			recs := designs(30)
			recs[0].FivePadding = "GG"
			l := New(recs, "UUCG")
			n, err := l.Pad(context.Background(), sample.NewRand(7), 100, side, defaultPad)
			if err != nil {
				t.Fatal(err)
			}
			if n != 30 {
				t.Fatalf("padded %d records, want 30", n)
			}
			for _, r := range l.Records {
				if r.PaddedDesignLength() != 100 {
					t.Fatalf("%s padded to %d", r.Name, r.PaddedDesignLength())
				}
				if side == Five && r.ThreePadding != "" {
					t.Fatalf("five-side padding touched 3' region of %s", r.Name)
				}
				if side == Three && r.FivePadding != "" && r.Name != "r0" {
					t.Fatalf("three-side padding touched 5' region of %s", r.Name)
				}
			}
			if !strings.HasSuffix(l.Records[0].FivePadding, "GG") && side != Three {
				t.Fatalf("existing 5' padding not kept next to the design: %q", l.Records[0].FivePadding)
			}
		})
	}
}

func TestSideSplit(t *testing.T) {
	cases := []struct {
		side        Side
		n           int
		five, three int
	}{
		{Five, 9, 9, 0},
		{Three, 9, 0, 9},
		{Both, 9, 5, 4},
		{Both, 0, 0, 0},
	}
	for _, c := range cases {
		f, th := c.side.Split(c.n)
		if f != c.five || th != c.three {
			t.Fatalf("%v.Split(%d) = %d,%d", c.side, c.n, f, th)
		}
	}
	if _, err := ParseSide("left"); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("ParseSide(left) err = %v", err)
	}
}

func TestBarcodeAssignsDistinctNonNeighbors(t *testing.T) {
	recs := designs(200)
	recs[5].Barcode = "N"
	l := New(recs, "UUCG")
	l.Reconcile(30, nil)

	n, err := l.Barcode(context.Background(), sample.NewRand(11), BarcodeParams{Length: 13, MaxOccurrences: []int{13, 5, 1}, ProgressEvery: 50})
	if err != nil {
		t.Fatal(err)
	}
	if n != 199 {
		t.Fatalf("assigned %d, want 199", n)
	}
	var issued []stem.Barcode
	for _, r := range l.Records {
		if r.Barcode == "N" {
			continue
		}
		if len(r.Barcode) != 30 {
			t.Fatalf("barcode %q has length %d", r.Barcode, len(r.Barcode))
		}
		b, err := stem.Parse(r.Barcode, "UUCG")
		if err != nil {
			t.Fatal(err)
		}
		issued = append(issued, b)
	}
	for i := range issued {
		for j := i + 1; j < len(issued); j++ {
			if issued[i].String() == issued[j].String() || stem.Neighbors(issued[i], issued[j]) {
				t.Fatalf("barcodes %d and %d too close", i, j)
			}
		}
	}
	if d := l.BarcodeDiscrepancy(); d != 0 {
		t.Fatalf("BarcodeDiscrepancy = %d after barcoding", d)
	}
}

func TestBarcodePreconditions(t *testing.T) {
	l := New(designs(3), "UUCG")
	_, err := l.Barcode(context.Background(), sample.NewRand(1), BarcodeParams{Length: 13, MaxOccurrences: []int{5, 5, 1}})
	if !errors.Is(err, ErrPrecondition) || !errors.Is(err, sample.ErrInsufficient) {
		t.Fatalf("want insufficient bounds, got %v", err)
	}
	for _, r := range l.Records {
		if r.Barcode != "" {
			t.Fatal("barcode assigned despite precondition failure")
		}
	}
}

func TestBarcodeCapacity(t *testing.T) {
	l := New(designs(10), "UUCG")
	_, err := l.Barcode(context.Background(), sample.NewRand(3), BarcodeParams{Length: 1, MaxOccurrences: []int{1, 0, 0}, MaxAttempts: 50})
	if !errors.Is(err, exclusion.ErrCapacity) {
		t.Fatalf("want capacity error, got %v", err)
	}
}

func TestBarcodeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := New(designs(3), "UUCG")
	if _, err := l.Barcode(ctx, sample.NewRand(1), BarcodeParams{Length: 4, MaxOccurrences: []int{4, 4, 4}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
}

func TestRemoveNullBarcode(t *testing.T) {
	recs := designs(10)
	for _, i := range []int{1, 4, 6, 9} {
		recs[i].Barcode = "N"
	}
	l := New(recs, "UUCG")
	l.Reconcile(30, nil)
	if _, err := l.Barcode(context.Background(), sample.NewRand(5), BarcodeParams{Length: 13, MaxOccurrences: []int{13, 5, 1}}); err != nil {
		t.Fatal(err)
	}
	before := l.BarcodeDiscrepancy()

	if n := l.RemoveBarcode("N"); n != 4 {
		t.Fatalf("RemoveBarcode stripped %d records, want 4", n)
	}
	if l.Set.Has("N") {
		t.Fatal("null sentinel still in exclusion set")
	}
	for _, i := range []int{1, 4, 6, 9} {
		if l.Records[i].Barcode != "" {
			t.Fatalf("record %d still holds %q", i, l.Records[i].Barcode)
		}
	}
	for _, i := range []int{0, 2, 3, 5, 7, 8} {
		if l.Records[i].Barcode == "" {
			t.Fatalf("record %d lost its barcode", i)
		}
	}
	if after := l.BarcodeDiscrepancy(); after-before != 4 {
		t.Fatalf("BarcodeDiscrepancy went %d -> %d, want +4", before, after)
	}
}

func TestLengthDiscrepancy(t *testing.T) {
	recs := designs(6)
	l := New(recs, "UUCG")
	if _, err := l.Pad(context.Background(), sample.NewRand(2), 100, Five, defaultPad); err != nil {
		t.Fatal(err)
	}
	l.ReplaceConstants("ACTCGAGTAGAGTCGAAAA", "AAAAGAAACAACAACAACAAC")
	if got := l.LengthDiscrepancy(170); got != 6 {
		t.Fatalf("before barcoding LengthDiscrepancy = %d, want 6", got)
	}
	if _, err := l.Barcode(context.Background(), sample.NewRand(2), BarcodeParams{Length: 13, MaxOccurrences: []int{13, 5, 1}}); err != nil {
		t.Fatal(err)
	}
	if got := l.LengthDiscrepancy(170); got != 0 {
		t.Fatalf("after barcoding LengthDiscrepancy = %d, want 0", got)
	}
}

func TestTrimDesign(t *testing.T) {
	l := New([]Record{{Name: "a", Design: "AACCGGUU"}, {Name: "b", Design: "ACGUA"}}, "UUCG")
	if err := l.TrimDesign(2, 3); err != nil {
		t.Fatal(err)
	}
	if l.Records[0].Design != "CCG" || l.Records[1].Design != "" {
		t.Fatalf("trimmed designs %q %q", l.Records[0].Design, l.Records[1].Design)
	}
	if err := l.TrimDesign(1, 0); !errors.Is(err, ErrPrecondition) {
		t.Fatalf("want precondition error trimming an empty design, got %v", err)
	}
	if l.Records[0].Design != "CCG" {
		t.Fatal("failed trim mutated records")
	}
}

func TestSetPaddingAndInvalid(t *testing.T) {
	l := New(designs(3), "UUCG")
	l.SetPadding("AC", "GU")
	l.Records[1].Design = "ACZ"
	if got := l.Invalid(nucleic.IsValid); !cmp.Equal(got, []int{1}) {
		t.Fatalf("Invalid = %v", got)
	}
	for _, r := range l.Records {
		if r.FivePadding != "AC" || r.ThreePadding != "GU" {
			t.Fatalf("SetPadding left %+v", r)
		}
	}
}

func TestNormalizeAndExpand(t *testing.T) {
	l := New([]Record{{Name: "a", Design: " acgt nn ", Barcode: "ATTCGT", FiveConstant: "'ac'"}}, "UUCG")
	l.Normalize()
	r := l.Records[0]
	if r.Design != "ACGUNN" || r.Barcode != "AUUCGU" || r.FiveConstant != "AC" {
		t.Fatalf("Normalize left %+v", r)
	}
	l.ExpandAmbiguous(sample.NewRand(9))
	d := l.Records[0].Design
	if len(d) != 6 || d[:4] != "ACGU" || strings.ContainsRune(d, 'N') {
		t.Fatalf("ExpandAmbiguous = %q", d)
	}
}
