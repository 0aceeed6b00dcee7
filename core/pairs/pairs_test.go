package pairs

import "testing"

func TestDistanceSymmetricAndZeroDiagonal(t *testing.T) {
	for a := Code(0); a < NumCodes; a++ {
		if Distance(a, a) != 0 {
			t.Fatalf("Distance(%v,%v) = %d, want 0", a, a, Distance(a, a))
		}
		for b := Code(0); b < NumCodes; b++ {
			if Distance(a, b) != Distance(b, a) {
				t.Fatalf("asymmetric distance between %v and %v", a, b)
			}
		}
	}
}

func TestNeighborsMatchDistanceOne(t *testing.T) {
	for a := Code(0); a < NumCodes; a++ {
		want := map[Code]bool{}
		for b := Code(0); b < NumCodes; b++ {
			if Distance(a, b) == 1 {
				want[b] = true
			}
		}
		got := Neighbors(a)
		if len(got) != len(want) {
			t.Fatalf("Neighbors(%v) = %v, want %d entries", a, got, len(want))
		}
		for _, n := range got {
			if !want[n] {
				t.Fatalf("Neighbors(%v) contains %v at distance %d", a, n, Distance(a, n))
			}
		}
	}
}

func TestAdjacencyTable(t *testing.T) {
	tests := []struct {
		code Code
		want []Code
	}{
		{0, []Code{4}},
		{1, []Code{5}},
		{2, []Code{5}},
		{3, []Code{4}},
		{4, []Code{0, 3}},
		{5, []Code{1, 2}},
	}
	for _, tt := range tests {
		got := Neighbors(tt.code)
		if len(got) != len(tt.want) {
			t.Fatalf("Neighbors(%d) = %v, want %v", tt.code, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("Neighbors(%d) = %v, want %v", tt.code, got, tt.want)
			}
		}
	}
}

func TestPairsAndCategories(t *testing.T) {
	l, r := AU.Pair()
	if l != 'A' || r != 'U' {
		t.Fatalf("AU.Pair() = %c,%c", l, r)
	}
	for c := Code(0); c < NumCodes; c++ {
		if FromCategory(c.Category(), c.Orientation()) != c {
			t.Fatalf("category/orientation round trip failed for %v", c)
		}
		l, r := c.Pair()
		got, ok := FromBases(l, r)
		if !ok || got != c {
			t.Fatalf("FromBases(%c,%c) = %v,%v want %v", l, r, got, ok, c)
		}
	}
	if _, ok := FromBases('A', 'A'); ok {
		t.Fatal("FromBases(A,A) should not resolve")
	}
	if Code(7).Valid() || Code(-1).Valid() {
		t.Fatal("out-of-range codes reported valid")
	}
}
