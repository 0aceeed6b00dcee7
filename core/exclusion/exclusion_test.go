package exclusion

import (
	"errors"
	"sync"
	"testing"

	"stemcode-core/pairs"
	"stemcode-core/sample"
	"stemcode-core/stem"
)

func TestTryAcceptTwice(t *testing.T) {
	s := New()
	b := stem.New([]pairs.Code{0, 2, 5}, "UUCG")
	if !s.TryAccept(b) {
		t.Fatal("first TryAccept on an empty set failed")
	}
	if s.TryAccept(b) {
		t.Fatal("second TryAccept of the same candidate succeeded")
	}
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
}

func TestRejectDistanceZeroAndOne(t *testing.T) {
	s := New()
	s.Add("AUUCGU")

	if s.TryAccept(stem.New([]pairs.Code{0}, "UUCG")) {
		t.Fatal("identical rendering accepted")
	}
	// 4 -> 0 substitution renders AUUCGU
	if s.TryAccept(stem.New([]pairs.Code{4}, "UUCG")) {
		t.Fatal("distance-1 neighbor accepted")
	}
	if s.Len() != 1 {
		t.Fatalf("rejection mutated the set: Len = %d", s.Len())
	}
	// 3 renders GUUCGC, distance 2 from 0
	if !s.TryAccept(stem.New([]pairs.Code{3}, "UUCG")) {
		t.Fatal("distance-2 candidate rejected")
	}
}

func TestGeneratedBarcodesPairwiseDistinct(t *testing.T) {
	s := New()
	rng := sample.NewRand(2024)
	var got []stem.Barcode
	for i := 0; i < 300; i++ {
		b, err := s.Generate(rng, 6, []int{6, 5, 1}, "UUCG", 0)
		if err != nil {
			t.Fatalf("Generate #%d: %v", i, err)
		}
		got = append(got, b)
	}
	for i := range got {
		for j := i + 1; j < len(got); j++ {
			if stem.Neighbors(got[i], got[j]) || stem.Neighbors(got[j], got[i]) {
				t.Fatalf("barcodes %v and %v are within distance 1", got[i].BasePairs, got[j].BasePairs)
			}
		}
	}
}

func TestGenerateCapacity(t *testing.T) {
	s := New()
	rng := sample.NewRand(1)
	// a single AU/UA pair has at most two renderings; both share nothing but
	// each blocks itself, so the third request must fail.
	for i := 0; i < 2; i++ {
		if _, err := s.Generate(rng, 1, []int{1, 0, 0}, "UUCG", 1000); err != nil {
			t.Fatalf("Generate #%d: %v", i, err)
		}
	}
	_, err := s.Generate(rng, 1, []int{1, 0, 0}, "UUCG", 1000)
	if !errors.Is(err, ErrCapacity) {
		t.Fatalf("want ErrCapacity, got %v", err)
	}
}

func TestGeneratePrecondition(t *testing.T) {
	_, err := New().Generate(sample.NewRand(1), 5, []int{1, 1, 1}, "UUCG", 10)
	if !errors.Is(err, sample.ErrInsufficient) {
		t.Fatalf("want ErrInsufficient, got %v", err)
	}
}

func TestRemoveAndMembers(t *testing.T) {
	s := New()
	s.Add("B")
	s.Add("A")
	if s.Add("A") {
		t.Fatal("duplicate Add reported new")
	}
	if got := s.Members(); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Fatalf("Members = %v", got)
	}
	if !s.Remove("A") || s.Remove("A") || s.Has("A") {
		t.Fatal("Remove semantics broken")
	}
}

func TestConcurrentTryAccept(t *testing.T) {
	s := New()
	b := stem.New([]pairs.Code{1, 1, 1}, "GAAA")
	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if s.TryAccept(b) {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if accepted != 1 {
		t.Fatalf("accepted %d times, want exactly 1", accepted)
	}
}
