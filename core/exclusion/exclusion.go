// core/exclusion/exclusion.go
package exclusion

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"stemcode-core/sample"
	"stemcode-core/stem"
)

// ErrCapacity is returned when the regeneration loop gives up.
var ErrCapacity = errors.New("barcode capacity exhausted")

// DefaultMaxAttempts bounds Generate when the caller passes 0.
const DefaultMaxAttempts = 100_000

// Set is the exclusion set of rendered barcodes accepted during one run.
// All methods are safe for concurrent use; TryAccept is atomic.
type Set struct {
	mu sync.Mutex
	m  map[string]struct{}
}

// New returns an empty set.
func New() *Set { return &Set{m: make(map[string]struct{})} }

// TryAccept accepts b when no member of its radius-1 ball is already present.
// On rejection the set is unchanged.
func (s *Set) TryAccept(b stem.Barcode) bool {
	ball := b.BallStrings()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range ball {
		if _, ok := s.m[r]; ok {
			return false
		}
	}
	s.m[ball[len(ball)-1]] = struct{}{}
	return true
}

// Add inserts a raw string and reports whether it was newly added.
func (s *Set) Add(barcode string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[barcode]; ok {
		return false
	}
	s.m[barcode] = struct{}{}
	return true
}

// Remove deletes barcode and reports whether it was present.
func (s *Set) Remove(barcode string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[barcode]; !ok {
		return false
	}
	delete(s.m, barcode)
	return true
}

func (s *Set) Has(barcode string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.m[barcode]
	return ok
}

func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

// Members returns the set contents in sorted order.
func (s *Set) Members() []string {
	s.mu.Lock()
	out := make([]string, 0, len(s.m))
	for k := range s.m {
		out = append(out, k)
	}
	s.mu.Unlock()
	sort.Strings(out)
	return out
}

// Generate draws random barcodes until one is accepted or maxAttempts
// candidates have been rejected. maxAttempts <= 0 means DefaultMaxAttempts.
func (s *Set) Generate(rng sample.Rand, length int, maxOccurrences []int, loop string, maxAttempts int) (stem.Barcode, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	for i := 0; i < maxAttempts; i++ {
		b, err := stem.Random(rng, length, maxOccurrences, loop)
		if err != nil {
			return stem.Barcode{}, err
		}
		if s.TryAccept(b) {
			return b, nil
		}
	}
	return stem.Barcode{}, fmt.Errorf("%w: no %d-pair barcode accepted after %d attempts (%d barcodes issued)",
		ErrCapacity, length, maxAttempts, s.Len())
}
