// core/fasta/fasta.go
package fasta

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Record is one FASTA entry. Header excludes the leading '>'.
type Record struct {
	Header string
	Seq    string
}

// Scan parses FASTA from r and calls emit once per record. Sequence lines are
// whitespace-stripped and concatenated. Cancellation is checked per line.
func Scan(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		cur     Record
		started bool
		seq     strings.Builder
	)
	flush := func() error {
		if !started {
			return nil
		}
		cur.Seq = seq.String()
		seq.Reset()
		return emit(cur)
	}

	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := sc.Text()
		if strings.HasPrefix(line, ">") {
			if err := flush(); err != nil {
				return err
			}
			cur = Record{Header: strings.TrimSpace(line[1:])}
			started = true
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !started {
			return fmt.Errorf("fasta: sequence data before first header: %q", line)
		}
		seq.WriteString(line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// ReadFile reads every record of path. When valid is non-nil, records whose
// sequence fails it are dropped and counted.
func ReadFile(ctx context.Context, path string, valid func(string) bool) (recs []Record, invalid int, err error) {
	rc, err := Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer rc.Close()

	err = Scan(ctx, rc, func(r Record) error {
		if valid != nil && !valid(r.Seq) {
			invalid++
			return nil
		}
		recs = append(recs, r)
		return nil
	})
	return recs, invalid, err
}

// Write emits records with one sequence line each. A header that already
// starts with '>' is written as is.
func Write(w io.Writer, recs []Record) error {
	for _, r := range recs {
		h := r.Header
		if !strings.HasPrefix(h, ">") {
			h = ">" + h
		}
		if _, err := fmt.Fprintf(w, "%s\n%s\n", h, r.Seq); err != nil {
			return err
		}
	}
	return nil
}

// Dedupe keeps the first record of each distinct sequence and returns the
// number dropped.
func Dedupe(recs []Record) ([]Record, int) {
	seen := make(map[string]struct{}, len(recs))
	out := recs[:0:0]
	for _, r := range recs {
		if _, ok := seen[r.Seq]; ok {
			continue
		}
		seen[r.Seq] = struct{}{}
		out = append(out, r)
	}
	return out, len(recs) - len(out)
}

// UniqueLengths returns the sorted distinct sequence lengths.
func UniqueLengths(recs []Record) []int {
	seen := map[int]struct{}{}
	var out []int
	for _, r := range recs {
		if _, ok := seen[len(r.Seq)]; ok {
			continue
		}
		seen[len(r.Seq)] = struct{}{}
		out = append(out, len(r.Seq))
	}
	sort.Ints(out)
	return out
}
