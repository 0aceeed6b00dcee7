// internal/records/designs.go
package records

import (
	"context"
	"path/filepath"
	"strings"

	"stemcode-core/fasta"
	"stemcode-core/library"
	"stemcode-core/nucleic"
)

// DesignStats describes a FASTA design import.
type DesignStats struct {
	Invalid    int   // sequences outside the nucleic alphabet, skipped
	Duplicates int   // repeated sequences, dropped after the first
	Lengths    []int // distinct design lengths, ascending
}

// ReadDesigns loads a FASTA file of bare designs. Each sequence becomes the
// design region of a record named after its header, in RNA letters.
func ReadDesigns(ctx context.Context, path string) ([]library.Record, DesignStats, error) {
	var st DesignStats
	valid := func(s string) bool { return nucleic.IsValid(nucleic.Normalize(s)) }
	fr, invalid, err := fasta.ReadFile(ctx, path, valid)
	if err != nil {
		return nil, st, err
	}
	st.Invalid = invalid
	for i := range fr {
		fr[i].Seq = nucleic.ToRNA(nucleic.Normalize(fr[i].Seq))
	}
	fr, st.Duplicates = fasta.Dedupe(fr)
	st.Lengths = fasta.UniqueLengths(fr)

	out := make([]library.Record, len(fr))
	for i, r := range fr {
		out[i] = library.Record{Name: r.Header, Design: r.Seq}
	}
	return out, st, nil
}

// Format names an input layout.
type Format string

const (
	CSV   Format = "csv"
	FASTA Format = "fasta"
)

// DetectFormat guesses the input layout from the file name. Stdin and
// unknown extensions are read as CSV.
func DetectFormat(path string) Format {
	name := strings.TrimSuffix(strings.ToLower(path), ".gz")
	switch filepath.Ext(name) {
	case ".fa", ".fasta", ".fna", ".fas":
		return FASTA
	}
	return CSV
}

// Load reads path in format f; an empty f is detected from the name.
// Stats are only filled for FASTA input.
func Load(ctx context.Context, path string, f Format) ([]library.Record, DesignStats, error) {
	if f == "" {
		f = DetectFormat(path)
	}
	if f == FASTA {
		return ReadDesigns(ctx, path)
	}
	recs, err := ReadCSVFile(path)
	return recs, DesignStats{}, err
}
