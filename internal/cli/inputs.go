// internal/cli/inputs.go
package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"stemcode-core/library"
	"stemcode/internal/cliutil"
	"stemcode/internal/records"
)

// loadInputs reads and concatenates every input. Design statistics are
// summed over FASTA inputs.
func loadInputs(ctx context.Context, args []string, format string) ([]library.Record, records.DesignStats, error) {
	var stats records.DesignStats
	if len(args) == 0 {
		return nil, stats, UsageError{errors.New("no input given (pass files or -i)")}
	}
	if cliutil.CountStdin(args) > 1 {
		return nil, stats, UsageError{errors.New("stdin (-) given more than once")}
	}
	paths, err := cliutil.ExpandInputs(args)
	if err != nil {
		return nil, stats, UsageError{err}
	}
	var f records.Format
	switch format {
	case "", "auto":
	case "csv":
		f = records.CSV
	case "fasta":
		f = records.FASTA
	default:
		return nil, stats, UsageError{fmt.Errorf("unknown input format %q (have auto, csv, fasta)", format)}
	}

	var all []library.Record
	seenLen := map[int]bool{}
	for _, p := range paths {
		recs, st, err := records.Load(ctx, p, f)
		if err != nil {
			return nil, stats, err
		}
		all = append(all, recs...)
		stats.Invalid += st.Invalid
		stats.Duplicates += st.Duplicates
		for _, l := range st.Lengths {
			if !seenLen[l] {
				seenLen[l] = true
				stats.Lengths = append(stats.Lengths, l)
			}
		}
	}
	sort.Ints(stats.Lengths)
	return all, stats, nil
}

func inputLabel(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return fmt.Sprintf("%d inputs", len(args))
}
