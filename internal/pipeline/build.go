// internal/pipeline/build.go
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"stemcode-core/exclusion"
	"stemcode-core/library"
	"stemcode-core/nucleic"
	"stemcode-core/sample"
	"stemcode/internal/barcodedb"
	"stemcode/internal/config"
	"stemcode/internal/records"
	"stemcode/internal/report"
	"stemcode/pkg/api"
)

// Options carries per-run inputs that are not configuration.
type Options struct {
	Input   string
	Designs records.DesignStats
	Avoid   *barcodedb.Registry // earlier barcodes to stay clear of
	Log     *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Log
}

// prepare normalizes lib for cfg and seeds its exclusion set, registry
// first, so input barcodes already issued count as duplicates. Ambiguity
// codes are expanded only when rng is non-nil.
func prepare(lib *library.Library, cfg config.Config, opt Options, s *report.Summary, rng sample.Rand) {
	log := opt.logger()
	lib.Loop = cfg.RNALoop()
	lib.Null = cfg.NullBarcode
	lib.Log = log
	lib.Normalize()
	if cfg.ExpandAmbiguous && rng != nil {
		lib.ExpandAmbiguous(rng)
	}

	if opt.Avoid != nil {
		n := opt.Avoid.Seed(lib.Set)
		log.Info("seeded exclusion set from registry", "barcodes", n)
	}

	s.Reconcile = lib.Reconcile(cfg.BarcodeNT(), nucleic.IsValid)
	log.Info("reconciled existing barcodes",
		"records", lib.Len(),
		"existing", s.Reconcile.Existing+s.Reconcile.Duplicates,
		"not_unique_removed", s.Reconcile.Duplicates,
		"null", s.Reconcile.Nulls)
}

func newSummary(lib *library.Library, cfg config.Config, opt Options) report.Summary {
	return report.Summary{
		Input:       opt.Input,
		Records:     lib.Len(),
		Designs:     opt.Designs,
		PadTo:       cfg.PadTo,
		Null:        cfg.NullBarcode,
		FinalLength: cfg.FinalLength,
	}
}

// Build runs the full library build: reconcile, pad, barcode, drop the null
// sentinel, apply constant regions and report discrepancies. Records are
// left in DNA letters when cfg.DNA is set.
func Build(ctx context.Context, lib *library.Library, cfg config.Config, opt Options) (report.Summary, error) {
	log := opt.logger()
	s := newSummary(lib, cfg, opt)
	rng := cfg.Rand()

	prepare(lib, cfg, opt, &s, rng)
	if cfg.TrimFive > 0 || cfg.TrimThree > 0 {
		if err := lib.TrimDesign(cfg.TrimFive, cfg.TrimThree); err != nil {
			return s, err
		}
		log.Info("trimmed designs", "five", cfg.TrimFive, "three", cfg.TrimThree)
	}
	if cfg.Repad {
		lib.SetPadding("", "")
		log.Info("cleared existing padding", "records", lib.Len())
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = rng.Uint64()
	}
	padded, err := Pad(ctx, lib, PadConfig{
		Target:  cfg.PadTo,
		Side:    cfg.Side(),
		Params:  cfg.Padding(),
		Seed:    seed,
		Threads: cfg.Threads,
	})
	if err != nil {
		return s, fmt.Errorf("padding: %w", err)
	}
	s.Padded = padded
	log.Info("padded records", "records", padded, "pad_to", cfg.PadTo, "side", cfg.Side().String())

	s.Barcoded, err = lib.Barcode(ctx, rng, cfg.Barcode())
	if err != nil {
		return s, fmt.Errorf("barcoding: %w", err)
	}
	log.Info("barcoded records", "records", s.Barcoded)

	if cfg.NullBarcode != "" {
		s.NullRemoved = lib.RemoveBarcode(cfg.NullBarcode)
		log.Info("removed null barcodes", "barcode", cfg.NullBarcode, "records", s.NullRemoved)
	}

	lib.ReplaceConstants(rna(cfg.FivePrimeConstant), rna(cfg.ThreePrimeConstant))
	finish(lib, cfg, &s, log)
	return s, nil
}

// Check reconciles lib and reports discrepancies without changing padding
// or assigning barcodes.
func Check(lib *library.Library, cfg config.Config, opt Options) report.Summary {
	s := newSummary(lib, cfg, opt)
	prepare(lib, cfg, opt, &s, nil)
	finish(lib, cfg, &s, opt.logger())
	return s
}

func finish(lib *library.Library, cfg config.Config, s *report.Summary, log *slog.Logger) {
	s.LengthDiscrepancy = lib.LengthDiscrepancy(cfg.FinalLength)
	s.BarcodeDiscrepancy = lib.BarcodeDiscrepancy()
	s.ExclusionSetSize = lib.Set.Len()
	for _, r := range lib.Records {
		if r.Len() != cfg.FinalLength {
			log.Debug("length discrepancy", "name", r.Name, "length", r.Len(), "record", r.Separated())
		}
	}
	if cfg.DNA {
		lib.ToDNA()
	}
}

// Remove strips barcode from lib after reconciliation and returns the
// number of records changed.
func Remove(lib *library.Library, cfg config.Config, barcode string, opt Options) (int, report.Summary) {
	s := newSummary(lib, cfg, opt)
	prepare(lib, cfg, opt, &s, nil)
	n := lib.RemoveBarcode(rna(barcode))
	if barcode == cfg.NullBarcode {
		s.NullRemoved = n
	}
	finish(lib, cfg, &s, opt.logger())
	return n, s
}

// Barcodes generates n barcodes that are pairwise further than one
// substitution apart and clear of avoid.
func Barcodes(ctx context.Context, n int, cfg config.Config, avoid *exclusion.Set) ([]api.BarcodeV1, error) {
	if avoid == nil {
		avoid = exclusion.New()
	}
	rng := cfg.Rand()
	out := make([]api.BarcodeV1, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		b, err := avoid.Generate(rng, cfg.BarcodeLength, cfg.MaxOccurrences, cfg.RNALoop(), cfg.MaxAttempts)
		if err != nil {
			return out, err
		}
		codes := make([]int, len(b.BasePairs))
		for j, c := range b.BasePairs {
			codes[j] = int(c)
		}
		seq := b.String()
		if cfg.DNA {
			seq = nucleic.ToDNA(seq)
		}
		out = append(out, api.BarcodeV1{Index: i + 1, Barcode: seq, BasePairs: codes, Length: len(seq)})
	}
	return out, nil
}

func rna(s string) string { return nucleic.ToRNA(nucleic.Normalize(s)) }
