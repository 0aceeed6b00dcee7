// internal/cli/build.go
package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"stemcode-core/library"
	"stemcode/internal/barcodedb"
	"stemcode/internal/pipeline"
	"stemcode/internal/report"
	"stemcode/internal/writers"
)

type outputFlags struct {
	csv, fasta, tsv, jsonl string
	summary                string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.csv, "csv", "", "write the library as CSV (- for stdout, .gz to compress)")
	cmd.Flags().StringVar(&o.fasta, "fasta", "", "write the library as FASTA")
	cmd.Flags().StringVar(&o.tsv, "tsv", "", "write the library as TSV")
	cmd.Flags().StringVar(&o.jsonl, "jsonl", "", "write the library as JSON lines")
	cmd.Flags().StringVar(&o.summary, "summary", "text", "summary format on stderr: text|json|none")
}

// write emits every requested output; with none requested the library
// goes to stdout as CSV.
func (o *outputFlags) write(e *env, recs []library.Record) error {
	if o.csv == "" && o.fasta == "" && o.tsv == "" && o.jsonl == "" {
		o.csv = "-"
	}
	outs := map[string]string{"csv": o.csv, "fasta": o.fasta, "tsv": o.tsv, "jsonl": o.jsonl}
	formats := make([]string, 0, len(outs))
	stdout := 0
	for f, p := range outs {
		if p == "" {
			continue
		}
		if p == "-" {
			stdout++
		}
		formats = append(formats, f)
	}
	if stdout > 1 {
		return UsageError{fmt.Errorf("only one output can go to stdout")}
	}
	sort.Strings(formats)
	for _, f := range formats {
		if err := writers.WriteFile(f, outs[f], e.stdout, recs); err != nil {
			return err
		}
		e.log.Debug("wrote output", "format", f, "path", outs[f], "records", len(recs))
	}
	return nil
}

func (o *outputFlags) report(e *env, s report.Summary) error {
	if o.summary == "none" {
		return nil
	}
	return report.Write(e.stderr, o.summary, s)
}

func newBuildCmd(e *env) *cobra.Command {
	var (
		inputs  []string
		format  string
		avoid   string
		saveReg string
		out     outputFlags
	)
	cmd := &cobra.Command{
		Use:   "build [inputs...]",
		Short: "Pad, barcode and finish a library",
		Long: `Pad, barcode and finish a library.

Inputs are library CSV tables (Name plus six region columns) or FASTA files
of bare designs. Existing barcodes are kept when unique; the null barcode
marks records that must stay unbarcoded and is stripped at the end.`,
		Example: `  stemcode build -i library.csv --csv output.csv --fasta output.fasta
  stemcode build designs.fa --pad-side both --seed 7 --jsonl - --summary json
  stemcode build -i lib.csv --avoid earlier.reg --save-registry lib.reg --csv out.csv`,
		SuggestionsMinimumDistance: 2,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			recs, stats, err := loadInputs(ctx, append(inputs, args...), format)
			if err != nil {
				return err
			}
			e.log.Info("loaded library", "records", len(recs))

			opt := pipeline.Options{
				Input:   inputLabel(append(inputs, args...)),
				Designs: stats,
				Log:     e.log,
			}
			if avoid != "" {
				reg, err := barcodedb.Load(avoid)
				if err != nil {
					return err
				}
				opt.Avoid = &reg
			}

			lib := library.New(recs, e.cfg.RNALoop())
			s, err := pipeline.Build(ctx, lib, e.cfg, opt)
			if err != nil {
				return err
			}
			if saveReg != "" {
				if err := barcodedb.Save(saveReg, barcodedb.FromSet(lib.Set, e.cfg.RNALoop(), e.cfg.NullBarcode)); err != nil {
					return err
				}
				e.log.Info("saved barcode registry", "path", saveReg, "barcodes", lib.Set.Len())
			}
			if err := out.write(e, lib.Records); err != nil {
				return err
			}
			return out.report(e, s)
		},
	}
	cmd.Flags().StringSliceVarP(&inputs, "input", "i", nil, "input library CSV or design FASTA (repeatable, globs allowed, - for stdin)")
	cmd.Flags().StringVar(&format, "format", "auto", "input format: auto|csv|fasta")
	cmd.Flags().StringVar(&avoid, "avoid", "", "registry of earlier barcodes to stay clear of")
	cmd.Flags().StringVar(&saveReg, "save-registry", "", "save this run's barcodes to a registry file")
	out.register(cmd)
	return cmd
}
