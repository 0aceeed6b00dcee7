// internal/cli/check.go
package cli

import (
	"github.com/spf13/cobra"

	"stemcode-core/library"
	"stemcode/internal/pipeline"
	"stemcode/internal/report"
)

func newCheckCmd(e *env) *cobra.Command {
	var (
		inputs  []string
		format  string
		summary string
	)
	cmd := &cobra.Command{
		Use:   "check [inputs...]",
		Short: "Report barcode and length discrepancies of a library",
		Long: `Read a library, reconcile its existing barcodes and report duplicates,
null barcodes, records of the wrong length and records without a unique
barcode. Nothing is written back.`,
		Example:                    `  stemcode check -i output.csv --summary json`,
		SuggestionsMinimumDistance: 2,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := append(inputs, args...)
			recs, stats, err := loadInputs(cmd.Context(), all, format)
			if err != nil {
				return err
			}
			lib := library.New(recs, e.cfg.RNALoop())
			s := pipeline.Check(lib, e.cfg, pipeline.Options{Input: inputLabel(all), Designs: stats, Log: e.log})
			return report.Write(e.stdout, summary, s)
		},
	}
	cmd.Flags().StringSliceVarP(&inputs, "input", "i", nil, "input library (repeatable)")
	cmd.Flags().StringVar(&format, "format", "auto", "input format: auto|csv|fasta")
	cmd.Flags().StringVar(&summary, "summary", "text", "text|json")
	return cmd
}
