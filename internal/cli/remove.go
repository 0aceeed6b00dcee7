// internal/cli/remove.go
package cli

import (
	"github.com/spf13/cobra"

	"stemcode-core/library"
	"stemcode/internal/pipeline"
)

func newRemoveCmd(e *env) *cobra.Command {
	var (
		inputs  []string
		format  string
		barcode string
		out     outputFlags
	)
	cmd := &cobra.Command{
		Use:   "remove [inputs...]",
		Short: "Strip a barcode from every record holding it",
		Long: `Strip a literal barcode from every record that holds it and from the
library's barcode set. By default the null barcode is removed.`,
		Example:                    `  stemcode remove -i library.csv --barcode N --csv stripped.csv`,
		SuggestionsMinimumDistance: 2,
		RunE: func(cmd *cobra.Command, args []string) error {
			all := append(inputs, args...)
			recs, stats, err := loadInputs(cmd.Context(), all, format)
			if err != nil {
				return err
			}
			if barcode == "" {
				barcode = e.cfg.NullBarcode
			}
			lib := library.New(recs, e.cfg.RNALoop())
			n, s := pipeline.Remove(lib, e.cfg, barcode, pipeline.Options{Input: inputLabel(all), Designs: stats, Log: e.log})
			e.log.Info("removed barcode", "barcode", barcode, "records", n)
			if err := out.write(e, lib.Records); err != nil {
				return err
			}
			return out.report(e, s)
		},
	}
	cmd.Flags().StringSliceVarP(&inputs, "input", "i", nil, "input library (repeatable)")
	cmd.Flags().StringVar(&format, "format", "auto", "input format: auto|csv|fasta")
	cmd.Flags().StringVarP(&barcode, "barcode", "b", "", "barcode to strip (default: the null barcode)")
	out.register(cmd)
	return cmd
}
