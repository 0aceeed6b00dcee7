// internal/cli/barcode.go
package cli

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"stemcode-core/exclusion"
	"stemcode/internal/barcodedb"
	"stemcode/internal/pipeline"
	"stemcode/internal/writers"
)

func newBarcodeCmd(e *env) *cobra.Command {
	var (
		n       int
		output  string
		avoid   string
		saveReg string
	)
	cmd := &cobra.Command{
		Use:   "barcode",
		Short: "Generate a set of barcodes",
		Long: `Generate barcodes that are pairwise more than one base-pair substitution
apart. The barcode length, loop and pair bounds come from the configuration.`,
		Example: `  stemcode barcode -n 96
  stemcode barcode -n 1000 --barcode-length 10 --output jsonl --seed 3`,
		SuggestionsMinimumDistance: 2,
		Args:                       cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 0 {
				return UsageError{errors.New("-n must be >= 0, got " + strconv.Itoa(n))}
			}
			set := exclusion.New()
			if avoid != "" {
				reg, err := barcodedb.Load(avoid)
				if err != nil {
					return err
				}
				reg.Seed(set)
			}
			bs, err := pipeline.Barcodes(cmd.Context(), n, e.cfg, set)
			if err != nil {
				return err
			}
			if saveReg != "" {
				if err := barcodedb.Save(saveReg, barcodedb.FromSet(set, e.cfg.RNALoop(), e.cfg.NullBarcode)); err != nil {
					return err
				}
			}
			e.log.Info("generated barcodes", "count", len(bs), "length", e.cfg.BarcodeLength)
			err = writers.WriteBarcodes(output, e.stdout, bs)
			if writers.IsBrokenPipe(err) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&n, "count", "n", 1, "number of barcodes")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "text|jsonl")
	cmd.Flags().StringVar(&avoid, "avoid", "", "registry of earlier barcodes to stay clear of")
	cmd.Flags().StringVar(&saveReg, "save-registry", "", "save the generated barcodes to a registry file")
	return cmd
}
