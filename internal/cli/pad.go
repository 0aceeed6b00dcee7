// internal/cli/pad.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stemcode-core/nucleic"
	"stemcode-core/padding"
	"stemcode/internal/writers"
	"stemcode/pkg/api"
)

func newPadCmd(e *env) *cobra.Command {
	var (
		length int
		output string
	)
	cmd := &cobra.Command{
		Use:   "pad",
		Short: "Assemble one padding region",
		Long: `Assemble padding of an exact length from hairpin stems and random filler,
using the stem bounds and loop from the configuration.`,
		Example:                    `  stemcode pad -L 72 --output json`,
		SuggestionsMinimumDistance: 2,
		Args:                       cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			segs, err := padding.Assemble(e.cfg.Rand(), length, e.cfg.Padding())
			if err != nil {
				return err
			}
			p := api.PaddingV1{Length: length}
			for _, s := range segs {
				seq := s.Seq
				if e.cfg.DNA {
					seq = nucleic.ToDNA(seq)
				}
				p.Segments = append(p.Segments, api.SegmentV1{Kind: s.Kind.String(), Seq: seq, Pairs: s.Pairs})
				p.Sequence += seq
				e.log.Debug("padding segment", "kind", s.Kind.String(), "pairs", s.Pairs, "seq", seq)
			}
			if len(p.Sequence) != length {
				return fmt.Errorf("internal: padding is %d nt, want %d", len(p.Sequence), length)
			}
			err = writers.WritePadding(output, e.stdout, p)
			if writers.IsBrokenPipe(err) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&length, "length", "L", 0, "padding length in nucleotides")
	cmd.Flags().StringVarP(&output, "output", "o", "text", "text|json")
	_ = cmd.MarkFlagRequired("length")
	return cmd
}
