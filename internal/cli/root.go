// Package cli is the stemcode command tree.
package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"stemcode/internal/cmdutil"
	"stemcode/internal/config"
	"stemcode/internal/version"
)

// UsageError marks bad command-line input.
type UsageError struct{ Err error }

func (e UsageError) Error() string { return e.Err.Error() }
func (e UsageError) Unwrap() error { return e.Err }

// env is shared by the commands of one invocation.
type env struct {
	v       *viper.Viper
	cfgFile string
	stdout  io.Writer
	stderr  io.Writer
	cfg     config.Config
	log     *slog.Logger
}

// NewRoot builds the command tree for one invocation. Each call gets its own
// viper instance.
func NewRoot(stdout, stderr io.Writer) *cobra.Command {
	e := &env{v: viper.New(), stdout: stdout, stderr: stderr}
	config.SetDefaults(e.v)

	root := &cobra.Command{
		Use:   "stemcode",
		Short: "Pad and barcode synthetic nucleic-acid libraries",
		Long: `Pad and barcode synthetic nucleic-acid libraries.

Each design is padded to a common length with random filler and hairpin
stems, then tagged with a hairpin barcode that differs from every other
barcode in the library by more than one base-pair substitution.`,
		Version:                    version.Version,
		SuggestionsMinimumDistance: 2,
		SilenceUsage:               true,
		SilenceErrors:              true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.load()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return UsageError{err}
	})

	root.PersistentFlags().StringVarP(&e.cfgFile, "config", "c", "", "config file (yaml, json, toml or hcl)")
	registerConfigFlags(root)
	if err := e.v.BindPFlags(root.PersistentFlags()); err != nil {
		panic(err)
	}

	root.AddCommand(
		newBuildCmd(e),
		newBarcodeCmd(e),
		newPadCmd(e),
		newCheckCmd(e),
		newRemoveCmd(e),
		newDocsCmd(root),
	)
	return root
}

// load merges the config file and decodes the settings.
func (e *env) load() error {
	if err := config.ReadFile(e.v, e.cfgFile); err != nil {
		if errors.Is(err, config.ErrInvalid) {
			return err
		}
		return UsageError{err}
	}
	cfg, err := config.New(e.v)
	if err != nil {
		return err
	}
	e.cfg = cfg
	e.log = cmdutil.NewLogger(cfg.LogLevel, cfg.LogFormat, cfg.Quiet, e.stderr)
	return nil
}

// registerConfigFlags adds one persistent flag per configuration key.
// Flags only override lower layers when set explicitly.
func registerConfigFlags(root *cobra.Command) {
	d := config.Defaults
	f := root.PersistentFlags()
	f.String("loop", d["loop"].(string), "hairpin loop for barcodes and padding stems")
	f.String("five-prime-constant", d["five-prime-constant"].(string), "5' constant region")
	f.String("three-prime-constant", d["three-prime-constant"].(string), "3' constant region")
	f.Int("min-stem", d["min-stem"].(int), "shortest padding stem in base pairs; shorter gaps get random filler")
	f.Int("max-stem", d["max-stem"].(int), "longest padding stem in base pairs")
	f.Int("pad-to", d["pad-to"].(int), "padded design length")
	f.String("pad-side", d["pad-side"].(string), "where padding goes: five|three|both")
	f.Int("barcode-length", d["barcode-length"].(int), "barcode stem length in base pairs")
	f.Int("final-length", d["final-length"].(int), "expected full record length")
	f.IntSlice("max-occurrences", d["max-occurrences"].([]int), "per-category pair bounds (AU, CG, GU)")
	f.Int("trim-five", d["trim-five"].(int), "bases to cut from the 5' end of every design")
	f.Int("trim-three", d["trim-three"].(int), "bases to cut from the 3' end of every design")
	f.Bool("repad", d["repad"].(bool), "discard existing padding before padding")
	f.String("null-barcode", d["null-barcode"].(string), "barcode marking records that stay unbarcoded")
	f.Int("max-attempts", d["max-attempts"].(int), "rejected candidates before giving up on a barcode")
	f.Int("progress-every", d["progress-every"].(int), "log barcoding progress every N records (0 = off)")
	f.Uint64("seed", d["seed"].(uint64), "random seed (0 = time based)")
	f.Int("threads", d["threads"].(int), "padding workers (0 = all CPUs)")
	f.Bool("dna", d["dna"].(bool), "write output in DNA letters")
	f.Bool("expand-ambiguous", d["expand-ambiguous"].(bool), "replace ambiguity codes in designs with random bases")
	f.String("log-level", d["log-level"].(string), "debug|info|warn|error")
	f.String("log-format", d["log-format"].(string), "text|json|auto")
	f.BoolP("quiet", "q", d["quiet"].(bool), "only log errors")
}
