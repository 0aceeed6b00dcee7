// Package config holds run settings. Values come from defaults, an optional
// config file (yaml, json, toml or hcl), STEMCODE_* environment variables and
// command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"stemcode-core/library"
	"stemcode-core/nucleic"
	"stemcode-core/padding"
	"stemcode-core/pairs"
	"stemcode-core/sample"
)

// ErrInvalid marks a configuration that fails validation.
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix is prepended to upper-cased keys with dashes mapped to underscores.
const EnvPrefix = "STEMCODE"

// Config is the full set of run settings.
type Config struct {
	// hairpin loop shared by barcodes and padding stems
	Loop string `mapstructure:"loop"`

	FivePrimeConstant  string `mapstructure:"five-prime-constant"`
	ThreePrimeConstant string `mapstructure:"three-prime-constant"`

	// stem bounds for padding, in base pairs
	MinStem int `mapstructure:"min-stem"`
	MaxStem int `mapstructure:"max-stem"`

	// padded design length and which side receives padding
	PadTo   int    `mapstructure:"pad-to"`
	PadSide string `mapstructure:"pad-side"`

	// barcode stem length in base pairs
	BarcodeLength int `mapstructure:"barcode-length"`

	// expected full record length after barcoding
	FinalLength int `mapstructure:"final-length"`

	// per-category pair bounds: AU, CG, GU
	MaxOccurrences []int `mapstructure:"max-occurrences"`

	// bases cut from each end of every design before padding
	TrimFive  int `mapstructure:"trim-five"`
	TrimThree int `mapstructure:"trim-three"`

	// discard existing padding and pad every record from scratch
	Repad bool `mapstructure:"repad"`

	NullBarcode     string `mapstructure:"null-barcode"`
	MaxAttempts     int    `mapstructure:"max-attempts"`
	ProgressEvery   int    `mapstructure:"progress-every"`
	Seed            uint64 `mapstructure:"seed"`
	Threads         int    `mapstructure:"threads"`
	DNA             bool   `mapstructure:"dna"`
	ExpandAmbiguous bool   `mapstructure:"expand-ambiguous"`

	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
	Quiet     bool   `mapstructure:"quiet"`
}

// Defaults mirror the reference library build.
var Defaults = map[string]any{
	"loop":                 "UUCG",
	"five-prime-constant":  "ACTCGAGTAGAGTCGAAAA",
	"three-prime-constant": "AAAAGAAACAACAACAACAAC",
	"min-stem":             4,
	"max-stem":             16,
	"pad-to":               100,
	"pad-side":             "five",
	"barcode-length":       13,
	"final-length":         170,
	"max-occurrences":      []int{13, 5, 1},
	"trim-five":            0,
	"trim-three":           0,
	"repad":                false,
	"null-barcode":         library.DefaultNull,
	"max-attempts":         100_000,
	"progress-every":       100_000,
	"seed":                 uint64(0),
	"threads":              0,
	"dna":                  true,
	"expand-ambiguous":     false,
	"log-level":            "info",
	"log-format":           "auto",
	"quiet":                false,
}

// SetDefaults registers Defaults and environment lookup on v.
func SetDefaults(v *viper.Viper) {
	for k, val := range Defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// ReadFile merges a config file into v. ".hcl" files are decoded with the
// HCL loader; anything else goes through viper.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		m, err := loadHCL(path)
		if err != nil {
			return err
		}
		return v.MergeConfigMap(m)
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

// New decodes v into a validated Config.
func New(v *viper.Viper) (Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return c, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}

func invalid(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, a...))
}

// Validate checks ranges and cross-field constraints.
func (c Config) Validate() error {
	if c.Loop == "" {
		return invalid("loop must not be empty")
	}
	for name, s := range map[string]string{
		"loop":                 c.Loop,
		"five-prime-constant":  c.FivePrimeConstant,
		"three-prime-constant": c.ThreePrimeConstant,
	} {
		if !nucleic.IsValid(nucleic.Normalize(s)) {
			return invalid("%s %q is not a nucleic acid", name, s)
		}
	}
	if c.MinStem < 1 || c.MaxStem < 1 {
		return invalid("stem bounds must be >= 1 (min-stem=%d max-stem=%d)", c.MinStem, c.MaxStem)
	}
	if c.BarcodeLength < 1 {
		return invalid("barcode-length must be >= 1")
	}
	if n := len(c.MaxOccurrences); n == 0 || n > pairs.NumCategories {
		return invalid("max-occurrences needs 1 to %d bounds, got %d", pairs.NumCategories, n)
	}
	need := max(c.BarcodeLength, c.MaxStem)
	if err := sample.CheckBounds(need, c.MaxOccurrences); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.PadTo < 0 || c.FinalLength < 0 {
		return invalid("pad-to and final-length must be >= 0")
	}
	if _, err := library.ParseSide(c.PadSide); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.TrimFive < 0 || c.TrimThree < 0 {
		return invalid("trim-five and trim-three must be >= 0")
	}
	if c.Threads < 0 || c.MaxAttempts < 0 || c.ProgressEvery < 0 {
		return invalid("threads, max-attempts and progress-every must be >= 0")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return invalid("unknown log-level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "auto", "text", "json":
	default:
		return invalid("unknown log-format %q", c.LogFormat)
	}
	return nil
}

// RNALoop is the loop in the generator's alphabet.
func (c Config) RNALoop() string { return nucleic.ToRNA(nucleic.Normalize(c.Loop)) }

// Padding returns assembler parameters with a private exclusion set per call.
func (c Config) Padding() padding.Params {
	return padding.Params{
		MinStem:        c.MinStem,
		MaxStem:        c.MaxStem,
		MaxOccurrences: c.MaxOccurrences,
		Loop:           c.RNALoop(),
		MaxAttempts:    c.MaxAttempts,
	}
}

func (c Config) Barcode() library.BarcodeParams {
	return library.BarcodeParams{
		Length:         c.BarcodeLength,
		MaxOccurrences: c.MaxOccurrences,
		MaxAttempts:    c.MaxAttempts,
		ProgressEvery:  c.ProgressEvery,
	}
}

// Side is PadSide parsed; Validate guarantees it succeeds.
func (c Config) Side() library.Side {
	s, _ := library.ParseSide(c.PadSide)
	return s
}

// BarcodeNT is the rendered barcode length.
func (c Config) BarcodeNT() int { return 2*c.BarcodeLength + len(c.RNALoop()) }

// Rand returns the run's random source.
func (c Config) Rand() *rand.Rand { return sample.NewRand(c.Seed) }
