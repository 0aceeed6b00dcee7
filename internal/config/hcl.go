// internal/config/hcl.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// hclRunFile is the decoding target for .hcl run files. Unset attributes
// stay nil so they do not shadow lower-precedence values.
type hclRunFile struct {
	Loop               *string `hcl:"loop,optional"`
	FivePrimeConstant  *string `hcl:"five-prime-constant,optional"`
	ThreePrimeConstant *string `hcl:"three-prime-constant,optional"`
	MinStem            *int    `hcl:"min-stem,optional"`
	MaxStem            *int    `hcl:"max-stem,optional"`
	PadTo              *int    `hcl:"pad-to,optional"`
	PadSide            *string `hcl:"pad-side,optional"`
	BarcodeLength      *int    `hcl:"barcode-length,optional"`
	FinalLength        *int    `hcl:"final-length,optional"`
	MaxOccurrences     *[]int  `hcl:"max-occurrences,optional"`
	TrimFive           *int    `hcl:"trim-five,optional"`
	TrimThree          *int    `hcl:"trim-three,optional"`
	Repad              *bool   `hcl:"repad,optional"`
	NullBarcode        *string `hcl:"null-barcode,optional"`
	MaxAttempts        *int    `hcl:"max-attempts,optional"`
	ProgressEvery      *int    `hcl:"progress-every,optional"`
	Seed               *uint64 `hcl:"seed,optional"`
	Threads            *int    `hcl:"threads,optional"`
	DNA                *bool   `hcl:"dna,optional"`
	ExpandAmbiguous    *bool   `hcl:"expand-ambiguous,optional"`
	LogLevel           *string `hcl:"log-level,optional"`
	LogFormat          *string `hcl:"log-format,optional"`
	Quiet              *bool   `hcl:"quiet,optional"`
}

// envContext exposes the process environment as env.NAME.
func envContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		vars[k] = cty.StringVal(v)
	}
	env := cty.EmptyObjectVal
	if len(vars) > 0 {
		env = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{Variables: map[string]cty.Value{"env": env}}
}

func loadHCL(path string) (map[string]any, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: parse %s: %w", ErrInvalid, path, diags)
	}
	var rf hclRunFile
	if diags := gohcl.DecodeBody(f.Body, envContext(), &rf); diags.HasErrors() {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrInvalid, path, diags)
	}

	m := map[string]any{}
	setIf(m, "loop", rf.Loop)
	setIf(m, "five-prime-constant", rf.FivePrimeConstant)
	setIf(m, "three-prime-constant", rf.ThreePrimeConstant)
	setIf(m, "min-stem", rf.MinStem)
	setIf(m, "max-stem", rf.MaxStem)
	setIf(m, "pad-to", rf.PadTo)
	setIf(m, "pad-side", rf.PadSide)
	setIf(m, "barcode-length", rf.BarcodeLength)
	setIf(m, "final-length", rf.FinalLength)
	setIf(m, "max-occurrences", rf.MaxOccurrences)
	setIf(m, "trim-five", rf.TrimFive)
	setIf(m, "trim-three", rf.TrimThree)
	setIf(m, "repad", rf.Repad)
	setIf(m, "null-barcode", rf.NullBarcode)
	setIf(m, "max-attempts", rf.MaxAttempts)
	setIf(m, "progress-every", rf.ProgressEvery)
	setIf(m, "seed", rf.Seed)
	setIf(m, "threads", rf.Threads)
	setIf(m, "dna", rf.DNA)
	setIf(m, "expand-ambiguous", rf.ExpandAmbiguous)
	setIf(m, "log-level", rf.LogLevel)
	setIf(m, "log-format", rf.LogFormat)
	setIf(m, "quiet", rf.Quiet)
	return m, nil
}

func setIf[T any](m map[string]any, key string, p *T) {
	if p != nil {
		m[key] = *p
	}
}
