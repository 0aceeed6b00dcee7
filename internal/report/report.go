// Package report collects run counters and renders them for people (a
// tree) or machines (JSON).
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/disiqueira/gotree/v3"

	"stemcode-core/library"
	"stemcode/internal/records"
	"stemcode/pkg/api"
)

// Summary is everything a build reports at the end.
type Summary struct {
	Input   string
	Records int

	Designs   records.DesignStats
	Reconcile library.Reconciliation

	PadTo  int
	Padded int

	Barcoded    int
	Null        string
	NullRemoved int

	FinalLength        int
	LengthDiscrepancy  int
	BarcodeDiscrepancy int
	ExclusionSetSize   int
}

// API converts s to its stable wire form.
func (s Summary) API() api.SummaryV1 {
	return api.SummaryV1{
		Records:            s.Records,
		InvalidInput:       s.Designs.Invalid,
		DuplicateDesigns:   s.Designs.Duplicates,
		DesignLengths:      s.Designs.Lengths,
		ExistingBarcodes:   s.Reconcile.Existing,
		DuplicateBarcodes:  s.Reconcile.Duplicates,
		NullBarcodes:       s.Reconcile.Nulls,
		WrongLengthBarcode: s.Reconcile.WrongLength,
		MissingDesign:      s.Reconcile.MissingDesign,
		InvalidRecords:     s.Reconcile.Invalid,
		Padded:             s.Padded,
		PadTo:              s.PadTo,
		Barcoded:           s.Barcoded,
		NullRemoved:        s.NullRemoved,
		FinalLength:        s.FinalLength,
		LengthDiscrepancy:  s.LengthDiscrepancy,
		BarcodeDiscrepancy: s.BarcodeDiscrepancy,
		ExclusionSetSize:   s.ExclusionSetSize,
	}
}

// Tree renders s as an indented tree.
func (s Summary) Tree() string {
	root := gotree.New(fmt.Sprintf("%s: %d records", label(s.Input), s.Records))

	if d := s.Designs; d.Invalid > 0 || d.Duplicates > 0 || len(d.Lengths) > 0 {
		in := root.Add("input")
		in.Add(fmt.Sprintf("invalid sequences skipped: %d", s.Designs.Invalid))
		in.Add(fmt.Sprintf("duplicate designs removed: %d", s.Designs.Duplicates))
		in.Add(fmt.Sprintf("design lengths: %v", s.Designs.Lengths))
	}

	bc := root.Add("existing barcodes")
	bc.Add(fmt.Sprintf("non-null: %d", s.Reconcile.Existing+s.Reconcile.Duplicates))
	bc.Add(fmt.Sprintf("not unique, removed: %d", s.Reconcile.Duplicates))
	bc.Add(fmt.Sprintf("null (%s): %d", s.Null, s.Reconcile.Nulls))
	if s.Reconcile.WrongLength > 0 {
		bc.Add(fmt.Sprintf("unexpected length: %d", s.Reconcile.WrongLength))
	}

	if s.Reconcile.MissingDesign > 0 || s.Reconcile.Invalid > 0 {
		q := root.Add("input problems")
		q.Add(fmt.Sprintf("missing design: %d", s.Reconcile.MissingDesign))
		q.Add(fmt.Sprintf("invalid nucleic acid: %d", s.Reconcile.Invalid))
	}

	run := root.Add("build")
	run.Add(fmt.Sprintf("padded to %d nt: %d", s.PadTo, s.Padded))
	run.Add(fmt.Sprintf("barcoded: %d", s.Barcoded))
	run.Add(fmt.Sprintf("null barcodes removed: %d", s.NullRemoved))

	d := root.Add("discrepancies")
	d.Add(fmt.Sprintf("not %d nt: %d", s.FinalLength, s.LengthDiscrepancy))
	d.Add(fmt.Sprintf("without a unique barcode: %d", s.BarcodeDiscrepancy))

	return root.Print()
}

func label(input string) string {
	if input == "" || input == "-" {
		return "stdin"
	}
	return input
}

// Write renders s in format "text" (tree) or "json".
func Write(w io.Writer, format string, s Summary) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s.API())
	case "text", "":
		_, err := io.WriteString(w, s.Tree())
		return err
	}
	return fmt.Errorf("unknown summary format %q (have text, json)", format)
}
