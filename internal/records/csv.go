// internal/records/csv.go
package records

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"stemcode-core/fasta"
	"stemcode-core/library"
)

// Header is the column layout of library CSV files.
var Header = []string{
	"Name",
	"5' Constant Region",
	"5' Padding",
	"Design Region",
	"3' Padding",
	"Barcode",
	"3' Constant Region",
}

// ReadCSV parses a library table. The first row is the header and is
// skipped; every other row needs at least seven columns.
func ReadCSV(r io.Reader) ([]library.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("csv header: %w", err)
	}
	var out []library.Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("csv: %w", err)
		}
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}
		if len(row) < len(Header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("csv line %d: want %d columns, got %d", line, len(Header), len(row))
		}
		for i := range row {
			row[i] = strings.TrimSpace(row[i])
		}
		out = append(out, library.Record{
			Name:          row[0],
			FiveConstant:  row[1],
			FivePadding:   row[2],
			Design:        row[3],
			ThreePadding:  row[4],
			Barcode:       row[5],
			ThreeConstant: row[6],
		})
	}
}

// ReadCSVFile is ReadCSV over a path; "-" is stdin and gzip is detected.
func ReadCSVFile(path string) ([]library.Record, error) {
	rc, err := fasta.Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	recs, err := ReadCSV(rc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}

// WriteCSV writes recs under Header.
func WriteCSV(w io.Writer, recs []library.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range recs {
		reg := r.Regions()
		row := append([]string{r.Name}, reg[:]...)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
