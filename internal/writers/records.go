// internal/writers/records.go
package writers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"stemcode-core/fasta"
	"stemcode-core/library"
	"stemcode/internal/jsonlutil"
	"stemcode/internal/records"
	"stemcode/pkg/api"
)

func init() {
	Register("csv", records.WriteCSV)
	Register("fasta", writeFASTA)
	Register("tsv", writeTSV)
	Register("jsonl", writeJSONL)
}

func writeFASTA(w io.Writer, recs []library.Record) error {
	out := make([]fasta.Record, len(recs))
	for i, r := range recs {
		out[i] = fasta.Record{Header: r.Name, Seq: r.Sequence()}
	}
	return fasta.Write(w, out)
}

// TSVHeader is the column line of tsv output.
const TSVHeader = "name\tfive_prime_constant\tfive_prime_padding\tdesign\tthree_prime_padding\tbarcode\tthree_prime_constant\tlength"

func writeTSV(w io.Writer, recs []library.Record) error {
	if _, err := fmt.Fprintln(w, TSVHeader); err != nil {
		return err
	}
	for _, r := range recs {
		reg := r.Regions()
		if _, err := fmt.Fprintf(w, "%s\t%s\t%d\n", r.Name, strings.Join(reg[:], "\t"), r.Len()); err != nil {
			return err
		}
	}
	return nil
}

// ToAPI converts a record to its v1 wire form.
func ToAPI(r library.Record) api.RecordV1 {
	return api.RecordV1{
		Name:          r.Name,
		FiveConstant:  r.FiveConstant,
		FivePadding:   r.FivePadding,
		Design:        r.Design,
		ThreePadding:  r.ThreePadding,
		Barcode:       r.Barcode,
		ThreeConstant: r.ThreeConstant,
		Sequence:      r.Sequence(),
		Length:        r.Len(),
	}
}

func writeJSONL(w io.Writer, recs []library.Record) error {
	return jsonlutil.WriteAll(w, recs, func(enc *json.Encoder, r library.Record) error {
		return enc.Encode(ToAPI(r))
	}, IsBrokenPipe)
}
