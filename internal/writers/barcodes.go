// internal/writers/barcodes.go
package writers

import (
	"encoding/json"
	"fmt"
	"io"

	"stemcode/internal/jsonlutil"
	"stemcode/pkg/api"
)

// WriteBarcodes emits generated barcodes as text (one per line) or jsonl.
func WriteBarcodes(format string, w io.Writer, bs []api.BarcodeV1) error {
	switch format {
	case "text", "":
		for _, b := range bs {
			if _, err := fmt.Fprintln(w, b.Barcode); err != nil {
				return err
			}
		}
		return nil
	case "jsonl":
		return jsonlutil.WriteAll(w, bs, func(enc *json.Encoder, b api.BarcodeV1) error {
			return enc.Encode(b)
		}, IsBrokenPipe)
	}
	return fmt.Errorf("unknown barcode format %q (have text, jsonl)", format)
}

// WritePadding emits one padding region as text, or as a JSON document
// carrying its segments.
func WritePadding(format string, w io.Writer, p api.PaddingV1) error {
	switch format {
	case "text", "":
		_, err := fmt.Fprintln(w, p.Sequence)
		return err
	case "json", "jsonl":
		return json.NewEncoder(w).Encode(p)
	}
	return fmt.Errorf("unknown padding format %q (have text, json)", format)
}
