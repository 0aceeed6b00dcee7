// internal/writers/registry.go
package writers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"syscall"

	"github.com/klauspost/compress/gzip"

	"stemcode-core/library"
)

// RecordWriter serializes a whole library.
type RecordWriter func(w io.Writer, recs []library.Record) error

// Record writers by format name. Registered from init() blocks.
var recordWriters = map[string]RecordWriter{}

// Register adds or replaces the writer for format.
func Register(format string, fn RecordWriter) { recordWriters[format] = fn }

// Formats lists registered format names.
func Formats() []string {
	out := make([]string, 0, len(recordWriters))
	for k := range recordWriters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Write dispatches to the writer registered for format.
func Write(format string, w io.Writer, recs []library.Record) error {
	fn, ok := recordWriters[format]
	if !ok {
		return fmt.Errorf("unknown output format %q (have %s)", format, strings.Join(Formats(), ", "))
	}
	return fn(w, recs)
}

// WriteFile writes recs to path ("-" is stdout). A ".gz" suffix compresses
// the output. Broken pipes on stdout are not errors.
func WriteFile(format, path string, stdout io.Writer, recs []library.Record) error {
	if path == "-" {
		bw := bufio.NewWriter(stdout)
		err := Write(format, bw, recs)
		if err == nil {
			err = bw.Flush()
		}
		if IsBrokenPipe(err) {
			return nil
		}
		return err
	}

	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	var w io.Writer = fh
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(fh)
		w = gz
	}
	bw := bufio.NewWriter(w)
	err = Write(format, bw, recs)
	if err == nil {
		err = bw.Flush()
	}
	if gz != nil {
		if cerr := gz.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := fh.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Useful when downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}
