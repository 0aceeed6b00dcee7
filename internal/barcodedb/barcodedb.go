// Package barcodedb persists issued barcodes so later libraries can be
// built to stay clear of earlier ones. Files are gzip-compressed msgpack.
package barcodedb

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/vmihailenco/msgpack/v5"

	"stemcode-core/exclusion"
)

// FormatVersion is bumped when Registry changes incompatibly.
const FormatVersion = 1

var ErrVersion = errors.New("unsupported registry version")

// Registry is a saved exclusion set.
type Registry struct {
	Version  int       `msgpack:"version"`
	Loop     string    `msgpack:"loop"`
	Created  time.Time `msgpack:"created"`
	Barcodes []string  `msgpack:"barcodes"`
}

// FromSet snapshots set, leaving out the null sentinel.
func FromSet(set *exclusion.Set, loop, null string) Registry {
	members := set.Members()
	out := members[:0]
	for _, m := range members {
		if m != null {
			out = append(out, m)
		}
	}
	return Registry{Version: FormatVersion, Loop: loop, Created: time.Now().UTC(), Barcodes: out}
}

// Seed adds every saved barcode to set and returns how many were new.
func (r Registry) Seed(set *exclusion.Set) int {
	n := 0
	for _, b := range r.Barcodes {
		if set.Add(b) {
			n++
		}
	}
	return n
}

// Encode writes r to w as gzip-compressed msgpack.
func Encode(w io.Writer, r Registry) error {
	gz := gzip.NewWriter(w)
	if err := msgpack.NewEncoder(gz).Encode(r); err != nil {
		_ = gz.Close()
		return fmt.Errorf("encode registry: %w", err)
	}
	return gz.Close()
}

// Decode reads a registry written by Encode.
func Decode(rd io.Reader) (Registry, error) {
	var r Registry
	gz, err := gzip.NewReader(rd)
	if err != nil {
		return r, fmt.Errorf("registry: %w", err)
	}
	defer gz.Close()
	if err := msgpack.NewDecoder(gz).Decode(&r); err != nil {
		return r, fmt.Errorf("decode registry: %w", err)
	}
	if r.Version != FormatVersion {
		return r, fmt.Errorf("%w: %d (want %d)", ErrVersion, r.Version, FormatVersion)
	}
	return r, nil
}

func Save(path string, r Registry) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(fh, r); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}

func Load(path string) (Registry, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Registry{}, err
	}
	defer fh.Close()
	r, err := Decode(fh)
	if err != nil {
		return r, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}
