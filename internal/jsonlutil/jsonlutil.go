// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// 64 KiB buffered writers are pooled across JSONL streams.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Start spins up a JSONL encoder goroutine for values of type T.
//   - encode: converts one value to its wire type and encodes it
//   - isBroken: recognizes broken/closed pipe errors so they are suppressed
//
// Close the returned channel when done and read the single error result.
func Start[T any](out io.Writer, bufSize int, encode func(*json.Encoder, T) error, isBroken func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := json.NewEncoder(bw)
		var encErr error
		for v := range in {
			if encErr != nil {
				continue // drain so senders never block
			}
			if err := encode(enc, v); err != nil && !isBroken(err) {
				encErr = err
			}
		}
		if encErr != nil {
			done <- encErr
			return
		}
		if err := bw.Flush(); err != nil && !isBroken(err) {
			done <- err
			return
		}
		done <- nil
	}()

	return in, done
}

// WriteAll streams items through Start and waits for the result.
func WriteAll[T any](out io.Writer, items []T, encode func(*json.Encoder, T) error, isBroken func(error) bool) error {
	in, done := Start(out, len(items), encode, isBroken)
	for _, it := range items {
		in <- it
	}
	close(in)
	return <-done
}
