package jsonlutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

type row struct {
	N int `json:"n"`
}

func never(error) bool { return false }

func TestWriteAll(t *testing.T) {
	var b bytes.Buffer
	err := WriteAll(&b, []row{{1}, {2}, {3}}, func(enc *json.Encoder, r row) error { return enc.Encode(r) }, never)
	if err != nil {
		t.Fatal(err)
	}
	if got := b.String(); got != "{\"n\":1}\n{\"n\":2}\n{\"n\":3}\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestStartReportsEncodeErrorAndDrains(t *testing.T) {
	var b bytes.Buffer
	boom := errors.New("boom")
	in, done := Start(&b, 1, func(enc *json.Encoder, r row) error {
		if r.N == 2 {
			return boom
		}
		return enc.Encode(r)
	}, never)
	for i := 1; i <= 10; i++ {
		in <- row{i}
	}
	close(in)
	if err := <-done; !errors.Is(err, boom) {
		t.Fatalf("want boom, got %v", err)
	}
	if strings.Contains(b.String(), "\"n\":3") {
		t.Fatalf("values after the failure were encoded: %q", b.String())
	}
}
