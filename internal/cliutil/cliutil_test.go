package cliutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.fa")
	b := filepath.Join(dir, "b.fa")
	_ = os.WriteFile(a, []byte(">a\nA\n"), 0o644)
	_ = os.WriteFile(b, []byte(">b\nA\n"), 0o644)
	got, err := ExpandInputs([]string{a, filepath.Join(dir, "*.fa"), "-"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != a || got[1] != b || got[2] != "-" {
		t.Fatalf("expand = %v", got)
	}
	if CountStdin(got) != 1 {
		t.Fatalf("CountStdin = %d", CountStdin(got))
	}
}

func TestExpandInputsNoMatch(t *testing.T) {
	if _, err := ExpandInputs([]string{filepath.Join(t.TempDir(), "*.csv")}); err == nil {
		t.Fatal("want error when a glob matches nothing")
	}
}
