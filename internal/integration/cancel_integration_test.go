package integration

import (
	"context"
	"io"
	"strings"
	"testing"

	"stemcode/internal/app"
)

func TestCanceledRunExits130(t *testing.T) {
	in := write(t, "big.csv", library(2000, 0))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := app.RunContext(ctx, []string{"build", "-i", in, "--summary", "none", "--csv", "-"}, io.Discard, io.Discard)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d", code)
	}
}

func TestCanceledBarcodeExits130(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var errBuf strings.Builder
	code := app.RunContext(ctx, []string{"barcode", "-n", "10"}, io.Discard, &errBuf)
	if code != 130 {
		t.Fatalf("expected exit 130 on cancel, got %d (%s)", code, errBuf.String())
	}
	if errBuf.Len() != 0 {
		t.Fatalf("cancelled run printed an error: %s", errBuf.String())
	}
}
