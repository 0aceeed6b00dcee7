package cmdutil

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLoggerAutoIsJSONOffTerminal(t *testing.T) {
	var b bytes.Buffer
	NewLogger("info", "auto", false, &b).Info("padded", "records", 4)
	var m map[string]any
	if err := json.Unmarshal(b.Bytes(), &m); err != nil {
		t.Fatalf("auto format on a buffer should be JSON: %v (%q)", err, b.String())
	}
	if m["msg"] != "padded" || m["records"] != float64(4) {
		t.Fatalf("unexpected record %v", m)
	}
}

func TestNewLoggerTextAndQuiet(t *testing.T) {
	var b bytes.Buffer
	log := NewLogger("debug", "text", true, &b)
	log.Info("dropped")
	log.Error("kept", "code", 4)
	out := b.String()
	if strings.Contains(out, "dropped") || !strings.Contains(out, "msg=kept") {
		t.Fatalf("quiet text logger wrote %q", out)
	}
}
