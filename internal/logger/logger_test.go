package logger

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
)

func TestLoggerWritesLevelAndArgs(t *testing.T) {
	var buf bytes.Buffer
	l := New(log.New(&buf, "", 0), Options{})

	l.Warn("advisory disabled", "reason", "missing key")
	l.Error("write failed", errors.New("disk full"))

	out := buf.String()
	if !strings.Contains(out, "[WARN] advisory disabled reason=missing key") {
		t.Errorf("unexpected warn line: %q", out)
	}
	if !strings.Contains(out, "[ERROR] write failed error=disk full") {
		t.Errorf("unexpected error line: %q", out)
	}
	if l.Enabled() {
		t.Error("rollbar must stay disabled without a token")
	}
}

func TestReportWithoutRollbar(t *testing.T) {
	var buf bytes.Buffer
	l := New(log.New(&buf, "", 0), Options{})

	if l.Report(errors.New("render failed"), nil) {
		t.Error("Report should return false when rollbar is disabled")
	}
	if !strings.Contains(buf.String(), "render failed") {
		t.Errorf("expected the crash to be logged locally, got %q", buf.String())
	}
}

func TestFormatArgs(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{name: "pairs", args: []interface{}{"device", "abc", "screen", 3}, want: "device=abc screen=3"},
		{name: "odd trailing value", args: []interface{}{"device", "abc", "extra"}, want: "device=abc extra"},
		{name: "error first", args: []interface{}{errors.New("boom"), "k", "v"}, want: "error=boom k=v"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatArgs(tt.args); got != tt.want {
				t.Errorf("formatArgs() = %q, want %q", got, tt.want)
			}
		})
	}
}
