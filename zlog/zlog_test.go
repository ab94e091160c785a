package zlog

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestModuleAddsAttribute(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithHandler(slog.NewJSONHandler(&buf, nil))
	child := l.Module("core")
	child.Info("hello")

	out := buf.String()
	if !strings.Contains(out, `"module":"core"`) {
		t.Fatalf("expected module attribute in output, got %q", out)
	}
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Fatalf("expected message in output, got %q", out)
	}
}

func TestDefaultLoggerIsNotNil(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}
}

func TestSetDefaultIgnoresNil(t *testing.T) {
	prev := Default()
	SetDefault(nil)
	if Default() != prev {
		t.Fatal("SetDefault(nil) should be a no-op")
	}
}
