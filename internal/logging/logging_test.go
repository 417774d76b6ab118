package logging

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewVerboseWritesToSink(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(true, buf)
	logger.Debug("input consumed", zap.Int("records", 2))
	_ = logger.Sync()

	out := buf.String()
	if !strings.Contains(out, "input consumed") {
		t.Fatalf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, `"records": 2`) {
		t.Fatalf("expected structured field in output, got %q", out)
	}
	if !strings.Contains(out, "logtrip") {
		t.Fatalf("expected logger name in output, got %q", out)
	}
}

func TestNewQuietIsNop(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(false, buf)
	logger.Error("should not appear")
	_ = logger.Sync()

	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
