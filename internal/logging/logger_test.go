package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Format: "text", Output: &buf})

	logger.Debug("debug %d", 1)
	logger.Info("info %d", 2)
	logger.Warn("warn %d", 3)
	logger.Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("expected debug/info suppressed at warn level, got: %s", out)
	}
	if !strings.Contains(out, "warn 3") || !strings.Contains(out, "error 4") {
		t.Errorf("expected warn/error present, got: %s", out)
	}
}

func TestNewJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json", Output: &buf})
	logger.Info("hello %s", "world")

	if !strings.Contains(buf.String(), `"msg":"hello world"`) {
		t.Errorf("expected JSON output, got: %s", buf.String())
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
	var typed *slogLogger
	if !IsNil(typed) {
		t.Error("IsNil should detect nil pointer wrapped in interface")
	}
	OrNop(typed).Info("must not panic")
}

type recordingLogger struct {
	messages []string
}

func (r *recordingLogger) Debug(format string, args ...any) { r.messages = append(r.messages, "D") }
func (r *recordingLogger) Info(format string, args ...any)  { r.messages = append(r.messages, "I") }
func (r *recordingLogger) Warn(format string, args ...any)  { r.messages = append(r.messages, "W") }
func (r *recordingLogger) Error(format string, args ...any) { r.messages = append(r.messages, "E") }

func TestMultiFansOut(t *testing.T) {
	a := &recordingLogger{}
	b := &recordingLogger{}

	logger := Multi(a, nil, b)
	logger.Info("x")
	logger.Error("y")

	for _, r := range []*recordingLogger{a, b} {
		if len(r.messages) != 2 {
			t.Fatalf("expected 2 messages, got %d", len(r.messages))
		}
	}
}

func TestMultiFlattensNested(t *testing.T) {
	a := &recordingLogger{}
	inner := Multi(a, a)
	outer := Multi(inner).(*multiLogger)
	if len(outer.loggers) != 2 {
		t.Errorf("expected nested multi flattened to 2 loggers, got %d", len(outer.loggers))
	}
}
