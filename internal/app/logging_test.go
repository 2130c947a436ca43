package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"WARNING", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo}, // Default
		{"", LogLevelInfo},        // Default
	}

	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLogLevel(%q) = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf, Prefix: "test"})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn %d", 1)
	logger.Error("error %s", "two")

	out := buf.String()
	if strings.Contains(out, "debug message") || strings.Contains(out, "info message") {
		t.Errorf("messages below the level were written:\n%s", out)
	}
	for _, want := range []string{`level=WARN msg="warn 1" app=test`, `level=ERROR msg="error two" app=test`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	logger.SetLevel(LogLevelDebug)
	logger.Debug("now visible")
	if !strings.Contains(buf.String(), `msg="now visible"`) {
		t.Errorf("SetLevel(Debug) had no effect:\n%s", buf.String())
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf})

	child := logger.WithComponent("selection").WithFields(map[string]any{"id": "2"})
	child.Info("select change")

	out := buf.String()
	for _, want := range []string{"component=selection", "id=2", `msg="select change"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	logger.Info("parent")
	if strings.Contains(buf.String(), "component=") {
		t.Errorf("fields leaked into the parent logger:\n%s", buf.String())
	}
}

func TestLogger_Disable(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf})
	child := logger.WithField("k", "v")

	logger.Disable()
	child.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}

	logger.Enable()
	child.Info("shown")
	if !strings.Contains(buf.String(), "msg=shown") {
		t.Errorf("enabled logger wrote %q", buf.String())
	}
}

func TestNullLogger(t *testing.T) {
	l := NullLogger()
	l.Error("nothing %d", 1)
	if l.Slog() == nil {
		t.Error("Slog() = nil")
	}
}
