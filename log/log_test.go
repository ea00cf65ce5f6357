package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	logger := Make(&bytes.Buffer{})

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level Info, got %v", logger.Level())
	}

	if logger.caller {
		t.Error("expected caller disabled by default")
	}

	if logger.Format() != FormatJSON {
		t.Errorf("expected default format JSON, got %v", logger.Format())
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelDebug))
	logger.Debug("debug message")

	if !strings.Contains(buf.String(), "debug message") {
		t.Error("debug message not logged after setting level to Debug")
	}

	buf.Reset()

	logger = Make(&buf, WithLevel(LevelError))
	logger.Info("info message")

	if buf.Len() > 0 {
		t.Error("info message logged when level is Error")
	}

	logger.Error("error message")

	if !strings.Contains(buf.String(), "error message") {
		t.Error("error message not logged at Error level")
	}
}

func TestLogger_WithCaller_ReportsCallSite(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithCaller(true), WithPretty(false))
	logger.Info("test message")

	var entry struct {
		Source struct {
			File string `json:"file"`
		} `json:"source"`
	}

	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	if !strings.HasSuffix(entry.Source.File, "log_test.go") {
		t.Errorf("expected source in log_test.go, got %q", entry.Source.File)
	}

	buf.Reset()
	Make(&buf, WithCaller(false), WithPretty(false)).Info("test message")

	if strings.Contains(buf.String(), `"source"`) {
		t.Error("caller info included when disabled")
	}
}

func TestLogger_WithFormat_SetsOutputFormat(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer

		logger := Make(&buf, WithFormat(FormatJSON), WithPretty(false))
		logger.Info("test message", slog.String("key", "value"))

		var result map[string]any
		if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
			t.Fatalf("failed to parse JSON output: %v", err)
		}

		if result["msg"] != "test message" {
			t.Errorf("expected msg=test message, got %v", result["msg"])
		}

		if result["key"] != "value" {
			t.Errorf("expected key=value, got %v", result["key"])
		}
	})

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer

		logger := Make(&buf, WithFormat(FormatText), WithPretty(false))
		logger.Info("test message", slog.String("key", "value"))

		output := buf.String()
		if !strings.Contains(output, "test message") {
			t.Error("message not found in text output")
		}

		if !strings.Contains(output, "key=value") {
			t.Error("key=value not found in text output")
		}
	})
}

func TestLogger_Trace_RendersLevelName(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		var buf bytes.Buffer

		logger := Make(&buf, WithLevel(LevelTrace), WithFormat(FormatText), WithPretty(pretty))
		logger.Trace("trace message")

		if !strings.Contains(buf.String(), "level=TRACE") {
			t.Errorf("pretty=%v: expected level=TRACE, got: %s", pretty, buf.String())
		}
	}
}

func TestLogger_Pretty_Text(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithTimeLayout("none"))
	logger.With(slog.String("component", "builder")).
		Info("built", slog.Int("bytes", 42), slog.Group("tmpl", slog.String("name", "parser.py")))

	// A buffer is not a terminal, so no escape sequences are emitted.
	want := "level=INFO msg=built component=builder bytes=42 tmpl.name=parser.py\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLogger_Pretty_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithTimeLayout("none"))
	logger.Warn("careful", slog.Bool("ok", false), slog.Any("err", errors.New("boom")))

	want := strings.Join([]string{
		`{`,
		`  "level": "WARN",`,
		`  "msg": "careful",`,
		`  "ok": false,`,
		`  "err": "boom"`,
		`}`,
	}, "\n") + "\n"

	if got := buf.String(); got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

type secret string

func (secret) LogValue() slog.Value { return slog.StringValue("***") }

func TestLogger_Pretty_ResolvesLogValuer(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithFormat(FormatText)).Info("login", slog.Any("password", secret("hunter2")))

	if strings.Contains(buf.String(), "hunter2") || !strings.Contains(buf.String(), "password=***") {
		t.Errorf("LogValuer not resolved: %s", buf.String())
	}
}

func TestLogger_LogMethods_RespectLevelFiltering(t *testing.T) {
	tests := []struct {
		name     string
		logFunc  func(Logger, string, ...slog.Attr)
		minLevel Level
		logged   bool
	}{
		{"trace at trace", Logger.Trace, LevelTrace, true},
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"debug at debug", Logger.Debug, LevelDebug, true},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at info", Logger.Info, LevelInfo, true},
		{"info at warn", Logger.Info, LevelWarn, false},
		{"warn at warn", Logger.Warn, LevelWarn, true},
		{"warn at error", Logger.Warn, LevelError, false},
		{"error at error", Logger.Error, LevelError, true},
		{"error at debug", Logger.Error, LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.logFunc(Make(&buf, WithLevel(tt.minLevel)), "test message")

			if logged := buf.Len() > 0; logged != tt.logged {
				t.Errorf("expected logged=%v, got output length=%d", tt.logged, buf.Len())
			}
		})
	}
}

func TestLogger_ConcurrentCalls_ThreadSafe(t *testing.T) {
	for _, pretty := range []bool{false, true} {
		var buf bytes.Buffer

		logger := Make(&buf, WithPretty(pretty), WithFormat(FormatText))

		var wg sync.WaitGroup
		for i := range 100 {
			wg.Add(1)

			go func() {
				defer wg.Done()
				logger.Info("concurrent message", slog.Int("id", i))
			}()
		}

		wg.Wait()

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 100 {
			t.Errorf("pretty=%v: expected 100 log lines, got %d", pretty, len(lines))
		}
	}
}

func TestLogger_Wrap_KeepsReceiver(t *testing.T) {
	var buf bytes.Buffer

	base := Make(&buf, WithLevel(LevelError), WithPretty(false))
	debug := base.Wrap(WithLevel(LevelDebug))

	if base.Level() != LevelError {
		t.Errorf("Wrap modified receiver level: %v", base.Level())
	}

	debug.Debug("from wrapped")

	if !strings.Contains(buf.String(), "from wrapped") {
		t.Error("wrapped logger does not share output or apply new level")
	}
}

func TestLogger_With_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON), WithPretty(false))
	logger.With(slog.String("key", "value")).Info("test message")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to unmarshal log entry: %v", err)
	}

	if val, ok := entry["key"]; !ok || val != "value" {
		t.Errorf("expected key=value in log entry, got %v", val)
	}
}

func TestLogger_ZeroValue_Safety(t *testing.T) {
	var l Logger

	// Should not panic
	l.Trace("test")
	l.Debug("test")
	l.Info("test")
	l.Warn("test")
	l.Error("test")

	if l2 := l.With(slog.String("key", "value")); l2.Logger != nil {
		t.Error("expected nil logger from zero value With")
	}

	if l.Level() != DefaultLevel || l.Format() != DefaultFormat {
		t.Error("expected defaults from zero value accessors")
	}
}

func TestLogger_NoTimestamp(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithTimeLayout("none"), WithPretty(false)).Info("test")

	if strings.Contains(buf.String(), `"time"`) {
		t.Errorf("expected no time field, got: %s", buf.String())
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	logger := Make(&bytes.Buffer{}, WithPretty(false))

	b.ResetTimer()

	for i := range b.N {
		logger.Info("benchmark message", slog.Int("iteration", i))
	}
}

func BenchmarkLogger_Info_Pretty(b *testing.B) {
	logger := Make(&bytes.Buffer{})

	b.ResetTimer()

	for i := range b.N {
		logger.Info("benchmark message", slog.Int("iteration", i))
	}
}
