package log

import (
	"slices"
	"strings"
	"testing"
	"time"
)

func TestConfig_WithLevel_SetsLevel(t *testing.T) {
	for _, level := range []Level{LevelTrace, LevelDebug, LevelInfo, LevelWarn, LevelError} {
		t.Run(level.String(), func(t *testing.T) {
			if got := WithLevel(level)(config{}).level; got != level {
				t.Errorf("expected level %v, got %v", level, got)
			}
		})
	}
}

func TestConfig_BoolOptions(t *testing.T) {
	for _, enable := range []bool{true, false} {
		c := WithCaller(enable)(config{})
		if c.caller != enable {
			t.Errorf("WithCaller(%v): got %v", enable, c.caller)
		}

		c = WithPretty(enable)(config{})
		if c.pretty != enable {
			t.Errorf("WithPretty(%v): got %v", enable, c.pretty)
		}
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	c := makeConfig(nil)

	if c.level != DefaultLevel || c.format != DefaultFormat ||
		c.caller != DefaultCaller || c.pretty != DefaultPretty {
		t.Errorf("unexpected defaults: %+v", c)
	}

	if c.output == nil {
		t.Error("expected nil output to be replaced with io.Discard")
	}
}

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelTrace, "trace"},
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{LevelInfo + 2, "info+2"},
		{LevelError + 4, "error+4"},
		{LevelTrace - 1, "debug-5"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{" info ", LevelInfo},
		{"WARN", LevelWarn},
		{"error", LevelError},
		{"info+2", LevelInfo + 2},
		{"bogus", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"TEXT", FormatText},
		{"yaml", DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevelsAndFormats(t *testing.T) {
	levels := slices.Collect(Levels())
	if want := []string{"trace", "debug", "info", "warn", "error"}; !slices.Equal(levels, want) {
		t.Errorf("Levels() = %v, want %v", levels, want)
	}

	formats := slices.Collect(Formats())
	if want := []string{"json", "text"}; !slices.Equal(formats, want) {
		t.Errorf("Formats() = %v, want %v", formats, want)
	}
}

func TestConfig_formatTime_FormatsTimestamp(t *testing.T) {
	now := time.Date(2023, 10, 15, 14, 30, 45, 123456789, time.UTC)

	tests := []struct {
		name        string
		layout      string
		contains    []string
		notContains []string
	}{
		{
			name:        "rfc3339 named layout",
			layout:      "RFC3339",
			contains:    []string{"2023-10-15T14:30:45Z"},
			notContains: []string{".123"},
		},
		{
			name:     "rfc3339 nano named layout",
			layout:   "RFC3339Nano",
			contains: []string{"2023-10-15T14:30:45.123456789Z"},
		},
		{
			name:     "datetime named layout",
			layout:   "date-time",
			contains: []string{"2023-10-15 14:30:45"},
		},
		{
			name:     "custom layout is used verbatim",
			layout:   "   2006-01-02 15:04:05.000Z07:00",
			contains: []string{"   2023-10-15 14:30:45.123Z"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithTimeLayout(tt.layout)(config{}).formatTime(now)

			for _, s := range tt.contains {
				if !strings.Contains(result, s) {
					t.Errorf("expected %q to contain %q", result, s)
				}
			}

			for _, s := range tt.notContains {
				if strings.Contains(result, s) {
					t.Errorf("expected %q not to contain %q", result, s)
				}
			}
		})
	}
}

func TestConfig_formatTime_DisablesTimestamp(t *testing.T) {
	now := time.Now()

	for _, layout := range []string{"", "   \t  ", "none", "NONE"} {
		if result := WithTimeLayout(layout)(config{}).formatTime(now); result != "" {
			t.Errorf("expected empty timestamp when layout is %q, got %q", layout, result)
		}
	}
}

func BenchmarkConfig_formatTime(b *testing.B) {
	c := WithTimeLayout("RFC3339Nano")(config{})
	now := time.Now()

	b.ResetTimer()

	for range b.N {
		_ = c.formatTime(now)
	}
}
