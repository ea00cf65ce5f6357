package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func flagNamed(name string) *kong.Flag {
	return &kong.Flag{Value: &kong.Value{Name: name}}
}

func TestResolve_FlatKeys(t *testing.T) {
	config := `
log-level: debug
log_format: text
no-clobber: true
indent: 4
mode: "0600"
`

	resolver, err := resolve(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"},
		{"log-format", "text"},
		{"no-clobber", true},
		{"indent", "4"},
		{"mode", "0600"},
		{"missing", nil},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got, err := resolver.Resolve(nil, nil, flagNamed(tt.flag))
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}

			if got != tt.want {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestResolve_NumbersKeepLiteralText(t *testing.T) {
	config := `
mode: 0640
umask: 0600
octal: 0o750
indent: 4
ratio: 1.50
tagged: !!str 0644
`

	resolver, err := resolve(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	for flag, want := range map[string]string{
		"mode":   "0640",
		"umask":  "0600",
		"octal":  "0o750",
		"indent": "4",
		"ratio":  "1.50",
		"tagged": "0644",
	} {
		got, err := resolver.Resolve(nil, nil, flagNamed(flag))
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}

		if got != want {
			t.Errorf("Resolve(%q) = %#v, want %q", flag, got, want)
		}
	}
}

func TestResolve_NestedKeys(t *testing.T) {
	config := `
log:
  level: trace
  time_layout: Kitchen
`

	resolver, err := resolve(strings.NewReader(config))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	for flag, want := range map[string]string{
		"log-level":       "trace",
		"log-time-layout": "Kitchen",
	} {
		got, err := resolver.Resolve(nil, nil, flagNamed(flag))
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}

		if got != want {
			t.Errorf("Resolve(%q) = %#v, want %q", flag, got, want)
		}
	}
}

func TestResolve_UnderscoreHyphenMapping(t *testing.T) {
	resolver, err := resolve(strings.NewReader(`log-level: debug`))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	for _, name := range []string{"log-level", "log_level"} {
		val, err := resolver.Resolve(nil, nil, flagNamed(name))
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}

		if val != "debug" {
			t.Errorf("expected %s=debug, got %v", name, val)
		}
	}
}

func TestResolve_Sequence(t *testing.T) {
	resolver, err := resolve(strings.NewReader("tags: [a, 2, true]\n"))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	val, _ := resolver.Resolve(nil, nil, flagNamed("tags"))
	if val != "a,2,true" {
		t.Errorf("expected joined sequence, got %#v", val)
	}
}

func TestResolve_Empty(t *testing.T) {
	for _, config := range []string{"", "   \n", "# only a comment\n"} {
		resolver, err := resolve(strings.NewReader(config))
		if err != nil {
			t.Fatalf("resolve(%q) failed: %v", config, err)
		}

		if val, _ := resolver.Resolve(nil, nil, flagNamed("log-level")); val != nil {
			t.Errorf("expected nil value for empty config, got %v", val)
		}

		if err := resolver.Validate(nil); err != nil {
			t.Errorf("Validate failed: %v", err)
		}
	}
}

func TestResolve_Invalid(t *testing.T) {
	_, err := resolve(strings.NewReader("log-level: [unterminated\n"))
	if !errors.Is(err, ErrConfig) {
		t.Errorf("expected ErrConfig, got %v", err)
	}
}

func TestResolve_UnsupportedValue(t *testing.T) {
	for _, config := range []string{
		"tags: [{a: 1}]\n",
		"- log-level\n- debug\n",
	} {
		_, err := resolve(strings.NewReader(config))
		if !errors.Is(err, ErrConfig) || !errors.Is(err, ErrConfigValue) {
			t.Errorf("resolve(%q): expected ErrConfigValue, got %v", config, err)
		}
	}
}

func TestResolve_ReadError(t *testing.T) {
	_, err := resolve(errorReader{errors.New("boom")})
	if !errors.Is(err, ErrConfig) || !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected ErrConfig wrapping read error, got %v", err)
	}
}

// errorReader is a reader that always returns an error.
type errorReader struct {
	err error
}

func (e errorReader) Read([]byte) (int, error) {
	return 0, e.err
}
