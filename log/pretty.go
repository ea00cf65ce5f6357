package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the styles used by prettyHandler. Styles are bound to a
// renderer for the handler's output, so no escape sequences are emitted when
// the output is not a color terminal.
type palette struct {
	key, str, num, yes, no, dur, ts, null lipgloss.Style
	level                                 map[slog.Level]lipgloss.Style
}

func newPalette(w io.Writer) palette {
	r := lipgloss.NewRenderer(w)
	color := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return palette{
		key:  color("8"),
		str:  color("6"),
		num:  color("3"),
		yes:  color("2"),
		no:   color("1"),
		dur:  color("5"),
		ts:   color("4"),
		null: color("8"),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): color("8"),
			slog.LevelDebug:        color("4"),
			slog.LevelInfo:         color("2"),
			slog.LevelWarn:         color("3").Bold(true),
			slog.LevelError:        color("1").Bold(true),
		},
	}
}

func (p palette) forLevel(l slog.Level) lipgloss.Style {
	style := p.level[slog.Level(LevelTrace)]

	for _, named := range levels {
		if slog.Level(named) <= l {
			style = p.level[slog.Level(named)]
		}
	}

	return style
}

// prettyHandler renders records for reading in a terminal: either as
// space-separated key=value pairs (FormatText) or as an indented JSON-like
// object (FormatJSON).
type prettyHandler struct {
	opts   slog.HandlerOptions
	format Format
	style  palette
	mu     *sync.Mutex
	w      io.Writer
	attrs  []slog.Attr // qualified with their group prefix
	prefix string
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	format Format,
) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		format: format,
		style:  newPalette(w),
		mu:     &sync.Mutex{},
		w:      w,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(h.attrs[:len(h.attrs):len(h.attrs)], h.flatten(h.prefix, attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.prefix = h.prefix + name + "."

	return &c
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]slog.Attr, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		if a := h.builtin(slog.Time(slog.TimeKey, r.Time)); !a.Equal(slog.Attr{}) {
			fields = append(fields, a)
		}
	}

	// The level is always present; its position is remembered for styling.
	levelIdx := len(fields)
	fields = append(fields, h.builtin(slog.Any(slog.LevelKey, r.Level)))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = append(fields, slog.String(slog.SourceKey,
				src.File+":"+strconv.Itoa(src.Line)))
		}
	}

	fields = append(fields, slog.String(slog.MessageKey, r.Message))
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = append(fields, h.flatten(h.prefix, []slog.Attr{a})...)

		return true
	})

	buf := new(bytes.Buffer)
	levelStyle := h.style.forLevel(r.Level)

	switch h.format {
	case FormatJSON:
		h.writeJSON(buf, fields, levelIdx, levelStyle)
	default:
		h.writeText(buf, fields, levelIdx, levelStyle)
	}

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// builtin applies ReplaceAttr to one of the record's built-in attributes.
func (h *prettyHandler) builtin(a slog.Attr) slog.Attr {
	if h.opts.ReplaceAttr == nil {
		return a
	}

	return h.opts.ReplaceAttr(nil, a)
}

// flatten resolves attrs and inlines groups, qualifying keys with prefix.
func (h *prettyHandler) flatten(prefix string, attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs))

	for _, a := range attrs {
		a.Value = a.Value.Resolve()

		switch {
		case a.Equal(slog.Attr{}):
			continue

		case a.Value.Kind() == slog.KindGroup:
			sub := prefix
			if a.Key != "" {
				sub += a.Key + "."
			}

			out = append(out, h.flatten(sub, a.Value.Group())...)

		default:
			a.Key = prefix + a.Key
			out = append(out, a)
		}
	}

	return out
}

func (h *prettyHandler) writeText(
	buf *bytes.Buffer,
	fields []slog.Attr,
	levelIdx int,
	levelStyle lipgloss.Style,
) {
	for i, a := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.style.key.Render(a.Key))
		buf.WriteByte('=')

		if i == levelIdx {
			buf.WriteString(levelStyle.Render(a.Value.String()))
		} else {
			buf.WriteString(h.textValue(a.Value))
		}
	}
}

func (h *prettyHandler) textValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return h.style.str.Render(v.String())

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.style.num.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.style.yes.Render("true")
		}

		return h.style.no.Render("false")

	case slog.KindDuration:
		return h.style.dur.Render(v.Duration().String())

	case slog.KindTime:
		return h.style.ts.Render(v.Time().Format(time.RFC3339Nano))

	default:
		if v.Any() == nil {
			return h.style.null.Render("<nil>")
		}

		return h.style.str.Render(v.String())
	}
}

func (h *prettyHandler) writeJSON(
	buf *bytes.Buffer,
	fields []slog.Attr,
	levelIdx int,
	levelStyle lipgloss.Style,
) {
	buf.WriteString("{\n")

	for i, a := range fields {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(h.style.key.Render(strconv.Quote(a.Key)))
		buf.WriteString(": ")

		if i == levelIdx {
			buf.WriteString(levelStyle.Render(strconv.Quote(a.Value.String())))
		} else {
			buf.WriteString(h.jsonValue(a.Value))
		}
	}

	buf.WriteString("\n}")
}

func (h *prettyHandler) jsonValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return h.style.str.Render(strconv.Quote(v.String()))

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64:
		return h.style.num.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.style.yes.Render("true")
		}

		return h.style.no.Render("false")

	case slog.KindDuration:
		return h.style.dur.Render(strconv.Quote(v.Duration().String()))

	case slog.KindTime:
		return h.style.ts.Render(strconv.Quote(v.Time().Format(time.RFC3339Nano)))

	default:
		if v.Any() == nil {
			return h.style.null.Render("null")
		}

		if err, ok := v.Any().(error); ok {
			return h.style.str.Render(strconv.Quote(err.Error()))
		}

		enc, err := json.Marshal(v.Any())
		if err != nil {
			return h.style.str.Render(strconv.Quote(fmt.Sprint(v.Any())))
		}

		return h.style.str.Render(string(enc))
	}
}
