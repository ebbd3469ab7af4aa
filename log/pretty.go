package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// prettyHandler writes logfmt-like records, styled with lipgloss.
// Styling is stripped automatically when the output is not a terminal.
type prettyHandler struct {
	opts   slog.HandlerOptions
	mu     *sync.Mutex
	w      io.Writer
	styles *prettyStyles
	prefix []byte // preformatted attrs from WithAttrs
	groups []string
}

type prettyStyles struct {
	key, str, num, on, off, dim lipgloss.Style
	level                       map[slog.Level]lipgloss.Style
}

func newPrettyStyles(w io.Writer) *prettyStyles {
	r := lipgloss.NewRenderer(w)
	color := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return &prettyStyles{
		key: color("8"),
		str: color("6"),
		num: color("3"),
		on:  color("2"),
		off: color("1"),
		dim: color("8"),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): color("4"),
			slog.LevelDebug:        color("4"),
			slog.LevelInfo:         color("2").Bold(true),
			slog.LevelWarn:         color("3").Bold(true),
			slog.LevelError:        color("1").Bold(true),
		},
	}
}

func newPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *prettyHandler {
	return &prettyHandler{
		opts:   *opts,
		mu:     &sync.Mutex{},
		w:      w,
		styles: newPrettyStyles(w),
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	if !r.Time.IsZero() {
		h.writeAttr(&buf, nil, slog.Time(slog.TimeKey, r.Time))
	}

	h.writeAttr(&buf, nil, slog.Any(slog.LevelKey, r.Level))

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			h.writeAttr(&buf, nil,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)))
		}
	}

	h.writeAttr(&buf, nil, slog.String(slog.MessageKey, r.Message))

	if len(h.prefix) > 0 {
		buf.WriteByte(' ')
		buf.Write(h.prefix)
	}

	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, h.groups, a)

		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	c := *h

	var buf bytes.Buffer

	buf.Write(h.prefix)

	for _, a := range attrs {
		h.writeAttr(&buf, h.groups, a)
	}

	c.prefix = bytes.TrimPrefix(buf.Bytes(), []byte{' '})

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

func (h *prettyHandler) writeAttr(buf *bytes.Buffer, groups []string, a slog.Attr) {
	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(groups, a)
	}

	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		sub := groups
		if a.Key != "" {
			sub = append(slices.Clip(groups), a.Key)
		}

		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, sub, ga)
		}

		return
	}

	if buf.Len() > 0 {
		buf.WriteByte(' ')
	}

	key := a.Key
	for i := len(groups) - 1; i >= 0; i-- {
		key = groups[i] + "." + key
	}

	buf.WriteString(h.styles.key.Render(key))
	buf.WriteByte('=')
	buf.WriteString(h.renderValue(a))
}

func (h *prettyHandler) renderValue(a slog.Attr) string {
	s := h.styles
	v := a.Value

	switch v.Kind() {
	case slog.KindInt64:
		return s.num.Render(strconv.FormatInt(v.Int64(), 10))
	case slog.KindUint64:
		return s.num.Render(strconv.FormatUint(v.Uint64(), 10))
	case slog.KindFloat64:
		return s.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))
	case slog.KindBool:
		if v.Bool() {
			return s.on.Render("true")
		}

		return s.off.Render("false")
	case slog.KindDuration:
		return s.num.Render(v.Duration().String())
	case slog.KindTime:
		return s.dim.Render(v.Time().Format(DefaultTimeLayout))
	}

	if a.Key == slog.LevelKey {
		name := v.String()
		if l, ok := v.Any().(slog.Level); ok {
			name = Level(l).String()
		}

		if l, ok := ParseLevel(name); ok {
			if st, ok := s.level[slog.Level(l)]; ok {
				return st.Render(name)
			}
		}

		return name
	}

	if a.Key == slog.TimeKey {
		return s.dim.Render(v.String())
	}

	return s.str.Render(quoteIfNeeded(v.String()))
}

func quoteIfNeeded(s string) string {
	if s == "" {
		return `""`
	}

	for _, r := range s {
		if r == ' ' || r == '=' || r == '"' || !strconv.IsPrint(r) {
			return strconv.Quote(s)
		}
	}

	return s
}
