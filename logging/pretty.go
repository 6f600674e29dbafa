// Package logging provides the slog handler shared by all binaries.
package logging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// PrettyHandler is a slog.Handler that prints one indented JSON object per
// record. Groups become dotted key prefixes rather than nested objects, which
// keeps grepping run logs simple. It is meant for CLI and daemon output, not
// for high log volume.
type PrettyHandler struct {
	w      io.Writer
	mu     *sync.Mutex
	level  slog.Leveler
	prefix string
	attrs  map[string]any
}

// NewPrettyHandler wraps w. A nil opts logs at Info.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &PrettyHandler{
		w:     w,
		mu:    &sync.Mutex{},
		level: level,
		attrs: map[string]any{},
	}
}

// Setup installs a PrettyHandler on stderr as the default logger and returns
// it. level is one of debug, info, warn, error; anything else means info.
func Setup(level string) *slog.Logger {
	var lv slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	logger := slog.New(NewPrettyHandler(os.Stderr, &slog.HandlerOptions{Level: lv}))
	slog.SetDefault(logger)
	return logger
}

func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	payload := make(map[string]any, len(h.attrs)+4)
	for k, v := range h.attrs {
		payload[k] = v
	}

	when := r.Time
	if when.IsZero() {
		when = time.Now()
	}
	payload["time"] = when.Format(time.RFC3339Nano)
	payload["level"] = r.Level.String()
	payload["msg"] = r.Message

	r.Attrs(func(a slog.Attr) bool {
		flatten(payload, h.prefix, a)
		return true
	})

	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		b, _ = json.Marshal(map[string]string{
			"time":  payload["time"].(string),
			"level": r.Level.String(),
			"msg":   r.Message,
		})
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err = h.w.Write(append(b, '\n'))
	return err
}

func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = make(map[string]any, len(h.attrs)+len(attrs))
	for k, v := range h.attrs {
		clone.attrs[k] = v
	}
	for _, a := range attrs {
		flatten(clone.attrs, h.prefix, a)
	}
	return &clone
}

func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = h.prefix + name + "."
	return &clone
}

func flatten(dst map[string]any, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			if ga.Key == "" {
				continue
			}
			flatten(dst, prefix+a.Key+".", ga)
		}
		return
	}
	if a.Key == "" {
		return
	}
	switch v.Kind() {
	case slog.KindDuration:
		dst[prefix+a.Key] = v.Duration().String()
	case slog.KindTime:
		dst[prefix+a.Key] = v.Time().Format(time.RFC3339Nano)
	default:
		dst[prefix+a.Key] = v.Any()
	}
}
