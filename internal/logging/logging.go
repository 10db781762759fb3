// Package logging builds the slog loggers used by the atmention binaries.
//
// Records go as JSON to a rotating file. Warnings and errors are also kept in
// a small ring so a UI can show them.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Entry is a captured warning or error.
type Entry struct {
	Time    time.Time
	Level   slog.Level
	Message string
}

func (e Entry) Format() string {
	return fmt.Sprintf("%s %-5s %s", e.Time.Format("15:04:05"), e.Level.String(), e.Message)
}

type Options struct {
	// Path is the log file. Empty means the user config dir.
	Path  string
	Level slog.Level

	// MaxSizeMB, MaxBackups and MaxAgeDays tune rotation. Zero takes the
	// defaults.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// RingSize is the number of recent warnings kept. Default 100.
	RingSize int

	// Writer replaces the rotating file. Tests use it.
	Writer io.Writer
}

// Logger owns the handler chain and the log file.
type Logger struct {
	*slog.Logger

	path   string
	file   *lumberjack.Logger
	recent *ring
}

// ParseLevel accepts debug, info, warn and error.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}
	return l, nil
}

// DefaultPath is the log file used when Options.Path is empty.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "atmention", "atmention.log")
}

func New(opt Options) (*Logger, error) {
	if opt.RingSize <= 0 {
		opt.RingSize = 100
	}

	l := &Logger{recent: newRing(opt.RingSize)}
	w := opt.Writer
	if w == nil {
		l.path = opt.Path
		if l.path == "" {
			l.path = DefaultPath()
		}
		if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
			return nil, fmt.Errorf("logging: create log dir: %w", err)
		}
		l.file = &lumberjack.Logger{
			Filename:   l.path,
			MaxSize:    orDefault(opt.MaxSizeMB, 10),
			MaxBackups: orDefault(opt.MaxBackups, 3),
			MaxAge:     orDefault(opt.MaxAgeDays, 7),
			Compress:   true,
		}
		w = l.file
	}

	jh := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: opt.Level})
	l.Logger = slog.New(&captureHandler{inner: jh, recent: l.recent})
	return l, nil
}

// Path returns the log file path, or "" when writing to Options.Writer.
func (l *Logger) Path() string { return l.path }

// Recent returns the captured warnings and errors, oldest first.
func (l *Logger) Recent() []Entry { return l.recent.all() }

// Counts returns the number of warnings and errors seen since the last
// ClearCounts.
func (l *Logger) Counts() (warn, err int) { return l.recent.counts() }

func (l *Logger) ClearCounts() { l.recent.clearCounts() }

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// captureHandler copies warnings and errors into the ring.
type captureHandler struct {
	inner  slog.Handler
	recent *ring
}

func (h *captureHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *captureHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.recent.add(Entry{Time: r.Time, Level: r.Level, Message: r.Message})
	}
	return h.inner.Handle(ctx, r)
}

func (h *captureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &captureHandler{inner: h.inner.WithAttrs(attrs), recent: h.recent}
}

func (h *captureHandler) WithGroup(name string) slog.Handler {
	return &captureHandler{inner: h.inner.WithGroup(name), recent: h.recent}
}

type ring struct {
	mu      sync.RWMutex
	entries []Entry
	head    int
	count   int

	warnCount  int
	errorCount int
}

func newRing(size int) *ring {
	return &ring{entries: make([]Entry, size)}
}

func (r *ring) add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.head] = e
	r.head = (r.head + 1) % len(r.entries)
	if r.count < len(r.entries) {
		r.count++
	}
	if e.Level >= slog.LevelError {
		r.errorCount++
	} else {
		r.warnCount++
	}
}

func (r *ring) all() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	size := len(r.entries)
	out := make([]Entry, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.entries[(r.head-r.count+i+size)%size]
	}
	return out
}

func (r *ring) counts() (warn, err int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.warnCount, r.errorCount
}

func (r *ring) clearCounts() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.warnCount = 0
	r.errorCount = 0
}
