package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config describes the desired logging configuration.
type Config struct {
	Level      string
	Format     string
	FilePath   string
	MaxSizeMB  int
	MaxFiles   int
	MaxAgeDays int

	// Console receives log lines alongside any file. Defaults to stderr so
	// command output on stdout stays machine readable.
	Console io.Writer
}

// secretKeys are attribute keys whose values never reach the log.
var secretKeys = map[string]bool{
	"authorization":   true,
	"developer_token": true,
	"user_token":      true,
	"token":           true,
}

// swapHandler delegates to a root handler that can be replaced at runtime.
// Handlers derived through WithAttrs and WithGroup share the root and
// re-apply their own attrs and groups, so they follow every swap.
type swapHandler struct {
	root   *atomic.Pointer[slog.Handler]
	derive []func(slog.Handler) slog.Handler
}

func newSwapHandler(h slog.Handler) *swapHandler {
	s := &swapHandler{root: &atomic.Pointer[slog.Handler]{}}
	s.root.Store(&h)
	return s
}

func (s *swapHandler) swap(h slog.Handler) { s.root.Store(&h) }

func (s *swapHandler) current() slog.Handler {
	h := *s.root.Load()
	for _, d := range s.derive {
		h = d(h)
	}
	return h
}

func (s *swapHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return (*s.root.Load()).Enabled(ctx, level)
}

func (s *swapHandler) Handle(ctx context.Context, r slog.Record) error {
	return s.current().Handle(ctx, r)
}

func (s *swapHandler) with(d func(slog.Handler) slog.Handler) *swapHandler {
	return &swapHandler{root: s.root, derive: append(slices.Clone(s.derive), d)}
}

func (s *swapHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return s.with(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (s *swapHandler) WithGroup(name string) slog.Handler {
	return s.with(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

// Manager owns the logger lifecycle and supports runtime reconfiguration.
type Manager struct {
	level   *slog.LevelVar
	handler *swapHandler
	config  Config
	mu      sync.Mutex
	closer  io.Closer // lumberjack writer, if any
}

// NewManager creates a Manager and returns it along with a ready-to-use logger.
func NewManager(cfg Config) (*Manager, *slog.Logger) {
	lvl := &slog.LevelVar{}
	lvl.Set(ParseLevel(cfg.Level))

	writer, closer := buildWriter(cfg)
	m := &Manager{
		level:   lvl,
		handler: newSwapHandler(buildHandler(writer, lvl, cfg.Format)),
		config:  cfg,
		closer:  closer,
	}
	return m, slog.New(m.handler)
}

// SetLevel changes the level of every logger derived from the Manager.
func (m *Manager) SetLevel(level string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level.Set(ParseLevel(level))
	m.config.Level = level
}

// Reconfigure applies a new configuration. Level-only changes are instant;
// format or output changes rebuild the handler.
func (m *Manager) Reconfigure(cfg Config) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.level.Set(ParseLevel(cfg.Level))

	rebuild := cfg.Format != m.config.Format ||
		cfg.FilePath != m.config.FilePath ||
		cfg.MaxSizeMB != m.config.MaxSizeMB ||
		cfg.MaxFiles != m.config.MaxFiles ||
		cfg.MaxAgeDays != m.config.MaxAgeDays ||
		cfg.Console != m.config.Console

	if rebuild {
		if m.closer != nil {
			m.closer.Close() //nolint:errcheck
			m.closer = nil
		}
		writer, closer := buildWriter(cfg)
		m.handler.swap(buildHandler(writer, m.level, cfg.Format))
		m.closer = closer
	}

	m.config = cfg
}

// Config returns the current configuration snapshot.
func (m *Manager) Config() Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.config
}

// Close releases the log file, if any.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closer != nil {
		err := m.closer.Close()
		m.closer = nil
		return err
	}
	return nil
}

// ParseLevel converts a level name to slog.Level, defaulting to Info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

// ValidLevel reports whether s is a recognized log level.
func ValidLevel(s string) bool {
	switch s {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// ValidFormat reports whether s is a recognized log format.
func ValidFormat(s string) bool {
	return s == "text" || s == "json"
}

// Validate checks the level and format names.
func (c Config) Validate() error {
	if c.Level != "" && !ValidLevel(c.Level) {
		return fmt.Errorf("invalid log level %q", c.Level)
	}
	if c.Format != "" && !ValidFormat(c.Format) {
		return fmt.Errorf("invalid log format %q", c.Format)
	}
	return nil
}

// buildWriter returns the console writer, teed with a rotating file when a
// path is configured. The lumberjack logger is returned as the closer.
func buildWriter(cfg Config) (io.Writer, io.Closer) {
	console := cfg.Console
	if console == nil {
		console = os.Stderr
	}
	if cfg.FilePath == "" {
		return console, nil
	}

	lj := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    orDefault(cfg.MaxSizeMB, 50),
		MaxBackups: orDefault(cfg.MaxFiles, 3),
		MaxAge:     orDefault(cfg.MaxAgeDays, 14),
	}
	return io.MultiWriter(console, lj), lj
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// buildHandler creates a text handler unless json is requested. Secret
// attributes are masked in both formats.
func buildHandler(w io.Writer, leveler slog.Leveler, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: leveler, ReplaceAttr: maskSecrets}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func maskSecrets(_ []string, a slog.Attr) slog.Attr {
	if secretKeys[strings.ToLower(a.Key)] && a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, Mask(a.Value.String()))
	}
	return a
}

// Mask hides all but the last four characters of a secret.
func Mask(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", 8) + s[len(s)-4:]
}
