// Package logger owns the process wide zerolog root plus the context fields
// every answer carries (request_id, chat_id)
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"videobot/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Options configures the root logger
type Options struct {
	Level       string
	Format      string // console or json
	Service     string
	Component   string
	Writer      io.Writer
	WithCaller  bool
	SampleEvery int
	// StaticFields are attached to every line, e.g. deployment labels
	StaticFields map[string]string
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_COMPONENT, LOG_CALLER and
// LOG_SAMPLE_EVERY through the raw view; config itself logs, so it cannot be used here
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       env.Get("LEVEL", "debug"),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", ""),
		Component:   env.Get("COMPONENT", ""),
		WithCaller:  env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
	}
}

// Logger is the project logging type
type Logger = zerolog.Logger

var (
	initOnce sync.Once
	rootLog  atomic.Pointer[zerolog.Logger]
)

// Get returns the root logger, initialising it from the environment on first use
func Get() *Logger {
	if l := rootLog.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return rootLog.Load()
}

// Init builds the root logger; only the first call has any effect
func Init(opt Options) {
	initOnce.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opt.Writer
		if out == nil {
			out = os.Stdout
		}
		if opt.Format != "json" {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		fields := zerolog.New(out).Level(parseLevel(opt.Level)).With().Timestamp()
		if bi, ok := debug.ReadBuildInfo(); ok {
			fields = fields.Str("go_version", bi.GoVersion)
		}
		for k, v := range map[string]string{"service": opt.Service, "component": opt.Component} {
			if v != "" {
				fields = fields.Str(k, v)
			}
		}
		for k, v := range opt.StaticFields {
			fields = fields.Str(k, v)
		}
		if opt.WithCaller {
			fields = fields.Caller()
		}

		l := fields.Logger()
		if opt.SampleEvery > 1 {
			l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
		}
		rootLog.Store(&l)
	})
}

// parseLevel maps a level name to zerolog; unknown names mean debug
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" || lvl == zerolog.NoLevel {
		return zerolog.DebugLevel
	}
	return lvl
}

type ctxKey int

const (
	requestKey ctxKey = iota
	chatKey
)

// WithRequest tags ctx with a request id (http request or bot update)
func WithRequest(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestKey, id)
}

// WithChat tags ctx with the messenger chat the question came from
func WithChat(ctx context.Context, chatID int64) context.Context {
	if chatID == 0 {
		return ctx
	}
	return context.WithValue(ctx, chatKey, chatID)
}

// C returns the root logger with the ids found on ctx
func C(ctx context.Context) *Logger {
	fields := Get().With()
	if id, ok := ctx.Value(requestKey).(string); ok {
		fields = fields.Str("request_id", id)
	}
	if chat, ok := ctx.Value(chatKey).(int64); ok {
		fields = fields.Int64("chat_id", chat)
	}
	l := fields.Logger()
	return &l
}

// Named returns the root logger tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
