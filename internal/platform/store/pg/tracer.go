package pg

import (
	"context"
	"strings"

	"videobot/internal/platform/logger"

	"github.com/rs/zerolog"
)

// MaxLoggedArgs caps the bind args copied into a trace line; loader batches bind thousands
const MaxLoggedArgs = 16

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      []any
	ElapsedUS int64
	Err       error
	Slow      bool
}

type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// LogTracer writes one line per statement: info normally, warn when slow,
// error when the statement failed. It logs at debug level even when the
// root logger is quieter, since enabling SQL logging is an explicit choice.
type LogTracer struct {
	log zerolog.Logger
}

func NewLogTracer(l logger.Logger) *LogTracer {
	return &LogTracer{log: l.Level(zerolog.DebugLevel).With().Str("component", "pg").Logger()}
}

func (t *LogTracer) OnQuery(_ context.Context, ev QueryEvent) {
	var e *zerolog.Event
	switch {
	case ev.Err != nil:
		e = t.log.Error().Err(ev.Err)
	case ev.Slow:
		e = t.log.Warn()
	default:
		e = t.log.Info()
	}

	e = e.Str("sql", strings.Join(strings.Fields(ev.SQL), " ")).
		Float64("elapsed_ms", float64(ev.ElapsedUS)/1000).
		Int("nargs", len(ev.Args))
	if ev.Slow {
		e = e.Bool("slow", true)
	}
	if n := len(ev.Args); n > 0 && n <= MaxLoggedArgs {
		e = e.Interface("args", ev.Args)
	}
	e.Msg("pg query")
}
