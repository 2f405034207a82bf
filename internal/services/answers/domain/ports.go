package domain

import (
	"context"

	"videobot/internal/core/querycompiler"
)

// AskerPort answers one question; consumed by the HTTP handlers and the bot
type AskerPort interface {
	Ask(ctx context.Context, text string) (Answer, error)
}

// CompilerPort exposes compilation without execution for diagnostics
type CompilerPort interface {
	Compile(ctx context.Context, text string) querycompiler.Compiled
}
