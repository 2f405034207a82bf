package main

import (
	"context"
	"os/signal"
	"syscall"

	"videobot/internal/adapters/telegram"
	"videobot/internal/modkit"
	"videobot/internal/modkit/module"
	"videobot/internal/platform/config"
	"videobot/internal/platform/logger"
	"videobot/internal/platform/store"

	"videobot/internal/services/answers/domain"
	answersmod "videobot/internal/services/answers/module"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := config.New()
	l := logger.Get()

	st, err := store.Open(ctx, store.ConfigFromEnv("videobot-bot", root), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	answers := answersmod.MustNew(modkit.Deps{Log: *l, Cfg: root, PG: st.PG})

	opts := telegram.FromConfig(root)
	api, err := telegram.Dial(opts)
	if err != nil {
		l.Panic().Err(err).Msg("telegram dial failed")
	}

	asker := module.MustPortsOf[domain.AskerPort](answers)
	if err := telegram.New(api, asker, opts).Run(ctx); err != nil {
		l.Error().Err(err).Msg("bot stopped")
	}
}
