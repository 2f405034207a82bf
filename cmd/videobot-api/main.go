// @title         Videobot API
// @version       0.1.0
// @description   Answers natural language questions about videos with one number

package main

import (
	"context"
	"os/signal"
	"syscall"

	"videobot/internal/platform/config"
	"videobot/internal/platform/logger"
	phttp "videobot/internal/platform/net/http"
	"videobot/internal/platform/store"

	"videobot/internal/services/api"
	metamod "videobot/internal/services/api/meta/module"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	l := logger.Get()

	st, err := store.Open(ctx, store.ConfigFromEnv(metamod.ServiceName, root), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	// reads CORE_API_PORT
	srv := phttp.NewServer(apiCfg)

	api.Mount(srv.Router(), api.Options{
		Config:        apiCfg,
		Store:         st,
		Logger:        l,
		EnableSwagger: apiCfg.MayBool("SWAGGER", true),
	})

	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
