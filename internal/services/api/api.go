// Package api provides the HTTP API for the application
package api

import (
	"time"

	"videobot/internal/platform/config"
	"videobot/internal/platform/logger"
	phttp "videobot/internal/platform/net/http"
	"videobot/internal/platform/store"

	"videobot/internal/modkit"
	"videobot/internal/modkit/httpkit"
	"videobot/internal/modkit/module"
	"videobot/internal/modkit/swaggerkit"

	metamod "videobot/internal/services/api/meta/module"
	answersmod "videobot/internal/services/answers/module"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Store         *store.Store
	Logger        *logger.Logger
	EnableSwagger bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	deps := modkit.Deps{Cfg: opt.Config}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
	}

	mods := []modkit.Module{
		metamod.New(deps),
		answersmod.MustNew(deps),
	}

	stack := httpkit.CommonStack(httpkit.StackOptions{
		Timeout:        opt.Config.MayDuration("TIMEOUT", 30*time.Second),
		SlowLog:        opt.Config.MayDuration("SLOW_LOG", time.Second),
		AllowedOrigins: opt.Config.MayList("CORS_ORIGINS"),
	})

	httpkit.MountAPIV1(r, stack, func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)

		for _, m := range mods {
			// register ports by module name for cross-module lookups
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
