// Package modkit provides module wiring and core deps
package modkit

import (
	"videobot/internal/modkit/repokit"
	"videobot/internal/platform/config"
	"videobot/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
}
