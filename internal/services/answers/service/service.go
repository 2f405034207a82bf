// Package service compiles a question, runs it read only and renders the scalar
package service

import (
	"context"
	"time"

	"videobot/internal/core/querycompiler"
	"videobot/internal/modkit/repokit"
	"videobot/internal/platform/breaker"
	perr "videobot/internal/platform/errors"
	"videobot/internal/platform/logger"
	dom "videobot/internal/services/answers/domain"
	"videobot/internal/services/answers/repo"
)

// DefaultQueryTimeout bounds one executed question
const DefaultQueryTimeout = 5 * time.Second

// Config for the answers service
type Config struct {
	// QueryTimeout becomes the transaction's statement_timeout
	QueryTimeout time.Duration
	Breaker      breaker.Config
}

// Compiler is the pure question compiler
type Compiler interface {
	Compile(text string) querycompiler.Compiled
}

// Service implements dom.AskerPort and dom.CompilerPort
type Service struct {
	db       repokit.TxRunner
	binder   repokit.Binder[repo.Repo]
	compiler Compiler
	brk      *breaker.Breaker[any]
	cfg      Config
}

// New constructs the answers service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], c Compiler, cfg Config) *Service {
	if db == nil {
		panic("answers.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("answers.Service requires a non nil Repo binder")
	}
	if c == nil {
		panic("answers.Service requires a compiler")
	}
	if cfg.QueryTimeout <= 0 {
		cfg.QueryTimeout = DefaultQueryTimeout
	}
	if cfg.Breaker.Name == "" {
		cfg.Breaker.Name = "answers-pg"
	}
	return &Service{
		db:       db,
		binder:   binder,
		compiler: c,
		brk:      breaker.New[any](cfg.Breaker, *logger.Named("answers")),
		cfg:      cfg,
	}
}

// Compile implements dom.CompilerPort
func (s *Service) Compile(ctx context.Context, text string) querycompiler.Compiled {
	c := s.compiler.Compile(text)
	logger.C(ctx).Debug().
		Str("intent", c.Intent.String()).
		Int("arity", len(c.Args)).
		Msg("question compiled")
	return c
}

// Ask implements dom.AskerPort
func (s *Service) Ask(ctx context.Context, text string) (dom.Answer, error) {
	c := s.Compile(ctx, text)

	v, err := s.brk.Execute(func() (any, error) {
		return s.run(ctx, c)
	})
	if err != nil {
		logger.C(ctx).Error().Err(err).Str("intent", c.Intent.String()).Msg("question failed")
		return dom.Answer{Intent: c.Intent}, err
	}
	return dom.Answer{Text: Render(v), Intent: c.Intent}, nil
}

func (s *Service) run(ctx context.Context, c querycompiler.Compiled) (any, error) {
	var out any
	err := s.db.ReadTx(ctx, s.cfg.QueryTimeout, func(q repokit.Queryer) error {
		v, err := repokit.MustBind(s.binder, q).Scalar(ctx, c.SQL, c.Args...)
		out = v
		return err
	})
	if err == nil {
		return out, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, perr.FromContext(ctxErr, "answer query")
	}
	return nil, perr.FromPostgresf(err, "answer query %s", c.Intent)
}
