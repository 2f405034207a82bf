// Package repo runs compiled questions against postgres
package repo

import (
	"context"

	"videobot/internal/modkit/repokit"
	"videobot/internal/platform/store"
)

// Repo is the minimal persistence surface for answers
type Repo interface {
	// Scalar returns the first column of the single row sql yields, as decoded by the driver
	Scalar(ctx context.Context, sql string, args ...any) (any, error)
}

type (
	// PG is a binder that can bind the repo to a Queryer or TxRunner
	PG struct{}
	// queries implements the Repo interface
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder that can bind the repo to a Queryer or TxRunner
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind wires a Queryer to the repo
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Scalar(ctx context.Context, sql string, args ...any) (any, error) {
	return store.Scalar[any](ctx, r.q, sql, args...)
}
