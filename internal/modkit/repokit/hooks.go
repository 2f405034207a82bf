package repokit

import "context"

// BeginHook runs first inside every write transaction
type BeginHook func(ctx context.Context, q Queryer) error

// WithBeginHooks returns db with hooks run at the start of each Tx. ReadTx and
// plain statements go straight to db.
func WithBeginHooks(db TxRunner, hooks ...BeginHook) TxRunner {
	return &hooked{TxRunner: db, hooks: hooks}
}

// SetLocal sets a transaction scoped setting. name and value are spliced into
// the statement, so only pass constants.
func SetLocal(name, value string) BeginHook {
	stmt := "SET LOCAL " + name + " = " + value
	return func(ctx context.Context, q Queryer) error {
		_, err := q.Exec(ctx, stmt)
		return err
	}
}

type hooked struct {
	TxRunner
	hooks []BeginHook
}

func (h *hooked) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, run := range h.hooks {
			if err := run(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}
