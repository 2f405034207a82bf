package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"videobot/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxQuerier is what *pgxpool.Pool and pgx.Tx have in common
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// traced implements RowQuerier over a pool or a tx, reporting each statement
// to the tracer; slow <= 0 never flags a statement as slow
type traced struct {
	q      pgxQuerier
	tracer pg.QueryTracer
	slow   time.Duration
}

func (t traced) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := t.q.Exec(ctx, sql, args...)
	t.emit(ctx, sql, args, start, err)
	return tag{ct}, err
}

func (t traced) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := t.q.Query(ctx, sql, args...)
	t.emit(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rows{rs}, nil
}

// QueryRow reports once Scan returns, so the event carries the scan error
func (t traced) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return row{
		r:    t.q.QueryRow(ctx, sql, args...),
		done: func(err error) { t.emit(ctx, sql, args, start, err) },
	}
}

func (t traced) emit(ctx context.Context, sql string, args []any, start time.Time, err error) {
	if t.tracer == nil {
		return
	}
	took := time.Since(start)
	t.tracer.OnQuery(ctx, pg.QueryEvent{
		SQL:       sql,
		Args:      args,
		ElapsedUS: took.Microseconds(),
		Err:       err,
		Slow:      t.slow > 0 && took >= t.slow,
	})
}

// pgAdapter is the TxRunner over a pg.PG pool
type pgAdapter struct {
	traced
	p     *pg.PG
	begin func(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{
		traced: traced{q: p.Pool, tracer: p.Tracer, slow: p.SlowQuery},
		p:      p,
		begin:  p.Pool.BeginTx,
	}
}

// Ping round trips a trivial statement through the tracer
func (a *pgAdapter) Ping(ctx context.Context) error {
	if a == nil {
		return errors.New("pg: nil adapter")
	}
	var one int
	return a.QueryRow(ctx, "SELECT 1").Scan(&one)
}

func (a *pgAdapter) Close() error {
	a.p.Close()
	return nil
}

func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return a.run(ctx, pgx.TxOptions{}, 0, fn)
}

// ReadTx runs fn read only; a positive timeout is applied with set_config(..., true)
// so it ends with the transaction
func (a *pgAdapter) ReadTx(ctx context.Context, timeout time.Duration, fn func(q RowQuerier) error) error {
	return a.run(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly}, timeout, fn)
}

func (a *pgAdapter) run(ctx context.Context, opts pgx.TxOptions, timeout time.Duration, fn func(q RowQuerier) error) error {
	tx, err := a.begin(ctx, opts)
	if err != nil {
		return err
	}
	// no-op once committed
	defer func() { _ = tx.Rollback(ctx) }()

	q := traced{q: tx, tracer: a.tracer, slow: a.slow}
	if timeout > 0 {
		if _, err := q.Exec(ctx, "SELECT set_config('statement_timeout', $1, true)", statementTimeout(timeout)); err != nil {
			return err
		}
	}
	if err := fn(q); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// statementTimeout renders d as whole milliseconds, rounding up
func statementTimeout(d time.Duration) string {
	ms := (d + time.Millisecond - 1) / time.Millisecond
	return strconv.FormatInt(int64(ms), 10) + "ms"
}

type row struct {
	r    pgx.Row
	done func(error)
}

func (x row) Scan(dst ...any) error {
	err := x.r.Scan(dst...)
	x.done(err)
	return err
}

type rows struct{ r pgx.Rows }

func (x rows) Next() bool            { return x.r.Next() }
func (x rows) Scan(dst ...any) error { return x.r.Scan(dst...) }
func (x rows) Err() error            { return x.r.Err() }
func (x rows) Close()                { x.r.Close() }

func (x rows) Columns() []string {
	fds := x.r.FieldDescriptions()
	names := make([]string, len(fds))
	for i, fd := range fds {
		names[i] = fd.Name
	}
	return names
}

type tag struct{ t pgconn.CommandTag }

func (t tag) String() string      { return t.t.String() }
func (t tag) RowsAffected() int64 { return t.t.RowsAffected() }
