package store

import (
	"context"
	"time"
)

// Row is one result row
type Row interface {
	Scan(dest ...any) error
}

// Rows iterates a result set; Columns names the selected columns in order
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
	Columns() []string
}

type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier runs statements outside or inside a transaction
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is the database handle services depend on.
//
// Tx commits when fn returns nil and rolls back otherwise. ReadTx is the
// same in read only mode, and a positive timeout caps every statement fn runs.
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
	ReadTx(ctx context.Context, timeout time.Duration, fn func(q RowQuerier) error) error
}
