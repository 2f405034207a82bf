package store

import "context"

// Exec runs a write and returns the raw CommandTag
func Exec(ctx context.Context, q RowQuerier, sql string, args ...any) (CommandTag, error) {
	return q.Exec(ctx, sql, args...)
}

// Scalar reads the first column of the single row sql returns into T
// with T = any the driver's native value comes back untouched, NULL as nil
func Scalar[T any](ctx context.Context, q RowQuerier, sql string, args ...any) (T, error) {
	var v T
	if err := q.QueryRow(ctx, sql, args...).Scan(&v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}
