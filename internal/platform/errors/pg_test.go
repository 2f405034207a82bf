package errors

import (
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDBErrorCode(t *testing.T) {
	tests := []struct {
		sqlstate string
		want     ErrorCode
	}{
		{"23505", ErrorCodeDuplicateKey},
		{"23503", ErrorCodeInvalidArgument},
		{"23502", ErrorCodeValidation},
		{"23514", ErrorCodeValidation},
		{"22P02", ErrorCodeInvalidArgument},
		{"22008", ErrorCodeInvalidArgument},
		{"57014", ErrorCodeTimeout},
		{"57P01", ErrorCodeUnavailable},
		{"57P03", ErrorCodeUnavailable},
		{"25006", ErrorCodeUnavailable},
		{"53300", ErrorCodeUnavailable},
		{"42P01", ErrorCodeDB},
		{"42703", ErrorCodeDB},
		{"XX000", ErrorCodeDB},
	}
	for _, tc := range tests {
		got, ok := DBErrorCode(fmt.Errorf("exec: %w", &pgconn.PgError{Code: tc.sqlstate}))
		if !ok || got != tc.want {
			t.Errorf("%s: got %s ok=%v, want %s", tc.sqlstate, got, ok, tc.want)
		}
	}
	if _, ok := DBErrorCode(stderrs.New("not pg")); ok {
		t.Fatal("foreign errors are not classified")
	}
}

func TestFromPostgres(t *testing.T) {
	if FromPostgres(nil, "x") != nil || FromPostgresf(nil, "x %d", 1) != nil {
		t.Fatal("nil must stay nil")
	}

	timeout := &pgconn.PgError{Code: "57014", Message: "canceling statement due to statement timeout"}
	err := FromPostgresf(timeout, "answer query %s", "month_views")
	if !IsCode(err, ErrorCodeTimeout) || !IsSQLState(err, "57014") {
		t.Fatalf("timeout: %v", err)
	}

	err = FromPostgres(stderrs.New("conn closed"), "load batch")
	if !IsCode(err, ErrorCodeDB) || err.Error() != "load batch: conn closed" {
		t.Fatalf("foreign: %v", err)
	}
	if IsSQLState(err, "57014") {
		t.Fatal("IsSQLState on a foreign error")
	}
}

func TestFromPostgresWithField(t *testing.T) {
	tests := []struct {
		name string
		pe   *pgconn.PgError
		want string
	}{
		{"column", &pgconn.PgError{Code: "23502", ColumnName: "creator_id", TableName: "videos"}, "creator_id"},
		{"fkey", &pgconn.PgError{Code: "23503", TableName: "video_snapshots", ConstraintName: "video_snapshots_video_id_fkey"}, "video_id"},
		{"check", &pgconn.PgError{Code: "23514", TableName: "videos", ConstraintName: "videos_views_count_check"}, "views_count"},
		{"pkey", &pgconn.PgError{Code: "23505", TableName: "videos", ConstraintName: "videos_pkey"}, ""},
		{"nothing", &pgconn.PgError{Code: "XX000"}, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, ok := As(FromPostgresWithField(tc.pe, "load batch"))
			if !ok || e.Field() != tc.want {
				t.Fatalf("field = %q, want %q", e.Field(), tc.want)
			}
		})
	}

	if FromPostgresWithField(nil, "x") != nil {
		t.Fatal("nil must stay nil")
	}
	if _, ok := As(FromPostgresWithField(stderrs.New("io"), "x")); !ok {
		t.Fatal("foreign errors still get wrapped")
	}
}
