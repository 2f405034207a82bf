package errors

import (
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// sqlstateCodes classifies the SQLSTATEs the executor and loader can meet;
// anything else is ErrorCodeDB
var sqlstateCodes = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23503": ErrorCodeInvalidArgument, // foreign_key_violation: snapshot of an unknown video
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeValidation,      // check_violation
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"22008": ErrorCodeInvalidArgument, // datetime_field_overflow
	"57014": ErrorCodeTimeout,         // query_canceled, statement_timeout included
	"57P01": ErrorCodeUnavailable,     // admin_shutdown
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction: hot standby
	"53300": ErrorCodeUnavailable,     // too_many_connections
}

func pgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	ok := stderrs.As(err, &pe)
	return pe, ok
}

// IsSQLState reports whether err wraps a postgres error with SQLSTATE code
func IsSQLState(err error, code string) bool {
	pe, ok := pgError(err)
	return ok && pe.Code == code
}

// DBErrorCode classifies err by SQLSTATE; ok is false when err is not a postgres error
func DBErrorCode(err error) (code ErrorCode, ok bool) {
	pe, ok := pgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	if c, found := sqlstateCodes[pe.Code]; found {
		return c, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps a database error under its classified code; nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, _ := DBErrorCode(err)
	if code == ErrorCodeUnknown {
		code = ErrorCodeDB
	}
	return Wrap(err, code, msg)
}

// FromPostgresf is FromPostgres with a formatted message
func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return FromPostgres(err, fmt.Sprintf(format, a...))
}

// FromPostgresWithField is FromPostgres plus the offending column when the
// server names one, or the middle of a videos_creator_id_fkey style constraint
func FromPostgresWithField(err error, msg string) error {
	out := FromPostgres(err, msg)
	pe, ok := pgError(err)
	if !ok {
		return out
	}
	if col := strings.TrimSpace(pe.ColumnName); col != "" {
		return WithField(out, col)
	}
	if f := constraintField(pe.TableName, pe.ConstraintName); f != "" {
		return WithField(out, f)
	}
	return out
}

// constraintField strips the table prefix and the _pkey/_fkey/_key/_check suffix
func constraintField(table, constraint string) string {
	c := strings.TrimPrefix(constraint, table+"_")
	for _, suf := range []string{"_pkey", "_fkey", "_key", "_check"} {
		if s, ok := strings.CutSuffix(c, suf); ok {
			return s
		}
	}
	return ""
}
