package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorDump flattens an error chain for the request.error log line. Postgres
// diagnostics are lifted out of the driver error so a failed write carries
// its constraint and table without a second trip to the database. GORM runs
// on the pgx driver, so pgconn.PgError is the only driver type to unwrap.
type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	PGCode       string `json:"pg_code,omitempty"`
	PGConstraint string `json:"pg_constraint,omitempty"`
	PGTable      string `json:"pg_table,omitempty"`
	PGColumn     string `json:"pg_column,omitempty"`
	PGDetail     string `json:"pg_detail,omitempty"`
	PGMessage    string `json:"pg_message,omitempty"`
}

// Dump walks the chain once, recording each wrapped error and any Postgres
// diagnostics found along the way.
func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	dump := ErrorDump{TopMessage: err.Error()}
	if typed := As(err); typed != nil {
		dump.Code = typed.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		dump.Chain = append(dump.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		dump.PGCode = pgErr.Code
		dump.PGConstraint = pgErr.ConstraintName
		dump.PGTable = pgErr.TableName
		dump.PGColumn = pgErr.ColumnName
		dump.PGDetail = pgErr.Detail
		dump.PGMessage = pgErr.Message
	}

	return dump
}
