package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestDumpNil(t *testing.T) {
	dump := Dump(nil)
	if dump.TopMessage != "" || dump.Chain != nil {
		t.Fatalf("expected empty dump, got %+v", dump)
	}
}

func TestDumpRecordsChainAndCode(t *testing.T) {
	cause := stdErrors.New("connection reset")
	err := Wrap(CodeDependency, cause, "persist print request")

	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("unexpected code %q", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d: %v", len(dump.Chain), dump.Chain)
	}
	if dump.TopMessage != err.Error() {
		t.Fatalf("unexpected top message %q", dump.TopMessage)
	}
}

func TestDumpLiftsPostgresDiagnostics(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_print_requests_reference",
		TableName:      "print_requests",
		ColumnName:     "reference",
		Detail:         "Key (reference)=(HP-1) already exists.",
		Message:        "duplicate key value violates unique constraint",
	}
	err := Wrap(CodeConflict, fmt.Errorf("create row: %w", pgErr), "reference number already submitted")

	dump := Dump(err)
	if dump.PGCode != "23505" {
		t.Fatalf("unexpected pg code %q", dump.PGCode)
	}
	if dump.PGConstraint != "idx_print_requests_reference" {
		t.Fatalf("unexpected constraint %q", dump.PGConstraint)
	}
	if dump.PGTable != "print_requests" || dump.PGColumn != "reference" {
		t.Fatalf("unexpected table/column %q/%q", dump.PGTable, dump.PGColumn)
	}
}
