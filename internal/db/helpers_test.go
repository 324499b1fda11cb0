package db

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestHasTableFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("credit_applications").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("credit_applications"))

	if !HasTable(db, "credit_applications") {
		t.Fatalf("expected table to be reported present")
	}
}

func TestHasTableLookupFailureReadsAsAbsent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.tables").WithArgs("credit_applications").
		WillReturnError(errors.New("connection reset"))

	if HasTable(db, "credit_applications") {
		t.Fatalf("lookup failure should read as absent")
	}
}

func TestHasColumnMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("information_schema\\.columns").
		WithArgs("credit_applications", "origin_enrollment_id").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))

	if HasColumn(db, "credit_applications", "origin_enrollment_id") {
		t.Fatalf("missing column should be reported absent")
	}
}
