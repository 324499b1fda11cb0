package repositories

import (
	"testing"

	"backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestCustomerRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM customers").WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "email"}).
			AddRow(3, "Maria Souza", "11999990000", "maria@example.com"))

	c, err := CustomerRepository{DB: db}.GetByID(3)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if c.ID != 3 || c.Name != "Maria Souza" {
		t.Fatalf("unexpected customer: %+v", c)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCustomerRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM customers").WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "phone", "email"}))

	_, err = CustomerRepository{DB: db}.GetByID(99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}
