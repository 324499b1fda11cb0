package repositories

import (
	"database/sql"
	"time"

	intconfig "backend/internal/config"
	intdb "backend/internal/db"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

// PaymentRepository appends categorized payment records to the ledger.
type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// PaymentInput is the write contract for one new payment record. A nil
// PaidAt stores a placeholder row that will not count toward paid totals
// until it is confirmed.
type PaymentInput struct {
	Category   models.PaymentCategory
	AmountPaid float64
	Method     string
	PaidAt     *time.Time
}

// RecordPayment validates and appends one payment record for an enrollment.
func (r PaymentRepository) RecordPayment(enrollmentID int64, in PaymentInput) (int64, error) {
	if enrollmentID <= 0 {
		return 0, domain.ValidationError{Field: "enrollment_id", Msg: "must be positive"}
	}
	if in.AmountPaid < 0 {
		return 0, domain.ValidationError{Field: "amount_paid", Msg: "must not be negative"}
	}
	db := r.db()
	if db == nil {
		return 0, domain.InternalError{Msg: "database not connected"}
	}

	var paidAt any
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}

	res, err := db.Exec(`
		INSERT INTO payment_records (enrollment_id, category, amount_paid, method, paid_at)
		VALUES (?, ?, ?, ?, ?)`,
		enrollmentID,
		string(models.ParsePaymentCategory(string(in.Category))),
		in.AmountPaid,
		intdb.NullIfEmpty(in.Method),
		paidAt,
	)
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()
	return id, nil
}
