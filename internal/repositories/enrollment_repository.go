package repositories

import (
	"database/sql"
	"errors"

	intconfig "backend/internal/config"
	intdb "backend/internal/db"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

// EnrollmentRepository assembles immutable enrollment snapshots from the
// ledger tables. It only reads; recomputation of breakdowns happens on the
// caller side from the snapshot.
type EnrollmentRepository struct {
	DB *sql.DB
}

func (r EnrollmentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const enrollmentColumns = `
	e.id,
	COALESCE(e.customer_id,0),
	COALESCE(e.trip_id,0),
	COALESCE(e.passenger_name,''),
	COALESCE(e.base_fare,0),
	COALESCE(e.discount,0),
	COALESCE(e.is_complimentary,0),
	t.event_date`

// GetSnapshot loads one enrollment with its tour selections, payment records
// and credit application. The trip's event date rides along as the due-date
// proxy used by scoring.
func (r EnrollmentRepository) GetSnapshot(id int64) (models.EnrollmentSnapshot, error) {
	if id <= 0 {
		return models.EnrollmentSnapshot{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	db := r.db()
	if db == nil {
		return models.EnrollmentSnapshot{}, domain.InternalError{Msg: "database not connected"}
	}

	query := `
		SELECT ` + enrollmentColumns + `
		FROM enrollments e
		LEFT JOIN trips t ON t.id = e.trip_id
		WHERE e.id = ?
		LIMIT 1`

	snap, err := scanSnapshot(db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.EnrollmentSnapshot{}, domain.NotFoundError{Resource: "enrollment"}
		}
		return models.EnrollmentSnapshot{}, err
	}

	if err := r.attachDetails(db, &snap); err != nil {
		return models.EnrollmentSnapshot{}, err
	}
	return snap, nil
}

// ListByCustomer returns all of one customer's enrollment snapshots, fully
// assembled, ordered by id.
func (r EnrollmentRepository) ListByCustomer(customerID int64) ([]models.EnrollmentSnapshot, error) {
	if customerID <= 0 {
		return nil, domain.ValidationError{Field: "customer_id", Msg: "must be positive"}
	}
	return r.list(`WHERE e.customer_id = ?`, customerID)
}

// ListByTrip returns the snapshots of every passenger on one trip.
func (r EnrollmentRepository) ListByTrip(tripID int64) ([]models.EnrollmentSnapshot, error) {
	if tripID <= 0 {
		return nil, domain.ValidationError{Field: "trip_id", Msg: "must be positive"}
	}
	return r.list(`WHERE e.trip_id = ?`, tripID)
}

func (r EnrollmentRepository) list(where string, arg any) ([]models.EnrollmentSnapshot, error) {
	db := r.db()
	if db == nil {
		return nil, domain.InternalError{Msg: "database not connected"}
	}

	query := `
		SELECT ` + enrollmentColumns + `
		FROM enrollments e
		LEFT JOIN trips t ON t.id = e.trip_id
		` + where + `
		ORDER BY e.id`

	rows, err := db.Query(query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.EnrollmentSnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i := range out {
		if err := r.attachDetails(db, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (models.EnrollmentSnapshot, error) {
	var (
		snap          models.EnrollmentSnapshot
		complimentary int
		eventDate     sql.NullTime
	)
	err := row.Scan(
		&snap.ID,
		&snap.CustomerID,
		&snap.TripID,
		&snap.PassengerName,
		&snap.BaseFare,
		&snap.Discount,
		&complimentary,
		&eventDate,
	)
	if err != nil {
		return models.EnrollmentSnapshot{}, err
	}
	snap.IsComplimentary = complimentary != 0
	if eventDate.Valid {
		d := eventDate.Time
		snap.DueDate = &d
	}
	return snap, nil
}

func (r EnrollmentRepository) attachDetails(db *sql.DB, snap *models.EnrollmentSnapshot) error {
	tours, err := loadTourSelections(db, snap.ID)
	if err != nil {
		return err
	}
	snap.TourSelections = tours

	payments, err := loadPaymentRecords(db, snap.ID)
	if err != nil {
		return err
	}
	snap.PaymentRecords = payments

	credit, err := loadCreditApplication(db, snap.ID)
	if err != nil {
		return err
	}
	snap.Credit = credit
	return nil
}

func loadTourSelections(db *sql.DB, enrollmentID int64) ([]models.TourSelection, error) {
	rows, err := db.Query(`
		SELECT COALESCE(name,''), COALESCE(charged_amount,0)
		FROM tour_selections
		WHERE enrollment_id = ?
		ORDER BY id`, enrollmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.TourSelection
	for rows.Next() {
		var t models.TourSelection
		if err := rows.Scan(&t.Name, &t.ChargedAmount); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func loadPaymentRecords(db *sql.DB, enrollmentID int64) ([]models.PaymentRecord, error) {
	rows, err := db.Query(`
		SELECT id, COALESCE(category,''), COALESCE(amount_paid,0), COALESCE(method,''), paid_at
		FROM payment_records
		WHERE enrollment_id = ?
		ORDER BY id`, enrollmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PaymentRecord
	for rows.Next() {
		var (
			p      models.PaymentRecord
			cat    string
			paidAt sql.NullTime
		)
		if err := rows.Scan(&p.ID, &cat, &p.AmountPaid, &p.Method, &paidAt); err != nil {
			return nil, err
		}
		p.Category = models.ParsePaymentCategory(cat)
		if paidAt.Valid {
			ts := paidAt.Time
			p.PaidAt = &ts
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func loadCreditApplication(db *sql.DB, enrollmentID int64) (*models.CreditApplication, error) {
	// the credit tables arrived later; older databases simply have no credits
	if !intdb.HasTable(db, "credit_applications") {
		return nil, nil
	}
	hasOrigin := intdb.HasColumn(db, "credit_applications", "origin_enrollment_id")

	var (
		c      models.CreditApplication
		origin sql.NullInt64
		via    int
		err    error
	)
	if hasOrigin {
		err = db.QueryRow(`
			SELECT COALESCE(applied_amount,0), origin_enrollment_id, COALESCE(via_credit,0)
			FROM credit_applications
			WHERE enrollment_id = ?
			LIMIT 1`, enrollmentID).Scan(&c.AppliedAmount, &origin, &via)
	} else {
		err = db.QueryRow(`
			SELECT COALESCE(applied_amount,0), COALESCE(via_credit,0)
			FROM credit_applications
			WHERE enrollment_id = ?
			LIMIT 1`, enrollmentID).Scan(&c.AppliedAmount, &via)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if origin.Valid {
		id := origin.Int64
		c.OriginEnrollmentID = &id
	}
	c.ViaCredit = via != 0
	return &c, nil
}
