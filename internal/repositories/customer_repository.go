package repositories

import (
	"database/sql"
	"errors"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

// CustomerRepository reads customer rows for score reports.
type CustomerRepository struct {
	DB *sql.DB
}

func (r CustomerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByID fetches one customer by primary key.
func (r CustomerRepository) GetByID(id int64) (models.Customer, error) {
	if id <= 0 {
		return models.Customer{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	db := r.db()
	if db == nil {
		return models.Customer{}, domain.InternalError{Msg: "database not connected"}
	}

	var c models.Customer
	err := db.QueryRow(`
		SELECT id,
		       COALESCE(name,''),
		       COALESCE(phone,''),
		       COALESCE(email,'')
		FROM customers
		WHERE id = ?
		LIMIT 1`, id).Scan(
		&c.ID,
		&c.Name,
		&c.Phone,
		&c.Email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Customer{}, domain.NotFoundError{Resource: "customer"}
		}
		return models.Customer{}, err
	}
	return c, nil
}
