package repositories

import (
	"database/sql"
	"errors"

	intconfig "backend/internal/config"
	"backend/internal/domain"
	"backend/internal/domain/models"
)

// TripRepository reads trip rows for reports and due-date lookups.
type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// GetByID fetches one trip by primary key.
func (r TripRepository) GetByID(id int64) (models.Trip, error) {
	if id <= 0 {
		return models.Trip{}, domain.ValidationError{Field: "id", Msg: "must be positive"}
	}
	db := r.db()
	if db == nil {
		return models.Trip{}, domain.InternalError{Msg: "database not connected"}
	}

	var (
		t         models.Trip
		eventDate sql.NullTime
	)
	err := db.QueryRow(`
		SELECT id,
		       COALESCE(name,''),
		       COALESCE(destination,''),
		       event_date,
		       COALESCE(capacity,0),
		       COALESCE(base_fare,0)
		FROM trips
		WHERE id = ?
		LIMIT 1`, id).Scan(
		&t.ID,
		&t.Name,
		&t.Destination,
		&eventDate,
		&t.Capacity,
		&t.BaseFare,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Trip{}, domain.NotFoundError{Resource: "trip"}
		}
		return models.Trip{}, err
	}
	if eventDate.Valid {
		d := eventDate.Time
		t.EventDate = &d
	}
	return t, nil
}
