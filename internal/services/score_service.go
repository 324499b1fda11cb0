package services

import (
	"fmt"
	"time"

	"backend/internal/billing"
	"backend/internal/domain/models"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// ScoreService aggregates one customer's enrollments into a creditworthiness
// score. now is threaded in from the caller so scoring stays deterministic.
type ScoreService struct {
	EnrollmentRepo repositories.EnrollmentRepository
	CustomerRepo   repositories.CustomerRepository
	RequestID      string
}

// CustomerScore is the API answer for one customer.
type CustomerScore struct {
	Customer        models.Customer     `json:"customer"`
	EnrollmentCount int                 `json:"enrollment_count"`
	Result          billing.ScoreResult `json:"result"`
}

// ScoreCustomer loads the customer and all of their enrollments, computes a
// breakdown for each, and feeds the pairs to the scorer.
func (s ScoreService) ScoreCustomer(customerID int64, now time.Time) (CustomerScore, error) {
	customer, err := s.CustomerRepo.GetByID(customerID)
	if err != nil {
		return CustomerScore{}, err
	}

	snaps, err := s.EnrollmentRepo.ListByCustomer(customerID)
	if err != nil {
		return CustomerScore{}, err
	}

	items := make([]billing.CustomerEnrollment, 0, len(snaps))
	for _, snap := range snaps {
		b, err := billing.ComputeBreakdown(snap)
		if err != nil {
			utils.LogEvent(s.RequestID, "score", "compute",
				fmt.Sprintf("customer_id=%d enrollment_id=%d invalid: %v", customerID, snap.ID, err))
			return CustomerScore{}, err
		}
		items = append(items, billing.CustomerEnrollment{Snapshot: snap, Breakdown: b})
	}

	res := billing.ScoreCustomer(items, now)
	utils.LogEvent(s.RequestID, "score", "result",
		fmt.Sprintf("customer_id=%d score=%d class=%s", customerID, res.Score, res.Classification))

	return CustomerScore{
		Customer:        customer,
		EnrollmentCount: len(items),
		Result:          res,
	}, nil
}
