package services

import (
	"backend/internal/billing"
	"backend/internal/repositories"
)

// ReportsService rolls per-passenger breakdowns up into trip summaries.
type ReportsService struct {
	EnrollmentRepo repositories.EnrollmentRepository
	TripRepo       repositories.TripRepository
	RequestID      string
}

// TripReport couples the summary with the roster rows behind it.
type TripReport struct {
	TripID     int64                        `json:"trip_id"`
	TripName   string                       `json:"trip_name"`
	Capacity   int                          `json:"capacity"`
	Summary    billing.TripSummary          `json:"summary"`
	Passengers []billing.PassengerBreakdown `json:"passengers"`
}

// GetTripReport computes the aggregate collection picture for one trip.
func (s ReportsService) GetTripReport(tripID int64) (TripReport, error) {
	trip, err := s.TripRepo.GetByID(tripID)
	if err != nil {
		return TripReport{}, err
	}

	snaps, err := s.EnrollmentRepo.ListByTrip(tripID)
	if err != nil {
		return TripReport{}, err
	}

	rows := make([]billing.PassengerBreakdown, 0, len(snaps))
	for _, snap := range snaps {
		b, err := billing.ComputeBreakdown(snap)
		if err != nil {
			return TripReport{}, err
		}
		flags := billing.StatusFlags{IsComplimentary: snap.IsComplimentary}
		if snap.Credit != nil {
			flags.ViaCredit = snap.Credit.ViaCredit
			flags.CreditAppliedAmount = snap.Credit.AppliedAmount
		}
		tag, detail := billing.ClassifyStatus(b, flags)
		rows = append(rows, billing.PassengerBreakdown{
			EnrollmentID:  snap.ID,
			PassengerName: snap.PassengerName,
			GrandTotal:    snap.GrandTotal(),
			Breakdown:     b,
			Status:        tag,
			StatusDetail:  detail,
		})
	}

	return TripReport{
		TripID:     trip.ID,
		TripName:   trip.Name,
		Capacity:   trip.Capacity,
		Summary:    billing.SummarizeTrip(rows),
		Passengers: rows,
	}, nil
}
