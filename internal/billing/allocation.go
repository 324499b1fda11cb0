// Package billing holds the payment allocation and credit reconciliation
// core: pure, deterministic functions over enrollment snapshots. Nothing in
// this package performs I/O or reads the clock.
package billing

import (
	"fmt"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

// Epsilon is the tolerance below which a monetary difference counts as zero.
const Epsilon = 0.01

// PolicyCountBothCategoryTwice documents that a payment recorded against the
// merged "ambos" category is added in full to BOTH paidTrip and paidTours.
// The sum paidTrip+paidTours can therefore exceed the cash actually received.
// This is intentional: the engine answers "how much is still outstanding in
// each category independently", not "where did the cash go". Do not rework
// this into a cash-conserving split; the status labels downstream depend on
// the current behavior.
const PolicyCountBothCategoryTwice = true

// CategoryBreakdown is the derived paid/pending picture for one enrollment.
// It is computed on demand and never persisted or mutated.
type CategoryBreakdown struct {
	PaidTrip     float64 `json:"paid_trip"`
	PaidTours    float64 `json:"paid_tours"`
	PendingTrip  float64 `json:"pending_trip"`
	PendingTours float64 `json:"pending_tours"`
	PendingTotal float64 `json:"pending_total"`
	TotalPaid    float64 `json:"total_paid"`
}

// ComputeBreakdown turns one enrollment snapshot into its CategoryBreakdown.
// Malformed input (negative amounts) returns a domain.ValidationError; the
// clamping rules below are policy, not error recovery.
func ComputeBreakdown(e models.EnrollmentSnapshot) (CategoryBreakdown, error) {
	if err := validateSnapshot(e); err != nil {
		return CategoryBreakdown{}, err
	}

	// Courtesy enrollments owe nothing regardless of fare, tours or payments.
	if e.IsComplimentary {
		return CategoryBreakdown{}, nil
	}

	netFare := e.NetFare()
	tourTotal := e.TourTotal()

	var paidTrip, paidTours float64
	for _, p := range e.PaymentRecords {
		if p.PaidAt == nil {
			// placeholder row, not yet a payment
			continue
		}
		switch p.Category {
		case models.CategoryTrip:
			paidTrip += p.AmountPaid
		case models.CategoryTours:
			paidTours += p.AmountPaid
		default:
			// merged category counts toward both sides, see
			// PolicyCountBothCategoryTwice
			paidTrip += p.AmountPaid
			paidTours += p.AmountPaid
		}
	}

	if c := e.Credit; c != nil && c.AppliedAmount > 0 {
		if c.AppliedAmount >= netFare {
			// Credit covers the whole fare: replace rather than add, so the
			// trip side can never show more than 100% paid via credit.
			paidTrip = netFare
			leftover := c.AppliedAmount - netFare
			if leftover > tourTotal {
				leftover = tourTotal
			}
			paidTours += leftover
		} else {
			paidTrip += c.AppliedAmount
		}
	}

	pendingTrip := clampZero(netFare - paidTrip)
	pendingTours := clampZero(tourTotal - paidTours)

	return CategoryBreakdown{
		PaidTrip:     paidTrip,
		PaidTours:    paidTours,
		PendingTrip:  pendingTrip,
		PendingTours: pendingTours,
		PendingTotal: pendingTrip + pendingTours,
		TotalPaid:    paidTrip + paidTours,
	}, nil
}

func validateSnapshot(e models.EnrollmentSnapshot) error {
	if e.BaseFare < 0 {
		return domain.ValidationError{Field: "base_fare", Msg: "must not be negative"}
	}
	if e.Discount < 0 {
		return domain.ValidationError{Field: "discount", Msg: "must not be negative"}
	}
	for i, t := range e.TourSelections {
		if t.ChargedAmount < 0 {
			return domain.ValidationError{
				Field: fmt.Sprintf("tour_selections[%d].charged_amount", i),
				Msg:   "must not be negative",
			}
		}
	}
	for i, p := range e.PaymentRecords {
		if p.AmountPaid < 0 {
			return domain.ValidationError{
				Field: fmt.Sprintf("payment_records[%d].amount_paid", i),
				Msg:   "must not be negative",
			}
		}
	}
	if e.Credit != nil && e.Credit.AppliedAmount < 0 {
		return domain.ValidationError{Field: "credit.applied_amount", Msg: "must not be negative"}
	}
	return nil
}

func clampZero(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}

// EffectivelyZero reports whether an amount is zero within Epsilon.
func EffectivelyZero(x float64) bool {
	return x <= Epsilon
}
