package billing

import (
	"math"
	"time"

	"backend/internal/domain/models"
	"backend/internal/utils"
)

// Classification is the three-tier creditworthiness label.
type Classification string

const (
	ClassGood       Classification = "bom"
	ClassAttention  Classification = "atencao"
	ClassDelinquent Classification = "inadimplente"
)

// CustomerEnrollment pairs one enrollment with its computed breakdown, the
// unit the scorer consumes.
type CustomerEnrollment struct {
	Snapshot  models.EnrollmentSnapshot
	Breakdown CategoryBreakdown
}

// ScoreResult is the scorer's output: a 0-100 score, the tier derived from
// the final score, and a human-readable reason.
type ScoreResult struct {
	Score          int            `json:"score"`
	Classification Classification `json:"classification"`
	Reason         string         `json:"reason"`
}

// ScoreCustomer derives a creditworthiness score from the pattern of pending
// and overdue balances across all of one customer's enrollments.
//
// The due date is a proxy: the trip's event date stands in for an invoice due
// date until the ledger grows a real one. Enrollments without a date are left
// out of the overdue math but still count toward pending totals.
//
// now is an explicit parameter so the function stays deterministic under test;
// never read the wall clock in here.
func ScoreCustomer(items []CustomerEnrollment, now time.Time) ScoreResult {
	if len(items) == 0 {
		return ScoreResult{Score: 80, Classification: ClassGood, Reason: "New customer, no payment history."}
	}

	var (
		pendingCount       int
		overdueCount       int
		maxDaysOverdue     int
		pendingTotalAcross float64
		totalSpentAcross   float64
		completedPayments  int
	)

	for _, it := range items {
		totalSpentAcross += it.Snapshot.GrandTotal()
		for _, p := range it.Snapshot.PaymentRecords {
			if p.PaidAt != nil {
				completedPayments++
			}
		}

		if it.Breakdown.PendingTotal <= Epsilon {
			continue
		}
		pendingCount++
		pendingTotalAcross += it.Breakdown.PendingTotal

		if it.Snapshot.DueDate == nil {
			// no due-date proxy: degraded-but-safe, skip overdue math
			continue
		}
		if now.After(*it.Snapshot.DueDate) {
			overdueCount++
			if days := utils.DaysBetween(*it.Snapshot.DueDate, now); days > maxDaysOverdue {
				maxDaysOverdue = days
			}
		}
	}

	var pctOverdue float64
	if pendingCount > 0 {
		pctOverdue = float64(overdueCount) / float64(pendingCount) * 100
	}

	var (
		base   float64
		reason string
	)
	switch {
	case pendingCount == 0:
		base = 100
		reason = "No outstanding balance."
	case overdueCount == 0:
		base = 85
		reason = "Pending balance of " + utils.FormatBRL(pendingTotalAcross) + ", none overdue."
	case maxDaysOverdue <= 7:
		base = 70 - 0.2*pctOverdue
		reason = "Light delay: overdue up to 7 days."
	case maxDaysOverdue <= 30:
		base = 50 - 0.3*pctOverdue
		reason = "Moderate delay: overdue up to 30 days."
	default:
		base = 30 - 0.5*pctOverdue
		reason = "Severe delay: overdue beyond 30 days."
	}

	// history bonus for a longer record of completed payments
	bonus := float64(completedPayments) * 1.5
	if bonus > 15 {
		bonus = 15
	}
	base += bonus

	// loyalty bonus: frequent traveler with little outstanding relative to spend
	if len(items) >= 5 && pendingTotalAcross <= 0.10*totalSpentAcross {
		base += 5
	}

	score := int(math.Round(base))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	// The tier follows the FINAL score, not the base branch: the adjustments
	// are allowed to rescue a borderline customer into a better tier.
	return ScoreResult{
		Score:          score,
		Classification: classify(score),
		Reason:         reason,
	}
}

func classify(score int) Classification {
	switch {
	case score >= 80:
		return ClassGood
	case score >= 60:
		return ClassAttention
	default:
		return ClassDelinquent
	}
}
