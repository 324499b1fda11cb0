package billing

import "backend/internal/utils"

// StatusTag is the discrete payment status shown to staff.
type StatusTag string

const (
	StatusComplimentary        StatusTag = "brinde"
	StatusFullyPaid            StatusTag = "pago"
	StatusTripPaidToursPending StatusTag = "viagem_paga"
	StatusToursPaidTripPending StatusTag = "passeios_pagos"
	StatusPartiallyPaid        StatusTag = "parcial"
	StatusPending              StatusTag = "pendente"
)

// StatusFlags carries the enrollment-level flags the classifier needs
// alongside the breakdown.
type StatusFlags struct {
	IsComplimentary     bool
	ViaCredit           bool
	CreditAppliedAmount float64
}

// ClassifyStatus maps a breakdown to exactly one status tag plus a detail
// line. Rules are evaluated in order and the first match wins; the two
// one-category-settled tags must be checked before the generic partial
// bucket because they tell staff which category still needs collection.
func ClassifyStatus(b CategoryBreakdown, f StatusFlags) (StatusTag, string) {
	if f.IsComplimentary {
		return StatusComplimentary, "Courtesy enrollment."
	}

	if EffectivelyZero(b.PendingTotal) {
		if f.ViaCredit {
			return StatusFullyPaid, "Fully paid (via credit)."
		}
		return StatusFullyPaid, "Fully paid."
	}

	if EffectivelyZero(b.PendingTrip) && b.PendingTours > Epsilon {
		settled := "Trip fare settled"
		if f.ViaCredit && f.CreditAppliedAmount > 0 {
			settled += " (via credit)"
		}
		return StatusTripPaidToursPending,
			settled + "; tours pending: " + utils.FormatBRL(b.PendingTours) + "."
	}

	if EffectivelyZero(b.PendingTours) && b.PendingTrip > Epsilon {
		settled := "Tours settled"
		if f.ViaCredit && f.CreditAppliedAmount > 0 {
			settled += " (via credit)"
		}
		return StatusToursPaidTripPending,
			settled + "; trip fare pending: " + utils.FormatBRL(b.PendingTrip) + "."
	}

	if b.TotalPaid > Epsilon {
		detail := "Paid " + utils.FormatBRL(b.TotalPaid)
		if f.ViaCredit && f.CreditAppliedAmount > 0 {
			detail += " (" + utils.FormatBRL(f.CreditAppliedAmount) + " via credit)"
		}
		detail += "; pending " + utils.FormatBRL(b.PendingTotal) + "."
		return StatusPartiallyPaid, detail
	}

	if f.ViaCredit && f.CreditAppliedAmount > 0 {
		return StatusPending,
			"No payment recorded; credit of " + utils.FormatBRL(f.CreditAppliedAmount) +
				" noted, pending " + utils.FormatBRL(b.PendingTotal) + "."
	}
	return StatusPending, "No payment recorded; pending " + utils.FormatBRL(b.PendingTotal) + "."
}

// IsSettled reports whether a tag means nothing is left to collect.
func IsSettled(tag StatusTag) bool {
	return tag == StatusFullyPaid || tag == StatusComplimentary
}
