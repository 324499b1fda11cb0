package services

import (
	"fmt"

	"backend/internal/billing"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// BillingService loads enrollment snapshots and computes breakdowns plus
// status labels on demand. The heavy lifting is pure billing code; this
// layer only fetches and logs.
type BillingService struct {
	EnrollmentRepo repositories.EnrollmentRepository
	PaymentRepo    repositories.PaymentRepository
	RequestID      string
}

// EnrollmentBilling is the full per-enrollment answer the API serves.
type EnrollmentBilling struct {
	EnrollmentID  int64                     `json:"enrollment_id"`
	PassengerName string                    `json:"passenger_name"`
	GrandTotal    float64                   `json:"grand_total"`
	Breakdown     billing.CategoryBreakdown `json:"breakdown"`
	Status        billing.StatusTag         `json:"status"`
	StatusDetail  string                    `json:"status_detail"`
}

// GetEnrollmentBilling computes the breakdown and status for one enrollment.
func (s BillingService) GetEnrollmentBilling(enrollmentID int64) (EnrollmentBilling, error) {
	snap, err := s.EnrollmentRepo.GetSnapshot(enrollmentID)
	if err != nil {
		return EnrollmentBilling{}, err
	}

	b, err := billing.ComputeBreakdown(snap)
	if err != nil {
		utils.LogEvent(s.RequestID, "billing", "breakdown", fmt.Sprintf("enrollment_id=%d invalid: %v", enrollmentID, err))
		return EnrollmentBilling{}, err
	}

	flags := billing.StatusFlags{IsComplimentary: snap.IsComplimentary}
	if snap.Credit != nil {
		flags.ViaCredit = snap.Credit.ViaCredit
		flags.CreditAppliedAmount = snap.Credit.AppliedAmount
	}
	tag, detail := billing.ClassifyStatus(b, flags)

	return EnrollmentBilling{
		EnrollmentID:  snap.ID,
		PassengerName: snap.PassengerName,
		GrandTotal:    snap.GrandTotal(),
		Breakdown:     b,
		Status:        tag,
		StatusDetail:  detail,
	}, nil
}

// RecordPayment appends a categorized payment and returns the recomputed
// billing picture so callers see the effect immediately.
func (s BillingService) RecordPayment(enrollmentID int64, in repositories.PaymentInput) (EnrollmentBilling, error) {
	// make sure the enrollment exists before appending
	if _, err := s.EnrollmentRepo.GetSnapshot(enrollmentID); err != nil {
		return EnrollmentBilling{}, err
	}

	id, err := s.PaymentRepo.RecordPayment(enrollmentID, in)
	if err != nil {
		return EnrollmentBilling{}, err
	}
	utils.LogEvent(s.RequestID, "billing", "record_payment",
		fmt.Sprintf("enrollment_id=%d payment_id=%d amount=%s", enrollmentID, id, utils.FormatMoney(in.AmountPaid)))

	return s.GetEnrollmentBilling(enrollmentID)
}
