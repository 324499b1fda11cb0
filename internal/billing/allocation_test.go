package billing

import (
	"strings"
	"testing"
	"time"

	"backend/internal/domain"
	"backend/internal/domain/models"
)

func paidAt(t *testing.T, s string) *time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return &ts
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}

func TestComputeBreakdownOverpaidTripLeavesToursPending(t *testing.T) {
	snap := models.EnrollmentSnapshot{
		BaseFare: 300,
		Discount: 50,
		TourSelections: []models.TourSelection{
			{Name: "City tour", ChargedAmount: 80},
		},
		PaymentRecords: []models.PaymentRecord{
			{Category: models.CategoryTrip, AmountPaid: 350, PaidAt: paidAt(t, "2025-03-01")},
		},
	}

	b, err := ComputeBreakdown(snap)
	if err != nil {
		t.Fatalf("ComputeBreakdown returned error: %v", err)
	}
	if !almostEqual(b.PaidTrip, 350) {
		t.Fatalf("paid trip: got %v want 350 (payment sums are not capped)", b.PaidTrip)
	}
	if !almostEqual(b.PendingTrip, 0) {
		t.Fatalf("pending trip: got %v want 0", b.PendingTrip)
	}
	if !almostEqual(b.PendingTours, 80) {
		t.Fatalf("pending tours: got %v want 80", b.PendingTours)
	}

	tag, _ := ClassifyStatus(b, StatusFlags{})
	if tag != StatusTripPaidToursPending {
		t.Fatalf("status: got %s want %s", tag, StatusTripPaidToursPending)
	}
}

func TestComputeBreakdownComplimentaryZeroesEverything(t *testing.T) {
	snap := models.EnrollmentSnapshot{
		BaseFare:        500,
		IsComplimentary: true,
		TourSelections: []models.TourSelection{
			{Name: "Boat trip", ChargedAmount: 120},
		},
	}

	b, err := ComputeBreakdown(snap)
	if err != nil {
		t.Fatalf("ComputeBreakdown returned error: %v", err)
	}
	if b != (CategoryBreakdown{}) {
		t.Fatalf("expected all-zero breakdown, got %+v", b)
	}

	tag, _ := ClassifyStatus(b, StatusFlags{IsComplimentary: true})
	if tag != StatusComplimentary {
		t.Fatalf("status: got %s want %s", tag, StatusComplimentary)
	}
}

func TestComputeBreakdownCreditCapsAndSpillsToTours(t *testing.T) {
	snap := models.EnrollmentSnapshot{
		BaseFare: 200,
		TourSelections: []models.TourSelection{
			{Name: "Winery", ChargedAmount: 100},
		},
		Credit: &models.CreditApplication{AppliedAmount: 250, ViaCredit: true},
	}

	b, err := ComputeBreakdown(snap)
	if err != nil {
		t.Fatalf("ComputeBreakdown returned error: %v", err)
	}
	if !almostEqual(b.PaidTrip, 200) {
		t.Fatalf("paid trip: got %v want 200 (capped at net fare)", b.PaidTrip)
	}
	if !almostEqual(b.PaidTours, 50) {
		t.Fatalf("paid tours: got %v want 50 (leftover credit)", b.PaidTours)
	}
	if !almostEqual(b.PendingTours, 50) {
		t.Fatalf("pending tours: got %v want 50", b.PendingTours)
	}

	tag, detail := ClassifyStatus(b, StatusFlags{ViaCredit: true, CreditAppliedAmount: 250})
	if tag != StatusTripPaidToursPending {
		t.Fatalf("status: got %s want %s", tag, StatusTripPaidToursPending)
	}
	if !strings.Contains(detail, "via credit") {
		t.Fatalf("detail should mention the credit: %q", detail)
	}
	if !strings.Contains(detail, "R$ 50,00") {
		t.Fatalf("detail should report the pending tours amount: %q", detail)
	}
}

func TestComputeBreakdownPartialCreditIsAdditive(t *testing.T) {
	snap := models.EnrollmentSnapshot{
		BaseFare: 400,
		PaymentRecords: []models.PaymentRecord{
			{Category: models.CategoryTrip, AmountPaid: 100, PaidAt: paidAt(t, "2025-01-10")},
		},
		Credit: &models.CreditApplication{AppliedAmount: 150, ViaCredit: true},
	}

	b, err := ComputeBreakdown(snap)
	if err != nil {
		t.Fatalf("ComputeBreakdown returned error: %v", err)
	}
	if !almostEqual(b.PaidTrip, 250) {
		t.Fatalf("paid trip: got %v want 250 (100 cash + 150 credit)", b.PaidTrip)
	}
	if !almostEqual(b.PendingTrip, 150) {
		t.Fatalf("pending trip: got %v want 150", b.PendingTrip)
	}
}

func TestComputeBreakdownBothCategoryCountsTwice(t *testing.T) {
	snap := models.EnrollmentSnapshot{
		BaseFare: 100,
		TourSelections: []models.TourSelection{
			{Name: "Museum", ChargedAmount: 100},
		},
		PaymentRecords: []models.PaymentRecord{
			{Category: models.CategoryBoth, AmountPaid: 100, PaidAt: paidAt(t, "2025-02-02")},
		},
	}

	b, err := ComputeBreakdown(snap)
	if err != nil {
		t.Fatalf("ComputeBreakdown returned error: %v", err)
	}
	// One 100 payment on the merged category settles both sides independently.
	if !almostEqual(b.PaidTrip, 100) || !almostEqual(b.PaidTours, 100) {
		t.Fatalf("merged payment should land on both sides: %+v", b)
	}
	if !almostEqual(b.TotalPaid, 200) {
		t.Fatalf("total paid: got %v want 200 (intentional double count)", b.TotalPaid)
	}
	if !almostEqual(b.PendingTotal, 0) {
		t.Fatalf("pending total: got %v want 0", b.PendingTotal)
	}
}

func TestComputeBreakdownPlaceholderPaymentsIgnored(t *testing.T) {
	snap := models.EnrollmentSnapshot{
		BaseFare: 100,
		PaymentRecords: []models.PaymentRecord{
			{Category: models.CategoryTrip, AmountPaid: 100}, // no PaidAt
		},
	}

	b, err := ComputeBreakdown(snap)
	if err != nil {
		t.Fatalf("ComputeBreakdown returned error: %v", err)
	}
	if !almostEqual(b.PaidTrip, 0) {
		t.Fatalf("placeholder payment must not count, got paid trip %v", b.PaidTrip)
	}
	if !almostEqual(b.PendingTrip, 100) {
		t.Fatalf("pending trip: got %v want 100", b.PendingTrip)
	}
}

func TestComputeBreakdownDiscountAboveFareClampsToZero(t *testing.T) {
	snap := models.EnrollmentSnapshot{BaseFare: 100, Discount: 150}

	b, err := ComputeBreakdown(snap)
	if err != nil {
		t.Fatalf("ComputeBreakdown returned error: %v", err)
	}
	if !almostEqual(b.PendingTrip, 0) {
		t.Fatalf("net fare should clamp at zero, got pending trip %v", b.PendingTrip)
	}
}

func TestComputeBreakdownRejectsNegativeAmounts(t *testing.T) {
	cases := []models.EnrollmentSnapshot{
		{BaseFare: -1},
		{BaseFare: 100, Discount: -5},
		{BaseFare: 100, TourSelections: []models.TourSelection{{Name: "x", ChargedAmount: -10}}},
		{BaseFare: 100, PaymentRecords: []models.PaymentRecord{{Category: models.CategoryTrip, AmountPaid: -1}}},
		{BaseFare: 100, Credit: &models.CreditApplication{AppliedAmount: -1}},
	}

	for i, snap := range cases {
		if _, err := ComputeBreakdown(snap); !domain.IsValidation(err) {
			t.Fatalf("case %d: expected validation error, got %v", i, err)
		}
	}
}

func TestComputeBreakdownIsIdempotent(t *testing.T) {
	snap := models.EnrollmentSnapshot{
		BaseFare: 777.77,
		Discount: 33.33,
		TourSelections: []models.TourSelection{
			{Name: "Dunes", ChargedAmount: 55.55},
		},
		PaymentRecords: []models.PaymentRecord{
			{Category: models.CategoryBoth, AmountPaid: 123.45, PaidAt: paidAt(t, "2025-04-04")},
		},
		Credit: &models.CreditApplication{AppliedAmount: 60},
	}

	first, err := ComputeBreakdown(snap)
	if err != nil {
		t.Fatalf("first call error: %v", err)
	}
	second, err := ComputeBreakdown(snap)
	if err != nil {
		t.Fatalf("second call error: %v", err)
	}
	if first != second {
		t.Fatalf("results differ: %+v vs %+v", first, second)
	}
}

func TestComputeBreakdownNeverNegativePending(t *testing.T) {
	// overpay every side heavily
	snap := models.EnrollmentSnapshot{
		BaseFare: 50,
		TourSelections: []models.TourSelection{
			{Name: "a", ChargedAmount: 10},
		},
		PaymentRecords: []models.PaymentRecord{
			{Category: models.CategoryBoth, AmountPaid: 9999, PaidAt: paidAt(t, "2025-05-05")},
		},
	}

	b, err := ComputeBreakdown(snap)
	if err != nil {
		t.Fatalf("ComputeBreakdown returned error: %v", err)
	}
	if b.PendingTrip < 0 || b.PendingTours < 0 || b.PendingTotal < 0 {
		t.Fatalf("pending values must never go negative: %+v", b)
	}
}
