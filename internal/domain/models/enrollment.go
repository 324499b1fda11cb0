package models

import "time"

// PaymentCategory tells which owed bucket a payment reduces.
type PaymentCategory string

const (
	CategoryTrip  PaymentCategory = "viagem"
	CategoryTours PaymentCategory = "passeios"
	CategoryBoth  PaymentCategory = "ambos"
)

// ParsePaymentCategory normalizes raw category strings from the ledger.
// Unknown values fall back to CategoryBoth, matching the legacy data where
// uncategorized payments were meant to reduce everything.
func ParsePaymentCategory(s string) PaymentCategory {
	switch PaymentCategory(s) {
	case CategoryTrip, CategoryTours:
		return PaymentCategory(s)
	default:
		return CategoryBoth
	}
}

// TourSelection is one optional priced add-on inside an enrollment.
// A zero ChargedAmount means the add-on itself is complimentary; that is
// different from the enrollment-level complimentary flag.
type TourSelection struct {
	Name          string  `json:"name"`
	ChargedAmount float64 `json:"charged_amount"`
}

// PaymentRecord is one recorded payment against an enrollment.
// A nil PaidAt marks a placeholder row that does not count toward paid totals.
type PaymentRecord struct {
	ID         int64           `json:"id"`
	Category   PaymentCategory `json:"category"`
	AmountPaid float64         `json:"amount_paid"`
	Method     string          `json:"method"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
}

// CreditApplication records that a pre-existing account credit was used to
// satisfy part or all of this enrollment's balance. At most one per enrollment.
type CreditApplication struct {
	AppliedAmount      float64 `json:"applied_amount"`
	OriginEnrollmentID *int64  `json:"origin_enrollment_id,omitempty"`
	ViaCredit          bool    `json:"via_credit"`
}

// EnrollmentSnapshot is the immutable read model assembled once by the
// ledger boundary and consumed read-only by the billing core.
type EnrollmentSnapshot struct {
	ID              int64              `json:"id"`
	CustomerID      int64              `json:"customer_id"`
	TripID          int64              `json:"trip_id"`
	PassengerName   string             `json:"passenger_name"`
	BaseFare        float64            `json:"base_fare"`
	Discount        float64            `json:"discount"`
	IsComplimentary bool               `json:"is_complimentary"`
	TourSelections  []TourSelection    `json:"tour_selections"`
	PaymentRecords  []PaymentRecord    `json:"payment_records"`
	Credit          *CreditApplication `json:"credit,omitempty"`
	// DueDate is the payment due-date proxy used by scoring. Today it is the
	// trip's event date; nil when the trip carries no date.
	DueDate *time.Time `json:"due_date,omitempty"`
}

// NetFare is base fare minus discount, floored at zero.
func (e EnrollmentSnapshot) NetFare() float64 {
	net := e.BaseFare - e.Discount
	if net < 0 {
		return 0
	}
	return net
}

// TourTotal sums the charged amounts of all selected add-ons.
func (e EnrollmentSnapshot) TourTotal() float64 {
	var total float64
	for _, t := range e.TourSelections {
		total += t.ChargedAmount
	}
	return total
}

// GrandTotal is what the passenger owes overall. Complimentary enrollments
// owe nothing no matter what fare or tours they carry.
func (e EnrollmentSnapshot) GrandTotal() float64 {
	if e.IsComplimentary {
		return 0
	}
	return e.NetFare() + e.TourTotal()
}
