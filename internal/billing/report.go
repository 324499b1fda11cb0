package billing

// PassengerBreakdown is one roster row: the passenger's totals plus the
// classified status, ready for aggregation.
type PassengerBreakdown struct {
	EnrollmentID  int64             `json:"enrollment_id"`
	PassengerName string            `json:"passenger_name"`
	GrandTotal    float64           `json:"grand_total"`
	Breakdown     CategoryBreakdown `json:"breakdown"`
	Status        StatusTag         `json:"status"`
	StatusDetail  string            `json:"status_detail"`
}

// TripSummary rolls a trip's passenger list up into revenue and collection
// figures for aggregate screens.
type TripSummary struct {
	PassengerCount int     `json:"passenger_count"`
	SettledCount   int     `json:"settled_count"`
	PendingCount   int     `json:"pending_count"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalPaid      float64 `json:"total_paid"`
	TotalPending   float64 `json:"total_pending"`
	CollectionRate float64 `json:"collection_rate"`
}

// SummarizeTrip aggregates per-passenger breakdowns. CollectionRate is the
// share of passengers with nothing left to collect (settled or courtesy).
func SummarizeTrip(rows []PassengerBreakdown) TripSummary {
	var s TripSummary
	s.PassengerCount = len(rows)

	for _, r := range rows {
		s.TotalRevenue += r.GrandTotal
		s.TotalPaid += r.Breakdown.TotalPaid
		s.TotalPending += r.Breakdown.PendingTotal
		if IsSettled(r.Status) {
			s.SettledCount++
		} else {
			s.PendingCount++
		}
	}

	if s.PassengerCount > 0 {
		s.CollectionRate = float64(s.SettledCount) / float64(s.PassengerCount)
	}
	return s
}
