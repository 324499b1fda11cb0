package billing

import "testing"

func TestSummarizeTripEmptyRoster(t *testing.T) {
	s := SummarizeTrip(nil)
	if s.PassengerCount != 0 || s.CollectionRate != 0 {
		t.Fatalf("empty roster should produce zero summary: %+v", s)
	}
}

func TestSummarizeTripCountsAndRate(t *testing.T) {
	rows := []PassengerBreakdown{
		{
			GrandTotal: 300,
			Breakdown:  CategoryBreakdown{TotalPaid: 300},
			Status:     StatusFullyPaid,
		},
		{
			GrandTotal: 150,
			Breakdown:  CategoryBreakdown{},
			Status:     StatusComplimentary,
		},
		{
			GrandTotal: 400,
			Breakdown:  CategoryBreakdown{TotalPaid: 100, PendingTotal: 300},
			Status:     StatusPartiallyPaid,
		},
		{
			GrandTotal: 200,
			Breakdown:  CategoryBreakdown{PendingTotal: 200},
			Status:     StatusPending,
		},
	}

	s := SummarizeTrip(rows)
	if s.PassengerCount != 4 {
		t.Fatalf("passenger count: got %d want 4", s.PassengerCount)
	}
	if s.SettledCount != 2 || s.PendingCount != 2 {
		t.Fatalf("settled/pending: got %d/%d want 2/2", s.SettledCount, s.PendingCount)
	}
	if s.TotalRevenue != 1050 {
		t.Fatalf("revenue: got %v want 1050", s.TotalRevenue)
	}
	if s.TotalPaid != 400 {
		t.Fatalf("paid: got %v want 400", s.TotalPaid)
	}
	if s.TotalPending != 500 {
		t.Fatalf("pending: got %v want 500", s.TotalPending)
	}
	if s.CollectionRate != 0.5 {
		t.Fatalf("collection rate: got %v want 0.5", s.CollectionRate)
	}
}
