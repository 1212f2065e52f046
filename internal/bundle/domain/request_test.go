package domain

import "testing"

func TestBundleRequestBudget(t *testing.T) {
	req := BundleRequest{People: 6, MaxPricePerPersonCents: 800}
	if got := req.Budget(); got != 4800 {
		t.Fatalf("Budget() = %d, want 4800", got)
	}
}

func TestGroupSizeBoundary(t *testing.T) {
	small := BundleRequest{People: 5}
	if small.GroupSize() != GroupSmall {
		t.Fatal("expected 5 people to be GroupSmall")
	}

	large := BundleRequest{People: 6}
	if large.GroupSize() != GroupLarge {
		t.Fatal("expected 6 people to be GroupLarge")
	}
}
