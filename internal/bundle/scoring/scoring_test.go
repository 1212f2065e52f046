package scoring

import (
	"testing"

	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/constraint"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/domain"
)

func popularItem(id string) domain.Item {
	return domain.Item{ID: id, UpvoteCount: 95, DownvoteCount: 5, ReviewCount: 100}
}

func plainItem(id string) domain.Item {
	return domain.Item{ID: id, UpvoteCount: 5, DownvoteCount: 5}
}

func TestFullScoreIsZeroForEmptySolution(t *testing.T) {
	sol := domain.Solution{}
	req := domain.BundleRequest{People: 4, MaxPricePerPersonCents: 100}
	got := Full(sol, req, constraint.ParamsFor(domain.GroupSmall))
	if got != 0 {
		t.Fatalf("Full() = %d, want 0 for an empty solution", got)
	}
}

func TestFullScoreRewardsPopularAndWellDistributed(t *testing.T) {
	req := domain.BundleRequest{People: 4, MaxPricePerPersonCents: 100}
	params := constraint.ParamsFor(domain.GroupSmall)

	popularSol := domain.Solution{
		Items:              map[domain.Item]int{popularItem("a"): 2, popularItem("b"): 2},
		TotalCost:          400,
		KitchenLoadPercent: 100,
	}
	plainSol := domain.Solution{
		Items:              map[domain.Item]int{plainItem("a"): 2, plainItem("b"): 2},
		TotalCost:          400,
		KitchenLoadPercent: 100,
	}

	if got, want := Full(popularSol, req, params), Full(plainSol, req, params); got <= want {
		t.Fatalf("expected popular/highly-rated items to score higher: popular=%d plain=%d", got, want)
	}
}

func TestFullScoreCapsAt100(t *testing.T) {
	req := domain.BundleRequest{People: 10, MaxPricePerPersonCents: 100}
	params := constraint.ParamsFor(domain.GroupSmall)
	sol := domain.Solution{
		Items: map[domain.Item]int{
			popularItem("a"): 2, popularItem("b"): 2, popularItem("c"): 2,
			popularItem("d"): 2, popularItem("e"): 2,
		},
		TotalCost:          1000,
		KitchenLoadPercent: 100,
	}
	got := Full(sol, req, params)
	if got > 100 {
		t.Fatalf("Full() = %d, must never exceed 100", got)
	}
}

func TestGreedyScoreBaselineIs60ForMinimalSolution(t *testing.T) {
	req := domain.BundleRequest{People: 2, MaxPricePerPersonCents: 100}
	sol := domain.Solution{
		Items:     map[domain.Item]int{plainItem("a"): 1, plainItem("b"): 1},
		TotalCost: 0,
	}
	got := Greedy(sol, req)
	if got != 60 {
		t.Fatalf("Greedy() = %d, want 60 when no bonus applies", got)
	}
}

func TestGreedyScoreAddsBonusForPopularAndBudgetUse(t *testing.T) {
	req := domain.BundleRequest{People: 2, MaxPricePerPersonCents: 100}
	sol := domain.Solution{
		Items:              map[domain.Item]int{popularItem("a"): 1, popularItem("b"): 1},
		TotalCost:          200,
		KitchenLoadPercent: 50,
	}
	got := Greedy(sol, req)
	if got <= 60 {
		t.Fatalf("Greedy() = %d, want > 60 with budget/popularity/rating/kitchen bonuses", got)
	}
}
