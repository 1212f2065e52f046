package greedy

import (
	"testing"

	"go.uber.org/zap"

	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/constraint"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/domain"
)

func sampleModel() constraint.Model {
	items := []domain.Item{
		{ID: "vegan-a", PriceCents: 100, Diet: domain.DietVegan, AvailableQty: 10, PrepLoad: 1, UpvoteCount: 90, DownvoteCount: 10, ReviewCount: 100},
		{ID: "vegan-b", PriceCents: 120, Diet: domain.DietVegan, AvailableQty: 10, PrepLoad: 1, UpvoteCount: 40, DownvoteCount: 10, ReviewCount: 50},
		{ID: "veg-a", PriceCents: 150, Diet: domain.DietVegetarian, AvailableQty: 10, PrepLoad: 1, UpvoteCount: 90, DownvoteCount: 10, ReviewCount: 100},
		{ID: "meat-a", PriceCents: 200, Diet: domain.DietMeat, AvailableQty: 10, PrepLoad: 1, UpvoteCount: 90, DownvoteCount: 10, ReviewCount: 100},
	}
	req := domain.BundleRequest{
		People:                 6,
		MaxPricePerPersonCents: 500,
		RequiredByDiet: map[domain.Diet]int{
			domain.DietVegan:      2,
			domain.DietVegetarian: 1,
		},
		TopN: 3,
	}
	return constraint.Model{Items: items, Request: req, KitchenCap: 20}
}

// assertCoreProperties checks the universal properties greedy actually
// guarantees via its eligibility checks (demand, per-diet demand, budget,
// kitchen, stock). Portion bounds and pairwise distribution are a
// CP/brute-force-only property (spec §8 property 8) that greedy's
// single-pass construction never consults.
func assertCoreProperties(t *testing.T, m constraint.Model, sol domain.Solution) {
	t.Helper()
	req := m.Request

	if sol.TotalServings() < req.People {
		t.Fatalf("demand violated: %d servings < %d people", sol.TotalServings(), req.People)
	}

	byDiet := make(map[domain.Diet]int)
	for item, qty := range sol.Items {
		byDiet[item.Diet] += qty
		if qty > item.AvailableQty {
			t.Fatalf("stock violated for %q: qty %d > stock %d", item.ID, qty, item.AvailableQty)
		}
	}
	for diet, required := range req.RequiredByDiet {
		if byDiet[diet] < required {
			t.Fatalf("per-diet demand violated for %s: %d < %d", diet, byDiet[diet], required)
		}
	}

	if sol.TotalCost > req.Budget() {
		t.Fatalf("budget violated: cost %d > budget %d", sol.TotalCost, req.Budget())
	}
	if sol.KitchenLoadPercent > 100 {
		t.Fatalf("kitchen cap violated: load %.1f%%", sol.KitchenLoadPercent)
	}
}

func TestSolveProducesValidBundles(t *testing.T) {
	logger := zap.NewNop()
	s := NewSolver(1, logger)
	m := sampleModel()

	solutions, err := s.Solve(m, 3)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if len(solutions) == 0 {
		t.Fatal("expected at least one solution from a feasible model")
	}

	for _, sol := range solutions {
		assertCoreProperties(t, m, sol)
	}
}

func TestSolveIsDeterministicForAFixedSeed(t *testing.T) {
	logger := zap.NewNop()
	m := sampleModel()

	s1 := NewSolver(7, logger)
	s2 := NewSolver(7, logger)

	sol1, err := s1.Solve(m, 2)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	sol2, err := s2.Solve(m, 2)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	if len(sol1) != len(sol2) {
		t.Fatalf("solution counts differ across identical seeds: %d vs %d", len(sol1), len(sol2))
	}
	for i := range sol1 {
		if sol1[i].TotalCost != sol2[i].TotalCost {
			t.Fatalf("run %d: total cost differs across identical seeds: %d vs %d", i, sol1[i].TotalCost, sol2[i].TotalCost)
		}
	}
}

func TestSolveStopsWhenDietUnsatisfiable(t *testing.T) {
	logger := zap.NewNop()
	m := sampleModel()
	m.Request.RequiredByDiet[domain.DietMeat] = 100 // far beyond available stock

	solutions, err := NewSolver(1, logger).Solve(m, 3)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if len(solutions) != 0 {
		t.Fatalf("expected no solutions when a diet requirement is unsatisfiable, got %d", len(solutions))
	}
}
