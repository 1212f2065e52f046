//go:build cgo && golp
// +build cgo,golp

// These tests exercise the real golp/lp_solve-backed model; they require
// building with -tags golp against an installed lp_solve library, same as
// the production solver path.
package cp

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/constraint"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/domain"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/solver/greedy"
)

func TestBuildModelProducesExpectedVariableLayout(t *testing.T) {
	m := sampleModel()
	built, err := buildModel(m, nil, 30)
	if err != nil {
		t.Fatalf("buildModel() error = %v", err)
	}
	defer built.solver.Close()

	if len(built.xIdx) != 3 {
		t.Fatalf("xIdx len = %d, want 3", len(built.xIdx))
	}
	if len(built.yIdx) != 3 {
		t.Fatalf("yIdx len = %d, want 3", len(built.yIdx))
	}
}

func TestSolverFindsFeasibleSolution(t *testing.T) {
	m := sampleModel()
	s := NewSolver(30, 500, zap.NewNop())

	solutions, err := s.Solve(context.Background(), m, 1)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if len(solutions) != 1 {
		t.Fatalf("expected exactly 1 solution, got %d", len(solutions))
	}
	if err := constraint.Validate(m, solutions[0].Items); err != nil {
		t.Fatalf("CP solution is invalid: %v", err)
	}
}

func TestSolverBalancedDistribution(t *testing.T) {
	items := []domain.Item{
		{ID: "a", PriceCents: 1000, Diet: domain.DietMeat, AvailableQty: 100, PrepLoad: 1},
		{ID: "b", PriceCents: 1000, Diet: domain.DietMeat, AvailableQty: 100, PrepLoad: 1},
		{ID: "c", PriceCents: 1000, Diet: domain.DietMeat, AvailableQty: 100, PrepLoad: 1},
	}
	req := domain.BundleRequest{
		People:                 4,
		MaxPricePerPersonCents: 2000,
		RequiredByDiet:         map[domain.Diet]int{domain.DietMeat: 4},
		TopN:                   1,
	}
	m := constraint.Model{Items: items, Request: req, KitchenCap: 100}
	s := NewSolver(30, 500, zap.NewNop())

	solutions, err := s.Solve(context.Background(), m, 1)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if len(solutions) != 1 {
		t.Fatalf("expected exactly 1 solution, got %d", len(solutions))
	}

	minQty, maxQty := -1, -1
	for _, qty := range solutions[0].Items {
		if minQty == -1 || qty < minQty {
			minQty = qty
		}
		if qty > maxQty {
			maxQty = qty
		}
	}
	if float64(maxQty-minQty) > 0.15*4+1 {
		t.Fatalf("qty range = %d, want <= %v", maxQty-minQty, 0.15*4+1)
	}
}

func TestSolverGreedyApproximationBound(t *testing.T) {
	items := []domain.Item{
		{ID: "a", PriceCents: 1000, Diet: domain.DietMeat, AvailableQty: 100, PrepLoad: 1},
		{ID: "b", PriceCents: 1100, Diet: domain.DietMeat, AvailableQty: 100, PrepLoad: 1},
		{ID: "c", PriceCents: 1200, Diet: domain.DietMeat, AvailableQty: 100, PrepLoad: 1},
	}
	req := domain.BundleRequest{
		People:                 3,
		MaxPricePerPersonCents: 2000,
		RequiredByDiet:         map[domain.Diet]int{domain.DietMeat: 3},
		TopN:                   1,
	}
	m := constraint.Model{Items: items, Request: req, KitchenCap: 100}

	cpSolutions, err := NewSolver(30, 500, zap.NewNop()).Solve(context.Background(), m, 1)
	if err != nil {
		t.Fatalf("CP Solve() error = %v", err)
	}
	if len(cpSolutions) != 1 {
		t.Fatalf("expected exactly 1 CP solution, got %d", len(cpSolutions))
	}

	greedySolutions, err := greedy.NewSolver(42, zap.NewNop()).Solve(m, 1)
	if err != nil {
		t.Fatalf("greedy Solve() error = %v", err)
	}
	if len(greedySolutions) != 1 {
		t.Fatalf("expected exactly 1 greedy solution, got %d", len(greedySolutions))
	}

	cpCost := cpSolutions[0].TotalCost
	greedyCost := greedySolutions[0].TotalCost
	if cpCost > greedyCost {
		t.Fatalf("CP cost %d exceeds greedy cost %d", cpCost, greedyCost)
	}
	if float64(greedyCost) > 1.2*float64(cpCost)+100 {
		t.Fatalf("greedy cost %d exceeds 1.2x CP cost %d + 100", greedyCost, cpCost)
	}
}

func TestSolverMultiSolutionDiversity(t *testing.T) {
	items := []domain.Item{
		{ID: "m1", PriceCents: 600, Diet: domain.DietMeat, AvailableQty: 30, PrepLoad: 1},
		{ID: "m2", PriceCents: 800, Diet: domain.DietMeat, AvailableQty: 30, PrepLoad: 1},
		{ID: "m3", PriceCents: 1000, Diet: domain.DietMeat, AvailableQty: 30, PrepLoad: 1},
		{ID: "m4", PriceCents: 1200, Diet: domain.DietMeat, AvailableQty: 30, PrepLoad: 1},
		{ID: "v1", PriceCents: 700, Diet: domain.DietVegetarian, AvailableQty: 30, PrepLoad: 1},
		{ID: "v2", PriceCents: 900, Diet: domain.DietVegetarian, AvailableQty: 30, PrepLoad: 1},
	}
	req := domain.BundleRequest{
		People:                 20,
		MaxPricePerPersonCents: 1500,
		RequiredByDiet: map[domain.Diet]int{
			domain.DietMeat:       15,
			domain.DietVegetarian: 5,
		},
		TopN: 3,
	}
	m := constraint.Model{Items: items, Request: req, KitchenCap: 30}
	s := NewSolver(30, 500, zap.NewNop())

	solutions, err := s.Solve(context.Background(), m, 3)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if len(solutions) == 0 {
		t.Fatal("expected at least one solution")
	}

	first := solutions[0]
	if first.DistinctItems() < 4 {
		t.Fatalf("first solution uses %d distinct items, want >= 4", first.DistinctItems())
	}
	total := first.TotalServings()
	minQty, maxQty := -1, -1
	for _, qty := range first.Items {
		if float64(qty) > 0.25*float64(total) {
			t.Fatalf("item quantity %d exceeds 25%% of total %d", qty, total)
		}
		if minQty == -1 || qty < minQty {
			minQty = qty
		}
		if qty > maxQty {
			maxQty = qty
		}
	}
	if float64(maxQty-minQty) > 0.15*float64(total) {
		t.Fatalf("qty range %d exceeds 15%% of total %d", maxQty-minQty, total)
	}
}

func TestSolverDiversityCutAcrossIterations(t *testing.T) {
	m := sampleModel()
	m.Request.TopN = 2
	s := NewSolver(30, 500, zap.NewNop())

	solutions, err := s.Solve(context.Background(), m, 2)
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if len(solutions) < 2 {
		t.Skip("menu too small to admit a second diverse solution")
	}

	diffCount := 0
	for _, item := range m.Items {
		if solutions[0].Items[item] != solutions[1].Items[item] {
			diffCount++
		}
	}
	if diffCount == 0 {
		t.Fatal("expected the second CP solution to differ from the first")
	}
}
