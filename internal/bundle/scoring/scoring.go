// Package scoring implements the composite 0-100 optimality score shared
// by all three solvers (spec §4.2), plus the greedy solver's distinct
// base-60-plus-bonus variant. The two scales are deliberately not unified
// (spec §9): callers must know the solver kind when asserting score bands.
package scoring

import (
	"math"

	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/constraint"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/domain"
)

// Weights for the six §4.2 components of the full 0-100 score.
const (
	weightCostEfficiency = 25.0
	weightPopularItems   = 20.0
	weightHighlyRated    = 20.0
	weightKitchenEff     = 15.0
	weightDistribution   = 10.0
	weightDiversity      = 10.0
)

// Full computes the CP/brute-force 0-100 composite score for a valid
// solution. params supplies the max-portion constant used by the
// distribution-fairness component; callers choose which params to pass
// (see the brute-force solver's deliberate quirk, spec §9).
func Full(sol domain.Solution, req domain.BundleRequest, params constraint.Params) int {
	distinct := sol.DistinctItems()
	if distinct == 0 {
		return 0
	}

	score := costEfficiency(sol.TotalCost, req.Budget()) +
		popularItems(sol, distinct) +
		highlyRated(sol, distinct) +
		kitchenEfficiency(sol.KitchenLoadPercent) +
		distributionFairness(sol, distinct, params) +
		diversity(distinct, req.People)

	return int(math.Round(score))
}

// costEfficiency rewards spending closer to the full budget, not spending
// less (spec §4.2 and the flagged §9 open question: this is preserved
// exactly as specified, not "fixed" to reward savings).
func costEfficiency(totalCost, budget int) float64 {
	if totalCost <= 0 || totalCost > budget || budget <= 0 {
		return 0
	}
	return (float64(totalCost) / float64(budget)) * weightCostEfficiency
}

func popularItems(sol domain.Solution, distinct int) float64 {
	count := 0
	for item := range sol.Items {
		if item.Popular() {
			count++
		}
	}
	return (float64(count) / float64(distinct)) * weightPopularItems
}

func highlyRated(sol domain.Solution, distinct int) float64 {
	count := 0
	for item := range sol.Items {
		if item.HighlyRated() {
			count++
		}
	}
	return (float64(count) / float64(distinct)) * weightHighlyRated
}

func kitchenEfficiency(loadPercent float64) float64 {
	if loadPercent <= 0 || loadPercent > 100 {
		return 0
	}
	return (loadPercent / 100) * weightKitchenEff
}

func distributionFairness(sol domain.Solution, distinct int, params constraint.Params) float64 {
	if distinct < domain.MinDifferentItems {
		return 0
	}
	qtyRange := sol.QuantityRange()
	if qtyRange > params.MaxPortionPct {
		return 0
	}
	return weightDistribution * (1 - qtyRange/params.MaxPortionPct)
}

func diversity(distinct, people int) float64 {
	if distinct < domain.MinDifferentItems {
		return 0
	}
	denom := float64(people) / 5
	if denom < domain.MinDifferentItems {
		denom = domain.MinDifferentItems
	}
	ratio := float64(distinct) / denom
	if ratio > 1 {
		ratio = 1
	}
	return weightDiversity * ratio
}

// Greedy bonus weights (spec §4.2): a base of 60 plus up to 20 efficiency
// points split budget/popular/highly-rated/kitchen.
const (
	greedyBase          = 60.0
	greedyBudgetWeight  = 6.0
	greedyPopularWeight = 5.0
	greedyRatedWeight   = 5.0
	greedyKitchenWeight = 4.0
)

// Greedy computes the greedy solver's base-60-plus-bonus score.
func Greedy(sol domain.Solution, req domain.BundleRequest) int {
	distinct := sol.DistinctItems()
	if distinct == 0 {
		return 0
	}

	budget := req.Budget()
	budgetBonus := 0.0
	if budget > 0 && sol.TotalCost > 0 && sol.TotalCost <= budget {
		budgetBonus = (float64(sol.TotalCost) / float64(budget)) * greedyBudgetWeight
	}

	popularCount, ratedCount := 0, 0
	for item := range sol.Items {
		if item.Popular() {
			popularCount++
		}
		if item.HighlyRated() {
			ratedCount++
		}
	}
	popularBonus := (float64(popularCount) / float64(distinct)) * greedyPopularWeight
	ratedBonus := (float64(ratedCount) / float64(distinct)) * greedyRatedWeight

	kitchenBonus := 0.0
	if sol.KitchenLoadPercent > 0 && sol.KitchenLoadPercent <= 100 {
		kitchenBonus = (sol.KitchenLoadPercent / 100) * greedyKitchenWeight
	}

	return int(math.Round(greedyBase + budgetBonus + popularBonus + ratedBonus + kitchenBonus))
}
