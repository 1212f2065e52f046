package domain

import "sort"

// Solution is a proposed bundle: a multiset of items with their assigned
// quantities, plus the metrics computed from it. Solutions are produced,
// scored, and returned; nothing about them persists between calls.
type Solution struct {
	Items                 map[Item]int // Item -> quantity, quantity always > 0
	TotalCost             int
	AveragePerPersonCents int
	PopularItemsPercent   float64
	KitchenLoadPercent    float64
	OptimalityScore       int
	FindingTimeMs         int64
}

// TotalServings is T in spec §4.1/§4.2: the sum of all assigned quantities.
func (s Solution) TotalServings() int {
	total := 0
	for _, qty := range s.Items {
		total += qty
	}
	return total
}

// DistinctItems is the count of items with quantity >= 1, i.e. |{i: y[i]=1}|.
func (s Solution) DistinctItems() int {
	return len(s.Items)
}

// QuantityRange is max(x[i]/T) - min(x[i]/T) over selected items, used by
// the distribution-fairness scoring component. Returns 0 for a solution
// with fewer than 2 distinct items or zero servings.
func (s Solution) QuantityRange() float64 {
	total := s.TotalServings()
	if total == 0 || len(s.Items) < 2 {
		return 0
	}
	minFrac, maxFrac := 1.0, 0.0
	for _, qty := range s.Items {
		frac := float64(qty) / float64(total)
		if frac < minFrac {
			minFrac = frac
		}
		if frac > maxFrac {
			maxFrac = frac
		}
	}
	return maxFrac - minFrac
}

// SortByScoreDescending sorts solutions by OptimalityScore, highest first,
// as required by spec §3 "Ordering" and the "Sorted" testable property.
func SortByScoreDescending(solutions []Solution) {
	sort.SliceStable(solutions, func(i, j int) bool {
		return solutions[i].OptimalityScore > solutions[j].OptimalityScore
	})
}
