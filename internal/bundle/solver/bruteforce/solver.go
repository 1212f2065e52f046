// Package bruteforce implements spec §4.5: exhaustive recursive
// backtracking over per-item quantities, pruned by running cost and load,
// with every leaf checked against the shared constraint validator.
package bruteforce

import (
	"sort"

	"go.uber.org/zap"

	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/constraint"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/domain"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/scoring"
)

// maxItemsPerType caps the per-item quantity search space so the tree stays
// finite even when stock is effectively unbounded.
const maxItemsPerType = 20

// Solver is the exhaustive backtracking bundle solver. It is only
// practical for small menus and small groups; the orchestrator runs it
// only when the caller asks for the brute-force solver kind.
type Solver struct {
	logger *zap.Logger
}

// NewSolver builds a Solver.
func NewSolver(logger *zap.Logger) *Solver {
	return &Solver{logger: logger}
}

type searchState struct {
	model      constraint.Model
	items      []domain.Item
	topN       int
	assignment map[domain.Item]int
	solutions  []domain.Solution
}

// Solve explores every quantity combination up to topN valid solutions,
// in the fixed item order of spec §4.5: items whose diet is required
// first, then popular items, then by descending rating, with item ID as a
// final deterministic tiebreak.
func (s *Solver) Solve(m constraint.Model, topN int) ([]domain.Solution, error) {
	items := sortedItems(m)

	st := &searchState{
		model:      m,
		items:      items,
		topN:       topN,
		assignment: make(map[domain.Item]int),
	}
	st.search(0, 0, 0)

	s.logger.Debug("bruteforce search complete", zap.Int("found", len(st.solutions)))

	domain.SortByScoreDescending(st.solutions)
	return st.solutions, nil
}

func sortedItems(m constraint.Model) []domain.Item {
	items := make([]domain.Item, len(m.Items))
	copy(items, m.Items)
	required := m.Request.RequiredByDiet

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		aReq, bReq := required[a.Diet] > 0, required[b.Diet] > 0
		if aReq != bReq {
			return aReq
		}
		aPop, bPop := a.Popular(), b.Popular()
		if aPop != bPop {
			return aPop
		}
		if a.Rating() != b.Rating() {
			return a.Rating() > b.Rating()
		}
		return a.ID < b.ID
	})
	return items
}

// search walks item index idx, trying every quantity from 0 up to the
// item's cap, pruning as soon as a quantity makes the running cost or
// kitchen load infeasible (both are monotone non-decreasing in quantity,
// so every larger quantity is infeasible too).
func (st *searchState) search(idx, runningCost, runningLoad int) {
	if len(st.solutions) >= st.topN {
		return
	}
	if idx == len(st.items) {
		st.tryLeaf()
		return
	}

	item := st.items[idx]
	maxQty := item.AvailableQty
	if maxQty > maxItemsPerType {
		maxQty = maxItemsPerType
	}

	budget := st.model.Request.Budget()
	for qty := 0; qty <= maxQty; qty++ {
		cost := runningCost + item.PriceCents*qty
		load := runningLoad + item.PrepLoad*qty
		if cost > budget || load > st.model.KitchenCap {
			break
		}
		if qty > 0 {
			st.assignment[item] = qty
		}
		st.search(idx+1, cost, load)
		if qty > 0 {
			delete(st.assignment, item)
		}
		if len(st.solutions) >= st.topN {
			return
		}
	}
}

// tryLeaf validates the current full assignment. Brute force always
// checks portion bounds against the small-group constants regardless of
// the request's actual group size (spec §9's documented quirk); it is
// preserved rather than fixed.
func (st *searchState) tryLeaf() {
	quirkParams := constraint.ParamsFor(domain.GroupSmall)
	if err := constraint.ValidateWithParams(st.model, st.assignment, quirkParams); err != nil {
		return
	}

	assignment := make(map[domain.Item]int, len(st.assignment))
	totalCost, totalLoad, popularCount := 0, 0, 0
	for item, qty := range st.assignment {
		assignment[item] = qty
		totalCost += item.PriceCents * qty
		totalLoad += item.PrepLoad * qty
		if item.Popular() {
			popularCount++
		}
	}

	sol := domain.Solution{
		Items:     assignment,
		TotalCost: totalCost,
	}
	if st.model.Request.People > 0 {
		sol.AveragePerPersonCents = totalCost / st.model.Request.People
	}
	if len(assignment) > 0 {
		sol.PopularItemsPercent = float64(popularCount) * 100 / float64(len(assignment))
	}
	if st.model.KitchenCap > 0 {
		sol.KitchenLoadPercent = float64(totalLoad) * 100 / float64(st.model.KitchenCap)
	}
	sol.OptimalityScore = scoring.Full(sol, st.model.Request, st.model.Params())

	st.solutions = append(st.solutions, sol)
}
