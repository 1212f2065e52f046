// Package greedy implements spec §4.4: a priority-ordered single-pass
// constructor run K times with distinct, explicit pseudorandom seeds to
// produce multiple valid bundles quickly. The random source is always
// caller-seeded (never wall-clock seeded), so two runs with the same seed
// reproduce identical bundles.
package greedy

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/constraint"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/domain"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/scoring"
)

// errDietUnsatisfied is an internal-only sentinel (spec §7): greedy
// construction could not meet a diet requirement. It never crosses the
// package boundary; Solve catches it and simply stops accumulating runs.
var errDietUnsatisfied = fmt.Errorf("greedy: diet requirement unsatisfiable")

// Solver is the randomized greedy constructor.
type Solver struct {
	seed   int64
	logger *zap.Logger
}

// NewSolver builds a Solver with the given base seed. Run k derives its
// own seed deterministically from (seed, k), so requesting the same seed
// and topN twice always returns identical bundles.
func NewSolver(seed int64, logger *zap.Logger) *Solver {
	return &Solver{seed: seed, logger: logger}
}

// Solve runs up to topN constructor passes, stopping at the first run
// that cannot satisfy demand (spec §4.4: "the remaining constraint budget
// will not admit more solutions").
func (s *Solver) Solve(m constraint.Model, topN int) ([]domain.Solution, error) {
	var solutions []domain.Solution

	for k := 0; k < topN; k++ {
		start := time.Now()
		rng := rand.New(rand.NewSource(s.seed + int64(k)))

		sol, err := s.runOnce(m, rng)
		if err != nil {
			s.logger.Debug("greedy run stopped", zap.Int("run", k), zap.Error(err))
			break
		}
		sol.FindingTimeMs = time.Since(start).Milliseconds()
		sol.OptimalityScore = scoring.Greedy(sol, m.Request)
		solutions = append(solutions, sol)
	}

	domain.SortByScoreDescending(solutions)
	return solutions, nil
}

// sortKey is the composite ordering key from spec §4.4 step 1.
type sortKey struct {
	item       domain.Item
	ratingTier int
	popTier    int
	jitter     float64
}

func sortedPool(items []domain.Item, rng *rand.Rand) []sortKey {
	keys := make([]sortKey, len(items))
	for i, item := range items {
		ratingTier := 1
		if item.HighlyRated() {
			ratingTier = 0
		}
		popTier := 1
		if item.Popular() {
			popTier = 0
		}
		keys[i] = sortKey{item: item, ratingTier: ratingTier, popTier: popTier, jitter: rng.Float64()}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.item.Diet != b.item.Diet {
			return a.item.Diet < b.item.Diet
		}
		if a.ratingTier != b.ratingTier {
			return a.ratingTier < b.ratingTier
		}
		if a.popTier != b.popTier {
			return a.popTier < b.popTier
		}
		if a.item.PriceCents != b.item.PriceCents {
			return a.item.PriceCents < b.item.PriceCents
		}
		return a.jitter < b.jitter
	})
	return keys
}

// runState tracks the running totals a single constructor pass needs to
// evaluate eligibility.
type runState struct {
	assignment map[domain.Item]int
	served     int
	cost       int
	load       int
}

// eligible reports whether one more unit of item can be added without
// breaking stock, kitchen capacity, or the per-serving budget check
// (spec §4.4: cost after adding must stay within
// maxPricePerPerson * (servedSoFar + 1)).
func (st *runState) eligible(item domain.Item, req domain.BundleRequest, kitchenCap int) bool {
	if st.assignment[item] >= item.AvailableQty {
		return false
	}
	if st.load+item.PrepLoad > kitchenCap {
		return false
	}
	if st.cost+item.PriceCents > req.MaxPricePerPersonCents*(st.served+1) {
		return false
	}
	return true
}

func (st *runState) add(item domain.Item) {
	st.assignment[item]++
	st.served++
	st.cost += item.PriceCents
	st.load += item.PrepLoad
}

func (s *Solver) runOnce(m constraint.Model, rng *rand.Rand) (domain.Solution, error) {
	pool := sortedPool(m.Items, rng)
	st := &runState{assignment: make(map[domain.Item]int)}
	req := m.Request

	for _, diet := range domain.DietOrder {
		required := req.RequiredByDiet[diet]
		dietServed := 0
		for dietServed < required {
			added := false
			for _, key := range pool {
				if key.item.Diet != diet {
					continue
				}
				for dietServed < required && st.eligible(key.item, req, m.KitchenCap) {
					st.add(key.item)
					dietServed++
					added = true
				}
				if dietServed >= required {
					break
				}
			}
			if !added {
				break
			}
		}
		if dietServed < required {
			return domain.Solution{}, errDietUnsatisfied
		}
	}

	for st.served < req.People {
		added := false
		for _, key := range pool {
			if st.eligible(key.item, req, m.KitchenCap) {
				st.add(key.item)
				added = true
				break
			}
		}
		if !added {
			return domain.Solution{}, errDietUnsatisfied
		}
	}

	return buildSolution(m, st), nil
}

func buildSolution(m constraint.Model, st *runState) domain.Solution {
	popularCount := 0
	for item := range st.assignment {
		if item.Popular() {
			popularCount++
		}
	}

	sol := domain.Solution{
		Items:     st.assignment,
		TotalCost: st.cost,
	}
	if m.Request.People > 0 {
		sol.AveragePerPersonCents = st.cost / m.Request.People
	}
	if len(st.assignment) > 0 {
		sol.PopularItemsPercent = float64(popularCount) * 100 / float64(len(st.assignment))
	}
	if m.KitchenCap > 0 {
		sol.KitchenLoadPercent = float64(st.load) * 100 / float64(m.KitchenCap)
	}
	return sol
}
