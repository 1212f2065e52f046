package cp

import (
	"fmt"

	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/constraint"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/domain"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/solver/lp"
)

// bigM is the big-M constant used throughout the model's conditional
// (implication) constraints. It must dominate any real quantity, cost or
// load difference the model can produce; menu sizes and stock levels in
// this domain are small enough that 1e7 is always a safe over-estimate.
const bigM = 1e7

// objectiveBig is BIG from spec §4.3: it dwarfs the per-item bonus terms
// so the objective always prefers lower cost first, using bonuses only to
// break ties among equal-cost assignments.
const objectiveBig = 1000

// pairKey identifies an unordered pair of item indices.
type pairKey struct{ i, j int }

// buildResult is the fully-wired LP model plus the variable index layout
// a solve iteration needs to read back x[i] and to add the next diversity
// cut.
type buildResult struct {
	solver  lp.LPSolver
	xIdx    []int       // x[i] variable index, len(items)
	yIdx    []int       // y[i] variable index, len(items)
	pairs   []pairKey   // allowed pairs after the O(N^2) pruning (spec §9)
	zIdx    map[pairKey]int
	numVars int
}

// buildModel constructs a fresh LP/MILP model for one solve iteration,
// including a diversity cut against every solution already accumulated in
// priorSolutions (indexed identically to items, 0 meaning "absent").
func buildModel(m constraint.Model, priorSolutions [][]int, minSolutionDiversityPercent int) (*buildResult, error) {
	items := m.Items
	n := len(items)
	params := m.Params()
	pairBound := constraint.CPPairwiseBound(params, m.Request.People)

	pairs := allowedPairs(items, params)

	numDiffPerPrior := n * 2 // diff[i,s] + dir[i,s]
	totalVars := 2*n + len(pairs) + numDiffPerPrior*len(priorSolutions)

	solver, err := lp.CreateGolpSolver(totalVars)
	if err != nil {
		return nil, fmt.Errorf("cp: create solver: %w", err)
	}

	xIdx := make([]int, n)
	yIdx := make([]int, n)
	for i := range items {
		xIdx[i] = i
		yIdx[i] = n + i
	}
	zIdx := make(map[pairKey]int, len(pairs))
	for k, pk := range pairs {
		zIdx[pk] = 2*n + k
	}
	diffBase := 2*n + len(pairs)

	res := &buildResult{solver: solver, xIdx: xIdx, yIdx: yIdx, pairs: pairs, zIdx: zIdx, numVars: totalVars}

	if err := setBoundsAndTypes(solver, items, xIdx, yIdx, zIdx, diffBase, n, len(priorSolutions)); err != nil {
		return nil, err
	}
	if err := setObjective(solver, items, xIdx, totalVars); err != nil {
		return nil, err
	}
	if err := addLinking(solver, items, xIdx, yIdx, totalVars); err != nil {
		return nil, err
	}
	if err := addDemandBudgetKitchen(solver, m, items, xIdx, totalVars); err != nil {
		return nil, err
	}
	if err := addVariety(solver, yIdx, m.Request.People, totalVars); err != nil {
		return nil, err
	}
	if err := addPortionBounds(solver, xIdx, yIdx, params, totalVars); err != nil {
		return nil, err
	}
	if err := addPairwise(solver, xIdx, yIdx, zIdx, pairs, pairBound, totalVars); err != nil {
		return nil, err
	}
	if err := addDiversityCuts(solver, xIdx, priorSolutions, diffBase, n, totalVars, minSolutionDiversityPercent); err != nil {
		return nil, err
	}

	return res, nil
}

// allowedPairs returns every unordered pair of items, skipping pairs whose
// combined minimum portion already exceeds 100% of demand (spec §9's
// permitted optimization for menus beyond ~50 items: such a pair can never
// both be selected at their minimum portion, so the pairwise constraint
// between them is vacuous).
func allowedPairs(items []domain.Item, params constraint.Params) []pairKey {
	var pairs []pairKey
	if 2*params.MinPortionPct > 1.0 {
		return pairs // both items could never coexist at minimum portion; nothing to pair.
	}
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			pairs = append(pairs, pairKey{i, j})
		}
	}
	return pairs
}

func setBoundsAndTypes(solver lp.LPSolver, items []domain.Item, xIdx, yIdx []int, zIdx map[pairKey]int, diffBase, n, numPriors int) error {
	for i, item := range items {
		if err := solver.SetBounds(xIdx[i], 0, float64(item.AvailableQty)); err != nil {
			return fmt.Errorf("cp: bound x[%d]: %w", i, err)
		}
		if err := solver.SetInt(xIdx[i]); err != nil {
			return fmt.Errorf("cp: int x[%d]: %w", i, err)
		}
		if err := solver.SetBinary(yIdx[i]); err != nil {
			return fmt.Errorf("cp: binary y[%d]: %w", i, err)
		}
	}
	for _, zi := range zIdx {
		if err := solver.SetBinary(zi); err != nil {
			return fmt.Errorf("cp: binary z: %w", err)
		}
	}
	for s := 0; s < numPriors; s++ {
		for i := 0; i < n; i++ {
			diffIdx := diffBase + s*n*2 + i
			dirIdx := diffBase + s*n*2 + n + i
			if err := solver.SetBinary(diffIdx); err != nil {
				return fmt.Errorf("cp: binary diff: %w", err)
			}
			if err := solver.SetBinary(dirIdx); err != nil {
				return fmt.Errorf("cp: binary dir: %w", err)
			}
		}
	}
	return nil
}

// setObjective builds spec §4.3's objective: minimize
// sum((price[i]*BIG - bonus[i]) * x[i]).
func setObjective(solver lp.LPSolver, items []domain.Item, xIdx []int, totalVars int) error {
	coeffs := make([]float64, totalVars)
	for i, item := range items {
		bonus := itemBonus(item)
		coeffs[xIdx[i]] = float64(item.PriceCents)*objectiveBig - bonus
	}
	return solver.SetObjective(coeffs, false)
}

// itemBonus is spec §4.3's bonus[i] = popularity_bonus + rating_bonus +
// diversity_bonus.
func itemBonus(item domain.Item) float64 {
	bonus := 1.0 // diversity_bonus is always 1
	if item.Popular() {
		bonus += 1
	}
	switch {
	case item.HighlyRated():
		bonus += 2
	case item.GoodRating():
		bonus += 1
	}
	return bonus
}

// addLinking wires the two-way (x[i] >= 1) <=> (y[i] = 1) implication
// (spec §4.3/§9): y[i] => x[i] >= 1 as x[i] - y[i] >= 0, and
// !y[i] => x[i] = 0 as x[i] - avail[i]*y[i] <= 0.
func addLinking(solver lp.LPSolver, items []domain.Item, xIdx, yIdx []int, totalVars int) error {
	for i, item := range items {
		lower := make([]float64, totalVars)
		lower[xIdx[i]] = 1
		lower[yIdx[i]] = -1
		if err := solver.AddConstraint(lower, ">=", 0); err != nil {
			return fmt.Errorf("cp: link lower %d: %w", i, err)
		}

		upper := make([]float64, totalVars)
		upper[xIdx[i]] = 1
		upper[yIdx[i]] = -float64(item.AvailableQty)
		if err := solver.AddConstraint(upper, "<=", 0); err != nil {
			return fmt.Errorf("cp: link upper %d: %w", i, err)
		}
	}
	return nil
}

func addDemandBudgetKitchen(solver lp.LPSolver, m constraint.Model, items []domain.Item, xIdx []int, totalVars int) error {
	demand := make([]float64, totalVars)
	budget := make([]float64, totalVars)
	kitchen := make([]float64, totalVars)
	for i, item := range items {
		demand[xIdx[i]] = 1
		budget[xIdx[i]] = float64(item.PriceCents)
		kitchen[xIdx[i]] = float64(item.PrepLoad)
	}
	if err := solver.AddConstraint(demand, ">=", float64(m.Request.People)); err != nil {
		return fmt.Errorf("cp: demand: %w", err)
	}
	if err := solver.AddConstraint(budget, "<=", float64(m.Request.Budget())); err != nil {
		return fmt.Errorf("cp: budget: %w", err)
	}
	if err := solver.AddConstraint(kitchen, "<=", float64(m.KitchenCap)); err != nil {
		return fmt.Errorf("cp: kitchen: %w", err)
	}

	for diet, required := range m.Request.RequiredByDiet {
		if required <= 0 {
			continue
		}
		row := make([]float64, totalVars)
		for i, item := range items {
			if item.Diet == diet {
				row[xIdx[i]] = 1
			}
		}
		if err := solver.AddConstraint(row, ">=", float64(required)); err != nil {
			return fmt.Errorf("cp: per-diet demand %s: %w", diet, err)
		}
	}
	return nil
}

func addVariety(solver lp.LPSolver, yIdx []int, people, totalVars int) error {
	min := domain.MinDifferentItems
	if people < min {
		min = people
	}
	row := make([]float64, totalVars)
	for _, yi := range yIdx {
		row[yi] = 1
	}
	if err := solver.AddConstraint(row, ">=", float64(min)); err != nil {
		return fmt.Errorf("cp: variety: %w", err)
	}
	return nil
}

// addPortionBounds wires spec §4.3's portion bounds in linear form: the
// upper bound applies unconditionally; the lower bound is big-M relaxed
// when y[i] = 0, so it only binds selected items.
func addPortionBounds(solver lp.LPSolver, xIdx, yIdx []int, params constraint.Params, totalVars int) error {
	n := len(xIdx)
	minPct100 := float64(int(params.MinPortionPct * 100))
	maxPct100 := float64(int(params.MaxPortionPct * 100))

	for i := 0; i < n; i++ {
		// Upper: 100*x[i] - maxPct100*sum(x) <= 0.
		upper := make([]float64, totalVars)
		upper[xIdx[i]] += 100
		for j := 0; j < n; j++ {
			upper[xIdx[j]] -= maxPct100
		}
		if err := solver.AddConstraint(upper, "<=", 0); err != nil {
			return fmt.Errorf("cp: portion upper %d: %w", i, err)
		}

		// Lower, relaxed by bigM*(1-y[i]) when y[i]=0:
		// 100*x[i] - minPct100*sum(x) - bigM*y[i] >= -bigM.
		lower := make([]float64, totalVars)
		lower[xIdx[i]] += 100
		for j := 0; j < n; j++ {
			lower[xIdx[j]] -= minPct100
		}
		lower[yIdx[i]] -= bigM
		if err := solver.AddConstraint(lower, ">=", -bigM); err != nil {
			return fmt.Errorf("cp: portion lower %d: %w", i, err)
		}
	}
	return nil
}

// addPairwise wires z[i,j] <=> (y[i] AND y[j]) and the tightened
// |x[i]-x[j]| <= bound constraint, active only when z[i,j]=1.
func addPairwise(solver lp.LPSolver, xIdx, yIdx []int, zIdx map[pairKey]int, pairs []pairKey, bound int, totalVars int) error {
	for _, pk := range pairs {
		zi := zIdx[pk]

		// z <= y[i], z <= y[j].
		c1 := make([]float64, totalVars)
		c1[zi] = 1
		c1[yIdx[pk.i]] = -1
		if err := solver.AddConstraint(c1, "<=", 0); err != nil {
			return fmt.Errorf("cp: z<=yi: %w", err)
		}
		c2 := make([]float64, totalVars)
		c2[zi] = 1
		c2[yIdx[pk.j]] = -1
		if err := solver.AddConstraint(c2, "<=", 0); err != nil {
			return fmt.Errorf("cp: z<=yj: %w", err)
		}
		// z >= y[i] + y[j] - 1.
		c3 := make([]float64, totalVars)
		c3[zi] = -1
		c3[yIdx[pk.i]] = 1
		c3[yIdx[pk.j]] = 1
		if err := solver.AddConstraint(c3, "<=", 1); err != nil {
			return fmt.Errorf("cp: z>=yi+yj-1: %w", err)
		}

		// |x[i]-x[j]| <= bound, relaxed by bigM*(1-z).
		d1 := make([]float64, totalVars)
		d1[xIdx[pk.i]] = 1
		d1[xIdx[pk.j]] = -1
		d1[zi] = bigM
		if err := solver.AddConstraint(d1, "<=", bigM+float64(bound)); err != nil {
			return fmt.Errorf("cp: pairwise +: %w", err)
		}
		d2 := make([]float64, totalVars)
		d2[xIdx[pk.j]] = 1
		d2[xIdx[pk.i]] = -1
		d2[zi] = bigM
		if err := solver.AddConstraint(d2, "<=", bigM+float64(bound)); err != nil {
			return fmt.Errorf("cp: pairwise -: %w", err)
		}
	}
	return nil
}

// addDiversityCuts wires, for each prior solution, diff[i,s] <=> x[i] !=
// priorX[i,s] via an auxiliary direction binary dir[i,s], then requires
// the number of differing items to reach the configured percentage of the
// prior's total servings (spec §4.3's diversity cut). priorSolutions[s] is aligned with xIdx; an
// absent item (quantity 0) is compared as 0 (spec §9, deliberate).
func addDiversityCuts(solver lp.LPSolver, xIdx []int, priorSolutions [][]int, diffBase, n, totalVars, minSolutionDiversityPercent int) error {
	for s, prior := range priorSolutions {
		total := 0
		for _, q := range prior {
			if q > 0 {
				total += q
			}
		}
		for i := 0; i < n; i++ {
			priorQty := prior[i]
			diffIdx := diffBase + s*n*2 + i
			dirIdx := diffBase + s*n*2 + n + i

			// diff=0 forces equality: x[i]-priorQty <= M*diff, priorQty-x[i] <= M*diff.
			e1 := make([]float64, totalVars)
			e1[xIdx[i]] = 1
			e1[diffIdx] = -bigM
			if err := solver.AddConstraint(e1, "<=", float64(priorQty)); err != nil {
				return fmt.Errorf("cp: diversity eq1: %w", err)
			}
			e2 := make([]float64, totalVars)
			e2[xIdx[i]] = -1
			e2[diffIdx] = -bigM
			if err := solver.AddConstraint(e2, "<=", -float64(priorQty)); err != nil {
				return fmt.Errorf("cp: diversity eq2: %w", err)
			}

			// diff=1 forces a real difference, in the direction dir picks:
			//   dir=1 => x[i] >= priorQty+1
			//   dir=0 => x[i] <= priorQty-1
			// Linearized as:
			//   -x[i] + M*dir + M*diff <= 2M - 1 - priorQty
			//    x[i] - M*dir + M*diff <=  M - 1 + priorQty
			d1 := make([]float64, totalVars)
			d1[xIdx[i]] = -1
			d1[dirIdx] = bigM
			d1[diffIdx] = bigM
			if err := solver.AddConstraint(d1, "<=", 2*bigM-1-float64(priorQty)); err != nil {
				return fmt.Errorf("cp: diversity dir1: %w", err)
			}
			d2 := make([]float64, totalVars)
			d2[xIdx[i]] = 1
			d2[dirIdx] = -bigM
			d2[diffIdx] = bigM
			if err := solver.AddConstraint(d2, "<=", bigM-1+float64(priorQty)); err != nil {
				return fmt.Errorf("cp: diversity dir2: %w", err)
			}
		}

		threshold := diversityThreshold(total, minSolutionDiversityPercent)
		row := make([]float64, totalVars)
		for i := 0; i < n; i++ {
			row[diffBase+s*n*2+i] = 1
		}
		if err := solver.AddConstraint(row, ">=", float64(threshold)); err != nil {
			return fmt.Errorf("cp: diversity cut: %w", err)
		}
	}
	return nil
}

// diversityThreshold is spec §4.3's per-prior cut:
// ceil(priorTotal * minSolutionDiversityPercent / 100), minimum 1.
func diversityThreshold(priorTotal, minSolutionDiversityPercent int) int {
	t := (priorTotal*minSolutionDiversityPercent + 99) / 100
	if t < 1 {
		return 1
	}
	return t
}
