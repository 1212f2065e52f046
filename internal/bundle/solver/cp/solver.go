// Package cp implements spec §4.3: the CP/MILP solver. It builds an
// integer-programming model with linked binary indicator variables and a
// pairwise fair-distribution constraint, then repeatedly solves, adding a
// diversity cut against every solution already found, until topN
// solutions have been collected or no further feasible solution exists.
package cp

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/constraint"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/domain"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/scoring"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/solver/lp"
)

// Solver is the MILP bundle solver backed by golp/lp_solve.
type Solver struct {
	minSolutionDiversityPercent int
	maxTimePerSolutionMs        int
	logger                      *zap.Logger
}

// NewSolver builds a Solver. minSolutionDiversityPercent and
// maxTimePerSolutionMs are expected to already be validated by
// internal/config (spec §7 InvalidConfig is a construction-time concern
// for the whole engine, not re-validated per solver).
func NewSolver(minSolutionDiversityPercent, maxTimePerSolutionMs int, logger *zap.Logger) *Solver {
	return &Solver{
		minSolutionDiversityPercent: minSolutionDiversityPercent,
		maxTimePerSolutionMs:        maxTimePerSolutionMs,
		logger:                      logger,
	}
}

// Solve runs up to topN solve iterations, each adding a diversity cut
// against every previously accumulated solution. It stops early when an
// iteration finds no feasible solution (spec §4.3's error condition:
// return the solutions found so far, possibly empty).
func (s *Solver) Solve(ctx context.Context, m constraint.Model, topN int) ([]domain.Solution, error) {
	items := make([]domain.Item, len(m.Items))
	copy(items, m.Items)
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	m.Items = items

	var solutions []domain.Solution
	var priorQty [][]int

	for len(solutions) < topN {
		select {
		case <-ctx.Done():
			return solutions, nil
		default:
		}

		start := time.Now()
		quantities, feasible, err := s.solveOnce(m, priorQty)
		elapsed := time.Since(start)
		if err != nil {
			s.logger.Debug("cp solve iteration errored", zap.Error(err))
			return solutions, nil
		}
		if !feasible {
			s.logger.Debug("cp solve iteration infeasible, stopping", zap.Int("found", len(solutions)))
			return solutions, nil
		}

		sol := buildSolution(m, items, quantities, elapsed)
		sol.OptimalityScore = scoring.Full(sol, m.Request, m.Params())
		solutions = append(solutions, sol)
		priorQty = append(priorQty, quantities)

		s.logger.Info("cp solve iteration complete",
			zap.Int("iteration", len(solutions)),
			zap.Duration("elapsed", elapsed),
			zap.Int("score", sol.OptimalityScore),
		)
	}

	domain.SortByScoreDescending(solutions)
	return solutions, nil
}

// solveOnce builds and solves a single MILP iteration within the
// configured per-solve wall-clock cap. The golp/lp_solve call itself is a
// blocking cgo call with no cancellation hook, so the cap is enforced by
// racing it against a timer: if the timer wins, the iteration is treated
// as a timeout (spec §7: same handling as Infeasible for that iteration),
// though the underlying solve is allowed to finish in the background.
func (s *Solver) solveOnce(m constraint.Model, priorQty [][]int) ([]int, bool, error) {
	built, err := buildModel(m, priorQty, s.minSolutionDiversityPercent)
	if err != nil {
		return nil, false, err
	}
	defer built.solver.Close()

	type outcome struct {
		result *lp.LPResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := built.solver.Solve()
		done <- outcome{res, err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			return nil, false, fmt.Errorf("cp: solve: %w", out.err)
		}
		if out.result.Status != lp.LPOptimal {
			return nil, false, nil
		}
		quantities := make([]int, len(built.xIdx))
		for i, idx := range built.xIdx {
			quantities[i] = int(out.result.Solution[idx] + 0.5)
		}
		return quantities, true, nil
	case <-time.After(time.Duration(s.maxTimePerSolutionMs) * time.Millisecond):
		s.logger.Debug("cp solve hit per-solve time cap", zap.Int("cap_ms", s.maxTimePerSolutionMs))
		return nil, false, nil
	}
}

func buildSolution(m constraint.Model, items []domain.Item, quantities []int, elapsed time.Duration) domain.Solution {
	assignment := make(map[domain.Item]int)
	totalCost, totalLoad := 0, 0
	popularCount := 0
	for i, qty := range quantities {
		if qty <= 0 {
			continue
		}
		item := items[i]
		assignment[item] = qty
		totalCost += item.PriceCents * qty
		totalLoad += item.PrepLoad * qty
		if item.Popular() {
			popularCount++
		}
	}

	sol := domain.Solution{
		Items:         assignment,
		TotalCost:     totalCost,
		FindingTimeMs: elapsed.Milliseconds(),
	}
	if m.Request.People > 0 {
		sol.AveragePerPersonCents = totalCost / m.Request.People
	}
	if len(assignment) > 0 {
		sol.PopularItemsPercent = float64(popularCount) * 100 / float64(len(assignment))
	}
	if m.KitchenCap > 0 {
		sol.KitchenLoadPercent = float64(totalLoad) * 100 / float64(m.KitchenCap)
	}
	return sol
}
