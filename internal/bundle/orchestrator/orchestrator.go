// Package orchestrator is the single entry point spec §4.6 describes: it
// filters the incoming menu, dispatches to the chosen solver, measures
// wall time, and shapes the result into a BundleComparison. Nothing here
// holds state between calls (spec §5): every Build call is self-contained.
package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/constraint"
	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/domain"
)

// CPSolver, GreedySolver and BruteForceSolver are the narrow interfaces
// the three concrete solver packages satisfy. Declaring them here (rather
// than importing the concrete types) keeps the orchestrator from needing
// to know about golp, math/rand, or recursion internals.
type CPSolver interface {
	Solve(ctx context.Context, m constraint.Model, topN int) ([]domain.Solution, error)
}

type GreedySolver interface {
	Solve(m constraint.Model, topN int) ([]domain.Solution, error)
}

type BruteForceSolver interface {
	Solve(m constraint.Model, topN int) ([]domain.Solution, error)
}

// BundleComparison is the shaped output of a single Build call (spec §6).
type BundleComparison struct {
	// RequestID correlates this comparison with the "build complete" log
	// line, so a solution can be traced back to the call that produced it
	// without the orchestrator holding any state across calls.
	RequestID     uuid.UUID
	Solutions     []domain.Solution
	SolverType    domain.SolverKind
	FindingTimeMs int64
	// Warnings carries human-readable notes about degraded outcomes, such
	// as finding fewer solutions than requested.
	Warnings []string
}

// Orchestrator dispatches a BundleRequest to one of the three
// interchangeable solvers.
type Orchestrator struct {
	cp         CPSolver
	greedy     GreedySolver
	bruteForce BruteForceSolver
	logger     *zap.Logger
}

// New builds an Orchestrator wired to one instance of each solver kind.
func New(cp CPSolver, greedy GreedySolver, bruteForce BruteForceSolver, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{cp: cp, greedy: greedy, bruteForce: bruteForce, logger: logger}
}

// Build filters the menu to in-stock items, dispatches to the requested
// solver, and returns a ranked BundleComparison. The only error it raises
// is domain.ErrEmptyMenu (spec §7 InvalidInput); every other outcome,
// including an infeasible or timed-out solve, is reported as a
// (possibly empty) solutions list plus a warning, never an error.
func (o *Orchestrator) Build(ctx context.Context, req domain.BundleRequest, items []domain.Item, kitchenCap int, kind domain.SolverKind) (BundleComparison, error) {
	available := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if item.AvailableQty > 0 {
			available = append(available, item)
		}
	}
	if len(available) == 0 {
		return BundleComparison{}, domain.ErrEmptyMenu
	}

	m := constraint.Model{Items: available, Request: req, KitchenCap: kitchenCap}
	requestID := uuid.New()

	start := time.Now()
	var (
		solutions []domain.Solution
		err       error
	)
	switch kind {
	case domain.SolverMILP:
		solutions, err = o.cp.Solve(ctx, m, req.TopN)
	case domain.SolverGreedy:
		solutions, err = o.greedy.Solve(m, req.TopN)
	case domain.SolverBruteForce:
		solutions, err = o.bruteForce.Solve(m, req.TopN)
	default:
		solutions, err = o.cp.Solve(ctx, m, req.TopN)
		kind = domain.SolverMILP
	}
	elapsed := time.Since(start)

	if err != nil {
		o.logger.Info("solver run failed",
			zap.String("requestID", requestID.String()),
			zap.String("solver", string(kind)),
			zap.Error(err),
		)
		solutions = nil
	}

	result := BundleComparison{
		RequestID:     requestID,
		Solutions:     solutions,
		SolverType:    kind,
		FindingTimeMs: elapsed.Milliseconds(),
	}
	if len(solutions) == 0 {
		result.Warnings = append(result.Warnings, "no feasible solutions found")
	} else if len(solutions) < req.TopN {
		result.Warnings = append(result.Warnings, "fewer solutions found than requested")
	}

	o.logger.Info("build complete",
		zap.String("requestID", requestID.String()),
		zap.String("solver", string(kind)),
		zap.Int("found", len(solutions)),
		zap.Int("requested", req.TopN),
		zap.Duration("elapsed", elapsed),
	)

	return result, nil
}
