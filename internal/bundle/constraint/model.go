// Package constraint holds the single formal description of bundle
// validity (spec §4.1) shared by all three solvers, plus the
// group-size-adaptive parameters it depends on. The brute-force leaf check
// uses the validator directly and the CP model reads the same parameters;
// the greedy constructor does not validate against it.
package constraint

import "github.com/h-rajagopal/cart-bundler-v0/internal/bundle/domain"

// Params are the group-size-adaptive portion/fairness parameters from
// spec §4.1's table.
type Params struct {
	MinPortionPct float64
	MaxPortionPct float64
	FairRange     float64
}

// ParamsFor returns the parameter set for the given group size.
func ParamsFor(size domain.GroupSize) Params {
	if size == domain.GroupSmall {
		return Params{MinPortionPct: 0.10, MaxPortionPct: 0.50, FairRange: 0.30}
	}
	return Params{MinPortionPct: 0.05, MaxPortionPct: 0.25, FairRange: 0.15}
}

// CPPairwiseBound returns the tightened pairwise bound the CP solver uses
// (spec §4.1: "range·P·0.8"), in absolute serving units.
func CPPairwiseBound(p Params, people int) int {
	return int(p.FairRange * float64(people) * 0.8)
}

// Model is the build-time input every solver validates against: the
// per-serving items available, the request, and the kitchen capacity.
type Model struct {
	Items      []domain.Item
	Request    domain.BundleRequest
	KitchenCap int
}

// ItemByID indexes the model's items for O(1) lookups during solving.
func (m Model) ItemByID() map[string]domain.Item {
	idx := make(map[string]domain.Item, len(m.Items))
	for _, it := range m.Items {
		idx[it.ID] = it
	}
	return idx
}

// Params returns the group-size-adaptive parameters for this model's
// request.
func (m Model) Params() Params {
	return ParamsFor(m.Request.GroupSize())
}
