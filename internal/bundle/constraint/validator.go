package constraint

import (
	"fmt"

	"github.com/h-rajagopal/cart-bundler-v0/internal/bundle/domain"
)

// Validate checks a candidate assignment (item -> quantity, quantity > 0
// entries only) against every rule in spec §4.1. The brute-force leaf
// acceptance defers to it (via ValidateWithParams); the CP model encodes
// the same rules as linear constraints, and the greedy constructor does
// not call it.
//
// It returns nil when valid, or an error describing the first violated
// rule otherwise. Rule order matches §4.1's numbering.
func Validate(m Model, assignment map[domain.Item]int) error {
	return ValidateWithParams(m, assignment, m.Params())
}

// ValidateWithParams is Validate with the portion/fairness parameters
// supplied explicitly rather than derived from the request's group size.
// The brute-force solver uses this to preserve a deliberate quirk in its
// leaf validation (spec §9): it always checks portion bounds against the
// small-group constants, even for large groups.
func ValidateWithParams(m Model, assignment map[domain.Item]int, params Params) error {
	req := m.Request

	total := 0
	totalCost := 0
	totalLoad := 0
	byDiet := make(map[domain.Diet]int)

	for item, qty := range assignment {
		if qty <= 0 {
			continue
		}
		// 1. Stock.
		if qty > item.AvailableQty {
			return fmt.Errorf("constraint: item %q quantity %d exceeds stock %d", item.ID, qty, item.AvailableQty)
		}
		total += qty
		totalCost += item.PriceCents * qty
		totalLoad += item.PrepLoad * qty
		byDiet[item.Diet] += qty
	}

	// 2. Demand.
	if total < req.People {
		return fmt.Errorf("constraint: total servings %d below demand %d", total, req.People)
	}

	// 3. Per-diet demand.
	for diet, required := range req.RequiredByDiet {
		if byDiet[diet] < required {
			return fmt.Errorf("constraint: diet %s servings %d below required %d", diet, byDiet[diet], required)
		}
	}

	// 4. Budget.
	budget := req.Budget()
	if totalCost > budget {
		return fmt.Errorf("constraint: total cost %d exceeds budget %d", totalCost, budget)
	}

	// 5. Kitchen.
	if totalLoad > m.KitchenCap {
		return fmt.Errorf("constraint: total load %d exceeds kitchen cap %d", totalLoad, m.KitchenCap)
	}

	// 6. Minimum variety.
	minVariety := domain.MinDifferentItems
	if req.People < minVariety {
		minVariety = req.People
	}
	distinct := 0
	for _, qty := range assignment {
		if qty >= 1 {
			distinct++
		}
	}
	if distinct < minVariety {
		return fmt.Errorf("constraint: distinct items %d below minimum variety %d", distinct, minVariety)
	}

	// 7. Portion bounds and 8. pairwise fair distribution, both over
	// selected items only.
	type selected struct {
		item domain.Item
		qty  int
	}
	var picks []selected
	for item, qty := range assignment {
		if qty >= 1 {
			picks = append(picks, selected{item, qty})
		}
	}

	for _, p := range picks {
		minQty := params.MinPortionPct * float64(total)
		maxQty := params.MaxPortionPct * float64(total)
		if float64(p.qty) < minQty {
			return fmt.Errorf("constraint: item %q quantity %d below portion minimum %.2f", p.item.ID, p.qty, minQty)
		}
		if float64(p.qty) > maxQty {
			return fmt.Errorf("constraint: item %q quantity %d above portion maximum %.2f", p.item.ID, p.qty, maxQty)
		}
	}

	bound := params.FairRange * float64(req.People)
	for i := 0; i < len(picks); i++ {
		for j := i + 1; j < len(picks); j++ {
			diff := picks[i].qty - picks[j].qty
			if diff < 0 {
				diff = -diff
			}
			if float64(diff) > bound {
				return fmt.Errorf("constraint: items %q and %q differ by %d, exceeds fair range %.2f",
					picks[i].item.ID, picks[j].item.ID, diff, bound)
			}
		}
	}

	return nil
}
