// Package domain holds the canonical, solver-agnostic types for the bundle
// optimization engine: per-serving items, the bundle request, and the
// resulting solution with its scoring metrics.
package domain

// Diet is the dietary tag of a menu item. The greedy solver's per-diet
// pass processes diets in this order (see DietOrder).
type Diet string

const (
	DietVegan      Diet = "VEGAN"
	DietVegetarian Diet = "VEGETARIAN"
	DietMeat       Diet = "MEAT"
)

// DietOrder is the fixed processing order used by the greedy solver's
// per-diet demand pass.
var DietOrder = []Diet{DietVegan, DietVegetarian, DietMeat}

// goodRatingThreshold, highlyRatedMinVotes and popularMinVotes are the
// exact thresholds the three rating predicates are defined against. They
// must never drift from spec: the predicates are invariant on them.
const (
	goodRatingThreshold = 0.85
	highlyRatedMinVotes = 50
	popularMinVotes     = 100
)

// Item is a single per-serving unit: the result of splitting a bulk menu
// entry across its `serves` count (see package adapter). Solvers only ever
// see Items, never bulk menu entries.
type Item struct {
	ID            string
	Name          string
	PriceCents    int
	Diet          Diet
	AvailableQty  int
	PrepLoad      int
	UpvoteCount   int
	DownvoteCount int
	ReviewCount   int
}

// Rating returns the upvote percentage in [0,1], or 0 if there are no
// votes yet.
func (i Item) Rating() float64 {
	total := i.UpvoteCount + i.DownvoteCount
	if total == 0 {
		return 0
	}
	return float64(i.UpvoteCount) / float64(total)
}

// totalVotes is upvotes+downvotes, the volume gate for the highly-rated
// and popular predicates.
func (i Item) totalVotes() int {
	return i.UpvoteCount + i.DownvoteCount
}

// GoodRating reports whether the item's rating meets the quality bar,
// independent of vote volume.
func (i Item) GoodRating() bool {
	return i.Rating() >= goodRatingThreshold
}

// HighlyRated additionally requires at least highlyRatedMinVotes votes.
func (i Item) HighlyRated() bool {
	return i.GoodRating() && i.totalVotes() >= highlyRatedMinVotes
}

// Popular requires the stricter popularMinVotes vote volume.
func (i Item) Popular() bool {
	return i.GoodRating() && i.totalVotes() >= popularMinVotes
}
